package model

import "time"

// Audit action labels (pt-BR, shown verbatim in the admin history).
const (
	ActionMarginChanged          = "Margem alterada"
	ActionGlobalMarginApplied    = "Margem global aplicada"
	ActionWholesaleChanged       = "Margem atacado alterada"
	ActionGlobalWholesaleApplied = "Margens atacado globais aplicadas"
)

// ChangeHistory is an append-only audit entry for margin edits. Entries
// are never mutated or deleted through normal flow.
type ChangeHistory struct {
	BaseModel
	Timestamp time.Time `gorm:"column:timestamp" json:"timestamp"`
	User      string    `gorm:"type:varchar(255);column:username" json:"user"`
	Action    string    `gorm:"type:varchar(100)" json:"action"`
	SKU       string    `gorm:"type:varchar(50)" json:"sku,omitempty"`
	OldValue  *float64  `gorm:"column:old_value" json:"old_value,omitempty"`
	NewValue  *float64  `gorm:"column:new_value" json:"new_value,omitempty"`
}

func (ChangeHistory) TableName() string { return "change_history" }
