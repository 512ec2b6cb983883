package model

import "time"

// RetailMargin holds one percentage per product applied uniformly
// across all retail weight tiers. Rows without a matching product are
// ignored, not an error.
type RetailMargin struct {
	ProductID string    `gorm:"type:varchar(120);primaryKey" json:"product_id"`
	Margin    float64   `gorm:"column:margem" json:"margem"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (RetailMargin) TableName() string { return "retail_margins" }

// WholesaleMargin holds three independent percentages for the bulk
// tiers of one product. Same ownership contract as RetailMargin.
type WholesaleMargin struct {
	ProductID  string    `gorm:"type:varchar(120);primaryKey" json:"product_id"`
	Margin3kg  float64   `gorm:"column:margem_3kg" json:"margem_3kg"`
	Margin5kg  float64   `gorm:"column:margem_5kg" json:"margem_5kg"`
	Margin10kg float64   `gorm:"column:margem_10kg" json:"margem_10kg"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (WholesaleMargin) TableName() string { return "wholesale_margins" }
