package model

import "time"

// Default expense categories. Users may file expenses under free-text
// categories beyond these; the distinct set in use is served alongside
// the defaults.
var DefaultExpenseCategories = []string{"Mercadoria", "Embalagens", "Frete", "Outros"}

// Expense is a dated ledger line with no relationship to products.
// Grouped by calendar month for reporting.
type Expense struct {
	BaseModel
	Name     string    `gorm:"type:varchar(255);not null;column:nome" json:"nome" validate:"required"`
	Amount   float64   `gorm:"column:valor;not null" json:"valor" validate:"required,gt=0"`
	Category string    `gorm:"type:varchar(100);column:categoria" json:"categoria" validate:"required"`
	Date     time.Time `gorm:"type:date;column:data" json:"data"`
	Note     string    `gorm:"type:text;column:observacoes" json:"observacoes,omitempty"`
}
