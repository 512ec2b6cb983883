package model

import (
	"time"

	"github.com/google/uuid"
)

type SaleSource string

const (
	// SaleLoja marks storefront sales, including anonymous manual
	// entries with no customer attached.
	SaleLoja   SaleSource = "loja"
	SaleManual SaleSource = "manual"
)

// Sale records one completed sale, either from a storefront checkout
// or from manual admin entry.
type Sale struct {
	BaseModel
	Date       time.Time  `gorm:"column:date" json:"date"`
	CustomerID *uuid.UUID `gorm:"type:uuid;index;column:customer_id" json:"customer_id,omitempty"`
	Customer   *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty" validate:"-"`
	Amount     float64    `gorm:"column:valor;not null" json:"valor" validate:"required,gt=0"`
	Source     SaleSource `gorm:"type:varchar(10);column:origem" json:"origem" validate:"oneof=loja manual"`
	Note       string     `gorm:"type:text;column:observacoes" json:"observacoes,omitempty"`
}
