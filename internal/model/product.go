package model

import (
	"time"

	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/pricing"
)

type ProductCategory string

const (
	CategoryCastanhas ProductCategory = "Castanhas"
	CategoryTemperos  ProductCategory = "Temperos"
	CategoryFrutas    ProductCategory = "Frutas Desidratadas"
)

// Product is a catalog entry. The ID is a deterministic string derived
// from the normalized SKU ("p-castanha01") so repeated CSV imports of
// the same file never create duplicate rows; the SKU stays the
// business-facing unique key. JSON field names match the storefront
// contract (pt-BR).
type Product struct {
	ID               string               `gorm:"type:varchar(120);primaryKey" json:"id"`
	SKU              string               `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Name             string               `gorm:"type:varchar(255);not null;column:nome" json:"nome" validate:"required"`
	Category         ProductCategory      `gorm:"type:varchar(50);column:categoria" json:"categoria"`
	Description      string               `gorm:"type:text;column:descricao" json:"descricao"`
	BaseCost         float64              `gorm:"column:preco_compra" json:"preco_compra"` // per kg
	Prices           pricing.PriceTable   `gorm:"serializer:json;type:jsonb" json:"prices"`
	ImageURL         string               `gorm:"type:text;column:imagem_url" json:"imagem_url"`
	Unit             string               `gorm:"type:varchar(20);column:unidade;default:kg" json:"unidade"`
	Active           bool                 `gorm:"column:ativo;default:true" json:"ativo"`
	InStock          bool                 `gorm:"column:em_estoque;default:true" json:"em_estoque"`
	AvailableWeights []pricing.WeightTier `gorm:"serializer:json;type:jsonb" json:"available_weights"`
	Margin           *float64             `gorm:"column:margem" json:"margem,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

// EffectiveMargin returns the stored margin percentage, falling back to
// the value derived from the 1kg price when none is stored.
func (p *Product) EffectiveMargin() float64 {
	if p.Margin != nil {
		return *p.Margin
	}
	return pricing.DeriveMargin(p.BaseCost, p.Prices)
}

// Reprice stores the margin and recomputes the retail price table so
// the two never drift apart.
func (p *Product) Reprice(marginPct float64) {
	m := marginPct
	p.Margin = &m
	p.Prices = pricing.RetailPrices(p.BaseCost, marginPct)
}
