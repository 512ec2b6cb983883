package repository

import (
	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RetailMarginRepository interface {
	FindAll() ([]model.RetailMargin, error)
	FindByProductID(productID string) (*model.RetailMargin, error)
	Upsert(margin *model.RetailMargin) error
}

type retailMarginRepo struct {
	db *gorm.DB
}

func NewRetailMarginRepo(db *gorm.DB) RetailMarginRepository {
	return &retailMarginRepo{db}
}

func (r *retailMarginRepo) FindAll() ([]model.RetailMargin, error) {
	var margins []model.RetailMargin
	err := r.db.Find(&margins).Error
	return margins, err
}

func (r *retailMarginRepo) FindByProductID(productID string) (*model.RetailMargin, error) {
	var margin model.RetailMargin
	err := r.db.First(&margin, "product_id = ?", productID).Error
	return &margin, err
}

func (r *retailMarginRepo) Upsert(margin *model.RetailMargin) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"margem", "updated_at"}),
	}).Create(margin).Error
}

type WholesaleMarginRepository interface {
	FindAll() ([]model.WholesaleMargin, error)
	FindByProductID(productID string) (*model.WholesaleMargin, error)
	Upsert(margin *model.WholesaleMargin) error
}

type wholesaleMarginRepo struct {
	db *gorm.DB
}

func NewWholesaleMarginRepo(db *gorm.DB) WholesaleMarginRepository {
	return &wholesaleMarginRepo{db}
}

func (r *wholesaleMarginRepo) FindAll() ([]model.WholesaleMargin, error) {
	var margins []model.WholesaleMargin
	err := r.db.Find(&margins).Error
	return margins, err
}

func (r *wholesaleMarginRepo) FindByProductID(productID string) (*model.WholesaleMargin, error) {
	var margin model.WholesaleMargin
	err := r.db.First(&margin, "product_id = ?", productID).Error
	return &margin, err
}

func (r *wholesaleMarginRepo) Upsert(margin *model.WholesaleMargin) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"margem_3kg", "margem_5kg", "margem_10kg", "updated_at"}),
	}).Create(margin).Error
}
