package repository

import (
	"time"

	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	Create(sale *model.Sale) error
	FindAll() ([]model.Sale, error)
	FindByID(id uuid.UUID) (*model.Sale, error)
	Update(sale *model.Sale) error
	Delete(id uuid.UUID) error
	CountByCustomer(customerID uuid.UUID) (int64, error)
	TotalBetween(start, end time.Time) (float64, error)
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) Create(sale *model.Sale) error {
	return r.db.Create(sale).Error
}

func (r *saleRepo) FindAll() ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("Customer").Order("date DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.Preload("Customer").First(&sale, "id = ?", id).Error
	return &sale, err
}

func (r *saleRepo) Update(sale *model.Sale) error {
	return r.db.Save(sale).Error
}

func (r *saleRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Sale{}, "id = ?", id).Error
}

func (r *saleRepo) CountByCustomer(customerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Sale{}).Where("customer_id = ?", customerID).Count(&count).Error
	return count, err
}

func (r *saleRepo) TotalBetween(start, end time.Time) (float64, error) {
	var total float64
	err := r.db.Model(&model.Sale{}).
		Where("date >= ? AND date < ?", start, end).
		Select("COALESCE(SUM(valor), 0)").
		Scan(&total).Error
	return total, err
}
