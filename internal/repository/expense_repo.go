package repository

import (
	"time"

	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExpenseRepository interface {
	Create(expense *model.Expense) error
	FindAll() ([]model.Expense, error)
	FindByMonth(year int, month time.Month) ([]model.Expense, error)
	FindByID(id uuid.UUID) (*model.Expense, error)
	Update(expense *model.Expense) error
	Delete(id uuid.UUID) error
	DistinctCategories() ([]string, error)
	TotalBetween(start, end time.Time) (float64, error)
}

type expenseRepo struct {
	db *gorm.DB
}

func NewExpenseRepo(db *gorm.DB) ExpenseRepository {
	return &expenseRepo{db}
}

func (r *expenseRepo) Create(expense *model.Expense) error {
	return r.db.Create(expense).Error
}

func (r *expenseRepo) FindAll() ([]model.Expense, error) {
	var expenses []model.Expense
	err := r.db.Order("data DESC").Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepo) FindByMonth(year int, month time.Month) ([]model.Expense, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var expenses []model.Expense
	err := r.db.Where("data >= ? AND data < ?", start, end).Order("data DESC").Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepo) FindByID(id uuid.UUID) (*model.Expense, error) {
	var expense model.Expense
	err := r.db.First(&expense, "id = ?", id).Error
	return &expense, err
}

func (r *expenseRepo) Update(expense *model.Expense) error {
	return r.db.Save(expense).Error
}

func (r *expenseRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Expense{}, "id = ?", id).Error
}

func (r *expenseRepo) DistinctCategories() ([]string, error) {
	var categories []string
	err := r.db.Model(&model.Expense{}).Distinct("categoria").Order("categoria ASC").Pluck("categoria", &categories).Error
	return categories, err
}

func (r *expenseRepo) TotalBetween(start, end time.Time) (float64, error) {
	var total float64
	err := r.db.Model(&model.Expense{}).
		Where("data >= ? AND data < ?", start, end).
		Select("COALESCE(SUM(valor), 0)").
		Scan(&total).Error
	return total, err
}
