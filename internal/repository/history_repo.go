package repository

import (
	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/model"

	"gorm.io/gorm"
)

// HistoryRepository is append-only: entries are never updated or
// deleted through normal flow.
type HistoryRepository interface {
	Append(entry *model.ChangeHistory) error
	FindAll() ([]model.ChangeHistory, error)
}

type historyRepo struct {
	db *gorm.DB
}

func NewHistoryRepo(db *gorm.DB) HistoryRepository {
	return &historyRepo{db}
}

func (r *historyRepo) Append(entry *model.ChangeHistory) error {
	return r.db.Create(entry).Error
}

func (r *historyRepo) FindAll() ([]model.ChangeHistory, error) {
	var entries []model.ChangeHistory
	err := r.db.Order("timestamp DESC").Find(&entries).Error
	return entries, err
}
