package service

import (
	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/model"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/repository"
)

type HistoryService interface {
	ListHistory() ([]model.ChangeHistory, error)
}

type historyService struct {
	historyRepo repository.HistoryRepository
}

func NewHistoryService(historyRepo repository.HistoryRepository) HistoryService {
	return &historyService{historyRepo: historyRepo}
}

func (s *historyService) ListHistory() ([]model.ChangeHistory, error) {
	return s.historyRepo.FindAll()
}
