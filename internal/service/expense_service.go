package service

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/model"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/repository"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/pkg/validator"

	"github.com/google/uuid"
)

var (
	ErrExpenseNotFound = errors.New("despesa não encontrada")
	ErrInvalidMonth    = errors.New("mês inválido, use o formato AAAA-MM")
	ErrInvalidDate     = errors.New("data inválida, use o formato AAAA-MM-DD")
)

type ExpenseRequest struct {
	Name     string  `json:"nome" validate:"required"`
	Amount   float64 `json:"valor" validate:"required,gt=0"`
	Category string  `json:"categoria" validate:"required"`
	Date     string  `json:"data" validate:"required"`
	Note     string  `json:"observacoes"`
}

// MonthlySummary aggregates one month of expenses per category.
type MonthlySummary struct {
	Month      string             `json:"month"`
	Total      float64            `json:"total"`
	ByCategory map[string]float64 `json:"by_category"`
	Count      int                `json:"count"`
}

type ExpenseService interface {
	CreateExpense(req *ExpenseRequest) (*model.Expense, error)
	UpdateExpense(id uuid.UUID, req *ExpenseRequest) (*model.Expense, error)
	DeleteExpense(id uuid.UUID) error
	ListExpenses(month string) ([]model.Expense, error)
	Summary(month string) (*MonthlySummary, error)
	Categories() ([]string, error)
}

type expenseService struct {
	expenseRepo repository.ExpenseRepository
}

func NewExpenseService(expenseRepo repository.ExpenseRepository) ExpenseService {
	return &expenseService{expenseRepo: expenseRepo}
}

func (s *expenseService) CreateExpense(req *ExpenseRequest) (*model.Expense, error) {
	expense, err := s.fromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Create(expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) UpdateExpense(id uuid.UUID, req *ExpenseRequest) (*model.Expense, error) {
	existing, err := s.expenseRepo.FindByID(id)
	if err != nil {
		return nil, ErrExpenseNotFound
	}

	updated, err := s.fromRequest(req)
	if err != nil {
		return nil, err
	}

	existing.Name = updated.Name
	existing.Amount = updated.Amount
	existing.Category = updated.Category
	existing.Date = updated.Date
	existing.Note = updated.Note

	if err := s.expenseRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *expenseService) DeleteExpense(id uuid.UUID) error {
	if _, err := s.expenseRepo.FindByID(id); err != nil {
		return ErrExpenseNotFound
	}
	return s.expenseRepo.Delete(id)
}

// ListExpenses returns every expense, or one month of them when month
// is given as "AAAA-MM".
func (s *expenseService) ListExpenses(month string) ([]model.Expense, error) {
	if month == "" {
		return s.expenseRepo.FindAll()
	}
	year, m, err := parseMonth(month)
	if err != nil {
		return nil, err
	}
	return s.expenseRepo.FindByMonth(year, m)
}

func (s *expenseService) Summary(month string) (*MonthlySummary, error) {
	year, m, err := parseMonth(month)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.FindByMonth(year, m)
	if err != nil {
		return nil, err
	}

	summary := &MonthlySummary{
		Month:      month,
		ByCategory: make(map[string]float64),
		Count:      len(expenses),
	}
	for _, e := range expenses {
		summary.Total += e.Amount
		summary.ByCategory[e.Category] += e.Amount
	}
	return summary, nil
}

// Categories merges the fixed defaults with every category already
// used on a stored expense, so ad-hoc categories keep showing up.
func (s *expenseService) Categories() ([]string, error) {
	seen := make(map[string]bool, len(model.DefaultExpenseCategories))
	categories := make([]string, 0, len(model.DefaultExpenseCategories))
	for _, c := range model.DefaultExpenseCategories {
		seen[c] = true
		categories = append(categories, c)
	}

	stored, err := s.expenseRepo.DistinctCategories()
	if err != nil {
		return nil, err
	}
	extras := make([]string, 0)
	for _, c := range stored {
		if c != "" && !seen[c] {
			seen[c] = true
			extras = append(extras, c)
		}
	}
	sort.Strings(extras)
	return append(categories, extras...), nil
}

func (s *expenseService) fromRequest(req *ExpenseRequest) (*model.Expense, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, fmt.Errorf("validação falhou: campo '%s' (%s)", first.FailedField, first.Tag)
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return &model.Expense{
		Name:     req.Name,
		Amount:   req.Amount,
		Category: req.Category,
		Date:     date,
		Note:     req.Note,
	}, nil
}

func parseMonth(month string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return 0, 0, ErrInvalidMonth
	}
	return t.Year(), t.Month(), nil
}
