package service

import (
	"time"

	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/repository"
)

// OverviewStats is the admin dashboard header: catalog size, the
// current month's money in and out, and the resulting balance.
type OverviewStats struct {
	TotalProducts      int     `json:"total_products"`
	ActiveProducts     int     `json:"active_products"`
	OutOfStockProducts int     `json:"out_of_stock_products"`
	AverageMargin      float64 `json:"average_margin"`
	MonthSalesTotal    float64 `json:"month_sales_total"`
	MonthExpensesTotal float64 `json:"month_expenses_total"`
	MonthBalance       float64 `json:"month_balance"`
}

type ReportService interface {
	Overview() (*OverviewStats, error)
}

type reportService struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	expenseRepo repository.ExpenseRepository
}

func NewReportService(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	expenseRepo repository.ExpenseRepository,
) ReportService {
	return &reportService{
		productRepo: productRepo,
		saleRepo:    saleRepo,
		expenseRepo: expenseRepo,
	}
}

func (s *reportService) Overview() (*OverviewStats, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, err
	}

	stats := &OverviewStats{TotalProducts: len(products)}
	var marginSum float64
	for _, p := range products {
		if p.Active {
			stats.ActiveProducts++
		}
		if !p.InStock {
			stats.OutOfStockProducts++
		}
		marginSum += p.EffectiveMargin()
	}
	if len(products) > 0 {
		stats.AverageMargin = marginSum / float64(len(products))
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	nextMonth := monthStart.AddDate(0, 1, 0)

	if stats.MonthSalesTotal, err = s.saleRepo.TotalBetween(monthStart, nextMonth); err != nil {
		return nil, err
	}
	if stats.MonthExpensesTotal, err = s.expenseRepo.TotalBetween(monthStart, nextMonth); err != nil {
		return nil, err
	}
	stats.MonthBalance = stats.MonthSalesTotal - stats.MonthExpensesTotal

	return stats, nil
}
