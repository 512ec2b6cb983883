package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/model"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/pricing"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/repository"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/pkg/brnum"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/pkg/cache"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/pkg/validator"
)

var (
	ErrProductUnavailable = errors.New("produto indisponível")
	ErrUnknownWeight      = errors.New("peso indisponível para este produto")
	ErrEmptyCart          = errors.New("carrinho vazio")
)

type CheckoutItem struct {
	ProductID string `json:"product_id" validate:"required"`
	Weight    string `json:"peso" validate:"required"`
	Quantity  int    `json:"quantidade" validate:"required,gt=0"`
}

type CheckoutRequest struct {
	Items         []CheckoutItem `json:"items" validate:"required,min=1,dive"`
	PaymentMethod string         `json:"forma_pagamento" validate:"required,oneof=pix credit debit"`
	Installments  int            `json:"parcelas"`
}

// CheckoutResult echoes the persisted sale together with the computed
// total, so the storefront can render the confirmation screen.
type CheckoutResult struct {
	SaleID         string  `json:"sale_id"`
	Total          float64 `json:"total"`
	TotalFormatted string  `json:"total_formatado"`
	Note           string  `json:"observacoes"`
}

type StorefrontService interface {
	Catalog(ctx context.Context) ([]model.Product, error)
	Checkout(ctx context.Context, req *CheckoutRequest) (*CheckoutResult, error)
}

type storefrontService struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
}

func NewStorefrontService(productRepo repository.ProductRepository, saleRepo repository.SaleRepository) StorefrontService {
	return &storefrontService{
		productRepo: productRepo,
		saleRepo:    saleRepo,
	}
}

// Catalog returns the visible products, served from the Redis cache
// when one is configured. Inactive products never leave the admin
// area.
func (s *storefrontService) Catalog(ctx context.Context) ([]model.Product, error) {
	if data, ok := cache.GetCatalog(ctx); ok {
		var products []model.Product
		if err := json.Unmarshal(data, &products); err == nil {
			return products, nil
		}
	}

	products, err := s.productRepo.FindActive()
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(products); err == nil {
		cache.SetCatalog(ctx, data)
	}
	return products, nil
}

// Checkout prices the cart server side and records the resulting sale
// with origem "loja". Client-sent prices are never trusted.
func (s *storefrontService) Checkout(ctx context.Context, req *CheckoutRequest) (*CheckoutResult, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, fmt.Errorf("validação falhou: campo '%s' (%s)", first.FailedField, first.Tag)
	}

	var total float64
	for _, item := range req.Items {
		product, err := s.productRepo.FindByID(item.ProductID)
		if err != nil {
			return nil, ErrProductUnavailable
		}
		if !product.Active || !product.InStock {
			return nil, ErrProductUnavailable
		}
		price, ok := product.Prices[pricing.WeightTier(item.Weight)]
		if !ok || price <= 0 {
			return nil, ErrUnknownWeight
		}
		total += price * float64(item.Quantity)
	}

	sale := &model.Sale{
		Date:   time.Now(),
		Amount: total,
		Source: model.SaleLoja,
		Note:   paymentNote(req.PaymentMethod, req.Installments),
	}
	if err := s.saleRepo.Create(sale); err != nil {
		return nil, err
	}

	return &CheckoutResult{
		SaleID:         sale.ID.String(),
		Total:          total,
		TotalFormatted: brnum.FormatCurrency(total),
		Note:           sale.Note,
	}, nil
}

func paymentNote(method string, installments int) string {
	if method == "credit" && installments > 1 {
		return fmt.Sprintf("%s %dx", method, installments)
	}
	return method
}
