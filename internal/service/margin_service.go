package service

import (
	"context"
	"errors"
	"time"

	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/auth"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/model"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/pricing"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/repository"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/ws"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/pkg/brnum"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/pkg/cache"
)

// RetailMarginRow is one line of the retail margin editor: the stored
// margin (or the 35% default) plus the prices it currently yields.
type RetailMarginRow struct {
	ProductID string             `json:"product_id"`
	SKU       string             `json:"sku"`
	Name      string             `json:"nome"`
	BaseCost  float64            `json:"preco_compra"`
	Margin    float64            `json:"margem"`
	Prices    pricing.PriceTable `json:"prices"`
}

// WholesaleMarginRow carries the three bulk margins for a product and
// the kg prices they produce.
type WholesaleMarginRow struct {
	ProductID  string  `json:"product_id"`
	SKU        string  `json:"sku"`
	Name       string  `json:"nome"`
	BaseCost   float64 `json:"preco_compra"`
	Margin3kg  float64 `json:"margem_3kg"`
	Margin5kg  float64 `json:"margem_5kg"`
	Margin10kg float64 `json:"margem_10kg"`
	Price3kg   float64 `json:"preco_3kg"`
	Price5kg   float64 `json:"preco_5kg"`
	Price10kg  float64 `json:"preco_10kg"`
}

type MarginService interface {
	ListRetail() ([]RetailMarginRow, error)
	SaveRetail(sess auth.Session, productID string, marginPct float64) (*RetailMarginRow, error)
	ApplyRetailGlobal(sess auth.Session, marginPct float64) (int, error)
	ListWholesale() ([]WholesaleMarginRow, error)
	SaveWholesale(sess auth.Session, productID string, tier pricing.BulkTier, marginPct float64) (*WholesaleMarginRow, error)
	ApplyWholesaleGlobal(sess auth.Session, margin3, margin5, margin10 float64) (int, error)
}

var ErrUnknownBulkTier = errors.New("faixa de atacado desconhecida")

type marginService struct {
	productRepo   repository.ProductRepository
	retailRepo    repository.RetailMarginRepository
	wholesaleRepo repository.WholesaleMarginRepository
	historyRepo   repository.HistoryRepository
	hub           *ws.Hub
}

func NewMarginService(
	productRepo repository.ProductRepository,
	retailRepo repository.RetailMarginRepository,
	wholesaleRepo repository.WholesaleMarginRepository,
	historyRepo repository.HistoryRepository,
	hub *ws.Hub,
) MarginService {
	return &marginService{
		productRepo:   productRepo,
		retailRepo:    retailRepo,
		wholesaleRepo: wholesaleRepo,
		historyRepo:   historyRepo,
		hub:           hub,
	}
}

func (s *marginService) ListRetail() ([]RetailMarginRow, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, err
	}
	rows := make([]RetailMarginRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, retailRow(&p))
	}
	return rows, nil
}

// SaveRetail persists a new retail margin for one product, recomputes
// its price table and appends a history entry. An invalid margin is
// rejected before anything is touched.
func (s *marginService) SaveRetail(sess auth.Session, productID string, marginPct float64) (*RetailMarginRow, error) {
	if err := pricing.ValidateMargin(marginPct); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		return nil, ErrProductNotFound
	}

	oldMargin := product.EffectiveMargin()
	product.Reprice(marginPct)
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	if err := s.retailRepo.Upsert(&model.RetailMargin{ProductID: product.ID, Margin: marginPct}); err != nil {
		return nil, err
	}

	s.appendHistory(sess, model.ActionMarginChanged, product.SKU, &oldMargin, &marginPct)
	s.notifyMargins("retail_margin_changed", sess, product.SKU, brnum.FormatPercent(marginPct))

	row := retailRow(product)
	return &row, nil
}

// ApplyRetailGlobal sets the same retail margin on every product. The
// margin is validated once up front; each product gets its own history
// entry so the audit trail stays per-SKU.
func (s *marginService) ApplyRetailGlobal(sess auth.Session, marginPct float64) (int, error) {
	if err := pricing.ValidateMargin(marginPct); err != nil {
		return 0, err
	}

	products, err := s.productRepo.FindAll()
	if err != nil {
		return 0, err
	}

	for i := range products {
		p := &products[i]
		oldMargin := p.EffectiveMargin()
		p.Reprice(marginPct)
		if err := s.productRepo.Update(p); err != nil {
			return 0, err
		}
		if err := s.retailRepo.Upsert(&model.RetailMargin{ProductID: p.ID, Margin: marginPct}); err != nil {
			return 0, err
		}
		s.appendHistory(sess, model.ActionGlobalMarginApplied, p.SKU, &oldMargin, &marginPct)
	}

	s.notifyMargins("retail_margins_applied", sess, "", brnum.FormatPercent(marginPct))
	return len(products), nil
}

func (s *marginService) ListWholesale() ([]WholesaleMarginRow, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, err
	}
	stored, err := s.wholesaleRepo.FindAll()
	if err != nil {
		return nil, err
	}
	byProduct := make(map[string]model.WholesaleMargin, len(stored))
	for _, m := range stored {
		byProduct[m.ProductID] = m
	}

	rows := make([]WholesaleMarginRow, 0, len(products))
	for _, p := range products {
		margins := wholesaleOrDefault(byProduct, p.ID)
		rows = append(rows, wholesaleRow(&p, margins))
	}
	return rows, nil
}

func (s *marginService) SaveWholesale(sess auth.Session, productID string, tier pricing.BulkTier, marginPct float64) (*WholesaleMarginRow, error) {
	if err := pricing.ValidateMargin(marginPct); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		return nil, ErrProductNotFound
	}

	margins := s.currentWholesale(product.ID)
	var oldMargin float64
	switch tier {
	case pricing.Bulk3kg:
		oldMargin, margins.Margin3kg = margins.Margin3kg, marginPct
	case pricing.Bulk5kg:
		oldMargin, margins.Margin5kg = margins.Margin5kg, marginPct
	case pricing.Bulk10kg:
		oldMargin, margins.Margin10kg = margins.Margin10kg, marginPct
	default:
		return nil, ErrUnknownBulkTier
	}

	if err := s.wholesaleRepo.Upsert(&margins); err != nil {
		return nil, err
	}

	s.appendHistory(sess, model.ActionWholesaleChanged, product.SKU, &oldMargin, &marginPct)
	s.notifyMargins("wholesale_margin_changed", sess, product.SKU, brnum.FormatPercent(marginPct))

	row := wholesaleRow(product, margins)
	return &row, nil
}

// ApplyWholesaleGlobal sets the three bulk margins on every product.
// All three values are validated before any product is written.
func (s *marginService) ApplyWholesaleGlobal(sess auth.Session, margin3, margin5, margin10 float64) (int, error) {
	for _, m := range []float64{margin3, margin5, margin10} {
		if err := pricing.ValidateMargin(m); err != nil {
			return 0, err
		}
	}

	products, err := s.productRepo.FindAll()
	if err != nil {
		return 0, err
	}

	for i := range products {
		p := &products[i]
		margins := model.WholesaleMargin{
			ProductID:  p.ID,
			Margin3kg:  margin3,
			Margin5kg:  margin5,
			Margin10kg: margin10,
		}
		if err := s.wholesaleRepo.Upsert(&margins); err != nil {
			return 0, err
		}
		s.appendHistory(sess, model.ActionGlobalWholesaleApplied, p.SKU, nil, nil)
	}

	s.notifyMargins("wholesale_margins_applied", sess, "", "")
	return len(products), nil
}

func (s *marginService) currentWholesale(productID string) model.WholesaleMargin {
	stored, err := s.wholesaleRepo.FindByProductID(productID)
	if err != nil || stored == nil {
		return model.WholesaleMargin{
			ProductID:  productID,
			Margin3kg:  pricing.DefaultWholesale3kg,
			Margin5kg:  pricing.DefaultWholesale5kg,
			Margin10kg: pricing.DefaultWholesale10kg,
		}
	}
	return *stored
}

func (s *marginService) appendHistory(sess auth.Session, action, sku string, oldValue, newValue *float64) {
	entry := &model.ChangeHistory{
		Timestamp: time.Now(),
		User:      sess.Actor(),
		Action:    action,
		SKU:       sku,
		OldValue:  oldValue,
		NewValue:  newValue,
	}
	// History is best effort: a failed append never undoes the save.
	_ = s.historyRepo.Append(entry)
}

func (s *marginService) notifyMargins(event string, sess auth.Session, sku, marginLabel string) {
	payload := map[string]interface{}{"user": sess.Actor()}
	if sku != "" {
		payload["sku"] = sku
	}
	if marginLabel != "" {
		payload["margem"] = marginLabel
	}
	s.hub.Notify(event, payload)
	cache.InvalidateCatalog(context.Background())
}

func retailRow(p *model.Product) RetailMarginRow {
	return RetailMarginRow{
		ProductID: p.ID,
		SKU:       p.SKU,
		Name:      p.Name,
		BaseCost:  p.BaseCost,
		Margin:    p.EffectiveMargin(),
		Prices:    pricing.RetailPrices(p.BaseCost, p.EffectiveMargin()),
	}
}

func wholesaleRow(p *model.Product, m model.WholesaleMargin) WholesaleMarginRow {
	return WholesaleMarginRow{
		ProductID:  p.ID,
		SKU:        p.SKU,
		Name:       p.Name,
		BaseCost:   p.BaseCost,
		Margin3kg:  m.Margin3kg,
		Margin5kg:  m.Margin5kg,
		Margin10kg: m.Margin10kg,
		Price3kg:   pricing.WholesalePrice(p.BaseCost, pricing.BulkKg(pricing.Bulk3kg), m.Margin3kg),
		Price5kg:   pricing.WholesalePrice(p.BaseCost, pricing.BulkKg(pricing.Bulk5kg), m.Margin5kg),
		Price10kg:  pricing.WholesalePrice(p.BaseCost, pricing.BulkKg(pricing.Bulk10kg), m.Margin10kg),
	}
}

func wholesaleOrDefault(byProduct map[string]model.WholesaleMargin, productID string) model.WholesaleMargin {
	if m, ok := byProduct[productID]; ok {
		return m
	}
	return model.WholesaleMargin{
		ProductID:  productID,
		Margin3kg:  pricing.DefaultWholesale3kg,
		Margin5kg:  pricing.DefaultWholesale5kg,
		Margin10kg: pricing.DefaultWholesale10kg,
	}
}
