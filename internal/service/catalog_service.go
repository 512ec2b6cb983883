package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/auth"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/importer"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/model"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/pricing"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/repository"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/ws"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/pkg/cache"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/pkg/csvutil"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/pkg/validator"

	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("produto não encontrado")
	ErrSKUExists       = errors.New("SKU já cadastrado")
	ErrInvalidCost     = errors.New("preço de compra inválido")
	ErrMalformedCSV    = errors.New("erro ao importar CSV, verifique o formato do arquivo")
)

// ProductRequest carries the manual create/edit form.
type ProductRequest struct {
	SKU         string  `json:"sku" validate:"required"`
	Name        string  `json:"nome" validate:"required"`
	Category    string  `json:"categoria"`
	Description string  `json:"descricao"`
	BaseCost    float64 `json:"preco_compra"`
	ImageURL    string  `json:"imagem_url"`
	Unit        string  `json:"unidade"`
	InStock     bool    `json:"em_estoque"`
}

type CatalogService interface {
	ListProducts() ([]model.Product, error)
	CreateProduct(sess auth.Session, req *ProductRequest) (*model.Product, error)
	UpdateProduct(sess auth.Session, id string, req *ProductRequest) (*model.Product, error)
	DeleteProduct(sess auth.Session, id string) error
	SetActive(sess auth.Session, id string, active bool) (*model.Product, error)
	SetInStock(sess auth.Session, id string, inStock bool) (*model.Product, error)
	ImportCSV(sess auth.Session, csvText string) (int, error)
	ExportCSV() (string, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
	db          *gorm.DB
	hub         *ws.Hub
}

func NewCatalogService(productRepo repository.ProductRepository, db *gorm.DB, hub *ws.Hub) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		db:          db,
		hub:         hub,
	}
}

func (s *catalogService) ListProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *catalogService) CreateProduct(sess auth.Session, req *ProductRequest) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, fmt.Errorf("validação falhou: campo '%s' (%s)", first.FailedField, first.Tag)
	}
	if req.BaseCost <= 0 {
		return nil, ErrInvalidCost
	}

	existing, _ := s.productRepo.FindBySKU(req.SKU)
	if existing != nil && existing.ID != "" {
		return nil, ErrSKUExists
	}

	product := s.fromRequest(req)
	product.ID = importer.DeterministicID(req.SKU)
	product.Active = true
	product.Reprice(pricing.DefaultMargin)

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	s.afterWrite("product_created", sess, product)
	return product, nil
}

func (s *catalogService) UpdateProduct(sess auth.Session, id string, req *ProductRequest) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, fmt.Errorf("validação falhou: campo '%s' (%s)", first.FailedField, first.Tag)
	}
	if req.BaseCost <= 0 {
		return nil, ErrInvalidCost
	}

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	// Visibility is only changed through SetActive, never by an edit.
	product.SKU = req.SKU
	product.Name = req.Name
	product.Category = model.ProductCategory(req.Category)
	product.Description = req.Description
	product.BaseCost = req.BaseCost
	product.ImageURL = req.ImageURL
	product.InStock = req.InStock
	if req.Unit != "" {
		product.Unit = req.Unit
	}
	product.Reprice(product.EffectiveMargin())

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	s.afterWrite("product_updated", sess, product)
	return product, nil
}

func (s *catalogService) DeleteProduct(sess auth.Session, id string) error {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return ErrProductNotFound
	}
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	s.afterWrite("product_deleted", sess, product)
	return nil
}

func (s *catalogService) SetActive(sess auth.Session, id string, active bool) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	product.Active = active
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	s.afterWrite("product_visibility_changed", sess, product)
	return product, nil
}

func (s *catalogService) SetInStock(sess auth.Session, id string, inStock bool) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	product.InStock = inStock
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	s.afterWrite("product_stock_changed", sess, product)
	return product, nil
}

// ImportCSV parses and reconciles a CSV catalog file and commits the
// merged batch in one transaction: a malformed file aborts everything,
// no partial merge is ever visible.
func (s *catalogService) ImportCSV(sess auth.Session, csvText string) (int, error) {
	records := csvutil.Parse(csvText)
	if len(records) == 0 {
		return 0, ErrMalformedCSV
	}

	existing, err := s.productRepo.FindAll()
	if err != nil {
		return 0, err
	}

	merged := importer.Reconcile(existing, records, time.Now())

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.productRepo.UpsertBatch(tx, merged)
	})
	if err != nil {
		return 0, err
	}

	s.hub.Notify("catalog_imported", map[string]interface{}{
		"count": len(merged),
		"user":  sess.Actor(),
	})
	cache.InvalidateCatalog(context.Background())
	return len(merged), nil
}

// ExportCSV renders the active catalog as comma-delimited text. The
// export format intentionally differs from the Brazilian import
// format: two decimals with "." as the decimal separator.
func (s *catalogService) ExportCSV() (string, error) {
	products, err := s.productRepo.FindActive()
	if err != nil {
		return "", err
	}
	return BuildExportCSV(products), nil
}

// BuildExportCSV formats the export file for a product list.
func BuildExportCSV(products []model.Product) string {
	lines := make([]string, 0, len(products)+1)
	lines = append(lines, "SKU,Nome,Categoria,Preço de Venda,Margem")
	for _, p := range products {
		lines = append(lines, strings.Join([]string{
			p.SKU,
			p.Name,
			string(p.Category),
			fmt.Sprintf("%.2f", p.Prices[pricing.Weight1kg]),
			fmt.Sprintf("%.2f", pricing.DeriveMargin(p.BaseCost, p.Prices)),
		}, ","))
	}
	return strings.Join(lines, "\n") + "\n"
}

func (s *catalogService) fromRequest(req *ProductRequest) *model.Product {
	category := model.ProductCategory(req.Category)
	if category == "" {
		category = model.CategoryCastanhas
	}
	unit := req.Unit
	if unit == "" {
		unit = "kg"
	}
	return &model.Product{
		SKU:              req.SKU,
		Name:             req.Name,
		Category:         category,
		Description:      req.Description,
		BaseCost:         req.BaseCost,
		ImageURL:         req.ImageURL,
		Unit:             unit,
		InStock:          req.InStock,
		AvailableWeights: pricing.RetailWeights,
	}
}

// afterWrite runs the best-effort side effects of a committed catalog
// write: the admin change feed and the storefront cache. Failures here
// never roll back the write.
func (s *catalogService) afterWrite(event string, sess auth.Session, product *model.Product) {
	s.hub.Notify(event, map[string]interface{}{
		"product": map[string]interface{}{
			"id":   product.ID,
			"sku":  product.SKU,
			"nome": product.Name,
		},
		"user": sess.Actor(),
	})
	cache.InvalidateCatalog(context.Background())
}
