package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/model"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/repository"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/pkg/validator"

	"github.com/google/uuid"
)

var (
	ErrCustomerNotFound = errors.New("cliente não encontrado")
	ErrCustomerHasSales = errors.New("cliente possui vendas registradas e não pode ser excluído")
	ErrSaleNotFound     = errors.New("venda não encontrada")
)

type CustomerRequest struct {
	Name    string `json:"nome" validate:"required"`
	Address string `json:"endereco"`
	Phone   string `json:"telefone"`
}

type SaleRequest struct {
	CustomerID *uuid.UUID `json:"customer_id"`
	Amount     float64    `json:"valor" validate:"required,gt=0"`
	Date       string     `json:"data"`
	Note       string     `json:"observacoes"`
}

type CustomerService interface {
	ListCustomers() ([]model.Customer, error)
	CreateCustomer(req *CustomerRequest) (*model.Customer, error)
	UpdateCustomer(id uuid.UUID, req *CustomerRequest) (*model.Customer, error)
	SetCustomerActive(id uuid.UUID, active bool) (*model.Customer, error)
	DeleteCustomer(id uuid.UUID) error

	ListSales() ([]model.Sale, error)
	RecordSale(req *SaleRequest) (*model.Sale, error)
	DeleteSale(id uuid.UUID) error
}

type customerService struct {
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository, saleRepo repository.SaleRepository) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		saleRepo:     saleRepo,
	}
}

func (s *customerService) ListCustomers() ([]model.Customer, error) {
	return s.customerRepo.FindAll()
}

func (s *customerService) CreateCustomer(req *CustomerRequest) (*model.Customer, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, fmt.Errorf("validação falhou: campo '%s' (%s)", first.FailedField, first.Tag)
	}
	customer := &model.Customer{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Active:  true,
	}
	if err := s.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) UpdateCustomer(id uuid.UUID, req *CustomerRequest) (*model.Customer, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, fmt.Errorf("validação falhou: campo '%s' (%s)", first.FailedField, first.Tag)
	}
	customer, err := s.customerRepo.FindByID(id)
	if err != nil {
		return nil, ErrCustomerNotFound
	}
	customer.Name = req.Name
	customer.Address = req.Address
	customer.Phone = req.Phone
	if err := s.customerRepo.Update(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) SetCustomerActive(id uuid.UUID, active bool) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByID(id)
	if err != nil {
		return nil, ErrCustomerNotFound
	}
	customer.Active = active
	if err := s.customerRepo.Update(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer removes a customer, but only when no sale references
// them. A customer with sales must stay so the sales history keeps its
// names.
func (s *customerService) DeleteCustomer(id uuid.UUID) error {
	if _, err := s.customerRepo.FindByID(id); err != nil {
		return ErrCustomerNotFound
	}
	count, err := s.saleRepo.CountByCustomer(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCustomerHasSales
	}
	return s.customerRepo.Delete(id)
}

func (s *customerService) ListSales() ([]model.Sale, error) {
	return s.saleRepo.FindAll()
}

// RecordSale registers a manual back-office sale. The date defaults to
// now when the form leaves it blank.
func (s *customerService) RecordSale(req *SaleRequest) (*model.Sale, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, fmt.Errorf("validação falhou: campo '%s' (%s)", first.FailedField, first.Tag)
	}
	if req.CustomerID != nil {
		if _, err := s.customerRepo.FindByID(*req.CustomerID); err != nil {
			return nil, ErrCustomerNotFound
		}
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, ErrInvalidDate
		}
		date = parsed
	}

	sale := &model.Sale{
		Date:       date,
		CustomerID: req.CustomerID,
		Amount:     req.Amount,
		Source:     model.SaleManual,
		Note:       req.Note,
	}
	if err := s.saleRepo.Create(sale); err != nil {
		return nil, err
	}
	return sale, nil
}

func (s *customerService) DeleteSale(id uuid.UUID) error {
	if _, err := s.saleRepo.FindByID(id); err != nil {
		return ErrSaleNotFound
	}
	return s.saleRepo.Delete(id)
}
