package service

import (
	"errors"
	"strings"
	"time"

	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var errNotFound = errors.New("record not found")

type fakeProductRepo struct {
	products map[string]*model.Product
}

func newFakeProductRepo(products ...*model.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]*model.Product)}
	for _, p := range products {
		cp := *p
		r.products[p.ID] = &cp
	}
	return r
}

func (r *fakeProductRepo) Create(product *model.Product) error {
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

func (r *fakeProductRepo) FindAll() ([]model.Product, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProductRepo) FindActive() ([]model.Product, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		if p.Active {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) FindByID(id string) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) FindBySKU(sku string) (*model.Product, error) {
	for _, p := range r.products {
		if strings.EqualFold(p.SKU, sku) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, errNotFound
}

func (r *fakeProductRepo) Update(product *model.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return errNotFound
	}
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) UpsertBatch(_ *gorm.DB, products []model.Product) error {
	for i := range products {
		cp := products[i]
		r.products[cp.ID] = &cp
	}
	return nil
}

type fakeRetailMarginRepo struct {
	margins map[string]model.RetailMargin
}

func newFakeRetailMarginRepo() *fakeRetailMarginRepo {
	return &fakeRetailMarginRepo{margins: make(map[string]model.RetailMargin)}
}

func (r *fakeRetailMarginRepo) FindAll() ([]model.RetailMargin, error) {
	out := make([]model.RetailMargin, 0, len(r.margins))
	for _, m := range r.margins {
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeRetailMarginRepo) FindByProductID(productID string) (*model.RetailMargin, error) {
	m, ok := r.margins[productID]
	if !ok {
		return nil, errNotFound
	}
	return &m, nil
}

func (r *fakeRetailMarginRepo) Upsert(margin *model.RetailMargin) error {
	r.margins[margin.ProductID] = *margin
	return nil
}

type fakeWholesaleMarginRepo struct {
	margins map[string]model.WholesaleMargin
}

func newFakeWholesaleMarginRepo() *fakeWholesaleMarginRepo {
	return &fakeWholesaleMarginRepo{margins: make(map[string]model.WholesaleMargin)}
}

func (r *fakeWholesaleMarginRepo) FindAll() ([]model.WholesaleMargin, error) {
	out := make([]model.WholesaleMargin, 0, len(r.margins))
	for _, m := range r.margins {
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeWholesaleMarginRepo) FindByProductID(productID string) (*model.WholesaleMargin, error) {
	m, ok := r.margins[productID]
	if !ok {
		return nil, errNotFound
	}
	return &m, nil
}

func (r *fakeWholesaleMarginRepo) Upsert(margin *model.WholesaleMargin) error {
	r.margins[margin.ProductID] = *margin
	return nil
}

type fakeHistoryRepo struct {
	entries []model.ChangeHistory
}

func (r *fakeHistoryRepo) Append(entry *model.ChangeHistory) error {
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeHistoryRepo) FindAll() ([]model.ChangeHistory, error) {
	out := make([]model.ChangeHistory, len(r.entries))
	copy(out, r.entries)
	return out, nil
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*model.Customer
}

func newFakeCustomerRepo(customers ...*model.Customer) *fakeCustomerRepo {
	r := &fakeCustomerRepo{customers: make(map[uuid.UUID]*model.Customer)}
	for _, c := range customers {
		cp := *c
		r.customers[c.ID] = &cp
	}
	return r
}

func (r *fakeCustomerRepo) Create(customer *model.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	cp := *customer
	r.customers[customer.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) FindAll() ([]model.Customer, error) {
	out := make([]model.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCustomerRepo) FindByID(id uuid.UUID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCustomerRepo) Update(customer *model.Customer) error {
	if _, ok := r.customers[customer.ID]; !ok {
		return errNotFound
	}
	cp := *customer
	r.customers[customer.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) Delete(id uuid.UUID) error {
	delete(r.customers, id)
	return nil
}

type fakeSaleRepo struct {
	sales map[uuid.UUID]*model.Sale
}

func newFakeSaleRepo(sales ...*model.Sale) *fakeSaleRepo {
	r := &fakeSaleRepo{sales: make(map[uuid.UUID]*model.Sale)}
	for _, s := range sales {
		cp := *s
		r.sales[s.ID] = &cp
	}
	return r
}

func (r *fakeSaleRepo) Create(sale *model.Sale) error {
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	cp := *sale
	r.sales[sale.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) FindAll() ([]model.Sale, error) {
	out := make([]model.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakeSaleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSaleRepo) Update(sale *model.Sale) error {
	cp := *sale
	r.sales[sale.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) Delete(id uuid.UUID) error {
	delete(r.sales, id)
	return nil
}

func (r *fakeSaleRepo) CountByCustomer(customerID uuid.UUID) (int64, error) {
	var count int64
	for _, s := range r.sales {
		if s.CustomerID != nil && *s.CustomerID == customerID {
			count++
		}
	}
	return count, nil
}

func (r *fakeSaleRepo) TotalBetween(start, end time.Time) (float64, error) {
	var total float64
	for _, s := range r.sales {
		if !s.Date.Before(start) && s.Date.Before(end) {
			total += s.Amount
		}
	}
	return total, nil
}

type fakeExpenseRepo struct {
	expenses map[uuid.UUID]*model.Expense
}

func newFakeExpenseRepo(expenses ...*model.Expense) *fakeExpenseRepo {
	r := &fakeExpenseRepo{expenses: make(map[uuid.UUID]*model.Expense)}
	for _, e := range expenses {
		cp := *e
		r.expenses[e.ID] = &cp
	}
	return r
}

func (r *fakeExpenseRepo) Create(expense *model.Expense) error {
	if expense.ID == uuid.Nil {
		expense.ID = uuid.New()
	}
	cp := *expense
	r.expenses[expense.ID] = &cp
	return nil
}

func (r *fakeExpenseRepo) FindAll() ([]model.Expense, error) {
	out := make([]model.Expense, 0, len(r.expenses))
	for _, e := range r.expenses {
		out = append(out, *e)
	}
	return out, nil
}

func (r *fakeExpenseRepo) FindByMonth(year int, month time.Month) ([]model.Expense, error) {
	out := make([]model.Expense, 0)
	for _, e := range r.expenses {
		if e.Date.Year() == year && e.Date.Month() == month {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeExpenseRepo) FindByID(id uuid.UUID) (*model.Expense, error) {
	e, ok := r.expenses[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *fakeExpenseRepo) Update(expense *model.Expense) error {
	cp := *expense
	r.expenses[expense.ID] = &cp
	return nil
}

func (r *fakeExpenseRepo) Delete(id uuid.UUID) error {
	delete(r.expenses, id)
	return nil
}

func (r *fakeExpenseRepo) DistinctCategories() ([]string, error) {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, e := range r.expenses {
		if !seen[e.Category] {
			seen[e.Category] = true
			out = append(out, e.Category)
		}
	}
	return out, nil
}

func (r *fakeExpenseRepo) TotalBetween(start, end time.Time) (float64, error) {
	var total float64
	for _, e := range r.expenses {
		if !e.Date.Before(start) && e.Date.Before(end) {
			total += e.Amount
		}
	}
	return total, nil
}

type fakeUserRepo struct {
	users map[string]*model.User
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*model.User)}
	for _, u := range users {
		cp := *u
		r.users[u.Email] = &cp
	}
	return r
}

func (r *fakeUserRepo) Create(user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	cp := *user
	r.users[user.Email] = &cp
	return nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, errNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByID(id uuid.UUID) (*model.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errNotFound
}

func (r *fakeUserRepo) Update(user *model.User) error {
	cp := *user
	r.users[user.Email] = &cp
	return nil
}
