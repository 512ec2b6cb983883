package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/pricing"
)

func TestCatalogOnlyShowsActiveProducts(t *testing.T) {
	visible := testProduct("p-caju01", "CAJU01", 80, 35)
	hidden := testProduct("p-nozes", "NOZES", 90, 35)
	hidden.Active = false

	svc := NewStorefrontService(newFakeProductRepo(visible, hidden), newFakeSaleRepo())

	products, err := svc.Catalog(context.Background())
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("products = %d, want 1", len(products))
	}
	if products[0].SKU != "CAJU01" {
		t.Errorf("sku = %q, want CAJU01", products[0].SKU)
	}
}

func TestCheckoutPricesCartServerSide(t *testing.T) {
	// 80/kg at 35%: 1kg = 108, 500g = 54, 200g = 21.60
	product := testProduct("p-caju01", "CAJU01", 80, 35)
	saleRepo := newFakeSaleRepo()
	svc := NewStorefrontService(newFakeProductRepo(product), saleRepo)

	result, err := svc.Checkout(context.Background(), &CheckoutRequest{
		Items: []CheckoutItem{
			{ProductID: "p-caju01", Weight: string(pricing.Weight1kg), Quantity: 2},
			{ProductID: "p-caju01", Weight: string(pricing.Weight200g), Quantity: 1},
		},
		PaymentMethod: "credit",
		Installments:  3,
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	if math.Abs(result.Total-237.60) > 1e-9 {
		t.Errorf("total = %v, want 237.60", result.Total)
	}
	if result.Note != "credit 3x" {
		t.Errorf("note = %q, want \"credit 3x\"", result.Note)
	}
	if result.TotalFormatted != "R$ 237,60" {
		t.Errorf("formatted total = %q, want R$ 237,60", result.TotalFormatted)
	}

	sales, _ := saleRepo.FindAll()
	if len(sales) != 1 {
		t.Fatalf("sales = %d, want 1", len(sales))
	}
	if string(sales[0].Source) != "loja" {
		t.Errorf("source = %q, want loja", sales[0].Source)
	}
	if sales[0].CustomerID != nil {
		t.Errorf("storefront sale should have no customer")
	}
}

func TestCheckoutPixNoteIgnoresInstallments(t *testing.T) {
	product := testProduct("p-caju01", "CAJU01", 80, 35)
	svc := NewStorefrontService(newFakeProductRepo(product), newFakeSaleRepo())

	result, err := svc.Checkout(context.Background(), &CheckoutRequest{
		Items:         []CheckoutItem{{ProductID: "p-caju01", Weight: string(pricing.Weight1kg), Quantity: 1}},
		PaymentMethod: "pix",
		Installments:  3,
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if result.Note != "pix" {
		t.Errorf("note = %q, want pix", result.Note)
	}
}

func TestCheckoutRejectsUnavailableProduct(t *testing.T) {
	outOfStock := testProduct("p-caju01", "CAJU01", 80, 35)
	outOfStock.InStock = false
	inactive := testProduct("p-nozes", "NOZES", 90, 35)
	inactive.Active = false

	svc := NewStorefrontService(newFakeProductRepo(outOfStock, inactive), newFakeSaleRepo())

	for _, id := range []string{"p-caju01", "p-nozes", "p-missing"} {
		_, err := svc.Checkout(context.Background(), &CheckoutRequest{
			Items:         []CheckoutItem{{ProductID: id, Weight: string(pricing.Weight1kg), Quantity: 1}},
			PaymentMethod: "pix",
		})
		if !errors.Is(err, ErrProductUnavailable) {
			t.Errorf("%s: err = %v, want ErrProductUnavailable", id, err)
		}
	}
}

func TestCheckoutRejectsUnknownWeight(t *testing.T) {
	product := testProduct("p-caju01", "CAJU01", 80, 35)
	svc := NewStorefrontService(newFakeProductRepo(product), newFakeSaleRepo())

	_, err := svc.Checkout(context.Background(), &CheckoutRequest{
		Items:         []CheckoutItem{{ProductID: "p-caju01", Weight: "3kg", Quantity: 1}},
		PaymentMethod: "pix",
	})
	if !errors.Is(err, ErrUnknownWeight) {
		t.Fatalf("err = %v, want ErrUnknownWeight", err)
	}
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	svc := NewStorefrontService(newFakeProductRepo(), newFakeSaleRepo())

	_, err := svc.Checkout(context.Background(), &CheckoutRequest{PaymentMethod: "pix"})
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("err = %v, want ErrEmptyCart", err)
	}
}
