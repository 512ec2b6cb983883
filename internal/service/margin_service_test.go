package service

import (
	"errors"
	"math"
	"testing"

	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/auth"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/model"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/pricing"
)

func testSession() auth.Session {
	return auth.Session{Email: "admin@example.com", Name: "Admin"}
}

func testProduct(id, sku string, cost, margin float64) *model.Product {
	p := &model.Product{
		ID:       id,
		SKU:      sku,
		Name:     "Castanha de Caju",
		Category: model.CategoryCastanhas,
		BaseCost: cost,
		Unit:     "kg",
		Active:   true,
		InStock:  true,
	}
	p.Reprice(margin)
	return p
}

func newTestMarginService(products ...*model.Product) (*marginService, *fakeProductRepo, *fakeHistoryRepo) {
	productRepo := newFakeProductRepo(products...)
	historyRepo := &fakeHistoryRepo{}
	svc := NewMarginService(productRepo, newFakeRetailMarginRepo(), newFakeWholesaleMarginRepo(), historyRepo, nil)
	return svc.(*marginService), productRepo, historyRepo
}

func TestSaveRetailRecomputesPricesAndAppendsHistory(t *testing.T) {
	svc, productRepo, historyRepo := newTestMarginService(testProduct("p-caju01", "CAJU01", 80, 35))

	row, err := svc.SaveRetail(testSession(), "p-caju01", 40)
	if err != nil {
		t.Fatalf("SaveRetail: %v", err)
	}
	if row.Margin != 40 {
		t.Errorf("row margin = %v, want 40", row.Margin)
	}
	if got := row.Prices[pricing.Weight1kg]; math.Abs(got-112) > 1e-9 {
		t.Errorf("1kg price = %v, want 112", got)
	}

	stored, _ := productRepo.FindByID("p-caju01")
	if got := stored.Prices[pricing.Weight500g]; math.Abs(got-56) > 1e-9 {
		t.Errorf("stored 500g price = %v, want 56", got)
	}

	if len(historyRepo.entries) != 1 {
		t.Fatalf("history entries = %d, want 1", len(historyRepo.entries))
	}
	entry := historyRepo.entries[0]
	if entry.Action != model.ActionMarginChanged {
		t.Errorf("action = %q, want %q", entry.Action, model.ActionMarginChanged)
	}
	if entry.SKU != "CAJU01" {
		t.Errorf("sku = %q, want CAJU01", entry.SKU)
	}
	if entry.User != "Admin" {
		t.Errorf("user = %q, want Admin", entry.User)
	}
	if entry.OldValue == nil || *entry.OldValue != 35 {
		t.Errorf("old value = %v, want 35", entry.OldValue)
	}
	if entry.NewValue == nil || *entry.NewValue != 40 {
		t.Errorf("new value = %v, want 40", entry.NewValue)
	}
}

func TestSaveRetailRejectsInvalidMarginWithoutMutating(t *testing.T) {
	tests := []struct {
		name    string
		margin  float64
		wantErr error
	}{
		{"nan", math.NaN(), pricing.ErrMarginNaN},
		{"negative", -5, pricing.ErrMarginNegative},
		{"too large", 1500, pricing.ErrMarginTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, productRepo, historyRepo := newTestMarginService(testProduct("p-caju01", "CAJU01", 80, 35))

			_, err := svc.SaveRetail(testSession(), "p-caju01", tt.margin)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}

			stored, _ := productRepo.FindByID("p-caju01")
			if stored.EffectiveMargin() != 35 {
				t.Errorf("margin mutated to %v on rejected save", stored.EffectiveMargin())
			}
			if got := stored.Prices[pricing.Weight1kg]; math.Abs(got-108) > 1e-9 {
				t.Errorf("price mutated to %v on rejected save", got)
			}
			if len(historyRepo.entries) != 0 {
				t.Errorf("history appended on rejected save")
			}
		})
	}
}

func TestSaveRetailUnknownProduct(t *testing.T) {
	svc, _, _ := newTestMarginService()
	if _, err := svc.SaveRetail(testSession(), "p-nope", 40); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("err = %v, want ErrProductNotFound", err)
	}
}

func TestApplyRetailGlobalWritesOneHistoryEntryPerProduct(t *testing.T) {
	svc, productRepo, historyRepo := newTestMarginService(
		testProduct("p-caju01", "CAJU01", 80, 35),
		testProduct("p-amendoa", "AMENDOA", 60, 20),
		testProduct("p-nozes", "NOZES", 90, 50),
	)

	count, err := svc.ApplyRetailGlobal(testSession(), 45)
	if err != nil {
		t.Fatalf("ApplyRetailGlobal: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}

	products, _ := productRepo.FindAll()
	for _, p := range products {
		if p.EffectiveMargin() != 45 {
			t.Errorf("%s margin = %v, want 45", p.SKU, p.EffectiveMargin())
		}
	}

	if len(historyRepo.entries) != 3 {
		t.Fatalf("history entries = %d, want 3", len(historyRepo.entries))
	}
	seen := make(map[string]bool)
	for _, e := range historyRepo.entries {
		if e.Action != model.ActionGlobalMarginApplied {
			t.Errorf("action = %q, want %q", e.Action, model.ActionGlobalMarginApplied)
		}
		seen[e.SKU] = true
	}
	for _, sku := range []string{"CAJU01", "AMENDOA", "NOZES"} {
		if !seen[sku] {
			t.Errorf("no history entry for %s", sku)
		}
	}
}

func TestApplyRetailGlobalInvalidMarginTouchesNothing(t *testing.T) {
	svc, productRepo, historyRepo := newTestMarginService(testProduct("p-caju01", "CAJU01", 80, 35))

	if _, err := svc.ApplyRetailGlobal(testSession(), -1); !errors.Is(err, pricing.ErrMarginNegative) {
		t.Fatalf("err = %v, want ErrMarginNegative", err)
	}
	stored, _ := productRepo.FindByID("p-caju01")
	if stored.EffectiveMargin() != 35 {
		t.Errorf("margin mutated on rejected global apply")
	}
	if len(historyRepo.entries) != 0 {
		t.Errorf("history appended on rejected global apply")
	}
}

func TestListWholesaleUsesDefaultsWhenNothingStored(t *testing.T) {
	svc, _, _ := newTestMarginService(testProduct("p-caju01", "CAJU01", 80, 35))

	rows, err := svc.ListWholesale()
	if err != nil {
		t.Fatalf("ListWholesale: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	row := rows[0]
	if row.Margin3kg != 25 || row.Margin5kg != 22 || row.Margin10kg != 18 {
		t.Errorf("default margins = %v/%v/%v, want 25/22/18", row.Margin3kg, row.Margin5kg, row.Margin10kg)
	}
	// 80 * 3 * 1.25 = 300
	if math.Abs(row.Price3kg-300) > 1e-9 {
		t.Errorf("3kg price = %v, want 300", row.Price3kg)
	}
	// 80 * 10 * 1.18 = 944
	if math.Abs(row.Price10kg-944) > 1e-9 {
		t.Errorf("10kg price = %v, want 944", row.Price10kg)
	}
}

func TestSaveWholesaleUpdatesOneTierAndLogsOldDefault(t *testing.T) {
	svc, _, historyRepo := newTestMarginService(testProduct("p-caju01", "CAJU01", 80, 35))

	row, err := svc.SaveWholesale(testSession(), "p-caju01", pricing.Bulk5kg, 30)
	if err != nil {
		t.Fatalf("SaveWholesale: %v", err)
	}
	if row.Margin5kg != 30 {
		t.Errorf("5kg margin = %v, want 30", row.Margin5kg)
	}
	if row.Margin3kg != 25 || row.Margin10kg != 18 {
		t.Errorf("other tiers changed: %v/%v", row.Margin3kg, row.Margin10kg)
	}

	if len(historyRepo.entries) != 1 {
		t.Fatalf("history entries = %d, want 1", len(historyRepo.entries))
	}
	entry := historyRepo.entries[0]
	if entry.Action != model.ActionWholesaleChanged {
		t.Errorf("action = %q", entry.Action)
	}
	if entry.OldValue == nil || *entry.OldValue != 22 {
		t.Errorf("old value = %v, want default 22", entry.OldValue)
	}
}

func TestApplyWholesaleGlobalValidatesAllTiersUpFront(t *testing.T) {
	svc, _, historyRepo := newTestMarginService(testProduct("p-caju01", "CAJU01", 80, 35))

	if _, err := svc.ApplyWholesaleGlobal(testSession(), 25, -3, 18); !errors.Is(err, pricing.ErrMarginNegative) {
		t.Fatalf("err = %v, want ErrMarginNegative", err)
	}
	if len(historyRepo.entries) != 0 {
		t.Errorf("history appended on rejected apply")
	}

	count, err := svc.ApplyWholesaleGlobal(testSession(), 28, 24, 20)
	if err != nil {
		t.Fatalf("ApplyWholesaleGlobal: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
	rows, _ := svc.ListWholesale()
	if rows[0].Margin3kg != 28 || rows[0].Margin5kg != 24 || rows[0].Margin10kg != 20 {
		t.Errorf("margins = %v/%v/%v, want 28/24/20", rows[0].Margin3kg, rows[0].Margin5kg, rows[0].Margin10kg)
	}
}
