// Package importer merges parsed CSV rows into an existing product
// collection: header synonyms are resolved per field, missing
// cost/margin values are inferred from whichever of {cost, sale price,
// margin} are present, and SKU identity is kept stable so re-importing
// the same file is idempotent.
package importer

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/model"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/pricing"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/pkg/brnum"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/pkg/csvutil"
)

// Logical fields resolved from a CSV row.
type field int

const (
	fieldName field = iota
	fieldCategory
	fieldDescription
	fieldSKU
	fieldCost
	fieldSalePrice
	fieldMargin
	fieldImageURL
	fieldStock
)

// Accepted header spellings per field, compared after
// brnum.NormalizeKey on both sides. Kept as data so adding a synonym
// is a table edit, not a new conditional.
var headerSynonyms = map[field][]string{
	fieldName:        {"nome", "produto"},
	fieldCategory:    {"categoria"},
	fieldDescription: {"descricao", "descrição"},
	fieldSKU:         {"sku"},
	fieldCost:        {"preco_compra", "Preço de Compra", "custo", "Preço base"},
	fieldSalePrice:   {"Preço_venda", "preço de venda", "venda", "1kg"},
	fieldMargin:      {"margem", "lucro", "lucro %", "% lucro", "margem %"},
	fieldImageURL:    {"imagem_url", "imagem", "url imagem"},
	fieldStock:       {"emestoque", "em_estoque", "estoque"},
}

var normalizedSynonyms = buildLookup()

func buildLookup() map[field]map[string]bool {
	out := make(map[field]map[string]bool, len(headerSynonyms))
	for f, names := range headerSynonyms {
		set := make(map[string]bool, len(names))
		for _, n := range names {
			set[brnum.NormalizeKey(n)] = true
		}
		out[f] = set
	}
	return out
}

// resolve finds the value of a logical field in a record by
// case/diacritic-insensitive header matching. Headers are scanned in
// file column order so the first matching column wins when a file
// carries two synonyms of the same field. Empty values count as absent
// so defaults apply.
func resolve(rec csvutil.Record, f field) string {
	accepted := normalizedSynonyms[f]
	for _, header := range rec.Headers() {
		if accepted[brnum.NormalizeKey(header)] {
			if v := strings.TrimSpace(rec.Get(header)); v != "" {
				return v
			}
		}
	}
	return ""
}

// DeterministicID derives a product identifier from a SKU: lowercase,
// with everything outside [a-z0-9_-] stripped. Repeated imports of an
// unchanged file resolve to the same identifier.
func DeterministicID(sku string) string {
	var b strings.Builder
	b.WriteString("p-")
	for _, r := range sku {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		}
	}
	return b.String()
}

// Reconcile merges a freshly parsed CSV batch into the current catalog
// and returns the merged batch (new and updated products), applied per
// row in file order:
//
//   - margin absent or non-positive but cost and sale price positive:
//     margin = (sale/cost - 1) * 100, else default 35
//   - cost absent or non-positive but sale price and margin present:
//     cost = sale / (1 + margin/100)
//   - a row without an SKU value gets one synthesized from the import
//     timestamp and row index, so it is never silently dropped
//   - a resolved SKU already seen earlier in the same batch is dropped
//     (first occurrence wins)
//   - a resolved SKU matching an existing product keeps that product's
//     identifier, active flag and stock flag; imports never resurrect
//     a deactivated product
//
// SKU uniqueness is enforced here, at the reconciliation boundary; the
// caller persists the result with upsert-by-primary-key semantics.
func Reconcile(existing []model.Product, records []csvutil.Record, now time.Time) []model.Product {
	bySKU := make(map[string]*model.Product, len(existing))
	for i := range existing {
		bySKU[strings.TrimSpace(existing[i].SKU)] = &existing[i]
	}

	seen := make(map[string]bool, len(records))
	merged := make([]model.Product, 0, len(records))

	for i, rec := range records {
		name := resolve(rec, fieldName)
		if name == "" {
			name = "Sem nome"
		}

		cost := brnum.Parse(resolve(rec, fieldCost))
		sale := brnum.Parse(resolve(rec, fieldSalePrice))
		margin := brnum.ParsePercent(resolve(rec, fieldMargin))

		if (math.IsNaN(margin) || margin == 0) &&
			!math.IsNaN(cost) && cost > 0 && !math.IsNaN(sale) && sale > 0 {
			margin = (sale/cost - 1) * 100
		}
		if math.IsNaN(margin) || margin <= 0 {
			margin = pricing.DefaultMargin
		}
		if (math.IsNaN(cost) || cost <= 0) && !math.IsNaN(sale) {
			cost = sale / (1 + margin/100)
		}
		if math.IsNaN(cost) {
			cost = 0
		}

		sku := resolve(rec, fieldSKU)
		if sku == "" {
			sku = fmt.Sprintf("SKU-%d-%d", now.UnixMilli(), i)
		}
		if seen[sku] {
			continue
		}
		seen[sku] = true

		category := model.ProductCategory(resolve(rec, fieldCategory))
		if category == "" {
			category = model.CategoryCastanhas
		}

		inStock := true
		if v := resolve(rec, fieldStock); v != "" {
			inStock = !(v == "false" || v == "0")
		}

		p := model.Product{
			SKU:              sku,
			Name:             name,
			Category:         category,
			Description:      resolve(rec, fieldDescription),
			BaseCost:         cost,
			Prices:           pricing.RetailPrices(cost, margin),
			ImageURL:         resolve(rec, fieldImageURL),
			Unit:             "kg",
			AvailableWeights: pricing.RetailWeights,
			Margin:           &margin,
		}

		if prev, ok := bySKU[sku]; ok {
			p.ID = prev.ID
			p.Active = prev.Active
			p.InStock = prev.InStock
		} else {
			p.ID = DeterministicID(sku)
			p.Active = true
			p.InStock = inStock
		}

		merged = append(merged, p)
	}
	return merged
}
