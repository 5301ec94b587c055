package services

import (
	"slices"

	"sales-dashboard/internal/models"
	"sales-dashboard/internal/months"
)

// Aggregate derives the unfiltered summary of records. Product order is
// first appearance; month order is canonical. An empty input yields an
// empty summary with zero totals.
func Aggregate(records []models.SalesRecord) models.Summary {
	summary := models.Summary{
		Products:     []models.ProductAggregate{},
		ProductNames: []string{},
		MonthOrder:   []string{},
	}

	index := make(map[string]int)
	seenMonth := make(map[string]bool)

	for _, rec := range records {
		i, ok := index[rec.Product]
		if !ok {
			i = len(summary.Products)
			index[rec.Product] = i
			summary.Products = append(summary.Products, models.ProductAggregate{Product: rec.Product})
			summary.ProductNames = append(summary.ProductNames, rec.Product)
		}
		summary.Products[i].TotalUnits += rec.UnitsSold
		summary.Products[i].TotalRevenue += rec.Revenue

		if !seenMonth[rec.Month] {
			seenMonth[rec.Month] = true
			summary.MonthOrder = append(summary.MonthOrder, rec.Month)
		}

		summary.TotalUnits += rec.UnitsSold
		summary.TotalRevenue += rec.Revenue
		if rec.UnitsSold > summary.MaxUnitsSold {
			summary.MaxUnitsSold = rec.UnitsSold
		}
	}

	months.Sort(summary.MonthOrder)
	return summary
}

// MonthlyRevenue sums revenue per month over records, in canonical order.
// Months without records are omitted.
func MonthlyRevenue(records []models.SalesRecord) []models.MonthRevenue {
	totals := make(map[string]float64)
	order := make([]string, 0, 12)
	for _, rec := range records {
		if _, ok := totals[rec.Month]; !ok {
			order = append(order, rec.Month)
		}
		totals[rec.Month] += rec.Revenue
	}
	months.Sort(order)

	result := make([]models.MonthRevenue, 0, len(order))
	for _, m := range order {
		result = append(result, models.MonthRevenue{Month: m, TotalRevenue: totals[m]})
	}
	return result
}

// Filter narrows the dataset to the selected product. An empty selection is
// the identity. A selection naming an absent product yields an empty
// projection. Neither records nor products are modified.
func Filter(records []models.SalesRecord, summary models.Summary, selected string) models.Filtered {
	if selected == "" {
		return models.Filtered{
			Records:        records,
			Products:       summary.Products,
			TotalUnits:     summary.TotalUnits,
			TotalRevenue:   summary.TotalRevenue,
			MonthsWithData: len(summary.MonthOrder),
			MonthRevenue:   MonthlyRevenue(records),
		}
	}

	filtered := models.Filtered{
		Selected: selected,
		Records:  []models.SalesRecord{},
		Products: []models.ProductAggregate{},
	}
	for _, rec := range records {
		if rec.Product == selected {
			filtered.Records = append(filtered.Records, rec)
		}
	}
	if i := slices.IndexFunc(summary.Products, func(p models.ProductAggregate) bool {
		return p.Product == selected
	}); i >= 0 {
		p := summary.Products[i]
		filtered.Products = append(filtered.Products, p)
		filtered.TotalUnits = p.TotalUnits
		filtered.TotalRevenue = p.TotalRevenue
	}

	seen := make(map[string]bool)
	for _, rec := range filtered.Records {
		seen[rec.Month] = true
	}
	filtered.MonthsWithData = len(seen)
	filtered.MonthRevenue = MonthlyRevenue(filtered.Records)
	return filtered
}

// TopProduct returns the best-selling product by total units. Ties go to
// the product seen first; an empty list yields "N/A".
func TopProduct(products []models.ProductAggregate) (string, float64) {
	if len(products) == 0 {
		return "N/A", 0
	}
	best := products[0]
	for _, p := range products[1:] {
		if p.TotalUnits > best.TotalUnits {
			best = p
		}
	}
	return best.Product, best.TotalUnits
}

// ProductTotals returns the aggregate for product, or a zero aggregate when
// the product is absent.
func ProductTotals(products []models.ProductAggregate, product string) models.ProductAggregate {
	for _, p := range products {
		if p.Product == product {
			return p
		}
	}
	return models.ProductAggregate{Product: product}
}
