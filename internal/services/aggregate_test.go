package services

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"sales-dashboard/internal/models"
)

func scenarioRecords() []models.SalesRecord {
	return []models.SalesRecord{
		{Product: "A", Month: "Enero", UnitsSold: 10, Revenue: 100},
		{Product: "B", Month: "Enero", UnitsSold: 20, Revenue: 50},
	}
}

func TestAggregate_Scenario(t *testing.T) {
	summary := Aggregate(scenarioRecords())

	want := []models.ProductAggregate{
		{Product: "A", TotalUnits: 10, TotalRevenue: 100},
		{Product: "B", TotalUnits: 20, TotalRevenue: 50},
	}
	if diff := cmp.Diff(want, summary.Products); diff != "" {
		t.Errorf("products mismatch (-want +got):\n%s", diff)
	}
	if summary.TotalUnits != 30 || summary.TotalRevenue != 150 {
		t.Errorf("totals = (%v, %v), want (30, 150)", summary.TotalUnits, summary.TotalRevenue)
	}
	if name, units := TopProduct(summary.Products); name != "B" || units != 20 {
		t.Errorf("TopProduct() = (%q, %v), want (B, 20)", name, units)
	}
}

func TestAggregate_OrderAndMonths(t *testing.T) {
	records := []models.SalesRecord{
		{Product: "Teclado", Month: "Marzo", UnitsSold: 1},
		{Product: "Mouse", Month: "Enero", UnitsSold: 7},
		{Product: "Teclado", Month: "Febrero", UnitsSold: 3},
		{Product: "Monitor", Month: "Enero", UnitsSold: 2},
	}

	summary := Aggregate(records)

	if diff := cmp.Diff([]string{"Teclado", "Mouse", "Monitor"}, summary.ProductNames); diff != "" {
		t.Errorf("product order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Enero", "Febrero", "Marzo"}, summary.MonthOrder); diff != "" {
		t.Errorf("month order mismatch (-want +got):\n%s", diff)
	}
	if summary.MaxUnitsSold != 7 {
		t.Errorf("MaxUnitsSold = %v, want 7", summary.MaxUnitsSold)
	}
}

func TestAggregate_Empty(t *testing.T) {
	summary := Aggregate(nil)

	if len(summary.Products) != 0 || len(summary.MonthOrder) != 0 {
		t.Errorf("empty input should give empty aggregates: %+v", summary)
	}
	if summary.TotalUnits != 0 || summary.TotalRevenue != 0 {
		t.Error("empty input should give zero totals")
	}
	if name, _ := TopProduct(summary.Products); name != "N/A" {
		t.Errorf("TopProduct(empty) = %q, want N/A", name)
	}
}

func TestAggregate_Conservation(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	products := []string{"A", "B", "C", "D", "E"}
	monthNames := []string{"Enero", "Febrero", "Marzo", "Abril"}

	for trial := 0; trial < 50; trial++ {
		n := rng.Intn(40)
		records := make([]models.SalesRecord, n)
		var units, revenue float64
		for i := range records {
			records[i] = models.SalesRecord{
				Product:   products[rng.Intn(len(products))],
				Month:     monthNames[rng.Intn(len(monthNames))],
				UnitsSold: float64(rng.Intn(500)),
				Revenue:   float64(rng.Intn(100000)),
			}
			units += records[i].UnitsSold
			revenue += records[i].Revenue
		}

		summary := Aggregate(records)
		var gotUnits, gotRevenue float64
		for _, p := range summary.Products {
			gotUnits += p.TotalUnits
			gotRevenue += p.TotalRevenue
		}
		if gotUnits != units || gotRevenue != revenue {
			t.Fatalf("trial %d: sums (%v, %v) != record sums (%v, %v)", trial, gotUnits, gotRevenue, units, revenue)
		}
		if summary.TotalUnits != units || summary.TotalRevenue != revenue {
			t.Fatalf("trial %d: totals disagree with record sums", trial)
		}
	}
}

func TestFilter(t *testing.T) {
	records := append(scenarioRecords(),
		models.SalesRecord{Product: "A", Month: "Febrero", UnitsSold: 4, Revenue: 40},
	)
	summary := Aggregate(records)

	t.Run("no selection is identity", func(t *testing.T) {
		f := Filter(records, summary, "")
		if len(f.Records) != len(records) || len(f.Products) != 2 {
			t.Errorf("identity filter narrowed the data: %+v", f)
		}
		if f.TotalUnits != 34 || f.MonthsWithData != 2 {
			t.Errorf("totals = %v units over %d months", f.TotalUnits, f.MonthsWithData)
		}
	})

	t.Run("selected product", func(t *testing.T) {
		f := Filter(records, summary, "A")
		if len(f.Records) != 2 || len(f.Products) != 1 {
			t.Fatalf("filtered = %d records, %d products", len(f.Records), len(f.Products))
		}
		if f.TotalUnits != 14 || f.TotalRevenue != 140 {
			t.Errorf("filtered totals = (%v, %v)", f.TotalUnits, f.TotalRevenue)
		}
		want := []models.MonthRevenue{{Month: "Enero", TotalRevenue: 100}, {Month: "Febrero", TotalRevenue: 40}}
		if diff := cmp.Diff(want, f.MonthRevenue); diff != "" {
			t.Errorf("month revenue mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("absent product is empty not an error", func(t *testing.T) {
		f := Filter(records, summary, "Z")
		if len(f.Records) != 0 || len(f.Products) != 0 || f.MonthsWithData != 0 {
			t.Errorf("absent selection should be empty: %+v", f)
		}
	})

	t.Run("does not mutate the summary", func(t *testing.T) {
		before := Aggregate(records)
		Filter(records, summary, "B")
		if diff := cmp.Diff(before, summary); diff != "" {
			t.Errorf("summary changed (-before +after):\n%s", diff)
		}
	})
}

func TestMonthlyRevenue_CanonicalOrder(t *testing.T) {
	records := []models.SalesRecord{
		{Month: "Diciembre", Revenue: 5},
		{Month: "Enero", Revenue: 1},
		{Month: "Diciembre", Revenue: 5},
	}
	want := []models.MonthRevenue{{Month: "Enero", TotalRevenue: 1}, {Month: "Diciembre", TotalRevenue: 10}}
	if diff := cmp.Diff(want, MonthlyRevenue(records)); diff != "" {
		t.Errorf("MonthlyRevenue mismatch (-want +got):\n%s", diff)
	}
}

func BenchmarkAggregate(b *testing.B) {
	records := make([]models.SalesRecord, 1200)
	for i := range records {
		records[i] = models.SalesRecord{
			Product:   string(rune('A' + i%9)),
			Month:     "Enero",
			UnitsSold: float64(i),
			Revenue:   float64(i) * 3,
		}
	}

	b.ResetTimer()
	for b.Loop() {
		_ = Aggregate(records)
	}
}
