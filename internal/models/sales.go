package models

// SalesRecord is one row of the monthly product dataset after numeric
// coercion.
type SalesRecord struct {
	Month     string  `json:"month"`
	Product   string  `json:"product"`
	UnitsSold float64 `json:"units_sold"`
	Revenue   float64 `json:"revenue"`
}

// ProductAggregate is always computed over the full, unfiltered dataset.
type ProductAggregate struct {
	Product      string  `json:"product"`
	TotalUnits   float64 `json:"total_units"`
	TotalRevenue float64 `json:"total_revenue"`
}

type MonthRevenue struct {
	Month        string  `json:"month"`
	TotalRevenue float64 `json:"total_revenue"`
}

// Summary holds everything derived from the unfiltered record set.
type Summary struct {
	Products     []ProductAggregate `json:"products"`
	ProductNames []string           `json:"product_names"`
	MonthOrder   []string           `json:"month_order"`
	TotalUnits   float64            `json:"total_units"`
	TotalRevenue float64            `json:"total_revenue"`
	MaxUnitsSold float64            `json:"max_units_sold"`
}

// Filtered is the projection of the dataset implied by the current
// selection. With no selection it is the identity projection.
type Filtered struct {
	Selected       string             `json:"selected,omitempty"`
	Records        []SalesRecord      `json:"-"`
	Products       []ProductAggregate `json:"products"`
	TotalUnits     float64            `json:"total_units"`
	TotalRevenue   float64            `json:"total_revenue"`
	MonthsWithData int                `json:"months_with_data"`
	MonthRevenue   []MonthRevenue     `json:"month_revenue"`
}

type KPI struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Value  string `json:"value"`
	Class  string `json:"class"`
	Accent string `json:"accent"`
}
