package views

import (
	"fmt"
	"strings"

	"sales-dashboard/internal/format"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/scale"
	"sales-dashboard/internal/services"
)

// NeutralAccent colors the KPI values when nothing is selected.
const NeutralAccent = "#007bff"

// KPIs projects the filtered totals and the selection into the four summary
// cards. Cards are rebuilt from scratch on every render.
func KPIs(summary models.Summary, filtered models.Filtered, colors *scale.Ordinal) []models.KPI {
	selected := filtered.Selected
	upper := strings.ToUpper(selected)

	accent := NeutralAccent
	if selected != "" {
		accent = colors.Color(selected)
	}

	months := max(filtered.MonthsWithData, 1)
	average := filtered.TotalRevenue / float64(months)

	var topName string
	var topUnits float64
	topAccent := accent
	if selected != "" {
		topName = selected
		topUnits = services.ProductTotals(summary.Products, selected).TotalUnits
	} else {
		topName, topUnits = services.TopProduct(summary.Products)
		if len(summary.Products) > 0 {
			topAccent = colors.Color(topName)
		}
	}

	pick := func(general, product string) string {
		if selected == "" {
			return general
		}
		return product
	}

	return []models.KPI{
		{
			ID:     "total",
			Label:  pick("VENTA TOTAL GENERAL", fmt.Sprintf("VENTA TOTAL (%s)", upper)),
			Value:  format.Units(filtered.TotalUnits),
			Class:  "kpi-total",
			Accent: accent,
		},
		{
			ID:     "ingresosTotal",
			Label:  pick("INGRESOS TOTALES GENERALES", fmt.Sprintf("INGRESOS TOTALES (%s)", upper)),
			Value:  format.Currency(filtered.TotalRevenue),
			Class:  "kpi-ingresos-total",
			Accent: accent,
		},
		{
			ID:     "avgIngreso",
			Label:  pick("INGRESO PROMEDIO MENSUAL GENERAL", "PROMEDIO DE INGRESO MENSUAL DE "+upper),
			Value:  format.CurrencyCents(average),
			Class:  "kpi-ingreso-average",
			Accent: accent,
		},
		{
			ID:     "top",
			Label:  pick("PRODUCTO TOP", "PRODUCTO SELECCIONADO"),
			Value:  fmt.Sprintf("%s (%s)", topName, format.Units(topUnits)),
			Class:  "kpi-top",
			Accent: topAccent,
		},
	}
}

// ChartFailedMessage replaces the revenue chart when it could not be drawn.
const ChartFailedMessage = "No se pudo dibujar el gráfico de Ingresos."

// ErrorMessage is the inline message shown in container when a render pass
// fails. noData selects the wording for an empty dataset.
func ErrorMessage(container string, noData bool) string {
	if !noData {
		if container == KPIContainer {
			return "Error crítico al cargar los datos JSON."
		}
		return "Error crítico al cargar los datos."
	}
	switch container {
	case KPIContainer:
		return "Error al cargar los datos."
	case BarContainer:
		return "No hay datos para el gráfico de barras."
	case BubbleContainer:
		return "No hay datos para el gráfico de burbujas."
	case DonutContainer:
		return "No hay datos para el gráfico de anillo."
	case ChartContainer:
		return "No hay datos para el gráfico de Ingresos."
	}
	return "No hay datos."
}
