package assembler

import "app/backend"

// Series is one SKU's chart-ready forecast: parallel slices of equal length,
// aligned by index. Dates are the x axis, Predicted the line, Lower/Upper
// the confidence band.
type Series struct {
	SKUID     string    `json:"sku_id"`
	SKUName   string    `json:"sku_name"`
	ModelUsed string    `json:"model_used"`
	Dates     []string  `json:"dates"`
	Predicted []float64 `json:"predicted"`
	Lower     []float64 `json:"lower"`
	Upper     []float64 `json:"upper"`
}

// Chart is the assembled forecast view for one store and horizon.
//
// Labels are taken from the first series in insertion order. All SKUs in one
// backend response share the same date set and ordering, so this is a display
// approximation, not a correctness guarantee.
type Chart struct {
	Order          []string           `json:"order"`
	Series         map[string]*Series `json:"series"`
	Labels         []string           `json:"labels"`
	TotalPredicted float64            `json:"total_predicted"`
	AvgDailyDemand float64            `json:"avg_daily_demand"`
}

// BuildChart groups flat forecast points into one series per SKU. SKUs keep
// first-seen order and points keep the order the backend returned them in;
// the backend already sorts by forecast date. An empty input yields an empty
// chart, not an error.
func BuildChart(points []backend.ForecastPoint, horizon int) *Chart {
	chart := &Chart{
		Order:  []string{},
		Series: map[string]*Series{},
		Labels: []string{},
	}

	for _, p := range points {
		series, ok := chart.Series[p.SKUID]
		if !ok {
			series = &Series{
				SKUID:     p.SKUID,
				SKUName:   p.SKUName,
				ModelUsed: p.ModelUsed,
			}
			chart.Series[p.SKUID] = series
			chart.Order = append(chart.Order, p.SKUID)
		}

		series.Dates = append(series.Dates, p.ForecastDate)
		series.Predicted = append(series.Predicted, p.PredictedUnits)
		// Missing bounds collapse onto the prediction so the band stays drawable.
		series.Lower = append(series.Lower, boundOr(p.ConfidenceLower, p.PredictedUnits))
		series.Upper = append(series.Upper, boundOr(p.ConfidenceUpper, p.PredictedUnits))

		chart.TotalPredicted += p.PredictedUnits
	}

	if len(chart.Order) > 0 {
		chart.Labels = chart.Series[chart.Order[0]].Dates
	}
	// A zero horizon is a caller-contract violation; degrade to zero instead
	// of dividing by it.
	if horizon > 0 {
		chart.AvgDailyDemand = chart.TotalPredicted / float64(horizon)
	}

	return chart
}

func boundOr(v *float64, fallback float64) float64 {
	if v != nil {
		return *v
	}
	return fallback
}
