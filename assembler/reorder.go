package assembler

import (
	"strings"

	"app/backend"
	"app/utils"
)

// Urgency is the backend-assigned priority bucket. Values outside the known
// set land in UrgencyOther so an unexpected backend value can never crash a
// renderer or skew a named bucket's count.
type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyHigh     Urgency = "high"
	UrgencyMedium   Urgency = "medium"
	UrgencyLow      Urgency = "low"
	UrgencyOther    Urgency = "other"
)

// ParseUrgency maps a raw backend value onto the closed enum.
func ParseUrgency(raw string) Urgency {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "critical":
		return UrgencyCritical
	case "high":
		return UrgencyHigh
	case "medium":
		return UrgencyMedium
	case "low":
		return UrgencyLow
	default:
		return UrgencyOther
	}
}

// Trend is the demand-direction indicator next to each reorder line.
type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = "neutral"
)

// TrendOf classifies a velocity change. Total over the whole range: positive
// is up, negative is down, zero or absent is neutral.
func TrendOf(velocityChangePct *float64) Trend {
	switch {
	case velocityChangePct == nil:
		return TrendNeutral
	case *velocityChangePct > 0:
		return TrendUp
	case *velocityChangePct < 0:
		return TrendDown
	default:
		return TrendNeutral
	}
}

// Line is one display row of the reorder board.
type Line struct {
	SKUID            string  `json:"sku_id"`
	SKUName          string  `json:"sku_name"`
	ReorderQty       int     `json:"reorder_qty"`
	Reason           string  `json:"reason"`
	Urgency          Urgency `json:"urgency"`
	Trend            Trend   `json:"trend"`
	VelocityLabel    string  `json:"velocity_label"`
	ForecastedDemand float64 `json:"forecasted_demand"`
	CurrentStock     int     `json:"current_stock"`
}

// Counts are the per-urgency bucket totals.
// Critical + High + Medium + Low + Other always equals Total.
type Counts struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
	Other    int `json:"other"`
	Total    int `json:"total"`
}

// Board is the assembled reorder view: the display list in backend order
// plus bucket counts. The backend owns priority ordering, so items are never
// re-sorted here.
type Board struct {
	Lines  []Line `json:"lines"`
	Counts Counts `json:"counts"`
}

// BuildBoard classifies and counts reorder items for display.
func BuildBoard(items []backend.ReorderItem) *Board {
	board := &Board{Lines: make([]Line, 0, len(items))}

	for _, item := range items {
		urgency := ParseUrgency(item.Urgency)
		switch urgency {
		case UrgencyCritical:
			board.Counts.Critical++
		case UrgencyHigh:
			board.Counts.High++
		case UrgencyMedium:
			board.Counts.Medium++
		case UrgencyLow:
			board.Counts.Low++
		default:
			board.Counts.Other++
		}
		board.Counts.Total++

		board.Lines = append(board.Lines, Line{
			SKUID:            item.SKUID,
			SKUName:          item.SKUName,
			ReorderQty:       item.ReorderQty,
			Reason:           item.Reason,
			Urgency:          urgency,
			Trend:            TrendOf(item.VelocityChangePct),
			VelocityLabel:    utils.FormatSignedPct(item.VelocityChangePct),
			ForecastedDemand: item.ForecastedDemand,
			CurrentStock:     item.CurrentStock,
		})
	}

	return board
}
