package assembler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"app/backend"
)

func velocity(v float64) *float64 { return &v }

func TestBuildBoardCountsSumToTotal(t *testing.T) {
	items := []backend.ReorderItem{
		{SKUID: "A", Urgency: "critical"},
		{SKUID: "B", Urgency: "critical"},
		{SKUID: "C", Urgency: "high"},
		{SKUID: "D", Urgency: "medium"},
		{SKUID: "E", Urgency: "low"},
		{SKUID: "F", Urgency: "URGENT!!"},
		{SKUID: "G", Urgency: ""},
	}

	board := BuildBoard(items)

	assert.Equal(t, 2, board.Counts.Critical)
	assert.Equal(t, 1, board.Counts.High)
	assert.Equal(t, 1, board.Counts.Medium)
	assert.Equal(t, 1, board.Counts.Low)
	assert.Equal(t, 2, board.Counts.Other)
	assert.Equal(t, 7, board.Counts.Total)
	assert.Equal(t,
		board.Counts.Critical+board.Counts.High+board.Counts.Medium+board.Counts.Low+board.Counts.Other,
		board.Counts.Total)
}

func TestBuildBoardEmptyList(t *testing.T) {
	board := BuildBoard(nil)

	assert.Empty(t, board.Lines)
	assert.Zero(t, board.Counts.Total)
	assert.Zero(t, board.Counts.Critical+board.Counts.High+board.Counts.Medium+board.Counts.Low+board.Counts.Other)
}

func TestBuildBoardKeepsBackendOrder(t *testing.T) {
	items := []backend.ReorderItem{
		{SKUID: "LOW-FIRST", Urgency: "low"},
		{SKUID: "CRIT-SECOND", Urgency: "critical"},
	}

	board := BuildBoard(items)

	require.Len(t, board.Lines, 2)
	assert.Equal(t, "LOW-FIRST", board.Lines[0].SKUID)
	assert.Equal(t, "CRIT-SECOND", board.Lines[1].SKUID)
}

func TestParseUrgencyCaseInsensitive(t *testing.T) {
	assert.Equal(t, UrgencyCritical, ParseUrgency("Critical"))
	assert.Equal(t, UrgencyHigh, ParseUrgency(" HIGH "))
	assert.Equal(t, UrgencyOther, ParseUrgency("panic-now"))
	assert.Equal(t, UrgencyOther, ParseUrgency(""))
}

func TestTrendOfIsTotal(t *testing.T) {
	assert.Equal(t, TrendUp, TrendOf(velocity(5)))
	assert.Equal(t, TrendUp, TrendOf(velocity(0.0001)))
	assert.Equal(t, TrendDown, TrendOf(velocity(-3)))
	assert.Equal(t, TrendDown, TrendOf(velocity(-1000)))
	assert.Equal(t, TrendNeutral, TrendOf(velocity(0)))
	assert.Equal(t, TrendNeutral, TrendOf(nil))
}

func TestBuildBoardVelocityLabels(t *testing.T) {
	items := []backend.ReorderItem{
		{SKUID: "A", Urgency: "high", VelocityChangePct: velocity(40)},
		{SKUID: "B", Urgency: "low", VelocityChangePct: velocity(-12.5)},
		{SKUID: "C", Urgency: "medium"},
	}

	board := BuildBoard(items)

	assert.Equal(t, TrendUp, board.Lines[0].Trend)
	assert.Equal(t, "+40.0%", board.Lines[0].VelocityLabel)
	assert.Equal(t, TrendDown, board.Lines[1].Trend)
	assert.Equal(t, "-12.5%", board.Lines[1].VelocityLabel)
	assert.Equal(t, TrendNeutral, board.Lines[2].Trend)
	assert.Equal(t, "--", board.Lines[2].VelocityLabel)
}
