package models

import "time"

// CountRow is one group in a single-dimension count aggregation.
type CountRow struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// CrossCountRow is one group in a two-dimension cross-tabulation.
type CrossCountRow struct {
	Key    string `json:"key"`
	SubKey string `json:"sub_key"`
	Count  int    `json:"count"`
}

// TrendPoint is one month of the monthly trend series.
type TrendPoint struct {
	Month time.Time `json:"month"`
	Count int       `json:"count"`
}

// RateRow is one group of a boolean-rate aggregation; Rate is the mean of
// the boolean field over the group's rows, in [0, 1].
type RateRow struct {
	Key   string  `json:"key"`
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// HourCount is one bucket of the hour-of-day histogram.
type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// WeekdayCount is one bucket of the day-of-week histogram, ordered
// Monday-first.
type WeekdayCount struct {
	Weekday string `json:"weekday"`
	Count   int    `json:"count"`
}

// Summary holds the dashboard KPI metrics for a filtered dataset. Rate and
// share fields are nil when the underlying flag column is absent from the
// source, and the span fields are nil when no row has a parseable date.
type Summary struct {
	TotalIncidents int        `json:"total_incidents"`
	ArrestRate     *float64   `json:"arrest_rate,omitempty"`
	DomesticShare  *float64   `json:"domestic_share,omitempty"`
	FirstMonth     *time.Time `json:"first_month,omitempty"`
	LastMonth      *time.Time `json:"last_month,omitempty"`
}

// FilterOptions lists the distinct values available per filter dimension for
// the currently loaded years, plus the configured supported year range.
type FilterOptions struct {
	Years                []int    `json:"years"`
	PrimaryTypes         []string `json:"primary_types"`
	Districts            []string `json:"districts"`
	Wards                []string `json:"wards"`
	CommunityAreas       []string `json:"community_areas"`
	Beats                []string `json:"beats"`
	LocationDescriptions []string `json:"location_descriptions"`
}
