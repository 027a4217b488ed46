package query

import (
	"sort"
	"time"

	"github.com/citypulse/crimes-backend-go/internal/dataset"
	"github.com/citypulse/crimes-backend-go/internal/models"
)

// weekdayOrder fixes the Monday-first presentation order of the day-of-week
// histogram.
var weekdayOrder = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// CountBy groups the table by one categorical column and counts rows per
// group, ordered by descending count. Ties keep first-encounter order
// (stable sort). topN > 0 truncates the result; rows with a missing value
// in the column are excluded. An absent column yields an empty result.
func CountBy(t *dataset.Table, col string, topN int) []models.CountRow {
	i, ok := t.ColumnIndex(col)
	if !ok {
		return nil
	}

	counts := make(map[string]int)
	var order []string
	for r := 0; r < t.NumRows(); r++ {
		v := t.Row(r)[i]
		if v.IsMissing() {
			continue
		}
		key := v.String()
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	rows := make([]models.CountRow, 0, len(order))
	for _, key := range order {
		rows = append(rows, models.CountRow{Key: key, Count: counts[key]})
	}
	sort.SliceStable(rows, func(a, b int) bool { return rows[a].Count > rows[b].Count })
	if topN > 0 && len(rows) > topN {
		rows = rows[:topN]
	}
	return rows
}

// CountByMonth groups by the derived YearMonth column and counts rows per
// month, ascending in time. The series is sparse: months with zero incidents
// are not materialized, matching the dashboard's trend chart input.
func CountByMonth(t *dataset.Table) []models.TrendPoint {
	i, ok := t.ColumnIndex(models.ColYearMonth)
	if !ok {
		return nil
	}

	counts := make(map[int64]int)
	months := make(map[int64]time.Time)
	for r := 0; r < t.NumRows(); r++ {
		ts, ok := t.Row(r)[i].AsTime()
		if !ok {
			continue
		}
		k := ts.Unix()
		counts[k]++
		months[k] = ts
	}

	keys := make([]int64, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool { return keys[a] < keys[b] })

	points := make([]models.TrendPoint, 0, len(keys))
	for _, k := range keys {
		points = append(points, models.TrendPoint{Month: months[k], Count: counts[k]})
	}
	return points
}

// CountByCross produces a two-level cross-tabulation (e.g. primary type ×
// location description), ordered by descending count with stable
// first-encounter tie-break. Rows missing either dimension are excluded.
func CountByCross(t *dataset.Table, col1, col2 string, topN int) []models.CrossCountRow {
	i1, ok1 := t.ColumnIndex(col1)
	i2, ok2 := t.ColumnIndex(col2)
	if !ok1 || !ok2 {
		return nil
	}

	type pair struct{ a, b string }
	counts := make(map[pair]int)
	var order []pair
	for r := 0; r < t.NumRows(); r++ {
		row := t.Row(r)
		if row[i1].IsMissing() || row[i2].IsMissing() {
			continue
		}
		p := pair{a: row[i1].String(), b: row[i2].String()}
		if _, seen := counts[p]; !seen {
			order = append(order, p)
		}
		counts[p]++
	}

	rows := make([]models.CrossCountRow, 0, len(order))
	for _, p := range order {
		rows = append(rows, models.CrossCountRow{Key: p.a, SubKey: p.b, Count: counts[p]})
	}
	sort.SliceStable(rows, func(a, b int) bool { return rows[a].Count > rows[b].Count })
	if topN > 0 && len(rows) > topN {
		rows = rows[:topN]
	}
	return rows
}

// RateBy groups by one categorical column and computes the mean of a boolean
// column per group, interpreted as a 0–1 rate. Groups come out ordered by
// descending rate with stable tie-break; groups with zero rows simply do not
// appear, so every emitted rate is well defined.
func RateBy(t *dataset.Table, col, boolCol string) []models.RateRow {
	i, ok := t.ColumnIndex(col)
	bi, bok := t.ColumnIndex(boolCol)
	if !ok || !bok {
		return nil
	}

	type acc struct {
		total int
		trues int
	}
	groups := make(map[string]*acc)
	var order []string
	for r := 0; r < t.NumRows(); r++ {
		row := t.Row(r)
		if row[i].IsMissing() {
			continue
		}
		key := row[i].String()
		g, seen := groups[key]
		if !seen {
			g = &acc{}
			groups[key] = g
			order = append(order, key)
		}
		g.total++
		if b, _ := row[bi].AsBool(); b {
			g.trues++
		}
	}

	rows := make([]models.RateRow, 0, len(order))
	for _, key := range order {
		g := groups[key]
		rows = append(rows, models.RateRow{
			Key:   key,
			Rate:  float64(g.trues) / float64(g.total),
			Count: g.total,
		})
	}
	sort.SliceStable(rows, func(a, b int) bool { return rows[a].Rate > rows[b].Rate })
	return rows
}

// CountByHour buckets rows by the derived hour-of-day column, ascending.
// Hours with no incidents are omitted.
func CountByHour(t *dataset.Table) []models.HourCount {
	i, ok := t.ColumnIndex(models.ColHour)
	if !ok {
		return nil
	}

	var counts [24]int
	for r := 0; r < t.NumRows(); r++ {
		if h, ok := t.Row(r)[i].AsNum(); ok && h >= 0 && h < 24 {
			counts[int(h)]++
		}
	}

	var rows []models.HourCount
	for h, c := range counts {
		if c > 0 {
			rows = append(rows, models.HourCount{Hour: h, Count: c})
		}
	}
	return rows
}

// CountByWeekday buckets rows by the derived weekday column in Monday-first
// order. Days with no incidents are omitted.
func CountByWeekday(t *dataset.Table) []models.WeekdayCount {
	i, ok := t.ColumnIndex(models.ColWeekday)
	if !ok {
		return nil
	}

	counts := make(map[string]int)
	for r := 0; r < t.NumRows(); r++ {
		if s, ok := t.Row(r)[i].AsString(); ok {
			counts[s]++
		}
	}

	var rows []models.WeekdayCount
	for _, day := range weekdayOrder {
		if c := counts[day]; c > 0 {
			rows = append(rows, models.WeekdayCount{Weekday: day, Count: c})
		}
	}
	return rows
}

// Summarize computes the dashboard KPI metrics over a filtered table. The
// arrest and domestic fields are nil when the column is absent; the span
// fields are nil when no row has a derivable month.
func Summarize(t *dataset.Table) models.Summary {
	s := models.Summary{TotalIncidents: t.NumRows()}

	if rate, ok := boolMean(t, models.ColArrest); ok {
		s.ArrestRate = &rate
	}
	if share, ok := boolMean(t, models.ColDomestic); ok {
		s.DomesticShare = &share
	}

	if i, ok := t.ColumnIndex(models.ColYearMonth); ok {
		var first, last time.Time
		found := false
		for r := 0; r < t.NumRows(); r++ {
			ts, ok := t.Row(r)[i].AsTime()
			if !ok {
				continue
			}
			if !found || ts.Before(first) {
				first = ts
			}
			if !found || ts.After(last) {
				last = ts
			}
			found = true
		}
		if found {
			s.FirstMonth = &first
			s.LastMonth = &last
		}
	}
	return s
}

// boolMean is the mean of a boolean column over all rows, as a 0–1 rate.
// ok is false when the column is absent or the table has no rows.
func boolMean(t *dataset.Table, col string) (float64, bool) {
	i, ok := t.ColumnIndex(col)
	if !ok || t.NumRows() == 0 {
		return 0, false
	}
	trues := 0
	for r := 0; r < t.NumRows(); r++ {
		if b, _ := t.Row(r)[i].AsBool(); b {
			trues++
		}
	}
	return float64(trues) / float64(t.NumRows()), true
}
