package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citypulse/crimes-backend-go/internal/dataset"
	"github.com/citypulse/crimes-backend-go/internal/models"
)

func typeArrestTable(rows ...[2]interface{}) *dataset.Table {
	t := dataset.New(models.ColPrimaryType, models.ColArrest)
	for _, r := range rows {
		t.AppendRow([]dataset.Value{
			dataset.Str(r[0].(string)), dataset.Bool(r[1].(bool)),
		})
	}
	return t
}

func TestCountByAndRateByScenario(t *testing.T) {
	tbl := typeArrestTable(
		[2]interface{}{"THEFT", true},
		[2]interface{}{"THEFT", false},
		[2]interface{}{"BATTERY", true},
	)

	counts := CountBy(tbl, models.ColPrimaryType, 0)
	require.Equal(t, []models.CountRow{
		{Key: "THEFT", Count: 2},
		{Key: "BATTERY", Count: 1},
	}, counts)

	rates := RateBy(tbl, models.ColPrimaryType, models.ColArrest)
	require.Len(t, rates, 2)
	byKey := map[string]float64{}
	for _, r := range rates {
		byKey[r.Key] = r.Rate
	}
	assert.InDelta(t, 0.5, byKey["THEFT"], 1e-9)
	assert.InDelta(t, 1.0, byKey["BATTERY"], 1e-9)
}

func TestCountBySumsToTotal(t *testing.T) {
	tbl := typeArrestTable(
		[2]interface{}{"THEFT", true},
		[2]interface{}{"BATTERY", false},
		[2]interface{}{"BATTERY", false},
		[2]interface{}{"NARCOTICS", true},
	)

	total := 0
	for _, row := range CountBy(tbl, models.ColPrimaryType, 0) {
		total += row.Count
	}
	assert.Equal(t, tbl.NumRows(), total)
}

func TestCountByTopNAndTieOrder(t *testing.T) {
	tbl := typeArrestTable(
		[2]interface{}{"THEFT", true},
		[2]interface{}{"BATTERY", false},
		[2]interface{}{"NARCOTICS", false},
		[2]interface{}{"THEFT", false},
	)

	rows := CountBy(tbl, models.ColPrimaryType, 2)
	require.Len(t, rows, 2)
	assert.Equal(t, "THEFT", rows[0].Key)
	// BATTERY and NARCOTICS tie at 1; first encounter wins
	assert.Equal(t, "BATTERY", rows[1].Key)
}

func TestCountByAbsentColumn(t *testing.T) {
	assert.Nil(t, CountBy(dataset.New("A"), models.ColPrimaryType, 0))
}

func TestRateByBounds(t *testing.T) {
	tbl := typeArrestTable(
		[2]interface{}{"THEFT", true},
		[2]interface{}{"THEFT", true},
		[2]interface{}{"BATTERY", false},
	)

	for _, r := range RateBy(tbl, models.ColPrimaryType, models.ColArrest) {
		assert.GreaterOrEqual(t, r.Rate, 0.0)
		assert.LessOrEqual(t, r.Rate, 1.0)
		assert.Greater(t, r.Count, 0, "zero-row groups are never emitted")
	}
}

func TestCountByMonthAscending(t *testing.T) {
	tbl := dataset.New(models.ColYearMonth)
	months := []time.Time{
		time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2019, 5, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2019, 9, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, m := range months {
		tbl.AppendRow([]dataset.Value{dataset.Timestamp(m)})
	}
	tbl.AppendRow([]dataset.Value{dataset.Missing()})

	points := CountByMonth(tbl)
	require.Equal(t, []models.TrendPoint{
		{Month: time.Date(2019, 5, 1, 0, 0, 0, 0, time.UTC), Count: 1},
		{Month: time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC), Count: 2},
		{Month: time.Date(2019, 9, 1, 0, 0, 0, 0, time.UTC), Count: 1},
	}, points, "sparse ascending series; July/August not materialized")
}

func TestCountByCross(t *testing.T) {
	tbl := dataset.New(models.ColPrimaryType, models.ColLocationDescription)
	add := func(pt, loc string) {
		tbl.AppendRow([]dataset.Value{dataset.Str(pt), dataset.Str(loc)})
	}
	add("THEFT", "STREET")
	add("THEFT", "STREET")
	add("THEFT", "RESIDENCE")
	add("BATTERY", "STREET")

	rows := CountByCross(tbl, models.ColPrimaryType, models.ColLocationDescription, 0)
	require.Len(t, rows, 3)
	assert.Equal(t, models.CrossCountRow{Key: "THEFT", SubKey: "STREET", Count: 2}, rows[0])
}

func TestCountByHour(t *testing.T) {
	tbl := dataset.New(models.ColHour)
	for _, h := range []float64{14, 3, 14, 23} {
		tbl.AppendRow([]dataset.Value{dataset.Num(h)})
	}
	tbl.AppendRow([]dataset.Value{dataset.Missing()})

	rows := CountByHour(tbl)
	require.Equal(t, []models.HourCount{
		{Hour: 3, Count: 1},
		{Hour: 14, Count: 2},
		{Hour: 23, Count: 1},
	}, rows)
}

func TestCountByWeekdayMondayFirst(t *testing.T) {
	tbl := dataset.New(models.ColWeekday)
	for _, d := range []string{"Sunday", "Monday", "Sunday", "Friday"} {
		tbl.AppendRow([]dataset.Value{dataset.Str(d)})
	}

	rows := CountByWeekday(tbl)
	require.Equal(t, []models.WeekdayCount{
		{Weekday: "Monday", Count: 1},
		{Weekday: "Friday", Count: 1},
		{Weekday: "Sunday", Count: 2},
	}, rows)
}

func TestSummarize(t *testing.T) {
	tbl := dataset.New(models.ColArrest, models.ColDomestic, models.ColYearMonth)
	may := time.Date(2019, 5, 1, 0, 0, 0, 0, time.UTC)
	sep := time.Date(2019, 9, 1, 0, 0, 0, 0, time.UTC)
	tbl.AppendRow([]dataset.Value{dataset.Bool(true), dataset.Bool(false), dataset.Timestamp(sep)})
	tbl.AppendRow([]dataset.Value{dataset.Bool(false), dataset.Bool(false), dataset.Timestamp(may)})

	s := Summarize(tbl)

	assert.Equal(t, 2, s.TotalIncidents)
	require.NotNil(t, s.ArrestRate)
	assert.InDelta(t, 0.5, *s.ArrestRate, 1e-9)
	require.NotNil(t, s.DomesticShare)
	assert.InDelta(t, 0.0, *s.DomesticShare, 1e-9)
	require.NotNil(t, s.FirstMonth)
	assert.Equal(t, may, *s.FirstMonth)
	assert.Equal(t, sep, *s.LastMonth)
}

func TestSummarizeAbsentColumns(t *testing.T) {
	tbl := dataset.New(models.ColPrimaryType)
	tbl.AppendRow([]dataset.Value{dataset.Str("THEFT")})

	s := Summarize(tbl)

	assert.Equal(t, 1, s.TotalIncidents)
	assert.Nil(t, s.ArrestRate)
	assert.Nil(t, s.DomesticShare)
	assert.Nil(t, s.FirstMonth)
}

func TestSummarizeEmptyTable(t *testing.T) {
	s := Summarize(dataset.New(models.ColArrest))
	assert.Equal(t, 0, s.TotalIncidents)
	assert.Nil(t, s.ArrestRate, "no rows means no rate, not NaN")
}
