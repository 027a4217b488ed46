package service

import (
	"errors"
	"fmt"

	"github.com/citypulse/crimes-backend-go/internal/config"
	"github.com/citypulse/crimes-backend-go/internal/dataset"
	"github.com/citypulse/crimes-backend-go/internal/models"
	"github.com/citypulse/crimes-backend-go/internal/query"
	"github.com/citypulse/crimes-backend-go/internal/source"
	"github.com/citypulse/crimes-backend-go/internal/spatial"
)

// ErrYearOutOfRange marks a request for a year outside the configured
// supported range. This is a caller error, not a data error: a supported
// year whose file happens to be missing is reported through the assembly's
// unavailable list instead.
var ErrYearOutOfRange = errors.New("year outside supported range")

// ErrNoYears marks a request with an empty year selection.
var ErrNoYears = errors.New("at least one year must be selected")

// QueryMeta describes the dataset slice a query ran against.
type QueryMeta struct {
	Years            []int `json:"years"`
	UnavailableYears []int `json:"unavailable_years,omitempty"`
	MatchedRows      int   `json:"matched_rows"`
}

// CrimeService orchestrates the load → derive → filter → aggregate chain for
// every dashboard view. Each call recomputes the chain synchronously; the
// store's memo makes repeat loads of the same years free.
type CrimeService struct {
	store *source.Store
	cfg   *config.Config
}

// NewCrimeService creates a new crime service.
func NewCrimeService(store *source.Store, cfg *config.Config) *CrimeService {
	return &CrimeService{store: store, cfg: cfg}
}

// view assembles the requested years, applies the filter and returns the
// filtered table with its query metadata.
func (s *CrimeService) view(years []int, f models.IncidentFilter) (*dataset.Table, QueryMeta, error) {
	if len(years) == 0 {
		return nil, QueryMeta{}, ErrNoYears
	}
	for _, y := range years {
		if y < s.cfg.YearMin || y > s.cfg.YearMax {
			return nil, QueryMeta{}, fmt.Errorf("year %d: %w (%d-%d)", y, ErrYearOutOfRange, s.cfg.YearMin, s.cfg.YearMax)
		}
	}

	a, err := s.store.Assemble(years)
	if err != nil {
		return nil, QueryMeta{}, fmt.Errorf("failed to assemble years %v: %w", years, err)
	}

	filtered := query.Apply(a.Table, f)
	meta := QueryMeta{
		Years:            a.Years,
		UnavailableYears: a.UnavailableYears,
		MatchedRows:      filtered.NumRows(),
	}
	return filtered, meta, nil
}

// Options returns the distinct values available per filter dimension for the
// selected years, unfiltered, plus the configured supported years. The
// dashboard populates its multiselects from this.
func (s *CrimeService) Options(years []int) (*models.FilterOptions, QueryMeta, error) {
	t, meta, err := s.view(years, models.IncidentFilter{})
	if err != nil {
		return nil, QueryMeta{}, err
	}
	opts := &models.FilterOptions{
		Years:                s.cfg.SupportedYears(),
		PrimaryTypes:         t.Distinct(models.ColPrimaryType),
		Districts:            t.Distinct(models.ColDistrict),
		Wards:                t.Distinct(models.ColWard),
		CommunityAreas:       t.Distinct(models.ColCommunityArea),
		Beats:                t.Distinct(models.ColBeat),
		LocationDescriptions: t.Distinct(models.ColLocationDescription),
	}
	return opts, meta, nil
}

// Summary computes the KPI metrics for the filtered selection.
func (s *CrimeService) Summary(years []int, f models.IncidentFilter) (models.Summary, QueryMeta, error) {
	t, meta, err := s.view(years, f)
	if err != nil {
		return models.Summary{}, QueryMeta{}, err
	}
	return query.Summarize(t), meta, nil
}

// countable names the dimensions CountBy accepts from the API.
var countable = map[string]string{
	"primaryType":   models.ColPrimaryType,
	"district":      models.ColDistrict,
	"ward":          models.ColWard,
	"communityArea": models.ColCommunityArea,
	"beat":          models.ColBeat,
	"location":      models.ColLocationDescription,
}

// CountBy groups the filtered selection by one named dimension.
func (s *CrimeService) CountBy(years []int, f models.IncidentFilter, dimension string, topN int) ([]models.CountRow, QueryMeta, error) {
	col, ok := countable[dimension]
	if !ok {
		return nil, QueryMeta{}, fmt.Errorf("unknown dimension %q", dimension)
	}
	t, meta, err := s.view(years, f)
	if err != nil {
		return nil, QueryMeta{}, err
	}
	return query.CountBy(t, col, topN), meta, nil
}

// crossColumn resolves a dimension name for cross-tabulation: any countable
// dimension plus the derived month, so the API can serve stacked charts
// (district × type) and per-series trend lines (month × type).
func crossColumn(dimension string) (string, bool) {
	if dimension == "month" {
		return models.ColYearMonth, true
	}
	col, ok := countable[dimension]
	return col, ok
}

// CrossBy groups the filtered selection by two named dimensions.
func (s *CrimeService) CrossBy(years []int, f models.IncidentFilter, dim1, dim2 string, topN int) ([]models.CrossCountRow, QueryMeta, error) {
	col1, ok := crossColumn(dim1)
	if !ok {
		return nil, QueryMeta{}, fmt.Errorf("unknown dimension %q", dim1)
	}
	col2, ok := crossColumn(dim2)
	if !ok {
		return nil, QueryMeta{}, fmt.Errorf("unknown dimension %q", dim2)
	}
	if col1 == col2 {
		return nil, QueryMeta{}, fmt.Errorf("cross dimensions must differ, got %q twice", dim1)
	}
	t, meta, err := s.view(years, f)
	if err != nil {
		return nil, QueryMeta{}, err
	}
	return query.CountByCross(t, col1, col2, topN), meta, nil
}

// CountByType is the driver chart: incidents per primary type.
func (s *CrimeService) CountByType(years []int, f models.IncidentFilter, topN int) ([]models.CountRow, QueryMeta, error) {
	return s.CountBy(years, f, "primaryType", topN)
}

// CountByDistrict is the district bar chart: incidents per police district.
func (s *CrimeService) CountByDistrict(years []int, f models.IncidentFilter) ([]models.CountRow, QueryMeta, error) {
	return s.CountBy(years, f, "district", 0)
}

// Trend is the monthly trend line: incidents per year-month, ascending.
func (s *CrimeService) Trend(years []int, f models.IncidentFilter) ([]models.TrendPoint, QueryMeta, error) {
	t, meta, err := s.view(years, f)
	if err != nil {
		return nil, QueryMeta{}, err
	}
	return query.CountByMonth(t), meta, nil
}

// ByHour is the hour-of-day histogram.
func (s *CrimeService) ByHour(years []int, f models.IncidentFilter) ([]models.HourCount, QueryMeta, error) {
	t, meta, err := s.view(years, f)
	if err != nil {
		return nil, QueryMeta{}, err
	}
	return query.CountByHour(t), meta, nil
}

// ByWeekday is the day-of-week histogram.
func (s *CrimeService) ByWeekday(years []int, f models.IncidentFilter) ([]models.WeekdayCount, QueryMeta, error) {
	t, meta, err := s.view(years, f)
	if err != nil {
		return nil, QueryMeta{}, err
	}
	return query.CountByWeekday(t), meta, nil
}

// TypeLocation is the primary type × location description cross-tabulation.
func (s *CrimeService) TypeLocation(years []int, f models.IncidentFilter, topN int) ([]models.CrossCountRow, QueryMeta, error) {
	t, meta, err := s.view(years, f)
	if err != nil {
		return nil, QueryMeta{}, err
	}
	return query.CountByCross(t, models.ColPrimaryType, models.ColLocationDescription, topN), meta, nil
}

// ArrestRateByType computes the per-type arrest rate.
func (s *CrimeService) ArrestRateByType(years []int, f models.IncidentFilter) ([]models.RateRow, QueryMeta, error) {
	t, meta, err := s.view(years, f)
	if err != nil {
		return nil, QueryMeta{}, err
	}
	return query.RateBy(t, models.ColPrimaryType, models.ColArrest), meta, nil
}

// SpatialPoints returns the sampled scatter-view points.
func (s *CrimeService) SpatialPoints(years []int, f models.IncidentFilter) ([]models.IncidentPoint, QueryMeta, error) {
	t, meta, err := s.view(years, f)
	if err != nil {
		return nil, QueryMeta{}, err
	}
	return spatial.Points(t, s.cfg.SampleSize, s.cfg.SampleSeed), meta, nil
}

// Heatmap returns the s2-binned density heatmap.
func (s *CrimeService) Heatmap(years []int, f models.IncidentFilter, level int) (*models.HeatmapResponse, QueryMeta, error) {
	t, meta, err := s.view(years, f)
	if err != nil {
		return nil, QueryMeta{}, err
	}
	return spatial.Heatmap(t, level), meta, nil
}

// Preview returns the first limit rows of the filtered selection, rendered
// as canonical strings keyed by column, for the data preview table.
func (s *CrimeService) Preview(years []int, f models.IncidentFilter, limit int) ([]map[string]string, QueryMeta, error) {
	t, meta, err := s.view(years, f)
	if err != nil {
		return nil, QueryMeta{}, err
	}
	if limit <= 0 {
		limit = 100
	}
	head := t.Head(limit)
	cols := head.Columns()
	out := make([]map[string]string, 0, head.NumRows())
	for r := 0; r < head.NumRows(); r++ {
		m := make(map[string]string, len(cols))
		for _, c := range cols {
			if v := head.Value(r, c); !v.IsMissing() {
				m[c] = v.String()
			}
		}
		out = append(out, m)
	}
	return out, meta, nil
}
