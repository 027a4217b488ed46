package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/citypulse/crimes-backend-go/internal/models"
	"github.com/citypulse/crimes-backend-go/internal/service"
	"github.com/citypulse/crimes-backend-go/pkg/response"
)

// CrimeHandler handles HTTP requests for the dashboard query API.
type CrimeHandler struct {
	crimeService *service.CrimeService
}

// NewCrimeHandler creates a new crime handler.
func NewCrimeHandler(crimeService *service.CrimeService) *CrimeHandler {
	return &CrimeHandler{crimeService: crimeService}
}

// parseYears reads the years selection from the query string. Accepts
// repeated years params and comma-separated lists.
func parseYears(c *gin.Context) ([]int, error) {
	var years []int
	for _, raw := range c.QueryArray("years") {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			y, err := strconv.Atoi(part)
			if err != nil {
				return nil, errors.New("invalid years parameter: " + part)
			}
			years = append(years, y)
		}
	}
	return years, nil
}

// parseFilter binds the filter dimensions from the query string and rejects
// unrecognized status tokens; a typo like arrestStatus=arested must not
// silently filter.
func parseFilter(c *gin.Context) (models.IncidentFilter, bool) {
	var f models.IncidentFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		response.BadRequest(c, "Invalid filter parameters")
		return f, false
	}
	if !models.ValidArrestStatus(f.ArrestStatus) {
		response.BadRequest(c, fmt.Sprintf("unknown arrestStatus %q", f.ArrestStatus))
		return f, false
	}
	if !models.ValidDomesticStatus(f.DomesticStatus) {
		response.BadRequest(c, fmt.Sprintf("unknown domesticStatus %q", f.DomesticStatus))
		return f, false
	}
	return f, true
}

func intQuery(c *gin.Context, key string, def int) int {
	if n, err := strconv.Atoi(c.DefaultQuery(key, "")); err == nil {
		return n
	}
	return def
}

// fail maps a service error to an HTTP response.
func fail(c *gin.Context, err error) {
	if errors.Is(err, service.ErrYearOutOfRange) || errors.Is(err, service.ErrNoYears) {
		response.BadRequest(c, err.Error())
		return
	}
	response.InternalError(c, err.Error())
}

// GetOptions handles GET /api/v1/crimes/options
func (h *CrimeHandler) GetOptions(c *gin.Context) {
	years, err := parseYears(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	opts, meta, err := h.crimeService.Options(years)
	if err != nil {
		fail(c, err)
		return
	}
	response.Query(c, meta, "options", opts)
}

// GetSummary handles GET /api/v1/crimes/summary
func (h *CrimeHandler) GetSummary(c *gin.Context) {
	years, err := parseYears(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	filter, ok := parseFilter(c)
	if !ok {
		return
	}

	summary, meta, err := h.crimeService.Summary(years, filter)
	if err != nil {
		fail(c, err)
		return
	}
	response.Query(c, meta, "summary", summary)
}

// GetCountByType handles GET /api/v1/crimes/by-type
func (h *CrimeHandler) GetCountByType(c *gin.Context) {
	years, err := parseYears(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	filter, ok := parseFilter(c)
	if !ok {
		return
	}

	rows, meta, err := h.crimeService.CountByType(years, filter, intQuery(c, "top", 0))
	if err != nil {
		fail(c, err)
		return
	}
	response.Query(c, meta, "rows", rows)
}

// GetCountByDistrict handles GET /api/v1/crimes/by-district
func (h *CrimeHandler) GetCountByDistrict(c *gin.Context) {
	years, err := parseYears(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	filter, ok := parseFilter(c)
	if !ok {
		return
	}

	rows, meta, err := h.crimeService.CountByDistrict(years, filter)
	if err != nil {
		fail(c, err)
		return
	}
	response.Query(c, meta, "rows", rows)
}

// GetCountBy handles GET /api/v1/crimes/count-by/:dimension
func (h *CrimeHandler) GetCountBy(c *gin.Context) {
	years, err := parseYears(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	filter, ok := parseFilter(c)
	if !ok {
		return
	}

	rows, meta, err := h.crimeService.CountBy(years, filter, c.Param("dimension"), intQuery(c, "top", 0))
	if err != nil {
		// Unknown dimension is a caller error too.
		response.BadRequest(c, err.Error())
		return
	}
	response.Query(c, meta, "rows", rows)
}

// GetCrossBy handles GET /api/v1/crimes/cross-by/:dimension/:subdimension
func (h *CrimeHandler) GetCrossBy(c *gin.Context) {
	years, err := parseYears(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	filter, ok := parseFilter(c)
	if !ok {
		return
	}

	rows, meta, err := h.crimeService.CrossBy(years, filter,
		c.Param("dimension"), c.Param("subdimension"), intQuery(c, "top", 0))
	if err != nil {
		if errors.Is(err, service.ErrYearOutOfRange) || errors.Is(err, service.ErrNoYears) {
			fail(c, err)
			return
		}
		response.BadRequest(c, err.Error())
		return
	}
	response.Query(c, meta, "rows", rows)
}

// GetTrend handles GET /api/v1/crimes/trend
func (h *CrimeHandler) GetTrend(c *gin.Context) {
	years, err := parseYears(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	filter, ok := parseFilter(c)
	if !ok {
		return
	}

	points, meta, err := h.crimeService.Trend(years, filter)
	if err != nil {
		fail(c, err)
		return
	}
	response.Query(c, meta, "points", points)
}

// GetByHour handles GET /api/v1/crimes/by-hour
func (h *CrimeHandler) GetByHour(c *gin.Context) {
	years, err := parseYears(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	filter, ok := parseFilter(c)
	if !ok {
		return
	}

	rows, meta, err := h.crimeService.ByHour(years, filter)
	if err != nil {
		fail(c, err)
		return
	}
	response.Query(c, meta, "rows", rows)
}

// GetByWeekday handles GET /api/v1/crimes/by-weekday
func (h *CrimeHandler) GetByWeekday(c *gin.Context) {
	years, err := parseYears(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	filter, ok := parseFilter(c)
	if !ok {
		return
	}

	rows, meta, err := h.crimeService.ByWeekday(years, filter)
	if err != nil {
		fail(c, err)
		return
	}
	response.Query(c, meta, "rows", rows)
}

// GetTypeLocation handles GET /api/v1/crimes/type-location
func (h *CrimeHandler) GetTypeLocation(c *gin.Context) {
	years, err := parseYears(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	filter, ok := parseFilter(c)
	if !ok {
		return
	}

	rows, meta, err := h.crimeService.TypeLocation(years, filter, intQuery(c, "top", 25))
	if err != nil {
		fail(c, err)
		return
	}
	response.Query(c, meta, "rows", rows)
}

// GetArrestRate handles GET /api/v1/crimes/arrest-rate
func (h *CrimeHandler) GetArrestRate(c *gin.Context) {
	years, err := parseYears(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	filter, ok := parseFilter(c)
	if !ok {
		return
	}

	rows, meta, err := h.crimeService.ArrestRateByType(years, filter)
	if err != nil {
		fail(c, err)
		return
	}
	response.Query(c, meta, "rows", rows)
}

// GetSpatialPoints handles GET /api/v1/crimes/spatial/points
func (h *CrimeHandler) GetSpatialPoints(c *gin.Context) {
	years, err := parseYears(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	filter, ok := parseFilter(c)
	if !ok {
		return
	}

	points, meta, err := h.crimeService.SpatialPoints(years, filter)
	if err != nil {
		fail(c, err)
		return
	}
	response.Query(c, meta, "points", points)
}

// GetHeatmap handles GET /api/v1/crimes/spatial/heatmap
func (h *CrimeHandler) GetHeatmap(c *gin.Context) {
	years, err := parseYears(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	filter, ok := parseFilter(c)
	if !ok {
		return
	}

	heatmap, meta, err := h.crimeService.Heatmap(years, filter, intQuery(c, "level", 0))
	if err != nil {
		fail(c, err)
		return
	}
	response.Query(c, meta, "heatmap", heatmap)
}

// GetPreview handles GET /api/v1/crimes/preview
func (h *CrimeHandler) GetPreview(c *gin.Context) {
	years, err := parseYears(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	filter, ok := parseFilter(c)
	if !ok {
		return
	}

	rows, meta, err := h.crimeService.Preview(years, filter, intQuery(c, "limit", 100))
	if err != nil {
		fail(c, err)
		return
	}
	response.Query(c, meta, "rows", rows)
}
