package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citypulse/crimes-backend-go/internal/config"
	"github.com/citypulse/crimes-backend-go/internal/service"
	"github.com/citypulse/crimes-backend-go/internal/source"
)

const yearFile = `ID,Case Number,Date,Primary Type,Location Description,Arrest,Domestic,District,Ward,Community Area,Beat,Latitude,Longitude
1,JA1,05/03/2019 02:00:00 PM,THEFT,STREET,true,false,12,7,25,0421,41.8781,-87.6298
2,JA2,05/04/2019 03:00:00 AM,THEFT,RESIDENCE,false,false,8,3,11,0822,41.7500,-87.6000
3,JA3,06/10/2019 09:30:00 PM,BATTERY,STREET,true,true,12,7,25,0421,,
`

func testRouter(t *testing.T, jwtSecret string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Crimes_2019.csv"), []byte(yearFile), 0o644))

	cfg := &config.Config{
		Port:       ":0",
		DataDir:    dir,
		YearMin:    2019,
		YearMax:    2020,
		JWTSecret:  jwtSecret,
		SampleSize: 5000,
		SampleSeed: 42,
	}
	store := source.NewStore(source.NewCSVSource(dir))
	return SetupRouter(cfg, zerolog.Nop(), service.NewCrimeService(store, cfg))
}

type envelope struct {
	Code    int                        `json:"code"`
	Message string                     `json:"message"`
	Data    map[string]json.RawMessage `json:"data"`
}

func get(t *testing.T, r *gin.Engine, url string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func TestHealth(t *testing.T) {
	r := testRouter(t, "")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSummaryEndpoint(t *testing.T) {
	r := testRouter(t, "")
	w, env := get(t, r, "/api/v1/crimes/summary?years=2019")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, env.Code)

	var summary struct {
		TotalIncidents int      `json:"total_incidents"`
		ArrestRate     *float64 `json:"arrest_rate"`
	}
	require.NoError(t, json.Unmarshal(env.Data["summary"], &summary))
	assert.Equal(t, 3, summary.TotalIncidents)
	require.NotNil(t, summary.ArrestRate)
	assert.InDelta(t, 2.0/3.0, *summary.ArrestRate, 1e-9)
}

func TestByTypeWithFilter(t *testing.T) {
	r := testRouter(t, "")
	w, env := get(t, r, "/api/v1/crimes/by-type?years=2019&district=12")

	require.Equal(t, http.StatusOK, w.Code)

	var rows []struct {
		Key   string `json:"key"`
		Count int    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(env.Data["rows"], &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "THEFT", rows[0].Key)
	assert.Equal(t, 1, rows[0].Count)
	assert.Equal(t, "BATTERY", rows[1].Key)
}

func TestUnavailableYearIsNotAnError(t *testing.T) {
	r := testRouter(t, "")
	w, env := get(t, r, "/api/v1/crimes/summary?years=2019,2020")

	require.Equal(t, http.StatusOK, w.Code, "a missing year file degrades, never crashes")

	var meta struct {
		UnavailableYears []int `json:"unavailable_years"`
	}
	require.NoError(t, json.Unmarshal(env.Data["meta"], &meta))
	assert.Equal(t, []int{2020}, meta.UnavailableYears)
}

func TestYearOutOfRangeIsBadRequest(t *testing.T) {
	r := testRouter(t, "")
	w, _ := get(t, r, "/api/v1/crimes/summary?years=1999")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMissingYearsParamIsBadRequest(t *testing.T) {
	r := testRouter(t, "")
	w, _ := get(t, r, "/api/v1/crimes/trend")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnknownDimensionIsBadRequest(t *testing.T) {
	r := testRouter(t, "")
	w, _ := get(t, r, "/api/v1/crimes/count-by/nonsense?years=2019")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCrossByDistrictType(t *testing.T) {
	r := testRouter(t, "")
	w, env := get(t, r, "/api/v1/crimes/cross-by/district/primaryType?years=2019")

	require.Equal(t, http.StatusOK, w.Code)

	var rows []struct {
		Key    string `json:"key"`
		SubKey string `json:"sub_key"`
		Count  int    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(env.Data["rows"], &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, "12", rows[0].Key)
	assert.Equal(t, "THEFT", rows[0].SubKey)
	assert.Equal(t, 1, rows[0].Count)
}

func TestCrossByMonthSeries(t *testing.T) {
	r := testRouter(t, "")
	w, env := get(t, r, "/api/v1/crimes/cross-by/month/primaryType?years=2019")

	require.Equal(t, http.StatusOK, w.Code)

	var rows []struct {
		Key    string `json:"key"`
		SubKey string `json:"sub_key"`
		Count  int    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(env.Data["rows"], &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "2019-05-01T00:00:00Z", rows[0].Key)
	assert.Equal(t, "THEFT", rows[0].SubKey)
	assert.Equal(t, 2, rows[0].Count)
	assert.Equal(t, "BATTERY", rows[1].SubKey)
}

func TestCrossByUnknownDimensionIsBadRequest(t *testing.T) {
	r := testRouter(t, "")
	w, _ := get(t, r, "/api/v1/crimes/cross-by/nonsense/primaryType?years=2019")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = get(t, r, "/api/v1/crimes/cross-by/district/district?years=2019")
	assert.Equal(t, http.StatusBadRequest, w.Code, "identical dimensions are rejected")
}

func TestUnknownStatusTokenIsBadRequest(t *testing.T) {
	r := testRouter(t, "")

	w, _ := get(t, r, "/api/v1/crimes/summary?years=2019&arrestStatus=bogus")
	assert.Equal(t, http.StatusBadRequest, w.Code, "a typo must not silently filter")

	w, _ = get(t, r, "/api/v1/crimes/summary?years=2019&domesticStatus=bogus")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = get(t, r, "/api/v1/crimes/summary?years=2019&arrestStatus=arrested&domesticStatus=any")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTrendEndpoint(t *testing.T) {
	r := testRouter(t, "")
	w, env := get(t, r, "/api/v1/crimes/trend?years=2019")

	require.Equal(t, http.StatusOK, w.Code)

	var points []struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(env.Data["points"], &points))
	require.Len(t, points, 2, "May and June")
	assert.Equal(t, 2, points[0].Count)
	assert.Equal(t, 1, points[1].Count)
}

func TestSpatialPointsExcludeUnlocated(t *testing.T) {
	r := testRouter(t, "")
	w, env := get(t, r, "/api/v1/crimes/spatial/points?years=2019")

	require.Equal(t, http.StatusOK, w.Code)

	var points []struct {
		Lat float64 `json:"lat"`
	}
	require.NoError(t, json.Unmarshal(env.Data["points"], &points))
	assert.Len(t, points, 2, "the row without coordinates is dropped")
}

func TestOptionsEndpoint(t *testing.T) {
	r := testRouter(t, "")
	w, env := get(t, r, "/api/v1/crimes/options?years=2019")

	require.Equal(t, http.StatusOK, w.Code)

	var opts struct {
		Years        []int    `json:"years"`
		PrimaryTypes []string `json:"primary_types"`
		Districts    []string `json:"districts"`
	}
	require.NoError(t, json.Unmarshal(env.Data["options"], &opts))
	assert.Equal(t, []int{2019, 2020}, opts.Years)
	assert.Equal(t, []string{"BATTERY", "THEFT"}, opts.PrimaryTypes)
	assert.Equal(t, []string{"12", "8"}, opts.Districts)
}

func TestAuthRequiredWhenSecretConfigured(t *testing.T) {
	r := testRouter(t, "test-secret")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/crimes/summary?years=2019", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/crimes/summary?years=2019", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestArrestRateEndpoint(t *testing.T) {
	r := testRouter(t, "")
	w, env := get(t, r, "/api/v1/crimes/arrest-rate?years=2019")

	require.Equal(t, http.StatusOK, w.Code)

	var rows []struct {
		Key  string  `json:"key"`
		Rate float64 `json:"rate"`
	}
	require.NoError(t, json.Unmarshal(env.Data["rows"], &rows))
	require.Len(t, rows, 2)
	// BATTERY 1/1 arrested sorts above THEFT 1/2
	assert.Equal(t, "BATTERY", rows[0].Key)
	assert.InDelta(t, 1.0, rows[0].Rate, 1e-9)
	assert.Equal(t, "THEFT", rows[1].Key)
	assert.InDelta(t, 0.5, rows[1].Rate, 1e-9)
}

func TestPreviewEndpoint(t *testing.T) {
	r := testRouter(t, "")
	w, env := get(t, r, fmt.Sprintf("/api/v1/crimes/preview?years=2019&limit=%d", 2))

	require.Equal(t, http.StatusOK, w.Code)

	var rows []map[string]string
	require.NoError(t, json.Unmarshal(env.Data["rows"], &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "THEFT", rows[0]["Primary Type"])
	assert.Equal(t, "12", rows[0]["District"])
}
