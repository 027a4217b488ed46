// Package spatial builds the spatial views: scatter points with valid
// coordinates and an s2-cell density heatmap.
package spatial

import (
	"sort"

	"github.com/golang/geo/s2"

	"github.com/citypulse/crimes-backend-go/internal/dataset"
	"github.com/citypulse/crimes-backend-go/internal/models"
)

// DefaultCellLevel is the s2 cell level used for heatmap binning when the
// caller does not override it. Level 15 cells are roughly 250m across, about
// a city block.
const DefaultCellLevel = 15

// Heatmap bins rows with valid coordinates into s2 cells at the given level
// and returns one weighted point per occupied cell, positioned at the cell
// center, with intensity normalized to [0, 1] against the densest cell.
// Rows with missing or malformed coordinates are excluded.
func Heatmap(t *dataset.Table, level int) *models.HeatmapResponse {
	if level <= 0 || level > 30 {
		level = DefaultCellLevel
	}

	resp := &models.HeatmapResponse{
		Metric:    "incident_count",
		CellLevel: level,
	}

	latIdx, okLat := t.ColumnIndex(models.ColLatitude)
	lngIdx, okLng := t.ColumnIndex(models.ColLongitude)
	if !okLat || !okLng {
		return resp
	}

	counts := make(map[s2.CellID]int)
	for r := 0; r < t.NumRows(); r++ {
		row := t.Row(r)
		lat, ok1 := row[latIdx].AsNum()
		lng, ok2 := row[lngIdx].AsNum()
		if !ok1 || !ok2 {
			continue
		}
		cell := s2.CellIDFromLatLng(s2.LatLngFromDegrees(lat, lng)).Parent(level)
		counts[cell]++
	}
	if len(counts) == 0 {
		return resp
	}

	cells := make([]s2.CellID, 0, len(counts))
	for c := range counts {
		cells = append(cells, c)
	}
	// Deterministic output order
	sort.Slice(cells, func(a, b int) bool { return cells[a] < cells[b] })

	maxVal, minVal := 0, counts[cells[0]]
	for _, c := range cells {
		if counts[c] > maxVal {
			maxVal = counts[c]
		}
		if counts[c] < minVal {
			minVal = counts[c]
		}
	}

	resp.Points = make([]models.HeatmapPoint, 0, len(cells))
	for _, c := range cells {
		center := c.LatLng()
		resp.Points = append(resp.Points, models.HeatmapPoint{
			Lat:       center.Lat.Degrees(),
			Lng:       center.Lng.Degrees(),
			Intensity: float64(counts[c]) / float64(maxVal),
			Value:     counts[c],
		})
	}
	resp.Count = len(resp.Points)
	resp.MaxValue = maxVal
	resp.MinValue = minVal
	return resp
}
