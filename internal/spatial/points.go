package spatial

import (
	"github.com/citypulse/crimes-backend-go/internal/dataset"
	"github.com/citypulse/crimes-backend-go/internal/models"
	"github.com/citypulse/crimes-backend-go/internal/query"
)

// Points extracts the scatter-view points: rows with valid coordinates,
// down-sampled deterministically to at most maxRows. The tooltip fields
// (primary type, location, district, date) ride along when present.
func Points(t *dataset.Table, maxRows int, seed int64) []models.IncidentPoint {
	latIdx, okLat := t.ColumnIndex(models.ColLatitude)
	lngIdx, okLng := t.ColumnIndex(models.ColLongitude)
	if !okLat || !okLng {
		return nil
	}

	located := t.Select(func(row []dataset.Value) bool {
		_, ok1 := row[latIdx].AsNum()
		_, ok2 := row[lngIdx].AsNum()
		return ok1 && ok2
	})
	sampled := query.Sample(located, maxRows, seed)

	points := make([]models.IncidentPoint, 0, sampled.NumRows())
	for r := 0; r < sampled.NumRows(); r++ {
		row := sampled.Row(r)
		lat, _ := row[latIdx].AsNum()
		lng, _ := row[lngIdx].AsNum()
		p := models.IncidentPoint{Lat: lat, Lng: lng}
		if s, ok := sampled.Value(r, models.ColPrimaryType).AsString(); ok {
			p.PrimaryType = s
		}
		if s, ok := sampled.Value(r, models.ColLocationDescription).AsString(); ok {
			p.LocationDescription = s
		}
		if !sampled.Value(r, models.ColDistrict).IsMissing() {
			p.District = sampled.Value(r, models.ColDistrict).String()
		}
		if ts, ok := sampled.Value(r, models.ColDate).AsTime(); ok {
			p.Date = &ts
		}
		points = append(points, p)
	}
	return points
}
