package models

import "time"

// IncidentPoint is a single incident in the spatial scatter view.
type IncidentPoint struct {
	Lat                 float64    `json:"lat"`
	Lng                 float64    `json:"lng"`
	PrimaryType         string     `json:"primary_type,omitempty"`
	LocationDescription string     `json:"location_description,omitempty"`
	District            string     `json:"district,omitempty"`
	Date                *time.Time `json:"date,omitempty"`
}

// HeatmapPoint represents a single cell in the density heatmap.
type HeatmapPoint struct {
	Lat       float64 `json:"lat"`       // Cell center latitude
	Lng       float64 `json:"lng"`       // Cell center longitude
	Intensity float64 `json:"intensity"` // Normalized 0-1
	Value     int     `json:"value"`     // Incident count in the cell
}

// HeatmapResponse represents the heatmap API response.
type HeatmapResponse struct {
	Points    []HeatmapPoint `json:"points"`
	Count     int            `json:"count"`
	MaxValue  int            `json:"max_value"`
	MinValue  int            `json:"min_value"`
	Metric    string         `json:"metric"`
	CellLevel int            `json:"cell_level"`
}
