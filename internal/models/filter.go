package models

// Arrest/domestic status filter values.
const (
	StatusAny         = "any"
	StatusArrested    = "arrested"
	StatusNotArrested = "not-arrested"
	StatusDomestic    = "domestic"
	StatusNonDomestic = "non-domestic"
)

// IncidentFilter represents filter parameters for querying incidents.
// Every dimension is independently optional: an empty set means no
// restriction, and all supplied dimensions combine with logical AND.
// A set equal to the full set of values available in the loaded data is
// treated the same as no restriction ("select all" in the dashboard).
type IncidentFilter struct {
	PrimaryTypes         []string `form:"primaryType"`
	Districts            []string `form:"district"`
	Wards                []string `form:"ward"`
	CommunityAreas       []string `form:"communityArea"`
	Beats                []string `form:"beat"`
	LocationDescriptions []string `form:"location"`
	ArrestStatus         string   `form:"arrestStatus"`   // any, arrested, not-arrested
	DomesticStatus       string   `form:"domesticStatus"` // any, domestic, non-domestic
}

// ValidArrestStatus reports whether s is a recognized arrest status token.
// The empty string means unfiltered.
func ValidArrestStatus(s string) bool {
	switch s {
	case "", StatusAny, StatusArrested, StatusNotArrested:
		return true
	}
	return false
}

// ValidDomesticStatus reports whether s is a recognized domestic status
// token. The empty string means unfiltered.
func ValidDomesticStatus(s string) bool {
	switch s {
	case "", StatusAny, StatusDomestic, StatusNonDomestic:
		return true
	}
	return false
}

// IsEmpty reports whether no dimension restricts anything.
func (f IncidentFilter) IsEmpty() bool {
	return len(f.PrimaryTypes) == 0 &&
		len(f.Districts) == 0 &&
		len(f.Wards) == 0 &&
		len(f.CommunityAreas) == 0 &&
		len(f.Beats) == 0 &&
		len(f.LocationDescriptions) == 0 &&
		(f.ArrestStatus == "" || f.ArrestStatus == StatusAny) &&
		(f.DomesticStatus == "" || f.DomesticStatus == StatusAny)
}
