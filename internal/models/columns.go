package models

// Canonical column names, matching the Chicago Police Department yearly
// export headers plus the derived temporal columns.
const (
	ColID                  = "ID"
	ColCaseNumber          = "Case Number"
	ColDate                = "Date"
	ColPrimaryType         = "Primary Type"
	ColDescription         = "Description"
	ColLocationDescription = "Location Description"
	ColArrest              = "Arrest"
	ColDomestic            = "Domestic"
	ColBeat                = "Beat"
	ColDistrict            = "District"
	ColWard                = "Ward"
	ColCommunityArea       = "Community Area"
	ColLatitude            = "Latitude"
	ColLongitude           = "Longitude"

	// Derived by the feature deriver.
	ColYear      = "Year"
	ColMonth     = "Month"
	ColYearMonth = "YearMonth"
	ColWeekday   = "Weekday"
	ColHour      = "Hour"
)

// GeoIDColumns are the geographic identifier columns normalized to canonical
// string form.
var GeoIDColumns = []string{ColDistrict, ColWard, ColCommunityArea, ColBeat}

// FlagColumns are the boolean flag columns coerced from their assorted
// textual encodings.
var FlagColumns = []string{ColArrest, ColDomestic}
