// Package derive implements the feature derivation pass: parsing the raw
// date column into temporal features, canonicalizing geographic ID columns,
// and coercing arrest/domestic flags to booleans. The pass is pure (no I/O),
// tolerates missing columns, and is idempotent on its own output.
package derive

import (
	"strconv"
	"strings"
	"time"

	"github.com/citypulse/crimes-backend-go/internal/dataset"
	"github.com/citypulse/crimes-backend-go/internal/models"
)

// Date layouts accepted from the source files, tried in order. The first is
// the Chicago export format ("05/03/2019 02:00:00 PM").
var dateLayouts = []string{
	"01/02/2006 03:04:05 PM",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Derive returns a new table with the derived temporal columns added, the
// geographic ID columns canonicalized and the flag columns coerced to
// booleans. The input table is not modified. Columns absent from the input
// are skipped, except the derived temporal columns, which are always present
// in the output (all-missing when underivable) so downstream aggregation can
// rely on them.
func Derive(t *dataset.Table) *dataset.Table {
	cols := t.Columns()
	idx := make(map[string]int, len(cols))
	for i, c := range cols {
		idx[c] = i
	}
	for _, c := range []string{models.ColYear, models.ColMonth, models.ColYearMonth, models.ColWeekday, models.ColHour} {
		if _, ok := idx[c]; !ok {
			idx[c] = len(cols)
			cols = append(cols, c)
		}
	}

	out := dataset.New(cols...)
	dateIdx, hasDate := t.ColumnIndex(models.ColDate)
	rawYearIdx, hasRawYear := t.ColumnIndex(models.ColYear)

	geoIdx := make(map[int]struct{})
	for _, c := range models.GeoIDColumns {
		if i, ok := t.ColumnIndex(c); ok {
			geoIdx[i] = struct{}{}
		}
	}
	flagIdx := make(map[int]struct{})
	for _, c := range models.FlagColumns {
		if i, ok := t.ColumnIndex(c); ok {
			flagIdx[i] = struct{}{}
		}
	}

	for r := 0; r < t.NumRows(); r++ {
		src := t.Row(r)
		row := make([]dataset.Value, len(cols))
		for i := range row {
			row[i] = dataset.Missing()
		}
		for i, v := range src {
			if hasDate && i == dateIdx {
				row[i] = parseDate(v)
			} else if _, geo := geoIdx[i]; geo {
				row[i] = canonicalGeoID(v)
			} else if _, flag := flagIdx[i]; flag {
				row[i] = dataset.Bool(Truthy(v))
			} else {
				row[i] = v
			}
		}

		if hasDate {
			// Temporal features are a pure function of the parsed date;
			// a raw Year column in the source is superseded.
			for _, c := range []string{models.ColYear, models.ColMonth, models.ColYearMonth, models.ColWeekday, models.ColHour} {
				row[idx[c]] = dataset.Missing()
			}
			if ts, ok := row[dateIdx].AsTime(); ok {
				row[idx[models.ColYear]] = dataset.Num(float64(ts.Year()))
				row[idx[models.ColMonth]] = dataset.Num(float64(ts.Month()))
				row[idx[models.ColYearMonth]] = dataset.Timestamp(truncateToMonth(ts))
				row[idx[models.ColWeekday]] = dataset.Str(ts.Weekday().String())
				row[idx[models.ColHour]] = dataset.Num(float64(ts.Hour()))
			}
		} else if hasRawYear {
			row[idx[models.ColYear]] = coerceNumeric(src[rawYearIdx])
		}

		out.AppendRow(row)
	}
	return out
}

// parseDate parses a raw date cell to a timestamp, coercing unparseable
// values to missing. Already-parsed timestamps pass through unchanged, which
// keeps Derive idempotent.
func parseDate(v dataset.Value) dataset.Value {
	if _, ok := v.AsTime(); ok {
		return v
	}
	s, ok := v.AsString()
	if !ok {
		return dataset.Missing()
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return dataset.Missing()
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return dataset.Timestamp(ts)
		}
	}
	return dataset.Missing()
}

// canonicalGeoID converts a geographic identifier to its canonical trimmed
// string form, stripping the trailing ".0" artifact that float coercion
// leaves on numeric IDs. Idempotent: re-applying to an already canonical
// value is a no-op.
func canonicalGeoID(v dataset.Value) dataset.Value {
	switch v.Kind() {
	case dataset.KindMissing:
		return v
	case dataset.KindNumber:
		return dataset.Str(v.String())
	default:
		s, _ := v.AsString()
		s = strings.TrimSpace(s)
		if s == "" {
			return dataset.Missing()
		}
		if strings.Contains(s, ".") {
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return dataset.Str(strconv.FormatFloat(f, 'f', -1, 64))
			}
		}
		return dataset.Str(s)
	}
}

// Truthy maps a raw flag cell to a boolean. The mapping is total: the
// recognized true tokens (case-insensitive "true", "t", "1", "yes", "y") and
// the number 1 map to true, everything else, including missing, maps to
// false.
func Truthy(v dataset.Value) bool {
	switch v.Kind() {
	case dataset.KindBool:
		b, _ := v.AsBool()
		return b
	case dataset.KindNumber:
		n, _ := v.AsNum()
		return n == 1
	case dataset.KindString:
		s, _ := v.AsString()
		switch strings.ToUpper(strings.TrimSpace(s)) {
		case "TRUE", "T", "1", "YES", "Y":
			return true
		}
		return false
	default:
		return false
	}
}

func coerceNumeric(v dataset.Value) dataset.Value {
	if _, ok := v.AsNum(); ok {
		return v
	}
	s, ok := v.AsString()
	if !ok {
		return dataset.Missing()
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		return dataset.Num(f)
	}
	return dataset.Missing()
}

func truncateToMonth(ts time.Time) time.Time {
	return time.Date(ts.Year(), ts.Month(), 1, 0, 0, 0, 0, ts.Location())
}
