// Package query implements the filter engine and the aggregation queries
// that back every dashboard view.
package query

import (
	"github.com/citypulse/crimes-backend-go/internal/dataset"
	"github.com/citypulse/crimes-backend-go/internal/models"
)

// Apply evaluates the filter against the table and returns the matching
// rows as a new table; the input is never mutated. Each supplied dimension
// restricts independently and all dimensions combine with AND. A dimension
// whose column is absent from the table is skipped. A predicate set that
// covers every value currently present in its column is equivalent to no
// restriction — the dashboard's "select all" convention, implemented here
// explicitly because the available values change with the active years.
func Apply(t *dataset.Table, f models.IncidentFilter) *dataset.Table {
	type setPredicate struct {
		col int
		set map[string]struct{}
	}
	var preds []setPredicate

	addSet := func(col string, values []string) {
		if len(values) == 0 {
			return
		}
		i, ok := t.ColumnIndex(col)
		if !ok {
			return
		}
		set := make(map[string]struct{}, len(values))
		for _, v := range values {
			set[v] = struct{}{}
		}
		if coversAll(set, t.Distinct(col)) {
			return
		}
		preds = append(preds, setPredicate{col: i, set: set})
	}

	addSet(models.ColPrimaryType, f.PrimaryTypes)
	addSet(models.ColDistrict, f.Districts)
	addSet(models.ColWard, f.Wards)
	addSet(models.ColCommunityArea, f.CommunityAreas)
	addSet(models.ColBeat, f.Beats)
	addSet(models.ColLocationDescription, f.LocationDescriptions)

	arrestCol, hasArrest := t.ColumnIndex(models.ColArrest)
	wantArrest := hasArrest && f.ArrestStatus != "" && f.ArrestStatus != models.StatusAny
	domesticCol, hasDomestic := t.ColumnIndex(models.ColDomestic)
	wantDomestic := hasDomestic && f.DomesticStatus != "" && f.DomesticStatus != models.StatusAny

	if len(preds) == 0 && !wantArrest && !wantDomestic {
		return t.Select(func([]dataset.Value) bool { return true })
	}

	return t.Select(func(row []dataset.Value) bool {
		for _, p := range preds {
			v := row[p.col]
			if v.IsMissing() {
				return false
			}
			if _, ok := p.set[v.String()]; !ok {
				return false
			}
		}
		if wantArrest {
			b, _ := row[arrestCol].AsBool()
			if b != (f.ArrestStatus == models.StatusArrested) {
				return false
			}
		}
		if wantDomestic {
			b, _ := row[domesticCol].AsBool()
			if b != (f.DomesticStatus == models.StatusDomestic) {
				return false
			}
		}
		return true
	})
}

// coversAll reports whether set contains every currently available value.
func coversAll(set map[string]struct{}, available []string) bool {
	if len(available) == 0 {
		return false
	}
	for _, v := range available {
		if _, ok := set[v]; !ok {
			return false
		}
	}
	return true
}
