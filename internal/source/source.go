// Package source implements the per-year incident loaders, the process-wide
// memoized store, and the multi-year assembler.
package source

import (
	"errors"

	"github.com/citypulse/crimes-backend-go/internal/dataset"
)

// ErrSourceUnavailable indicates that no source data is registered or
// accessible for the requested year. Callers treat it as a non-fatal empty
// result: the year contributes zero rows and is reported as unavailable,
// which keeps "no source" distinguishable from "loaded but empty".
var ErrSourceUnavailable = errors.New("source unavailable")

// Source loads one year's raw incident records into an in-memory table with
// all columns as originally encoded; no feature derivation happens at this
// stage. Implementations return an error wrapping ErrSourceUnavailable when
// the year has no backing data.
type Source interface {
	Load(year int) (*dataset.Table, error)
}
