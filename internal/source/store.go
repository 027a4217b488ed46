package source

import (
	"errors"
	"sync"

	"github.com/citypulse/crimes-backend-go/internal/dataset"
	"github.com/citypulse/crimes-backend-go/internal/derive"
)

// Store wraps a Source with a process-lifetime memo: each year is read at
// most once, concurrent first requests for the same year share a single
// load (single-flight), and the memo is never invalidated — source data is
// treated as immutable for the run's duration. Loaded tables are read-only,
// so sharing them across sessions is safe.
type Store struct {
	src  Source
	mu   sync.Mutex
	memo map[int]*memoEntry
}

type memoEntry struct {
	once  sync.Once
	table *dataset.Table
	err   error
}

// NewStore creates a memoizing store over src.
func NewStore(src Source) *Store {
	return &Store{
		src:  src,
		memo: make(map[int]*memoEntry),
	}
}

// Load returns the raw table for one year, reading it on first access only.
// An unavailable year memoizes as an empty table plus ErrSourceUnavailable,
// so repeat requests stay cheap and the signal survives.
func (s *Store) Load(year int) (*dataset.Table, error) {
	s.mu.Lock()
	e, ok := s.memo[year]
	if !ok {
		e = &memoEntry{}
		s.memo[year] = e
	}
	s.mu.Unlock()

	e.once.Do(func() {
		t, err := s.src.Load(year)
		if t == nil {
			t = dataset.New()
		}
		e.table, e.err = t, err
	})
	return e.table, e.err
}

// Assembly is the result of a multi-year load: the derived union table plus
// the requested years that had no source behind them. An assembly whose
// every year was unavailable carries an empty table; that state is distinct
// from a loaded table emptied by filtering.
type Assembly struct {
	Table            *dataset.Table
	Years            []int
	UnavailableYears []int
}

// Empty reports whether no requested year could be loaded.
func (a *Assembly) Empty() bool {
	return len(a.UnavailableYears) == len(a.Years)
}

// Assemble loads each requested year through the memo, concatenates the raw
// tables in the order given (null-filling column mismatches across years),
// and applies the feature deriver exactly once over the union. Unavailable
// years are skipped and reported; any other load failure aborts.
func (s *Store) Assemble(years []int) (*Assembly, error) {
	a := &Assembly{Years: append([]int(nil), years...)}

	var parts []*dataset.Table
	for _, y := range years {
		t, err := s.Load(y)
		if err != nil {
			if errors.Is(err, ErrSourceUnavailable) {
				a.UnavailableYears = append(a.UnavailableYears, y)
				continue
			}
			return nil, err
		}
		parts = append(parts, t)
	}

	a.Table = derive.Derive(dataset.Concat(parts...))
	return a, nil
}
