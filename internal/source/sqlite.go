package source

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/citypulse/crimes-backend-go/internal/dataset"
	"github.com/citypulse/crimes-backend-go/internal/models"
)

// SQLiteSource is an alternate year loader with the same contract as
// CSVSource, backed by a read-only SQLite incidents database. Expected
// schema:
//
//	CREATE TABLE incidents (
//	    id INTEGER PRIMARY KEY,
//	    case_number TEXT,
//	    date TEXT,
//	    primary_type TEXT,
//	    description TEXT,
//	    location_description TEXT,
//	    arrest TEXT,
//	    domestic TEXT,
//	    beat TEXT,
//	    district TEXT,
//	    ward TEXT,
//	    community_area TEXT,
//	    latitude REAL,
//	    longitude REAL,
//	    year INTEGER
//	);
//
// Column encodings are as heterogeneous as in the CSV export; the feature
// deriver owns normalization either way.
type SQLiteSource struct {
	db *sql.DB
}

// OpenSQLite opens the incidents database.
func OpenSQLite(path string) (*SQLiteSource, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	// WAL mode for concurrent readers
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteSource{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}

// Load reads all incidents for the given year. A year with no rows at all is
// treated as unregistered and maps to ErrSourceUnavailable, matching the
// missing-file behavior of the CSV source.
func (s *SQLiteSource) Load(year int) (*dataset.Table, error) {
	rows, err := s.db.Query(`SELECT id, case_number, date, primary_type, description,
		location_description, arrest, domestic, beat, district, ward, community_area,
		latitude, longitude
		FROM incidents WHERE year = ?`, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query incidents for year %d: %w", year, err)
	}
	defer rows.Close()

	t := dataset.New(
		models.ColID, models.ColCaseNumber, models.ColDate, models.ColPrimaryType,
		models.ColDescription, models.ColLocationDescription, models.ColArrest,
		models.ColDomestic, models.ColBeat, models.ColDistrict, models.ColWard,
		models.ColCommunityArea, models.ColLatitude, models.ColLongitude,
	)

	for rows.Next() {
		var (
			id       sql.NullInt64
			text     [11]sql.NullString
			lat, lng sql.NullFloat64
		)
		if err := rows.Scan(&id, &text[0], &text[1], &text[2], &text[3], &text[4],
			&text[5], &text[6], &text[7], &text[8], &text[9], &text[10], &lat, &lng); err != nil {
			return nil, fmt.Errorf("failed to scan incident row: %w", err)
		}

		row := make([]dataset.Value, 0, 14)
		if id.Valid {
			row = append(row, dataset.Num(float64(id.Int64)))
		} else {
			row = append(row, dataset.Missing())
		}
		for _, v := range text {
			if v.Valid && v.String != "" {
				row = append(row, dataset.Str(v.String))
			} else {
				row = append(row, dataset.Missing())
			}
		}
		for _, v := range []sql.NullFloat64{lat, lng} {
			if v.Valid {
				row = append(row, dataset.Num(v.Float64))
			} else {
				row = append(row, dataset.Missing())
			}
		}
		t.AppendRow(row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate incidents: %w", err)
	}

	if t.NumRows() == 0 {
		return nil, fmt.Errorf("year %d has no incidents: %w", year, ErrSourceUnavailable)
	}
	return t, nil
}
