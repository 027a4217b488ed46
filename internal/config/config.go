package config

import (
	"os"
	"strconv"
)

// Config holds the application configuration.
type Config struct {
	Port          string
	DataDir       string // directory with Crimes_<year>.csv files
	DBPath        string // sqlite incidents database (sqlite backend)
	SourceBackend string // "csv" or "sqlite"
	YearMin       int    // supported year range, inclusive
	YearMax       int
	JWTSecret     string // empty disables API auth
	SampleSize    int    // spatial scatter sample cap
	SampleSeed    int64  // fixed seed for reproducible samples
}

// Load reads configuration from the environment, with defaults matching the
// hosted deployment (yearly files for 2010–2020).
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data/crimes"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/crimes/incidents.db"
	}

	backend := os.Getenv("SOURCE_BACKEND")
	if backend != "sqlite" {
		backend = "csv"
	}

	return &Config{
		Port:          port,
		DataDir:       dataDir,
		DBPath:        dbPath,
		SourceBackend: backend,
		YearMin:       envInt("YEAR_MIN", 2010),
		YearMax:       envInt("YEAR_MAX", 2020),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		SampleSize:    envInt("SPATIAL_SAMPLE_SIZE", 5000),
		SampleSeed:    42,
	}
}

// SupportedYears lists the configured year range.
func (c *Config) SupportedYears() []int {
	years := make([]int, 0, c.YearMax-c.YearMin+1)
	for y := c.YearMin; y <= c.YearMax; y++ {
		years = append(years, y)
	}
	return years
}

func envInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return def
}
