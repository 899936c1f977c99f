// Package config holds the command-line configuration of osmclean
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"

	"github.com/wegman-software/osmclean/internal/reshape"
)

// BBox represents a geographic bounding box
type BBox struct {
	MinLon, MinLat, MaxLon, MaxLat float64
}

// RichmondBBox is the default download area
var RichmondBBox = BBox{MinLon: -77.5999, MinLat: 37.3729, MaxLon: -77.2689, MaxLat: 37.7039}

// Bound converts the box to an orb.Bound
func (b BBox) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.MinLon, b.MinLat},
		Max: orb.Point{b.MaxLon, b.MaxLat},
	}
}

// String formats the box as "minlon,minlat,maxlon,maxlat"
func (b BBox) String() string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return strings.Join([]string{f(b.MinLon), f(b.MinLat), f(b.MaxLon), f(b.MaxLat)}, ",")
}

// ParseBBox parses a bbox string in format "minlon,minlat,maxlon,maxlat"
func ParseBBox(s string) (BBox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return BBox{}, fmt.Errorf("bbox must have 4 values: minlon,minlat,maxlon,maxlat")
	}

	var coords [4]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return BBox{}, fmt.Errorf("invalid bbox coordinate %q: %w", p, err)
		}
		coords[i] = v
	}

	bbox := BBox{
		MinLon: coords[0],
		MinLat: coords[1],
		MaxLon: coords[2],
		MaxLat: coords[3],
	}

	// Validate
	if bbox.MinLon > bbox.MaxLon {
		return BBox{}, fmt.Errorf("minlon (%f) must be <= maxlon (%f)", bbox.MinLon, bbox.MaxLon)
	}
	if bbox.MinLat > bbox.MaxLat {
		return BBox{}, fmt.Errorf("minlat (%f) must be <= maxlat (%f)", bbox.MinLat, bbox.MaxLat)
	}
	if bbox.MinLat < -90 || bbox.MaxLat > 90 || bbox.MinLon < -180 || bbox.MaxLon > 180 {
		return BBox{}, fmt.Errorf("bbox %s is outside the valid coordinate range", bbox)
	}

	return bbox, nil
}

// Config holds the settings shared by all commands
type Config struct {
	// Input/output
	InputFile  string
	OutputFile string

	// Transformation settings
	RulesFile    string // YAML tables and filter overrides, local path or URL
	ScriptFile   string // Lua rewrite/include hooks, local path or URL
	Normalize    bool
	Filter       bool
	CountyTags   bool
	Collision    string // accumulate or strict
	Strict       bool   // abort on the first invalid record
	Format       string // jsonl or parquet
	Pretty       bool
	SampleEvery  int
	AuditAllTags bool

	// Download settings
	BBox     BBox
	Endpoint string

	// Database settings
	Target          string // mongo or postgres
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
	DBHost          string
	DBPort          int
	DBName          string
	DBUser          string
	DBPassword      string
	DBSchema        string
	DBTable         string
	DropExisting    bool
	BatchSize       int

	// Logging and metrics
	Verbose          bool
	LogFile          string
	MetricsAddr      string        // empty = no endpoint
	MetricsInterval  time.Duration // 0 = no resource sampling
	ProgressInterval time.Duration
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Normalize:        true,
		Filter:           true,
		CountyTags:       true,
		Collision:        reshape.Accumulate.String(),
		Format:           "jsonl",
		SampleEvery:      10,
		BBox:             RichmondBBox,
		Endpoint:         "https://overpass-api.de/api/interpreter",
		Target:           "mongo",
		MongoURI:         "mongodb://localhost:27017",
		MongoDatabase:    "mapdb",
		MongoCollection:  "map_docs",
		DBHost:           "localhost",
		DBPort:           5432,
		DBName:           "osm",
		DBUser:           "postgres",
		DBSchema:         "public",
		DBTable:          "map_docs",
		BatchSize:        1000,
		ProgressInterval: 10 * time.Second,
	}
}

// ConnectionString returns a PostgreSQL connection string
func (c *Config) ConnectionString() string {
	connStr := fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBName, c.DBUser,
	)
	if c.DBPassword != "" {
		connStr += fmt.Sprintf(" password=%s", c.DBPassword)
	}
	return connStr
}

// CollisionPolicy parses the configured collision policy
func (c *Config) CollisionPolicy() (reshape.CollisionPolicy, error) {
	return reshape.ParseCollisionPolicy(c.Collision)
}

// Validate checks the settings used by every element-processing command
func (c *Config) Validate() error {
	if c.InputFile == "" {
		return fmt.Errorf("input file is required")
	}
	if _, err := c.CollisionPolicy(); err != nil {
		return err
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("batch size must be at least 1")
	}
	if c.ProgressInterval <= 0 {
		return fmt.Errorf("progress interval must be positive")
	}
	return nil
}

// ValidateOutput additionally requires an output file of a known format
func (c *Config) ValidateOutput() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.OutputFile == "" {
		return fmt.Errorf("output file is required")
	}
	switch c.Format {
	case "jsonl", "parquet":
	default:
		return fmt.Errorf("unknown output format %q (want jsonl or parquet)", c.Format)
	}
	return nil
}

// ValidateTarget checks the database target of the load command
func (c *Config) ValidateTarget() error {
	if err := c.Validate(); err != nil {
		return err
	}
	switch c.Target {
	case "mongo":
		if c.MongoURI == "" || c.MongoDatabase == "" || c.MongoCollection == "" {
			return fmt.Errorf("mongo target needs a URI, database and collection")
		}
	case "postgres":
		if c.DBTable == "" {
			return fmt.Errorf("postgres target needs a table name")
		}
	default:
		return fmt.Errorf("unknown target %q (want mongo or postgres)", c.Target)
	}
	return nil
}
