package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/banshee-data/geocluster/internal/fsutil"
	"github.com/banshee-data/geocluster/internal/ingest"
	"github.com/banshee-data/geocluster/internal/kmeans"
)

// DefaultConfigPath is the path to the canonical run defaults file.
const DefaultConfigPath = "config/geocluster.defaults.json"

// maxFileSize caps config files at 1MB.
const maxFileSize = 1 * 1024 * 1024

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// RunConfig is the configuration for one clustering run. Omitted fields
// fall back to the defaults returned by the Get* methods, so partial
// files are safe.
type RunConfig struct {
	// Clustering
	NClusters     *int   `json:"n_clusters,omitempty"`
	MaxIterations *int   `json:"max_iterations,omitempty"`
	Seed          *int64 `json:"seed,omitempty"` // 0 or unset: seed from the clock
	Workers       *int   `json:"workers,omitempty"`

	// Input
	DataPath *string `json:"data_path,omitempty"`

	// Study area (UTM metres, inclusive)
	OriginEasting  *int `json:"origin_easting,omitempty"`
	OriginNorthing *int `json:"origin_northing,omitempty"`
	ExtentEasting  *int `json:"extent_easting,omitempty"`
	ExtentNorthing *int `json:"extent_northing,omitempty"`

	// Map output
	BasemapPath        *string  `json:"basemap_path,omitempty"`
	BasemapWidth       *int     `json:"basemap_width,omitempty"`
	BasemapHeight      *int     `json:"basemap_height,omitempty"`
	FireSymbolSize     *float64 `json:"fire_symbol_size,omitempty"`
	FireSymbolColor    *string  `json:"fire_symbol_color,omitempty"`
	CentroidSymbolSize *float64 `json:"centroid_symbol_size,omitempty"`
	CentroidColor      *string  `json:"centroid_color,omitempty"`
	OutputDir          *string  `json:"output_dir,omitempty"`
	WriteHTML          *bool    `json:"write_html,omitempty"`
}

func ptrInt(v int) *int             { return &v }
func ptrInt64(v int64) *int64       { return &v }
func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }
func ptrBool(v bool) *bool          { return &v }

// EmptyRunConfig returns a RunConfig with every field unset.
func EmptyRunConfig() *RunConfig {
	return &RunConfig{}
}

// DefaultRunConfig returns a RunConfig with every field set to its default.
func DefaultRunConfig() *RunConfig {
	c := EmptyRunConfig()
	return &RunConfig{
		NClusters:          ptrInt(c.GetNClusters()),
		MaxIterations:      ptrInt(c.GetMaxIterations()),
		Seed:               ptrInt64(c.GetSeed()),
		Workers:            ptrInt(c.GetWorkers()),
		DataPath:           ptrString(c.GetDataPath()),
		OriginEasting:      ptrInt(c.GetBounds().OriginEasting),
		OriginNorthing:     ptrInt(c.GetBounds().OriginNorthing),
		ExtentEasting:      ptrInt(c.GetBounds().ExtentEasting),
		ExtentNorthing:     ptrInt(c.GetBounds().ExtentNorthing),
		BasemapPath:        ptrString(c.GetBasemapPath()),
		BasemapWidth:       ptrInt(c.GetBasemapWidth()),
		BasemapHeight:      ptrInt(c.GetBasemapHeight()),
		FireSymbolSize:     ptrFloat64(c.GetFireSymbolSize()),
		FireSymbolColor:    ptrString(c.GetFireSymbolColor()),
		CentroidSymbolSize: ptrFloat64(c.GetCentroidSymbolSize()),
		CentroidColor:      ptrString(c.GetCentroidColor()),
		OutputDir:          ptrString(c.GetOutputDir()),
		WriteHTML:          ptrBool(c.GetWriteHTML()),
	}
}

// LoadRunConfig loads a RunConfig from a JSON file on fsys.
// The file must have a .json extension and be at most 1MB.
func LoadRunConfig(fsys fsutil.FileSystem, path string) (*RunConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := fsys.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := fsys.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyRunConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration values are usable.
func (c *RunConfig) Validate() error {
	if c.NClusters != nil && *c.NClusters < 1 {
		return fmt.Errorf("n_clusters must be at least 1, got %d", *c.NClusters)
	}
	if c.MaxIterations != nil && *c.MaxIterations < 1 {
		return fmt.Errorf("max_iterations must be at least 1, got %d", *c.MaxIterations)
	}
	if c.Workers != nil && *c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", *c.Workers)
	}
	if err := c.GetBounds().Validate(); err != nil {
		return fmt.Errorf("study area: %w", err)
	}
	if c.BasemapWidth != nil && *c.BasemapWidth <= 0 {
		return fmt.Errorf("basemap_width must be positive, got %d", *c.BasemapWidth)
	}
	if c.BasemapHeight != nil && *c.BasemapHeight <= 0 {
		return fmt.Errorf("basemap_height must be positive, got %d", *c.BasemapHeight)
	}
	if c.FireSymbolSize != nil && *c.FireSymbolSize <= 0 {
		return fmt.Errorf("fire_symbol_size must be positive, got %g", *c.FireSymbolSize)
	}
	if c.CentroidSymbolSize != nil && *c.CentroidSymbolSize <= 0 {
		return fmt.Errorf("centroid_symbol_size must be positive, got %g", *c.CentroidSymbolSize)
	}
	for name, v := range map[string]*string{"fire_symbol_color": c.FireSymbolColor, "centroid_color": c.CentroidColor} {
		if v != nil && !hexColor.MatchString(*v) {
			return fmt.Errorf("%s must look like #rrggbb, got %q", name, *v)
		}
	}
	return nil
}

// Params returns the clustering parameters for the kmeans driver.
func (c *RunConfig) Params() kmeans.Params {
	return kmeans.Params{
		NClusters:     c.GetNClusters(),
		MaxIterations: c.GetMaxIterations(),
		Workers:       c.GetWorkers(),
	}
}

// GetNClusters returns the n_clusters value or the default.
func (c *RunConfig) GetNClusters() int {
	if c.NClusters == nil {
		return 5
	}
	return *c.NClusters
}

// GetMaxIterations returns the max_iterations value or the default.
func (c *RunConfig) GetMaxIterations() int {
	if c.MaxIterations == nil {
		return 20
	}
	return *c.MaxIterations
}

// GetSeed returns the seed value, 0 when unset.
func (c *RunConfig) GetSeed() int64 {
	if c.Seed == nil {
		return 0
	}
	return *c.Seed
}

// ResolveSeed returns the configured seed, or fallback when none is set.
func (c *RunConfig) ResolveSeed(fallback int64) int64 {
	if s := c.GetSeed(); s != 0 {
		return s
	}
	return fallback
}

// GetWorkers returns the workers value or the default.
func (c *RunConfig) GetWorkers() int {
	if c.Workers == nil {
		return 1
	}
	return *c.Workers
}

// GetDataPath returns the data_path value or the default.
func (c *RunConfig) GetDataPath() string {
	if c.DataPath == nil {
		return "data/locations_utm.csv"
	}
	return *c.DataPath
}

// GetBounds returns the study area, filling unset edges with defaults.
func (c *RunConfig) GetBounds() ingest.Bounds {
	b := ingest.Bounds{
		OriginEasting:  442151,
		OriginNorthing: 4729315,
		ExtentEasting:  914041,
		ExtentNorthing: 5071453,
	}
	if c.OriginEasting != nil {
		b.OriginEasting = *c.OriginEasting
	}
	if c.OriginNorthing != nil {
		b.OriginNorthing = *c.OriginNorthing
	}
	if c.ExtentEasting != nil {
		b.ExtentEasting = *c.ExtentEasting
	}
	if c.ExtentNorthing != nil {
		b.ExtentNorthing = *c.ExtentNorthing
	}
	return b
}

// GetBasemapPath returns the basemap_path value, empty for no background.
func (c *RunConfig) GetBasemapPath() string {
	if c.BasemapPath == nil {
		return ""
	}
	return *c.BasemapPath
}

// GetBasemapWidth returns the output width in pixels.
func (c *RunConfig) GetBasemapWidth() int {
	if c.BasemapWidth == nil {
		return 1000
	}
	return *c.BasemapWidth
}

// GetBasemapHeight returns the output height in pixels.
func (c *RunConfig) GetBasemapHeight() int {
	if c.BasemapHeight == nil {
		return 725
	}
	return *c.BasemapHeight
}

// GetFireSymbolSize returns the point marker radius in pixels.
func (c *RunConfig) GetFireSymbolSize() float64 {
	if c.FireSymbolSize == nil {
		return 2
	}
	return *c.FireSymbolSize
}

// GetFireSymbolColor returns the point marker colour.
func (c *RunConfig) GetFireSymbolColor() string {
	if c.FireSymbolColor == nil {
		return "#ff0000"
	}
	return *c.FireSymbolColor
}

// GetCentroidSymbolSize returns the centroid marker radius in pixels.
func (c *RunConfig) GetCentroidSymbolSize() float64 {
	if c.CentroidSymbolSize == nil {
		return 10
	}
	return *c.CentroidSymbolSize
}

// GetCentroidColor returns the centroid marker colour.
func (c *RunConfig) GetCentroidColor() string {
	if c.CentroidColor == nil {
		return "#0000ff"
	}
	return *c.CentroidColor
}

// GetOutputDir returns the directory for rendered maps.
func (c *RunConfig) GetOutputDir() string {
	if c.OutputDir == nil {
		return "plots"
	}
	return *c.OutputDir
}

// GetWriteHTML reports whether an HTML map is written next to the PNG.
func (c *RunConfig) GetWriteHTML() bool {
	if c.WriteHTML == nil {
		return true
	}
	return *c.WriteHTML
}
