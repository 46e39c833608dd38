// Command geocluster groups point locations from a CSV file into spatial
// clusters with k-means and renders the result over the study area.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/banshee-data/geocluster/internal/config"
	"github.com/banshee-data/geocluster/internal/fsutil"
	"github.com/banshee-data/geocluster/internal/ingest"
	"github.com/banshee-data/geocluster/internal/kmeans"
	"github.com/banshee-data/geocluster/internal/render"
	"github.com/banshee-data/geocluster/internal/version"
)

var (
	configPath    = flag.String("config", "", "Path to a JSON run config (default: "+config.DefaultConfigPath+" if present)")
	dataPath      = flag.String("data", "", "CSV file with Easting and Northing columns")
	nClusters     = flag.Int("n", 0, "Number of clusters")
	maxIterations = flag.Int("max-iterations", 0, "Maximum assignment rounds")
	seed          = flag.Int64("seed", 0, "Random seed for the initial partition (0: clock)")
	workers       = flag.Int("workers", 0, "Goroutines for the assignment step")
	outputDir     = flag.String("out", "", "Directory for rendered maps")
	basemapPath   = flag.String("basemap", "", "PNG or JPEG drawn under the map")
	noHTML        = flag.Bool("no-html", false, "Skip the HTML map")
	printPoints   = flag.Bool("print-points", false, "Print every point of every cluster")
	debug         = flag.Bool("debug", false, "Enable the diagnostic log stream")
	trace         = flag.Bool("trace", false, "Enable the per-round trace log stream")
	showVersion   = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	fsys := fsutil.OSFileSystem{}
	cfg, err := loadConfig(fsys, *configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	applyFlags(cfg, set)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	streams := kmeans.LogWriters{Ops: os.Stderr}
	if *debug {
		streams.Diag = os.Stderr
	}
	if *trace {
		streams.Trace = os.Stderr
	}
	kmeans.SetLogWriters(streams)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, err := run(ctx, fsys, cfg, os.Stdout); err != nil {
		log.Fatalf("geocluster: %v", err)
	}
}

// loadConfig reads path, or the defaults file when path is empty and the
// file exists. With neither, every field takes its default.
func loadConfig(fsys fsutil.FileSystem, path string) (*config.RunConfig, error) {
	if path == "" {
		if _, err := fsys.Stat(config.DefaultConfigPath); err != nil {
			return config.EmptyRunConfig(), nil
		}
		path = config.DefaultConfigPath
	}
	return config.LoadRunConfig(fsys, path)
}

// applyFlags copies explicitly set flags over cfg.
func applyFlags(cfg *config.RunConfig, set map[string]bool) {
	if set["data"] {
		cfg.DataPath = dataPath
	}
	if set["n"] {
		cfg.NClusters = nClusters
	}
	if set["max-iterations"] {
		cfg.MaxIterations = maxIterations
	}
	if set["seed"] {
		cfg.Seed = seed
	}
	if set["workers"] {
		cfg.Workers = workers
	}
	if set["out"] {
		cfg.OutputDir = outputDir
	}
	if set["basemap"] {
		cfg.BasemapPath = basemapPath
	}
	if set["no-html"] {
		writeHTML := !*noHTML
		cfg.WriteHTML = &writeHTML
	}
}

// styleFromConfig converts configured colours and sizes for the renderer.
func styleFromConfig(cfg *config.RunConfig) (render.Style, error) {
	fire, err := render.ParseHexColor(cfg.GetFireSymbolColor())
	if err != nil {
		return render.Style{}, err
	}
	centroid, err := render.ParseHexColor(cfg.GetCentroidColor())
	if err != nil {
		return render.Style{}, err
	}
	return render.Style{
		Width:         cfg.GetBasemapWidth(),
		Height:        cfg.GetBasemapHeight(),
		FireSize:      cfg.GetFireSymbolSize(),
		FireColor:     fire,
		CentroidSize:  cfg.GetCentroidSymbolSize(),
		CentroidColor: centroid,
	}, nil
}

// run loads points, clusters them, writes the maps and prints a summary
// of the final partition to out.
func run(ctx context.Context, fsys fsutil.FileSystem, cfg *config.RunConfig, out io.Writer) (*kmeans.Result, error) {
	bounds := cfg.GetBounds()
	points, stats, err := ingest.LoadPoints(fsys, cfg.GetDataPath(), bounds)
	if err != nil {
		return nil, err
	}
	log.Printf("Loaded %d points from %s (%d rows, %d outside study area)",
		stats.Kept, cfg.GetDataPath(), stats.Rows, stats.Filtered)

	style, err := styleFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	renderer := render.NewMapRenderer(points, bounds, style)
	if path := cfg.GetBasemapPath(); path != "" {
		img, err := render.LoadBasemap(fsys, path)
		if err != nil {
			return nil, err
		}
		renderer.SetBasemap(img)
	}

	seedValue := cfg.ResolveSeed(time.Now().UnixNano())
	log.Printf("Clustering with n=%d max_iterations=%d seed=%d", cfg.GetNClusters(), cfg.GetMaxIterations(), seedValue)

	res, err := kmeans.NewClusterer(cfg.Params(), seedValue).Cluster(ctx, points, renderer)
	if err != nil {
		return nil, fmt.Errorf("clustering failed: %w", err)
	}

	written, err := renderer.Save(fsys, cfg.GetOutputDir(), res.RunID, cfg.GetWriteHTML())
	if err != nil {
		return res, fmt.Errorf("failed to write maps: %w", err)
	}
	for _, path := range written {
		log.Printf("Wrote %s", path)
	}

	printSummary(out, res, *printPoints)
	return res, nil
}

func printSummary(w io.Writer, res *kmeans.Result, withPoints bool) {
	fmt.Fprintf(w, "run %s: %s after %d rounds\n", res.RunID, res.State, res.Rounds)
	for i, cluster := range res.Partition {
		fmt.Fprintf(w, "cluster %d: centroid=%v points=%d\n", i, res.Centroids[i], len(cluster))
		if withPoints {
			for _, p := range cluster {
				fmt.Fprintf(w, "  %v\n", p)
			}
		}
	}
}
