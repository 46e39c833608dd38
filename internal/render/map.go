package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"sync"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/banshee-data/geocluster/internal/fsutil"
	"github.com/banshee-data/geocluster/internal/ingest"
	"github.com/banshee-data/geocluster/internal/kmeans"
)

// dpi is the resolution gonum/plot uses for raster output.
const dpi = 96

// Style controls marker sizes, colours and output dimensions.
type Style struct {
	Width         int // pixels
	Height        int // pixels
	FireSize      float64
	FireColor     color.RGBA
	CentroidSize  float64
	CentroidColor color.RGBA
}

// DefaultStyle returns the style used when none is configured.
func DefaultStyle() Style {
	return Style{
		Width:         1000,
		Height:        725,
		FireSize:      2,
		FireColor:     color.RGBA{R: 255, A: 255},
		CentroidSize:  10,
		CentroidColor: color.RGBA{B: 255, A: 255},
	}
}

// MapRenderer records a clustering run and renders it over the study area.
type MapRenderer struct {
	mu      sync.Mutex
	points  []kmeans.Point
	bounds  ingest.Bounds
	style   Style
	basemap image.Image

	// tracks[i] is every position centroid i has held, oldest first.
	tracks [][]kmeans.Point
	result *kmeans.Result
}

// NewMapRenderer creates a renderer for points inside bounds.
func NewMapRenderer(points []kmeans.Point, bounds ingest.Bounds, style Style) *MapRenderer {
	return &MapRenderer{
		points: points,
		bounds: bounds,
		style:  style,
	}
}

// SetBasemap sets an image drawn underneath everything else, stretched
// over the study area.
func (m *MapRenderer) SetBasemap(img image.Image) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.basemap = img
}

// LoadBasemap decodes a PNG or JPEG image from fsys.
func LoadBasemap(fsys fsutil.FileSystem, path string) (image.Image, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open basemap: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode basemap %s: %w", path, err)
	}
	return img, nil
}

// Initialized places one centroid marker per cluster.
func (m *MapRenderer) Initialized(centroids kmeans.CentroidSet) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tracks = make([][]kmeans.Point, len(centroids))
	for i, c := range centroids {
		m.tracks[i] = []kmeans.Point{c}
	}
	m.result = nil
}

// CentroidsMoved moves each centroid marker to its new position.
func (m *MapRenderer) CentroidsMoved(_ int, centroids kmeans.CentroidSet) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range centroids {
		if i < len(m.tracks) {
			m.tracks[i] = append(m.tracks[i], c)
		}
	}
}

// Finished keeps the final partition for the connector lines.
func (m *MapRenderer) Finished(res *kmeans.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.result = res
}

var _ kmeans.Observer = (*MapRenderer)(nil)

// Tracks returns a copy of each centroid's position history.
func (m *MapRenderer) Tracks() [][]kmeans.Point {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]kmeans.Point, len(m.tracks))
	for i, t := range m.tracks {
		out[i] = append([]kmeans.Point(nil), t...)
	}
	return out
}

// Plot builds the map. Before Finished only the input points are drawn.
func (m *MapRenderer) Plot() (*plot.Plot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b := m.bounds
	p := plot.New()
	p.X.Label.Text = "Easting (m)"
	p.Y.Label.Text = "Northing (m)"
	p.Title.Text = fmt.Sprintf("%d points", len(m.points))

	if m.basemap != nil {
		p.Add(plotter.NewImage(m.basemap,
			float64(b.OriginEasting), float64(b.OriginNorthing),
			float64(b.ExtentEasting), float64(b.ExtentNorthing)))
	}

	fires, err := plotter.NewScatter(toXYs(m.points))
	if err != nil {
		return nil, fmt.Errorf("fire points: %w", err)
	}
	fires.GlyphStyle.Color = m.style.FireColor
	fires.GlyphStyle.Radius = vg.Points(m.style.FireSize)
	fires.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(fires)
	p.Legend.Add("points", fires)

	if res := m.result; res != nil {
		p.Title.Text = fmt.Sprintf("%d points, %d clusters, %s after %d rounds",
			len(m.points), len(res.Centroids), res.State, res.Rounds)

		colors := clusterColors(len(res.Partition))
		for i, cluster := range res.Partition {
			if len(cluster) == 0 {
				continue
			}
			p.Add(&connectors{
				from:  res.Centroids[i],
				to:    cluster,
				style: draw.LineStyle{Color: colors[i], Width: vg.Points(0.5)},
			})
		}

		for i, track := range m.tracks {
			if len(track) < 2 {
				continue
			}
			line, err := plotter.NewLine(toXYs(track))
			if err != nil {
				return nil, fmt.Errorf("centroid %d track: %w", i, err)
			}
			line.Color = m.style.CentroidColor
			line.Width = vg.Points(1)
			line.Dashes = []vg.Length{vg.Points(3), vg.Points(2)}
			p.Add(line)
		}

		centroids, err := plotter.NewScatter(toXYs(res.Centroids))
		if err != nil {
			return nil, fmt.Errorf("centroids: %w", err)
		}
		centroids.GlyphStyle.Color = m.style.CentroidColor
		centroids.GlyphStyle.Radius = vg.Points(m.style.CentroidSize)
		centroids.GlyphStyle.Shape = draw.RingGlyph{}
		p.Add(centroids)
		p.Legend.Add("centroids", centroids)
	}

	// Pin the axes to the study area so sentinel centroids at (0,0)
	// do not stretch the map.
	p.X.Min, p.X.Max = float64(b.OriginEasting), float64(b.ExtentEasting)
	p.Y.Min, p.Y.Max = float64(b.OriginNorthing), float64(b.ExtentNorthing)
	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p, nil
}

// RenderPNG writes the map as a PNG of Style.Width x Style.Height pixels.
func (m *MapRenderer) RenderPNG(w io.Writer) error {
	if m.style.Width <= 0 || m.style.Height <= 0 {
		return errors.New("render size must be positive")
	}
	p, err := m.Plot()
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(pixels(m.style.Width), pixels(m.style.Height), "png")
	if err != nil {
		return fmt.Errorf("failed to create PNG writer: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write PNG: %w", err)
	}
	return nil
}

func pixels(n int) vg.Length {
	return vg.Length(n) * vg.Inch / dpi
}

func toXYs(points []kmeans.Point) plotter.XYs {
	xys := make(plotter.XYs, len(points))
	for i, p := range points {
		xys[i] = plotter.XY{X: float64(p.X), Y: float64(p.Y)}
	}
	return xys
}

// connectors draws a line from one centroid to every member of its cluster.
type connectors struct {
	from  kmeans.Point
	to    []kmeans.Point
	style draw.LineStyle
}

func (c *connectors) Plot(canvas draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&canvas)
	x0, y0 := trX(float64(c.from.X)), trY(float64(c.from.Y))
	for _, p := range c.to {
		canvas.StrokeLine2(c.style, x0, y0, trX(float64(p.X)), trY(float64(p.Y)))
	}
}
