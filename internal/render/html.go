package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/geocluster/internal/kmeans"
)

// RenderHTML writes an interactive scatter of the final partition: one
// series per cluster plus a centroid series. Before Finished only the
// input points are written.
func (m *MapRenderer) RenderHTML(w io.Writer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	b := m.bounds
	subtitle := fmt.Sprintf("points=%d", len(m.points))
	if m.result != nil {
		subtitle = fmt.Sprintf("points=%d clusters=%d state=%s rounds=%d run=%s",
			len(m.points), len(m.result.Centroids), m.result.State, m.result.Rounds, m.result.RunID)
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Point Clusters",
			Width:     fmt.Sprintf("%dpx", m.style.Width),
			Height:    fmt.Sprintf("%dpx", m.style.Height),
		}),
		charts.WithTitleOpts(opts.Title{Title: "Point Clusters", Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10"}),
		charts.WithXAxisOpts(opts.XAxis{Min: b.OriginEasting, Max: b.ExtentEasting, Name: "Easting (m)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: b.OriginNorthing, Max: b.ExtentNorthing, Name: "Northing (m)", NameLocation: "middle", NameGap: 60}),
	)

	if m.result == nil {
		scatter.AddSeries("points", scatterData(m.points),
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: int(2 * m.style.FireSize)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: hexString(m.style.FireColor)}))
		return scatter.Render(w)
	}

	colors := clusterColors(len(m.result.Partition))
	for i, cluster := range m.result.Partition {
		scatter.AddSeries(fmt.Sprintf("cluster %d", i), scatterData(cluster),
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: int(2 * m.style.FireSize)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: hexString(colors[i])}))
	}

	// Empty clusters sit on the sentinel, which is off the map.
	var live []kmeans.Point
	for i, c := range m.result.Centroids {
		if len(m.result.Partition[i]) > 0 {
			live = append(live, c)
		}
	}
	scatter.AddSeries("centroids", scatterData(live),
		charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: int(2 * m.style.CentroidSize)}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: hexString(m.style.CentroidColor)}))

	return scatter.Render(w)
}

func scatterData(points []kmeans.Point) []opts.ScatterData {
	data := make([]opts.ScatterData, len(points))
	for i, p := range points {
		data[i] = opts.ScatterData{Value: []interface{}{p.X, p.Y}}
	}
	return data
}
