package visualize

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/hupe1980/clustereval/analysis"
	"github.com/hupe1980/clustereval/dataset"
)

// ClusterGap is the number of empty bars between two clusters.
const ClusterGap = 10

// ErrNoData is returned when there is nothing to draw.
var ErrNoData = errors.New("visualize: nothing to render")

// Projected is the 2-D view of the data used for the scatter panels.
type Projected struct {
	// Points holds one projected row per sample.
	Points [][]float64

	// Projection maps centroids into the same plane. Optional.
	Projection *dataset.Projection
}

func boolPtr(b bool) *bool {
	return &b
}

// SilhouettePage writes one silhouette bar chart per run. Bars are per
// sample, sorted within each cluster, separated by ClusterGap empty slots and
// marked at the run average. When proj has points, each bar chart is paired
// with a scatter of the projection colored by cluster, with projected
// centroids when the run has them.
func SilhouettePage(w io.Writer, runs []analysis.SilhouetteRun, proj Projected) error {
	if len(runs) == 0 {
		return ErrNoData
	}

	page := components.NewPage()
	page.PageTitle = "Silhouette analysis"
	page.SetLayout(components.PageFlexLayout)

	for _, run := range runs {
		if len(run.Samples) != len(run.Labels) {
			return fmt.Errorf("visualize: k=%d has %d samples and %d labels", run.K, len(run.Samples), len(run.Labels))
		}
		page.AddCharts(silhouetteBars(run))

		if len(proj.Points) == 0 {
			continue
		}
		if len(proj.Points) != len(run.Labels) {
			return fmt.Errorf("visualize: %d projected points for %d labels", len(proj.Points), len(run.Labels))
		}
		page.AddCharts(clusterScatter(run, proj))
	}

	return page.Render(w)
}

func silhouetteBars(run analysis.SilhouetteRun) *charts.Bar {
	clusters := clusterSamples(run)
	ids := sortedKeys(clusters)

	total := 0
	for _, id := range ids {
		total += len(clusters[id]) + ClusterGap
	}
	xAxis := make([]int, total)
	for i := range xAxis {
		xAxis[i] = i
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "640px", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Silhouette plot for %s with n_clusters = %d", run.Algorithm, run.K),
			Subtitle: fmt.Sprintf("average %.4f (%s)", run.Average, run.Metric),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "sample"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "silhouette coefficient"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: boolPtr(true)}),
	)
	bar.SetXAxis(xAxis)

	offset := 0
	for i, id := range ids {
		values := clusters[id]
		data := make([]opts.BarData, total)
		for j := range data {
			data[j] = opts.BarData{Value: "-"}
		}
		for j, v := range values {
			data[offset+j] = opts.BarData{Value: v}
		}
		offset += len(values) + ClusterGap

		seriesOpts := []charts.SeriesOpts{
			charts.WithBarChartOpts(opts.BarChart{Stack: "samples", BarCategoryGap: "0%"}),
		}
		if i == 0 {
			seriesOpts = append(seriesOpts, charts.WithMarkLineNameYAxisItemOpts(
				opts.MarkLineNameYAxisItem{Name: "average", YAxis: run.Average},
			))
		}
		bar.AddSeries(fmt.Sprintf("cluster %d", id), data, seriesOpts...)
	}
	return bar
}

func clusterScatter(run analysis.SilhouetteRun, proj Projected) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "640px", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("Clustered data with n_clusters = %d", run.K)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "PC1"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "PC2"}),
	)

	points := make(map[int][]opts.ScatterData)
	for i, p := range proj.Points {
		points[run.Labels[i]] = append(points[run.Labels[i]], opts.ScatterData{
			Value:      []any{p[0], p[1]},
			SymbolSize: 8,
		})
	}
	for _, id := range sortedKeys(points) {
		scatter.AddSeries(fmt.Sprintf("cluster %d", id), points[id])
	}

	if len(run.Centroids) > 0 && proj.Projection != nil {
		centers := proj.Projection.Transform(run.Centroids)
		data := make([]opts.ScatterData, len(centers))
		for i, c := range centers {
			data[i] = opts.ScatterData{
				Name:       fmt.Sprintf("center %d", i),
				Value:      []any{c[0], c[1]},
				Symbol:     "diamond",
				SymbolSize: 20,
			}
		}
		scatter.AddSeries("centers", data)
	}
	return scatter
}

// clusterSamples groups the silhouette values by cluster and sorts each group.
func clusterSamples(run analysis.SilhouetteRun) map[int][]float64 {
	out := make(map[int][]float64)
	for i, l := range run.Labels {
		out[l] = append(out[l], run.Samples[i])
	}
	for _, values := range out {
		slices.Sort(values)
	}
	return out
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// ElbowChart writes a line chart of inertia against k.
func ElbowChart(w io.Writer, points []analysis.ElbowPoint, title string) error {
	if len(points) == 0 {
		return ErrNoData
	}
	if title == "" {
		title = "Elbow method"
	}

	ks := make([]int, len(points))
	data := make([]opts.LineData, len(points))
	for i, p := range points {
		ks[i] = p.K
		data[i] = opts.LineData{Value: p.Inertia}
	}

	line := charts.NewLine()
	line.PageTitle = title
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: "number of clusters"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "inertia"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: boolPtr(true)}),
	)
	line.SetXAxis(ks).AddSeries("inertia", data,
		charts.WithLabelOpts(opts.Label{Show: boolPtr(true), Position: "top"}),
	)
	return line.Render(w)
}
