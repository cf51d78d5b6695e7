package epoch

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Plot renders an HTML line chart of the smoothed score at each epoch.
// If the Records carry per-epoch mean scores, those are drawn as a
// second line.
func Plot(title string, records []Record, w io.Writer) error {
	if len(records) == 0 {
		return fmt.Errorf("plot: no records to plot")
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: "Average score per epoch",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Epoch"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Score"}),
	)

	epochs := make([]string, 0, len(records))
	average := make([]opts.LineData, 0, len(records))
	mean := make([]opts.LineData, 0, len(records))
	hasMean := false
	for _, r := range records {
		epochs = append(epochs, fmt.Sprintf("%d", r.Epoch))
		average = append(average, opts.LineData{Value: r.AverageScore})
		mean = append(mean, opts.LineData{Value: r.EpochMean})
		hasMean = hasMean || r.EpisodesInEpoch > 0 && r.EpochMean != 0
	}

	line.SetXAxis(epochs).AddSeries("Running average", average)
	if hasMean {
		line.AddSeries("Epoch mean", mean)
	}

	page := components.NewPage()
	page.AddCharts(line)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("plot: %w", err)
	}
	return nil
}
