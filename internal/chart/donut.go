package chart

import (
	"bytes"
	"fmt"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/acadeval/report-server/internal/metrics"
)

// defaultPalette follows the evaluation form's rating colors: best to
// worst. Colors are assigned by position in the summary's category order,
// so the same category always gets the same color within one report.
var defaultPalette = []drawing.Color{
	drawing.ColorFromHex("2ca02c"),
	drawing.ColorFromHex("1f77b4"),
	drawing.ColorFromHex("ff7f0e"),
	drawing.ColorFromHex("d62728"),
	drawing.ColorFromHex("9467bd"),
	drawing.ColorFromHex("8c564b"),
	drawing.ColorFromHex("e377c2"),
	drawing.ColorFromHex("7f7f7f"),
}

var placeholderColor = drawing.ColorFromHex("cccccc")

// Renderer turns question summaries into static donut chart images.
type Renderer struct {
	Width   int
	Height  int
	Palette []drawing.Color
}

// NewRenderer returns a renderer with the default size and palette.
func NewRenderer() *Renderer {
	return &Renderer{
		Width:   512,
		Height:  400,
		Palette: defaultPalette,
	}
}

// Donut renders the distribution of one summary as a PNG donut chart.
// Segments appear in the summary's first-occurrence category order and
// labels carry each category's share of the valid responses. A summary
// with no valid responses renders an explicit placeholder instead of a
// broken chart.
func (r *Renderer) Donut(summary metrics.QuestionSummary) ([]byte, error) {
	if !summary.HasData() {
		return r.render(summary.Question, []gochart.Value{{
			Value: 1,
			Label: "No responses",
			Style: gochart.Style{FillColor: placeholderColor},
		}})
	}

	values := make([]gochart.Value, 0, len(summary.Categories))
	for i, category := range summary.Categories {
		count := summary.Counts[category]
		if count == 0 {
			continue
		}
		share := float64(count) / float64(summary.Valid) * 100
		values = append(values, gochart.Value{
			Value: float64(count),
			Label: fmt.Sprintf("%s (%.0f%%)", category, share),
			Style: gochart.Style{FillColor: r.color(i)},
		})
	}

	return r.render(summary.Question, values)
}

func (r *Renderer) render(title string, values []gochart.Value) ([]byte, error) {
	donut := gochart.DonutChart{
		Title:  title,
		Width:  r.Width,
		Height: r.Height,
		Values: values,
	}

	var buf bytes.Buffer
	if err := donut.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render donut chart %q: %w", title, err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) color(i int) drawing.Color {
	palette := r.Palette
	if len(palette) == 0 {
		palette = defaultPalette
	}
	return palette[i%len(palette)]
}
