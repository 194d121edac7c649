package render

import (
	"bytes"
	"fmt"

	"block_scanner/internal/app/port"
	"block_scanner/internal/domain/entity"

	"github.com/wcharczuk/go-chart/v2"
)

// PieChartRenderer implements port.ChartRenderer with go-chart.
type PieChartRenderer struct {
	width  int
	height int
}

// NewPieChartRenderer creates a renderer producing PNG images of the given size.
func NewPieChartRenderer(width, height int) port.ChartRenderer {
	return &PieChartRenderer{width: width, height: height}
}

// RenderPie draws one slice per entry, sized by its USD value and labeled "symbol ($value)".
func (r *PieChartRenderer) RenderPie(title string, slices []entity.ChartSlice) ([]byte, error) {
	if len(slices) == 0 {
		return nil, fmt.Errorf("cannot render a chart without slices")
	}

	values := make([]chart.Value, 0, len(slices))
	for _, s := range slices {
		if !s.ValueUSD.IsPositive() {
			return nil, fmt.Errorf("slice %s has non-positive value %s", s.Symbol, s.ValueUSD)
		}
		v, _ := s.ValueUSD.Float64()
		values = append(values, chart.Value{Value: v, Label: s.Label()})
	}

	pie := chart.PieChart{
		Title:  title,
		Width:  r.width,
		Height: r.height,
		Values: values,
	}

	buf := new(bytes.Buffer)
	if err := pie.Render(chart.PNG, buf); err != nil {
		return nil, fmt.Errorf("failed to render pie chart: %w", err)
	}
	return buf.Bytes(), nil
}
