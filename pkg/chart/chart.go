package chart

import (
	"fmt"
	"html"
	"strings"

	"github.com/Falmousl/Finance-Project/internal/model"
)

const (
	Width    = 300
	Height   = 200
	fontSize = 10
	// labels are drawn inside the plot area so the fragment has no outer padding
	labelInset = 2
)

// Render draws series as a static SVG sparkline. The output is a single <svg>
// element safe to inject into a page; an empty series yields an empty chart.
func Render(series []model.PricePoint) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" class="price-chart" width="%d" height="%d" viewBox="0 0 %d %d" preserveAspectRatio="none" role="img">`,
		Width, Height, Width, Height,
	))

	if len(series) == 0 {
		sb.WriteString(`</svg>`)
		return sb.String()
	}

	lo, hi := bounds(series)
	span := hi - lo

	sb.WriteString(`<polyline fill="none" stroke="#1f77b4" stroke-width="1.5" points="`)
	for i, p := range series {
		x := xFor(i, len(series))
		y := float64(Height) / 2
		if span > 0 {
			y = float64(Height) - (p.Close.InexactFloat64()-lo)/span*float64(Height)
		}
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(fmt.Sprintf("%.2f,%.2f", x, y))
	}
	sb.WriteString(`"/>`)

	first := series[0].Date.Format("2006-01-02")
	last := series[len(series)-1].Date.Format("2006-01-02")

	writeLabel(&sb, labelInset, fontSize, "start", fmt.Sprintf("%.2f", hi))
	writeLabel(&sb, labelInset, Height-labelInset, "start", fmt.Sprintf("%.2f", lo))
	writeLabel(&sb, labelInset, Height-labelInset-fontSize, "start", first)
	writeLabel(&sb, Width-labelInset, Height-labelInset, "end", last)

	sb.WriteString(`</svg>`)
	return sb.String()
}

func bounds(series []model.PricePoint) (float64, float64) {
	lo := series[0].Close.InexactFloat64()
	hi := lo
	for _, p := range series[1:] {
		v := p.Close.InexactFloat64()
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func xFor(i, n int) float64 {
	if n == 1 {
		return float64(Width) / 2
	}
	return float64(i) / float64(n-1) * float64(Width)
}

func writeLabel(sb *strings.Builder, x, y int, anchor, text string) {
	sb.WriteString(fmt.Sprintf(
		`<text x="%d" y="%d" font-size="%d" text-anchor="%s" fill="#555">%s</text>`,
		x, y, fontSize, anchor, html.EscapeString(text),
	))
}
