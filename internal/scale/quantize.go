package scale

import "github.com/charmbracelet/lipgloss"

// ChoroplethPalette is the fixed bin palette for the choropleth map,
// light to dark. NoDataColor sits outside the palette so missing
// values are never confused with a low bin.
var (
	ChoroplethPalette = []lipgloss.Color{
		lipgloss.Color("#DBEAFE"),
		lipgloss.Color("#93C5FD"),
		lipgloss.Color("#3B82F6"),
		lipgloss.Color("#1D4ED8"),
		lipgloss.Color("#1E3A8A"),
	}
	NoDataColor = lipgloss.Color("#4B5563")
)

// RegionPalette colors the regional map: four census regions plus the
// neutral class for unmapped features.
var RegionPalette = map[string]lipgloss.Color{
	"Northeast": lipgloss.Color("#8B5CF6"),
	"Midwest":   lipgloss.Color("#F59E0B"),
	"South":     lipgloss.Color("#10B981"),
	"West":      lipgloss.Color("#3B82F6"),
}

// SeriesPalette colors per-entity lines and polygons (radar, parallel
// coordinates, comparison bars), cycled by selection order.
var SeriesPalette = []lipgloss.Color{
	lipgloss.Color("#F97316"),
	lipgloss.Color("#22D3EE"),
	lipgloss.Color("#A3E635"),
	lipgloss.Color("#E879F9"),
	lipgloss.Color("#FACC15"),
	lipgloss.Color("#34D399"),
	lipgloss.Color("#60A5FA"),
	lipgloss.Color("#F87171"),
}

// SeriesColor cycles the palette by index.
func SeriesColor(i int) lipgloss.Color {
	return SeriesPalette[i%len(SeriesPalette)]
}

// Quantize maps a continuous domain into equal-width discrete bins
// over a fixed palette. Missing values get the neutral color.
type Quantize struct {
	D       Domain
	Palette []lipgloss.Color
	NoData  lipgloss.Color
}

// NewQuantize builds the standard choropleth quantizer for a domain.
func NewQuantize(d Domain) Quantize {
	return Quantize{D: d, Palette: ChoroplethPalette, NoData: NoDataColor}
}

// Color picks the bin for v. ok=false (unparsable value) and an
// invalid domain both map to the neutral color; a collapsed domain
// puts everything in the first bin.
func (q Quantize) Color(v float64, ok bool) lipgloss.Color {
	if !ok || !q.D.OK || len(q.Palette) == 0 {
		return q.NoData
	}
	span := q.D.Span()
	if span == 0 {
		return q.Palette[0]
	}
	bin := int((v - q.D.Min) / span * float64(len(q.Palette)))
	if bin < 0 {
		bin = 0
	}
	if bin >= len(q.Palette) {
		bin = len(q.Palette) - 1
	}
	return q.Palette[bin]
}

// Thresholds returns the bin lower bounds, for legend rendering.
func (q Quantize) Thresholds() []float64 {
	if !q.D.OK || len(q.Palette) == 0 {
		return nil
	}
	out := make([]float64, len(q.Palette))
	step := q.D.Span() / float64(len(q.Palette))
	for i := range out {
		out[i] = q.D.Min + float64(i)*step
	}
	return out
}
