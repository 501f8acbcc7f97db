// Package scale computes numeric domains, positional scales and the
// quantized choropleth palette every chart shares. Rows with
// unparsable values are excluded from domain math but never from
// rendering; charts map them to a "no data" visual instead.
package scale

import (
	"dividash/internal/census"
)

// Domain is the [Min,Max] range a scale maps from. OK is false when no
// row produced a parseable value.
type Domain struct {
	Min float64
	Max float64
	OK  bool
}

// MetricDomain scans rows for metric, keeping only values that parse.
func MetricDomain(metric string, rows []census.Row) Domain {
	var d Domain
	for _, r := range rows {
		v, ok := r.Value(metric)
		if !ok {
			continue
		}
		if !d.OK {
			d = Domain{Min: v, Max: v, OK: true}
			continue
		}
		if v < d.Min {
			d.Min = v
		}
		if v > d.Max {
			d.Max = v
		}
	}
	return d
}

// Pad widens the domain by frac of its span on both ends. A collapsed
// domain stays collapsed; padding is a pure function of the domain so
// every redraw computes the same range.
func (d Domain) Pad(frac float64) Domain {
	if !d.OK {
		return d
	}
	pad := (d.Max - d.Min) * frac
	d.Min -= pad
	d.Max += pad
	return d
}

// Span is Max-Min, zero for an invalid or collapsed domain.
func (d Domain) Span() float64 {
	if !d.OK {
		return 0
	}
	return d.Max - d.Min
}

// Linear maps a domain onto an output range. A zero-width domain maps
// every value to R0, so degenerate data still renders at one position
// instead of erroring past the draw boundary.
type Linear struct {
	D  Domain
	R0 float64
	R1 float64
}

func (l Linear) Map(v float64) float64 {
	span := l.D.Span()
	if span == 0 {
		return l.R0
	}
	t := (v - l.D.Min) / span
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return l.R0 + t*(l.R1-l.R0)
}

// Invert maps an output position back into the domain (brush support).
func (l Linear) Invert(p float64) float64 {
	rspan := l.R1 - l.R0
	if rspan == 0 || l.D.Span() == 0 {
		return l.D.Min
	}
	t := (p - l.R0) / rspan
	return l.D.Min + t*l.D.Span()
}

// PlotValue rescales the designated income metric by 1/1000 so it can
// share an axis with percentage metrics. Display text always goes
// through census.Row.Display with the raw value; this scaled number is
// for geometry only.
func PlotValue(metric string, v float64) float64 {
	if census.IsIncomeMetric(metric) {
		return v / 1000
	}
	return v
}

// PlotDomain is MetricDomain with PlotValue applied, for charts that
// put several metrics on one shared axis.
func PlotDomain(metric string, rows []census.Row) Domain {
	d := MetricDomain(metric, rows)
	if !d.OK {
		return d
	}
	d.Min = PlotValue(metric, d.Min)
	d.Max = PlotValue(metric, d.Max)
	return d
}
