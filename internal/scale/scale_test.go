package scale

import (
	"math"
	"testing"

	"dividash/internal/census"
)

func row(code string, values map[string]string) census.Row {
	return census.Row{GeoID: code, Code: code, Values: values}
}

func TestMetricDomainExcludesUnparsable(t *testing.T) {
	rows := []census.Row{
		row("CA", map[string]string{"% Broadband": "85.2"}),
		row("NY", map[string]string{"% Broadband": "abc"}),
	}
	d := MetricDomain("% Broadband", rows)
	if !d.OK || d.Min != 85.2 || d.Max != 85.2 {
		t.Errorf("domain = %+v, want [85.2, 85.2]", d)
	}
}

func TestMetricDomainBounds(t *testing.T) {
	rows := []census.Row{
		row("A", map[string]string{"m": "10"}),
		row("B", map[string]string{"m": "30"}),
		row("C", map[string]string{"m": ""}),
		row("D", map[string]string{"m": "20"}),
	}
	d := MetricDomain("m", rows)
	if d.Min != 10 || d.Max != 30 {
		t.Fatalf("domain = %+v", d)
	}
	for _, r := range rows {
		if v, ok := r.Value("m"); ok && (v < d.Min || v > d.Max) {
			t.Errorf("%s value %v outside domain", r.Code, v)
		}
	}
}

func TestMetricDomainEmpty(t *testing.T) {
	if d := MetricDomain("m", nil); d.OK {
		t.Errorf("empty rows should give invalid domain, got %+v", d)
	}
	rows := []census.Row{row("A", map[string]string{"m": "n/a"})}
	if d := MetricDomain("m", rows); d.OK {
		t.Errorf("all-unparsable should give invalid domain, got %+v", d)
	}
}

func TestPadDeterministic(t *testing.T) {
	d := Domain{Min: 10, Max: 30, OK: true}
	p1 := d.Pad(0.1)
	p2 := d.Pad(0.1)
	if p1 != p2 {
		t.Errorf("padding not deterministic: %+v vs %+v", p1, p2)
	}
	if p1.Min != 8 || p1.Max != 32 {
		t.Errorf("padded = %+v, want [8,32]", p1)
	}
	collapsed := Domain{Min: 5, Max: 5, OK: true}.Pad(0.1)
	if collapsed.Min != 5 || collapsed.Max != 5 {
		t.Errorf("collapsed domain should stay collapsed, got %+v", collapsed)
	}
}

func TestLinearMap(t *testing.T) {
	l := Linear{D: Domain{Min: 0, Max: 10, OK: true}, R0: 0, R1: 100}
	if got := l.Map(5); got != 50 {
		t.Errorf("Map(5) = %v", got)
	}
	if got := l.Map(-5); got != 0 {
		t.Errorf("Map clamps below, got %v", got)
	}
	if got := l.Map(15); got != 100 {
		t.Errorf("Map clamps above, got %v", got)
	}
	zero := Linear{D: Domain{Min: 7, Max: 7, OK: true}, R0: 3, R1: 100}
	if got := zero.Map(7); got != 3 {
		t.Errorf("zero-width domain should map to R0, got %v", got)
	}
}

func TestLinearInvert(t *testing.T) {
	l := Linear{D: Domain{Min: 10, Max: 30, OK: true}, R0: 0, R1: 100}
	if got := l.Invert(l.Map(24)); math.Abs(got-24) > 1e-9 {
		t.Errorf("Invert(Map(24)) = %v", got)
	}
}

func TestPlotValueIncome(t *testing.T) {
	if got := PlotValue("Median Household Income", 62843); got != 62.843 {
		t.Errorf("income plot value = %v, want 62.843", got)
	}
	if got := PlotValue("% Broadband", 85.2); got != 85.2 {
		t.Errorf("percent metric should pass through, got %v", got)
	}
	// display never shows the scaled number
	r := row("NY", map[string]string{"Median Household Income": "62843"})
	if got := r.Display("Median Household Income"); got != "$62,843" {
		t.Errorf("Display = %q, want $62,843", got)
	}
}

func TestQuantize(t *testing.T) {
	q := NewQuantize(Domain{Min: 0, Max: 100, OK: true})
	if got := q.Color(0, true); got != ChoroplethPalette[0] {
		t.Errorf("min maps to first bin, got %v", got)
	}
	if got := q.Color(100, true); got != ChoroplethPalette[len(ChoroplethPalette)-1] {
		t.Errorf("max maps to last bin, got %v", got)
	}
	if got := q.Color(50, true); got != ChoroplethPalette[2] {
		t.Errorf("mid maps to middle bin, got %v", got)
	}
	if got := q.Color(0, false); got != NoDataColor {
		t.Errorf("missing value maps to neutral, got %v", got)
	}
	collapsed := NewQuantize(Domain{Min: 5, Max: 5, OK: true})
	if got := collapsed.Color(5, true); got != ChoroplethPalette[0] {
		t.Errorf("collapsed domain maps to first bin, got %v", got)
	}
	invalid := NewQuantize(Domain{})
	if got := invalid.Color(1, true); got != NoDataColor {
		t.Errorf("invalid domain maps to neutral, got %v", got)
	}
}

func TestQuantizeThresholds(t *testing.T) {
	q := NewQuantize(Domain{Min: 0, Max: 100, OK: true})
	th := q.Thresholds()
	if len(th) != len(ChoroplethPalette) {
		t.Fatalf("thresholds = %v", th)
	}
	if th[0] != 0 || th[1] != 20 || th[4] != 80 {
		t.Errorf("thresholds = %v", th)
	}
}

func TestRegionStats(t *testing.T) {
	d := census.NewDataset([]census.Row{
		{GeoID: "06", Code: "CA", Values: map[string]string{"m": "10"}},
		{GeoID: "41", Code: "OR", Values: map[string]string{"m": "20"}},
		{GeoID: "53", Code: "WA", Values: map[string]string{"m": "30"}},
		{GeoID: "36", Code: "NY", Values: map[string]string{"m": "bad"}},
	}, []string{"m"})

	sts := RegionStats("m", d)
	if len(sts) != 4 {
		t.Fatalf("stats = %v", sts)
	}
	byName := map[string]RegionStat{}
	for _, s := range sts {
		byName[s.Region] = s
	}
	west := byName["West"]
	if west.N != 3 || west.Mean != 20 || west.Median != 20 {
		t.Errorf("West = %+v", west)
	}
	if ne := byName["Northeast"]; ne.N != 0 {
		t.Errorf("Northeast should have no parseable members, got %+v", ne)
	}
}
