package census

import (
	"strconv"
	"strings"
)

// Row is one geographic entity (a US state) with its raw metric values.
// Values stay strings as loaded; parsing happens at the point of use so
// a blank or non-numeric cell is just "no data", never an error.
type Row struct {
	GeoID  string
	Name   string
	Code   string
	Values map[string]string
}

// Dataset holds all rows plus the metric catalog derived from the
// header. Catalog order is header order minus identifier columns and
// stays stable for the life of the dataset.
type Dataset struct {
	Rows    []Row
	Catalog []string

	byID   map[string]int
	byCode map[string]int
}

// NewDataset builds an indexed dataset from rows and a catalog.
// LoadDataset is the normal path; this exists for callers assembling
// rows directly (tests, fixtures).
func NewDataset(rows []Row, catalog []string) *Dataset {
	d := &Dataset{Rows: rows, Catalog: catalog}
	d.index()
	return d
}

// Value parses the raw cell for metric. ok is false for missing or
// non-numeric cells.
func (r Row) Value(metric string) (float64, bool) {
	raw, exists := r.Values[metric]
	if !exists {
		return 0, false
	}
	return parseNumeric(raw)
}

// Display formats the raw value for tooltips and labels. Income metrics
// get dollar formatting, percent metrics a trailing %, and missing or
// unparsable cells read "no data". The scaled plot value never leaks
// into display text.
func (r Row) Display(metric string) string {
	v, ok := r.Value(metric)
	if !ok {
		return "no data"
	}
	if IsIncomeMetric(metric) {
		return formatDollars(v)
	}
	if strings.Contains(metric, "%") {
		return trimFloat(v) + "%"
	}
	return trimFloat(v)
}

// IsIncomeMetric reports whether metric is the designated household
// income column, which is rescaled when sharing an axis with
// percentage metrics.
func IsIncomeMetric(metric string) bool {
	return strings.Contains(strings.ToLower(metric), "income")
}

// RowByID looks up a row by its geographic id.
func (d *Dataset) RowByID(id string) (Row, bool) {
	i, ok := d.byID[id]
	if !ok {
		return Row{}, false
	}
	return d.Rows[i], true
}

// RowByCode looks up a row by its short state code.
func (d *Dataset) RowByCode(code string) (Row, bool) {
	i, ok := d.byCode[strings.ToUpper(code)]
	if !ok {
		return Row{}, false
	}
	return d.Rows[i], true
}

func (d *Dataset) index() {
	d.byID = make(map[string]int, len(d.Rows))
	d.byCode = make(map[string]int, len(d.Rows))
	for i, r := range d.Rows {
		d.byID[r.GeoID] = i
		d.byCode[strings.ToUpper(r.Code)] = i
	}
}

// parseNumeric accepts the raw forms the source data uses: plain
// numbers, "$62,843", "85.2%", thousands separators.
func parseNumeric(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatDollars renders 62843 as "$62,843". Fractions are dropped;
// the source income data is whole dollars.
func formatDollars(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatInt(int64(v+0.5), 10)
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	out := "$" + b.String()
	if neg {
		out = "-" + out
	}
	return out
}
