package census

import (
	"encoding/csv"
	"errors"
	"os"
	"strings"
)

// LoadDataset reads the metrics CSV. The header must carry three
// identifier columns, detected case-insensitively: a geographic id
// (id|geoid|geo id|fips), a display name (state|name|geography) and a
// short code (code|abbr|abbreviation). Every other column is a metric.
func LoadDataset(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	recs, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) < 2 {
		return nil, errors.New("dataset: empty csv")
	}
	header := recs[0]
	idxID, idxName, idxCode := -1, -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "id", "geoid", "geo id", "geo_id", "fips":
			if idxID == -1 {
				idxID = i
			}
		case "state", "name", "geography":
			if idxName == -1 {
				idxName = i
			}
		case "code", "abbr", "abbreviation", "short":
			if idxCode == -1 {
				idxCode = i
			}
		}
	}
	if idxID == -1 || idxName == -1 || idxCode == -1 {
		return nil, errors.New("dataset: id/name/code columns not found")
	}

	// Metric catalog keeps header order.
	var catalog []string
	for i, h := range header {
		if i == idxID || i == idxName || i == idxCode {
			continue
		}
		catalog = append(catalog, strings.TrimSpace(h))
	}
	if len(catalog) == 0 {
		return nil, errors.New("dataset: no metric columns")
	}

	d := &Dataset{Catalog: catalog}
	for _, rec := range recs[1:] {
		if idxID >= len(rec) || idxName >= len(rec) || idxCode >= len(rec) {
			continue
		}
		row := Row{
			GeoID:  normalizeGeoID(rec[idxID]),
			Name:   strings.TrimSpace(rec[idxName]),
			Code:   strings.ToUpper(strings.TrimSpace(rec[idxCode])),
			Values: make(map[string]string, len(catalog)),
		}
		ci := 0
		for i, cell := range rec {
			if i == idxID || i == idxName || i == idxCode {
				continue
			}
			if ci < len(catalog) {
				row.Values[catalog[ci]] = strings.TrimSpace(cell)
			}
			ci++
		}
		d.Rows = append(d.Rows, row)
	}
	if len(d.Rows) == 0 {
		return nil, errors.New("dataset: no rows")
	}
	d.index()
	return d, nil
}

// normalizeGeoID pads bare numeric ids to the two-digit FIPS form so
// "6" and "06" join the same topology feature.
func normalizeGeoID(raw string) string {
	s := strings.TrimSpace(raw)
	if len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
		return "0" + s
	}
	return s
}
