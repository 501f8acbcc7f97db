package census

// Census regions. Every state code belongs to exactly one region; the
// partition holds by construction and is checked in tests.
var Regions = map[string][]string{
	"Northeast": {"CT", "ME", "MA", "NH", "NJ", "NY", "PA", "RI", "VT"},
	"Midwest":   {"IA", "IL", "IN", "KS", "MI", "MN", "MO", "ND", "NE", "OH", "SD", "WI"},
	"South":     {"AL", "AR", "DC", "DE", "FL", "GA", "KY", "LA", "MD", "MS", "NC", "OK", "SC", "TN", "TX", "VA", "WV"},
	"West":      {"AK", "AZ", "CA", "CO", "HI", "ID", "MT", "NM", "NV", "OR", "UT", "WA", "WY"},
}

// RegionNames is the stable display order for legends and palettes.
var RegionNames = []string{"Northeast", "Midwest", "South", "West"}

var regionByCode = func() map[string]string {
	m := make(map[string]string)
	for name, codes := range Regions {
		for _, c := range codes {
			m[c] = name
		}
	}
	return m
}()

// RegionOf returns the region a state code belongs to. ok is false for
// unmapped codes, which render as the neutral fifth class.
func RegionOf(code string) (string, bool) {
	r, ok := regionByCode[code]
	return r, ok
}

// RegionRows resolves a region to its member rows in dataset order
// of the region table. Codes absent from the dataset are skipped.
func RegionRows(d *Dataset, region string) []Row {
	var rows []Row
	for _, code := range Regions[region] {
		if r, ok := d.RowByCode(code); ok {
			rows = append(rows, r)
		}
	}
	return rows
}
