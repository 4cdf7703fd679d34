package importer

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/iliyamo/aircraft-hangar/internal/model"
)

// Candidate is the fixed-shape result of normalizing one row. All
// optionality is explicit here so downstream steps never have to probe
// the raw map again.
type Candidate struct {
	ICAO        string
	Name        string
	Category    string
	Subcategory *string
	Rarity      string
	Speed       *float64
	Range       *float64
	Ceiling     *float64
	Weight      *float64
	RarityScore *float64
	Caught      bool
}

// Normalize converts a raw row into a validated Candidate.
//
// Rules:
//   - icao is required; it is trimmed and upper-cased. A row without it
//     is rejected with the raw row content in the error, since there is
//     no natural key to reference.
//   - name and category default to "" when absent; subcategory defaults
//     to nil rather than the empty string.
//   - rarity defaults to Common and is folded onto the canonical tier
//     set; unknown values coerce to Common instead of failing the row.
//   - numeric fields are parsed as floats when non-empty. Unparsable
//     numeric text rejects the row outright; a NaN sentinel in the
//     store would be worse than a reported error.
//   - caught is true for the case-insensitive strings "true", "1",
//     "yes" or "caught"; anything else, including absence, is false.
//
// Normalize has no side effects.
func Normalize(row Row) (Candidate, error) {
	icao := strings.ToUpper(strings.TrimSpace(row["icao"]))
	if icao == "" {
		return Candidate{}, fmt.Errorf("row missing ICAO: %s", describeRow(row))
	}

	c := Candidate{
		ICAO:     icao,
		Name:     strings.TrimSpace(row["name"]),
		Category: strings.TrimSpace(row["category"]),
		Rarity:   model.RarityCommon,
	}
	if sub := strings.TrimSpace(row["subcategory"]); sub != "" {
		c.Subcategory = &sub
	}
	if rarity := strings.TrimSpace(row["rarity"]); rarity != "" {
		c.Rarity = model.CanonicalRarity(rarity)
	}

	numeric := []struct {
		key string
		dst **float64
	}{
		{"speed", &c.Speed},
		{"range", &c.Range},
		{"ceiling", &c.Ceiling},
		{"weight", &c.Weight},
		{"rarity_score", &c.RarityScore},
	}
	for _, f := range numeric {
		raw := strings.TrimSpace(row[f.key])
		if raw == "" {
			continue
		}
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Candidate{}, fmt.Errorf("row %s: invalid %s value %q", icao, f.key, raw)
		}
		*f.dst = &n
	}

	c.Caught = isTruthy(row["caught"])
	return c, nil
}

// isTruthy implements the caught-column interpretation: only a small set
// of affirmative strings count as true.
func isTruthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "caught":
		return true
	}
	return false
}

// describeRow renders a row as sorted key=value pairs, used in errors
// for rows that carry no natural key.
func describeRow(row Row) string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+row[k])
	}
	return strings.Join(parts, " ")
}
