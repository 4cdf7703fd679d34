package model

import (
    "strings"
    "time"
)

// Rarity tiers recognized by the application.  The database stores the
// canonical capitalized form; free-text input is folded onto these
// constants before it reaches the repository layer.
const (
    RarityCommon    = "Common"
    RarityRare      = "Rare"
    RarityUltra     = "Ultra"
    RarityLegendary = "Legendary"
)

// Rarities lists the tiers from least to most valuable.  The ordering is
// relied upon when computing the top caught rarity for the dashboard.
var Rarities = []string{RarityCommon, RarityRare, RarityUltra, RarityLegendary}

// CanonicalRarity maps a free-text rarity value onto the canonical set.
// Matching is case-insensitive; anything outside the set falls back to
// Common rather than being rejected, so that imports with sloppy rarity
// columns still land somewhere sensible.
func CanonicalRarity(s string) string {
    for _, r := range Rarities {
        if strings.EqualFold(s, r) {
            return r
        }
    }
    return RarityCommon
}

// Aircraft mirrors a row of the `aircraft` table.  A record with a nil
// CreatedBy is a master record visible to every user; a non-nil
// CreatedBy marks a custom record visible only to its creator.  The
// ICAO code is stored uppercased and acts as the natural key within a
// (icao, created_by) scope.
//
// Fields:
//  ID          – primary key identifier.
//  ICAO        – short type designator, uppercased (e.g. B738).
//  Name        – display name of the aircraft.
//  Category    – top-level grouping (e.g. Airliner).
//  Subcategory – optional finer grouping (nullable).
//  Rarity      – one of the Rarity* constants.
//  Speed       – cruise speed, knots (nullable).
//  Range       – range, nautical miles (nullable).
//  Ceiling     – service ceiling, feet (nullable).
//  Weight      – max takeoff weight, kilograms (nullable).
//  RarityScore – numeric rarity ranking (nullable).
//  CreatedBy   – owning user ID, nil for master records.
type Aircraft struct {
    ID          uint64    `json:"id"`
    ICAO        string    `json:"icao"`
    Name        string    `json:"name"`
    Category    string    `json:"category"`
    Subcategory *string   `json:"subcategory"`
    Rarity      string    `json:"rarity"`
    Speed       *float64  `json:"speed"`
    Range       *float64  `json:"range"`
    Ceiling     *float64  `json:"ceiling"`
    Weight      *float64  `json:"weight"`
    RarityScore *float64  `json:"rarity_score"`
    CreatedBy   *uint64   `json:"created_by"`
    CreatedAt   time.Time `json:"created_at"`
    UpdatedAt   time.Time `json:"updated_at"`
}

// IsMaster reports whether the record belongs to the shared master set.
func (a *Aircraft) IsMaster() bool { return a.CreatedBy == nil }

// OwnedBy reports whether the record is a custom record of the given user.
func (a *Aircraft) OwnedBy(userID uint64) bool {
    return a.CreatedBy != nil && *a.CreatedBy == userID
}

// AircraftWithStatus is an Aircraft merged with the requesting user's
// collection state.  Handlers return this shape so clients never have to
// join the two tables themselves.
type AircraftWithStatus struct {
    Aircraft
    Caught     bool       `json:"caught"`
    ObtainedAt *time.Time `json:"obtained_at,omitempty"`
}
