package handler

import (
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/aircraft-hangar/internal/model"
	"github.com/iliyamo/aircraft-hangar/internal/repository"
)

// StatsHandler serves the dashboard aggregates. All numbers are computed
// in one pass over the merged catalog so the dashboard, rarity chart and
// category chart always agree with the hangar view.
type StatsHandler struct {
	Aircraft   *repository.AircraftRepo
	Collection *repository.CollectionRepo
}

func NewStatsHandler(aircraft *repository.AircraftRepo, collection *repository.CollectionRepo) *StatsHandler {
	if aircraft == nil || collection == nil {
		panic("nil repository passed to NewStatsHandler")
	}
	return &StatsHandler{Aircraft: aircraft, Collection: collection}
}

// RarityCount pairs total and caught counts for one rarity tier.
type RarityCount struct {
	Total  int `json:"total"`
	Caught int `json:"caught"`
}

// DashboardStats is the GET /v1/stats response.
type DashboardStats struct {
	Total         int                    `json:"total"`
	Caught        int                    `json:"caught"`
	CompletionPct float64                `json:"completion_pct"`
	TopRarity     string                 `json:"top_rarity"`
	Rarity        map[string]RarityCount `json:"rarity"`
}

// CategoryCount is one row of the GET /v1/stats/categories response.
type CategoryCount struct {
	Category string `json:"category"`
	Total    int    `json:"total"`
	Caught   int    `json:"caught"`
}

// buildDashboard folds the merged catalog into dashboard numbers.
// TopRarity is the highest tier among caught aircraft, "None" when the
// collection is empty.
func buildDashboard(items []model.AircraftWithStatus) DashboardStats {
	stats := DashboardStats{
		TopRarity: "None",
		Rarity:    make(map[string]RarityCount, len(model.Rarities)),
	}
	for _, r := range model.Rarities {
		stats.Rarity[r] = RarityCount{}
	}

	topIdx := -1
	for _, a := range items {
		stats.Total++
		rc := stats.Rarity[a.Rarity]
		rc.Total++
		if a.Caught {
			stats.Caught++
			rc.Caught++
			for i, r := range model.Rarities {
				if r == a.Rarity && i > topIdx {
					topIdx = i
				}
			}
		}
		stats.Rarity[a.Rarity] = rc
	}
	if stats.Total > 0 {
		stats.CompletionPct = float64(stats.Caught) / float64(stats.Total) * 100
	}
	if topIdx >= 0 {
		stats.TopRarity = model.Rarities[topIdx]
	}
	return stats
}

// buildCategories folds the merged catalog into per-category counts,
// sorted by total descending then category name for a stable chart order.
func buildCategories(items []model.AircraftWithStatus) []CategoryCount {
	byName := map[string]*CategoryCount{}
	for _, a := range items {
		cat := a.Category
		if cat == "" {
			cat = "Uncategorized"
		}
		cc, ok := byName[cat]
		if !ok {
			cc = &CategoryCount{Category: cat}
			byName[cat] = cc
		}
		cc.Total++
		if a.Caught {
			cc.Caught++
		}
	}
	out := make([]CategoryCount, 0, len(byName))
	for _, cc := range byName {
		out = append(out, *cc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// load fetches the user's merged catalog once for both stats endpoints.
func (h *StatsHandler) load(c echo.Context) ([]model.AircraftWithStatus, error) {
	userID, err := getUserID(c)
	if err != nil {
		return nil, echo.ErrUnauthorized
	}
	ctx := c.Request().Context()
	items, err := h.Aircraft.ListForUser(ctx, userID, repository.AircraftQuery{})
	if err != nil {
		return nil, err
	}
	collection, err := h.Collection.MapForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mergeStatus(items, collection), nil
}

// Dashboard handles GET /v1/stats.
func (h *StatsHandler) Dashboard(c echo.Context) error {
	merged, err := h.load(c)
	if err == echo.ErrUnauthorized {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, buildDashboard(merged))
}

// Categories handles GET /v1/stats/categories.
func (h *StatsHandler) Categories(c echo.Context) error {
	merged, err := h.load(c)
	if err == echo.ErrUnauthorized {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": buildCategories(merged)})
}
