package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/aircraft-hangar/internal/model"
)

func withStatus(rarity, category string, caught bool) model.AircraftWithStatus {
	return model.AircraftWithStatus{
		Aircraft: model.Aircraft{Rarity: rarity, Category: category},
		Caught:   caught,
	}
}

func TestBuildDashboardEmpty(t *testing.T) {
	stats := buildDashboard(nil)

	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0, stats.Caught)
	assert.Equal(t, 0.0, stats.CompletionPct)
	assert.Equal(t, "None", stats.TopRarity)
	// Every tier is present even when empty so charts render all buckets.
	assert.Len(t, stats.Rarity, len(model.Rarities))
}

func TestBuildDashboardCounts(t *testing.T) {
	items := []model.AircraftWithStatus{
		withStatus(model.RarityCommon, "Airliner", true),
		withStatus(model.RarityCommon, "Airliner", false),
		withStatus(model.RarityRare, "GA", true),
		withStatus(model.RarityLegendary, "Airliner", false),
	}
	stats := buildDashboard(items)

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.Caught)
	assert.Equal(t, 50.0, stats.CompletionPct)
	// Top rarity considers caught aircraft only; the uncaught Legendary
	// does not count.
	assert.Equal(t, model.RarityRare, stats.TopRarity)
	assert.Equal(t, RarityCount{Total: 2, Caught: 1}, stats.Rarity[model.RarityCommon])
	assert.Equal(t, RarityCount{Total: 1, Caught: 0}, stats.Rarity[model.RarityLegendary])
}

func TestBuildCategoriesSortsAndBuckets(t *testing.T) {
	items := []model.AircraftWithStatus{
		withStatus(model.RarityCommon, "GA", true),
		withStatus(model.RarityCommon, "Airliner", false),
		withStatus(model.RarityCommon, "Airliner", true),
		withStatus(model.RarityCommon, "", false),
	}
	cats := buildCategories(items)

	require.Len(t, cats, 3)
	assert.Equal(t, CategoryCount{Category: "Airliner", Total: 2, Caught: 1}, cats[0])
	// Ties break alphabetically.
	assert.Equal(t, "GA", cats[1].Category)
	assert.Equal(t, "Uncategorized", cats[2].Category)
}
