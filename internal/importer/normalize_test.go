package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/aircraft-hangar/internal/model"
)

func TestNormalizeDefaults(t *testing.T) {
	c, err := Normalize(Row{"icao": " b738 "})
	require.NoError(t, err)

	assert.Equal(t, "B738", c.ICAO)
	assert.Equal(t, "", c.Name)
	assert.Equal(t, "", c.Category)
	assert.Nil(t, c.Subcategory)
	assert.Equal(t, model.RarityCommon, c.Rarity)
	assert.Nil(t, c.Speed)
	assert.Nil(t, c.Range)
	assert.Nil(t, c.Ceiling)
	assert.Nil(t, c.Weight)
	assert.Nil(t, c.RarityScore)
	assert.False(t, c.Caught)
}

func TestNormalizeFullRow(t *testing.T) {
	c, err := Normalize(Row{
		"icao":         "a359",
		"name":         "  A350-900 ",
		"category":     "Airliner",
		"subcategory":  "Widebody",
		"rarity":       "legendary",
		"speed":        "488",
		"range":        "8100",
		"ceiling":      "43100",
		"weight":       "280000",
		"rarity_score": "9.5",
		"caught":       "YES",
	})
	require.NoError(t, err)

	assert.Equal(t, "A359", c.ICAO)
	assert.Equal(t, "A350-900", c.Name)
	assert.Equal(t, "Airliner", c.Category)
	require.NotNil(t, c.Subcategory)
	assert.Equal(t, "Widebody", *c.Subcategory)
	assert.Equal(t, model.RarityLegendary, c.Rarity)
	require.NotNil(t, c.Speed)
	assert.Equal(t, 488.0, *c.Speed)
	require.NotNil(t, c.RarityScore)
	assert.Equal(t, 9.5, *c.RarityScore)
	assert.True(t, c.Caught)
}

func TestNormalizeMissingICAO(t *testing.T) {
	for _, row := range []Row{
		{},
		{"icao": ""},
		{"icao": "   "},
		{"name": "ghost"},
	} {
		_, err := Normalize(row)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing ICAO")
	}
}

func TestNormalizeEmptySubcategoryStaysNil(t *testing.T) {
	c, err := Normalize(Row{"icao": "b738", "subcategory": "  "})
	require.NoError(t, err)
	assert.Nil(t, c.Subcategory)
}

func TestNormalizeUnknownRarityCoercesToCommon(t *testing.T) {
	c, err := Normalize(Row{"icao": "b738", "rarity": "Mythic"})
	require.NoError(t, err)
	assert.Equal(t, model.RarityCommon, c.Rarity)

	c, err = Normalize(Row{"icao": "b738", "rarity": " ULTRA "})
	require.NoError(t, err)
	assert.Equal(t, model.RarityUltra, c.Rarity)
}

func TestNormalizeRejectsNonNumericMetrics(t *testing.T) {
	for _, key := range []string{"speed", "range", "ceiling", "weight", "rarity_score"} {
		_, err := Normalize(Row{"icao": "b738", key: "not-a-number"})
		require.Error(t, err, key)
		assert.Contains(t, err.Error(), "invalid "+key)
		assert.Contains(t, err.Error(), "B738")
	}
}

func TestIsTruthy(t *testing.T) {
	truthy := []string{"true", "TRUE", "1", "yes", "Yes", "caught", " CAUGHT "}
	for _, v := range truthy {
		assert.True(t, isTruthy(v), v)
	}
	falsy := []string{"", "0", "false", "no", "maybe", "y"}
	for _, v := range falsy {
		assert.False(t, isTruthy(v), v)
	}
}
