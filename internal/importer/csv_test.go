package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSVFoldsHeaders(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader(" ICAO , Name ,CAUGHT\nb738,737-800,yes\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "b738", rows[0]["icao"])
	assert.Equal(t, "737-800", rows[0]["name"])
	assert.Equal(t, "yes", rows[0]["caught"])
}

func TestParseCSVKeepsUnrecognizedColumns(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader("icao,livery\nb738,retro\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	// Unknown columns survive parsing; the normalizer simply ignores them.
	assert.Equal(t, "retro", rows[0]["livery"])
}

func TestParseCSVSkipsBlankLines(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader("icao,name\nb738,737\n\na359,A350\n"))
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestParseCSVRejectsRaggedRows(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("icao,name\nb738,737,extra\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed csv")
}

func TestParseCSVEmptyInput(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	require.Error(t, err)
}

func TestParseCSVStripsBOM(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader("\ufeff" + "icao,name\nb738,737\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "b738", rows[0]["icao"])
}
