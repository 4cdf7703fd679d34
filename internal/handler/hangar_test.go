package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/aircraft-hangar/internal/repository"
)

const aircraftSelectColumns = "id,icao,name,category,subcategory,rarity,speed,`range`,ceiling,weight,rarity_score,created_by,created_at,updated_at"

func newAircraftRows(t *testing.T) *sqlmock.Rows {
	t.Helper()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{
		"id", "icao", "name", "category", "subcategory", "rarity",
		"speed", "range", "ceiling", "weight", "rarity_score",
		"created_by", "created_at", "updated_at",
	}).AddRow(1, "C172", "Skyhawk", "GA", nil, "Common",
		nil, nil, nil, nil, nil, nil, now, now)
}

func newTestContext(userID uint64, target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != 0 {
		c.Set("user_id", userID)
	}
	return c, rec
}

func TestGetReportsCollectionLookupFailure(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT " + aircraftSelectColumns + " FROM aircraft WHERE id=? AND (created_by IS NULL OR created_by=?) LIMIT 1").
		WillReturnRows(newAircraftRows(t))
	mock.ExpectQuery("SELECT id,user_id,aircraft_id,caught,obtained_at,created_at,updated_at FROM user_collection WHERE user_id=? AND aircraft_id=? LIMIT 1").
		WillReturnError(errors.New("connection lost"))

	h := NewHangarHandler(repository.NewAircraftRepo(db), repository.NewCollectionRepo(db))

	c, rec := newTestContext(7, "/v1/aircraft/1")
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, h.Get(c))
	// A failed collection lookup must surface, not render as not-caught.
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogListsMasterRecords(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT " + aircraftSelectColumns + " FROM aircraft WHERE created_by IS NULL ORDER BY name").
		WillReturnRows(newAircraftRows(t))

	h := NewPublicHandler(repository.NewAircraftRepo(db))

	c, rec := newTestContext(0, "/v1/catalog")
	require.NoError(t, h.Catalog(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"icao":"C172"`)
	assert.Contains(t, rec.Body.String(), `"caught":false`)
	assert.NoError(t, mock.ExpectationsWereMet())
}
