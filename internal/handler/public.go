package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/aircraft-hangar/internal/repository"
)

// PublicHandler exposes unauthenticated browse endpoints.  Guests see
// the shared master catalog only; every record is reported as not
// caught since there is no collection to merge.
type PublicHandler struct {
	Aircraft *repository.AircraftRepo
}

func NewPublicHandler(aircraft *repository.AircraftRepo) *PublicHandler {
	if aircraft == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	return &PublicHandler{Aircraft: aircraft}
}

// Catalog handles GET /v1/catalog.  It accepts the same search and
// rarity filters as the authenticated list.
func (h *PublicHandler) Catalog(c echo.Context) error {
	items, err := h.Aircraft.ListMaster(c.Request().Context(), parseListQuery(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	merged := mergeStatus(items, nil)
	return c.JSON(http.StatusOK, echo.Map{"items": merged, "total": len(merged)})
}
