package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/aircraft-hangar/internal/model"
	"github.com/iliyamo/aircraft-hangar/internal/repository"
)

// HangarHandler bundles the repositories needed for authenticated catalog
// and collection endpoints.
type HangarHandler struct {
	Aircraft   *repository.AircraftRepo
	Collection *repository.CollectionRepo
}

func NewHangarHandler(aircraft *repository.AircraftRepo, collection *repository.CollectionRepo) *HangarHandler {
	if aircraft == nil || collection == nil {
		panic("nil repository passed to NewHangarHandler")
	}
	return &HangarHandler{Aircraft: aircraft, Collection: collection}
}

// parseListQuery reads the catalog filter parameters shared by the hangar
// and public catalog routes.
func parseListQuery(c echo.Context) repository.AircraftQuery {
	q := repository.AircraftQuery{Search: c.QueryParam("search")}
	if raw := strings.TrimSpace(c.QueryParam("rarity")); raw != "" {
		for _, r := range strings.Split(raw, ",") {
			if r = strings.TrimSpace(r); r != "" {
				q.Rarities = append(q.Rarities, model.CanonicalRarity(r))
			}
		}
	}
	return q
}

// mergeStatus joins an aircraft list with the user's collection entries.
func mergeStatus(items []model.Aircraft, collection map[uint64]model.CollectionEntry) []model.AircraftWithStatus {
	out := make([]model.AircraftWithStatus, 0, len(items))
	for _, a := range items {
		s := model.AircraftWithStatus{Aircraft: a}
		if e, ok := collection[a.ID]; ok && e.Caught {
			s.Caught = true
			s.ObtainedAt = e.ObtainedAt
		}
		out = append(out, s)
	}
	return out
}

// List handles GET /v1/aircraft.  It returns every aircraft visible to
// the user (master plus own custom records) with collection status,
// filtered by search text, rarity tiers and the caught/missing flags.
func (h *HangarHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()

	items, err := h.Aircraft.ListForUser(ctx, userID, parseListQuery(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	collection, err := h.Collection.MapForUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	merged := mergeStatus(items, collection)

	// caught=true / missing=true filter on the merged view.
	if c.QueryParam("caught") == "true" {
		merged = filterStatus(merged, true)
	}
	if c.QueryParam("missing") == "true" {
		merged = filterStatus(merged, false)
	}

	return c.JSON(http.StatusOK, echo.Map{"items": merged, "total": len(merged)})
}

func filterStatus(items []model.AircraftWithStatus, caught bool) []model.AircraftWithStatus {
	out := items[:0]
	for _, a := range items {
		if a.Caught == caught {
			out = append(out, a)
		}
	}
	return out
}

// Get handles GET /v1/aircraft/:id and returns one visible aircraft with
// collection status.
func (h *HangarHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()

	a, err := h.Aircraft.GetByIDForUser(ctx, id, userID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "aircraft not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	s := model.AircraftWithStatus{Aircraft: a}
	e, err := h.Collection.Get(ctx, userID, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if e != nil && e.Caught {
		s.Caught = true
		s.ObtainedAt = e.ObtainedAt
	}
	return c.JSON(http.StatusOK, s)
}

type createAircraftReq struct {
	ICAO        string   `json:"icao"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Subcategory *string  `json:"subcategory"`
	Rarity      string   `json:"rarity"`
	Speed       *float64 `json:"speed"`
	Range       *float64 `json:"range"`
	Ceiling     *float64 `json:"ceiling"`
	Weight      *float64 `json:"weight"`
	RarityScore *float64 `json:"rarity_score"`
	AutoCatch   bool     `json:"auto_catch"`
}

// Create handles POST /v1/aircraft and adds a custom aircraft owned by
// the user.  With auto_catch the new aircraft is immediately marked
// caught, mirroring the add-and-catch flow of the UI.
func (h *HangarHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createAircraftReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	icao := strings.ToUpper(strings.TrimSpace(req.ICAO))
	if icao == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "icao is required"})
	}
	if req.Subcategory != nil {
		if sub := strings.TrimSpace(*req.Subcategory); sub != "" {
			req.Subcategory = &sub
		} else {
			req.Subcategory = nil
		}
	}

	ctx := c.Request().Context()
	uid := userID
	a := &model.Aircraft{
		ICAO:        icao,
		Name:        strings.TrimSpace(req.Name),
		Category:    strings.TrimSpace(req.Category),
		Subcategory: req.Subcategory,
		Rarity:      model.CanonicalRarity(req.Rarity),
		Speed:       req.Speed,
		Range:       req.Range,
		Ceiling:     req.Ceiling,
		Weight:      req.Weight,
		RarityScore: req.RarityScore,
		CreatedBy:   &uid,
	}
	if err := h.Aircraft.Create(ctx, a); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create aircraft"})
	}

	s := model.AircraftWithStatus{Aircraft: *a}
	if req.AutoCatch {
		now := timeNow()
		if err := h.Collection.UpsertCaught(ctx, userID, a.ID, now); err == nil {
			s.Caught = true
			s.ObtainedAt = &now
		}
	}
	return c.JSON(http.StatusCreated, s)
}

// Delete handles DELETE /v1/aircraft/:id.  Only the user's own custom
// records can be removed; master records are read-only.
func (h *HangarHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	switch err := h.Aircraft.DeleteCustom(c.Request().Context(), id, userID); err {
	case nil:
		return c.NoContent(http.StatusNoContent)
	case repository.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "aircraft not found"})
	case repository.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"error": "cannot delete this aircraft"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
}

// Catch handles PUT /v1/aircraft/:id/caught and marks a visible aircraft
// as caught with a fresh obtained_at timestamp.
func (h *HangarHandler) Catch(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()

	// Only visible aircraft can be caught.
	if _, err := h.Aircraft.GetByIDForUser(ctx, id, userID); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "aircraft not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	now := timeNow()
	if err := h.Collection.UpsertCaught(ctx, userID, id, now); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"caught": true, "obtained_at": now})
}

// Release handles DELETE /v1/aircraft/:id/caught and flips the entry
// back to not-caught.  This is a manual hangar action; CSV imports can
// only ever raise the flag.
func (h *HangarHandler) Release(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	switch err := h.Collection.Release(c.Request().Context(), userID, id); err {
	case nil:
		return c.JSON(http.StatusOK, echo.Map{"caught": false})
	case repository.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not in collection"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
}
