package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/aircraft-hangar/internal/model"
)

// AircraftRepo provides data access to the aircraft table. Visibility
// scoping is applied in SQL: every per-user query matches rows whose
// created_by is NULL (master records) or equals the requesting user.
type AircraftRepo struct{ DB *sql.DB }

func NewAircraftRepo(db *sql.DB) *AircraftRepo { return &AircraftRepo{DB: db} }

const aircraftColumns = "id,icao,name,category,subcategory,rarity,speed,`range`,ceiling,weight,rarity_score,created_by,created_at,updated_at"

// AircraftQuery carries optional catalog filters. Search matches name or
// ICAO case-insensitively; Rarities restricts to the given tiers.
type AircraftQuery struct {
	Search   string
	Rarities []string
}

// scanAircraft reads one row into a model.Aircraft, converting nullable
// columns to pointers.
func scanAircraft(row interface{ Scan(...any) error }) (model.Aircraft, error) {
	var (
		a           model.Aircraft
		subcategory sql.NullString
		speed       sql.NullFloat64
		rng         sql.NullFloat64
		ceiling     sql.NullFloat64
		weight      sql.NullFloat64
		rarityScore sql.NullFloat64
		createdBy   sql.NullInt64
	)
	err := row.Scan(&a.ID, &a.ICAO, &a.Name, &a.Category, &subcategory, &a.Rarity,
		&speed, &rng, &ceiling, &weight, &rarityScore, &createdBy, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return model.Aircraft{}, err
	}
	if subcategory.Valid {
		a.Subcategory = &subcategory.String
	}
	if speed.Valid {
		a.Speed = &speed.Float64
	}
	if rng.Valid {
		a.Range = &rng.Float64
	}
	if ceiling.Valid {
		a.Ceiling = &ceiling.Float64
	}
	if weight.Valid {
		a.Weight = &weight.Float64
	}
	if rarityScore.Valid {
		a.RarityScore = &rarityScore.Float64
	}
	if createdBy.Valid {
		uid := uint64(createdBy.Int64)
		a.CreatedBy = &uid
	}
	return a, nil
}

// Create inserts a new aircraft record and populates its ID. The caller
// is responsible for normalizing ICAO and rarity beforehand.
func (r *AircraftRepo) Create(ctx context.Context, a *model.Aircraft) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO aircraft (icao,name,category,subcategory,rarity,speed,`range`,ceiling,weight,rarity_score,created_by) VALUES (?,?,?,?,?,?,?,?,?,?,?)",
		a.ICAO, a.Name, a.Category, a.Subcategory, a.Rarity,
		a.Speed, a.Range, a.Ceiling, a.Weight, a.RarityScore, a.CreatedBy)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

// FindByICAOForUser looks up an aircraft by its normalized ICAO code
// within the user's visibility scope (master records plus the user's own
// custom records). At most one row is consumed; when both a master and a
// custom record share the code, the master record wins. Returns
// (nil, nil) when there is no match.
func (r *AircraftRepo) FindByICAOForUser(ctx context.Context, icao string, userID uint64) (*model.Aircraft, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+aircraftColumns+" FROM aircraft WHERE icao=? AND (created_by IS NULL OR created_by=?) ORDER BY created_by IS NULL DESC, id LIMIT 1",
		icao, userID)
	a, err := scanAircraft(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByIDForUser fetches one aircraft by ID if it is visible to the user.
// A userID of zero restricts the lookup to master records (guest scope).
func (r *AircraftRepo) GetByIDForUser(ctx context.Context, id, userID uint64) (model.Aircraft, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+aircraftColumns+" FROM aircraft WHERE id=? AND (created_by IS NULL OR created_by=?) LIMIT 1",
		id, userID)
	a, err := scanAircraft(row)
	if err == sql.ErrNoRows {
		return model.Aircraft{}, ErrNotFound
	}
	return a, err
}

// ListForUser returns all aircraft visible to the user, filtered by the
// optional query and ordered by name the way the hangar page expects.
func (r *AircraftRepo) ListForUser(ctx context.Context, userID uint64, q AircraftQuery) ([]model.Aircraft, error) {
	where := []string{"(created_by IS NULL OR created_by=?)"}
	args := []any{userID}
	appendQueryFilters(&where, &args, q)

	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+aircraftColumns+" FROM aircraft WHERE "+strings.Join(where, " AND ")+" ORDER BY name", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAircraft(rows)
}

// ListMaster returns master records only. Used for unauthenticated
// catalog browsing.
func (r *AircraftRepo) ListMaster(ctx context.Context, q AircraftQuery) ([]model.Aircraft, error) {
	where := []string{"created_by IS NULL"}
	args := []any{}
	appendQueryFilters(&where, &args, q)

	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+aircraftColumns+" FROM aircraft WHERE "+strings.Join(where, " AND ")+" ORDER BY name", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAircraft(rows)
}

func appendQueryFilters(where *[]string, args *[]any, q AircraftQuery) {
	if s := strings.TrimSpace(q.Search); s != "" {
		*where = append(*where, "(LOWER(name) LIKE ? OR LOWER(icao) LIKE ?)")
		pat := "%" + strings.ToLower(s) + "%"
		*args = append(*args, pat, pat)
	}
	if len(q.Rarities) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(q.Rarities)), ",")
		*where = append(*where, "rarity IN ("+placeholders+")")
		for _, r := range q.Rarities {
			*args = append(*args, r)
		}
	}
}

func collectAircraft(rows *sql.Rows) ([]model.Aircraft, error) {
	items := []model.Aircraft{}
	for rows.Next() {
		a, err := scanAircraft(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

// DeleteCustom removes a custom aircraft owned by the user. Master
// records and other users' records cannot be deleted; attempting to do
// so yields ErrForbidden. Collection entries referencing the aircraft
// are removed by the foreign key's ON DELETE CASCADE.
func (r *AircraftRepo) DeleteCustom(ctx context.Context, id, userID uint64) error {
	var createdBy sql.NullInt64
	err := r.DB.QueryRowContext(ctx,
		"SELECT created_by FROM aircraft WHERE id=? LIMIT 1", id).Scan(&createdBy)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if !createdBy.Valid || uint64(createdBy.Int64) != userID {
		return ErrForbidden
	}
	_, err = r.DB.ExecContext(ctx, "DELETE FROM aircraft WHERE id=? AND created_by=?", id, userID)
	return err
}
