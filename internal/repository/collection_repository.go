package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/aircraft-hangar/internal/model"
)

// CollectionRepo provides data access to the user_collection table.
// The table has a unique index on (user_id, aircraft_id); UpsertCaught
// leans on that index so concurrent writers cannot create duplicates.
type CollectionRepo struct{ DB *sql.DB }

func NewCollectionRepo(db *sql.DB) *CollectionRepo { return &CollectionRepo{DB: db} }

// Get fetches the collection entry for a (user, aircraft) pair. Returns
// (nil, nil) when no entry exists.
func (r *CollectionRepo) Get(ctx context.Context, userID, aircraftID uint64) (*model.CollectionEntry, error) {
	var (
		e          model.CollectionEntry
		obtainedAt sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,user_id,aircraft_id,caught,obtained_at,created_at,updated_at FROM user_collection WHERE user_id=? AND aircraft_id=? LIMIT 1",
		userID, aircraftID).
		Scan(&e.ID, &e.UserID, &e.AircraftID, &e.Caught, &obtainedAt, &e.CreatedAt, &e.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if obtainedAt.Valid {
		e.ObtainedAt = &obtainedAt.Time
	}
	return &e, nil
}

// Create inserts a caught entry for a pair that has no entry yet.
func (r *CollectionRepo) Create(ctx context.Context, userID, aircraftID uint64, obtainedAt time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO user_collection (user_id, aircraft_id, caught, obtained_at) VALUES (?,?,TRUE,?)",
		userID, aircraftID, obtainedAt.UTC())
	return err
}

// UpsertCaught marks a pair as caught with a fresh obtained_at,
// creating the entry when absent. Keyed on the (user_id, aircraft_id)
// unique index to avoid duplicate-key conflicts.
func (r *CollectionRepo) UpsertCaught(ctx context.Context, userID, aircraftID uint64, obtainedAt time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO user_collection (user_id, aircraft_id, caught, obtained_at) VALUES (?,?,TRUE,?)
		 ON DUPLICATE KEY UPDATE caught=TRUE, obtained_at=VALUES(obtained_at)`,
		userID, aircraftID, obtainedAt.UTC())
	return err
}

// Release flips an existing entry back to not-caught and clears the
// obtained_at timestamp. Only manual hangar actions call this; the CSV
// importer never downgrades a caught flag. ErrNotFound is returned when
// the pair has no entry.
func (r *CollectionRepo) Release(ctx context.Context, userID, aircraftID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE user_collection SET caught=FALSE, obtained_at=NULL WHERE user_id=? AND aircraft_id=?",
		userID, aircraftID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// MapForUser returns the user's full collection keyed by aircraft ID.
// Handlers merge this map into aircraft lists in one pass instead of
// issuing a query per aircraft.
func (r *CollectionRepo) MapForUser(ctx context.Context, userID uint64) (map[uint64]model.CollectionEntry, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,user_id,aircraft_id,caught,obtained_at,created_at,updated_at FROM user_collection WHERE user_id=?",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uint64]model.CollectionEntry)
	for rows.Next() {
		var (
			e          model.CollectionEntry
			obtainedAt sql.NullTime
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.AircraftID, &e.Caught, &obtainedAt, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		if obtainedAt.Valid {
			e.ObtainedAt = &obtainedAt.Time
		}
		out[e.AircraftID] = e
	}
	return out, rows.Err()
}
