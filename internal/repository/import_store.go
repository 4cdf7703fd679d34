package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/aircraft-hangar/internal/model"
)

// ImportStore bundles the aircraft and collection repositories behind
// the importer's Store interface so the reconciliation logic stays
// independent of database/sql and can be tested against a fake.
type ImportStore struct {
	Aircraft   *AircraftRepo
	Collection *CollectionRepo
}

func NewImportStore(db *sql.DB) *ImportStore {
	return &ImportStore{
		Aircraft:   NewAircraftRepo(db),
		Collection: NewCollectionRepo(db),
	}
}

func (s *ImportStore) FindAircraftByICAO(ctx context.Context, icao string, userID uint64) (*model.Aircraft, error) {
	return s.Aircraft.FindByICAOForUser(ctx, icao, userID)
}

func (s *ImportStore) CreateAircraft(ctx context.Context, a *model.Aircraft) error {
	return s.Aircraft.Create(ctx, a)
}

func (s *ImportStore) FindCollection(ctx context.Context, userID, aircraftID uint64) (*model.CollectionEntry, error) {
	return s.Collection.Get(ctx, userID, aircraftID)
}

func (s *ImportStore) CreateCollection(ctx context.Context, userID, aircraftID uint64, obtainedAt time.Time) error {
	return s.Collection.Create(ctx, userID, aircraftID, obtainedAt)
}

func (s *ImportStore) UpsertCollectionCaught(ctx context.Context, userID, aircraftID uint64, obtainedAt time.Time) error {
	return s.Collection.UpsertCaught(ctx, userID, aircraftID, obtainedAt)
}
