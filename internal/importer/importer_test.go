package importer

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/aircraft-hangar/internal/model"
)

type pairKey struct{ user, aircraft uint64 }

// fakeStore is an in-memory Store used to exercise the importer without
// a database. Write failures can be injected per ICAO code.
type fakeStore struct {
	nextID        uint64
	aircraft      []model.Aircraft
	entries       map[pairKey]model.CollectionEntry
	createErr     map[string]error
	collectionErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		entries:   map[pairKey]model.CollectionEntry{},
		createErr: map[string]error{},
	}
}

func (s *fakeStore) addMaster(icao string) uint64 {
	s.nextID++
	s.aircraft = append(s.aircraft, model.Aircraft{ID: s.nextID, ICAO: icao, Rarity: model.RarityCommon})
	return s.nextID
}

func (s *fakeStore) addCustom(icao string, userID uint64) uint64 {
	s.nextID++
	uid := userID
	s.aircraft = append(s.aircraft, model.Aircraft{ID: s.nextID, ICAO: icao, Name: "user edited", Rarity: model.RarityRare, CreatedBy: &uid})
	return s.nextID
}

func (s *fakeStore) FindAircraftByICAO(_ context.Context, icao string, userID uint64) (*model.Aircraft, error) {
	// Masters shadow custom records with the same code, mirroring the
	// repository's ordering.
	var match *model.Aircraft
	for i := range s.aircraft {
		a := s.aircraft[i]
		if a.ICAO != icao || (a.CreatedBy != nil && *a.CreatedBy != userID) {
			continue
		}
		if a.CreatedBy == nil {
			out := a
			return &out, nil
		}
		if match == nil {
			out := a
			match = &out
		}
	}
	return match, nil
}

func (s *fakeStore) CreateAircraft(_ context.Context, a *model.Aircraft) error {
	if err := s.createErr[a.ICAO]; err != nil {
		return err
	}
	s.nextID++
	a.ID = s.nextID
	s.aircraft = append(s.aircraft, *a)
	return nil
}

func (s *fakeStore) FindCollection(_ context.Context, userID, aircraftID uint64) (*model.CollectionEntry, error) {
	if e, ok := s.entries[pairKey{userID, aircraftID}]; ok {
		out := e
		return &out, nil
	}
	return nil, nil
}

func (s *fakeStore) CreateCollection(_ context.Context, userID, aircraftID uint64, obtainedAt time.Time) error {
	if s.collectionErr != nil {
		return s.collectionErr
	}
	t := obtainedAt
	s.entries[pairKey{userID, aircraftID}] = model.CollectionEntry{
		UserID: userID, AircraftID: aircraftID, Caught: true, ObtainedAt: &t,
	}
	return nil
}

func (s *fakeStore) UpsertCollectionCaught(_ context.Context, userID, aircraftID uint64, obtainedAt time.Time) error {
	if s.collectionErr != nil {
		return s.collectionErr
	}
	t := obtainedAt
	e := s.entries[pairKey{userID, aircraftID}]
	e.UserID, e.AircraftID, e.Caught, e.ObtainedAt = userID, aircraftID, true, &t
	s.entries[pairKey{userID, aircraftID}] = e
	return nil
}

var testClock = func() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

const testUser uint64 = 7

func TestRunCreatesAndCatchesNewAircraft(t *testing.T) {
	store := newFakeStore()
	imp := NewWithClock(store, testClock)

	rep := imp.Run(context.Background(), testUser, []Row{
		{"icao": "b738", "caught": "yes"},
	})

	assert.Equal(t, 1, rep.Created)
	assert.Equal(t, 0, rep.Updated)
	assert.Equal(t, 1, rep.MarkedCaught)
	assert.Empty(t, rep.Errors)

	require.Len(t, store.aircraft, 1)
	a := store.aircraft[0]
	assert.Equal(t, "B738", a.ICAO)
	require.NotNil(t, a.CreatedBy)
	assert.Equal(t, testUser, *a.CreatedBy)

	e, ok := store.entries[pairKey{testUser, a.ID}]
	require.True(t, ok)
	assert.True(t, e.Caught)
	require.NotNil(t, e.ObtainedAt)
	assert.Equal(t, testClock(), *e.ObtainedAt)
}

func TestRunMatchesOwnedRecordWithoutRewriting(t *testing.T) {
	store := newFakeStore()
	id := store.addCustom("A320", testUser)
	imp := NewWithClock(store, testClock)

	rep := imp.Run(context.Background(), testUser, []Row{
		{"icao": "a320", "name": "Imported Name", "rarity": "Legendary"},
	})

	assert.Equal(t, 0, rep.Created)
	assert.Equal(t, 1, rep.Updated)
	assert.Equal(t, 0, rep.MarkedCaught)
	assert.Empty(t, rep.Errors)

	require.Len(t, store.aircraft, 1)
	// The match carries only the identifier forward; stored fields keep
	// the user's edits.
	assert.Equal(t, id, store.aircraft[0].ID)
	assert.Equal(t, "user edited", store.aircraft[0].Name)
	assert.Equal(t, model.RarityRare, store.aircraft[0].Rarity)
}

func TestRunMasterMatchMovesNoCounter(t *testing.T) {
	store := newFakeStore()
	id := store.addMaster("C172")
	imp := NewWithClock(store, testClock)

	rep := imp.Run(context.Background(), testUser, []Row{
		{"icao": "C172", "caught": "true"},
	})

	assert.Equal(t, 0, rep.Created)
	assert.Equal(t, 0, rep.Updated)
	assert.Equal(t, 1, rep.MarkedCaught)
	assert.Len(t, store.aircraft, 1)

	e, ok := store.entries[pairKey{testUser, id}]
	require.True(t, ok)
	assert.True(t, e.Caught)
}

func TestRunSharedCodeResolvesToMaster(t *testing.T) {
	store := newFakeStore()
	customID := store.addCustom("P28A", testUser)
	masterID := store.addMaster("P28A")
	imp := NewWithClock(store, testClock)

	rep := imp.Run(context.Background(), testUser, []Row{
		{"icao": "p28a", "caught": "yes"},
	})

	// The master record shadows the custom one: no counters move except
	// the possession mark, which lands on the master's ID.
	assert.Equal(t, 0, rep.Created)
	assert.Equal(t, 0, rep.Updated)
	assert.Equal(t, 1, rep.MarkedCaught)
	assert.Len(t, store.aircraft, 2)

	_, onMaster := store.entries[pairKey{testUser, masterID}]
	assert.True(t, onMaster)
	_, onCustom := store.entries[pairKey{testUser, customID}]
	assert.False(t, onCustom)
}

func TestRunPossessionIsMonotonic(t *testing.T) {
	store := newFakeStore()
	caughtID := store.addMaster("B744")
	releasedID := store.addMaster("MD11")

	already := testClock().Add(-24 * time.Hour)
	store.entries[pairKey{testUser, caughtID}] = model.CollectionEntry{
		UserID: testUser, AircraftID: caughtID, Caught: true, ObtainedAt: &already,
	}
	store.entries[pairKey{testUser, releasedID}] = model.CollectionEntry{
		UserID: testUser, AircraftID: releasedID, Caught: false,
	}

	imp := NewWithClock(store, testClock)
	rep := imp.Run(context.Background(), testUser, []Row{
		{"icao": "B744", "caught": "1"},
		{"icao": "MD11", "caught": "caught"},
		{"icao": "B744", "caught": "no"}, // falsy value never clears a flag
	})

	assert.Equal(t, 1, rep.MarkedCaught)

	// Already-true entry keeps its original timestamp.
	e := store.entries[pairKey{testUser, caughtID}]
	assert.True(t, e.Caught)
	assert.Equal(t, already, *e.ObtainedAt)

	// false -> true with a refreshed timestamp.
	e = store.entries[pairKey{testUser, releasedID}]
	assert.True(t, e.Caught)
	require.NotNil(t, e.ObtainedAt)
	assert.Equal(t, testClock(), *e.ObtainedAt)
}

func TestRunRowMissingICAO(t *testing.T) {
	store := newFakeStore()
	imp := NewWithClock(store, testClock)

	rep := imp.Run(context.Background(), testUser, []Row{
		{"name": "Mystery Plane", "caught": "yes"},
	})

	assert.Equal(t, 0, rep.Created)
	assert.Equal(t, 0, rep.Updated)
	assert.Equal(t, 0, rep.MarkedCaught)
	require.Len(t, rep.Errors, 1)
	assert.Contains(t, rep.Errors[0], "missing ICAO")
	assert.Contains(t, rep.Errors[0], "Mystery Plane")
	assert.Empty(t, store.aircraft)
}

func TestRunErrorListCappedAtTen(t *testing.T) {
	store := newFakeStore()
	imp := NewWithClock(store, testClock)

	rows := make([]Row, 0, 16)
	for i := 0; i < 15; i++ {
		rows = append(rows, Row{"name": "no key"})
	}
	// A valid row after the bad ones proves processing never stopped.
	rows = append(rows, Row{"icao": "dh8d"})

	rep := imp.Run(context.Background(), testUser, rows)

	assert.Len(t, rep.Errors, 10)
	assert.Equal(t, 1, rep.Created)
}

func TestRunIdempotentReimport(t *testing.T) {
	store := newFakeStore()
	imp := NewWithClock(store, testClock)

	rows := []Row{
		{"icao": "b738", "name": "737-800", "caught": "yes"},
		{"icao": "a359", "name": "A350-900", "caught": "true"},
		{"icao": "c172", "name": "Skyhawk"},
	}

	first := imp.Run(context.Background(), testUser, rows)
	require.Equal(t, 3, first.Created)
	require.Equal(t, 2, first.MarkedCaught)

	second := imp.Run(context.Background(), testUser, rows)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 3, second.Updated)
	assert.Equal(t, 0, second.MarkedCaught)
	assert.Empty(t, second.Errors)
	assert.Len(t, store.aircraft, 3)
}

func TestRunDuplicateNewICAOCreatedOnce(t *testing.T) {
	store := newFakeStore()
	imp := NewWithClock(store, testClock)

	rep := imp.Run(context.Background(), testUser, []Row{
		{"icao": "e190"},
		{"icao": "E190"},
	})

	// The second row re-queries and observes the first row's creation.
	assert.Equal(t, 1, rep.Created)
	assert.Equal(t, 1, rep.Updated)
	assert.Len(t, store.aircraft, 1)
}

func TestRunCreateFailureSkipsRowOnly(t *testing.T) {
	store := newFakeStore()
	store.createErr["BAD1"] = errors.New("store rejected write")
	imp := NewWithClock(store, testClock)

	rep := imp.Run(context.Background(), testUser, []Row{
		{"icao": "bad1", "caught": "yes"},
		{"icao": "ok22", "caught": "yes"},
	})

	assert.Equal(t, 1, rep.Created)
	assert.Equal(t, 1, rep.MarkedCaught)
	require.Len(t, rep.Errors, 1)
	assert.Contains(t, rep.Errors[0], "BAD1")
	assert.Contains(t, rep.Errors[0], "store rejected write")

	// The failed row's possession step never ran.
	assert.Len(t, store.entries, 1)
}

func TestRunInvalidNumericRejectsRow(t *testing.T) {
	store := newFakeStore()
	imp := NewWithClock(store, testClock)

	rep := imp.Run(context.Background(), testUser, []Row{
		{"icao": "b738", "speed": "fast"},
	})

	assert.Equal(t, 0, rep.Created)
	require.Len(t, rep.Errors, 1)
	assert.Contains(t, rep.Errors[0], "invalid speed")
	assert.Empty(t, store.aircraft)
}

func TestRunUnauthenticated(t *testing.T) {
	store := newFakeStore()
	imp := NewWithClock(store, testClock)

	rep := imp.Run(context.Background(), 0, []Row{{"icao": "b738"}})

	assert.Equal(t, Report{Errors: []string{"user not authenticated"}}, rep)
	assert.Empty(t, store.aircraft)
	assert.Empty(t, store.entries)
}

func TestRunProcessesInInputOrder(t *testing.T) {
	store := newFakeStore()
	imp := NewWithClock(store, testClock)

	rows := make([]Row, 0, 5)
	for i := 0; i < 5; i++ {
		rows = append(rows, Row{"icao": fmt.Sprintf("ac%02d", i)})
	}
	rep := imp.Run(context.Background(), testUser, rows)

	require.Equal(t, 5, rep.Created)
	for i, a := range store.aircraft {
		assert.Equal(t, fmt.Sprintf("AC%02d", i), a.ICAO)
	}
}
