package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/iliyamo/aircraft-hangar/internal/model"
)

// Store is the persistence surface the importer needs. It is satisfied
// by repository.ImportStore in production and by an in-memory fake in
// tests. Find methods return (nil, nil) when there is no match.
type Store interface {
	FindAircraftByICAO(ctx context.Context, icao string, userID uint64) (*model.Aircraft, error)
	CreateAircraft(ctx context.Context, a *model.Aircraft) error
	FindCollection(ctx context.Context, userID, aircraftID uint64) (*model.CollectionEntry, error)
	CreateCollection(ctx context.Context, userID, aircraftID uint64, obtainedAt time.Time) error
	UpsertCollectionCaught(ctx context.Context, userID, aircraftID uint64, obtainedAt time.Time) error
}

// maxReportedErrors caps how many error strings a Report carries. Rows
// past the cap are still processed; only their error text is dropped.
const maxReportedErrors = 10

// Report summarizes one import batch. Updated counts rows matched to a
// record the user already owns; no field of the matched record is
// actually rewritten. Rows matched to master records move no counter at
// all, they only act as possession signals.
type Report struct {
	Created      int      `json:"created"`
	Updated      int      `json:"updated"`
	MarkedCaught int      `json:"marked_caught"`
	Errors       []string `json:"errors"`
}

// Importer reconciles parsed CSV rows against the store. The clock is
// injected so tests can pin obtained_at timestamps.
type Importer struct {
	store Store
	now   func() time.Time
}

func New(store Store) *Importer {
	return &Importer{store: store, now: time.Now}
}

// NewWithClock is like New but with an explicit clock.
func NewWithClock(store Store, now func() time.Time) *Importer {
	return &Importer{store: store, now: now}
}

// Run drives rows through normalization, aircraft matching and
// possession reconciliation, strictly in input order: a row's store
// reads must observe the writes of the rows before it, so two rows with
// the same new ICAO resolve to one record instead of two. Every per-row
// failure is recorded and processing moves to the next row; nothing a
// single row does can abort the batch. A zero userID fails the whole
// batch up front with zero counters.
func (imp *Importer) Run(ctx context.Context, userID uint64, rows []Row) Report {
	if userID == 0 {
		return Report{Errors: []string{"user not authenticated"}}
	}

	var rep Report
	var errs []string
	for _, row := range rows {
		if err := imp.processRow(ctx, userID, row, &rep); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > maxReportedErrors {
		errs = errs[:maxReportedErrors]
	}
	rep.Errors = errs
	if rep.Errors == nil {
		rep.Errors = []string{}
	}
	return rep
}

func (imp *Importer) processRow(ctx context.Context, userID uint64, row Row, rep *Report) error {
	cand, err := Normalize(row)
	if err != nil {
		return err
	}
	aircraftID, err := imp.resolveAircraft(ctx, userID, cand, rep)
	if err != nil {
		return fmt.Errorf("row %s: %v", cand.ICAO, err)
	}
	if !cand.Caught {
		return nil
	}
	if err := imp.reconcilePossession(ctx, userID, aircraftID, rep); err != nil {
		return fmt.Errorf("row %s: %v", cand.ICAO, err)
	}
	return nil
}

// resolveAircraft matches the candidate to an existing visible record or
// creates a custom one. Matched records keep every stored field: a CSV
// row is a match signal, not an edit, so user changes are never
// clobbered. Master records are reused silently without a counter move.
func (imp *Importer) resolveAircraft(ctx context.Context, userID uint64, cand Candidate, rep *Report) (uint64, error) {
	existing, err := imp.store.FindAircraftByICAO(ctx, cand.ICAO, userID)
	if err != nil {
		return 0, fmt.Errorf("lookup aircraft: %v", err)
	}
	if existing != nil {
		if existing.OwnedBy(userID) {
			rep.Updated++
		}
		return existing.ID, nil
	}

	uid := userID
	a := &model.Aircraft{
		ICAO:        cand.ICAO,
		Name:        cand.Name,
		Category:    cand.Category,
		Subcategory: cand.Subcategory,
		Rarity:      cand.Rarity,
		Speed:       cand.Speed,
		Range:       cand.Range,
		Ceiling:     cand.Ceiling,
		Weight:      cand.Weight,
		RarityScore: cand.RarityScore,
		CreatedBy:   &uid,
	}
	if err := imp.store.CreateAircraft(ctx, a); err != nil {
		return 0, fmt.Errorf("create aircraft: %v", err)
	}
	rep.Created++
	return a.ID, nil
}

// reconcilePossession ensures the (user, aircraft) collection entry
// reflects a positive caught signal. The flag is monotonic from the
// importer's point of view: none -> created true, false -> flipped true
// with a fresh obtained_at, true -> untouched.
func (imp *Importer) reconcilePossession(ctx context.Context, userID, aircraftID uint64, rep *Report) error {
	entry, err := imp.store.FindCollection(ctx, userID, aircraftID)
	if err != nil {
		return fmt.Errorf("lookup collection: %v", err)
	}
	switch {
	case entry == nil:
		if err := imp.store.CreateCollection(ctx, userID, aircraftID, imp.now()); err != nil {
			return fmt.Errorf("create collection entry: %v", err)
		}
		rep.MarkedCaught++
	case !entry.Caught:
		if err := imp.store.UpsertCollectionCaught(ctx, userID, aircraftID, imp.now()); err != nil {
			return fmt.Errorf("mark caught: %v", err)
		}
		rep.MarkedCaught++
	}
	return nil
}
