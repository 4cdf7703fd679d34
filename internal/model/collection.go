package model

import "time"

// CollectionEntry mirrors a row of the `user_collection` table.  There
// is at most one entry per (user, aircraft) pair, enforced by a unique
// index.  The Caught flag records whether the user has the aircraft in
// their hangar; ObtainedAt is the timestamp of the catch and is null
// when the entry exists but the aircraft has been released.
//
// Fields:
//  ID         – primary key identifier.
//  UserID     – owner of the entry.
//  AircraftID – aircraft the entry refers to.
//  Caught     – whether the aircraft is currently caught.
//  ObtainedAt – when the aircraft was caught (nullable).
//  CreatedAt  – timestamp of creation.
//  UpdatedAt  – timestamp of last update.
type CollectionEntry struct {
    ID         uint64     // user_collection.id
    UserID     uint64     // user_collection.user_id
    AircraftID uint64     // user_collection.aircraft_id
    Caught     bool       // user_collection.caught
    ObtainedAt *time.Time // user_collection.obtained_at (nullable)
    CreatedAt  time.Time  // user_collection.created_at
    UpdatedAt  time.Time  // user_collection.updated_at
}
