// Package coursedb stores the records of generated courses in a LevelDB
// database, one record per day.
package coursedb

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrRecordNotFound is returned by Load if no record was stored for a day.
	ErrRecordNotFound = errors.New("coursedb: record not found")
	// ErrProviderClosed is returned by the methods of a DB after Close was
	// called.
	ErrProviderClosed = errors.New("coursedb: provider closed")
)

// Record describes the level generated for a day. It holds enough to verify
// that a level regenerated later is identical to the one played.
type Record struct {
	// Day is the UTC date the level was generated for, formatted as
	// YYYY-MM-DD.
	Day string
	// Seed is the seed the generator was started with.
	Seed int64
	// Blocks is the number of blocks requested.
	Blocks int
	// Operations holds the names of the executed operations in order.
	Operations []string
	// Path holds the cursor position after every executed block.
	Path []mgl64.Vec2
	// Particles is the number of particles placed.
	Particles int
	// Fingerprint is the level.Fingerprint of the level.
	Fingerprint uint64
}

// Provider stores and loads Records.
type Provider interface {
	// Save stores r under r.Day, replacing any record of that day.
	Save(r Record) error
	// Load returns the record of day, or ErrRecordNotFound.
	Load(day string) (Record, error)
	// Records returns all stored records ordered by day.
	Records() ([]Record, error)
	// Close closes the Provider.
	Close() error
}

// NopProvider implements Provider without storing anything.
type NopProvider struct{}

var _ Provider = NopProvider{}

func (NopProvider) Save(Record) error           { return nil }
func (NopProvider) Load(string) (Record, error) { return Record{}, ErrRecordNotFound }
func (NopProvider) Records() ([]Record, error)  { return nil, nil }
func (NopProvider) Close() error                { return nil }
