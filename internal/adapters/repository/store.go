// Package repository holds the published results snapshot.
package repository

import (
	"context"

	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/model"
)

// Store provides read/write access to the current snapshot.
//
// Readers always see a complete snapshot: writers build a new one and swap it
// in, they never mutate a published snapshot.
type Store interface {
	// Current returns the published snapshot.
	// Returns ErrNoSnapshot before the first Replace.
	Current(ctx context.Context) (*model.Snapshot, error)

	// Replace publishes snap as a whole.
	Replace(ctx context.Context, snap *model.Snapshot) error

	// File returns one file of the current snapshot.
	// Returns ErrNotFound if the key was not loaded.
	File(ctx context.Context, key model.FileKey) (*model.FileData, error)

	// Upsert publishes a copy of the current snapshot with f stored under its
	// key and returns it. Before the first Replace it starts from an empty
	// snapshot.
	Upsert(ctx context.Context, id string, f *model.FileData) (*model.Snapshot, error)
}
