package store

import (
	"context"

	"LoveAI/backend/go/internal/models"
)

// The advisor service reads journal data through these interfaces, so they
// stay read/write-split friendly: every method takes the owning userID and
// never returns documents that belong to another user.

// ProfileStore defines persistence for the user's own dating profile.
type ProfileStore interface {
	// Get returns the profile for a user, or (nil, nil) when none exists.
	Get(ctx context.Context, userID string) (*models.Profile, error)
	// Upsert creates or merges the profile document for a user.
	Upsert(ctx context.Context, userID string, profile *models.Profile) error
}

// ProspectStore defines persistence for prospects.
type ProspectStore interface {
	Create(ctx context.Context, prospect *models.Prospect) error
	// GetByID returns (nil, nil) when the prospect does not exist.
	GetByID(ctx context.Context, userID, id string) (*models.Prospect, error)
	// GetByUserID returns all prospects for a user, newest first.
	GetByUserID(ctx context.Context, userID string) ([]*models.Prospect, error)
	// GetActiveByUserID returns non-archived prospects for a user, newest first.
	GetActiveByUserID(ctx context.Context, userID string) ([]*models.Prospect, error)
	Update(ctx context.Context, prospect *models.Prospect) error
	Delete(ctx context.Context, userID, id string) error
}

// NoteStore defines persistence for prospect timeline notes.
type NoteStore interface {
	Create(ctx context.Context, note *models.Note) error
	// GetByProspectID returns all notes for a prospect, newest first.
	GetByProspectID(ctx context.Context, userID, prospectID string) ([]*models.Note, error)
	UpdateContent(ctx context.Context, userID, noteID, content string) error
	Delete(ctx context.Context, userID, noteID string) error
}

// DateStore defines persistence for date records.
type DateStore interface {
	Create(ctx context.Context, record *models.DateRecord) error
	// GetByUserID returns all date records for a user in chronological order.
	GetByUserID(ctx context.Context, userID string) ([]*models.DateRecord, error)
	Update(ctx context.Context, record *models.DateRecord) error
	Delete(ctx context.Context, userID, id string) error
}
