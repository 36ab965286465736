package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"LoveAI/backend/go/internal/journal_service/storage"
	"LoveAI/backend/go/internal/journal_service/store"
	"LoveAI/backend/go/internal/models"
	"LoveAI/backend/go/pkg/logger"

	"github.com/google/uuid"
)

// ErrProspectNameExists is returned when a create or rename would give a user
// two prospects with the same name (compared case-insensitively). Date records
// reference prospects by name, so duplicates would make their history ambiguous.
var ErrProspectNameExists = errors.New("a prospect with this name already exists")

// ErrNotFound is returned when a requested document does not exist or belongs
// to another user.
var ErrNotFound = errors.New("not found")

// PhotoStorage is what the service needs from photo object storage. It is
// implemented by storage.PhotoStore.
type PhotoStorage interface {
	Upload(ctx context.Context, userID, prospectID string, r io.Reader, size int64, contentType string) (string, error)
	Get(ctx context.Context, objectName string) (io.ReadCloser, error)
	Delete(ctx context.Context, objectName string) error
	DeleteAllForProspect(ctx context.Context, userID, prospectID string) error
}

// Service implements the journal business logic on top of the Mongo stores
// and the MinIO photo store.
type Service struct {
	profiles  store.ProfileStore
	prospects store.ProspectStore
	notes     store.NoteStore
	dates     store.DateStore
	photos    PhotoStorage
	logger    *logger.Logger
}

// NewService creates a new journal Service.
func NewService(profiles store.ProfileStore, prospects store.ProspectStore, notes store.NoteStore, dates store.DateStore, photos PhotoStorage, logger *logger.Logger) *Service {
	return &Service{
		profiles:  profiles,
		prospects: prospects,
		notes:     notes,
		dates:     dates,
		photos:    photos,
		logger:    logger,
	}
}

// --- Profile ---

// GetProfile returns the user's dating profile, or nil when none has been
// saved yet. The caller decides how to present the missing-profile state.
func (s *Service) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	return s.profiles.Get(ctx, userID)
}

// SaveProfile creates or updates the user's dating profile.
func (s *Service) SaveProfile(ctx context.Context, userID string, profile *models.Profile) error {
	now := time.Now()
	existing, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return err
	}
	if existing != nil {
		profile.CreatedAt = existing.CreatedAt
	} else {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	return s.profiles.Upsert(ctx, userID, profile)
}

// --- Prospects ---

// CreateProspect validates and stores a new prospect.
func (s *Service) CreateProspect(ctx context.Context, userID string, prospect *models.Prospect) (*models.Prospect, error) {
	prospect.Name = strings.TrimSpace(prospect.Name)
	if prospect.Name == "" {
		return nil, errors.New("prospect name is required")
	}

	taken, err := s.nameTaken(ctx, userID, prospect.Name, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrProspectNameExists
	}

	now := time.Now()
	prospect.ID = uuid.New().String()
	prospect.UserID = userID
	prospect.InGraveyard = false
	prospect.CreatedAt = now
	prospect.UpdatedAt = now

	if err := s.prospects.Create(ctx, prospect); err != nil {
		return nil, err
	}
	return prospect, nil
}

// GetProspect returns a single prospect owned by the user.
func (s *Service) GetProspect(ctx context.Context, userID, id string) (*models.Prospect, error) {
	prospect, err := s.prospects.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if prospect == nil {
		return nil, ErrNotFound
	}
	return prospect, nil
}

// ListProspects returns the user's prospects. When activeOnly is true,
// archived prospects are excluded.
func (s *Service) ListProspects(ctx context.Context, userID string, activeOnly bool) ([]*models.Prospect, error) {
	if activeOnly {
		return s.prospects.GetActiveByUserID(ctx, userID)
	}
	return s.prospects.GetByUserID(ctx, userID)
}

// UpdateProspect applies field changes to an existing prospect. A rename is
// checked against the same uniqueness rule as a create.
func (s *Service) UpdateProspect(ctx context.Context, userID string, updated *models.Prospect) (*models.Prospect, error) {
	existing, err := s.GetProspect(ctx, userID, updated.ID)
	if err != nil {
		return nil, err
	}

	updated.Name = strings.TrimSpace(updated.Name)
	if updated.Name == "" {
		return nil, errors.New("prospect name is required")
	}
	if !strings.EqualFold(updated.Name, existing.Name) {
		taken, err := s.nameTaken(ctx, userID, updated.Name, existing.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrProspectNameExists
		}
	}

	updated.UserID = userID
	updated.PhotoURL = existing.PhotoURL
	updated.InGraveyard = existing.InGraveyard
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()

	if err := s.prospects.Update(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// ArchiveProspect moves a prospect to the graveyard. The prospect and its
// notes are kept; only advisor context and active listings exclude it.
func (s *Service) ArchiveProspect(ctx context.Context, userID, id string) error {
	return s.setGraveyard(ctx, userID, id, true)
}

// RestoreProspect moves a prospect back out of the graveyard. The restore
// re-checks name uniqueness: an active prospect with the same name may have
// been created in the meantime.
func (s *Service) RestoreProspect(ctx context.Context, userID, id string) error {
	prospect, err := s.GetProspect(ctx, userID, id)
	if err != nil {
		return err
	}
	taken, err := s.nameTaken(ctx, userID, prospect.Name, prospect.ID)
	if err != nil {
		return err
	}
	if taken {
		return ErrProspectNameExists
	}
	return s.setGraveyard(ctx, userID, id, false)
}

func (s *Service) setGraveyard(ctx context.Context, userID, id string, inGraveyard bool) error {
	prospect, err := s.GetProspect(ctx, userID, id)
	if err != nil {
		return err
	}
	prospect.InGraveyard = inGraveyard
	prospect.UpdatedAt = time.Now()
	return s.prospects.Update(ctx, prospect)
}

// DeleteProspect permanently removes a prospect, its timeline notes and its
// photos. Date records are left alone: they reference prospects by name and
// remain meaningful as calendar history.
func (s *Service) DeleteProspect(ctx context.Context, userID, id string) error {
	prospect, err := s.GetProspect(ctx, userID, id)
	if err != nil {
		return err
	}

	notes, err := s.notes.GetByProspectID(ctx, userID, id)
	if err != nil {
		return err
	}
	for _, note := range notes {
		if err := s.notes.Delete(ctx, userID, note.ID); err != nil {
			return err
		}
	}

	if err := s.photos.DeleteAllForProspect(ctx, userID, id); err != nil {
		// Orphaned objects in the bucket are harmless; do not block the delete.
		s.logger.WithError(models.ErrorInfo{Message: err.Error()}).Warn(
			fmt.Sprintf("Failed to remove photos for prospect %s", prospect.ID))
	}

	return s.prospects.Delete(ctx, userID, id)
}

// nameTaken reports whether another prospect of this user already uses the
// name, compared case-insensitively. Archived prospects count too: restoring
// one must not surface a duplicate.
func (s *Service) nameTaken(ctx context.Context, userID, name, excludeID string) (bool, error) {
	all, err := s.prospects.GetByUserID(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, p := range all {
		if p.ID == excludeID {
			continue
		}
		if strings.EqualFold(p.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

// --- Photos ---

// SetProspectPhoto uploads a new photo for a prospect and records its object
// path. The previous photo, if any, is removed best-effort.
func (s *Service) SetProspectPhoto(ctx context.Context, userID, prospectID string, r io.Reader, size int64, contentType string) (string, error) {
	prospect, err := s.GetProspect(ctx, userID, prospectID)
	if err != nil {
		return "", err
	}

	objectName, err := s.photos.Upload(ctx, userID, prospectID, r, size, contentType)
	if err != nil {
		return "", err
	}

	old := prospect.PhotoURL
	prospect.PhotoURL = objectName
	prospect.UpdatedAt = time.Now()
	if err := s.prospects.Update(ctx, prospect); err != nil {
		return "", err
	}

	if old != "" && old != objectName {
		if err := s.photos.Delete(ctx, old); err != nil {
			s.logger.WithError(models.ErrorInfo{Message: err.Error()}).Warn(
				fmt.Sprintf("Failed to remove replaced photo %s", old))
		}
	}
	return objectName, nil
}

// GetProspectPhoto streams the current photo for a prospect.
func (s *Service) GetProspectPhoto(ctx context.Context, userID, prospectID string) (io.ReadCloser, error) {
	prospect, err := s.GetProspect(ctx, userID, prospectID)
	if err != nil {
		return nil, err
	}
	if prospect.PhotoURL == "" || !storage.OwnedBy(prospect.PhotoURL, userID) {
		return nil, ErrNotFound
	}
	return s.photos.Get(ctx, prospect.PhotoURL)
}

// DeleteProspectPhoto removes the photo from a prospect.
func (s *Service) DeleteProspectPhoto(ctx context.Context, userID, prospectID string) error {
	prospect, err := s.GetProspect(ctx, userID, prospectID)
	if err != nil {
		return err
	}
	if prospect.PhotoURL == "" {
		return nil
	}
	if err := s.photos.Delete(ctx, prospect.PhotoURL); err != nil {
		return err
	}
	prospect.PhotoURL = ""
	prospect.UpdatedAt = time.Now()
	return s.prospects.Update(ctx, prospect)
}

// --- Notes ---

// CreateNote adds a timeline note to a prospect.
func (s *Service) CreateNote(ctx context.Context, userID, prospectID, content string) (*models.Note, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errors.New("note content is required")
	}
	// The prospect must exist and belong to the user.
	if _, err := s.GetProspect(ctx, userID, prospectID); err != nil {
		return nil, err
	}

	now := time.Now()
	note := &models.Note{
		ID:         uuid.New().String(),
		UserID:     userID,
		ProspectID: prospectID,
		Content:    content,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// ListNotes returns a prospect's timeline notes, newest first.
func (s *Service) ListNotes(ctx context.Context, userID, prospectID string) ([]*models.Note, error) {
	return s.notes.GetByProspectID(ctx, userID, prospectID)
}

// UpdateNote changes the text of an existing note.
func (s *Service) UpdateNote(ctx context.Context, userID, noteID, content string) error {
	if strings.TrimSpace(content) == "" {
		return errors.New("note content is required")
	}
	return s.notes.UpdateContent(ctx, userID, noteID, content)
}

// DeleteNote removes a note from a prospect's timeline.
func (s *Service) DeleteNote(ctx context.Context, userID, noteID string) error {
	return s.notes.Delete(ctx, userID, noteID)
}

// --- Dates ---

// CreateDate records a scheduled or past date.
func (s *Service) CreateDate(ctx context.Context, userID string, record *models.DateRecord) (*models.DateRecord, error) {
	record.ProspectName = strings.TrimSpace(record.ProspectName)
	if record.ProspectName == "" {
		return nil, errors.New("prospect name is required")
	}
	if record.DateTime.IsZero() {
		return nil, errors.New("date time is required")
	}

	now := time.Now()
	record.ID = uuid.New().String()
	record.UserID = userID
	record.CreatedAt = now
	record.UpdatedAt = now

	if err := s.dates.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// ListDates returns all of a user's date records in chronological order.
func (s *Service) ListDates(ctx context.Context, userID string) ([]*models.DateRecord, error) {
	return s.dates.GetByUserID(ctx, userID)
}

// UpdateDate applies changes to an existing date record.
func (s *Service) UpdateDate(ctx context.Context, userID string, record *models.DateRecord) (*models.DateRecord, error) {
	record.UserID = userID
	record.UpdatedAt = time.Now()
	if err := s.dates.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// DeleteDate removes a date record.
func (s *Service) DeleteDate(ctx context.Context, userID, id string) error {
	return s.dates.Delete(ctx, userID, id)
}
