package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"LoveAI/backend/go/internal/models"
	"LoveAI/backend/go/pkg/logger"
)

// In-memory store fakes. They keep documents in slices and mutate them the
// way the Mongo stores do, which is all the service logic needs.

type memProfileStore struct {
	profile *models.Profile
}

func (m *memProfileStore) Get(ctx context.Context, userID string) (*models.Profile, error) {
	return m.profile, nil
}

func (m *memProfileStore) Upsert(ctx context.Context, userID string, profile *models.Profile) error {
	m.profile = profile
	return nil
}

type memProspectStore struct {
	prospects []*models.Prospect
}

func (m *memProspectStore) Create(ctx context.Context, p *models.Prospect) error {
	cp := *p
	m.prospects = append(m.prospects, &cp)
	return nil
}

func (m *memProspectStore) GetByID(ctx context.Context, userID, id string) (*models.Prospect, error) {
	for _, p := range m.prospects {
		if p.ID == id && p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memProspectStore) GetByUserID(ctx context.Context, userID string) ([]*models.Prospect, error) {
	var out []*models.Prospect
	for _, p := range m.prospects {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memProspectStore) GetActiveByUserID(ctx context.Context, userID string) ([]*models.Prospect, error) {
	var out []*models.Prospect
	for _, p := range m.prospects {
		if p.UserID == userID && !p.InGraveyard {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memProspectStore) Update(ctx context.Context, p *models.Prospect) error {
	for i, existing := range m.prospects {
		if existing.ID == p.ID && existing.UserID == p.UserID {
			cp := *p
			m.prospects[i] = &cp
			return nil
		}
	}
	return errors.New("not found")
}

func (m *memProspectStore) Delete(ctx context.Context, userID, id string) error {
	for i, p := range m.prospects {
		if p.ID == id && p.UserID == userID {
			m.prospects = append(m.prospects[:i], m.prospects[i+1:]...)
			return nil
		}
	}
	return nil
}

type memNoteStore struct {
	notes []*models.Note
}

func (m *memNoteStore) Create(ctx context.Context, n *models.Note) error {
	cp := *n
	m.notes = append(m.notes, &cp)
	return nil
}

func (m *memNoteStore) GetByProspectID(ctx context.Context, userID, prospectID string) ([]*models.Note, error) {
	var out []*models.Note
	for _, n := range m.notes {
		if n.UserID == userID && n.ProspectID == prospectID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *memNoteStore) UpdateContent(ctx context.Context, userID, noteID, content string) error {
	for _, n := range m.notes {
		if n.ID == noteID && n.UserID == userID {
			n.Content = content
			return nil
		}
	}
	return errors.New("not found")
}

func (m *memNoteStore) Delete(ctx context.Context, userID, noteID string) error {
	for i, n := range m.notes {
		if n.ID == noteID && n.UserID == userID {
			m.notes = append(m.notes[:i], m.notes[i+1:]...)
			return nil
		}
	}
	return nil
}

type memDateStore struct {
	dates []*models.DateRecord
}

func (m *memDateStore) Create(ctx context.Context, d *models.DateRecord) error {
	cp := *d
	m.dates = append(m.dates, &cp)
	return nil
}

func (m *memDateStore) GetByUserID(ctx context.Context, userID string) ([]*models.DateRecord, error) {
	var out []*models.DateRecord
	for _, d := range m.dates {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *memDateStore) Update(ctx context.Context, d *models.DateRecord) error {
	for i, existing := range m.dates {
		if existing.ID == d.ID && existing.UserID == d.UserID {
			cp := *d
			m.dates[i] = &cp
			return nil
		}
	}
	return errors.New("not found")
}

func (m *memDateStore) Delete(ctx context.Context, userID, id string) error {
	for i, d := range m.dates {
		if d.ID == id && d.UserID == userID {
			m.dates = append(m.dates[:i], m.dates[i+1:]...)
			return nil
		}
	}
	return nil
}

type memPhotoStorage struct {
	objects map[string][]byte
	counter int
}

func newMemPhotoStorage() *memPhotoStorage {
	return &memPhotoStorage{objects: map[string][]byte{}}
}

func (m *memPhotoStorage) Upload(ctx context.Context, userID, prospectID string, r io.Reader, size int64, contentType string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.counter++
	name := fmt.Sprintf("prospects/%s/%s/photo_%d.jpg", userID, prospectID, m.counter)
	m.objects[name] = data
	return name, nil
}

func (m *memPhotoStorage) Get(ctx context.Context, objectName string) (io.ReadCloser, error) {
	data, ok := m.objects[objectName]
	if !ok {
		return nil, errors.New("no such object")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memPhotoStorage) Delete(ctx context.Context, objectName string) error {
	delete(m.objects, objectName)
	return nil
}

func (m *memPhotoStorage) DeleteAllForProspect(ctx context.Context, userID, prospectID string) error {
	prefix := "prospects/" + userID + "/" + prospectID + "/"
	for name := range m.objects {
		if strings.HasPrefix(name, prefix) {
			delete(m.objects, name)
		}
	}
	return nil
}

func testService() (*Service, *memProspectStore, *memNoteStore, *memPhotoStorage) {
	prospects := &memProspectStore{}
	notes := &memNoteStore{}
	photos := newMemPhotoStorage()
	svc := NewService(&memProfileStore{}, prospects, notes, &memDateStore{}, photos, logger.New("test", "", ""))
	return svc, prospects, notes, photos
}

func TestCreateProspectDuplicateName(t *testing.T) {
	svc, _, _, _ := testService()
	ctx := context.Background()

	if _, err := svc.CreateProspect(ctx, "u1", &models.Prospect{Name: "Alex"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.CreateProspect(ctx, "u1", &models.Prospect{Name: "alex"})
	if !errors.Is(err, ErrProspectNameExists) {
		t.Errorf("expected ErrProspectNameExists for case-insensitive duplicate, got %v", err)
	}

	// A different user can reuse the name.
	if _, err := svc.CreateProspect(ctx, "u2", &models.Prospect{Name: "Alex"}); err != nil {
		t.Errorf("name uniqueness must be per user, got %v", err)
	}
}

func TestCreateProspectRequiresName(t *testing.T) {
	svc, _, _, _ := testService()

	if _, err := svc.CreateProspect(context.Background(), "u1", &models.Prospect{Name: "   "}); err == nil {
		t.Error("expected an error for a blank name")
	}
}

func TestUpdateProspectRenameConflict(t *testing.T) {
	svc, _, _, _ := testService()
	ctx := context.Background()

	_, err := svc.CreateProspect(ctx, "u1", &models.Prospect{Name: "Alex"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.CreateProspect(ctx, "u1", &models.Prospect{Name: "Sam"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second.Name = "ALEX"
	if _, err := svc.UpdateProspect(ctx, "u1", second); !errors.Is(err, ErrProspectNameExists) {
		t.Errorf("expected ErrProspectNameExists on rename conflict, got %v", err)
	}

	// Changing only the letter case of your own name is fine.
	second.Name = "SAM"
	if _, err := svc.UpdateProspect(ctx, "u1", second); err != nil {
		t.Errorf("case-only rename of the same prospect should pass, got %v", err)
	}
}

func TestArchiveAndRestore(t *testing.T) {
	svc, prospects, _, _ := testService()
	ctx := context.Background()

	created, err := svc.CreateProspect(ctx, "u1", &models.Prospect{Name: "Alex"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.ArchiveProspect(ctx, "u1", created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	active, _ := prospects.GetActiveByUserID(ctx, "u1")
	if len(active) != 0 {
		t.Errorf("archived prospect still listed as active")
	}
	all, _ := prospects.GetByUserID(ctx, "u1")
	if len(all) != 1 {
		t.Fatalf("archive must not delete the prospect")
	}

	if err := svc.RestoreProspect(ctx, "u1", created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	active, _ = prospects.GetActiveByUserID(ctx, "u1")
	if len(active) != 1 {
		t.Errorf("restored prospect should be active again")
	}
}

func TestRestoreConflictsWithNewActiveProspect(t *testing.T) {
	svc, _, _, _ := testService()
	ctx := context.Background()

	first, err := svc.CreateProspect(ctx, "u1", &models.Prospect{Name: "Alex"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.ArchiveProspect(ctx, "u1", first.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Archived prospects still hold their name, so this create conflicts.
	if _, err := svc.CreateProspect(ctx, "u1", &models.Prospect{Name: "Alex"}); !errors.Is(err, ErrProspectNameExists) {
		t.Fatalf("archived names must stay reserved, got %v", err)
	}
}

func TestDeleteProspectRemovesNotesAndPhotos(t *testing.T) {
	svc, prospects, notes, photos := testService()
	ctx := context.Background()

	created, err := svc.CreateProspect(ctx, "u1", &models.Prospect{Name: "Alex"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.CreateNote(ctx, "u1", created.ID, "met for coffee"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.SetProspectPhoto(ctx, "u1", created.ID, strings.NewReader("img"), 3, "image/jpeg"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.DeleteProspect(ctx, "u1", created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if all, _ := prospects.GetByUserID(ctx, "u1"); len(all) != 0 {
		t.Errorf("prospect not deleted")
	}
	if remaining, _ := notes.GetByProspectID(ctx, "u1", created.ID); len(remaining) != 0 {
		t.Errorf("notes not deleted with their prospect")
	}
	if len(photos.objects) != 0 {
		t.Errorf("photos not deleted with their prospect")
	}
}

func TestSetProspectPhotoReplacesPrevious(t *testing.T) {
	svc, _, _, photos := testService()
	ctx := context.Background()

	created, err := svc.CreateProspect(ctx, "u1", &models.Prospect{Name: "Alex"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, err := svc.SetProspectPhoto(ctx, "u1", created.ID, strings.NewReader("one"), 3, "image/jpeg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.SetProspectPhoto(ctx, "u1", created.ID, strings.NewReader("two"), 3, "image/jpeg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := photos.objects[first]; ok {
		t.Errorf("replaced photo should be removed from storage")
	}
	if _, ok := photos.objects[second]; !ok {
		t.Errorf("new photo missing from storage")
	}

	got, err := svc.GetProspect(ctx, "u1", created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.PhotoURL != second {
		t.Errorf("prospect should reference the new photo, got %q", got.PhotoURL)
	}
}

func TestCreateNoteRequiresExistingProspect(t *testing.T) {
	svc, _, _, _ := testService()

	_, err := svc.CreateNote(context.Background(), "u1", "missing", "hello")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestProspectOwnershipIsolation(t *testing.T) {
	svc, _, _, _ := testService()
	ctx := context.Background()

	created, err := svc.CreateProspect(ctx, "u1", &models.Prospect{Name: "Alex"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.GetProspect(ctx, "u2", created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("another user must not see the prospect, got %v", err)
	}
}
