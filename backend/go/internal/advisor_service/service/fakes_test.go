package service

import (
	"context"
	"errors"

	"LoveAI/backend/go/internal/models"
)

// In-memory stand-ins for the journal stores, the history store and the LLM
// client. Each fake can be primed with data or an error.

type fakeProfileStore struct {
	profile *models.Profile
	err     error
}

func (f *fakeProfileStore) Get(ctx context.Context, userID string) (*models.Profile, error) {
	return f.profile, f.err
}

func (f *fakeProfileStore) Upsert(ctx context.Context, userID string, profile *models.Profile) error {
	return errors.New("not implemented")
}

type fakeProspectStore struct {
	prospects []*models.Prospect
	err       error
	calls     int
}

func (f *fakeProspectStore) Create(ctx context.Context, p *models.Prospect) error {
	return errors.New("not implemented")
}

func (f *fakeProspectStore) GetByID(ctx context.Context, userID, id string) (*models.Prospect, error) {
	for _, p := range f.prospects {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProspectStore) GetByUserID(ctx context.Context, userID string) ([]*models.Prospect, error) {
	f.calls++
	return f.prospects, f.err
}

func (f *fakeProspectStore) GetActiveByUserID(ctx context.Context, userID string) ([]*models.Prospect, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var active []*models.Prospect
	for _, p := range f.prospects {
		if !p.InGraveyard {
			active = append(active, p)
		}
	}
	return active, nil
}

func (f *fakeProspectStore) Update(ctx context.Context, p *models.Prospect) error {
	return errors.New("not implemented")
}

func (f *fakeProspectStore) Delete(ctx context.Context, userID, id string) error {
	return errors.New("not implemented")
}

type fakeNoteStore struct {
	byProspect map[string][]*models.Note
	err        error
}

func (f *fakeNoteStore) Create(ctx context.Context, n *models.Note) error {
	return errors.New("not implemented")
}

func (f *fakeNoteStore) GetByProspectID(ctx context.Context, userID, prospectID string) ([]*models.Note, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byProspect[prospectID], nil
}

func (f *fakeNoteStore) UpdateContent(ctx context.Context, userID, noteID, content string) error {
	return errors.New("not implemented")
}

func (f *fakeNoteStore) Delete(ctx context.Context, userID, noteID string) error {
	return errors.New("not implemented")
}

type fakeDateStore struct {
	dates []*models.DateRecord
	err   error
}

func (f *fakeDateStore) Create(ctx context.Context, d *models.DateRecord) error {
	return errors.New("not implemented")
}

func (f *fakeDateStore) GetByUserID(ctx context.Context, userID string) ([]*models.DateRecord, error) {
	return f.dates, f.err
}

func (f *fakeDateStore) Update(ctx context.Context, d *models.DateRecord) error {
	return errors.New("not implemented")
}

func (f *fakeDateStore) Delete(ctx context.Context, userID, id string) error {
	return errors.New("not implemented")
}

type fakeHistory struct {
	messages  []models.ChatMessage
	appended  []models.ChatMessage
	getErr    error
	appendErr error
}

func (f *fakeHistory) Get(ctx context.Context, userID string) ([]models.ChatMessage, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.messages, nil
}

func (f *fakeHistory) Append(ctx context.Context, userID string, messages ...models.ChatMessage) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, messages...)
	return nil
}

func (f *fakeHistory) Clear(ctx context.Context, userID string) error {
	f.messages = nil
	f.appended = nil
	return nil
}

type fakeLLM struct {
	reply   string
	err     error
	calls   int
	lastReq *models.ChatRequest
}

func (f *fakeLLM) Complete(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.ChatResponse{
		Message: models.ChatMessage{Role: models.SpeakerAssistant, Content: f.reply},
	}, nil
}
