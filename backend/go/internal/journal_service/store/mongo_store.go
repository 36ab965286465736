package store

import (
	"context"
	"time"

	"LoveAI/backend/go/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used by the journal service.
const (
	ProfilesCollection  = "profiles"
	ProspectsCollection = "prospects"
	NotesCollection     = "notes"
	DatesCollection     = "dates"
)

// --- ProfileStore ---

// MongoProfileStore is an implementation of ProfileStore using MongoDB.
type MongoProfileStore struct {
	collection *mongo.Collection
}

// NewMongoProfileStore creates a new MongoProfileStore.
func NewMongoProfileStore(db *mongo.Database) *MongoProfileStore {
	return &MongoProfileStore{collection: db.Collection(ProfilesCollection)}
}

// Get retrieves the profile document for a user. Missing is not an error.
func (s *MongoProfileStore) Get(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	err := s.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// Upsert creates or replaces the profile document for a user.
func (s *MongoProfileStore) Upsert(ctx context.Context, userID string, profile *models.Profile) error {
	opts := options.Replace().SetUpsert(true)
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": userID}, profile, opts)
	return err
}

// --- ProspectStore ---

// MongoProspectStore is an implementation of ProspectStore using MongoDB.
type MongoProspectStore struct {
	collection *mongo.Collection
}

// NewMongoProspectStore creates a new MongoProspectStore.
func NewMongoProspectStore(db *mongo.Database) *MongoProspectStore {
	return &MongoProspectStore{collection: db.Collection(ProspectsCollection)}
}

// Create inserts a new prospect document.
func (s *MongoProspectStore) Create(ctx context.Context, prospect *models.Prospect) error {
	_, err := s.collection.InsertOne(ctx, prospect)
	return err
}

// GetByID retrieves a prospect by its ID, scoped to the owning user.
func (s *MongoProspectStore) GetByID(ctx context.Context, userID, id string) (*models.Prospect, error) {
	var prospect models.Prospect
	err := s.collection.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&prospect)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &prospect, nil
}

// GetByUserID retrieves all prospects for a user, newest first.
func (s *MongoProspectStore) GetByUserID(ctx context.Context, userID string) ([]*models.Prospect, error) {
	return s.find(ctx, bson.M{"user_id": userID})
}

// GetActiveByUserID retrieves all non-archived prospects for a user, newest first.
func (s *MongoProspectStore) GetActiveByUserID(ctx context.Context, userID string) ([]*models.Prospect, error) {
	return s.find(ctx, bson.M{"user_id": userID, "in_graveyard": false})
}

func (s *MongoProspectStore) find(ctx context.Context, filter bson.M) ([]*models.Prospect, error) {
	var prospects []*models.Prospect
	opts := options.Find()
	opts.SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &prospects); err != nil {
		return nil, err
	}
	return prospects, nil
}

// Update replaces the mutable fields of an existing prospect.
func (s *MongoProspectStore) Update(ctx context.Context, prospect *models.Prospect) error {
	filter := bson.M{"_id": prospect.ID, "user_id": prospect.UserID}
	update := bson.M{
		"$set": bson.M{
			"name":         prospect.Name,
			"age":          prospect.Age,
			"occupation":   prospect.Occupation,
			"where_we_met": prospect.WhereWeMet,
			"interests":    prospect.Interests,
			"notes":        prospect.Notes,
			"photo_url":    prospect.PhotoURL,
			"in_graveyard": prospect.InGraveyard,
			"updated_at":   prospect.UpdatedAt,
		},
	}
	_, err := s.collection.UpdateOne(ctx, filter, update)
	return err
}

// Delete removes a prospect document permanently.
func (s *MongoProspectStore) Delete(ctx context.Context, userID, id string) error {
	_, err := s.collection.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	return err
}

// --- NoteStore ---

// MongoNoteStore is an implementation of NoteStore using MongoDB.
type MongoNoteStore struct {
	collection *mongo.Collection
}

// NewMongoNoteStore creates a new MongoNoteStore.
func NewMongoNoteStore(db *mongo.Database) *MongoNoteStore {
	return &MongoNoteStore{collection: db.Collection(NotesCollection)}
}

// Create inserts a new note document.
func (s *MongoNoteStore) Create(ctx context.Context, note *models.Note) error {
	_, err := s.collection.InsertOne(ctx, note)
	return err
}

// GetByProspectID retrieves all notes on a prospect's timeline, newest first.
func (s *MongoNoteStore) GetByProspectID(ctx context.Context, userID, prospectID string) ([]*models.Note, error) {
	var notes []*models.Note
	opts := options.Find()
	opts.SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := s.collection.Find(ctx, bson.M{"user_id": userID, "prospect_id": prospectID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// UpdateContent updates the text of an existing note.
func (s *MongoNoteStore) UpdateContent(ctx context.Context, userID, noteID, content string) error {
	filter := bson.M{"_id": noteID, "user_id": userID}
	update := bson.M{"$set": bson.M{"content": content, "updated_at": time.Now()}}
	_, err := s.collection.UpdateOne(ctx, filter, update)
	return err
}

// Delete removes a note document.
func (s *MongoNoteStore) Delete(ctx context.Context, userID, noteID string) error {
	_, err := s.collection.DeleteOne(ctx, bson.M{"_id": noteID, "user_id": userID})
	return err
}

// --- DateStore ---

// MongoDateStore is an implementation of DateStore using MongoDB.
type MongoDateStore struct {
	collection *mongo.Collection
}

// NewMongoDateStore creates a new MongoDateStore.
func NewMongoDateStore(db *mongo.Database) *MongoDateStore {
	return &MongoDateStore{collection: db.Collection(DatesCollection)}
}

// Create inserts a new date record.
func (s *MongoDateStore) Create(ctx context.Context, record *models.DateRecord) error {
	_, err := s.collection.InsertOne(ctx, record)
	return err
}

// GetByUserID retrieves all date records for a user in chronological order.
func (s *MongoDateStore) GetByUserID(ctx context.Context, userID string) ([]*models.DateRecord, error) {
	var records []*models.DateRecord
	opts := options.Find()
	opts.SetSort(bson.D{{Key: "date_time", Value: 1}})

	cursor, err := s.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Update replaces the mutable fields of an existing date record.
func (s *MongoDateStore) Update(ctx context.Context, record *models.DateRecord) error {
	filter := bson.M{"_id": record.ID, "user_id": record.UserID}
	update := bson.M{
		"$set": bson.M{
			"prospect_name":   record.ProspectName,
			"date_time":       record.DateTime,
			"location":        record.Location,
			"pre_date_notes":  record.PreDateNotes,
			"post_date_notes": record.PostDateNotes,
			"updated_at":      record.UpdatedAt,
		},
	}
	_, err := s.collection.UpdateOne(ctx, filter, update)
	return err
}

// Delete removes a date record.
func (s *MongoDateStore) Delete(ctx context.Context, userID, id string) error {
	_, err := s.collection.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	return err
}
