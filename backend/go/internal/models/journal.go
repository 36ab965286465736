package models

import "time"

// Profile holds the user's own dating profile. It is stored as a single
// document per user (the document _id is the user ID), so there is no
// separate ID field. A user with no profile document is a valid state.
type Profile struct {
	FirstName  string `bson:"first_name,omitempty" json:"firstName,omitempty"`
	LastName   string `bson:"last_name,omitempty" json:"lastName,omitempty"`
	Age        string `bson:"age,omitempty" json:"age,omitempty"`
	Birthday   string `bson:"birthday,omitempty" json:"birthday,omitempty"`
	City       string `bson:"city,omitempty" json:"city,omitempty"`
	State      string `bson:"state,omitempty" json:"state,omitempty"`
	Occupation string `bson:"occupation,omitempty" json:"occupation,omitempty"`
	Interests  string `bson:"interests,omitempty" json:"interests,omitempty"`

	// Free-text list fields, each an ordered sequence of short entries
	// edited one by one in the client.
	Values       []string `bson:"values,omitempty" json:"values,omitempty"`
	LookingFor   []string `bson:"looking_for,omitempty" json:"lookingFor,omitempty"`
	Boundaries   []string `bson:"boundaries,omitempty" json:"boundaries,omitempty"`
	DealBreakers []string `bson:"deal_breakers,omitempty" json:"dealBreakers,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// Prospect is a person the user is dating or considering dating.
type Prospect struct {
	ID         string `bson:"_id" json:"id"`
	UserID     string `bson:"user_id" json:"-"`
	Name       string `bson:"name" json:"name"`
	Age        string `bson:"age,omitempty" json:"age,omitempty"`
	Occupation string `bson:"occupation,omitempty" json:"occupation,omitempty"`
	WhereWeMet string `bson:"where_we_met,omitempty" json:"whereWeMet,omitempty"`
	Interests  string `bson:"interests,omitempty" json:"interests,omitempty"`
	Notes      string `bson:"notes,omitempty" json:"notes,omitempty"`
	PhotoURL   string `bson:"photo_url,omitempty" json:"photoUrl,omitempty"`

	// InGraveyard marks a prospect as archived (soft delete). Archived
	// prospects are kept for the record but excluded from advisor context.
	InGraveyard bool `bson:"in_graveyard" json:"inGraveyard"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// Note is a timestamped free-text entry on a prospect's timeline.
type Note struct {
	ID         string    `bson:"_id" json:"id"`
	UserID     string    `bson:"user_id" json:"-"`
	ProspectID string    `bson:"prospect_id" json:"prospectId"`
	Content    string    `bson:"content" json:"content"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updatedAt"`
}

// DateRecord is a scheduled or past date. It references a prospect by name,
// not by ID: the mobile client has always written the name the user typed
// into the calendar form, and matching is by case-insensitive equality.
// Renaming a prospect therefore orphans their date history.
type DateRecord struct {
	ID            string    `bson:"_id" json:"id"`
	UserID        string    `bson:"user_id" json:"-"`
	ProspectName  string    `bson:"prospect_name" json:"prospectName"`
	DateTime      time.Time `bson:"date_time" json:"dateTime"`
	Location      string    `bson:"location,omitempty" json:"location,omitempty"`
	PreDateNotes  string    `bson:"pre_date_notes,omitempty" json:"preDateNotes,omitempty"`
	PostDateNotes string    `bson:"post_date_notes,omitempty" json:"postDateNotes,omitempty"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updatedAt"`
}
