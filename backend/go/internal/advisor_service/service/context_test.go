package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"LoveAI/backend/go/internal/models"
	"LoveAI/backend/go/pkg/logger"
)

func testBuilder(profiles *fakeProfileStore, prospects *fakeProspectStore, notes *fakeNoteStore, dates *fakeDateStore) *ContextBuilder {
	if profiles == nil {
		profiles = &fakeProfileStore{}
	}
	if prospects == nil {
		prospects = &fakeProspectStore{}
	}
	if notes == nil {
		notes = &fakeNoteStore{}
	}
	if dates == nil {
		dates = &fakeDateStore{}
	}
	return NewContextBuilder(profiles, prospects, notes, dates, logger.New("test", "", ""))
}

func TestBuildUnauthenticated(t *testing.T) {
	b := testBuilder(nil, nil, nil, nil)

	got := b.Build(context.Background(), "", "")
	if got != "User not authenticated." {
		t.Errorf("expected authentication sentinel, got %q", got)
	}
}

func TestBuildNoProfileNoProspects(t *testing.T) {
	b := testBuilder(nil, nil, nil, nil)

	got := b.Build(context.Background(), "u1", "")
	want := "User Profile: not set yet. Encourage them to fill out their dating values.\n\n" +
		"The user currently has no active dating prospects."
	if got != want {
		t.Errorf("unexpected context:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestBuildProfileRendering(t *testing.T) {
	profiles := &fakeProfileStore{profile: &models.Profile{
		FirstName:    "Jamie",
		LastName:     "Lee",
		Age:          "29",
		Birthday:     "June 4",
		City:         "Austin",
		State:        "TX",
		Occupation:   "Designer",
		Interests:    "climbing",
		Values:       []string{"Honesty", "Kindness"},
		LookingFor:   []string{"Long-term partner"},
		DealBreakers: []string{"Smoking"},
	}}
	b := testBuilder(profiles, nil, nil, nil)

	got := b.Build(context.Background(), "u1", "")
	want := "=== USER DATING PROFILE ===\n" +
		"Use this information to provide personalized dating advice:\n\n" +
		"NAME: Jamie Lee\n" +
		"AGE: 29 years old\n" +
		"BIRTHDAY: June 4\n" +
		"LOCATION: Austin, TX\n" +
		"OCCUPATION: Designer\n" +
		"INTERESTS & HOBBIES: climbing\n\n" +
		"CORE VALUES (2 items):\n1. Honesty\n2. Kindness\n\n" +
		"WHAT THEY'RE LOOKING FOR (1 items):\n1. Long-term partner\n\n" +
		"DEAL BREAKERS (1 items):\n1. Smoking\n\n" +
		"=== END USER PROFILE ===\n\n" +
		"The user currently has no active dating prospects."
	if got != want {
		t.Errorf("unexpected context:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestBuildPartialProfileOmitsEmptyFields(t *testing.T) {
	profiles := &fakeProfileStore{profile: &models.Profile{State: "TX"}}
	b := testBuilder(profiles, nil, nil, nil)

	got := b.Build(context.Background(), "u1", "")
	if strings.Contains(got, "NAME:") || strings.Contains(got, "AGE:") || strings.Contains(got, "OCCUPATION:") {
		t.Errorf("empty profile fields should be omitted, got %q", got)
	}
	if !strings.Contains(got, "LOCATION: TX\n") {
		t.Errorf("state-only location should render without a comma, got %q", got)
	}
}

func TestBuildProspectBlock(t *testing.T) {
	prospects := &fakeProspectStore{prospects: []*models.Prospect{{
		ID:         "p1",
		Name:       "Alex",
		Age:        "31",
		Occupation: "Chef",
		WhereWeMet: "Bumble",
		Interests:  "jazz",
		Notes:      "tall",
	}}}
	notes := &fakeNoteStore{byProspect: map[string][]*models.Note{
		"p1": {
			{ID: "n1", ProspectID: "p1", Content: "first note", CreatedAt: time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)},
			{ID: "n2", ProspectID: "p1", Content: "second note", CreatedAt: time.Date(2025, 6, 12, 9, 0, 0, 0, time.UTC)},
		},
	}}
	dates := &fakeDateStore{dates: []*models.DateRecord{{
		ID:            "d1",
		ProspectName:  "alex",
		DateTime:      time.Date(2025, 6, 14, 19, 30, 0, 0, time.UTC),
		Location:      "Oasis Bar",
		PreDateNotes:  "excited",
		PostDateNotes: "went great",
	}}}
	b := testBuilder(nil, prospects, notes, dates)

	got := b.Build(context.Background(), "u1", "")
	want := "User Profile: not set yet. Encourage them to fill out their dating values.\n\n" +
		"Current Dating Prospects:\n\n" +
		"**Alex**\n" +
		"- Age: 31\n" +
		"- Occupation: Chef\n" +
		"- Where we met: Bumble\n" +
		"- Interests: jazz\n" +
		"- General notes: tall\n" +
		"- Timeline notes:\n" +
		"  * 6/12/2025: second note\n" +
		"  * 6/10/2025: first note\n" +
		"- Date History:\n" +
		"  * 6/14/2025 at 7:30 PM (Oasis Bar)\n" +
		"    Pre-date thoughts: excited\n" +
		"    Post-date reflection: went great\n" +
		"\n"
	if got != want {
		t.Errorf("unexpected context:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestBuildNotesCappedNewestFirst(t *testing.T) {
	var noteList []*models.Note
	for i := 1; i <= 5; i++ {
		noteList = append(noteList, &models.Note{
			ID:        fmt.Sprintf("n%d", i),
			Content:   fmt.Sprintf("note %d", i),
			CreatedAt: time.Date(2025, 6, i, 0, 0, 0, 0, time.UTC),
		})
	}
	prospects := &fakeProspectStore{prospects: []*models.Prospect{{ID: "p1", Name: "Alex"}}}
	notes := &fakeNoteStore{byProspect: map[string][]*models.Note{"p1": noteList}}
	b := testBuilder(nil, prospects, notes, nil)

	got := b.Build(context.Background(), "u1", "")
	for _, absent := range []string{"note 1", "note 2"} {
		if strings.Contains(got, absent) {
			t.Errorf("expected %q to be trimmed from the context", absent)
		}
	}
	i5 := strings.Index(got, "note 5")
	i4 := strings.Index(got, "note 4")
	i3 := strings.Index(got, "note 3")
	if i5 == -1 || i4 == -1 || i3 == -1 || !(i5 < i4 && i4 < i3) {
		t.Errorf("expected the 3 newest notes in newest-first order, got %q", got)
	}
}

func TestBuildDatesCappedNewestFirst(t *testing.T) {
	var dateList []*models.DateRecord
	for i := 1; i <= 7; i++ {
		dateList = append(dateList, &models.DateRecord{
			ID:           fmt.Sprintf("d%d", i),
			ProspectName: "Alex",
			DateTime:     time.Date(2025, 6, i, 18, 0, 0, 0, time.UTC),
			Location:     fmt.Sprintf("spot %d", i),
		})
	}
	prospects := &fakeProspectStore{prospects: []*models.Prospect{{ID: "p1", Name: "Alex"}}}
	b := testBuilder(nil, prospects, nil, &fakeDateStore{dates: dateList})

	got := b.Build(context.Background(), "u1", "")
	for _, absent := range []string{"spot 1", "spot 2"} {
		if strings.Contains(got, absent) {
			t.Errorf("expected %q to be trimmed from the context", absent)
		}
	}
	i7 := strings.Index(got, "spot 7")
	i3 := strings.Index(got, "spot 3")
	if i7 == -1 || i3 == -1 || i7 > i3 {
		t.Errorf("expected the 5 newest dates in newest-first order, got %q", got)
	}
}

func TestBuildOrphanedDateRecordIgnored(t *testing.T) {
	prospects := &fakeProspectStore{prospects: []*models.Prospect{{ID: "p1", Name: "Alex"}}}
	dates := &fakeDateStore{dates: []*models.DateRecord{
		{
			ID:           "d1",
			ProspectName: "Riley", // archived long ago; matches no active prospect
			DateTime:     time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC),
			Location:     "Ghost Cafe",
		},
		{
			ID:           "d2",
			ProspectName: "Alex",
			DateTime:     time.Date(2025, 6, 2, 18, 0, 0, 0, time.UTC),
			Location:     "Oasis Bar",
		},
	}}
	b := testBuilder(nil, prospects, nil, dates)

	got := b.Build(context.Background(), "u1", "")
	for _, absent := range []string{"Riley", "Ghost Cafe"} {
		if strings.Contains(got, absent) {
			t.Errorf("orphaned date record leaked into the context via %q: %q", absent, got)
		}
	}
	if !strings.Contains(got, "Oasis Bar") {
		t.Errorf("matching date record missing from the context: %q", got)
	}
}

func TestBuildDateWithOnlyPreDateNotes(t *testing.T) {
	prospects := &fakeProspectStore{prospects: []*models.Prospect{{ID: "p1", Name: "Alex"}}}
	dates := &fakeDateStore{dates: []*models.DateRecord{{
		ID:           "d1",
		ProspectName: "Alex",
		DateTime:     time.Date(2025, 6, 20, 19, 0, 0, 0, time.UTC),
		PreDateNotes: "nervous but hopeful",
	}}}
	b := testBuilder(nil, prospects, nil, dates)

	got := b.Build(context.Background(), "u1", "")
	want := "- Date History:\n" +
		"  * 6/20/2025 at 7:00 PM\n" +
		"    Pre-date thoughts: nervous but hopeful\n"
	if !strings.Contains(got, want) {
		t.Errorf("expected pre-date-only block:\ngot:  %q\nwant substring: %q", got, want)
	}
	if strings.Contains(got, "Post-date reflection:") {
		t.Errorf("a date without post-date notes must not render a reflection line: %q", got)
	}
}

func TestBuildArchivedProspectsExcluded(t *testing.T) {
	prospects := &fakeProspectStore{prospects: []*models.Prospect{
		{ID: "p1", Name: "Alex"},
		{ID: "p2", Name: "Morgan", InGraveyard: true},
	}}
	b := testBuilder(nil, prospects, nil, nil)

	got := b.Build(context.Background(), "u1", "")
	if strings.Contains(got, "Morgan") {
		t.Errorf("archived prospect leaked into the context: %q", got)
	}
	if !strings.Contains(got, "**Alex**") {
		t.Errorf("active prospect missing from the context: %q", got)
	}
}

func TestBuildFocusFilter(t *testing.T) {
	prospects := &fakeProspectStore{prospects: []*models.Prospect{
		{ID: "p1", Name: "Alexandra"},
		{ID: "p2", Name: "Alex"},
		{ID: "p3", Name: "Sam"},
	}}
	b := testBuilder(nil, prospects, nil, nil)

	got := b.Build(context.Background(), "u1", "alex")
	if strings.Contains(got, "**Sam**") {
		t.Errorf("focused context should not include unrelated prospects: %q", got)
	}
	if !strings.Contains(got, "**Alexandra**") || !strings.Contains(got, "**Alex**") {
		t.Errorf("focused context should include every matching prospect: %q", got)
	}
}

func TestBuildRankingAndTruncation(t *testing.T) {
	var prospectList []*models.Prospect
	for i := 1; i <= 10; i++ {
		prospectList = append(prospectList, &models.Prospect{
			ID:   fmt.Sprintf("p%d", i),
			Name: fmt.Sprintf("Prospect%d", i),
		})
	}
	// Prospect3 has the most dates, then Prospect7, then Prospect9.
	var dateList []*models.DateRecord
	addDates := func(name string, n int) {
		for i := 0; i < n; i++ {
			dateList = append(dateList, &models.DateRecord{
				ID:           fmt.Sprintf("%s-%d", name, i),
				ProspectName: strings.ToUpper(name), // name matching ignores case
				DateTime:     time.Date(2025, 5, i+1, 18, 0, 0, 0, time.UTC),
			})
		}
	}
	addDates("Prospect3", 3)
	addDates("Prospect7", 2)
	addDates("Prospect9", 1)

	prospects := &fakeProspectStore{prospects: prospectList}
	b := testBuilder(nil, prospects, nil, &fakeDateStore{dates: dateList})

	got := b.Build(context.Background(), "u1", "")

	var order []string
	for _, line := range strings.Split(got, "\n") {
		if strings.HasPrefix(line, "**") {
			order = append(order, strings.Trim(line, "*"))
		}
	}
	want := []string{
		"Prospect3", "Prospect7", "Prospect9",
		// Remaining slots keep the stored order.
		"Prospect1", "Prospect2", "Prospect4", "Prospect5", "Prospect6",
	}
	if len(order) != len(want) {
		t.Fatalf("expected %d prospect blocks, got %d: %v", len(want), len(order), order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("prospect %d: expected %s, got %s", i, want[i], order[i])
		}
	}

	note := "\nNote: Showing data for your 8 most active prospects. You have 10 total prospects. For specific advice about other prospects, mention their name in your question.\n"
	if !strings.Contains(got, note) {
		t.Errorf("missing truncation note in context: %q", got)
	}
}

func TestBuildNoTruncationNoteUnderLimit(t *testing.T) {
	prospects := &fakeProspectStore{prospects: []*models.Prospect{{ID: "p1", Name: "Alex"}}}
	b := testBuilder(nil, prospects, nil, nil)

	got := b.Build(context.Background(), "u1", "")
	if strings.Contains(got, "most active prospects") {
		t.Errorf("unexpected truncation note: %q", got)
	}
}

func TestBuildDegradesOnStoreErrors(t *testing.T) {
	boom := errors.New("store down")
	b := testBuilder(
		&fakeProfileStore{err: boom},
		&fakeProspectStore{err: boom},
		&fakeNoteStore{err: boom},
		&fakeDateStore{err: boom},
	)

	got := b.Build(context.Background(), "u1", "")
	want := "User Profile: not set yet. Encourage them to fill out their dating values.\n\n" +
		"The user currently has no active dating prospects."
	if got != want {
		t.Errorf("expected degraded context, got %q", got)
	}
}

func TestBuildNoteFetchErrorDegradesToEmpty(t *testing.T) {
	prospects := &fakeProspectStore{prospects: []*models.Prospect{{ID: "p1", Name: "Alex"}}}
	b := testBuilder(nil, prospects, &fakeNoteStore{err: errors.New("notes down")}, nil)

	got := b.Build(context.Background(), "u1", "")
	if !strings.Contains(got, "**Alex**") {
		t.Errorf("prospect block should still render when notes fail: %q", got)
	}
	if strings.Contains(got, "- Timeline notes:") {
		t.Errorf("timeline section should be omitted when notes fail: %q", got)
	}
}
