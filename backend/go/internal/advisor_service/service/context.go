package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"LoveAI/backend/go/internal/journal_service/store"
	"LoveAI/backend/go/internal/models"
	"LoveAI/backend/go/pkg/logger"
)

// Context size management. The advisor always answers, so when a user has
// more data than fits, the builder trims rather than fails.
const (
	maxProspectsGeneralQuery = 8
	maxNotesPerProspect      = 3
	maxDatesPerProspect      = 5
)

// ContextBuilder assembles the dating-context document injected into every
// advisor conversation. It reads the journal collections directly; a store
// failure degrades that section to empty instead of failing the chat.
type ContextBuilder struct {
	profiles  store.ProfileStore
	prospects store.ProspectStore
	notes     store.NoteStore
	dates     store.DateStore
	logger    *logger.Logger
}

// NewContextBuilder creates a new ContextBuilder.
func NewContextBuilder(profiles store.ProfileStore, prospects store.ProspectStore, notes store.NoteStore, dates store.DateStore, logger *logger.Logger) *ContextBuilder {
	return &ContextBuilder{
		profiles:  profiles,
		prospects: prospects,
		notes:     notes,
		dates:     dates,
		logger:    logger,
	}
}

// Build assembles the context document for a user. focusName, when non-empty,
// narrows the prospect section to prospects whose name contains it (the
// result of ExtractProspectName). Build never returns an error: missing or
// unreadable data produces a smaller document.
func (b *ContextBuilder) Build(ctx context.Context, userID, focusName string) string {
	if userID == "" {
		return "User not authenticated."
	}

	var sb strings.Builder

	profile, err := b.profiles.Get(ctx, userID)
	if err != nil {
		b.logger.WithError(models.ErrorInfo{Message: err.Error()}).Warn("Failed to load profile for context")
		profile = nil
	}
	b.writeProfile(&sb, profile)

	active, err := b.prospects.GetActiveByUserID(ctx, userID)
	if err != nil {
		b.logger.WithError(models.ErrorInfo{Message: err.Error()}).Warn("Failed to load prospects for context")
		active = nil
	}
	if len(active) == 0 {
		sb.WriteString("The user currently has no active dating prospects.")
		return sb.String()
	}

	allDates, err := b.dates.GetByUserID(ctx, userID)
	if err != nil {
		b.logger.WithError(models.ErrorInfo{Message: err.Error()}).Warn("Failed to load dates for context")
		allDates = nil
	}

	truncated := false
	var include []*models.Prospect
	if focusName != "" {
		lowered := strings.ToLower(focusName)
		for _, p := range active {
			if strings.Contains(strings.ToLower(p.Name), lowered) {
				include = append(include, p)
			}
		}
	} else {
		// Rank every active prospect by how many recorded dates they have,
		// then keep the busiest. The stable sort preserves the stored order
		// between prospects with equal counts.
		include = make([]*models.Prospect, len(active))
		copy(include, active)
		sort.SliceStable(include, func(i, j int) bool {
			return countDates(allDates, include[i].Name) > countDates(allDates, include[j].Name)
		})
		if len(include) > maxProspectsGeneralQuery {
			include = include[:maxProspectsGeneralQuery]
			truncated = true
		}
	}

	sb.WriteString("Current Dating Prospects:\n\n")

	// Timeline notes are fetched per prospect; do the round trips in
	// parallel and keep results indexed so output order is deterministic.
	notesByProspect := make([][]*models.Note, len(include))
	var wg sync.WaitGroup
	for i, p := range include {
		wg.Add(1)
		go func(i int, prospectID string) {
			defer wg.Done()
			notes, err := b.notes.GetByProspectID(ctx, userID, prospectID)
			if err != nil {
				b.logger.WithError(models.ErrorInfo{Message: err.Error()}).Warn("Failed to load notes for context")
				return
			}
			notesByProspect[i] = notes
		}(i, p.ID)
	}
	wg.Wait()

	for i, p := range include {
		b.writeProspect(&sb, p, notesByProspect[i], allDates)
	}

	if truncated {
		fmt.Fprintf(&sb,
			"\nNote: Showing data for your %d most active prospects. You have %d total prospects. For specific advice about other prospects, mention their name in your question.\n",
			maxProspectsGeneralQuery, len(active))
	}

	return sb.String()
}

// writeProfile renders the user profile section. Only fields the user has
// filled in appear.
func (b *ContextBuilder) writeProfile(sb *strings.Builder, profile *models.Profile) {
	if profile == nil {
		sb.WriteString("User Profile: not set yet. Encourage them to fill out their dating values.\n\n")
		return
	}

	sb.WriteString("=== USER DATING PROFILE ===\n")
	sb.WriteString("Use this information to provide personalized dating advice:\n\n")

	if profile.FirstName != "" || profile.LastName != "" {
		fmt.Fprintf(sb, "NAME: %s %s\n", profile.FirstName, profile.LastName)
	}
	if profile.Age != "" {
		fmt.Fprintf(sb, "AGE: %s years old\n", profile.Age)
	}
	if profile.Birthday != "" {
		fmt.Fprintf(sb, "BIRTHDAY: %s\n", profile.Birthday)
	}
	if profile.City != "" || profile.State != "" {
		parts := make([]string, 0, 2)
		for _, part := range []string{profile.City, profile.State} {
			if part != "" {
				parts = append(parts, part)
			}
		}
		fmt.Fprintf(sb, "LOCATION: %s\n", strings.Join(parts, ", "))
	}
	if profile.Occupation != "" {
		fmt.Fprintf(sb, "OCCUPATION: %s\n", profile.Occupation)
	}
	if profile.Interests != "" {
		fmt.Fprintf(sb, "INTERESTS & HOBBIES: %s\n", profile.Interests)
	}
	sb.WriteString("\n")

	writeNumberedSection(sb, "CORE VALUES", profile.Values)
	writeNumberedSection(sb, "WHAT THEY'RE LOOKING FOR", profile.LookingFor)
	writeNumberedSection(sb, "BOUNDARIES", profile.Boundaries)
	writeNumberedSection(sb, "DEAL BREAKERS", profile.DealBreakers)

	sb.WriteString("=== END USER PROFILE ===\n\n")
}

// writeNumberedSection renders one of the profile list sections as a
// numbered list. Empty sections are omitted entirely.
func writeNumberedSection(sb *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s (%d items):\n", heading, len(items))
	for i, item := range items {
		fmt.Fprintf(sb, "%d. %s\n", i+1, item)
	}
	sb.WriteString("\n")
}

// writeProspect renders one prospect block with its timeline notes and date
// history.
func (b *ContextBuilder) writeProspect(sb *strings.Builder, p *models.Prospect, notes []*models.Note, allDates []*models.DateRecord) {
	fmt.Fprintf(sb, "**%s**\n", p.Name)
	if p.Age != "" {
		fmt.Fprintf(sb, "- Age: %s\n", p.Age)
	}
	if p.Occupation != "" {
		fmt.Fprintf(sb, "- Occupation: %s\n", p.Occupation)
	}
	if p.WhereWeMet != "" {
		fmt.Fprintf(sb, "- Where we met: %s\n", p.WhereWeMet)
	}
	if p.Interests != "" {
		fmt.Fprintf(sb, "- Interests: %s\n", p.Interests)
	}
	if p.Notes != "" {
		fmt.Fprintf(sb, "- General notes: %s\n", p.Notes)
	}

	if len(notes) > 0 {
		sb.WriteString("- Timeline notes:\n")
		sorted := make([]*models.Note, len(notes))
		copy(sorted, notes)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		})
		if len(sorted) > maxNotesPerProspect {
			sorted = sorted[:maxNotesPerProspect]
		}
		for _, note := range sorted {
			fmt.Fprintf(sb, "  * %s: %s\n", note.CreatedAt.Format("1/2/2006"), note.Content)
		}
	}

	prospectDates := filterDates(allDates, p.Name)
	if len(prospectDates) > 0 {
		sb.WriteString("- Date History:\n")
		sort.SliceStable(prospectDates, func(i, j int) bool {
			return prospectDates[i].DateTime.After(prospectDates[j].DateTime)
		})
		if len(prospectDates) > maxDatesPerProspect {
			prospectDates = prospectDates[:maxDatesPerProspect]
		}
		for _, d := range prospectDates {
			fmt.Fprintf(sb, "  * %s at %s", d.DateTime.Format("1/2/2006"), d.DateTime.Format("3:04 PM"))
			if d.Location != "" {
				fmt.Fprintf(sb, " (%s)", d.Location)
			}
			sb.WriteString("\n")
			if d.PreDateNotes != "" {
				fmt.Fprintf(sb, "    Pre-date thoughts: %s\n", d.PreDateNotes)
			}
			if d.PostDateNotes != "" {
				fmt.Fprintf(sb, "    Post-date reflection: %s\n", d.PostDateNotes)
			}
		}
	}
	sb.WriteString("\n")
}

// filterDates returns the date records whose prospect name equals the given
// name, ignoring case. Date records reference prospects by name only.
func filterDates(all []*models.DateRecord, name string) []*models.DateRecord {
	var out []*models.DateRecord
	for _, d := range all {
		if strings.EqualFold(d.ProspectName, name) {
			out = append(out, d)
		}
	}
	return out
}

func countDates(all []*models.DateRecord, name string) int {
	n := 0
	for _, d := range all {
		if strings.EqualFold(d.ProspectName, name) {
			n++
		}
	}
	return n
}
