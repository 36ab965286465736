package service

import (
	"regexp"
	"strings"

	"LoveAI/backend/go/internal/models"
)

// focusPatterns capture a candidate name from phrasings like "what should I
// do about Alex". Checked in order; the first pattern that yields a known
// prospect wins.
var focusPatterns = []*regexp.Regexp{
	regexp.MustCompile(`with\s+(\w+)`),
	regexp.MustCompile(`about\s+(\w+)`),
	regexp.MustCompile(`regarding\s+(\w+)`),
	regexp.MustCompile(`for\s+(\w+)`),
}

// ExtractProspectName detects whether a chat message is about one specific
// prospect. It returns the matched prospect name lowercased, or "" when the
// message reads as a general question.
//
// Two passes: first a direct scan for any prospect name appearing verbatim in
// the message, then the focusPatterns with a fuzzy match that accepts partial
// names in either direction ("Sam" matches "Samantha" and vice versa).
func ExtractProspectName(message string, prospects []*models.Prospect) string {
	lowered := strings.ToLower(message)

	names := make([]string, len(prospects))
	for i, p := range prospects {
		names[i] = strings.ToLower(p.Name)
	}

	for _, name := range names {
		if name != "" && strings.Contains(lowered, name) {
			return name
		}
	}

	for _, pattern := range focusPatterns {
		match := pattern.FindStringSubmatch(lowered)
		if match == nil {
			continue
		}
		candidate := match[1]
		for _, name := range names {
			if name == "" || candidate == "" {
				continue
			}
			if strings.Contains(name, candidate) || strings.Contains(candidate, name) {
				return name
			}
		}
	}

	return ""
}
