package domain

import "strings"

// Scheme identifies one of the two leveling schemes a question can be tagged with.
type Scheme string

const (
	SchemeQuick3 Scheme = "quick3"
	SchemeCEFR6  Scheme = "cefr6"
)

// Quick3Band is a tier of the three-level quick scheme.
type Quick3Band string

const (
	Beginner     Quick3Band = "Beginner"
	Intermediate Quick3Band = "Intermediate"
	Advanced     Quick3Band = "Advanced"
)

// Quick3Bands lists the quick3 bands from lowest to highest.
var Quick3Bands = []Quick3Band{Beginner, Intermediate, Advanced}

// CEFRBand is a tier of the CEFR-aligned scheme. Only A1 through C1 are evaluated.
type CEFRBand string

const (
	A1 CEFRBand = "A1"
	A2 CEFRBand = "A2"
	B1 CEFRBand = "B1"
	B2 CEFRBand = "B2"
	C1 CEFRBand = "C1"
)

// CEFRBands lists the evaluated CEFR bands from lowest to highest.
var CEFRBands = []CEFRBand{A1, A2, B1, B2, C1}

// Mode selects which scheme drives sampling.
type Mode string

const (
	ModeQuick Mode = "quick"
	ModeCEFR  Mode = "cefr"
)

// ParseMode resolves a request mode. Empty input means quick.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(ModeQuick):
		return ModeQuick, true
	case string(ModeCEFR):
		return ModeCEFR, true
	default:
		return "", false
	}
}

// CleanLabel lowercases a raw band label and strips surrounding whitespace,
// inner spaces and hyphens, so "Pre-Intermediate" and "pre intermediate"
// compare equal.
func CleanLabel(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, "-", "")
}

// BandFilter selects questions whose label for Scheme, once cleaned, is one of Labels.
// Labels must already be in cleaned form.
type BandFilter struct {
	Scheme Scheme
	Labels []string
}

// Matches reports whether q belongs to the filtered band.
func (f BandFilter) Matches(q *Question) bool {
	if q == nil {
		return false
	}
	var raw string
	switch f.Scheme {
	case SchemeQuick3:
		raw = q.Quick3Label
	case SchemeCEFR6:
		raw = q.CEFRLabel
	default:
		return false
	}
	cleaned := CleanLabel(raw)
	if cleaned == "" {
		return false
	}
	for _, l := range f.Labels {
		if cleaned == l {
			return true
		}
	}
	return false
}
