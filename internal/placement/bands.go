package placement

import (
	"strings"

	"english-placement/internal/domain"
)

// quick3Prefixes maps the leading letters of a quick3 label to its band.
var quick3Prefixes = []struct {
	prefix string
	band   domain.Quick3Band
}{
	{"beg", domain.Beginner},
	{"int", domain.Intermediate},
	{"adv", domain.Advanced},
}

// cefrLabels maps every accepted cleaned CEFR label to its band.
var cefrLabels = map[string]domain.CEFRBand{
	"a1":                domain.A1,
	"elementary":        domain.A1,
	"a2":                domain.A2,
	"preintermediate":   domain.A2,
	"preint":            domain.A2,
	"b1":                domain.B1,
	"intermediate":      domain.B1,
	"b2":                domain.B2,
	"upperintermediate": domain.B2,
	"upperint":          domain.B2,
	"c1":                domain.C1,
	"advanced":          domain.C1,
}

// quick3SampleLabels are the cleaned labels that select a band when sampling in quick mode.
var quick3SampleLabels = map[domain.Quick3Band][]string{
	domain.Beginner:     {"beginner"},
	domain.Intermediate: {"intermediate"},
	domain.Advanced:     {"advanced"},
}

// cefrSampleLabels are the cleaned synonyms that select a band when sampling in cefr mode.
// Narrower than cefrLabels: abbreviations such as "preint" are tallied but never sampled.
var cefrSampleLabels = map[domain.CEFRBand][]string{
	domain.A1: {"a1", "elementary"},
	domain.A2: {"a2", "preintermediate"},
	domain.B1: {"b1", "intermediate"},
	domain.B2: {"b2", "upperintermediate"},
	domain.C1: {"c1", "advanced"},
}

// NormalizeQuick3 resolves a raw quick3 label. ok is false when the label is not recognized.
func NormalizeQuick3(raw string) (band domain.Quick3Band, ok bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", false
	}
	for _, p := range quick3Prefixes {
		if strings.HasPrefix(s, p.prefix) {
			return p.band, true
		}
	}
	return "", false
}

// NormalizeCEFR resolves a raw CEFR label. ok is false when the label is not recognized.
func NormalizeCEFR(raw string) (band domain.CEFRBand, ok bool) {
	band, ok = cefrLabels[domain.CleanLabel(raw)]
	return band, ok
}

// bandQuery is one stratum of a sampling request.
type bandQuery struct {
	band   string
	filter domain.BandFilter
}

func bandQueries(mode domain.Mode) []bandQuery {
	if mode == domain.ModeCEFR {
		out := make([]bandQuery, 0, len(domain.CEFRBands))
		for _, b := range domain.CEFRBands {
			out = append(out, bandQuery{
				band:   string(b),
				filter: domain.BandFilter{Scheme: domain.SchemeCEFR6, Labels: cefrSampleLabels[b]},
			})
		}
		return out
	}
	out := make([]bandQuery, 0, len(domain.Quick3Bands))
	for _, b := range domain.Quick3Bands {
		out = append(out, bandQuery{
			band:   string(b),
			filter: domain.BandFilter{Scheme: domain.SchemeQuick3, Labels: quick3SampleLabels[b]},
		})
	}
	return out
}

// Quota returns how many items are drawn per band for mode. A positive total
// overrides the default and is split evenly, with at least one item per band.
func Quota(mode domain.Mode, total int) int {
	bands, perBand := len(domain.Quick3Bands), 4
	if mode == domain.ModeCEFR {
		bands, perBand = len(domain.CEFRBands), 6
	}
	if total <= 0 {
		return perBand
	}
	return max(1, total/bands)
}
