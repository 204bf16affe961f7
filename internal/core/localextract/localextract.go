// Package localextract is the deterministic fallback extractor used when the
// language-model service is unconfigured or fails. It runs a fixed set of
// pattern rules over the text and leaves unmatched fields empty
package localextract

import (
	"regexp"
	"strings"

	"smartjotter/internal/core/record"
)

// MockConfidence is the fixed score attached to locally extracted records
const MockConfidence = 0.7

// knownMakes is the fixed list of vehicle makes the rules recognize
// order matters for multi-word makes (Land Rover before any single token)
var knownMakes = []string{
	"Land Rover", "Alfa Romeo",
	"Ford", "Vauxhall", "Volkswagen", "Toyota", "Honda", "Nissan",
	"Peugeot", "Renault", "Citroen", "Skoda", "Seat", "Kia", "Hyundai",
	"Mazda", "Volvo", "Fiat", "Mini", "Jaguar", "Audi", "Mercedes",
	"BMW", "VW", "Suzuki", "Mitsubishi", "Lexus", "Tesla", "Dacia",
}

// issueTriggers flag free text that describes a fault
var issueTriggers = []string{"warning", "light", "problem", "noise", "leak", "fault", "mot", "service"}

var (
	// two capitalized words, the usual shape of a jotted customer name
	nameRe = regexp.MustCompile(`\b[A-Z][a-z]+ [A-Z][a-z]+\b`)

	// UK mobile (07xxx or +44 7xxx) and landline shapes, spaces optional
	phoneRe = regexp.MustCompile(`(?:\+44\s?7\d{3}|07\d{3})\s?\d{6}|(?:\+44\s?|\(?0)\d{2,4}\)?\s?\d{3}\s?\d{3,4}`)

	// current-style UK registration, with or without the separating space
	plateRe = regexp.MustCompile(`\b[A-Z]{2}\d{2}\s?[A-Z]{3}\b`)

	// a 19xx/20xx token on its own word boundary
	yearRe = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)

	// the token following a make, letters or digits (Focus, Golf, 308)
	modelRe = regexp.MustCompile(`^\s+([A-Za-z0-9][A-Za-z0-9-]*)`)
)

// Extract runs the pattern rules over text and returns a mock-flagged record
// identical input always yields identical output
func Extract(text string) record.BookingRecord {
	rec := record.BookingRecord{
		IsMock:            true,
		OverallConfidence: MockConfidence,
		Scored:            true,
	}

	rec.CustomerName = findName(text)
	rec.Phone = strings.TrimSpace(phoneRe.FindString(text))
	rec.Registration = normalizePlate(plateRe.FindString(text))
	rec.Vehicle = findVehicle(text)
	rec.Year = yearRe.FindString(text)
	rec.Issue = findIssue(text)

	fc := map[string]float64{}
	for _, f := range record.Fields {
		if strings.TrimSpace(rec.Get(f)) != "" {
			fc[f] = MockConfidence
		}
	}
	if len(fc) > 0 {
		rec.FieldConfidence = fc
	}
	return rec
}

// findName returns the first two-capitalized-word span that is not a vehicle make
func findName(text string) string {
	for _, loc := range nameRe.FindAllStringIndex(text, -1) {
		m := text[loc[0]:loc[1]]
		first, _, _ := strings.Cut(m, " ")
		if isKnownMake(first) || isKnownMake(m) {
			continue
		}
		return m
	}
	return ""
}

// findVehicle returns "<Make> <model>" for the first known make in the text
// a make with no following model token is still reported on its own
func findVehicle(text string) string {
	bestIdx := -1
	bestMake := ""
	for _, mk := range knownMakes {
		idx := indexWord(text, mk)
		if idx < 0 {
			continue
		}
		if bestIdx == -1 || idx < bestIdx {
			bestIdx = idx
			bestMake = mk
		}
	}
	if bestIdx < 0 {
		return ""
	}
	rest := text[bestIdx+len(bestMake):]
	if m := modelRe.FindStringSubmatch(rest); m != nil && !yearRe.MatchString(m[1]) {
		return bestMake + " " + m[1]
	}
	return bestMake
}

// findIssue returns the text after the last comma when a trigger word appears
// with no comma the whole text is taken as the issue
func findIssue(text string) string {
	lower := strings.ToLower(text)
	triggered := false
	for _, w := range issueTriggers {
		if strings.Contains(lower, w) {
			triggered = true
			break
		}
	}
	if !triggered {
		return ""
	}
	if i := strings.LastIndex(text, ","); i >= 0 {
		return strings.TrimSpace(text[i+1:])
	}
	return strings.TrimSpace(text)
}

// normalizePlate rewrites a matched registration to "AA00 AAA" spacing
func normalizePlate(plate string) string {
	p := strings.ReplaceAll(plate, " ", "")
	if len(p) != 7 {
		return strings.TrimSpace(plate)
	}
	return p[:4] + " " + p[4:]
}

// isKnownMake reports whether s equals a known make, case sensitive on purpose
func isKnownMake(s string) bool {
	for _, mk := range knownMakes {
		if s == mk {
			return true
		}
	}
	return false
}

// indexWord finds needle in haystack on word boundaries, or -1
func indexWord(haystack, needle string) int {
	from := 0
	for {
		i := strings.Index(haystack[from:], needle)
		if i < 0 {
			return -1
		}
		idx := from + i
		before := idx == 0 || !isWordByte(haystack[idx-1])
		afterIdx := idx + len(needle)
		after := afterIdx >= len(haystack) || !isWordByte(haystack[afterIdx])
		if before && after {
			return idx
		}
		from = idx + 1
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
