// Package extractor scans normalized vacancy text for known technologies and
// for experience and salary signals.
package extractor

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"

	"vacradar/internal/models"
	"vacradar/pkg/textutil"
)

// Result holds everything extracted from one normalized description.
type Result struct {
	Technologies []string
	Experience   *int
	Salary       *models.SalaryRange
}

// Extractor matches technology synonyms and numeric signal patterns.
type Extractor struct {
	index         map[string]string // lowercase surface form -> canonical name
	plainToken    *regexp.Regexp
	expPattern    *regexp.Regexp
	salaryPattern *regexp.Regexp
}

// New creates an extractor over the default synonym table merged with extra
// synonyms, typically supplied from configuration. Extra forms for an already
// known canonical name are appended; unknown canonical names are added.
func New(extra map[string][]string) *Extractor {
	index := make(map[string]string)

	add := func(canonical string, forms []string) {
		for _, form := range forms {
			form = strings.ToLower(textutil.CollapseWhitespace(form))
			if form == "" {
				continue
			}

			index[form] = canonical
		}
	}

	for canonical, forms := range DefaultSynonyms() {
		add(canonical, forms)
	}

	for canonical, forms := range extra {
		add(canonical, forms)
	}

	return &Extractor{
		index:      index,
		plainToken: regexp.MustCompile(`^[a-z0-9]+$`),
		// A number followed by a year unit word, e.g. "3 years", "3+ yrs",
		// "от 3 лет", "1 год", "от 3 до 6 лет" (the lower bound wins).
		expPattern: regexp.MustCompile(`(\d{1,2})\s*(?:\+|до\s*\d{1,2})?\s*(?:years?|yrs?|год(?:а|у)?|лет)`),
		// Numbers adjacent to a currency word, optionally a range and an
		// optional thousands unit: "100 000 - 150 000 руб.", "150 тыс. руб".
		salaryPattern: regexp.MustCompile(`(\d[\d\s.,]*\d|\d)(?:\s*(?:-|–|—|до|to)\s*(\d[\d\s.,]*\d|\d))?\s*(тыс\.?\s*)?(руб\S*|₽|rur|rub\S*|usd|\$|долл\S*|eur|€|евро)`),
	}
}

// Canonical resolves a surface form (e.g. an API key skill) to its canonical
// technology name. Unrecognized terms are rejected.
func (e *Extractor) Canonical(term string) (string, bool) {
	form := strings.ToLower(textutil.CollapseWhitespace(term))
	canonical, ok := e.index[form]

	return canonical, ok
}

// Extract runs all matchers over a normalized description.
func (e *Extractor) Extract(text string) Result {
	return Result{
		Technologies: e.MatchTechnologies(text),
		Experience:   e.ParseExperience(text),
		Salary:       e.ParseSalary(text),
	}
}

// MatchTechnologies returns the sorted set of canonical names whose synonyms
// appear as whole words in the text. Multiple synonyms of the same canonical
// name count once.
func (e *Extractor) MatchTechnologies(text string) []string {
	if text == "" {
		return nil
	}

	tokens := tokenSet(text)
	padded := " " + boundaryText(text) + " "

	seen := make(map[string]struct{})

	for form, canonical := range e.index {
		if e.plainToken.MatchString(form) {
			if _, ok := tokens[form]; !ok {
				continue
			}
		} else if !strings.Contains(padded, " "+form+" ") {
			continue
		}

		seen[canonical] = struct{}{}
	}

	if len(seen) == 0 {
		return nil
	}

	found := make([]string, 0, len(seen))
	for canonical := range seen {
		found = append(found, canonical)
	}

	sort.Strings(found)

	return found
}

// ParseExperience extracts the minimum years-of-experience value, or nil if
// no pattern matches. When several numbers qualify the smallest wins.
func (e *Extractor) ParseExperience(text string) *int {
	matches := e.expPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	var best *int

	for _, m := range matches {
		years, err := strconv.Atoi(m[1])
		if err != nil {
			// Malformed token, skip it.
			continue
		}

		if best == nil || years < *best {
			v := years
			best = &v
		}
	}

	return best
}

// ParseSalary extracts a salary range from the text, or nil when no currency
// pattern matches. The first match in document order wins.
func (e *Extractor) ParseSalary(text string) *models.SalaryRange {
	locs := e.salaryPattern.FindAllStringSubmatchIndex(text, -1)

	for _, loc := range locs {
		m := matchGroups(text, loc)

		multiplier := 1
		if m[3] != "" {
			multiplier = 1000
		}

		first, ok := parseAmount(m[1], multiplier)
		if !ok {
			continue
		}

		salary := &models.SalaryRange{Currency: canonicalCurrency(m[4])}

		if m[2] != "" {
			second, ok := parseAmount(m[2], multiplier)
			if !ok {
				continue
			}

			salary.From = first
			salary.To = second
		} else if upperBoundOnly(text, loc[0]) {
			salary.To = first
		} else {
			salary.From = first
		}

		return salary
	}

	return nil
}

// matchGroups resolves submatch index pairs into strings, "" for absent groups.
func matchGroups(text string, loc []int) []string {
	groups := make([]string, len(loc)/2)

	for i := range groups {
		start, end := loc[2*i], loc[2*i+1]
		if start >= 0 {
			groups[i] = text[start:end]
		}
	}

	return groups
}

// parseAmount normalizes thousands separators ("120 000", "120,000") down to
// a plain integer. Implausibly long numbers are treated as malformed.
func parseAmount(raw string, multiplier int) (int, bool) {
	var digits strings.Builder

	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	if digits.Len() == 0 || digits.Len() > 9 {
		return 0, false
	}

	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0, false
	}

	return n * multiplier, true
}

// upperBoundOnly reports whether the number at offset is preceded by an
// "up to" marker, which makes a single amount the upper bound.
func upperBoundOnly(text string, offset int) bool {
	prefix := text[:offset]

	return strings.HasSuffix(prefix, "до ") || strings.HasSuffix(prefix, "to ") || strings.HasSuffix(prefix, "up to ")
}

func canonicalCurrency(raw string) string {
	raw = strings.TrimRight(strings.ToLower(raw), ".")

	switch {
	case strings.HasPrefix(raw, "руб"), raw == "₽", raw == "rur", strings.HasPrefix(raw, "rub"):
		return "RUR"
	case raw == "usd", raw == "$", strings.HasPrefix(raw, "долл"):
		return "USD"
	case raw == "eur", raw == "€", raw == "евро":
		return "EUR"
	default:
		return strings.ToUpper(raw)
	}
}

// tokenSet segments the text into words and returns the set of tokens that
// carry at least one letter or digit.
func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})

	tokens := words.FromString(text)
	for tokens.Next() {
		token := tokens.Value()
		if !hasAlnum(token) {
			continue
		}

		set[token] = struct{}{}
	}

	return set
}

func hasAlnum(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}

	return false
}

// boundaryText rewrites the text so that phrase matching sees clean word
// boundaries: every rune outside letters, digits and the symbols that appear
// in technology names becomes a space.
func boundaryText(text string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}

		switch r {
		case '+', '#':
			return r
		}

		return ' '
	}, text)

	return textutil.CollapseWhitespace(mapped)
}
