package types

import (
	"fmt"
	"strings"

	"golang.org/x/text/width"
)

// Source identifies which regulator's recall data is searched.
type Source string

// Supported sources.
const (
	SourcePMDA Source = "PMDA"
	SourceFDA  Source = "FDA"
)

// Valid reports whether s is one of the supported sources.
func (s Source) Valid() bool {
	return s == SourcePMDA || s == SourceFDA
}

// SearchCriteria is what a user submits to start a session.
// All four fields are required.
type SearchCriteria struct {
	Email   string `json:"email"`
	Keyword string `json:"keyword"`
	Source  Source `json:"source"`
	Period  string `json:"period"` // four-digit year, e.g. "2024"
}

// Normalize returns a copy with surrounding whitespace trimmed and
// full-width characters folded to their narrow forms (so "２０２４" becomes
// "2024"). The keyword keeps its width; only surrounding spaces are removed.
func (c SearchCriteria) Normalize() SearchCriteria {
	return SearchCriteria{
		Email:   width.Fold.String(strings.TrimSpace(c.Email)),
		Keyword: strings.TrimSpace(c.Keyword),
		Source:  Source(strings.ToUpper(width.Fold.String(strings.TrimSpace(string(c.Source))))),
		Period:  width.Fold.String(strings.TrimSpace(c.Period)),
	}
}

// Validate checks that every field is present and well-formed.
// It returns a *ValidationError listing every problem, or nil.
func (c SearchCriteria) Validate() error {
	verr := &ValidationError{}

	if c.Email == "" {
		verr.Missing = append(verr.Missing, "email")
	}
	if c.Keyword == "" {
		verr.Missing = append(verr.Missing, "keyword")
	}
	if c.Source == "" {
		verr.Missing = append(verr.Missing, "source")
	} else if !c.Source.Valid() {
		verr.Invalid = append(verr.Invalid, fmt.Sprintf("source %q (want PMDA or FDA)", c.Source))
	}
	if c.Period == "" {
		verr.Missing = append(verr.Missing, "period")
	} else if !isYear(c.Period) {
		verr.Invalid = append(verr.Invalid, fmt.Sprintf("period %q (want a four-digit year)", c.Period))
	}

	if len(verr.Missing) == 0 && len(verr.Invalid) == 0 {
		return nil
	}
	return verr
}

func isYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ValidationError reports criteria that cannot be submitted.
// It is the only error kind surfaced to the user as a blocking notice.
type ValidationError struct {
	Missing []string
	Invalid []string
}

// ValidationNotice is the fixed user-facing notice for incomplete criteria.
const ValidationNotice = "⚠️ 入力に不備があります。すべての項目を入力してください。"

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid "+strings.Join(e.Invalid, ", "))
	}
	return "invalid search criteria: " + strings.Join(parts, "; ")
}
