// Package types provides type definitions for structured data used throughout the cv-studio system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"strings"
)

// CVDocument is the canonical in-memory representation of a CV.
// List fields are never nil; absence is an empty slice.
type CVDocument struct {
	Name       string            `json:"name"`
	Title      string            `json:"title"`
	Email      string            `json:"email"`
	Phone      string            `json:"phone"`
	Photo      string            `json:"photo,omitempty"`
	Summary    string            `json:"summary"`
	Experience []ExperienceEntry `json:"experience"`
	Education  []EducationEntry  `json:"education"`
	Skills     []string          `json:"skills"`
	Languages  []LanguageEntry   `json:"languages"`
	Interests  []string          `json:"interests"`
}

// NewDocument returns an empty document with all list fields initialized.
func NewDocument() *CVDocument {
	return &CVDocument{
		Experience: []ExperienceEntry{},
		Education:  []EducationEntry{},
		Skills:     []string{},
		Languages:  []LanguageEntry{},
		Interests:  []string{},
	}
}

// Clone returns a deep copy of the document. Documents are treated as
// immutable values; every mutation clones first and returns the copy.
func (d *CVDocument) Clone() *CVDocument {
	c := *d
	c.Experience = append([]ExperienceEntry{}, d.Experience...)
	c.Education = append([]EducationEntry{}, d.Education...)
	c.Skills = append([]string{}, d.Skills...)
	c.Languages = append([]LanguageEntry{}, d.Languages...)
	c.Interests = append([]string{}, d.Interests...)
	return &c
}

// UnmarshalJSON decodes a document from any historical shape and guarantees
// the list-fields-never-nil invariant.
func (d *CVDocument) UnmarshalJSON(data []byte) error {
	type alias CVDocument
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*d = CVDocument(a)
	if d.Experience == nil {
		d.Experience = []ExperienceEntry{}
	}
	if d.Education == nil {
		d.Education = []EducationEntry{}
	}
	if d.Skills == nil {
		d.Skills = []string{}
	}
	if d.Languages == nil {
		d.Languages = []LanguageEntry{}
	}
	if d.Interests == nil {
		d.Interests = []string{}
	}
	return nil
}

// ExperienceEntry is a single work experience record. Position is the
// canonical role field; older records used "title" for the same concept and
// are migrated on decode.
type ExperienceEntry struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	Period      string `json:"period"`
	Description string `json:"description"`
}

// DisplayPosition resolves the role shown to the user. After ingest
// migration the canonical field is authoritative.
func (e ExperienceEntry) DisplayPosition() string {
	return e.Position
}

// UnmarshalJSON migrates legacy "title"-only records into Position.
func (e *ExperienceEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Company     string `json:"company"`
		Position    string `json:"position"`
		Title       string `json:"title"`
		Period      string `json:"period"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Company = raw.Company
	e.Position = raw.Position
	if e.Position == "" {
		e.Position = raw.Title
	}
	e.Period = raw.Period
	e.Description = raw.Description
	return nil
}

// MarshalJSON writes both the canonical key and the legacy alias with the
// same value. Templates and exports written against the old shape still read
// "title"; both readers must observe the same string.
func (e ExperienceEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Company     string `json:"company"`
		Position    string `json:"position"`
		Title       string `json:"title"`
		Period      string `json:"period"`
		Description string `json:"description"`
	}{e.Company, e.Position, e.Position, e.Period, e.Description})
}

// EducationEntry is a single education record. Period is canonical; older
// records used "year".
type EducationEntry struct {
	School      string `json:"school"`
	Degree      string `json:"degree"`
	Period      string `json:"period"`
	Description string `json:"description"`
}

// DisplayPeriod resolves the period shown to the user.
func (e EducationEntry) DisplayPeriod() string {
	return e.Period
}

// UnmarshalJSON migrates legacy "year"-only records into Period.
func (e *EducationEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		School      string `json:"school"`
		Degree      string `json:"degree"`
		Period      string `json:"period"`
		Year        string `json:"year"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.School = raw.School
	e.Degree = raw.Degree
	e.Period = raw.Period
	if e.Period == "" {
		e.Period = raw.Year
	}
	e.Description = raw.Description
	return nil
}

// MarshalJSON keeps the legacy "year" alias in sync with Period on the wire.
func (e EducationEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		School      string `json:"school"`
		Degree      string `json:"degree"`
		Period      string `json:"period"`
		Year        string `json:"year"`
		Description string `json:"description"`
	}{e.School, e.Degree, e.Period, e.Period, e.Description})
}

// Language proficiency levels.
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
	LevelNative       = "Native"
)

// NormalizeLevel maps the level spellings seen in stored records and AI
// output (English and French) onto the canonical constants. Unrecognized
// values are returned unchanged; empty maps to Intermediate.
func NormalizeLevel(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "":
		return LevelIntermediate
	case "beginner", "débutant", "debutant", "basic":
		return LevelBeginner
	case "intermediate", "intermédiaire", "intermediaire":
		return LevelIntermediate
	case "advanced", "avancé", "avance":
		return LevelAdvanced
	case "native", "natif", "fluent", "courant":
		return LevelNative
	default:
		return level
	}
}

// LanguageEntry is a spoken-language record. Name is canonical; older records
// used "language", and the oldest stored bare strings.
type LanguageEntry struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

// DisplayName resolves the language name shown to the user.
func (l LanguageEntry) DisplayName() string {
	return l.Name
}

// UnmarshalJSON accepts three historical shapes: a bare string (level
// defaults to Intermediate), an object keyed "language", and the canonical
// object keyed "name".
func (l *LanguageEntry) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		l.Name = plain
		l.Level = LevelIntermediate
		return nil
	}

	var raw struct {
		Name     string `json:"name"`
		Language string `json:"language"`
		Level    string `json:"level"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	l.Name = raw.Name
	if l.Name == "" {
		l.Name = raw.Language
	}
	l.Level = NormalizeLevel(raw.Level)
	return nil
}

// MarshalJSON keeps the legacy "language" alias in sync with Name.
func (l LanguageEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name     string `json:"name"`
		Language string `json:"language"`
		Level    string `json:"level"`
	}{l.Name, l.Name, l.Level})
}
