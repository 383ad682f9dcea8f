package document

import (
	"strings"

	"github.com/jonathan/cv-studio/internal/types"
)

// ListName identifies one of the document's ordered list fields.
type ListName string

// Known list fields.
const (
	ListExperience ListName = "experience"
	ListEducation  ListName = "education"
	ListSkills     ListName = "skills"
	ListLanguages  ListName = "languages"
	ListInterests  ListName = "interests"
)

// Append is the index sentinel that inserts a new entry at the end of a list.
const Append = -1

// SetField replaces a top-level scalar field and returns the new document.
func SetField(doc *types.CVDocument, field, value string) (*types.CVDocument, error) {
	out := doc.Clone()
	switch field {
	case "name":
		out.Name = value
	case "title":
		out.Title = value
	case "email":
		out.Email = value
	case "phone":
		out.Phone = value
	case "photo":
		out.Photo = value
	case "summary":
		out.Summary = value
	default:
		return nil, &UnknownFieldError{Field: field}
	}
	return out, nil
}

// ExperiencePatch holds partial updates for an experience entry. Nil fields
// are left untouched on merge.
type ExperiencePatch struct {
	Company     *string `json:"company,omitempty"`
	Position    *string `json:"position,omitempty"`
	Period      *string `json:"period,omitempty"`
	Description *string `json:"description,omitempty"`
}

// EducationPatch holds partial updates for an education entry.
type EducationPatch struct {
	School      *string `json:"school,omitempty"`
	Degree      *string `json:"degree,omitempty"`
	Period      *string `json:"period,omitempty"`
	Description *string `json:"description,omitempty"`
}

// LanguagePatch holds partial updates for a language entry.
type LanguagePatch struct {
	Name  *string `json:"name,omitempty"`
	Level *string `json:"level,omitempty"`
}

// UpsertExperience inserts (index == Append) or merges fields into an
// experience entry and returns the new document.
func UpsertExperience(doc *types.CVDocument, index int, patch ExperiencePatch) (*types.CVDocument, error) {
	out := doc.Clone()
	entry, err := listSlot(out, ListExperience, index, func() { out.Experience = append(out.Experience, types.ExperienceEntry{}) }, len(out.Experience))
	if err != nil {
		return nil, err
	}
	e := &out.Experience[entry]
	if patch.Company != nil {
		e.Company = *patch.Company
	}
	if patch.Position != nil {
		e.Position = *patch.Position
	}
	if patch.Period != nil {
		e.Period = *patch.Period
	}
	if patch.Description != nil {
		e.Description = *patch.Description
	}
	return out, nil
}

// UpsertEducation inserts or merges fields into an education entry.
func UpsertEducation(doc *types.CVDocument, index int, patch EducationPatch) (*types.CVDocument, error) {
	out := doc.Clone()
	entry, err := listSlot(out, ListEducation, index, func() { out.Education = append(out.Education, types.EducationEntry{}) }, len(out.Education))
	if err != nil {
		return nil, err
	}
	e := &out.Education[entry]
	if patch.School != nil {
		e.School = *patch.School
	}
	if patch.Degree != nil {
		e.Degree = *patch.Degree
	}
	if patch.Period != nil {
		e.Period = *patch.Period
	}
	if patch.Description != nil {
		e.Description = *patch.Description
	}
	return out, nil
}

// UpsertLanguage inserts or merges fields into a language entry. New entries
// default to Intermediate; levels are normalized on write.
func UpsertLanguage(doc *types.CVDocument, index int, patch LanguagePatch) (*types.CVDocument, error) {
	out := doc.Clone()
	entry, err := listSlot(out, ListLanguages, index, func() {
		out.Languages = append(out.Languages, types.LanguageEntry{Level: types.LevelIntermediate})
	}, len(out.Languages))
	if err != nil {
		return nil, err
	}
	l := &out.Languages[entry]
	if patch.Name != nil {
		l.Name = *patch.Name
	}
	if patch.Level != nil {
		l.Level = types.NormalizeLevel(*patch.Level)
	}
	return out, nil
}

// UpsertSkill inserts or replaces a skill at the given index.
func UpsertSkill(doc *types.CVDocument, index int, value string) (*types.CVDocument, error) {
	out := doc.Clone()
	entry, err := listSlot(out, ListSkills, index, func() { out.Skills = append(out.Skills, "") }, len(out.Skills))
	if err != nil {
		return nil, err
	}
	out.Skills[entry] = value
	return out, nil
}

// UpsertInterest inserts or replaces an interest at the given index.
func UpsertInterest(doc *types.CVDocument, index int, value string) (*types.CVDocument, error) {
	out := doc.Clone()
	entry, err := listSlot(out, ListInterests, index, func() { out.Interests = append(out.Interests, "") }, len(out.Interests))
	if err != nil {
		return nil, err
	}
	out.Interests[entry] = value
	return out, nil
}

// listSlot resolves the target index for an upsert, growing the list by one
// when the Append sentinel is used.
func listSlot(_ *types.CVDocument, list ListName, index int, grow func(), length int) (int, error) {
	if index == Append {
		grow()
		return length, nil
	}
	if index < 0 || index >= length {
		return 0, &InvalidIndexError{List: list, Index: index, Length: length}
	}
	return index, nil
}

// RemoveListItem returns a new document with the entry at index removed.
func RemoveListItem(doc *types.CVDocument, list ListName, index int) (*types.CVDocument, error) {
	out := doc.Clone()
	switch list {
	case ListExperience:
		if index < 0 || index >= len(out.Experience) {
			return nil, &InvalidIndexError{List: list, Index: index, Length: len(out.Experience)}
		}
		out.Experience = append(out.Experience[:index], out.Experience[index+1:]...)
	case ListEducation:
		if index < 0 || index >= len(out.Education) {
			return nil, &InvalidIndexError{List: list, Index: index, Length: len(out.Education)}
		}
		out.Education = append(out.Education[:index], out.Education[index+1:]...)
	case ListSkills:
		if index < 0 || index >= len(out.Skills) {
			return nil, &InvalidIndexError{List: list, Index: index, Length: len(out.Skills)}
		}
		out.Skills = append(out.Skills[:index], out.Skills[index+1:]...)
	case ListLanguages:
		if index < 0 || index >= len(out.Languages) {
			return nil, &InvalidIndexError{List: list, Index: index, Length: len(out.Languages)}
		}
		out.Languages = append(out.Languages[:index], out.Languages[index+1:]...)
	case ListInterests:
		if index < 0 || index >= len(out.Interests) {
			return nil, &InvalidIndexError{List: list, Index: index, Length: len(out.Interests)}
		}
		out.Interests = append(out.Interests[:index], out.Interests[index+1:]...)
	default:
		return nil, &UnknownListError{List: list}
	}
	return out, nil
}

// SetSkillsFromText replaces the skills list from a comma-separated text
// field. Tokens are trimmed and empty tokens dropped.
func SetSkillsFromText(doc *types.CVDocument, text string) *types.CVDocument {
	out := doc.Clone()
	out.Skills = splitList(text)
	return out
}

// SetLanguagesFromText replaces the languages list from a comma-separated
// text field. Levels of languages already present are preserved by exact
// name match; new languages default to Intermediate.
func SetLanguagesFromText(doc *types.CVDocument, text string) *types.CVDocument {
	existing := make(map[string]string, len(doc.Languages))
	for _, l := range doc.Languages {
		existing[l.Name] = l.Level
	}

	out := doc.Clone()
	names := splitList(text)
	languages := make([]types.LanguageEntry, 0, len(names))
	for _, name := range names {
		level := types.LevelIntermediate
		if kept, ok := existing[name]; ok {
			level = kept
		}
		languages = append(languages, types.LanguageEntry{Name: name, Level: level})
	}
	out.Languages = languages
	return out
}

// splitList splits comma-separated input, trimming whitespace and dropping
// empty tokens.
func splitList(text string) []string {
	parts := strings.Split(text, ",")
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		token := strings.TrimSpace(part)
		if token == "" {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}
