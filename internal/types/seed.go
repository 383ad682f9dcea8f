package types

import "github.com/go-playground/validator/v10"

// BasicInfo holds the user-entered seed facts collected at intake. Seed
// fields are authoritative: generated content never overwrites them.
type BasicInfo struct {
	Name           string `json:"name" validate:"required,min=1"`
	Email          string `json:"email,omitempty" validate:"omitempty,email"`
	Phone          string `json:"phone,omitempty"`
	Title          string `json:"title" validate:"required,min=1"`
	ExperienceHint string `json:"experience,omitempty"`
	EducationHint  string `json:"education,omitempty"`
	Photo          string `json:"photo,omitempty"`
}

// Validate validates the BasicInfo using the validator.
func (b *BasicInfo) Validate() error {
	validate := validator.New()
	return validate.Struct(b)
}

// SeedDocument builds a document containing only the seed fields, with every
// content list empty. This is the safe fallback when generation fails.
func (b BasicInfo) SeedDocument() *CVDocument {
	doc := NewDocument()
	doc.Name = b.Name
	doc.Email = b.Email
	doc.Phone = b.Phone
	doc.Title = b.Title
	doc.Photo = b.Photo
	return doc
}
