package domain

import "time"

// MaterialType groups learning materials.
type MaterialType string

const (
	MaterialTypeGrammar    MaterialType = "grammar"
	MaterialTypeVocabulary MaterialType = "vocabulary"
	MaterialTypeOther      MaterialType = "other"
)

// MaterialKind refines how a material is consumed.
type MaterialKind string

const (
	MaterialKindLesson   MaterialKind = "lesson"
	MaterialKindExercise MaterialKind = "exercise"
	MaterialKindQuiz     MaterialKind = "quiz"
)

// MaterialSection is one heading/content block of a material.
type MaterialSection struct {
	Heading  string   `json:"heading"`
	Content  string   `json:"content"`
	Examples []string `json:"examples,omitempty"`
}

// Material is a published piece of learning content, addressed by (type, slug).
type Material struct {
	ID          string
	Title       string
	Type        MaterialType
	Slug        string
	Kind        *MaterialKind
	Order       *int
	Sections    []MaterialSection
	Tags        []string
	IsPublished bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidMaterialType reports whether t belongs to the closed type set.
func ValidMaterialType(t MaterialType) bool {
	switch t {
	case MaterialTypeGrammar, MaterialTypeVocabulary, MaterialTypeOther:
		return true
	}
	return false
}
