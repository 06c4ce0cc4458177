package types

import (
	"time"

	"gorm.io/datatypes"
)

// Languages
const (
	LangSilesian = "SILESIAN"
	LangPolish   = "POLISH"
)

// Category types
const (
	CategoryTraditional = "TRADITIONAL"
	CategoryModern      = "MODERN"
)

// Entry statuses
const (
	EntryDraft    = "DRAFT"
	EntryApproved = "APPROVED"
	EntryRejected = "REJECTED"
)

// Submission statuses
const (
	SubmissionPending  = "PENDING"
	SubmissionApproved = "APPROVED"
	SubmissionRejected = "REJECTED"
)

// Thematic categories (mining, steelworks, etc)
type Category struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:128;uniqueIndex;not null" json:"name"`
	Slug        string    `gorm:"size:128;uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"size:512" json:"description,omitempty"`
	Type        string    `gorm:"size:16;not null;default:TRADITIONAL" json:"type"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Part-of-speech taxonomy. Entries reference Value as free text,
// not as a foreign key, so consistency is advisory only.
type PartOfSpeech struct {
	ID    uint64 `gorm:"primaryKey" json:"id"`
	Label string `gorm:"size:64;not null" json:"label"`
	Value string `gorm:"size:64;uniqueIndex;not null" json:"value"`
	Order int    `gorm:"column:sort_order;not null;default:0" json:"order"`
}

// Published dictionary entries
type DictionaryEntry struct {
	ID                      uint64         `gorm:"primaryKey" json:"id"`
	SourceWord              string         `gorm:"size:256;not null;index" json:"sourceWord"`
	SourceLang              string         `gorm:"size:16;not null;default:SILESIAN" json:"sourceLang"`
	TargetWord              string         `gorm:"size:256;not null" json:"targetWord"`
	TargetLang              string         `gorm:"size:16;not null;default:POLISH" json:"targetLang"`
	Slug                    *string        `gorm:"size:256;uniqueIndex" json:"slug,omitempty"`
	Pronunciation           string         `gorm:"size:256" json:"pronunciation,omitempty"`
	PartOfSpeech            string         `gorm:"size:64" json:"partOfSpeech,omitempty"`
	Notes                   string         `gorm:"type:text" json:"notes,omitempty"`
	CategoryID              uint64         `gorm:"index;not null" json:"categoryId"`
	Category                *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Status                  string         `gorm:"size:16;not null;default:DRAFT;index" json:"status"`
	AlternativeTranslations datatypes.JSON `json:"alternativeTranslations,omitempty"`
	ApprovedAt              *time.Time     `json:"approvedAt,omitempty"`
	ApprovedBy              string         `gorm:"size:128" json:"approvedBy,omitempty"`
	SubmittedBy             string         `gorm:"size:256" json:"submittedBy,omitempty"`
	CreatedAt               time.Time      `json:"createdAt"`
	UpdatedAt               time.Time      `gorm:"index" json:"updatedAt"`

	ExampleSentences []ExampleSentence `gorm:"foreignKey:EntryID;constraint:OnDelete:CASCADE" json:"exampleSentences,omitempty"`
}

// Example sentences owned by an entry. Order is contiguous from 1
// within an entry and reassigned on every full update.
type ExampleSentence struct {
	ID             uint64 `gorm:"primaryKey" json:"id"`
	EntryID        uint64 `gorm:"index;not null" json:"entryId"`
	SourceText     string `gorm:"size:1024;not null" json:"sourceText"`
	TranslatedText string `gorm:"size:1024;not null" json:"translatedText"`
	Context        string `gorm:"size:512" json:"context,omitempty"`
	Order          int    `gorm:"column:sort_order;not null" json:"order"`
}

// Public word proposals. Example sentences are stored as
// "source | translation" strings; a submission is reviewed at most once.
type PublicSubmission struct {
	ID               uint64         `gorm:"primaryKey" json:"id"`
	SourceWord       string         `gorm:"size:256;not null" json:"sourceWord"`
	SourceLang       string         `gorm:"size:16;not null;default:SILESIAN" json:"sourceLang"`
	TargetWord       string         `gorm:"size:256;not null" json:"targetWord"`
	TargetLang       string         `gorm:"size:16;not null;default:POLISH" json:"targetLang"`
	Pronunciation    string         `gorm:"size:256" json:"pronunciation,omitempty"`
	PartOfSpeech     string         `gorm:"size:64" json:"partOfSpeech,omitempty"`
	CategoryID       uint64         `gorm:"index;not null" json:"categoryId"`
	Category         *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	ExampleSentences datatypes.JSON `json:"exampleSentences,omitempty"`
	SubmitterName    string         `gorm:"size:128" json:"submitterName,omitempty"`
	SubmitterEmail   string         `gorm:"size:256" json:"submitterEmail,omitempty"`
	Notes            string         `gorm:"type:text" json:"notes,omitempty"`
	Status           string         `gorm:"size:16;not null;default:PENDING;index" json:"status"`
	ReviewedAt       *time.Time     `json:"reviewedAt,omitempty"`
	ReviewedBy       string         `gorm:"size:128" json:"reviewedBy,omitempty"`
	ReviewNotes      string         `gorm:"type:text" json:"reviewNotes,omitempty"`
	CreatedAt        time.Time      `json:"createdAt"`
}
