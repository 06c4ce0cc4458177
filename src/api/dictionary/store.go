// Package dictionary implements the moderation data layer: submission
// intake, the review/promotion workflow, entry editing and the
// category / part-of-speech registries.
package dictionary

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Store struct {
	db       *gorm.DB
	sanitize *bluemonday.Policy
	now      func() time.Time
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:       db,
		sanitize: bluemonday.StrictPolicy(),
		now:      time.Now,
	}
}

// NewStoreAt pins the clock, for tests.
func NewStoreAt(db *gorm.DB, now func() time.Time) *Store {
	s := NewStore(db)
	s.now = now
	return s
}

// clean strips markup. The sanitizer entity-escapes its output, so the
// escaping is reversed to keep plain text ("żur & żymła") unchanged.
func (s *Store) clean(text string) string {
	return html.UnescapeString(s.sanitize.Sanitize(text))
}

// cleanField refuses input the sanitizer would have to rewrite. Stored
// submissions must stay exactly what the user proposed, so tag-like
// content is a validation error, not something to strip silently.
func (s *Store) cleanField(field, text string) (string, error) {
	cleaned := s.clean(text)
	if cleaned != text {
		return "", fmt.Errorf("%w: %s must not contain markup", ErrValidation, field)
	}
	return strings.TrimSpace(cleaned), nil
}

func toJSONList(items []string) datatypes.JSON {
	if len(items) == 0 {
		return nil
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

func fromJSONList(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	return items
}
