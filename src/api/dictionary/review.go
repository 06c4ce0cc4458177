package dictionary

import (
	"errors"
	"fmt"
	"strings"

	"github.com/slonskitech/slownik/src/api/slug"
	"github.com/slonskitech/slownik/src/api/types"
	"gorm.io/gorm"
)

const slugInsertRetries = 3

// Approve promotes a PENDING submission into a new APPROVED dictionary
// entry in a single transaction. The submission itself stays behind as
// the immutable record of the original proposal. A submission that is
// no longer PENDING yields ErrConflict and nothing is mutated.
func (s *Store) Approve(id uint64, reviewer, reviewNotes string) (*types.DictionaryEntry, error) {
	var entry *types.DictionaryEntry
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var sub types.PublicSubmission
		if err := tx.First(&sub, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: submission %d", ErrNotFound, id)
			}
			return err
		}
		if sub.Status != types.SubmissionPending {
			return fmt.Errorf("%w: submission %d already reviewed", ErrConflict, id)
		}

		sentences := parseExamples(fromJSONList(sub.ExampleSentences))
		alternatives := parseAlternatives(sub.Notes)

		submittedBy := sub.SubmitterEmail
		if submittedBy == "" {
			submittedBy = sub.SubmitterName
		}

		now := s.now()
		created, err := createWithUniqueSlug(tx, sub.SourceWord, func(resolved string) *types.DictionaryEntry {
			return &types.DictionaryEntry{
				SourceWord:              sub.SourceWord,
				SourceLang:              sub.SourceLang,
				TargetWord:              sub.TargetWord,
				TargetLang:              sub.TargetLang,
				Slug:                    &resolved,
				Pronunciation:           sub.Pronunciation,
				PartOfSpeech:            sub.PartOfSpeech,
				CategoryID:              sub.CategoryID,
				Status:                  types.EntryApproved,
				AlternativeTranslations: toJSONList(alternatives),
				ApprovedAt:              &now,
				ApprovedBy:              reviewer,
				SubmittedBy:             submittedBy,
				ExampleSentences:        sentences,
			}
		})
		if err != nil {
			return err
		}
		entry = created

		res := tx.Model(&types.PublicSubmission{}).
			Where("id = ? AND status = ?", id, types.SubmissionPending).
			Updates(map[string]any{
				"status":       types.SubmissionApproved,
				"reviewed_at":  now,
				"reviewed_by":  reviewer,
				"review_notes": s.clean(reviewNotes),
			})
		if res.Error != nil {
			return res.Error
		}
		// Conditional update is the double-review guard; a concurrent
		// reviewer winning the race leaves zero rows to touch.
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: submission %d already reviewed", ErrConflict, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Reject marks a PENDING submission REJECTED. No entry is created and
// no transaction is needed for the single-row mutation.
func (s *Store) Reject(id uint64, reviewer, reviewNotes string) error {
	var sub types.PublicSubmission
	if err := s.db.First(&sub, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: submission %d", ErrNotFound, id)
		}
		return err
	}
	res := s.db.Model(&types.PublicSubmission{}).
		Where("id = ? AND status = ?", id, types.SubmissionPending).
		Updates(map[string]any{
			"status":       types.SubmissionRejected,
			"reviewed_at":  s.now(),
			"reviewed_by":  reviewer,
			"review_notes": s.clean(reviewNotes),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: submission %d already reviewed", ErrConflict, id)
	}
	return nil
}

// createWithUniqueSlug resolves a slug for base and inserts the entry
// built around it. The existence probe is optimistic: a write-time
// unique violation is retried with the next candidate.
func createWithUniqueSlug(tx *gorm.DB, base string, build func(resolved string) *types.DictionaryEntry) (*types.DictionaryEntry, error) {
	for attempt := 0; attempt < slugInsertRetries; attempt++ {
		resolved, err := slug.Resolve(base, func(candidate string) (bool, error) {
			var n int64
			if err := tx.Model(&types.DictionaryEntry{}).Where("slug = ?", candidate).Count(&n).Error; err != nil {
				return false, err
			}
			return n > 0, nil
		})
		if err != nil {
			return nil, err
		}
		entry := build(resolved)
		err = tx.Create(entry).Error
		if err == nil {
			return entry, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: could not allocate a unique slug for %q", ErrConflict, base)
}

// parseExamples splits stored "source | translation" strings on the
// first separator and numbers them from 1.
func parseExamples(encoded []string) []types.ExampleSentence {
	sentences := make([]types.ExampleSentence, 0, len(encoded))
	for _, raw := range encoded {
		src, dst, found := strings.Cut(raw, exampleSeparator)
		if !found {
			src = raw
		}
		sentences = append(sentences, types.ExampleSentence{
			SourceText:     strings.TrimSpace(src),
			TranslatedText: strings.TrimSpace(dst),
			Order:          len(sentences) + 1,
		})
	}
	return sentences
}

// parseAlternatives recovers the alternative-translation list that
// intake flattened into a tagged notes line.
func parseAlternatives(notes string) []string {
	for _, line := range strings.Split(notes, "\n") {
		if !strings.HasPrefix(line, altPrefix) {
			continue
		}
		return splitList(strings.TrimPrefix(line, altPrefix))
	}
	return nil
}
