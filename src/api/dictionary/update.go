package dictionary

import (
	"errors"
	"fmt"
	"strings"

	"github.com/slonskitech/slownik/src/api/slug"
	"github.com/slonskitech/slownik/src/api/types"
	"gorm.io/gorm"
)

type SentenceUpdate struct {
	ID             uint64 `json:"id"`
	SourceText     string `json:"sourceText"`
	TranslatedText string `json:"translatedText"`
	Context        string `json:"context"`
}

type EntryUpdate struct {
	SourceWord              string           `json:"sourceWord"`
	SourceLang              string           `json:"sourceLang"`
	TargetWord              string           `json:"targetWord"`
	TargetLang              string           `json:"targetLang"`
	Slug                    string           `json:"slug"`
	Pronunciation           string           `json:"pronunciation"`
	PartOfSpeech            string           `json:"partOfSpeech"`
	Notes                   string           `json:"notes"`
	CategoryID              uint64           `json:"categoryId"`
	Status                  string           `json:"status"`
	AlternativeTranslations []string         `json:"alternativeTranslations"`
	ExampleSentences        []SentenceUpdate `json:"exampleSentences"`
}

// UpdateEntry replaces the entry's scalar fields and reconciles its
// example sentences: payload sentences with a known ID are updated in
// place, ID-less ones are created, and stored sentences missing from
// the payload are deleted. Order is reassigned contiguously from 1 in
// payload order.
func (s *Store) UpdateEntry(id uint64, upd EntryUpdate) (*types.DictionaryEntry, error) {
	sourceWord := strings.TrimSpace(upd.SourceWord)
	targetWord := strings.TrimSpace(upd.TargetWord)
	if sourceWord == "" || targetWord == "" {
		return nil, fmt.Errorf("%w: source and target words are required", ErrValidation)
	}
	status := strings.ToUpper(strings.TrimSpace(upd.Status))
	switch status {
	case types.EntryDraft, types.EntryApproved, types.EntryRejected:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, upd.Status)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var entry types.DictionaryEntry
		if err := tx.First(&entry, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: entry %d", ErrNotFound, id)
			}
			return err
		}

		if upd.CategoryID != 0 {
			var cat types.Category
			if err := tx.First(&cat, "id = ?", upd.CategoryID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: category %d", ErrNotFound, upd.CategoryID)
				}
				return err
			}
			entry.CategoryID = upd.CategoryID
		}

		base := upd.Slug
		if strings.TrimSpace(base) == "" {
			base = sourceWord
		}
		resolved, err := slug.Resolve(base, func(candidate string) (bool, error) {
			var n int64
			if err := tx.Model(&types.DictionaryEntry{}).
				Where("slug = ? AND id <> ?", candidate, id).Count(&n).Error; err != nil {
				return false, err
			}
			return n > 0, nil
		})
		if err != nil {
			return err
		}

		entry.SourceWord = sourceWord
		entry.SourceLang = normalizeLang(upd.SourceLang, entry.SourceLang)
		entry.TargetWord = targetWord
		entry.TargetLang = normalizeLang(upd.TargetLang, entry.TargetLang)
		entry.Slug = &resolved
		entry.Pronunciation = strings.TrimSpace(upd.Pronunciation)
		entry.PartOfSpeech = strings.TrimSpace(upd.PartOfSpeech)
		entry.Notes = strings.TrimSpace(s.clean(upd.Notes))
		entry.AlternativeTranslations = toJSONList(upd.AlternativeTranslations)

		// Approval timestamp tracks status transitions: set on first
		// entry into APPROVED, kept on re-approval, cleared on REJECTED.
		switch status {
		case types.EntryApproved:
			if entry.ApprovedAt == nil {
				now := s.now()
				entry.ApprovedAt = &now
			}
		case types.EntryRejected:
			entry.ApprovedAt = nil
			entry.ApprovedBy = ""
		}
		entry.Status = status

		if err := reconcileSentences(tx, id, upd.ExampleSentences); err != nil {
			return err
		}

		saveErr := tx.Save(&entry).Error
		if saveErr != nil {
			if errors.Is(saveErr, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: slug %q is already taken", ErrConflict, resolved)
			}
			return saveErr
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetEntryByID(id)
}

func reconcileSentences(tx *gorm.DB, entryID uint64, payload []SentenceUpdate) error {
	var existing []types.ExampleSentence
	if err := tx.Find(&existing, "entry_id = ?", entryID).Error; err != nil {
		return err
	}
	known := make(map[uint64]bool, len(existing))
	for _, sent := range existing {
		known[sent.ID] = true
	}

	kept := make([]uint64, 0, len(payload))
	for i, in := range payload {
		src := strings.TrimSpace(in.SourceText)
		dst := strings.TrimSpace(in.TranslatedText)
		if src == "" || dst == "" {
			return fmt.Errorf("%w: example sentence %d is incomplete", ErrValidation, i+1)
		}
		order := i + 1
		if in.ID != 0 && known[in.ID] {
			err := tx.Model(&types.ExampleSentence{}).Where("id = ?", in.ID).Updates(map[string]any{
				"source_text":     src,
				"translated_text": dst,
				"context":         strings.TrimSpace(in.Context),
				"sort_order":      order,
			}).Error
			if err != nil {
				return err
			}
			kept = append(kept, in.ID)
			continue
		}
		sent := types.ExampleSentence{
			EntryID:        entryID,
			SourceText:     src,
			TranslatedText: dst,
			Context:        strings.TrimSpace(in.Context),
			Order:          order,
		}
		if err := tx.Create(&sent).Error; err != nil {
			return err
		}
		kept = append(kept, sent.ID)
	}

	q := tx.Where("entry_id = ?", entryID)
	if len(kept) > 0 {
		q = q.Where("id NOT IN ?", kept)
	}
	return q.Delete(&types.ExampleSentence{}).Error
}
