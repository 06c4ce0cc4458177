package dictionary

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/slonskitech/slownik/src/api/slug"
	"github.com/slonskitech/slownik/src/api/types"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

type EntryFilter struct {
	Status     string
	Query      string
	CategoryID uint64
	SourceLang string
	Limit      int
	Offset     int
}

// ListEntries returns entries most-recently-updated first. Free-text
// search covers source word, target word and the denormalized
// alternative-translation list.
func (s *Store) ListEntries(f EntryFilter) ([]types.DictionaryEntry, int64, error) {
	q := s.db.Model(&types.DictionaryEntry{})
	if f.Status != "" {
		q = q.Where("status = ?", strings.ToUpper(f.Status))
	}
	if f.CategoryID != 0 {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.SourceLang != "" {
		q = q.Where("source_lang = ?", strings.ToUpper(f.SourceLang))
	}
	if needle := strings.TrimSpace(f.Query); needle != "" {
		like := "%" + strings.ToLower(needle) + "%"
		q = q.Where(
			"LOWER(source_word) LIKE ? OR LOWER(target_word) LIKE ? OR LOWER(alternative_translations) LIKE ?",
			like, like, like,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	var entries []types.DictionaryEntry
	err := q.Preload("Category").
		Preload("ExampleSentences", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Order("updated_at DESC").
		Limit(limit).Offset(f.Offset).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// GetEntryBySlug resolves an APPROVED entry by its stored slug, falling
// back to a scan that compares slugified source words. Older entries may
// lack a persisted slug, so the fallback is O(approved entries) per miss.
func (s *Store) GetEntryBySlug(requested string) (*types.DictionaryEntry, error) {
	var entry types.DictionaryEntry
	err := s.entryQuery().First(&entry, "slug = ? AND status = ?", requested, types.EntryApproved).Error
	if err == nil {
		return &entry, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var approved []types.DictionaryEntry
	if err := s.entryQuery().Find(&approved, "status = ?", types.EntryApproved).Error; err != nil {
		return nil, err
	}
	for i := range approved {
		if slug.Make(approved[i].SourceWord) == requested {
			return &approved[i], nil
		}
	}
	return nil, fmt.Errorf("%w: entry %q", ErrNotFound, requested)
}

func (s *Store) GetEntryByID(id uint64) (*types.DictionaryEntry, error) {
	var entry types.DictionaryEntry
	if err := s.entryQuery().First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: entry %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &entry, nil
}

// FeaturedEntries picks approved entries that carry notes, newest
// approvals first.
func (s *Store) FeaturedEntries(limit int) ([]types.DictionaryEntry, error) {
	if limit <= 0 || limit > maxPageSize {
		limit = 6
	}
	var entries []types.DictionaryEntry
	err := s.entryQuery().
		Where("status = ? AND notes <> ''", types.EntryApproved).
		Order("approved_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

func (s *Store) RecentEntries(limit int) ([]types.DictionaryEntry, error) {
	if limit <= 0 || limit > maxPageSize {
		limit = 10
	}
	var entries []types.DictionaryEntry
	err := s.entryQuery().
		Where("status = ?", types.EntryApproved).
		Order("approved_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

// LetterIndex lists the distinct initial letters of approved source
// words, uppercased and sorted.
func (s *Store) LetterIndex() ([]string, error) {
	var words []string
	if err := s.db.Model(&types.DictionaryEntry{}).
		Where("status = ?", types.EntryApproved).
		Pluck("source_word", &words).Error; err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	for _, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if size == 0 || r == utf8.RuneError {
			continue
		}
		seen[string(unicode.ToUpper(r))] = struct{}{}
	}
	letters := make([]string, 0, len(seen))
	for l := range seen {
		letters = append(letters, l)
	}
	sort.Strings(letters)
	return letters, nil
}

func (s *Store) entryQuery() *gorm.DB {
	return s.db.Preload("Category").
		Preload("ExampleSentences", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") })
}
