package dictionary

import (
	"errors"
	"fmt"
	"strings"

	"github.com/slonskitech/slownik/src/api/slug"
	"github.com/slonskitech/slownik/src/api/types"
	"gorm.io/gorm"
)

const (
	// Notes lines used to carry structured data through the free-text
	// notes field; promotion parses them back out.
	altPrefix      = "Alternatywne tłumaczenia: "
	categoryPrefix = "Proponowana kategoria: "

	exampleSeparator = " | "
)

type SubmissionExample struct {
	SourceText     string `json:"sourceText"`
	TranslatedText string `json:"translatedText"`
}

type SubmissionInput struct {
	SourceWord      string
	SourceLang      string
	TargetWord      string // comma separated, first token is canonical
	TargetLang      string
	Pronunciation   string
	PartOfSpeech    string
	CategoryID      uint64
	NewCategoryName string // used when CategoryID is zero
	Examples        []SubmissionExample
	SubmitterName   string
	SubmitterEmail  string
	Notes           string
}

// Submit validates a public proposal and stores it PENDING. The stored
// row is the immutable record of what the user proposed, so markup is
// refused outright rather than stripped. Alternative translations
// beyond the first target token survive only as a tagged notes line,
// which Approve parses back out.
func (s *Store) Submit(in SubmissionInput) (*types.PublicSubmission, error) {
	sourceWord, err := s.cleanField("source word", in.SourceWord)
	if err != nil {
		return nil, err
	}
	if sourceWord == "" {
		return nil, fmt.Errorf("%w: source word is required", ErrValidation)
	}
	targetRaw, err := s.cleanField("target word", in.TargetWord)
	if err != nil {
		return nil, err
	}
	targets := splitList(targetRaw)
	var primary string
	var alternatives []string
	if len(targets) > 0 {
		primary = targets[0]
		alternatives = targets[1:]
	}
	if primary == "" {
		return nil, fmt.Errorf("%w: target word is required", ErrValidation)
	}

	categoryID := in.CategoryID
	newCategory, err := s.cleanField("category name", in.NewCategoryName)
	if err != nil {
		return nil, err
	}
	if categoryID == 0 {
		if newCategory == "" {
			return nil, fmt.Errorf("%w: category is required", ErrValidation)
		}
		cat, err := s.getOrCreateCategory(newCategory)
		if err != nil {
			return nil, err
		}
		categoryID = cat.ID
	} else {
		var cat types.Category
		if err := s.db.First(&cat, "id = ?", categoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: category %d", ErrNotFound, categoryID)
			}
			return nil, err
		}
	}

	encoded := make([]string, 0, len(in.Examples))
	for i, ex := range in.Examples {
		src, err := s.cleanField(fmt.Sprintf("example %d source", i+1), ex.SourceText)
		if err != nil {
			return nil, err
		}
		dst, err := s.cleanField(fmt.Sprintf("example %d translation", i+1), ex.TranslatedText)
		if err != nil {
			return nil, err
		}
		if src == "" || dst == "" {
			continue
		}
		encoded = append(encoded, src+exampleSeparator+dst)
	}
	if len(encoded) == 0 {
		return nil, fmt.Errorf("%w: at least one complete example sentence is required", ErrValidation)
	}

	// SQL LOWER() folds ASCII only, so Polish case pairs (Żur / żur)
	// are compared in Go.
	var pendings []types.PublicSubmission
	if err := s.db.Select("source_word", "target_word").
		Where("status = ?", types.SubmissionPending).
		Find(&pendings).Error; err != nil {
		return nil, err
	}
	for _, p := range pendings {
		if strings.EqualFold(p.SourceWord, sourceWord) && strings.EqualFold(p.TargetWord, primary) {
			return nil, fmt.Errorf("%w: a pending submission for this word already exists", ErrConflict)
		}
	}

	var pronunciation, partOfSpeech, submitterName, submitterEmail, userNotes string
	for _, f := range []struct {
		name string
		raw  string
		dst  *string
	}{
		{"pronunciation", in.Pronunciation, &pronunciation},
		{"part of speech", in.PartOfSpeech, &partOfSpeech},
		{"submitter name", in.SubmitterName, &submitterName},
		{"submitter email", in.SubmitterEmail, &submitterEmail},
		{"notes", in.Notes, &userNotes},
	} {
		v, err := s.cleanField(f.name, f.raw)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}

	var noteLines []string
	if userNotes != "" {
		noteLines = append(noteLines, userNotes)
	}
	if newCategory != "" {
		noteLines = append(noteLines, categoryPrefix+newCategory)
	}
	if len(alternatives) > 0 {
		noteLines = append(noteLines, altPrefix+strings.Join(alternatives, ", "))
	}

	sub := types.PublicSubmission{
		SourceWord:       sourceWord,
		SourceLang:       normalizeLang(in.SourceLang, types.LangSilesian),
		TargetWord:       primary,
		TargetLang:       normalizeLang(in.TargetLang, types.LangPolish),
		Pronunciation:    pronunciation,
		PartOfSpeech:     partOfSpeech,
		CategoryID:       categoryID,
		ExampleSentences: toJSONList(encoded),
		SubmitterName:    submitterName,
		SubmitterEmail:   submitterEmail,
		Notes:            strings.Join(noteLines, "\n"),
		Status:           types.SubmissionPending,
		CreatedAt:        s.now(),
	}
	if err := s.db.Create(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// ListSubmissions returns newest-first submissions with their category
// summary preloaded.
func (s *Store) ListSubmissions(status string, limit int) ([]types.PublicSubmission, error) {
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}
	q := s.db.Preload("Category").Order("created_at DESC").Limit(limit)
	if status != "" {
		q = q.Where("status = ?", strings.ToUpper(status))
	}
	var subs []types.PublicSubmission
	if err := q.Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (s *Store) getOrCreateCategory(name string) (*types.Category, error) {
	derived := slug.Make(name)
	if derived == "" {
		return nil, fmt.Errorf("%w: category name %q yields an empty slug", ErrValidation, name)
	}
	var cat types.Category
	err := s.db.First(&cat, "slug = ?", derived).Error
	if err == nil {
		return &cat, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	cat = types.Category{
		Name: name,
		Slug: derived,
		Type: types.CategoryTraditional,
	}
	if err := s.db.Create(&cat).Error; err != nil {
		// Concurrent intake may have created it; the unique constraint
		// on slug is the backstop, so re-read instead of failing.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if rerr := s.db.First(&cat, "slug = ?", derived).Error; rerr == nil {
				return &cat, nil
			}
		}
		return nil, err
	}
	return &cat, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func normalizeLang(lang, def string) string {
	switch strings.ToUpper(strings.TrimSpace(lang)) {
	case types.LangSilesian:
		return types.LangSilesian
	case types.LangPolish:
		return types.LangPolish
	default:
		return def
	}
}
