package dictionary

import (
	"errors"
	"testing"

	"github.com/slonskitech/slownik/src/api/types"
)

func TestApprovePromotesSubmission(t *testing.T) {
	store, db := newTestStore(t)
	cat := seedCategory(t, db)
	sub := seedSubmission(t, store, cat)

	entry, err := store.Approve(sub.ID, "admin-1", "dobre słowo")
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	if entry.Status != types.EntryApproved {
		t.Errorf("expected APPROVED entry, got %q", entry.Status)
	}
	if entry.Slug == nil || *entry.Slug != "fajront" {
		t.Errorf("expected slug fajront, got %v", entry.Slug)
	}
	if entry.ApprovedAt == nil || !entry.ApprovedAt.Equal(testClock) {
		t.Errorf("expected approvedAt %v, got %v", testClock, entry.ApprovedAt)
	}
	if entry.ApprovedBy != "admin-1" {
		t.Errorf("expected approvedBy admin-1, got %q", entry.ApprovedBy)
	}
	if entry.SubmittedBy != "hanys@example.com" {
		t.Errorf("expected submitter email, got %q", entry.SubmittedBy)
	}

	fetched, err := store.GetEntryByID(entry.ID)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(fetched.ExampleSentences) != 2 {
		t.Fatalf("expected 2 example sentences, got %d", len(fetched.ExampleSentences))
	}
	first := fetched.ExampleSentences[0]
	if first.SourceText != "Już fajront" || first.TranslatedText != "Już koniec pracy" || first.Order != 1 {
		t.Errorf("unexpected first sentence: %+v", first)
	}
	if fetched.ExampleSentences[1].Order != 2 {
		t.Errorf("expected contiguous order, got %d", fetched.ExampleSentences[1].Order)
	}
	alts := fromJSONList(fetched.AlternativeTranslations)
	if len(alts) != 2 || alts[0] != "fajrant" || alts[1] != "szychta skończona" {
		t.Errorf("alternatives not recovered from notes: %v", alts)
	}

	var reviewed types.PublicSubmission
	if err := db.First(&reviewed, "id = ?", sub.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reviewed.Status != types.SubmissionApproved {
		t.Errorf("expected submission APPROVED, got %q", reviewed.Status)
	}
	if reviewed.ReviewedAt == nil || reviewed.ReviewedBy != "admin-1" || reviewed.ReviewNotes != "dobre słowo" {
		t.Errorf("review metadata missing: %+v", reviewed)
	}
}

func TestApproveIsTerminal(t *testing.T) {
	store, db := newTestStore(t)
	cat := seedCategory(t, db)
	sub := seedSubmission(t, store, cat)

	if _, err := store.Approve(sub.ID, "admin-1", ""); err != nil {
		t.Fatalf("first approve failed: %v", err)
	}

	if _, err := store.Approve(sub.ID, "admin-2", ""); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on second approve, got %v", err)
	}
	if err := store.Reject(sub.ID, "admin-2", ""); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on reject after approve, got %v", err)
	}

	var entries int64
	db.Model(&types.DictionaryEntry{}).Count(&entries)
	if entries != 1 {
		t.Errorf("expected exactly one entry, got %d", entries)
	}
	var reviewed types.PublicSubmission
	db.First(&reviewed, "id = ?", sub.ID)
	if reviewed.ReviewedBy != "admin-1" {
		t.Errorf("review metadata was overwritten: %+v", reviewed)
	}
}

func TestRejectLeavesNoEntry(t *testing.T) {
	store, db := newTestStore(t)
	cat := seedCategory(t, db)
	sub := seedSubmission(t, store, cat)

	if err := store.Reject(sub.ID, "admin-1", "za mało przykładów"); err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	var reviewed types.PublicSubmission
	db.First(&reviewed, "id = ?", sub.ID)
	if reviewed.Status != types.SubmissionRejected {
		t.Errorf("expected REJECTED, got %q", reviewed.Status)
	}
	if reviewed.ReviewedAt == nil || reviewed.ReviewedBy != "admin-1" || reviewed.ReviewNotes != "za mało przykładów" {
		t.Errorf("review metadata missing: %+v", reviewed)
	}

	var entries int64
	db.Model(&types.DictionaryEntry{}).Count(&entries)
	if entries != 0 {
		t.Errorf("reject must not create entries, got %d", entries)
	}

	if _, err := store.Approve(sub.ID, "admin-2", ""); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on approve after reject, got %v", err)
	}
}

func TestReviewUnknownSubmission(t *testing.T) {
	store, _ := newTestStore(t)
	if _, err := store.Approve(12345, "admin-1", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.Reject(12345, "admin-1", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestApproveResolvesSlugCollision(t *testing.T) {
	store, db := newTestStore(t)
	cat := seedCategory(t, db)

	existing := "fajront"
	if err := db.Create(&types.DictionaryEntry{
		SourceWord: "Fajront",
		TargetWord: "koniec zmiany",
		CategoryID: cat.ID,
		Status:     types.EntryApproved,
		Slug:       &existing,
	}).Error; err != nil {
		t.Fatalf("failed to seed entry: %v", err)
	}

	sub := seedSubmission(t, store, cat)
	entry, err := store.Approve(sub.ID, "admin-1", "")
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if entry.Slug == nil || *entry.Slug != "fajront-2" {
		t.Errorf("expected suffixed slug fajront-2, got %v", entry.Slug)
	}
}

func TestCreateWithUniqueSlugRetriesOnWriteCollision(t *testing.T) {
	_, db := newTestStore(t)
	cat := seedCategory(t, db)

	taken := "gruba"
	if err := db.Create(&types.DictionaryEntry{
		SourceWord: "Gruba",
		TargetWord: "kopalnia",
		CategoryID: cat.ID,
		Status:     types.EntryApproved,
		Slug:       &taken,
	}).Error; err != nil {
		t.Fatalf("failed to seed entry: %v", err)
	}

	// The first attempt writes a slug the existence check never saw,
	// simulating a concurrent insert between check and write.
	calls := 0
	entry, err := createWithUniqueSlug(db, "Fajront", func(resolved string) *types.DictionaryEntry {
		calls++
		slugVal := resolved
		if calls == 1 {
			slugVal = taken
		}
		return &types.DictionaryEntry{
			SourceWord: "Fajront",
			TargetWord: "koniec pracy",
			CategoryID: cat.ID,
			Status:     types.EntryApproved,
			Slug:       &slugVal,
		}
	})
	if err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}
	if calls != 2 {
		t.Errorf("expected a second attempt after the collision, got %d", calls)
	}
	if entry.Slug == nil || *entry.Slug != "fajront" {
		t.Errorf("expected fajront after retry, got %v", entry.Slug)
	}
}

func TestCreateWithUniqueSlugGivesUpAfterRetries(t *testing.T) {
	_, db := newTestStore(t)
	cat := seedCategory(t, db)

	taken := "gruba"
	if err := db.Create(&types.DictionaryEntry{
		SourceWord: "Gruba",
		TargetWord: "kopalnia",
		CategoryID: cat.ID,
		Status:     types.EntryApproved,
		Slug:       &taken,
	}).Error; err != nil {
		t.Fatalf("failed to seed entry: %v", err)
	}

	calls := 0
	_, err := createWithUniqueSlug(db, "Fajront", func(string) *types.DictionaryEntry {
		calls++
		return &types.DictionaryEntry{
			SourceWord: "Fajront",
			TargetWord: "koniec pracy",
			CategoryID: cat.ID,
			Status:     types.EntryApproved,
			Slug:       &taken,
		}
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict after exhausted retries, got %v", err)
	}
	if calls != slugInsertRetries {
		t.Errorf("expected %d attempts, got %d", slugInsertRetries, calls)
	}

	var entries int64
	db.Model(&types.DictionaryEntry{}).Count(&entries)
	if entries != 1 {
		t.Errorf("failed attempts must not leave rows, found %d", entries)
	}
}

func TestParseAlternativesAbsentLine(t *testing.T) {
	if alts := parseAlternatives("just some notes\nnothing tagged"); alts != nil {
		t.Fatalf("expected no alternatives, got %v", alts)
	}
}

func TestParseExamplesSplitsOnFirstSeparator(t *testing.T) {
	got := parseExamples([]string{"a | b | c", "broken"})
	if len(got) != 2 {
		t.Fatalf("expected 2 sentences, got %d", len(got))
	}
	if got[0].SourceText != "a" || got[0].TranslatedText != "b | c" {
		t.Errorf("expected split on first separator, got %+v", got[0])
	}
	if got[1].SourceText != "broken" || got[1].TranslatedText != "" {
		t.Errorf("expected separator-less string kept as source, got %+v", got[1])
	}
}
