package dictionary

import (
	"testing"
	"time"

	"github.com/slonskitech/slownik/src/api/internal/testutil"
	"github.com/slonskitech/slownik/src/api/types"
	"gorm.io/gorm"
)

var testClock = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) (*Store, *gorm.DB) {
	t.Helper()
	db := testutil.OpenTestDB(t)
	store := NewStoreAt(db, func() time.Time { return testClock })
	return store, db
}

func seedCategory(t *testing.T, db *gorm.DB) types.Category {
	t.Helper()
	cat := types.Category{Name: "Górnictwo", Slug: "gornictwo", Type: types.CategoryTraditional}
	if err := db.Create(&cat).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	return cat
}

func seedSubmission(t *testing.T, store *Store, cat types.Category) *types.PublicSubmission {
	t.Helper()
	sub, err := store.Submit(SubmissionInput{
		SourceWord:     "Fajront",
		TargetWord:     "koniec pracy, fajrant, szychta skończona",
		CategoryID:     cat.ID,
		SubmitterName:  "Hanys",
		SubmitterEmail: "hanys@example.com",
		Notes:          "słychane na grubie",
		Examples: []SubmissionExample{
			{SourceText: "Już fajront", TranslatedText: "Już koniec pracy"},
			{SourceText: "Po fajroncie idymy dōm", TranslatedText: "Po pracy idziemy do domu"},
		},
	})
	if err != nil {
		t.Fatalf("failed to seed submission: %v", err)
	}
	return sub
}
