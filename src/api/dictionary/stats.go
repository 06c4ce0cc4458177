package dictionary

import "github.com/slonskitech/slownik/src/api/types"

type Stats struct {
	ApprovedEntries    int64 `json:"approvedEntries"`
	DraftEntries       int64 `json:"draftEntries"`
	RejectedEntries    int64 `json:"rejectedEntries"`
	PendingSubmissions int64 `json:"pendingSubmissions"`
	Categories         int64 `json:"categories"`
	PartsOfSpeech      int64 `json:"partsOfSpeech"`
}

func (s *Store) Stats() (*Stats, error) {
	var out Stats
	counts := []struct {
		dst   *int64
		model any
		where []any
	}{
		{&out.ApprovedEntries, &types.DictionaryEntry{}, []any{"status = ?", types.EntryApproved}},
		{&out.DraftEntries, &types.DictionaryEntry{}, []any{"status = ?", types.EntryDraft}},
		{&out.RejectedEntries, &types.DictionaryEntry{}, []any{"status = ?", types.EntryRejected}},
		{&out.PendingSubmissions, &types.PublicSubmission{}, []any{"status = ?", types.SubmissionPending}},
		{&out.Categories, &types.Category{}, nil},
		{&out.PartsOfSpeech, &types.PartOfSpeech{}, nil},
	}
	for _, c := range counts {
		q := s.db.Model(c.model)
		if c.where != nil {
			q = q.Where(c.where[0], c.where[1:]...)
		}
		if err := q.Count(c.dst).Error; err != nil {
			return nil, err
		}
	}
	return &out, nil
}
