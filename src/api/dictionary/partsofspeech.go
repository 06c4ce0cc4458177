package dictionary

import (
	"errors"
	"fmt"
	"strings"

	"github.com/slonskitech/slownik/src/api/slug"
	"github.com/slonskitech/slownik/src/api/types"
	"gorm.io/gorm"
)

type PartOfSpeechInput struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Order int    `json:"order"`
}

func (s *Store) ListPartsOfSpeech() ([]types.PartOfSpeech, error) {
	var parts []types.PartOfSpeech
	if err := s.db.Order("sort_order ASC, label ASC").Find(&parts).Error; err != nil {
		return nil, err
	}
	return parts, nil
}

func (s *Store) CreatePartOfSpeech(in PartOfSpeechInput) (*types.PartOfSpeech, error) {
	label := strings.TrimSpace(in.Label)
	if label == "" {
		return nil, fmt.Errorf("%w: label is required", ErrValidation)
	}
	value, err := s.posValue(in.Value, label, 0)
	if err != nil {
		return nil, err
	}
	pos := types.PartOfSpeech{Label: label, Value: value, Order: in.Order}
	if err := s.db.Create(&pos).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: part of speech %q already exists", ErrConflict, value)
		}
		return nil, err
	}
	return &pos, nil
}

func (s *Store) UpdatePartOfSpeech(id uint64, in PartOfSpeechInput) (*types.PartOfSpeech, error) {
	var pos types.PartOfSpeech
	if err := s.db.First(&pos, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: part of speech %d", ErrNotFound, id)
		}
		return nil, err
	}
	label := strings.TrimSpace(in.Label)
	if label == "" {
		return nil, fmt.Errorf("%w: label is required", ErrValidation)
	}
	value, err := s.posValue(in.Value, label, id)
	if err != nil {
		return nil, err
	}
	pos.Label = label
	pos.Value = value
	pos.Order = in.Order
	if err := s.db.Save(&pos).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: part of speech %q already exists", ErrConflict, value)
		}
		return nil, err
	}
	return &pos, nil
}

// DeletePartOfSpeech is guarded by the free-text part_of_speech field
// on entries matching this value.
func (s *Store) DeletePartOfSpeech(id uint64) error {
	var pos types.PartOfSpeech
	if err := s.db.First(&pos, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: part of speech %d", ErrNotFound, id)
		}
		return err
	}
	var used int64
	if err := s.db.Model(&types.DictionaryEntry{}).Where("part_of_speech = ?", pos.Value).Count(&used).Error; err != nil {
		return err
	}
	if used > 0 {
		return fmt.Errorf("%w: part of speech %q is used by %d entries", ErrConflict, pos.Value, used)
	}
	return s.db.Delete(&pos).Error
}

func (s *Store) posValue(explicit, label string, selfID uint64) (string, error) {
	source := explicit
	if strings.TrimSpace(source) == "" {
		source = label
	}
	value := slug.Make(source)
	if value == "" {
		return "", fmt.Errorf("%w: %q yields an empty value", ErrValidation, source)
	}
	q := s.db.Model(&types.PartOfSpeech{}).Where("value = ?", value)
	if selfID != 0 {
		q = q.Where("id <> ?", selfID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return "", err
	}
	if n > 0 {
		return "", fmt.Errorf("%w: value %q already exists", ErrConflict, value)
	}
	return value, nil
}
