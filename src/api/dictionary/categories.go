package dictionary

import (
	"errors"
	"fmt"
	"strings"

	"github.com/slonskitech/slownik/src/api/slug"
	"github.com/slonskitech/slownik/src/api/types"
	"gorm.io/gorm"
)

type CategoryInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

func (s *Store) ListCategories() ([]types.Category, error) {
	var cats []types.Category
	if err := s.db.Order("name ASC").Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

func (s *Store) CreateCategory(in CategoryInput) (*types.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrValidation)
	}
	identifier, err := s.categoryIdentifier(in.Slug, name, 0)
	if err != nil {
		return nil, err
	}
	cat := types.Category{
		Name:        name,
		Slug:        identifier,
		Description: strings.TrimSpace(s.clean(in.Description)),
		Type:        normalizeCategoryType(in.Type),
	}
	if err := s.db.Create(&cat).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: category %q already exists", ErrConflict, name)
		}
		return nil, err
	}
	return &cat, nil
}

func (s *Store) UpdateCategory(id uint64, in CategoryInput) (*types.Category, error) {
	var cat types.Category
	if err := s.db.First(&cat, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category %d", ErrNotFound, id)
		}
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrValidation)
	}
	identifier, err := s.categoryIdentifier(in.Slug, name, id)
	if err != nil {
		return nil, err
	}
	cat.Name = name
	cat.Slug = identifier
	cat.Description = strings.TrimSpace(s.clean(in.Description))
	cat.Type = normalizeCategoryType(in.Type)
	if err := s.db.Save(&cat).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: category %q already exists", ErrConflict, name)
		}
		return nil, err
	}
	return &cat, nil
}

// DeleteCategory refuses to remove a category that entries still
// reference.
func (s *Store) DeleteCategory(id uint64) error {
	var cat types.Category
	if err := s.db.First(&cat, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: category %d", ErrNotFound, id)
		}
		return err
	}
	var used int64
	if err := s.db.Model(&types.DictionaryEntry{}).Where("category_id = ?", id).Count(&used).Error; err != nil {
		return err
	}
	if used > 0 {
		return fmt.Errorf("%w: category %q is referenced by %d entries", ErrConflict, cat.Name, used)
	}
	return s.db.Delete(&cat).Error
}

// categoryIdentifier derives or validates the slug, checking uniqueness
// while excluding self on update.
func (s *Store) categoryIdentifier(explicit, name string, selfID uint64) (string, error) {
	source := explicit
	if strings.TrimSpace(source) == "" {
		source = name
	}
	identifier := slug.Make(source)
	if identifier == "" {
		return "", fmt.Errorf("%w: %q yields an empty identifier", ErrValidation, source)
	}
	q := s.db.Model(&types.Category{}).Where("slug = ?", identifier)
	if selfID != 0 {
		q = q.Where("id <> ?", selfID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return "", err
	}
	if n > 0 {
		return "", fmt.Errorf("%w: identifier %q already exists", ErrConflict, identifier)
	}
	return identifier, nil
}

func normalizeCategoryType(t string) string {
	if strings.ToUpper(strings.TrimSpace(t)) == types.CategoryModern {
		return types.CategoryModern
	}
	return types.CategoryTraditional
}
