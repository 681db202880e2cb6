package store

import (
	"fmt"
	"slices"

	"github.com/iomz/hito/types"
)

// Categories returns the stored category list
func (s *ConfigStore) Categories() ([]types.CategoryData, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	return doc.Categories, nil
}

// SetCategories replaces the whole category list
func (s *ConfigStore) SetCategories(categories []types.CategoryData) error {
	return s.Mutate(func(doc types.ConfigDocument) (types.ConfigDocument, error) {
		doc.Categories = slices.Clone(categories)
		return doc, nil
	})
}

// AddCategory appends a category, generating an id when none is given,
// and returns the stored value
func (s *ConfigStore) AddCategory(category types.CategoryData) (types.CategoryData, error) {
	if category.ID == "" {
		category.ID = s.newID()
	}

	err := s.Mutate(func(doc types.ConfigDocument) (types.ConfigDocument, error) {
		doc.Categories = append(doc.Categories, category)
		return doc, nil
	})
	if err != nil {
		return types.CategoryData{}, err
	}
	return category, nil
}

// UpdateCategory replaces the category with the same id
func (s *ConfigStore) UpdateCategory(category types.CategoryData) error {
	return s.Mutate(func(doc types.ConfigDocument) (types.ConfigDocument, error) {
		idx := doc.CategoryIndex(category.ID)
		if idx < 0 {
			return doc, fmt.Errorf("category %q: %w", category.ID, ErrNotFound)
		}
		doc.Categories[idx] = category
		return doc, nil
	})
}

// RemoveCategory deletes the category with the given id
func (s *ConfigStore) RemoveCategory(id string) error {
	return s.Mutate(func(doc types.ConfigDocument) (types.ConfigDocument, error) {
		idx := doc.CategoryIndex(id)
		if idx < 0 {
			return doc, fmt.Errorf("category %q: %w", id, ErrNotFound)
		}
		doc.Categories = slices.Delete(doc.Categories, idx, idx+1)
		return doc, nil
	})
}
