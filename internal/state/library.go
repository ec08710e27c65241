package state

import (
	"fmt"
	"sort"

	"github.com/CodexForgeBR/flash-ui/internal/model"
)

// LoadLibrary reads the saved components from dir. A missing library file
// yields an empty library.
func LoadLibrary(dir string) ([]model.SavedComponent, error) {
	var items []model.SavedComponent
	if err := loadJSON(dir, libraryFileName, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SaveLibrary writes the saved components to dir.
func SaveLibrary(dir string, items []model.SavedComponent) error {
	if items == nil {
		items = []model.SavedComponent{}
	}
	return saveJSON(dir, libraryFileName, items)
}

// AddToLibrary prepends c to the library in dir and persists it.
func AddToLibrary(dir string, c model.SavedComponent) ([]model.SavedComponent, error) {
	items, err := LoadLibrary(dir)
	if err != nil {
		return nil, err
	}

	items = append([]model.SavedComponent{c}, items...)
	if err := SaveLibrary(dir, items); err != nil {
		return nil, err
	}
	return items, nil
}

// DeleteFromLibrary removes the component with the given id and persists
// the result. Returns an error if no component has that id.
func DeleteFromLibrary(dir, id string) ([]model.SavedComponent, error) {
	items, err := LoadLibrary(dir)
	if err != nil {
		return nil, err
	}

	kept := make([]model.SavedComponent, 0, len(items))
	for _, c := range items {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(items) {
		return nil, fmt.Errorf("component %q not found in library", id)
	}

	if err := SaveLibrary(dir, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// Category is one group of saved components.
type Category struct {
	Name       string
	Components []model.SavedComponent
}

// GroupByCategory groups items by category, categories sorted by name and
// components kept in library order. An empty category is reported as
// model.DefaultCategory.
func GroupByCategory(items []model.SavedComponent) []Category {
	index := make(map[string]int)
	var groups []Category

	for _, c := range items {
		name := c.Category
		if name == "" {
			name = model.DefaultCategory
		}
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, Category{Name: name})
		}
		groups[i].Components = append(groups[i].Components, c)
	}

	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].Name < groups[b].Name
	})
	return groups
}
