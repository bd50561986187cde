package project

import (
	"fmt"

	"github.com/piwi3910/RoomFit/internal/model"
)

// SaveTemplates writes the template store as JSON.
func SaveTemplates(path string, store model.TemplateStore) error {
	return writeJSON(path, store)
}

// LoadTemplates reads the template store at path. A missing file yields an
// empty store. Every template must carry a usable room and a unique id, since
// "place --template" feeds the room straight to the engine.
func LoadTemplates(path string) (model.TemplateStore, error) {
	store := model.NewTemplateStore()
	found, err := readJSON(path, &store)
	if err != nil || !found {
		return store, err
	}
	if err := validateTemplates(store); err != nil {
		return model.TemplateStore{}, err
	}
	if store.Templates == nil {
		store.Templates = []model.RoomTemplate{}
	}
	return store, nil
}

func validateTemplates(store model.TemplateStore) error {
	seen := make(map[string]bool, len(store.Templates))
	for _, t := range store.Templates {
		if t.ID == "" {
			return fmt.Errorf("template %q has no id", t.Name)
		}
		if seen[t.ID] {
			return fmt.Errorf("template %q: duplicate id %s", t.Name, t.ID)
		}
		seen[t.ID] = true
		if err := t.Room.Validate(); err != nil {
			return fmt.Errorf("template %q: %w", t.Name, err)
		}
	}
	return nil
}
