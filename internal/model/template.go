package model

import (
	"time"

	"github.com/google/uuid"
)

// RoomTemplate is a reusable placement request: a room and the fittings to
// furnish it with, without any result.
type RoomTemplate struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
	Room        RoomSpec `json:"room"`
	Order       []string `json:"order"`
}

// NewRoomTemplate creates a template from a room and fitting order.
func NewRoomTemplate(name, description string, room RoomSpec, order []string) RoomTemplate {
	now := nowRFC3339()
	return RoomTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Room:        copyRoom(room),
		Order:       copyStrings(order),
	}
}

// ToLayout creates an empty layout from this template, ready to be furnished
// with the given seed.
func (t RoomTemplate) ToLayout(layoutName string, seed int64) Layout {
	return NewLayout(layoutName, copyRoom(t.Room), t.Order, seed, nil)
}

// TemplateStore holds a collection of room templates.
type TemplateStore struct {
	Templates []RoomTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []RoomTemplate{},
	}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t RoomTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the template with the given ID, or nil.
func (ts *TemplateStore) FindByID(id string) *RoomTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == id {
			return &ts.Templates[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *RoomTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns the template names in store order.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}

// copyRoom copies the door and window slices so the template does not alias
// the caller's spec.
func copyRoom(r RoomSpec) RoomSpec {
	cp := r
	if r.Doors != nil {
		cp.Doors = make([]DoorSpec, len(r.Doors))
		copy(cp.Doors, r.Doors)
	}
	if r.Windows != nil {
		cp.Windows = make([]WindowSpec, len(r.Windows))
		copy(cp.Windows, r.Windows)
	}
	return cp
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}
