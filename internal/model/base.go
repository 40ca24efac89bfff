package model

import "time"

type (
	// A Model is a record persisted in the database.
	Model interface {
		// GetID returns the record ID, empty until the first save.
		GetID() string
		// SetID defines the record ID.
		SetID(string)
		// Touch records a write at t. The creation date is only set once.
		Touch(t time.Time)
	}

	// A Base holds the fields shared by all records.
	Base struct {
		ID        string     `json:"id"         msgpack:"id"         storm:"id"`
		CreatedAt *time.Time `json:"created_at" msgpack:"created_at" storm:"index"`
		UpdatedAt *time.Time `json:"updated_at" msgpack:"updated_at" storm:"index"`
	}
)

// GetID implements Model.
func (m *Base) GetID() string {
	return m.ID
}

// SetID implements Model.
func (m *Base) SetID(id string) {
	m.ID = id
}

// Touch implements Model.
func (m *Base) Touch(t time.Time) {
	if m.CreatedAt == nil {
		created := t
		m.CreatedAt = &created
	}
	m.UpdatedAt = &t
}
