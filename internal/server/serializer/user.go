package serializer

import "github.com/mdouchement/restbase/internal/model"

// User serializes the render of a user.
func User(m *model.User) map[string]any {
	r := map[string]any{
		"id":    m.ID,
		"email": m.Email,
		"role":  m.Role,
	}

	if m.CreatedAt != nil {
		r["created_at"] = m.CreatedAt.UTC()
	}
	if m.UpdatedAt != nil {
		r["updated_at"] = m.UpdatedAt.UTC()
	}

	return r
}
