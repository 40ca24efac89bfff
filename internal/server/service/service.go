package service

// M is an arbitrary map.
type M map[string]any

// Params are the basic fields used in requests.
type Params struct {
	UserAgent string `json:"-"`
}
