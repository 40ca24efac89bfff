package model

// A Widget represents a database record and the rendered API response.
type Widget struct {
	Base `msgpack:",inline" storm:"inline"`

	OwnerID     string   `json:"owner_id"    msgpack:"owner_id"    storm:"index"`
	Name        string   `json:"name"        msgpack:"name"        storm:"index"`
	Description string   `json:"description" msgpack:"description"`
	Quantity    int      `json:"quantity"    msgpack:"quantity"`
	Tags        []string `json:"tags"        msgpack:"tags"`
}
