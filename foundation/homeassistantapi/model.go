package homeassistantapi

// EntityState is the hub's report for one entity. State and Attributes are
// nilable because the hub returns null for entities without a direct state or
// without attributes. The timestamps are opaque and passed through unparsed.
type EntityState struct {
	EntityId    string         `json:"entity_id,omitempty"`
	State       *string        `json:"state"`
	Attributes  map[string]any `json:"attributes"`
	LastUpdated string         `json:"last_updated"`
	LastChanged string         `json:"last_changed"`
}
