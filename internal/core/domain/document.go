package domain

// Ensure Document satisfies the settings capability.
var _ SettingsConfig = (*Document)(nil)

// Document is a schema-less settings object. It loads any JSON object and
// never reports an upgrade, which makes it suitable for inspecting the
// settings of modules whose schema is unknown to the caller.
type Document map[string]any

// SetDefaults resets the document to an empty object.
func (d *Document) SetDefaults() {
	*d = Document{}
}

// ToJSONString serialises the document.
func (d *Document) ToJSONString() (string, error) {
	if *d == nil {
		return ToJSONString(map[string]any{})
	}
	return ToJSONString(map[string]any(*d))
}

// UpgradeIfNeeded always returns false; a document has no schema to migrate.
func (d *Document) UpgradeIfNeeded() bool {
	return false
}

// Set stores a top-level value.
func (d *Document) Set(key string, value any) {
	if *d == nil {
		*d = Document{}
	}
	(*d)[key] = value
}

// Get returns a top-level value.
func (d Document) Get(key string) (any, bool) {
	v, ok := d[key]
	return v, ok
}
