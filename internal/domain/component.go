package domain

// Component describes one documented UI widget in the catalog.
// It is the record every search index is built from.
type Component struct {
	// ID is the unique, stable identifier and the primary key of all indexes.
	// Example: "text_input"
	ID string `json:"id" yaml:"id" toml:"id"`

	// Name is the display name, usually a dotted widget path.
	// Example: "st.text_input"
	Name string `json:"name" yaml:"name" toml:"name"`

	// Category is one of a small set of category keys. It is not validated.
	// Example: "input_widgets"
	Category string `json:"category" yaml:"category" toml:"category"`

	// Description is free text used for display and indexing.
	Description string `json:"description" yaml:"description" toml:"description"`

	// Tags are short lowercase labels used for filtering. Order is irrelevant.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty" toml:"tags,omitempty"`

	// Keywords are synonyms that improve recall. They are indexed but never displayed.
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty" toml:"keywords,omitempty"`

	// Related lists other component IDs, in preference order.
	Related []string `json:"related,omitempty" yaml:"related,omitempty" toml:"related,omitempty"`
}

// HasTag reports whether the component carries the given tag.
func (c Component) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// HasAnyTag reports whether the component carries at least one of the given tags.
func (c Component) HasAnyTag(tags []string) bool {
	for _, t := range tags {
		if c.HasTag(t) {
			return true
		}
	}
	return false
}

// Field names used by the inverted index and reported in SearchResult.MatchedFields.
const (
	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldKeywords    = "keywords"

	// Bleve-only fields.
	FieldTags = "tags"
)

// SearchableFields are the record fields tokenized into the inverted index,
// in canonical order. Keywords are indexed separately under FieldKeywords.
var SearchableFields = []string{FieldID, FieldName, FieldDescription, FieldCategory}

// SearchResult is a single ranked hit. It is created per query and owned by the caller.
type SearchResult struct {
	ComponentID   string            `json:"component_id"`
	Name          string            `json:"name"`
	Category      string            `json:"category"`
	Description   string            `json:"description"`
	Score         float64           `json:"score"`
	MatchedFields []string          `json:"matched_fields"`
	Highlights    map[string]string `json:"highlights,omitempty"`
}
