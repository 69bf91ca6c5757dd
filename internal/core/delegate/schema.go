package delegate

// Kind is the JSON type of a reply field
type Kind uint8

const (
	// KindString is a JSON string
	KindString Kind = iota
	// KindInteger is a JSON integer
	KindInteger
	// KindStringList is a JSON array of strings
	KindStringList
)

// Field describes one property of the requested reply object
type Field struct {
	Name        string
	Kind        Kind
	Description string
}

// Schema is the provider-neutral shape a generation call is asked to follow
type Schema struct {
	Fields   []Field
	Required []string
}

// Names returns the field names in declaration order
func (s Schema) Names() []string {
	out := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		out = append(out, f.Name)
	}
	return out
}
