package todo

const (
	// MaxNameLength is the maximum accepted length of a todo name.
	MaxNameLength = 255
	// MaxNoteLength is the maximum accepted length of a todo note.
	MaxNoteLength = 255
)

// CreateInput is the typed, validated input for creating a todo.
// It is constructed only from validated fields; handlers never pass a
// raw request mapping to the service. A nil Note means the field was
// absent, which is distinct from an empty string.
type CreateInput struct {
	Name string
	Note *string
}

// Validate checks the input against the creation rules and returns a
// *ValidationError describing every failing field, or nil.
func (in CreateInput) Validate() error {
	v := newFieldChecker()
	v.check(in.Name != "", "name", "must be provided")
	v.check(len(in.Name) <= MaxNameLength, "name", "must be at most 255 characters")
	if in.Note != nil {
		v.check(len(*in.Note) <= MaxNoteLength, "note", "must be at most 255 characters")
	}
	return v.err()
}

// fieldChecker accumulates field-keyed validation messages. The first
// failing check per field wins.
type fieldChecker struct {
	fields map[string]string
}

func newFieldChecker() *fieldChecker {
	return &fieldChecker{fields: make(map[string]string)}
}

func (c *fieldChecker) check(cond bool, key, msg string) {
	if cond {
		return
	}
	if _, ok := c.fields[key]; !ok {
		c.fields[key] = msg
	}
}

func (c *fieldChecker) err() error {
	if len(c.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: c.fields}
}
