package source

// Kind identifies a category of syncable catalog record.
type Kind string

const (
	// KindFile is a binary asset with descriptive metadata.
	KindFile Kind = "file"
	// KindObject is a structured content object (typed field bag).
	KindObject Kind = "object"
	// KindPage is a content document.
	KindPage Kind = "page"
	// KindCollection is a curated grouping of objects.
	KindCollection Kind = "collection"
	// KindRedirect is a path-to-path redirect rule.
	KindRedirect Kind = "redirect"
	// KindPrice is a per-SKU price record.
	KindPrice Kind = "price"
)

// Kinds lists all syncable kinds.
func Kinds() []Kind {
	return []Kind{KindFile, KindObject, KindPage, KindCollection, KindRedirect, KindPrice}
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindFile, KindObject, KindPage, KindCollection, KindRedirect, KindPrice:
		return true
	default:
		return false
	}
}

// FieldType tags the semantic type of an entity field value.
type FieldType string

const (
	// FieldText holds a plain string value.
	FieldText FieldType = "text"
	// FieldNumber holds a numeric value (int or float).
	FieldNumber FieldType = "number"
	// FieldBool holds a boolean value.
	FieldBool FieldType = "bool"
	// FieldList holds an unordered list of strings.
	FieldList FieldType = "list"
	// FieldReference holds the external id of a record of another kind.
	FieldReference FieldType = "reference"
	// FieldReferenceList holds an unordered list of external ids of another kind.
	FieldReferenceList FieldType = "reference_list"
)

// Field is a single typed field of a source entity.
type Field struct {
	// Key is the field name, unique within the entity.
	Key string

	// Type is the semantic type tag for Value.
	Type FieldType

	// Value is the raw field value. Supported dynamic types are string,
	// bool, int, int64, float64, []string and nil.
	Value any

	// RefKind names the referenced kind for reference-typed fields.
	RefKind Kind
}

// Entity is a single record pulled from the source system.
// The external id is assigned by the source and stable across pulls;
// the natural key (handle, path, SKU) is unique within the kind and is
// usable to find a pre-existing target record independent of sync history.
type Entity struct {
	Kind       Kind
	ExternalID string
	NaturalKey string
	Fields     []Field
}

// Field returns the field with the given key, or nil if absent.
func (e *Entity) Field(key string) *Field {
	for i := range e.Fields {
		if e.Fields[i].Key == key {
			return &e.Fields[i]
		}
	}
	return nil
}

// SetField replaces the value of an existing field, or appends a new one.
func (e *Entity) SetField(f Field) {
	for i := range e.Fields {
		if e.Fields[i].Key == f.Key {
			e.Fields[i] = f
			return
		}
	}
	e.Fields = append(e.Fields, f)
}

// Clone returns a deep copy of the entity. Reconciliation rewrites
// reference fields in place, so callers that keep the original must copy.
func (e *Entity) Clone() Entity {
	out := *e
	out.Fields = make([]Field, len(e.Fields))
	copy(out.Fields, e.Fields)
	for i := range out.Fields {
		if list, ok := out.Fields[i].Value.([]string); ok {
			cp := make([]string, len(list))
			copy(cp, list)
			out.Fields[i].Value = cp
		}
	}
	return out
}
