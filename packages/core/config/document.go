package config

// Document is an ordered, mutable mapping from string keys to
// dynamically typed values. A value is one of: string, bool, int64,
// float64, nil, []any (whose elements are themselves document values),
// or a nested *Document. Keys are unique within one mapping level and
// keep their insertion order.
type Document struct {
	keys   []string
	values map[string]any
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{values: make(map[string]any)}
}

// Len returns the number of keys in the document.
func (d *Document) Len() int {
	return len(d.keys)
}

// Keys returns the document's keys in insertion order.
func (d *Document) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Has reports whether key is present.
func (d *Document) Has(key string) bool {
	_, ok := d.values[key]
	return ok
}

// Get returns the raw value at key.
func (d *Document) Get(key string) (any, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Set stores value at key. Existing keys keep their position; new keys
// are appended.
func (d *Document) Set(key string, value any) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

// Delete removes key from the document.
func (d *Document) Delete(key string) {
	if _, ok := d.values[key]; !ok {
		return
	}
	delete(d.values, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
}

// GetString returns the string at key, or "" when the key is absent or
// holds a non-string value.
func (d *Document) GetString(key string) string {
	s, _ := d.values[key].(string)
	return s
}

// GetBool returns the truthiness of the value at key. Booleans count as
// themselves; a non-empty string other than "false" counts as true.
// Absent keys are false.
func (d *Document) GetBool(key string) bool {
	switch v := d.values[key].(type) {
	case bool:
		return v
	case string:
		return v != "" && v != "false"
	}
	return false
}

// GetList returns the sequence at key, or nil when the key is absent or
// holds a non-sequence value.
func (d *Document) GetList(key string) []any {
	l, _ := d.values[key].([]any)
	return l
}

// GetMap returns the nested document at key. Absent keys and
// non-mapping values yield an empty document.
func (d *Document) GetMap(key string) *Document {
	if m, ok := d.values[key].(*Document); ok {
		return m
	}
	return NewDocument()
}

// ensureMap returns the nested document at key, creating it when the
// key is absent or holds a non-mapping value.
func (d *Document) ensureMap(key string) *Document {
	if m, ok := d.values[key].(*Document); ok {
		return m
	}
	m := NewDocument()
	d.Set(key, m)
	return m
}

// Merge fills gaps in d from defaults: every key present in defaults
// but absent in d is deep-copied into d, and keys holding nested
// documents on both sides are merged recursively. Keys already present
// in d always win; sequences are never concatenated. Merging the same
// defaults twice leaves d unchanged the second time.
func (d *Document) Merge(defaults *Document) {
	if defaults == nil {
		return
	}
	for _, key := range defaults.keys {
		dv := defaults.values[key]
		cur, ok := d.values[key]
		if !ok {
			d.Set(key, cloneValue(dv))
			continue
		}
		if curDoc, ok := cur.(*Document); ok {
			if defDoc, ok := dv.(*Document); ok {
				curDoc.Merge(defDoc)
			}
		}
	}
}

// Clone returns a deep copy of the document. Clones share no mutable
// state with the original.
func (d *Document) Clone() *Document {
	out := NewDocument()
	for _, key := range d.keys {
		out.Set(key, cloneValue(d.values[key]))
	}
	return out
}

// Plain converts the document to ordinary Go maps and slices, suitable
// for JSON or YAML marshaling. Key order is not preserved.
func (d *Document) Plain() map[string]any {
	out := make(map[string]any, len(d.keys))
	for _, key := range d.keys {
		out[key] = plainValue(d.values[key])
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case *Document:
		return val.Clone()
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

func plainValue(v any) any {
	switch val := v.(type) {
	case *Document:
		return val.Plain()
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = plainValue(e)
		}
		return out
	default:
		return v
	}
}
