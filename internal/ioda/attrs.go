package ioda

// Attr is one named attribute value.
type Attr struct {
	Name  string
	Value any
}

// Attributes is an ordered attribute list. Setting an existing name replaces
// its value in place.
type Attributes []Attr

// Get returns the value of name.
func (a Attributes) Get(name string) (any, bool) {
	for _, at := range a {
		if at.Name == name {
			return at.Value, true
		}
	}
	return nil, false
}

// Set sets name to value.
func (a *Attributes) Set(name string, value any) {
	for i := range *a {
		if (*a)[i].Name == name {
			(*a)[i].Value = value
			return
		}
	}
	*a = append(*a, Attr{Name: name, Value: value})
}

// Names returns the attribute names in insertion order.
func (a Attributes) Names() []string {
	names := make([]string, len(a))
	for i, at := range a {
		names[i] = at.Name
	}
	return names
}

// Map returns the attributes keyed by name.
func (a Attributes) Map() map[string]any {
	m := make(map[string]any, len(a))
	for _, at := range a {
		m[at.Name] = at.Value
	}
	return m
}

// VarAttrs holds per-variable attributes in first-use order.
type VarAttrs struct {
	keys  []VarKey
	attrs map[VarKey]*Attributes
}

// NewVarAttrs returns an empty table.
func NewVarAttrs() *VarAttrs {
	return &VarAttrs{attrs: make(map[VarKey]*Attributes)}
}

// Attrs returns the attributes of key, inserting an empty list on first use.
func (v *VarAttrs) Attrs(key VarKey) *Attributes {
	if a, ok := v.attrs[key]; ok {
		return a
	}
	a := &Attributes{}
	v.attrs[key] = a
	v.keys = append(v.keys, key)
	return a
}

// Set sets one attribute of key.
func (v *VarAttrs) Set(key VarKey, name string, value any) {
	v.Attrs(key).Set(name, value)
}

// Lookup returns the attributes of key without inserting.
func (v *VarAttrs) Lookup(key VarKey) (Attributes, bool) {
	a, ok := v.attrs[key]
	if !ok {
		return nil, false
	}
	return *a, true
}

// Keys returns the keys in first-use order.
func (v *VarAttrs) Keys() []VarKey {
	return append([]VarKey(nil), v.keys...)
}
