package domain

import "strings"

// AppointmentType describes the duration and buffers for one kind of
// session. Minutes, all non-negative; duration strictly positive.
type AppointmentType struct {
	Name                string
	DurationMinutes     int
	BufferBeforeMinutes int
	BufferAfterMinutes  int
}

// DefaultTypeName is the fallback used for unrecognized type names.
// Phone-intake callers supply free-text names, so resolution is lenient
// and never fails.
const DefaultTypeName = "General Consultation"

// TypeRegistry maps appointment type names to their durations and
// buffers. Read-only after construction.
type TypeRegistry struct {
	types       map[string]AppointmentType
	defaultName string
}

// NewTypeRegistry builds a registry from the given types. When types is
// empty the built-in practice catalog is used. A type named
// DefaultTypeName is ensured either way.
func NewTypeRegistry(configured []AppointmentType) *TypeRegistry {
	if len(configured) == 0 {
		configured = builtinTypes()
	}

	r := &TypeRegistry{
		types:       make(map[string]AppointmentType, len(configured)+1),
		defaultName: DefaultTypeName,
	}
	for _, t := range configured {
		r.types[normalizeTypeName(t.Name)] = t
	}
	if _, ok := r.types[normalizeTypeName(DefaultTypeName)]; !ok {
		r.types[normalizeTypeName(DefaultTypeName)] = AppointmentType{
			Name:                DefaultTypeName,
			DurationMinutes:     30,
			BufferBeforeMinutes: 10,
			BufferAfterMinutes:  10,
		}
	}
	return r
}

// Resolve returns the type for name, falling back to the default type
// for unknown names. Matching is case-insensitive and ignores
// surrounding whitespace.
func (r *TypeRegistry) Resolve(name string) AppointmentType {
	if t, ok := r.types[normalizeTypeName(name)]; ok {
		return t
	}
	return r.types[normalizeTypeName(r.defaultName)]
}

// Known reports whether name resolves without the default fallback.
func (r *TypeRegistry) Known(name string) bool {
	_, ok := r.types[normalizeTypeName(name)]
	return ok
}

// DefaultTypeName returns the configured fallback type name.
func (r *TypeRegistry) DefaultTypeName() string {
	return r.defaultName
}

// Names returns the registered type names, for diagnostics.
func (r *TypeRegistry) Names() []string {
	names := make([]string, 0, len(r.types))
	for _, t := range r.types {
		names = append(names, t.Name)
	}
	return names
}

func normalizeTypeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func builtinTypes() []AppointmentType {
	return []AppointmentType{
		{Name: "Mental Health Consultation", DurationMinutes: 50, BufferBeforeMinutes: 10, BufferAfterMinutes: 10},
		{Name: "Therapy Session", DurationMinutes: 50, BufferBeforeMinutes: 10, BufferAfterMinutes: 10},
		{Name: "Crisis Intervention", DurationMinutes: 30, BufferBeforeMinutes: 5, BufferAfterMinutes: 15},
		{Name: "Medication Review", DurationMinutes: 20, BufferBeforeMinutes: 5, BufferAfterMinutes: 5},
		{Name: "Follow-up", DurationMinutes: 15, BufferBeforeMinutes: 5, BufferAfterMinutes: 5},
		{Name: DefaultTypeName, DurationMinutes: 30, BufferBeforeMinutes: 10, BufferAfterMinutes: 10},
	}
}
