package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeRegistryResolve(t *testing.T) {
	registry := NewTypeRegistry(nil)

	mh := registry.Resolve("Mental Health Consultation")
	assert.Equal(t, 50, mh.DurationMinutes)
	assert.Equal(t, 10, mh.BufferBeforeMinutes)
	assert.Equal(t, 10, mh.BufferAfterMinutes)

	crisis := registry.Resolve("Crisis Intervention")
	assert.Equal(t, 30, crisis.DurationMinutes)
	assert.Equal(t, 5, crisis.BufferBeforeMinutes)
	assert.Equal(t, 15, crisis.BufferAfterMinutes)
}

func TestTypeRegistryResolveIsCaseInsensitive(t *testing.T) {
	registry := NewTypeRegistry(nil)

	assert.Equal(t, registry.Resolve("Crisis Intervention"), registry.Resolve("  crisis intervention "))
}

func TestTypeRegistryUnknownFallsBackToDefault(t *testing.T) {
	registry := NewTypeRegistry(nil)

	// Voice callers supply free-text names; resolution must not fail.
	got := registry.Resolve("quick chat about my meds")
	assert.Equal(t, DefaultTypeName, got.Name)
	assert.False(t, registry.Known("quick chat about my meds"))
}

func TestTypeRegistryConfiguredTypesEnsureDefault(t *testing.T) {
	registry := NewTypeRegistry([]AppointmentType{
		{Name: "Intake", DurationMinutes: 60, BufferBeforeMinutes: 15, BufferAfterMinutes: 15},
	})

	assert.True(t, registry.Known("Intake"))
	assert.Equal(t, DefaultTypeName, registry.Resolve("unknown").Name)
}
