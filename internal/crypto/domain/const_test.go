package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryForDataType(t *testing.T) {
	t.Run("maps known data types", func(t *testing.T) {
		assert.Equal(t, CategoryConversation, CategoryForDataType("voice"))
		assert.Equal(t, CategoryHealth, CategoryForDataType("biometric"))
		assert.Equal(t, CategoryCalendar, CategoryForDataType("appointment"))
	})

	t.Run("lookup is case-insensitive", func(t *testing.T) {
		assert.Equal(t, CategoryHealth, CategoryForDataType("BIOMETRIC"))
		assert.Equal(t, CategoryCalendar, CategoryForDataType("Schedule"))
	})

	t.Run("ignores surrounding whitespace", func(t *testing.T) {
		assert.Equal(t, CategoryHealth, CategoryForDataType("  medical "))
	})

	t.Run("unmapped types default to conversation", func(t *testing.T) {
		assert.Equal(t, CategoryConversation, CategoryForDataType("location"))
		assert.Equal(t, CategoryConversation, CategoryForDataType(""))
	})
}

func TestCategories(t *testing.T) {
	categories := Categories()
	assert.Equal(t, []Category{CategoryConversation, CategoryHealth, CategoryCalendar}, categories)
}

func TestZero(t *testing.T) {
	t.Run("overwrites key material", func(t *testing.T) {
		b := []byte{1, 2, 3, 4}
		Zero(b)
		assert.Equal(t, []byte{0, 0, 0, 0}, b)
	})

	t.Run("tolerates nil", func(t *testing.T) {
		assert.NotPanics(t, func() { Zero(nil) })
	})
}
