// Package domain defines the core cryptographic domain models for personal
// data encryption at rest.
//
// Personal data is grouped into coarse sensitivity categories (conversation,
// health, calendar). Each category owns one symmetric key; free-form data
// types reported by collaborators are mapped onto a category before a key is
// resolved. Keys rotate by archiving the current key material under a
// timestamped identifier and installing fresh material under the base
// category identifier.
package domain

import "strings"

// Category identifies a coarse sensitivity class of personal data.
// All data of one category is encrypted under the same symmetric key.
type Category string

const (
	// CategoryConversation covers dialog transcripts, voice input and other
	// interaction data. It is also the fallback for unmapped data types.
	CategoryConversation Category = "conversation"

	// CategoryHealth covers biometric readings, vitals and medical data.
	CategoryHealth Category = "health"

	// CategoryCalendar covers appointments, schedules and reminders.
	CategoryCalendar Category = "calendar"
)

const (
	// KeySize is the required key material length in bytes (AES-256).
	KeySize = 32

	// IVSize is the initialization vector length in bytes used for
	// encrypted records. GCM is configured with this nonce size.
	IVSize = 16

	// TagSize is the GCM authentication tag length in bytes.
	TagSize = 16

	// MethodAESGCM is the encryption method recorded on every EncryptedRecord.
	MethodAESGCM = "aes-256-gcm"
)

// Categories returns every known category in a stable order.
func Categories() []Category {
	return []Category{CategoryConversation, CategoryHealth, CategoryCalendar}
}

// dataTypeCategories maps free-form data-type strings reported by
// collaborators to their sensitivity category. Lookup is case-insensitive;
// unmapped types fall back to CategoryConversation.
var dataTypeCategories = map[string]Category{
	"conversation": CategoryConversation,
	"voice":        CategoryConversation,
	"speech":       CategoryConversation,
	"audio":        CategoryConversation,
	"text":         CategoryConversation,
	"chat":         CategoryConversation,
	"health":       CategoryHealth,
	"biometric":    CategoryHealth,
	"medical":      CategoryHealth,
	"vitals":       CategoryHealth,
	"fitness":      CategoryHealth,
	"calendar":     CategoryCalendar,
	"appointment":  CategoryCalendar,
	"schedule":     CategoryCalendar,
	"reminder":     CategoryCalendar,
	"event":        CategoryCalendar,
}

// CategoryForDataType resolves a free-form data type to its category.
// The lookup is case-insensitive and ignores surrounding whitespace;
// unknown types resolve to CategoryConversation.
func CategoryForDataType(dataType string) Category {
	if category, ok := dataTypeCategories[strings.ToLower(strings.TrimSpace(dataType))]; ok {
		return category
	}
	return CategoryConversation
}
