package utils

import (
	"github.com/google/uuid"
)

// GenerateID returns a time-ordered UUIDv7, or a random one if the clock source fails
func GenerateID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

// IsID reports whether s parses as a UUID
func IsID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
