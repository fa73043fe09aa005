// Package uuid generates string IDs for database records.
package uuid

import googleuuid "github.com/google/uuid"

// New returns a time-ordered UUIDv7 string. UUIDv7 sorts by creation time,
// which keeps primary key indexes append-mostly.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		// NewV7 only fails if the random source is exhausted; fall back to v4.
		return googleuuid.NewString()
	}
	return id.String()
}

// IsValid checks if a string is a valid UUID.
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
