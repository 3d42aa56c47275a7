package storage

import (
	"context"
)

// FileStorage defines the interface for resume blob storage operations.
// Locators returned by Save are opaque relative names
// ({usn}_{unixMillis}.pdf) that the resume repository persists alongside
// the record metadata.
type FileStorage interface {
	// Save writes data under a name derived from the owner and the upload
	// time and returns the locator to persist.
	Save(ctx context.Context, ownerID string, data []byte) (string, error)

	// Get returns the stored bytes for a locator.
	Get(ctx context.Context, locator string) ([]byte, error)

	// Exists reports whether the locator's blob is present.
	Exists(ctx context.Context, locator string) (bool, error)

	// Delete removes the blob. Deleting a locator that does not exist is
	// not an error; a delete that fails for any other reason is returned.
	Delete(ctx context.Context, locator string) error
}
