package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// localStorage implements FileStorage on the node's filesystem. All blobs
// live flat under root; locators are bare file names so the directory can
// be mounted statically by the HTTP layer.
type localStorage struct {
	root string
}

// NewLocalStorage creates a filesystem-backed storage rooted at root,
// creating the directory if needed.
func NewLocalStorage(root string) (FileStorage, error) {
	if root == "" {
		return nil, errors.New("storage root cannot be empty")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root %s: %w", root, err)
	}
	log.Printf("Local storage initialized at: %s", root)
	return &localStorage{root: root}, nil
}

// Save writes data to {ownerID}_{unixMillis}.pdf. The write goes to a
// uuid-named temp file first and is renamed into place, so a crashed
// request never leaves a half-written blob under a real locator. If two
// saves for one owner land on the same millisecond the timestamp is bumped
// until the name is free.
func (s *localStorage) Save(ctx context.Context, ownerID string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return "", fmt.Errorf("ensure storage root: %w", err)
	}

	millis := time.Now().UnixMilli()
	locator := fmt.Sprintf("%s_%d.pdf", ownerID, millis)
	for {
		if _, err := os.Stat(filepath.Join(s.root, locator)); errors.Is(err, fs.ErrNotExist) {
			break
		}
		millis++
		locator = fmt.Sprintf("%s_%d.pdf", ownerID, millis)
	}

	tmp := filepath.Join(s.root, "."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(s.root, locator)); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("finalize blob: %w", err)
	}
	return locator, nil
}

// Get returns the stored bytes for a locator.
func (s *localStorage) Get(ctx context.Context, locator string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.root, filepath.Base(locator)))
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Exists reports whether the locator's blob is present.
func (s *localStorage) Exists(ctx context.Context, locator string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	_, err := os.Stat(filepath.Join(s.root, filepath.Base(locator)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Delete removes the blob. A missing blob is treated as already deleted;
// any other failure is returned.
func (s *localStorage) Delete(ctx context.Context, locator string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(s.root, filepath.Base(locator)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("ERROR: Failed to delete blob '%s': %v", locator, err)
		return err
	}
	return nil
}
