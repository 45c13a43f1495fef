package gitfucktime

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// GetHash calculates the hash of a commit without storing it anywhere.
func GetHash(c *object.Commit) (*plumbing.Hash, error) {
	obj := &plumbing.MemoryObject{}
	if err := c.Encode(obj); err != nil {
		return nil, fmt.Errorf("failed to encode commit: %w", err)
	}

	h := obj.Hash()

	return &h, nil
}

// updateHashAndSave encodes the commit into s, sets c.Hash to the hash of
// the encoded object.
func updateHashAndSave(ctx context.Context, c *object.Commit, s storer.EncodedObjectStorer) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	obj := s.NewEncodedObject()
	if err := c.Encode(obj); err != nil {
		return fmt.Errorf("failed to encode commit: %w", err)
	}

	h, err := s.SetEncodedObject(obj)
	if err != nil {
		return fmt.Errorf("failed to store commit: %w", err)
	}

	c.Hash = h

	return nil
}
