package services

import (
	"errors"
)

// ErrNotFound covers both content that does not exist and mutation
// attempts by non-authors. Conflating the two keeps a non-owner from
// learning whether the content exists at all.
var ErrNotFound = errors.New("not found")

// Owned is content attributable to a single author.
type Owned interface {
	OwnerID() uint
}

// AuthorizeOwner permits mutation only by the content's author.
func AuthorizeOwner(requesterID uint, content Owned) error {
	if content.OwnerID() != requesterID {
		return ErrNotFound
	}
	return nil
}
