// Package policy defines access rules applied to every vector query.
package policy

import (
	"fmt"

	"github.com/hearthvault/recall/internal/domain/search/filter"
)

// Index field names the policies filter on.
const (
	FieldUploadedBy = "uploadedBy"
	FieldVisibility = "visibility"
)

// Visibility values stored in the index.
const (
	VisibilityShared  = "shared"
	VisibilityPrivate = "private"
)

// Policy produces the access filter for a requesting user. The returned
// expression is combined with the caller's own filters and is never
// reported back in responses.
type Policy interface {
	FilterFor(userID string) (filter.Expression, error)
}

// SharedOrOwner grants access to items that are shared with the archive
// or were uploaded by the requesting user.
type SharedOrOwner struct{}

// NewSharedOrOwner creates the default access policy.
func NewSharedOrOwner() *SharedOrOwner {
	return &SharedOrOwner{}
}

// FilterFor builds a should-group matching either ownership or shared visibility.
func (p *SharedOrOwner) FilterFor(userID string) (filter.Expression, error) {
	if userID == "" {
		return filter.Expression{}, fmt.Errorf("user id is required")
	}

	owner, err := filter.NewMatch(FieldUploadedBy, userID)
	if err != nil {
		return filter.Expression{}, err
	}
	shared, err := filter.NewMatch(FieldVisibility, VisibilityShared)
	if err != nil {
		return filter.Expression{}, err
	}

	return filter.NewExpression(nil, []filter.Condition{owner, shared}, nil)
}
