// Package groups persists audit selections as named, access-controlled
// static group records.
package groups

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/registrar-tools/tally/pkg/query"
)

// GroupTypeStatic is the only group type this pipeline creates: membership
// is fixed at creation and never recomputed.
const GroupTypeStatic = "Static"

// roleSeparator joins role lists in their persisted columns.
const roleSeparator = ","

// Group is a persisted selection group.
type Group struct {
	ID           uuid.UUID
	Name         string
	Description  string
	UserID       string
	UserName     string
	GroupType    string
	Module       string
	Members      string
	EditRoles    []string
	DisplayRoles []string
	DeleteRoles  []string
	CreatedAt    time.Time
}

// CreateCommand carries everything needed to persist a group. It is a
// plain value computed fully before execution, so a caller can hold it for
// dry-run inspection or inject its own deduplication before committing:
// execution itself is never idempotent and always creates a new group.
type CreateCommand struct {
	Name         string
	Description  string
	UserID       string
	UserName     string
	Module       string
	MemberIDs    []int64
	EditRoles    []string
	DisplayRoles []string
	DeleteRoles  []string
}

// Membership returns the bar-joined member identifier string stored on the
// group record.
func (c CreateCommand) Membership() string {
	return query.JoinInt64(c.MemberIDs, "|")
}

func joinRoles(roles []string) string {
	return strings.Join(roles, roleSeparator)
}

func splitRoles(joined string) []string {
	if joined == "" {
		return []string{}
	}
	return strings.Split(joined, roleSeparator)
}
