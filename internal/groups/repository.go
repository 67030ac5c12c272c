package groups

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/registrar-tools/tally/pkg/repository"
)

// System defines the group persistence contract.
type System interface {
	// Create persists exactly one new group record. It never merges with
	// or updates an existing group of the same name; re-running a
	// pipeline creates a second, independent group.
	Create(ctx context.Context, cmd CreateCommand) (*Group, error)
}

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a group repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "groups"),
	}
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Group, error) {
	if cmd.Name == "" {
		return nil, ErrEmptyName
	}

	id := uuid.New()

	q := `
		INSERT INTO record_groups(id, name, description, user_id, user_name, group_type, module, members, edit_roles, display_roles, delete_roles)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, name, description, user_id, user_name, group_type, module, members, edit_roles, display_roles, delete_roles, created_at`

	args := []any{
		id,
		cmd.Name,
		cmd.Description,
		cmd.UserID,
		cmd.UserName,
		GroupTypeStatic,
		cmd.Module,
		cmd.Membership(),
		joinRoles(cmd.EditRoles),
		joinRoles(cmd.DisplayRoles),
		joinRoles(cmd.DeleteRoles),
	}

	g, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Group, error) {
		return repository.QueryOne(ctx, tx, q, args, scanGroup)
	})
	if err != nil {
		return nil, fmt.Errorf("create group %q: %w", cmd.Name, err)
	}

	r.logger.Info(
		"group created",
		"id", g.ID,
		"name", g.Name,
		"members", len(cmd.MemberIDs),
	)
	return &g, nil
}

func scanGroup(s repository.Scanner) (Group, error) {
	var (
		g                          Group
		edit, display, deleteRoles string
	)

	if err := s.Scan(
		&g.ID,
		&g.Name,
		&g.Description,
		&g.UserID,
		&g.UserName,
		&g.GroupType,
		&g.Module,
		&g.Members,
		&edit,
		&display,
		&deleteRoles,
		&g.CreatedAt,
	); err != nil {
		return Group{}, err
	}

	g.EditRoles = splitRoles(edit)
	g.DisplayRoles = splitRoles(display)
	g.DeleteRoles = splitRoles(deleteRoles)

	return g, nil
}
