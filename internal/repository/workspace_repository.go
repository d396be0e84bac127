package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/repair-service/internal/domain"
)

// WorkspaceRepository encapsulates tenant persistence.
type WorkspaceRepository interface {
	// CreateWithOwner inserts the workspace and its owner membership as one
	// transaction; a workspace must never exist without an owner membership.
	CreateWithOwner(ctx context.Context, workspace *domain.Workspace, owner *domain.WorkspaceMember) error
	GetByID(ctx context.Context, id string) (*domain.Workspace, error)
	ListActiveForUser(ctx context.Context, userID string) ([]domain.UserWorkspace, error)
}

type workspaceRepository struct {
	pool *pgxpool.Pool
}

// NewWorkspaceRepository instantiates repository.
func NewWorkspaceRepository(pool *pgxpool.Pool) WorkspaceRepository {
	return &workspaceRepository{pool: pool}
}

func (r *workspaceRepository) CreateWithOwner(ctx context.Context, workspace *domain.Workspace, owner *domain.WorkspaceMember) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const wsQuery = `
        INSERT INTO workspaces (name, created_by_user_id, owner_user_id, status)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, wsQuery,
		workspace.Name,
		workspace.CreatedByUserID,
		workspace.OwnerUserID,
		workspace.Status,
	).Scan(&workspace.ID, &workspace.CreatedAt, &workspace.UpdatedAt); err != nil {
		return err
	}

	owner.WorkspaceID = workspace.ID
	const memberQuery = `
        INSERT INTO workspace_members (workspace_id, user_id, invited_by_user_id, role, status, joined_at)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, memberQuery,
		owner.WorkspaceID,
		owner.UserID,
		owner.InvitedByUserID,
		owner.Role,
		owner.Status,
		owner.JoinedAt,
	).Scan(&owner.ID, &owner.CreatedAt, &owner.UpdatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *workspaceRepository) GetByID(ctx context.Context, id string) (*domain.Workspace, error) {
	const query = `
        SELECT id, name, created_by_user_id, owner_user_id, status, created_at, updated_at
        FROM workspaces WHERE id=$1`

	var workspace domain.Workspace
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&workspace.ID,
		&workspace.Name,
		&workspace.CreatedByUserID,
		&workspace.OwnerUserID,
		&workspace.Status,
		&workspace.CreatedAt,
		&workspace.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &workspace, nil
}

// ListActiveForUser returns active workspaces where the user holds an active
// membership, newest first, with each membership role.
func (r *workspaceRepository) ListActiveForUser(ctx context.Context, userID string) ([]domain.UserWorkspace, error) {
	const query = `
        SELECT w.id, w.name, w.created_by_user_id, w.owner_user_id, w.status, w.created_at, w.updated_at, m.role
        FROM workspaces w
        JOIN workspace_members m ON m.workspace_id = w.id
        WHERE m.user_id=$1 AND m.status=$2 AND w.status=$3
        ORDER BY w.created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID, domain.MemberStatusActive, domain.WorkspaceStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.UserWorkspace
	for rows.Next() {
		var item domain.UserWorkspace
		if err := rows.Scan(
			&item.Workspace.ID,
			&item.Workspace.Name,
			&item.Workspace.CreatedByUserID,
			&item.Workspace.OwnerUserID,
			&item.Workspace.Status,
			&item.Workspace.CreatedAt,
			&item.Workspace.UpdatedAt,
			&item.Role,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}
