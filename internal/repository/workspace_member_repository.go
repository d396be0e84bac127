package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/repair-service/internal/domain"
)

// WorkspaceMemberRepository encapsulates membership persistence.
type WorkspaceMemberRepository interface {
	Create(ctx context.Context, member *domain.WorkspaceMember) error
	GetByWorkspaceAndUser(ctx context.Context, workspaceID, userID string) (*domain.WorkspaceMember, error)
	GetByID(ctx context.Context, workspaceID, id string) (*domain.WorkspaceMember, error)
	// Reactivate flips a removed membership back to active with the requested
	// role, keeping the original row and preserving joined_at when already set.
	Reactivate(ctx context.Context, member *domain.WorkspaceMember, role domain.WorkspaceRole, joinedAt time.Time) error
	MarkRemoved(ctx context.Context, member *domain.WorkspaceMember) error
	ListByWorkspace(ctx context.Context, workspaceID string) ([]domain.MemberDetail, error)
}

type workspaceMemberRepository struct {
	pool *pgxpool.Pool
}

// NewWorkspaceMemberRepository instantiates repository.
func NewWorkspaceMemberRepository(pool *pgxpool.Pool) WorkspaceMemberRepository {
	return &workspaceMemberRepository{pool: pool}
}

const memberColumns = `id, workspace_id, user_id, invited_by_user_id, role, status, joined_at, created_at, updated_at`

func (r *workspaceMemberRepository) Create(ctx context.Context, member *domain.WorkspaceMember) error {
	const query = `
        INSERT INTO workspace_members (workspace_id, user_id, invited_by_user_id, role, status, joined_at)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		member.WorkspaceID,
		member.UserID,
		member.InvitedByUserID,
		member.Role,
		member.Status,
		member.JoinedAt,
	).Scan(&member.ID, &member.CreatedAt, &member.UpdatedAt)
}

func (r *workspaceMemberRepository) GetByWorkspaceAndUser(ctx context.Context, workspaceID, userID string) (*domain.WorkspaceMember, error) {
	const query = `SELECT ` + memberColumns + ` FROM workspace_members WHERE workspace_id=$1 AND user_id=$2`
	return r.fetchSingle(ctx, query, workspaceID, userID)
}

func (r *workspaceMemberRepository) GetByID(ctx context.Context, workspaceID, id string) (*domain.WorkspaceMember, error) {
	const query = `SELECT ` + memberColumns + ` FROM workspace_members WHERE workspace_id=$1 AND id=$2`
	return r.fetchSingle(ctx, query, workspaceID, id)
}

func (r *workspaceMemberRepository) Reactivate(ctx context.Context, member *domain.WorkspaceMember, role domain.WorkspaceRole, joinedAt time.Time) error {
	const query = `
        UPDATE workspace_members
        SET status=$1, role=$2, joined_at=COALESCE(joined_at, $3), updated_at=NOW()
        WHERE id=$4
        RETURNING role, status, joined_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		domain.MemberStatusActive,
		role,
		joinedAt,
		member.ID,
	).Scan(&member.Role, &member.Status, &member.JoinedAt, &member.UpdatedAt)
}

func (r *workspaceMemberRepository) MarkRemoved(ctx context.Context, member *domain.WorkspaceMember) error {
	const query = `UPDATE workspace_members SET status=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, domain.MemberStatusRemoved, member.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	member.Status = domain.MemberStatusRemoved
	return nil
}

// ListByWorkspace returns non-removed memberships with user details, newest first.
func (r *workspaceMemberRepository) ListByWorkspace(ctx context.Context, workspaceID string) ([]domain.MemberDetail, error) {
	const query = `
        SELECT m.id, m.workspace_id, m.user_id, m.invited_by_user_id, m.role, m.status, m.joined_at, m.created_at, m.updated_at,
               u.id, u.email, u.telephone_number, u.first_name, u.last_name, u.role, u.status, u.created_at, u.updated_at
        FROM workspace_members m
        JOIN users u ON u.id = m.user_id
        WHERE m.workspace_id=$1 AND m.status <> $2
        ORDER BY m.created_at DESC`

	rows, err := r.pool.Query(ctx, query, workspaceID, domain.MemberStatusRemoved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.MemberDetail
	for rows.Next() {
		var detail domain.MemberDetail
		if err := rows.Scan(
			&detail.Member.ID,
			&detail.Member.WorkspaceID,
			&detail.Member.UserID,
			&detail.Member.InvitedByUserID,
			&detail.Member.Role,
			&detail.Member.Status,
			&detail.Member.JoinedAt,
			&detail.Member.CreatedAt,
			&detail.Member.UpdatedAt,
			&detail.User.ID,
			&detail.User.Email,
			&detail.User.TelephoneNumber,
			&detail.User.FirstName,
			&detail.User.LastName,
			&detail.User.Role,
			&detail.User.Status,
			&detail.User.CreatedAt,
			&detail.User.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, detail)
	}
	return result, rows.Err()
}

func (r *workspaceMemberRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.WorkspaceMember, error) {
	var member domain.WorkspaceMember
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&member.ID,
		&member.WorkspaceID,
		&member.UserID,
		&member.InvitedByUserID,
		&member.Role,
		&member.Status,
		&member.JoinedAt,
		&member.CreatedAt,
		&member.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &member, nil
}
