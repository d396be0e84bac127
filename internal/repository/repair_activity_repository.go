package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/repair-service/internal/domain"
)

// RepairActivityRepository stores the append-only audit trail. There are
// deliberately no update or delete methods.
type RepairActivityRepository interface {
	Create(ctx context.Context, activity *domain.RepairActivity) error
	ListByRepair(ctx context.Context, workspaceID, repairID string) ([]domain.RepairActivity, error)
}

type repairActivityRepository struct {
	pool *pgxpool.Pool
}

// NewRepairActivityRepository builds repository.
func NewRepairActivityRepository(pool *pgxpool.Pool) RepairActivityRepository {
	return &repairActivityRepository{pool: pool}
}

func (r *repairActivityRepository) Create(ctx context.Context, activity *domain.RepairActivity) error {
	const query = `
        INSERT INTO repair_activity (repair_id, workspace_id, actor_user_id, type, from_status, to_status, note, metadata)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		activity.RepairID,
		activity.WorkspaceID,
		activity.ActorUserID,
		activity.Type,
		activity.FromStatus,
		activity.ToStatus,
		activity.Note,
		activity.Metadata,
	).Scan(&activity.ID, &activity.CreatedAt)
}

// ListByRepair returns audit entries newest first.
func (r *repairActivityRepository) ListByRepair(ctx context.Context, workspaceID, repairID string) ([]domain.RepairActivity, error) {
	const query = `
        SELECT id, repair_id, workspace_id, actor_user_id, type, from_status, to_status, note, metadata, created_at
        FROM repair_activity WHERE workspace_id=$1 AND repair_id=$2 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, workspaceID, repairID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.RepairActivity
	for rows.Next() {
		var activity domain.RepairActivity
		if err := rows.Scan(
			&activity.ID,
			&activity.RepairID,
			&activity.WorkspaceID,
			&activity.ActorUserID,
			&activity.Type,
			&activity.FromStatus,
			&activity.ToStatus,
			&activity.Note,
			&activity.Metadata,
			&activity.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, activity)
	}
	return result, rows.Err()
}
