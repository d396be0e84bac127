package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/repair-service/internal/domain"
)

// RepairFilter captures listing parameters. Every lookup is scoped by
// workspace id so cross-tenant access is structurally impossible.
type RepairFilter struct {
	WorkspaceID string
	Status      *domain.RepairStatus
}

// RepairRepository encapsulates repair persistence.
type RepairRepository interface {
	Create(ctx context.Context, repair *domain.Repair) error
	GetByID(ctx context.Context, workspaceID, id string) (*domain.Repair, error)
	ListWithFilter(ctx context.Context, filter RepairFilter) ([]domain.Repair, error)
	// Complete performs the single legal transition in_progress -> completed
	// as a conditional update, appending the status_changed activity in the
	// same transaction. It reports false without touching anything when the
	// repair is already completed, so concurrent completions converge on
	// exactly one transition and one audit entry.
	Complete(ctx context.Context, workspaceID, id string, actorUserID *string) (*domain.Repair, bool, error)
}

type repairRepository struct {
	pool *pgxpool.Pool
}

// NewRepairRepository instantiates repository.
func NewRepairRepository(pool *pgxpool.Pool) RepairRepository {
	return &repairRepository{pool: pool}
}

const repairColumns = `id, workspace_id, created_by_user_id, assigned_to_user_id, status,
               customer_name, customer_telephone_number, item_type, item_brand, item_model, item_serial_number,
               issue_description, received_at, completed_at, created_at, updated_at`

func (r *repairRepository) Create(ctx context.Context, repair *domain.Repair) error {
	const query = `
        INSERT INTO repairs (workspace_id, created_by_user_id, assigned_to_user_id, status,
            customer_name, customer_telephone_number, item_type, item_brand, item_model, item_serial_number,
            issue_description, received_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING id, received_at, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		repair.WorkspaceID,
		repair.CreatedByUserID,
		repair.AssignedToUserID,
		repair.Status,
		repair.Customer.Name,
		repair.Customer.TelephoneNumber,
		repair.Item.Type,
		repair.Item.Brand,
		repair.Item.Model,
		repair.Item.SerialNumber,
		repair.IssueDescription,
		repair.ReceivedAt,
	).Scan(&repair.ID, &repair.ReceivedAt, &repair.CreatedAt, &repair.UpdatedAt)
}

func (r *repairRepository) GetByID(ctx context.Context, workspaceID, id string) (*domain.Repair, error) {
	const query = `SELECT ` + repairColumns + ` FROM repairs WHERE workspace_id=$1 AND id=$2`
	var repair domain.Repair
	if err := scanRepair(r.pool.QueryRow(ctx, query, workspaceID, id), &repair); err != nil {
		return nil, err
	}
	return &repair, nil
}

func (r *repairRepository) ListWithFilter(ctx context.Context, filter RepairFilter) ([]domain.Repair, error) {
	query := `SELECT ` + repairColumns + ` FROM repairs WHERE workspace_id=$1`
	args := []any{filter.WorkspaceID}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += ` AND status=$2`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Repair
	for rows.Next() {
		var repair domain.Repair
		if err := scanRepair(rows, &repair); err != nil {
			return nil, err
		}
		result = append(result, repair)
	}
	return result, rows.Err()
}

func (r *repairRepository) Complete(ctx context.Context, workspaceID, id string, actorUserID *string) (*domain.Repair, bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const update = `
        UPDATE repairs SET status=$1, completed_at=NOW(), updated_at=NOW()
        WHERE workspace_id=$2 AND id=$3 AND status=$4
        RETURNING ` + repairColumns
	var repair domain.Repair
	err = scanRepair(tx.QueryRow(ctx, update,
		domain.RepairStatusCompleted, workspaceID, id, domain.RepairStatusInProgress,
	), &repair)
	if err == pgx.ErrNoRows {
		// Either absent or already completed; report the current row untouched.
		current, getErr := r.GetByID(ctx, workspaceID, id)
		if getErr != nil {
			return nil, false, getErr
		}
		return current, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	const insert = `
        INSERT INTO repair_activity (repair_id, workspace_id, actor_user_id, type, from_status, to_status)
        VALUES ($1,$2,$3,$4,$5,$6)`
	if _, err := tx.Exec(ctx, insert,
		repair.ID,
		repair.WorkspaceID,
		actorUserID,
		domain.ActivityStatusChanged,
		domain.RepairStatusInProgress,
		domain.RepairStatusCompleted,
	); err != nil {
		return nil, false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, err
	}
	return &repair, true, nil
}

func scanRepair(row pgx.Row, repair *domain.Repair) error {
	return row.Scan(
		&repair.ID,
		&repair.WorkspaceID,
		&repair.CreatedByUserID,
		&repair.AssignedToUserID,
		&repair.Status,
		&repair.Customer.Name,
		&repair.Customer.TelephoneNumber,
		&repair.Item.Type,
		&repair.Item.Brand,
		&repair.Item.Model,
		&repair.Item.SerialNumber,
		&repair.IssueDescription,
		&repair.ReceivedAt,
		&repair.CompletedAt,
		&repair.CreatedAt,
		&repair.UpdatedAt,
	)
}
