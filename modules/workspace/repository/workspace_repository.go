package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"dingdong-api/core/constants"
	"dingdong-api/core/database"
	"dingdong-api/core/logger"
	"dingdong-api/modules/workspace/entity"
)

// Sentinel errors for preconditions rejected under the row locks. The service
// maps them to its error taxonomy.
var (
	ErrWorkspaceLimit  = errors.New("workspace limit reached")
	ErrOrderOutOfRange = errors.New("order_no out of range")
)

// WorkspaceRepository handles workspace database operations
type WorkspaceRepository struct {
	DB database.Database
}

// NewWorkspaceRepository creates a new repository instance
func NewWorkspaceRepository(db database.Database) *WorkspaceRepository {
	return &WorkspaceRepository{DB: db}
}

// WorkspaceRepositoryInterface defines the repository contract. Every mutation
// runs as one transaction that locks the owner's active set before reading it,
// so counts and positions cannot go stale between the read and the write.
type WorkspaceRepositoryInterface interface {
	GetByUserID(ctx context.Context, userID int64) ([]entity.Workspace, error)
	GetByID(ctx context.Context, id int64) (*entity.Workspace, error)
	Create(ctx context.Context, userID int64, title string) (*entity.Workspace, error)
	Update(ctx context.Context, userID int64, workspaceID int64, title *string, orderNo *int) (*entity.Workspace, error)
	SoftDelete(ctx context.Context, userID int64, workspaceID int64) error
}

const workspaceColumns = `id, user_id, title, order_no, is_deleted, created_at, updated_at`

type orderRow struct {
	ID      int64 `db:"id"`
	OrderNo int   `db:"order_no"`
}

// lockOwnedSet takes FOR UPDATE row locks on the owner's non-deleted
// workspaces and returns their (id, order_no) pairs in position order.
func lockOwnedSet(ctx context.Context, tx *sqlx.Tx, userID int64) ([]orderRow, error) {
	query := `
		SELECT id, order_no FROM workspace
		WHERE user_id = $1 AND NOT is_deleted
		ORDER BY order_no
		FOR UPDATE
	`
	var rows []orderRow
	err := tx.SelectContext(ctx, &rows, query, userID)
	return rows, err
}

func (r *WorkspaceRepository) GetByUserID(ctx context.Context, userID int64) ([]entity.Workspace, error) {
	query := `
		SELECT ` + workspaceColumns + `
		FROM workspace
		WHERE user_id = $1 AND NOT is_deleted
		ORDER BY order_no
	`

	var workspaces []entity.Workspace
	if err := r.DB.SelectContext(ctx, &workspaces, query, userID); err != nil {
		logger.Error("WorkspaceRepository:GetByUserID", err)
		return nil, err
	}
	return workspaces, nil
}

func (r *WorkspaceRepository) GetByID(ctx context.Context, id int64) (*entity.Workspace, error) {
	query := `SELECT ` + workspaceColumns + ` FROM workspace WHERE id = $1 AND NOT is_deleted`

	var workspace entity.Workspace
	err := r.DB.GetContext(ctx, &workspace, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("WorkspaceRepository:GetByID", err)
		return nil, err
	}
	return &workspace, nil
}

// Create appends the workspace to the end of the owner's ordering. The count
// for the cap check and the assigned order_no come from the same locked read.
func (r *WorkspaceRepository) Create(ctx context.Context, userID int64, title string) (*entity.Workspace, error) {
	var created entity.Workspace
	err := r.DB.WithinTx(ctx, func(tx *sqlx.Tx) error {
		rows, err := lockOwnedSet(ctx, tx, userID)
		if err != nil {
			return err
		}
		if len(rows) >= constants.MaxWorkspacesPerUser {
			return ErrWorkspaceLimit
		}

		query := `
			INSERT INTO workspace (user_id, title, order_no)
			VALUES ($1, $2, $3)
			RETURNING ` + workspaceColumns
		return tx.GetContext(ctx, &created, query, userID, title, len(rows)+1)
	})
	if err != nil {
		if err != ErrWorkspaceLimit {
			logger.Error("WorkspaceRepository:Create", err)
		}
		return nil, err
	}
	return &created, nil
}

// Update applies a title change and/or a move in one transaction. The target's
// current position, the bounds check and the sibling shift all derive from the
// locked read, and nothing is written until every precondition has passed.
// Returns sql.ErrNoRows when the workspace is not in the owner's active set
// and ErrOrderOutOfRange when orderNo falls outside [1, count].
func (r *WorkspaceRepository) Update(ctx context.Context, userID int64, workspaceID int64, title *string, orderNo *int) (*entity.Workspace, error) {
	var updated entity.Workspace
	err := r.DB.WithinTx(ctx, func(tx *sqlx.Tx) error {
		rows, err := lockOwnedSet(ctx, tx, userID)
		if err != nil {
			return err
		}

		current := 0
		for _, row := range rows {
			if row.ID == workspaceID {
				current = row.OrderNo
			}
		}
		if current == 0 {
			return sql.ErrNoRows
		}
		if orderNo != nil && (*orderNo < 1 || *orderNo > len(rows)) {
			return ErrOrderOutOfRange
		}

		if orderNo != nil && *orderNo != current {
			lo, hi, delta := shiftBounds(current, *orderNo)
			shiftQuery := `
				UPDATE workspace
				SET order_no = order_no + $4, updated_at = NOW()
				WHERE user_id = $1 AND NOT is_deleted
				  AND id <> $5
				  AND order_no BETWEEN $2 AND $3
			`
			if _, err := tx.ExecContext(ctx, shiftQuery, userID, lo, hi, delta, workspaceID); err != nil {
				return err
			}

			moveQuery := `UPDATE workspace SET order_no = $2, updated_at = NOW() WHERE id = $1`
			if _, err := tx.ExecContext(ctx, moveQuery, workspaceID, *orderNo); err != nil {
				return err
			}
		}

		if title != nil {
			titleQuery := `UPDATE workspace SET title = $2, updated_at = NOW() WHERE id = $1`
			if _, err := tx.ExecContext(ctx, titleQuery, workspaceID, *title); err != nil {
				return err
			}
		}

		readQuery := `SELECT ` + workspaceColumns + ` FROM workspace WHERE id = $1`
		return tx.GetContext(ctx, &updated, readQuery, workspaceID)
	})
	if err != nil {
		if err != sql.ErrNoRows && err != ErrOrderOutOfRange {
			logger.Error("WorkspaceRepository:Update", err)
		}
		return nil, err
	}
	return &updated, nil
}

// SoftDelete marks the workspace deleted and closes the gap its order_no
// leaves behind, both against the locked set.
func (r *WorkspaceRepository) SoftDelete(ctx context.Context, userID int64, workspaceID int64) error {
	err := r.DB.WithinTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := lockOwnedSet(ctx, tx, userID); err != nil {
			return err
		}

		var orderNo int
		deleteQuery := `
			UPDATE workspace SET is_deleted = TRUE, updated_at = NOW()
			WHERE id = $1 AND user_id = $2 AND NOT is_deleted
			RETURNING order_no
		`
		if err := tx.GetContext(ctx, &orderNo, deleteQuery, workspaceID, userID); err != nil {
			return err
		}

		compactQuery := `
			UPDATE workspace
			SET order_no = order_no - 1, updated_at = NOW()
			WHERE user_id = $1 AND NOT is_deleted AND order_no > $2
		`
		_, err := tx.ExecContext(ctx, compactQuery, userID, orderNo)
		return err
	})
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Error("WorkspaceRepository:SoftDelete", err)
		}
		return err
	}
	return nil
}

// shiftBounds computes the sibling range that moves when a workspace goes from
// oldNo to newNo. Moving up shifts [newNo, oldNo-1] down by one position
// (order_no + 1); moving down shifts [oldNo+1, newNo] up by one (order_no - 1).
func shiftBounds(oldNo int, newNo int) (lo int, hi int, delta int) {
	if newNo < oldNo {
		return newNo, oldNo - 1, 1
	}
	return oldNo + 1, newNo, -1
}
