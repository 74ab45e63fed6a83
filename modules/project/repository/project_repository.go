package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"dingdong-api/core/database"
	"dingdong-api/core/logger"
	"dingdong-api/modules/project/entity"
)

// ProjectRepository handles experiment project database operations
type ProjectRepository struct {
	DB database.Database
}

// NewProjectRepository creates a new repository instance
func NewProjectRepository(db database.Database) *ProjectRepository {
	return &ProjectRepository{DB: db}
}

// ProjectRepositoryInterface defines the repository contract
type ProjectRepositoryInterface interface {
	GetProjects(ctx context.Context, workspaceID int64, search string, limit int, offset int) ([]entity.ExperimentProject, int, error)
	GetProjectByID(ctx context.Context, id int64) (*entity.ExperimentProject, error)
	GetProjectByCode(ctx context.Context, code string) (*entity.ExperimentProject, error)
	CreateProject(ctx context.Context, workspaceID int64, title string, participantCode string) (*entity.ExperimentProject, error)
	UpdateProject(ctx context.Context, project *entity.ExperimentProject, slots []TimeslotPatch) error
	SoftDeleteProject(ctx context.Context, id int64) error

	GetTimeslots(ctx context.Context, projectID int64) ([]entity.ExperimentTimeslot, error)
	GetTimeslot(ctx context.Context, projectID int64, timeslotID int64) (*entity.ExperimentTimeslot, error)

	GetParticipants(ctx context.Context, projectID int64, limit int, offset int) ([]entity.ExperimentParticipant, int, error)
	GetAllParticipants(ctx context.Context, projectID int64) ([]entity.ExperimentParticipant, error)
	GetParticipantByID(ctx context.Context, participantID int64) (*entity.ExperimentParticipant, error)
	CountTimeslotParticipants(ctx context.Context, timeslotID int64, experimentDate string) (int, error)
	CreateParticipant(ctx context.Context, userID int64, timeslotID int64, experimentDate string) error
	UpdateAttendance(ctx context.Context, participantID int64, status entity.AttendanceStatus) error
	SoftDeleteParticipant(ctx context.Context, participantID int64) error
}

const projectColumns = `id, workspace_id, title, description, project_type, is_public, start_date, end_date,
	excluded_dates, max_participants, experiment_type, location, participant_code, is_deleted, created_at, updated_at`

func (r *ProjectRepository) GetProjects(ctx context.Context, workspaceID int64, search string, limit int, offset int) ([]entity.ExperimentProject, int, error) {
	query := `
		SELECT p.id, p.workspace_id, p.title, p.description, p.project_type, p.is_public,
		       p.start_date, p.end_date, p.excluded_dates, p.max_participants,
		       p.experiment_type, p.location, p.participant_code, p.is_deleted,
		       p.created_at, p.updated_at,
		       COALESCE(j.joined, 0) AS joined_participants
		FROM experiment_project p
		LEFT JOIN (
			SELECT t.experiment_project_id, COUNT(*) AS joined
			FROM experiment_timeslot t
			JOIN experiment_participant_timeslot pt
			  ON pt.experiment_timeslot_id = t.id AND NOT pt.is_deleted
			WHERE NOT t.is_deleted
			GROUP BY t.experiment_project_id
		) j ON j.experiment_project_id = p.id
		WHERE p.workspace_id = $1 AND NOT p.is_deleted
		  AND ($2 = '' OR p.title ILIKE '%' || $2 || '%')
		ORDER BY p.created_at DESC
		LIMIT $3 OFFSET $4
	`

	var projects []entity.ExperimentProject
	if err := r.DB.SelectContext(ctx, &projects, query, workspaceID, search, limit, offset); err != nil {
		logger.Error("ProjectRepository:GetProjects", err)
		return nil, 0, err
	}

	var total int
	countQuery := `
		SELECT COUNT(*) FROM experiment_project
		WHERE workspace_id = $1 AND NOT is_deleted
		  AND ($2 = '' OR title ILIKE '%' || $2 || '%')
	`
	if err := r.DB.GetContext(ctx, &total, countQuery, workspaceID, search); err != nil {
		logger.Error("ProjectRepository:GetProjects", err)
		return nil, 0, err
	}

	return projects, total, nil
}

func (r *ProjectRepository) GetProjectByID(ctx context.Context, id int64) (*entity.ExperimentProject, error) {
	query := `SELECT ` + projectColumns + ` FROM experiment_project WHERE id = $1 AND NOT is_deleted`

	var project entity.ExperimentProject
	err := r.DB.GetContext(ctx, &project, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ProjectRepository:GetProjectByID", err)
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) GetProjectByCode(ctx context.Context, code string) (*entity.ExperimentProject, error) {
	query := `SELECT ` + projectColumns + ` FROM experiment_project WHERE participant_code = $1 AND NOT is_deleted`

	var project entity.ExperimentProject
	err := r.DB.GetContext(ctx, &project, query, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ProjectRepository:GetProjectByCode", err)
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) CreateProject(ctx context.Context, workspaceID int64, title string, participantCode string) (*entity.ExperimentProject, error) {
	query := `
		INSERT INTO experiment_project (workspace_id, title, participant_code)
		VALUES ($1, $2, $3)
		RETURNING ` + projectColumns + `
	`

	var created entity.ExperimentProject
	if err := r.DB.GetContext(ctx, &created, query, workspaceID, title, participantCode); err != nil {
		logger.Error("ProjectRepository:CreateProject", err)
		return nil, err
	}
	return &created, nil
}

// TimeslotPatch describes one timeslot change inside a project update. A nil
// ID creates the timeslot; a set ID overwrites an existing one.
type TimeslotPatch struct {
	ID              *int64
	StartTime       string
	EndTime         string
	MaxParticipants int
}

// UpdateProject writes the project row and all timeslot patches in one
// transaction, so a patch that fails midway leaves nothing behind. Returns
// sql.ErrNoRows when a patch references a timeslot that is not part of this
// project.
func (r *ProjectRepository) UpdateProject(ctx context.Context, project *entity.ExperimentProject, slots []TimeslotPatch) error {
	err := r.DB.WithinTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			UPDATE experiment_project
			SET title = :title,
			    description = :description,
			    is_public = :is_public,
			    start_date = :start_date,
			    end_date = :end_date,
			    excluded_dates = :excluded_dates,
			    max_participants = :max_participants,
			    experiment_type = :experiment_type,
			    location = :location,
			    updated_at = NOW()
			WHERE id = :id AND NOT is_deleted
		`
		if _, err := tx.NamedExecContext(ctx, query, project); err != nil {
			return err
		}

		for _, slot := range slots {
			if slot.ID == nil {
				insertQuery := `
					INSERT INTO experiment_timeslot (experiment_project_id, start_time, end_time, max_participants)
					VALUES ($1, $2, $3, $4)
				`
				if _, err := tx.ExecContext(ctx, insertQuery,
					project.ID, slot.StartTime, slot.EndTime, slot.MaxParticipants); err != nil {
					return err
				}
				continue
			}

			updateQuery := `
				UPDATE experiment_timeslot
				SET start_time = $3, end_time = $4, max_participants = $5, updated_at = NOW()
				WHERE id = $1 AND experiment_project_id = $2 AND NOT is_deleted
			`
			result, err := tx.ExecContext(ctx, updateQuery,
				*slot.ID, project.ID, slot.StartTime, slot.EndTime, slot.MaxParticipants)
			if err != nil {
				return err
			}
			affected, err := result.RowsAffected()
			if err != nil {
				return err
			}
			if affected == 0 {
				return sql.ErrNoRows
			}
		}
		return nil
	})
	if err != nil {
		if err != sql.ErrNoRows && !database.IsUniqueViolation(err) {
			logger.Error("ProjectRepository:UpdateProject", err)
		}
		return err
	}
	return nil
}

// SoftDeleteProject tombstones the project together with its timeslots and
// their reservations.
func (r *ProjectRepository) SoftDeleteProject(ctx context.Context, id int64) error {
	err := r.DB.WithinTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`UPDATE experiment_project SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1`, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			UPDATE experiment_participant_timeslot SET is_deleted = TRUE, updated_at = NOW()
			WHERE experiment_timeslot_id IN (
				SELECT id FROM experiment_timeslot WHERE experiment_project_id = $1
			)`, id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`UPDATE experiment_timeslot SET is_deleted = TRUE, updated_at = NOW() WHERE experiment_project_id = $1`, id)
		return err
	})
	if err != nil {
		logger.Error("ProjectRepository:SoftDeleteProject", err)
	}
	return err
}

func (r *ProjectRepository) GetTimeslots(ctx context.Context, projectID int64) ([]entity.ExperimentTimeslot, error) {
	query := `
		SELECT id, experiment_project_id, start_time, end_time, max_participants, is_deleted, created_at, updated_at
		FROM experiment_timeslot
		WHERE experiment_project_id = $1 AND NOT is_deleted
		ORDER BY start_time, end_time
	`

	var slots []entity.ExperimentTimeslot
	if err := r.DB.SelectContext(ctx, &slots, query, projectID); err != nil {
		logger.Error("ProjectRepository:GetTimeslots", err)
		return nil, err
	}
	return slots, nil
}

func (r *ProjectRepository) GetTimeslot(ctx context.Context, projectID int64, timeslotID int64) (*entity.ExperimentTimeslot, error) {
	query := `
		SELECT id, experiment_project_id, start_time, end_time, max_participants, is_deleted, created_at, updated_at
		FROM experiment_timeslot
		WHERE id = $1 AND experiment_project_id = $2 AND NOT is_deleted
	`

	var slot entity.ExperimentTimeslot
	err := r.DB.GetContext(ctx, &slot, query, timeslotID, projectID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ProjectRepository:GetTimeslot", err)
		return nil, err
	}
	return &slot, nil
}

const participantColumns = `
	pt.id, pt.user_id, u.username, pt.experiment_timeslot_id, t.experiment_project_id,
	t.start_time, t.end_time, pt.experiment_date, pt.attendance_status, pt.created_at, pt.updated_at`

func (r *ProjectRepository) GetParticipants(ctx context.Context, projectID int64, limit int, offset int) ([]entity.ExperimentParticipant, int, error) {
	query := `
		SELECT ` + participantColumns + `
		FROM experiment_participant_timeslot pt
		JOIN experiment_timeslot t ON t.id = pt.experiment_timeslot_id
		JOIN users u ON u.id = pt.user_id
		WHERE t.experiment_project_id = $1 AND NOT pt.is_deleted
		ORDER BY pt.experiment_date, t.start_time
		LIMIT $2 OFFSET $3
	`

	var participants []entity.ExperimentParticipant
	if err := r.DB.SelectContext(ctx, &participants, query, projectID, limit, offset); err != nil {
		logger.Error("ProjectRepository:GetParticipants", err)
		return nil, 0, err
	}

	var total int
	countQuery := `
		SELECT COUNT(*)
		FROM experiment_participant_timeslot pt
		JOIN experiment_timeslot t ON t.id = pt.experiment_timeslot_id
		WHERE t.experiment_project_id = $1 AND NOT pt.is_deleted
	`
	if err := r.DB.GetContext(ctx, &total, countQuery, projectID); err != nil {
		logger.Error("ProjectRepository:GetParticipants", err)
		return nil, 0, err
	}

	return participants, total, nil
}

func (r *ProjectRepository) GetAllParticipants(ctx context.Context, projectID int64) ([]entity.ExperimentParticipant, error) {
	query := `
		SELECT ` + participantColumns + `
		FROM experiment_participant_timeslot pt
		JOIN experiment_timeslot t ON t.id = pt.experiment_timeslot_id
		JOIN users u ON u.id = pt.user_id
		WHERE t.experiment_project_id = $1 AND NOT pt.is_deleted
		ORDER BY pt.experiment_date, t.start_time
	`

	var participants []entity.ExperimentParticipant
	if err := r.DB.SelectContext(ctx, &participants, query, projectID); err != nil {
		logger.Error("ProjectRepository:GetAllParticipants", err)
		return nil, err
	}
	return participants, nil
}

func (r *ProjectRepository) GetParticipantByID(ctx context.Context, participantID int64) (*entity.ExperimentParticipant, error) {
	query := `
		SELECT ` + participantColumns + `
		FROM experiment_participant_timeslot pt
		JOIN experiment_timeslot t ON t.id = pt.experiment_timeslot_id
		JOIN users u ON u.id = pt.user_id
		WHERE pt.id = $1 AND NOT pt.is_deleted
	`

	var participant entity.ExperimentParticipant
	err := r.DB.GetContext(ctx, &participant, query, participantID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ProjectRepository:GetParticipantByID", err)
		return nil, err
	}
	return &participant, nil
}

func (r *ProjectRepository) CountTimeslotParticipants(ctx context.Context, timeslotID int64, experimentDate string) (int, error) {
	var count int
	query := `
		SELECT COUNT(*)
		FROM experiment_participant_timeslot
		WHERE experiment_timeslot_id = $1 AND experiment_date = $2 AND NOT is_deleted
	`
	if err := r.DB.GetContext(ctx, &count, query, timeslotID, experimentDate); err != nil {
		logger.Error("ProjectRepository:CountTimeslotParticipants", err)
		return 0, err
	}
	return count, nil
}

func (r *ProjectRepository) CreateParticipant(ctx context.Context, userID int64, timeslotID int64, experimentDate string) error {
	query := `
		INSERT INTO experiment_participant_timeslot (user_id, experiment_timeslot_id, experiment_date)
		VALUES ($1, $2, $3)
	`
	if err := r.DB.ExecContext(ctx, query, userID, timeslotID, experimentDate); err != nil {
		if !database.IsUniqueViolation(err) {
			logger.Error("ProjectRepository:CreateParticipant", err)
		}
		return err
	}
	return nil
}

func (r *ProjectRepository) UpdateAttendance(ctx context.Context, participantID int64, status entity.AttendanceStatus) error {
	query := `
		UPDATE experiment_participant_timeslot
		SET attendance_status = $2, updated_at = NOW()
		WHERE id = $1 AND NOT is_deleted
	`
	if err := r.DB.ExecContext(ctx, query, participantID, status); err != nil {
		logger.Error("ProjectRepository:UpdateAttendance", err)
		return err
	}
	return nil
}

func (r *ProjectRepository) SoftDeleteParticipant(ctx context.Context, participantID int64) error {
	query := `
		UPDATE experiment_participant_timeslot
		SET is_deleted = TRUE, updated_at = NOW()
		WHERE id = $1
	`
	if err := r.DB.ExecContext(ctx, query, participantID); err != nil {
		logger.Error("ProjectRepository:SoftDeleteParticipant", err)
		return err
	}
	return nil
}
