package service

import (
	"context"

	"dingdong-api/core/constants"
	"dingdong-api/core/database"
	"dingdong-api/core/errors"
	"dingdong-api/core/params"
	"dingdong-api/modules/project/dto"
	"dingdong-api/modules/project/entity"
	"dingdong-api/modules/project/mapper"
)

func (s *ProjectService) GetParticipants(ctx context.Context, userID int64, projectType string, projectID int64, qp params.QueryParams) ([]dto.ParticipantResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if appErr := checkProjectType(projectType); appErr != nil {
		return nil, appErr
	}
	if _, appErr := s.getOwnedProject(ctx, userID, projectID); appErr != nil {
		return nil, appErr
	}

	participants, _, err := s.repo.GetParticipants(ctx, projectID, qp.PageSize, qp.Offset())
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list participants", err)
	}

	responses, err := mapper.ToParticipantResponseList(participants)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to render participants", err)
	}
	return responses, nil
}

// getProjectParticipant loads the participant and verifies its timeslot
// belongs to the stated project. Participant ids are global, so a valid id
// under the wrong project is an access violation, not a not-found.
func (s *ProjectService) getProjectParticipant(ctx context.Context, projectID int64, participantID int64) (*entity.ExperimentParticipant, *errors.AppError) {
	participant, err := s.repo.GetParticipantByID(ctx, participantID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load participant", err)
	}
	if participant == nil {
		return nil, errors.NewAppError(errors.ErrParticipantNotFound, "Participant not found", nil)
	}
	if participant.ExperimentProjectID != projectID {
		return nil, errors.NewAppError(errors.ErrParticipantAccessDenied, "Participant belongs to another project", nil)
	}
	return participant, nil
}

func (s *ProjectService) UpdateAttendance(ctx context.Context, userID int64, projectType string, projectID int64, participantID int64, status string) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if appErr := checkProjectType(projectType); appErr != nil {
		return appErr
	}

	attendance := entity.AttendanceStatus(status)
	if !attendance.Valid() {
		return errors.NewAppError(errors.ErrInvalidInput, "Unknown attendance status", nil)
	}

	if _, appErr := s.getOwnedProject(ctx, userID, projectID); appErr != nil {
		return appErr
	}
	if _, appErr := s.getProjectParticipant(ctx, projectID, participantID); appErr != nil {
		return appErr
	}

	if err := s.repo.UpdateAttendance(ctx, participantID, attendance); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to update attendance", err)
	}
	return nil
}

func (s *ProjectService) DeleteParticipant(ctx context.Context, userID int64, projectType string, projectID int64, participantID int64) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if appErr := checkProjectType(projectType); appErr != nil {
		return appErr
	}
	if _, appErr := s.getOwnedProject(ctx, userID, projectID); appErr != nil {
		return appErr
	}
	if _, appErr := s.getProjectParticipant(ctx, projectID, participantID); appErr != nil {
		return appErr
	}

	if err := s.repo.SoftDeleteParticipant(ctx, participantID); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to delete participant", err)
	}
	return nil
}

// JoinProject reserves a spot in a timeslot for the calling user. The project
// is located by its participant code; the date must fall inside the project
// window and outside its excluded dates; the timeslot must have remaining
// capacity.
func (s *ProjectService) JoinProject(ctx context.Context, userID int64, req *dto.JoinProjectRequest) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	project, err := s.repo.GetProjectByCode(ctx, req.ParticipantCode)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to load project", err)
	}
	if project == nil {
		return errors.NewAppError(errors.ErrProjectNotFound, "No project matches the given code", nil)
	}

	date, appErr := parseDate(req.ExperimentDate)
	if appErr != nil {
		return appErr
	}
	if project.StartDate != nil && date.Before(*project.StartDate) {
		return errors.NewAppError(errors.ErrInvalidInput, "Date is before the experiment starts", nil)
	}
	if project.EndDate != nil && date.After(*project.EndDate) {
		return errors.NewAppError(errors.ErrInvalidInput, "Date is after the experiment ends", nil)
	}
	if project.ExcludedDates.Contains(req.ExperimentDate) {
		return errors.NewAppError(errors.ErrInvalidInput, "Date is excluded from the experiment", nil)
	}

	slot, err := s.repo.GetTimeslot(ctx, project.ID, req.TimeslotID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to load timeslot", err)
	}
	if slot == nil {
		return errors.NewAppError(errors.ErrTimeslotNotFound, "Timeslot not found", nil)
	}

	count, err := s.repo.CountTimeslotParticipants(ctx, slot.ID, req.ExperimentDate)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to count participants", err)
	}
	if slot.MaxParticipants > 0 && count >= slot.MaxParticipants {
		return errors.NewAppError(errors.ErrTimeslotFull, "Timeslot is full", nil)
	}

	if err := s.repo.CreateParticipant(ctx, userID, slot.ID, req.ExperimentDate); err != nil {
		if database.IsUniqueViolation(err) {
			return errors.NewAppError(errors.ErrParticipantAlreadyJoined, "Already joined this timeslot", err)
		}
		return errors.NewAppError(errors.ErrInternalServer, "Failed to join project", err)
	}
	return nil
}
