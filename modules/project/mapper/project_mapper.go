package mapper

import (
	"time"

	"dingdong-api/core/utils"
	"dingdong-api/modules/project/dto"
	"dingdong-api/modules/project/entity"
)

const dateLayout = "2006-01-02"

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(dateLayout)
	return &formatted
}

func ToProjectListItemResponse(project *entity.ExperimentProject) *dto.ProjectListItemResponse {
	return &dto.ProjectListItemResponse{
		ID:                 project.ID,
		WorkspaceID:        project.WorkspaceID,
		Title:              project.Title,
		Description:        project.Description,
		IsPublic:           project.IsPublic,
		JoinedParticipants: project.JoinedParticipants,
		MaxParticipants:    project.MaxParticipants,
		CreatedAt:          project.CreatedAt,
		UpdatedAt:          project.UpdatedAt,
	}
}

func ToProjectListResponse(projects []entity.ExperimentProject) []dto.ProjectListItemResponse {
	responses := make([]dto.ProjectListItemResponse, 0, len(projects))
	for i := range projects {
		responses = append(responses, *ToProjectListItemResponse(&projects[i]))
	}
	return responses
}

func ToTimeslotResponse(slot *entity.ExperimentTimeslot) *dto.TimeslotResponse {
	return &dto.TimeslotResponse{
		ID:              slot.ID,
		StartTime:       slot.StartTime,
		EndTime:         slot.EndTime,
		MaxParticipants: slot.MaxParticipants,
	}
}

func ToProjectResponse(project *entity.ExperimentProject, slots []entity.ExperimentTimeslot) *dto.ProjectResponse {
	timeslots := make([]dto.TimeslotResponse, 0, len(slots))
	for i := range slots {
		timeslots = append(timeslots, *ToTimeslotResponse(&slots[i]))
	}

	excluded := project.ExcludedDates
	if excluded == nil {
		excluded = entity.ExcludedDates{}
	}

	return &dto.ProjectResponse{
		ID:              project.ID,
		WorkspaceID:     project.WorkspaceID,
		Title:           project.Title,
		Description:     project.Description,
		IsPublic:        project.IsPublic,
		StartDate:       formatDate(project.StartDate),
		EndDate:         formatDate(project.EndDate),
		ExcludedDates:   excluded,
		Timeslots:       timeslots,
		MaxParticipants: project.MaxParticipants,
		ExperimentType:  string(project.ExperimentType),
		Location:        project.Location,
		ParticipantCode: project.ParticipantCode,
		CreatedAt:       project.CreatedAt,
		UpdatedAt:       project.UpdatedAt,
	}
}

// ToParticipantResponse renders the reservation with its derived
// reserved_date string ("2006-01-02 10:00AM ~ 11:00AM").
func ToParticipantResponse(p *entity.ExperimentParticipant) (*dto.ParticipantResponse, error) {
	reserved, err := utils.FormatReservedDate(p.ExperimentDate, p.StartTime, p.EndTime)
	if err != nil {
		return nil, err
	}

	return &dto.ParticipantResponse{
		ID:               p.ID,
		Username:         p.Username,
		ReservedDate:     reserved,
		AttendanceStatus: string(p.AttendanceStatus),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}, nil
}

func ToParticipantResponseList(participants []entity.ExperimentParticipant) ([]dto.ParticipantResponse, error) {
	responses := make([]dto.ParticipantResponse, 0, len(participants))
	for i := range participants {
		response, err := ToParticipantResponse(&participants[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, *response)
	}
	return responses, nil
}
