package dto

import "time"

type CreateProjectRequest struct {
	Title string `json:"title"`
}

type CreateProjectResponse struct {
	ID int64 `json:"id"`
}

type TimeslotRequest struct {
	ID              *int64 `json:"id"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	MaxParticipants int    `json:"max_participants"`
}

// UpdateProjectRequest carries partial updates; nil fields are untouched.
// Timeslot entries without an id are created; entries with an id must resolve
// to an existing timeslot of the project.
type UpdateProjectRequest struct {
	Title           *string           `json:"title"`
	Description     *string           `json:"description"`
	IsPublic        *bool             `json:"is_public"`
	StartDate       *string           `json:"start_date"`
	EndDate         *string           `json:"end_date"`
	ExcludedDates   *[]string         `json:"excluded_dates"`
	MaxParticipants *int              `json:"max_participants"`
	ExperimentType  *string           `json:"experiment_type"`
	Location        *string           `json:"location"`
	Timeslots       []TimeslotRequest `json:"experiment_timeslots"`
}

type TimeslotResponse struct {
	ID              int64  `json:"id"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	MaxParticipants int    `json:"max_participants"`
}

type ProjectListItemResponse struct {
	ID                 int64     `json:"id"`
	WorkspaceID        int64     `json:"workspace_id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	IsPublic           bool      `json:"is_public"`
	JoinedParticipants int       `json:"joined_participants"`
	MaxParticipants    int       `json:"max_participants"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type ProjectResponse struct {
	ID              int64              `json:"id"`
	WorkspaceID     int64              `json:"workspace_id"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	IsPublic        bool               `json:"is_public"`
	StartDate       *string            `json:"start_date"`
	EndDate         *string            `json:"end_date"`
	ExcludedDates   []string           `json:"excluded_dates"`
	Timeslots       []TimeslotResponse `json:"experiment_timeslots"`
	MaxParticipants int                `json:"max_participants"`
	ExperimentType  string             `json:"experiment_type"`
	Location        string             `json:"location"`
	ParticipantCode string             `json:"participant_code"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

type ParticipantResponse struct {
	ID               int64     `json:"id"`
	Username         string    `json:"username"`
	ReservedDate     string    `json:"reserved_date"`
	AttendanceStatus string    `json:"attendance_status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type UpdateAttendanceRequest struct {
	AttendanceStatus string `json:"attendance_status"`
}

type JoinProjectRequest struct {
	ParticipantCode string `json:"participant_code"`
	TimeslotID      int64  `json:"timeslot_id"`
	ExperimentDate  string `json:"experiment_date"`
}

type ExportParticipantsResponse struct {
	URL string `json:"url"`
}
