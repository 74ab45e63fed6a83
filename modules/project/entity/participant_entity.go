package entity

import (
	"time"

	"dingdong-api/core/entity"
)

type AttendanceStatus string

const (
	AttendanceScheduled   AttendanceStatus = "scheduled"
	AttendanceAttended    AttendanceStatus = "attended"
	AttendanceNotAttended AttendanceStatus = "not_attended"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceScheduled, AttendanceAttended, AttendanceNotAttended:
		return true
	}
	return false
}

// ExperimentParticipant is one user's reservation in one timeslot on one date,
// joined with the user and timeslot rows it references.
type ExperimentParticipant struct {
	ID                   int64            `db:"id" json:"id"`
	UserID               int64            `db:"user_id" json:"user_id"`
	Username             string           `db:"username" json:"username"`
	ExperimentTimeslotID int64            `db:"experiment_timeslot_id" json:"experiment_timeslot_id"`
	ExperimentProjectID  int64            `db:"experiment_project_id" json:"experiment_project_id"`
	StartTime            string           `db:"start_time" json:"start_time"`
	EndTime              string           `db:"end_time" json:"end_time"`
	ExperimentDate       time.Time        `db:"experiment_date" json:"experiment_date"`
	AttendanceStatus     AttendanceStatus `db:"attendance_status" json:"attendance_status"`
	entity.BaseEntity
}
