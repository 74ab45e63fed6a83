package entity

import "dingdong-api/core/entity"

// ExperimentTimeslot is a capacity-limited daily time window of a project.
// Start and end times are clock values ("10:00:00"), not timestamps.
type ExperimentTimeslot struct {
	ID                  int64  `db:"id" json:"id"`
	ExperimentProjectID int64  `db:"experiment_project_id" json:"experiment_project_id"`
	StartTime           string `db:"start_time" json:"start_time"`
	EndTime             string `db:"end_time" json:"end_time"`
	MaxParticipants     int    `db:"max_participants" json:"max_participants"`
	IsDeleted           bool   `db:"is_deleted" json:"-"`
	entity.BaseEntity
}
