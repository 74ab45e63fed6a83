package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"dingdong-api/core/entity"
)

type ProjectType string

const (
	ProjectTypeExperiment ProjectType = "experiment"
	ProjectTypeSurvey     ProjectType = "survey"
)

type ExperimentType string

const (
	ExperimentTypeOnline  ExperimentType = "online"
	ExperimentTypeOffline ExperimentType = "offline"
)

// ExcludedDates is a set of ISO dates stored as a JSONB array.
type ExcludedDates []string

func (d ExcludedDates) Value() (driver.Value, error) {
	if d == nil {
		d = ExcludedDates{}
	}
	return json.Marshal(d)
}

func (d *ExcludedDates) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	case nil:
		*d = ExcludedDates{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into ExcludedDates", src)
	}
}

func (d ExcludedDates) Contains(date string) bool {
	for _, excluded := range d {
		if excluded == date {
			return true
		}
	}
	return false
}

// ExperimentProject is a scheduled experiment inside a workspace.
type ExperimentProject struct {
	ID              int64          `db:"id" json:"id"`
	WorkspaceID     int64          `db:"workspace_id" json:"workspace_id"`
	Title           string         `db:"title" json:"title"`
	Description     string         `db:"description" json:"description"`
	ProjectType     ProjectType    `db:"project_type" json:"project_type"`
	IsPublic        bool           `db:"is_public" json:"is_public"`
	StartDate       *time.Time     `db:"start_date" json:"start_date"`
	EndDate         *time.Time     `db:"end_date" json:"end_date"`
	ExcludedDates   ExcludedDates  `db:"excluded_dates" json:"excluded_dates"`
	MaxParticipants int            `db:"max_participants" json:"max_participants"`
	ExperimentType  ExperimentType `db:"experiment_type" json:"experiment_type"`
	Location        string         `db:"location" json:"location"`
	ParticipantCode string         `db:"participant_code" json:"participant_code"`
	IsDeleted       bool           `db:"is_deleted" json:"-"`
	entity.BaseEntity

	// populated by the list query
	JoinedParticipants int `db:"joined_participants" json:"joined_participants"`
}
