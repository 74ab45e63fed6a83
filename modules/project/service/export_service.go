package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/gosimple/slug"

	"dingdong-api/core/constants"
	"dingdong-api/core/errors"
	"dingdong-api/core/utils"
	"dingdong-api/modules/project/dto"
)

// ExportParticipants writes the project's reservation list as a CSV object to
// the export bucket and returns a temporary download link.
func (s *ProjectService) ExportParticipants(ctx context.Context, userID int64, projectType string, projectID int64) (*dto.ExportParticipantsResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if appErr := checkProjectType(projectType); appErr != nil {
		return nil, appErr
	}
	project, appErr := s.getOwnedProject(ctx, userID, projectID)
	if appErr != nil {
		return nil, appErr
	}

	participants, err := s.repo.GetAllParticipants(ctx, projectID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load participants", err)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	_ = writer.Write([]string{"id", "username", "reserved_date", "attendance_status"})
	for i := range participants {
		p := &participants[i]
		reserved, err := utils.FormatReservedDate(p.ExperimentDate, p.StartTime, p.EndTime)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to render reservation", err)
		}
		_ = writer.Write([]string{
			strconv.FormatInt(p.ID, 10),
			p.Username,
			reserved,
			string(p.AttendanceStatus),
		})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to build export file", err)
	}

	key := fmt.Sprintf("exports/%d/%s-participants-%s.csv",
		project.ID, slug.Make(project.Title), time.Now().Format("20060102150405"))

	if err := s.storage.Upload(ctx, key, buf.Bytes(), "text/csv"); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to upload export file", err)
	}

	url, err := s.storage.PresignGet(ctx, key, constants.ExportURLTTL)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to presign export file", err)
	}
	return &dto.ExportParticipantsResponse{URL: url}, nil
}
