package server

import (
	"context"

	"dingdong-api/core/database"
)

// statsSource counts live rows for the prometheus domain gauges.
type statsSource struct {
	db database.Database
}

func (s *statsSource) Stats(ctx context.Context) (users int64, workspaces int64, projects int64, reservations int64, err error) {
	counts := []struct {
		query string
		dest  *int64
	}{
		{"SELECT COUNT(*) FROM users WHERE NOT is_deleted", &users},
		{"SELECT COUNT(*) FROM workspace WHERE is_deleted = false", &workspaces},
		{"SELECT COUNT(*) FROM experiment_project WHERE is_deleted = false", &projects},
		{"SELECT COUNT(*) FROM experiment_participant_timeslot WHERE is_deleted = false", &reservations},
	}
	for _, c := range counts {
		if err = s.db.GetContext(ctx, c.dest, c.query); err != nil {
			return 0, 0, 0, 0, err
		}
	}
	return users, workspaces, projects, reservations, nil
}
