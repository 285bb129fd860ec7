package repository

import (
	"database/sql"
	"time"

	"github.com/connosssss/trackr/models"

	"github.com/google/uuid"
)

type SessionsRepository struct {
	db *sql.DB
}

func NewSessionsRepository(db *sql.DB) *SessionsRepository {
	return &SessionsRepository{db: db}
}

// SessionInput carries the mutable fields of a time session. Nil pointers
// mean "no value" (open session, no duration, no group), not "unchanged":
// updates replace all fields, matching the edit form.
type SessionInput struct {
	StartTime time.Time
	EndTime   *time.Time
	Duration  *int64
	Group     *string
}

func (r *SessionsRepository) CreateSession(userID int, in SessionInput) (*models.TimeSession, error) {
	id := uuid.NewString()
	_, err := r.db.Exec(`
		INSERT INTO time_session (id, user_id, start_time, end_time, duration, group_name, created_at, modified_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`, id, userID, in.StartTime, in.EndTime, in.Duration, in.Group)
	if err != nil {
		return nil, err
	}
	return r.GetSessionByID(id)
}

func (r *SessionsRepository) GetSessionByID(id string) (*models.TimeSession, error) {
	var s models.TimeSession
	var endTime sql.NullTime
	var duration sql.NullInt64
	var group sql.NullString
	err := r.db.QueryRow(`
		SELECT id, user_id, start_time, end_time, duration, group_name, created_at, modified_at
		FROM time_session
		WHERE id = $1
	`, id).Scan(&s.ID, &s.UserID, &s.StartTime, &endTime, &duration, &group, &s.CreatedAt, &s.ModifiedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if endTime.Valid {
		t := endTime.Time
		s.EndTime = &t
	}
	if duration.Valid {
		d := duration.Int64
		s.Duration = &d
	}
	if group.Valid {
		g := group.String
		s.Group = &g
	}
	return &s, nil
}

func (r *SessionsRepository) UpdateSession(id string, in SessionInput) error {
	_, err := r.db.Exec(`
		UPDATE time_session
		SET start_time = $1, end_time = $2, duration = $3, group_name = $4, modified_at = NOW()
		WHERE id = $5
	`, in.StartTime, in.EndTime, in.Duration, in.Group, id)
	return err
}

func (r *SessionsRepository) DeleteSession(id string) error {
	_, err := r.db.Exec(`DELETE FROM time_session WHERE id = $1`, id)
	return err
}

// GetSessions returns one page of a user's history, newest first.
func (r *SessionsRepository) GetSessions(userID, pageSize, offset int) ([]*models.TimeSession, int, error) {
	rows, err := r.db.Query(`
		SELECT id, user_id, start_time, end_time, duration, group_name, created_at, modified_at
		FROM time_session
		WHERE user_id = $1
		ORDER BY start_time DESC
		LIMIT $2 OFFSET $3
	`, userID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	sessions, err := scanSessions(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int
	err = r.db.QueryRow(`SELECT COUNT(*) FROM time_session WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}
	return sessions, total, nil
}

// GetAllSessions loads a user's entire history, oldest first. The stats
// endpoints and the spreadsheet export aggregate over the full list.
func (r *SessionsRepository) GetAllSessions(userID int) ([]models.TimeSession, error) {
	rows, err := r.db.Query(`
		SELECT id, user_id, start_time, end_time, duration, group_name, created_at, modified_at
		FROM time_session
		WHERE user_id = $1
		ORDER BY start_time ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ptrs, err := scanSessions(rows)
	if err != nil {
		return nil, err
	}
	sessions := make([]models.TimeSession, len(ptrs))
	for i, p := range ptrs {
		sessions[i] = *p
	}
	return sessions, nil
}

// SummaryTotals are lifetime and rolling sums of session seconds.
type SummaryTotals struct {
	Total int64 `json:"total"`
	Week  int64 `json:"week"`
	Month int64 `json:"month"`
	Year  int64 `json:"year"`
}

// GetSummaryTotals computes the lifetime total plus rolling 7-day, 1-month
// and 1-year windows ending at now. Only positive durations count.
func (r *SessionsRepository) GetSummaryTotals(userID int, now time.Time) (SummaryTotals, error) {
	var t SummaryTotals
	err := r.db.QueryRow(`
		SELECT
			COALESCE(SUM(duration), 0),
			COALESCE(SUM(duration) FILTER (WHERE start_time >= $2), 0),
			COALESCE(SUM(duration) FILTER (WHERE start_time >= $3), 0),
			COALESCE(SUM(duration) FILTER (WHERE start_time >= $4), 0)
		FROM time_session
		WHERE user_id = $1 AND duration > 0
	`, userID, now.AddDate(0, 0, -7), now.AddDate(0, -1, 0), now.AddDate(-1, 0, 0)).
		Scan(&t.Total, &t.Week, &t.Month, &t.Year)
	return t, err
}

// GetGroupStats returns per-group session counts and total seconds, busiest
// group first.
func (r *SessionsRepository) GetGroupStats(userID int) ([]models.GroupStat, error) {
	rows, err := r.db.Query(`
		SELECT COALESCE(NULLIF(group_name, ''), 'No Group'), COUNT(*), COALESCE(SUM(duration), 0)
		FROM time_session
		WHERE user_id = $1 AND duration > 0
		GROUP BY 1
		ORDER BY 3 DESC, 1 ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.GroupStat
	for rows.Next() {
		var g models.GroupStat
		if err := rows.Scan(&g.GroupName, &g.SessionCount, &g.TotalDuration); err != nil {
			return nil, err
		}
		result = append(result, g)
	}
	return result, rows.Err()
}

func scanSessions(rows *sql.Rows) ([]*models.TimeSession, error) {
	var sessions []*models.TimeSession
	for rows.Next() {
		var s models.TimeSession
		var endTime sql.NullTime
		var duration sql.NullInt64
		var group sql.NullString
		err := rows.Scan(&s.ID, &s.UserID, &s.StartTime, &endTime, &duration, &group, &s.CreatedAt, &s.ModifiedAt)
		if err != nil {
			return nil, err
		}
		if endTime.Valid {
			t := endTime.Time
			s.EndTime = &t
		}
		if duration.Valid {
			d := duration.Int64
			s.Duration = &d
		}
		if group.Valid {
			g := group.String
			s.Group = &g
		}
		sessions = append(sessions, &s)
	}
	return sessions, rows.Err()
}
