package repository

import (
	"database/sql"

	"github.com/connosssss/trackr/models"
)

type SettingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetOrCreateSettings returns the user's settings row, creating it with the
// default theme on first access.
func (r *SettingsRepository) GetOrCreateSettings(userID int) (*models.UserSettings, error) {
	_, err := r.db.Exec(`
		INSERT INTO user_settings (user_id, theme, modified_at)
		VALUES ($1, 'default', NOW())
		ON CONFLICT (user_id) DO NOTHING
	`, userID)
	if err != nil {
		return nil, err
	}

	var s models.UserSettings
	err = r.db.QueryRow(`
		SELECT user_id, theme, modified_at
		FROM user_settings
		WHERE user_id = $1
	`, userID).Scan(&s.UserID, &s.Theme, &s.ModifiedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SettingsRepository) UpdateTheme(userID int, theme string) error {
	_, err := r.db.Exec(`
		INSERT INTO user_settings (user_id, theme, modified_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE SET theme = EXCLUDED.theme, modified_at = NOW()
	`, userID, theme)
	return err
}
