package tests

import (
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/connosssss/trackr/repository"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
)

// IntegrationTestSuite exercises the repository layer against a real
// Postgres pointed to by DATABASE_URL. The schema is recreated on setup.
type IntegrationTestSuite struct {
	suite.Suite
	db       *sql.DB
	users    *repository.UsersRepository
	sessions *repository.SessionsRepository
	settings *repository.SettingsRepository
	userID   int
}

func (suite *IntegrationTestSuite) SetupSuite() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		suite.T().Skip("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dsn)
	suite.Require().NoError(err)
	suite.Require().NoError(db.Ping())
	suite.db = db
	suite.prepareDatabase()

	suite.users = repository.NewUsersRepository(db)
	suite.sessions = repository.NewSessionsRepository(db)
	suite.settings = repository.NewSettingsRepository(db)

	user, err := suite.users.CreateUser("itestuser", "itestpass123")
	suite.Require().NoError(err)
	suite.userID = user.ID
}

func (suite *IntegrationTestSuite) TearDownSuite() {
	if suite.db != nil {
		suite.db.Close()
	}
}

func (suite *IntegrationTestSuite) prepareDatabase() {
	_, err := suite.db.Exec("DROP SCHEMA public CASCADE; CREATE SCHEMA public;")
	suite.Require().NoError(err)

	statements := []string{
		`CREATE TABLE users (
			id SERIAL PRIMARY KEY,
			username VARCHAR(50) NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE time_session (
			id UUID PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			start_time TIMESTAMPTZ NOT NULL,
			end_time TIMESTAMPTZ,
			duration BIGINT,
			group_name VARCHAR(100),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			modified_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE user_settings (
			user_id INTEGER PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
			theme VARCHAR(30) NOT NULL DEFAULT 'default',
			modified_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}
	for _, stmt := range statements {
		_, err := suite.db.Exec(stmt)
		suite.Require().NoError(err)
	}
}

func (suite *IntegrationTestSuite) TestCreateUserConflict() {
	_, err := suite.users.CreateUser("itestuser", "anotherpass")
	suite.Error(err)
}

func (suite *IntegrationTestSuite) TestGetUserByUsernameMissing() {
	user, err := suite.users.GetUserByUsername("nobody")
	suite.NoError(err)
	suite.Nil(user)
}

func (suite *IntegrationTestSuite) TestSessionLifecycle() {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	duration := int64(3600)
	group := "Work"

	created, err := suite.sessions.CreateSession(suite.userID, repository.SessionInput{
		StartTime: start,
		EndTime:   &end,
		Duration:  &duration,
		Group:     &group,
	})
	suite.Require().NoError(err)
	suite.NotEmpty(created.ID)
	suite.Equal(suite.userID, created.UserID)

	loaded, err := suite.sessions.GetSessionByID(created.ID)
	suite.Require().NoError(err)
	suite.Require().NotNil(loaded)
	suite.True(loaded.StartTime.Equal(start))
	suite.Equal("Work", *loaded.Group)

	newDuration := int64(1800)
	err = suite.sessions.UpdateSession(created.ID, repository.SessionInput{
		StartTime: start,
		Duration:  &newDuration,
	})
	suite.Require().NoError(err)

	loaded, err = suite.sessions.GetSessionByID(created.ID)
	suite.Require().NoError(err)
	suite.Equal(int64(1800), *loaded.Duration)
	suite.Nil(loaded.EndTime)
	suite.Nil(loaded.Group)

	suite.Require().NoError(suite.sessions.DeleteSession(created.ID))
	loaded, err = suite.sessions.GetSessionByID(created.ID)
	suite.NoError(err)
	suite.Nil(loaded)
}

func (suite *IntegrationTestSuite) TestGetSessionsPagination() {
	base := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
	duration := int64(600)
	for i := 0; i < 15; i++ {
		start := base.Add(time.Duration(i) * time.Hour)
		_, err := suite.sessions.CreateSession(suite.userID, repository.SessionInput{
			StartTime: start,
			Duration:  &duration,
		})
		suite.Require().NoError(err)
	}

	page, total, err := suite.sessions.GetSessions(suite.userID, 10, 0)
	suite.Require().NoError(err)
	suite.GreaterOrEqual(total, 15)
	suite.Len(page, 10)
	// Newest first.
	suite.True(page[0].StartTime.After(page[9].StartTime))
}

func (suite *IntegrationTestSuite) TestSummaryAndGroupStats() {
	now := time.Now()
	duration := int64(3600)
	group := "Reading"
	_, err := suite.sessions.CreateSession(suite.userID, repository.SessionInput{
		StartTime: now.Add(-2 * time.Hour),
		Duration:  &duration,
		Group:     &group,
	})
	suite.Require().NoError(err)

	totals, err := suite.sessions.GetSummaryTotals(suite.userID, now)
	suite.Require().NoError(err)
	suite.GreaterOrEqual(totals.Total, int64(3600))
	suite.GreaterOrEqual(totals.Week, int64(3600))
	suite.GreaterOrEqual(totals.Total, totals.Year)
	suite.GreaterOrEqual(totals.Year, totals.Month)
	suite.GreaterOrEqual(totals.Month, totals.Week)

	groups, err := suite.sessions.GetGroupStats(suite.userID)
	suite.Require().NoError(err)
	names := make(map[string]bool, len(groups))
	for _, g := range groups {
		names[g.GroupName] = true
	}
	suite.True(names["Reading"])
	// Ungrouped sessions fall under the sentinel.
	suite.True(names["No Group"])
}

func (suite *IntegrationTestSuite) TestSettingsLazyCreateAndUpdate() {
	settings, err := suite.settings.GetOrCreateSettings(suite.userID)
	suite.Require().NoError(err)
	suite.Require().NotNil(settings)
	suite.Equal("default", settings.Theme)

	suite.Require().NoError(suite.settings.UpdateTheme(suite.userID, "light"))
	settings, err = suite.settings.GetOrCreateSettings(suite.userID)
	suite.Require().NoError(err)
	suite.Equal("light", settings.Theme)
}

func TestIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}
