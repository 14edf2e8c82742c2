package userservice

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sushihentaime/bloglist/internal/common"
)

const testSecret = "test-signing-secret-do-not-use-in-production"

func setupTestEnvironment(t *testing.T) (*UserService, *sql.DB, func() error, error) {
	db := common.TestDB("file://../../migrations", t)
	connURL := common.TestRabbitMQ(t)
	mb, err := common.NewMessageBroker(connURL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not create message broker: %w", err)
	}

	err = common.SetupUserExchange(mb)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not setup user exchange: %w", err)
	}

	cleanup := func() error {
		_, err := db.Exec("DELETE FROM users")
		if err != nil {
			return err
		}

		return nil
	}

	return NewUserService(db, mb, testSecret), db, cleanup, nil
}

func countUsers(t *testing.T, db *sql.DB) int {
	var n int
	err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&n)
	require.NoError(t, err)
	return n
}

func TestRegisterUser(t *testing.T) {
	s, db, cleanup, err := setupTestEnvironment(t)
	require.NoError(t, err)

	testCases := []struct {
		name            string
		username        string
		password        string
		expectedMessage string
	}{
		{
			name:     "valid user",
			username: "mluukkai",
			password: "salainen",
		},
		{
			name:            "short password",
			username:        "hellas",
			password:        "sa",
			expectedMessage: "password must be at least 3 characters long",
		},
		{
			name:            "missing username",
			username:        "",
			password:        "salainen",
			expectedMessage: "username missing",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			before := countUsers(t, db)

			user, err := s.RegisterUser(context.Background(), tc.username, "Matti Luukkainen", "", tc.password)

			if tc.expectedMessage != "" {
				var validationErr common.ValidationError
				assert.ErrorAs(t, err, &validationErr)
				assert.Equal(t, tc.expectedMessage, validationErr.Message())
				assert.Equal(t, before, countUsers(t, db))
				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, user.ID)
			assert.Equal(t, tc.username, user.Username)
			assert.Equal(t, []OwnedBlog{}, user.Blogs)
			assert.Equal(t, before+1, countUsers(t, db))
		})
	}

	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})
}

func TestRegisterUserDuplicateUsername(t *testing.T) {
	s, db, cleanup, err := setupTestEnvironment(t)
	require.NoError(t, err)

	_, err = s.RegisterUser(context.Background(), "root", "Superuser", "", "salainen")
	require.NoError(t, err)

	before := countUsers(t, db)

	_, err = s.RegisterUser(context.Background(), "root", "Another Superuser", "", "salainen")
	assert.ErrorIs(t, err, ErrDuplicateUsername)
	assert.Equal(t, before, countUsers(t, db))

	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})
}

func TestLoginUser(t *testing.T) {
	s, _, cleanup, err := setupTestEnvironment(t)
	require.NoError(t, err)

	_, err = s.RegisterUser(context.Background(), "mluukkai", "Matti Luukkainen", "", "salainen")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		token, err := s.LoginUser(context.Background(), "mluukkai", "salainen")
		assert.NoError(t, err)
		assert.NotEmpty(t, token.Token)
		assert.Equal(t, "mluukkai", token.Username)

		// the token identifies the user
		identity, err := s.VerifyToken(token.Token)
		assert.NoError(t, err)
		assert.Equal(t, "mluukkai", identity.Username)
		assert.NotEmpty(t, identity.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := s.LoginUser(context.Background(), "mluukkai", "wrong")
		assert.ErrorIs(t, err, ErrAuthenticationFailure)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := s.LoginUser(context.Background(), "nobody", "salainen")
		assert.ErrorIs(t, err, ErrAuthenticationFailure)
	})

	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})
}

func TestListUsers(t *testing.T) {
	s, db, cleanup, err := setupTestEnvironment(t)
	require.NoError(t, err)

	user, err := s.RegisterUser(context.Background(), "mluukkai", "Matti Luukkainen", "", "salainen")
	require.NoError(t, err)

	_, err = db.Exec(`
		INSERT INTO blogs (title, author, url, likes, user_id)
		VALUES ($1, $2, $3, $4, $5)`,
		"React patterns", "Michael Chan", "https://reactpatterns.com/", 7, user.ID)
	require.NoError(t, err)

	users, err := s.ListUsers(context.Background())
	assert.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, "mluukkai", users[0].Username)
	assert.Equal(t, []OwnedBlog{{
		URL:    "https://reactpatterns.com/",
		Title:  "React patterns",
		Author: "Michael Chan",
	}}, users[0].Blogs)

	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})
}
