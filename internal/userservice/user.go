package userservice

import (
	"context"
	"database/sql"
	"errors"
)

var (
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrNotFound          = errors.New("user not found")
)

func newUserModel(db *sql.DB) *DBModel {
	return &DBModel{db: db}
}

func (m *DBModel) insertUser(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (username, name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	args := []any{
		u.Username,
		u.Name,
		u.Email,
		u.Password.hash,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		switch {
		case err.Error() == "pq: duplicate key value violates unique constraint \"users_username_key\"":
			return ErrDuplicateUsername
		default:
			return err
		}
	}
	return nil
}

// usernameTaken reproduces the pre-insert existence check of the original
// registration flow. The unique index on username is the backstop for two
// registrations racing past this check.
func (m *DBModel) usernameTaken(ctx context.Context, username string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`

	var taken bool
	err := m.db.QueryRowContext(ctx, query, username).Scan(&taken)
	if err != nil {
		return false, err
	}

	return taken, nil
}

func (m *DBModel) getUserByUsername(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT id, username, name, email, password_hash
		FROM users
		WHERE username = $1`

	var u User

	err := m.db.QueryRowContext(ctx, query, username).Scan(&u.ID, &u.Username, &u.Name, &u.Email, &u.Password.hash)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

// getUsers returns all users, each with the reduced view of its owned blogs.
// Blogs join in creation order so the owned sequence matches append order.
func (m *DBModel) getUsers(ctx context.Context) ([]User, error) {
	query := `
		SELECT u.id, u.username, u.name, u.email, b.url, b.title, b.author
		FROM users u
		LEFT JOIN blogs b ON b.user_id = u.id
		ORDER BY u.created_at, u.id, b.created_at, b.id`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	index := make(map[string]int)

	for rows.Next() {
		var (
			u      User
			url    sql.NullString
			title  sql.NullString
			author sql.NullString
		)

		err := rows.Scan(&u.ID, &u.Username, &u.Name, &u.Email, &url, &title, &author)
		if err != nil {
			return nil, err
		}

		i, ok := index[u.ID]
		if !ok {
			u.Blogs = []OwnedBlog{}
			users = append(users, u)
			i = len(users) - 1
			index[u.ID] = i
		}

		if title.Valid {
			users[i].Blogs = append(users[i].Blogs, OwnedBlog{
				URL:    url.String,
				Title:  title.String,
				Author: author.String,
			})
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}
