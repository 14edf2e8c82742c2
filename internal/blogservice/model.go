package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrUserForeignKey = errors.New("user_id does not exist")
)

func newBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

// ForeignKeyError is a helper function to check if the error is a foreign key constraint error.
func ForeignKeyError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23503" && pqErr.Constraint == name {
			return true
		}
	}

	return false
}

func (m *BlogModel) insert(ctx context.Context, blog *Blog) error {
	query := `
		INSERT INTO blogs (title, author, url, likes, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	args := []any{blog.Title, blog.Author, blog.URL, blog.Likes, blog.UserID}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&blog.ID, &blog.CreatedAt)
	if err != nil {
		switch {
		case ForeignKeyError(err, "blogs_user_id_fkey"):
			return ErrUserForeignKey
		default:
			return err
		}
	}

	return nil
}

// getBlogById returns a blog joined with the reduced view of its owner.
func (m *BlogModel) getBlogById(ctx context.Context, id string) (*Blog, error) {
	query := `
		SELECT b.id, b.title, b.author, b.url, b.likes, b.user_id, b.created_at, u.username, u.name
		FROM blogs b
		JOIN users u ON b.user_id = u.id
		WHERE b.id = $1`

	row := m.db.QueryRowContext(ctx, query, id)

	var blog Blog
	var user UserView
	err := row.Scan(&blog.ID, &blog.Title, &blog.Author, &blog.URL, &blog.Likes, &blog.UserID, &blog.CreatedAt, &user.Username, &user.Name)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	blog.User = &user

	return &blog, nil
}

// updateBlog replaces title, author, url and likes wholesale by id. Ownership
// is deliberately not part of the predicate.
func (m *BlogModel) updateBlog(ctx context.Context, blog *Blog) error {
	query := `
		UPDATE blogs
		SET title = $1, author = $2, url = $3, likes = $4
		WHERE id = $5
		RETURNING user_id, created_at`

	err := m.db.QueryRowContext(ctx, query, blog.Title, blog.Author, blog.URL, blog.Likes, blog.ID).Scan(&blog.UserID, &blog.CreatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrRecordNotFound
		default:
			return err
		}
	}

	return nil
}

func (m *BlogModel) deleteBlog(ctx context.Context, id string) error {
	query := `
		DELETE FROM blogs
		WHERE id = $1`

	res, err := m.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}

// getBlogs returns all blogs joined with the reduced owner view, oldest
// first so responses are stable across calls.
func (m *BlogModel) getBlogs(ctx context.Context) ([]Blog, error) {
	query := `
		SELECT b.id, b.title, b.author, b.url, b.likes, b.user_id, b.created_at, u.username, u.name
		FROM blogs b
		JOIN users u ON b.user_id = u.id
		ORDER BY b.created_at, b.id`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []Blog{}
	for rows.Next() {
		var blog Blog
		var user UserView
		err := rows.Scan(&blog.ID, &blog.Title, &blog.Author, &blog.URL, &blog.Likes, &blog.UserID, &blog.CreatedAt, &user.Username, &user.Name)
		if err != nil {
			return nil, err
		}
		blog.User = &user
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}
