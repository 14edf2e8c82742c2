package blogservice

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sushihentaime/bloglist/internal/common"
)

// setupTestUser is a helper function to create a test user in the database.
func setupTestUser(db *sql.DB, username string) (string, error) {
	query := `
		INSERT INTO users (username, name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id`

	var id string
	err := db.QueryRow(query, username, "Test User", []byte("not-a-real-hash")).Scan(&id)
	if err != nil {
		return "", err
	}

	return id, nil
}

func setupTestEnvironment(t *testing.T) (*BlogService, *sql.DB, func() error, string) {
	db := common.TestDB("file://../../migrations", t)
	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	userID, err := setupTestUser(db, "testuser")
	require.NoError(t, err)

	cleanup := func() error {
		_, err := db.Exec("DELETE FROM blogs")
		if err != nil {
			return err
		}

		cache.Flush()

		return nil
	}

	return NewBlogService(db, cache), db, cleanup, userID
}

func createTestBlog(db *sql.DB, userID string) (string, error) {
	query := `
		INSERT INTO blogs (title, author, url, likes, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id string
	err := db.QueryRow(query, "React patterns", "Michael Chan", "https://reactpatterns.com/", 7, userID).Scan(&id)
	if err != nil {
		return "", err
	}

	return id, nil
}

func countBlogs(t *testing.T, db *sql.DB) int {
	var n int
	err := db.QueryRow("SELECT COUNT(*) FROM blogs").Scan(&n)
	require.NoError(t, err)
	return n
}

func TestCreateBlog(t *testing.T) {
	s, db, cleanup, userID := setupTestEnvironment(t)

	testCases := []struct {
		name        string
		req         *CreateBlogRequest
		expectedErr error
	}{
		{
			name: "valid blog",
			req: &CreateBlogRequest{
				Title:  "Go To Statement Considered Harmful",
				Author: "Edsger W. Dijkstra",
				URL:    "http://www.u.arizona.edu/~rubinson/copyright",
				Likes:  5,
				UserID: userID,
			},
			expectedErr: nil,
		},
		{
			name: "missing title",
			req: &CreateBlogRequest{
				URL:    "https://reactpatterns.com/",
				UserID: userID,
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"title": "title missing"}},
		},
		{
			name: "missing url",
			req: &CreateBlogRequest{
				Title:  "React patterns",
				UserID: userID,
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"url": "url missing"}},
		},
		{
			name: "unknown owner",
			req: &CreateBlogRequest{
				Title:  "React patterns",
				URL:    "https://reactpatterns.com/",
				UserID: "00000000-0000-0000-0000-000000000000",
			},
			expectedErr: ErrUserForeignKey,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			blog, err := s.CreateBlog(context.Background(), tc.req)

			if tc.expectedErr != nil {
				assert.Equal(t, tc.expectedErr, err)
				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, blog.ID)
			assert.Equal(t, tc.req.Title, blog.Title)
			assert.Equal(t, tc.req.Likes, blog.Likes)
			assert.Equal(t, userID, blog.UserID)
			assert.NotNil(t, blog.User)
			assert.Equal(t, "testuser", blog.User.Username)
		})
	}

	t.Cleanup(func() {
		assert.NoError(t, cleanup())
		_ = db
	})
}

func TestCreateBlogDefaultsLikesToZero(t *testing.T) {
	s, _, cleanup, userID := setupTestEnvironment(t)

	blog, err := s.CreateBlog(context.Background(), &CreateBlogRequest{
		Title:  "TDD harms architecture",
		Author: "Robert C. Martin",
		URL:    "http://blog.cleancoder.com/uncle-bob/2017/03/03/TDD-Harms-Architecture.html",
		UserID: userID,
	})

	assert.NoError(t, err)
	assert.Equal(t, 0, blog.Likes)

	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})
}

func TestGetBlogByID(t *testing.T) {
	s, db, cleanup, userID := setupTestEnvironment(t)

	blogID, err := createTestBlog(db, userID)
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		blog, err := s.GetBlogByID(context.Background(), blogID)
		assert.NoError(t, err)
		assert.Equal(t, blogID, blog.ID)
		assert.Equal(t, "React patterns", blog.Title)
		assert.Equal(t, 7, blog.Likes)
		assert.Equal(t, "testuser", blog.User.Username)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := s.GetBlogByID(context.Background(), "00000000-0000-0000-0000-000000000000")
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})

	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})
}

func TestUpdateBlog(t *testing.T) {
	s, db, cleanup, userID := setupTestEnvironment(t)

	blogID, err := createTestBlog(db, userID)
	require.NoError(t, err)

	t.Run("replaces all fields", func(t *testing.T) {
		blog, err := s.UpdateBlog(context.Background(), blogID, &UpdateBlogRequest{
			Title:  "Type wars",
			Author: "Robert C. Martin",
			URL:    "http://blog.cleancoder.com/uncle-bob/2016/05/01/TypeWars.html",
			Likes:  2,
		})

		assert.NoError(t, err)
		assert.Equal(t, "Type wars", blog.Title)
		assert.Equal(t, "Robert C. Martin", blog.Author)
		assert.Equal(t, 2, blog.Likes)
		// ownership never changes on update
		assert.Equal(t, userID, blog.UserID)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := s.UpdateBlog(context.Background(), "00000000-0000-0000-0000-000000000000", &UpdateBlogRequest{
			Title: "Type wars",
			URL:   "http://blog.cleancoder.com/uncle-bob/2016/05/01/TypeWars.html",
		})
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})

	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})
}

func TestDeleteBlog(t *testing.T) {
	s, db, cleanup, userID := setupTestEnvironment(t)

	blogID, err := createTestBlog(db, userID)
	require.NoError(t, err)

	t.Run("deletes exactly one record", func(t *testing.T) {
		before := countBlogs(t, db)

		err := s.DeleteBlog(context.Background(), blogID)
		assert.NoError(t, err)

		assert.Equal(t, before-1, countBlogs(t, db))
	})

	t.Run("not found", func(t *testing.T) {
		err := s.DeleteBlog(context.Background(), "00000000-0000-0000-0000-000000000000")
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})

	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})
}

func TestGetBlogs(t *testing.T) {
	s, db, cleanup, userID := setupTestEnvironment(t)

	_, err := createTestBlog(db, userID)
	require.NoError(t, err)

	blogs, err := s.GetBlogs(context.Background())
	assert.NoError(t, err)
	assert.Len(t, blogs, 1)
	assert.Equal(t, "testuser", blogs[0].User.Username)

	// second read is served from cache and must agree
	cached, err := s.GetBlogs(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, blogs, cached)

	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})
}

func TestStats(t *testing.T) {
	s, db, cleanup, userID := setupTestEnvironment(t)

	_, err := createTestBlog(db, userID)
	require.NoError(t, err)

	stats, err := s.Stats(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, stats.Blogs)
	assert.Equal(t, 7, stats.TotalLikes)
	assert.Equal(t, "React patterns", stats.Favorite.Title)
	assert.Equal(t, "Michael Chan", stats.MostBlogs.Author)
	assert.Equal(t, 7, stats.MostLikes.Likes)

	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})
}
