package blogservice

import (
	"database/sql"
	"time"

	"github.com/sushihentaime/bloglist/internal/common"
)

type Blog struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author,omitempty"`
	URL       string    `json:"url"`
	Likes     int       `json:"likes"`
	UserID    string    `json:"-"`
	CreatedAt time.Time `json:"-"`

	// User is the reduced view of the owning user, present on read paths
	// that join the users table.
	User *UserView `json:"user,omitempty"`
}

// UserView is the reduced owner view embedded in blog listings.
type UserView struct {
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m *BlogModel
	c *common.Cache
}
