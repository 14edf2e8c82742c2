package userservice

import (
	"database/sql"
	"time"

	"github.com/sushihentaime/bloglist/internal/common"
)

const TokenTTL time.Duration = 7 * 24 * time.Hour

type UserService struct {
	m      *DBModel
	mb     common.MessageProducer
	secret []byte
}

type DBModel struct {
	db *sql.DB
}

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	Password  Password  `json:"-"`
	CreatedAt time.Time `json:"-"`

	// Blogs is the reduced view of the blogs owned by the user, in creation
	// order.
	Blogs []OwnedBlog `json:"blogs"`
}

// OwnedBlog is the reduced blog view embedded in user listings.
type OwnedBlog struct {
	URL    string `json:"url"`
	Title  string `json:"title"`
	Author string `json:"author,omitempty"`
}

type Password struct {
	Plain string `json:"-"`
	hash  []byte
}

// Identity is the authenticated requester derived from a verified token. It
// lives for the duration of a single request and is never persisted.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

var AnonymousIdentity = Identity{}

func (i *Identity) IsAnonymous() bool {
	return i == nil || i.ID == ""
}

// AuthToken is the response body of a successful login.
type AuthToken struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
}
