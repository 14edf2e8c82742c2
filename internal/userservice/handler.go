package userservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sushihentaime/bloglist/internal/common"
)

var (
	ErrAuthenticationFailure = fmt.Errorf("unauthorized access")
)

func NewUserService(db *sql.DB, mb common.MessageProducer, secret string) *UserService {
	return &UserService{
		m:      newUserModel(db),
		mb:     mb,
		secret: []byte(secret),
	}
}

// RegisterUser creates a new user account and publishes a user.registered
// event. The email address is optional; when present a welcome email is sent
// by the mail consumer.
func (s *UserService) RegisterUser(ctx context.Context, username, name, email, password string) (*User, error) {
	// The registration rules are ordered: the first failing check decides
	// the error message.
	if err := validateRegistration(username, password); err != nil {
		return nil, err
	}

	if email != "" {
		v := common.NewValidator()
		validateEmail(v, email)
		if !v.Valid() {
			return nil, v.ValidationError()
		}
	}

	u := User{
		Username: username,
		Name:     name,
		Email:    email,
		Password: Password{Plain: password},
		Blogs:    []OwnedBlog{},
	}

	// Set the password hash
	err := u.Password.set(u.Password.Plain)
	if err != nil {
		return nil, err
	}

	// Check-then-act on the username; the unique index catches the race.
	taken, err := s.m.usernameTaken(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateUsername
	}

	err = s.m.insertUser(ctx, &u)
	if err != nil {
		return nil, err
	}

	data := struct {
		Username string
		Email    string
	}{
		Username: u.Username,
		Email:    u.Email,
	}

	eventData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	// Publish the user registered event
	err = s.mb.Publish(ctx, eventData, common.UserRegisteredKey, common.UserExchange)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// LoginUser verifies the credentials and returns a signed bearer token whose
// claims carry the user id and username.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*AuthToken, error) {
	v := common.NewValidator()
	validateCredentials(v, username, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.m.getUserByUsername(ctx, username)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, ErrAuthenticationFailure
		default:
			return nil, err
		}
	}

	ok, err := user.Password.compare(password)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, ErrAuthenticationFailure
	}

	token, err := mintToken(s.secret, user.ID, user.Username, TokenTTL)
	if err != nil {
		return nil, err
	}

	return &AuthToken{Token: token, Username: user.Username, Name: user.Name}, nil
}

// VerifyToken parses and verifies a bearer token and returns the requester
// identity it carries.
func (s *UserService) VerifyToken(token string) (*Identity, error) {
	v := common.NewValidator()
	ValidateTokenPlain(v, token)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return verifyToken(s.secret, token)
}

// ListUsers returns all users with the reduced view of their owned blogs.
func (s *UserService) ListUsers(ctx context.Context) ([]User, error) {
	return s.m.getUsers(ctx)
}
