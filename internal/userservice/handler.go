package userservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sushihentaime/bloglist/internal/common"
)

var (
	ErrAuthenticationFailure = fmt.Errorf("invalid username or password")
)

// NewUserService wires the user store, the event producer and the token maker.
// mb may be nil, in which case no user.created events are published.
func NewUserService(m userStore, mb common.MessageProducer, c *common.Cache, tokens *TokenMaker) *UserService {
	return &UserService{
		m:      m,
		mb:     mb,
		c:      c,
		tokens: tokens,
	}
}

// CreateUser registers a new account and publishes a user.created event when an email address was given.
func (s *UserService) CreateUser(ctx context.Context, username, name, password, email string) (*User, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	validatePassword(v, password)
	validateEmail(v, email)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	_, err := s.m.getByUsername(ctx, username)
	switch {
	case err == nil:
		return nil, ErrDuplicateUsername
	case !errors.Is(err, ErrNotFound):
		return nil, err
	}

	u := User{
		Username: username,
		Name:     name,
		Email:    email,
	}

	err = u.Password.set(password)
	if err != nil {
		return nil, err
	}

	// the unique index still guards against a concurrent registration
	err = s.m.insert(ctx, &u)
	if err != nil {
		return nil, err
	}

	if s.mb != nil && u.Email != "" {
		event, err := json.Marshal(common.UserCreatedEvent{Email: u.Email, Username: u.Username, Name: u.Name})
		if err != nil {
			return nil, err
		}

		err = s.mb.Publish(ctx, event, common.UserCreatedKey, common.UserExchange)
		if err != nil {
			return nil, err
		}
	}

	return &u, nil
}

// ListUsers returns every user with the blogs they own.
func (s *UserService) ListUsers(ctx context.Context) ([]User, error) {
	return s.m.list(ctx)
}

// LoginUser checks the credentials and issues a token.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*LoginResponse, error) {
	v := common.NewValidator()
	validateLogin(v, username, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.m.getByUsername(ctx, username)
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

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token:    token,
		Username: user.Username,
		Name:     user.Name,
	}, nil
}

// GetUserByToken verifies token and loads the user it was issued for.
func (s *UserService) GetUserByToken(ctx context.Context, token string) (*User, error) {
	v := common.NewValidator()
	ValidateToken(v, token)
	if !v.Valid() {
		return nil, ErrInvalidToken
	}

	id, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	if s.c != nil {
		if cached, ok := s.c.Get(common.CacheKeyUserByID(id)); ok {
			return cached.(*User), nil
		}
	}

	user, err := s.m.getByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, ErrInvalidToken
		default:
			return nil, err
		}
	}

	if s.c != nil {
		s.c.Set(common.CacheKeyUserByID(id), user)
	}

	return user, nil
}

// AddBlog appends blogID to the blogs owned by userID.
func (s *UserService) AddBlog(ctx context.Context, userID, blogID string) error {
	err := s.m.addBlog(ctx, userID, blogID)
	if err != nil {
		return err
	}

	if s.c != nil {
		s.c.Delete(common.CacheKeyUserByID(userID))
	}

	return nil
}

func (u *User) IsAnonymous() bool {
	return u == &AnonymousUser
}
