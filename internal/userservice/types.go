package userservice

import (
	"context"
	"time"

	"github.com/sushihentaime/bloglist/internal/common"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	DefaultTokenTime time.Duration = time.Hour

	// minimum length shared by usernames and passwords
	MinCredentialLength = 3
	MaxPasswordLength   = 72
)

var (
	AnonymousUser = User{}
)

type UserService struct {
	m      userStore
	mb     common.MessageProducer
	c      *common.Cache
	tokens *TokenMaker
}

// userStore is implemented by UserModel and by the in-memory fake in the tests.
type userStore interface {
	insert(ctx context.Context, u *User) error
	getByID(ctx context.Context, id string) (*User, error)
	getByUsername(ctx context.Context, username string) (*User, error)
	list(ctx context.Context) ([]User, error)
	addBlog(ctx context.Context, userID, blogID string) error
}

type UserModel struct {
	users *mongo.Collection
	blogs *mongo.Collection
}

type User struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Name     string   `json:"name"`
	Email    string   `json:"-"`
	Password Password `json:"-"`
	// BlogIDs lists the owned blogs in creation order.
	BlogIDs []string `json:"-"`
	// Blogs is only filled by ListUsers.
	Blogs []BlogSummary `json:"blogs"`
}

// BlogSummary is the projection of a blog embedded in a user listing.
type BlogSummary struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
}

type Password struct {
	hash []byte
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type userDocument struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	Username     string               `bson:"username"`
	Name         string               `bson:"name"`
	Email        string               `bson:"email,omitempty"`
	PasswordHash []byte               `bson:"passwordHash"`
	Blogs        []primitive.ObjectID `bson:"blogs"`
}

type blogSummaryDocument struct {
	ID     primitive.ObjectID `bson:"_id"`
	Title  string             `bson:"title"`
	Author string             `bson:"author"`
	URL    string             `bson:"url"`
}
