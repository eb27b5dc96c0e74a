package blogservice

import (
	"context"

	"github.com/sushihentaime/bloglist/internal/common"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Blog struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
	// User is the owner projection; nil when the owner no longer resolves.
	User   *Owner `json:"user,omitempty"`
	UserID string `json:"-"`
}

// Owner is the minimal view of the user that created a blog.
type Owner struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type BlogModel struct {
	blogs *mongo.Collection
}

type BlogService struct {
	m      blogStore
	owners BlogOwners
	c      *common.Cache
}

// BlogOwners records a newly created blog on its owner. It is implemented by
// userservice.UserService.
type BlogOwners interface {
	AddBlog(ctx context.Context, userID, blogID string) error
}

type blogStore interface {
	insert(ctx context.Context, b *Blog) error
	getByID(ctx context.Context, id string) (*Blog, error)
	list(ctx context.Context) ([]Blog, error)
	update(ctx context.Context, b *Blog) error
	delete(ctx context.Context, id string) error
}

type blogDocument struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	Title  string             `bson:"title"`
	Author string             `bson:"author"`
	URL    string             `bson:"url"`
	Likes  int                `bson:"likes"`
	User   primitive.ObjectID `bson:"user,omitempty"`
	Owner  *ownerDocument     `bson:"owner,omitempty"`
}

type ownerDocument struct {
	ID       primitive.ObjectID `bson:"_id"`
	Username string             `bson:"username"`
	Name     string             `bson:"name"`
}
