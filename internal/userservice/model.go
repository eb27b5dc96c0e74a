package userservice

import (
	"context"
	"errors"

	"github.com/sushihentaime/bloglist/internal/common"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrNotFound          = errors.New("user not found")
)

func NewUserModel(db *mongo.Database) *UserModel {
	return &UserModel{
		users: db.Collection(common.UserCollection),
		blogs: db.Collection(common.BlogCollection),
	}
}

func (d *userDocument) toUser() *User {
	u := &User{
		ID:       d.ID.Hex(),
		Username: d.Username,
		Name:     d.Name,
		Email:    d.Email,
		BlogIDs:  make([]string, 0, len(d.Blogs)),
		Blogs:    []BlogSummary{},
	}
	u.Password.SetHash(d.PasswordHash)

	for _, id := range d.Blogs {
		u.BlogIDs = append(u.BlogIDs, id.Hex())
	}

	return u
}

func (m *UserModel) insert(ctx context.Context, u *User) error {
	doc := userDocument{
		Username:     u.Username,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.Password.hash,
		// must be an array, not null, so that $push works
		Blogs: []primitive.ObjectID{},
	}

	res, err := m.users.InsertOne(ctx, doc)
	if err != nil {
		switch {
		case mongo.IsDuplicateKeyError(err):
			return ErrDuplicateUsername
		default:
			return err
		}
	}

	u.ID = res.InsertedID.(primitive.ObjectID).Hex()
	u.BlogIDs = []string{}
	u.Blogs = []BlogSummary{}

	return nil
}

func (m *UserModel) getByID(ctx context.Context, id string) (*User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	return m.findOne(ctx, bson.M{"_id": oid})
}

func (m *UserModel) getByUsername(ctx context.Context, username string) (*User, error) {
	return m.findOne(ctx, bson.M{"username": username})
}

func (m *UserModel) findOne(ctx context.Context, filter bson.M) (*User, error) {
	var doc userDocument

	err := m.users.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	return doc.toUser(), nil
}

// list returns every user with its blogs expanded in ownership order. Blog ids
// that no longer resolve (deleted blogs) are skipped.
func (m *UserModel) list(ctx context.Context) ([]User, error) {
	cursor, err := m.users.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	blogIDs := make([]primitive.ObjectID, 0)
	for _, d := range docs {
		blogIDs = append(blogIDs, d.Blogs...)
	}

	summaries, err := m.blogSummaries(ctx, blogIDs)
	if err != nil {
		return nil, err
	}

	users := make([]User, 0, len(docs))
	for _, d := range docs {
		u := d.toUser()
		for _, id := range d.Blogs {
			if s, ok := summaries[id]; ok {
				u.Blogs = append(u.Blogs, s)
			}
		}
		users = append(users, *u)
	}

	return users, nil
}

func (m *UserModel) blogSummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]BlogSummary, error) {
	summaries := make(map[primitive.ObjectID]BlogSummary, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}

	opts := options.Find().SetProjection(bson.M{"title": 1, "author": 1, "url": 1})
	cursor, err := m.blogs.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}

	var docs []blogSummaryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	for _, d := range docs {
		summaries[d.ID] = BlogSummary{
			ID:     d.ID.Hex(),
			Title:  d.Title,
			Author: d.Author,
			URL:    d.URL,
		}
	}

	return summaries, nil
}

func (m *UserModel) addBlog(ctx context.Context, userID, blogID string) error {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrNotFound
	}

	bid, err := primitive.ObjectIDFromHex(blogID)
	if err != nil {
		return err
	}

	res, err := m.users.UpdateByID(ctx, uid, bson.M{"$push": bson.M{"blogs": bid}})
	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}
