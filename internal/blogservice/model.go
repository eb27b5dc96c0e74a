package blogservice

import (
	"context"
	"errors"

	"github.com/sushihentaime/bloglist/internal/common"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrRecordNotFound = errors.New("record not found")
)

func NewBlogModel(db *mongo.Database) *BlogModel {
	return &BlogModel{blogs: db.Collection(common.BlogCollection)}
}

func (d *blogDocument) toBlog() Blog {
	b := Blog{
		ID:     d.ID.Hex(),
		Title:  d.Title,
		Author: d.Author,
		URL:    d.URL,
		Likes:  d.Likes,
	}

	if !d.User.IsZero() {
		b.UserID = d.User.Hex()
	}

	if d.Owner != nil {
		b.User = &Owner{
			ID:       d.Owner.ID.Hex(),
			Username: d.Owner.Username,
			Name:     d.Owner.Name,
		}
	}

	return b
}

// withOwner joins each blog to its owner, keeping only the owner's id, username and name.
func withOwner(stages ...bson.D) []bson.D {
	pipeline := append([]bson.D{}, stages...)

	return append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: common.UserCollection},
			{Key: "localField", Value: "user"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "owner"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$owner"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "owner.passwordHash", Value: 0},
			{Key: "owner.email", Value: 0},
			{Key: "owner.blogs", Value: 0},
		}}},
	)
}

func (m *BlogModel) insert(ctx context.Context, b *Blog) error {
	doc := blogDocument{
		Title:  b.Title,
		Author: b.Author,
		URL:    b.URL,
		Likes:  b.Likes,
	}

	if b.UserID != "" {
		owner, err := primitive.ObjectIDFromHex(b.UserID)
		if err != nil {
			return err
		}
		doc.User = owner
	}

	res, err := m.blogs.InsertOne(ctx, doc)
	if err != nil {
		return err
	}

	b.ID = res.InsertedID.(primitive.ObjectID).Hex()

	return nil
}

func (m *BlogModel) getByID(ctx context.Context, id string) (*Blog, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrRecordNotFound
	}

	blogs, err := m.aggregate(ctx, withOwner(bson.D{{Key: "$match", Value: bson.D{{Key: "_id", Value: oid}}}}))
	if err != nil {
		return nil, err
	}

	if len(blogs) == 0 {
		return nil, ErrRecordNotFound
	}

	return &blogs[0], nil
}

// list returns all blogs in creation order.
func (m *BlogModel) list(ctx context.Context) ([]Blog, error) {
	return m.aggregate(ctx, withOwner(bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}}))
}

func (m *BlogModel) aggregate(ctx context.Context, pipeline []bson.D) ([]Blog, error) {
	cursor, err := m.blogs.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	blogs := []Blog{}
	for cursor.Next(ctx) {
		var doc blogDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		blogs = append(blogs, doc.toBlog())
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}

// update replaces the editable fields. The owner is never touched.
func (m *BlogModel) update(ctx context.Context, b *Blog) error {
	oid, err := primitive.ObjectIDFromHex(b.ID)
	if err != nil {
		return ErrRecordNotFound
	}

	set := bson.D{{Key: "$set", Value: bson.D{
		{Key: "title", Value: b.Title},
		{Key: "author", Value: b.Author},
		{Key: "url", Value: b.URL},
		{Key: "likes", Value: b.Likes},
	}}}

	res, err := m.blogs.UpdateByID(ctx, oid, set)
	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		return ErrRecordNotFound
	}

	return nil
}

func (m *BlogModel) delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrRecordNotFound
	}

	res, err := m.blogs.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return err
	}

	if res.DeletedCount == 0 {
		return ErrRecordNotFound
	}

	return nil
}
