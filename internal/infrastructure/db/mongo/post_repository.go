package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pulsefeed/content-service/internal/core/domain"
)

const postCollection = "posts"

type PostRepository struct {
	coll *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{coll: db.Collection(postCollection)}
}

type postDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Author   string             `bson:"author"`
	Body     string             `bson:"body"`
	Likes    int64              `bson:"likes"`
	Comments []domain.Comment   `bson:"comments"`
}

func (d postDoc) toDomain() domain.Post {
	comments := d.Comments
	if comments == nil {
		comments = []domain.Comment{}
	}
	return domain.Post{
		ID:       d.ID.Hex(),
		Author:   d.Author,
		Body:     d.Body,
		Likes:    d.Likes,
		Comments: comments,
	}
}

func parsePostID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrPostNotFound
	}
	return oid, nil
}

func (r *PostRepository) Insert(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := postDoc{
		Author:   post.Author,
		Body:     post.Body,
		Likes:    post.Likes,
		Comments: []domain.Comment{},
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}

	created := *post
	created.Comments = []domain.Comment{}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *PostRepository) FindAll(ctx context.Context) ([]domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	defer cur.Close(ctx)

	posts := []domain.Post{}
	for cur.Next(ctx) {
		var doc postDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode post: %w", err)
		}
		posts = append(posts, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, nil
}

// DeleteOwned deletes atomically on {_id, author} so ownership and removal
// cannot race. When nothing matched, a follow-up lookup classifies the
// failure; both outcomes are surfaced identically at the HTTP boundary.
func (r *PostRepository) DeleteOwned(ctx context.Context, id, author string) error {
	oid, err := parsePostID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "author": author})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount > 0 {
		return nil
	}

	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.ErrPostNotFound
		}
		return fmt.Errorf("classify delete failure: %w", err)
	}
	return domain.ErrNotPostOwner
}

// IncrementLikes applies $inc so concurrent likes all land; never
// read-modify-write.
func (r *PostRepository) IncrementLikes(ctx context.Context, id string) error {
	oid, err := parsePostID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{"likes": 1}},
	)
	if err != nil {
		return fmt.Errorf("increment likes: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// AppendComment applies $push, preserving append order under concurrent
// commenters.
func (r *PostRepository) AppendComment(ctx context.Context, id string, comment domain.Comment) error {
	oid, err := parsePostID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$push": bson.M{"comments": comment}},
	)
	if err != nil {
		return fmt.Errorf("append comment: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}
