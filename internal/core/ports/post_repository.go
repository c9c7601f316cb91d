package ports

import (
	"context"

	"github.com/pulsefeed/content-service/internal/core/domain"
)

// PostRepository persists post documents. Every mutation is a single atomic
// store operation; implementations must never read-modify-write.
type PostRepository interface {
	Insert(ctx context.Context, post *domain.Post) (*domain.Post, error)
	FindAll(ctx context.Context) ([]domain.Post, error)
	// DeleteOwned removes the post only when author matches the stored
	// author. Returns domain.ErrPostNotFound or domain.ErrNotPostOwner
	// when nothing was deleted.
	DeleteOwned(ctx context.Context, id, author string) error
	// IncrementLikes adds exactly 1 to the like counter ($inc semantics).
	IncrementLikes(ctx context.Context, id string) error
	// AppendComment appends to the comment array ($push semantics),
	// preserving insertion order under concurrency.
	AppendComment(ctx context.Context, id string, comment domain.Comment) error
}
