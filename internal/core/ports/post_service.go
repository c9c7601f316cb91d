package ports

import (
	"context"

	"github.com/pulsefeed/content-service/internal/core/domain"
)

// PostService implements the content operations. All mutations require a
// resolved identity; List is public.
type PostService interface {
	List(ctx context.Context) ([]domain.Post, error)
	Create(ctx context.Context, author, body string) (*domain.Post, error)
	Delete(ctx context.Context, requester, postID string) error
	Like(ctx context.Context, requester, postID string) error
	Comment(ctx context.Context, requester, postID, text string) error
}
