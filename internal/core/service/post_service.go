package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pulsefeed/content-service/internal/core/domain"
	"github.com/pulsefeed/content-service/internal/core/ports"
)

// PostService implements the content operations. Every mutation delegates
// to a single atomic repository call; successful mutations publish an
// activity event for asynchronous fan-out.
type PostService struct {
	repo     ports.PostRepository
	activity ports.ActivityPublisher
	logger   zerolog.Logger
}

func NewPostService(repo ports.PostRepository, activity ports.ActivityPublisher, logger zerolog.Logger) *PostService {
	return &PostService{repo: repo, activity: activity, logger: logger}
}

func (s *PostService) List(ctx context.Context) ([]domain.Post, error) {
	return s.repo.FindAll(ctx)
}

func (s *PostService) Create(ctx context.Context, author, body string) (*domain.Post, error) {
	if strings.TrimSpace(body) == "" {
		return nil, domain.ErrEmptyBody
	}

	created, err := s.repo.Insert(ctx, &domain.Post{
		Author:   author,
		Body:     body,
		Likes:    0,
		Comments: []domain.Comment{},
	})
	if err != nil {
		s.logger.Error().Err(err).Str("author", author).Msg("failed to create post")
		return nil, err
	}

	s.publish(ports.ActivityPostCreated, created.ID, author)
	return created, nil
}

func (s *PostService) Delete(ctx context.Context, requester, postID string) error {
	if err := s.repo.DeleteOwned(ctx, postID, requester); err != nil {
		return err
	}
	s.publish(ports.ActivityPostDeleted, postID, requester)
	return nil
}

func (s *PostService) Like(ctx context.Context, requester, postID string) error {
	if err := s.repo.IncrementLikes(ctx, postID); err != nil {
		return err
	}
	s.publish(ports.ActivityPostLiked, postID, requester)
	return nil
}

func (s *PostService) Comment(ctx context.Context, requester, postID, text string) error {
	if strings.TrimSpace(text) == "" {
		return domain.ErrEmptyComment
	}

	if err := s.repo.AppendComment(ctx, postID, domain.Comment{
		Username: requester,
		Text:     text,
	}); err != nil {
		return err
	}
	s.publish(ports.ActivityPostCommented, postID, requester)
	return nil
}

func (s *PostService) publish(eventType, postID, actor string) {
	if s.activity == nil {
		return
	}
	s.activity.Publish(ports.ActivityEvent{
		Type:   eventType,
		PostID: postID,
		Actor:  actor,
		At:     time.Now().UTC(),
	})
}
