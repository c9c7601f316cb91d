package service

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pulsefeed/content-service/internal/core/domain"
	"github.com/pulsefeed/content-service/internal/core/ports"
)

// stubPostRepo mimics the store's atomic update primitives under a mutex so
// concurrent service calls behave like concurrent $inc/$push operations.
type stubPostRepo struct {
	mu     sync.Mutex
	nextID int
	posts  map[string]*domain.Post
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: make(map[string]*domain.Post)}
}

func (r *stubPostRepo) Insert(_ context.Context, post *domain.Post) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	created := *post
	created.ID = string(rune('a' + r.nextID - 1))
	created.Comments = []domain.Comment{}
	stored := created
	r.posts[created.ID] = &stored
	return &created, nil
}

func (r *stubPostRepo) FindAll(_ context.Context) ([]domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Post{}
	for _, p := range r.posts {
		clone := *p
		clone.Comments = append([]domain.Comment{}, p.Comments...)
		out = append(out, clone)
	}
	return out, nil
}

func (r *stubPostRepo) DeleteOwned(_ context.Context, id, author string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return domain.ErrPostNotFound
	}
	if p.Author != author {
		return domain.ErrNotPostOwner
	}
	delete(r.posts, id)
	return nil
}

func (r *stubPostRepo) IncrementLikes(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return domain.ErrPostNotFound
	}
	p.Likes++
	return nil
}

func (r *stubPostRepo) AppendComment(_ context.Context, id string, comment domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return domain.ErrPostNotFound
	}
	p.Comments = append(p.Comments, comment)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []ports.ActivityEvent
}

func (p *recordingPublisher) Publish(event ports.ActivityEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) count(eventType string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, e := range p.events {
		if e.Type == eventType {
			n++
		}
	}
	return n
}

func newPostService() (*PostService, *stubPostRepo, *recordingPublisher) {
	repo := newStubPostRepo()
	pub := &recordingPublisher{}
	return NewPostService(repo, pub, zerolog.Nop()), repo, pub
}

func TestPostService_Create(t *testing.T) {
	svc, _, pub := newPostService()

	post, err := svc.Create(context.Background(), "alice", "hello world")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if post.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if post.Author != "alice" || post.Body != "hello world" {
		t.Fatalf("unexpected post: %+v", post)
	}
	if post.Likes != 0 || len(post.Comments) != 0 {
		t.Fatalf("new post must start with 0 likes and no comments")
	}
	if pub.count(ports.ActivityPostCreated) != 1 {
		t.Fatalf("expected one post_created event")
	}
}

func TestPostService_Create_EmptyBody(t *testing.T) {
	svc, _, pub := newPostService()

	for _, body := range []string{"", "   "} {
		if _, err := svc.Create(context.Background(), "alice", body); err != domain.ErrEmptyBody {
			t.Fatalf("body %q: expected ErrEmptyBody, got %v", body, err)
		}
	}
	if len(pub.events) != 0 {
		t.Fatalf("rejected create must not publish activity")
	}
}

func TestPostService_ConcurrentLikes(t *testing.T) {
	svc, repo, _ := newPostService()
	ctx := context.Background()

	post, err := svc.Create(ctx, "alice", "like me")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if err := svc.Like(ctx, "bob", post.ID); err != nil {
				t.Errorf("like failed: %v", err)
			}
		}()
	}
	wg.Wait()

	posts, _ := repo.FindAll(ctx)
	if len(posts) != 1 {
		t.Fatalf("expected one post, got %d", len(posts))
	}
	if posts[0].Likes != n {
		t.Fatalf("expected %d likes, got %d (lost updates)", n, posts[0].Likes)
	}
}

func TestPostService_ConcurrentComments(t *testing.T) {
	svc, repo, _ := newPostService()
	ctx := context.Background()

	post, err := svc.Create(ctx, "alice", "discuss")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	for _, user := range []string{"bob", "carol"} {
		go func(u string) {
			defer wg.Done()
			if err := svc.Comment(ctx, u, post.ID, "from "+u); err != nil {
				t.Errorf("comment by %s failed: %v", u, err)
			}
		}(user)
	}
	wg.Wait()

	posts, _ := repo.FindAll(ctx)
	if got := len(posts[0].Comments); got != 2 {
		t.Fatalf("expected 2 comments, got %d", got)
	}
	seen := map[string]bool{}
	for _, cm := range posts[0].Comments {
		seen[cm.Username] = true
	}
	if !seen["bob"] || !seen["carol"] {
		t.Fatalf("both commenters must appear, got %v", posts[0].Comments)
	}
}

func TestPostService_Comment_EmptyText(t *testing.T) {
	svc, _, _ := newPostService()
	ctx := context.Background()

	post, _ := svc.Create(ctx, "alice", "discuss")
	if err := svc.Comment(ctx, "bob", post.ID, ""); err != domain.ErrEmptyComment {
		t.Fatalf("expected ErrEmptyComment, got %v", err)
	}
}

func TestPostService_Like_UnknownPost(t *testing.T) {
	svc, _, _ := newPostService()

	if err := svc.Like(context.Background(), "bob", "missing"); err != domain.ErrPostNotFound {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestPostService_Delete_Ownership(t *testing.T) {
	svc, repo, _ := newPostService()
	ctx := context.Background()

	post, err := svc.Create(ctx, "alice", "mine")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(ctx, "mallory", post.ID); err != domain.ErrNotPostOwner {
		t.Fatalf("non-author delete: expected ErrNotPostOwner, got %v", err)
	}
	posts, _ := repo.FindAll(ctx)
	if len(posts) != 1 {
		t.Fatalf("post must survive a non-author delete")
	}

	if err := svc.Delete(ctx, "alice", post.ID); err != nil {
		t.Fatalf("author delete failed: %v", err)
	}
	posts, _ = repo.FindAll(ctx)
	if len(posts) != 0 {
		t.Fatalf("post must be gone after author delete")
	}

	if err := svc.Delete(ctx, "alice", post.ID); err != domain.ErrPostNotFound {
		t.Fatalf("deleting a deleted post: expected ErrPostNotFound, got %v", err)
	}
}

// TestEndToEndFlow walks the whole service layer: register A, login A,
// A creates a post, B likes it, A deletes it.
func TestEndToEndFlow(t *testing.T) {
	ctx := context.Background()
	authSvc, _, _ := newAuthService()
	postSvc, repo, _ := newPostService()

	if _, err := authSvc.Register(ctx, "userA", "Valid12!", "Valid12!"); err != nil {
		t.Fatalf("register A failed: %v", err)
	}
	tokenA, _, err := authSvc.Login(ctx, "userA", "Valid12!")
	if err != nil {
		t.Fatalf("login A failed: %v", err)
	}
	a, err := authSvc.Resolve(ctx, tokenA)
	if err != nil {
		t.Fatalf("resolve A failed: %v", err)
	}

	post, err := postSvc.Create(ctx, a.Username, "hello")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := postSvc.Like(ctx, "userB", post.ID); err != nil {
		t.Fatalf("like failed: %v", err)
	}
	posts, _ := repo.FindAll(ctx)
	if posts[0].Likes != 1 {
		t.Fatalf("expected 1 like, got %d", posts[0].Likes)
	}

	if err := postSvc.Delete(ctx, a.Username, post.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	posts, _ = repo.FindAll(ctx)
	if len(posts) != 0 {
		t.Fatalf("deleted post still listed")
	}
}
