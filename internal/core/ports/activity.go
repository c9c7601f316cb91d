package ports

import "time"

// Activity types emitted after successful post mutations.
const (
	ActivityPostCreated   = "post_created"
	ActivityPostDeleted   = "post_deleted"
	ActivityPostLiked     = "post_liked"
	ActivityPostCommented = "post_commented"
)

// ActivityEvent records one completed mutation for asynchronous fan-out
// (audit logging, metrics). It is fire-and-forget: request handling never
// waits on its processing.
type ActivityEvent struct {
	Type   string
	PostID string
	Actor  string
	At     time.Time
}

// ActivityPublisher enqueues activity events. Implementations must preserve
// per-post ordering.
type ActivityPublisher interface {
	Publish(event ActivityEvent)
}
