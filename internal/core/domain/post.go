package domain

import "errors"

var ErrPostNotFound = errors.New("post not found")
var ErrNotPostOwner = errors.New("not the post owner")
var ErrEmptyBody = errors.New("post body cannot be empty")
var ErrEmptyComment = errors.New("comment cannot be empty")

// Comment is owned exclusively by its parent post; it has no identity of
// its own and is never deleted individually.
type Comment struct {
	Username string `json:"username" bson:"username"`
	Text     string `json:"text" bson:"text"`
}

// Post is the core content aggregate. Author and Body are immutable after
// creation; Likes only ever increases and Comments is append-only.
type Post struct {
	ID       string    `json:"id" bson:"_id,omitempty"`
	Author   string    `json:"author" bson:"author"`
	Body     string    `json:"body" bson:"body"`
	Likes    int64     `json:"likes" bson:"likes"`
	Comments []Comment `json:"comments" bson:"comments"`
}
