package handler

type createPostRequest struct {
	Body string `json:"body" validate:"required"`
}

type commentRequest struct {
	Text string `json:"text" validate:"required"`
}

type commentResponse struct {
	Username string `json:"username"`
	Text     string `json:"text"`
}

type postResponse struct {
	ID       string            `json:"id"`
	Author   string            `json:"author"`
	Body     string            `json:"body"`
	Likes    int64             `json:"likes"`
	Comments []commentResponse `json:"comments"`
}
