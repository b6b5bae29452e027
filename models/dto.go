package models

// GenerateRequest is the body of POST /api/generate.
type GenerateRequest struct {
	Link string `json:"link"`
}

// GenerateResponse carries the generated article back to the client.
type GenerateResponse struct {
	Content string `json:"content"`
}

type SignupRequest struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	RepeatPassword string `json:"repeatPassword"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// PostListResponse wraps a user's posts for the list endpoint.
type PostListResponse struct {
	Posts []BlogPost `json:"posts"`
}
