package models

import (
	"time"
)

// BlogPost is the persisted result of a successful pipeline run. A row is
// written exactly once, after transcription and generation both succeed, and
// is never updated afterwards.
type BlogPost struct {
	ID               string    `json:"id"`
	UserID           int64     `json:"-"`
	SourceLink       string    `json:"source_link"`
	SourceTitle      string    `json:"source_title"`
	GeneratedContent string    `json:"generated_content"`
	CreatedAt        time.Time `json:"created_at"`
}
