package models

import "time"

// Notice defines the notice board model based on the 'notices' table
type Notice struct {
	ID          int64          `json:"id" db:"id" example:"1"`
	Title       string         `json:"title" db:"title" example:"Exam schedule published"`
	Description string         `json:"description" db:"description"`
	Audience    NoticeAudience `json:"audience" db:"audience" example:"STUDENTS"`
	PublishedBy int64          `json:"publishedBy" db:"published_by" example:"1"`
	PublishedAt time.Time      `json:"publishedAt" db:"published_at"`
	ExpiresAt   *time.Time     `json:"expiresAt,omitempty" db:"expires_at"`
}
