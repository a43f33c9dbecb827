package model

import "time"

// Comment is immutable once created and ordered by its insertion id.
type Comment struct {
	CommentID int64 `gorm:"primaryKey;autoIncrement"`
	PostID    int64
	UserID    int64
	Text      string
	Timestamp time.Time `gorm:"autoCreateTime"`
}
