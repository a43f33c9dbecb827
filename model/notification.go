package model

import "time"

// Notification is read-only here, creation happens outside this service.
type Notification struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	UserID    int64
	Text      string
	IsRead    bool
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
