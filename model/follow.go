package model

import "time"

/*

Follow is the directed follow edge between two users

FollowerID: user who follows
FollowingID: user being followed
CreatedAt: time when the edge is created

Edge rows are created or destroyed by the follow toggle, never updated in
place. Counter adjustments on both endpoints happen in the same
transaction as the edge mutation.

*/

type Follow struct {
	FollowerID  int64 `gorm:"primaryKey"`
	FollowingID int64 `gorm:"primaryKey"`
	CreatedAt   time.Time
}
