package model

/*

PostLike is the like edge between a user and a post

UserID: user who liked
PostID: post being liked

The composite primary key makes the pair unique. Edge existence is the
source of truth for the liked state; Post.Likes is adjusted only when an
edge is created or destroyed.

*/

type PostLike struct {
	UserID int64 `gorm:"primaryKey"`
	PostID int64 `gorm:"primaryKey"`
}

func (PostLike) TableName() string {
	return "likes"
}
