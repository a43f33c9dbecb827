package model

// PostSave is the save edge between a user and a post. Unlike PostLike it
// has no denormalized counter attached.
type PostSave struct {
	UserID int64 `gorm:"primaryKey"`
	PostID int64 `gorm:"primaryKey"`
}

func (PostSave) TableName() string {
	return "saved_posts"
}
