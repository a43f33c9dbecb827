package model

import "time"

/*

Post is a single photo or video entry shown in explore and feeds

PostID: primary key
UserID: author of the post, references users
Type: "photo" or "video"
Photo: file reference of the photo on the bot file host, null for videos
VideoID: file reference of the video, null for photos
Caption: plain text caption, matched by substring search
Likes: denormalized count of rows in likes for this post, only the like
	toggle ever writes it
CandidateScore: externally computed ranking signal, null until scored,
	read as 0 when null
CreatedAt: canonical creation time, null on rows that predate the column,
	readers fall back to Timestamp
Timestamp: legacy creation time, always set

*/

type Post struct {
	PostID         int64 `gorm:"primaryKey;autoIncrement"`
	UserID         int64
	Type           string
	Photo          *string
	VideoID        *string
	Caption        string
	Likes          int
	CandidateScore *float64
	CreatedAt      *time.Time `gorm:"autoCreateTime:false"`
	Timestamp      time.Time  `gorm:"autoCreateTime"`
}
