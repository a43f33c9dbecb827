package model

/*

API payload types shared between the services and the HTTP layer.

PostView is the wire representation of a post: score is the candidate
score coalesced to 0 and CreatedAt is the canonical creation time
coalesced to the legacy timestamp, formatted as ISO-8601.

*/

type PostView struct {
	PostID    int64   `json:"post_id"`
	UserID    int64   `json:"user_id"`
	Type      string  `json:"type"`
	Photo     *string `json:"photo"`
	VideoID   *string `json:"video_id"`
	Likes     int     `json:"likes"`
	Score     float64 `json:"score"`
	CreatedAt string  `json:"created_at"`
}

// PostDetail is a PostView plus its comments, returned by the single post
// lookup.
type PostDetail struct {
	PostView
	Comments []CommentView `json:"comments"`
}

// CommentView joins the comment with its author's username. Username is
// null when the author row no longer exists.
type CommentView struct {
	CommentID int64   `json:"comment_id"`
	UserID    int64   `json:"user_id"`
	Username  *string `json:"username"`
	Text      string  `json:"text"`
	Timestamp string  `json:"timestamp"`
}

// MediaRef is an opaque descriptor of a post's media, resolved to bytes
// by the external media proxy, not in process.
type MediaRef struct {
	FileID  *string `json:"file_id"`
	VideoID *string `json:"video_id"`
	Type    string  `json:"type"`
}

type NotificationView struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}

// FollowToggleResult carries the counters re-read after the toggle
// transaction, not the pre-computed delta.
type FollowToggleResult struct {
	Status            string `json:"status"`
	TargetFollowers   int    `json:"target_followers"`
	FollowerFollowing int    `json:"follower_following"`
}

type ToggleInput struct {
	UserID int64 `json:"user_id" binding:"required"`
	PostID int64 `json:"post_id" binding:"required"`
}

type CommentInput struct {
	UserID int64  `json:"user_id" binding:"required"`
	PostID int64  `json:"post_id" binding:"required"`
	Text   string `json:"text" binding:"required"`
}

type FollowToggleInput struct {
	FollowerID int64 `json:"follower_id" binding:"required"`
	TargetID   int64 `json:"target_id" binding:"required"`
}
