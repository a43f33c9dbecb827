package feed

import (
	"time"

	"github.com/Luismorlan/instamini/model"
)

// postRow is the raw listing row: score and created_at are already
// coalesced by the query (candidate_score to 0, created_at to the legacy
// timestamp), so both scan as non-null.
type postRow struct {
	PostID    int64
	UserID    int64
	Type      string
	Photo     *string
	VideoID   *string
	Likes     int
	Score     float64
	CreatedAt time.Time
}

type commentRow struct {
	CommentID int64
	UserID    int64
	Username  *string
	Text      string
	Timestamp time.Time
}

type notificationRow struct {
	ID        int64
	Text      string
	IsRead    bool
	CreatedAt time.Time
}

// isoTime renders any temporal value as ISO-8601 regardless of the
// store's native temporal type.
func isoTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

func toPostView(r postRow) model.PostView {
	return model.PostView{
		PostID:    r.PostID,
		UserID:    r.UserID,
		Type:      r.Type,
		Photo:     r.Photo,
		VideoID:   r.VideoID,
		Likes:     r.Likes,
		Score:     r.Score,
		CreatedAt: isoTime(r.CreatedAt),
	}
}

func toPostViews(rows []postRow) []model.PostView {
	views := make([]model.PostView, 0, len(rows))
	for _, r := range rows {
		views = append(views, toPostView(r))
	}
	return views
}

func toCommentView(r commentRow) model.CommentView {
	return model.CommentView{
		CommentID: r.CommentID,
		UserID:    r.UserID,
		Username:  r.Username,
		Text:      r.Text,
		Timestamp: isoTime(r.Timestamp),
	}
}

func toNotificationView(r notificationRow) model.NotificationView {
	return model.NotificationView{
		ID:        r.ID,
		Text:      r.Text,
		IsRead:    r.IsRead,
		CreatedAt: isoTime(r.CreatedAt),
	}
}
