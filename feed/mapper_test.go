package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIsoTime(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 30, 45, 0, time.UTC)
	require.Equal(t, "2024-05-01T12:30:45Z", isoTime(ts))
}

func TestToPostViewKeepsNullableReferences(t *testing.T) {
	photo := "file-abc"
	view := toPostView(postRow{
		PostID:    7,
		UserID:    3,
		Type:      "photo",
		Photo:     &photo,
		Likes:     2,
		Score:     1.5,
		CreatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	})

	require.Equal(t, int64(7), view.PostID)
	require.Equal(t, "file-abc", *view.Photo)
	require.Nil(t, view.VideoID)
	require.Equal(t, 1.5, view.Score)
	require.Equal(t, "2024-05-01T00:00:00Z", view.CreatedAt)
}

func TestToPostViewsPreservesOrder(t *testing.T) {
	rows := []postRow{
		{PostID: 2, CreatedAt: time.Now()},
		{PostID: 1, CreatedAt: time.Now()},
	}
	views := toPostViews(rows)
	require.Len(t, views, 2)
	require.Equal(t, int64(2), views[0].PostID)
	require.Equal(t, int64(1), views[1].PostID)
}
