package feed

import (
	"github.com/Luismorlan/instamini/model"
	"github.com/Luismorlan/instamini/utils"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	// listingLimitCap bounds a caller supplied limit, the original API
	// accepted any value.
	listingLimitCap = 100

	// postColumns is the shared listing projection. candidate_score
	// coalesces to 0 and created_at falls back to the legacy timestamp
	// column on rows that predate created_at.
	postColumns = "post_id, user_id, type, photo, video_id, likes, COALESCE(candidate_score, 0) AS score, COALESCE(created_at, timestamp) AS created_at"
)

/*

Service computes the ordering for every read-only listing: explore,
per-user feed, profile posts and caption search, plus the single item
lookups. It owns no mutation, toggles live in the social package.

Cache is optional. When set, the first explore page is served from redis
within a short TTL.

*/

type Service struct {
	DB    *gorm.DB
	Cache *Cache
}

func NewService(db *gorm.DB, cache *Cache) *Service {
	return &Service{DB: db, Cache: cache}
}

// sanitizeListing validates pagination: limit must be positive and is
// capped, page floors at 1.
func sanitizeListing(limit, page int) (int, int, error) {
	if limit <= 0 {
		return 0, 0, errors.Wrap(model.ErrInvalidInput, "limit should be > 0")
	}
	limit = utils.Min(limit, listingLimitCap)
	if page < 1 {
		page = 1
	}
	return limit, page, nil
}

// Explore lists posts globally ordered by score, then like count, then
// recency, with post id as the final tie break so the order is total.
func (s *Service) Explore(limit, page int) ([]model.PostView, error) {
	limit, page, err := sanitizeListing(limit, page)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil && page == 1 {
		if views, ok := s.Cache.GetExplore(limit); ok {
			return views, nil
		}
	}

	var rows []postRow
	result := s.DB.Model(&model.Post{}).
		Select(postColumns).
		Order("score DESC, likes DESC, created_at DESC, post_id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Scan(&rows)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "explore listing failed")
	}

	views := toPostViews(rows)
	if s.Cache != nil && page == 1 {
		s.Cache.SetExplore(limit, views)
	}
	return views, nil
}

// ForUser lists posts authored by accounts the user follows, strictly by
// recency. Score is intentionally not applied here.
func (s *Service) ForUser(userID int64, limit, page int) ([]model.PostView, error) {
	limit, page, err := sanitizeListing(limit, page)
	if err != nil {
		return nil, err
	}

	followed := s.DB.Model(&model.Follow{}).
		Select("following_id").
		Where("follower_id = ?", userID)

	var rows []postRow
	result := s.DB.Model(&model.Post{}).
		Select(postColumns).
		Where("user_id IN (?)", followed).
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Scan(&rows)
	if result.Error != nil {
		return nil, errors.Wrapf(result.Error, "feed listing failed for user %d", userID)
	}
	return toPostViews(rows), nil
}

// UserPosts lists one author's posts by recency.
func (s *Service) UserPosts(userID int64, limit, page int) ([]model.PostView, error) {
	limit, page, err := sanitizeListing(limit, page)
	if err != nil {
		return nil, err
	}

	var rows []postRow
	result := s.DB.Model(&model.Post{}).
		Select(postColumns).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Scan(&rows)
	if result.Error != nil {
		return nil, errors.Wrapf(result.Error, "profile listing failed for user %d", userID)
	}
	return toPostViews(rows), nil
}

// Search matches the caption by case-insensitive substring. There is no
// relevance ranking beyond score then recency.
func (s *Service) Search(query string, limit int) ([]model.PostView, error) {
	limit, _, err := sanitizeListing(limit, 1)
	if err != nil {
		return nil, err
	}

	var rows []postRow
	result := s.DB.Model(&model.Post{}).
		Select(postColumns).
		Where("caption ILIKE ?", "%"+query+"%").
		Order("score DESC, created_at DESC").
		Limit(limit).
		Scan(&rows)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "caption search failed")
	}
	return toPostViews(rows), nil
}

// GetPost returns a single post with its comments in insertion order.
// The post and comment reads are two independent queries, a post deleted
// in between is tolerated.
func (s *Service) GetPost(postID int64) (*model.PostDetail, error) {
	var rows []postRow
	result := s.DB.Model(&model.Post{}).
		Select(postColumns).
		Where("post_id = ?", postID).
		Scan(&rows)
	if result.Error != nil {
		return nil, errors.Wrapf(result.Error, "post lookup failed for %d", postID)
	}
	if len(rows) != 1 {
		return nil, errors.Wrapf(model.ErrNotFound, "post %d", postID)
	}

	var crows []commentRow
	result = s.DB.Model(&model.Comment{}).
		Select("comments.comment_id, comments.user_id, users.username, comments.text, comments.timestamp").
		Joins("LEFT JOIN users ON comments.user_id = users.user_id").
		Where("comments.post_id = ?", postID).
		Order("comment_id ASC").
		Scan(&crows)
	if result.Error != nil {
		return nil, errors.Wrapf(result.Error, "comment lookup failed for post %d", postID)
	}

	detail := &model.PostDetail{
		PostView: toPostView(rows[0]),
		Comments: make([]model.CommentView, 0, len(crows)),
	}
	for _, r := range crows {
		detail.Comments = append(detail.Comments, toCommentView(r))
	}
	return detail, nil
}

// GetUser returns one profile record.
func (s *Service) GetUser(userID int64) (*model.User, error) {
	var user model.User
	result := s.DB.Where("user_id = ?", userID).Limit(1).Find(&user)
	if result.Error != nil {
		return nil, errors.Wrapf(result.Error, "user lookup failed for %d", userID)
	}
	if result.RowsAffected != 1 {
		return nil, errors.Wrapf(model.ErrNotFound, "user %d", userID)
	}
	return &user, nil
}

// IsFollowing reports whether the viewer currently follows the target.
func (s *Service) IsFollowing(viewerID, targetID int64) (bool, error) {
	var count int64
	result := s.DB.Model(&model.Follow{}).
		Where("follower_id = ? AND following_id = ?", viewerID, targetID).
		Count(&count)
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "follow state lookup failed")
	}
	return count > 0, nil
}

// Notifications lists a user's notifications, newest first.
func (s *Service) Notifications(userID int64, limit int) ([]model.NotificationView, error) {
	limit, _, err := sanitizeListing(limit, 1)
	if err != nil {
		return nil, err
	}

	var rows []notificationRow
	result := s.DB.Model(&model.Notification{}).
		Select("id, text, is_read, created_at").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Scan(&rows)
	if result.Error != nil {
		return nil, errors.Wrapf(result.Error, "notification listing failed for user %d", userID)
	}

	views := make([]model.NotificationView, 0, len(rows))
	for _, r := range rows {
		views = append(views, toNotificationView(r))
	}
	return views, nil
}
