package social

import (
	"time"

	"github.com/Luismorlan/instamini/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Toggle results, also the "status" field on the wire.
const (
	StatusLiked      = "liked"
	StatusUnliked    = "unliked"
	StatusSaved      = "saved"
	StatusUnsaved    = "unsaved"
	StatusFollowed   = "followed"
	StatusUnfollowed = "unfollowed"
)

// ErrSelfFollow is returned on a self-follow attempt. Callers translate
// it to a 400.
var ErrSelfFollow = errors.New("cannot follow yourself")

/*

Service toggles the like, save and follow edges and keeps the
denormalized counters (posts.likes, users.followers, users.following)
consistent with the edge mutation.

Every toggle runs as one gorm transaction: existence check, edge
mutation, counter mutation, and for follow the counter re-read. Edge
inserts use ON CONFLICT DO NOTHING so two concurrent "not exists" checks
leave at most one edge. The counter increments of such a race are not
deduplicated, that drift is accepted.

*/

type Service struct {
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// ToggleLike inserts or removes the like edge for (userID, postID) and
// adjusts the post's like counter by one in the same transaction.
func (s *Service) ToggleLike(userID, postID int64) (string, error) {
	var status string
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var edge model.PostLike
		result := tx.Where("user_id = ? AND post_id = ?", userID, postID).Limit(1).Find(&edge)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 1 {
			if err := tx.Where("user_id = ? AND post_id = ?", userID, postID).
				Delete(&model.PostLike{}).Error; err != nil {
				return err
			}
			if err := tx.Model(&model.Post{}).Where("post_id = ?", postID).
				UpdateColumn("likes", gorm.Expr("likes - 1")).Error; err != nil {
				return err
			}
			status = StatusUnliked
			return nil
		}

		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.PostLike{UserID: userID, PostID: postID}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Post{}).Where("post_id = ?", postID).
			UpdateColumn("likes", gorm.Expr("likes + 1")).Error; err != nil {
			return err
		}
		status = StatusLiked
		return nil
	})
	if err != nil {
		return "", errors.Wrapf(err, "like toggle failed for user %d post %d", userID, postID)
	}
	return status, nil
}

// ToggleSave inserts or removes the save edge. No counter side effect.
func (s *Service) ToggleSave(userID, postID int64) (string, error) {
	var status string
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var edge model.PostSave
		result := tx.Where("user_id = ? AND post_id = ?", userID, postID).Limit(1).Find(&edge)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 1 {
			if err := tx.Where("user_id = ? AND post_id = ?", userID, postID).
				Delete(&model.PostSave{}).Error; err != nil {
				return err
			}
			status = StatusUnsaved
			return nil
		}

		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.PostSave{UserID: userID, PostID: postID}).Error; err != nil {
			return err
		}
		status = StatusSaved
		return nil
	})
	if err != nil {
		return "", errors.Wrapf(err, "save toggle failed for user %d post %d", userID, postID)
	}
	return status, nil
}

// counterPair scans the coalesced counters of one user row.
type counterPair struct {
	Followers int
	Following int
}

// ToggleFollow inserts or removes the follow edge and adjusts the
// followers counter of the target and the following counter of the
// follower. The returned counts are re-read inside the transaction, not
// computed from the delta, so they reflect any concurrent adjustment.
func (s *Service) ToggleFollow(followerID, targetID int64) (*model.FollowToggleResult, error) {
	if followerID == targetID {
		return nil, ErrSelfFollow
	}

	res := &model.FollowToggleResult{}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var edge model.Follow
		result := tx.Where("follower_id = ? AND following_id = ?", followerID, targetID).
			Limit(1).Find(&edge)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 1 {
			if err := tx.Where("follower_id = ? AND following_id = ?", followerID, targetID).
				Delete(&model.Follow{}).Error; err != nil {
				return err
			}
			// Clamp at 0. This masks pre-existing counter drift instead of
			// failing on it.
			if err := tx.Model(&model.User{}).Where("user_id = ?", targetID).
				UpdateColumn("followers", gorm.Expr("CASE WHEN followers > 0 THEN followers - 1 ELSE 0 END")).Error; err != nil {
				return err
			}
			if err := tx.Model(&model.User{}).Where("user_id = ?", followerID).
				UpdateColumn("following", gorm.Expr("CASE WHEN following > 0 THEN following - 1 ELSE 0 END")).Error; err != nil {
				return err
			}
			res.Status = StatusUnfollowed
		} else {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&model.Follow{FollowerID: followerID, FollowingID: targetID, CreatedAt: time.Now().UTC()}).Error; err != nil {
				return err
			}
			if err := tx.Model(&model.User{}).Where("user_id = ?", targetID).
				UpdateColumn("followers", gorm.Expr("COALESCE(followers, 0) + 1")).Error; err != nil {
				return err
			}
			if err := tx.Model(&model.User{}).Where("user_id = ?", followerID).
				UpdateColumn("following", gorm.Expr("COALESCE(following, 0) + 1")).Error; err != nil {
				return err
			}
			res.Status = StatusFollowed
		}

		var target, follower counterPair
		if err := tx.Model(&model.User{}).
			Select("COALESCE(followers, 0) AS followers, COALESCE(following, 0) AS following").
			Where("user_id = ?", targetID).Scan(&target).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.User{}).
			Select("COALESCE(followers, 0) AS followers, COALESCE(following, 0) AS following").
			Where("user_id = ?", followerID).Scan(&follower).Error; err != nil {
			return err
		}
		res.TargetFollowers = target.Followers
		res.FollowerFollowing = follower.Following
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "follow toggle failed for follower %d target %d", followerID, targetID)
	}
	return res, nil
}

// CreateComment appends an immutable comment to a post.
func (s *Service) CreateComment(userID, postID int64, text string) (*model.Comment, error) {
	comment := model.Comment{
		PostID: postID,
		UserID: userID,
		Text:   text,
	}
	if err := s.DB.Create(&comment).Error; err != nil {
		return nil, errors.Wrapf(err, "comment creation failed for user %d post %d", userID, postID)
	}
	return &comment, nil
}
