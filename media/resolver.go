package media

import (
	"github.com/Luismorlan/instamini/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Resolver maps a post id to the opaque media descriptor stored on the
// post row. No byte resolution or filesystem lookup happens in process,
// the proxy endpoint owns that.
type Resolver struct {
	DB *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{DB: db}
}

func (r *Resolver) Resolve(postID int64) (*model.MediaRef, error) {
	var rows []model.MediaRef
	result := r.DB.Model(&model.Post{}).
		Select("photo AS file_id, video_id, type").
		Where("post_id = ?", postID).
		Scan(&rows)
	if result.Error != nil {
		return nil, errors.Wrapf(result.Error, "media lookup failed for post %d", postID)
	}
	if len(rows) != 1 {
		return nil, errors.Wrapf(model.ErrNotFound, "post %d", postID)
	}
	return &rows[0], nil
}
