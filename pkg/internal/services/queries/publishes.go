package queries

import (
	"context"
	"fmt"

	"github.com/diirtv/stations/pkg/internal/database"
	"github.com/diirtv/stations/pkg/internal/models"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

type PublishMeta struct {
	LikesCount    int64 `json:"likesCount"`
	DisLikesCount int64 `json:"disLikesCount"`
	TipsCount     int64 `json:"tipsCount"`
	CommentsCount int64 `json:"commentsCount"`
	Liked         bool  `json:"liked"`
	DisLiked      bool  `json:"disLiked"`
	Bookmarked    bool  `json:"bookmarked"`
}

type PublishWithMeta struct {
	models.Publish
	Meta PublishMeta
}

type countRow struct {
	PublishID string
	Count     int64
}

func countByPublish(tx *gorm.DB, model any, idx []string, extra ...any) (map[string]int64, error) {
	var rows []countRow
	q := tx.Model(model).Select("publish_id, COUNT(id) AS count").Where("publish_id IN ?", idx)
	if len(extra) > 0 {
		q = q.Where(extra[0], extra[1:]...)
	}
	if err := q.Group("publish_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return lo.SliceToMap(rows, func(item countRow) (string, int64) {
		return item.PublishID, item.Count
	}), nil
}

func requestorMarks(tx *gorm.DB, model any, column, requestorID string, idx []string) (map[string]bool, error) {
	var marked []string
	if err := tx.Model(model).Where(column+" = ? AND publish_id IN ?", requestorID, idx).Pluck("publish_id", &marked).Error; err != nil {
		return nil, err
	}
	return lo.SliceToMap(marked, func(item string) (string, bool) {
		return item, true
	}), nil
}

// CompletePublishMeta batch loads reaction, tip and comment counters of the publishes,
// and the requestor's own marks when a requestor is given.
func CompletePublishMeta(ctx context.Context, requestorID *string, in ...models.Publish) ([]PublishWithMeta, error) {
	out := lo.Map(in, func(item models.Publish, _ int) PublishWithMeta {
		return PublishWithMeta{Publish: item}
	})
	if len(in) == 0 {
		return out, nil
	}
	idx := lo.Map(in, func(item models.Publish, _ int) string {
		return item.ID
	})
	tx := database.C.WithContext(ctx)

	likes, err := countByPublish(tx, &models.Like{}, idx)
	if err != nil {
		return out, fmt.Errorf("unable to count likes: %v", err)
	}
	dislikes, err := countByPublish(tx, &models.DisLike{}, idx)
	if err != nil {
		return out, fmt.Errorf("unable to count dislikes: %v", err)
	}
	tips, err := countByPublish(tx, &models.Tip{}, idx)
	if err != nil {
		return out, fmt.Errorf("unable to count tips: %v", err)
	}
	comments, err := countByPublish(tx, &models.Comment{}, idx, "comment_type = ?", models.CommentTypePublish)
	if err != nil {
		return out, fmt.Errorf("unable to count comments: %v", err)
	}

	var liked, disliked, bookmarked map[string]bool
	if requestorID != nil && len(*requestorID) > 0 {
		if liked, err = requestorMarks(tx, &models.Like{}, "station_id", *requestorID, idx); err != nil {
			return out, err
		}
		if disliked, err = requestorMarks(tx, &models.DisLike{}, "station_id", *requestorID, idx); err != nil {
			return out, err
		}
		if bookmarked, err = requestorMarks(tx, &models.ReadBookmark{}, "profile_id", *requestorID, idx); err != nil {
			return out, err
		}
	}

	for i := range out {
		id := out[i].ID
		out[i].Meta = PublishMeta{
			LikesCount:    likes[id],
			DisLikesCount: dislikes[id],
			TipsCount:     tips[id],
			CommentsCount: comments[id],
			Liked:         liked[id],
			DisLiked:      disliked[id],
			Bookmarked:    bookmarked[id],
		}
	}
	return out, nil
}
