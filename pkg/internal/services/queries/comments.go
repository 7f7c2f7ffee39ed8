package queries

import (
	"context"
	"fmt"

	"github.com/diirtv/stations/pkg/internal/database"
	"github.com/diirtv/stations/pkg/internal/models"
	"github.com/samber/lo"
)

type CommentMeta struct {
	LikesCount    int64 `json:"likesCount"`
	DisLikesCount int64 `json:"disLikesCount"`
	Liked         bool  `json:"liked"`
	DisLiked      bool  `json:"disLiked"`
}

type CommentWithMeta struct {
	models.Comment
	Meta CommentMeta
}

func CompleteCommentMeta(ctx context.Context, requestorID *string, in ...models.Comment) ([]CommentWithMeta, error) {
	out := lo.Map(in, func(item models.Comment, _ int) CommentWithMeta {
		return CommentWithMeta{Comment: item}
	})
	if len(in) == 0 {
		return out, nil
	}
	idx := lo.Map(in, func(item models.Comment, _ int) string {
		return item.ID
	})
	tx := database.C.WithContext(ctx)

	type row struct {
		CommentID string
		Count     int64
	}
	count := func(model any) (map[string]int64, error) {
		var rows []row
		if err := tx.Model(model).
			Select("comment_id, COUNT(id) AS count").
			Where("comment_id IN ?", idx).
			Group("comment_id").
			Find(&rows).Error; err != nil {
			return nil, err
		}
		return lo.SliceToMap(rows, func(item row) (string, int64) {
			return item.CommentID, item.Count
		}), nil
	}
	marks := func(model any) (map[string]bool, error) {
		var marked []string
		if err := tx.Model(model).
			Where("station_id = ? AND comment_id IN ?", *requestorID, idx).
			Pluck("comment_id", &marked).Error; err != nil {
			return nil, err
		}
		return lo.SliceToMap(marked, func(item string) (string, bool) {
			return item, true
		}), nil
	}

	likes, err := count(&models.CommentLike{})
	if err != nil {
		return out, fmt.Errorf("unable to count comment likes: %v", err)
	}
	dislikes, err := count(&models.CommentDisLike{})
	if err != nil {
		return out, fmt.Errorf("unable to count comment dislikes: %v", err)
	}
	var liked, disliked map[string]bool
	if requestorID != nil && len(*requestorID) > 0 {
		if liked, err = marks(&models.CommentLike{}); err != nil {
			return out, err
		}
		if disliked, err = marks(&models.CommentDisLike{}); err != nil {
			return out, err
		}
	}

	for i := range out {
		id := out[i].ID
		out[i].Meta = CommentMeta{
			LikesCount:    likes[id],
			DisLikesCount: dislikes[id],
			Liked:         liked[id],
			DisLiked:      disliked[id],
		}
	}
	return out, nil
}
