package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/diirtv/stations/pkg/internal/database"
	"github.com/diirtv/stations/pkg/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	CommentOrderCounts = "counts"
	CommentOrderNewest = "newest"
)

func GetCommentWithID(ctx context.Context, id string) (models.Comment, error) {
	var comment models.Comment
	if err := database.C.WithContext(ctx).Where("id = ?", id).First(&comment).Error; err != nil {
		return comment, notFoundOr(err, "comment")
	}
	return comment, nil
}

// ListPublishComments lists the top level comments of a publish. Ordering by counts puts
// the most replied comments first.
func ListPublishComments(ctx context.Context, publishID string, orderBy string, cursor *string) (Page[models.Comment], error) {
	order := OrderNewest
	if orderBy == CommentOrderCounts {
		order = []SortKey{{Column: "comments_count", Desc: true}, {Column: "created_at", Desc: true}}
	}
	tx := database.C.WithContext(ctx).
		Model(&models.Comment{}).
		Where("publish_id = ? AND comment_type = ?", publishID, models.CommentTypePublish)
	return Paginate[models.Comment](tx, nil, PageOptions{Cursor: cursor, Order: order})
}

func ListSubComments(ctx context.Context, commentID string, cursor *string) (Page[models.Comment], error) {
	tx := database.C.WithContext(ctx).
		Model(&models.Comment{}).
		Where("comment_id = ? AND comment_type = ?", commentID, models.CommentTypeComment)
	return Paginate[models.Comment](tx, nil, PageOptions{Cursor: cursor})
}

type CreateCommentInput struct {
	AuthenticityInput
	StationID   string  `validate:"required"`
	PublishID   string  `validate:"required"`
	CommentID   *string `validate:"required_if=CommentType COMMENT"`
	CommentType string  `validate:"required,oneof=PUBLISH COMMENT"`
	Content     string  `validate:"required"`
}

// CreateComment comments on a publish or replies to a comment. A reply bumps the reply
// counter of its parent in the same transaction.
func CreateComment(ctx context.Context, cred Credentials, notifier PublishNotifier, in CreateCommentInput) (models.Comment, error) {
	var comment models.Comment
	if _, _, err := AuthorizeStation(ctx, cred, in.AuthenticityInput, in.StationID); err != nil {
		return comment, err
	}
	content := strings.TrimSpace(in.Content)
	if len(content) == 0 {
		return comment, ErrBadUserInput("comment content is required")
	}
	if _, err := GetPublishWithID(ctx, in.PublishID); err != nil {
		return comment, err
	}

	comment = models.Comment{
		CreatorID:   in.StationID,
		PublishID:   in.PublishID,
		CommentType: in.CommentType,
		Content:     content,
	}
	if in.CommentType == models.CommentTypeComment {
		if in.CommentID == nil || len(*in.CommentID) == 0 {
			return comment, ErrBadUserInput("a reply needs the parent comment id")
		}
		parent, err := GetCommentWithID(ctx, *in.CommentID)
		if err != nil {
			return comment, err
		}
		if parent.PublishID != in.PublishID {
			return comment, ErrBadUserInput("parent comment belongs to another publish")
		}
		comment.CommentID = &parent.ID
	}

	err := database.C.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&comment).Error; err != nil {
			return err
		}
		if comment.CommentID != nil {
			return tx.Model(&models.Comment{}).
				Where("id = ?", *comment.CommentID).
				Update("comments_count", gorm.Expr("comments_count + ?", 1)).Error
		}
		return nil
	})
	if err != nil {
		return comment, fmt.Errorf("unable to create comment: %v", err)
	}

	notifyPublishUpdated(notifier, in.PublishID)
	return comment, nil
}

type CommentActionInput struct {
	AuthenticityInput
	StationID string `validate:"required"`
	CommentID string `validate:"required"`
}

// DeleteComment removes the comment with its replies and reactions.
func DeleteComment(ctx context.Context, cred Credentials, in CommentActionInput) error {
	if _, _, err := AuthorizeStation(ctx, cred, in.AuthenticityInput, in.StationID); err != nil {
		return err
	}
	comment, err := GetCommentWithID(ctx, in.CommentID)
	if err != nil {
		return err
	}
	if comment.CreatorID != in.StationID {
		return ErrUnauthorized(fmt.Errorf("comment belongs to another station"))
	}

	return database.C.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var idx []string
		if err := tx.Model(&models.Comment{}).Where("comment_id = ?", comment.ID).Pluck("id", &idx).Error; err != nil {
			return err
		}
		idx = append(idx, comment.ID)
		if err := tx.Where("comment_id IN ?", idx).Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("comment_id IN ?", idx).Delete(&models.CommentDisLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id IN ?", idx).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if comment.CommentID != nil {
			return tx.Model(&models.Comment{}).
				Where("id = ? AND comments_count > 0", *comment.CommentID).
				Update("comments_count", gorm.Expr("comments_count - ?", 1)).Error
		}
		return nil
	})
}

func ToggleCommentLike(ctx context.Context, cred Credentials, notifier PublishNotifier, in CommentActionInput) error {
	return toggleCommentReaction(ctx, cred, notifier, in,
		&models.CommentLike{StationID: in.StationID, CommentID: in.CommentID}, &models.CommentDisLike{})
}

func ToggleCommentDisLike(ctx context.Context, cred Credentials, notifier PublishNotifier, in CommentActionInput) error {
	return toggleCommentReaction(ctx, cred, notifier, in,
		&models.CommentDisLike{StationID: in.StationID, CommentID: in.CommentID}, &models.CommentLike{})
}

func toggleCommentReaction(ctx context.Context, cred Credentials, notifier PublishNotifier, in CommentActionInput, reaction, opposite any) error {
	if _, _, err := AuthorizeStation(ctx, cred, in.AuthenticityInput, in.StationID); err != nil {
		return err
	}
	comment, err := GetCommentWithID(ctx, in.CommentID)
	if err != nil {
		return err
	}

	pair := map[string]any{"station_id": in.StationID, "comment_id": in.CommentID}
	if err := database.C.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return toggleReaction(tx, pair, reaction, opposite)
	}); err != nil {
		return fmt.Errorf("unable to toggle comment reaction: %v", err)
	}

	notifyPublishUpdated(notifier, comment.PublishID)
	return nil
}

// GetLastComment returns the newest top level comment of the publish, nil when none.
func GetLastComment(ctx context.Context, publishID string) (*models.Comment, error) {
	var comments []models.Comment
	if err := database.C.WithContext(ctx).
		Where("publish_id = ? AND comment_type = ?", publishID, models.CommentTypePublish).
		Order("created_at DESC").
		Limit(1).
		Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("unable to get last comment: %v", err)
	}
	if len(comments) == 0 {
		return nil, nil
	}
	return &comments[0], nil
}
