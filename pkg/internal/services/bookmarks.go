package services

import (
	"context"
	"fmt"

	"github.com/diirtv/stations/pkg/internal/database"
	"github.com/diirtv/stations/pkg/internal/models"
	"gorm.io/gorm"
)

type BookmarkInput struct {
	AuthenticityInput
	ProfileID string `validate:"required"`
	PublishID string `validate:"required"`
}

// ToggleBookmark bookmarks the publish for the profile, or removes an existing bookmark.
// The returned bool reports whether the publish is bookmarked afterwards.
func ToggleBookmark(ctx context.Context, cred Credentials, in BookmarkInput) (bool, error) {
	if _, _, err := AuthorizeStation(ctx, cred, in.AuthenticityInput, in.ProfileID); err != nil {
		return false, err
	}
	if _, err := GetPublishWithID(ctx, in.PublishID); err != nil {
		return false, err
	}

	var bookmarked bool
	pair := map[string]any{"profile_id": in.ProfileID, "publish_id": in.PublishID}
	err := database.C.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := toggleReaction(tx, pair, &models.ReadBookmark{ProfileID: in.ProfileID, PublishID: in.PublishID}, nil); err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&models.ReadBookmark{}).Where(pair).Count(&count).Error; err != nil {
			return err
		}
		bookmarked = count > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("unable to toggle bookmark: %v", err)
	}
	return bookmarked, nil
}

func ListBookmarks(ctx context.Context, cred Credentials, in AuthenticityInput, profileID string, cursor *string) (Page[models.ReadBookmark], error) {
	if _, _, err := AuthorizeStation(ctx, cred, in, profileID); err != nil {
		return Page[models.ReadBookmark]{}, err
	}
	tx := database.C.WithContext(ctx).Model(&models.ReadBookmark{}).Where("profile_id = ?", profileID)
	return Paginate[models.ReadBookmark](tx, nil, PageOptions{Cursor: cursor})
}
