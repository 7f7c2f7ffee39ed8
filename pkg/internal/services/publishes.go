package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/diirtv/stations/pkg/internal/database"
	"github.com/diirtv/stations/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PublishNotifier interface {
	PublishUpdated(ctx context.Context, publishID string) error
}

type FileRemover interface {
	DeleteFiles(ctx context.Context, publishRef string) error
}

func GetPublishWithID(ctx context.Context, id string) (models.Publish, error) {
	var publish models.Publish
	if err := database.C.WithContext(ctx).
		Where("id = ? AND deleting = ?", id, false).
		Preload("Playback").
		First(&publish).Error; err != nil {
		return publish, notFoundOr(err, "publish")
	}
	return publish, nil
}

// GetPublishForViewer returns the publish when the viewer may see it. Private and draft
// publishes are only visible to stations sharing the creator's owner.
func GetPublishForViewer(ctx context.Context, id string, requestorID *string) (models.Publish, error) {
	publish, err := GetPublishWithID(ctx, id)
	if err != nil {
		return publish, err
	}
	if publish.Visibility == models.PublishVisibilityPublic {
		if requestorID != nil {
			AddPublishView(publish.ID, *requestorID)
		}
		return publish, nil
	}
	if requestorID != nil {
		creator, err := GetStationWithID(ctx, publish.CreatorID)
		if err != nil {
			return publish, err
		}
		if owner, err := IsStationOwner(ctx, creator, *requestorID); err != nil {
			return publish, err
		} else if owner {
			return publish, nil
		}
	}
	return publish, ErrNotFound("publish")
}

type FetchMyPublishesInput struct {
	AuthenticityInput
	CreatorID string   `validate:"required"`
	Kind      FeedKind `validate:"omitempty,oneof=all videos podcasts blogs adds"`
	Cursor    *string
}

func FetchMyPublishes(ctx context.Context, cred Credentials, in FetchMyPublishesInput) (Page[models.Publish], error) {
	if _, _, err := AuthorizeStation(ctx, cred, in.AuthenticityInput, in.CreatorID); err != nil {
		return Page[models.Publish]{}, err
	}
	tx := database.C.WithContext(ctx).
		Model(&models.Publish{}).
		Where("creator_id = ? AND deleting = ?", in.CreatorID, false)
	tx = FilterPublishWithKind(tx, in.Kind)
	return Paginate[models.Publish](tx, nil, PageOptions{Cursor: in.Cursor})
}

// ListCreatorPublishes lists the public publishes of a station, newest first.
func ListCreatorPublishes(ctx context.Context, creatorID string, kind FeedKind, cursor *string) (Page[models.Publish], error) {
	tx := database.C.WithContext(ctx).Model(&models.Publish{}).Where("creator_id = ?", creatorID)
	tx = FilterPublishListable(tx)
	tx = FilterPublishWithKind(tx, kind)
	return Paginate[models.Publish](tx, nil, PageOptions{Cursor: cursor})
}

type CreateDraftPublishInput struct {
	AuthenticityInput
	CreatorID string `validate:"required"`
	Filename  string `validate:"required"`
}

func CreateDraftPublish(ctx context.Context, cred Credentials, in CreateDraftPublishInput) (models.Publish, error) {
	var publish models.Publish
	if _, _, err := AuthorizeStation(ctx, cred, in.AuthenticityInput, in.CreatorID); err != nil {
		return publish, err
	}

	publish = models.Publish{
		CreatorID:   in.CreatorID,
		Title:       lo.ToPtr(in.Filename),
		Filename:    lo.ToPtr(in.Filename),
		ThumbSource: models.ThumbSourceGenerated,
		Visibility:  models.PublishVisibilityDraft,
		Uploading:   true,
	}
	if err := database.C.WithContext(ctx).Omit(clause.Associations).Create(&publish).Error; err != nil {
		return publish, fmt.Errorf("unable to create draft publish: %v", err)
	}
	return publish, nil
}

type UpdatePublishInput struct {
	AuthenticityInput
	StationID         string `validate:"required"`
	PublishID         string `validate:"required"`
	ContentURI        *string
	ContentRef        *string
	Content           *string
	Thumbnail         *string
	ThumbnailRef      *string
	ThumbSource       *string `validate:"omitempty,oneof=custom generated"`
	Title             *string
	Description       *string
	PrimaryCategory   *string
	SecondaryCategory *string
	Kind              *string
	Visibility        *string `validate:"omitempty,oneof=draft private public"`
	Tags              []string
}

func UpdatePublish(ctx context.Context, cred Credentials, in UpdatePublishInput) (models.Publish, error) {
	var publish models.Publish
	if _, _, err := AuthorizeStation(ctx, cred, in.AuthenticityInput, in.StationID); err != nil {
		return publish, err
	}
	publish, err := GetPublishWithID(ctx, in.PublishID)
	if err != nil {
		return publish, err
	}
	if publish.CreatorID != in.StationID {
		return publish, ErrUnauthorized(fmt.Errorf("publish belongs to another station"))
	}

	for _, category := range []*string{in.PrimaryCategory, in.SecondaryCategory} {
		if category != nil && !lo.Contains(models.Categories, *category) {
			return publish, ErrBadUserInput(fmt.Sprintf("unknown category %q", *category))
		}
	}
	if in.Kind != nil && !lo.Contains(models.PublishKinds, *in.Kind) {
		return publish, ErrBadUserInput(fmt.Sprintf("unknown kind %q", *in.Kind))
	}

	if in.ContentURI != nil {
		publish.ContentURI = in.ContentURI
	}
	if in.ContentRef != nil {
		publish.ContentRef = in.ContentRef
	}
	if in.Content != nil {
		publish.Content = in.Content
	}
	if in.Thumbnail != nil {
		publish.Thumbnail = in.Thumbnail
	}
	if in.ThumbnailRef != nil {
		publish.ThumbnailRef = in.ThumbnailRef
	}
	if in.ThumbSource != nil {
		publish.ThumbSource = *in.ThumbSource
	}
	if in.Title != nil {
		publish.Title = in.Title
	}
	if in.Description != nil {
		publish.Description = in.Description
	}
	if in.PrimaryCategory != nil {
		publish.PrimaryCategory = in.PrimaryCategory
	}
	if in.SecondaryCategory != nil {
		publish.SecondaryCategory = in.SecondaryCategory
	}
	if in.Kind != nil {
		publish.Kind = in.Kind
	}
	if publish.Playback != nil && publish.Playback.Duration > 0 && publish.Playback.Duration <= models.ShortMaxDuration {
		publish.Kind = lo.ToPtr(models.PublishKindShort)
	}
	publish.Visibility = lo.FromPtrOr(in.Visibility, models.PublishVisibilityPrivate)
	if in.Tags != nil {
		publish.Tags = lo.Uniq(in.Tags)
	}
	publish.Language = DetectLanguage(strings.TrimSpace(lo.FromPtr(publish.Title) + " " + lo.FromPtr(publish.Description)))

	if err := database.C.WithContext(ctx).Omit(clause.Associations).Save(&publish).Error; err != nil {
		return publish, fmt.Errorf("unable to update publish: %v", err)
	}
	return publish, nil
}

type PublishActionInput struct {
	AuthenticityInput
	StationID string `validate:"required"`
	PublishID string `validate:"required"`
}

// DeletePublish marks the publish as deleting and asks the upload service to drop its
// files. Rows are purged later by PurgeDeletedPublishes.
func DeletePublish(ctx context.Context, cred Credentials, files FileRemover, in PublishActionInput) error {
	if _, _, err := AuthorizeStation(ctx, cred, in.AuthenticityInput, in.StationID); err != nil {
		return err
	}
	publish, err := GetPublishWithID(ctx, in.PublishID)
	if err != nil {
		return err
	}
	if publish.CreatorID != in.StationID {
		return ErrUnauthorized(fmt.Errorf("publish belongs to another station"))
	}

	if err := database.C.WithContext(ctx).Model(&models.Publish{}).Where("id = ?", publish.ID).Updates(map[string]any{
		"deleting":    true,
		"deleting_at": time.Now(),
	}).Error; err != nil {
		return fmt.Errorf("unable to mark publish as deleting: %v", err)
	}

	if files != nil {
		ref := PublishStorageRef(publish)
		fireAndForget("delete-publish-files", func(ctx context.Context) error {
			return files.DeleteFiles(ctx, ref)
		})
	}
	return nil
}

// PublishStorageRef is the directory holding every file of the publish.
func PublishStorageRef(publish models.Publish) string {
	if publish.ContentRef != nil && len(*publish.ContentRef) > 0 {
		if idx := strings.LastIndex(*publish.ContentRef, "/"); idx > 0 {
			return (*publish.ContentRef)[:idx]
		}
	}
	return fmt.Sprintf("publishes/%s/%s", publish.CreatorID, publish.ID)
}

// DefaultPurgeGrace is how long a deleted publish stays before its rows are purged.
const DefaultPurgeGrace = 24 * time.Hour

// PurgeDeletedPublishes removes rows marked deleting before the grace period with their
// dependent rows.
func PurgeDeletedPublishes(grace time.Duration) {
	var ids []string
	if err := database.C.Model(&models.Publish{}).
		Where("deleting = ? AND deleting_at < ?", true, time.Now().Add(-grace)).
		Pluck("id", &ids).Error; err != nil {
		log.Error().Err(err).Msg("An error occurred when listing deleted publishes...")
		return
	}
	if len(ids) == 0 {
		return
	}

	err := database.C.Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{
			&models.Like{}, &models.DisLike{}, &models.WatchLater{}, &models.PlaylistItem{},
			&models.ReadBookmark{}, &models.Report{}, &models.PlaybackLink{}, &models.PublishView{},
		} {
			if err := tx.Where("publish_id IN ?", ids).Delete(model).Error; err != nil {
				return err
			}
		}
		var commentIDs []string
		if err := tx.Model(&models.Comment{}).Where("publish_id IN ?", ids).Pluck("id", &commentIDs).Error; err != nil {
			return err
		}
		if len(commentIDs) > 0 {
			if err := tx.Where("comment_id IN ?", commentIDs).Delete(&models.CommentLike{}).Error; err != nil {
				return err
			}
			if err := tx.Where("comment_id IN ?", commentIDs).Delete(&models.CommentDisLike{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", commentIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
		}
		return tx.Where("id IN ?", ids).Delete(&models.Publish{}).Error
	})
	if err != nil {
		log.Error().Err(err).Msg("An error occurred when purging deleted publishes...")
		return
	}
	log.Info().Int("count", len(ids)).Msg("Purged deleted publishes.")
}

// TogglePublishLike likes the publish, or removes the like when already liked. A like
// always clears the station's dislike.
func TogglePublishLike(ctx context.Context, cred Credentials, notifier PublishNotifier, in PublishActionInput) error {
	return togglePublishReaction(ctx, cred, notifier, in,
		&models.Like{StationID: in.StationID, PublishID: in.PublishID}, &models.DisLike{})
}

func TogglePublishDisLike(ctx context.Context, cred Credentials, notifier PublishNotifier, in PublishActionInput) error {
	return togglePublishReaction(ctx, cred, notifier, in,
		&models.DisLike{StationID: in.StationID, PublishID: in.PublishID}, &models.Like{})
}

func togglePublishReaction(ctx context.Context, cred Credentials, notifier PublishNotifier, in PublishActionInput, reaction, opposite any) error {
	if _, _, err := AuthorizeStation(ctx, cred, in.AuthenticityInput, in.StationID); err != nil {
		return err
	}
	if _, err := GetPublishWithID(ctx, in.PublishID); err != nil {
		return err
	}

	pair := map[string]any{"station_id": in.StationID, "publish_id": in.PublishID}
	err := database.C.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return toggleReaction(tx, pair, reaction, opposite)
	})
	if err != nil {
		return fmt.Errorf("unable to toggle reaction: %v", err)
	}

	notifyPublishUpdated(notifier, in.PublishID)
	return nil
}

func notifyPublishUpdated(notifier PublishNotifier, publishID string) {
	if notifier == nil {
		return
	}
	fireAndForget("publish-updated", func(ctx context.Context) error {
		return notifier.PublishUpdated(ctx, publishID)
	})
}

// toggleReaction removes the row matching pair if present, otherwise creates reaction
// and removes the opposite row. Must run inside a transaction.
func toggleReaction(tx *gorm.DB, pair map[string]any, reaction, opposite any) error {
	var count int64
	if err := tx.Model(reaction).Where(pair).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return tx.Where(pair).Delete(reaction).Error
	}

	if err := tx.Create(reaction).Error; err != nil {
		return err
	}
	if opposite != nil {
		if err := tx.Where(pair).Delete(opposite).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetPlaybackLink returns the playback link of the publish, nil while it is transcoding.
func GetPlaybackLink(ctx context.Context, publishID string) (*models.PlaybackLink, error) {
	var links []models.PlaybackLink
	if err := database.C.WithContext(ctx).Where("publish_id = ?", publishID).Limit(1).Find(&links).Error; err != nil {
		return nil, fmt.Errorf("unable to get playback link: %v", err)
	}
	if len(links) == 0 {
		return nil, nil
	}
	return &links[0], nil
}
