package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/diirtv/stations/pkg/internal/database"
	"github.com/diirtv/stations/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type AddressNotifier interface {
	AddressUpdated(ctx context.Context, payload map[string]any) error
}

type TranscodeFinishedInput struct {
	PublishID string  `json:"publishId" validate:"required"`
	VideoID   string  `json:"videoId"`
	Thumbnail string  `json:"thumbnail"`
	Preview   string  `json:"preview"`
	Duration  float64 `json:"duration" validate:"gte=0"`
	HLS       string  `json:"hls"`
	DASH      string  `json:"dash"`
	Error     *string `json:"error"`
}

func getPublishForWebhook(tx *gorm.DB, id string) (models.Publish, error) {
	var publish models.Publish
	if err := tx.Where("id = ?", id).First(&publish).Error; err != nil {
		return publish, notFoundOr(err, "publish")
	}
	return publish, nil
}

// HandleTranscodeFinished stores the playback links of a transcoded publish and ends its
// uploading state.
func HandleTranscodeFinished(ctx context.Context, in TranscodeFinishedInput) error {
	tx := database.C.WithContext(ctx)
	publish, err := getPublishForWebhook(tx, in.PublishID)
	if err != nil {
		return err
	}

	if in.Error != nil && len(*in.Error) > 0 {
		log.Warn().Str("publish", publish.ID).Str("reason", *in.Error).Msg("Transcoding failed for publish...")
		return tx.Model(&models.Publish{}).Where("id = ?", publish.ID).Updates(map[string]any{
			"uploading":       false,
			"transcode_error": true,
		}).Error
	}

	return tx.Transaction(func(tx *gorm.DB) error {
		var playback models.PlaybackLink
		err := tx.Where("publish_id = ?", publish.ID).First(&playback).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		playback.PublishID = publish.ID
		playback.VideoID = in.VideoID
		playback.Thumbnail = in.Thumbnail
		playback.Preview = in.Preview
		playback.Duration = in.Duration
		playback.HLS = in.HLS
		playback.DASH = in.DASH
		if err := tx.Save(&playback).Error; err != nil {
			return fmt.Errorf("unable to save playback link: %v", err)
		}

		changes := map[string]any{
			"uploading":       false,
			"transcode_error": false,
		}
		if publish.Thumbnail == nil && len(in.Thumbnail) > 0 {
			changes["thumbnail"] = in.Thumbnail
			changes["thumb_source"] = models.ThumbSourceGenerated
		}
		if in.Duration > 0 && in.Duration <= models.ShortMaxDuration {
			changes["kind"] = models.PublishKindShort
		}
		return tx.Model(&models.Publish{}).Where("id = ?", publish.ID).Updates(changes).Error
	})
}

type UploadFailedInput struct {
	PublishID string `json:"publishId" validate:"required"`
}

func HandleUploadFailed(ctx context.Context, in UploadFailedInput) error {
	tx := database.C.WithContext(ctx)
	publish, err := getPublishForWebhook(tx, in.PublishID)
	if err != nil {
		return err
	}
	return tx.Model(&models.Publish{}).Where("id = ?", publish.ID).Updates(map[string]any{
		"uploading":    false,
		"upload_error": true,
	}).Error
}

type AddressUpdatedInput struct {
	Address   string  `json:"address" validate:"required"`
	StationID *string `json:"stationId"`
}

// HandleAddressUpdated forwards on-chain activity of an address to the wallet service.
func HandleAddressUpdated(ctx context.Context, notifier AddressNotifier, in AddressUpdatedInput) error {
	if notifier == nil {
		return fmt.Errorf("wallet service is not configured")
	}
	payload := map[string]any{"address": in.Address}
	if in.StationID != nil {
		payload["stationId"] = *in.StationID
	}
	fireAndForget("address-updated", func(ctx context.Context) error {
		return notifier.AddressUpdated(ctx, payload)
	})
	return nil
}
