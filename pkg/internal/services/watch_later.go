package services

import (
	"context"
	"fmt"

	"github.com/diirtv/stations/pkg/internal/database"
	"github.com/diirtv/stations/pkg/internal/models"
	"gorm.io/gorm/clause"
)

const WatchLaterPageSize = 50

type WatchLaterInput struct {
	AuthenticityInput
	StationID string `validate:"required"`
	PublishID string `validate:"required"`
}

func ListWatchLater(ctx context.Context, cred Credentials, in AuthenticityInput, stationID string, cursor *string) (Page[models.WatchLater], error) {
	if _, _, err := AuthorizeStation(ctx, cred, in, stationID); err != nil {
		return Page[models.WatchLater]{}, err
	}
	tx := database.C.WithContext(ctx).Model(&models.WatchLater{}).Where("station_id = ?", stationID)
	return Paginate[models.WatchLater](tx, nil, PageOptions{Take: WatchLaterPageSize, Cursor: cursor})
}

func AddToWatchLater(ctx context.Context, cred Credentials, in WatchLaterInput) error {
	if _, _, err := AuthorizeStation(ctx, cred, in.AuthenticityInput, in.StationID); err != nil {
		return err
	}
	if _, err := GetPublishWithID(ctx, in.PublishID); err != nil {
		return err
	}
	item := models.WatchLater{StationID: in.StationID, PublishID: in.PublishID}
	if err := database.C.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&item).Error; err != nil {
		return fmt.Errorf("unable to add watch later: %v", err)
	}
	return nil
}

type RemoveFromWatchLaterInput struct {
	AuthenticityInput
	StationID string `validate:"required"`
	ID        string `validate:"required"`
}

// RemoveFromWatchLater deletes a watch later item owned by the station.
func RemoveFromWatchLater(ctx context.Context, cred Credentials, in RemoveFromWatchLaterInput) error {
	if _, _, err := AuthorizeStation(ctx, cred, in.AuthenticityInput, in.StationID); err != nil {
		return err
	}
	var item models.WatchLater
	if err := database.C.WithContext(ctx).Where("id = ?", in.ID).First(&item).Error; err != nil {
		return notFoundOr(err, "watch later item")
	}
	if item.StationID != in.StationID {
		return ErrUnauthorized(fmt.Errorf("watch later item belongs to another station"))
	}
	if err := database.C.WithContext(ctx).Delete(&item).Error; err != nil {
		return fmt.Errorf("unable to remove watch later: %v", err)
	}
	return nil
}
