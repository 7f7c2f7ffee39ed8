package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/diirtv/stations/pkg/internal/database"
	"github.com/diirtv/stations/pkg/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DontRecommendInput struct {
	AuthenticityInput
	RequestorID string `validate:"required"`
	TargetID    string `validate:"required"`
}

func ListDontRecommends(ctx context.Context, cred Credentials, in AuthenticityInput, stationID string, cursor *string) (Page[models.DontRecommend], error) {
	if _, _, err := AuthorizeStation(ctx, cred, in, stationID); err != nil {
		return Page[models.DontRecommend]{}, err
	}
	tx := database.C.WithContext(ctx).Model(&models.DontRecommend{}).Where("requestor_id = ?", stationID)
	return Paginate[models.DontRecommend](tx, nil, PageOptions{Cursor: cursor})
}

// AddDontRecommend hides the target's publishes from the requestor's feeds. Adding an
// existing pair returns the stored row.
func AddDontRecommend(ctx context.Context, cred Credentials, in DontRecommendInput) (models.DontRecommend, error) {
	var item models.DontRecommend
	if _, _, err := AuthorizeStation(ctx, cred, in.AuthenticityInput, in.RequestorID); err != nil {
		return item, err
	}
	if in.RequestorID == in.TargetID {
		return item, ErrBadRequest("a station cannot hide itself")
	}
	if _, err := GetStationWithID(ctx, in.TargetID); err != nil {
		return item, err
	}

	tx := database.C.WithContext(ctx)
	if err := tx.Where("requestor_id = ? AND target_id = ?", in.RequestorID, in.TargetID).First(&item).Error; err == nil {
		return item, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return item, fmt.Errorf("unable to get dont recommend: %v", err)
	}

	item = models.DontRecommend{RequestorID: in.RequestorID, TargetID: in.TargetID}
	if err := tx.Omit(clause.Associations).Create(&item).Error; err != nil {
		return item, fmt.Errorf("unable to create dont recommend: %v", err)
	}
	InvalidateDontRecommendTargets(ctx, in.RequestorID)
	return item, nil
}

// RemoveDontRecommend deletes the pair if present. Removing a missing pair succeeds.
func RemoveDontRecommend(ctx context.Context, cred Credentials, in DontRecommendInput) error {
	if _, _, err := AuthorizeStation(ctx, cred, in.AuthenticityInput, in.RequestorID); err != nil {
		return err
	}
	if err := database.C.WithContext(ctx).
		Where("requestor_id = ? AND target_id = ?", in.RequestorID, in.TargetID).
		Delete(&models.DontRecommend{}).Error; err != nil {
		return fmt.Errorf("unable to delete dont recommend: %v", err)
	}
	InvalidateDontRecommendTargets(ctx, in.RequestorID)
	return nil
}
