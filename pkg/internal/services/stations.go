package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/diirtv/stations/pkg/internal/database"
	"github.com/diirtv/stations/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

const stationLatestPublishes = 20

func GetStationWithID(ctx context.Context, id string) (models.Station, error) {
	var station models.Station
	if err := database.C.WithContext(ctx).Where("id = ?", id).First(&station).Error; err != nil {
		return station, notFoundOr(err, "station")
	}
	return station, nil
}

func GetStationWithName(ctx context.Context, name string) (models.Station, error) {
	var station models.Station
	if err := database.C.WithContext(ctx).Where("name = ?", strings.ToLower(name)).First(&station).Error; err != nil {
		return station, notFoundOr(err, "station")
	}
	return station, nil
}

func ListStationsByOwner(ctx context.Context, owner string) ([]models.Station, error) {
	var stations []models.Station
	if err := database.C.WithContext(ctx).
		Where("owner = ?", strings.ToLower(owner)).
		Order("created_at ASC").
		Find(&stations).Error; err != nil {
		return nil, fmt.Errorf("unable to list stations: %v", err)
	}
	return stations, nil
}

func ListStationsByAccount(ctx context.Context, accountID string) ([]models.Station, error) {
	var stations []models.Station
	if err := database.C.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at ASC").
		Find(&stations).Error; err != nil {
		return nil, fmt.Errorf("unable to list stations: %v", err)
	}
	return stations, nil
}

type CreateStationInput struct {
	AuthenticityInput
	Name    string `validate:"required,min=3,max=64"`
	TokenID *int64
}

func CreateStation(ctx context.Context, cred Credentials, in CreateStationInput) (models.Station, error) {
	var station models.Station
	account, err := ValidateAuthenticity(ctx, cred, in.AuthenticityInput)
	if err != nil {
		return station, err
	}

	name := strings.ToLower(in.Name)
	var count int64
	if err := database.C.WithContext(ctx).Model(&models.Station{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return station, fmt.Errorf("unable to count existing station: %v", err)
	} else if count > 0 {
		return station, ErrBadRequest("station name is already taken")
	}

	station = models.Station{
		AccountID:   account.ID,
		Owner:       strings.ToLower(in.Owner),
		Name:        name,
		DisplayName: in.Name,
		TokenID:     in.TokenID,
	}
	if err := database.C.WithContext(ctx).Create(&station).Error; err != nil {
		return station, fmt.Errorf("unable to create station: %v", err)
	}

	log.Info().Str("station", station.ID).Str("name", station.Name).Msg("Station created.")
	return station, nil
}

type UpdateStationInput struct {
	AuthenticityInput
	StationID        string `validate:"required"`
	DisplayName      *string
	Image            *string
	BannerImage      *string
	DefaultColor     *string
	WatchPreferences []string
	ReadPreferences  []string
}

func UpdateStation(ctx context.Context, cred Credentials, in UpdateStationInput) (models.Station, error) {
	_, station, err := AuthorizeStation(ctx, cred, in.AuthenticityInput, in.StationID)
	if err != nil {
		return station, err
	}

	if in.DisplayName != nil {
		if len(strings.TrimSpace(*in.DisplayName)) == 0 {
			return station, ErrBadUserInput("display name cannot be empty")
		}
		station.DisplayName = *in.DisplayName
	}
	if in.Image != nil {
		station.Image = *in.Image
	}
	if in.BannerImage != nil {
		station.BannerImage = *in.BannerImage
	}
	if in.DefaultColor != nil {
		station.DefaultColor = *in.DefaultColor
	}
	if in.WatchPreferences != nil {
		prefs, err := normalizePreferences(in.WatchPreferences)
		if err != nil {
			return station, err
		}
		station.WatchPreferences = prefs
	}
	if in.ReadPreferences != nil {
		prefs, err := normalizePreferences(in.ReadPreferences)
		if err != nil {
			return station, err
		}
		station.ReadPreferences = prefs
	}

	if err := database.C.WithContext(ctx).Save(&station).Error; err != nil {
		return station, fmt.Errorf("unable to update station: %v", err)
	}
	return station, nil
}

func normalizePreferences(in []string) ([]string, error) {
	prefs := lo.Uniq(in)
	for _, item := range prefs {
		if !lo.Contains(models.Categories, item) {
			return nil, ErrBadUserInput(fmt.Sprintf("unknown category %q", item))
		}
	}
	return prefs, nil
}

type FollowInput struct {
	AuthenticityInput
	FollowerID string `validate:"required"`
	FolloweeID string `validate:"required"`
}

// ToggleFollow follows the followee, or unfollows when already following. Returns the
// resulting state.
func ToggleFollow(ctx context.Context, cred Credentials, in FollowInput) (bool, error) {
	if in.FollowerID == in.FolloweeID {
		return false, ErrBadRequest("a station cannot follow itself")
	}
	if _, _, err := AuthorizeStation(ctx, cred, in.AuthenticityInput, in.FollowerID); err != nil {
		return false, err
	}
	if _, err := GetStationWithID(ctx, in.FolloweeID); err != nil {
		return false, err
	}

	following := false
	err := database.C.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var follow models.Follow
		err := tx.Where("follower_id = ? AND following_id = ?", in.FollowerID, in.FolloweeID).First(&follow).Error
		if err == nil {
			return tx.Delete(&follow).Error
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		following = true
		return tx.Create(&models.Follow{FollowerID: in.FollowerID, FollowingID: in.FolloweeID}).Error
	})
	if err != nil {
		return false, fmt.Errorf("unable to toggle follow: %v", err)
	}
	return following, nil
}

func CountFollowers(ctx context.Context, stationID string) (int64, error) {
	var count int64
	err := database.C.WithContext(ctx).Model(&models.Follow{}).Where("following_id = ?", stationID).Count(&count).Error
	return count, err
}

func CountFollowing(ctx context.Context, stationID string) (int64, error) {
	var count int64
	err := database.C.WithContext(ctx).Model(&models.Follow{}).Where("follower_id = ?", stationID).Count(&count).Error
	return count, err
}

func ListFollowers(ctx context.Context, stationID string) ([]models.Station, error) {
	var stations []models.Station
	err := database.C.WithContext(ctx).
		Where("id IN (?)", database.C.Model(&models.Follow{}).Select("follower_id").Where("following_id = ?", stationID)).
		Find(&stations).Error
	return stations, err
}

func ListFollowing(ctx context.Context, stationID string) ([]models.Station, error) {
	var stations []models.Station
	err := database.C.WithContext(ctx).
		Where("id IN (?)", database.C.Model(&models.Follow{}).Select("following_id").Where("follower_id = ?", stationID)).
		Find(&stations).Error
	return stations, err
}

func IsFollowing(ctx context.Context, followerID, stationID string) (bool, error) {
	var count int64
	err := database.C.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, stationID).
		Count(&count).Error
	return count > 0, err
}

func CountStationPublishes(ctx context.Context, stationID string) (int64, error) {
	var count int64
	err := database.C.WithContext(ctx).
		Model(&models.Publish{}).
		Where("creator_id = ? AND deleting = ?", stationID, false).
		Count(&count).Error
	return count, err
}

func ListStationLatestPublishes(ctx context.Context, stationID string) ([]models.Publish, error) {
	var publishes []models.Publish
	err := database.C.WithContext(ctx).
		Where("creator_id = ? AND deleting = ?", stationID, false).
		Order("created_at DESC").
		Limit(stationLatestPublishes).
		Find(&publishes).Error
	return publishes, err
}

// IsStationOwner tells whether the requestor station shares the owner of station.
func IsStationOwner(ctx context.Context, station models.Station, requestorID string) (bool, error) {
	var requestor models.Station
	if err := database.C.WithContext(ctx).Where("id = ?", requestorID).Limit(1).Find(&requestor).Error; err != nil {
		return false, err
	}
	if len(requestor.ID) == 0 {
		return false, nil
	}
	return strings.EqualFold(station.Owner, requestor.Owner), nil
}
