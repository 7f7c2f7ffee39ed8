package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/diirtv/stations/pkg/internal/database"
	"github.com/diirtv/stations/pkg/internal/models"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const PlaylistPageSize = 100

func GetPlaylistWithID(ctx context.Context, id string) (models.Playlist, error) {
	var playlist models.Playlist
	if err := database.C.WithContext(ctx).Where("id = ?", id).First(&playlist).Error; err != nil {
		return playlist, notFoundOr(err, "playlist")
	}
	return playlist, nil
}

// getOwnedPlaylist returns the playlist when it belongs to the station.
func getOwnedPlaylist(ctx context.Context, id, stationID string) (models.Playlist, error) {
	playlist, err := GetPlaylistWithID(ctx, id)
	if err != nil {
		return playlist, err
	}
	if playlist.OwnerID != stationID {
		return playlist, ErrUnauthorized(fmt.Errorf("playlist belongs to another station"))
	}
	return playlist, nil
}

func ListMyPlaylists(ctx context.Context, cred Credentials, in AuthenticityInput, stationID string, cursor *string) (Page[models.Playlist], error) {
	if _, _, err := AuthorizeStation(ctx, cred, in, stationID); err != nil {
		return Page[models.Playlist]{}, err
	}
	tx := database.C.WithContext(ctx).Model(&models.Playlist{}).Where("owner_id = ?", stationID)
	return Paginate[models.Playlist](tx, nil, PageOptions{Take: PlaylistPageSize, Cursor: cursor})
}

func ListPlaylistItems(ctx context.Context, playlistID string, cursor *string) (Page[models.PlaylistItem], error) {
	if _, err := GetPlaylistWithID(ctx, playlistID); err != nil {
		return Page[models.PlaylistItem]{}, err
	}
	tx := database.C.WithContext(ctx).Model(&models.PlaylistItem{}).Where("playlist_id = ?", playlistID)
	return Paginate[models.PlaylistItem](tx, nil, PageOptions{Cursor: cursor})
}

type PublishPlaylists struct {
	PublishID      string
	Items          []models.PlaylistItem
	IsInWatchLater bool
}

// CheckPublishPlaylists reports which of the station's playlists hold the publish and
// whether it is in the station's watch later list.
func CheckPublishPlaylists(ctx context.Context, cred Credentials, in AuthenticityInput, stationID, publishID string) (PublishPlaylists, error) {
	out := PublishPlaylists{PublishID: publishID, Items: []models.PlaylistItem{}}
	if _, _, err := AuthorizeStation(ctx, cred, in, stationID); err != nil {
		return out, err
	}

	tx := database.C.WithContext(ctx)
	if err := tx.
		Where("publish_id = ? AND playlist_id IN (?)", publishID,
			tx.Model(&models.Playlist{}).Select("id").Where("owner_id = ?", stationID)).
		Find(&out.Items).Error; err != nil {
		return out, fmt.Errorf("unable to list playlist items: %v", err)
	}

	var count int64
	if err := tx.Model(&models.WatchLater{}).
		Where("station_id = ? AND publish_id = ?", stationID, publishID).
		Count(&count).Error; err != nil {
		return out, fmt.Errorf("unable to check watch later: %v", err)
	}
	out.IsInWatchLater = count > 0
	return out, nil
}

type AddToNewPlaylistInput struct {
	AuthenticityInput
	StationID   string `validate:"required"`
	Name        string `validate:"required"`
	Description *string
	PublishID   string `validate:"required"`
}

// AddToNewPlaylist creates a playlist holding the publish. The playlist takes the
// publish thumbnail.
func AddToNewPlaylist(ctx context.Context, cred Credentials, in AddToNewPlaylistInput) (models.Playlist, error) {
	var playlist models.Playlist
	if _, _, err := AuthorizeStation(ctx, cred, in.AuthenticityInput, in.StationID); err != nil {
		return playlist, err
	}
	name := strings.TrimSpace(in.Name)
	if len(name) == 0 {
		return playlist, ErrBadUserInput("playlist name is required")
	}
	publish, err := GetPublishWithID(ctx, in.PublishID)
	if err != nil {
		return playlist, err
	}

	playlist = models.Playlist{
		OwnerID:     in.StationID,
		Name:        name,
		Description: in.Description,
		Thumbnail:   publish.Thumbnail,
	}
	err = database.C.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&playlist).Error; err != nil {
			return err
		}
		item := models.PlaylistItem{PlaylistID: playlist.ID, PublishID: publish.ID}
		return tx.Omit(clause.Associations).Create(&item).Error
	})
	if err != nil {
		return playlist, fmt.Errorf("unable to create playlist: %v", err)
	}
	return playlist, nil
}

type AddToPlaylistInput struct {
	AuthenticityInput
	StationID  string `validate:"required"`
	PlaylistID string `validate:"required"`
	PublishID  string `validate:"required"`
}

// AddToPlaylist adds the publish unless the playlist already holds it.
func AddToPlaylist(ctx context.Context, cred Credentials, in AddToPlaylistInput) error {
	if _, _, err := AuthorizeStation(ctx, cred, in.AuthenticityInput, in.StationID); err != nil {
		return err
	}
	if _, err := getOwnedPlaylist(ctx, in.PlaylistID, in.StationID); err != nil {
		return err
	}
	if _, err := GetPublishWithID(ctx, in.PublishID); err != nil {
		return err
	}

	item := models.PlaylistItem{PlaylistID: in.PlaylistID, PublishID: in.PublishID}
	if err := database.C.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&item).Error; err != nil {
		return fmt.Errorf("unable to add playlist item: %v", err)
	}
	return nil
}

type PlaylistItemStatus struct {
	PlaylistID   string `validate:"required"`
	IsInPlaylist bool
}

type UpdatePlaylistsInput struct {
	AuthenticityInput
	StationID string               `validate:"required"`
	PublishID string               `validate:"required"`
	Playlists []PlaylistItemStatus `validate:"dive"`
}

// UpdatePlaylists puts the publish into every playlist flagged in, and takes it out of
// every playlist flagged out.
func UpdatePlaylists(ctx context.Context, cred Credentials, in UpdatePlaylistsInput) error {
	if len(in.Playlists) == 0 {
		return ErrBadUserInput("at least one playlist is required")
	}
	if _, _, err := AuthorizeStation(ctx, cred, in.AuthenticityInput, in.StationID); err != nil {
		return err
	}

	idx := lo.Uniq(lo.Map(in.Playlists, func(item PlaylistItemStatus, _ int) string {
		return item.PlaylistID
	}))
	var owned int64
	if err := database.C.WithContext(ctx).
		Model(&models.Playlist{}).
		Where("id IN ? AND owner_id = ?", idx, in.StationID).
		Count(&owned).Error; err != nil {
		return fmt.Errorf("unable to check playlists: %v", err)
	}
	if int(owned) != len(idx) {
		return ErrUnauthorized(fmt.Errorf("some playlists belong to another station"))
	}

	additions, removals := lo.FilterReject(in.Playlists, func(item PlaylistItemStatus, _ int) bool {
		return item.IsInPlaylist
	})
	return database.C.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range additions {
			row := models.PlaylistItem{PlaylistID: item.PlaylistID, PublishID: in.PublishID}
			if err := tx.Omit(clause.Associations).
				Clauses(clause.OnConflict{DoNothing: true}).
				Create(&row).Error; err != nil {
				return err
			}
		}
		if len(removals) > 0 {
			ids := lo.Map(removals, func(item PlaylistItemStatus, _ int) string {
				return item.PlaylistID
			})
			if err := tx.Where("playlist_id IN ? AND publish_id = ?", ids, in.PublishID).
				Delete(&models.PlaylistItem{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

type UpdatePlaylistInput struct {
	AuthenticityInput
	StationID   string `validate:"required"`
	PlaylistID  string `validate:"required"`
	Name        *string
	Description *string
}

func UpdatePlaylist(ctx context.Context, cred Credentials, in UpdatePlaylistInput) (models.Playlist, error) {
	var playlist models.Playlist
	if _, _, err := AuthorizeStation(ctx, cred, in.AuthenticityInput, in.StationID); err != nil {
		return playlist, err
	}
	playlist, err := getOwnedPlaylist(ctx, in.PlaylistID, in.StationID)
	if err != nil {
		return playlist, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if len(name) == 0 {
			return playlist, ErrBadUserInput("playlist name is required")
		}
		playlist.Name = name
	}
	if in.Description != nil {
		playlist.Description = in.Description
	}
	if err := database.C.WithContext(ctx).Omit(clause.Associations).Save(&playlist).Error; err != nil {
		return playlist, fmt.Errorf("unable to update playlist: %v", err)
	}
	return playlist, nil
}

func DeletePlaylist(ctx context.Context, cred Credentials, in AuthenticityInput, stationID, playlistID string) error {
	if _, _, err := AuthorizeStation(ctx, cred, in, stationID); err != nil {
		return err
	}
	if _, err := getOwnedPlaylist(ctx, playlistID, stationID); err != nil {
		return err
	}
	return database.C.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", playlistID).Delete(&models.PlaylistItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", playlistID).Delete(&models.Playlist{}).Error
	})
}
