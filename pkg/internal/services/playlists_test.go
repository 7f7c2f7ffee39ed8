package services

import (
	"context"
	"testing"

	"github.com/diirtv/stations/pkg/internal/models"
	"github.com/samber/lo"
)

func TestPlaylists(t *testing.T) {
	setupTestDB(t)
	station, cred, in := seedMember(t, "curator")
	other, otherCred, otherIn := seedMember(t, "other")
	publish := seedPublish(t, station, 0, func(p *models.Publish) { p.Thumbnail = lo.ToPtr("thumb.jpg") })
	second := seedPublish(t, station, 1)
	ctx := context.Background()

	playlist, err := AddToNewPlaylist(ctx, cred, AddToNewPlaylistInput{
		AuthenticityInput: in,
		StationID:         station.ID,
		Name:              "Favourites",
		PublishID:         publish.ID,
	})
	if err != nil {
		t.Fatalf("AddToNewPlaylist failed: %v", err)
	}
	if lo.FromPtr(playlist.Thumbnail) != "thumb.jpg" {
		t.Errorf("expected playlist to take the publish thumbnail, got %v", playlist.Thumbnail)
	}

	for i := 0; i < 2; i++ {
		if err := AddToPlaylist(ctx, cred, AddToPlaylistInput{
			AuthenticityInput: in, StationID: station.ID, PlaylistID: playlist.ID, PublishID: second.ID,
		}); err != nil {
			t.Fatalf("attempt %d: AddToPlaylist failed: %v", i, err)
		}
	}
	if count := countRows(t, &models.PlaylistItem{}, "playlist_id = ?", playlist.ID); count != 2 {
		t.Errorf("expected 2 items, got %d", count)
	}

	err = AddToPlaylist(ctx, otherCred, AddToPlaylistInput{
		AuthenticityInput: otherIn, StationID: other.ID, PlaylistID: playlist.ID, PublishID: second.ID,
	})
	expectCode(t, err, ErrCodeUnauthorized)

	mustCreate(t, &models.WatchLater{StationID: station.ID, PublishID: publish.ID})
	check, err := CheckPublishPlaylists(ctx, cred, in, station.ID, publish.ID)
	if err != nil {
		t.Fatalf("CheckPublishPlaylists failed: %v", err)
	}
	if len(check.Items) != 1 || check.Items[0].PlaylistID != playlist.ID || !check.IsInWatchLater {
		t.Errorf("unexpected check result %+v", check)
	}

	err = UpdatePlaylists(ctx, cred, UpdatePlaylistsInput{AuthenticityInput: in, StationID: station.ID, PublishID: publish.ID})
	expectCode(t, err, ErrCodeBadUserInput)

	extra := models.Playlist{OwnerID: station.ID, Name: "Later"}
	mustCreate(t, &extra)
	if err := UpdatePlaylists(ctx, cred, UpdatePlaylistsInput{
		AuthenticityInput: in,
		StationID:         station.ID,
		PublishID:         publish.ID,
		Playlists: []PlaylistItemStatus{
			{PlaylistID: playlist.ID, IsInPlaylist: false},
			{PlaylistID: extra.ID, IsInPlaylist: true},
		},
	}); err != nil {
		t.Fatalf("UpdatePlaylists failed: %v", err)
	}
	if count := countRows(t, &models.PlaylistItem{}, "playlist_id = ? AND publish_id = ?", playlist.ID, publish.ID); count != 0 {
		t.Errorf("expected publish removed from first playlist, got %d", count)
	}
	if count := countRows(t, &models.PlaylistItem{}, "playlist_id = ? AND publish_id = ?", extra.ID, publish.ID); count != 1 {
		t.Errorf("expected publish added to second playlist, got %d", count)
	}

	renamed, err := UpdatePlaylist(ctx, cred, UpdatePlaylistInput{
		AuthenticityInput: in, StationID: station.ID, PlaylistID: playlist.ID, Name: lo.ToPtr("Best of"),
	})
	if err != nil {
		t.Fatalf("UpdatePlaylist failed: %v", err)
	}
	if renamed.Name != "Best of" {
		t.Errorf("expected renamed playlist, got %s", renamed.Name)
	}

	page, err := ListMyPlaylists(ctx, cred, in, station.ID, nil)
	if err != nil {
		t.Fatalf("ListMyPlaylists failed: %v", err)
	}
	if len(page.Edges) != 2 {
		t.Errorf("expected 2 playlists, got %d", len(page.Edges))
	}

	if err := DeletePlaylist(ctx, cred, in, station.ID, playlist.ID); err != nil {
		t.Fatalf("DeletePlaylist failed: %v", err)
	}
	if count := countRows(t, &models.PlaylistItem{}, "playlist_id = ?", playlist.ID); count != 0 {
		t.Errorf("expected items to go with the playlist, got %d", count)
	}
}

func TestWatchLater(t *testing.T) {
	setupTestDB(t)
	station, cred, in := seedMember(t, "viewer")
	other, otherCred, otherIn := seedMember(t, "other")
	publish := seedPublish(t, station, 0)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := AddToWatchLater(ctx, cred, WatchLaterInput{AuthenticityInput: in, StationID: station.ID, PublishID: publish.ID}); err != nil {
			t.Fatalf("attempt %d: AddToWatchLater failed: %v", i, err)
		}
	}
	page, err := ListWatchLater(ctx, cred, in, station.ID, nil)
	if err != nil {
		t.Fatalf("ListWatchLater failed: %v", err)
	}
	if len(page.Edges) != 1 {
		t.Fatalf("expected 1 watch later item, got %d", len(page.Edges))
	}
	item := page.Edges[0].Node

	err = RemoveFromWatchLater(ctx, otherCred, RemoveFromWatchLaterInput{AuthenticityInput: otherIn, StationID: other.ID, ID: item.ID})
	expectCode(t, err, ErrCodeUnauthorized)

	if err := RemoveFromWatchLater(ctx, cred, RemoveFromWatchLaterInput{AuthenticityInput: in, StationID: station.ID, ID: item.ID}); err != nil {
		t.Fatalf("RemoveFromWatchLater failed: %v", err)
	}
	err = RemoveFromWatchLater(ctx, cred, RemoveFromWatchLaterInput{AuthenticityInput: in, StationID: station.ID, ID: item.ID})
	expectCode(t, err, ErrCodeNotFound)
}
