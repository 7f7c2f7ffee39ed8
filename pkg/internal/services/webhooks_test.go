package services

import (
	"context"
	"testing"

	"github.com/diirtv/stations/pkg/internal/database"
	"github.com/diirtv/stations/pkg/internal/models"
	"github.com/samber/lo"
)

func TestHandleTranscodeFinished(t *testing.T) {
	setupTestDB(t)
	creator, _, _ := seedMember(t, "creator")
	publish := seedPublish(t, creator, 0, func(p *models.Publish) { p.Uploading = true })
	ctx := context.Background()

	in := TranscodeFinishedInput{
		PublishID: publish.ID,
		VideoID:   "video-1",
		Thumbnail: "https://cdn/thumb.jpg",
		Duration:  30,
		HLS:       "https://cdn/video.m3u8",
	}
	for i := 0; i < 2; i++ {
		if err := HandleTranscodeFinished(ctx, in); err != nil {
			t.Fatalf("attempt %d: HandleTranscodeFinished failed: %v", i, err)
		}
	}

	var got models.Publish
	if err := database.C.Preload("Playback").Where("id = ?", publish.ID).First(&got).Error; err != nil {
		t.Fatalf("failed to reload publish: %v", err)
	}
	if got.Uploading || got.Playback == nil || got.Playback.HLS != in.HLS {
		t.Errorf("unexpected publish after transcoding %+v", got)
	}
	if lo.FromPtr(got.Kind) != models.PublishKindShort || lo.FromPtr(got.Thumbnail) != in.Thumbnail {
		t.Errorf("expected a short with a generated thumbnail, got %v %v", lo.FromPtr(got.Kind), lo.FromPtr(got.Thumbnail))
	}
	if count := countRows(t, &models.PlaybackLink{}, "publish_id = ?", publish.ID); count != 1 {
		t.Errorf("expected a single playback link, got %d", count)
	}

	err := HandleTranscodeFinished(ctx, TranscodeFinishedInput{PublishID: "missing"})
	expectCode(t, err, ErrCodeNotFound)
}

func TestHandleTranscodeAndUploadFailures(t *testing.T) {
	setupTestDB(t)
	creator, _, _ := seedMember(t, "creator")
	first := seedPublish(t, creator, 0, func(p *models.Publish) { p.Uploading = true })
	second := seedPublish(t, creator, 1, func(p *models.Publish) { p.Uploading = true })
	ctx := context.Background()

	if err := HandleTranscodeFinished(ctx, TranscodeFinishedInput{PublishID: first.ID, Error: lo.ToPtr("codec")}); err != nil {
		t.Fatalf("HandleTranscodeFinished failed: %v", err)
	}
	if err := HandleUploadFailed(ctx, UploadFailedInput{PublishID: second.ID}); err != nil {
		t.Fatalf("HandleUploadFailed failed: %v", err)
	}

	if count := countRows(t, &models.Publish{}, "id = ? AND transcode_error = ? AND uploading = ?", first.ID, true, false); count != 1 {
		t.Errorf("expected transcode error to be recorded")
	}
	if count := countRows(t, &models.Publish{}, "id = ? AND upload_error = ? AND uploading = ?", second.ID, true, false); count != 1 {
		t.Errorf("expected upload error to be recorded")
	}
}

func TestHandleAddressUpdated(t *testing.T) {
	notifier := &recordingNotifier{}
	if err := HandleAddressUpdated(context.Background(), notifier, AddressUpdatedInput{
		Address:   "0xabc",
		StationID: lo.ToPtr("station-1"),
	}); err != nil {
		t.Fatalf("HandleAddressUpdated failed: %v", err)
	}
	WaitBackgroundTasks()

	notifier.Lock()
	defer notifier.Unlock()
	if len(notifier.addresses) != 1 || notifier.addresses[0]["stationId"] != "station-1" {
		t.Errorf("unexpected forwarded payloads %v", notifier.addresses)
	}
}
