package services

import (
	"context"
	"testing"
	"time"

	"github.com/diirtv/stations/pkg/internal/database"
	"github.com/diirtv/stations/pkg/internal/models"
	"github.com/samber/lo"
)

func TestTogglePublishReactions(t *testing.T) {
	setupTestDB(t)
	creator, _, _ := seedMember(t, "creator")
	viewer, cred, in := seedMember(t, "viewer")
	publish := seedPublish(t, creator, 0)
	notifier := &recordingNotifier{}
	action := PublishActionInput{AuthenticityInput: in, StationID: viewer.ID, PublishID: publish.ID}
	ctx := context.Background()

	state := func() (int64, int64) {
		return countRows(t, &models.Like{}, "station_id = ? AND publish_id = ?", viewer.ID, publish.ID),
			countRows(t, &models.DisLike{}, "station_id = ? AND publish_id = ?", viewer.ID, publish.ID)
	}

	if err := TogglePublishDisLike(ctx, cred, notifier, action); err != nil {
		t.Fatalf("TogglePublishDisLike failed: %v", err)
	}
	if likes, dislikes := state(); likes != 0 || dislikes != 1 {
		t.Fatalf("expected only a dislike, got likes=%d dislikes=%d", likes, dislikes)
	}

	if err := TogglePublishLike(ctx, cred, notifier, action); err != nil {
		t.Fatalf("TogglePublishLike failed: %v", err)
	}
	if likes, dislikes := state(); likes != 1 || dislikes != 0 {
		t.Fatalf("expected like to replace dislike, got likes=%d dislikes=%d", likes, dislikes)
	}

	if err := TogglePublishLike(ctx, cred, notifier, action); err != nil {
		t.Fatalf("TogglePublishLike failed: %v", err)
	}
	if likes, dislikes := state(); likes != 0 || dislikes != 0 {
		t.Fatalf("expected second like to remove it, got likes=%d dislikes=%d", likes, dislikes)
	}

	WaitBackgroundTasks()
	notifier.Lock()
	defer notifier.Unlock()
	if len(notifier.publishes) != 3 {
		t.Errorf("expected 3 publish updated notifications, got %d", len(notifier.publishes))
	}
}

func TestTogglePublishLikeOnOtherStation(t *testing.T) {
	setupTestDB(t)
	creator, _, _ := seedMember(t, "creator")
	_, cred, in := seedMember(t, "viewer")
	publish := seedPublish(t, creator, 0)

	err := TogglePublishLike(context.Background(), cred, nil, PublishActionInput{
		AuthenticityInput: in,
		StationID:         creator.ID,
		PublishID:         publish.ID,
	})
	expectCode(t, err, ErrCodeUnauthorized)
}

func TestUpdatePublish(t *testing.T) {
	setupTestDB(t)
	creator, cred, in := seedMember(t, "creator")
	other, _, _ := seedMember(t, "other")
	ctx := context.Background()

	draft, err := CreateDraftPublish(ctx, cred, CreateDraftPublishInput{
		AuthenticityInput: in,
		CreatorID:         creator.ID,
		Filename:          "holiday.mp4",
	})
	if err != nil {
		t.Fatalf("CreateDraftPublish failed: %v", err)
	}
	if !draft.Uploading || draft.Visibility != models.PublishVisibilityDraft || lo.FromPtr(draft.Title) != "holiday.mp4" {
		t.Fatalf("unexpected draft %+v", draft)
	}
	mustCreate(t, &models.PlaybackLink{PublishID: draft.ID, VideoID: "v1", Duration: 42})

	updated, err := UpdatePublish(ctx, cred, UpdatePublishInput{
		AuthenticityInput: in,
		StationID:         creator.ID,
		PublishID:         draft.ID,
		Title:             lo.ToPtr("A walk along the beach at sunset"),
		Description:       lo.ToPtr("The waves were calm and the sky was orange"),
		PrimaryCategory:   lo.ToPtr(models.CategoryTravel),
		Kind:              lo.ToPtr(models.PublishKindVideo),
	})
	if err != nil {
		t.Fatalf("UpdatePublish failed: %v", err)
	}
	if lo.FromPtr(updated.Kind) != models.PublishKindShort {
		t.Errorf("expected a short video, got %v", lo.FromPtr(updated.Kind))
	}
	if updated.Visibility != models.PublishVisibilityPrivate {
		t.Errorf("expected private visibility by default, got %s", updated.Visibility)
	}
	if updated.Language != "en" {
		t.Errorf("expected english, got %s", updated.Language)
	}

	_, err = UpdatePublish(ctx, cred, UpdatePublishInput{AuthenticityInput: in, StationID: creator.ID, PublishID: "missing"})
	expectCode(t, err, ErrCodeNotFound)

	foreign := seedPublish(t, other, 1)
	_, err = UpdatePublish(ctx, cred, UpdatePublishInput{AuthenticityInput: in, StationID: creator.ID, PublishID: foreign.ID})
	expectCode(t, err, ErrCodeUnauthorized)

	_, err = UpdatePublish(ctx, cred, UpdatePublishInput{
		AuthenticityInput: in,
		StationID:         creator.ID,
		PublishID:         draft.ID,
		PrimaryCategory:   lo.ToPtr("Nonsense"),
	})
	expectCode(t, err, ErrCodeBadUserInput)
}

func TestUpdatePublishKeepsUntouchedFields(t *testing.T) {
	setupTestDB(t)
	creator, cred, in := seedMember(t, "creator")
	publish := seedPublish(t, creator, 0, withCategory(models.CategoryMusic), func(p *models.Publish) {
		p.Title = lo.ToPtr("Live at the harbour")
		p.Description = lo.ToPtr("Recorded on a warm summer night")
		p.ContentRef = lo.ToPtr("ref-1")
	})

	updated, err := UpdatePublish(context.Background(), cred, UpdatePublishInput{
		AuthenticityInput: in,
		StationID:         creator.ID,
		PublishID:         publish.ID,
		Visibility:        lo.ToPtr(models.PublishVisibilityPublic),
	})
	if err != nil {
		t.Fatalf("UpdatePublish failed: %v", err)
	}

	stored, err := GetPublishWithID(context.Background(), publish.ID)
	if err != nil {
		t.Fatalf("GetPublishWithID failed: %v", err)
	}
	for _, item := range []models.Publish{updated, stored} {
		if lo.FromPtr(item.Title) != "Live at the harbour" {
			t.Errorf("title was overwritten: %v", item.Title)
		}
		if lo.FromPtr(item.Description) != "Recorded on a warm summer night" {
			t.Errorf("description was overwritten: %v", item.Description)
		}
		if lo.FromPtr(item.Kind) != models.PublishKindVideo {
			t.Errorf("kind was overwritten: %v", item.Kind)
		}
		if lo.FromPtr(item.PrimaryCategory) != models.CategoryMusic {
			t.Errorf("primary category was overwritten: %v", item.PrimaryCategory)
		}
		if lo.FromPtr(item.ContentRef) != "ref-1" {
			t.Errorf("content ref was overwritten: %v", item.ContentRef)
		}
		if item.Visibility != models.PublishVisibilityPublic {
			t.Errorf("expected public visibility, got %s", item.Visibility)
		}
	}
}

func TestGetPublishForViewer(t *testing.T) {
	setupTestDB(t)
	creator, _, _ := seedMember(t, "creator")
	viewer, _, _ := seedMember(t, "viewer")
	ctx := context.Background()

	public := seedPublish(t, creator, 0)
	private := seedPublish(t, creator, 1, func(p *models.Publish) {
		p.Visibility = models.PublishVisibilityPrivate
	})

	if _, err := GetPublishForViewer(ctx, public.ID, &viewer.ID); err != nil {
		t.Fatalf("expected public publish to be visible: %v", err)
	}
	_, err := GetPublishForViewer(ctx, private.ID, &viewer.ID)
	expectCode(t, err, ErrCodeNotFound)
	_, err = GetPublishForViewer(ctx, private.ID, nil)
	expectCode(t, err, ErrCodeNotFound)
	if _, err := GetPublishForViewer(ctx, private.ID, &creator.ID); err != nil {
		t.Errorf("expected creator to see private publish: %v", err)
	}
}

func TestDeleteAndPurgePublish(t *testing.T) {
	setupTestDB(t)
	creator, cred, in := seedMember(t, "creator")
	viewer, _, _ := seedMember(t, "viewer")
	publish := seedPublish(t, creator, 0)
	mustCreate(t, &models.Like{StationID: viewer.ID, PublishID: publish.ID})
	files := &recordingNotifier{}
	ctx := context.Background()

	if err := DeletePublish(ctx, cred, files, PublishActionInput{
		AuthenticityInput: in,
		StationID:         creator.ID,
		PublishID:         publish.ID,
	}); err != nil {
		t.Fatalf("DeletePublish failed: %v", err)
	}
	WaitBackgroundTasks()

	if _, err := GetPublishWithID(ctx, publish.ID); CodeOf(err) != ErrCodeNotFound {
		t.Errorf("expected deleting publish to be hidden, got %v", err)
	}
	files.Lock()
	if len(files.removed) != 1 || files.removed[0] != PublishStorageRef(publish) {
		t.Errorf("unexpected file removals %v", files.removed)
	}
	files.Unlock()

	PurgeDeletedPublishes(-time.Minute)
	if count := countRows(t, &models.Publish{}, "id = ?", publish.ID); count != 0 {
		t.Errorf("expected publish to be purged, still have %d", count)
	}
	if count := countRows(t, &models.Like{}, "publish_id = ?", publish.ID); count != 0 {
		t.Errorf("expected likes to be purged, still have %d", count)
	}
}

func TestFlushPublishViews(t *testing.T) {
	setupTestDB(t)
	creator, _, _ := seedMember(t, "creator")
	viewer, _, _ := seedMember(t, "viewer")
	publish := seedPublish(t, creator, 0)

	for i := 0; i < 3; i++ {
		AddPublishView(publish.ID, viewer.ID)
	}
	FlushPublishViews()

	var got models.Publish
	if err := database.C.Where("id = ?", publish.ID).First(&got).Error; err != nil {
		t.Fatalf("failed to reload publish: %v", err)
	}
	if got.Views != 3 {
		t.Errorf("expected 3 views, got %d", got.Views)
	}
	if count := countRows(t, &models.PublishView{}, "publish_id = ?", publish.ID); count != 3 {
		t.Errorf("expected 3 view rows, got %d", count)
	}
}
