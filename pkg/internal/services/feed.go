package services

import (
	"context"
	"fmt"
	"time"

	localCache "github.com/diirtv/stations/pkg/internal/cache"
	"github.com/diirtv/stations/pkg/internal/database"
	"github.com/diirtv/stations/pkg/internal/models"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type FeedKind string

const (
	FeedAll      FeedKind = "all"
	FeedVideos   FeedKind = "videos"
	FeedPodcasts FeedKind = "podcasts"
	FeedBlogs    FeedKind = "blogs"
	FeedAdds     FeedKind = "adds"
	// FeedLongVideos leaves shorts out, used by the category and suggestion feeds.
	FeedLongVideos FeedKind = "long-videos"
)

// dontRecommendScanLimit caps how many of the newest exclusions a feed honours.
const dontRecommendScanLimit = 1000

func (v FeedKind) PublishKinds() []string {
	switch v {
	case FeedVideos:
		return []string{models.PublishKindVideo, models.PublishKindShort}
	case FeedLongVideos:
		return []string{models.PublishKindVideo}
	case FeedPodcasts:
		return []string{models.PublishKindPodcast}
	case FeedBlogs:
		return []string{models.PublishKindBlog}
	case FeedAdds:
		return []string{models.PublishKindAdds}
	default:
		return nil
	}
}

func FilterPublishListable(tx *gorm.DB) *gorm.DB {
	return tx.Where("visibility = ? AND uploading = ? AND deleting = ?", models.PublishVisibilityPublic, false, false)
}

func FilterPublishWithKind(tx *gorm.DB, kind FeedKind) *gorm.DB {
	if kinds := kind.PublishKinds(); len(kinds) > 0 {
		return tx.Where("kind IN ?", kinds)
	}
	return tx
}

func FilterPublishWithExclusion(tx *gorm.DB, excluded []string) *gorm.DB {
	if len(excluded) == 0 {
		return tx
	}
	return tx.Where("creator_id NOT IN ?", excluded)
}

func FilterPublishWithPreferences(tx *gorm.DB, preferences []string) *gorm.DB {
	if len(preferences) == 0 {
		return tx
	}
	return tx.Where("(primary_category IN ? OR secondary_category IN ?)", preferences, preferences)
}

func dontRecommendCacheKey(requestorID string) string {
	return fmt.Sprintf("dont-recommend-targets#%s", requestorID)
}

func dontRecommendCacheTag(requestorID string) string {
	return fmt.Sprintf("station#%s", requestorID)
}

// ListDontRecommendTargets returns the station ids the requestor asked not to be shown,
// newest first, capped at dontRecommendScanLimit.
func ListDontRecommendTargets(ctx context.Context, requestorID string) ([]string, error) {
	var marshal *marshaler.Marshaler
	if localCache.S != nil {
		marshal = marshaler.New(cache.New[any](localCache.S))
		if cached, err := marshal.Get(ctx, dontRecommendCacheKey(requestorID), new([]string)); err == nil {
			return *cached.(*[]string), nil
		}
	}

	var targets []string
	if err := database.C.WithContext(ctx).
		Model(&models.DontRecommend{}).
		Where("requestor_id = ?", requestorID).
		Order("created_at DESC").
		Limit(dontRecommendScanLimit).
		Pluck("target_id", &targets).Error; err != nil {
		return nil, fmt.Errorf("unable to list dont recommends: %v", err)
	}

	if marshal != nil {
		_ = marshal.Set(
			ctx,
			dontRecommendCacheKey(requestorID),
			targets,
			store.WithExpiration(5*time.Minute),
			store.WithTags([]string{"dont-recommend-targets", dontRecommendCacheTag(requestorID)}),
		)
	}
	return targets, nil
}

func InvalidateDontRecommendTargets(ctx context.Context, requestorID string) {
	if localCache.S == nil {
		return
	}
	err := cache.New[any](localCache.S).Invalidate(ctx, store.WithInvalidateTags([]string{dontRecommendCacheTag(requestorID)}))
	if err != nil {
		log.Warn().Err(err).Str("station", requestorID).Msg("An error occurred when invalidating dont recommend cache...")
	}
}

type FeedQuery struct {
	Kind        FeedKind
	RequestorID *string
	Cursor      *string
	Category    *string
	// ExcludePublishID drops one publish, used for suggestions next to it.
	ExcludePublishID *string
}

// BuildFeedQuery returns the page query and the lookahead used to decide whether more
// pages exist. Preference boosting only applies to the first page of uncategorized feeds,
// the lookahead never boosts so the boosted first page continues into the whole eligible set.
func BuildFeedQuery(ctx context.Context, q FeedQuery) (*gorm.DB, *gorm.DB, error) {
	tx := database.C.WithContext(ctx).Model(&models.Publish{})
	tx = FilterPublishListable(tx)
	tx = FilterPublishWithKind(tx, q.Kind)
	if q.Category != nil {
		tx = FilterPublishWithPreferences(tx, []string{*q.Category})
	}
	if q.ExcludePublishID != nil {
		tx = tx.Where("id <> ?", *q.ExcludePublishID)
	}

	if q.RequestorID == nil || len(*q.RequestorID) == 0 {
		return tx, nil, nil
	}

	excluded, err := ListDontRecommendTargets(ctx, *q.RequestorID)
	if err != nil {
		return nil, nil, err
	}
	tx = FilterPublishWithExclusion(tx, excluded)

	// A category feed is already narrowed to one category.
	if q.Category != nil {
		return tx, nil, nil
	}
	if q.Cursor != nil && len(*q.Cursor) > 0 {
		return tx, nil, nil
	}

	var requestor models.Station
	if err := database.C.WithContext(ctx).Where("id = ?", *q.RequestorID).Limit(1).Find(&requestor).Error; err != nil {
		return nil, nil, fmt.Errorf("unable to get requestor station: %v", err)
	}
	preferences := requestor.WatchPreferences
	if q.Kind == FeedBlogs {
		preferences = requestor.ReadPreferences
	}
	if len(preferences) == 0 {
		return tx, nil, nil
	}

	lookahead := tx.Session(&gorm.Session{})
	boosted := FilterPublishWithPreferences(tx.Session(&gorm.Session{}), preferences)
	return boosted, lookahead, nil
}

func ListFeed(ctx context.Context, q FeedQuery, take int) (Page[models.Publish], error) {
	query, lookahead, err := BuildFeedQuery(ctx, q)
	if err != nil {
		return Page[models.Publish]{}, err
	}
	return Paginate[models.Publish](query, lookahead, PageOptions{
		Take:   take,
		Cursor: q.Cursor,
		Order:  OrderNewest,
	})
}
