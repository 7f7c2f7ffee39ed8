package graph

import (
	"context"

	"github.com/diirtv/stations/pkg/internal/gap"
	"github.com/diirtv/stations/pkg/internal/models"
	"github.com/diirtv/stations/pkg/internal/services"
	"github.com/graphql-go/graphql"
	"github.com/samber/lo"
)

// prop resolves a field from a source of type T.
func prop[T any](t graphql.Output, get func(src T) any) *graphql.Field {
	return &graphql.Field{
		Type: t,
		Resolve: func(p graphql.ResolveParams) (any, error) {
			if src, ok := p.Source.(T); ok {
				return get(src), nil
			}
			return nil, nil
		},
	}
}

// lazyProp resolves a field that needs a lookup.
func lazyProp[T any](t graphql.Output, get func(ctx context.Context, src T) (any, error)) *graphql.Field {
	return &graphql.Field{
		Type: t,
		Resolve: resolve(func(p graphql.ResolveParams) (any, error) {
			if src, ok := p.Source.(T); ok {
				return get(p.Context, src)
			}
			return nil, nil
		}),
	}
}

func enumOf(name string, values []string) *graphql.Enum {
	cfg := graphql.EnumValueConfigMap{}
	for _, value := range values {
		cfg[value] = &graphql.EnumValueConfig{Value: value}
	}
	return graphql.NewEnum(graphql.EnumConfig{Name: name, Values: cfg})
}

func baseFields[T any](get func(T) models.BaseModel) graphql.Fields {
	return graphql.Fields{
		"id":        prop(nonNullString, func(src T) any { return get(src).ID }),
		"createdAt": prop(graphql.NewNonNull(graphql.DateTime), func(src T) any { return get(src).CreatedAt }),
		"updatedAt": prop(graphql.DateTime, func(src T) any { return get(src).UpdatedAt }),
	}
}

func newConnection(name string, node graphql.Output) *graphql.Object {
	edge := graphql.NewObject(graphql.ObjectConfig{
		Name: name + "Edge",
		Fields: graphql.Fields{
			"cursor": &graphql.Field{Type: graphql.String},
			"node":   &graphql.Field{Type: node},
		},
	})
	return graphql.NewObject(graphql.ObjectConfig{
		Name: name + "Connection",
		Fields: graphql.Fields{
			"pageInfo": &graphql.Field{Type: graphql.NewNonNull(pageInfoType)},
			"edges":    &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(edge)))},
		},
	})
}

var (
	accountTypeEnum  = enumOf("AccountType", []string{models.AccountTypeTraditional, models.AccountTypeWallet})
	categoryEnum     = enumOf("Category", models.Categories)
	publishKindEnum  = enumOf("PublishKind", models.PublishKinds)
	visibilityEnum   = enumOf("Visibility", []string{models.PublishVisibilityDraft, models.PublishVisibilityPrivate, models.PublishVisibilityPublic})
	thumbSourceEnum  = enumOf("ThumbSource", []string{models.ThumbSourceCustom, models.ThumbSourceGenerated})
	commentTypeEnum  = enumOf("CommentType", []string{models.CommentTypePublish, models.CommentTypeComment})
	reportReasonEnum = enumOf("ReportReason", models.ReportReasons)
	feedKindEnum     = enumOf("QueryPublishKind", lo.Map([]services.FeedKind{
		services.FeedAll, services.FeedVideos, services.FeedPodcasts, services.FeedBlogs, services.FeedAdds,
	}, func(item services.FeedKind, _ int) string { return string(item) }))
	commentsOrderEnum = enumOf("CommentsOrderBy", []string{services.CommentOrderCounts, services.CommentOrderNewest})

	pageInfoType = graphql.NewObject(graphql.ObjectConfig{
		Name: "PageInfo",
		Fields: graphql.Fields{
			"endCursor":   &graphql.Field{Type: graphql.String},
			"hasNextPage": &graphql.Field{Type: nonNullBool},
		},
	})

	writeResultType = graphql.NewObject(graphql.ObjectConfig{
		Name: "WriteResult",
		Fields: graphql.Fields{
			"status": &graphql.Field{Type: nonNullString},
		},
	})

	authUserType = graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthUser",
		Fields: graphql.Fields{
			"uid":     prop(nonNullString, func(src gap.AuthUser) any { return src.UID }),
			"address": prop(nonNullString, func(src gap.AuthUser) any { return src.Address }),
		},
	})

	calculateTipsResultType = graphql.NewObject(graphql.ObjectConfig{
		Name: "CalculateTipsResult",
		Fields: graphql.Fields{
			"tips": &graphql.Field{Type: nonNullFloat},
		},
	})

	mintResultType = graphql.NewObject(graphql.ObjectConfig{
		Name: "MintStationNFTResult",
		Fields: graphql.Fields{
			"tokenId": &graphql.Field{Type: nonNullInt},
		},
	})

	sendTipsResultType = graphql.NewObject(graphql.ObjectConfig{
		Name: "SendTipsResult",
		Fields: graphql.Fields{
			"from":   prop(nonNullString, func(src gap.SendTipsResult) any { return src.From }),
			"to":     prop(nonNullString, func(src gap.SendTipsResult) any { return src.To }),
			"amount": prop(nonNullFloat, func(src gap.SendTipsResult) any { return src.Amount }),
			"fee":    prop(nonNullFloat, func(src gap.SendTipsResult) any { return src.Fee }),
		},
	})

	followResultType = graphql.NewObject(graphql.ObjectConfig{
		Name: "FollowResult",
		Fields: graphql.Fields{
			"following": &graphql.Field{Type: nonNullBool},
		},
	})

	bookmarkResultType = graphql.NewObject(graphql.ObjectConfig{
		Name: "BookmarkResult",
		Fields: graphql.Fields{
			"bookmarked": &graphql.Field{Type: nonNullBool},
		},
	})

	reportType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Report",
		Fields: lo.Assign(baseFields(func(src models.Report) models.BaseModel { return src.BaseModel }), graphql.Fields{
			"submittedById": prop(nonNullString, func(src models.Report) any { return src.SubmittedByID }),
			"publishId":     prop(nonNullString, func(src models.Report) any { return src.PublishID }),
			"reason":        prop(graphql.NewNonNull(reportReasonEnum), func(src models.Report) any { return src.Reason }),
		}),
	})

	playbackLinkType = graphql.NewObject(graphql.ObjectConfig{
		Name: "PlaybackLink",
		Fields: lo.Assign(baseFields(func(src models.PlaybackLink) models.BaseModel { return src.BaseModel }), graphql.Fields{
			"publishId": prop(nonNullString, func(src models.PlaybackLink) any { return src.PublishID }),
			"videoId":   prop(nonNullString, func(src models.PlaybackLink) any { return src.VideoID }),
			"thumbnail": prop(nonNullString, func(src models.PlaybackLink) any { return src.Thumbnail }),
			"preview":   prop(nonNullString, func(src models.PlaybackLink) any { return src.Preview }),
			"duration":  prop(nonNullFloat, func(src models.PlaybackLink) any { return src.Duration }),
			"hls":       prop(nonNullString, func(src models.PlaybackLink) any { return src.HLS }),
			"dash":      prop(nonNullString, func(src models.PlaybackLink) any { return src.DASH }),
		}),
	})
)

var (
	accountType       *graphql.Object
	stationType       *graphql.Object
	publishType       *graphql.Object
	commentType       *graphql.Object
	tipType           *graphql.Object
	playlistType      *graphql.Object
	playlistItemType  *graphql.Object
	watchLaterType    *graphql.Object
	dontRecommendType *graphql.Object
	bookmarkType      *graphql.Object

	publishConnectionType       *graphql.Object
	commentConnectionType       *graphql.Object
	playlistConnectionType      *graphql.Object
	playlistItemConnectionType  *graphql.Object
	watchLaterConnectionType    *graphql.Object
	dontRecommendConnectionType *graphql.Object
	bookmarkConnectionType      *graphql.Object
	checkPublishPlaylistsType   *graphql.Object
)

func stationOf(ctx context.Context, id string, requestorID *string) (any, error) {
	station, err := services.GetStationWithID(ctx, id)
	if err != nil {
		return nil, err
	}
	return viewStation(station, requestorID), nil
}

func publishOf(ctx context.Context, id string) (any, error) {
	publish, err := services.GetPublishWithID(ctx, id)
	if err != nil {
		if services.CodeOf(err) == services.ErrCodeNotFound {
			return nil, nil
		}
		return nil, err
	}
	return viewPublish(ctx, publish, nil)
}

func init() {
	accountType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Account",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return lo.Assign(baseFields(func(src models.Account) models.BaseModel { return src.BaseModel }), graphql.Fields{
				"owner":   prop(nonNullString, func(src models.Account) any { return src.Owner }),
				"authUid": prop(graphql.String, func(src models.Account) any { return src.AuthUID }),
				"type":    prop(graphql.NewNonNull(accountTypeEnum), func(src models.Account) any { return src.Type }),
				"stations": lazyProp(graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(stationType))), func(ctx context.Context, src models.Account) (any, error) {
					stations, err := services.ListStationsByAccount(ctx, src.ID)
					if err != nil {
						return nil, err
					}
					return viewStations(stations, nil), nil
				}),
				"defaultStation": lazyProp(stationType, func(ctx context.Context, src models.Account) (any, error) {
					station, err := services.GetDefaultStation(ctx, src.Owner)
					if err != nil || station == nil {
						return nil, err
					}
					return viewStation(*station, nil), nil
				}),
			})
		}),
	})

	stationType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Station",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return lo.Assign(baseFields(func(src stationView) models.BaseModel { return src.BaseModel }), graphql.Fields{
				"tokenId":          prop(graphql.Int, func(src stationView) any { return src.TokenID }),
				"accountId":        prop(nonNullString, func(src stationView) any { return src.AccountID }),
				"owner":            prop(nonNullString, func(src stationView) any { return src.Owner }),
				"name":             prop(nonNullString, func(src stationView) any { return src.Name }),
				"displayName":      prop(nonNullString, func(src stationView) any { return src.DisplayName }),
				"image":            prop(graphql.String, func(src stationView) any { return src.Image }),
				"bannerImage":      prop(graphql.String, func(src stationView) any { return src.BannerImage }),
				"defaultColor":     prop(graphql.String, func(src stationView) any { return src.DefaultColor }),
				"watchPreferences": prop(graphql.NewList(categoryEnum), func(src stationView) any { return []string(src.WatchPreferences) }),
				"readPreferences":  prop(graphql.NewList(categoryEnum), func(src stationView) any { return []string(src.ReadPreferences) }),
				"account": lazyProp(accountType, func(ctx context.Context, src stationView) (any, error) {
					account, err := services.GetAccountWithOwner(ctx, src.Owner)
					if err != nil || account == nil {
						return nil, err
					}
					return *account, nil
				}),
				"followersCount": lazyProp(nonNullInt, func(ctx context.Context, src stationView) (any, error) {
					return services.CountFollowers(ctx, src.ID)
				}),
				"followingCount": lazyProp(nonNullInt, func(ctx context.Context, src stationView) (any, error) {
					return services.CountFollowing(ctx, src.ID)
				}),
				"followers": lazyProp(graphql.NewList(graphql.NewNonNull(stationType)), func(ctx context.Context, src stationView) (any, error) {
					stations, err := services.ListFollowers(ctx, src.ID)
					return viewStations(stations, src.requestorID), err
				}),
				"following": lazyProp(graphql.NewList(graphql.NewNonNull(stationType)), func(ctx context.Context, src stationView) (any, error) {
					stations, err := services.ListFollowing(ctx, src.ID)
					return viewStations(stations, src.requestorID), err
				}),
				"isFollowing": lazyProp(graphql.Boolean, func(ctx context.Context, src stationView) (any, error) {
					if src.requestorID == nil {
						return nil, nil
					}
					return services.IsFollowing(ctx, *src.requestorID, src.ID)
				}),
				"isOwner": lazyProp(graphql.Boolean, func(ctx context.Context, src stationView) (any, error) {
					if src.requestorID == nil {
						return nil, nil
					}
					return services.IsStationOwner(ctx, src.Station, *src.requestorID)
				}),
				"publishesCount": lazyProp(nonNullInt, func(ctx context.Context, src stationView) (any, error) {
					return services.CountStationPublishes(ctx, src.ID)
				}),
				"publishes": lazyProp(graphql.NewList(graphql.NewNonNull(publishType)), func(ctx context.Context, src stationView) (any, error) {
					publishes, err := services.ListStationLatestPublishes(ctx, src.ID)
					if err != nil {
						return nil, err
					}
					return viewPublishes(ctx, publishes, src.requestorID)
				}),
			})
		}),
	})

	publishType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Publish",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return lo.Assign(baseFields(func(src publishView) models.BaseModel { return src.BaseModel }), graphql.Fields{
				"creatorId":         prop(nonNullString, func(src publishView) any { return src.CreatorID }),
				"title":             prop(graphql.String, func(src publishView) any { return src.Title }),
				"description":       prop(graphql.String, func(src publishView) any { return src.Description }),
				"content":           prop(graphql.String, func(src publishView) any { return src.Content }),
				"contentURI":        prop(graphql.String, func(src publishView) any { return src.ContentURI }),
				"contentRef":        prop(graphql.String, func(src publishView) any { return src.ContentRef }),
				"filename":          prop(graphql.String, func(src publishView) any { return src.Filename }),
				"thumbnail":         prop(graphql.String, func(src publishView) any { return src.Thumbnail }),
				"thumbnailRef":      prop(graphql.String, func(src publishView) any { return src.ThumbnailRef }),
				"thumbSource":       prop(thumbSourceEnum, func(src publishView) any { return src.ThumbSource }),
				"primaryCategory":   prop(categoryEnum, func(src publishView) any { return lo.FromPtr(src.PrimaryCategory) }),
				"secondaryCategory": prop(categoryEnum, func(src publishView) any { return lo.FromPtr(src.SecondaryCategory) }),
				"kind":              prop(publishKindEnum, func(src publishView) any { return lo.FromPtr(src.Kind) }),
				"visibility":        prop(graphql.NewNonNull(visibilityEnum), func(src publishView) any { return src.Visibility }),
				"tags":              prop(stringList, func(src publishView) any { return []string(src.Tags) }),
				"language":          prop(graphql.String, func(src publishView) any { return src.Language }),
				"views":             prop(nonNullInt, func(src publishView) any { return src.Views }),
				"uploading":         prop(nonNullBool, func(src publishView) any { return src.Uploading }),
				"uploadError":       prop(nonNullBool, func(src publishView) any { return src.UploadError }),
				"transcodeError":    prop(nonNullBool, func(src publishView) any { return src.TranscodeError }),
				"likesCount":        prop(nonNullInt, func(src publishView) any { return src.Meta.LikesCount }),
				"disLikesCount":     prop(nonNullInt, func(src publishView) any { return src.Meta.DisLikesCount }),
				"tipsCount":         prop(nonNullInt, func(src publishView) any { return src.Meta.TipsCount }),
				"commentsCount":     prop(nonNullInt, func(src publishView) any { return src.Meta.CommentsCount }),
				"liked": prop(graphql.Boolean, func(src publishView) any {
					return lo.Ternary[any](src.requestorID == nil, nil, src.Meta.Liked)
				}),
				"disLiked": prop(graphql.Boolean, func(src publishView) any {
					return lo.Ternary[any](src.requestorID == nil, nil, src.Meta.DisLiked)
				}),
				"bookmarked": prop(graphql.Boolean, func(src publishView) any {
					return lo.Ternary[any](src.requestorID == nil, nil, src.Meta.Bookmarked)
				}),
				"creator": lazyProp(stationType, func(ctx context.Context, src publishView) (any, error) {
					return stationOf(ctx, src.CreatorID, src.requestorID)
				}),
				"playback": lazyProp(playbackLinkType, func(ctx context.Context, src publishView) (any, error) {
					if src.Playback != nil {
						return *src.Playback, nil
					}
					link, err := services.GetPlaybackLink(ctx, src.ID)
					if err != nil || link == nil {
						return nil, err
					}
					return *link, nil
				}),
				"lastComment": lazyProp(commentType, func(ctx context.Context, src publishView) (any, error) {
					comment, err := services.GetLastComment(ctx, src.ID)
					if err != nil || comment == nil {
						return nil, err
					}
					views, err := viewComments(ctx, []models.Comment{*comment}, src.requestorID)
					if err != nil {
						return nil, err
					}
					return views[0], nil
				}),
			})
		}),
	})

	commentType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Comment",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return lo.Assign(baseFields(func(src commentView) models.BaseModel { return src.BaseModel }), graphql.Fields{
				"creatorId":     prop(nonNullString, func(src commentView) any { return src.CreatorID }),
				"publishId":     prop(nonNullString, func(src commentView) any { return src.PublishID }),
				"commentId":     prop(graphql.String, func(src commentView) any { return src.CommentID }),
				"commentType":   prop(graphql.NewNonNull(commentTypeEnum), func(src commentView) any { return src.CommentType }),
				"content":       prop(nonNullString, func(src commentView) any { return src.Content }),
				"commentsCount": prop(nonNullInt, func(src commentView) any { return src.CommentsCount }),
				"likesCount":    prop(nonNullInt, func(src commentView) any { return src.Meta.LikesCount }),
				"disLikesCount": prop(nonNullInt, func(src commentView) any { return src.Meta.DisLikesCount }),
				"liked": prop(graphql.Boolean, func(src commentView) any {
					return lo.Ternary[any](src.requestorID == nil, nil, src.Meta.Liked)
				}),
				"disLiked": prop(graphql.Boolean, func(src commentView) any {
					return lo.Ternary[any](src.requestorID == nil, nil, src.Meta.DisLiked)
				}),
				"creator": lazyProp(stationType, func(ctx context.Context, src commentView) (any, error) {
					return stationOf(ctx, src.CreatorID, src.requestorID)
				}),
			})
		}),
	})

	tipType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Tip",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return lo.Assign(baseFields(func(src models.Tip) models.BaseModel { return src.BaseModel }), graphql.Fields{
				"senderId":   prop(nonNullString, func(src models.Tip) any { return src.SenderID }),
				"receiverId": prop(graphql.String, func(src models.Tip) any { return src.ReceiverID }),
				"publishId":  prop(graphql.String, func(src models.Tip) any { return src.PublishID }),
				"from":       prop(nonNullString, func(src models.Tip) any { return src.From }),
				"to":         prop(nonNullString, func(src models.Tip) any { return src.To }),
				"amount":     prop(nonNullFloat, func(src models.Tip) any { return src.Amount }),
				"fee":        prop(nonNullFloat, func(src models.Tip) any { return src.Fee }),
				"sender": lazyProp(stationType, func(ctx context.Context, src models.Tip) (any, error) {
					return stationOf(ctx, src.SenderID, nil)
				}),
			})
		}),
	})

	playlistType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Playlist",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return lo.Assign(baseFields(func(src models.Playlist) models.BaseModel { return src.BaseModel }), graphql.Fields{
				"ownerId":     prop(nonNullString, func(src models.Playlist) any { return src.OwnerID }),
				"name":        prop(nonNullString, func(src models.Playlist) any { return src.Name }),
				"description": prop(graphql.String, func(src models.Playlist) any { return src.Description }),
				"thumbnail":   prop(graphql.String, func(src models.Playlist) any { return src.Thumbnail }),
				"owner": lazyProp(stationType, func(ctx context.Context, src models.Playlist) (any, error) {
					return stationOf(ctx, src.OwnerID, nil)
				}),
			})
		}),
	})

	playlistItemType = graphql.NewObject(graphql.ObjectConfig{
		Name: "PlaylistItem",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return lo.Assign(baseFields(func(src models.PlaylistItem) models.BaseModel { return src.BaseModel }), graphql.Fields{
				"playlistId": prop(nonNullString, func(src models.PlaylistItem) any { return src.PlaylistID }),
				"publishId":  prop(nonNullString, func(src models.PlaylistItem) any { return src.PublishID }),
				"publish": lazyProp(publishType, func(ctx context.Context, src models.PlaylistItem) (any, error) {
					return publishOf(ctx, src.PublishID)
				}),
			})
		}),
	})

	watchLaterType = graphql.NewObject(graphql.ObjectConfig{
		Name: "WatchLater",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return lo.Assign(baseFields(func(src models.WatchLater) models.BaseModel { return src.BaseModel }), graphql.Fields{
				"stationId": prop(nonNullString, func(src models.WatchLater) any { return src.StationID }),
				"publishId": prop(nonNullString, func(src models.WatchLater) any { return src.PublishID }),
				"publish": lazyProp(publishType, func(ctx context.Context, src models.WatchLater) (any, error) {
					return publishOf(ctx, src.PublishID)
				}),
			})
		}),
	})

	dontRecommendType = graphql.NewObject(graphql.ObjectConfig{
		Name: "DontRecommend",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return lo.Assign(baseFields(func(src models.DontRecommend) models.BaseModel { return src.BaseModel }), graphql.Fields{
				"requestorId": prop(nonNullString, func(src models.DontRecommend) any { return src.RequestorID }),
				"targetId":    prop(nonNullString, func(src models.DontRecommend) any { return src.TargetID }),
				"target": lazyProp(stationType, func(ctx context.Context, src models.DontRecommend) (any, error) {
					return stationOf(ctx, src.TargetID, nil)
				}),
			})
		}),
	})

	bookmarkType = graphql.NewObject(graphql.ObjectConfig{
		Name: "ReadBookmark",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return lo.Assign(baseFields(func(src models.ReadBookmark) models.BaseModel { return src.BaseModel }), graphql.Fields{
				"profileId": prop(nonNullString, func(src models.ReadBookmark) any { return src.ProfileID }),
				"publishId": prop(nonNullString, func(src models.ReadBookmark) any { return src.PublishID }),
				"publish": lazyProp(publishType, func(ctx context.Context, src models.ReadBookmark) (any, error) {
					return publishOf(ctx, src.PublishID)
				}),
			})
		}),
	})

	checkPublishPlaylistsType = graphql.NewObject(graphql.ObjectConfig{
		Name: "CheckPublishPlaylistsResponse",
		Fields: graphql.Fields{
			"publishId": prop(nonNullString, func(src services.PublishPlaylists) any { return src.PublishID }),
			"isInWatchLater": prop(nonNullBool, func(src services.PublishPlaylists) any {
				return src.IsInWatchLater
			}),
			"items": prop(graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(playlistItemType))), func(src services.PublishPlaylists) any {
				return src.Items
			}),
		},
	})

	publishConnectionType = newConnection("Publish", publishType)
	commentConnectionType = newConnection("Comment", commentType)
	playlistConnectionType = newConnection("Playlist", playlistType)
	playlistItemConnectionType = newConnection("PlaylistItem", playlistItemType)
	watchLaterConnectionType = newConnection("WatchLater", watchLaterType)
	dontRecommendConnectionType = newConnection("DontRecommend", dontRecommendType)
	bookmarkConnectionType = newConnection("ReadBookmark", bookmarkType)
}
