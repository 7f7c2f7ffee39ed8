package graph

import (
	"github.com/diirtv/stations/pkg/internal/services"
	"github.com/graphql-go/graphql"
)

type accountTypeInput struct {
	AccountType string `validate:"required,oneof=TRADITIONAL WALLET"`
}

type stationByIDInput struct {
	RequestorID *string
	StationID   string `validate:"required"`
}

type stationByNameInput struct {
	RequestorID *string
	Name        string `validate:"required"`
}

type publishByIDInput struct {
	RequestorID *string
	PublishID   string `validate:"required"`
}

type feedInput struct {
	RequestorID *string
	Cursor      *string
}

type categoryFeedInput struct {
	RequestorID *string
	Cursor      *string
	Category    string `validate:"required"`
}

type suggestedFeedInput struct {
	RequestorID *string
	Cursor      *string
	PublishID   string `validate:"required"`
}

type creatorPublishesInput struct {
	CreatorID string            `validate:"required"`
	Kind      services.FeedKind `validate:"omitempty,oneof=all videos podcasts blogs adds"`
	Cursor    *string
}

type publishCommentsInput struct {
	RequestorID *string
	PublishID   string `validate:"required"`
	Cursor      *string
	OrderBy     string `validate:"omitempty,oneof=counts newest"`
}

type subCommentsInput struct {
	RequestorID *string
	CommentID   string `validate:"required"`
	Cursor      *string
}

type stationScopedInput struct {
	services.AuthenticityInput
	StationID string `validate:"required"`
	Cursor    *string
}

type stationPublishInput struct {
	services.AuthenticityInput
	StationID string `validate:"required"`
	PublishID string `validate:"required"`
}

type playlistItemsInput struct {
	PlaylistID string `validate:"required"`
	Cursor     *string
}

type bookmarksInput struct {
	services.AuthenticityInput
	ProfileID string `validate:"required"`
	Cursor    *string
}

var (
	accountTypeInputType = newInput("AccountTypeInput", graphql.InputObjectConfigFieldMap{
		"accountType": field(graphql.NewNonNull(accountTypeEnum)),
	})
	stationByIDInputType = newInput("GetStationByIdInput", graphql.InputObjectConfigFieldMap{
		"requestorId": field(graphql.String),
		"stationId":   field(nonNullString),
	})
	stationByNameInputType = newInput("GetStationByNameInput", graphql.InputObjectConfigFieldMap{
		"requestorId": field(graphql.String),
		"name":        field(nonNullString),
	})
	accountIDInputType = newInput("ListStationsByAccountIdInput", graphql.InputObjectConfigFieldMap{
		"accountId": field(nonNullString),
	})
	ownerInputType = newInput("DefaultStationInput", graphql.InputObjectConfigFieldMap{
		"owner": field(nonNullString),
	})
	publishByIDInputType = newInput("GetPublishByIdInput", graphql.InputObjectConfigFieldMap{
		"requestorId": field(graphql.String),
		"publishId":   field(nonNullString),
	})
	fetchMyPublishesInputType = newInput("FetchMyPublishesInput", withAuth(graphql.InputObjectConfigFieldMap{
		"creatorId": field(nonNullString),
		"kind":      field(feedKindEnum),
		"cursor":    field(graphql.String),
	}))
	feedInputType = newInput("FetchPublishesInput", graphql.InputObjectConfigFieldMap{
		"requestorId": field(graphql.String),
		"cursor":      field(graphql.String),
	})
	categoryFeedInputType = newInput("FetchVideosByCategoryInput", graphql.InputObjectConfigFieldMap{
		"requestorId": field(graphql.String),
		"cursor":      field(graphql.String),
		"category":    field(graphql.NewNonNull(categoryEnum)),
	})
	suggestedFeedInputType = newInput("FetchSuggestedVideosInput", graphql.InputObjectConfigFieldMap{
		"requestorId": field(graphql.String),
		"cursor":      field(graphql.String),
		"publishId":   field(nonNullString),
	})
	creatorPublishesInputType = newInput("FetchPublishesByCreatorIdInput", graphql.InputObjectConfigFieldMap{
		"creatorId": field(nonNullString),
		"kind":      field(feedKindEnum),
		"cursor":    field(graphql.String),
	})
	publishCommentsInputType = newInput("FetchCommentsByPublishIdInput", graphql.InputObjectConfigFieldMap{
		"requestorId": field(graphql.String),
		"publishId":   field(nonNullString),
		"cursor":      field(graphql.String),
		"orderBy":     field(commentsOrderEnum),
	})
	subCommentsInputType = newInput("FetchSubCommentsInput", graphql.InputObjectConfigFieldMap{
		"requestorId": field(graphql.String),
		"commentId":   field(nonNullString),
		"cursor":      field(graphql.String),
	})
	stationScopedInputType = newInput("StationScopedInput", withAuth(graphql.InputObjectConfigFieldMap{
		"stationId": field(nonNullString),
		"cursor":    field(graphql.String),
	}))
	checkPublishPlaylistsInputType = newInput("CheckPublishPlaylistsInput", withAuth(graphql.InputObjectConfigFieldMap{
		"stationId": field(nonNullString),
		"publishId": field(nonNullString),
	}))
	playlistItemsInputType = newInput("FetchPlaylistItemsInput", graphql.InputObjectConfigFieldMap{
		"playlistId": field(nonNullString),
		"cursor":     field(graphql.String),
	})
	bookmarksInputType = newInput("FetchBookmarksInput", withAuth(graphql.InputObjectConfigFieldMap{
		"profileId": field(nonNullString),
		"cursor":    field(graphql.String),
	}))
)

func (v *resolver) queries() graphql.Fields {
	return graphql.Fields{
		"getMyAccount": &graphql.Field{
			Type: accountType,
			Args: inputArg(accountTypeInputType),
			Resolve: resolve(func(p graphql.ResolveParams) (any, error) {
				var in accountTypeInput
				if err := decodeInput(p, &in); err != nil {
					return nil, err
				}
				session := sessionFrom(p.Context)
				wallet, err := session.wallet()
				if err != nil {
					return nil, err
				}
				account, err := services.GetMyAccount(p.Context, wallet, session.credentials(v.cfg.SignedMessage), in.AccountType)
				if err != nil || account == nil {
					return nil, err
				}
				return *account, nil
			}),
		},
		"getBalance": &graphql.Field{
			Type: nonNullString,
			Args: graphql.FieldConfigArgument{
				"address": &graphql.ArgumentConfig{Type: nonNullString},
			},
			Resolve: resolve(func(p graphql.ResolveParams) (any, error) {
				wallet, err := sessionFrom(p.Context).wallet()
				if err != nil {
					return nil, err
				}
				return wallet.GetBalance(p.Context, p.Args["address"].(string))
			}),
		},
		"getStationById": &graphql.Field{
			Type: stationType,
			Args: inputArg(stationByIDInputType),
			Resolve: resolve(func(p graphql.ResolveParams) (any, error) {
				var in stationByIDInput
				if err := decodeInput(p, &in); err != nil {
					return nil, err
				}
				return stationOf(p.Context, in.StationID, in.RequestorID)
			}),
		},
		"getStationByName": &graphql.Field{
			Type: stationType,
			Args: inputArg(stationByNameInputType),
			Resolve: resolve(func(p graphql.ResolveParams) (any, error) {
				var in stationByNameInput
				if err := decodeInput(p, &in); err != nil {
					return nil, err
				}
				station, err := services.GetStationWithName(p.Context, in.Name)
				if err != nil {
					return nil, err
				}
				return viewStation(station, in.RequestorID), nil
			}),
		},
		"listStationsByAccountId": &graphql.Field{
			Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(stationType))),
			Args: inputArg(accountIDInputType),
			Resolve: resolve(func(p graphql.ResolveParams) (any, error) {
				var in struct {
					AccountID string `validate:"required"`
				}
				if err := decodeInput(p, &in); err != nil {
					return nil, err
				}
				stations, err := services.ListStationsByAccount(p.Context, in.AccountID)
				if err != nil {
					return nil, err
				}
				return viewStations(stations, nil), nil
			}),
		},
		"defaultStation": &graphql.Field{
			Type: stationType,
			Args: inputArg(ownerInputType),
			Resolve: resolve(func(p graphql.ResolveParams) (any, error) {
				var in struct {
					Owner string `validate:"required"`
				}
				if err := decodeInput(p, &in); err != nil {
					return nil, err
				}
				station, err := services.GetDefaultStation(p.Context, in.Owner)
				if err != nil || station == nil {
					return nil, err
				}
				return viewStation(*station, nil), nil
			}),
		},
		"validateName": &graphql.Field{
			Type: nonNullBool,
			Args: graphql.FieldConfigArgument{
				"name": &graphql.ArgumentConfig{Type: nonNullString},
			},
			Resolve: func(p graphql.ResolveParams) (any, error) {
				wallet, err := sessionFrom(p.Context).wallet()
				if err != nil {
					return false, nil
				}
				valid, err := wallet.ValidateName(p.Context, p.Args["name"].(string))
				if err != nil {
					return false, nil
				}
				return valid, nil
			},
		},
		"calculateTips": &graphql.Field{
			Type: calculateTipsResultType,
			Args: graphql.FieldConfigArgument{
				"qty": &graphql.ArgumentConfig{Type: nonNullFloat},
			},
			Resolve: resolve(func(p graphql.ResolveParams) (any, error) {
				qty, _ := p.Args["qty"].(float64)
				if qty <= 0 {
					return nil, services.ErrBadUserInput("qty must be positive")
				}
				wallet, err := sessionFrom(p.Context).wallet()
				if err != nil {
					return nil, err
				}
				tips, err := wallet.CalculateTips(p.Context, qty)
				if err != nil {
					return nil, err
				}
				return map[string]any{"tips": tips}, nil
			}),
		},
		"getPublishById": &graphql.Field{
			Type: publishType,
			Args: inputArg(publishByIDInputType),
			Resolve: resolve(func(p graphql.ResolveParams) (any, error) {
				var in publishByIDInput
				if err := decodeInput(p, &in); err != nil {
					return nil, err
				}
				publish, err := services.GetPublishForViewer(p.Context, in.PublishID, in.RequestorID)
				if err != nil {
					return nil, err
				}
				if in.RequestorID != nil && len(*in.RequestorID) > 0 {
					services.AddPublishView(publish.ID, *in.RequestorID)
				}
				return viewPublish(p.Context, publish, in.RequestorID)
			}),
		},
		"fetchMyPublishes": &graphql.Field{
			Type: graphql.NewNonNull(publishConnectionType),
			Args: graphql.FieldConfigArgument{
				"input":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(fetchMyPublishesInputType)},
				"cursor": &graphql.ArgumentConfig{Type: graphql.String},
			},
			Resolve: resolve(func(p graphql.ResolveParams) (any, error) {
				var in services.FetchMyPublishesInput
				if err := decodeInput(p, &in); err != nil {
					return nil, err
				}
				if cursor := stringArg(p, "cursor"); cursor != nil {
					in.Cursor = cursor
				}
				page, err := services.FetchMyPublishes(p.Context, sessionFrom(p.Context).credentials(v.cfg.SignedMessage), in)
				if err != nil {
					return nil, err
				}
				return publishConnection(p.Context, page, &in.CreatorID)
			}),
		},
		"fetchAllVideos": v.feedField(services.FeedVideos),
		"fetchAllBlogs":  v.feedField(services.FeedBlogs),
		"fetchVideosByCategory": &graphql.Field{
			Type: graphql.NewNonNull(publishConnectionType),
			Args: inputArg(categoryFeedInputType),
			Resolve: resolve(func(p graphql.ResolveParams) (any, error) {
				var in categoryFeedInput
				if err := decodeInput(p, &in); err != nil {
					return nil, err
				}
				page, err := services.ListFeed(p.Context, services.FeedQuery{
					Kind:        services.FeedLongVideos,
					RequestorID: in.RequestorID,
					Cursor:      in.Cursor,
					Category:    &in.Category,
				}, services.DefaultPageSize)
				if err != nil {
					return nil, err
				}
				return publishConnection(p.Context, page, in.RequestorID)
			}),
		},
		"fetchSuggestedVideos": &graphql.Field{
			Type: graphql.NewNonNull(publishConnectionType),
			Args: inputArg(suggestedFeedInputType),
			Resolve: resolve(func(p graphql.ResolveParams) (any, error) {
				var in suggestedFeedInput
				if err := decodeInput(p, &in); err != nil {
					return nil, err
				}
				page, err := services.ListFeed(p.Context, services.FeedQuery{
					Kind:             services.FeedLongVideos,
					RequestorID:      in.RequestorID,
					Cursor:           in.Cursor,
					ExcludePublishID: &in.PublishID,
				}, services.DefaultPageSize)
				if err != nil {
					return nil, err
				}
				return publishConnection(p.Context, page, in.RequestorID)
			}),
		},
		"fetchPublishesByCreatorId": &graphql.Field{
			Type: graphql.NewNonNull(publishConnectionType),
			Args: inputArg(creatorPublishesInputType),
			Resolve: resolve(func(p graphql.ResolveParams) (any, error) {
				var in creatorPublishesInput
				if err := decodeInput(p, &in); err != nil {
					return nil, err
				}
				page, err := services.ListCreatorPublishes(p.Context, in.CreatorID, in.Kind, in.Cursor)
				if err != nil {
					return nil, err
				}
				return publishConnection(p.Context, page, nil)
			}),
		},
		"fetchCommentsByPublishId": &graphql.Field{
			Type: graphql.NewNonNull(commentConnectionType),
			Args: inputArg(publishCommentsInputType),
			Resolve: resolve(func(p graphql.ResolveParams) (any, error) {
				var in publishCommentsInput
				if err := decodeInput(p, &in); err != nil {
					return nil, err
				}
				page, err := services.ListPublishComments(p.Context, in.PublishID, in.OrderBy, in.Cursor)
				if err != nil {
					return nil, err
				}
				return commentConnection(p.Context, page, in.RequestorID)
			}),
		},
		"fetchSubComments": &graphql.Field{
			Type: graphql.NewNonNull(commentConnectionType),
			Args: inputArg(subCommentsInputType),
			Resolve: resolve(func(p graphql.ResolveParams) (any, error) {
				var in subCommentsInput
				if err := decodeInput(p, &in); err != nil {
					return nil, err
				}
				page, err := services.ListSubComments(p.Context, in.CommentID, in.Cursor)
				if err != nil {
					return nil, err
				}
				return commentConnection(p.Context, page, in.RequestorID)
			}),
		},
		"fetchDontRecommends": &graphql.Field{
			Type: graphql.NewNonNull(dontRecommendConnectionType),
			Args: inputArg(stationScopedInputType),
			Resolve: resolve(func(p graphql.ResolveParams) (any, error) {
				var in stationScopedInput
				if err := decodeInput(p, &in); err != nil {
					return nil, err
				}
				cred := sessionFrom(p.Context).credentials(v.cfg.SignedMessage)
				page, err := services.ListDontRecommends(p.Context, cred, in.AuthenticityInput, in.StationID, in.Cursor)
				if err != nil {
					return nil, err
				}
				return plainConnection(page), nil
			}),
		},
		"fetchMyPlaylists": &graphql.Field{
			Type: graphql.NewNonNull(playlistConnectionType),
			Args: inputArg(stationScopedInputType),
			Resolve: resolve(func(p graphql.ResolveParams) (any, error) {
				var in stationScopedInput
				if err := decodeInput(p, &in); err != nil {
					return nil, err
				}
				cred := sessionFrom(p.Context).credentials(v.cfg.SignedMessage)
				page, err := services.ListMyPlaylists(p.Context, cred, in.AuthenticityInput, in.StationID, in.Cursor)
				if err != nil {
					return nil, err
				}
				return plainConnection(page), nil
			}),
		},
		"fetchPlaylistItems": &graphql.Field{
			Type: graphql.NewNonNull(playlistItemConnectionType),
			Args: inputArg(playlistItemsInputType),
			Resolve: resolve(func(p graphql.ResolveParams) (any, error) {
				var in playlistItemsInput
				if err := decodeInput(p, &in); err != nil {
					return nil, err
				}
				page, err := services.ListPlaylistItems(p.Context, in.PlaylistID, in.Cursor)
				if err != nil {
					return nil, err
				}
				return plainConnection(page), nil
			}),
		},
		"checkPublishPlaylists": &graphql.Field{
			Type: graphql.NewNonNull(checkPublishPlaylistsType),
			Args: inputArg(checkPublishPlaylistsInputType),
			Resolve: resolve(func(p graphql.ResolveParams) (any, error) {
				var in stationPublishInput
				if err := decodeInput(p, &in); err != nil {
					return nil, err
				}
				cred := sessionFrom(p.Context).credentials(v.cfg.SignedMessage)
				return services.CheckPublishPlaylists(p.Context, cred, in.AuthenticityInput, in.StationID, in.PublishID)
			}),
		},
		"fetchWatchLater": &graphql.Field{
			Type: graphql.NewNonNull(watchLaterConnectionType),
			Args: inputArg(stationScopedInputType),
			Resolve: resolve(func(p graphql.ResolveParams) (any, error) {
				var in stationScopedInput
				if err := decodeInput(p, &in); err != nil {
					return nil, err
				}
				cred := sessionFrom(p.Context).credentials(v.cfg.SignedMessage)
				page, err := services.ListWatchLater(p.Context, cred, in.AuthenticityInput, in.StationID, in.Cursor)
				if err != nil {
					return nil, err
				}
				return plainConnection(page), nil
			}),
		},
		"fetchBookmarks": &graphql.Field{
			Type: graphql.NewNonNull(bookmarkConnectionType),
			Args: inputArg(bookmarksInputType),
			Resolve: resolve(func(p graphql.ResolveParams) (any, error) {
				var in bookmarksInput
				if err := decodeInput(p, &in); err != nil {
					return nil, err
				}
				cred := sessionFrom(p.Context).credentials(v.cfg.SignedMessage)
				page, err := services.ListBookmarks(p.Context, cred, in.AuthenticityInput, in.ProfileID, in.Cursor)
				if err != nil {
					return nil, err
				}
				return plainConnection(page), nil
			}),
		},
	}
}

func (v *resolver) feedField(kind services.FeedKind) *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewNonNull(publishConnectionType),
		Args: graphql.FieldConfigArgument{
			"input": &graphql.ArgumentConfig{Type: feedInputType},
		},
		Resolve: resolve(func(p graphql.ResolveParams) (any, error) {
			var in feedInput
			if raw, ok := p.Args["input"]; ok && raw != nil {
				if err := decodeInput(p, &in); err != nil {
					return nil, err
				}
			}
			page, err := services.ListFeed(p.Context, services.FeedQuery{
				Kind:        kind,
				RequestorID: in.RequestorID,
				Cursor:      in.Cursor,
			}, services.DefaultPageSize)
			if err != nil {
				return nil, err
			}
			return publishConnection(p.Context, page, in.RequestorID)
		}),
	}
}
