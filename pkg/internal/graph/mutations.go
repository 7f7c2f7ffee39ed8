package graph

import (
	"github.com/diirtv/stations/pkg/internal/models"
	"github.com/diirtv/stations/pkg/internal/services"
	"github.com/graphql-go/graphql"
)

// mutation decodes the input argument into In before running fn.
func mutation[In any](input *graphql.InputObject, out graphql.Output, fn func(p graphql.ResolveParams, in In) (any, error)) *graphql.Field {
	return &graphql.Field{
		Type: out,
		Args: inputArg(input),
		Resolve: resolve(func(p graphql.ResolveParams) (any, error) {
			var in In
			if err := decodeInput(p, &in); err != nil {
				return nil, err
			}
			return fn(p, in)
		}),
	}
}

type deletePublishInput struct {
	services.AuthenticityInput
	CreatorID string `validate:"required"`
	PublishID string `validate:"required"`
}

type playlistActionInput struct {
	services.AuthenticityInput
	StationID  string `validate:"required"`
	PlaylistID string `validate:"required"`
}

var (
	stationIDInputField = field(nonNullString)

	cacheSessionInputType = newInput("CacheSessionInput", withAuth(graphql.InputObjectConfigFieldMap{
		"stationId": stationIDInputField,
	}))
	createStationInputType = newInput("CreateStationInput", withAuth(graphql.InputObjectConfigFieldMap{
		"name":    field(nonNullString),
		"tokenId": field(graphql.Int),
	}))
	updateDisplayNameInputType = newInput("UpdateDisplayNameInput", withAuth(graphql.InputObjectConfigFieldMap{
		"stationId":   stationIDInputField,
		"displayName": field(nonNullString),
	}))
	updateImageInputType = newInput("UpdateImageInput", withAuth(graphql.InputObjectConfigFieldMap{
		"stationId": stationIDInputField,
		"image":     field(nonNullString),
	}))
	updateBannerImageInputType = newInput("UpdateBannerImageInput", withAuth(graphql.InputObjectConfigFieldMap{
		"stationId":   stationIDInputField,
		"bannerImage": field(nonNullString),
	}))
	updatePreferencesInputType = newInput("UpdatePreferencesInput", withAuth(graphql.InputObjectConfigFieldMap{
		"stationId":        stationIDInputField,
		"watchPreferences": field(graphql.NewList(graphql.NewNonNull(categoryEnum))),
		"readPreferences":  field(graphql.NewList(graphql.NewNonNull(categoryEnum))),
		"defaultColor":     field(graphql.String),
	}))
	mintStationInputType = newInput("MintStationNFTInput", graphql.InputObjectConfigFieldMap{
		"accountId": field(nonNullString),
		"to":        field(nonNullString),
		"name":      field(nonNullString),
	})
	followInputType = newInput("FollowInput", withAuth(graphql.InputObjectConfigFieldMap{
		"followerId": field(nonNullString),
		"followeeId": field(nonNullString),
	}))
	createDraftPublishInputType = newInput("CreateDraftPublishInput", withAuth(graphql.InputObjectConfigFieldMap{
		"creatorId": field(nonNullString),
		"filename":  field(nonNullString),
	}))
	updatePublishInputType = newInput("UpdatePublishInput", withAuth(graphql.InputObjectConfigFieldMap{
		"stationId":         stationIDInputField,
		"publishId":         field(nonNullString),
		"contentURI":        field(graphql.String),
		"contentRef":        field(graphql.String),
		"content":           field(graphql.String),
		"thumbnail":         field(graphql.String),
		"thumbnailRef":      field(graphql.String),
		"thumbSource":       field(thumbSourceEnum),
		"title":             field(graphql.String),
		"description":       field(graphql.String),
		"primaryCategory":   field(categoryEnum),
		"secondaryCategory": field(categoryEnum),
		"kind":              field(publishKindEnum),
		"visibility":        field(visibilityEnum),
		"tags":              field(stringList),
	}))
	deletePublishInputType = newInput("DeletePublishInput", withAuth(graphql.InputObjectConfigFieldMap{
		"creatorId": field(nonNullString),
		"publishId": field(nonNullString),
	}))
	publishActionInputType = newInput("PublishActionInput", withAuth(graphql.InputObjectConfigFieldMap{
		"stationId": stationIDInputField,
		"publishId": field(nonNullString),
	}))
	commentInputType = newInput("CommentInput", withAuth(graphql.InputObjectConfigFieldMap{
		"stationId":   stationIDInputField,
		"publishId":   field(nonNullString),
		"commentId":   field(graphql.String),
		"content":     field(nonNullString),
		"commentType": field(graphql.NewNonNull(commentTypeEnum)),
	}))
	commentActionInputType = newInput("CommentActionInput", withAuth(graphql.InputObjectConfigFieldMap{
		"stationId": stationIDInputField,
		"commentId": field(nonNullString),
	}))
	dontRecommendInputType = newInput("DontRecommendInput", withAuth(graphql.InputObjectConfigFieldMap{
		"requestorId": field(nonNullString),
		"targetId":    field(nonNullString),
	}))
	bookmarkInputType = newInput("BookmarkPostInput", withAuth(graphql.InputObjectConfigFieldMap{
		"profileId": field(nonNullString),
		"publishId": field(nonNullString),
	}))
	reportPublishInputType = newInput("ReportPublishInput", withAuth(graphql.InputObjectConfigFieldMap{
		"submittedById": field(nonNullString),
		"publishId":     field(nonNullString),
		"reason":        field(graphql.NewNonNull(reportReasonEnum)),
	}))
	addToNewPlaylistInputType = newInput("AddToNewPlaylistInput", withAuth(graphql.InputObjectConfigFieldMap{
		"stationId":   stationIDInputField,
		"name":        field(nonNullString),
		"description": field(graphql.String),
		"publishId":   field(nonNullString),
	}))
	addToPlaylistInputType = newInput("AddToPlaylistInput", withAuth(graphql.InputObjectConfigFieldMap{
		"stationId":  stationIDInputField,
		"playlistId": field(nonNullString),
		"publishId":  field(nonNullString),
	}))
	playlistItemStatusInputType = newInput("PlaylistItemStatusInput", graphql.InputObjectConfigFieldMap{
		"playlistId":   field(nonNullString),
		"isInPlaylist": field(nonNullBool),
	})
	updatePlaylistsInputType = newInput("UpdatePlaylistsInput", withAuth(graphql.InputObjectConfigFieldMap{
		"stationId": stationIDInputField,
		"publishId": field(nonNullString),
		"playlists": field(graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(playlistItemStatusInputType)))),
	}))
	updatePlaylistNameInputType = newInput("UpdatePlaylistNameInput", withAuth(graphql.InputObjectConfigFieldMap{
		"stationId":  stationIDInputField,
		"playlistId": field(nonNullString),
		"name":       field(nonNullString),
	}))
	updatePlaylistDescriptionInputType = newInput("UpdatePlaylistDescriptionInput", withAuth(graphql.InputObjectConfigFieldMap{
		"stationId":   stationIDInputField,
		"playlistId":  field(nonNullString),
		"description": field(nonNullString),
	}))
	playlistActionInputType = newInput("DeletePlaylistInput", withAuth(graphql.InputObjectConfigFieldMap{
		"stationId":  stationIDInputField,
		"playlistId": field(nonNullString),
	}))
	watchLaterInputType = newInput("AddToWatchLaterInput", withAuth(graphql.InputObjectConfigFieldMap{
		"stationId": stationIDInputField,
		"publishId": field(nonNullString),
	}))
	removeWatchLaterInputType = newInput("RemoveFromWatchLaterInput", withAuth(graphql.InputObjectConfigFieldMap{
		"stationId": stationIDInputField,
		"id":        field(nonNullString),
	}))
	sendTipsInputType = newInput("SendTipsInput", withAuth(graphql.InputObjectConfigFieldMap{
		"senderId":   field(nonNullString),
		"receiverId": field(nonNullString),
		"publishId":  field(graphql.String),
		"qty":        field(nonNullFloat),
	}))
	createTipInputType = newInput("CreateTipInput", withAuth(graphql.InputObjectConfigFieldMap{
		"senderId":  field(nonNullString),
		"publishId": field(nonNullString),
		"from":      field(nonNullString),
		"to":        field(nonNullString),
		"amount":    field(nonNullFloat),
		"fee":       field(graphql.Float),
	}))
)

func (v *resolver) mutations() graphql.Fields {
	cred := func(p graphql.ResolveParams) services.Credentials {
		return sessionFrom(p.Context).credentials(v.cfg.SignedMessage)
	}
	updateStation := func(input *graphql.InputObject) *graphql.Field {
		return mutation(input, stationType, func(p graphql.ResolveParams, in services.UpdateStationInput) (any, error) {
			station, err := services.UpdateStation(p.Context, cred(p), in)
			if err != nil {
				return nil, err
			}
			return viewStation(station, &station.ID), nil
		})
	}
	togglePublish := func(toggle func(p graphql.ResolveParams, in services.PublishActionInput) error) *graphql.Field {
		return mutation(publishActionInputType, writeResultType, func(p graphql.ResolveParams, in services.PublishActionInput) (any, error) {
			if err := toggle(p, in); err != nil {
				return nil, err
			}
			return writeResult(), nil
		})
	}
	toggleComment := func(toggle func(p graphql.ResolveParams, in services.CommentActionInput) error) *graphql.Field {
		return mutation(commentActionInputType, writeResultType, func(p graphql.ResolveParams, in services.CommentActionInput) (any, error) {
			if err := toggle(p, in); err != nil {
				return nil, err
			}
			return writeResult(), nil
		})
	}
	mint := func(first bool) *graphql.Field {
		return mutation(mintStationInputType, mintResultType, func(p graphql.ResolveParams, in services.MintStationInput) (any, error) {
			wallet, err := sessionFrom(p.Context).wallet()
			if err != nil {
				return nil, err
			}
			tokenID, err := services.MintStationNFT(p.Context, cred(p), wallet, in, first)
			if err != nil {
				return nil, err
			}
			return map[string]any{"tokenId": tokenID}, nil
		})
	}

	return graphql.Fields{
		"createAccount": mutation(accountTypeInputType, accountType, func(p graphql.ResolveParams, in accountTypeInput) (any, error) {
			wallet, err := sessionFrom(p.Context).wallet()
			if err != nil {
				return nil, err
			}
			return services.CreateAccount(p.Context, wallet, cred(p), in.AccountType)
		}),
		"cacheSession": mutation(cacheSessionInputType, writeResultType, func(p graphql.ResolveParams, in stationScopedInput) (any, error) {
			if err := services.CacheSession(p.Context, cred(p), in.AuthenticityInput, in.StationID); err != nil {
				return nil, err
			}
			return writeResult(), nil
		}),
		"createStation": mutation(createStationInputType, stationType, func(p graphql.ResolveParams, in services.CreateStationInput) (any, error) {
			station, err := services.CreateStation(p.Context, cred(p), in)
			if err != nil {
				return nil, err
			}
			return viewStation(station, &station.ID), nil
		}),
		"updateDisplayName":   updateStation(updateDisplayNameInputType),
		"updateImage":         updateStation(updateImageInputType),
		"updateBannerImage":   updateStation(updateBannerImageInputType),
		"updatePreferences":   updateStation(updatePreferencesInputType),
		"mintFirstStationNFT": mint(true),
		"mintStationNFT":      mint(false),
		"follow": mutation(followInputType, followResultType, func(p graphql.ResolveParams, in services.FollowInput) (any, error) {
			following, err := services.ToggleFollow(p.Context, cred(p), in)
			if err != nil {
				return nil, err
			}
			return map[string]any{"following": following}, nil
		}),
		"createDraftPublish": mutation(createDraftPublishInputType, publishType, func(p graphql.ResolveParams, in services.CreateDraftPublishInput) (any, error) {
			publish, err := services.CreateDraftPublish(p.Context, cred(p), in)
			if err != nil {
				return nil, err
			}
			return viewPublish(p.Context, publish, &in.CreatorID)
		}),
		"updatePublish": mutation(updatePublishInputType, publishType, func(p graphql.ResolveParams, in services.UpdatePublishInput) (any, error) {
			publish, err := services.UpdatePublish(p.Context, cred(p), in)
			if err != nil {
				return nil, err
			}
			return viewPublish(p.Context, publish, &in.StationID)
		}),
		"deletePublish": mutation(deletePublishInputType, writeResultType, func(p graphql.ResolveParams, in deletePublishInput) (any, error) {
			err := services.DeletePublish(p.Context, cred(p), sessionFrom(p.Context).files(), services.PublishActionInput{
				AuthenticityInput: in.AuthenticityInput,
				StationID:         in.CreatorID,
				PublishID:         in.PublishID,
			})
			if err != nil {
				return nil, err
			}
			return writeResult(), nil
		}),
		"likePublish": togglePublish(func(p graphql.ResolveParams, in services.PublishActionInput) error {
			return services.TogglePublishLike(p.Context, cred(p), sessionFrom(p.Context).notifier(), in)
		}),
		"disLikePublish": togglePublish(func(p graphql.ResolveParams, in services.PublishActionInput) error {
			return services.TogglePublishDisLike(p.Context, cred(p), sessionFrom(p.Context).notifier(), in)
		}),
		"comment": mutation(commentInputType, commentType, func(p graphql.ResolveParams, in services.CreateCommentInput) (any, error) {
			comment, err := services.CreateComment(p.Context, cred(p), sessionFrom(p.Context).notifier(), in)
			if err != nil {
				return nil, err
			}
			views, err := viewComments(p.Context, []models.Comment{comment}, &in.StationID)
			if err != nil {
				return nil, err
			}
			return views[0], nil
		}),
		"likeComment": toggleComment(func(p graphql.ResolveParams, in services.CommentActionInput) error {
			return services.ToggleCommentLike(p.Context, cred(p), sessionFrom(p.Context).notifier(), in)
		}),
		"disLikeComment": toggleComment(func(p graphql.ResolveParams, in services.CommentActionInput) error {
			return services.ToggleCommentDisLike(p.Context, cred(p), sessionFrom(p.Context).notifier(), in)
		}),
		"deleteComment": toggleComment(func(p graphql.ResolveParams, in services.CommentActionInput) error {
			return services.DeleteComment(p.Context, cred(p), in)
		}),
		"dontRecommend": mutation(dontRecommendInputType, dontRecommendType, func(p graphql.ResolveParams, in services.DontRecommendInput) (any, error) {
			return services.AddDontRecommend(p.Context, cred(p), in)
		}),
		"removeDontRecommend": mutation(dontRecommendInputType, writeResultType, func(p graphql.ResolveParams, in services.DontRecommendInput) (any, error) {
			if err := services.RemoveDontRecommend(p.Context, cred(p), in); err != nil {
				return nil, err
			}
			return writeResult(), nil
		}),
		"bookmarkPost": mutation(bookmarkInputType, bookmarkResultType, func(p graphql.ResolveParams, in services.BookmarkInput) (any, error) {
			bookmarked, err := services.ToggleBookmark(p.Context, cred(p), in)
			if err != nil {
				return nil, err
			}
			return map[string]any{"bookmarked": bookmarked}, nil
		}),
		"reportPublish": mutation(reportPublishInputType, reportType, func(p graphql.ResolveParams, in services.ReportPublishInput) (any, error) {
			return services.ReportPublish(p.Context, cred(p), in)
		}),
		"addToNewPlaylist": mutation(addToNewPlaylistInputType, playlistType, func(p graphql.ResolveParams, in services.AddToNewPlaylistInput) (any, error) {
			return services.AddToNewPlaylist(p.Context, cred(p), in)
		}),
		"addToPlaylist": mutation(addToPlaylistInputType, writeResultType, func(p graphql.ResolveParams, in services.AddToPlaylistInput) (any, error) {
			if err := services.AddToPlaylist(p.Context, cred(p), in); err != nil {
				return nil, err
			}
			return writeResult(), nil
		}),
		"updatePlaylists": mutation(updatePlaylistsInputType, writeResultType, func(p graphql.ResolveParams, in services.UpdatePlaylistsInput) (any, error) {
			if err := services.UpdatePlaylists(p.Context, cred(p), in); err != nil {
				return nil, err
			}
			return writeResult(), nil
		}),
		"updatePlaylistName": mutation(updatePlaylistNameInputType, playlistType, func(p graphql.ResolveParams, in services.UpdatePlaylistInput) (any, error) {
			return services.UpdatePlaylist(p.Context, cred(p), in)
		}),
		"updatePlaylistDescription": mutation(updatePlaylistDescriptionInputType, playlistType, func(p graphql.ResolveParams, in services.UpdatePlaylistInput) (any, error) {
			return services.UpdatePlaylist(p.Context, cred(p), in)
		}),
		"deletePlaylist": mutation(playlistActionInputType, writeResultType, func(p graphql.ResolveParams, in playlistActionInput) (any, error) {
			if err := services.DeletePlaylist(p.Context, cred(p), in.AuthenticityInput, in.StationID, in.PlaylistID); err != nil {
				return nil, err
			}
			return writeResult(), nil
		}),
		"addToWatchLater": mutation(watchLaterInputType, writeResultType, func(p graphql.ResolveParams, in services.WatchLaterInput) (any, error) {
			if err := services.AddToWatchLater(p.Context, cred(p), in); err != nil {
				return nil, err
			}
			return writeResult(), nil
		}),
		"removeFromWatchLater": mutation(removeWatchLaterInputType, writeResultType, func(p graphql.ResolveParams, in services.RemoveFromWatchLaterInput) (any, error) {
			if err := services.RemoveFromWatchLater(p.Context, cred(p), in); err != nil {
				return nil, err
			}
			return writeResult(), nil
		}),
		"sendTips": mutation(sendTipsInputType, sendTipsResultType, func(p graphql.ResolveParams, in services.SendTipsInput) (any, error) {
			wallet, err := sessionFrom(p.Context).wallet()
			if err != nil {
				return nil, err
			}
			return services.SendTips(p.Context, cred(p), wallet, in)
		}),
		"createTip": mutation(createTipInputType, tipType, func(p graphql.ResolveParams, in services.CreateTipInput) (any, error) {
			return services.CreateTip(p.Context, cred(p), in)
		}),
		"createUser": &graphql.Field{
			Type: authUserType,
			Args: graphql.FieldConfigArgument{
				"address": &graphql.ArgumentConfig{Type: nonNullString},
			},
			Resolve: resolve(func(p graphql.ResolveParams) (any, error) {
				session := sessionFrom(p.Context)
				wallet, err := session.wallet()
				if err != nil {
					return nil, err
				}
				return services.CreateUser(p.Context, wallet, session.APIKey, v.cfg.APIKey, p.Args["address"].(string))
			}),
		},
	}
}
