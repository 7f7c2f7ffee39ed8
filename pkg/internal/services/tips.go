package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/diirtv/stations/pkg/internal/database"
	"github.com/diirtv/stations/pkg/internal/gap"
	"github.com/diirtv/stations/pkg/internal/models"
	"github.com/rs/zerolog/log"
)

type StationWallet interface {
	MintFirstStationNFT(ctx context.Context, to, name string) (int64, error)
	MintStationNFT(ctx context.Context, to, name string) (int64, error)
	SendTips(ctx context.Context, to string, qty float64) (gap.SendTipsResult, error)
}

type MintStationInput struct {
	AccountID string `validate:"required"`
	To        string `validate:"required"`
	Name      string `validate:"required"`
}

// MintStationNFT mints a station token to the caller. The first station of an account
// is minted by the platform so its owner pays no gas.
func MintStationNFT(ctx context.Context, cred Credentials, wallet StationWallet, in MintStationInput, first bool) (int64, error) {
	if _, err := ValidateAuthenticity(ctx, cred, AuthenticityInput{AccountID: in.AccountID, Owner: in.To}); err != nil {
		return 0, err
	}

	var tokenID int64
	var err error
	if first {
		tokenID, err = wallet.MintFirstStationNFT(ctx, in.To, in.Name)
	} else {
		tokenID, err = wallet.MintStationNFT(ctx, in.To, in.Name)
	}
	if err != nil {
		return 0, fmt.Errorf("unable to mint station token: %v", err)
	}
	return tokenID, nil
}

type SendTipsInput struct {
	AuthenticityInput
	SenderID   string `validate:"required"`
	ReceiverID string `validate:"required"`
	PublishID  *string
	Qty        float64 `validate:"required,gt=0"`
}

func SendTips(ctx context.Context, cred Credentials, wallet StationWallet, in SendTipsInput) (gap.SendTipsResult, error) {
	var result gap.SendTipsResult
	if _, _, err := AuthorizeStation(ctx, cred, in.AuthenticityInput, in.SenderID); err != nil {
		return result, err
	}
	receiver, err := GetStationWithID(ctx, in.ReceiverID)
	if err != nil {
		return result, err
	}

	result, err = wallet.SendTips(ctx, receiver.Name, in.Qty)
	if err != nil {
		return result, fmt.Errorf("unable to send tips: %v", err)
	}

	tip := models.Tip{
		SenderID:   in.SenderID,
		ReceiverID: &receiver.ID,
		PublishID:  in.PublishID,
		From:       strings.ToLower(result.From),
		To:         strings.ToLower(result.To),
		Amount:     result.Amount,
		Fee:        result.Fee,
	}
	if err := database.C.WithContext(ctx).Create(&tip).Error; err != nil {
		// The transfer already happened, keep the answer and leave a trace.
		log.Error().Err(err).Str("sender", in.SenderID).Str("receiver", receiver.ID).Msg("An error occurred when recording a sent tip...")
	}
	return result, nil
}

type CreateTipInput struct {
	AuthenticityInput
	SenderID  string  `validate:"required"`
	PublishID string  `validate:"required"`
	From      string  `validate:"required"`
	To        string  `validate:"required"`
	Amount    float64 `validate:"gt=0"`
	Fee       float64
}

// CreateTip records a tip the client settled by itself.
func CreateTip(ctx context.Context, cred Credentials, in CreateTipInput) (models.Tip, error) {
	var tip models.Tip
	if _, _, err := AuthorizeStation(ctx, cred, in.AuthenticityInput, in.SenderID); err != nil {
		return tip, err
	}
	if _, err := GetPublishWithID(ctx, in.PublishID); err != nil {
		return tip, err
	}

	tip = models.Tip{
		SenderID:  in.SenderID,
		PublishID: &in.PublishID,
		From:      strings.ToLower(in.From),
		To:        strings.ToLower(in.To),
		Amount:    in.Amount,
		Fee:       in.Fee,
	}
	if err := database.C.WithContext(ctx).Create(&tip).Error; err != nil {
		return tip, fmt.Errorf("unable to create tip: %v", err)
	}
	return tip, nil
}

func CountPublishTips(ctx context.Context, publishID string) (int64, error) {
	var count int64
	err := database.C.WithContext(ctx).Model(&models.Tip{}).Where("publish_id = ?", publishID).Count(&count).Error
	return count, err
}
