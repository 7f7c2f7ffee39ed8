package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/diirtv/stations/pkg/internal/database"
	"github.com/diirtv/stations/pkg/internal/metrics"
	"github.com/diirtv/stations/pkg/internal/models"
	"gorm.io/gorm"
)

// IdentityVerifier asserts the caller holds a live session and returns its uid.
type IdentityVerifier interface {
	VerifyUser(ctx context.Context) (string, error)
}

// Credentials are what the caller proved about itself on this request.
type Credentials struct {
	Identity IdentityVerifier
	// Signature is the optional personal-sign payload of wallet accounts.
	Signature string
	// SignedMessage is checked when Signature carries no message of its own.
	SignedMessage string
}

type AuthenticityInput struct {
	AccountID string `validate:"required"`
	Owner     string `validate:"required"`
}

// ValidateAuthenticity proves the caller controls the account and owner claimed in the
// request body. Both the session path and the signature path must land on the same owner
// as the claimed account id.
func ValidateAuthenticity(ctx context.Context, cred Credentials, in AuthenticityInput) (models.Account, error) {
	account, err := validateAuthenticity(ctx, cred, in)
	if err != nil {
		metrics.AuthenticityChecksTotal.WithLabelValues(string(codeOrInternal(err))).Inc()
		return account, err
	}
	metrics.AuthenticityChecksTotal.WithLabelValues("ok").Inc()
	return account, nil
}

func validateAuthenticity(ctx context.Context, cred Credentials, in AuthenticityInput) (models.Account, error) {
	var account models.Account
	if len(in.AccountID) == 0 || len(in.Owner) == 0 {
		return account, ErrBadUserInput("account id and owner are required")
	}
	if cred.Identity == nil {
		return account, ErrUnauthenticated(nil)
	}

	uid, err := cred.Identity.VerifyUser(ctx)
	if err != nil {
		return account, ErrUnauthenticated(err)
	}

	tx := database.C.WithContext(ctx)

	found, err := getAccountBy(tx, "auth_uid = ?", uid)
	if err != nil {
		return account, err
	}
	if found == nil && len(cred.Signature) > 0 {
		addr, err := RecoverAddress(cred.Signature, cred.SignedMessage)
		if err != nil {
			return account, ErrUnauthorized(err)
		}
		if found, err = getAccountBy(tx, "owner = ?", strings.ToLower(addr)); err != nil {
			return account, err
		}
	}
	if found == nil {
		return account, ErrUnauthorized(fmt.Errorf("no account for the caller"))
	}

	claimed, err := getAccountBy(tx, "id = ?", in.AccountID)
	if err != nil {
		return account, err
	}
	if claimed == nil {
		return account, ErrUnauthorized(fmt.Errorf("claimed account does not exist"))
	}

	owner := strings.ToLower(found.Owner)
	if owner != strings.ToLower(claimed.Owner) {
		return account, ErrUnauthorized(fmt.Errorf("claimed account belongs to someone else"))
	}
	if owner != strings.ToLower(in.Owner) {
		return account, ErrUnauthorized(fmt.Errorf("claimed owner mismatch"))
	}

	return *found, nil
}

func getAccountBy(tx *gorm.DB, query string, args ...any) (*models.Account, error) {
	var account models.Account
	if err := tx.Where(query, args...).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("unable to get account: %v", err)
	}
	return &account, nil
}

// AuthorizeStation validates the caller and asserts the station belongs to its account.
func AuthorizeStation(ctx context.Context, cred Credentials, in AuthenticityInput, stationID string) (models.Account, models.Station, error) {
	var station models.Station
	account, err := ValidateAuthenticity(ctx, cred, in)
	if err != nil {
		return account, station, err
	}
	if err := database.C.WithContext(ctx).Where("id = ?", stationID).First(&station).Error; err != nil {
		return account, station, notFoundOr(err, "station")
	}
	if station.AccountID != account.ID {
		return account, station, ErrUnauthorized(fmt.Errorf("station belongs to another account"))
	}
	return account, station, nil
}

func codeOrInternal(err error) ErrorCode {
	if code := CodeOf(err); len(code) > 0 {
		return code
	}
	return "INTERNAL"
}
