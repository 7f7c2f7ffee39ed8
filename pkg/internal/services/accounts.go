package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/diirtv/stations/pkg/internal/database"
	"github.com/diirtv/stations/pkg/internal/gap"
	"github.com/diirtv/stations/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type WalletAccounts interface {
	IdentityVerifier
	GetWalletAddress(ctx context.Context) (string, error)
	CreateWallet(ctx context.Context) (gap.CreateWalletResult, error)
}

func GetAccountWithOwner(ctx context.Context, owner string) (*models.Account, error) {
	return getAccountBy(database.C.WithContext(ctx), "owner = ?", strings.ToLower(owner))
}

// GetMyAccount resolves the caller's account, nil when it was never created.
func GetMyAccount(ctx context.Context, wallet WalletAccounts, cred Credentials, accountType string) (*models.Account, error) {
	if _, err := wallet.VerifyUser(ctx); err != nil {
		return nil, ErrUnauthenticated(err)
	}

	switch accountType {
	case models.AccountTypeTraditional:
		address, err := wallet.GetWalletAddress(ctx)
		if err != nil {
			return nil, fmt.Errorf("unable to get wallet address: %v", err)
		}
		if len(address) == 0 {
			return nil, nil
		}
		return GetAccountWithOwner(ctx, address)
	case models.AccountTypeWallet:
		if len(cred.Signature) == 0 {
			return nil, ErrUnauthorized(fmt.Errorf("missing signature"))
		}
		address, err := RecoverAddress(cred.Signature, cred.SignedMessage)
		if err != nil {
			return nil, ErrUnauthorized(err)
		}
		return GetAccountWithOwner(ctx, address)
	default:
		return nil, ErrBadUserInput("unknown account type")
	}
}

// CreateAccount onboards the caller. Retried calls return the existing account.
func CreateAccount(ctx context.Context, wallet WalletAccounts, cred Credentials, accountType string) (models.Account, error) {
	var account models.Account

	uid, err := wallet.VerifyUser(ctx)
	if err != nil {
		return account, ErrUnauthenticated(err)
	}

	switch accountType {
	case models.AccountTypeTraditional:
		created, err := wallet.CreateWallet(ctx)
		if err != nil {
			return account, fmt.Errorf("unable to create wallet: %v", err)
		}
		authUID := created.UID
		if len(authUID) == 0 {
			authUID = uid
		}
		return findOrCreateAccount(ctx, models.Account{
			Type:    models.AccountTypeTraditional,
			Owner:   strings.ToLower(created.Address),
			AuthUID: &authUID,
		})
	case models.AccountTypeWallet:
		if len(cred.Signature) == 0 {
			return account, ErrBadUserInput("signature is required for wallet accounts")
		}
		if existing, err := getAccountBy(database.C.WithContext(ctx), "auth_uid = ?", uid); err != nil {
			return account, err
		} else if existing != nil {
			return account, ErrBadRequest("an account already exists for this identity")
		}
		address, err := RecoverAddress(cred.Signature, cred.SignedMessage)
		if err != nil {
			return account, ErrUnauthorized(err)
		}
		return findOrCreateAccount(ctx, models.Account{
			Type:  models.AccountTypeWallet,
			Owner: strings.ToLower(address),
		})
	default:
		return account, ErrBadUserInput("unknown account type")
	}
}

func findOrCreateAccount(ctx context.Context, in models.Account) (models.Account, error) {
	var account models.Account
	err := database.C.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner = ?", in.Owner).First(&account).Error; err == nil {
			return nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		account = in
		return tx.Create(&account).Error
	})
	if err != nil {
		return account, fmt.Errorf("unable to create account: %v", err)
	}

	log.Debug().Str("account", account.ID).Str("type", account.Type).Msg("Account ready.")
	return account, nil
}

type UserCreator interface {
	CreateUser(ctx context.Context, address string) (gap.AuthUser, error)
}

// CreateUser registers an address with the identity service on behalf of a trusted caller.
func CreateUser(ctx context.Context, wallet UserCreator, apiKey, expectedKey, address string) (gap.AuthUser, error) {
	if len(expectedKey) == 0 || apiKey != expectedKey {
		return gap.AuthUser{}, ErrUnauthorized(fmt.Errorf("invalid api key"))
	}
	if len(address) == 0 {
		return gap.AuthUser{}, ErrBadUserInput("address is required")
	}
	user, err := wallet.CreateUser(ctx, strings.ToLower(address))
	if err != nil {
		return user, fmt.Errorf("unable to create auth user: %v", err)
	}
	return user, nil
}
