package services

import (
	"context"
	"strings"
	"testing"

	"github.com/diirtv/stations/pkg/internal/gap"
	"github.com/diirtv/stations/pkg/internal/models"
	"github.com/samber/lo"
)

type fakeWallet struct {
	fakeIdentity
	address string
	created gap.CreateWalletResult
	user    gap.AuthUser
}

func (v fakeWallet) GetWalletAddress(ctx context.Context) (string, error) {
	return v.address, nil
}

func (v fakeWallet) CreateWallet(ctx context.Context) (gap.CreateWalletResult, error) {
	return v.created, nil
}

func (v fakeWallet) CreateUser(ctx context.Context, address string) (gap.AuthUser, error) {
	return gap.AuthUser{UID: v.user.UID, Address: address}, nil
}

func TestCreateAccountTraditional(t *testing.T) {
	setupTestDB(t)
	wallet := fakeWallet{
		fakeIdentity: fakeIdentity{uid: "uid-a"},
		address:      "0xABCD",
		created:      gap.CreateWalletResult{Address: "0xABCD", UID: "uid-a"},
	}
	ctx := context.Background()

	first, err := CreateAccount(ctx, wallet, Credentials{}, models.AccountTypeTraditional)
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	if first.Owner != "0xabcd" || lo.FromPtr(first.AuthUID) != "uid-a" {
		t.Errorf("unexpected account %+v", first)
	}
	again, err := CreateAccount(ctx, wallet, Credentials{}, models.AccountTypeTraditional)
	if err != nil {
		t.Fatalf("CreateAccount retry failed: %v", err)
	}
	if again.ID != first.ID {
		t.Errorf("expected retry to return the same account")
	}

	mine, err := GetMyAccount(ctx, wallet, Credentials{}, models.AccountTypeTraditional)
	if err != nil {
		t.Fatalf("GetMyAccount failed: %v", err)
	}
	if mine == nil || mine.ID != first.ID {
		t.Errorf("expected to find my account, got %+v", mine)
	}
}

func TestCreateAccountWallet(t *testing.T) {
	setupTestDB(t)
	sig, addr := signPersonal(t, keyAlice, testSignedMessage)
	wallet := fakeWallet{fakeIdentity: fakeIdentity{uid: "wallet-session"}}
	ctx := context.Background()

	_, err := CreateAccount(ctx, wallet, Credentials{}, models.AccountTypeWallet)
	expectCode(t, err, ErrCodeBadUserInput)

	cred := Credentials{Signature: sig, SignedMessage: testSignedMessage}
	account, err := CreateAccount(ctx, wallet, cred, models.AccountTypeWallet)
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	if account.Owner != strings.ToLower(addr) || account.AuthUID != nil {
		t.Errorf("unexpected wallet account %+v", account)
	}

	seedAccount(t, "0xfeed", lo.ToPtr("taken"), models.AccountTypeTraditional)
	_, err = CreateAccount(ctx, fakeWallet{fakeIdentity: fakeIdentity{uid: "taken"}}, cred, models.AccountTypeWallet)
	expectCode(t, err, ErrCodeBadRequest)

	_, err = CreateAccount(ctx, fakeWallet{fakeIdentity: fakeIdentity{err: errSessionExpired}}, cred, models.AccountTypeWallet)
	expectCode(t, err, ErrCodeUnauthenticated)
}

func TestCreateUserRequiresKey(t *testing.T) {
	wallet := fakeWallet{user: gap.AuthUser{UID: "new-uid"}}
	ctx := context.Background()

	_, err := CreateUser(ctx, wallet, "wrong", "secret", "0xABC")
	expectCode(t, err, ErrCodeUnauthorized)
	_, err = CreateUser(ctx, wallet, "", "", "0xABC")
	expectCode(t, err, ErrCodeUnauthorized)

	user, err := CreateUser(ctx, wallet, "secret", "secret", "0xABC")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if user.UID != "new-uid" || user.Address != "0xabc" {
		t.Errorf("unexpected user %+v", user)
	}
}
