package services

import (
	"context"
	"testing"

	"github.com/diirtv/stations/pkg/internal/gap"
	"github.com/samber/lo"
)

type fakeStationWallet struct {
	minted []string
	sentTo []string
}

func (v *fakeStationWallet) MintFirstStationNFT(ctx context.Context, to, name string) (int64, error) {
	v.minted = append(v.minted, "first:"+name)
	return 1, nil
}

func (v *fakeStationWallet) MintStationNFT(ctx context.Context, to, name string) (int64, error) {
	v.minted = append(v.minted, name)
	return 2, nil
}

func (v *fakeStationWallet) SendTips(ctx context.Context, to string, qty float64) (gap.SendTipsResult, error) {
	v.sentTo = append(v.sentTo, to)
	return gap.SendTipsResult{From: "0xAAAA", To: "0xBBBB", Amount: qty, Fee: qty / 10}, nil
}

func TestSendTips(t *testing.T) {
	setupTestDB(t)
	sender, cred, in := seedMember(t, "sender")
	receiver, _, _ := seedMember(t, "receiver")
	publish := seedPublish(t, receiver, 0)
	wallet := &fakeStationWallet{}
	ctx := context.Background()

	result, err := SendTips(ctx, cred, wallet, SendTipsInput{
		AuthenticityInput: in,
		SenderID:          sender.ID,
		ReceiverID:        receiver.ID,
		PublishID:         lo.ToPtr(publish.ID),
		Qty:               5,
	})
	if err != nil {
		t.Fatalf("SendTips failed: %v", err)
	}
	if result.Amount != 5 || len(wallet.sentTo) != 1 || wallet.sentTo[0] != receiver.Name {
		t.Errorf("unexpected tip result %+v sent to %v", result, wallet.sentTo)
	}
	if count, _ := CountPublishTips(ctx, publish.ID); count != 1 {
		t.Errorf("expected a recorded tip, got %d", count)
	}

	_, err = SendTips(ctx, cred, wallet, SendTipsInput{
		AuthenticityInput: in, SenderID: sender.ID, ReceiverID: "missing", Qty: 1,
	})
	expectCode(t, err, ErrCodeNotFound)
}

func TestMintStationNFT(t *testing.T) {
	setupTestDB(t)
	_, cred, in := seedMember(t, "alice")
	wallet := &fakeStationWallet{}
	ctx := context.Background()

	tokenID, err := MintStationNFT(ctx, cred, wallet, MintStationInput{AccountID: in.AccountID, To: in.Owner, Name: "alice"}, true)
	if err != nil {
		t.Fatalf("MintStationNFT failed: %v", err)
	}
	if tokenID != 1 || wallet.minted[0] != "first:alice" {
		t.Errorf("expected first mint, got token %d and %v", tokenID, wallet.minted)
	}

	_, err = MintStationNFT(ctx, cred, wallet, MintStationInput{AccountID: in.AccountID, To: "0xsomeoneelse", Name: "x"}, false)
	expectCode(t, err, ErrCodeUnauthorized)
}
