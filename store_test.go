package launchpad

import (
	"math/big"
	"os"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/miaswap/launchpad/schema"
	"github.com/stretchr/testify/assert"
)

func TestEngineSnapshotRoundtrip(t *testing.T) {
	dbPath := "./data/testStore"
	s, err := NewStore(dbPath)
	assert.NoError(t, err)
	defer func() {
		s.Close()
		os.RemoveAll(dbPath)
	}()

	_, err = s.LoadEngineSnapshot()
	assert.Equal(t, schema.ErrNotExist, err)

	alice := common.HexToAddress("0xa11ce")
	snap := schema.EngineSnapshot{
		Owners:          []common.Address{alice, alice},
		TreasuryBalance: big.NewInt(12345),
		Mintable:        true,
		MaxSupply:       100,
		GlobalLimit:     4,
		CosignNonces:    map[common.Address]uint64{alice: 7},
		WalletMinted:    map[common.Address]uint32{alice: 2},
		Stages: []schema.Stage{{
			Price:     big.NewInt(50),
			StartTime: 10,
			EndTime:   100,
		}},
		StageMinted:       []uint32{2},
		StageWalletMinted: []map[common.Address]uint32{{alice: 2}},
		Auction: schema.AuctionSnapshot{
			Price:       big.NewInt(30),
			BucketTotal: big.NewInt(90),
			Accounts: map[common.Address]*schema.AuctionAccount{
				alice: {Contribution: big.NewInt(90), TokensClaimed: 3, Refunded: true},
			},
		},
		Stakes:    map[uint64]schema.StakeRecord{1: {Staker: alice, StakedAt: 99}},
		Stakeable: true,
		BaseAward: big.NewInt(10),
	}
	assert.NoError(t, s.SaveEngineSnapshot(snap))

	got, err := s.LoadEngineSnapshot()
	assert.NoError(t, err)
	assert.Equal(t, snap.Owners, got.Owners)
	assert.Equal(t, big.NewInt(12345), got.TreasuryBalance)
	assert.Equal(t, uint64(7), got.CosignNonces[alice])
	assert.Equal(t, big.NewInt(50), got.Stages[0].Price)
	assert.Equal(t, uint32(3), got.Auction.Accounts[alice].TokensClaimed)
	assert.True(t, got.Stakes[1].StakedAt == 99)
	assert.Equal(t, big.NewInt(10), got.BaseAward)
}

func TestCosignNonceStore(t *testing.T) {
	dbPath := "./data/testNonce"
	s, err := NewStore(dbPath)
	assert.NoError(t, err)
	defer func() {
		s.Close()
		os.RemoveAll(dbPath)
	}()

	buyer := common.HexToAddress("0xb0b")
	_, err = s.LoadCosignNonce(buyer)
	assert.Equal(t, schema.ErrNotExist, err)

	assert.NoError(t, s.SaveCosignNonce(buyer, 42))
	nonce, err := s.LoadCosignNonce(buyer)
	assert.NoError(t, err)
	assert.Equal(t, uint64(42), nonce)
}
