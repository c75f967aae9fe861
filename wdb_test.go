package launchpad

import (
	"math/big"
	"os"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/miaswap/launchpad/schema"
	"github.com/stretchr/testify/assert"
)

func TestSqlite(t *testing.T) {
	dbPath := "testSqlite"
	db := NewSqliteDb(dbPath)
	defer func() {
		db.Close()
		os.RemoveAll(dbPath)
	}()
	err := db.Migrate()
	assert.NoError(t, err)

	err = db.InsertMintOrder(schema.MintOrder{
		OrderId:   "order-1",
		Minter:    "0xa",
		Recipient: "0xa",
		Source:    schema.SourceMint,
		Qty:       2,
		UnitPrice: "50",
		Payment:   "100",
	})
	assert.NoError(t, err)

	orders, err := db.GetMintOrders("0xa", 10)
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, "100", orders[0].Payment)

	err = db.InsertContribution(schema.ContributionRecord{
		OrderId: "bid-1", Bidder: "0xb", Amount: "550", BidderTotal: "550", BucketTotal: "550",
	})
	assert.NoError(t, err)
	bids, err := db.ContributionsSince(time.Now().Add(-time.Hour))
	assert.NoError(t, err)
	assert.Len(t, bids, 1)

	err = db.SaveWhitelist(schema.Whitelist{Root: "0xroot", Addresses: []byte(`["0xa","0xb"]`)})
	assert.NoError(t, err)
	wl, err := db.GetWhitelist("0xroot")
	assert.NoError(t, err)
	assert.Equal(t, "0xroot", wl.Root)
}

func TestJournalRoundtrip(t *testing.T) {
	dbPath := "testJournal"
	db := NewSqliteDb(dbPath)
	defer func() {
		db.Close()
		os.RemoveAll(dbPath)
	}()
	assert.NoError(t, db.Migrate())

	env := newMintEnv(t, 100, 0)
	env.openStage(t, 50, 0, 0, common.Hash{})
	s := &Launchpad{wdb: db, minter: env.minter, whitelists: make(map[common.Hash]*MerkleTree)}

	buyer := common.HexToAddress("0xb0b")
	res, err := env.minter.Mint(buyer, 1, nil, 0, nil, big.NewInt(50))
	assert.NoError(t, err)
	orderId := s.journalMint(buyer, buyer, schema.SourceMint, res, big.NewInt(50), []string{"0x01"})
	orders, err := db.GetMintOrders(buyer.Hex(), 1)
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, orderId, orders[0].OrderId)
	assert.Equal(t, "50", orders[0].UnitPrice)
	assert.Equal(t, `["0x01"]`, string(orders[0].Proof))

	listed := common.HexToAddress("0xa11ce")
	root, err := s.SetWhitelist([]common.Address{listed})
	assert.NoError(t, err)
	saved, err := db.GetWhitelist(root.Hex())
	assert.NoError(t, err)
	assert.Contains(t, string(saved.Addresses), listed.Hex())
}
