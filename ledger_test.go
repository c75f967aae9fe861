package launchpad

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/miaswap/launchpad/schema"
	"github.com/stretchr/testify/assert"
)

func TestTokenLedgerIssueAndTransfer(t *testing.T) {
	l := NewTokenLedger()
	alice := common.HexToAddress("0xa11ce")
	bob := common.HexToAddress("0xb0b")

	start := l.Issue(alice, 3)
	assert.Equal(t, uint64(0), start)
	assert.Equal(t, uint64(3), l.TotalSupply())
	assert.Equal(t, uint32(3), l.BalanceOf(alice))

	start = l.Issue(bob, 2)
	assert.Equal(t, uint64(3), start)

	owner, err := l.OwnerOf(1)
	assert.NoError(t, err)
	assert.Equal(t, alice, owner)

	_, err = l.OwnerOf(10)
	assert.Equal(t, schema.ErrNonexistentToken, err)

	assert.NoError(t, l.TransferFrom(alice, alice, bob, 1))
	owner, _ = l.OwnerOf(1)
	assert.Equal(t, bob, owner)
	assert.Equal(t, uint32(2), l.BalanceOf(alice))
	assert.Equal(t, uint32(3), l.BalanceOf(bob))

	assert.Equal(t, schema.ErrTransferFromWrongOwner, l.TransferFrom(alice, alice, bob, 1))
	assert.Equal(t, schema.ErrTransferCallerNotOwner, l.TransferFrom(alice, bob, alice, 1))
}

func TestTokenLedgerTransferHookVeto(t *testing.T) {
	l := NewTokenLedger()
	alice := common.HexToAddress("0xa11ce")
	bob := common.HexToAddress("0xb0b")
	l.Issue(alice, 1)

	l.RegisterTransferHook(func(from, to common.Address, tokenId uint64) error {
		if tokenId == 0 {
			return schema.ErrTransferWhileStaked
		}
		return nil
	})

	assert.Equal(t, schema.ErrTransferWhileStaked, l.TransferFrom(alice, alice, bob, 0))
	owner, _ := l.OwnerOf(0)
	assert.Equal(t, alice, owner)
}

func TestTreasury(t *testing.T) {
	tr := NewTreasury()
	alice := common.HexToAddress("0xa11ce")

	tr.Credit(big.NewInt(1000))
	assert.Equal(t, big.NewInt(1000), tr.Balance())

	assert.NoError(t, tr.Send(alice, big.NewInt(400)))
	assert.Equal(t, big.NewInt(600), tr.Balance())
	assert.Equal(t, big.NewInt(400), tr.PaidTo(alice))

	assert.Equal(t, schema.ErrInsufficientTreasury, tr.Send(alice, big.NewInt(601)))
	assert.Equal(t, big.NewInt(600), tr.Balance())
}

func TestTokenLedgerSnapshotRestore(t *testing.T) {
	l := NewTokenLedger()
	alice := common.HexToAddress("0xa11ce")
	bob := common.HexToAddress("0xb0b")
	l.Issue(alice, 2)
	l.Issue(bob, 1)

	owners := l.snapshot()

	restored := NewTokenLedger()
	restored.restore(owners)
	assert.Equal(t, uint64(3), restored.TotalSupply())
	assert.Equal(t, uint32(2), restored.BalanceOf(alice))
	owner, err := restored.OwnerOf(2)
	assert.NoError(t, err)
	assert.Equal(t, bob, owner)
}
