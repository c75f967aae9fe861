package launchpad

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/miaswap/launchpad/schema"
	"github.com/stretchr/testify/assert"
)

type mintEnv struct {
	owner    common.Address
	contract common.Address
	now      int64
	minter   *Minter
	ledger   *TokenLedger
	treasury *Treasury
}

func newMintEnv(t *testing.T, maxSupply uint64, globalLimit uint32) *mintEnv {
	env := &mintEnv{
		owner:    common.HexToAddress("0xad111"),
		contract: common.HexToAddress("0xc0ffee"),
		now:      1000,
		ledger:   NewTokenLedger(),
		treasury: NewTreasury(),
	}
	env.minter = NewMinter(MinterConfig{
		Owner:             env.owner,
		Contract:          env.contract,
		ChainId:           1,
		MaxMintableSupply: maxSupply,
		GlobalWalletLimit: globalLimit,
		MinStageGap:       60,
		CosignExpiry:      300,
		Clock:             func() int64 { return env.now },
	}, env.ledger, env.treasury)
	assert.NoError(t, env.minter.SetMintable(env.owner, true))
	return env
}

func (e *mintEnv) openStage(t *testing.T, price int64, walletLimit, stageSupply uint32, root common.Hash) {
	assert.NoError(t, e.minter.SetStages(e.owner, []schema.Stage{{
		Price:          big.NewInt(price),
		WalletLimit:    walletLimit,
		MerkleRoot:     root,
		MaxStageSupply: stageSupply,
		StartTime:      e.now - 10,
		EndTime:        e.now + 1000,
	}}))
}

func TestMintHappyPath(t *testing.T) {
	env := newMintEnv(t, 100, 0)
	env.openStage(t, 50, 0, 0, common.Hash{})
	buyer := common.HexToAddress("0xb0b")

	res, err := env.minter.Mint(buyer, 3, nil, 0, nil, big.NewInt(150))
	assert.NoError(t, err)
	assert.Equal(t, uint64(0), res.StartTokenId)
	assert.Equal(t, uint32(3), res.Qty)
	assert.Equal(t, 0, res.StageIndex)

	assert.Equal(t, uint64(3), env.minter.TotalMinted())
	assert.Equal(t, uint32(3), env.minter.WalletMinted(buyer))
	assert.Equal(t, big.NewInt(150), env.treasury.Balance())
	owner, err := env.ledger.OwnerOf(2)
	assert.NoError(t, err)
	assert.Equal(t, buyer, owner)
}

func TestMintGates(t *testing.T) {
	env := newMintEnv(t, 100, 0)
	buyer := common.HexToAddress("0xb0b")

	// no schedule yet
	_, err := env.minter.Mint(buyer, 1, nil, 0, nil, big.NewInt(50))
	assert.Equal(t, schema.ErrInvalidStage, err)

	env.openStage(t, 50, 0, 0, common.Hash{})

	// sale switched off
	assert.NoError(t, env.minter.SetMintable(env.owner, false))
	_, err = env.minter.Mint(buyer, 1, nil, 0, nil, big.NewInt(50))
	assert.Equal(t, schema.ErrNotMintable, err)
	assert.NoError(t, env.minter.SetMintable(env.owner, true))

	// outside the stage window; end is exclusive
	env.now += 1000
	_, err = env.minter.Mint(buyer, 1, nil, 0, nil, big.NewInt(50))
	assert.Equal(t, schema.ErrInvalidStage, err)
	env.now -= 1000

	// underpayment
	_, err = env.minter.Mint(buyer, 2, nil, 0, nil, big.NewInt(99))
	assert.Equal(t, schema.ErrNotEnoughValue, err)

	// nothing committed along the way
	assert.Equal(t, uint64(0), env.minter.TotalMinted())
	assert.Equal(t, big.NewInt(0), env.treasury.Balance())
}

func TestMintWhitelist(t *testing.T) {
	env := newMintEnv(t, 100, 0)
	member := common.HexToAddress("0xa11ce")
	outsider := common.HexToAddress("0xbad")

	tree := NewMerkleTree([]common.Address{member, common.HexToAddress("0xb0b")})
	env.openStage(t, 10, 0, 0, tree.Root())

	proof, err := tree.Proof(member)
	assert.NoError(t, err)

	_, err = env.minter.Mint(outsider, 1, proof, 0, nil, big.NewInt(10))
	assert.Equal(t, schema.ErrInvalidProof, err)

	_, err = env.minter.Mint(member, 1, nil, 0, nil, big.NewInt(10))
	assert.Equal(t, schema.ErrInvalidProof, err)

	_, err = env.minter.Mint(member, 1, proof, 0, nil, big.NewInt(10))
	assert.NoError(t, err)
}

func TestMintSupplyLimits(t *testing.T) {
	env := newMintEnv(t, 10, 4)
	env.openStage(t, 1, 2, 3, common.Hash{})
	alice := common.HexToAddress("0xa11ce")
	bob := common.HexToAddress("0xb0b")

	// per-stage wallet limit
	_, err := env.minter.Mint(alice, 3, nil, 0, nil, big.NewInt(3))
	assert.Equal(t, schema.ErrWalletGlobalLimitExceeded, err)

	_, err = env.minter.Mint(alice, 2, nil, 0, nil, big.NewInt(2))
	assert.NoError(t, err)

	// stage supply: 2 minted of 3, bob asking 2 more
	_, err = env.minter.Mint(bob, 2, nil, 0, nil, big.NewInt(2))
	assert.Equal(t, schema.ErrStageSupplyExceeded, err)

	_, err = env.minter.Mint(bob, 1, nil, 0, nil, big.NewInt(1))
	assert.NoError(t, err)

	// fresh schedule clears the stage counters, global wallet counts remain
	env.openStage(t, 1, 0, 0, common.Hash{})
	_, err = env.minter.Mint(alice, 3, nil, 0, nil, big.NewInt(3))
	assert.Equal(t, schema.ErrWalletGlobalLimitExceeded, err)

	_, err = env.minter.Mint(alice, 2, nil, 0, nil, big.NewInt(2))
	assert.NoError(t, err)
	assert.Equal(t, uint32(4), env.minter.WalletMinted(alice))
}

func TestMintGlobalSupplyCap(t *testing.T) {
	env := newMintEnv(t, 3, 0)
	env.openStage(t, 1, 0, 0, common.Hash{})
	buyer := common.HexToAddress("0xb0b")

	_, err := env.minter.Mint(buyer, 4, nil, 0, nil, big.NewInt(4))
	assert.Equal(t, schema.ErrNoSupplyLeft, err)

	_, err = env.minter.Mint(buyer, 3, nil, 0, nil, big.NewInt(3))
	assert.NoError(t, err)

	_, err = env.minter.Mint(buyer, 1, nil, 0, nil, big.NewInt(1))
	assert.Equal(t, schema.ErrNoSupplyLeft, err)
}

func TestMintCosigned(t *testing.T) {
	env := newMintEnv(t, 100, 0)
	env.openStage(t, 10, 0, 0, common.Hash{})
	buyer := common.HexToAddress("0xb0b")

	key, err := crypto.GenerateKey()
	assert.NoError(t, err)
	cosigner := crypto.PubkeyToAddress(key.PublicKey)
	assert.NoError(t, env.minter.SetCosigner(env.owner, cosigner))

	// unsigned mint is refused once a cosigner is set
	_, err = env.minter.Mint(buyer, 1, nil, env.now, nil, big.NewInt(10))
	assert.Equal(t, schema.ErrInvalidCosignSignature, err)

	sig, err := SignCosign(key, env.contract, buyer, 1, cosigner, env.now, big.NewInt(1), env.minter.CosignNonce(buyer))
	assert.NoError(t, err)
	_, err = env.minter.Mint(buyer, 1, nil, env.now, sig, big.NewInt(10))
	assert.NoError(t, err)
	assert.Equal(t, uint64(1), env.minter.CosignNonce(buyer))

	// replaying the spent authorization fails on the advanced nonce
	_, err = env.minter.Mint(buyer, 1, nil, env.now, sig, big.NewInt(10))
	assert.Equal(t, schema.ErrInvalidCosignSignature, err)

	// stale timestamp
	sig, err = SignCosign(key, env.contract, buyer, 1, cosigner, env.now-301, big.NewInt(1), env.minter.CosignNonce(buyer))
	assert.NoError(t, err)
	_, err = env.minter.Mint(buyer, 1, nil, env.now-301, sig, big.NewInt(10))
	assert.Equal(t, schema.ErrTimestampExpired, err)
}

func TestCrossmint(t *testing.T) {
	env := newMintEnv(t, 100, 2)
	env.openStage(t, 10, 0, 0, common.Hash{})
	crossmint := common.HexToAddress("0xc105")
	recipient := common.HexToAddress("0xa11ce")

	_, err := env.minter.Crossmint(crossmint, 1, recipient, nil, 0, nil, big.NewInt(10))
	assert.Equal(t, schema.ErrCrossmintAddressNotSet, err)

	assert.NoError(t, env.minter.SetCrossmintAddress(env.owner, crossmint))

	_, err = env.minter.Crossmint(recipient, 1, recipient, nil, 0, nil, big.NewInt(10))
	assert.Equal(t, schema.ErrCrossmintOnly, err)

	res, err := env.minter.Crossmint(crossmint, 2, recipient, nil, 0, nil, big.NewInt(20))
	assert.NoError(t, err)
	assert.Equal(t, uint32(2), res.Qty)

	// wallet accounting keys off the recipient, not the payer
	assert.Equal(t, uint32(2), env.minter.WalletMinted(recipient))
	assert.Equal(t, uint32(0), env.minter.WalletMinted(crossmint))
	_, err = env.minter.Crossmint(crossmint, 1, recipient, nil, 0, nil, big.NewInt(10))
	assert.Equal(t, schema.ErrWalletGlobalLimitExceeded, err)

	owner, _ := env.ledger.OwnerOf(0)
	assert.Equal(t, recipient, owner)
}

func TestOwnerMintAndWithdraw(t *testing.T) {
	env := newMintEnv(t, 10, 1)
	env.openStage(t, 10, 0, 0, common.Hash{})
	buyer := common.HexToAddress("0xb0b")
	team := common.HexToAddress("0x7ea")

	_, err := env.minter.OwnerMint(buyer, 1, buyer)
	assert.Equal(t, schema.ErrNotOwner, err)

	// owner mint ignores wallet limits and stage gating, keeps the cap
	res, err := env.minter.OwnerMint(env.owner, 5, team)
	assert.NoError(t, err)
	assert.Equal(t, -1, res.StageIndex)

	_, err = env.minter.OwnerMint(env.owner, 6, team)
	assert.Equal(t, schema.ErrNoSupplyLeft, err)

	_, err = env.minter.Mint(buyer, 1, nil, 0, nil, big.NewInt(10))
	assert.NoError(t, err)

	_, err = env.minter.Withdraw(buyer)
	assert.Equal(t, schema.ErrNotOwner, err)

	value, err := env.minter.Withdraw(env.owner)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(10), value)
	assert.Equal(t, big.NewInt(0), env.treasury.Balance())
	assert.Equal(t, big.NewInt(10), env.treasury.PaidTo(env.owner))
}

func TestSupplyAndLimitSetters(t *testing.T) {
	env := newMintEnv(t, 100, 0)

	assert.Equal(t, schema.ErrCannotIncreaseMaxMintableSupply, env.minter.SetMaxMintableSupply(env.owner, 101))
	assert.NoError(t, env.minter.SetMaxMintableSupply(env.owner, 50))
	assert.Equal(t, uint64(50), env.minter.MaxMintableSupply())

	assert.Equal(t, schema.ErrGlobalWalletLimitOverflow, env.minter.SetGlobalWalletLimit(env.owner, 51))
	assert.NoError(t, env.minter.SetGlobalWalletLimit(env.owner, 50))

	assert.Equal(t, schema.ErrNotOwner, env.minter.SetMaxMintableSupply(common.HexToAddress("0xbad"), 10))
}
