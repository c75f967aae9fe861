package launchpad

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/miaswap/launchpad/schema"
	"github.com/stretchr/testify/assert"
)

type linearAward struct {
	perSecond int64
}

func (h linearAward) ComputeAward(stakedFor int64) *big.Int {
	return big.NewInt(stakedFor * h.perSecond)
}

func newStakeEnv(t *testing.T) (*mintEnv, *StakeVault, common.Address) {
	env := newMintEnv(t, 100, 0)
	vault := NewStakeVault(env.minter)
	staker := common.HexToAddress("0xa11ce")
	_, err := env.minter.OwnerMint(env.owner, 3, staker)
	assert.NoError(t, err)
	assert.NoError(t, vault.SetStakeable(env.owner, true))
	return env, vault, staker
}

func TestStakeAndTransferLock(t *testing.T) {
	env, vault, staker := newStakeEnv(t)
	other := common.HexToAddress("0xb0b")

	assert.NoError(t, vault.StakeTokens(staker, []uint64{0, 1}))

	rec, ok := vault.Stake(0)
	assert.True(t, ok)
	assert.Equal(t, staker, rec.Staker)
	assert.Equal(t, env.now, rec.StakedAt)

	// locked tokens cannot move, unlocked ones can
	env.minter.mu.Lock()
	err := env.ledger.TransferFrom(staker, staker, other, 0)
	env.minter.mu.Unlock()
	assert.Equal(t, schema.ErrTransferWhileStaked, err)

	env.minter.mu.Lock()
	err = env.ledger.TransferFrom(staker, staker, other, 2)
	env.minter.mu.Unlock()
	assert.NoError(t, err)
}

func TestStakeValidation(t *testing.T) {
	env, vault, staker := newStakeEnv(t)
	other := common.HexToAddress("0xb0b")

	assert.Equal(t, schema.ErrNoTokensSpecified, vault.StakeTokens(staker, nil))
	assert.Equal(t, schema.ErrIncorrectOwner, vault.StakeTokens(other, []uint64{0}))
	assert.Equal(t, schema.ErrNonexistentToken, vault.StakeTokens(staker, []uint64{99}))

	assert.NoError(t, vault.StakeTokens(staker, []uint64{0}))
	assert.Equal(t, schema.ErrTokenAlreadyStaked, vault.StakeTokens(staker, []uint64{0, 1}))
	// the failed batch must not have locked token 1
	_, ok := vault.Stake(1)
	assert.False(t, ok)

	assert.NoError(t, vault.SetStakeable(env.owner, false))
	assert.Equal(t, schema.ErrStakingInactive, vault.StakeTokens(staker, []uint64{1}))
}

func TestClaimAward(t *testing.T) {
	env, vault, staker := newStakeEnv(t)

	env.treasury.Credit(big.NewInt(10000))
	assert.NoError(t, vault.SetBaseAward(env.owner, big.NewInt(10)))
	assert.NoError(t, vault.SetHandler(env.owner, linearAward{perSecond: 2}))

	assert.NoError(t, vault.StakeTokens(staker, []uint64{0, 1}))
	env.now += 100

	award, err := vault.ClaimTokens(staker, []uint64{0, 1}, false)
	assert.NoError(t, err)
	// per token: 10 base + 100s * 2
	assert.Equal(t, big.NewInt(420), award)
	assert.Equal(t, big.NewInt(420), env.treasury.PaidTo(staker))

	_, ok := vault.Stake(0)
	assert.False(t, ok)
	_, err = vault.ClaimTokens(staker, []uint64{0}, false)
	assert.Equal(t, schema.ErrTokenNotStaked, err)
}

func TestClaimWithReStake(t *testing.T) {
	env, vault, staker := newStakeEnv(t)
	env.treasury.Credit(big.NewInt(1000))
	assert.NoError(t, vault.SetBaseAward(env.owner, big.NewInt(5)))

	assert.NoError(t, vault.StakeTokens(staker, []uint64{0}))
	env.now += 50

	// restake works even after staking is switched off
	assert.NoError(t, vault.SetStakeable(env.owner, false))
	award, err := vault.ClaimTokens(staker, []uint64{0}, true)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(5), award)

	rec, ok := vault.Stake(0)
	assert.True(t, ok)
	assert.Equal(t, env.now, rec.StakedAt)
}

func TestClaimInsufficientTreasury(t *testing.T) {
	env, vault, staker := newStakeEnv(t)
	assert.NoError(t, vault.SetBaseAward(env.owner, big.NewInt(100)))
	assert.NoError(t, vault.StakeTokens(staker, []uint64{0}))

	_, err := vault.ClaimTokens(staker, []uint64{0}, false)
	assert.Equal(t, schema.ErrInsufficientTreasury, err)

	// still staked, nothing paid
	_, ok := vault.Stake(0)
	assert.True(t, ok)
	assert.Equal(t, big.NewInt(0), env.treasury.PaidTo(staker))
}

func TestStakeSnapshotRestore(t *testing.T) {
	env, vault, staker := newStakeEnv(t)
	assert.NoError(t, vault.SetBaseAward(env.owner, big.NewInt(7)))
	assert.NoError(t, vault.StakeTokens(staker, []uint64{0, 2}))

	stakes, stakeable, baseAward := vault.snapshot()

	restored := NewStakeVault(env.minter)
	restored.restore(stakes, stakeable, baseAward)
	assert.True(t, restored.Stakeable())
	assert.Equal(t, big.NewInt(7), restored.BaseAward())
	ids := restored.StakesOf(staker)
	assert.Len(t, ids, 2)
}
