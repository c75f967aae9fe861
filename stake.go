package launchpad

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/miaswap/launchpad/schema"
)

// AwardHandler computes the variable part of a staking payout from how long
// the token stayed locked, in seconds.
type AwardHandler interface {
	ComputeAward(stakedFor int64) *big.Int
}

// StakeVault locks tokens in place. A staked token keeps its owner but cannot
// be transferred; the vault registers a transfer hook on the ledger and vetoes
// any move of a locked token.
type StakeVault struct {
	m *Minter

	stakeable bool
	baseAward *big.Int
	handler   AwardHandler
	stakes    map[uint64]schema.StakeRecord
}

func NewStakeVault(m *Minter) *StakeVault {
	v := &StakeVault{
		m:         m,
		baseAward: new(big.Int),
		stakes:    make(map[uint64]schema.StakeRecord),
	}
	m.ledger.RegisterTransferHook(v.vetoStaked)
	return v
}

// vetoStaked runs inside the ledger's transfer path; the engine mutex is
// already held by the caller.
func (v *StakeVault) vetoStaked(from, to common.Address, tokenId uint64) error {
	if _, ok := v.stakes[tokenId]; ok {
		return schema.ErrTransferWhileStaked
	}
	return nil
}

// ----- owner configuration -----

func (v *StakeVault) SetStakeable(caller common.Address, stakeable bool) error {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	if err := v.m.requireOwner(caller); err != nil {
		return err
	}
	v.stakeable = stakeable
	return nil
}

// SetBaseAward sets the flat payout sent on every claim, on top of whatever
// the handler computes.
func (v *StakeVault) SetBaseAward(caller common.Address, award *big.Int) error {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	if err := v.m.requireOwner(caller); err != nil {
		return err
	}
	if award == nil {
		award = new(big.Int)
	}
	v.baseAward = new(big.Int).Set(award)
	return nil
}

func (v *StakeVault) SetHandler(caller common.Address, handler AwardHandler) error {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	if err := v.m.requireOwner(caller); err != nil {
		return err
	}
	v.handler = handler
	return nil
}

// ----- staking -----

// StakeTokens locks the given tokens. The whole batch is validated before any
// token is locked, and every record in the batch gets the same timestamp.
func (v *StakeVault) StakeTokens(caller common.Address, tokenIds []uint64) error {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()

	if !v.stakeable {
		return schema.ErrStakingInactive
	}
	if len(tokenIds) == 0 {
		return schema.ErrNoTokensSpecified
	}
	if err := v.checkOwnership(caller, tokenIds); err != nil {
		return err
	}
	for _, id := range tokenIds {
		if _, ok := v.stakes[id]; ok {
			return schema.ErrTokenAlreadyStaked
		}
	}

	now := v.m.clock()
	for _, id := range tokenIds {
		v.stakes[id] = schema.StakeRecord{Staker: caller, StakedAt: now}
		v.m.emit(schema.StakeTopic, schema.EventTokenStaked, map[string]interface{}{
			"staker":   caller,
			"tokenId":  id,
			"stakedAt": now,
		})
	}
	return nil
}

// ClaimTokens unlocks the given tokens and pays the accrued award out of the
// treasury. With reStake the tokens are locked again in the same operation,
// with a fresh timestamp, even if staking has been switched off since.
func (v *StakeVault) ClaimTokens(caller common.Address, tokenIds []uint64, reStake bool) (*big.Int, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()

	if len(tokenIds) == 0 {
		return nil, schema.ErrNoTokensSpecified
	}
	if err := v.checkOwnership(caller, tokenIds); err != nil {
		return nil, err
	}
	for _, id := range tokenIds {
		rec, ok := v.stakes[id]
		if !ok {
			return nil, schema.ErrTokenNotStaked
		}
		if rec.Staker != caller {
			return nil, schema.ErrIncorrectOwner
		}
	}

	now := v.m.clock()
	award := new(big.Int)
	for _, id := range tokenIds {
		rec := v.stakes[id]
		award.Add(award, v.baseAward)
		if v.handler != nil {
			if extra := v.handler.ComputeAward(now - rec.StakedAt); extra != nil {
				award.Add(award, extra)
			}
		}
	}
	if err := v.m.treasury.Send(caller, award); err != nil {
		return nil, err
	}

	for _, id := range tokenIds {
		if reStake {
			v.stakes[id] = schema.StakeRecord{Staker: caller, StakedAt: now}
		} else {
			delete(v.stakes, id)
		}
		v.m.emit(schema.StakeTopic, schema.EventTokenUnstaked, map[string]interface{}{
			"staker":  caller,
			"tokenId": id,
			"reStake": reStake,
		})
	}
	return award, nil
}

func (v *StakeVault) checkOwnership(caller common.Address, tokenIds []uint64) error {
	for _, id := range tokenIds {
		owner, err := v.m.ledger.OwnerOf(id)
		if err != nil {
			return err
		}
		if owner != caller {
			return schema.ErrIncorrectOwner
		}
	}
	return nil
}

// ----- read accessors -----

func (v *StakeVault) Stakeable() bool {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	return v.stakeable
}

func (v *StakeVault) BaseAward() *big.Int {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	return new(big.Int).Set(v.baseAward)
}

// Stake returns the lock record for a token, if any.
func (v *StakeVault) Stake(tokenId uint64) (schema.StakeRecord, bool) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	rec, ok := v.stakes[tokenId]
	return rec, ok
}

// StakesOf lists the token ids the staker currently has locked.
func (v *StakeVault) StakesOf(staker common.Address) []uint64 {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	ids := make([]uint64, 0)
	for id, rec := range v.stakes {
		if rec.Staker == staker {
			ids = append(ids, id)
		}
	}
	return ids
}

func (v *StakeVault) snapshot() (map[uint64]schema.StakeRecord, bool, *big.Int) {
	stakes := make(map[uint64]schema.StakeRecord, len(v.stakes))
	for id, rec := range v.stakes {
		stakes[id] = rec
	}
	return stakes, v.stakeable, new(big.Int).Set(v.baseAward)
}

func (v *StakeVault) restore(stakes map[uint64]schema.StakeRecord, stakeable bool, baseAward *big.Int) {
	v.stakes = make(map[uint64]schema.StakeRecord, len(stakes))
	for id, rec := range stakes {
		v.stakes[id] = rec
	}
	v.stakeable = stakeable
	if baseAward != nil {
		v.baseAward = new(big.Int).Set(baseAward)
	}
}
