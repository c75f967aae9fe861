package launchpad

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/miaswap/launchpad/schema"
)

// StageLedger owns the ordered sale schedule, the active-stage pointer and
// the per-stage mint counters. Stage validity for minting is still
// independently time-gated by the mint pipeline; the pointer is operator
// controlled.
type StageLedger struct {
	minStageGap int64 // seconds

	stages       []schema.Stage
	active       int
	stageMinted  []uint32
	walletMinted []map[common.Address]uint32 // per stage

	notify func(index int, s schema.Stage) // "stage updated" observable
}

func NewStageLedger(minStageGap int64) *StageLedger {
	if minStageGap <= 0 {
		minStageGap = schema.DefaultMinStageGap
	}
	return &StageLedger{minStageGap: minStageGap}
}

func (sl *StageLedger) onUpdate(fn func(index int, s schema.Stage)) {
	sl.notify = fn
}

func validateWindow(s schema.Stage) error {
	if s.StartTime >= s.EndTime {
		return schema.ErrInvalidStartAndEndTimestamp
	}
	return nil
}

// Replace swaps in the whole schedule atomically. Counters reset: a new
// schedule is a new sale.
func (sl *StageLedger) Replace(stages []schema.Stage) error {
	for i, s := range stages {
		if i > 0 && s.StartTime-stages[i-1].EndTime < sl.minStageGap {
			return schema.ErrInsufficientStageTimeGap
		}
		if err := validateWindow(s); err != nil {
			return err
		}
	}

	sl.stages = make([]schema.Stage, len(stages))
	copy(sl.stages, stages)
	sl.stageMinted = make([]uint32, len(stages))
	sl.walletMinted = make([]map[common.Address]uint32, len(stages))
	for i := range sl.walletMinted {
		sl.walletMinted[i] = make(map[common.Address]uint32)
	}
	if sl.active >= len(sl.stages) {
		sl.active = 0
	}

	if sl.notify != nil {
		for i, s := range sl.stages {
			sl.notify(i, s)
		}
	}
	return nil
}

// Update rewrites one stage, re-validating only against its immediate
// neighbors. Counters for the stage are kept: the sale is still the same,
// only its parameters moved.
func (sl *StageLedger) Update(index int, s schema.Stage) error {
	if index < 0 || index >= len(sl.stages) {
		return schema.ErrInvalidStage
	}
	if index > 0 && s.StartTime-sl.stages[index-1].EndTime < sl.minStageGap {
		return schema.ErrInsufficientStageTimeGap
	}
	if err := validateWindow(s); err != nil {
		return err
	}
	if index+1 < len(sl.stages) && sl.stages[index+1].StartTime-s.EndTime < sl.minStageGap {
		return schema.ErrInsufficientStageTimeGap
	}

	sl.stages[index] = s
	if sl.notify != nil {
		sl.notify(index, s)
	}
	return nil
}

func (sl *StageLedger) SetActive(index int) error {
	if index < 0 || index >= len(sl.stages) {
		return schema.ErrInvalidStage
	}
	sl.active = index
	return nil
}

// ActiveStage resolves the operator-set pointer against the current schedule.
func (sl *StageLedger) ActiveStage() (int, schema.Stage, error) {
	if sl.active < 0 || sl.active >= len(sl.stages) {
		return 0, schema.Stage{}, schema.ErrInvalidStage
	}
	return sl.active, sl.stages[sl.active], nil
}

func (sl *StageLedger) Count() int {
	return len(sl.stages)
}

func (sl *StageLedger) Get(index int) (schema.Stage, error) {
	if index < 0 || index >= len(sl.stages) {
		return schema.Stage{}, schema.ErrInvalidStage
	}
	return sl.stages[index], nil
}

func (sl *StageLedger) MintedInStage(index int) uint32 {
	if index < 0 || index >= len(sl.stageMinted) {
		return 0
	}
	return sl.stageMinted[index]
}

func (sl *StageLedger) WalletMintedInStage(index int, wallet common.Address) uint32 {
	if index < 0 || index >= len(sl.walletMinted) {
		return 0
	}
	return sl.walletMinted[index][wallet]
}

func (sl *StageLedger) recordMint(index int, wallet common.Address, qty uint32) {
	sl.stageMinted[index] += qty
	sl.walletMinted[index][wallet] += qty
}

func (sl *StageLedger) snapshot() ([]schema.Stage, int, []uint32, []map[common.Address]uint32) {
	stages := make([]schema.Stage, len(sl.stages))
	copy(stages, sl.stages)
	minted := make([]uint32, len(sl.stageMinted))
	copy(minted, sl.stageMinted)
	wallets := make([]map[common.Address]uint32, len(sl.walletMinted))
	for i, m := range sl.walletMinted {
		wallets[i] = make(map[common.Address]uint32, len(m))
		for k, v := range m {
			wallets[i][k] = v
		}
	}
	return stages, sl.active, minted, wallets
}

func (sl *StageLedger) restore(stages []schema.Stage, active int, minted []uint32, wallets []map[common.Address]uint32) {
	sl.stages = make([]schema.Stage, len(stages))
	copy(sl.stages, stages)
	sl.active = active
	sl.stageMinted = make([]uint32, len(stages))
	copy(sl.stageMinted, minted)
	sl.walletMinted = make([]map[common.Address]uint32, len(stages))
	for i := range sl.walletMinted {
		sl.walletMinted[i] = make(map[common.Address]uint32)
		if i < len(wallets) {
			for k, v := range wallets[i] {
				sl.walletMinted[i][k] = v
			}
		}
	}
}
