package launchpad

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/miaswap/launchpad/schema"
	"github.com/stretchr/testify/assert"
)

func testStage(start, end int64) schema.Stage {
	return schema.Stage{
		Price:     big.NewInt(100),
		StartTime: start,
		EndTime:   end,
	}
}

func TestStageReplaceValidation(t *testing.T) {
	sl := NewStageLedger(60)

	// gap 59s between stage 0 end and stage 1 start
	err := sl.Replace([]schema.Stage{testStage(0, 100), testStage(159, 300)})
	assert.Equal(t, schema.ErrInsufficientStageTimeGap, err)

	// inverted window
	err = sl.Replace([]schema.Stage{testStage(100, 100)})
	assert.Equal(t, schema.ErrInvalidStartAndEndTimestamp, err)

	err = sl.Replace([]schema.Stage{testStage(0, 100), testStage(160, 300)})
	assert.NoError(t, err)
	assert.Equal(t, 2, sl.Count())
}

func TestStageReplaceResetsCounters(t *testing.T) {
	sl := NewStageLedger(60)
	wallet := common.HexToAddress("0xa11ce")

	assert.NoError(t, sl.Replace([]schema.Stage{testStage(0, 100)}))
	sl.recordMint(0, wallet, 3)
	assert.Equal(t, uint32(3), sl.MintedInStage(0))
	assert.Equal(t, uint32(3), sl.WalletMintedInStage(0, wallet))

	assert.NoError(t, sl.Replace([]schema.Stage{testStage(0, 100)}))
	assert.Equal(t, uint32(0), sl.MintedInStage(0))
	assert.Equal(t, uint32(0), sl.WalletMintedInStage(0, wallet))
}

func TestStageUpdateNeighborGaps(t *testing.T) {
	sl := NewStageLedger(60)
	assert.NoError(t, sl.Replace([]schema.Stage{
		testStage(0, 100), testStage(160, 300), testStage(360, 500),
	}))

	// too close to the previous stage
	err := sl.Update(1, testStage(159, 300))
	assert.Equal(t, schema.ErrInsufficientStageTimeGap, err)

	// too close to the next stage
	err = sl.Update(1, testStage(160, 301))
	assert.Equal(t, schema.ErrInsufficientStageTimeGap, err)

	// counters survive an in-place update
	wallet := common.HexToAddress("0xa11ce")
	sl.recordMint(1, wallet, 2)
	assert.NoError(t, sl.Update(1, testStage(170, 290)))
	assert.Equal(t, uint32(2), sl.MintedInStage(1))

	err = sl.Update(5, testStage(0, 1))
	assert.Equal(t, schema.ErrInvalidStage, err)
}

func TestStageActivePointer(t *testing.T) {
	sl := NewStageLedger(60)

	_, _, err := sl.ActiveStage()
	assert.Equal(t, schema.ErrInvalidStage, err)

	assert.NoError(t, sl.Replace([]schema.Stage{testStage(0, 100), testStage(160, 300)}))
	assert.Equal(t, schema.ErrInvalidStage, sl.SetActive(2))
	assert.NoError(t, sl.SetActive(1))

	idx, stage, err := sl.ActiveStage()
	assert.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Equal(t, int64(160), stage.StartTime)
}
