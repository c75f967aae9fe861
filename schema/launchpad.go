package schema

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

const (
	// DefaultMinStageGap is the minimum number of seconds between the end of
	// one sale stage and the start of the next.
	DefaultMinStageGap = 60

	// DefaultCosignExpiry is how long a cosigned mint authorization stays
	// valid, in seconds. Card-funded purchases need the slack.
	DefaultCosignExpiry = 300

	DefaultChainID = 1
)

// Stage is one time-boxed sale phase. A zero MerkleRoot means the stage is
// open to everyone; a zero WalletLimit or MaxStageSupply means no limit.
type Stage struct {
	Price          *big.Int    `json:"price"`
	WalletLimit    uint32      `json:"walletLimit"`
	MerkleRoot     common.Hash `json:"merkleRoot"`
	MaxStageSupply uint32      `json:"maxStageSupply"`
	StartTime      int64       `json:"startTimeUnixSeconds"`
	EndTime        int64       `json:"endTimeUnixSeconds"`
}

// StageInfo is the read-accessor view of a stage: the configured stage plus
// the counters a wallet cares about.
type StageInfo struct {
	Index        int    `json:"index"`
	Stage        Stage  `json:"stage"`
	WalletMinted uint32 `json:"walletMinted"`
	StageMinted  uint32 `json:"stageMinted"`
}

// AuctionAccount is the per-bidder bucket auction state. Contribution only
// grows (via bid) until the clearing price is set; Refunded flips false->true
// exactly once.
type AuctionAccount struct {
	Contribution  *big.Int `json:"contribution"`
	TokensClaimed uint32   `json:"tokensClaimed"`
	Refunded      bool     `json:"refunded"`
}

// AuctionState is the read-accessor view of the whole auction.
type AuctionState struct {
	Price               *big.Int `json:"price"`
	MinimumContribution *big.Int `json:"minimumContributionInWei"`
	StartTime           int64    `json:"startTimeUnixSeconds"`
	EndTime             int64    `json:"endTimeUnixSeconds"`
	Claimable           bool     `json:"claimable"`
	FirstTokenSent      bool     `json:"firstTokenSent"`
	TotalUsers          int      `json:"totalUsers"`
	BucketTotal         *big.Int `json:"bucketTotal"`
}

// StakeRecord marks a token as locked. While present the token cannot be
// transferred except through the claim/unstake path.
type StakeRecord struct {
	Staker   common.Address `json:"staker"`
	StakedAt int64          `json:"stakedAt"`
}

// EngineSnapshot is the bolt-persisted image of the whole engine, written by
// the snapshot job and restored on startup.
type EngineSnapshot struct {
	Owners          []common.Address          `json:"owners"` // index == tokenId
	TreasuryBalance *big.Int                  `json:"treasuryBalance"`
	Mintable        bool                      `json:"mintable"`
	MaxSupply       uint64                    `json:"maxMintableSupply"`
	GlobalLimit     uint32                    `json:"globalWalletLimit"`
	Cosigner        common.Address            `json:"cosigner"`
	Crossmint       common.Address            `json:"crossmintAddress"`
	CosignNonces    map[common.Address]uint64 `json:"cosignNonces"`
	WalletMinted    map[common.Address]uint32 `json:"walletMinted"`

	Stages            []Stage                     `json:"stages"`
	ActiveStage       int                         `json:"activeStage"`
	StageMinted       []uint32                    `json:"stageMinted"`
	StageWalletMinted []map[common.Address]uint32 `json:"stageWalletMinted"`

	Auction   AuctionSnapshot        `json:"auction"`
	Stakes    map[uint64]StakeRecord `json:"stakes"`
	Stakeable bool                   `json:"stakeable"`
	BaseAward *big.Int               `json:"baseAward"`
}

type AuctionSnapshot struct {
	MinimumContribution *big.Int                           `json:"minimumContributionInWei"`
	StartTime           int64                              `json:"startTimeUnixSeconds"`
	EndTime             int64                              `json:"endTimeUnixSeconds"`
	Price               *big.Int                           `json:"price"`
	Claimable           bool                               `json:"claimable"`
	FirstTokenSent      bool                               `json:"firstTokenSent"`
	BucketTotal         *big.Int                           `json:"bucketTotal"`
	Accounts            map[common.Address]*AuctionAccount `json:"accounts"`
}
