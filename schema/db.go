package schema

import (
	"time"

	"gorm.io/datatypes"
)

const (
	// mint order sources
	SourceMint      = "mint"
	SourceCrossmint = "crossmint"
	SourceOwnerMint = "ownerMint"
	SourceAuction   = "auction"

	// stake event actions
	StakeActionStaked   = "staked"
	StakeActionUnstaked = "unstaked"
)

// MintOrder journals one committed mint; wei amounts are decimal strings so
// mysql and sqlite both keep them exact.
type MintOrder struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	OrderId      string         `gorm:"unique" json:"orderId"` // uuid
	Minter       string         `gorm:"index:idx_mint_minter" json:"minter"`
	Recipient    string         `gorm:"index:idx_mint_recipient" json:"recipient"`
	Source       string         `json:"source"` // "mint","crossmint","ownerMint","auction"
	StageIndex   int            `json:"stageIndex"`
	Qty          uint32         `json:"qty"`
	UnitPrice    string         `json:"unitPrice"`
	Payment      string         `json:"payment"`
	StartTokenId uint64         `json:"startTokenId"`
	Proof        datatypes.JSON `json:"proof"`
}

type ContributionRecord struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	OrderId     string `gorm:"unique" json:"orderId"` // uuid
	Bidder      string `gorm:"index:idx_contrib_bidder" json:"bidder"`
	Amount      string `json:"amount"`
	BidderTotal string `json:"bidderTotal"`
	BucketTotal string `json:"bucketTotal"`
}

type RefundRecord struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	OrderId string `gorm:"unique" json:"orderId"` // uuid
	Bidder  string `gorm:"index:idx_refund_bidder" json:"bidder"`
	Amount  string `json:"amount"`
}

type StakeEventRecord struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	TokenId   uint64 `gorm:"index:idx_stake_token" json:"tokenId"`
	Staker    string `gorm:"index:idx_stake_staker" json:"staker"`
	Action    string `json:"action"` // "staked","unstaked"
	Timestamp int64  `json:"timestamp"`
	Award     string `json:"award"` // paid on unstake, "0" otherwise
}

// Whitelist keeps the committed address set for a merkle root so the service
// can serve inclusion proofs.
type Whitelist struct {
	Root      string         `gorm:"primarykey" json:"root"`
	Addresses datatypes.JSON `json:"addresses"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type TokenPrice struct {
	Symbol    string    `gorm:"primarykey" json:"symbol"`
	Price     float64   `json:"price"` // unit is USD
	ManualSet bool      `json:"manualSet"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SaleStatistic is a periodic rollup row; volumes are ETH decimal strings.
type SaleStatistic struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	Date          time.Time `json:"date"`
	TotalMinted   uint64    `json:"totalMinted"`
	MintVolume    string    `json:"mintVolume"`
	AuctionVolume string    `json:"auctionVolume"`
	UsdVolume     string    `json:"usdVolume"`
}
