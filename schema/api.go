package schema

import "math/big"

type RespErr struct {
	Err string `json:"error"`
}

func (r RespErr) Error() string {
	return r.Err
}

// ----- request bodies -----

type MintReq struct {
	Minter    string   `json:"minter"`
	Qty       uint32   `json:"qty"`
	Proof     []string `json:"proof"`
	Timestamp int64    `json:"timestamp"`
	Signature string   `json:"signature"`
	Payment   string   `json:"payment"` // wei, decimal string
}

type CrossmintReq struct {
	Caller    string   `json:"caller"`
	To        string   `json:"to"`
	Qty       uint32   `json:"qty"`
	Proof     []string `json:"proof"`
	Timestamp int64    `json:"timestamp"`
	Signature string   `json:"signature"`
	Payment   string   `json:"payment"`
}

type BidReq struct {
	Bidder string `json:"bidder"`
	Amount string `json:"amount"` // wei, decimal string
}

type StakeReq struct {
	Caller   string   `json:"caller"`
	TokenIds []uint64 `json:"tokenIds"`
}

type ClaimStakeReq struct {
	Caller   string   `json:"caller"`
	TokenIds []uint64 `json:"tokenIds"`
	ReStake  bool     `json:"reStake"`
}

type TransferReq struct {
	Caller  string `json:"caller"`
	From    string `json:"from"`
	To      string `json:"to"`
	TokenId uint64 `json:"tokenId"`
}

type WhitelistReq struct {
	Addresses []string `json:"addresses"`
}

type StageReq struct {
	Price          string `json:"price"` // wei, decimal string
	WalletLimit    uint32 `json:"walletLimit"`
	MerkleRoot     string `json:"merkleRoot"`
	MaxStageSupply uint32 `json:"maxStageSupply"`
	StartTime      int64  `json:"startTimeUnixSeconds"`
	EndTime        int64  `json:"endTimeUnixSeconds"`
}

type BatchSettleReq struct {
	Recipients []string `json:"recipients"`
}

// ----- responses -----

type RespMint struct {
	OrderId      string `json:"orderId"`
	StartTokenId uint64 `json:"startTokenId"`
	Qty          uint32 `json:"qty"`
	StageIndex   int    `json:"stageIndex"`
}

type RespProof struct {
	Root  string   `json:"root"`
	Leaf  string   `json:"leaf"`
	Proof []string `json:"proof"`
}

type RespSaleState struct {
	Mintable          bool   `json:"mintable"`
	TotalMinted       uint64 `json:"totalMinted"`
	MaxMintableSupply uint64 `json:"maxMintableSupply"`
	GlobalWalletLimit uint32 `json:"globalWalletLimit"`
	ActiveStage       int    `json:"activeStage"`
	StageCount        int    `json:"stageCount"`
	Cosigner          string `json:"cosigner"`
	CrossmintAddress  string `json:"crossmintAddress"`
	TreasuryBalance   string `json:"treasuryBalance"`
}

type RespAward struct {
	Award *big.Int `json:"award"`
}
