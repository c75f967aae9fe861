package schema

import "encoding/json"

const (
	MintTopic    = "launchpad_mint"
	AuctionTopic = "launchpad_auction"
	StakeTopic   = "launchpad_stake"
)

// event names, mirrored in the kafka payloads and the service log
const (
	EventSetMintable             = "SetMintable"
	EventSetCosigner             = "SetCosigner"
	EventSetCrossmintAddress     = "SetCrossmintAddress"
	EventSetMaxMintableSupply    = "SetMaxMintableSupply"
	EventSetGlobalWalletLimit    = "SetGlobalWalletLimit"
	EventUpdateStage             = "UpdateStage"
	EventSetActiveStage          = "SetActiveStage"
	EventMint                    = "Mint"
	EventWithdraw                = "Withdraw"
	EventBid                     = "Bid"
	EventSetClaimable            = "SetClaimable"
	EventSetMinimumContribution  = "SetMinimumContribution"
	EventSetPrice                = "SetPrice"
	EventTokensSent              = "TokensSent"
	EventRefundSent              = "RefundSent"
	EventTokenStaked             = "TokenStaked"
	EventTokenUnstaked           = "TokenUnstaked"
)

// EventRecord is what the engine sink hands to the drain job; Data is the
// already-marshaled event payload.
type EventRecord struct {
	Topic string          `json:"topic"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
	Time  int64           `json:"time"`
}
