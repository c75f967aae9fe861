package schema

import (
	"errors"
)

// Every public operation fails fast with one of these; a failed operation
// mutates nothing.
var (
	// authorization
	ErrNotOwner               = errors.New("caller_not_owner")
	ErrCrossmintOnly          = errors.New("crossmint_only")
	ErrCrossmintAddressNotSet = errors.New("crossmint_address_not_set")

	// eligibility
	ErrInvalidProof           = errors.New("invalid_proof")
	ErrInvalidCosignSignature = errors.New("invalid_cosign_signature")
	ErrTimestampExpired       = errors.New("timestamp_expired")

	// schedule
	ErrInvalidStage                = errors.New("invalid_stage")
	ErrInvalidStartAndEndTimestamp = errors.New("invalid_start_and_end_timestamp")
	ErrInsufficientStageTimeGap    = errors.New("insufficient_stage_time_gap")

	// supply
	ErrNoSupplyLeft                    = errors.New("no_supply_left")
	ErrStageSupplyExceeded             = errors.New("stage_supply_exceeded")
	ErrWalletGlobalLimitExceeded       = errors.New("wallet_global_limit_exceeded")
	ErrCannotIncreaseMaxMintableSupply = errors.New("cannot_increase_max_mintable_supply")
	ErrGlobalWalletLimitOverflow       = errors.New("global_wallet_limit_overflow")

	// payment
	ErrNotEnoughValue       = errors.New("not_enough_value")
	ErrInsufficientTreasury = errors.New("insufficient_treasury_balance")

	// mint state
	ErrNotMintable = errors.New("not_mintable")

	// auction state
	ErrBucketAuctionNotActive          = errors.New("bucket_auction_not_active")
	ErrBucketAuctionActive             = errors.New("bucket_auction_active")
	ErrLowerThanMinBidAmount           = errors.New("lower_than_min_bid_amount")
	ErrPriceHasBeenSet                 = errors.New("price_has_been_set")
	ErrPriceNotSet                     = errors.New("price_not_set")
	ErrCannotSetPriceIfClaimable       = errors.New("cannot_set_price_if_claimable")
	ErrCannotSetPriceIfFirstTokenSent  = errors.New("cannot_set_price_if_first_token_sent")
	ErrCannotSendMoreThanUserPurchased = errors.New("cannot_send_more_than_user_purchased")
	ErrUserAlreadyClaimed              = errors.New("user_already_claimed")
	ErrAlreadySentTokensToUser         = errors.New("already_sent_tokens_to_user")
	ErrNotClaimable                    = errors.New("not_claimable")

	// staking
	ErrNoTokensSpecified  = errors.New("no_tokens_specified")
	ErrStakingInactive    = errors.New("staking_inactive")
	ErrTokenAlreadyStaked = errors.New("token_already_staked")
	ErrTokenNotStaked     = errors.New("token_not_staked")

	// ownership / transfer
	ErrIncorrectOwner         = errors.New("incorrect_owner")
	ErrNonexistentToken       = errors.New("owner_query_for_nonexistent_token")
	ErrTransferWhileStaked    = errors.New("transfer_while_staked")
	ErrTransferFromWrongOwner = errors.New("transfer_from_incorrect_owner")
	ErrTransferCallerNotOwner = errors.New("transfer_caller_is_not_owner")

	// storage
	ErrNotExist = errors.New("not_exist")
)
