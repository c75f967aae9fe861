package launchpad

import (
	"math"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/miaswap/launchpad/schema"
)

// Auction is the bucket-auction ledger and settlement engine. It shares the
// minter's mutex, ledger, treasury and global supply cap, so mint and
// settlement operations serialize against each other.
type Auction struct {
	m *Minter

	minimumContribution *big.Int
	startTime           int64
	endTime             int64
	price               *big.Int // zero = unset
	claimable           bool
	firstTokenSent      bool
	bucketTotal         *big.Int
	accounts            map[common.Address]*schema.AuctionAccount
}

func NewAuction(m *Minter, minimumContribution *big.Int, startTime, endTime int64) *Auction {
	if minimumContribution == nil {
		minimumContribution = new(big.Int)
	}
	return &Auction{
		m:                   m,
		minimumContribution: new(big.Int).Set(minimumContribution),
		startTime:           startTime,
		endTime:             endTime,
		price:               new(big.Int),
		bucketTotal:         new(big.Int),
		accounts:            make(map[common.Address]*schema.AuctionAccount),
	}
}

func (a *Auction) account(bidder common.Address) *schema.AuctionAccount {
	acc, ok := a.accounts[bidder]
	if !ok {
		acc = &schema.AuctionAccount{Contribution: new(big.Int)}
		a.accounts[bidder] = acc
	}
	return acc
}

// ----- bidding -----

func (a *Auction) Bid(bidder common.Address, amount *big.Int) error {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()

	now := a.m.clock()
	if now < a.startTime || now >= a.endTime {
		return schema.ErrBucketAuctionNotActive
	}
	if amount == nil || amount.Cmp(a.minimumContribution) < 0 {
		return schema.ErrLowerThanMinBidAmount
	}

	acc := a.account(bidder)
	acc.Contribution.Add(acc.Contribution, amount)
	a.bucketTotal.Add(a.bucketTotal, amount)
	a.m.treasury.Credit(amount)

	a.m.emit(schema.AuctionTopic, schema.EventBid, map[string]interface{}{
		"bidder":      bidder,
		"bidAmount":   amount,
		"bidderTotal": acc.Contribution,
		"bucketTotal": a.bucketTotal,
	})
	return nil
}

// ----- owner configuration -----

func (a *Auction) SetStartAndEndTime(caller common.Address, startTime, endTime int64) error {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()
	if err := a.m.requireOwner(caller); err != nil {
		return err
	}
	if startTime >= endTime {
		return schema.ErrInvalidStartAndEndTimestamp
	}
	if a.price.Sign() != 0 {
		return schema.ErrPriceHasBeenSet
	}
	a.startTime = startTime
	a.endTime = endTime
	return nil
}

func (a *Auction) SetMinimumContribution(caller common.Address, amount *big.Int) error {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()
	if err := a.m.requireOwner(caller); err != nil {
		return err
	}
	if amount == nil {
		amount = new(big.Int)
	}
	a.minimumContribution = new(big.Int).Set(amount)
	a.m.emit(schema.AuctionTopic, schema.EventSetMinimumContribution, map[string]interface{}{
		"minimumContributionInWei": a.minimumContribution,
	})
	return nil
}

func (a *Auction) SetClaimable(caller common.Address, claimable bool) error {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()
	if err := a.m.requireOwner(caller); err != nil {
		return err
	}
	a.claimable = claimable
	a.m.emit(schema.AuctionTopic, schema.EventSetClaimable, map[string]interface{}{"claimable": claimable})
	return nil
}

// SetPrice fixes the uniform clearing price. Setting 0 resets it, which
// re-opens pricing under the same guards; once any token has been
// distributed the price is immutable.
func (a *Auction) SetPrice(caller common.Address, price *big.Int) error {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()
	if err := a.m.requireOwner(caller); err != nil {
		return err
	}
	if a.claimable {
		return schema.ErrCannotSetPriceIfClaimable
	}
	now := a.m.clock()
	if now >= a.startTime && now < a.endTime {
		return schema.ErrBucketAuctionActive
	}
	if a.firstTokenSent {
		return schema.ErrCannotSetPriceIfFirstTokenSent
	}
	if price == nil {
		price = new(big.Int)
	}
	a.price = new(big.Int).Set(price)
	a.m.emit(schema.AuctionTopic, schema.EventSetPrice, map[string]interface{}{"price": a.price})
	return nil
}

// ----- settlement -----

// amountPurchased floors the contribution at the clearing price; refundAmount
// is the exact remainder, so tokens*price + refund == contribution always.
func (a *Auction) amountPurchased(acc *schema.AuctionAccount) uint32 {
	if a.price.Sign() == 0 {
		return 0
	}
	q := new(big.Int).Div(acc.Contribution, a.price)
	// clamp rather than truncate; anything this large is rejected by the
	// supply ceiling before a single token moves
	if !q.IsUint64() || q.Uint64() > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(q.Uint64())
}

func (a *Auction) refundAmount(acc *schema.AuctionAccount) *big.Int {
	return new(big.Int).Mod(acc.Contribution, a.price)
}

// sendTokens issues qty tokens to `to` and marks the first distribution.
// Lock held; all validation done by callers via checkSend.
func (a *Auction) sendTokens(to common.Address, qty uint32) uint64 {
	start := a.m.ledger.Issue(to, qty)
	acc := a.account(to)
	acc.TokensClaimed += qty
	a.m.walletMinted[to] += qty
	a.firstTokenSent = true
	a.m.emit(schema.AuctionTopic, schema.EventTokensSent, map[string]interface{}{
		"recipient":    to,
		"qty":          qty,
		"startTokenId": start,
	})
	return start
}

func (a *Auction) checkSend(to common.Address, qty uint32, pendingSupply uint64) error {
	acc := a.account(to)
	if qty > a.amountPurchased(acc)-acc.TokensClaimed {
		return schema.ErrCannotSendMoreThanUserPurchased
	}
	if a.m.ledger.TotalSupply()+pendingSupply+uint64(qty) > a.m.maxMintableSupply {
		return schema.ErrNoSupplyLeft
	}
	return nil
}

func (a *Auction) SendTokens(caller, to common.Address, qty uint32) error {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()
	if err := a.m.requireOwner(caller); err != nil {
		return err
	}
	if a.price.Sign() == 0 {
		return schema.ErrPriceNotSet
	}
	if err := a.checkSend(to, qty, 0); err != nil {
		return err
	}
	a.sendTokens(to, qty)
	return nil
}

// SendAllTokens sends every token the account is still owed.
func (a *Auction) SendAllTokens(caller, to common.Address) error {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()
	if err := a.m.requireOwner(caller); err != nil {
		return err
	}
	if a.price.Sign() == 0 {
		return schema.ErrPriceNotSet
	}
	acc := a.account(to)
	qty := a.amountPurchased(acc) - acc.TokensClaimed
	if err := a.checkSend(to, qty, 0); err != nil {
		return err
	}
	a.sendTokens(to, qty)
	return nil
}

// sendRefund pays out the sub-price remainder exactly once. Lock held.
func (a *Auction) sendRefund(to common.Address) (*big.Int, error) {
	acc := a.account(to)
	if acc.Refunded {
		return nil, schema.ErrUserAlreadyClaimed
	}
	refund := a.refundAmount(acc)
	if err := a.m.treasury.Send(to, refund); err != nil {
		return nil, err
	}
	acc.Refunded = true
	a.m.emit(schema.AuctionTopic, schema.EventRefundSent, map[string]interface{}{
		"recipient": to,
		"amount":    refund,
	})
	return refund, nil
}

func (a *Auction) SendRefund(caller, to common.Address) (*big.Int, error) {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()
	if err := a.m.requireOwner(caller); err != nil {
		return nil, err
	}
	if a.price.Sign() == 0 {
		return nil, schema.ErrPriceNotSet
	}
	return a.sendRefund(to)
}

// settleAccount validates the combined send-and-refund for one account.
// pendingSupply accumulates token counts already promised earlier in a batch.
func (a *Auction) settleAccount(to common.Address, pendingSupply uint64) (uint32, error) {
	acc := a.account(to)
	if acc.TokensClaimed > 0 {
		return 0, schema.ErrAlreadySentTokensToUser
	}
	if acc.Refunded {
		return 0, schema.ErrUserAlreadyClaimed
	}
	qty := a.amountPurchased(acc)
	if a.m.ledger.TotalSupply()+pendingSupply+uint64(qty) > a.m.maxMintableSupply {
		return 0, schema.ErrNoSupplyLeft
	}
	return qty, nil
}

func (a *Auction) sendTokensAndRefund(to common.Address) error {
	qty, err := a.settleAccount(to, 0)
	if err != nil {
		return err
	}
	a.sendTokens(to, qty)
	if _, err := a.sendRefund(to); err != nil {
		return err
	}
	return nil
}

// SendTokensAndRefund settles one account in a single exactly-once step: the
// maximal token send plus the remainder refund.
func (a *Auction) SendTokensAndRefund(caller, to common.Address) error {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()
	if err := a.m.requireOwner(caller); err != nil {
		return err
	}
	if a.price.Sign() == 0 {
		return schema.ErrPriceNotSet
	}
	return a.sendTokensAndRefund(to)
}

// ClaimTokensAndRefund is the self-service settlement path, open once the
// owner has flipped the claimable flag.
func (a *Auction) ClaimTokensAndRefund(caller common.Address) error {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()
	if !a.claimable {
		return schema.ErrNotClaimable
	}
	if a.price.Sign() == 0 {
		return schema.ErrPriceNotSet
	}
	return a.sendTokensAndRefund(caller)
}

// ----- batches -----
//
// A batch is one atomic operation: every account is validated before any
// account is committed, and the first violation aborts the whole batch.

// uniqueRecipients drops repeated addresses so one account is settled at most
// once per batch. A repeated entry would pass validation clean and then fail
// midway through the commit pass.
func uniqueRecipients(tos []common.Address) []common.Address {
	seen := make(map[common.Address]struct{}, len(tos))
	out := make([]common.Address, 0, len(tos))
	for _, to := range tos {
		if _, ok := seen[to]; ok {
			continue
		}
		seen[to] = struct{}{}
		out = append(out, to)
	}
	return out
}

func (a *Auction) SendRefundBatch(caller common.Address, tos []common.Address) error {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()
	if err := a.m.requireOwner(caller); err != nil {
		return err
	}
	if a.price.Sign() == 0 {
		return schema.ErrPriceNotSet
	}
	tos = uniqueRecipients(tos)

	total := new(big.Int)
	for _, to := range tos {
		acc := a.account(to)
		if acc.Refunded {
			return schema.ErrUserAlreadyClaimed
		}
		total.Add(total, a.refundAmount(acc))
	}
	if a.m.treasury.Balance().Cmp(total) < 0 {
		return schema.ErrInsufficientTreasury
	}

	for _, to := range tos {
		if _, err := a.sendRefund(to); err != nil {
			return err
		}
	}
	return nil
}

func (a *Auction) SendTokensBatch(caller common.Address, tos []common.Address) error {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()
	if err := a.m.requireOwner(caller); err != nil {
		return err
	}
	if a.price.Sign() == 0 {
		return schema.ErrPriceNotSet
	}
	tos = uniqueRecipients(tos)

	pending := uint64(0)
	for _, to := range tos {
		acc := a.account(to)
		qty := a.amountPurchased(acc) - acc.TokensClaimed
		if err := a.checkSend(to, qty, pending); err != nil {
			return err
		}
		pending += uint64(qty)
	}

	for _, to := range tos {
		acc := a.account(to)
		a.sendTokens(to, a.amountPurchased(acc)-acc.TokensClaimed)
	}
	return nil
}

func (a *Auction) SendTokensAndRefundBatch(caller common.Address, tos []common.Address) error {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()
	if err := a.m.requireOwner(caller); err != nil {
		return err
	}
	if a.price.Sign() == 0 {
		return schema.ErrPriceNotSet
	}
	tos = uniqueRecipients(tos)

	pending := uint64(0)
	refunds := new(big.Int)
	for _, to := range tos {
		qty, err := a.settleAccount(to, pending)
		if err != nil {
			return err
		}
		pending += uint64(qty)
		refunds.Add(refunds, a.refundAmount(a.account(to)))
	}
	if a.m.treasury.Balance().Cmp(refunds) < 0 {
		return schema.ErrInsufficientTreasury
	}

	for _, to := range tos {
		if err := a.sendTokensAndRefund(to); err != nil {
			return err
		}
	}
	return nil
}

// ----- read accessors -----

func (a *Auction) State() schema.AuctionState {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()
	return schema.AuctionState{
		Price:               new(big.Int).Set(a.price),
		MinimumContribution: new(big.Int).Set(a.minimumContribution),
		StartTime:           a.startTime,
		EndTime:             a.endTime,
		Claimable:           a.claimable,
		FirstTokenSent:      a.firstTokenSent,
		TotalUsers:          len(a.accounts),
		BucketTotal:         new(big.Int).Set(a.bucketTotal),
	}
}

// UserData returns a copy of one bidder's auction account.
func (a *Auction) UserData(bidder common.Address) schema.AuctionAccount {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()
	acc, ok := a.accounts[bidder]
	if !ok {
		return schema.AuctionAccount{Contribution: new(big.Int)}
	}
	return schema.AuctionAccount{
		Contribution:  new(big.Int).Set(acc.Contribution),
		TokensClaimed: acc.TokensClaimed,
		Refunded:      acc.Refunded,
	}
}

func (a *Auction) Price() *big.Int {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()
	return new(big.Int).Set(a.price)
}

func (a *Auction) FirstTokenSent() bool {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()
	return a.firstTokenSent
}

func (a *Auction) snapshot() schema.AuctionSnapshot {
	accounts := make(map[common.Address]*schema.AuctionAccount, len(a.accounts))
	for addr, acc := range a.accounts {
		accounts[addr] = &schema.AuctionAccount{
			Contribution:  new(big.Int).Set(acc.Contribution),
			TokensClaimed: acc.TokensClaimed,
			Refunded:      acc.Refunded,
		}
	}
	return schema.AuctionSnapshot{
		MinimumContribution: new(big.Int).Set(a.minimumContribution),
		StartTime:           a.startTime,
		EndTime:             a.endTime,
		Price:               new(big.Int).Set(a.price),
		Claimable:           a.claimable,
		FirstTokenSent:      a.firstTokenSent,
		BucketTotal:         new(big.Int).Set(a.bucketTotal),
		Accounts:            accounts,
	}
}

func (a *Auction) restore(snap schema.AuctionSnapshot) {
	if snap.MinimumContribution != nil {
		a.minimumContribution = new(big.Int).Set(snap.MinimumContribution)
	}
	a.startTime = snap.StartTime
	a.endTime = snap.EndTime
	if snap.Price != nil {
		a.price = new(big.Int).Set(snap.Price)
	}
	a.claimable = snap.Claimable
	a.firstTokenSent = snap.FirstTokenSent
	if snap.BucketTotal != nil {
		a.bucketTotal = new(big.Int).Set(snap.BucketTotal)
	}
	a.accounts = make(map[common.Address]*schema.AuctionAccount, len(snap.Accounts))
	for addr, acc := range snap.Accounts {
		restored := &schema.AuctionAccount{Contribution: new(big.Int), TokensClaimed: acc.TokensClaimed, Refunded: acc.Refunded}
		if acc.Contribution != nil {
			restored.Contribution.Set(acc.Contribution)
		}
		a.accounts[addr] = restored
	}
}
