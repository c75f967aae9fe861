package launchpad

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/miaswap/launchpad/schema"
)

// TransferHook runs before a transfer commits; returning an error vetoes the
// transfer. Mints (from == zero address) do not run hooks.
type TransferHook func(from, to common.Address, tokenId uint64) error

// TokenLedger is the in-process token ownership record: gapless
// sequential token ids starting at 0, single owner per token, and a
// pre-transfer extension point. Not safe for concurrent use on its own; every
// caller goes through the engine mutex.
type TokenLedger struct {
	owners   []common.Address // index == tokenId
	balances map[common.Address]uint32
	hooks    []TransferHook
}

func NewTokenLedger() *TokenLedger {
	return &TokenLedger{
		owners:   make([]common.Address, 0),
		balances: make(map[common.Address]uint32),
	}
}

// RegisterTransferHook adds a pre-transfer veto point. Hooks run in
// registration order; the first error aborts the transfer.
func (l *TokenLedger) RegisterTransferHook(h TransferHook) {
	l.hooks = append(l.hooks, h)
}

// Issue mints qty sequential tokens to `to` and returns the first token id.
func (l *TokenLedger) Issue(to common.Address, qty uint32) uint64 {
	start := uint64(len(l.owners))
	for i := uint32(0); i < qty; i++ {
		l.owners = append(l.owners, to)
	}
	l.balances[to] += qty
	return start
}

func (l *TokenLedger) TotalSupply() uint64 {
	return uint64(len(l.owners))
}

func (l *TokenLedger) Exists(tokenId uint64) bool {
	return tokenId < uint64(len(l.owners))
}

func (l *TokenLedger) OwnerOf(tokenId uint64) (common.Address, error) {
	if !l.Exists(tokenId) {
		return common.Address{}, schema.ErrNonexistentToken
	}
	return l.owners[tokenId], nil
}

func (l *TokenLedger) BalanceOf(owner common.Address) uint32 {
	return l.balances[owner]
}

// TransferFrom moves tokenId from `from` to `to`. The caller must be the
// current owner; approvals are out of scope here. All registered hooks must
// pass before any state changes.
func (l *TokenLedger) TransferFrom(caller, from, to common.Address, tokenId uint64) error {
	owner, err := l.OwnerOf(tokenId)
	if err != nil {
		return err
	}
	if owner != from {
		return schema.ErrTransferFromWrongOwner
	}
	if caller != from {
		return schema.ErrTransferCallerNotOwner
	}
	for _, h := range l.hooks {
		if err := h(from, to, tokenId); err != nil {
			return err
		}
	}
	l.owners[tokenId] = to
	l.balances[from]--
	l.balances[to]++
	return nil
}

func (l *TokenLedger) snapshot() []common.Address {
	owners := make([]common.Address, len(l.owners))
	copy(owners, l.owners)
	return owners
}

func (l *TokenLedger) restore(owners []common.Address) {
	l.owners = make([]common.Address, len(owners))
	copy(l.owners, owners)
	l.balances = make(map[common.Address]uint32)
	for _, owner := range owners {
		l.balances[owner]++
	}
}

// Treasury custodies sale proceeds and pays out refunds, staking awards and
// owner withdrawals. Balances are wei.
type Treasury struct {
	balance *big.Int
	paid    map[common.Address]*big.Int
}

func NewTreasury() *Treasury {
	return &Treasury{
		balance: new(big.Int),
		paid:    make(map[common.Address]*big.Int),
	}
}

func (t *Treasury) Credit(amount *big.Int) {
	t.balance.Add(t.balance, amount)
}

func (t *Treasury) Send(to common.Address, amount *big.Int) error {
	if t.balance.Cmp(amount) < 0 {
		return schema.ErrInsufficientTreasury
	}
	t.balance.Sub(t.balance, amount)
	total, ok := t.paid[to]
	if !ok {
		total = new(big.Int)
		t.paid[to] = total
	}
	total.Add(total, amount)
	return nil
}

func (t *Treasury) Balance() *big.Int {
	return new(big.Int).Set(t.balance)
}

// PaidTo reports the cumulative amount sent to an address.
func (t *Treasury) PaidTo(addr common.Address) *big.Int {
	if total, ok := t.paid[addr]; ok {
		return new(big.Int).Set(total)
	}
	return new(big.Int)
}

func (t *Treasury) restore(balance *big.Int) {
	if balance == nil {
		balance = new(big.Int)
	}
	t.balance = new(big.Int).Set(balance)
	t.paid = make(map[common.Address]*big.Int)
}
