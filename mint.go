package launchpad

import (
	"encoding/json"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/miaswap/launchpad/schema"
)

// Clock supplies the operation timestamp; read once at the start of every
// public operation.
type Clock func() int64

// EventSink receives the engine's observable side effects. Data must be
// json-marshalable.
type EventSink func(topic, event string, data interface{})

type MintResult struct {
	StartTokenId uint64 `json:"startTokenId"`
	Qty          uint32 `json:"qty"`
	StageIndex   int    `json:"stageIndex"`
}

type MinterConfig struct {
	Owner             common.Address
	Contract          common.Address
	ChainId           int64
	MaxMintableSupply uint64
	GlobalWalletLimit uint32
	MinStageGap       int64
	CosignExpiry      int64
	Clock             Clock
}

// Minter is the staged-mint state machine. One mutex serializes every public
// operation of the engine (auction and stake lock included); each operation
// either fully commits or returns a named error with no side effects.
type Minter struct {
	mu    sync.Mutex
	clock Clock

	owner    common.Address
	ledger   *TokenLedger
	treasury *Treasury
	stages   *StageLedger
	cosign   *Cosigner

	mintable          bool
	maxMintableSupply uint64
	globalWalletLimit uint32
	crossmintAddress  common.Address
	walletMinted      map[common.Address]uint32

	emit EventSink
}

func NewMinter(cfg MinterConfig, ledger *TokenLedger, treasury *Treasury) *Minter {
	clock := cfg.Clock
	if clock == nil {
		clock = func() int64 { return time.Now().Unix() }
	}
	chainId := cfg.ChainId
	if chainId == 0 {
		chainId = schema.DefaultChainID
	}
	m := &Minter{
		clock:             clock,
		owner:             cfg.Owner,
		ledger:            ledger,
		treasury:          treasury,
		stages:            NewStageLedger(cfg.MinStageGap),
		cosign:            NewCosigner(cfg.Contract, chainId, cfg.CosignExpiry),
		maxMintableSupply: cfg.MaxMintableSupply,
		globalWalletLimit: cfg.GlobalWalletLimit,
		walletMinted:      make(map[common.Address]uint32),
		emit:              func(string, string, interface{}) {},
	}
	m.stages.onUpdate(func(index int, s schema.Stage) {
		m.emit(schema.MintTopic, schema.EventUpdateStage, map[string]interface{}{
			"stage":                index,
			"price":                s.Price,
			"walletLimit":          s.WalletLimit,
			"merkleRoot":           s.MerkleRoot,
			"maxStageSupply":       s.MaxStageSupply,
			"startTimeUnixSeconds": s.StartTime,
			"endTimeUnixSeconds":   s.EndTime,
		})
	})
	return m
}

// SetEventSink must be called before the engine starts serving.
func (m *Minter) SetEventSink(emit EventSink) {
	if emit != nil {
		m.emit = emit
	}
}

func (m *Minter) requireOwner(caller common.Address) error {
	if caller != m.owner {
		return schema.ErrNotOwner
	}
	return nil
}

func (m *Minter) Owner() common.Address { return m.owner }

// ----- owner configuration -----

func (m *Minter) SetMintable(caller common.Address, mintable bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireOwner(caller); err != nil {
		return err
	}
	m.mintable = mintable
	m.emit(schema.MintTopic, schema.EventSetMintable, map[string]interface{}{"mintable": mintable})
	return nil
}

func (m *Minter) SetCosigner(caller, cosigner common.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireOwner(caller); err != nil {
		return err
	}
	m.cosign.setAddress(cosigner)
	m.emit(schema.MintTopic, schema.EventSetCosigner, map[string]interface{}{"cosigner": cosigner})
	return nil
}

func (m *Minter) SetCrossmintAddress(caller, crossmint common.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireOwner(caller); err != nil {
		return err
	}
	m.crossmintAddress = crossmint
	m.emit(schema.MintTopic, schema.EventSetCrossmintAddress, map[string]interface{}{"crossmintAddress": crossmint})
	return nil
}

// SetMaxMintableSupply only ever lowers the cap; raising it after tokens
// exist would inflate supply behind holders' backs.
func (m *Minter) SetMaxMintableSupply(caller common.Address, maxSupply uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireOwner(caller); err != nil {
		return err
	}
	if maxSupply > m.maxMintableSupply {
		return schema.ErrCannotIncreaseMaxMintableSupply
	}
	m.maxMintableSupply = maxSupply
	m.emit(schema.MintTopic, schema.EventSetMaxMintableSupply, map[string]interface{}{"maxMintableSupply": maxSupply})
	return nil
}

func (m *Minter) SetGlobalWalletLimit(caller common.Address, limit uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireOwner(caller); err != nil {
		return err
	}
	if uint64(limit) > m.maxMintableSupply {
		return schema.ErrGlobalWalletLimitOverflow
	}
	m.globalWalletLimit = limit
	m.emit(schema.MintTopic, schema.EventSetGlobalWalletLimit, map[string]interface{}{"globalWalletLimit": limit})
	return nil
}

func (m *Minter) SetStages(caller common.Address, stages []schema.Stage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireOwner(caller); err != nil {
		return err
	}
	return m.stages.Replace(stages)
}

func (m *Minter) UpdateStage(caller common.Address, index int, s schema.Stage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireOwner(caller); err != nil {
		return err
	}
	return m.stages.Update(index, s)
}

func (m *Minter) SetActiveStage(caller common.Address, index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireOwner(caller); err != nil {
		return err
	}
	if err := m.stages.SetActive(index); err != nil {
		return err
	}
	m.emit(schema.MintTopic, schema.EventSetActiveStage, map[string]interface{}{"activeStage": index})
	return nil
}

// ----- minting -----

// Mint runs the full pipeline for the caller: mintable flag, active stage and
// its time window, merkle eligibility, cosigned authorization, the three
// supply ceilings, then payment. Counter updates are the last thing before
// token issuance so competing operations never see a half-applied check.
func (m *Minter) Mint(minter common.Address, qty uint32, proof []common.Hash, timestamp int64, sig []byte, payment *big.Int) (MintResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mint(minter, minter, qty, proof, timestamp, sig, payment, schema.SourceMint)
}

// Crossmint is the same pipeline driven by the configured crossmint account;
// eligibility and per-wallet accounting key off the recipient, not the
// caller.
func (m *Minter) Crossmint(caller common.Address, qty uint32, to common.Address, proof []common.Hash, timestamp int64, sig []byte, payment *big.Int) (MintResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.crossmintAddress == (common.Address{}) {
		return MintResult{}, schema.ErrCrossmintAddressNotSet
	}
	if caller != m.crossmintAddress {
		return MintResult{}, schema.ErrCrossmintOnly
	}
	return m.mint(caller, to, qty, proof, timestamp, sig, payment, schema.SourceCrossmint)
}

func (m *Minter) mint(requestor, recipient common.Address, qty uint32, proof []common.Hash, timestamp int64, sig []byte, payment *big.Int, source string) (MintResult, error) {
	now := m.clock()

	if !m.mintable {
		return MintResult{}, schema.ErrNotMintable
	}

	idx, stage, err := m.stages.ActiveStage()
	if err != nil {
		return MintResult{}, err
	}
	if now < stage.StartTime || now >= stage.EndTime {
		return MintResult{}, schema.ErrInvalidStage
	}

	if stage.MerkleRoot != (common.Hash{}) {
		if !VerifyProof(stage.MerkleRoot, AddressLeaf(recipient), proof) {
			return MintResult{}, schema.ErrInvalidProof
		}
	}

	cosigned := m.cosign.Configured()
	if cosigned {
		if err := m.cosign.authorize(recipient, qty, timestamp, sig, now); err != nil {
			return MintResult{}, err
		}
	}

	if err := m.checkSupply(idx, stage, recipient, qty); err != nil {
		return MintResult{}, err
	}

	required := new(big.Int).Mul(stage.Price, new(big.Int).SetUint64(uint64(qty)))
	if payment == nil || payment.Cmp(required) < 0 {
		return MintResult{}, schema.ErrNotEnoughValue
	}

	// commit
	m.walletMinted[recipient] += qty
	m.stages.recordMint(idx, recipient, qty)
	if cosigned {
		m.cosign.bumpNonce(recipient)
	}
	start := m.ledger.Issue(recipient, qty)
	m.treasury.Credit(payment)

	res := MintResult{StartTokenId: start, Qty: qty, StageIndex: idx}
	m.emit(schema.MintTopic, schema.EventMint, map[string]interface{}{
		"minter":       requestor,
		"recipient":    recipient,
		"qty":          qty,
		"stage":        idx,
		"startTokenId": start,
		"payment":      payment,
		"source":       source,
	})
	return res, nil
}

func (m *Minter) checkSupply(stageIdx int, stage schema.Stage, wallet common.Address, qty uint32) error {
	if m.ledger.TotalSupply()+uint64(qty) > m.maxMintableSupply {
		return schema.ErrNoSupplyLeft
	}
	if stage.MaxStageSupply > 0 && m.stages.MintedInStage(stageIdx)+qty > stage.MaxStageSupply {
		return schema.ErrStageSupplyExceeded
	}
	if m.globalWalletLimit > 0 && m.walletMinted[wallet]+qty > m.globalWalletLimit {
		return schema.ErrWalletGlobalLimitExceeded
	}
	if stage.WalletLimit > 0 && m.stages.WalletMintedInStage(stageIdx, wallet)+qty > stage.WalletLimit {
		return schema.ErrWalletGlobalLimitExceeded
	}
	return nil
}

// OwnerMint skips eligibility, authorization and payment but still honors the
// global supply cap.
func (m *Minter) OwnerMint(caller common.Address, qty uint32, to common.Address) (MintResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireOwner(caller); err != nil {
		return MintResult{}, err
	}
	if m.ledger.TotalSupply()+uint64(qty) > m.maxMintableSupply {
		return MintResult{}, schema.ErrNoSupplyLeft
	}

	m.walletMinted[to] += qty
	start := m.ledger.Issue(to, qty)

	res := MintResult{StartTokenId: start, Qty: qty, StageIndex: -1}
	m.emit(schema.MintTopic, schema.EventMint, map[string]interface{}{
		"minter":       caller,
		"recipient":    to,
		"qty":          qty,
		"stage":        -1,
		"startTokenId": start,
		"payment":      new(big.Int),
		"source":       schema.SourceOwnerMint,
	})
	return res, nil
}

// Withdraw sends the whole treasury balance to the owner.
func (m *Minter) Withdraw(caller common.Address) (*big.Int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireOwner(caller); err != nil {
		return nil, err
	}
	value := m.treasury.Balance()
	if err := m.treasury.Send(m.owner, value); err != nil {
		return nil, err
	}
	m.emit(schema.MintTopic, schema.EventWithdraw, map[string]interface{}{"value": value})
	return value, nil
}

// ----- read accessors -----

func (m *Minter) Mintable() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mintable
}

func (m *Minter) MaxMintableSupply() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxMintableSupply
}

func (m *Minter) GlobalWalletLimit() uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.globalWalletLimit
}

func (m *Minter) CosignerAddress() common.Address {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cosign.Address()
}

func (m *Minter) CrossmintAddress() common.Address {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.crossmintAddress
}

func (m *Minter) CosignNonce(buyer common.Address) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cosign.Nonce(buyer)
}

func (m *Minter) TotalMinted() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ledger.TotalSupply()
}

func (m *Minter) WalletMinted(wallet common.Address) uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.walletMinted[wallet]
}

func (m *Minter) StageCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stages.Count()
}

func (m *Minter) ActiveStageIndex() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx, _, err := m.stages.ActiveStage()
	return idx, err
}

// StageInfo returns the stage plus the wallet's per-stage minted count and
// the stage total.
func (m *Minter) StageInfo(index int, wallet common.Address) (schema.StageInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stage, err := m.stages.Get(index)
	if err != nil {
		return schema.StageInfo{}, err
	}
	return schema.StageInfo{
		Index:        index,
		Stage:        stage,
		WalletMinted: m.stages.WalletMintedInStage(index, wallet),
		StageMinted:  m.stages.MintedInStage(index),
	}, nil
}

// marshalEvent keeps sink payloads uniform for journaling and kafka.
func marshalEvent(data interface{}) json.RawMessage {
	by, err := json.Marshal(data)
	if err != nil {
		log.Error("marshal event", "err", err)
		return json.RawMessage("{}")
	}
	return by
}
