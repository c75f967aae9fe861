package launchpad

import (
	"encoding/json"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"
	"github.com/miaswap/launchpad/config"
	"github.com/miaswap/launchpad/schema"
	"github.com/panjf2000/ants/v2"
	"gorm.io/datatypes"
)

// Launchpad bundles the sale engine with its service surface: the HTTP api,
// the persistence layers, the kafka event stream and the background jobs.
type Launchpad struct {
	store  *Store
	wdb    *Wdb
	engine *gin.Engine

	minter  *Minter
	auction *Auction
	vault   *StakeVault
	ledger  *TokenLedger

	whitelists map[common.Hash]*MerkleTree

	scheduler *gocron.Scheduler
	cache     *Cache
	config    *config.Config

	kwriters  map[string]*KWriter
	events    chan *schema.EventRecord
	eventPool *ants.Pool
}

func New(
	boltDirPath, mySqlDsn string, sqliteDir string, useSqlite bool,
	owner, contract common.Address, chainId int64,
	maxMintableSupply uint64, globalWalletLimit uint32,
	kafkaUri string, useKafka bool,
) *Launchpad {
	KVDb, err := NewStore(boltDirPath)
	if err != nil {
		panic(err)
	}
	wdb := &Wdb{}
	if useSqlite {
		wdb = NewSqliteDb(sqliteDir)
	} else {
		wdb = NewWdb(mySqlDsn)
	}
	if err = wdb.Migrate(); err != nil {
		panic(err)
	}

	ledger := NewTokenLedger()
	treasury := NewTreasury()
	minter := NewMinter(MinterConfig{
		Owner:             owner,
		Contract:          contract,
		ChainId:           chainId,
		MaxMintableSupply: maxMintableSupply,
		GlobalWalletLimit: globalWalletLimit,
		MinStageGap:       schema.DefaultMinStageGap,
		CosignExpiry:      schema.DefaultCosignExpiry,
	}, ledger, treasury)
	auction := NewAuction(minter, new(big.Int), 0, 0)
	vault := NewStakeVault(minter)

	kwriters := make(map[string]*KWriter)
	if useKafka {
		kwriters, err = NewKWriters(kafkaUri)
		if err != nil {
			panic(err)
		}
	}
	eventPool, err := ants.NewPool(10)
	if err != nil {
		panic(err)
	}

	s := &Launchpad{
		store:      KVDb,
		wdb:        wdb,
		engine:     gin.Default(),
		minter:     minter,
		auction:    auction,
		vault:      vault,
		ledger:     ledger,
		whitelists: make(map[common.Hash]*MerkleTree),
		scheduler:  gocron.NewScheduler(time.UTC),
		config:     config.New(mySqlDsn, sqliteDir, useSqlite),
		kwriters:   kwriters,
		events:     make(chan *schema.EventRecord, 2000),
		eventPool:  eventPool,
	}
	s.cache = NewCache()

	minter.SetEventSink(s.sinkEvent)

	// resume from the last flushed snapshot, if any
	snap, err := KVDb.LoadEngineSnapshot()
	if err == nil {
		s.restore(snap)
	} else if err != schema.ErrNotExist {
		panic(err)
	}

	// rebuild proof trees from the journaled whitelists
	for i := 0; i < minter.StageCount(); i++ {
		stage, _ := minter.stages.Get(i)
		if stage.MerkleRoot == (common.Hash{}) {
			continue
		}
		if err := s.loadWhitelist(stage.MerkleRoot); err != nil {
			log.Warn("load whitelist", "root", stage.MerkleRoot, "err", err)
		}
	}
	return s
}

func (s *Launchpad) Run(port string) {
	s.config.Run()
	go s.runAPI(port)
	go s.runJobs()
	go s.runEventDrain()
}

func (s *Launchpad) Close() {
	s.scheduler.Stop()
	s.detachSink()
	close(s.events)
	s.eventPool.Release()
	for _, kw := range s.kwriters {
		kw.Close()
	}
	if err := s.flushSnapshot(); err != nil {
		log.Error("flush snapshot on close", "err", err)
	}
	s.config.Close()
	if err := s.wdb.Close(); err != nil {
		log.Error("close wdb", "err", err)
	}
	if err := s.store.Close(); err != nil {
		log.Error("close store", "err", err)
	}
}

// detachSink swaps the engine's event sink for a no-op. In-flight API
// handlers hold the engine lock while emitting, so taking the same lock here
// guarantees nothing sends on s.events after it is closed.
func (s *Launchpad) detachSink() {
	s.minter.mu.Lock()
	s.minter.emit = func(string, string, interface{}) {}
	s.minter.mu.Unlock()
}

// sinkEvent runs inside the engine lock; it must not block, so the record is
// handed to a buffered channel and the drain job does the slow work.
func (s *Launchpad) sinkEvent(topic, event string, data interface{}) {
	rec := &schema.EventRecord{
		Topic: topic,
		Event: event,
		Data:  marshalEvent(data),
		Time:  time.Now().Unix(),
	}
	select {
	case s.events <- rec:
	default:
		log.Warn("event channel full, drop event", "topic", topic, "event", event)
	}
}

// ----- whitelist -----

// SetWhitelist commits an address set, journals it and returns its merkle
// root for use in a stage.
func (s *Launchpad) SetWhitelist(addrs []common.Address) (common.Hash, error) {
	tree := NewMerkleTree(addrs)
	root := tree.Root()
	s.minter.mu.Lock()
	s.whitelists[root] = tree
	s.minter.mu.Unlock()

	if s.wdb != nil && s.wdb.Db != nil {
		hexAddrs := make([]string, 0, len(addrs))
		for _, a := range addrs {
			hexAddrs = append(hexAddrs, a.Hex())
		}
		by := marshalEvent(hexAddrs)
		if err := s.wdb.SaveWhitelist(schema.Whitelist{Root: root.Hex(), Addresses: datatypes.JSON(by)}); err != nil {
			return root, err
		}
	}
	return root, nil
}

func (s *Launchpad) loadWhitelist(root common.Hash) error {
	if s.wdb == nil || s.wdb.Db == nil {
		return schema.ErrNotExist
	}
	wl, err := s.wdb.GetWhitelist(root.Hex())
	if err != nil {
		return err
	}
	hexAddrs := make([]string, 0)
	if err := json.Unmarshal(wl.Addresses, &hexAddrs); err != nil {
		return err
	}
	addrs := make([]common.Address, 0, len(hexAddrs))
	for _, h := range hexAddrs {
		addrs = append(addrs, common.HexToAddress(h))
	}
	s.minter.mu.Lock()
	s.whitelists[root] = NewMerkleTree(addrs)
	s.minter.mu.Unlock()
	return nil
}

// Proof returns the inclusion proof for a wallet under a committed root.
func (s *Launchpad) Proof(root common.Hash, wallet common.Address) ([]common.Hash, error) {
	s.minter.mu.Lock()
	tree, ok := s.whitelists[root]
	s.minter.mu.Unlock()
	if !ok {
		if err := s.loadWhitelist(root); err != nil {
			return nil, schema.ErrNotExist
		}
		s.minter.mu.Lock()
		tree = s.whitelists[root]
		s.minter.mu.Unlock()
	}
	return tree.Proof(wallet)
}

// ----- snapshot -----

func (s *Launchpad) snapshot() schema.EngineSnapshot {
	m := s.minter
	m.mu.Lock()
	defer m.mu.Unlock()

	stages, active, stageMinted, stageWallets := m.stages.snapshot()
	walletMinted := make(map[common.Address]uint32, len(m.walletMinted))
	for addr, n := range m.walletMinted {
		walletMinted[addr] = n
	}
	stakes, stakeable, baseAward := s.vault.snapshot()
	return schema.EngineSnapshot{
		Owners:            m.ledger.snapshot(),
		TreasuryBalance:   m.treasury.Balance(),
		Mintable:          m.mintable,
		MaxSupply:         m.maxMintableSupply,
		GlobalLimit:       m.globalWalletLimit,
		Cosigner:          m.cosign.Address(),
		Crossmint:         m.crossmintAddress,
		CosignNonces:      m.cosign.snapshotNonces(),
		WalletMinted:      walletMinted,
		Stages:            stages,
		ActiveStage:       active,
		StageMinted:       stageMinted,
		StageWalletMinted: stageWallets,
		Auction:           s.auction.snapshot(),
		Stakes:            stakes,
		Stakeable:         stakeable,
		BaseAward:         baseAward,
	}
}

func (s *Launchpad) restore(snap schema.EngineSnapshot) {
	m := s.minter
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ledger.restore(snap.Owners)
	m.treasury.restore(snap.TreasuryBalance)
	m.mintable = snap.Mintable
	m.maxMintableSupply = snap.MaxSupply
	m.globalWalletLimit = snap.GlobalLimit
	m.cosign.setAddress(snap.Cosigner)
	m.crossmintAddress = snap.Crossmint
	m.cosign.restoreNonces(snap.CosignNonces)
	m.walletMinted = make(map[common.Address]uint32, len(snap.WalletMinted))
	for addr, n := range snap.WalletMinted {
		m.walletMinted[addr] = n
	}
	m.stages.restore(snap.Stages, snap.ActiveStage, snap.StageMinted, snap.StageWalletMinted)
	s.auction.restore(snap.Auction)
	s.vault.restore(snap.Stakes, snap.Stakeable, snap.BaseAward)
}

func (s *Launchpad) flushSnapshot() error {
	return s.store.SaveEngineSnapshot(s.snapshot())
}
