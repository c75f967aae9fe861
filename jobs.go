package launchpad

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/miaswap/launchpad/schema"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
	"gopkg.in/h2non/gentleman.v2"
)

func (s *Launchpad) runJobs() {
	s.scheduler.Every(1).Minute().SingletonMode().Do(s.flushEngineState)
	s.scheduler.Every(5).Minute().SingletonMode().Do(s.updateTokenPrice)
	s.scheduler.Every(1).Minute().SingletonMode().Do(s.updateMetrics)
	s.scheduler.Every(1).Hour().SingletonMode().Do(s.updateSaleStatistic)

	s.scheduler.StartAsync()
}

func (s *Launchpad) flushEngineState() {
	if err := s.flushSnapshot(); err != nil {
		log.Error("flush engine snapshot", "err", err)
	}
}

func (s *Launchpad) updateMetrics() {
	metricTreasury(s.minter.treasury.Balance())
}

// updateTokenPrice refreshes the ETH/USD quote used by the statistics rollup.
func (s *Launchpad) updateTokenPrice() {
	tps := []schema.TokenPrice{
		{Symbol: "ETH", ManualSet: false, UpdatedAt: time.Time{}},
	}
	if err := s.wdb.InsertPrices(tps); err != nil {
		log.Error("s.wdb.InsertPrices(tps)", "err", err)
		return
	}

	tps, err := s.wdb.GetPrices()
	if err != nil {
		log.Error("s.wdb.GetPrices()", "err", err)
		return
	}
	for _, tp := range tps {
		if tp.ManualSet {
			continue
		}
		price, err := fetchUsdPriceByRedstone(tp.Symbol)
		if err != nil {
			log.Error("fetchUsdPriceByRedstone(tp.Symbol)", "err", err, "symbol", tp.Symbol)
			continue
		}
		if err := s.wdb.UpdatePrice(tp.Symbol, price); err != nil {
			log.Error("s.wdb.UpdatePrice(tp.Symbol,price)", "err", err, "symbol", tp.Symbol, "price", price)
		}
	}
}

func fetchUsdPriceByRedstone(symbol string) (float64, error) {
	cli := gentleman.New().URL("https://api.redstone.finance")
	req := cli.Get()
	req.AddPath("/prices")
	req.AddQuery("symbol", symbol)
	req.AddQuery("provider", "redstone")
	req.AddQuery("limit", "1")
	resp, err := req.Send()
	if err != nil {
		return 0, err
	}
	defer resp.Close()
	if !resp.Ok {
		return 0, fmt.Errorf("resp failed: %s", resp.String())
	}
	value := gjson.GetBytes(resp.Bytes(), "0.value")
	if !value.Exists() {
		return 0, fmt.Errorf("no price for symbol: %s", symbol)
	}
	return value.Float(), nil
}

// updateSaleStatistic rolls the last 24h of journaled orders and bids into one
// row; volumes stay exact by summing the wei strings with decimal.
func (s *Launchpad) updateSaleStatistic() {
	since := time.Now().Add(-24 * time.Hour)

	orders, err := s.wdb.MintOrdersSince(since)
	if err != nil {
		log.Error("s.wdb.MintOrdersSince(since)", "err", err)
		return
	}
	mintVolume := decimal.Zero
	for _, order := range orders {
		payment, err := decimal.NewFromString(order.Payment)
		if err != nil {
			continue
		}
		mintVolume = mintVolume.Add(payment)
	}

	bids, err := s.wdb.ContributionsSince(since)
	if err != nil {
		log.Error("s.wdb.ContributionsSince(since)", "err", err)
		return
	}
	auctionVolume := decimal.Zero
	for _, bid := range bids {
		amount, err := decimal.NewFromString(bid.Amount)
		if err != nil {
			continue
		}
		auctionVolume = auctionVolume.Add(amount)
	}

	weiPerEth := decimal.New(1, 18)
	ethVolume := mintVolume.Add(auctionVolume).Div(weiPerEth)
	usdVolume := decimal.Zero
	tps, err := s.wdb.GetPrices()
	if err == nil {
		for _, tp := range tps {
			if tp.Symbol == "ETH" {
				usdVolume = ethVolume.Mul(decimal.NewFromFloat(tp.Price))
				break
			}
		}
	}

	st := schema.SaleStatistic{
		Date:          time.Now(),
		TotalMinted:   s.minter.TotalMinted(),
		MintVolume:    mintVolume.Div(weiPerEth).String(),
		AuctionVolume: auctionVolume.Div(weiPerEth).String(),
		UsdVolume:     usdVolume.StringFixed(2),
	}
	if err := s.wdb.InsertStatistic(st); err != nil {
		log.Error("s.wdb.InsertStatistic(st)", "err", err)
	}
}

// ----- event drain -----

// runEventDrain moves engine events off the sink channel; each record is
// journaled and pushed to kafka on the worker pool so a slow broker never
// backs up into the engine.
func (s *Launchpad) runEventDrain() {
	for rec := range s.events {
		rec := rec
		err := s.eventPool.Submit(func() {
			s.processEvent(rec)
		})
		if err != nil {
			log.Error("submit event to pool", "event", rec.Event, "err", err)
		}
	}
}

func (s *Launchpad) processEvent(rec *schema.EventRecord) {
	if kw, ok := s.kwriters[rec.Topic]; ok {
		if err := kw.Write(marshalEvent(rec)); err != nil {
			log.Error("write event to kafka", "topic", rec.Topic, "event", rec.Event, "err", err)
		}
	}
	if rec.Event == schema.EventMint && s.store != nil {
		// keep the per-buyer nonce mirror fresh for cosigner services
		recipient := common.HexToAddress(gjson.GetBytes(rec.Data, "recipient").String())
		if s.minter.CosignerAddress() != (common.Address{}) {
			if err := s.store.SaveCosignNonce(recipient, s.minter.CosignNonce(recipient)); err != nil {
				log.Error("save cosign nonce", "recipient", recipient, "err", err)
			}
		}
	}
	if s.wdb == nil || s.wdb.Db == nil {
		return
	}
	switch rec.Event {
	case schema.EventBid:
		record := schema.ContributionRecord{
			OrderId:     uuid.NewString(),
			Bidder:      gjson.GetBytes(rec.Data, "bidder").String(),
			Amount:      gjson.GetBytes(rec.Data, "bidAmount").String(),
			BidderTotal: gjson.GetBytes(rec.Data, "bidderTotal").String(),
			BucketTotal: gjson.GetBytes(rec.Data, "bucketTotal").String(),
		}
		if err := s.wdb.InsertContribution(record); err != nil {
			log.Error("insert contribution", "bidder", record.Bidder, "err", err)
		}
	case schema.EventRefundSent:
		record := schema.RefundRecord{
			OrderId: uuid.NewString(),
			Bidder:  gjson.GetBytes(rec.Data, "recipient").String(),
			Amount:  gjson.GetBytes(rec.Data, "amount").String(),
		}
		if err := s.wdb.InsertRefund(record); err != nil {
			log.Error("insert refund", "bidder", record.Bidder, "err", err)
		}
	case schema.EventTokenStaked:
		record := schema.StakeEventRecord{
			TokenId:   gjson.GetBytes(rec.Data, "tokenId").Uint(),
			Staker:    gjson.GetBytes(rec.Data, "staker").String(),
			Action:    schema.StakeActionStaked,
			Timestamp: rec.Time,
			Award:     "0",
		}
		if err := s.wdb.InsertStakeEvent(record); err != nil {
			log.Error("insert stake event", "tokenId", record.TokenId, "err", err)
		}
	case schema.EventTokenUnstaked:
		record := schema.StakeEventRecord{
			TokenId:   gjson.GetBytes(rec.Data, "tokenId").Uint(),
			Staker:    gjson.GetBytes(rec.Data, "staker").String(),
			Action:    schema.StakeActionUnstaked,
			Timestamp: rec.Time,
			Award:     "0",
		}
		if err := s.wdb.InsertStakeEvent(record); err != nil {
			log.Error("insert stake event", "tokenId", record.TokenId, "err", err)
		}
	}
}
