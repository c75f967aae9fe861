package launchpad

import (
	"math/big"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	launchCommon "github.com/miaswap/launchpad/common"
	"github.com/miaswap/launchpad/schema"
	"gorm.io/datatypes"
)

func (s *Launchpad) runAPI(port string) {
	r := s.engine
	r.Use(launchCommon.CORSMiddleware())
	if s.config.Param.RateLimit > 0 {
		r.Use(launchCommon.LimiterMiddleware(s.config.Param.RateLimit, s.config.Param.RatePeriod, s.config.IPWhitelist()))
	}
	v1 := r.Group("/")
	{
		v1.POST("/mint", s.mint)
		v1.POST("/crossmint", s.crossmint)
		v1.POST("/transfer", s.transfer)

		v1.POST("/auction/bid", s.bid)
		v1.POST("/auction/claim/:wallet", s.claimAuction)
		v1.GET("/auction/state", s.auctionState)
		v1.GET("/auction/user/:wallet", s.auctionUser)

		v1.POST("/stake", s.stake)
		v1.POST("/stake/claim", s.claimStake)
		v1.GET("/stake/token/:tokenId", s.stakeInfo)
		v1.GET("/stake/wallet/:wallet", s.stakesOf)

		v1.GET("/sale/state", s.saleState)
		v1.GET("/sale/stage/:index", s.stageInfo)
		v1.GET("/sale/proof/:root/:wallet", s.proof)
		v1.GET("/sale/nonce/:wallet", s.cosignNonce)
		v1.GET("/sale/orders/:wallet", s.mintOrders)
		v1.GET("/token/:tokenId", s.tokenOwner)
	}

	admin := r.Group("/admin")
	{
		admin.POST("/mintable/:flag", s.setMintable)
		admin.POST("/cosigner/:address", s.setCosigner)
		admin.POST("/crossmint/:address", s.setCrossmintAddress)
		admin.POST("/supply/:max", s.setMaxMintableSupply)
		admin.POST("/walletLimit/:limit", s.setGlobalWalletLimit)
		admin.POST("/stages", s.setStages)
		admin.POST("/stage/:index", s.updateStage)
		admin.POST("/activeStage/:index", s.setActiveStage)
		admin.POST("/whitelist", s.setWhitelist)
		admin.POST("/ownerMint", s.ownerMint)
		admin.POST("/withdraw", s.withdraw)

		admin.POST("/auction/window/:start/:end", s.setAuctionWindow)
		admin.POST("/auction/minBid/:amount", s.setMinimumContribution)
		admin.POST("/auction/claimable/:flag", s.setClaimable)
		admin.POST("/auction/price/:price", s.setPrice)
		admin.POST("/auction/sendTokens", s.sendTokens)
		admin.POST("/auction/sendAllTokens", s.sendAllTokens)
		admin.POST("/auction/sendRefund", s.sendRefund)
		admin.POST("/auction/settle", s.sendTokensAndRefund)
		admin.POST("/auction/settleBatch", s.sendTokensAndRefundBatch)
		admin.POST("/auction/sendTokensBatch", s.sendTokensBatch)
		admin.POST("/auction/sendRefundBatch", s.sendRefundBatch)

		admin.POST("/stake/stakeable/:flag", s.setStakeable)
		admin.POST("/stake/baseAward/:award", s.setBaseAward)
	}

	if err := r.Run(port); err != nil {
		panic(err)
	}
}

func errorResponse(c *gin.Context, err string) {
	// client error
	c.JSON(http.StatusBadRequest, schema.RespErr{
		Err: err,
	})
}

func internalErrorResponse(c *gin.Context, err string) {
	c.JSON(http.StatusInternalServerError, schema.RespErr{
		Err: err,
	})
}

func parseWei(s string) (*big.Int, bool) {
	if s == "" {
		return new(big.Int), true
	}
	return new(big.Int).SetString(s, 10)
}

func parseProof(ss []string) []common.Hash {
	proof := make([]common.Hash, 0, len(ss))
	for _, p := range ss {
		proof = append(proof, common.HexToHash(p))
	}
	return proof
}

// ----- mint -----

func (s *Launchpad) mint(c *gin.Context) {
	req := schema.MintReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	payment, ok := parseWei(req.Payment)
	if !ok {
		errorResponse(c, "invalid payment")
		return
	}
	sig, err := hexutil.Decode(req.Signature)
	if err != nil && req.Signature != "" {
		errorResponse(c, "invalid signature")
		return
	}
	minter := common.HexToAddress(req.Minter)
	res, err := s.minter.Mint(minter, req.Qty, parseProof(req.Proof), req.Timestamp, sig, payment)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	orderId := s.journalMint(minter, minter, schema.SourceMint, res, payment, req.Proof)
	c.JSON(http.StatusOK, schema.RespMint{
		OrderId:      orderId,
		StartTokenId: res.StartTokenId,
		Qty:          res.Qty,
		StageIndex:   res.StageIndex,
	})
}

func (s *Launchpad) crossmint(c *gin.Context) {
	req := schema.CrossmintReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	payment, ok := parseWei(req.Payment)
	if !ok {
		errorResponse(c, "invalid payment")
		return
	}
	sig, err := hexutil.Decode(req.Signature)
	if err != nil && req.Signature != "" {
		errorResponse(c, "invalid signature")
		return
	}
	caller := common.HexToAddress(req.Caller)
	to := common.HexToAddress(req.To)
	res, err := s.minter.Crossmint(caller, req.Qty, to, parseProof(req.Proof), req.Timestamp, sig, payment)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	orderId := s.journalMint(caller, to, schema.SourceCrossmint, res, payment, req.Proof)
	c.JSON(http.StatusOK, schema.RespMint{
		OrderId:      orderId,
		StartTokenId: res.StartTokenId,
		Qty:          res.Qty,
		StageIndex:   res.StageIndex,
	})
}

func (s *Launchpad) journalMint(minter, recipient common.Address, source string, res MintResult, payment *big.Int, proof []string) string {
	orderId := uuid.NewString()
	if s.wdb == nil || s.wdb.Db == nil {
		return orderId
	}
	unitPrice := "0"
	if res.StageIndex >= 0 {
		if stage, err := s.minter.stages.Get(res.StageIndex); err == nil {
			unitPrice = stage.Price.String()
		}
	}
	order := schema.MintOrder{
		OrderId:      orderId,
		Minter:       minter.Hex(),
		Recipient:    recipient.Hex(),
		Source:       source,
		StageIndex:   res.StageIndex,
		Qty:          res.Qty,
		UnitPrice:    unitPrice,
		Payment:      payment.String(),
		StartTokenId: res.StartTokenId,
		Proof:        datatypes.JSON(marshalEvent(proof)),
	}
	if err := s.wdb.InsertMintOrder(order); err != nil {
		log.Error("insert mint order", "orderId", orderId, "err", err)
	}
	metricMint(source, res.Qty)
	return orderId
}

func (s *Launchpad) transfer(c *gin.Context) {
	req := schema.TransferReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	s.minter.mu.Lock()
	err := s.ledger.TransferFrom(common.HexToAddress(req.Caller), common.HexToAddress(req.From), common.HexToAddress(req.To), req.TokenId)
	s.minter.mu.Unlock()
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	c.Status(http.StatusOK)
}

// ----- auction -----

func (s *Launchpad) bid(c *gin.Context) {
	req := schema.BidReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	amount, ok := parseWei(req.Amount)
	if !ok {
		errorResponse(c, "invalid amount")
		return
	}
	if err := s.auction.Bid(common.HexToAddress(req.Bidder), amount); err != nil {
		errorResponse(c, err.Error())
		return
	}
	metricBid(amount)
	c.Status(http.StatusOK)
}

func (s *Launchpad) claimAuction(c *gin.Context) {
	wallet := common.HexToAddress(c.Param("wallet"))
	if err := s.auction.ClaimTokensAndRefund(wallet); err != nil {
		errorResponse(c, err.Error())
		return
	}
	c.Status(http.StatusOK)
}

func (s *Launchpad) auctionState(c *gin.Context) {
	c.JSON(http.StatusOK, s.auction.State())
}

func (s *Launchpad) auctionUser(c *gin.Context) {
	wallet := common.HexToAddress(c.Param("wallet"))
	c.JSON(http.StatusOK, s.auction.UserData(wallet))
}

// ----- staking -----

func (s *Launchpad) stake(c *gin.Context) {
	req := schema.StakeReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	if err := s.vault.StakeTokens(common.HexToAddress(req.Caller), req.TokenIds); err != nil {
		errorResponse(c, err.Error())
		return
	}
	c.Status(http.StatusOK)
}

func (s *Launchpad) claimStake(c *gin.Context) {
	req := schema.ClaimStakeReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	award, err := s.vault.ClaimTokens(common.HexToAddress(req.Caller), req.TokenIds, req.ReStake)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, schema.RespAward{Award: award})
}

func (s *Launchpad) stakeInfo(c *gin.Context) {
	tokenId, err := strconv.ParseUint(c.Param("tokenId"), 10, 64)
	if err != nil {
		errorResponse(c, "invalid tokenId")
		return
	}
	rec, ok := s.vault.Stake(tokenId)
	if !ok {
		errorResponse(c, schema.ErrTokenNotStaked.Error())
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Launchpad) stakesOf(c *gin.Context) {
	wallet := common.HexToAddress(c.Param("wallet"))
	c.JSON(http.StatusOK, s.vault.StakesOf(wallet))
}

// ----- sale reads -----

func (s *Launchpad) saleState(c *gin.Context) {
	if by, err := s.cache.GetSaleState(); err == nil {
		c.Data(http.StatusOK, "application/json; charset=utf-8", by)
		return
	}
	state := s.buildSaleState()
	by := marshalEvent(state)
	s.cache.SetSaleState(by)
	c.Data(http.StatusOK, "application/json; charset=utf-8", by)
}

func (s *Launchpad) buildSaleState() schema.RespSaleState {
	activeStage, err := s.minter.ActiveStageIndex()
	if err != nil {
		activeStage = -1
	}
	return schema.RespSaleState{
		Mintable:          s.minter.Mintable(),
		TotalMinted:       s.minter.TotalMinted(),
		MaxMintableSupply: s.minter.MaxMintableSupply(),
		GlobalWalletLimit: s.minter.GlobalWalletLimit(),
		ActiveStage:       activeStage,
		StageCount:        s.minter.StageCount(),
		Cosigner:          s.minter.CosignerAddress().Hex(),
		CrossmintAddress:  s.minter.CrossmintAddress().Hex(),
		TreasuryBalance:   s.minter.treasury.Balance().String(),
	}
}

func (s *Launchpad) stageInfo(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		errorResponse(c, "invalid stage index")
		return
	}
	wallet := common.HexToAddress(c.Query("wallet"))
	info, err := s.minter.StageInfo(index, wallet)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, info)
}

func (s *Launchpad) proof(c *gin.Context) {
	root := common.HexToHash(c.Param("root"))
	wallet := common.HexToAddress(c.Param("wallet"))

	cacheKey := root.Hex() + wallet.Hex()
	if by, err := s.cache.GetProof(cacheKey); err == nil {
		c.Data(http.StatusOK, "application/json; charset=utf-8", by)
		return
	}

	proof, err := s.Proof(root, wallet)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	hexProof := make([]string, 0, len(proof))
	for _, p := range proof {
		hexProof = append(hexProof, p.Hex())
	}
	resp := schema.RespProof{
		Root:  root.Hex(),
		Leaf:  AddressLeaf(wallet).Hex(),
		Proof: hexProof,
	}
	by := marshalEvent(resp)
	s.cache.SetProof(cacheKey, by)
	c.Data(http.StatusOK, "application/json; charset=utf-8", by)
}

func (s *Launchpad) cosignNonce(c *gin.Context) {
	wallet := common.HexToAddress(c.Param("wallet"))
	c.JSON(http.StatusOK, gin.H{"nonce": s.minter.CosignNonce(wallet)})
}

func (s *Launchpad) mintOrders(c *gin.Context) {
	if s.wdb == nil || s.wdb.Db == nil {
		errorResponse(c, "journal disabled")
		return
	}
	wallet := common.HexToAddress(c.Param("wallet"))
	orders, err := s.wdb.GetMintOrders(wallet.Hex(), 50)
	if err != nil {
		internalErrorResponse(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (s *Launchpad) tokenOwner(c *gin.Context) {
	tokenId, err := strconv.ParseUint(c.Param("tokenId"), 10, 64)
	if err != nil {
		errorResponse(c, "invalid tokenId")
		return
	}
	s.minter.mu.Lock()
	owner, err := s.ledger.OwnerOf(tokenId)
	s.minter.mu.Unlock()
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"tokenId": tokenId, "owner": owner.Hex()})
}

// ----- admin -----
//
// Admin routes act as the sale owner; deployments put them behind their own
// gateway auth.

func (s *Launchpad) setMintable(c *gin.Context) {
	flag := c.Param("flag") == "true"
	if err := s.minter.SetMintable(s.minter.Owner(), flag); err != nil {
		errorResponse(c, err.Error())
		return
	}
	c.Status(http.StatusOK)
}

func (s *Launchpad) setCosigner(c *gin.Context) {
	addr := common.HexToAddress(c.Param("address"))
	if err := s.minter.SetCosigner(s.minter.Owner(), addr); err != nil {
		errorResponse(c, err.Error())
		return
	}
	c.Status(http.StatusOK)
}

func (s *Launchpad) setCrossmintAddress(c *gin.Context) {
	addr := common.HexToAddress(c.Param("address"))
	if err := s.minter.SetCrossmintAddress(s.minter.Owner(), addr); err != nil {
		errorResponse(c, err.Error())
		return
	}
	c.Status(http.StatusOK)
}

func (s *Launchpad) setMaxMintableSupply(c *gin.Context) {
	max, err := strconv.ParseUint(c.Param("max"), 10, 64)
	if err != nil {
		errorResponse(c, "invalid supply")
		return
	}
	if err := s.minter.SetMaxMintableSupply(s.minter.Owner(), max); err != nil {
		errorResponse(c, err.Error())
		return
	}
	c.Status(http.StatusOK)
}

func (s *Launchpad) setGlobalWalletLimit(c *gin.Context) {
	limit, err := strconv.ParseUint(c.Param("limit"), 10, 32)
	if err != nil {
		errorResponse(c, "invalid limit")
		return
	}
	if err := s.minter.SetGlobalWalletLimit(s.minter.Owner(), uint32(limit)); err != nil {
		errorResponse(c, err.Error())
		return
	}
	c.Status(http.StatusOK)
}

func stageFromReq(req schema.StageReq) (schema.Stage, bool) {
	price, ok := parseWei(req.Price)
	if !ok {
		return schema.Stage{}, false
	}
	return schema.Stage{
		Price:          price,
		WalletLimit:    req.WalletLimit,
		MerkleRoot:     common.HexToHash(req.MerkleRoot),
		MaxStageSupply: req.MaxStageSupply,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
	}, true
}

func (s *Launchpad) setStages(c *gin.Context) {
	reqs := make([]schema.StageReq, 0)
	if err := c.ShouldBindJSON(&reqs); err != nil {
		errorResponse(c, err.Error())
		return
	}
	stages := make([]schema.Stage, 0, len(reqs))
	for _, req := range reqs {
		stage, ok := stageFromReq(req)
		if !ok {
			errorResponse(c, "invalid stage price")
			return
		}
		stages = append(stages, stage)
	}
	if err := s.minter.SetStages(s.minter.Owner(), stages); err != nil {
		errorResponse(c, err.Error())
		return
	}
	c.Status(http.StatusOK)
}

func (s *Launchpad) updateStage(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		errorResponse(c, "invalid stage index")
		return
	}
	req := schema.StageReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	stage, ok := stageFromReq(req)
	if !ok {
		errorResponse(c, "invalid stage price")
		return
	}
	if err := s.minter.UpdateStage(s.minter.Owner(), index, stage); err != nil {
		errorResponse(c, err.Error())
		return
	}
	c.Status(http.StatusOK)
}

func (s *Launchpad) setActiveStage(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		errorResponse(c, "invalid stage index")
		return
	}
	if err := s.minter.SetActiveStage(s.minter.Owner(), index); err != nil {
		errorResponse(c, err.Error())
		return
	}
	c.Status(http.StatusOK)
}

func (s *Launchpad) setWhitelist(c *gin.Context) {
	req := schema.WhitelistReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	addrs := make([]common.Address, 0, len(req.Addresses))
	for _, a := range req.Addresses {
		addrs = append(addrs, common.HexToAddress(a))
	}
	root, err := s.SetWhitelist(addrs)
	if err != nil {
		internalErrorResponse(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"root": root.Hex()})
}

func (s *Launchpad) ownerMint(c *gin.Context) {
	req := struct {
		To  string `json:"to"`
		Qty uint32 `json:"qty"`
	}{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	to := common.HexToAddress(req.To)
	res, err := s.minter.OwnerMint(s.minter.Owner(), req.Qty, to)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	orderId := s.journalMint(s.minter.Owner(), to, schema.SourceOwnerMint, res, new(big.Int), nil)
	c.JSON(http.StatusOK, schema.RespMint{
		OrderId:      orderId,
		StartTokenId: res.StartTokenId,
		Qty:          res.Qty,
		StageIndex:   res.StageIndex,
	})
}

func (s *Launchpad) withdraw(c *gin.Context) {
	value, err := s.minter.Withdraw(s.minter.Owner())
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"value": value.String()})
}

func (s *Launchpad) setAuctionWindow(c *gin.Context) {
	start, err1 := strconv.ParseInt(c.Param("start"), 10, 64)
	end, err2 := strconv.ParseInt(c.Param("end"), 10, 64)
	if err1 != nil || err2 != nil {
		errorResponse(c, "invalid window")
		return
	}
	if err := s.auction.SetStartAndEndTime(s.minter.Owner(), start, end); err != nil {
		errorResponse(c, err.Error())
		return
	}
	c.Status(http.StatusOK)
}

func (s *Launchpad) setMinimumContribution(c *gin.Context) {
	amount, ok := parseWei(c.Param("amount"))
	if !ok {
		errorResponse(c, "invalid amount")
		return
	}
	if err := s.auction.SetMinimumContribution(s.minter.Owner(), amount); err != nil {
		errorResponse(c, err.Error())
		return
	}
	c.Status(http.StatusOK)
}

func (s *Launchpad) setClaimable(c *gin.Context) {
	flag := c.Param("flag") == "true"
	if err := s.auction.SetClaimable(s.minter.Owner(), flag); err != nil {
		errorResponse(c, err.Error())
		return
	}
	c.Status(http.StatusOK)
}

func (s *Launchpad) setPrice(c *gin.Context) {
	price, ok := parseWei(c.Param("price"))
	if !ok {
		errorResponse(c, "invalid price")
		return
	}
	if err := s.auction.SetPrice(s.minter.Owner(), price); err != nil {
		errorResponse(c, err.Error())
		return
	}
	c.Status(http.StatusOK)
}

func (s *Launchpad) sendTokens(c *gin.Context) {
	req := struct {
		To  string `json:"to"`
		Qty uint32 `json:"qty"`
	}{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	if err := s.auction.SendTokens(s.minter.Owner(), common.HexToAddress(req.To), req.Qty); err != nil {
		errorResponse(c, err.Error())
		return
	}
	c.Status(http.StatusOK)
}

func (s *Launchpad) sendAllTokens(c *gin.Context) {
	req := struct {
		To string `json:"to"`
	}{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	if err := s.auction.SendAllTokens(s.minter.Owner(), common.HexToAddress(req.To)); err != nil {
		errorResponse(c, err.Error())
		return
	}
	c.Status(http.StatusOK)
}

func (s *Launchpad) sendRefund(c *gin.Context) {
	req := struct {
		To string `json:"to"`
	}{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	refund, err := s.auction.SendRefund(s.minter.Owner(), common.HexToAddress(req.To))
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"refund": refund.String()})
}

func (s *Launchpad) sendTokensAndRefund(c *gin.Context) {
	req := struct {
		To string `json:"to"`
	}{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	if err := s.auction.SendTokensAndRefund(s.minter.Owner(), common.HexToAddress(req.To)); err != nil {
		errorResponse(c, err.Error())
		return
	}
	c.Status(http.StatusOK)
}

func (s *Launchpad) batchRecipients(c *gin.Context) ([]common.Address, bool) {
	req := schema.BatchSettleReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return nil, false
	}
	tos := make([]common.Address, 0, len(req.Recipients))
	for _, r := range req.Recipients {
		tos = append(tos, common.HexToAddress(r))
	}
	return tos, true
}

func (s *Launchpad) sendTokensAndRefundBatch(c *gin.Context) {
	tos, ok := s.batchRecipients(c)
	if !ok {
		return
	}
	if err := s.auction.SendTokensAndRefundBatch(s.minter.Owner(), tos); err != nil {
		errorResponse(c, err.Error())
		return
	}
	c.Status(http.StatusOK)
}

func (s *Launchpad) sendTokensBatch(c *gin.Context) {
	tos, ok := s.batchRecipients(c)
	if !ok {
		return
	}
	if err := s.auction.SendTokensBatch(s.minter.Owner(), tos); err != nil {
		errorResponse(c, err.Error())
		return
	}
	c.Status(http.StatusOK)
}

func (s *Launchpad) sendRefundBatch(c *gin.Context) {
	tos, ok := s.batchRecipients(c)
	if !ok {
		return
	}
	if err := s.auction.SendRefundBatch(s.minter.Owner(), tos); err != nil {
		errorResponse(c, err.Error())
		return
	}
	c.Status(http.StatusOK)
}

func (s *Launchpad) setStakeable(c *gin.Context) {
	flag := c.Param("flag") == "true"
	if err := s.vault.SetStakeable(s.minter.Owner(), flag); err != nil {
		errorResponse(c, err.Error())
		return
	}
	c.Status(http.StatusOK)
}

func (s *Launchpad) setBaseAward(c *gin.Context) {
	award, ok := parseWei(c.Param("award"))
	if !ok {
		errorResponse(c, "invalid award")
		return
	}
	if err := s.vault.SetBaseAward(s.minter.Owner(), award); err != nil {
		errorResponse(c, err.Error())
		return
	}
	c.Status(http.StatusOK)
}
