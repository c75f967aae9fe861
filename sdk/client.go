package sdk

import (
	"errors"
	"fmt"

	"github.com/miaswap/launchpad/schema"
	"gopkg.in/h2non/gentleman.v2"
	"gopkg.in/h2non/gentleman.v2/plugins/body"
)

type LaunchCli struct {
	Cli *gentleman.Client
}

func New(launchUrl string) *LaunchCli {
	return &LaunchCli{
		Cli: gentleman.New().URL(launchUrl),
	}
}

func (l *LaunchCli) Mint(req schema.MintReq) (schema.RespMint, error) {
	res := schema.RespMint{}
	err := l.post("/mint", req, &res)
	return res, err
}

func (l *LaunchCli) Crossmint(req schema.CrossmintReq) (schema.RespMint, error) {
	res := schema.RespMint{}
	err := l.post("/crossmint", req, &res)
	return res, err
}

func (l *LaunchCli) Bid(req schema.BidReq) error {
	return l.post("/auction/bid", req, nil)
}

func (l *LaunchCli) ClaimAuction(caller string) error {
	return l.post(fmt.Sprintf("/auction/claim/%s", caller), nil, nil)
}

func (l *LaunchCli) Stake(req schema.StakeReq) error {
	return l.post("/stake", req, nil)
}

func (l *LaunchCli) ClaimStake(req schema.ClaimStakeReq) (schema.RespAward, error) {
	res := schema.RespAward{}
	err := l.post("/stake/claim", req, &res)
	return res, err
}

func (l *LaunchCli) Transfer(req schema.TransferReq) error {
	return l.post("/transfer", req, nil)
}

func (l *LaunchCli) SaleState() (schema.RespSaleState, error) {
	res := schema.RespSaleState{}
	err := l.get("/sale/state", &res)
	return res, err
}

func (l *LaunchCli) AuctionState() (schema.AuctionState, error) {
	res := schema.AuctionState{}
	err := l.get("/auction/state", &res)
	return res, err
}

func (l *LaunchCli) StageInfo(index int, wallet string) (schema.StageInfo, error) {
	res := schema.StageInfo{}
	err := l.get(fmt.Sprintf("/sale/stage/%d?wallet=%s", index, wallet), &res)
	return res, err
}

func (l *LaunchCli) Proof(root, wallet string) (schema.RespProof, error) {
	res := schema.RespProof{}
	err := l.get(fmt.Sprintf("/sale/proof/%s/%s", root, wallet), &res)
	return res, err
}

func (l *LaunchCli) CosignNonce(wallet string) (nonce uint64, err error) {
	res := struct {
		Nonce uint64 `json:"nonce"`
	}{}
	err = l.get(fmt.Sprintf("/sale/nonce/%s", wallet), &res)
	return res.Nonce, err
}

func (l *LaunchCli) UserAuctionData(wallet string) (schema.AuctionAccount, error) {
	res := schema.AuctionAccount{}
	err := l.get(fmt.Sprintf("/auction/user/%s", wallet), &res)
	return res, err
}

func (l *LaunchCli) post(path string, payload interface{}, out interface{}) error {
	req := l.Cli.Post()
	req.AddPath(path)
	if payload != nil {
		req.Use(body.JSON(payload))
	}
	resp, err := req.Send()
	if err != nil {
		return err
	}
	defer resp.Close()
	if !resp.Ok {
		return errors.New(fmt.Sprintf("resp failed: %s", resp.String()))
	}
	if out != nil {
		return resp.JSON(out)
	}
	return nil
}

func (l *LaunchCli) get(path string, out interface{}) error {
	req := l.Cli.Get()
	req.AddPath(path)
	resp, err := req.Send()
	if err != nil {
		return err
	}
	defer resp.Close()
	if !resp.Ok {
		return errors.New(fmt.Sprintf("resp failed: %s", resp.String()))
	}
	return resp.JSON(out)
}
