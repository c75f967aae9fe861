package sdk

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/everFinance/goether"
	"github.com/miaswap/launchpad/schema"
)

// SDK wraps the http client with a local signer, so a cosigner service can
// authorize mints and a buyer can submit them with one call.
type SDK struct {
	Signer *goether.Signer
	Cli    *LaunchCli

	Contract common.Address
	ChainId  *big.Int
}

func NewSDK(launchUrl, prvHex string, contract common.Address, chainId int64) (*SDK, error) {
	signer, err := goether.NewSigner(prvHex)
	if err != nil {
		return nil, err
	}
	return &SDK{
		Signer:   signer,
		Cli:      New(launchUrl),
		Contract: contract,
		ChainId:  big.NewInt(chainId),
	}, nil
}

// Cosign signs the canonical mint authorization for the buyer's current
// nonce. The signer must be the cosigner the sale is configured with.
func (s *SDK) Cosign(buyer common.Address, qty uint32, timestamp int64) (sig []byte, err error) {
	nonce, err := s.Cli.CosignNonce(buyer.Hex())
	if err != nil {
		return nil, err
	}
	msg := schema.CosignMessage(s.Contract, buyer, qty, s.Signer.Address, timestamp, s.ChainId, nonce)
	return s.Signer.SignMsg(msg)
}

// MintCosigned fetches the wallet's proof for the given root, cosigns the
// request with the local signer and submits it.
func (s *SDK) MintCosigned(buyer common.Address, qty uint32, root string, timestamp int64, payment *big.Int) (schema.RespMint, error) {
	proof := make([]string, 0)
	if root != "" && root != (common.Hash{}).Hex() {
		resp, err := s.Cli.Proof(root, buyer.Hex())
		if err != nil {
			return schema.RespMint{}, err
		}
		proof = resp.Proof
	}
	sig, err := s.Cosign(buyer, qty, timestamp)
	if err != nil {
		return schema.RespMint{}, err
	}
	return s.Cli.Mint(schema.MintReq{
		Minter:    buyer.Hex(),
		Qty:       qty,
		Proof:     proof,
		Timestamp: timestamp,
		Signature: hexutil.Encode(sig),
		Payment:   payment.String(),
	})
}
