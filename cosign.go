package launchpad

import (
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/miaswap/launchpad/schema"
)

// CosignDigest is the personal-sign wrapping of schema.CosignMessage; this is
// what wallet signers actually sign.
func CosignDigest(contract, buyer common.Address, qty uint32, cosigner common.Address, timestamp int64, chainId *big.Int, nonce uint64) common.Hash {
	return common.BytesToHash(accounts.TextHash(schema.CosignMessage(contract, buyer, qty, cosigner, timestamp, chainId, nonce)))
}

// SignCosign produces a wallet-style signature (V in {27,28}) over the cosign
// digest. Used by tests and the sdk signer helper.
func SignCosign(key *ecdsa.PrivateKey, contract, buyer common.Address, qty uint32, cosigner common.Address, timestamp int64, chainId *big.Int, nonce uint64) ([]byte, error) {
	digest := CosignDigest(contract, buyer, qty, cosigner, timestamp, chainId, nonce)
	sig, err := crypto.Sign(digest.Bytes(), key)
	if err != nil {
		return nil, err
	}
	sig[crypto.RecoveryIDOffset] += 27
	return sig, nil
}

// Cosigner verifies signed mint authorizations and tracks per-buyer replay
// nonces. Verification itself is a pure check; the nonce advances only when
// the surrounding mint commits.
type Cosigner struct {
	contract common.Address
	chainId  *big.Int
	address  common.Address // zero = unset, mints skip cosigning entirely
	expiry   int64          // seconds
	nonces   map[common.Address]uint64
}

func NewCosigner(contract common.Address, chainId int64, expiry int64) *Cosigner {
	if expiry <= 0 {
		expiry = schema.DefaultCosignExpiry
	}
	return &Cosigner{
		contract: contract,
		chainId:  big.NewInt(chainId),
		expiry:   expiry,
		nonces:   make(map[common.Address]uint64),
	}
}

func (c *Cosigner) Configured() bool {
	return c.address != (common.Address{})
}

func (c *Cosigner) Address() common.Address {
	return c.address
}

func (c *Cosigner) setAddress(addr common.Address) {
	c.address = addr
}

func (c *Cosigner) Nonce(buyer common.Address) uint64 {
	return c.nonces[buyer]
}

// authorize is the pure eligibility check: recover the signer from sig over
// the canonical digest for the buyer's current nonce, then check the
// timestamp window. The caller bumps the nonce on commit.
func (c *Cosigner) authorize(buyer common.Address, qty uint32, timestamp int64, sig []byte, now int64) error {
	if len(sig) != crypto.SignatureLength {
		return schema.ErrInvalidCosignSignature
	}
	digest := CosignDigest(c.contract, buyer, qty, c.address, timestamp, c.chainId, c.nonces[buyer])

	// wallets emit V as 27/28, SigToPub wants 0/1
	rsv := make([]byte, crypto.SignatureLength)
	copy(rsv, sig)
	if rsv[crypto.RecoveryIDOffset] >= 27 {
		rsv[crypto.RecoveryIDOffset] -= 27
	}
	pub, err := crypto.SigToPub(digest.Bytes(), rsv)
	if err != nil {
		return schema.ErrInvalidCosignSignature
	}
	if crypto.PubkeyToAddress(*pub) != c.address {
		return schema.ErrInvalidCosignSignature
	}
	if now-timestamp > c.expiry {
		return schema.ErrTimestampExpired
	}
	return nil
}

func (c *Cosigner) bumpNonce(buyer common.Address) {
	c.nonces[buyer]++
}

func (c *Cosigner) snapshotNonces() map[common.Address]uint64 {
	out := make(map[common.Address]uint64, len(c.nonces))
	for k, v := range c.nonces {
		out[k] = v
	}
	return out
}

func (c *Cosigner) restoreNonces(nonces map[common.Address]uint64) {
	c.nonces = make(map[common.Address]uint64, len(nonces))
	for k, v := range nonces {
		c.nonces[k] = v
	}
}
