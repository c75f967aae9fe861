package launchpad

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/miaswap/launchpad/schema"
	"github.com/stretchr/testify/assert"
)

func TestCosignAuthorize(t *testing.T) {
	key, err := crypto.GenerateKey()
	assert.NoError(t, err)
	cosignerAddr := crypto.PubkeyToAddress(key.PublicKey)

	contract := common.HexToAddress("0xc0ffee")
	buyer := common.HexToAddress("0xb0b")
	c := NewCosigner(contract, 1, 300)
	c.setAddress(cosignerAddr)

	ts := int64(1700000000)
	sig, err := SignCosign(key, contract, buyer, 2, cosignerAddr, ts, c.chainId, c.Nonce(buyer))
	assert.NoError(t, err)

	assert.NoError(t, c.authorize(buyer, 2, ts, sig, ts+10))

	// same signature for a different qty must not verify
	assert.Equal(t, schema.ErrInvalidCosignSignature, c.authorize(buyer, 3, ts, sig, ts+10))

	// expired authorization
	assert.Equal(t, schema.ErrTimestampExpired, c.authorize(buyer, 2, ts, sig, ts+301))

	// garbage signature
	assert.Equal(t, schema.ErrInvalidCosignSignature, c.authorize(buyer, 2, ts, []byte{1, 2, 3}, ts))
}

func TestCosignWrongSigner(t *testing.T) {
	key, _ := crypto.GenerateKey()
	impostor, _ := crypto.GenerateKey()
	cosignerAddr := crypto.PubkeyToAddress(key.PublicKey)

	contract := common.HexToAddress("0xc0ffee")
	buyer := common.HexToAddress("0xb0b")
	c := NewCosigner(contract, 1, 300)
	c.setAddress(cosignerAddr)

	ts := int64(1700000000)
	sig, err := SignCosign(impostor, contract, buyer, 1, cosignerAddr, ts, c.chainId, 0)
	assert.NoError(t, err)
	assert.Equal(t, schema.ErrInvalidCosignSignature, c.authorize(buyer, 1, ts, sig, ts))
}

func TestCosignNonceReplay(t *testing.T) {
	key, _ := crypto.GenerateKey()
	cosignerAddr := crypto.PubkeyToAddress(key.PublicKey)

	contract := common.HexToAddress("0xc0ffee")
	buyer := common.HexToAddress("0xb0b")
	c := NewCosigner(contract, 1, 300)
	c.setAddress(cosignerAddr)

	ts := int64(1700000000)
	sig, err := SignCosign(key, contract, buyer, 1, cosignerAddr, ts, c.chainId, c.Nonce(buyer))
	assert.NoError(t, err)
	assert.NoError(t, c.authorize(buyer, 1, ts, sig, ts))

	// once the nonce advances the old authorization is dead
	c.bumpNonce(buyer)
	assert.Equal(t, schema.ErrInvalidCosignSignature, c.authorize(buyer, 1, ts, sig, ts))

	sig2, err := SignCosign(key, contract, buyer, 1, cosignerAddr, ts, c.chainId, c.Nonce(buyer))
	assert.NoError(t, err)
	assert.NoError(t, c.authorize(buyer, 1, ts, sig2, ts))
}
