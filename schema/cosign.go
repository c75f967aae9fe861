package schema

import (
	"encoding/binary"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// CosignMessage assembles the canonical byte message a cosigner commits to:
// fixed order, fixed-width encoding. Tampering with any field produces a
// different digest and therefore a signer mismatch.
func CosignMessage(contract, buyer common.Address, qty uint32, cosigner common.Address, timestamp int64, chainId *big.Int, nonce uint64) []byte {
	buf := make([]byte, 0, 20+20+4+20+8+32+32)
	buf = append(buf, contract.Bytes()...)
	buf = append(buf, buyer.Bytes()...)
	buf = binary.BigEndian.AppendUint32(buf, qty)
	buf = append(buf, cosigner.Bytes()...)
	buf = binary.BigEndian.AppendUint64(buf, uint64(timestamp))
	buf = append(buf, common.BigToHash(chainId).Bytes()...)
	buf = append(buf, common.BigToHash(new(big.Int).SetUint64(nonce)).Bytes()...)
	return crypto.Keccak256(buf)
}
