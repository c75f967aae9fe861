package launchpad

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/miaswap/launchpad/schema"
)

// AddressLeaf is keccak256 over the raw 20 address bytes, matching how
// whitelist trees are committed on chain.
func AddressLeaf(addr common.Address) common.Hash {
	return crypto.Keccak256Hash(addr.Bytes())
}

// hashPair hashes two digests in sorted numeric order, so proofs do not need
// left/right direction flags.
func hashPair(a, b common.Hash) common.Hash {
	if bytes.Compare(a.Bytes(), b.Bytes()) > 0 {
		a, b = b, a
	}
	return crypto.Keccak256Hash(a.Bytes(), b.Bytes())
}

// VerifyProof recomputes the root from leaf and the proof siblings and
// compares it against root. Callers special-case a zero root ("open to all")
// before calling.
func VerifyProof(root, leaf common.Hash, proof []common.Hash) bool {
	computed := leaf
	for _, sibling := range proof {
		computed = hashPair(computed, sibling)
	}
	return computed == root
}

// MerkleTree is the service-side committed whitelist: leaves in insertion
// order, odd nodes promoted to the next layer unhashed.
type MerkleTree struct {
	layers    [][]common.Hash // layers[0] = leaves
	leafIndex map[common.Hash]int
}

func NewMerkleTree(addrs []common.Address) *MerkleTree {
	leaves := make([]common.Hash, 0, len(addrs))
	leafIndex := make(map[common.Hash]int, len(addrs))
	for _, addr := range addrs {
		leaf := AddressLeaf(addr)
		if _, ok := leafIndex[leaf]; ok {
			continue
		}
		leafIndex[leaf] = len(leaves)
		leaves = append(leaves, leaf)
	}

	layers := [][]common.Hash{leaves}
	for level := leaves; len(level) > 1; {
		next := make([]common.Hash, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 == len(level) {
				next = append(next, level[i])
				continue
			}
			next = append(next, hashPair(level[i], level[i+1]))
		}
		layers = append(layers, next)
		level = next
	}
	return &MerkleTree{layers: layers, leafIndex: leafIndex}
}

func (t *MerkleTree) Root() common.Hash {
	top := t.layers[len(t.layers)-1]
	if len(top) == 0 {
		return common.Hash{}
	}
	return top[0]
}

// Proof returns the sibling path for addr, or ErrInvalidProof if the address
// was never committed.
func (t *MerkleTree) Proof(addr common.Address) ([]common.Hash, error) {
	idx, ok := t.leafIndex[AddressLeaf(addr)]
	if !ok {
		return nil, schema.ErrInvalidProof
	}

	proof := make([]common.Hash, 0, len(t.layers))
	for _, layer := range t.layers[:len(t.layers)-1] {
		sibling := idx ^ 1
		if sibling < len(layer) {
			proof = append(proof, layer[sibling])
		}
		idx /= 2
	}
	return proof, nil
}
