package launchpad

import (
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/miaswap/launchpad/schema"
	"github.com/stretchr/testify/assert"
)

func testAddrs(n int) []common.Address {
	addrs := make([]common.Address, 0, n)
	for i := 1; i <= n; i++ {
		addrs = append(addrs, common.HexToAddress(fmt.Sprintf("0x%040x", i)))
	}
	return addrs
}

func TestMerkleTreeProofs(t *testing.T) {
	addrs := testAddrs(7) // odd count exercises promoted nodes
	tree := NewMerkleTree(addrs)
	root := tree.Root()
	assert.NotEqual(t, common.Hash{}, root)

	for _, addr := range addrs {
		proof, err := tree.Proof(addr)
		assert.NoError(t, err)
		assert.True(t, VerifyProof(root, AddressLeaf(addr), proof))
	}
}

func TestMerkleTreeSingleLeaf(t *testing.T) {
	addrs := testAddrs(1)
	tree := NewMerkleTree(addrs)
	proof, err := tree.Proof(addrs[0])
	assert.NoError(t, err)
	assert.Len(t, proof, 0)
	assert.Equal(t, AddressLeaf(addrs[0]), tree.Root())
	assert.True(t, VerifyProof(tree.Root(), AddressLeaf(addrs[0]), proof))
}

func TestMerkleTreeNonMember(t *testing.T) {
	addrs := testAddrs(4)
	tree := NewMerkleTree(addrs)

	outsider := common.HexToAddress("0xdead")
	_, err := tree.Proof(outsider)
	assert.Equal(t, schema.ErrInvalidProof, err)

	// a member's proof must not verify for the outsider's leaf
	proof, err := tree.Proof(addrs[0])
	assert.NoError(t, err)
	assert.False(t, VerifyProof(tree.Root(), AddressLeaf(outsider), proof))
}

func TestMerkleTreeTamperedProof(t *testing.T) {
	addrs := testAddrs(8)
	tree := NewMerkleTree(addrs)
	proof, err := tree.Proof(addrs[3])
	assert.NoError(t, err)
	assert.True(t, VerifyProof(tree.Root(), AddressLeaf(addrs[3]), proof))

	proof[0] = common.HexToHash("0x01")
	assert.False(t, VerifyProof(tree.Root(), AddressLeaf(addrs[3]), proof))
}
