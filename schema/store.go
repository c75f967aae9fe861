package schema

var (
	// bucket
	EngineStateBucket = "engine-state-bucket" // key: "engine", val: json.marshal(EngineSnapshot)
	CosignNonceBucket = "cosign-nonce-bucket" // key: wallet address bytes, val: uint64 big-endian
)

const EngineStateKey = "engine"
