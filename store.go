package launchpad

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"os"
	"path"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/miaswap/launchpad/schema"
	bolt "go.etcd.io/bbolt"
)

const (
	boltAllocSize = 8 * 1024 * 1024
	boltName      = "launchpad.db"
)

// Store keeps the engine snapshot and the cosign nonce mirror in bolt, so a
// restart resumes from the last flushed state.
type Store struct {
	BoltDb *bolt.DB
}

func NewStore(boltDirPath string) (*Store, error) {
	if len(boltDirPath) == 0 {
		return nil, errors.New("boltDb dir path can not null")
	}
	if err := os.MkdirAll(boltDirPath, os.ModePerm); err != nil {
		return nil, err
	}

	Db, err := bolt.Open(path.Join(boltDirPath, boltName), 0660, &bolt.Options{Timeout: 2 * time.Second, InitialMmapSize: 10e6})
	if err != nil {
		if err == bolt.ErrTimeout {
			return nil, errors.New("cannot obtain database lock, database may be in use by another process")
		}
		return nil, err
	}
	Db.AllocSize = boltAllocSize
	s := &Store{
		BoltDb: Db,
	}
	if err := s.BoltDb.Update(func(tx *bolt.Tx) error {
		bucketNames := []string{
			schema.EngineStateBucket,
			schema.CosignNonceBucket,
		}
		return createBuckets(tx, bucketNames)
	}); err != nil {
		return nil, err
	}
	return s, nil
}

func createBuckets(tx *bolt.Tx, buckets []string) error {
	for _, bucket := range buckets {
		if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) put(bucket, key string, value []byte) error {
	return s.BoltDb.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(bucket))
		return bkt.Put([]byte(key), value)
	})
}

func (s *Store) get(bucket, key string) (data []byte, err error) {
	err = s.BoltDb.View(func(tx *bolt.Tx) error {
		data = tx.Bucket([]byte(bucket)).Get([]byte(key))
		if data == nil {
			err = schema.ErrNotExist
			return err
		}
		return nil
	})
	return
}

func (s *Store) SaveEngineSnapshot(snap schema.EngineSnapshot) error {
	by, err := json.Marshal(&snap)
	if err != nil {
		return err
	}
	return s.put(schema.EngineStateBucket, schema.EngineStateKey, by)
}

func (s *Store) LoadEngineSnapshot() (snap schema.EngineSnapshot, err error) {
	data, err := s.get(schema.EngineStateBucket, schema.EngineStateKey)
	if err != nil {
		return
	}
	err = json.Unmarshal(data, &snap)
	return
}

func (s *Store) SaveCosignNonce(buyer common.Address, nonce uint64) error {
	val := make([]byte, 8)
	binary.BigEndian.PutUint64(val, nonce)
	return s.put(schema.CosignNonceBucket, buyer.Hex(), val)
}

func (s *Store) LoadCosignNonce(buyer common.Address) (uint64, error) {
	data, err := s.get(schema.CosignNonceBucket, buyer.Hex())
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(data), nil
}

func (s *Store) Close() error {
	return s.BoltDb.Close()
}
