package indexer

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/util"
	"go.etcd.io/bbolt"
)

// Entities materialized from the contract notifications. Bounty ids and
// pseudonyms are stored lowercased, see Indexer.
type (
	// Commitment is the latest declared intent of a hacker.
	Commitment struct {
		Hacker    util.Uint160 `json:"hacker"`
		BountyIDs []string     `json:"bounty_ids"`
		IPFSHash  string       `json:"ipfs_hash"`
		Tx        util.Uint256 `json:"tx"`
	}

	// Bounty is the aggregated funding state of a single bounty id.
	Bounty struct {
		ID        string         `json:"id"`
		PrizePool int64          `json:"prize_pool"`
		Sponsors  []util.Uint160 `json:"sponsors"`
	}

	// Bribe is a single payment addressed to a hacker.
	Bribe struct {
		Briber   util.Uint160 `json:"briber"`
		Hacker   util.Uint160 `json:"hacker"`
		BountyID string       `json:"bounty_id"`
		Amount   int64        `json:"amount"`
		Tx       util.Uint256 `json:"tx"`
	}

	// Snapshot is a commitment relayed from another chain.
	Snapshot struct {
		Hacker   util.Uint160 `json:"hacker"`
		BountyID string       `json:"bounty_id"`
		Tx       util.Uint256 `json:"tx"`
	}

	// OutboundMessage is a cross-chain payload handed to the LayerZero
	// endpoint.
	OutboundMessage struct {
		DstChainID int64        `json:"dst_chain_id"`
		Payload    []byte       `json:"payload"`
		Tx         util.Uint256 `json:"tx"`
	}
)

// EventID is the replay-safe identity of a single contract notification: the
// hash of the carrier transaction plus the position of the notification among
// the contract's notifications of that transaction.
type EventID struct {
	Tx    util.Uint256
	Index int
}

func (id EventID) bytes() []byte {
	res := make([]byte, util.Uint256Size+4)
	copy(res, id.Tx.BytesBE())
	binary.BigEndian.PutUint32(res[util.Uint256Size:], uint32(id.Index))
	return res
}

var (
	bucketCommitments = []byte("commitments")
	bucketBounties    = []byte("bounties")
	bucketBribes      = []byte("bribes")
	bucketSnapshots   = []byte("snapshots")
	bucketOutbound    = []byte("outbound")
	bucketProcessed   = []byte("processed")
)

// Store persists indexed entities in a bbolt database. All mutators are
// keyed by EventID and applied at most once, so event replay after a restart
// or resubscription is harmless.
type Store struct {
	db *bbolt.DB
}

// NewStore opens a bbolt database at the given path, creating it and the
// bucket layout if needed.
func NewStore(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open database %q: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{
			bucketCommitments, bucketBounties, bucketBribes,
			bucketSnapshots, bucketOutbound, bucketProcessed,
		} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// apply runs f in a write transaction unless the event was already processed,
// and marks the event as processed in the same transaction.
func (s *Store) apply(id EventID, f func(tx *bbolt.Tx) error) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		processed := tx.Bucket(bucketProcessed)
		key := id.bytes()
		if processed.Get(key) != nil {
			return nil
		}
		if err := f(tx); err != nil {
			return err
		}
		return processed.Put(key, []byte{})
	})
}

// PutCommitment overwrites the commitment of the hacker.
func (s *Store) PutCommitment(id EventID, c Commitment) error {
	return s.apply(id, func(tx *bbolt.Tx) error {
		data, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("marshal commitment: %w", err)
		}
		return tx.Bucket(bucketCommitments).Put(c.Hacker.BytesBE(), data)
	})
}

// AddSponsorship accumulates a deposit into the bounty aggregate, creating it
// on the first deposit.
func (s *Store) AddSponsorship(id EventID, bountyID string, sponsor util.Uint160, amount int64) error {
	return s.apply(id, func(tx *bbolt.Tx) error {
		bkt := tx.Bucket(bucketBounties)

		b := Bounty{ID: bountyID}
		if data := bkt.Get([]byte(bountyID)); data != nil {
			if err := json.Unmarshal(data, &b); err != nil {
				return fmt.Errorf("unmarshal bounty %q: %w", bountyID, err)
			}
		}

		b.PrizePool += amount
		b.Sponsors = append(b.Sponsors, sponsor)

		data, err := json.Marshal(b)
		if err != nil {
			return fmt.Errorf("marshal bounty %q: %w", bountyID, err)
		}
		return bkt.Put([]byte(bountyID), data)
	})
}

// AddBribe appends the bribe to the list of its hacker.
func (s *Store) AddBribe(id EventID, b Bribe) error {
	return s.apply(id, func(tx *bbolt.Tx) error {
		bkt := tx.Bucket(bucketBribes)
		key := b.Hacker.BytesBE()

		var list []Bribe
		if data := bkt.Get(key); data != nil {
			if err := json.Unmarshal(data, &list); err != nil {
				return fmt.Errorf("unmarshal bribes of %s: %w", b.Hacker.StringLE(), err)
			}
		}

		list = append(list, b)

		data, err := json.Marshal(list)
		if err != nil {
			return fmt.Errorf("marshal bribes of %s: %w", b.Hacker.StringLE(), err)
		}
		return bkt.Put(key, data)
	})
}

// AddSnapshot records a relayed cross-chain commitment.
func (s *Store) AddSnapshot(id EventID, snap Snapshot) error {
	return s.apply(id, func(tx *bbolt.Tx) error {
		data, err := json.Marshal(snap)
		if err != nil {
			return fmt.Errorf("marshal snapshot: %w", err)
		}
		return tx.Bucket(bucketSnapshots).Put(id.bytes(), data)
	})
}

// AddOutbound records a payload handed to the LayerZero endpoint.
func (s *Store) AddOutbound(id EventID, m OutboundMessage) error {
	return s.apply(id, func(tx *bbolt.Tx) error {
		data, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("marshal outbound message: %w", err)
		}
		return tx.Bucket(bucketOutbound).Put(id.bytes(), data)
	})
}

// Commitment returns the stored commitment of the hacker, or false if the
// hacker has never committed.
func (s *Store) Commitment(hacker util.Uint160) (Commitment, bool, error) {
	var (
		c  Commitment
		ok bool
	)
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketCommitments).Get(hacker.BytesBE())
		if data == nil {
			return nil
		}
		ok = true
		return json.Unmarshal(data, &c)
	})
	return c, ok, err
}

// Bounty returns the stored aggregate of the bounty id, or false if it was
// never sponsored. The id is matched as stored, i.e. lowercased.
func (s *Store) Bounty(id string) (Bounty, bool, error) {
	var (
		b  Bounty
		ok bool
	)
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketBounties).Get([]byte(id))
		if data == nil {
			return nil
		}
		ok = true
		return json.Unmarshal(data, &b)
	})
	return b, ok, err
}

// Bribes returns every stored bribe addressed to the hacker in arrival order.
func (s *Store) Bribes(hacker util.Uint160) ([]Bribe, error) {
	var list []Bribe
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketBribes).Get(hacker.BytesBE())
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &list)
	})
	return list, err
}

// ForEachBounty calls f for every stored bounty aggregate in id order.
func (s *Store) ForEachBounty(f func(Bounty) error) error {
	return s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketBounties).ForEach(func(_, data []byte) error {
			var b Bounty
			if err := json.Unmarshal(data, &b); err != nil {
				return err
			}
			return f(b)
		})
	})
}

// ForEachCommitment calls f for every stored commitment.
func (s *Store) ForEachCommitment(f func(Commitment) error) error {
	return s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketCommitments).ForEach(func(_, data []byte) error {
			var c Commitment
			if err := json.Unmarshal(data, &c); err != nil {
				return err
			}
			return f(c)
		})
	})
}

// ForEachSnapshot calls f for every stored cross-chain snapshot in event
// order.
func (s *Store) ForEachSnapshot(f func(Snapshot) error) error {
	return s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSnapshots).ForEach(func(_, data []byte) error {
			var snap Snapshot
			if err := json.Unmarshal(data, &snap); err != nil {
				return err
			}
			return f(snap)
		})
	})
}
