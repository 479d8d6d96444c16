package indexer

import (
	"math/big"
	"path/filepath"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestIndexer(t *testing.T) (*Indexer, *Store) {
	s, err := NewStore(filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})

	return New(zaptest.NewLogger(t), s, util.Uint160{0xbb}), s
}

func eventID(seed byte, index int) EventID {
	return EventID{Tx: util.Uint256{seed}, Index: index}
}

func hashItem(h util.Uint160) stackitem.Item {
	return stackitem.NewByteArray(h.BytesBE())
}

func commitmentItem(hacker util.Uint160, ids []string, ipfsHash string) *stackitem.Array {
	idItems := make([]stackitem.Item, len(ids))
	for i := range ids {
		idItems[i] = stackitem.Make(ids[i])
	}
	return stackitem.NewArray([]stackitem.Item{
		hashItem(hacker),
		stackitem.NewArray(idItems),
		stackitem.Make(ipfsHash),
	})
}

func TestIndexerCommitment(t *testing.T) {
	x, s := newTestIndexer(t)

	hacker := util.Uint160{1}

	require.NoError(t, x.Handle(eventID(1, 0), "NewCommitment",
		commitmentItem(hacker, []string{"DAO-Hack", "Bridge-Drain"}, "QmStrategy")))

	c, ok, err := s.Commitment(hacker)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []string{"dao-hack", "bridge-drain"}, c.BountyIDs)
	require.Equal(t, "QmStrategy", c.IPFSHash)
	require.Equal(t, util.Uint256{1}, c.Tx)

	t.Run("resubmission overwrites", func(t *testing.T) {
		require.NoError(t, x.Handle(eventID(2, 0), "NewCommitment",
			commitmentItem(hacker, []string{"Oracle-Spoof"}, "")))

		c, ok, err := s.Commitment(hacker)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, []string{"oracle-spoof"}, c.BountyIDs)
	})

	t.Run("replay is a no-op", func(t *testing.T) {
		require.NoError(t, x.Handle(eventID(2, 0), "NewCommitment",
			commitmentItem(hacker, []string{"replayed"}, "")))

		c, _, err := s.Commitment(hacker)
		require.NoError(t, err)
		require.Equal(t, []string{"oracle-spoof"}, c.BountyIDs)
	})

	t.Run("unknown hacker", func(t *testing.T) {
		_, ok, err := s.Commitment(util.Uint160{0xff})
		require.NoError(t, err)
		require.False(t, ok)
	})
}

func TestIndexerSponsorship(t *testing.T) {
	x, s := newTestIndexer(t)

	alice := util.Uint160{1}
	bob := util.Uint160{2}

	sponsored := func(id EventID, bountyID string, sponsor util.Uint160, amount int64) {
		require.NoError(t, x.Handle(id, "BountySponsored", stackitem.NewArray([]stackitem.Item{
			stackitem.Make(bountyID),
			hashItem(sponsor),
			stackitem.NewBigInteger(big.NewInt(amount)),
		})))
	}

	// Ids differing only in case fund the same bounty.
	sponsored(eventID(1, 0), "DAO-Hack", alice, 500)
	sponsored(eventID(2, 0), "dao-hack", bob, 300)
	sponsored(eventID(3, 0), "DAO-HACK", alice, 200)

	b, ok, err := s.Bounty("dao-hack")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "dao-hack", b.ID)
	require.EqualValues(t, 1000, b.PrizePool)
	require.Equal(t, []util.Uint160{alice, bob, alice}, b.Sponsors)

	_, ok, err = s.Bounty("DAO-Hack")
	require.NoError(t, err)
	require.False(t, ok, "lookups are by normalized id")

	t.Run("iteration", func(t *testing.T) {
		sponsored(eventID(4, 0), "bridge-drain", bob, 50)

		var ids []string
		require.NoError(t, s.ForEachBounty(func(b Bounty) error {
			ids = append(ids, b.ID)
			return nil
		}))
		require.Equal(t, []string{"bridge-drain", "dao-hack"}, ids)
	})
}

func TestIndexerBribes(t *testing.T) {
	x, s := newTestIndexer(t)

	briber := util.Uint160{1}
	hacker := util.Uint160{2}

	bribed := func(id EventID, bountyID string, amount int64) {
		require.NoError(t, x.Handle(id, "HackerBribed", stackitem.NewArray([]stackitem.Item{
			hashItem(briber),
			hashItem(hacker),
			stackitem.Make(bountyID),
			stackitem.NewBigInteger(big.NewInt(amount)),
		})))
	}

	bribed(eventID(1, 0), "DAO-Hack", 100)
	bribed(eventID(1, 1), "oracle-spoof", 250)

	list, err := s.Bribes(hacker)
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.Equal(t, briber, list[0].Briber)
	require.Equal(t, "dao-hack", list[0].BountyID)
	require.EqualValues(t, 100, list[0].Amount)

	require.Equal(t, "oracle-spoof", list[1].BountyID)
	require.EqualValues(t, 250, list[1].Amount)

	t.Run("nothing for unknown hacker", func(t *testing.T) {
		list, err := s.Bribes(util.Uint160{0xff})
		require.NoError(t, err)
		require.Empty(t, list)
	})
}

func TestIndexerCrossChain(t *testing.T) {
	x, s := newTestIndexer(t)

	hacker := util.Uint160{7}

	require.NoError(t, x.Handle(eventID(1, 0), "CrossChainSnapshot", stackitem.NewArray([]stackitem.Item{
		hashItem(hacker),
		stackitem.Make("Bridge-Drain"),
	})))

	var snaps []Snapshot
	require.NoError(t, s.ForEachSnapshot(func(snap Snapshot) error {
		snaps = append(snaps, snap)
		return nil
	}))
	require.Len(t, snaps, 1)
	require.Equal(t, hacker, snaps[0].Hacker)
	require.Equal(t, "bridge-drain", snaps[0].BountyID)

	require.NoError(t, x.Handle(eventID(1, 1), "LZMessageSent", stackitem.NewArray([]stackitem.Item{
		stackitem.NewBigInteger(big.NewInt(101)),
		stackitem.NewByteArray([]byte{0xbb}),
		stackitem.NewByteArray([]byte("payload")),
	})))
}

func TestIndexerUnknownEvent(t *testing.T) {
	x, _ := newTestIndexer(t)

	require.NoError(t, x.Handle(eventID(1, 0), "Transfer", stackitem.NewArray(nil)))
}

func TestStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")

	s, err := NewStore(path)
	require.NoError(t, err)

	x := New(zaptest.NewLogger(t), s, util.Uint160{0xbb})
	hacker := util.Uint160{1}
	require.NoError(t, x.Handle(eventID(1, 0), "NewCommitment",
		commitmentItem(hacker, []string{"dao-hack"}, "")))
	require.NoError(t, s.Close())

	s, err = NewStore(path)
	require.NoError(t, err)
	defer s.Close()

	c, ok, err := s.Commitment(hacker)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []string{"dao-hack"}, c.BountyIDs)
}
