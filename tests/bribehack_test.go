package tests

import (
	"path"
	"testing"

	"github.com/bribehack/bribehack-contract/rpc/bribehack"
	istorage "github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const (
	bribehackPath  = "../contracts/bribehack"
	lzEndpointPath = "../internal/testcontracts/lzendpoint"
)

func deployLZEndpointMock(t *testing.T, e *neotest.Executor) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, lzEndpointPath, path.Join(lzEndpointPath, "config.yml"))
	e.DeployContract(t, c, nil)
	return c.Hash
}

func deployBribehackContract(t *testing.T, e *neotest.Executor, endpoint util.Uint160) util.Uint160 {
	args := make([]any, 1)
	args[0] = endpoint

	c := neotest.CompileFile(t, e.CommitteeHash, bribehackPath, path.Join(bribehackPath, "config.yml"))
	e.DeployContract(t, c, args)
	return c.Hash
}

func newBribehackInvoker(t *testing.T) (*neotest.ContractInvoker, *neotest.ContractInvoker) {
	e := newExecutor(t)

	hEndpoint := deployLZEndpointMock(t, e)
	hBribehack := deployBribehackContract(t, e, hEndpoint)

	return e.CommitteeInvoker(hBribehack), e.CommitteeInvoker(hEndpoint)
}

func gasInvoker(t *testing.T, c *neotest.ContractInvoker) *neotest.ContractInvoker {
	gasHash, err := c.Chain.GetNativeContractScriptHash(nativenames.Gas)
	require.NoError(t, err)
	return c.CommitteeInvoker(gasHash)
}

func gasBalance(t *testing.T, c *neotest.ContractInvoker, acc util.Uint160) int64 {
	s, err := gasInvoker(t, c).TestInvoke(t, "balanceOf", acc)
	require.NoError(t, err)
	return s.Pop().BigInt().Int64()
}

// singleNotification returns the payload of the only notification with the
// given name produced by the transaction.
func singleNotification(t *testing.T, c *neotest.ContractInvoker, h util.Uint256, name string) *stackitem.Array {
	aer := c.CheckHalt(t, h)

	var item *stackitem.Array
	for _, ev := range aer.Events {
		if ev.Name != name {
			continue
		}
		require.Nil(t, item, "more than one %s notification", name)
		item = ev.Item
	}
	require.NotNil(t, item, "missing %s notification", name)
	return item
}

func TestBribehack_Deploy(t *testing.T) {
	e := newExecutor(t)
	hEndpoint := deployLZEndpointMock(t, e)

	c := neotest.CompileFile(t, e.CommitteeHash, bribehackPath, path.Join(bribehackPath, "config.yml"))

	e.DeployContractCheckFAULT(t, c, []any{util.Uint160{}}, "invalid LayerZero endpoint")
	e.DeployContractCheckFAULT(t, c, []any{[]byte{0xde, 0xad}}, "invalid LayerZero endpoint")

	e.DeployContract(t, c, []any{hEndpoint})
}

func TestBribehack_CommitToBounties(t *testing.T) {
	c, _ := newBribehackInvoker(t)

	hacker := c.NewAccount(t)
	hackerHash := hacker.ScriptHash()
	cHacker := c.WithSigners(hacker)

	t.Run("no bounty ids", func(t *testing.T) {
		cHacker.InvokeFail(t, "no bounty ids provided", "commitToBounties",
			hackerHash, []any{}, "", "")
	})

	t.Run("without witness", func(t *testing.T) {
		c.InvokeFail(t, "owner witness check failed", "commitToBounties",
			hackerHash, []any{"dao-hack"}, "", "")
	})

	tx := cHacker.Invoke(t, stackitem.Null{}, "commitToBounties",
		hackerHash, []any{"dao-hack", "bridge-drain"}, "zero.cool.eth", "QmStrategy")

	var ev bribehack.NewCommitmentEvent
	require.NoError(t, ev.FromStackItem(singleNotification(t, c, tx, "NewCommitment")))
	require.Equal(t, hackerHash, ev.Hacker)
	require.Equal(t, []string{"dao-hack", "bridge-drain"}, ev.BountyIds)
	require.Equal(t, "QmStrategy", ev.IpfsHash)

	s, err := c.TestInvoke(t, "getCommitment", hackerHash)
	require.NoError(t, err)

	var commitment bribehack.BribehackCommitment
	require.NoError(t, commitment.FromStackItem(s.Pop().Item()))
	require.Equal(t, hackerHash, commitment.Hacker)
	require.Equal(t, []string{"dao-hack", "bridge-drain"}, commitment.BountyIDs)
	require.Equal(t, "zero.cool.eth", commitment.ENSPseudonym)
	require.Equal(t, "QmStrategy", commitment.IPFSHash)
	require.Positive(t, commitment.Timestamp.Sign())

	t.Run("resubmission overwrites", func(t *testing.T) {
		cHacker.Invoke(t, stackitem.Null{}, "commitToBounties",
			hackerHash, []any{"oracle-spoof"}, "", "")

		s, err := c.TestInvoke(t, "getCommitment", hackerHash)
		require.NoError(t, err)

		var commitment bribehack.BribehackCommitment
		require.NoError(t, commitment.FromStackItem(s.Pop().Item()))
		require.Equal(t, []string{"oracle-spoof"}, commitment.BountyIDs)
		require.Equal(t, "", commitment.ENSPseudonym)
	})

	t.Run("throttle counts live commitment", func(t *testing.T) {
		// One slot is taken by the commitment stored above.
		cHacker.InvokeFail(t, "exceeds max commitments: current 1, attempted 3, max 3",
			"commitToBounties", hackerHash, []any{"a", "b", "c"}, "", "")

		cHacker.Invoke(t, stackitem.Null{}, "commitToBounties",
			hackerHash, []any{"a", "b"}, "", "")
	})

	t.Run("full commitment locks the hacker", func(t *testing.T) {
		locked := c.NewAccount(t)
		lockedHash := locked.ScriptHash()
		cLocked := c.WithSigners(locked)

		cLocked.Invoke(t, stackitem.Null{}, "commitToBounties",
			lockedHash, []any{"a", "b", "c"}, "", "")
		cLocked.InvokeFail(t, "exceeds max commitments: current 3, attempted 1, max 3",
			"commitToBounties", lockedHash, []any{"d"}, "", "")
	})
}

func TestBribehack_SponsorBounty(t *testing.T) {
	c, _ := newBribehackInvoker(t)

	alice := c.NewAccount(t)
	bob := c.NewAccount(t)
	aliceHash := alice.ScriptHash()
	bobHash := bob.ScriptHash()
	cAlice := c.WithSigners(alice)
	cBob := c.WithSigners(bob)

	t.Run("zero value", func(t *testing.T) {
		cAlice.InvokeFail(t, "zero sponsorship value", "sponsorBounty", aliceHash, "dao-hack", 0)
		cAlice.InvokeFail(t, "zero sponsorship value", "sponsorBounty", aliceHash, "dao-hack", -5)
	})

	t.Run("without witness", func(t *testing.T) {
		cAlice.InvokeFail(t, "owner witness check failed", "sponsorBounty", bobHash, "dao-hack", 10)
	})

	tx := cAlice.Invoke(t, stackitem.Null{}, "sponsorBounty", aliceHash, "dao-hack", 500)

	var ev bribehack.BountySponsoredEvent
	require.NoError(t, ev.FromStackItem(singleNotification(t, c, tx, "BountySponsored")))
	require.Equal(t, "dao-hack", ev.BountyId)
	require.Equal(t, aliceHash, ev.Sponsor)
	require.EqualValues(t, 500, ev.Amount.Int64())

	cBob.Invoke(t, stackitem.Null{}, "sponsorBounty", bobHash, "dao-hack", 300)
	cAlice.Invoke(t, stackitem.Null{}, "sponsorBounty", aliceHash, "dao-hack", 200)

	s, err := c.TestInvoke(t, "getBounty", "dao-hack")
	require.NoError(t, err)

	var bounty bribehack.BribehackBounty
	require.NoError(t, bounty.FromStackItem(s.Pop().Item()))
	require.Equal(t, "dao-hack", bounty.BountyID)
	require.EqualValues(t, 1000, bounty.PrizePool.Int64())
	require.Equal(t, []util.Uint160{aliceHash, bobHash, aliceHash}, bounty.Sponsors)

	// Deposits stay on the contract account.
	require.EqualValues(t, 1000, gasBalance(t, c, c.Hash))

	t.Run("unknown bounty reads back empty", func(t *testing.T) {
		s, err := c.TestInvoke(t, "getBounty", "never-sponsored")
		require.NoError(t, err)

		var bounty bribehack.BribehackBounty
		require.NoError(t, bounty.FromStackItem(s.Pop().Item()))
		require.Equal(t, "", bounty.BountyID)
		require.EqualValues(t, 0, bounty.PrizePool.Int64())
		require.Empty(t, bounty.Sponsors)
	})
}

func TestBribehack_BribeHacker(t *testing.T) {
	c, _ := newBribehackInvoker(t)

	briber := c.NewAccount(t)
	hacker := c.NewAccount(t)
	briberHash := briber.ScriptHash()
	hackerHash := hacker.ScriptHash()
	cBriber := c.WithSigners(briber)

	t.Run("zero value", func(t *testing.T) {
		cBriber.InvokeFail(t, "zero bribe value", "bribeHacker", briberHash, hackerHash, "dao-hack", 0)
	})

	t.Run("without witness", func(t *testing.T) {
		c.InvokeFail(t, "owner witness check failed", "bribeHacker", briberHash, hackerHash, "dao-hack", 10)
	})

	// Neither a commitment of the hacker nor a bounty record is required.
	tx := cBriber.Invoke(t, stackitem.Null{}, "bribeHacker", briberHash, hackerHash, "dao-hack", 100)

	var ev bribehack.HackerBribedEvent
	require.NoError(t, ev.FromStackItem(singleNotification(t, c, tx, "HackerBribed")))
	require.Equal(t, briberHash, ev.Briber)
	require.Equal(t, hackerHash, ev.Hacker)
	require.Equal(t, "dao-hack", ev.BountyId)
	require.EqualValues(t, 100, ev.Amount.Int64())

	cBriber.Invoke(t, stackitem.Null{}, "bribeHacker", briberHash, hackerHash, "oracle-spoof", 250)

	s, err := c.TestInvoke(t, "getBribes", hackerHash)
	require.NoError(t, err)

	items, ok := s.Pop().Item().Value().([]stackitem.Item)
	require.True(t, ok)
	require.Len(t, items, 2)

	var first, second bribehack.BribehackBribe
	require.NoError(t, first.FromStackItem(items[0]))
	require.NoError(t, second.FromStackItem(items[1]))

	require.Equal(t, briberHash, first.Briber)
	require.Equal(t, hackerHash, first.Hacker)
	require.Equal(t, "dao-hack", first.BountyID)
	require.EqualValues(t, 100, first.Amount.Int64())
	require.Positive(t, first.Timestamp.Sign())

	require.Equal(t, "oracle-spoof", second.BountyID)
	require.EqualValues(t, 250, second.Amount.Int64())

	// Bribes never create or touch bounty records.
	s, err = c.TestInvoke(t, "getBounty", "dao-hack")
	require.NoError(t, err)

	var bounty bribehack.BribehackBounty
	require.NoError(t, bounty.FromStackItem(s.Pop().Item()))
	require.Equal(t, "", bounty.BountyID)
	require.EqualValues(t, 0, bounty.PrizePool.Int64())

	require.EqualValues(t, 350, gasBalance(t, c, c.Hash))
}

func TestBribehack_GetCommitmentUnknown(t *testing.T) {
	c, _ := newBribehackInvoker(t)

	s, err := c.TestInvoke(t, "getCommitment", c.NewAccount(t).ScriptHash())
	require.NoError(t, err)

	fields, ok := s.Pop().Item().Value().([]stackitem.Item)
	require.True(t, ok)
	require.Len(t, fields, 5)

	owner, err := fields[0].TryBytes()
	require.NoError(t, err)
	require.Empty(t, owner)

	ids, ok := fields[1].Value().([]stackitem.Item)
	require.True(t, ok)
	require.Empty(t, ids)

	for _, i := range []int{2, 3} {
		b, err := fields[i].TryBytes()
		require.NoError(t, err)
		require.Empty(t, b)
	}

	ts, err := fields[4].TryInteger()
	require.NoError(t, err)
	require.Zero(t, ts.Sign())
}

func TestBribehack_GetBribesUnknown(t *testing.T) {
	c, _ := newBribehackInvoker(t)

	s, err := c.TestInvoke(t, "getBribes", c.NewAccount(t).ScriptHash())
	require.NoError(t, err)

	items, ok := s.Pop().Item().Value().([]stackitem.Item)
	require.True(t, ok)
	require.Empty(t, items)
}

func TestBribehack_IterateBounties(t *testing.T) {
	c, _ := newBribehackInvoker(t)

	sponsor := c.NewAccount(t)
	sponsorHash := sponsor.ScriptHash()
	cSponsor := c.WithSigners(sponsor)

	for i, id := range []string{"bridge-drain", "dao-hack", "oracle-spoof"} {
		cSponsor.Invoke(t, stackitem.Null{}, "sponsorBounty", sponsorHash, id, 100*(i+1))
	}

	s, err := c.TestInvoke(t, "iterateBounties")
	require.NoError(t, err)

	iter, ok := s.Pop().Value().(*istorage.Iterator)
	require.True(t, ok)

	items := iteratorToArray(iter)
	require.Len(t, items, 3)

	// Records come back in storage key order.
	expected := map[string]int64{"bridge-drain": 100, "dao-hack": 200, "oracle-spoof": 300}
	for i, want := range []string{"bridge-drain", "dao-hack", "oracle-spoof"} {
		var bounty bribehack.BribehackBounty
		require.NoError(t, bounty.FromStackItem(items[i]))
		require.Equal(t, want, bounty.BountyID)
		require.Equal(t, expected[want], bounty.PrizePool.Int64())
		require.Equal(t, []util.Uint160{sponsorHash}, bounty.Sponsors)
	}
}

func TestBribehack_SendCommitCrossChain(t *testing.T) {
	c, ep := newBribehackInvoker(t)

	hacker := c.NewAccount(t)
	hackerHash := hacker.ScriptHash()
	cHacker := c.WithSigners(hacker)

	t.Run("without witness", func(t *testing.T) {
		c.InvokeFail(t, "owner witness check failed", "sendCommitCrossChain",
			hackerHash, 101, "dao-hack", 0)
	})

	expectedPayload, err := stackitem.Serialize(stackitem.NewStruct([]stackitem.Item{
		stackitem.NewByteArray(hackerHash.BytesBE()),
		stackitem.NewByteArray([]byte("dao-hack")),
	}))
	require.NoError(t, err)

	tx := cHacker.Invoke(t, stackitem.Null{}, "sendCommitCrossChain",
		hackerHash, 101, "dao-hack", 25)

	var ev bribehack.LZMessageSentEvent
	require.NoError(t, ev.FromStackItem(singleNotification(t, c, tx, "LZMessageSent")))
	require.EqualValues(t, 101, ev.DstChainId.Int64())
	require.Equal(t, c.Hash.BytesBE(), ev.Destination)
	require.Equal(t, expectedPayload, ev.Payload)

	// The endpoint saw the same message and received the relay fee.
	s, err := ep.TestInvoke(t, "lastCall")
	require.NoError(t, err)

	fields, ok := s.Pop().Item().Value().([]stackitem.Item)
	require.True(t, ok)
	require.Len(t, fields, 6)

	dst, err := fields[0].TryInteger()
	require.NoError(t, err)
	require.EqualValues(t, 101, dst.Int64())

	relayed, err := fields[2].TryBytes()
	require.NoError(t, err)
	require.Equal(t, expectedPayload, relayed)

	refund, err := fields[3].TryBytes()
	require.NoError(t, err)
	require.Equal(t, hackerHash.BytesBE(), refund)

	require.EqualValues(t, 25, gasBalance(t, c, ep.Hash))

	t.Run("zero relay fee", func(t *testing.T) {
		cHacker.Invoke(t, stackitem.Null{}, "sendCommitCrossChain",
			hackerHash, 102, "dao-hack", 0)

		s, err := ep.TestInvoke(t, "callCount")
		require.NoError(t, err)
		require.EqualValues(t, 2, s.Pop().BigInt().Int64())
		require.EqualValues(t, 25, gasBalance(t, c, ep.Hash))
	})

	t.Run("endpoint failure reverts", func(t *testing.T) {
		ep.Invoke(t, stackitem.Null{}, "setFailing", true)
		cHacker.InvokeFail(t, "endpoint rejected the message", "sendCommitCrossChain",
			hackerHash, 103, "dao-hack", 0)
		ep.Invoke(t, stackitem.Null{}, "setFailing", false)

		s, err := ep.TestInvoke(t, "callCount")
		require.NoError(t, err)
		require.EqualValues(t, 2, s.Pop().BigInt().Int64())
	})
}

func TestBribehack_LzReceive(t *testing.T) {
	c, ep := newBribehackInvoker(t)

	hacker := c.NewAccount(t)
	hackerHash := hacker.ScriptHash()

	payload, err := stackitem.Serialize(stackitem.NewStruct([]stackitem.Item{
		stackitem.NewByteArray(hackerHash.BytesBE()),
		stackitem.NewByteArray([]byte("dao-hack")),
	}))
	require.NoError(t, err)

	t.Run("not from endpoint", func(t *testing.T) {
		c.InvokeFail(t, "lzReceive must be called by the endpoint", "lzReceive",
			101, []byte{0xca, 0xfe}, 1, payload)
	})

	tx := ep.Invoke(t, stackitem.Null{}, "deliver", c.Hash, 101, []byte{0xca, 0xfe}, 1, payload)

	var ev bribehack.CrossChainSnapshotEvent
	require.NoError(t, ev.FromStackItem(singleNotification(t, c, tx, "CrossChainSnapshot")))
	require.Equal(t, hackerHash, ev.Hacker)
	require.Equal(t, "dao-hack", ev.BountyId)

	t.Run("roundtrip", func(t *testing.T) {
		cHacker := c.WithSigners(hacker)
		cHacker.Invoke(t, stackitem.Null{}, "sendCommitCrossChain",
			hackerHash, 5, "bridge-drain", 0)

		s, err := ep.TestInvoke(t, "lastCall")
		require.NoError(t, err)

		fields, ok := s.Pop().Item().Value().([]stackitem.Item)
		require.True(t, ok)

		relayed, err := fields[2].TryBytes()
		require.NoError(t, err)

		tx := ep.Invoke(t, stackitem.Null{}, "deliver", c.Hash, 5, []byte{}, 2, relayed)

		var ev bribehack.CrossChainSnapshotEvent
		require.NoError(t, ev.FromStackItem(singleNotification(t, c, tx, "CrossChainSnapshot")))
		require.Equal(t, hackerHash, ev.Hacker)
		require.Equal(t, "bridge-drain", ev.BountyId)
	})
}

func TestBribehack_Version(t *testing.T) {
	c, _ := newBribehackInvoker(t)
	c.Invoke(t, stackitem.Make(1_000), "version")
}

func TestBribehack_Update(t *testing.T) {
	c, _ := newBribehackInvoker(t)

	notCommittee := c.WithSigners(c.NewAccount(t))
	notCommittee.InvokeFail(t, "only committee can update contract", "update",
		[]byte{}, []byte{}, nil)
}
