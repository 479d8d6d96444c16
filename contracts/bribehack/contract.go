package bribehack

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/bribehack/bribehack-contract/common"
	"github.com/bribehack/bribehack-contract/contracts/bribehack/bribehackconst"
)

type (
	// Commitment is the current declared intent of a single hacker. A new
	// submission overwrites the previous one wholesale, there is no merge.
	Commitment struct {
		// Hacker is the owning account.
		Hacker interop.Hash160
		// BountyIDs the hacker commits to, in submission order.
		BountyIDs []string
		// ENSPseudonym is an optional display name, stored as given.
		ENSPseudonym string
		// IPFSHash is an optional content reference, stored as given.
		IPFSHash string
		// Timestamp of the block that persisted the commitment, ms.
		Timestamp int
	}

	// Bounty is the funding record of a single bounty id. It is created
	// lazily by the first sponsorship and never deleted.
	Bounty struct {
		// BountyID is set only by the first sponsorship with a non-zero
		// pool. A never-sponsored bounty reads back with an empty id.
		BountyID string
		// PrizePool is the cumulative deposited amount.
		PrizePool int
		// Sponsors lists every sponsoring account per deposit, duplicates
		// included.
		Sponsors []interop.Hash160
	}

	// Bribe is an immutable payment record addressed to a hacker. Neither
	// the hacker nor the bounty id is checked for existence.
	Bribe struct {
		Briber   interop.Hash160
		Hacker   interop.Hash160
		BountyID string
		// Amount of GAS paid, in its native precision.
		Amount int
		// Timestamp of the block that persisted the bribe, ms.
		Timestamp int
	}

	// CrossChainCommit is the payload shape relayed through the LayerZero
	// endpoint mock.
	CrossChainCommit struct {
		Hacker   interop.Hash160
		BountyID string
	}
)

const (
	commitmentPrefix = 'c'
	countPrefix      = 'n'
	bountyPrefix     = 'b'
	bribePrefix      = 'r'

	endpointKey = 'e'
)

// nolint:unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		endpoint interop.Hash160
	})

	if len(args.endpoint) != interop.Hash160Len || isZeroHash(args.endpoint) {
		panic(bribehackconst.ErrInvalidEndpoint)
	}

	storage.Put(ctx, endpointKey, args.endpoint)
	runtime.Log("bribehack contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(nefFile, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("bribehack contract updated")
}

// CommitToBounties records the current bounty intent of the hacker,
// discarding any previously stored commitment. Between one and three bounty
// ids are accepted, but the submission size is additionally checked against
// the count left by the previous commitment: a hacker with a stored 3-id
// commitment cannot submit even a single id until the contract is redeployed.
// The throttle limits churn, not storage. It can be invoked only by the
// hacker itself.
//
// It produces NewCommitment notification.
func CommitToBounties(hacker interop.Hash160, bountyIDs []string, ensPseudonym, ipfsHash string) {
	common.CheckOwnerWitness(hacker)

	if len(bountyIDs) == 0 {
		panic(bribehackconst.ErrNoBounties)
	}

	ctx := storage.GetContext()

	current := commitmentCount(ctx, hacker)
	attempted := len(bountyIDs)
	if current+attempted > bribehackconst.MaxCommitments {
		panic(bribehackconst.ErrExceedsMaxCommitments +
			": current " + std.Itoa(current, 10) +
			", attempted " + std.Itoa(attempted, 10) +
			", max " + std.Itoa(bribehackconst.MaxCommitments, 10))
	}

	c := Commitment{
		Hacker:       hacker,
		BountyIDs:    bountyIDs,
		ENSPseudonym: ensPseudonym,
		IPFSHash:     ipfsHash,
		Timestamp:    runtime.GetTime(),
	}

	common.SetSerialized(ctx, commitmentKey(hacker), c)
	storage.Put(ctx, countKey(hacker), attempted)

	runtime.Notify(bribehackconst.NewCommitmentEvent, hacker, bountyIDs, ipfsHash)
}

// SponsorBounty deposits GAS into the prize pool of the given bounty id. The
// first deposit creates the bounty record and stamps its id field; every
// deposit appends the sponsor to the bounty's sponsor list, duplicates
// included. Deposited GAS stays on the contract account, there is no
// withdrawal path. It can be invoked only by the sponsor itself.
//
// It produces BountySponsored notification.
func SponsorBounty(sponsor interop.Hash160, bountyID string, amount int) {
	common.CheckOwnerWitness(sponsor)

	if amount <= 0 {
		panic(bribehackconst.ErrZeroSponsorship)
	}

	ctx := storage.GetContext()

	collect(sponsor, runtime.GetExecutingScriptHash(), amount)

	b := getBounty(ctx, bountyID)
	// Zero pool is the only marker of a fresh record: zero-valued deposits
	// cannot pass the guard above, so the two states are indistinguishable
	// and the id must be written exactly here.
	if b.PrizePool == 0 {
		b.BountyID = bountyID
	}
	b.Sponsors = append(b.Sponsors, sponsor)
	b.PrizePool += amount

	common.SetSerialized(ctx, bountyKey(bountyID), b)

	runtime.Notify(bribehackconst.BountySponsoredEvent, bountyID, sponsor, amount)
}

// BribeHacker pays GAS to the contract account in the name of the given
// hacker to nudge them towards the given bounty id. Neither the hacker's
// commitment nor the bounty record is required to exist, and the bribe never
// creates a bounty record. The paid GAS is not forwarded to the hacker:
// acceptance and payout are tracked off-chain. It can be invoked only by the
// briber itself.
//
// It produces HackerBribed notification.
func BribeHacker(briber, hacker interop.Hash160, bountyID string, amount int) {
	common.CheckOwnerWitness(briber)

	if amount <= 0 {
		panic(bribehackconst.ErrZeroBribe)
	}

	ctx := storage.GetContext()

	collect(briber, runtime.GetExecutingScriptHash(), amount)

	bribes := getBribes(ctx, hacker)
	bribes = append(bribes, Bribe{
		Briber:    briber,
		Hacker:    hacker,
		BountyID:  bountyID,
		Amount:    amount,
		Timestamp: runtime.GetTime(),
	})

	common.SetSerialized(ctx, bribeKey(hacker), bribes)

	runtime.Notify(bribehackconst.HackerBribedEvent, briber, hacker, bountyID, amount)
}

// SendCommitCrossChain relays a snapshot of the hacker's interest in the
// given bounty id through the configured LayerZero endpoint. The relay fee,
// if positive, is transferred from the hacker to the endpoint account before
// the call. Failure of the endpoint call reverts the whole transaction. It
// can be invoked only by the hacker itself.
//
// It produces LZMessageSent notification.
func SendCommitCrossChain(hacker interop.Hash160, dstChainID int, bountyID string, relayFee int) {
	common.CheckOwnerWitness(hacker)

	ctx := storage.GetContext()
	endpoint := storage.Get(ctx, endpointKey).(interop.Hash160)

	payload := std.Serialize(CrossChainCommit{
		Hacker:   hacker,
		BountyID: bountyID,
	})
	destination := []byte(runtime.GetExecutingScriptHash())

	runtime.Notify(bribehackconst.LZMessageSentEvent, dstChainID, destination, payload)

	if relayFee > 0 {
		collect(hacker, endpoint, relayFee)
	}

	contract.Call(endpoint, "send", contract.All,
		dstChainID, destination, payload, hacker, interop.Hash160(nil), []byte{})
}

// LzReceive accepts an inbound cross-chain payload from the configured
// endpoint and surfaces it as a notification. No commitment, bounty or bribe
// state is touched.
//
// It produces CrossChainSnapshot notification.
func LzReceive(srcChainID int, srcAddress []byte, nonce int, payload []byte) {
	ctx := storage.GetReadOnlyContext()
	endpoint := storage.Get(ctx, endpointKey).(interop.Hash160)

	caller := runtime.GetCallingScriptHash()
	if !caller.Equals(endpoint) {
		panic(bribehackconst.ErrNotEndpoint)
	}

	snapshot := std.Deserialize(payload).(CrossChainCommit)

	runtime.Notify(bribehackconst.CrossChainSnapshotEvent, snapshot.Hacker, snapshot.BountyID)
}

// OnNEP17Payment is a callback for NEP-17 compatible native GAS contract.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	caller := runtime.GetCallingScriptHash()
	if !caller.Equals(gas.Hash) {
		common.AbortWithMessage("bribehack contract accepts GAS only")
	}
}

// GetCommitment returns the current commitment of the given hacker or a
// zero-valued structure if the hacker has never committed.
func GetCommitment(hacker interop.Hash160) Commitment {
	return getCommitment(storage.GetReadOnlyContext(), hacker)
}

// GetBounty returns the funding record of the given bounty id or a
// zero-valued structure with an empty id if it was never sponsored.
func GetBounty(bountyID string) Bounty {
	return getBounty(storage.GetReadOnlyContext(), bountyID)
}

// GetBribes returns every bribe ever addressed to the given hacker in
// creation order. The list is empty for unknown hackers.
func GetBribes(hacker interop.Hash160) []Bribe {
	return getBribes(storage.GetReadOnlyContext(), hacker)
}

// IterateBounties returns an iterator over all bounty records created by
// sponsorships, in storage key order. Iterator values are Bounty structures.
func IterateBounties() iterator.Iterator {
	return storage.Find(storage.GetReadOnlyContext(), []byte{bountyPrefix},
		storage.ValuesOnly|storage.DeserializeValues)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// collect transfers GAS from a witnessed payer to the given account and
// reverts the transaction if the transfer is refused.
func collect(from, to interop.Hash160, amount int) {
	transferred := gas.Transfer(from, to, amount, nil)
	if !transferred {
		panic("failed to transfer funds, aborting")
	}
}

func commitmentKey(hacker interop.Hash160) []byte {
	return append([]byte{commitmentPrefix}, hacker...)
}

func countKey(hacker interop.Hash160) []byte {
	return append([]byte{countPrefix}, hacker...)
}

func bountyKey(bountyID string) []byte {
	return append([]byte{bountyPrefix}, []byte(bountyID)...)
}

func bribeKey(hacker interop.Hash160) []byte {
	return append([]byte{bribePrefix}, hacker...)
}

func getCommitment(ctx storage.Context, hacker interop.Hash160) Commitment {
	data := storage.Get(ctx, commitmentKey(hacker))
	if data != nil {
		return std.Deserialize(data.([]byte)).(Commitment)
	}

	return Commitment{
		Hacker:    interop.Hash160(""),
		BountyIDs: []string{},
	}
}

// commitmentCount returns the bounty id count stored by the hacker's current
// commitment, zero if there is none. Only the latest commitment is counted.
func commitmentCount(ctx storage.Context, hacker interop.Hash160) int {
	data := storage.Get(ctx, countKey(hacker))
	if data != nil {
		return data.(int)
	}

	return 0
}

func getBounty(ctx storage.Context, bountyID string) Bounty {
	data := storage.Get(ctx, bountyKey(bountyID))
	if data != nil {
		return std.Deserialize(data.([]byte)).(Bounty)
	}

	return Bounty{
		BountyID:  "",
		PrizePool: 0,
		Sponsors:  []interop.Hash160{},
	}
}

func getBribes(ctx storage.Context, hacker interop.Hash160) []Bribe {
	data := storage.Get(ctx, bribeKey(hacker))
	if data != nil {
		return std.Deserialize(data.([]byte)).([]Bribe)
	}

	return []Bribe{}
}

func isZeroHash(h interop.Hash160) bool {
	for i := range h {
		if h[i] != 0 {
			return false
		}
	}
	return true
}
