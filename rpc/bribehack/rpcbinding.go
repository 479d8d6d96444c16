// Package bribehack contains RPC wrappers for Bribehack contract.
package bribehack

import (
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"math/big"
	"unicode/utf8"
)

// BribehackBounty is a contract-specific bribehack.Bounty type used by its methods.
type BribehackBounty struct {
	BountyID string
	PrizePool *big.Int
	Sponsors []util.Uint160
}

// BribehackBribe is a contract-specific bribehack.Bribe type used by its methods.
type BribehackBribe struct {
	Briber util.Uint160
	Hacker util.Uint160
	BountyID string
	Amount *big.Int
	Timestamp *big.Int
}

// BribehackCommitment is a contract-specific bribehack.Commitment type used by its methods.
type BribehackCommitment struct {
	Hacker util.Uint160
	BountyIDs []string
	ENSPseudonym string
	IPFSHash string
	Timestamp *big.Int
}

// NewCommitmentEvent represents "NewCommitment" event emitted by the contract.
type NewCommitmentEvent struct {
	Hacker util.Uint160
	BountyIds []string
	IpfsHash string
}

// BountySponsoredEvent represents "BountySponsored" event emitted by the contract.
type BountySponsoredEvent struct {
	BountyId string
	Sponsor util.Uint160
	Amount *big.Int
}

// HackerBribedEvent represents "HackerBribed" event emitted by the contract.
type HackerBribedEvent struct {
	Briber util.Uint160
	Hacker util.Uint160
	BountyId string
	Amount *big.Int
}

// CrossChainSnapshotEvent represents "CrossChainSnapshot" event emitted by the contract.
type CrossChainSnapshotEvent struct {
	Hacker util.Uint160
	BountyId string
}

// LZMessageSentEvent represents "LZMessageSent" event emitted by the contract.
type LZMessageSentEvent struct {
	DstChainId *big.Int
	Destination []byte
	Payload []byte
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
	CallAndExpandIterator(contract util.Uint160, method string, maxItems int, params ...any) (*result.Invoke, error)
	TerminateSession(sessionID uuid.UUID) error
	TraverseIterator(sessionID uuid.UUID, iterator *result.Iterator, num int) ([]stackitem.Item, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// GetBounty invokes `getBounty` method of contract.
func (c *ContractReader) GetBounty(bountyID string) (*BribehackBounty, error) {
	return itemToBribehackBounty(unwrap.Item(c.invoker.Call(c.hash, "getBounty", bountyID)))
}

// GetBribes invokes `getBribes` method of contract.
func (c *ContractReader) GetBribes(hacker util.Uint160) ([]*BribehackBribe, error) {
	return func (item stackitem.Item, err error) ([]*BribehackBribe, error) {
		if err != nil {
			return nil, err
		}
		arr, ok := item.Value().([]stackitem.Item)
		if !ok {
			return nil, errors.New("not an array")
		}
		res := make([]*BribehackBribe, len(arr))
		for i := range res {
			res[i], err = itemToBribehackBribe(arr[i], nil)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
		}
		return res, nil
	} (unwrap.Item(c.invoker.Call(c.hash, "getBribes", hacker)))
}

// GetCommitment invokes `getCommitment` method of contract.
func (c *ContractReader) GetCommitment(hacker util.Uint160) (*BribehackCommitment, error) {
	return itemToBribehackCommitment(unwrap.Item(c.invoker.Call(c.hash, "getCommitment", hacker)))
}

// IterateBounties invokes `iterateBounties` method of contract.
func (c *ContractReader) IterateBounties() (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "iterateBounties"))
}

// IterateBountiesExpanded is similar to IterateBounties (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) IterateBountiesExpanded(_numOfIteratorItems int) ([]stackitem.Item, error) {
	return unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "iterateBounties", _numOfIteratorItems))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// BribeHacker creates a transaction invoking `bribeHacker` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) BribeHacker(briber util.Uint160, hacker util.Uint160, bountyID string, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "bribeHacker", briber, hacker, bountyID, amount)
}

// BribeHackerTransaction creates a transaction invoking `bribeHacker` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) BribeHackerTransaction(briber util.Uint160, hacker util.Uint160, bountyID string, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "bribeHacker", briber, hacker, bountyID, amount)
}

// BribeHackerUnsigned creates a transaction invoking `bribeHacker` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) BribeHackerUnsigned(briber util.Uint160, hacker util.Uint160, bountyID string, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "bribeHacker", nil, briber, hacker, bountyID, amount)
}

// CommitToBounties creates a transaction invoking `commitToBounties` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) CommitToBounties(hacker util.Uint160, bountyIDs []string, ensPseudonym string, ipfsHash string) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "commitToBounties", hacker, bountyIDs, ensPseudonym, ipfsHash)
}

// CommitToBountiesTransaction creates a transaction invoking `commitToBounties` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) CommitToBountiesTransaction(hacker util.Uint160, bountyIDs []string, ensPseudonym string, ipfsHash string) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "commitToBounties", hacker, bountyIDs, ensPseudonym, ipfsHash)
}

// CommitToBountiesUnsigned creates a transaction invoking `commitToBounties` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) CommitToBountiesUnsigned(hacker util.Uint160, bountyIDs []string, ensPseudonym string, ipfsHash string) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "commitToBounties", nil, hacker, bountyIDs, ensPseudonym, ipfsHash)
}

// LzReceive creates a transaction invoking `lzReceive` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) LzReceive(srcChainID *big.Int, srcAddress []byte, nonce *big.Int, payload []byte) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "lzReceive", srcChainID, srcAddress, nonce, payload)
}

// LzReceiveTransaction creates a transaction invoking `lzReceive` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) LzReceiveTransaction(srcChainID *big.Int, srcAddress []byte, nonce *big.Int, payload []byte) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "lzReceive", srcChainID, srcAddress, nonce, payload)
}

// LzReceiveUnsigned creates a transaction invoking `lzReceive` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) LzReceiveUnsigned(srcChainID *big.Int, srcAddress []byte, nonce *big.Int, payload []byte) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "lzReceive", nil, srcChainID, srcAddress, nonce, payload)
}

// SendCommitCrossChain creates a transaction invoking `sendCommitCrossChain` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SendCommitCrossChain(hacker util.Uint160, dstChainID *big.Int, bountyID string, relayFee *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "sendCommitCrossChain", hacker, dstChainID, bountyID, relayFee)
}

// SendCommitCrossChainTransaction creates a transaction invoking `sendCommitCrossChain` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SendCommitCrossChainTransaction(hacker util.Uint160, dstChainID *big.Int, bountyID string, relayFee *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "sendCommitCrossChain", hacker, dstChainID, bountyID, relayFee)
}

// SendCommitCrossChainUnsigned creates a transaction invoking `sendCommitCrossChain` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SendCommitCrossChainUnsigned(hacker util.Uint160, dstChainID *big.Int, bountyID string, relayFee *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "sendCommitCrossChain", nil, hacker, dstChainID, bountyID, relayFee)
}

// SponsorBounty creates a transaction invoking `sponsorBounty` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SponsorBounty(sponsor util.Uint160, bountyID string, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "sponsorBounty", sponsor, bountyID, amount)
}

// SponsorBountyTransaction creates a transaction invoking `sponsorBounty` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SponsorBountyTransaction(sponsor util.Uint160, bountyID string, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "sponsorBounty", sponsor, bountyID, amount)
}

// SponsorBountyUnsigned creates a transaction invoking `sponsorBounty` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SponsorBountyUnsigned(sponsor util.Uint160, bountyID string, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "sponsorBounty", nil, sponsor, bountyID, amount)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(nefFile []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", nefFile, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(nefFile []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", nefFile, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(nefFile []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, nefFile, manifest, data)
}

// itemToBribehackBounty converts stack item into *BribehackBounty.
func itemToBribehackBounty(item stackitem.Item, err error) (*BribehackBounty, error) {
	if err != nil {
		return nil, err
	}
	var res = new(BribehackBounty)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of BribehackBounty from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *BribehackBounty) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.BountyID, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field BountyID: %w", err)
	}

	index++
	res.PrizePool, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field PrizePool: %w", err)
	}

	index++
	res.Sponsors, err = func (item stackitem.Item) ([]util.Uint160, error) {
		arr, ok := item.Value().([]stackitem.Item)
		if !ok {
			return nil, errors.New("not an array")
		}
		res := make([]util.Uint160, len(arr))
		for i := range res {
			res[i], err = func (item stackitem.Item) (util.Uint160, error) {
				b, err := item.TryBytes()
				if err != nil {
					return util.Uint160{}, err
				}
				u, err := util.Uint160DecodeBytesBE(b)
				if err != nil {
					return util.Uint160{}, err
				}
				return u, nil
			} (arr[i])
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
		}
		return res, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Sponsors: %w", err)
	}

	return nil
}

// itemToBribehackBribe converts stack item into *BribehackBribe.
func itemToBribehackBribe(item stackitem.Item, err error) (*BribehackBribe, error) {
	if err != nil {
		return nil, err
	}
	var res = new(BribehackBribe)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of BribehackBribe from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *BribehackBribe) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 5 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.Briber, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Briber: %w", err)
	}

	index++
	res.Hacker, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Hacker: %w", err)
	}

	index++
	res.BountyID, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field BountyID: %w", err)
	}

	index++
	res.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	index++
	res.Timestamp, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Timestamp: %w", err)
	}

	return nil
}

// itemToBribehackCommitment converts stack item into *BribehackCommitment.
func itemToBribehackCommitment(item stackitem.Item, err error) (*BribehackCommitment, error) {
	if err != nil {
		return nil, err
	}
	var res = new(BribehackCommitment)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of BribehackCommitment from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *BribehackCommitment) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 5 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.Hacker, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Hacker: %w", err)
	}

	index++
	res.BountyIDs, err = func (item stackitem.Item) ([]string, error) {
		arr, ok := item.Value().([]stackitem.Item)
		if !ok {
			return nil, errors.New("not an array")
		}
		res := make([]string, len(arr))
		for i := range res {
			res[i], err = func (item stackitem.Item) (string, error) {
				b, err := item.TryBytes()
				if err != nil {
					return "", err
				}
				if !utf8.Valid(b) {
					return "", errors.New("not a UTF-8 string")
				}
				return string(b), nil
			} (arr[i])
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
		}
		return res, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field BountyIDs: %w", err)
	}

	index++
	res.ENSPseudonym, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field ENSPseudonym: %w", err)
	}

	index++
	res.IPFSHash, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field IPFSHash: %w", err)
	}

	index++
	res.Timestamp, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Timestamp: %w", err)
	}

	return nil
}

// NewCommitmentEventsFromApplicationLog retrieves a set of all emitted events
// with "NewCommitment" name from the provided [result.ApplicationLog].
func NewCommitmentEventsFromApplicationLog(log *result.ApplicationLog) ([]*NewCommitmentEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*NewCommitmentEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "NewCommitment" {
				continue
			}
			event := new(NewCommitmentEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize NewCommitmentEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to NewCommitmentEvent or
// returns an error if it's not possible to do to so.
func (e *NewCommitmentEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Hacker, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Hacker: %w", err)
	}

	index++
	e.BountyIds, err = func (item stackitem.Item) ([]string, error) {
		arr, ok := item.Value().([]stackitem.Item)
		if !ok {
			return nil, errors.New("not an array")
		}
		res := make([]string, len(arr))
		for i := range res {
			res[i], err = func (item stackitem.Item) (string, error) {
				b, err := item.TryBytes()
				if err != nil {
					return "", err
				}
				if !utf8.Valid(b) {
					return "", errors.New("not a UTF-8 string")
				}
				return string(b), nil
			} (arr[i])
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
		}
		return res, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field BountyIds: %w", err)
	}

	index++
	e.IpfsHash, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field IpfsHash: %w", err)
	}

	return nil
}

// BountySponsoredEventsFromApplicationLog retrieves a set of all emitted events
// with "BountySponsored" name from the provided [result.ApplicationLog].
func BountySponsoredEventsFromApplicationLog(log *result.ApplicationLog) ([]*BountySponsoredEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*BountySponsoredEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "BountySponsored" {
				continue
			}
			event := new(BountySponsoredEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize BountySponsoredEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to BountySponsoredEvent or
// returns an error if it's not possible to do to so.
func (e *BountySponsoredEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.BountyId, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field BountyId: %w", err)
	}

	index++
	e.Sponsor, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Sponsor: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// HackerBribedEventsFromApplicationLog retrieves a set of all emitted events
// with "HackerBribed" name from the provided [result.ApplicationLog].
func HackerBribedEventsFromApplicationLog(log *result.ApplicationLog) ([]*HackerBribedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*HackerBribedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "HackerBribed" {
				continue
			}
			event := new(HackerBribedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize HackerBribedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to HackerBribedEvent or
// returns an error if it's not possible to do to so.
func (e *HackerBribedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 4 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Briber, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Briber: %w", err)
	}

	index++
	e.Hacker, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Hacker: %w", err)
	}

	index++
	e.BountyId, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field BountyId: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// CrossChainSnapshotEventsFromApplicationLog retrieves a set of all emitted events
// with "CrossChainSnapshot" name from the provided [result.ApplicationLog].
func CrossChainSnapshotEventsFromApplicationLog(log *result.ApplicationLog) ([]*CrossChainSnapshotEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*CrossChainSnapshotEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "CrossChainSnapshot" {
				continue
			}
			event := new(CrossChainSnapshotEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize CrossChainSnapshotEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to CrossChainSnapshotEvent or
// returns an error if it's not possible to do to so.
func (e *CrossChainSnapshotEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Hacker, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Hacker: %w", err)
	}

	index++
	e.BountyId, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field BountyId: %w", err)
	}

	return nil
}

// LZMessageSentEventsFromApplicationLog retrieves a set of all emitted events
// with "LZMessageSent" name from the provided [result.ApplicationLog].
func LZMessageSentEventsFromApplicationLog(log *result.ApplicationLog) ([]*LZMessageSentEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*LZMessageSentEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "LZMessageSent" {
				continue
			}
			event := new(LZMessageSentEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize LZMessageSentEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to LZMessageSentEvent or
// returns an error if it's not possible to do to so.
func (e *LZMessageSentEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.DstChainId, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field DstChainId: %w", err)
	}

	index++
	e.Destination, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field Destination: %w", err)
	}

	index++
	e.Payload, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field Payload: %w", err)
	}

	return nil
}
