// Package indexer materializes Bribehack contract notifications into a local
// queryable database.
package indexer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bribehack/bribehack-contract/rpc/bribehack"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neorpc"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"go.uber.org/zap"
)

// Indexer consumes notifications of a single Bribehack contract deployment
// and keeps the Store up to date. Bounty ids are lowercased before they are
// used as entity keys, so ids differing only in case aggregate into one
// bounty.
type Indexer struct {
	log      *zap.Logger
	store    *Store
	contract util.Uint160
}

// New creates an Indexer writing into the given store.
func New(log *zap.Logger, store *Store, contract util.Uint160) *Indexer {
	return &Indexer{
		log:      log,
		store:    store,
		contract: contract,
	}
}

// Handle applies a single contract notification to the store. Notifications
// with unknown names are skipped, a replayed EventID is a no-op.
func (x *Indexer) Handle(id EventID, name string, item *stackitem.Array) error {
	switch name {
	case "NewCommitment":
		var ev bribehack.NewCommitmentEvent
		if err := ev.FromStackItem(item); err != nil {
			return fmt.Errorf("decode NewCommitment: %w", err)
		}

		ids := make([]string, len(ev.BountyIds))
		for i := range ev.BountyIds {
			ids[i] = strings.ToLower(ev.BountyIds[i])
		}

		return x.store.PutCommitment(id, Commitment{
			Hacker:    ev.Hacker,
			BountyIDs: ids,
			IPFSHash:  ev.IpfsHash,
			Tx:        id.Tx,
		})
	case "BountySponsored":
		var ev bribehack.BountySponsoredEvent
		if err := ev.FromStackItem(item); err != nil {
			return fmt.Errorf("decode BountySponsored: %w", err)
		}

		return x.store.AddSponsorship(id, strings.ToLower(ev.BountyId), ev.Sponsor, ev.Amount.Int64())
	case "HackerBribed":
		var ev bribehack.HackerBribedEvent
		if err := ev.FromStackItem(item); err != nil {
			return fmt.Errorf("decode HackerBribed: %w", err)
		}

		return x.store.AddBribe(id, Bribe{
			Briber:   ev.Briber,
			Hacker:   ev.Hacker,
			BountyID: strings.ToLower(ev.BountyId),
			Amount:   ev.Amount.Int64(),
			Tx:       id.Tx,
		})
	case "CrossChainSnapshot":
		var ev bribehack.CrossChainSnapshotEvent
		if err := ev.FromStackItem(item); err != nil {
			return fmt.Errorf("decode CrossChainSnapshot: %w", err)
		}

		return x.store.AddSnapshot(id, Snapshot{
			Hacker:   ev.Hacker,
			BountyID: strings.ToLower(ev.BountyId),
			Tx:       id.Tx,
		})
	case "LZMessageSent":
		var ev bribehack.LZMessageSentEvent
		if err := ev.FromStackItem(item); err != nil {
			return fmt.Errorf("decode LZMessageSent: %w", err)
		}

		return x.store.AddOutbound(id, OutboundMessage{
			DstChainID: ev.DstChainId.Int64(),
			Payload:    ev.Payload,
			Tx:         id.Tx,
		})
	default:
		x.log.Debug("skipping unknown notification", zap.String("name", name))
		return nil
	}
}

// Run subscribes to the contract's execution notifications over the given
// websocket connection and consumes them until the context is done or the
// connection is lost. Malformed notifications are logged and skipped.
func (x *Indexer) Run(ctx context.Context, ws *rpcclient.WSClient) error {
	ch := make(chan *state.ContainedNotificationEvent, 128)

	subID, err := ws.ReceiveExecutionNotifications(&neorpc.NotificationFilter{Contract: &x.contract}, ch)
	if err != nil {
		return fmt.Errorf("subscribe to contract notifications: %w", err)
	}
	defer func() {
		_ = ws.Unsubscribe(subID)
	}()

	x.log.Info("listening to contract notifications",
		zap.Stringer("contract", x.contract), zap.String("subscription", subID))

	// Notifications of one transaction arrive in emission order, the position
	// within the transaction recovers the EventID.
	var (
		lastTx util.Uint256
		index  int
	)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ntf, ok := <-ch:
			if !ok {
				return errors.New("notification stream closed")
			}

			if ntf.Container.Equals(lastTx) {
				index++
			} else {
				lastTx, index = ntf.Container, 0
			}

			id := EventID{Tx: ntf.Container, Index: index}
			if err := x.Handle(id, ntf.Name, ntf.Item); err != nil {
				x.log.Warn("failed to apply notification",
					zap.Stringer("tx", ntf.Container),
					zap.Int("index", index),
					zap.String("name", ntf.Name),
					zap.Error(err))
			}
		}
	}
}
