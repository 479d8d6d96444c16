// Package deploy provides Bribehack contract deployment routine.
package deploy

import (
	"context"
	"errors"
	"fmt"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"
)

// Blockchain groups services of a particular Neo blockchain network required
// for Bribehack contract deployment.
type Blockchain interface {
	// RPCActor groups functions needed to compose and send transactions to the
	// blockchain.
	actor.RPCActor

	// GetContractStateByHash returns network state of the smart contract by its
	// address. GetContractStateByHash returns error with 'Unknown contract'
	// substring if requested contract is missing.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// Prm groups parameters of the Bribehack contract deployment procedure.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	// Particular Neo blockchain instance to deploy to.
	Blockchain Blockchain

	// Local account used for transaction signing (must be unlocked). The
	// resulting contract address is a function of this account, so reruns
	// with the same account are idempotent.
	LocalAccount *wallet.Account

	// Compiled contract.
	NEF      nef.File
	Manifest manifest.Manifest

	// Address of the LayerZero endpoint contract passed to the constructor.
	Endpoint util.Uint160
}

func (prm Prm) validate() error {
	if prm.Logger == nil {
		return errors.New("missing logger")
	}
	if prm.Blockchain == nil {
		return errors.New("missing blockchain client")
	}
	if prm.LocalAccount == nil {
		return errors.New("missing local account")
	}
	if prm.Endpoint.Equals(util.Uint160{}) {
		return errors.New("zero LayerZero endpoint address")
	}
	return nil
}

// Deploy puts the Bribehack contract given in Prm on the chain and returns
// its address. If the contract is already on the chain, Deploy logs this and
// returns the address without spending GAS.
func Deploy(ctx context.Context, prm Prm) (util.Uint160, error) {
	if err := prm.validate(); err != nil {
		return util.Uint160{}, err
	}

	localActor, err := actor.NewSimple(prm.Blockchain, prm.LocalAccount)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("init transaction sender from local account: %w", err)
	}

	onChainAddress := state.CreateContractHash(localActor.Sender(), prm.NEF.Checksum, prm.Manifest.Name)

	stateOnChain, err := prm.Blockchain.GetContractStateByHash(onChainAddress)
	if err == nil {
		prm.Logger.Info("contract is already on the chain",
			zap.Stringer("address", onChainAddress), zap.Int32("id", stateOnChain.ID))
		return onChainAddress, nil
	}

	prm.Logger.Info("deploying contract...",
		zap.Stringer("address", onChainAddress), zap.Stringer("endpoint", prm.Endpoint))

	txHash, vub, err := management.New(localActor).Deploy(&prm.NEF, &prm.Manifest, []any{prm.Endpoint})
	if err != nil {
		return util.Uint160{}, fmt.Errorf("send deployment transaction: %w", err)
	}

	res, err := localActor.Wait(txHash, vub, nil)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("wait for deployment transaction %s: %w", txHash, err)
	}
	if res.VMState.HasFlag(vmstate.Fault) {
		return util.Uint160{}, fmt.Errorf("deployment transaction %s failed: %s", txHash, res.FaultException)
	}

	prm.Logger.Info("contract successfully deployed", zap.Stringer("address", onChainAddress))

	return onChainAddress, nil
}
