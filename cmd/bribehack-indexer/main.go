package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bribehack/bribehack-contract/indexer"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"go.uber.org/zap"
)

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Websocket address of the Neo RPC server (e.g. ws://localhost:30333/ws)")
	contractAddress := flag.String("contract", "", "Address of the Bribehack contract, hex")
	dbPath := flag.String("db", "bribehack-index.db", "Path to the index database")
	dumpEntities := flag.Bool("dump", false, "Print indexed entities as JSON and exit")

	flag.Parse()

	if *dumpEntities {
		if err := dump(*dbPath); err != nil {
			log.Fatal(err)
		}
		return
	}

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *contractAddress == "":
		log.Fatal("missing contract address")
	}

	contract, err := util.Uint160DecodeStringLE(*contractAddress)
	if err != nil {
		log.Fatal(fmt.Errorf("invalid contract address: %w", err))
	}

	if err := run(*neoRPCEndpoint, *dbPath, contract); err != nil {
		log.Fatal(err)
	}
}

func run(endpoint, dbPath string, contract util.Uint160) error {
	l, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() {
		_ = l.Sync()
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	ws, err := rpcclient.NewWS(ctx, endpoint, rpcclient.WSOptions{})
	if err != nil {
		return fmt.Errorf("connect to %q: %w", endpoint, err)
	}
	defer ws.Close()

	if err := ws.Init(); err != nil {
		return fmt.Errorf("initialize RPC connection: %w", err)
	}

	store, err := indexer.NewStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	err = indexer.New(l, store, contract).Run(ctx, ws)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func dump(dbPath string) error {
	store, err := indexer.NewStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	var out struct {
		Commitments []indexer.Commitment `json:"commitments"`
		Bounties    []indexer.Bounty     `json:"bounties"`
		Snapshots   []indexer.Snapshot   `json:"snapshots"`
	}

	err = store.ForEachCommitment(func(c indexer.Commitment) error {
		out.Commitments = append(out.Commitments, c)
		return nil
	})
	if err != nil {
		return fmt.Errorf("read commitments: %w", err)
	}

	err = store.ForEachBounty(func(b indexer.Bounty) error {
		out.Bounties = append(out.Bounties, b)
		return nil
	})
	if err != nil {
		return fmt.Errorf("read bounties: %w", err)
	}

	err = store.ForEachSnapshot(func(s indexer.Snapshot) error {
		out.Snapshots = append(out.Snapshots, s)
		return nil
	})
	if err != nil {
		return fmt.Errorf("read snapshots: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
