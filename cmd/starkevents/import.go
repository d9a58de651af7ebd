package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/NethermindEth/starkevents/blockchain"
	"github.com/NethermindEth/starkevents/core"
	"github.com/NethermindEth/starkevents/core/felt"
	"github.com/NethermindEth/starkevents/db"
	"github.com/NethermindEth/starkevents/db/pebble"
	"github.com/NethermindEth/starkevents/utils"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	fileF = "file"

	fileUsage = "YAML ledger to import. Blocks are stored in file order."
)

// ledgerFile is the on-disk shape of an importable chain segment.
type ledgerFile struct {
	Blocks []ledgerBlock `yaml:"blocks"`
}

type ledgerBlock struct {
	Number       uint64              `yaml:"number"`
	Hash         *felt.Felt          `yaml:"hash"`
	ParentHash   *felt.Felt          `yaml:"parent_hash"`
	Timestamp    uint64              `yaml:"timestamp"`
	Transactions []ledgerTransaction `yaml:"transactions"`
}

type ledgerTransaction struct {
	Hash   *felt.Felt    `yaml:"hash"`
	Events []ledgerEvent `yaml:"events"`
}

type ledgerEvent struct {
	From *felt.Felt   `yaml:"from"`
	Keys []*felt.Felt `yaml:"keys"`
	Data []*felt.Felt `yaml:"data"`
}

// toBlock converts the entry, defaulting a missing parent hash to prev (zero for genesis).
func (b *ledgerBlock) toBlock(prev *felt.Felt) *core.Block {
	parent := b.ParentHash
	if parent == nil {
		parent = prev
	}
	if parent == nil {
		parent = new(felt.Felt)
	}

	receipts := make([]*core.TransactionReceipt, 0, len(b.Transactions))
	for _, tx := range b.Transactions {
		receipts = append(receipts, &core.TransactionReceipt{
			TransactionHash: tx.Hash,
			Events: utils.Map(tx.Events, func(e ledgerEvent) *core.Event {
				return &core.Event{From: e.From, Keys: e.Keys, Data: e.Data}
			}),
		})
	}

	return &core.Block{
		Header: &core.Header{
			Hash:       b.Hash,
			ParentHash: parent,
			Number:     b.Number,
			Timestamp:  b.Timestamp,
		},
		Receipts: receipts,
	}
}

func readLedger(path string) (*ledgerFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var ledger ledgerFile
	if err := yaml.Unmarshal(raw, &ledger); err != nil {
		return nil, fmt.Errorf("decode ledger %s: %w", path, err)
	}
	return &ledger, nil
}

// ImportCmd appends the blocks of a YAML ledger to the database.
func ImportCmd(defaultDBPath string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import blocks and their events from a YAML ledger",
		Args:  cobra.NoArgs,
		RunE:  importLedger,
	}
	cmd.Flags().String(fileF, "", fileUsage)
	cmd.Flags().String(dbPathF, defaultDBPath, dbPathUsage)
	if err := cmd.MarkFlagRequired(fileF); err != nil {
		panic(err)
	}
	return cmd
}

func importLedger(cmd *cobra.Command, _ []string) (err error) {
	path, err := cmd.Flags().GetString(fileF)
	if err != nil {
		return err
	}
	ledger, err := readLedger(path)
	if err != nil {
		return err
	}

	database, err := openDB(cmd, false)
	if err != nil {
		return err
	}
	defer db.CloseAndWrapOnError(database.Close, &err)

	log := utils.NewNopZapLogger()
	chain := blockchain.New(database, log)

	var prevHash *felt.Felt
	var empty bool
	height, err := chain.Height()
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			return err
		}
		empty = true
	}

	var stored int
	for i := range ledger.Blocks {
		entry := &ledger.Blocks[i]
		if !empty && entry.Number <= height {
			prevHash = entry.Hash
			continue
		}
		if entry.ParentHash == nil && prevHash == nil && entry.Number > 0 {
			head, headErr := chain.Head()
			if headErr != nil {
				return headErr
			}
			prevHash = head.Hash
		}

		if err = chain.Store(entry.toBlock(prevHash)); err != nil {
			return fmt.Errorf("store block %d: %w", entry.Number, err)
		}
		prevHash = entry.Hash
		stored++
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d blocks from %s\n", stored, path)
	return err
}

// openDB opens the database named by the --db-path flag of cmd.
func openDB(cmd *cobra.Command, readOnly bool) (db.DB, error) {
	dbPath, err := cmd.Flags().GetString(dbPathF)
	if err != nil {
		return nil, err
	}
	if _, err = os.Stat(dbPath); readOnly && os.IsNotExist(err) {
		return nil, fmt.Errorf("database path does not exist: %s", dbPath)
	}

	opts := []pebble.Option{}
	if readOnly {
		opts = append(opts, pebble.WithReadOnly())
	}
	return pebble.New(dbPath, opts...)
}
