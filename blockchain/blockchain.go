package blockchain

import (
	"errors"
	"fmt"

	"github.com/NethermindEth/starkevents/core"
	"github.com/NethermindEth/starkevents/core/felt"
	"github.com/NethermindEth/starkevents/db"
	"github.com/NethermindEth/starkevents/utils"
)

//go:generate mockgen -destination=../mocks/mock_blockchain.go -package=mocks github.com/NethermindEth/starkevents/blockchain Reader
type Reader interface {
	Height() (height uint64, err error)

	Head() (head *core.Header, err error)
	BlockHeaderByNumber(number uint64) (header *core.Header, err error)
	BlockHeaderByHash(hash *felt.Felt) (header *core.Header, err error)
	Receipts(number uint64) (receipts []*core.TransactionReceipt, err error)

	EventFilter(filter Filter) (EventFilterer, error)
}

var _ Reader = (*Blockchain)(nil)

type ErrIncompatibleBlock struct {
	reason string
}

func (e ErrIncompatibleBlock) Error() string {
	return fmt.Sprintf("incompatible block: %v", e.reason)
}

// Blockchain stores finalized blocks and serves read access to them.
type Blockchain struct {
	database db.DB
	listener EventListener
	log      utils.SimpleLogger
}

func New(database db.DB, log utils.SimpleLogger) *Blockchain {
	return &Blockchain{
		database: database,
		listener: &SelectiveListener{},
		log:      log,
	}
}

func (b *Blockchain) WithListener(listener EventListener) *Blockchain {
	b.listener = listener
	return b
}

// Height returns the latest block height. If blockchain is empty db.ErrKeyNotFound is returned.
func (b *Blockchain) Height() (height uint64, err error) {
	b.listener.OnRead("Height")
	return height, b.database.View(func(txn db.Transaction) error {
		height, err = core.GetChainHeight(txn)
		return err
	})
}

func (b *Blockchain) Head() (head *core.Header, err error) {
	b.listener.OnRead("Head")
	return head, b.database.View(func(txn db.Transaction) error {
		head, err = headHeader(txn)
		return err
	})
}

func headHeader(txn db.Transaction) (*core.Header, error) {
	height, err := core.GetChainHeight(txn)
	if err != nil {
		return nil, err
	}
	return core.GetBlockHeaderByNumber(txn, height)
}

func (b *Blockchain) BlockHeaderByNumber(number uint64) (header *core.Header, err error) {
	b.listener.OnRead("BlockHeaderByNumber")
	return header, b.database.View(func(txn db.Transaction) error {
		header, err = core.GetBlockHeaderByNumber(txn, number)
		return err
	})
}

func (b *Blockchain) BlockHeaderByHash(hash *felt.Felt) (header *core.Header, err error) {
	b.listener.OnRead("BlockHeaderByHash")
	return header, b.database.View(func(txn db.Transaction) error {
		number, err := core.GetBlockHeaderNumberByHash(txn, hash)
		if err != nil {
			return err
		}
		header, err = core.GetBlockHeaderByNumber(txn, number)
		return err
	})
}

func (b *Blockchain) Receipts(number uint64) (receipts []*core.TransactionReceipt, err error) {
	b.listener.OnRead("Receipts")
	return receipts, b.database.View(func(txn db.Transaction) error {
		receipts, err = core.GetReceiptsByBlockNumber(txn, number)
		return err
	})
}

// Store seals the block, checks that it extends the current head and puts it in the database.
func (b *Blockchain) Store(block *core.Block) error {
	if err := block.Seal(); err != nil {
		return err
	}

	err := b.database.Update(func(txn db.Transaction) error {
		if err := verifyBlock(txn, block); err != nil {
			return err
		}
		if err := core.WriteBlockHeaderByNumber(txn, block.Header); err != nil {
			return err
		}
		if err := core.WriteBlockHeaderNumberByHash(txn, block.Hash, block.Number); err != nil {
			return err
		}
		if err := core.WriteReceiptsByBlockNumber(txn, block.Number, block.Receipts); err != nil {
			return err
		}

		// Head of the blockchain is maintained as follows:
		// [db.ChainHeight]() -> (BlockNumber)
		return core.WriteChainHeight(txn, block.Number)
	})
	if err != nil {
		return err
	}

	b.log.Debugw("Stored block", "number", block.Number, "hash", block.Hash.ShortString(),
		"transactions", block.TransactionCount, "events", block.EventCount)
	return nil
}

func verifyBlock(txn db.Transaction, block *core.Block) error {
	head, err := headHeader(txn)
	if err != nil && !errors.Is(err, db.ErrKeyNotFound) {
		return err
	}

	if head == nil {
		if block.Number != 0 {
			return &ErrIncompatibleBlock{
				"cannot insert a block with number more than 0 in an empty blockchain",
			}
		}
		if block.ParentHash != nil && !block.ParentHash.IsZero() {
			return &ErrIncompatibleBlock{
				"cannot insert a block with non-zero parent hash in an empty blockchain",
			}
		}
		return nil
	}

	if head.Number+1 != block.Number {
		return &ErrIncompatibleBlock{
			"block number difference between head and incoming block is not 1",
		}
	}
	if block.ParentHash == nil || !block.ParentHash.Equal(head.Hash) {
		return &ErrIncompatibleBlock{
			"block's parent hash does not match head block hash",
		}
	}
	return nil
}

// EventFilter returns a filter over a read-only snapshot of the chain. The
// caller must Close it to release the snapshot.
func (b *Blockchain) EventFilter(filter Filter) (EventFilterer, error) {
	b.listener.OnRead("EventFilter")
	txn := b.database.NewTransaction(false)
	return newEventFilter(txn, filter, b.listener), nil
}
