package core

import (
	"errors"
	"fmt"

	"github.com/NethermindEth/starkevents/core/felt"
	"github.com/bits-and-blooms/bloom/v3"
)

type Header struct {
	// The hash of this block
	Hash *felt.Felt `cbor:"1,keyasint,omitempty"`
	// The hash of this block’s parent
	ParentHash *felt.Felt `cbor:"2,keyasint,omitempty"`
	// The number (height) of this block
	Number uint64 `cbor:"3,keyasint,omitempty"`
	// The amount Transactions and Receipts stored in this block
	TransactionCount uint64 `cbor:"4,keyasint,omitempty"`
	// The amount of events stored in transaction receipts
	EventCount uint64 `cbor:"5,keyasint,omitempty"`
	// The time the sequencer created this block
	Timestamp uint64 `cbor:"6,keyasint,omitempty"`
	// Bloom filter on the events emitted this block
	EventsBloom *bloom.BloomFilter `cbor:"7,keyasint,omitempty"`
}

type Block struct {
	*Header
	Receipts []*TransactionReceipt
}

var (
	ErrMissingHeader    = errors.New("block has no header")
	ErrMissingBlockHash = errors.New("block has no hash")
	ErrMalformedEvent   = errors.New("malformed event")
)

// Seal fills the derived header fields (counts and bloom) from the receipts
// and checks that the block carries what storage needs to index it.
func (b *Block) Seal() error {
	if b.Header == nil {
		return ErrMissingHeader
	}
	if b.Hash == nil {
		return ErrMissingBlockHash
	}

	var eventCount uint64
	for i, receipt := range b.Receipts {
		if receipt == nil || receipt.TransactionHash == nil {
			return fmt.Errorf("receipt %d of block %d has no transaction hash", i, b.Number)
		}
		for j, event := range receipt.Events {
			if err := checkEvent(event); err != nil {
				return fmt.Errorf("event %d of receipt %d in block %d: %w", j, i, b.Number, err)
			}
		}
		eventCount += uint64(len(receipt.Events))
	}

	b.TransactionCount = uint64(len(b.Receipts))
	b.EventCount = eventCount
	b.EventsBloom = EventsBloom(b.Receipts)
	return nil
}

// checkEvent rejects events the bloom and the matcher cannot index.
func checkEvent(event *Event) error {
	if event == nil {
		return fmt.Errorf("%w: nil event", ErrMalformedEvent)
	}
	if event.From == nil {
		return fmt.Errorf("%w: no from address", ErrMalformedEvent)
	}
	for k, key := range event.Keys {
		if key == nil {
			return fmt.Errorf("%w: key %d is nil", ErrMalformedEvent, k)
		}
	}
	for d, data := range event.Data {
		if data == nil {
			return fmt.Errorf("%w: data %d is nil", ErrMalformedEvent, d)
		}
	}
	return nil
}
