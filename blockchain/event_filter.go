package blockchain

import (
	"fmt"
	"io"

	"github.com/NethermindEth/starkevents/core"
	"github.com/NethermindEth/starkevents/core/felt"
	"github.com/NethermindEth/starkevents/db"
)

//go:generate mockgen -destination=../mocks/mock_event_filterer.go -package=mocks github.com/NethermindEth/starkevents/blockchain EventFilterer
type EventFilterer interface {
	io.Closer

	Events(cToken *ContinuationToken, chunkSize uint64) ([]FilteredEvent, *ContinuationToken, error)
	WithLimit(limit uint) EventFilterer
}

type EventFilter struct {
	txn        db.Transaction
	filter     Filter
	matcher    EventMatcher
	maxScanned uint // maximum number of scanned blocks in single call, 0 means no limit.
	listener   EventListener
}

type FilteredEvent struct {
	*core.Event
	BlockNumber      uint64
	BlockHash        *felt.Felt
	TransactionHash  *felt.Felt
	TransactionIndex uint
	EventIndex       uint
}

func newEventFilter(txn db.Transaction, filter Filter, listener EventListener) *EventFilter {
	return &EventFilter{
		txn:      txn,
		filter:   filter,
		matcher:  NewEventMatcher(filter.Address, filter.Keys),
		listener: listener,
	}
}

// WithLimit sets the limit for events scan
func (e *EventFilter) WithLimit(limit uint) EventFilterer {
	e.maxScanned = limit
	return e
}

// Close discards the underlying database transaction that provides the blockchain snapshot
func (e *EventFilter) Close() error {
	return e.txn.Discard()
}

// Events returns up to chunkSize matching events starting at cToken, or at
// FromBlock when cToken is nil. The returned token is nil once ToBlock has
// been fully visited. There is no lookahead, so the page after a full one may be empty.
func (e *EventFilter) Events(cToken *ContinuationToken, chunkSize uint64) ([]FilteredEvent, *ContinuationToken, error) {
	if err := ValidateFilter(e.filter, chunkSize); err != nil {
		return nil, nil, err
	}

	span := e.filter.ToBlock - e.filter.FromBlock
	var offset, skip uint64
	if cToken != nil {
		if cToken.BlockOffset > span {
			return nil, nil, ErrInvalidContinuationToken
		}
		offset, skip = cToken.BlockOffset, cToken.VisitedInBlock
	}

	var (
		matchedEvents []FilteredEvent
		scanned       uint
	)
	for ; ; offset++ {
		if e.maxScanned > 0 && scanned == e.maxScanned {
			return matchedEvents, &ContinuationToken{BlockOffset: offset}, nil
		}
		scanned++

		number := e.filter.FromBlock + offset
		header, err := core.GetBlockHeaderByNumber(e.txn, number)
		if err != nil {
			return nil, nil, fmt.Errorf("read header %d: %w", number, err)
		}
		if skip > header.EventCount {
			return nil, nil, ErrInvalidContinuationToken
		}

		if skip == header.EventCount || !e.matcher.TestBloom(header.EventsBloom) {
			e.listener.OnBlockSkipped()
		} else {
			receipts, err := core.GetReceiptsByBlockNumber(e.txn, number)
			if err != nil {
				return nil, nil, fmt.Errorf("read receipts %d: %w", number, err)
			}

			var (
				visited uint64
				full    bool
			)
			matchedEvents, visited, full = e.matcher.AppendBlockEvents(matchedEvents, header, receipts, skip, chunkSize)
			e.listener.OnBlockScanned(visited - skip)
			if full {
				if offset == span && visited == header.EventCount {
					return matchedEvents, nil, nil
				}
				return matchedEvents, &ContinuationToken{BlockOffset: offset, VisitedInBlock: visited}, nil
			}
		}

		skip = 0
		if offset == span {
			return matchedEvents, nil, nil
		}
	}
}
