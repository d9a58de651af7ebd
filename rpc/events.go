package rpc

import (
	"errors"

	"github.com/NethermindEth/starkevents/blockchain"
	"github.com/NethermindEth/starkevents/core/felt"
	"github.com/NethermindEth/starkevents/jsonrpc"
	"github.com/NethermindEth/starkevents/rpc/rpccore"
)

type EventsArg struct {
	EventFilter
	ResultPageRequest
}

type EventFilter struct {
	FromBlock *BlockID      `json:"from_block"`
	ToBlock   *BlockID      `json:"to_block"`
	Address   *felt.Felt    `json:"address"`
	Keys      [][]felt.Felt `json:"keys"`
}

type ResultPageRequest struct {
	ContinuationToken string `json:"continuation_token"`
	ChunkSize         uint64 `json:"chunk_size"`
}

type Event struct {
	From *felt.Felt   `json:"from_address,omitempty"`
	Keys []*felt.Felt `json:"keys"`
	Data []*felt.Felt `json:"data"`
}

type EmittedEvent struct {
	*Event
	BlockNumber     *uint64    `json:"block_number,omitempty"`
	BlockHash       *felt.Felt `json:"block_hash,omitempty"`
	TransactionHash *felt.Felt `json:"transaction_hash"`
}

type EventsChunk struct {
	Events            []*EmittedEvent `json:"events"`
	ContinuationToken string          `json:"continuation_token,omitempty"`
}

/****************************************************
		Events Handlers
*****************************************************/

// Events gets the events matching a filter
//
// It follows the specification defined here:
// https://github.com/starkware-libs/starknet-specs/blob/v0.6.0/api/starknet_api_openrpc.json#L813
func (h *Handler) Events(args EventsArg) (*EventsChunk, *jsonrpc.Error) {
	// limits first, they need no ledger access
	if err := blockchain.ValidateFilter(blockchain.Filter{Keys: args.Keys}, args.ChunkSize); err != nil {
		return nil, h.adaptFilterErr(err)
	}

	head, err := h.bcReader.Head()
	if err != nil {
		return nil, h.noBlockOrInternal(err)
	}

	filter := blockchain.Filter{
		ToBlock: head.Number,
		Address: args.Address,
		Keys:    args.Keys,
	}
	if args.FromBlock != nil {
		from, rpcErr := h.blockNumber(args.FromBlock, head)
		if rpcErr != nil {
			return nil, rpcErr
		}
		if from > head.Number {
			return nil, rpccore.ErrBlockNotFound
		}
		filter.FromBlock = from
	}
	if args.ToBlock != nil {
		to, rpcErr := h.blockNumber(args.ToBlock, head)
		if rpcErr != nil {
			return nil, rpcErr
		}
		filter.ToBlock = min(to, head.Number)
	}

	var cToken *blockchain.ContinuationToken
	if args.ContinuationToken != "" {
		if cToken, err = blockchain.ParseContinuationToken(args.ContinuationToken); err != nil {
			return nil, rpccore.ErrInvalidContinuationToken
		}
	}

	eventFilter, err := h.bcReader.EventFilter(filter)
	if err != nil {
		h.log.Errorw("Failed to open event filter", "err", err)
		return nil, rpccore.ErrInternal
	}
	eventFilter = eventFilter.WithLimit(h.filterLimit)
	defer h.callAndLogErr(eventFilter.Close, "Error closing event filter in events")

	filteredEvents, cToken, err := eventFilter.Events(cToken, args.ChunkSize)
	if err != nil {
		return nil, h.adaptFilterErr(err)
	}

	emittedEvents := make([]*EmittedEvent, 0, len(filteredEvents))
	for _, fEvent := range filteredEvents {
		emittedEvents = append(emittedEvents, &EmittedEvent{
			BlockNumber:     &fEvent.BlockNumber,
			BlockHash:       fEvent.BlockHash,
			TransactionHash: fEvent.TransactionHash,
			Event: &Event{
				From: fEvent.From,
				Keys: fEvent.Keys,
				Data: fEvent.Data,
			},
		})
	}

	cTokenStr := ""
	if cToken != nil {
		cTokenStr = cToken.String()
	}
	return &EventsChunk{Events: emittedEvents, ContinuationToken: cTokenStr}, nil
}

func (h *Handler) adaptFilterErr(err error) *jsonrpc.Error {
	switch {
	case errors.Is(err, blockchain.ErrPageSizeTooBig):
		return rpccore.ErrPageSizeTooBig
	case errors.Is(err, blockchain.ErrTooManyKeysInFilter):
		return rpccore.ErrTooManyKeysInFilter
	case errors.Is(err, blockchain.ErrInvalidBlockRange):
		return rpccore.ErrInvalidBlockRange
	case errors.Is(err, blockchain.ErrInvalidContinuationToken):
		return rpccore.ErrInvalidContinuationToken
	default:
		h.log.Errorw("Failed to filter events", "err", err)
		return rpccore.ErrInternal
	}
}
