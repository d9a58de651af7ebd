package blockchain

import (
	"errors"

	"github.com/NethermindEth/starkevents/core/felt"
)

const (
	MaxEventChunkSize  = 1000
	MaxEventFilterKeys = 100
)

var (
	ErrPageSizeTooBig           = errors.New("requested page size is too big")
	ErrTooManyKeysInFilter      = errors.New("too many keys in filter")
	ErrInvalidBlockRange        = errors.New("from_block is greater than to_block")
	ErrInvalidContinuationToken = errors.New("invalid continuation token")
)

// Filter selects events in the inclusive height range [FromBlock, ToBlock].
// Keys[i] lists the accepted values for the key at position i, an empty list
// only requires the position to exist.
type Filter struct {
	FromBlock uint64
	ToBlock   uint64
	Address   *felt.Felt
	Keys      [][]felt.Felt
}

// ValidateFilter checks the request limits. It reads nothing.
func ValidateFilter(filter Filter, chunkSize uint64) error {
	if chunkSize == 0 || chunkSize > MaxEventChunkSize {
		return ErrPageSizeTooBig
	}
	if len(filter.Keys) > MaxEventFilterKeys {
		return ErrTooManyKeysInFilter
	}
	if filter.FromBlock > filter.ToBlock {
		return ErrInvalidBlockRange
	}
	return nil
}
