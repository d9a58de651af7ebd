package blockchain

import (
	"github.com/NethermindEth/starkevents/core"
	"github.com/NethermindEth/starkevents/core/felt"
	"github.com/bits-and-blooms/bloom/v3"
)

type EventMatcher struct {
	contractAddress *felt.Felt
	keysMap         []map[felt.Felt]struct{}
}

func NewEventMatcher(contractAddress *felt.Felt, keys [][]felt.Felt) EventMatcher {
	return EventMatcher{
		contractAddress: contractAddress,
		keysMap:         makeKeysMaps(keys),
	}
}

func makeKeysMaps(filterKeys [][]felt.Felt) []map[felt.Felt]struct{} {
	filterKeysMaps := make([]map[felt.Felt]struct{}, len(filterKeys))
	for index, keys := range filterKeys {
		kMap := make(map[felt.Felt]struct{}, len(keys))
		for _, key := range keys {
			kMap[key] = struct{}{}
		}
		filterKeysMaps[index] = kMap
	}

	return filterKeysMaps
}

func (e *EventMatcher) MatchesAddress(eventFrom *felt.Felt) bool {
	if e.contractAddress == nil {
		return true
	}
	return eventFrom != nil && eventFrom.Equal(e.contractAddress)
}

func (e *EventMatcher) MatchesEventKeys(eventKeys []*felt.Felt) bool {
	// every constrained position must exist, even when it accepts any value
	if len(eventKeys) < len(e.keysMap) {
		return false
	}

	/// e.keys = [["V1", "V2"], [], ["V3"]] means:
	/// ((event.Keys[0] == "V1" OR event.Keys[0] == "V2") AND (event.Keys[2] == "V3")).
	for index, kMap := range e.keysMap {
		if len(kMap) == 0 {
			continue
		}
		if _, found := kMap[*eventKeys[index]]; !found {
			return false
		}
	}

	return true
}

func (e *EventMatcher) Matches(event *core.Event) bool {
	return e.MatchesAddress(event.From) && e.MatchesEventKeys(event.Keys)
}

// TestBloom reports whether a block with the given events bloom may hold a
// match. False means the block can be skipped without reading its receipts.
func (e *EventMatcher) TestBloom(bloomFilter *bloom.BloomFilter) bool {
	if bloomFilter == nil {
		return true
	}
	if e.contractAddress != nil && !core.BloomContains(bloomFilter, e.contractAddress) {
		return false
	}

	for _, kMap := range e.keysMap {
		if len(kMap) == 0 {
			continue
		}

		possibleMatch := false
		for key := range kMap {
			if core.BloomContains(bloomFilter, &key) {
				possibleMatch = true
				break
			}
		}
		// no key on this index matches the filter
		if !possibleMatch {
			return false
		}
	}

	return true
}

// AppendBlockEvents walks the block's events in order after the first skip
// ones, appending matches until chunkSize is reached. It returns how many
// events of the block have been visited, and whether it stopped because the
// chunk was full.
func (e *EventMatcher) AppendBlockEvents(
	matchedEventsSofar []FilteredEvent,
	header *core.Header,
	receipts []*core.TransactionReceipt,
	skip uint64,
	chunkSize uint64,
) ([]FilteredEvent, uint64, bool) {
	var visited uint64
	for txIndex, receipt := range receipts {
		// whole receipt was visited by a previous page
		if visited+uint64(len(receipt.Events)) <= skip {
			visited += uint64(len(receipt.Events))
			continue
		}

		for i, event := range receipt.Events {
			if visited < skip {
				visited++
				continue
			}
			visited++

			if !e.Matches(event) {
				continue
			}

			matchedEventsSofar = append(matchedEventsSofar, FilteredEvent{
				Event:            event,
				BlockNumber:      header.Number,
				BlockHash:        header.Hash,
				TransactionHash:  receipt.TransactionHash,
				TransactionIndex: uint(txIndex),
				EventIndex:       uint(i),
			})
			if uint64(len(matchedEventsSofar)) >= chunkSize {
				return matchedEventsSofar, visited, true
			}
		}
	}
	return matchedEventsSofar, visited, false
}
