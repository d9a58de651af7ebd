package core

import (
	"github.com/NethermindEth/starkevents/core/felt"
	"github.com/bits-and-blooms/bloom/v3"
)

const (
	// Calculated at https://hur.st/bloomfilter/?n=1000&p=&m=8192&k=
	// provides 1 in 51 possibility of false positives for approximately 1000 elements
	eventsBloomLength    = 8192
	eventsBloomHashFuncs = 6
)

// EventsBloom indexes the emitting address and every key of every event.
// Key positions are not recorded.
func EventsBloom(receipts []*TransactionReceipt) *bloom.BloomFilter {
	filter := bloom.New(eventsBloomLength, eventsBloomHashFuncs)

	for _, receipt := range receipts {
		for _, event := range receipt.Events {
			fromBytes := event.From.Bytes()
			filter.TestOrAdd(fromBytes[:])
			for _, key := range event.Keys {
				keyBytes := key.Bytes()
				filter.TestOrAdd(keyBytes[:])
			}
		}
	}
	return filter
}

// BloomContains reports whether f may contain v. A nil filter may contain anything.
func BloomContains(f *bloom.BloomFilter, v *felt.Felt) bool {
	if f == nil {
		return true
	}
	b := v.Bytes()
	return f.Test(b[:])
}
