package blockchain_test

import (
	"testing"

	"github.com/NethermindEth/starkevents/blockchain"
	"github.com/NethermindEth/starkevents/core"
	"github.com/NethermindEth/starkevents/core/felt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	feeToken = hexFelt("0x49d36570d4e46f48e99674bd3fcc84644ddd6b96f7c741b1562b82f9e004dc7")
	account  = hexFelt("0x2356b628d108863baf8644c945d97bad70190af5957031f4852d00d0f690a77")

	transferKey = hexFelt("0x99cd8bde557814842a3121e8ddfd433a539b8c9f14bf31ebf108d12e6196e9")
	executeKey  = hexFelt("0x5ad857f66a5b55f1301ff1ed7e098ac6d4433148f0b72ebc4a2945ab85ad53")
)

func hexFelt(s string) *felt.Felt {
	f, err := new(felt.Felt).SetString(s)
	if err != nil {
		panic(err)
	}
	return f
}

// invokeEvents mimics an account invoke: a fee transfer, the account's
// execute event, and the fee transfer to the sequencer.
func invokeEvents() []*core.Event {
	return []*core.Event{
		{From: feeToken, Keys: []*felt.Felt{transferKey}, Data: keys(1, 2, 3)},
		{From: account, Keys: []*felt.Felt{executeKey}, Data: keys(4)},
		{From: feeToken, Keys: []*felt.Felt{transferKey}, Data: keys(5, 6, 7)},
	}
}

func invokeBlock(number uint64, txs int) *core.Block {
	events := make([][]*core.Event, txs)
	for i := range events {
		events[i] = invokeEvents()
	}
	return newBlock(number, events...)
}

func eventFilter(t *testing.T, chain *blockchain.Blockchain, filter blockchain.Filter) blockchain.EventFilterer {
	t.Helper()
	f, err := chain.EventFilter(filter)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, f.Close()) })
	return f
}

// drain follows continuation tokens until none is returned.
func drain(t *testing.T, f blockchain.EventFilterer, chunkSize uint64) ([][]blockchain.FilteredEvent, []string) {
	t.Helper()
	var (
		pages  [][]blockchain.FilteredEvent
		tokens []string
		cToken *blockchain.ContinuationToken
	)
	for range 1000 {
		events, next, err := f.Events(cToken, chunkSize)
		require.NoError(t, err)
		pages = append(pages, events)
		if next == nil {
			return pages, tokens
		}
		tokens = append(tokens, next.String())
		cToken = next
	}
	t.Fatal("pagination did not terminate")
	return nil, nil
}

func flatten(pages [][]blockchain.FilteredEvent) []blockchain.FilteredEvent {
	var all []blockchain.FilteredEvent
	for _, p := range pages {
		all = append(all, p...)
	}
	return all
}

func TestEventsPaginationTrace(t *testing.T) {
	chain := newChain(t, invokeBlock(0, 5), invokeBlock(1, 5))
	f := eventFilter(t, chain, blockchain.Filter{FromBlock: 0, ToBlock: 1, Address: feeToken})

	events, cToken, err := f.Events(nil, 7)
	require.NoError(t, err)
	require.Len(t, events, 7)
	require.NotNil(t, cToken)
	assert.Equal(t, "0,a", cToken.String())

	events, cToken, err = f.Events(cToken, 7)
	require.NoError(t, err)
	require.Len(t, events, 7)
	require.NotNil(t, cToken)
	assert.Equal(t, "1,6", cToken.String())
	assert.Equal(t, uint64(0), events[2].BlockNumber)
	assert.Equal(t, uint64(1), events[3].BlockNumber)

	events, cToken, err = f.Events(cToken, 7)
	require.NoError(t, err)
	assert.Len(t, events, 6)
	assert.Nil(t, cToken)

	for _, e := range events {
		assert.True(t, e.From.Equal(feeToken))
	}
}

func TestEventsEnrichment(t *testing.T) {
	chain := newChain(t, invokeBlock(0, 2))
	f := eventFilter(t, chain, blockchain.Filter{FromBlock: 0, ToBlock: 0})

	events, cToken, err := f.Events(nil, 10)
	require.NoError(t, err)
	require.Nil(t, cToken)
	require.Len(t, events, 6)

	fourth := events[4]
	assert.True(t, fourth.From.Equal(account))
	assert.True(t, fourth.BlockHash.Equal(blockHash(0)))
	assert.True(t, fourth.TransactionHash.Equal(fe(1)))
	assert.Equal(t, uint(1), fourth.TransactionIndex)
	assert.Equal(t, uint(1), fourth.EventIndex)
}

func TestEventsScenarios(t *testing.T) {
	t.Run("one block with two of three events matching", func(t *testing.T) {
		chain := newChain(t, newBlock(0, invokeEvents()))
		f := eventFilter(t, chain, blockchain.Filter{Address: feeToken})

		events, cToken, err := f.Events(nil, 10)
		require.NoError(t, err)
		assert.Len(t, events, 2)
		assert.Nil(t, cToken)
	})

	t.Run("two blocks of five matches each", func(t *testing.T) {
		matching := make([]*core.Event, 5)
		for i := range matching {
			matching[i] = &core.Event{From: feeToken, Keys: []*felt.Felt{transferKey}}
		}
		chain := newChain(t, newBlock(0, matching), newBlock(1, matching))
		f := eventFilter(t, chain, blockchain.Filter{FromBlock: 0, ToBlock: 1})

		events, cToken, err := f.Events(nil, 7)
		require.NoError(t, err)
		assert.Len(t, events, 7)
		require.NotNil(t, cToken)
		assert.Equal(t, "1,2", cToken.String())

		events, cToken, err = f.Events(cToken, 7)
		require.NoError(t, err)
		assert.Len(t, events, 3)
		assert.Nil(t, cToken)
	})

	t.Run("five blocks three of which are empty", func(t *testing.T) {
		ten := make([]*core.Event, 10)
		for i := range ten {
			ten[i] = &core.Event{From: feeToken}
		}
		chain := newChain(t,
			newBlock(0),
			newBlock(1, ten),
			newBlock(2, nil, nil),
			newBlock(3),
			newBlock(4, ten),
		)
		f := eventFilter(t, chain, blockchain.Filter{FromBlock: 0, ToBlock: 4})

		events, cToken, err := f.Events(nil, 10)
		require.NoError(t, err)
		assert.Len(t, events, 10)
		require.NotNil(t, cToken)
		assert.Equal(t, "1,a", cToken.String())

		events, cToken, err = f.Events(cToken, 10)
		require.NoError(t, err)
		assert.Len(t, events, 10)
		assert.Nil(t, cToken)
	})
}

func TestEventsChunkFillsAtLastEvent(t *testing.T) {
	chain := newChain(t, invokeBlock(0, 1), invokeBlock(1, 1))

	t.Run("inside the range returns a token", func(t *testing.T) {
		f := eventFilter(t, chain, blockchain.Filter{FromBlock: 0, ToBlock: 1})
		events, cToken, err := f.Events(nil, 3)
		require.NoError(t, err)
		assert.Len(t, events, 3)
		require.NotNil(t, cToken)
		assert.Equal(t, "0,3", cToken.String())

		// fully visited block is passed over
		events, cToken, err = f.Events(cToken, 3)
		require.NoError(t, err)
		assert.Len(t, events, 3)
		assert.Nil(t, cToken)
		assert.Equal(t, uint64(1), events[0].BlockNumber)
	})

	t.Run("at the end of the range returns no token", func(t *testing.T) {
		f := eventFilter(t, chain, blockchain.Filter{FromBlock: 0, ToBlock: 1})
		events, cToken, err := f.Events(nil, 6)
		require.NoError(t, err)
		assert.Len(t, events, 6)
		assert.Nil(t, cToken)
	})

	t.Run("page after a full one can be empty", func(t *testing.T) {
		f := eventFilter(t, chain, blockchain.Filter{FromBlock: 0, ToBlock: 1, Address: account})
		pages, tokens := drain(t, f, 1)
		assert.Equal(t, []string{"0,2", "1,2"}, tokens)
		require.Len(t, pages, 3)
		assert.Empty(t, pages[2])
	})
}

func TestEventsNoMatches(t *testing.T) {
	chain := newChain(t, invokeBlock(0, 3), newBlock(1))
	f := eventFilter(t, chain, blockchain.Filter{FromBlock: 0, ToBlock: 1, Address: fe(0xdead)})

	events, cToken, err := f.Events(nil, 10)
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Nil(t, cToken)
}

func TestEventsDeterminism(t *testing.T) {
	chain := newChain(t, invokeBlock(0, 4), invokeBlock(1, 2))
	filter := blockchain.Filter{FromBlock: 0, ToBlock: 1, Keys: [][]felt.Felt{{*transferKey}}}

	first, firstToken, err := eventFilter(t, chain, filter).Events(nil, 5)
	require.NoError(t, err)
	for range 3 {
		again, againToken, err := eventFilter(t, chain, filter).Events(nil, 5)
		require.NoError(t, err)
		assert.Equal(t, first, again)
		assert.Equal(t, firstToken, againToken)
	}
}

func TestEventsChainingMatchesSinglePass(t *testing.T) {
	chain := newChain(t,
		invokeBlock(0, 5),
		newBlock(1),
		invokeBlock(2, 3),
		newBlock(3, nil, invokeEvents(), nil),
		invokeBlock(4, 7),
	)

	filters := map[string]blockchain.Filter{
		"everything":   {FromBlock: 0, ToBlock: 4},
		"fee token":    {FromBlock: 0, ToBlock: 4, Address: feeToken},
		"execute key":  {FromBlock: 1, ToBlock: 4, Keys: [][]felt.Felt{{*executeKey}}},
		"two keys":     {FromBlock: 0, ToBlock: 3, Keys: [][]felt.Felt{{*executeKey, *transferKey}}},
		"single block": {FromBlock: 2, ToBlock: 2, Address: account},
	}

	for name, filter := range filters {
		t.Run(name, func(t *testing.T) {
			f := eventFilter(t, chain, filter)
			all, cToken, err := f.Events(nil, blockchain.MaxEventChunkSize)
			require.NoError(t, err)
			require.Nil(t, cToken)
			require.NotEmpty(t, all)

			for _, chunkSize := range []uint64{1, 2, 3, 7, 10, 64} {
				pages, _ := drain(t, f, chunkSize)
				assert.Equal(t, all, flatten(pages), "chunk size %d", chunkSize)
				for i, page := range pages {
					if i < len(pages)-1 {
						assert.Len(t, page, int(chunkSize))
					} else {
						// may be empty when the previous page ended on the last match
						assert.LessOrEqual(t, len(page), int(chunkSize))
					}
				}
			}
		})
	}
}

func TestEventsInvalidInput(t *testing.T) {
	chain := newChain(t, invokeBlock(0, 2), newBlock(1), invokeBlock(2, 1))
	f := eventFilter(t, chain, blockchain.Filter{FromBlock: 0, ToBlock: 2})

	t.Run("page size", func(t *testing.T) {
		_, _, err := f.Events(nil, blockchain.MaxEventChunkSize+1)
		assert.ErrorIs(t, err, blockchain.ErrPageSizeTooBig)
	})

	tokens := map[string]*blockchain.ContinuationToken{
		"offset past the range":        {BlockOffset: 3},
		"visited past the block":       {BlockOffset: 0, VisitedInBlock: 7},
		"visited inside empty block":   {BlockOffset: 1, VisitedInBlock: 1},
		"offset and visited too large": {BlockOffset: 100, VisitedInBlock: 100},
	}
	for name, cToken := range tokens {
		t.Run(name, func(t *testing.T) {
			events, next, err := f.Events(cToken, 10)
			assert.ErrorIs(t, err, blockchain.ErrInvalidContinuationToken)
			assert.Nil(t, events)
			assert.Nil(t, next)
		})
	}

	t.Run("fully visited block is accepted", func(t *testing.T) {
		events, next, err := f.Events(&blockchain.ContinuationToken{BlockOffset: 0, VisitedInBlock: 6}, 10)
		require.NoError(t, err)
		assert.Len(t, events, 3)
		assert.Nil(t, next)
	})

	t.Run("key positions", func(t *testing.T) {
		tooMany := eventFilter(t, chain, blockchain.Filter{Keys: make([][]felt.Felt, blockchain.MaxEventFilterKeys+1)})
		_, _, err := tooMany.Events(nil, 1)
		assert.ErrorIs(t, err, blockchain.ErrTooManyKeysInFilter)
	})

	t.Run("block range", func(t *testing.T) {
		backwards := eventFilter(t, chain, blockchain.Filter{FromBlock: 2, ToBlock: 1})
		_, _, err := backwards.Events(nil, 1)
		assert.ErrorIs(t, err, blockchain.ErrInvalidBlockRange)
	})
}

func TestEventsWithLimit(t *testing.T) {
	chain := newChain(t, invokeBlock(0, 1), invokeBlock(1, 1), invokeBlock(2, 1))
	f := eventFilter(t, chain, blockchain.Filter{FromBlock: 0, ToBlock: 2}).WithLimit(2)

	events, cToken, err := f.Events(nil, 100)
	require.NoError(t, err)
	assert.Len(t, events, 6)
	require.NotNil(t, cToken)
	assert.Equal(t, "2,0", cToken.String())

	events, cToken, err = f.Events(cToken, 100)
	require.NoError(t, err)
	assert.Len(t, events, 3)
	assert.Nil(t, cToken)
}

func TestEventsBloomSkip(t *testing.T) {
	var scanned, skipped int
	var visited uint64
	chain := newChain(t, invokeBlock(0, 2), newBlock(1), newBlock(2, []*core.Event{{From: fe(0xabc)}}))
	chain.WithListener(&blockchain.SelectiveListener{
		OnBlockScannedCb: func(n uint64) {
			scanned++
			visited += n
		},
		OnBlockSkippedCb: func() { skipped++ },
	})
	f := eventFilter(t, chain, blockchain.Filter{FromBlock: 0, ToBlock: 2, Address: fe(0xabc)})

	events, cToken, err := f.Events(nil, 10)
	require.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Nil(t, cToken)
	assert.Equal(t, 1, scanned)
	assert.Equal(t, uint64(1), visited)
	assert.Equal(t, 2, skipped)
}
