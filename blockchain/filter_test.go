package blockchain_test

import (
	"testing"

	"github.com/NethermindEth/starkevents/blockchain"
	"github.com/NethermindEth/starkevents/core/felt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFilter(t *testing.T) {
	tooManyKeys := make([][]felt.Felt, blockchain.MaxEventFilterKeys+1)
	maxKeys := make([][]felt.Felt, blockchain.MaxEventFilterKeys)
	// alternatives do not count towards the limit
	maxKeys[0] = make([]felt.Felt, 500)

	tests := map[string]struct {
		filter    blockchain.Filter
		chunkSize uint64
		err       error
	}{
		"valid":                   {filter: blockchain.Filter{FromBlock: 1, ToBlock: 2}, chunkSize: 10},
		"single block":            {filter: blockchain.Filter{FromBlock: 2, ToBlock: 2}, chunkSize: 1},
		"max chunk size":          {chunkSize: blockchain.MaxEventChunkSize},
		"chunk size zero":         {chunkSize: 0, err: blockchain.ErrPageSizeTooBig},
		"chunk size 1001":         {chunkSize: 1001, err: blockchain.ErrPageSizeTooBig},
		"100 key positions":       {filter: blockchain.Filter{Keys: maxKeys}, chunkSize: 1},
		"101 key positions":       {filter: blockchain.Filter{Keys: tooManyKeys}, chunkSize: 1, err: blockchain.ErrTooManyKeysInFilter},
		"from after to":           {filter: blockchain.Filter{FromBlock: 3, ToBlock: 2}, chunkSize: 1, err: blockchain.ErrInvalidBlockRange},
		"page size checked first": {filter: blockchain.Filter{FromBlock: 3, ToBlock: 2, Keys: tooManyKeys}, chunkSize: 1001, err: blockchain.ErrPageSizeTooBig},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			err := blockchain.ValidateFilter(test.filter, test.chunkSize)
			if test.err == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, test.err)
			}
		})
	}
}

func TestContinuationTokenString(t *testing.T) {
	assert.Equal(t, "0,a", (&blockchain.ContinuationToken{BlockOffset: 0, VisitedInBlock: 10}).String())
	assert.Equal(t, "12,0", (&blockchain.ContinuationToken{BlockOffset: 12}).String())
	assert.Equal(t, "1,ff", (&blockchain.ContinuationToken{BlockOffset: 1, VisitedInBlock: 255}).String())
}

func TestParseContinuationToken(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		for token, want := range map[string]blockchain.ContinuationToken{
			"0,a":   {BlockOffset: 0, VisitedInBlock: 10},
			"1,6":   {BlockOffset: 1, VisitedInBlock: 6},
			"42,0":  {BlockOffset: 42},
			"7,1f4": {BlockOffset: 7, VisitedInBlock: 500},
		} {
			got, err := blockchain.ParseContinuationToken(token)
			require.NoError(t, err, token)
			assert.Equal(t, want, *got, token)
			assert.Equal(t, token, got.String())
		}
	})

	t.Run("invalid", func(t *testing.T) {
		for _, token := range []string{
			"",
			"0xabdel",
			"0,100,1",
			"0,0,100",
			"0",
			",a",
			"0,",
			"a,0",
			"-1,0",
			"+1,0",
			"0,0x10",
			"0,-1",
			"0,g",
			" 0,1",
			"18446744073709551616,0",
		} {
			_, err := blockchain.ParseContinuationToken(token)
			assert.ErrorIs(t, err, blockchain.ErrInvalidContinuationToken, token)
		}
	})
}
