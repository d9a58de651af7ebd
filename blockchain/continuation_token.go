package blockchain

import (
	"strconv"
	"strings"
)

// ContinuationToken is the position a page ended at. BlockOffset counts
// blocks from the filter's FromBlock and VisitedInBlock counts the events of
// that block already examined, matched or not.
type ContinuationToken struct {
	BlockOffset    uint64
	VisitedInBlock uint64
}

// String encodes the token as "<offset base 10>,<visited base 16>".
func (c *ContinuationToken) String() string {
	return strconv.FormatUint(c.BlockOffset, 10) + "," + strconv.FormatUint(c.VisitedInBlock, 16)
}

// ParseContinuationToken decodes String output. Range checks against the
// chain happen when the token is used.
func ParseContinuationToken(token string) (*ContinuationToken, error) {
	fields := strings.Split(token, ",")
	if len(fields) != 2 {
		return nil, ErrInvalidContinuationToken
	}

	offset, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return nil, ErrInvalidContinuationToken
	}
	visited, err := strconv.ParseUint(fields[1], 16, 64)
	if err != nil {
		return nil, ErrInvalidContinuationToken
	}

	return &ContinuationToken{BlockOffset: offset, VisitedInBlock: visited}, nil
}
