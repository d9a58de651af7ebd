package rpc

import (
	"encoding/json"
	"errors"

	"github.com/NethermindEth/starkevents/core"
	"github.com/NethermindEth/starkevents/core/felt"
	"github.com/NethermindEth/starkevents/db"
	"github.com/NethermindEth/starkevents/jsonrpc"
	"github.com/NethermindEth/starkevents/rpc/rpccore"
)

// BlockID selects a block by tag, hash or number. The node keeps no pending
// block so Pending resolves to the head like Latest.
type BlockID struct {
	Pending bool
	Latest  bool
	Hash    *felt.Felt
	Number  uint64
}

func (b *BlockID) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"latest"`:
		b.Latest = true
	case `"pending"`:
		b.Pending = true
	default:
		jsonObject := make(map[string]json.RawMessage)
		if err := json.Unmarshal(data, &jsonObject); err != nil {
			return err
		}
		hash, ok := jsonObject["block_hash"]
		if ok {
			b.Hash = new(felt.Felt)
			return json.Unmarshal(hash, b.Hash)
		}

		number, ok := jsonObject["block_number"]
		if ok {
			return json.Unmarshal(number, &b.Number)
		}

		return errors.New("cannot unmarshal block id")
	}
	return nil
}

type BlockHashAndNumber struct {
	Hash   *felt.Felt `json:"block_hash"`
	Number uint64     `json:"block_number"`
}

// BlockNumber returns the latest synced block number.
func (h *Handler) BlockNumber() (uint64, *jsonrpc.Error) {
	num, err := h.bcReader.Height()
	if err != nil {
		return 0, h.noBlockOrInternal(err)
	}
	return num, nil
}

// BlockHashAndNumber returns the block hash and number of the latest synced block.
func (h *Handler) BlockHashAndNumber() (*BlockHashAndNumber, *jsonrpc.Error) {
	head, err := h.bcReader.Head()
	if err != nil {
		return nil, h.noBlockOrInternal(err)
	}
	return &BlockHashAndNumber{Hash: head.Hash, Number: head.Number}, nil
}

func (h *Handler) noBlockOrInternal(err error) *jsonrpc.Error {
	if errors.Is(err, db.ErrKeyNotFound) {
		return rpccore.ErrNoBlock
	}
	h.log.Errorw("Failed to read chain head", "err", err)
	return rpccore.ErrInternal
}

// blockNumber resolves id against head. Numbers above the head are
// returned as is, callers decide whether to clamp or reject them.
func (h *Handler) blockNumber(id *BlockID, head *core.Header) (uint64, *jsonrpc.Error) {
	switch {
	case id.Latest, id.Pending:
		return head.Number, nil
	case id.Hash != nil:
		header, err := h.bcReader.BlockHeaderByHash(id.Hash)
		if err != nil {
			if errors.Is(err, db.ErrKeyNotFound) {
				return 0, rpccore.ErrBlockNotFound
			}
			h.log.Errorw("Failed to read block header", "hash", id.Hash, "err", err)
			return 0, rpccore.ErrInternal
		}
		return header.Number, nil
	default:
		return id.Number, nil
	}
}
