package rpc

import (
	"github.com/NethermindEth/starkevents/blockchain"
	"github.com/NethermindEth/starkevents/jsonrpc"
	"github.com/NethermindEth/starkevents/utils"
)

type Handler struct {
	bcReader    blockchain.Reader
	log         utils.SimpleLogger
	version     string
	filterLimit uint
}

func New(bcReader blockchain.Reader, version string, logger utils.SimpleLogger) *Handler {
	return &Handler{
		bcReader: bcReader,
		log:      logger,
		version:  version,
	}
}

// WithFilterLimit sets the maximum number of blocks to scan in a single call for event filtering.
// Zero means no limit.
func (h *Handler) WithFilterLimit(limit uint) *Handler {
	h.filterLimit = limit
	return h
}

func (h *Handler) Version() (string, *jsonrpc.Error) {
	return h.version, nil
}

func (h *Handler) callAndLogErr(f func() error, msg string) {
	if err := f(); err != nil {
		h.log.Errorw(msg, "err", err)
	}
}

// Methods lists every endpoint the handler serves.
func (h *Handler) Methods() []jsonrpc.Method {
	return []jsonrpc.Method{
		{
			Name:    "starknet_blockNumber",
			Handler: h.BlockNumber,
		},
		{
			Name:    "starknet_blockHashAndNumber",
			Handler: h.BlockHashAndNumber,
		},
		{
			Name:    "starknet_getEvents",
			Params:  []jsonrpc.Parameter{{Name: "filter"}},
			Handler: h.Events,
		},
		{
			Name:    "juno_version",
			Handler: h.Version,
		},
	}
}
