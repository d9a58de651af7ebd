package node

import (
	"net/http"

	"github.com/NethermindEth/starkevents/blockchain"
)

type ReadinessHandlers struct {
	bcReader blockchain.Reader
}

func NewReadinessHandlers(bcReader blockchain.Reader) *ReadinessHandlers {
	return &ReadinessHandlers{bcReader: bcReader}
}

// HandleLive answers as long as the process serves HTTP.
func (h *ReadinessHandlers) HandleLive(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// HandleReady reports ready once the ledger holds at least one block.
func (h *ReadinessHandlers) HandleReady(w http.ResponseWriter, r *http.Request) {
	if _, err := h.bcReader.Height(); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
}
