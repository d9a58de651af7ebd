package node_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/NethermindEth/starkevents/db"
	"github.com/NethermindEth/starkevents/mocks"
	"github.com/NethermindEth/starkevents/node"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestReadinessHandlers(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	t.Cleanup(mockCtrl.Finish)

	mockReader := mocks.NewMockReader(mockCtrl)
	handlers := node.NewReadinessHandlers(mockReader)
	ctx := context.Background()

	serve := func(h http.HandlerFunc, path string) int {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, http.NoBody)
		require.NoError(t, err)
		rr := httptest.NewRecorder()
		h(rr, req)
		return rr.Code
	}

	t.Run("live", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, serve(handlers.HandleLive, "/live"))
	})

	t.Run("not ready on an empty ledger", func(t *testing.T) {
		mockReader.EXPECT().Height().Return(uint64(0), db.ErrKeyNotFound)
		assert.Equal(t, http.StatusServiceUnavailable, serve(handlers.HandleReady, "/ready"))
	})

	t.Run("ready with a block", func(t *testing.T) {
		mockReader.EXPECT().Height().Return(uint64(0), nil)
		assert.Equal(t, http.StatusOK, serve(handlers.HandleReady, "/ready"))
	})
}
