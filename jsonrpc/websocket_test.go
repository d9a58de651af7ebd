package jsonrpc_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/NethermindEth/starkevents/jsonrpc"
	"github.com/NethermindEth/starkevents/utils"
	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The caller is responsible for closing the connection.
func testConnection(t *testing.T, ctx context.Context, listener jsonrpc.NewRequestListener) *websocket.Conn {
	return testConnectionWithParams(t, ctx, listener, jsonrpc.DefaultWebsocketConnParams())
}

func testConnectionWithParams(t *testing.T, ctx context.Context, listener jsonrpc.NewRequestListener,
	params *jsonrpc.WebsocketConnParams,
) *websocket.Conn {
	method := jsonrpc.Method{
		Name:   "test_echo",
		Params: []jsonrpc.Parameter{{Name: "msg"}},
		Handler: func(msg string) (string, *jsonrpc.Error) {
			return msg, nil
		},
	}
	rpc := jsonrpc.NewServer(1, utils.NewNopZapLogger())
	require.NoError(t, rpc.RegisterMethod(method))

	// Server
	srv := httptest.NewServer(jsonrpc.NewWebsocket(rpc, utils.NewNopZapLogger()).WithListener(listener).WithConnParams(params))
	t.Cleanup(srv.Close)

	// Client
	conn, resp, err := websocket.Dial(ctx, srv.URL, nil) //nolint:bodyclose // websocket package closes resp.Body for us.
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	return conn
}

func TestHandler(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	listener := new(CountingEventListener)
	conn := testConnection(t, ctx, listener)

	for _, id := range []string{"1", "2"} {
		msg := `{"jsonrpc" : "2.0", "method" : "test_echo", "params" : [ "abc123" ], "id" : ` + id + `}`
		err := conn.Write(ctx, websocket.MessageText, []byte(msg))
		require.NoError(t, err)

		want := `{"jsonrpc":"2.0","result":"abc123","id":` + id + `}`
		_, got, err := conn.Read(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, string(got))
	}
	assert.Len(t, listener.OnNewRequestLogs, 2)

	require.NoError(t, conn.Close(websocket.StatusNormalClosure, ""))
}

func TestReadLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	params := jsonrpc.DefaultWebsocketConnParams()
	params.ReadLimit = 16
	conn := testConnectionWithParams(t, ctx, new(CountingEventListener), params)
	defer conn.CloseNow() //nolint:errcheck

	msg := `{"jsonrpc" : "2.0", "method" : "test_echo", "params" : [ "abc123" ], "id" : 1}`
	require.NoError(t, conn.Write(ctx, websocket.MessageText, []byte(msg)))

	_, _, err := conn.Read(ctx)
	require.Error(t, err)
	assert.Equal(t, websocket.StatusMessageTooBig, websocket.CloseStatus(err))
}
