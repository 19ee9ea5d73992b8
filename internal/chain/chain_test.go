package chain

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWallet = "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"

func TestMockClientConnect(t *testing.T) {
	c := NewMockClient(WithoutLatency())

	account, err := c.Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, MockAccount, account.Address)
	assert.Equal(t, int64(MockBalance), account.Balance)

	balance, err := c.GetBalance(context.Background(), MockAccount)
	require.NoError(t, err)
	assert.Equal(t, int64(MockBalance), balance)

	c.FailConnect(errors.New("user rejected"))
	_, err = c.Connect(context.Background())
	assert.Error(t, err)
}

func TestMockClientFailNext(t *testing.T) {
	c := NewMockClient(WithoutLatency())
	boom := errors.New("boom")
	c.FailNext(KindMint, boom)

	_, err := c.Submit(context.Background(), Call{Kind: KindMint})
	assert.ErrorIs(t, err, boom)

	receipt, err := c.Submit(context.Background(), Call{Kind: KindMint, Item: "Rex"})
	require.NoError(t, err)
	assert.Equal(t, KindMint, receipt.Kind)
	assert.NotEmpty(t, receipt.ID)

	submitted := c.Submitted()
	require.Len(t, submitted, 1)
	assert.Equal(t, "Rex", submitted[0].Item)
}

func TestMockClientHonoursContext(t *testing.T) {
	c := NewMockClient(WithLatency(KindBattle, time.Hour))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := c.Submit(ctx, Call{Kind: KindBattle})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, c.Submitted())
}

// rpcServer fakes the two Solana JSON-RPC methods the client uses
func rpcServer(t *testing.T, calls *int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)

		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
			return
		}

		var result interface{}
		switch req.Method {
		case "getBalance":
			result = map[string]interface{}{
				"context": map[string]interface{}{"slot": 41},
				"value":   5000000000,
			}
		case "getLatestBlockhash":
			result = map[string]interface{}{
				"context": map[string]interface{}{"slot": 42},
				"value": map[string]interface{}{
					"blockhash":            "11111111111111111111111111111111",
					"lastValidBlockHeight": 100,
				},
			}
		default:
			t.Errorf("unexpected method %s", req.Method)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  result,
		})
	}))
	t.Cleanup(server.Close)
	return server
}

func TestSolanaClient(t *testing.T) {
	var calls int32
	server := rpcServer(t, &calls)

	c, err := NewSolanaClient([]string{server.URL}, testWallet, 500, 100, zerolog.Nop())
	require.NoError(t, err)

	account, err := c.Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testWallet, account.Address)
	assert.Equal(t, int64(500), account.Balance)

	lamports, err := c.GetBalance(context.Background(), testWallet)
	require.NoError(t, err)
	assert.Equal(t, int64(5000000000), lamports)

	receipt, err := c.Submit(context.Background(), Call{Kind: KindClaim})
	require.NoError(t, err)
	assert.Equal(t, KindClaim, receipt.Kind)
	assert.Equal(t, "11111111111111111111111111111111", receipt.Ref)
	assert.Equal(t, uint64(42), receipt.Slot)

	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestSolanaClientErrors(t *testing.T) {
	_, err := NewSolanaClient(nil, testWallet, 0, 1, zerolog.Nop())
	assert.ErrorIs(t, err, ErrNoEndpoints)

	_, err = NewSolanaClient([]string{"http://localhost:1"}, "not-base58!", 0, 1, zerolog.Nop())
	assert.Error(t, err)

	var calls int32
	server := rpcServer(t, &calls)
	c, err := NewSolanaClient([]string{server.URL}, testWallet, 0, 100, zerolog.Nop())
	require.NoError(t, err)

	_, err = c.GetBalance(context.Background(), "0xnot-solana")
	assert.Error(t, err)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestSolanaClientRoundRobin(t *testing.T) {
	var first, second int32
	a := rpcServer(t, &first)
	b := rpcServer(t, &second)

	c, err := NewSolanaClient([]string{a.URL, b.URL}, testWallet, 0, 100, zerolog.Nop())
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		_, err := c.Submit(context.Background(), Call{Kind: KindBattle})
		require.NoError(t, err)
	}

	assert.Equal(t, int32(2), atomic.LoadInt32(&first))
	assert.Equal(t, int32(2), atomic.LoadInt32(&second))
}
