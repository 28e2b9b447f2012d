package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/thryx-chain/thryx/api"
	"github.com/thryx-chain/thryx/app"
	"github.com/thryx-chain/thryx/internal/config"
	banktypes "github.com/thryx-chain/thryx/x/bank/types"
	"github.com/thryx-chain/thryx/x/shared/safemath"
)

type testEnv struct {
	app    *app.App
	server *api.Server
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	a := app.New("thryx-test-1", log.NewNopLogger())

	cfg := config.Default().API
	cfg.JWTSecret = "test-secret-test-secret-test-1234"
	cfg.RateLimitRPS = 10_000

	srv, err := api.NewServer(cfg, a, api.Options{}, log.NewNopLogger())
	require.NoError(t, err)
	return &testEnv{app: a, server: srv}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.server.Router().ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) login(t *testing.T, username, address string) string {
	t.Helper()
	rec := e.request(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"password": "correct-horse-battery",
		"address":  address,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = e.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": username,
		"password": "correct-horse-battery",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "thryx-test-1")
}

func TestLoginRejectsBadPassword(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, "alice", "alice-addr")

	rec := env.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWriteRoutesRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/amm/pools", "", map[string]string{
		"creator": "alice", "token_a": "aeth", "token_b": "uusdc",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.request(t, http.MethodPost, "/api/amm/pools", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPoolLifecycleOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "alice", "alice-addr")

	require.NoError(t, env.app.BankKeeper.MintCoins("alice-addr",
		banktypes.NewCoin("aeth", math.NewInt(100).Mul(safemath.Scale)),
		banktypes.NewCoin("uusdc", math.NewInt(1_000_000).Mul(safemath.StableScale)),
	))

	rec := env.request(t, http.MethodPost, "/api/amm/pools", token, map[string]string{
		"creator": "alice-addr", "token_a": "aeth", "token_b": "uusdc",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		PoolId uint64 `json:"pool_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotZero(t, created.PoolId)

	rec = env.request(t, http.MethodPost, "/api/amm/add-liquidity", token, map[string]any{
		"provider": "alice-addr",
		"pool_id":  created.PoolId,
		"amount_a": math.NewInt(10).Mul(safemath.Scale),
		"amount_b": math.NewInt(10_000).Mul(safemath.StableScale),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.request(t, http.MethodGet,
		fmt.Sprintf("/api/amm/pools/%d/quote?token_in=uusdc&amount_in=%s",
			created.PoolId, math.NewInt(100).Mul(safemath.StableScale)),
		"", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.request(t, http.MethodPost, "/api/amm/swap", token, map[string]any{
		"trader":         "alice-addr",
		"pool_id":        created.PoolId,
		"token_in":       "uusdc",
		"amount_in":      math.NewInt(100).Mul(safemath.StableScale),
		"min_amount_out": math.NewInt(1),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.request(t, http.MethodGet, "/api/amm/pools", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "uusdc")
}

func TestUnknownPoolReturns404(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/api/amm/pools/42", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOracleFlowOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "operator", "operator-addr")

	for i := 1; i <= 3; i++ {
		addr := fmt.Sprintf("oracle-%d", i)
		_, err := env.app.RegistryKeeper.RegisterAgent(addr, math.NewInt(1_000_000), "oracle", "")
		require.NoError(t, err)
	}

	prices := []int64{3000, 3010, 2990}
	for i, p := range prices {
		rec := env.request(t, http.MethodPost, "/api/oracle/submit", token, map[string]any{
			"reporter": fmt.Sprintf("oracle-%d", i+1),
			"pair":     "ETH/USD",
			"price":    math.NewInt(p).Mul(safemath.OracleScale),
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec := env.request(t, http.MethodGet, "/api/oracle/price?pair=ETH/USD", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Price math.Int  `json:"price"`
		Stale bool      `json:"stale"`
		At    time.Time `json:"updated_at"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, math.NewInt(3000).Mul(safemath.OracleScale), resp.Price)
	require.False(t, resp.Stale)

	// Unregistered reporters are turned away with 403.
	rec = env.request(t, http.MethodPost, "/api/oracle/submit", token, map[string]any{
		"reporter": "ghost",
		"pair":     "ETH/USD",
		"price":    math.NewInt(3000).Mul(safemath.OracleScale),
	})
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCurveTradeOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "creator", "creator-addr")

	require.NoError(t, env.app.BankKeeper.MintCoins("creator-addr",
		banktypes.NewCoin("aeth", math.NewInt(10).Mul(safemath.Scale))))

	rec := env.request(t, http.MethodPost, "/api/curve/assets", token, map[string]string{
		"creator": "creator-addr", "denom": "ucreator",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.request(t, http.MethodPost, "/api/curve/buy", token, map[string]any{
		"buyer":          "creator-addr",
		"denom":          "ucreator",
		"eth_in":         safemath.Scale,
		"min_tokens_out": math.ZeroInt(),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.request(t, http.MethodGet, "/api/curve/assets/ucreator", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.request(t, http.MethodGet, "/api/curve/assets/ucreator/price", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestEventsEndpointWithoutDatabase(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/api/events", "", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRegistryAdminOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "admin", "admin-addr")

	rec := env.request(t, http.MethodPost, "/api/registry/agents", token, map[string]string{
		"address":      "agent-1",
		"daily_budget": "1000000",
		"permissions":  "oracle",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.request(t, http.MethodGet, "/api/registry/agents/agent-1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.request(t, http.MethodPut, "/api/registry/agents/agent-1/active", token,
		map[string]bool{"active": false})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.request(t, http.MethodGet, "/api/registry/agents", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotContains(t, rec.Body.String(), `"agent-1"`)
}
