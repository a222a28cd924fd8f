package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taichi6930/race-schedule-api-sub006/internal/api"
	"github.com/taichi6930/race-schedule-api-sub006/internal/factory"
	"github.com/taichi6930/race-schedule-api-sub006/internal/testutil"
)

func TestServerConfigAddr(t *testing.T) {
	assert.Equal(t, ":8080", api.DefaultServerConfig().Addr())
	assert.Equal(t, "127.0.0.1:0", api.ServerConfig{Host: "127.0.0.1"}.Addr())
}

func TestServerRunsUntilCancelled(t *testing.T) {
	cfg := api.DefaultServerConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0
	cfg.ShutdownTimeout = time.Second

	server := api.NewServer(factory.NewTestApp().Router(), cfg, testutil.NopLogger())
	ln, err := server.Listen()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Run(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/v1/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
