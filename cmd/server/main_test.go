package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "TAX_ID_HEADER", "CORS_ALLOWED_ORIGINS", "METRICS_ADDR", "LOG_LEVEL", "TIMEZONE"} {
		t.Setenv(key, "")
	}

	config, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, "3333", config.ServerPort)
	assert.Equal(t, "cpf", config.TaxIDHeader)
	assert.Equal(t, []string{"*"}, config.AllowedOrigins)
	assert.Empty(t, config.MetricsAddr)
	assert.Equal(t, slog.LevelInfo, config.LogLevel)
	assert.Equal(t, time.Local, config.Location)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("TAX_ID_HEADER", "taxId")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("METRICS_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TIMEZONE", "UTC")

	config, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", config.ServerPort)
	assert.Equal(t, "taxId", config.TaxIDHeader)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, config.AllowedOrigins)
	assert.Equal(t, ":9090", config.MetricsAddr)
	assert.Equal(t, slog.LevelDebug, config.LogLevel)
	assert.Equal(t, "UTC", config.Location.String())
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")
	_, err := loadConfig()
	assert.Error(t, err)

	t.Setenv("LOG_LEVEL", "")
	t.Setenv("TIMEZONE", "Nowhere/Atlantis")
	_, err = loadConfig()
	assert.Error(t, err)
}

func TestRun_ServesUntilCanceled(t *testing.T) {
	defer goleak.VerifyNone(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- run(ctx, Config{TaxIDHeader: "cpf", Location: time.UTC}, testLogger(), ln)
	}()

	client := &http.Client{
		Timeout:   5 * time.Second,
		Transport: &http.Transport{DisableKeepAlives: true},
	}
	base := "http://" + ln.Addr().String()

	resp, err := client.Get(base + "/")
	require.NoError(t, err)
	var msg map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&msg))
	resp.Body.Close()
	assert.Equal(t, "Finapi, welcome", msg["msg"])

	resp, err = client.Post(base+"/account", "application/json", bytes.NewBufferString(`{"taxId":"111","name":"Alice"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("run did not return after cancel")
	}
	client.CloseIdleConnections()
}
