package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/taichi6930/race-schedule-api-sub006/internal/dependencies/mocks"
	"github.com/taichi6930/race-schedule-api-sub006/internal/services/auth"
	"github.com/taichi6930/race-schedule-api-sub006/internal/storage/memory"
)

// TestAPIKey is accepted by apps built with NewTestApp
const TestAPIKey = auth.KeyPrefix + "testkey"

// TestNow is the initial mock time: 2024-02-15 03:00 in JST
var TestNow = time.Date(2024, 2, 14, 18, 0, 0, 0, time.UTC)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
	Memory    *memory.Storage
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// Writes are enabled with TestAPIKey.
func NewTestApp() *TestApp {
	key, err := auth.GenerateKey(mocks.NewMockRandom("testkey"))
	if err != nil {
		panic(err)
	}
	authService, err := auth.New(auth.Config{APIKeyHash: key.Hash})
	if err != nil {
		panic(err)
	}

	return newTestApp(authService)
}

// NewReadOnlyTestApp creates a test App with no API key configured
func NewReadOnlyTestApp() *TestApp {
	authService, _ := auth.New(auth.Config{})
	return newTestApp(authService)
}

func newTestApp(authService *auth.Service) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(TestNow)

	app := newWithDependencies(store, mockClock, authService, slog.New(slog.NewJSONHandler(io.Discard, nil)))

	return &TestApp{
		App:       app,
		MockClock: mockClock,
		Memory:    store,
	}
}
