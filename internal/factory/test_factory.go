package factory

import (
	"time"

	"github.com/mcoot/battleship-go2/internal/dependencies/mocks"
	"github.com/mcoot/battleship-go2/internal/services/auth"
	"github.com/mcoot/battleship-go2/internal/services/match"
	"github.com/mcoot/battleship-go2/internal/storage/memory"
	"github.com/mcoot/battleship-go2/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// With nothing queued on MockRandom, auto-placement packs the standard fleet
// into rows 0 and 1 and the random strategy fires in row-major order.
func NewTestApp() *TestApp {
	return NewTestAppWithConfig(match.DefaultConfig())
}

// NewTestAppWithConfig is NewTestApp with custom match defaults
func NewTestAppWithConfig(matchCfg match.Config) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, auth.DefaultConfig(), matchCfg, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
