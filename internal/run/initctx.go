package run

import (
	"context"
	"os"
	"runtime"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// TestInfo identifies the run a scenario is initialized for.
type TestInfo struct {
	SessionID string
	TestSuite string
	TestName  string
}

// NewTestInfo stamps a fresh session id for one run.
func NewTestInfo(suite, name string) TestInfo {
	return TestInfo{
		SessionID: uuid.NewString(),
		TestSuite: suite,
		TestName:  name,
	}
}

// NodeInfo describes the node executing the run.
type NodeInfo struct {
	MachineName string
	OS          string
}

// CurrentNodeInfo reads the local node's identity.
func CurrentNodeInfo() NodeInfo {
	host, _ := os.Hostname()
	return NodeInfo{MachineName: host, OS: runtime.GOOS}
}

// Settings is a read-only view over a scenario's JSON custom-settings
// payload. A payload that is not valid JSON yields an empty view; the
// parse failure is swallowed, not surfaced.
type Settings struct {
	raw string
}

// NewSettings builds a settings view over a raw JSON string.
func NewSettings(raw string) Settings {
	if !gjson.Valid(raw) {
		return Settings{}
	}
	return Settings{raw: raw}
}

// Get looks up a value by gjson path, e.g. "retries" or "target.url".
func (s Settings) Get(path string) gjson.Result {
	return gjson.Get(s.raw, path)
}

// GetString returns the string at path, or "" when absent.
func (s Settings) GetString(path string) string {
	return gjson.Get(s.raw, path).String()
}

// GetInt returns the integer at path, or 0 when absent.
func (s Settings) GetInt(path string) int64 {
	return gjson.Get(s.raw, path).Int()
}

// IsEmpty reports whether the view carries no settings at all.
func (s Settings) IsEmpty() bool {
	return s.raw == ""
}

// InitContext is handed to scenario init and cleanup operations. It
// exposes run and node metadata, the scenario's custom-settings view,
// the cancellation signal, and a logger.
type InitContext struct {
	ctx      context.Context
	Test     TestInfo
	Node     NodeInfo
	Logger   *zap.Logger
	settings Settings
}

// NewInitContext assembles the context for one scenario's init and
// cleanup operations. customSettings is the scenario's raw JSON override;
// an unparsable payload degrades to an empty settings view.
func NewInitContext(ctx context.Context, test TestInfo, node NodeInfo, customSettings string, logger *zap.Logger) *InitContext {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InitContext{
		ctx:      ctx,
		Test:     test,
		Node:     node,
		Logger:   logger.WithOptions(zap.WithFatalHook(writeThenNoop{})),
		settings: NewSettings(customSettings),
	}
}

// CustomSettings returns the scenario's settings view.
func (c *InitContext) CustomSettings() Settings {
	return c.settings
}

// Context returns the cancellation signal source for initialization.
func (c *InitContext) Context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}
