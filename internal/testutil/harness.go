package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/neuron/internal/app"
	"github.com/specialistvlad/neuron/internal/hcl_adapter"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Err       error
	App       *app.App
}

// RunIntegrationTest provides a standardized harness for running integration tests
// using a default background context.
func RunIntegrationTest(t *testing.T, files map[string]string, cfg app.Config) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, cfg)
}

// RunIntegrationTestWithContext provides a standardized harness for running integration
// tests with a specific context provided by the caller. Files are written below a
// temporary root; unless cfg builds a network or names its own GraphPath, the
// "graph" subdirectory of that root is loaded.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, cfg app.Config) *HarnessResult {
	t.Helper()

	// 1. Create a temporary root directory for the test.
	tmpDir := t.TempDir()
	graphDir := filepath.Join(tmpDir, "graph")
	require.NoError(t, os.Mkdir(graphDir, 0755))

	// 2. Write all HCL files. The test provides relative paths (e.g.
	//    "graph/layers/main.hcl"), which creates the subdirectory structure.
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	// 3. Point the app at the written files.
	if len(cfg.MLP) == 0 {
		if cfg.GraphPath == "" {
			cfg.GraphPath = graphDir
		} else {
			cfg.GraphPath = filepath.Join(tmpDir, cfg.GraphPath)
		}
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	appConfig, err := app.NewConfig(cfg)
	if err != nil {
		return &HarnessResult{Err: fmt.Errorf("invalid configuration | %w", err)}
	}

	output := &SafeBuffer{}
	logBuffer := &SafeBuffer{}
	testApp := app.NewApp(output, logBuffer, appConfig, hcl_adapter.NewLoader())

	var runErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				if os.Getenv("NEURON_TEST_LOGS") == "true" {
					t.Logf("--- HARNESS RECOVERED PANIC ---\n%q", fmt.Sprintf("%v", r))
				}
				runErr = fmt.Errorf("application panicked | %v", r)
			}
		}()
		runErr = testApp.Run(ctx)
	}()

	if os.Getenv("NEURON_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		Output:    output.String(),
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
	}
}
