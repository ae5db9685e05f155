package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/jonathan/job-ledger/internal/llm"
)

// fakeClient returns scripted responses and repeats the last one.
type fakeClient struct {
	mu        sync.Mutex
	responses []string
	prompts   []string
	closed    bool
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	if len(f.responses) == 0 {
		return "", errors.New("no scripted response")
	}
	i := len(f.prompts) - 1
	if i >= len(f.responses) {
		i = len(f.responses) - 1
	}
	return f.responses[i], nil
}

func (f *fakeClient) ModelName() string { return "fake" }

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

// useFakeModel swaps newModel for the duration of the test and records the config it was given.
func useFakeModel(t *testing.T, client *fakeClient) *llm.Config {
	t.Helper()
	var seen llm.Config
	orig := newModel
	newModel = func(_ context.Context, cfg *llm.Config, _ string) (llm.Client, error) {
		seen = *cfg
		return client, nil
	}
	t.Cleanup(func() { newModel = orig })
	return &seen
}

// clearEnv keeps the developer's environment out of the CLI under test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{envAPIKey, envOllamaHost, envCSVPath} {
		t.Setenv(key, "")
	}
}

// runCLI executes a fresh root command and captures its output.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var in io.Reader = strings.NewReader(stdin)
	cmd.SetIn(in)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}
