package shell

import (
	"context"
	"strings"
	"testing"
)

func TestCommandExecutorCapturesStdout(t *testing.T) {
	result, err := NewCommandExecutor().Execute(context.Background(), "echo hello", ".")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !result.Success() {
		t.Fatalf("expected success, got exit code %d, stderr %q", result.ExitCode, result.Stderr)
	}
	if strings.TrimSpace(result.Stdout) != "hello" {
		t.Errorf("stdout = %q, want hello", result.Stdout)
	}
}

func TestCommandExecutorReportsNonZeroExit(t *testing.T) {
	result, err := NewCommandExecutor().Execute(context.Background(), "exit 3", ".")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Success() {
		t.Fatal("expected failure")
	}
	if result.ExitCode != 3 {
		t.Errorf("exit code = %d, want 3", result.ExitCode)
	}
}
