package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/wricardo/mars-rover/rover/engine"
	"github.com/wricardo/mars-rover/rover/service"
)

// runCLI runs the command line with a silent logger and captures its output
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	a := &app{logger: zap.NewNop()}
	cmd := a.command()
	cmd.Writer = &buf
	cmd.ErrWriter = &buf

	err := cmd.Run(context.Background(), append([]string{AppName}, args...))
	return buf.String(), err
}

func TestConstants(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if AppName != "rover" {
		t.Errorf("Expected app name rover, got %s", AppName)
	}
}

func TestDrive(t *testing.T) {
	tests := []struct {
		name         string
		start        string
		instructions string
		want         string
	}{
		{"single move", "0 0 N", "M", "0 1 N"},
		{"square", "0 0 N", "LMLMLMLMM", "0 1 N"},
		{"east", "1 2 E", "M", "2 2 E"},
		{"no instructions", "5 5 W", "", "5 5 W"},
		{"negative result", "0 0 S", "MMRMM", "-2 -2 W"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			out, err := runCLI(t, "drive", "--start", test.start, "--instructions", test.instructions)
			if err != nil {
				t.Fatalf("drive failed: %v", err)
			}
			if out != test.want+"\n" {
				t.Errorf("Expected %q, got %q", test.want+"\n", out)
			}
		})
	}
}

func TestDrive_ShortFlags(t *testing.T) {
	out, err := runCLI(t, "drive", "-s", "3 3 E", "-i", "MMRMMRMRRM")
	if err != nil {
		t.Fatalf("drive failed: %v", err)
	}
	if strings.TrimSpace(out) != "5 1 E" {
		t.Errorf("Expected 5 1 E, got %q", out)
	}
}

func TestDrive_Errors(t *testing.T) {
	_, err := runCLI(t, "drive", "--start", "5 5 Q", "--instructions", "M")
	if !errors.Is(err, engine.ErrInvalidStartFormat) {
		t.Errorf("Expected ErrInvalidStartFormat, got %v", err)
	}

	_, err = runCLI(t, "drive", "--start", "0 0 N", "--instructions", "LRMX")
	if !errors.Is(err, engine.ErrInvalidInstructionFormat) {
		t.Errorf("Expected ErrInvalidInstructionFormat, got %v", err)
	}

	if _, err := runCLI(t, "drive", "--instructions", "M"); err == nil {
		t.Error("Expected error when --start is missing")
	}
}

func TestDrive_Trace(t *testing.T) {
	out, err := runCLI(t, "drive", "--start", "0 0 N", "--instructions", "MR", "--trace")
	if err != nil {
		t.Fatalf("drive failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 2 steps and the final state, got %q", out)
	}
	if !strings.Contains(lines[0], "0 0 N -> 0 1 N") {
		t.Errorf("Unexpected first step: %q", lines[0])
	}
	if !strings.Contains(lines[1], "0 1 N -> 0 1 E") {
		t.Errorf("Unexpected second step: %q", lines[1])
	}
	if lines[2] != "0 1 E" {
		t.Errorf("Expected final state 0 1 E, got %q", lines[2])
	}
}

func TestDrive_JSON(t *testing.T) {
	out, err := runCLI(t, "drive", "--start", "0 0 N", "--instructions", "LMLMLMLMM", "--json")
	if err != nil {
		t.Fatalf("drive failed: %v", err)
	}

	var result service.DriveResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("Output is not JSON: %v\n%s", err, out)
	}
	if result.Rendered != "0 1 N" {
		t.Errorf("Expected rendered 0 1 N, got %s", result.Rendered)
	}
	if result.CommandCount != 9 {
		t.Errorf("Expected 9 commands, got %d", result.CommandCount)
	}
}

func TestMissionList(t *testing.T) {
	out, err := runCLI(t, "--missions-dir", "missions", "mission", "list")
	if err != nil {
		t.Fatalf("mission list failed: %v", err)
	}
	for _, id := range []string{"square", "first-step", "crater-descent"} {
		if !strings.Contains(out, id) {
			t.Errorf("Expected %s in listing:\n%s", id, out)
		}
	}
}

func TestMissionRun(t *testing.T) {
	out, err := runCLI(t, "--missions-dir", "missions", "mission", "run", "square")
	if err != nil {
		t.Fatalf("mission run failed: %v", err)
	}
	if strings.TrimSpace(out) != "0 1 N" {
		t.Errorf("Expected 0 1 N, got %q", out)
	}

	if _, err := runCLI(t, "--missions-dir", "missions", "mission", "run"); err == nil {
		t.Error("Expected error without a mission ID")
	}
	if _, err := runCLI(t, "--missions-dir", "missions", "mission", "run", "nope"); err == nil {
		t.Error("Expected error for unknown mission")
	}
}

func TestMissionRun_Mismatch(t *testing.T) {
	dir := t.TempDir()
	content := `{"name": "Off course", "start": "0 0 N", "instructions": "M", "expected": "0 2 N"}`
	if err := os.WriteFile(filepath.Join(dir, "off.json"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "--missions-dir", dir, "mission", "run", "off")
	if !errors.Is(err, errMissionFailed) {
		t.Fatalf("Expected errMissionFailed, got %v", err)
	}
	if strings.TrimSpace(out) != "0 1 N" {
		t.Errorf("Final state should still be printed, got %q", out)
	}

	_, err = runCLI(t, "--missions-dir", dir, "validate")
	if err == nil {
		t.Error("Expected validate to fail for a mission that misses its expected state")
	}
}

func TestValidate(t *testing.T) {
	out, err := runCLI(t, "--missions-dir", "missions", "validate")
	if err != nil {
		t.Fatalf("validate failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "✓ square.json") {
		t.Errorf("Expected square.json to validate, got:\n%s", out)
	}
	if strings.Contains(out, "✗") {
		t.Errorf("Expected no invalid missions, got:\n%s", out)
	}
}

func TestMissingMissionsDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")

	out, err := runCLI(t, "--missions-dir", dir, "drive", "--start", "0 0 N", "--instructions", "M")
	if err != nil {
		t.Fatalf("drive should work without missions: %v", err)
	}
	if strings.TrimSpace(out) != "0 1 N" {
		t.Errorf("Expected 0 1 N, got %q", out)
	}

	_, err = runCLI(t, "--missions-dir", dir, "mission", "list")
	if !errors.Is(err, service.ErrNoMissions) {
		t.Errorf("Expected ErrNoMissions, got %v", err)
	}
}

func TestInitializeService(t *testing.T) {
	svc, err := initializeService("missions", zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to initialize service: %v", err)
	}
	if svc == nil {
		t.Fatal("Expected service to be initialized")
	}

	dir := t.TempDir()
	file := filepath.Join(dir, "plain")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := initializeService(file, zap.NewNop()); err == nil {
		t.Error("Expected error when the missions path is a file")
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := newLogger(false)
	if err != nil {
		t.Fatalf("newLogger failed: %v", err)
	}
	if logger.Core().Enabled(zap.InfoLevel) {
		t.Error("Info should be disabled without --debug")
	}

	logger, err = newLogger(true)
	if err != nil {
		t.Fatalf("newLogger failed: %v", err)
	}
	if !logger.Core().Enabled(zap.DebugLevel) {
		t.Error("Debug should be enabled with --debug")
	}
}
