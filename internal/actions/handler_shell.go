package actions

import (
	"bytes"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ShellHandler handles Shell Command execution logic
type ShellHandler struct{}

func (h *ShellHandler) IsSupported() bool {
	// PowerShell on Windows, Bash/Zsh on Unix
	return true
}

func (h *ShellHandler) Execute(code string) (string, error) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("powershell", "-NoProfile", "-NonInteractive", "-Command", code)
	case "darwin", "linux":
		shell := "/bin/bash"
		if runtime.GOOS == "darwin" {
			if _, err := exec.LookPath("zsh"); err == nil {
				shell = "/bin/zsh"
			}
		}
		cmd = exec.Command(shell, "-c", code)
	default:
		return "", fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		errMsg := stderr.String()
		if errMsg != "" {
			return stdout.String(), fmt.Errorf("shell error: %s", strings.TrimSpace(errMsg))
		}
		return stdout.String(), fmt.Errorf("shell execution failed: %v", err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

func (h *ShellHandler) Validate(code string) error {
	if strings.TrimSpace(code) == "" {
		return fmt.Errorf("empty command")
	}

	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		if strings.Contains(code, "\x00") {
			return fmt.Errorf("command contains null bytes")
		}
		return nil
	case "darwin", "linux":
		// bash -n parses but does not execute
		cmd = exec.Command("/bin/bash", "-n", "-c", code)
	default:
		return nil
	}

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		errMsg := stderr.String()
		if errMsg != "" {
			return fmt.Errorf("syntax error: %s", strings.TrimSpace(errMsg))
		}
		return fmt.Errorf("validation failed: %v", err)
	}

	return nil
}
