package daemon

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// CommandLine returns the command line of pid, or "" if it cannot be read.
func CommandLine(pid int) string {
	if pid <= 0 {
		return ""
	}
	if cmd, err := readProcCmdline(pid); err == nil && cmd != "" {
		return cmd
	}
	if cmd, err := readPsCommand(pid); err == nil {
		return cmd
	}
	return ""
}

func readProcCmdline(pid int) (string, error) {
	data, err := os.ReadFile(filepath.Join("/proc", strconv.Itoa(pid), "cmdline"))
	if err != nil {
		return "", err
	}
	var out []string
	for _, part := range bytes.Split(data, []byte{0}) {
		if len(part) > 0 {
			out = append(out, string(part))
		}
	}
	return strings.Join(out, " "), nil
}

func readPsCommand(pid int) (string, error) {
	output, err := exec.Command("ps", "-o", "command=", "-p", strconv.Itoa(pid)).Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}
