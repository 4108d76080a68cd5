package ytdlp

import (
	"bufio"
	"fmt"
	"os/exec"
	"strings"
)

// tailLines bounds the diagnostic tail kept from tool output. Download
// runs print a progress line per fragment; keeping everything would be
// wasteful and the failure cause is always near the end.
const tailLines = 20

func runWithTail(cmd *exec.Cmd, sink func(string)) (string, error) {
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", fmt.Errorf("stdout pipe: %w", err)
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("start %s: %w", cmd.Path, err)
	}

	tail := make([]string, 0, tailLines)
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if sink != nil {
			sink(line)
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if len(tail) == tailLines {
			copy(tail, tail[1:])
			tail = tail[:tailLines-1]
		}
		tail = append(tail, line)
	}
	scanErr := scanner.Err()

	waitErr := cmd.Wait()
	if waitErr != nil {
		return strings.TrimSpace(strings.Join(tail, "\n")), waitErr
	}
	if scanErr != nil {
		return "", fmt.Errorf("read tool output: %w", scanErr)
	}
	return "", nil
}
