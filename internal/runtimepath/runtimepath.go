package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvSocketPath overrides the IPC socket location.
const EnvSocketPath = "TDAWM_SOCKET"

// Dir returns the runtime directory holding the IPC socket. Priority:
// 1) XDG_RUNTIME_DIR (if set)
// 2) /run/user/<uid> (if present)
// 3) /tmp/tdawm-runtime-<uid> (created)
func Dir() (string, error) {
	if runtimeDir := os.Getenv("XDG_RUNTIME_DIR"); runtimeDir != "" {
		return runtimeDir, nil
	}

	uid := os.Getuid()
	runUserDir := fmt.Sprintf("/run/user/%d", uid)
	if info, err := os.Stat(runUserDir); err == nil && info.IsDir() {
		return runUserDir, nil
	}

	tmpDir := fmt.Sprintf("/tmp/tdawm-runtime-%d", uid)
	if err := os.MkdirAll(tmpDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create runtime dir: %w", err)
	}
	return tmpDir, nil
}

// SocketPath returns the window manager's IPC socket path. When DISPLAY is
// set the socket name carries it, so sessions on different displays do not
// collide.
func SocketPath() (string, error) {
	if p := os.Getenv(EnvSocketPath); p != "" {
		return p, nil
	}
	runtimeDir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(runtimeDir, socketName(os.Getenv("DISPLAY"))), nil
}

func socketName(display string) string {
	if display == "" {
		return "tdawm.sock"
	}
	clean := make([]byte, 0, len(display))
	for i := 0; i < len(display); i++ {
		c := display[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '.':
			clean = append(clean, c)
		default:
			clean = append(clean, '_')
		}
	}
	return "tdawm-" + string(clean) + ".sock"
}
