package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/1broseidon/tdawm/internal/ipc"
	"github.com/1broseidon/tdawm/internal/runtimepath"
)

func newClient() (*ipc.Client, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}
	return ipc.NewClient(socketPath), nil
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the running window manager's status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			status, err := client.GetStatus()
			if err != nil {
				return err
			}
			printStatus(cmd.OutOrStdout(), status)
			return nil
		},
	}
}

func newScreensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "screens",
		Short: "List screens with their current workspace and window counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			data, err := client.GetScreens()
			if err != nil {
				return err
			}
			printScreens(cmd.OutOrStdout(), data)
			return nil
		},
	}
}

func printStatus(w io.Writer, status *ipc.StatusData) {
	fmt.Fprintf(w, "running:        %v\n", status.Running)
	fmt.Fprintf(w, "active_layout:  %s\n", status.ActiveLayout)
	fmt.Fprintf(w, "window_count:   %d\n", status.WindowCount)
	fmt.Fprintf(w, "screen_count:   %d\n", status.ScreenCount)
	fmt.Fprintf(w, "uptime_seconds: %d\n", status.UptimeSeconds)
}

// printScreens renders one line per screen. The workspace list marks the
// current workspace with brackets and shows digit-key labels. Styling is
// dropped when w is not a terminal.
func printScreens(w io.Writer, data *ipc.ScreensData) {
	r := lipgloss.NewRenderer(w)
	current := r.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	for _, s := range data.Screens {
		labels := make([]string, len(s.WorkspaceWindows))
		for i, n := range s.WorkspaceWindows {
			label := fmt.Sprintf("%d:%d", (i+1)%10, n)
			if i == s.CurrentWorkspace {
				label = current.Render("[" + label + "]")
			}
			labels[i] = label
		}
		fmt.Fprintf(w, "screen %d: %dx%d+%d+%d focused=0x%x docks=%d workspaces %s\n",
			s.ID, s.Width, s.Height, s.X, s.Y, s.Focused, s.Docks, strings.Join(labels, " "))
	}
}
