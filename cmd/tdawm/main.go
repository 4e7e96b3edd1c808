package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/1broseidon/tdawm/internal/config"
	"github.com/1broseidon/tdawm/internal/controller"
	"github.com/1broseidon/tdawm/internal/display"
	"github.com/1broseidon/tdawm/internal/ipc"
	"github.com/1broseidon/tdawm/internal/logger"
	"github.com/1broseidon/tdawm/internal/runtimepath"
	"github.com/1broseidon/tdawm/internal/spawn"
	"github.com/1broseidon/tdawm/internal/x11"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Flags and TDAWM_* environment
// variables are resolved through a private viper instance.
func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("TDAWM")
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "tdawm",
		Short: "tdawm - a small tiling window manager for X11",
		Long: `tdawm manages top-level X11 windows: it tiles them on every screen using
a master-stack, horizontal or vertical layout, keeps ten independent
workspaces per screen and places dock windows at their requested geometry.

Run without a subcommand to start the window manager on $DISPLAY.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWM(v)
		},
	}

	root.PersistentFlags().String("config", "", "config file (default is $HOME/.config/tdawm/config.yaml)")
	root.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")
	root.PersistentFlags().Bool("log-pretty", false, "human-readable log output (default when stderr is a terminal)")
	v.BindPFlag("config", root.PersistentFlags().Lookup("config"))
	v.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))
	v.BindPFlag("log_pretty", root.PersistentFlags().Lookup("log-pretty"))

	root.AddCommand(newStatusCmd(), newScreensCmd(), newConfigCmd(v))
	return root
}

// loadConfig reads the config file named by --config or TDAWM_CONFIG, else
// the default location.
func loadConfig(v *viper.Viper) (*config.LoadResult, error) {
	path := v.GetString("config")
	if path == "" {
		var err error
		path, err = config.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}
	return config.LoadFromPath(path)
}

// logSettings returns the effective log level and output format. Flags and
// environment win over the config file.
func logSettings(v *viper.Viper, cfg *config.Config) (string, bool) {
	level := cfg.LogLevel
	if l := v.GetString("log_level"); l != "" {
		level = l
	}
	pretty := logger.StderrIsTerminal()
	if v.IsSet("log_pretty") {
		pretty = v.GetBool("log_pretty")
	}
	return level, pretty
}

func runWM(v *viper.Viper) error {
	res, err := loadConfig(v)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg := res.Config
	logger.Init(logSettings(v, cfg))
	log := logger.WithComponent("main")
	log.Info().Strs("files", res.Files).Str("layout", cfg.DefaultLayout).Int("workspaces", cfg.Workspaces).Msg("configuration loaded")

	conn, err := x11.NewConnection(logger.WithComponent("x11"))
	if err != nil {
		return fmt.Errorf("failed to connect to display: %w", err)
	}
	if err := conn.Claim(); err != nil {
		conn.Close()
		return err
	}

	ctrl := controller.New(conn, spawn.NewRunner(logger.WithComponent("spawn")), cfg, logger.WithComponent("controller"))

	srv := startIPC(log)
	if srv != nil {
		defer srv.Stop()
		ctrl.SetPublisher(srv)
	}

	if err := ctrl.Init(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to initialize window manager: %w", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info().Stringer("signal", sig).Msg("shutting down")
		conn.Close()
	}()

	log.Info().Msg("tdawm running")
	err = ctrl.Run()
	signal.Stop(sigCh)
	if errors.Is(err, display.ErrClosed) {
		log.Info().Msg("display connection closed")
		return nil
	}
	conn.Close()
	return err
}

// startIPC starts the status socket. Failure only disables status queries.
func startIPC(log *zerolog.Logger) *ipc.Server {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		log.Warn().Err(err).Msg("IPC disabled: cannot resolve socket path")
		return nil
	}
	srv := ipc.NewServer(socketPath, logger.WithComponent("ipc"))
	if err := srv.Start(); err != nil {
		log.Warn().Err(err).Msg("IPC disabled")
		return nil
	}
	return srv
}
