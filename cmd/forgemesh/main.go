package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/philipparndt/forgemesh/internal/config"
	"github.com/philipparndt/forgemesh/internal/logger"
	"github.com/philipparndt/forgemesh/version"
)

var (
	globalFlags config.Flags
	cfg         *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "forgemesh",
	Short: "Convert 3D models into Forge primitives and AutoHotkey build macros",
	Long: `forgemesh decomposes OBJ, STL and OpenSCAD models into cubes and
right-angled polygon plates, and writes an AutoHotkey macro that builds them
in the Halo Infinite Forge editor.`,
	Version:       version.GetFullVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := globalFlags.Load()
		if err != nil {
			return err
		}
		if err := logger.Init(c.Logging.Level, c.Logging.LogFile); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		cfg = c
		return nil
	},
}

func init() {
	globalFlags.Register(rootCmd.PersistentFlags())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)
	stop()
	logger.Sync()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
