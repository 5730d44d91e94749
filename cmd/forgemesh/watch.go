package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/philipparndt/forgemesh/internal/logger"
	"github.com/philipparndt/forgemesh/internal/pipeline"
	"github.com/philipparndt/forgemesh/pkg/watcher"
)

var (
	watchOpts     convertFlags
	watchDebounce int
)

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Convert a model and convert it again whenever it changes",
	Long: `Convert a model like the convert command, then keep watching it. For
OpenSCAD models every used or included file is watched as well.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchOpts.register(watchCmd)
	watchCmd.Flags().IntVar(&watchDebounce, "debounce", int(watcher.DefaultDebounce.Milliseconds()), "Milliseconds a file must stay unchanged before converting")
}

func runWatch(cmd *cobra.Command, args []string) error {
	filename := args[0]
	p := pipeline.New(cfg, logger.Named("pipeline"))

	fw, err := watcher.NewFileWatcher(time.Duration(watchDebounce)*time.Millisecond, logger.Named("watcher"))
	if err != nil {
		return err
	}
	defer fw.Close()

	// changes to several files can fire together; convert one at a time
	var mu sync.Mutex
	var watch func(string)
	watch = func(changed string) {
		mu.Lock()
		defer mu.Unlock()

		if changed != "" {
			logger.Info("model changed", zap.String("path", changed))
		}
		if err := runConvert(cmd, filename, &watchOpts); err != nil {
			logger.Error("conversion failed", zap.Error(err))
		}

		files, err := p.WatchFiles(filename)
		if err != nil {
			logger.Error("failed to resolve model files", zap.Error(err))
			files = []string{filename}
		}
		if err := fw.RemoveAll(); err != nil {
			logger.Warn("failed to reset watches", zap.Error(err))
		}
		if err := fw.Watch(files, watch); err != nil {
			logger.Error("failed to watch model files", zap.Error(err))
		}
	}
	watch("")

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s, press Ctrl+C to stop\n", filename)
	if err := fw.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
