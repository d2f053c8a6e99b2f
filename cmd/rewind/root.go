package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Zaphoood/rewind/internal/config"
	"github.com/Zaphoood/rewind/internal/logging"
	"github.com/Zaphoood/rewind/pkg/tally"
	"github.com/Zaphoood/rewind/pkg/tui"
	"github.com/Zaphoood/rewind/pkg/undo"
	"github.com/Zaphoood/rewind/pkg/util"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rewind [FILE]",
	Short: "Edit a tally sheet with unlimited undo and redo",
	Long: `rewind opens a tally sheet (an XML file of named counters) in the terminal.
Every edit can be undone with 'u' and redone with ctrl+r.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		level, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		logFile, err := util.Expand(cfg.LogFile)
		if err != nil {
			return err
		}
		logger, f, err := logging.OpenFile(logFile, level)
		if err != nil {
			return err
		}
		if f != nil {
			defer f.Close()
		}
		undo.SetLogger(logger)

		path := ""
		if len(args) == 1 {
			path, err = util.Expand(args[0])
			if err != nil {
				return err
			}
		}
		sheet, err := openSheet(path)
		if err != nil {
			return err
		}
		logger.Info("starting", "path", path, "counters", sheet.Len(), "history_limit", cfg.HistoryLimit)

		return tui.Run(tui.NewEditor(sheet, tui.Options{Path: path, Config: cfg, Logger: logger}))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	addRootFlags(rootCmd)
}

func addRootFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", config.DEFAULT_PATH, "Path to the YAML config file")
	cmd.Flags().Int("history-limit", 0, "Maximum number of undo steps (0 for no limit)")
	cmd.Flags().Int("animation-frames", 0, "Number of frames a row flashes after undo or redo (0 to disable)")
	cmd.Flags().String("log-file", "", "Write logs to this file")
	cmd.Flags().String("log-level", "", "Log level (debug, info, warn, error)")
}

// loadConfig reads the config file and applies flags given on the command line on top
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")
	cfg, err := config.Load(path, flags.Changed("config"))
	if err != nil {
		return cfg, err
	}
	if flags.Changed("history-limit") {
		cfg.HistoryLimit, _ = flags.GetInt("history-limit")
	}
	if flags.Changed("animation-frames") {
		cfg.AnimationFrames, _ = flags.GetInt("animation-frames")
	}
	if flags.Changed("log-file") {
		cfg.LogFile, _ = flags.GetString("log-file")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	return cfg, cfg.Validate()
}

// openSheet loads the sheet at path. A path that does not exist yet yields an
// empty sheet that will be created on the first write.
func openSheet(path string) (*tally.Sheet, error) {
	if len(path) == 0 {
		return tally.NewSheet("")
	}
	fileInfo, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return tally.NewSheet(name)
	} else if err != nil {
		return nil, err
	} else if fileInfo.IsDir() {
		return nil, fmt.Errorf("'%s' is a directory", path)
	}
	return tally.Load(path)
}
