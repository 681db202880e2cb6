package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/iomz/hito/hito"
	"github.com/iomz/hito/hito/store"
	"github.com/iomz/hito/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cli holds the state shared by all commands of one invocation
type cli struct {
	v          *viper.Viper
	configFile string
	format     string

	settings  *config.Settings
	logger    *slog.Logger
	logCloser io.Closer
	app       *hito.App
	output    *outputFormatter
}

// newRootCmd builds the command tree. Every call returns a fresh tree with
// its own viper instance so tests can execute commands in isolation.
func newRootCmd() *cobra.Command {
	c := &cli{v: config.NewViper()}

	rootCmd := &cobra.Command{
		Use:   "hito",
		Short: "Browse and categorize images",
		Long: `hito lists the images of a directory, filters and sorts them, and keeps
user-defined categories for each image in a sidecar file next to them.

Categories, hotkeys and custom sidecar locations are stored in a single
JSON config file shared with the browser UI served by 'hito serve'.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logCloser != nil {
				_ = c.logCloser.Close()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.configFile, "config", "", "settings file (default: hito.yaml in ., $HOME/.hito or /etc/hito)")
	flags.String("store", "", "config document path (default: user config directory)")
	flags.String("data-file", "", "sidecar file name inside image directories")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-file", "", "log file path (default: user cache directory)")
	flags.BoolP("verbose", "v", false, "also log to stderr")
	flags.StringVarP(&c.format, "format", "f", formatTable, "output format (table, json, yaml)")

	// Bind flags to viper keys
	bindings := map[string]string{
		"store":     "store",
		"data-file": "data_file",
		"log-level": "log.level",
		"log-file":  "log.file",
		"verbose":   "log.verbose",
	}
	for flag, key := range bindings {
		_ = c.v.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(
		newListCmd(c),
		newCategoriesCmd(c),
		newHotkeysCmd(c),
		newDirPathCmd(c),
		newAssignCmd(c),
		newUnassignCmd(c),
		newImageCmd(c),
		newServeCmd(c),
		newConfigCmd(c),
		newVersionCmd(c),
	)

	return rootCmd
}

// setup loads the settings, starts logging and opens the backend
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	settings, err := config.Load(c.v, c.configFile)
	if err != nil {
		return NewConfigError("load settings", err, CommonSuggestions.CheckConfig)
	}
	c.settings = settings

	c.output, err = newOutputFormatter(c.format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	c.logger, c.logCloser = initLogging(settings.Log, cmd.ErrOrStderr())

	storePath, err := settings.StorePath()
	if err != nil {
		return NewConfigError("locate config store", err, CommonSuggestions.CheckStore)
	}

	cfgStore := hito.NewConfigStore(storePath, store.WithLogger(c.logger))
	c.app = hito.New(cfgStore,
		hito.WithDataFile(settings.DataFile),
		hito.WithMinImageSize(settings.Scan.MinSize),
		hito.WithLogger(c.logger),
	)

	c.logger.Debug("command started", "command", cmd.CommandPath(), "store", storePath)
	return nil
}

// resolveCategory accepts a category id or a case-insensitive name
func (c *cli) resolveCategory(operation, ref string) (string, error) {
	categories, err := c.app.Store().Categories()
	if err != nil {
		return "", WrapError(operation, err, CommonSuggestions.CheckStore)
	}
	for _, cat := range categories {
		if cat.ID == ref {
			return cat.ID, nil
		}
	}
	for _, cat := range categories {
		if strings.EqualFold(cat.Name, ref) {
			return cat.ID, nil
		}
	}
	notFound := NewNotFoundError(operation, "category", ref, CommonSuggestions.CheckCategories)
	notFound.Underlying = hito.ErrUnknownCategory
	return "", notFound
}
