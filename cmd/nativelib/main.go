package main

import (
	"fmt"
	"os"

	"github.com/bagtoad/nativelib/internal/bundle"
	"github.com/bagtoad/nativelib/internal/config"
	"github.com/bagtoad/nativelib/internal/dl"
	"github.com/bagtoad/nativelib/internal/loader"
	"github.com/bagtoad/nativelib/internal/report"
	"github.com/bagtoad/nativelib/internal/scanner"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	log     *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	rootCmd := &cobra.Command{
		Use:   "nativelib",
		Short: "Extract the bundled native library for this platform",
		Long: `nativelib extracts the platform specific native library bundled in this
binary to a uniquely named file, verifies the copy byte for byte and marks
it executable so it can be dynamically loaded.

Settings are read from flags, NATIVELIB_* environment variables and
~/.nativelib/config.yaml (or --config), in that order.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "Config file (default ~/.nativelib/config.yaml)")
	flags.String("name", config.DefaultLibraryName, "Logical name of the library to extract")
	flags.String("lib-version", loader.DefaultVersion, "Version tag prefixed to extracted file names")
	flags.String("output-dir", "", "Directory to extract into (default: a new temporary directory)")
	flags.StringSlice("platforms", nil, "Allowed platforms as os/arch, e.g. Mac/x86_64")
	flags.String("log-level", "warn", "Log level (debug, info, warn, error)")

	for key, flag := range map[string]string{
		config.KeyName:      "name",
		config.KeyVersion:   "lib-version",
		config.KeyOutputDir: "output-dir",
		config.KeyPlatforms: "platforms",
		config.KeyLogLevel:  "log-level",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(a.extractCmd(), a.checkCmd(), a.listCmd())
	return rootCmd
}

func (a *app) setup() error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	zcfg := zap.NewProductionConfig()
	zcfg.Encoding = "console"
	zcfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	log, err := zcfg.Build()
	if err != nil {
		return fmt.Errorf("cannot build logger: %w", err)
	}
	a.log = log

	if cfg.File != "" {
		log.Debug("using config file", zap.String("path", cfg.File))
	}
	return nil
}

func (a *app) newLoader() *loader.Loader {
	opts := append(a.cfg.LoaderOptions(), loader.WithLogger(a.log))
	return loader.New(a.cfg.LibraryName, opts...)
}

func (a *app) extractCmd() *cobra.Command {
	var probe bool

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract the library and print its path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := a.newLoader().Load()
			if err != nil {
				return err
			}
			report.PrintLoad(cmd.OutOrStdout(), lib)

			if probe {
				if err := dl.Probe(lib.Path); err != nil {
					return fmt.Errorf("extracted library cannot be loaded: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Loadable:  yes")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&probe, "probe", false, "Open the extracted library with the dynamic loader")
	return cmd
}

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check whether this platform is supported",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l := a.newLoader()
			report.PrintPlatform(cmd.OutOrStdout(), l.Platform(), a.cfg.Supported)
			return l.CheckPlatformSupported()
		},
	}
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the libraries bundled in this binary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !bundle.Embedded() {
				a.log.Warn("binary was built without the embed_native tag")
			}
			entries, err := scanner.Scan(bundle.FS())
			if err != nil {
				return err
			}
			report.PrintInventory(cmd.OutOrStdout(), entries, a.cfg.Supported)
			return nil
		},
	}
}
