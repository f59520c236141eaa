package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tokahuke/jammdb/cmd/jammdb/internal/config"
	"github.com/tokahuke/jammdb/pkg/archive"
	"github.com/tokahuke/jammdb/pkg/kv"
)

var (
	// Global flags
	cfgFile    string
	dbPath     string
	memEngine  bool
	archiveURL string
	formatName string
	outputFile string
	verbose    bool

	// Global configuration (loaded at init time)
	globalConfig  *config.Config
	configLoadErr error

	// Tests swap these to run commands against in-process stores.
	testStoreOverride   kv.Store
	testArchiveOverride archive.Store
)

var rootCmd = &cobra.Command{
	Use:   "jammdb",
	Short: "Embedded key-value store with byte-string keys and values",
	Long: `jammdb - an embedded key-value store CLI.

Keys and values are arbitrary byte strings. The store runs on a badger
database directory (--db) or fully in memory (--mem). Snapshots stream
to an archive: a local directory or an s3://bucket/prefix target.

Configuration is read from <user config dir>/jammdb/config.yaml
(override the directory with JAMMDB_CONFIG_DIR); flags take precedence
over file values.

Examples:
  # Store and read a value
  jammdb --db ./data set greeting "hello world"
  jammdb --db ./data get greeting

  # Binary keys and values via hex or base64
  jammdb --db ./data set 00ff 0a0b --format hex
  jammdb --db ./data list --format json

  # Snapshots
  jammdb --db ./data snapshot save nightly --archive ./backups
  jammdb --db ./data snapshot restore nightly --archive s3://backups/kv`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default <user config dir>/jammdb/config.yaml)")
	pf.StringVar(&dbPath, "db", "", "badger database directory")
	pf.BoolVar(&memEngine, "mem", false, "run on the in-memory engine")
	pf.StringVar(&archiveURL, "archive", "", "snapshot archive: directory or s3://bucket/prefix")
	pf.StringVar(&formatName, "format", "", "output format: raw, hex, base64 or json")
	pf.StringVarP(&outputFile, "output", "o", "", "write output to a file instead of stdout")
	pf.BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
}

func initConfig() {
	globalConfig = nil
	configLoadErr = nil

	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		// Store the error for deferred reporting. Commands that need
		// config get a clear error via getConfig; commands like
		// 'jammdb version' keep working.
		configLoadErr = err
		return
	}
	globalConfig = cfg
}

// getConfig returns the global configuration.
func getConfig() (*config.Config, error) {
	if globalConfig == nil {
		if configLoadErr != nil {
			return nil, fmt.Errorf("config not available: %w", configLoadErr)
		}
		cfg, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("config not available: %w", err)
		}
		globalConfig = cfg
	}
	return globalConfig, nil
}

// effectiveFormat resolves the output format: flag, then config file,
// then raw.
func effectiveFormat() string {
	if formatName != "" {
		return formatName
	}
	if cfg, err := getConfig(); err == nil && cfg.Format != "" {
		return cfg.Format
	}
	return "raw"
}

// openStore opens the store selected by flags, falling back to config
// file values. The caller closes the returned store.
func openStore() (kv.Store, error) {
	if testStoreOverride != nil {
		return testStoreOverride, nil
	}
	cfg, err := getConfig()
	if err != nil {
		return nil, err
	}
	switch {
	case memEngine:
		return kv.NewMemory(), nil
	case dbPath != "":
		return kv.NewBadger(kv.BadgerOptions{Dir: dbPath})
	case cfg.Memory:
		return kv.NewMemory(), nil
	case cfg.DB != "":
		return kv.NewBadger(kv.BadgerOptions{Dir: cfg.DB})
	}
	return nil, errors.New("no database selected (use --db DIR or --mem)")
}

// openArchive opens the snapshot archive named by --archive or the
// config file. s3://bucket/prefix targets get a client built from the
// ambient AWS configuration; anything else is a local directory.
func openArchive(ctx context.Context) (archive.Store, error) {
	if testArchiveOverride != nil {
		return testArchiveOverride, nil
	}
	cfg, err := getConfig()
	if err != nil {
		return nil, err
	}
	target := archiveURL
	if target == "" {
		target = cfg.Archive
	}
	if target == "" {
		return nil, errors.New("no archive selected (use --archive DIR or --archive s3://bucket/prefix)")
	}
	if rest, ok := strings.CutPrefix(target, "s3://"); ok {
		bucket, prefix, _ := strings.Cut(rest, "/")
		if bucket == "" {
			return nil, fmt.Errorf("invalid archive target %q: missing bucket", target)
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		return archive.NewS3(s3.NewFromConfig(awsCfg), bucket, strings.TrimSuffix(prefix, "/")), nil
	}
	return archive.NewDir(target)
}
