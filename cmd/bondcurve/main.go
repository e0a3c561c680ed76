package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/krazyTry/bondcurve-go/config"
	"github.com/krazyTry/bondcurve-go/pair"
	"github.com/krazyTry/bondcurve-go/pair/helpers"
)

type app struct {
	configPath   string
	snapshotPath string
	requestPath  string

	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "bondcurve",
		Short:        "Run lending and borrowing actions against a pool snapshot",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "bondcurve.yaml", "path to the YAML config")
	root.PersistentFlags().StringVar(&a.snapshotPath, "snapshot", "", "pool snapshot file (defaults to snapshot_file from the config)")
	root.PersistentFlags().StringVarP(&a.requestPath, "request", "r", "-", "JSON request file, - for stdin")

	root.AddCommand(
		a.newPoolCmd(),
		a.mintCmd(),
		a.lendCmd(),
		a.borrowCmd(),
		a.repayCmd(),
		a.withdrawCmd(),
		a.burnCmd(),
		a.collectCmd(),
		a.quoteCmd(),
		a.stateCmd(),
	)
	return root
}

func (a *app) setup() error {
	if v := os.Getenv("BONDCURVE_CONFIG"); v != "" && a.configPath == "bondcurve.yaml" {
		a.configPath = v
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	logger, err := cfg.NewLogger()
	if err != nil {
		return err
	}
	if a.snapshotPath == "" {
		a.snapshotPath = cfg.SnapshotFile
	}
	if a.snapshotPath == "" {
		a.snapshotPath = "pool.snapshot"
	}
	a.cfg = cfg
	a.logger = logger.With(zap.String("snapshot", a.snapshotPath))
	return nil
}

func (a *app) request(cmd *cobra.Command) (request, error) {
	return readRequest(a.requestPath, cmd.InOrStdin())
}

// clock fixes the pool time to the request's "now", or the wall clock.
func clock(req request) func() uint64 {
	now := req.uintOr("now", uint64(time.Now().Unix()))
	return func() uint64 { return now }
}

func (a *app) loadPool(req request) (*pair.Pool, error) {
	data, err := os.ReadFile(a.snapshotPath)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	snapshot, err := helpers.DecodeSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return pair.NewPool(snapshot.Maturity, snapshot.Fees,
		pair.WithState(snapshot.State),
		pair.WithClock(clock(req)),
		pair.WithLogger(a.logger),
	)
}

func (a *app) savePool(pool *pair.Pool) error {
	data, err := helpers.EncodeSnapshot(helpers.Snapshot{
		Maturity: pool.Maturity(),
		Fees:     pool.Fees(),
		State:    pool.State(),
	})
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(a.snapshotPath, data, 0o600); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var errUnknownForm = errors.New("unknown form")
