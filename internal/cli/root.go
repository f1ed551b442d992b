package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"accessexplorer/internal/app"
	"accessexplorer/internal/chains"
	"accessexplorer/internal/platform/config"
	"accessexplorer/internal/platform/logger"
	"accessexplorer/internal/timelock/models"
	"accessexplorer/internal/timelock/service"
)

// Explorer is the read surface the commands need.
type Explorer interface {
	Overview(ctx context.Context, chainID int64, address string) (service.Overview, error)
	Signers(ctx context.Context, chainID int64, address string, history bool) ([]models.Signer, error)
	Operations(ctx context.Context, chainID int64, address string) ([]models.Operation, error)
}

// TokenIssuer signs favorites owner tokens.
type TokenIssuer interface {
	GenerateToken(subject string, expiresIn time.Duration) (string, error)
}

// Backend bundles what a command run needs. Close releases connections.
type Backend struct {
	Chains   *chains.Registry
	Explorer Explorer
	Tokens   TokenIssuer
	Close    func()
}

// Loader builds a Backend on demand so commands that fail flag validation
// never dial upstreams.
type Loader func(ctx context.Context) (*Backend, error)

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	root := NewRootCmd(loadFromEnv, os.Stdout)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func loadFromEnv(ctx context.Context) (*Backend, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	log := logger.New(cfg.LogLevel, true)
	a, err := app.Build(ctx, cfg, log, app.Options{SkipStorage: true})
	if err != nil {
		return nil, err
	}
	return &Backend{
		Chains:   a.Chains,
		Explorer: a.Timelock,
		Tokens:   a.Tokens,
		Close:    func() { _ = a.Close(context.Background()) },
	}, nil
}

type globalFlags struct {
	chainID int64
	address string
	json    bool
}

// NewRootCmd builds the command tree writing results to out.
func NewRootCmd(load Loader, out io.Writer) *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:           "explorerctl",
		Short:         "Inspect access managers and timelock controllers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().Int64Var(&flags.chainID, "chain", 30, "chain id")
	root.PersistentFlags().StringVar(&flags.address, "address", "", "contract address")
	root.PersistentFlags().BoolVar(&flags.json, "json", !isTerminal(out), "print JSON instead of a table")

	root.AddCommand(
		newChainsCmd(load, flags),
		newSignersCmd(load, flags),
		newOperationsCmd(load, flags),
		newInspectCmd(load, flags),
		newTokenCmd(load),
	)
	return root
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func requireAddress(flags *globalFlags) error {
	if flags.address == "" {
		return fmt.Errorf("--address is required")
	}
	return nil
}

func withBackend(cmd *cobra.Command, load Loader, fn func(b *Backend) error) error {
	b, err := load(cmd.Context())
	if err != nil {
		return err
	}
	if b.Close != nil {
		defer b.Close()
	}
	return fn(b)
}
