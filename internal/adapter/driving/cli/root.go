// Package cli is the command-line driving adapter: it parses flags, wires the
// adapters, runs the provisioning workflow, and maps the result to output and
// an exit code.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/keyprovisioner/internal/adapter/driven/filestore"
	"github.com/ericfisherdev/keyprovisioner/internal/adapter/driven/grafana"
	"github.com/ericfisherdev/keyprovisioner/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/keyprovisioner/internal/application"
	"github.com/ericfisherdev/keyprovisioner/internal/config"
)

const helpLong = `Grafana API key generator.

Generates an API key for an organization and stores it at the --file location.
The organization is created if it does not exist. The key is named after the
organization with "_apikey" appended.

No key is generated if the file already holds a key whose name matches the
organization. Otherwise a new key is issued, written, and read back.

Separate --org and --file pairs produce separate keys. A key that was issued
but not stored cannot be retrieved again; --journal records issued keys so
such orphans can be found with the "orphans" command.

Every flag can also be set with a KEYPROVISIONER_ environment variable, for
example KEYPROVISIONER_FILE or KEYPROVISIONER_SCOPE_MODE.`

// Options configures the root command's collaborators.
type Options struct {
	Out io.Writer
	Err io.Writer
	// HTTPClient overrides the client used to reach Grafana.
	HTTPClient *http.Client
}

func (o Options) withDefaults() Options {
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.Err == nil {
		o.Err = os.Stderr
	}
	return o
}

// errReported marks failures whose message was already written as the status.
var errReported = errors.New("failure reported")

// NewRootCommand builds the keyprovisioner command tree.
func NewRootCommand(opts Options) *cobra.Command {
	opts = opts.withDefaults()

	root := &cobra.Command{
		Use:           "keyprovisioner",
		Short:         "Provision a Grafana API key for an organization",
		Long:          helpLong,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			return runProvision(cmd.Context(), cfg, opts)
		},
	}
	root.SetOut(opts.Out)
	root.SetErr(opts.Err)
	config.RegisterFlags(root.Flags())

	root.AddCommand(newOrphansCommand(opts))

	return root
}

// Execute runs the command tree with args and returns the process exit code.
func Execute(ctx context.Context, args []string, opts Options) int {
	opts = opts.withDefaults()

	root := NewRootCommand(opts)
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(opts.Err, "Error:", err)
		}
		return 1
	}
	return 0
}

func runProvision(ctx context.Context, cfg *config.Config, opts Options) error {
	logger := newLogger(cfg, opts.Err)
	logger.Info("config loaded",
		"host", cfg.Host,
		"port", cfg.Port,
		"org", cfg.Organization,
		"file", cfg.File,
		"scope_mode", cfg.ScopeMode,
		"journal", cfg.JournalPath,
	)

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	clientOpts := []grafana.Option{grafana.WithLogger(logger)}
	if opts.HTTPClient != nil {
		clientOpts = append(clientOpts, grafana.WithHTTPClient(opts.HTTPClient))
	}
	client, err := grafana.NewClient(cfg.BaseURL(), clientOpts...)
	if err != nil {
		return err
	}

	provOpts := []application.Option{application.WithLogger(logger)}
	if cfg.JournalPath != "" {
		journal, db, err := sqlite.OpenJournal(ctx, cfg.JournalPath)
		if err != nil {
			// The journal only aids orphan tracing; provisioning proceeds without it.
			logger.Warn("journal unavailable", "path", cfg.JournalPath, "error", err)
		} else {
			defer func() {
				if closeErr := db.Close(); closeErr != nil {
					logger.Error("error closing journal", "error", closeErr)
				}
			}()
			provOpts = append(provOpts, application.WithJournal(journal))
		}
	}

	provisioner := application.NewProvisioner(filestore.New(logger), client, provOpts...)

	status, runErr := provisioner.Provision(ctx, application.Request{
		Organization: cfg.Organization,
		Location:     cfg.File,
		ScopeMode:    cfg.ScopeMode,
	})

	if err := WriteStatus(opts.Out, cfg.Output, status); err != nil {
		return err
	}
	if runErr != nil {
		return fmt.Errorf("%w: %w", errReported, runErr)
	}
	return nil
}

func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}
