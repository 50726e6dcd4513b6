package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/keyprovisioner/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/keyprovisioner/internal/config"
	"github.com/ericfisherdev/keyprovisioner/internal/domain/model"
)

func newOrphansCommand(opts Options) *cobra.Command {
	var journalPath, output string

	cmd := &cobra.Command{
		Use:   "orphans",
		Short: "List issued API keys that were never stored locally",
		Long: `Lists keys recorded in the journal as issued whose run never stored them.
Such keys exist in Grafana but their secret is lost; delete them there by id.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if journalPath == "" {
				journalPath = os.Getenv(config.EnvVar(config.FlagJournal))
			}
			if journalPath == "" {
				return model.NewError(model.KindConfig, "config",
					fmt.Sprintf("missing required argument --%s (or %s)", config.FlagJournal, config.EnvVar(config.FlagJournal)))
			}
			format := strings.ToLower(output)

			journal, db, err := sqlite.OpenJournal(cmd.Context(), journalPath)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			orphans, err := journal.ListOrphaned(cmd.Context())
			if err != nil {
				return err
			}

			if format == config.OutputText {
				return writeOrphanTable(opts.Out, orphans)
			}
			return writeObject(opts.Out, format, orphans)
		},
	}

	cmd.Flags().StringVar(&journalPath, config.FlagJournal, "", "SQLite journal written by provisioning runs")
	cmd.Flags().StringVar(&output, config.FlagOutput, config.OutputText, "Output format: text, json, or yaml")

	return cmd
}

func writeOrphanTable(w io.Writer, orphans []model.JournalEntry) error {
	if len(orphans) == 0 {
		_, err := fmt.Fprintln(w, "No orphaned keys")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tORG\tORG ID\tKEY ID\tKEY NAME\tLOCATION\tISSUED")
	for _, e := range orphans {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\t%s\n",
			e.RunID, e.Organization, e.OrgID, e.KeyID, e.KeyName, e.Location,
			e.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return tw.Flush()
}
