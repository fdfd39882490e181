package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"

	"github.com/nest-agency/pitch-cli/internal/config"
	"github.com/nest-agency/pitch-cli/internal/model"
)

var clientsMatch string

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "List clients in the Notion pitch database",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate(config.ModeClients); err != nil {
			return err
		}

		records, err := newExtractor().List(ctx)
		if err != nil {
			return eris.Wrap(err, "list clients")
		}

		if clientsMatch != "" {
			records = filterClients(records, clientsMatch)
		}

		if len(records) == 0 {
			fmt.Fprintln(os.Stderr, "No clients found.")
			return nil
		}

		formatClients(os.Stdout, records)
		return nil
	},
}

func init() {
	clientsCmd.Flags().StringVar(&clientsMatch, "match", "", "only list clients whose name contains this text")
	rootCmd.AddCommand(clientsCmd)
}

// filterClients keeps records whose name contains needle, compared
// case-insensitively.
func filterClients(records []model.ClientRecord, needle string) []model.ClientRecord {
	fold := cases.Fold()
	folded := fold.String(needle)

	var kept []model.ClientRecord
	for _, r := range records {
		if strings.Contains(fold.String(r.Name), folded) {
			kept = append(kept, r)
		}
	}
	return kept
}

// formatClients writes a tabular client roster to out.
func formatClients(out io.Writer, records []model.ClientRecord) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tSTATUS\tCATEGORY\tSERVICES\tACCOUNT OWNER")
	_, _ = fmt.Fprintln(w, "----\t------\t--------\t--------\t-------------")

	for _, r := range records {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.Name,
			r.Status,
			r.Category,
			r.ServicesLine(),
			r.AccountOwner,
		)
	}
	_ = w.Flush()
}
