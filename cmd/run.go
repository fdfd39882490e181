package main

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nest-agency/pitch-cli/internal/config"
	"github.com/nest-agency/pitch-cli/internal/extract"
	"github.com/nest-agency/pitch-cli/internal/model"
)

var (
	runClientName  string
	runRecordFile  string
	runSkipPublish bool
)

// runOutput is what the run command prints on success.
type runOutput struct {
	Plan        *model.PitchPlan `json:"plan"`
	DocumentURL string           `json:"document_url,omitempty"`
	SharedWith  []string         `json:"shared_with,omitempty"`
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate a pitch plan for a single client",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if (runClientName == "") == (runRecordFile == "") {
			return eris.New("run: exactly one of --client or --record is required")
		}

		mode := config.ModeRun
		if runRecordFile != "" {
			mode = config.ModeGenerate
		}
		if err := cfg.Validate(mode); err != nil {
			return err
		}
		if !runSkipPublish && strings.TrimSpace(cfg.Google.CredentialsFile) == "" {
			return eris.New("run: google.credentials_file is required to publish (pass --skip-publish to print the bundle instead)")
		}

		var record model.ClientRecord
		var err error
		if runRecordFile != "" {
			record, err = extract.LoadRecordFromFile(runRecordFile)
		} else {
			record, err = newExtractor().Find(ctx, runClientName)
		}
		if err != nil {
			return err
		}

		plan, err := newGenerator().Run(ctx, record)
		if err != nil {
			return eris.Wrap(err, "pipeline run")
		}

		out := runOutput{Plan: plan}

		if !runSkipPublish {
			publisher, err := newPublisher(ctx)
			if err != nil {
				return err
			}
			result, err := publisher.Publish(ctx, plan)
			if err != nil {
				return err
			}
			out.DocumentURL = result.URL
			out.SharedWith = result.SharedWith

			zap.L().Info("pitch plan published",
				zap.String("client", plan.ClientName),
				zap.String("document_url", result.URL),
			)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	runCmd.Flags().StringVar(&runClientName, "client", "", "client name to look up in Notion")
	runCmd.Flags().StringVar(&runRecordFile, "record", "", "YAML record file to generate from instead of Notion")
	runCmd.Flags().BoolVar(&runSkipPublish, "skip-publish", false, "print the bundle without creating a Google Doc")
	rootCmd.AddCommand(runCmd)
}
