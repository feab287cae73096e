package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dmochalinn/agent-orchestrator/pkg/validate"
)

var validateLabel string

var validateURLCmd = &cobra.Command{
	Use:   "validate-url URL",
	Short: "Fail unless URL is an http(s) URL",
	Long: `Exit non-zero with a descriptive message when URL does not start with
http:// or https://. Plugins run this check before a URL is opened by
another program.

Examples:
  aoutil validate-url https://github.com/org/repo/pull/1
  aoutil validate-url --label "Webhook URL" "$AO_WEBHOOK"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validate.URL(args[0], validateLabel); err != nil {
			logger.Debug("url rejected", zap.String("label", validateLabel), zap.Error(err))
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateURLCmd)
	validateURLCmd.Flags().StringVar(&validateLabel, "label", "URL", "Name of the value, used in the error message")
}
