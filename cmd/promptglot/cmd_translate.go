package main

import (
	"github.com/spf13/cobra"

	"promptglot/internal/edit"
)

var translateCmd = &cobra.Command{
	Use:   "translate [text...]",
	Short: "Translate prompts and print the extracted edit intent",
	Long: `Translate one or more prompts to English and classify the edit intent.

Examples:
  promptglot translate "Ek wil nie die kat hê nie"
  promptglot translate --source en "remove the dog" "add a hat"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTranslate,
}

func init() {
	translateCmd.Flags().String("source", edit.SourceLocaleAfrikaans, "Source language (en or af)")
	translateCmd.Flags().String("target", edit.TargetLocaleEnglish, "Target locale")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	container, err := loadContainer(cmd)
	if err != nil {
		return err
	}
	defer container.Close()

	source, _ := cmd.Flags().GetString("source")
	target, _ := cmd.Flags().GetString("target")
	resolver := container.Pipeline.Resolver()

	results, derr := resolver.ResolveBatch(cmd.Context(), args, source, target)
	if derr != nil {
		return derr
	}
	out := make([]map[string]any, len(results))
	for i, res := range results {
		out[i] = map[string]any{
			"original":          res.Original,
			"translated":        res.Translated,
			"action":            res.Action,
			"subject":           res.Subject,
			"hasDoubleNegation": res.HasDoubleNegation,
		}
	}
	return printJSON(cmd.OutOrStdout(), out)
}
