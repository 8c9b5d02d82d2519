package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"promptglot/internal/app"
	"promptglot/internal/infra"
)

var version = "1.0.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "promptglot",
	Short: "PromptGlot CLI - Afrikaans-aware image editing from the terminal",
	Long: `promptglot runs the same translation and image edit pipeline as the API.

Examples:
  promptglot translate "Ek wil nie die kat hê nie"
  promptglot edit --image cat.png --prompt "Verwyder die kat" --out ./out
  promptglot health`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(translateCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(healthCmd)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging on stderr")
}

// loadContainer reads .env and the environment and builds every provider.
func loadContainer(cmd *cobra.Command) (*app.Container, error) {
	_ = godotenv.Load()
	cfg, err := infra.LoadConfig()
	if err != nil {
		return nil, err
	}
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := infra.NewCLILogger(verbose)
	return app.New(cmd.Context(), cfg, &logger)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
