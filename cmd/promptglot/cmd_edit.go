package main

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"promptglot/internal/domain"
	"promptglot/internal/edit"
	"promptglot/internal/storage"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit a local image and store the result",
	Long: `Run the full edit pipeline on a local image and write the result to the
output directory.

Examples:
  promptglot edit --image cat.png --prompt "Ek wil nie die kat hê nie"
  promptglot edit --image room.jpg --mask mask.png --language en --prompt "add a plant" --strength 0.6`,
	RunE: runEdit,
}

func init() {
	editCmd.Flags().String("image", "", "Path to the source image (required)")
	editCmd.Flags().String("mask", "", "Path to a mask image")
	editCmd.Flags().String("prompt", "", "Editing prompt (required)")
	editCmd.Flags().String("language", string(domain.LanguageAfrikaans), "Prompt language (en or af)")
	editCmd.Flags().String("strength", "", "Inpainting strength between 0 and 1")
	editCmd.Flags().String("out", "out", "Output directory")
	_ = editCmd.MarkFlagRequired("image")
	_ = editCmd.MarkFlagRequired("prompt")
}

func runEdit(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	imagePath, _ := flags.GetString("image")
	maskPath, _ := flags.GetString("mask")
	prompt, _ := flags.GetString("prompt")
	language, _ := flags.GetString("language")
	strength, _ := flags.GetString("strength")
	outDir, _ := flags.GetString("out")

	image, err := readUpload(imagePath)
	if err != nil {
		return err
	}
	mask, err := readUpload(maskPath)
	if err != nil {
		return err
	}
	req, verr := edit.Validate(edit.RawInput{
		Image:    image,
		Mask:     mask,
		Prompt:   prompt,
		Language: language,
		Strength: strength,
	})
	if verr != nil {
		return verr
	}

	store, err := storage.NewFileStore(outDir)
	if err != nil {
		return err
	}
	container, err := loadContainer(cmd)
	if err != nil {
		return err
	}
	defer container.Close()

	res := container.Pipeline.Run(cmd.Context(), req)
	if res.Err != nil {
		return fmt.Errorf("%s: %s", res.Err.Code, res.Err.PublicMessage())
	}
	data, err := base64.StdEncoding.DecodeString(res.Outcome.ImageBase64)
	if err != nil {
		return fmt.Errorf("decode edited image: %w", err)
	}
	key, err := store.SaveEdit(cmd.Context(), strings.TrimPrefix(res.Outcome.ContentType, "image/"), data)
	if err != nil {
		return err
	}
	path, err := store.Path(key)
	if err != nil {
		return err
	}

	summary := map[string]any{
		"path":             path,
		"contentType":      res.Outcome.ContentType,
		"route":            res.Route,
		"originalPrompt":   res.OriginalPrompt,
		"translatedPrompt": res.TranslatedPrompt,
		"finishReason":     res.FinishReason,
		"seed":             res.Seed,
	}
	if w, h := req.Image.Dimensions(); w > 0 {
		summary["width"], summary["height"] = w, h
	}
	if res.Intent != nil {
		summary["action"] = res.Intent.Action
		summary["subject"] = res.Intent.Subject
	}
	return printJSON(cmd.OutOrStdout(), summary)
}

// readUpload loads a local file; an empty path means the part is absent.
func readUpload(path string) (*domain.Upload, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("file not found: %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &domain.Upload{Filename: filepath.Base(path), Data: data}, nil
}
