// Copyright 2026 Conductor OSS
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	plainify "github.com/nicholasgasior/plainify-go"
	"github.com/nicholasgasior/plainify-go/internal/version"
)

var (
	outputPath     string
	describeImages bool
	apiKey         string
	verbose        bool
)

var rootCmd = &cobra.Command{
	Use:   "plainify INPUT_FILE",
	Short: "Convert DOCX files to structured YAML for AI processing",
	Long: `Convert DOCX files to structured YAML format for AI processing.

INPUT_FILE: Path to the input .docx file to convert.

Image descriptions require an Azure OpenAI deployment configured through
the environment (a .env file is loaded if present):

  AZURE_OPENAI_ENDPOINT=https://your-resource.openai.azure.com/
  AZURE_OPENAI_DEPLOYMENT_NAME=your-deployment
  AZURE_OPENAI_API_VERSION=2024-02-15-preview
  AZURE_OPENAI_API_KEY=...`,
	Example: `  # Basic conversion
  plainify document.docx

  # Specify output file
  plainify document.docx -o output.yaml

  # Include image descriptions
  plainify document.docx --describe-images`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"Output YAML file path (default: input filename with .yaml extension)")
	rootCmd.Flags().BoolVar(&describeImages, "describe-images", false,
		"Generate descriptions for images using an LLM (requires Azure OpenAI configuration)")
	rootCmd.Flags().StringVar(&apiKey, "api-key", "",
		"Deprecated: use the AZURE_OPENAI_* environment variables instead")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose logging")

	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("plainify %s\n", version.String()))
}

func run(cmd *cobra.Command, args []string) error {
	// Best effort; the environment may already be configured.
	_ = godotenv.Load()

	logger := setupLogging(verbose)

	input := args[0]
	if strings.ToLower(filepath.Ext(input)) != ".docx" {
		return fmt.Errorf("input file must be a .docx file: %s", input)
	}

	output := outputPath
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".yaml"
	}

	opts := []plainify.Option{plainify.WithLogger(logger)}

	if describeImages {
		describer, err := azureDescriberFromEnv(logger)
		if err != nil {
			return err
		}
		opts = append(opts, plainify.WithDescriber(describer))
	}

	conv := plainify.New(opts...)
	return conv.ConvertToFile(cmd.Context(), input, output)
}

// azureDescriberFromEnv builds the enrichment client from the three Azure
// settings plus the API key. The deprecated --api-key flag and
// OPENAI_API_KEY variable still work as key fallbacks, with a warning.
func azureDescriberFromEnv(logger *slog.Logger) (plainify.Describer, error) {
	cfg := plainify.AzureConfig{
		Endpoint:   os.Getenv("AZURE_OPENAI_ENDPOINT"),
		Deployment: os.Getenv("AZURE_OPENAI_DEPLOYMENT_NAME"),
		APIVersion: os.Getenv("AZURE_OPENAI_API_VERSION"),
		APIKey:     os.Getenv("AZURE_OPENAI_API_KEY"),
	}

	if apiKey != "" {
		logger.Warn("--api-key is deprecated, use AZURE_OPENAI_API_KEY instead")
		if cfg.APIKey == "" {
			cfg.APIKey = apiKey
		}
	}
	if cfg.APIKey == "" {
		if legacy := os.Getenv("OPENAI_API_KEY"); legacy != "" {
			logger.Warn("OPENAI_API_KEY is deprecated, use AZURE_OPENAI_API_KEY instead")
			cfg.APIKey = legacy
		}
	}

	if cfg.Endpoint == "" || cfg.Deployment == "" || cfg.APIVersion == "" {
		return nil, fmt.Errorf("--describe-images requires AZURE_OPENAI_ENDPOINT, " +
			"AZURE_OPENAI_DEPLOYMENT_NAME and AZURE_OPENAI_API_VERSION to be set")
	}
	return plainify.NewAzureDescriber(cfg)
}

func setupLogging(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
