package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/CodeWithSiya/Detective-AI-sub000/pkg/config"
	"github.com/CodeWithSiya/Detective-AI-sub000/pkg/observability/logging"
	"github.com/CodeWithSiya/Detective-AI-sub000/pkg/routing"
	"github.com/CodeWithSiya/Detective-AI-sub000/pkg/services"
)

var (
	// Version information (set by build flags)
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	// Initialize logging
	if _, err := logging.InitLoggerFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
	}

	rootCmd := &cobra.Command{
		Use:     "detective",
		Short:   "Detective-AI detection serving CLI",
		Long:    "detective runs the AI-generated-content detection pipeline from the command line:\nrouting, prediction caching and best-effort explanation enrichment.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	}

	rootCmd.PersistentFlags().StringP("config", "c", "config/config.yaml", "Path to configuration file")

	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newValidateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAnalyzeCmd() *cobra.Command {
	var (
		filePath string
		kind     string
	)

	cmd := &cobra.Command{
		Use:   "analyze [text]",
		Short: "Analyze text or an image file for AI-generated content",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")

			cfg, err := loadConfigOrDefault(configPath)
			if err != nil {
				return err
			}

			var content []byte
			switch {
			case filePath != "":
				content, err = os.ReadFile(filePath)
				if err != nil {
					return fmt.Errorf("failed to read input file: %w", err)
				}
			case len(args) > 0:
				content = []byte(args[0])
			default:
				return fmt.Errorf("provide text as an argument or a file via --file")
			}

			contentKind := routing.KindText
			if kind == "image" {
				contentKind = routing.KindImage
			}

			service, err := services.NewAnalysisServiceFromConfig(cmd.Context(), cfg, nil)
			if err != nil {
				return err
			}
			defer service.Close()

			result, err := service.Analyze(cmd.Context(), content, contentKind)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Read content from a file instead of the argument")
	cmd.Flags().StringVarP(&kind, "kind", "k", "text", "Content kind: text or image")
	return cmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			if _, err := config.Parse(configPath); err != nil {
				return err
			}
			fmt.Printf("Config %s is valid\n", configPath)
			return nil
		},
	}
}

func loadConfigOrDefault(path string) (*config.DetectorConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logging.Warnf("Config file %s not found, using defaults", path)
		return config.NewDefault(), nil
	}
	return config.Load(path)
}
