package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	scribe "github.com/matthewjhunter/scribe"
	"github.com/matthewjhunter/scribe/internal/config"
	"github.com/matthewjhunter/scribe/internal/output"
)

var (
	configPath   string
	cfg          *config.Config
	outputFormat string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "scribe",
		Short: "Feed digester - aggregates subscriptions, deduplicates, and summarizes new entries with AI",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path (default: ./config.toml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json", "output format: json, text, human (default: json)")

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(initConfigCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() error {
	if configPath == "" {
		configPath = "./config.toml"
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg = config.Default()
		return nil
	}

	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded
	return nil
}

func runCmd() *cobra.Command {
	var readmePath string
	var siteURL string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process every subscription: fetch, dedupe, filter, summarize, and rewrite archives",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			formatter := output.NewFormatter(output.Format(outputFormat))

			engine, err := scribe.NewEngine(cfg)
			if err != nil {
				return err
			}
			defer engine.Close()

			result, err := engine.Run(ctx)
			if err != nil {
				return err
			}

			// Descriptors feed the index page and optional readme list.
			var descriptors []output.FeedDescriptor
			var links []string
			for _, sub := range result.Subscriptions {
				descriptors = append(descriptors, output.FeedDescriptor{
					URL:  strings.ReplaceAll(sub.URL, ",", "<br>"),
					Name: sub.Name,
				})
				links = append(links, "- "+strings.ReplaceAll(sub.URL, ",", ", ")+" -> "+siteURL+sub.Name+".xml")
			}

			indexPath := filepath.Join(cfg.Global.Base, "index.html")
			if err := output.WriteIndex(indexPath, time.Now(), descriptors); err != nil {
				formatter.Warning("index generation failed: %v", err)
			}

			if readmePath != "" {
				if err := output.AppendReadme(readmePath, links); err != nil {
					formatter.Warning("readme update failed: %v", err)
				}
			}

			return formatter.OutputRunResult(convertResult(result))
		},
	}
	cmd.Flags().StringVar(&readmePath, "readme", "", "readme file to refresh with feed links (skipped when empty)")
	cmd.Flags().StringVar(&siteURL, "site-url", "", "base URL prefixed to feed names in readme links")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration without fetching anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			fmt.Printf("Config OK: %d subscription(s)\n", len(loaded.Subscriptions))
			return nil
		},
	}
}

func initConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config",
		Short: "Create a default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(configPath); err == nil {
				return fmt.Errorf("config file already exists: %s", configPath)
			}

			if dir := filepath.Dir(configPath); dir != "." {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return fmt.Errorf("failed to create config directory: %w", err)
				}
			}

			defaults := config.Default()
			defaults.Subscriptions = []config.Subscription{{
				Name:     "example",
				URL:      "https://example.com/feed.xml",
				MaxItems: 5,
			}}

			f, err := os.Create(configPath)
			if err != nil {
				return fmt.Errorf("failed to create config: %w", err)
			}
			defer f.Close()

			if err := toml.NewEncoder(f).Encode(defaults); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}

			fmt.Printf("Created default config at %s\n", configPath)
			return nil
		},
	}
}

func convertResult(result *scribe.RunResult) *output.RunResult {
	out := &output.RunResult{}
	for _, sub := range result.Subscriptions {
		out.Subscriptions = append(out.Subscriptions, output.SubscriptionResult{
			Name:       sub.Name,
			URL:        sub.URL,
			Existing:   sub.Existing,
			Appended:   sub.Appended,
			Summarized: sub.Summarized,
			Filtered:   sub.Filtered,
			Duplicates: sub.Duplicates,
			Sources:    sub.Sources,
			SourceErrs: sub.SourceErrs,
			Persisted:  sub.Persisted,
		})
	}
	return out
}
