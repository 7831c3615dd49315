// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"net/http"
	"os"
	"sort"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/fairscanproj/fairscan/internal/config"
	"github.com/fairscanproj/fairscan/internal/indicator"
	"github.com/fairscanproj/fairscan/internal/metadata"
)

var (
	configPath   string
	itemID       string
	metadataFile string
	formatHint   string
	jsonOutput   bool
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Run the FAIR indicator battery over one metadata record",
	Long: "Fetches the metadata record of the given item from the configured repository " +
		"endpoint (or reads it from a local file), normalizes it and scores every RDA FAIR " +
		"indicator, printing the per-indicator points and justifications.",
	RunE: runEvaluate,
}

func init() {
	evaluateCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the evaluation configuration (required)")
	evaluateCmd.Flags().StringVar(&itemID, "id", "", "identifier of the evaluation subject (required)")
	evaluateCmd.Flags().StringVarP(&metadataFile, "file", "f", "", "read the metadata document from a local file instead of the endpoint")
	evaluateCmd.Flags().StringVar(&formatHint, "format", "", "format hint for the metadata document: jsonld, yaml or html")
	evaluateCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the report as JSON")
	_ = evaluateCmd.MarkFlagRequired("config")
	_ = evaluateCmd.MarkFlagRequired("id")
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	var (
		source  metadata.Source
		headers http.Header
	)
	if metadataFile != "" {
		content, err := os.ReadFile(metadataFile)
		if err != nil {
			return fmt.Errorf("reading metadata file %s: %w", metadataFile, err)
		}
		source = metadata.Source{Content: content, Format: formatHint, ID: itemID}
	} else {
		client := metadata.NewClient(cfg.Endpoint, nil, logger)
		source, headers, err = client.FetchRecord(ctx, itemID)
		if err != nil {
			return err
		}
	}

	session, err := indicator.NewSession(ctx, cfg, itemID, source, headers, logger)
	if err != nil {
		return err
	}

	results := session.Engine.EvaluateAll(ctx)
	if jsonOutput {
		return printJSON(cmd, results)
	}
	printReport(cmd, results)
	return nil
}

func printJSON(cmd *cobra.Command, results map[string]indicator.Result) error {
	encoded, err := yaml.MarshalWithOptions(results, yaml.JSON())
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	cmd.Println(string(encoded))
	return nil
}

func printReport(cmd *cobra.Command, results map[string]indicator.Result) {
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		result := results[name]
		cmd.Printf("%-14s %6.1f\n", name, result.Points)
		for _, msg := range result.Messages {
			cmd.Printf("    - %s\n", msg.Message)
		}
	}
}
