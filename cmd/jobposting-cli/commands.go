package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"jobposting/internal/config"
	"jobposting/internal/pipeline"
)

func newFlattenCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "flatten [input.xlsx]",
		Short: "Print the flattened sheet text without calling the LLM",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ext, err := a.extract(args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), ext)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), ext.Block.String())
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the extraction as JSON")
	return cmd
}

func newTextifyCmd(a *app) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "textify [input.xlsx]",
		Short: "Run phase 1 and print the structured text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ext, err := a.extract(args[0])
			if err != nil {
				return err
			}
			orch, err := a.orchestrator()
			if err != nil {
				return err
			}
			res, err := orch.Textify(cmd.Context(), ext.Block)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), outputPath, res.StructuredText)
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	return cmd
}

func newMapCmd(a *app) *cobra.Command {
	var (
		outputPath string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "map [structured-text-file|-]",
		Short: "Run phase 2 on structured text and print the job posting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			orch, err := a.orchestrator()
			if err != nil {
				return err
			}
			res, err := orch.Map(cmd.Context(), text)
			if err != nil {
				return err
			}
			return printMapResult(cmd.OutOrStdout(), outputPath, res, asJSON)
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the job posting as JSON")
	return cmd
}

func newGenerateCmd(a *app) *cobra.Command {
	var (
		outputPath string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "generate [input.xlsx]",
		Short: "Run both phases on a hearing sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ext, err := a.extract(args[0])
			if err != nil {
				return err
			}
			orch, err := a.orchestrator()
			if err != nil {
				return err
			}
			phase1, err := orch.Textify(cmd.Context(), ext.Block)
			if err != nil {
				return err
			}
			res, err := orch.Map(cmd.Context(), phase1.StructuredText)
			if err != nil {
				return err
			}
			return printMapResult(cmd.OutOrStdout(), outputPath, res, asJSON)
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the job posting as JSON")
	return cmd
}

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "Write a config file with default values",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultPath()
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}
			if err := config.SaveConfigTo(config.DefaultConfig(), path); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return err
		},
	})
	return cmd
}

func printMapResult(w io.Writer, outputPath string, res *pipeline.MapResult, asJSON bool) error {
	if !asJSON {
		return writeOutput(w, outputPath, res.GeneratedText)
	}
	var buf bytes.Buffer
	if err := writeJSON(&buf, res.JobPosting); err != nil {
		return err
	}
	return writeOutput(w, outputPath, buf.String())
}

func readInput(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func writeOutput(w io.Writer, outputPath, content string) error {
	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	_, err := fmt.Fprint(w, content)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
