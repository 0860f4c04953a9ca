package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/JonMunkholm/cloudsaver/internal/core"
)

type analyzeOptions struct {
	output string
	out    string
}

func newAnalyzeCmd(a *app) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze <file.csv>...",
		Short: "Analyze billing exports and print suggestions",
		Long: `Analyze one or more billing CSV exports and print the analysis.

The cloud is inferred from each file name when the export has no cloud
column, so keep "aws", "azure" or "gcp" in the name.

Examples:
  cloudsaver analyze aws_bill.csv
  cloudsaver analyze aws_bill.csv azure_bill.csv -o yaml
  cloudsaver analyze gcp_bill.csv --out analysis.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analysis, err := analyzePaths(args)
			if err != nil {
				return err
			}
			a.logger.Info("analysis complete",
				"files", len(args),
				"suggestions", len(analysis.Suggestions),
				"total_saving", analysis.Summary.TotalSaving,
			)

			return withOutput(cmd.OutOrStdout(), opts.out, func(w io.Writer) error {
				return encode(w, opts.output, analysis)
			})
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "json", "Output format: json, yaml")
	cmd.Flags().StringVar(&opts.out, "out", "", "Write to file instead of stdout")
	return cmd
}

// analyzePaths reads every path and runs the analysis pipeline. File names
// (not full paths) become the record source, as with uploads.
func analyzePaths(paths []string) (*core.Analysis, error) {
	files := make([]core.File, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		files = append(files, core.File{Name: filepath.Base(p), Data: data})
	}
	return core.Analyze(files)
}

// withOutput runs write against stdout, or against path when it is set.
func withOutput(stdout io.Writer, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func encode(w io.Writer, format string, v any) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "yml":
		b, err := toYAML(v)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	default:
		return fmt.Errorf("unknown output format %q (use json or yaml)", format)
	}
}

// toYAML renders v with its JSON field names and field order. JSON is valid
// YAML, so the JSON encoding is parsed into a node tree and re-emitted in
// block style.
func toYAML(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var node yaml.Node
	if err := yaml.Unmarshal(b, &node); err != nil {
		return nil, err
	}
	blockStyle(&node)
	return yaml.Marshal(&node)
}

func blockStyle(n *yaml.Node) {
	if n.Kind == yaml.ScalarNode && n.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0 {
		n.Tag = "!!str"
	}
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}
