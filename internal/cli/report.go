package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/cloudsaver/internal/report"
)

type reportOptions struct {
	input  string
	format string
	out    string
}

func newReportCmd(a *app) *cobra.Command {
	opts := &reportOptions{}

	cmd := &cobra.Command{
		Use:   "report [file.csv]...",
		Short: "Render a CSV or PDF savings report",
		Long: `Render a savings report from a saved analysis (--input, "-" for stdin)
or by analyzing billing exports given as arguments.

Examples:
  cloudsaver analyze aws_bill.csv --out analysis.json
  cloudsaver report --input analysis.json --format pdf
  cloudsaver report aws_bill.csv --format csv --out savings.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := report.ParseFormat(opts.format)
			if err != nil {
				return err
			}

			doc, err := opts.document(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			renderer := report.NewRenderer(report.Options{
				FontPath:   a.cfg.Report.FontPath,
				FontFamily: a.cfg.Report.FontFamily,
				Logger:     a.logger,
			})
			res, err := renderer.Render(format, doc)
			if err != nil {
				return err
			}

			out := opts.out
			if out == "" {
				out = res.Filename()
			}
			if err := os.WriteFile(out, res.Body, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}

			a.logger.Info("report written",
				"report_id", res.ID.String(),
				"path", out,
				"bytes", len(res.Body),
			)
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", `Analysis JSON from "cloudsaver analyze" ("-" for stdin)`)
	cmd.Flags().StringVarP(&opts.format, "format", "f", "csv", "Report format: csv, pdf")
	cmd.Flags().StringVar(&opts.out, "out", "", "Output path (default cloudsaver_report.<ext>)")
	return cmd
}

// document loads the report input from --input or by analyzing args.
func (o *reportOptions) document(stdin io.Reader, args []string) (report.Document, error) {
	switch {
	case o.input != "" && len(args) > 0:
		return report.Document{}, errors.New("use either --input or billing files, not both")
	case len(args) > 0:
		analysis, err := analyzePaths(args)
		if err != nil {
			return report.Document{}, err
		}
		return report.FromAnalysis(analysis), nil
	case o.input == "-":
		return report.DecodeDocument(stdin)
	case o.input != "":
		f, err := os.Open(o.input)
		if err != nil {
			return report.Document{}, fmt.Errorf("open %s: %w", o.input, err)
		}
		defer f.Close()
		return report.DecodeDocument(f)
	default:
		return report.Document{}, errors.New("nothing to report: pass --input or billing files")
	}
}
