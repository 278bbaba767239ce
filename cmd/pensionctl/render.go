package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aristath/pension/internal/modules/reports"
	"github.com/aristath/pension/internal/modules/retirement"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		flags  analysisFlags
		format string
		input  string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render an analysis as a PDF, HTML or plain-text report",
		Long: "Render a report from an analysis JSON file (--input, as printed by analyze --json)\n" +
			"or from a fresh analysis built from the same flags as analyze.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var analysis retirement.AnalysisResult
			if input != "" {
				loaded, err := loadAnalysis(input)
				if err != nil {
					return err
				}
				analysis = loaded
			} else {
				req, err := flags.request(cmd)
				if err != nil {
					return err
				}
				analysis, err = a.analyzer.Analyze(cmd.Context(), req)
				if err != nil {
					return err
				}
			}

			var buf bytes.Buffer
			if err := renderReport(&buf, format, analysis); err != nil {
				return err
			}

			if out == "" && format == "pdf" {
				out = reports.PDFFilename
			}
			if out == "" || out == "-" {
				_, err := buf.WriteTo(cmd.OutOrStdout())
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", out)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&format, "format", "pdf", "Report format: pdf, html or text")
	cmd.Flags().StringVar(&input, "input", "", "Analysis JSON file to render instead of running a new analysis")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file, - for stdout (defaults to "+reports.PDFFilename+" for pdf, stdout otherwise)")
	return cmd
}

func renderReport(w io.Writer, format string, analysis retirement.AnalysisResult) error {
	switch format {
	case "pdf":
		return reports.NewPDFRenderer().Render(w, analysis)
	case "html", "text":
		renderer, err := reports.NewEmailRenderer()
		if err != nil {
			return err
		}
		render := renderer.Render
		if format == "text" {
			render = renderer.RenderText
		}
		body, err := render(analysis)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, body)
		return err
	default:
		return fmt.Errorf("unknown format %q (want pdf, html or text)", format)
	}
}

func loadAnalysis(path string) (retirement.AnalysisResult, error) {
	var analysis retirement.AnalysisResult

	data, err := os.ReadFile(path)
	if err != nil {
		return analysis, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &analysis); err != nil {
		return analysis, fmt.Errorf("failed to parse analysis in %s: %w", path, err)
	}
	return analysis, nil
}
