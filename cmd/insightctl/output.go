package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/johnquangdev/meeting-insights/internal/adapter/dto/insight"
)

type outputFormat string

const (
	outputTable outputFormat = "table"
	outputJSON  outputFormat = "json"
	outputYAML  outputFormat = "yaml"
)

func parseOutputFormat(value string) (outputFormat, error) {
	switch outputFormat(strings.ToLower(strings.TrimSpace(value))) {
	case "", outputTable:
		return outputTable, nil
	case outputJSON:
		return outputJSON, nil
	case outputYAML, "yml":
		return outputYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want table, json or yaml)", value)
	}
}

func renderInsights(cmd *cobra.Command, format outputFormat, res *insight.InsightsResponse) error {
	switch format {
	case outputJSON:
		return writeJSON(cmd, res)
	case outputYAML:
		return writeYAML(cmd, res)
	}

	out := cmd.OutOrStdout()
	color := shouldColorize(out)

	fmt.Fprintln(out, heading("Summary", color))
	fmt.Fprintln(out, res.Summary)
	fmt.Fprintln(out)

	fmt.Fprintln(out, heading("Decisions", color))
	if len(res.Decisions) == 0 {
		fmt.Fprintln(out, "No decisions recorded.")
	} else {
		rows := make([][]string, 0, len(res.Decisions))
		for i, d := range res.Decisions {
			rows = append(rows, []string{strconv.Itoa(i + 1), d})
		}
		fmt.Fprintln(out, renderTable([]string{"#", "Decision"}, rows))
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, heading("Action items", color))
	if len(res.ActionItems) == 0 {
		fmt.Fprintln(out, "No action items recorded.")
	} else {
		rows := make([][]string, 0, len(res.ActionItems))
		for i, item := range res.ActionItems {
			owner := "-"
			if item.Owner != nil {
				owner = *item.Owner
			}
			rows = append(rows, []string{strconv.Itoa(i + 1), item.Task, owner})
		}
		fmt.Fprintln(out, renderTable([]string{"#", "Task", "Owner"}, rows))
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, heading("Sentiment", color))
	fmt.Fprintf(out, "%s: %s\n", sentimentLabel(res.Sentiment.Label, color), res.Sentiment.Justification)
	return nil
}

func renderAnswer(cmd *cobra.Command, format outputFormat, res *insight.QnAResponse) error {
	switch format {
	case outputJSON:
		return writeJSON(cmd, res)
	case outputYAML:
		return writeYAML(cmd, res)
	}

	out := cmd.OutOrStdout()
	color := shouldColorize(out)
	fmt.Fprintf(out, "%s %s\n", heading("Q:", color), res.Question)
	fmt.Fprintf(out, "%s %s\n", heading("A:", color), res.Answer)
	return nil
}

func renderTable(headers []string, rows [][]string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(headers))
		for i := range headers {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, len(headers))
	for i := range headers {
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       text.AlignLeft,
			AlignHeader: text.AlignLeft,
			WidthMax:    80,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(cmd *cobra.Command, v any) error {
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func heading(s string, color bool) string {
	if !color {
		return s
	}
	return text.Colors{text.Bold, text.FgCyan}.Sprint(s)
}

func sentimentLabel(label string, color bool) string {
	if !color {
		return label
	}
	switch label {
	case "Positive":
		return text.FgGreen.Sprint(label)
	case "Negative":
		return text.FgRed.Sprint(label)
	default:
		return text.FgYellow.Sprint(label)
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
