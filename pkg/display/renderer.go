package display

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/dotlink/dotlink/pkg/types"
)

// Renderer writes command results to an output stream in a single
// resolved format. Callers resolve FormatAuto with Detect before
// constructing one.
type Renderer struct {
	out    io.Writer
	format Format
}

// NewRenderer creates a renderer for the given resolved format.
func NewRenderer(w io.Writer, format Format) *Renderer {
	return &Renderer{out: w, format: format}
}

// Machine reports whether the renderer emits a machine-readable
// format. Callers use it to hand over whole result documents instead
// of composing human-oriented lines.
func (r *Renderer) Machine() bool {
	return r.format == FormatJSON || r.format == FormatYAML
}

// Statuses renders the per-mapping statuses as a table (terminal and
// text formats) or as a document (JSON and YAML).
func (r *Renderer) Statuses(statuses []types.MappingStatus) error {
	switch r.format {
	case FormatJSON, FormatYAML:
		return r.encode(statuses)
	}

	if len(statuses) == 0 {
		_, err := fmt.Fprintln(r.out, "no mappings configured")
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Target", "Status", "Source", "Detail"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
	})

	for _, st := range statuses {
		table.Append([]string{
			st.Mapping.Target,
			r.statusBadge(st.Status),
			st.Mapping.Source,
			st.Detail,
		})
	}
	table.Render()

	_, err := r.out.Write(buf.Bytes())
	return err
}

// Report renders an execution report as one line per action plus a
// summary, or as a document for machine formats.
func (r *Renderer) Report(report *types.Report) error {
	switch r.format {
	case FormatJSON, FormatYAML:
		return r.encode(report)
	}

	for _, res := range report.Results {
		line := fmt.Sprintf("%s %s", r.indicator(res.Status), res.Message)
		if res.Error != "" {
			line += ": " + res.Error
		}
		if _, err := fmt.Fprintln(r.out, line); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(r.out, summaryLine(report))
	return err
}

// Message renders a standalone informational message.
func (r *Renderer) Message(msg string) error {
	switch r.format {
	case FormatJSON, FormatYAML:
		return r.encode(map[string]string{"message": msg})
	}
	_, err := fmt.Fprintln(r.out, msg)
	return err
}

// Error renders an error. Machine formats wrap it in a document so
// consumers never have to parse free text.
func (r *Renderer) Error(e error) error {
	switch r.format {
	case FormatJSON, FormatYAML:
		return r.encode(map[string]string{"error": e.Error()})
	}

	prefix := "Error:"
	if r.format == FormatTerm {
		prefix = ErrorStyle.Render("Error:")
	}
	_, err := fmt.Fprintf(r.out, "%s %s\n", prefix, e.Error())
	return err
}

// Result renders an arbitrary command result for machine formats and
// falls back to a message for human formats.
func (r *Renderer) Result(v any) error {
	switch r.format {
	case FormatJSON, FormatYAML:
		return r.encode(v)
	}
	_, err := fmt.Fprintf(r.out, "%v\n", v)
	return err
}

func (r *Renderer) encode(v any) error {
	if r.format == FormatYAML {
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}

	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (r *Renderer) statusBadge(status types.LinkStatus) string {
	s := strings.ToUpper(string(status))
	if r.format != FormatTerm {
		return s
	}
	return StatusStyle(status).Sprintf(" %s ", s)
}

func (r *Renderer) indicator(status types.ResultStatus) string {
	if r.format != FormatTerm {
		switch status {
		case types.ResultSuccess:
			return "ok"
		case types.ResultSkipped:
			return "--"
		case types.ResultRefused:
			return "!!"
		default:
			return "XX"
		}
	}
	return resultIndicator(status)
}

func summaryLine(report *types.Report) string {
	counts := report.Counts()
	parts := []string{
		fmt.Sprintf("%d applied", counts[types.ResultSuccess]),
	}
	if n := counts[types.ResultSkipped]; n > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", n))
	}
	if n := counts[types.ResultRefused]; n > 0 {
		parts = append(parts, fmt.Sprintf("%d refused", n))
	}
	if n := counts[types.ResultFailed]; n > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", n))
	}

	line := strings.Join(parts, ", ")
	if report.DryRun {
		line += " (dry run)"
	}
	return line
}
