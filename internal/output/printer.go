// Package output renders command results and messages for the terminal.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/gshell/internal/core/domain"
)

// Options configures a Printer.
type Options struct {
	Out    io.Writer
	Err    io.Writer
	Format domain.OutputFormat
	Color  domain.ColorMode
}

// Printer writes results to Out and messages to Err.
type Printer struct {
	out    io.Writer
	err    io.Writer
	format domain.OutputFormat
	styles *Styles
	errSty *Styles
}

// NewPrinter creates a printer. Zero options mean stdout, stderr, table
// output and automatic colour.
func NewPrinter(opts Options) *Printer {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if !opts.Format.IsValid() {
		opts.Format = domain.OutputTable
	}

	return &Printer{
		out:    opts.Out,
		err:    opts.Err,
		format: opts.Format,
		styles: NewStyles(opts.Out, nil, ResolveColors(opts.Color, opts.Out)),
		errSty: NewStyles(opts.Err, nil, ResolveColors(opts.Color, opts.Err)),
	}
}

// ResolveColors decides whether w gets coloured output.
func ResolveColors(mode domain.ColorMode, w io.Writer) bool {
	switch mode {
	case domain.ColorAlways:
		return true
	case domain.ColorNever:
		return false
	default:
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false
		}
		if os.Getenv("TERM") == "dumb" {
			return false
		}
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd()))
	}
}

// Format returns the result format.
func (p *Printer) Format() domain.OutputFormat {
	return p.format
}

// Out returns the result writer.
func (p *Printer) Out() io.Writer {
	return p.out
}

// Info prints an informational message.
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintln(p.err, p.errSty.Info.Render(fmt.Sprintf(format, args...)))
}

// Success prints a success message.
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.err, p.errSty.Success.Render(fmt.Sprintf(format, args...)))
}

// Warning prints a warning message.
func (p *Printer) Warning(format string, args ...any) {
	fmt.Fprintln(p.err, p.errSty.Warning.Render("Warning: "+fmt.Sprintf(format, args...)))
}

// Error prints an error message.
func (p *Printer) Error(format string, args ...any) {
	fmt.Fprintln(p.err, p.errSty.Error.Render("Error: "+fmt.Sprintf(format, args...)))
}

// Line prints a plain line to the result writer.
func (p *Printer) Line(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Print renders v in the configured format. In table format v must be a
// Row or a slice of Rows; anything else falls back to YAML.
func (p *Printer) Print(v any) error {
	v = nonNil(v)
	switch p.format {
	case domain.OutputJSON:
		return p.printJSON(v)
	case domain.OutputYAML:
		return p.printYAML(v)
	default:
		header, rows, ok := tableOf(v)
		if !ok {
			return p.printYAML(v)
		}
		if len(rows) == 0 {
			return nil
		}
		_, err := fmt.Fprintln(p.out, p.renderTable(header, rows))
		return err
	}
}

func (p *Printer) printJSON(v any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *Printer) printYAML(v any) error {
	enc := yaml.NewEncoder(p.out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// PrintError reports err on the message writer, with the activity and
// target of an ErrorRecord and a hint where one applies.
func (p *Printer) PrintError(err error) {
	if err == nil {
		return
	}
	p.Error("%v", err)

	if rec, ok := AsRecord(err); ok {
		fmt.Fprintln(p.err, p.errSty.Muted.Render(fmt.Sprintf("  Category: %s", rec.Category)))
	}
	if hint := Hint(err); hint != "" {
		fmt.Fprintln(p.err, p.errSty.Info.Render("  Suggestion: "+hint))
	}
}
