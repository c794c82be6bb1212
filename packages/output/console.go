package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/licenseguard/licenseguard/packages/core/config"
)

// Console renders configurations and command results for terminals.
type Console struct {
	writer  io.Writer
	noColor bool
}

type Option func(*Console)

func WithWriter(w io.Writer) Option {
	return func(c *Console) { c.writer = w }
}

func WithNoColor(noColor bool) Option {
	return func(c *Console) { c.noColor = noColor }
}

func New(opts ...Option) *Console {
	c := &Console{writer: os.Stdout}
	for _, opt := range opts {
		opt(c)
	}
	if c.noColor {
		color.NoColor = true
	}
	return c
}

// Heading prints a bold section heading.
func (c *Console) Heading(format string, args ...any) {
	bold := color.New(color.Bold)
	fmt.Fprintln(c.writer, bold.Sprintf(format, args...))
}

// Field prints one indented name/value line.
func (c *Console) Field(name string, value any) {
	label := color.New(color.FgCyan).Sprintf("%s:", name)
	fmt.Fprintf(c.writer, "  %-14s %v\n", label, value)
}

// Warnf prints a yellow warning line.
func (c *Console) Warnf(format string, args ...any) {
	fmt.Fprintln(c.writer, color.YellowString(format, args...))
}

// Errorf prints a red error line.
func (c *Console) Errorf(format string, args ...any) {
	fmt.Fprintln(c.writer, color.RedString(format, args...))
}

// Successf prints a green status line.
func (c *Console) Successf(format string, args ...any) {
	fmt.Fprintln(c.writer, color.GreenString(format, args...))
}

// Printf prints an unstyled message.
func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.writer, format, args...)
}

// App prints one resolved app configuration. Source enablement is
// reported against the registered types, enabled types first.
func (c *Console) App(cfg *config.Configuration, types []string) {
	c.Heading("%s", cfg.Name())
	c.Field("source_path", cfg.SourcePath())
	c.Field("cache_path", cfg.CachePath())
	c.Field("root", cfg.Root())
	if allowed := cfg.AllowedLicenses(); len(allowed) > 0 {
		c.Field("allowed", strings.Join(allowed, ", "))
	}
	var enabled, disabled []string
	for _, name := range types {
		if cfg.Enabled(name) {
			enabled = append(enabled, name)
		} else {
			disabled = append(disabled, name)
		}
	}
	if len(enabled) > 0 {
		c.Field("sources", color.GreenString(strings.Join(enabled, ", ")))
	}
	if len(disabled) > 0 {
		c.Field("disabled", color.New(color.Faint).Sprint(strings.Join(disabled, ", ")))
	}
}
