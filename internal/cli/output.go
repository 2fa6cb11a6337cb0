package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alexanderramin/relplan/internal/app"
	"github.com/alexanderramin/relplan/internal/calendar"
	"github.com/spf13/cobra"
)

// outputOptions carries the root's persistent flags to subcommands.
type outputOptions struct {
	json    bool
	release string
}

// render prints v as indented JSON, or the text produced by table.
func (o *outputOptions) render(cmd *cobra.Command, v any, table func() string) error {
	out := cmd.OutOrStdout()
	if o.json {
		return writeJSON(out, v)
	}
	_, err := fmt.Fprintln(out, table())
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseDate parses a YYYY-MM-DD flag value. An empty value is the zero time.
func parseDate(flag, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(app.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s %q: use YYYY-MM-DD", flag, value)
	}
	return calendar.Day(t), nil
}
