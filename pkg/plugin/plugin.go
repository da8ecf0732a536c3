// Package plugin implements the output and exit code convention shared by
// Nagios compatible monitoring plugins (Icinga, Naemon, Shinken).
package plugin

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

type State int

const (
	OK State = iota
	Warning
	Critical
	Unknown
)

func (s State) String() string {
	switch s {
	case OK:
		return "OK"
	case Warning:
		return "WARNING"
	case Critical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Perfdata is a single performance data field. Warn, Crit, Min and Max are
// kept as text since the plugin convention allows ranges such as "10:20";
// an empty string leaves the component out.
type Perfdata struct {
	Label string
	Value float64
	UOM   string
	Warn  string
	Crit  string
	Min   string
	Max   string
}

// String renders 'label'=value[uom];[warn];[crit];[min];[max] followed by a
// single space.
func (p Perfdata) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "'%s'=%s%s", p.Label, strconv.FormatFloat(p.Value, 'f', -1, 64), p.UOM)
	for _, v := range []string{p.Warn, p.Crit, p.Min, p.Max} {
		b.WriteByte(';')
		b.WriteString(v)
	}
	b.WriteByte(' ')
	return b.String()
}

// Result is the outcome of one plugin run.
type Result struct {
	State    State
	Message  string
	Perfdata []Perfdata
}

// UnknownResult returns a result without perfdata in the Unknown state.
func UnknownResult(msg string) Result {
	return Result{State: Unknown, Message: msg}
}

// Write prints the trimmed message and, if present, the trimmed perfdata
// separated by a pipe.
func Write(w io.Writer, r Result) error {
	var perf strings.Builder
	for _, p := range r.Perfdata {
		perf.WriteString(p.String())
	}

	out := strings.TrimSpace(r.Message)
	if perf.Len() > 0 {
		out += "|" + strings.TrimSpace(perf.String())
	}
	_, err := fmt.Fprintln(w, out)
	return err
}

// ExitCode is the process exit code for r. With alwaysOK set it is always 0.
func ExitCode(r Result, alwaysOK bool) int {
	if alwaysOK {
		return int(OK)
	}
	switch r.State {
	case OK, Warning, Critical:
		return int(r.State)
	default:
		return int(Unknown)
	}
}

var sanitizer = strings.NewReplacer("<", "'", ">", "'")

// Sanitize makes text safe to show in the web frontends of the monitoring
// system by replacing angle brackets.
func Sanitize(s string) string {
	return sanitizer.Replace(s)
}
