package core

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// Level classifies a Diagnostic's severity.
type Level uint8

const (
	Debug Level = iota
	Info
	Warning
	Error
)

// String renders the level the way both the human and JSON formatters
// expect it ("error", "warning", ...).
func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warning:
		return "warning"
	default:
		return "error"
	}
}

// Note is a secondary location/message attached to a Diagnostic, e.g. the
// location of a previous declaration in a duplicate-symbol error, or one
// entry per rejected overload candidate.
type Note struct {
	Loc     Loc
	Message string
}

// Diagnostic is a single structured compiler message. Diagnostics are
// values, never Go errors used for control flow: a failed name resolution
// both emits a Diagnostic *and* returns a sentinel so the caller can decide
// whether to keep going.
type Diagnostic struct {
	Level   Level
	Loc     Loc
	Message string
	Notes   []Note
}

func (d Diagnostic) String() string {
	s := fmt.Sprintf("%s: %s: %s", d.Loc, d.Level, d.Message)
	for _, n := range d.Notes {
		s += fmt.Sprintf("\n\tnote: %s: %s", n.Loc, n.Message)
	}
	return s
}

// Collector accumulates diagnostics in declaration order. Ordering is
// deterministic within a single compile because the pipeline is
// single-threaded (spec.md §5) and every phase appends in the order it
// visits declarations.
type Collector struct {
	diags []Diagnostic
}

// Emit appends a diagnostic, returning it for convenient chaining at call
// sites that also need to build a sentinel error value.
func (c *Collector) Emit(level Level, loc Loc, message string, notes ...Note) Diagnostic {
	d := Diagnostic{Level: level, Loc: loc, Message: message, Notes: notes}
	c.diags = append(c.diags, d)
	return d
}

// Errorf emits an Error-level diagnostic using fmt.Sprintf formatting.
func (c *Collector) Errorf(loc Loc, format string, args ...any) Diagnostic {
	return c.Emit(Error, loc, fmt.Sprintf(format, args...))
}

// Warningf emits a Warning-level diagnostic.
func (c *Collector) Warningf(loc Loc, format string, args ...any) Diagnostic {
	return c.Emit(Warning, loc, fmt.Sprintf(format, args...))
}

// All returns every diagnostic collected so far, in emission order.
func (c *Collector) All() []Diagnostic { return c.diags }

// HasErrors reports whether any diagnostic reached Error level; per
// spec.md §6.2 this is what decides whether codegen may proceed.
func (c *Collector) HasErrors() bool {
	for _, d := range c.diags {
		if d.Level == Error {
			return true
		}
	}
	return false
}

// jsonDiagnostic mirrors Diagnostic with exported, stable field names for
// the --diagnostics-json CLI mode.
type jsonDiagnostic struct {
	Level   string        `json:"level"`
	Loc     string        `json:"loc"`
	Message string        `json:"message"`
	Notes   []jsonNote    `json:"notes,omitempty"`
}

type jsonNote struct {
	Loc     string `json:"loc"`
	Message string `json:"message"`
}

// JSON renders every collected diagnostic as an indented JSON array,
// matching the teacher's json.MarshalIndent convention for structured
// output (see DESIGN.md).
func (c *Collector) JSON() ([]byte, error) {
	out := make([]jsonDiagnostic, 0, len(c.diags))
	for _, d := range c.diags {
		jd := jsonDiagnostic{Level: d.Level.String(), Loc: d.Loc.String(), Message: d.Message}
		for _, n := range d.Notes {
			jd.Notes = append(jd.Notes, jsonNote{Loc: n.Loc.String(), Message: n.Message})
		}
		out = append(out, jd)
	}
	return json.MarshalIndent(out, "", "  ")
}

// Human writes every collected diagnostic in a plain-text form, one per
// line plus indented notes, to w.
func (c *Collector) Human(w io.Writer) error {
	for _, d := range c.diags {
		if _, err := fmt.Fprintln(w, d.String()); err != nil {
			return err
		}
	}
	return nil
}

// SortStable orders diagnostics by file then start byte, keeping emission
// order for ties. Useful for --emit modes that want file-order output
// instead of analysis-order output; the unsorted All() remains the
// canonical, deterministic form invariant 1 (spec.md §8) is checked
// against.
func (c *Collector) SortStable() {
	sort.SliceStable(c.diags, func(i, j int) bool {
		a, b := c.diags[i].Loc, c.diags[j].Loc
		if a.File != b.File {
			return a.File < b.File
		}
		return a.StartByte < b.StartByte
	})
}
