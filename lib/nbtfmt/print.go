// Copyright 2026 The Lodestone Authors
// SPDX-License-Identifier: Apache-2.0

package nbtfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lodestone-foundation/nbt/lib/nbt"
)

// Options control how a value tree is rendered.
type Options struct {
	// Color styles kind names dim and entry names bold. Off by
	// default so Sprint output is stable for tests and pipes.
	Color bool

	// Indent is the per-level indentation. Empty means two spaces.
	Indent string
}

// Fprint renders value to w with default options.
func Fprint(w io.Writer, value nbt.Value) error {
	return Options{}.Fprint(w, value)
}

// Sprint renders value to a string with default options.
func Sprint(value nbt.Value) string {
	var sb strings.Builder
	// strings.Builder writes cannot fail.
	Options{}.Fprint(&sb, value)
	return sb.String()
}

// Fprint renders value to w.
func (o Options) Fprint(w io.Writer, value nbt.Value) error {
	p := &printer{
		w:      w,
		indent: o.Indent,
		kind:   lipgloss.NewStyle(),
		name:   lipgloss.NewStyle(),
	}
	if p.indent == "" {
		p.indent = "  "
	}
	if o.Color {
		p.kind = p.kind.Faint(true)
		p.name = p.name.Bold(true)
	}
	p.value("", value, 0)
	return p.err
}

type printer struct {
	w      io.Writer
	indent string
	kind   lipgloss.Style
	name   lipgloss.Style
	err    error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// line writes one entry line: indentation, the optional styled name,
// and the rest of the line.
func (p *printer) line(name string, depth int, rest string) {
	prefix := strings.Repeat(p.indent, depth)
	if name != "" {
		p.printf("%s%s: %s\n", prefix, p.name.Render(name), rest)
	} else {
		p.printf("%s%s\n", prefix, rest)
	}
}

func (p *printer) value(name string, value nbt.Value, depth int) {
	switch v := value.(type) {
	case nbt.Compound:
		p.line(name, depth, fmt.Sprintf("%s (%s)",
			p.kind.Render("Compound"), count(len(v), "entry", "entries")))
		for _, entry := range v {
			p.value(entry.Name, entry.Value, depth+1)
		}
	case nbt.List:
		if len(v) == 0 {
			p.line(name, depth, p.kind.Render("List")+" (empty)")
			return
		}
		p.line(name, depth, fmt.Sprintf("%s of %s (%s)",
			p.kind.Render("List"), p.kind.Render(v[0].Kind().String()),
			count(len(v), "element", "elements")))
		for _, element := range v {
			p.value("", element, depth+1)
		}
	case nbt.ByteArray:
		p.array(name, depth, "ByteArray", len(v), func(i int) string {
			return fmt.Sprintf("%d", v[i])
		})
	case nbt.IntArray:
		p.array(name, depth, "IntArray", len(v), func(i int) string {
			return fmt.Sprintf("%d", v[i])
		})
	case nbt.LongArray:
		p.array(name, depth, "LongArray", len(v), func(i int) string {
			return fmt.Sprintf("%d", v[i])
		})
	case nbt.String:
		p.line(name, depth, fmt.Sprintf("%s %q", p.kind.Render("String"), string(v)))
	default:
		// Remaining kinds are numeric scalars; %v renders all of
		// them correctly.
		p.line(name, depth, fmt.Sprintf("%s %v", p.kind.Render(value.Kind().String()), value))
	}
}

func (p *printer) array(name string, depth int, kindName string, n int, element func(int) string) {
	elements := make([]string, n)
	for i := range elements {
		elements[i] = element(i)
	}
	p.line(name, depth, fmt.Sprintf("%s [%s]",
		p.kind.Render(kindName), strings.Join(elements, ", ")))
}

func count(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
