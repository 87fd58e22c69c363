package manifest

import (
	"fmt"
	"strings"

	"expcollapse/internal/cond"
	"expcollapse/internal/minify"
	"expcollapse/internal/registry"
)

// ParseError reports a structurally invalid annotation file, or a clause
// condition that fails to parse. Either is fatal for the whole file: no
// output is produced for it.
type ParseError struct {
	Path string
	Line int // 1-based
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Block is one key's conditional value block inside a section: the ordered
// "if condition: outcome" lines plus an optional bare default line.
type Block struct {
	Section string // "/"-joined section path the key lives under
	Key     string
	KeyLine int    // index into File.Lines of the "key:" line
	Start   int    // first line of the value block
	End     int    // one past the last line of the value block
	Indent  string // indentation shared by the value lines
	List    minify.ClauseList
}

// File is a parsed annotation file: the raw lines plus every located
// conditional block. Lines outside block ranges are reproduced verbatim
// when the file is reassembled.
type File struct {
	Path          string
	Lines         []string
	Blocks        []*Block
	trailingBlank bool // original content ended with a newline
}

type sectionFrame struct {
	indent int
	name   string
}

// Parse reads a whole annotation file into its line-oriented structure.
// Section headers are brackets nested by indentation; keys hold either an
// inline value or an indented block of conditional clauses. Any line that
// fits none of those shapes, and any condition that fails to parse or
// references an unknown dimension, is a fatal ParseError.
func Parse(path, content string, reg *registry.Registry) (*File, error) {
	f := &File{
		Path:          path,
		Lines:         strings.Split(content, "\n"),
		trailingBlank: strings.HasSuffix(content, "\n"),
	}
	if f.trailingBlank {
		f.Lines = f.Lines[:len(f.Lines)-1]
	}

	var sections []sectionFrame
	var block *Block // block under construction, nil outside one
	var blockDone bool

	for i, raw := range f.Lines {
		line := strings.TrimRight(raw, "\r")
		trimmed := strings.TrimSpace(line)
		indent := indentWidth(line)

		if block != nil {
			ok, err := f.continueBlock(block, &blockDone, i, line, trimmed, indent, reg)
			if err != nil {
				return nil, err
			}
			if ok {
				continue
			}
			f.finishBlock(block)
			block, blockDone = nil, false
		}

		switch {
		case trimmed == "" || strings.HasPrefix(trimmed, "#"):
			// blank or comment, preserved verbatim

		case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
			name := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
			if name == "" {
				return nil, &ParseError{Path: path, Line: i + 1, Msg: "empty section header"}
			}
			for len(sections) > 0 && sections[len(sections)-1].indent >= indent {
				sections = sections[:len(sections)-1]
			}
			sections = append(sections, sectionFrame{indent: indent, name: name})

		default:
			key, rest, ok := splitKey(trimmed)
			if !ok {
				return nil, &ParseError{Path: path, Line: i + 1, Msg: fmt.Sprintf("unrecognized line %q", trimmed)}
			}
			if rest != "" {
				// single literal outcome, nothing to minimize
				continue
			}
			block = &Block{
				Section: sectionPath(sections),
				Key:     key,
				KeyLine: i,
				Start:   i + 1,
				End:     i + 1,
			}
		}
	}
	if block != nil {
		f.finishBlock(block)
	}
	return f, nil
}

// continueBlock tries to extend the current block with one more line.
// It returns false when the line does not belong to the block.
func (f *File) continueBlock(b *Block, done *bool, i int, line, trimmed string, indent int, reg *registry.Registry) (bool, error) {
	if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "[") {
		return false, nil
	}
	keyIndent := indentWidth(strings.TrimRight(f.Lines[b.KeyLine], "\r"))
	if indent <= keyIndent {
		return false, nil
	}
	prefix := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
	if b.Start == b.End {
		b.Indent = prefix
	} else if prefix != b.Indent {
		// all value lines of one block share a single indentation level
		return false, &ParseError{Path: f.Path, Line: i + 1, Msg: "inconsistent indentation inside value block"}
	}

	if strings.HasPrefix(trimmed, "if ") || trimmed == "if" {
		if *done {
			return false, &ParseError{Path: f.Path, Line: i + 1, Msg: "conditional clause after default outcome"}
		}
		condText, outcome, ok := splitClause(trimmed)
		if !ok {
			return false, &ParseError{Path: f.Path, Line: i + 1, Msg: "malformed conditional clause, expected \"if condition: outcome\""}
		}
		expr, err := cond.Parse(condText, reg)
		if err != nil {
			return false, &ParseError{
				Path: f.Path,
				Line: i + 1,
				Msg:  fmt.Sprintf("invalid condition: %v", err),
				Err:  err,
			}
		}
		b.List.Clauses = append(b.List.Clauses, minify.Clause{
			Cond:    expr,
			Text:    condText,
			Outcome: outcome,
		})
		b.End = i + 1
		return true, nil
	}

	// bare default outcome line
	if *done {
		return false, &ParseError{Path: f.Path, Line: i + 1, Msg: "multiple default outcome lines"}
	}
	b.List.Default = trimmed
	b.List.HasDefault = true
	*done = true
	b.End = i + 1
	return true, nil
}

func (f *File) finishBlock(b *Block) {
	if b.End > b.Start {
		f.Blocks = append(f.Blocks, b)
	}
}

// Content reassembles the file from its lines.
func (f *File) Content() string {
	out := strings.Join(f.Lines, "\n")
	if f.trailingBlank {
		out += "\n"
	}
	return out
}

// splitKey splits "key: rest" lines. The key must look like an identifier
// so that stray prose is rejected rather than silently carried along.
func splitKey(trimmed string) (key, rest string, ok bool) {
	idx := strings.IndexByte(trimmed, ':')
	if idx <= 0 {
		return "", "", false
	}
	key = strings.TrimSpace(trimmed[:idx])
	for _, r := range key {
		if !(r == '_' || r == '-' || r == '.' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return "", "", false
		}
	}
	return key, strings.TrimSpace(trimmed[idx+1:]), true
}

// splitClause splits "if condition: outcome" at the first colon. The
// condition grammar has no colon, so the first one always separates.
func splitClause(trimmed string) (condText, outcome string, ok bool) {
	body := strings.TrimPrefix(trimmed, "if")
	idx := strings.IndexByte(body, ':')
	if idx < 0 {
		return "", "", false
	}
	condText = strings.TrimSpace(body[:idx])
	outcome = strings.TrimSpace(body[idx+1:])
	if condText == "" || outcome == "" {
		return "", "", false
	}
	return condText, outcome, true
}

func sectionPath(sections []sectionFrame) string {
	names := make([]string, len(sections))
	for i, s := range sections {
		names[i] = s.name
	}
	return strings.Join(names, "/")
}

func indentWidth(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}
