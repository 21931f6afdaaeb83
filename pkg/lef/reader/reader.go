// Package reader turns LEF text into a lef.Library. It tokenizes with a
// participle lexer and drives the builder API of package lef one statement
// at a time, the way a LEF callback parser fills its records.
package reader

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/OpenTraceLab/OpenTraceLEF/pkg/lef"
)

// Parser reads LEF libraries. A Parser holds only configuration and may be
// shared between goroutines.
type Parser struct {
	cfg *Config
}

// NewParser creates a parser. A nil cfg means DefaultConfig.
func NewParser(cfg *Config) (*Parser, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	c := *cfg
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &Parser{cfg: &c}, nil
}

// Config returns the validated configuration.
func (p *Parser) Config() *Config { return p.cfg }

// Parse reads a library from r.
func (p *Parser) Parse(r io.Reader) (*lef.Library, error) {
	return p.parse(lexer.NameOfReader(r), r)
}

// ParseString reads a library from a string.
func (p *Parser) ParseString(input string) (*lef.Library, error) {
	return p.parse("", strings.NewReader(input))
}

// ParseFile reads a library from a file path.
func (p *Parser) ParseFile(filename string) (*lef.Library, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("reader: %w", err)
	}
	defer file.Close()

	return p.parse(filename, file)
}

func (p *Parser) parse(filename string, r io.Reader) (*lef.Library, error) {
	s, err := newScanner(filename, r)
	if err != nil {
		return nil, err
	}
	ctx := lef.NewContext(p.cfg.contextConfig())
	st := &state{cfg: p.cfg, s: s, ctx: ctx, lib: ctx.Library()}
	if err := st.library(); err != nil {
		return nil, err
	}
	return st.lib, nil
}

// state is the per-file parse state.
type state struct {
	cfg *Config
	s   *scanner
	ctx *lef.Context
	lib *lef.Library
}

func (st *state) warnf(pos lexer.Position, format string, args ...any) {
	st.lib.Warnf("%s: %s", pos, fmt.Sprintf(format, args...))
}

// unknown handles an unsupported statement: skipped with a warning, or an
// error in strict mode.
func (st *state) unknown(where string) error {
	t := st.s.peek()
	if st.cfg.Strict {
		return &ParseError{Pos: t.Pos, Msg: fmt.Sprintf("%s in %s", describe(t), where), Err: ErrUnknownStatement}
	}
	st.warnf(t.Pos, "skipping unknown statement %s in %s", describe(t), where)
	st.s.skipStatement()
	return nil
}

// endName consumes END name.
func (st *state) endName(name string) error {
	if err := st.s.expect("END"); err != nil {
		return err
	}
	pos := st.s.pos()
	got, err := st.s.word()
	if err != nil {
		return err
	}
	if got != name && !strings.EqualFold(got, name) {
		return errorAt(pos, "END %s does not close %s", got, name)
	}
	return nil
}

// onOff reads ON or OFF.
func (st *state) onOff() (bool, error) {
	pos := st.s.pos()
	switch st.s.peekKeyword() {
	case "ON":
		st.s.next()
		return true, nil
	case "OFF":
		st.s.next()
		return false, nil
	}
	return false, errorAt(pos, "expected ON or OFF, found %s", describe(st.s.peek()))
}

// check wraps a builder error with the current position.
func (st *state) check(pos lexer.Position, err error) error {
	if err == nil {
		return nil
	}
	return wrapAt(pos, err, "")
}
