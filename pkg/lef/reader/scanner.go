package reader

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/alecthomas/participle/v2/lexer"
)

// scanner walks the significant tokens of one file.
type scanner struct {
	toks []lexer.Token
	i    int
}

func newScanner(filename string, r io.Reader) (*scanner, error) {
	lex, err := LEFLexer.Lex(filename, r)
	if err != nil {
		return nil, fmt.Errorf("reader: %w", err)
	}
	s := &scanner{}
	for {
		tok, err := lex.Next()
		if err != nil {
			var le *lexer.Error
			if errors.As(err, &le) {
				return nil, &ParseError{Pos: le.Pos, Msg: le.Msg}
			}
			return nil, fmt.Errorf("reader: %w", err)
		}
		if tok.Type == tokComment || tok.Type == tokSpace {
			continue
		}
		s.toks = append(s.toks, tok)
		if tok.EOF() {
			return s, nil
		}
	}
}

func (s *scanner) peek() lexer.Token { return s.toks[s.i] }

// peekAt looks n tokens ahead, stopping at EOF.
func (s *scanner) peekAt(n int) lexer.Token {
	if s.i+n >= len(s.toks) {
		return s.toks[len(s.toks)-1]
	}
	return s.toks[s.i+n]
}

func (s *scanner) next() lexer.Token {
	t := s.toks[s.i]
	if !t.EOF() {
		s.i++
	}
	return t
}

func (s *scanner) pos() lexer.Position { return s.peek().Pos }

func (s *scanner) eof() bool { return s.peek().EOF() }

// peekKeyword returns the upper-cased next word, or "" when the next token
// is not a word.
func (s *scanner) peekKeyword() string {
	t := s.peek()
	if t.Type != tokWord {
		return ""
	}
	return strings.ToUpper(t.Value)
}

// accept consumes the next token if it is the keyword kw.
func (s *scanner) accept(kw string) bool {
	if s.peekKeyword() == kw {
		s.i++
		return true
	}
	return false
}

func (s *scanner) expect(kw string) error {
	t := s.peek()
	if !s.accept(kw) {
		return errorAt(t.Pos, "expected %s, found %s", kw, describe(t))
	}
	return nil
}

// end consumes the statement terminator.
func (s *scanner) end() error {
	t := s.peek()
	if t.Type != tokSemicolon {
		return errorAt(t.Pos, "expected ;, found %s", describe(t))
	}
	s.i++
	return nil
}

// punct consumes the parenthesis p if it comes next.
func (s *scanner) punct(p string) bool {
	if t := s.peek(); t.Type == tokParen && t.Value == p {
		s.i++
		return true
	}
	return false
}

func (s *scanner) expectPunct(p string) error {
	t := s.peek()
	if !s.punct(p) {
		return errorAt(t.Pos, "expected %s, found %s", p, describe(t))
	}
	return nil
}

// pairs reads ( ( a b ) ( a b ) ... ).
func (s *scanner) pairs() ([][2]float64, error) {
	if err := s.expectPunct("("); err != nil {
		return nil, err
	}
	var out [][2]float64
	for !s.punct(")") {
		if err := s.expectPunct("("); err != nil {
			return nil, err
		}
		a, b, err := s.point()
		if err != nil {
			return nil, err
		}
		if err := s.expectPunct(")"); err != nil {
			return nil, err
		}
		out = append(out, [2]float64{a, b})
	}
	return out, nil
}

func (s *scanner) atEnd() bool { return s.peek().Type == tokSemicolon }

// word returns the next word or quoted string, without quotes.
func (s *scanner) word() (string, error) {
	t := s.peek()
	switch t.Type {
	case tokWord:
		s.i++
		return t.Value, nil
	case tokString:
		s.i++
		return unquote(t.Value), nil
	}
	return "", errorAt(t.Pos, "expected a name, found %s", describe(t))
}

func (s *scanner) number() (float64, error) {
	t := s.peek()
	if t.Type != tokWord {
		return 0, errorAt(t.Pos, "expected a number, found %s", describe(t))
	}
	v, err := parseFloat(t.Value)
	if err != nil {
		return 0, errorAt(t.Pos, "expected a number, found %q", t.Value)
	}
	s.i++
	return v, nil
}

func (s *scanner) integer() (int, error) {
	pos := s.pos()
	f, err := s.number()
	if err != nil {
		return 0, err
	}
	n, err := safecast.Convert[int](f)
	if err != nil {
		return 0, errorAt(pos, "expected an integer, found %g", f)
	}
	return n, nil
}

// isNumber reports whether the next token parses as a number.
func (s *scanner) isNumber() bool {
	t := s.peek()
	if t.Type != tokWord {
		return false
	}
	_, err := parseFloat(t.Value)
	return err == nil
}

func parseFloat(v string) (float64, error) { return strconv.ParseFloat(v, 64) }

// numbers reads numbers up to the first non-number token.
func (s *scanner) numbers() []float64 {
	var out []float64
	for s.isNumber() {
		v, _ := s.number()
		out = append(out, v)
	}
	return out
}

func (s *scanner) point() (x, y float64, err error) {
	if x, err = s.number(); err != nil {
		return
	}
	y, err = s.number()
	return
}

// skipStatement drops tokens through the next semicolon.
func (s *scanner) skipStatement() {
	for !s.eof() {
		if s.next().Type == tokSemicolon {
			return
		}
	}
}

// skipBlock drops tokens through END name. name is a block keyword, so it
// matches in any case, the way endName closes blocks.
func (s *scanner) skipBlock(name string) {
	for !s.eof() {
		t := s.next()
		if t.Type == tokWord && strings.EqualFold(t.Value, "END") {
			if n := s.peek(); n.Type == tokWord && strings.EqualFold(n.Value, name) {
				s.i++
				return
			}
		}
	}
}

// rest returns the raw text of the tokens up to the semicolon, which is
// consumed.
func (s *scanner) rest() string {
	var parts []string
	for !s.eof() && !s.atEnd() {
		parts = append(parts, s.next().Value)
	}
	if s.atEnd() {
		s.i++
	}
	return strings.Join(parts, " ")
}

func unquote(v string) string {
	if u, err := strconv.Unquote(v); err == nil {
		return u
	}
	return strings.Trim(v, `"`)
}

func describe(t lexer.Token) string {
	switch {
	case t.EOF():
		return "end of file"
	case t.Type == tokSemicolon:
		return ";"
	}
	return fmt.Sprintf("%q", t.Value)
}
