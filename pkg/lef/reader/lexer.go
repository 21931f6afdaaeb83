package reader

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// LEFLexer defines the lexical structure of LEF files. LEF tokens are
// separated by whitespace; only the statement terminator, parentheses
// and quoted strings need their own rules.
var LEFLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Comments run from # to end of line
	{Name: "Comment", Pattern: `#[^\n]*`},

	// Whitespace
	{Name: "Whitespace", Pattern: `[\s\t\n\r]+`},

	// Quoted strings with escape sequences
	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},

	// Statement terminator
	{Name: "Semicolon", Pattern: `;`},

	// PWL tables and current density rows
	{Name: "Paren", Pattern: `[()]`},

	// Everything else: keywords, names and numbers
	{Name: "Word", Pattern: `[^\s;"()]+`},
})

var (
	tokWord      = LEFLexer.Symbols()["Word"]
	tokString    = LEFLexer.Symbols()["String"]
	tokSemicolon = LEFLexer.Symbols()["Semicolon"]
	tokParen     = LEFLexer.Symbols()["Paren"]
	tokComment   = LEFLexer.Symbols()["Comment"]
	tokSpace     = LEFLexer.Symbols()["Whitespace"]
)
