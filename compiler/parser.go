package compiler

import (
	"errors"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var patchLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `(?:#|//)[^\n]*`},
	{Name: "Number", Pattern: `[-+]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][-+]?\d+)?`},
	// "#" only continues a note spelling such as C#4, so x# starts a comment
	{Name: "Ident", Pattern: `[A-Ha-h][#b]+-?\d+|[a-zA-Z_][a-zA-Z0-9_]*(?:-\d+)?`},
	{Name: "Punct", Pattern: `[-{}\[\]:,=]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var parser = participle.MustBuild[File](
	participle.Lexer(patchLexer),
	participle.Elide("Comment", "Whitespace"),
	participle.UseLookahead(2),
)

// Parse parses patch source text. filename is only used in error positions.
func Parse(filename, src string) (*File, error) {
	file, err := parser.ParseString(filename, src)
	if err != nil {
		var perr participle.Error
		if errors.As(err, &perr) {
			return nil, &SyntaxError{Pos: perr.Position(), Msg: perr.Message()}
		}
		return nil, &SyntaxError{Msg: err.Error()}
	}
	return file, nil
}
