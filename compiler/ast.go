package compiler

import "github.com/alecthomas/participle/v2/lexer"

// The AST below is both the participle grammar of the text format and the
// target of the YAML front-end.

// File is a whole patch: definitions, aliases and output selections in
// source order.
type File struct {
	Statements []*Statement `@@*`
}

type Statement struct {
	Pos lexer.Position

	Output     *Output     `  @@`
	Alias      *Alias      `| @@`
	Definition *Definition `| @@`
}

// Output selects the output block: out <name>
type Output struct {
	Pos  lexer.Position
	Name string `"out" @Ident`
}

// Alias gives an existing block a second name: alias <name> = <existing>
type Alias struct {
	Pos    lexer.Position
	Name   string `"alias" @Ident "="`
	Target string `@Ident`
}

// Definition registers a block: <kind> <name> = <initializer>
type Definition struct {
	Pos  lexer.Position
	Kind string       `@Ident`
	Name string       `@Ident "="`
	Init *Initializer `@@`
}

// Initializer is a number, for constants, or a brace-enclosed property
// list, for every other kind.
type Initializer struct {
	Pos    lexer.Position
	Number *float64    `  @Number`
	Block  bool        `| @"{"`
	Props  []*Property `  ( @@ ( "," @@ )* ","? )? "}"`
}

type Property struct {
	Pos   lexer.Position
	Key   string `@Ident ":"`
	Value *Value `@@`
}

// Value is the right hand side of a property.
type Value struct {
	Pos    lexer.Position
	Number *float64   `  @Number`
	Anon   *Anonymous `| @@`
	Name   *string    `| @Ident`
	List   bool       `| @"["`
	Notes  []string   `  ( @( Ident | "-" ) ( ","? @( Ident | "-" ) )* )? "]"`
}

// Anonymous is an inline block owned by the property it appears in.
type Anonymous struct {
	Pos  lexer.Position
	Kind string       `@Ident`
	Init *Initializer `@@`
}

// describe names the shape of a value for type errors.
func (v *Value) describe() string {
	switch {
	case v.Number != nil:
		return "number"
	case v.Anon != nil:
		return v.Anon.Kind + " block"
	case v.Name != nil:
		return "name " + *v.Name
	case v.List:
		return "note list"
	}
	return "nothing"
}
