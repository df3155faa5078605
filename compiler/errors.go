package compiler

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

// SyntaxError reports source text that does not match the grammar.
type SyntaxError struct {
	Pos lexer.Position
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%v: syntax error: %s", e.Pos, e.Msg)
}

// TypeError reports a value of the wrong shape, e.g. a number where a block
// initializer is needed.
type TypeError struct {
	Pos      lexer.Position
	Expected string
	Found    string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%v: expected %s, found %s", e.Pos, e.Expected, e.Found)
}

// UnknownBlockError reports a reference to a name that is not defined, or
// an unknown block type.
type UnknownBlockError struct {
	Pos  lexer.Position
	Name string
}

func (e *UnknownBlockError) Error() string {
	return fmt.Sprintf("%v: unknown block %q", e.Pos, e.Name)
}

type UnknownPropertyError struct {
	Pos      lexer.Position
	Property string
	Block    string // kind of the block the property was given to
}

func (e *UnknownPropertyError) Error() string {
	return fmt.Sprintf("%v: unknown property %q for %s", e.Pos, e.Property, e.Block)
}

type UnknownOutputError struct {
	Pos  lexer.Position
	Name string
}

func (e *UnknownOutputError) Error() string {
	return fmt.Sprintf("%v: output %q is not defined", e.Pos, e.Name)
}

// IOError reports a patch file that could not be read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("could not read %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
