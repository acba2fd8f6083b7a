// Package parser reads the NSKO text bytecode format using Participle v2.
//
// A text program is a run of 3-digit decimal byte values (000-255). Values
// may be packed back to back or separated by whitespace. A ';' starts a
// comment that runs to the end of the line.
//
//	078 083 075 079 ; header
//	001 000 000 030 ; LOAD r0, 30
//	000 000 000 000 ; HALT
package parser

import (
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Program is the top-level AST node.
type Program struct {
	Bytes []*Byte `parser:"@@*"`
}

// Byte is one 3-digit decimal value.
type Byte struct {
	Pos   lexer.Position
	Value string `parser:"@Triple"`
}

var textLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Comment", Pattern: `;[^\n]*`},
	{Name: "Triple", Pattern: `[0-9]{3}`},
})

// Parser is the text bytecode parser.
var Parser = participle.MustBuild[Program](
	participle.Lexer(textLexer),
	participle.Elide("Whitespace", "Comment"),
)

// Parse converts text bytecode into raw program bytes. name is used only in
// error positions.
func Parse(name, src string) ([]byte, error) {
	prog, err := Parser.ParseString(name, src)
	if err != nil {
		return nil, err
	}
	return prog.Encode()
}

// Encode converts the parsed values to bytes, rejecting anything above 255.
func (p *Program) Encode() ([]byte, error) {
	out := make([]byte, 0, len(p.Bytes))
	for _, b := range p.Bytes {
		v, err := strconv.Atoi(b.Value)
		if err != nil || v > 255 {
			return nil, participle.Errorf(b.Pos, "byte value %s out of range 000-255", b.Value)
		}
		out = append(out, byte(v))
	}
	return out, nil
}
