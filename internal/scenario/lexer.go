// Package scenario implements the placement mini-language used by level
// files and tests to put entities onto a parsed field, e.g.
//
//	monster at 3, 4 hp: 12 and item sword at 1, 2 atk: 2 def: 1 and pack at 0, 4
package scenario

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer maps the raw string tokens out for our AST definitions. Basic
// whitespace elision is enough for this grammar.
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Keyword", Pattern: `\b(?:monster|item|pack|at|and|hp|atk|def)\b`},
	{Name: "Ident", Pattern: `[a-zA-Z_]\w*`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[:,]`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})

// Build creates the parser based on the struct tags in ast.go.
func Build() *participle.Parser[Script] {
	return participle.MustBuild[Script](
		participle.Lexer(Lexer),
		participle.Elide("Whitespace"),
	)
}
