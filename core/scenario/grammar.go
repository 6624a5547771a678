package scenario

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Shorthand is the top-level structure of the scenario DSL. A full scenario
// reads like:
//
//	from 50000 1000/m 30y 7% ~15% i2.5% goal 1500000 x5000
//
// Years and return are required; every other clause falls back to the
// deployment defaults. The trailing skipDec keyword selects the
// contribution policy that skips year-end months.
type Shorthand struct {
	From      *float64      `parser:"('from' @Number)?"`
	Monthly   *Contribution `parser:"@@?"`
	Years     int           `parser:"@Number 'y'"`
	Return    float64       `parser:"@Number '%'"`
	Vol       *float64      `parser:"('~' @Number '%')?"`
	Inflation *float64      `parser:"('i' @Number '%')?"`
	Goal      *float64      `parser:"('goal' @Number)?"`
	Sims      *int          `parser:"('x' @Number)?"`
	SkipDec   bool          `parser:"@'skipDec'?"`
}

// Contribution is the monthly-contribution clause, e.g. 1000/m.
type Contribution struct {
	Amount float64 `parser:"@Number '/' 'm'"`
}

// scenarioLexer defines the lexer rules for the scenario DSL
var scenarioLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Number", Pattern: `-?\d+(?:\.\d+)?`},
	{Name: "Ident", Pattern: `[a-zA-Z]+`},
	{Name: "Punct", Pattern: `[/%~]`},
	{Name: "whitespace", Pattern: `\s+`},
})

// ShorthandParser is the exported participle parser for the scenario DSL
var ShorthandParser = participle.MustBuild[Shorthand](
	participle.Lexer(scenarioLexer),
	participle.UseLookahead(2),
)
