package ui

import (
	"errors"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// DefaultCSS styles the inspector panel. Embedded panels dock to the right edge
// at full height; floating panels sit near the top-left corner.
const DefaultCSS = `
.inspector { background: #181818e0; border: #505050; width: 420; height: 360; left: 16; top: 16; padding: 10; }
.inspector-embed { background: #181818; border: #505050; width: 420; height: 100%; left: 100%; top: 0; padding: 10; }
.inspector-title { color: #ffffff; }
.inspector-embed-title { color: #ffffff; }
.inspector-stat { color: #00e400; }
.inspector-node { color: #f5f5f5; }
.inspector-detail { color: #a0a0a0; }
.inspector-log { color: #c8c864; }
`

// MustParseCSS is like ParseCSS but panics on error.
func MustParseCSS(content string) *Stylesheet {
	sheet, err := ParseCSS(content)
	if err != nil {
		panic(err)
	}
	return sheet
}

// ParseCSS parses a primitive stylesheet: selectors .class or #id and blocks of "key: value;".
// Rules with any other selector, and at-rules, are skipped. Later rules override earlier for the same selector.
func ParseCSS(content string) (*Stylesheet, error) {
	sheet := &Stylesheet{}
	p := css.NewParser(parse.NewInputString(content), false)

	var cur *Rule
	atDepth := 0
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if errors.Is(p.Err(), io.EOF) {
				return sheet, nil
			}
			return sheet, p.Err()
		case css.BeginAtRuleGrammar:
			atDepth++
		case css.EndAtRuleGrammar:
			atDepth--
		case css.BeginRulesetGrammar:
			sel := joinTokens(p.Values())
			if atDepth > 0 || !simpleSelector(sel) {
				cur = nil
				continue
			}
			cur = &Rule{Selector: sel, Props: make(map[string]string)}
		case css.DeclarationGrammar:
			if cur != nil {
				cur.Props[strings.ToLower(string(data))] = joinTokens(p.Values())
			}
		case css.EndRulesetGrammar:
			if cur != nil {
				sheet.Rules = append(sheet.Rules, *cur)
				cur = nil
			}
		}
	}
}

func joinTokens(toks []css.Token) string {
	var b strings.Builder
	for _, t := range toks {
		b.Write(t.Data)
	}
	return strings.TrimSpace(b.String())
}

func simpleSelector(sel string) bool {
	if len(sel) < 2 || (sel[0] != '.' && sel[0] != '#') {
		return false
	}
	return !strings.ContainsAny(sel[1:], " .#>+~,:[")
}
