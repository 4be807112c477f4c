package decl

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/reoring/goshape"
)

// Shape expressions use TypeScript-like notation:
//
//	string | null
//	Promise<Value>
//	'awesome' | 42 | true
//	[a: string, b?: number, ...rest: boolean[]]
//	(url: string, ...headers: string[]) => Promise<Response>
//	string[]
//	{ readonly id: string; note?: string }

type exprOp int

const (
	opShape exprOp = iota
	opRef
	opUnion
	opPromise
	opPartial
	opTuple
	opFunc
	opObject
)

// expr is an unresolved shape expression. References to declared schemas are
// bound by the resolver.
type expr struct {
	op     exprOp
	shape  goshape.Shape // opShape
	name   string        // opRef
	args   []*expr       // opUnion members; inner of opPromise/opPartial; opFunc result
	elems  []elemExpr    // opTuple, opFunc parameters
	fields []fieldDecl   // opObject
}

type elemExpr struct {
	label    string
	optional bool
	rest     bool
	x        *expr
}

var primitives = map[string]goshape.Shape{
	"string":    goshape.PrimString,
	"number":    goshape.PrimNumber,
	"boolean":   goshape.PrimBoolean,
	"bigint":    goshape.PrimBigInt,
	"symbol":    goshape.PrimSymbol,
	"null":      goshape.PrimNull,
	"void":      goshape.PrimVoid,
	"any":       goshape.PrimAny,
	"object":    goshape.PrimObject,
	"Function":  goshape.PrimFunction,
	"error":     goshape.PrimError,
	"unknown":   goshape.Unknown{},
	"never":     goshape.Never{},
	"undefined": goshape.Absent{},
}

type tokKind int

const (
	tokEOF tokKind = iota
	tokIdent
	tokNumber
	tokString
	tokPunct
)

type token struct {
	kind tokKind
	text string
	pos  int
}

func lex(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case isIdentStart(rune(c)):
			j := i + 1
			for j < len(src) && isIdentPart(rune(src[j])) {
				j++
			}
			toks = append(toks, token{tokIdent, src[i:j], i})
			i = j
		case c >= '0' && c <= '9' || c == '-' && i+1 < len(src) && src[i+1] >= '0' && src[i+1] <= '9':
			j := i + 1
			for j < len(src) && strings.IndexByte("0123456789.eE+-_xXabcdefABCDEF", src[j]) >= 0 {
				// a sign only continues a number right after an exponent marker
				if (src[j] == '+' || src[j] == '-') && src[j-1] != 'e' && src[j-1] != 'E' {
					break
				}
				j++
			}
			toks = append(toks, token{tokNumber, src[i:j], i})
			i = j
		case c == '\'' || c == '"':
			b := &strings.Builder{}
			j := i + 1
			closed := false
			for j < len(src) {
				if src[j] == '\\' && j+1 < len(src) {
					b.WriteByte(src[j+1])
					j += 2
					continue
				}
				if src[j] == c {
					closed = true
					j++
					break
				}
				b.WriteByte(src[j])
				j++
			}
			if !closed {
				return nil, fmt.Errorf("unterminated string at offset %d", i)
			}
			toks = append(toks, token{tokString, b.String(), i})
			i = j
		case strings.HasPrefix(src[i:], "..."):
			toks = append(toks, token{tokPunct, "...", i})
			i += 3
		case strings.HasPrefix(src[i:], "=>"):
			toks = append(toks, token{tokPunct, "=>", i})
			i += 2
		case strings.IndexByte("|,()[]<>?:{};", c) >= 0:
			toks = append(toks, token{tokPunct, string(c), i})
			i++
		default:
			return nil, fmt.Errorf("unexpected character %q at offset %d", c, i)
		}
	}
	return append(toks, token{kind: tokEOF, pos: len(src)}), nil
}

func isIdentStart(r rune) bool { return r == '_' || r == '$' || unicode.IsLetter(r) }
func isIdentPart(r rune) bool  { return isIdentStart(r) || unicode.IsDigit(r) || r == '.' }

type parser struct {
	toks []token
	i    int
}

// parseExpr parses a complete shape expression.
func parseExpr(src string) (*expr, error) {
	if strings.TrimSpace(src) == "" {
		return nil, fmt.Errorf("empty shape expression")
	}
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	x, err := p.union()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, p.unexpected(t)
	}
	return x, nil
}

func (p *parser) peek() token { return p.toks[p.i] }
func (p *parser) peekAt(n int) token {
	if p.i+n < len(p.toks) {
		return p.toks[p.i+n]
	}
	return p.toks[len(p.toks)-1]
}
func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) is(text string) bool {
	t := p.peek()
	return t.kind == tokPunct && t.text == text
}

func (p *parser) accept(text string) bool {
	if p.is(text) {
		p.i++
		return true
	}
	return false
}

func (p *parser) expect(text string) error {
	if !p.accept(text) {
		return p.unexpected(p.peek())
	}
	return nil
}

func (p *parser) unexpected(t token) error {
	if t.kind == tokEOF {
		return fmt.Errorf("unexpected end of expression")
	}
	return fmt.Errorf("unexpected %q at offset %d", t.text, t.pos)
}

func (p *parser) union() (*expr, error) {
	p.accept("|")
	first, err := p.postfix()
	if err != nil {
		return nil, err
	}
	members := []*expr{first}
	for p.accept("|") {
		m, err := p.postfix()
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	if len(members) == 1 {
		return first, nil
	}
	return &expr{op: opUnion, args: members}, nil
}

func (p *parser) postfix() (*expr, error) {
	x, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.is("[") && p.peekAt(1).kind == tokPunct && p.peekAt(1).text == "]" {
		p.i += 2
		x = arrayOf(x)
	}
	return x, nil
}

func arrayOf(x *expr) *expr {
	return &expr{op: opTuple, elems: []elemExpr{{rest: true, x: x}}}
}

func (p *parser) primary() (*expr, error) {
	t := p.next()
	switch t.kind {
	case tokString:
		return &expr{op: opShape, shape: goshape.StringLit(t.text)}, nil
	case tokNumber:
		n, err := parseNumber(t.text)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q at offset %d", t.text, t.pos)
		}
		return &expr{op: opShape, shape: goshape.NumberLit(n)}, nil
	case tokIdent:
		return p.named(t)
	case tokPunct:
		switch t.text {
		case "[":
			elems, err := p.elements("]")
			if err != nil {
				return nil, err
			}
			return &expr{op: opTuple, elems: elems}, nil
		case "{":
			return p.object()
		case "(":
			if p.looksLikeParams() {
				return p.function()
			}
			x, err := p.union()
			if err != nil {
				return nil, err
			}
			if err := p.expect(")"); err != nil {
				return nil, err
			}
			return x, nil
		}
	}
	return nil, p.unexpected(t)
}

// object parses an inline object type after its opening brace. Members are
// separated by commas or semicolons.
func (p *parser) object() (*expr, error) {
	x := &expr{op: opObject}
	for !p.accept("}") {
		var f fieldDecl
		t := p.next()
		if t.kind == tokIdent && t.text == "readonly" {
			if nt := p.peek(); nt.kind != tokPunct {
				f.readonly = true
				t = p.next()
			}
		}
		switch t.kind {
		case tokIdent, tokString:
			f.key = goshape.StringKey(t.text)
		case tokNumber:
			n, err := parseNumber(t.text)
			if err != nil {
				return nil, fmt.Errorf("invalid number %q at offset %d", t.text, t.pos)
			}
			f.key = goshape.NumberKey(n)
		default:
			return nil, p.unexpected(t)
		}
		f.optional = p.accept("?")
		if err := p.expect(":"); err != nil {
			return nil, err
		}
		v, err := p.union()
		if err != nil {
			return nil, err
		}
		f.x = v
		x.fields = append(x.fields, f)
		if !p.accept(",") && !p.accept(";") && !p.is("}") {
			return nil, p.unexpected(p.peek())
		}
	}
	return x, nil
}

func (p *parser) named(t token) (*expr, error) {
	switch t.text {
	case "true":
		return &expr{op: opShape, shape: goshape.BoolLit(true)}, nil
	case "false":
		return &expr{op: opShape, shape: goshape.BoolLit(false)}, nil
	}
	if p.accept("<") {
		inner, err := p.union()
		if err != nil {
			return nil, err
		}
		if err := p.expect(">"); err != nil {
			return nil, err
		}
		switch t.text {
		case "Promise":
			return &expr{op: opPromise, args: []*expr{inner}}, nil
		case "Partial":
			return &expr{op: opPartial, args: []*expr{inner}}, nil
		case "Array":
			return arrayOf(inner), nil
		}
		return nil, fmt.Errorf("unknown generic %q at offset %d", t.text, t.pos)
	}
	if s, ok := primitives[t.text]; ok {
		return &expr{op: opShape, shape: s}, nil
	}
	return &expr{op: opRef, name: t.text}, nil
}

// looksLikeParams reports whether the tokens after an opening parenthesis
// start a parameter list rather than a grouped expression.
func (p *parser) looksLikeParams() bool {
	t0, t1, t2 := p.peek(), p.peekAt(1), p.peekAt(2)
	if t0.kind == tokPunct && (t0.text == ")" || t0.text == "...") {
		return true
	}
	if t0.kind != tokIdent || t1.kind != tokPunct {
		return false
	}
	return t1.text == ":" || t1.text == "?" && t2.kind == tokPunct && t2.text == ":"
}

func (p *parser) function() (*expr, error) {
	params, err := p.elements(")")
	if err != nil {
		return nil, err
	}
	if err := p.expect("=>"); err != nil {
		return nil, err
	}
	ret, err := p.union()
	if err != nil {
		return nil, err
	}
	return &expr{op: opFunc, elems: params, args: []*expr{ret}}, nil
}

// elements parses a comma separated element list up to and including close.
func (p *parser) elements(close string) ([]elemExpr, error) {
	var out []elemExpr
	if p.accept(close) {
		return out, nil
	}
	for {
		e, err := p.element()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
		if p.accept(close) {
			return out, nil
		}
		if err := p.expect(","); err != nil {
			return nil, err
		}
	}
}

func (p *parser) element() (elemExpr, error) {
	var e elemExpr
	e.rest = p.accept("...")
	if t := p.peek(); t.kind == tokIdent {
		t1, t2 := p.peekAt(1), p.peekAt(2)
		switch {
		case t1.kind == tokPunct && t1.text == ":":
			e.label = t.text
			p.i += 2
		case t1.kind == tokPunct && t1.text == "?" && t2.kind == tokPunct && t2.text == ":":
			e.label = t.text
			e.optional = true
			p.i += 3
		}
	}
	x, err := p.union()
	if err != nil {
		return e, err
	}
	if e.label == "" && !e.rest && p.accept("?") {
		e.optional = true
	}
	if e.rest {
		if x.op != opTuple || len(x.elems) != 1 || !x.elems[0].rest {
			return e, fmt.Errorf("rest element must be an array type")
		}
		x = x.elems[0].x
		e.optional = false
	}
	e.x = x
	return e, nil
}

func parseNumber(s string) (float64, error) {
	if strings.ContainsAny(s, "xX") {
		n, err := strconv.ParseInt(s, 0, 64)
		return float64(n), err
	}
	return strconv.ParseFloat(strings.ReplaceAll(s, "_", ""), 64)
}
