package goshape

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"
)

//go:generate go tool stringer -type=KeyKind -trimprefix=Key -output=keykind_string.go

// KeyKind tells which identifier space a Key belongs to.
type KeyKind int

const (
	KeyString KeyKind = iota
	KeyNumber
	KeySymbol
)

// Key names a field. It is a string, a number, or an opaque symbol.
// Keys are comparable and can be used as map keys.
type Key struct {
	kind KeyKind
	str  string
	num  float64
	sym  *symbol
}

type symbol struct {
	id   uint64
	desc string
}

var _symbolSeq atomic.Uint64

// StringKey returns a string key.
func StringKey(s string) Key { return Key{kind: KeyString, str: s} }

// NumberKey returns a numeric key. NaN is normalized to a single key and -0 to 0.
func NumberKey(n float64) Key {
	if math.IsNaN(n) {
		return Key{kind: KeyNumber, str: "NaN"}
	}
	if n == 0 {
		n = 0
	}
	return Key{kind: KeyNumber, num: n}
}

// Symbol returns a fresh symbolic key. Two calls with the same description
// yield distinct keys.
func Symbol(desc string) Key {
	return Key{kind: KeySymbol, sym: &symbol{id: _symbolSeq.Add(1), desc: desc}}
}

// Keys converts names into string keys.
func Keys(names ...string) []Key {
	out := make([]Key, len(names))
	for i, n := range names {
		out[i] = StringKey(n)
	}
	return out
}

func (k Key) Kind() KeyKind { return k.kind }

// Text returns the bare text of the key: the string itself, the formatted
// number, or the symbol description.
func (k Key) Text() string {
	switch k.kind {
	case KeyNumber:
		if k.str != "" {
			return k.str
		}
		return strconv.FormatFloat(k.num, 'f', -1, 64)
	case KeySymbol:
		if k.sym == nil {
			return ""
		}
		return k.sym.desc
	default:
		return k.str
	}
}

// Number returns the numeric value for KeyNumber keys.
func (k Key) Number() (float64, bool) {
	if k.kind != KeyNumber {
		return 0, false
	}
	if k.str != "" {
		return math.NaN(), true
	}
	return k.num, true
}

var _identRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// String renders the key as it would appear in a property position.
func (k Key) String() string {
	switch k.kind {
	case KeyNumber:
		return k.Text()
	case KeySymbol:
		return "[Symbol(" + k.Text() + ")]"
	default:
		if _identRe.MatchString(k.str) {
			return k.str
		}
		return "'" + strings.ReplaceAll(k.str, "'", `\'`) + "'"
	}
}

// less orders keys by kind, then text, then symbol creation order.
func (k Key) less(o Key) bool {
	if k.kind != o.kind {
		return k.kind < o.kind
	}
	switch k.kind {
	case KeyNumber:
		kn, _ := k.Number()
		on, _ := o.Number()
		if math.IsNaN(kn) || math.IsNaN(on) {
			return !math.IsNaN(kn) && math.IsNaN(on)
		}
		return kn < on
	case KeySymbol:
		if k.Text() != o.Text() {
			return k.Text() < o.Text()
		}
		return k.symbolID() < o.symbolID()
	default:
		return k.str < o.str
	}
}

func (k Key) symbolID() uint64 {
	if k.sym == nil {
		return 0
	}
	return k.sym.id
}
