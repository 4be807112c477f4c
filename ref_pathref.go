package goshape

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/reoring/goshape/i18n"
)

// PathRef builds JSON Pointer paths in a chain-safe way and creates Issues.
type PathRef interface {
	Field(name string) PathRef
	Key(k Key) PathRef
	Index(i int) PathRef
	Pointer() string
	Issue(code, hint string, kv ...any) Issue
}

// Root returns the empty path "/".
func Root() PathRef { return &pathRef{parts: nil} }

// PathAt parses a JSON Pointer into a PathRef.
func PathAt(path string) PathRef {
	if path == "" || path == "/" {
		return Root()
	}
	// naive split on '/', ignoring first empty due to leading '/'
	parts := []string{}
	for _, p := range strings.Split(path, "/") {
		if p == "" {
			continue
		}
		parts = append(parts, p)
	}
	return &pathRef{parts: parts}
}

type pathRef struct {
	parts []string
}

func (p *pathRef) Field(name string) PathRef {
	if name == "" {
		return p
	}
	// escape '~' -> '~0', '/' -> '~1' per RFC6901
	esc := strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
	return &pathRef{parts: append(append([]string{}, p.parts...), esc)}
}

func (p *pathRef) Key(k Key) PathRef { return p.Field(k.Text()) }

func (p *pathRef) Index(i int) PathRef {
	return &pathRef{parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

func (p *pathRef) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

// Issue creates an Issue at this path. kv are alternating parameter names and
// values; they are stored in Params and passed to the translator.
func (p *pathRef) Issue(code, hint string, kv ...any) Issue {
	m := map[string]any{}
	data := map[string]string{}
	for i := 0; i+1 < len(kv); i += 2 {
		k := fmt.Sprint(kv[i])
		m[k] = kv[i+1]
		data[k] = fmt.Sprint(kv[i+1])
	}
	return Issue{Path: p.Pointer(), Code: code, Message: i18n.T(code, data), Hint: hint, Params: m}
}
