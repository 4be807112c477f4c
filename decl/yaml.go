package decl

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/reoring/goshape"
)

type pair struct {
	key *yaml.Node
	val *yaml.Node
}

// deref follows aliases and unwraps document nodes.
func deref(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch n.Kind {
		case yaml.AliasNode:
			n = n.Alias
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}
			n = n.Content[0]
		default:
			return n
		}
	}
	return nil
}

// mapping returns the key/value pairs of a mapping node. Duplicate keys are
// reported with the position of the first occurrence and skipped.
func (l *loader) mapping(n *yaml.Node, p goshape.PathRef) ([]pair, bool) {
	n = deref(n)
	if n == nil || n.Kind != yaml.MappingNode {
		l.issue(p, goshape.CodeParseError, "expected a mapping"+at(n))
		return nil, false
	}
	out := make([]pair, 0, len(n.Content)/2)
	first := make(map[string][2]int, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := deref(n.Content[i]), n.Content[i+1]
		if k == nil || k.Kind != yaml.ScalarNode {
			l.issue(p, goshape.CodeParseError, "mapping keys must be scalars"+at(n.Content[i]))
			continue
		}
		if pos, dup := first[k.Value]; dup {
			l.issue(p.Field(k.Value), goshape.CodeDuplicateKey,
				fmt.Sprintf("line %d:%d, first at %d:%d", k.Line, k.Column, pos[0], pos[1]), "key", k.Value)
			continue
		}
		first[k.Value] = [2]int{k.Line, k.Column}
		out = append(out, pair{key: k, val: v})
	}
	return out, true
}

// sequence returns the items of a sequence node.
func (l *loader) sequence(n *yaml.Node, p goshape.PathRef) ([]*yaml.Node, bool) {
	n = deref(n)
	if n == nil || n.Kind != yaml.SequenceNode {
		l.issue(p, goshape.CodeParseError, "expected a sequence"+at(n))
		return nil, false
	}
	return n.Content, true
}

// scalarKey converts a scalar node to a key: YAML integers and floats become
// number keys, everything else a string key.
func scalarKey(n *yaml.Node) (goshape.Key, bool) {
	n = deref(n)
	if n == nil || n.Kind != yaml.ScalarNode {
		return goshape.Key{}, false
	}
	switch n.ShortTag() {
	case "!!int":
		if i, err := strconv.ParseInt(strings.ReplaceAll(n.Value, "_", ""), 0, 64); err == nil {
			return goshape.NumberKey(float64(i)), true
		}
	case "!!float":
		if f, err := strconv.ParseFloat(n.Value, 64); err == nil {
			return goshape.NumberKey(f), true
		}
	}
	return goshape.StringKey(n.Value), true
}

// fieldKey parses a field declaration key: "readonly name?" declares a
// readonly optional field named name. Quoted keys are taken literally.
func fieldKey(n *yaml.Node) (k goshape.Key, optional, readonly bool) {
	if n.ShortTag() != "!!str" || n.Style&(yaml.SingleQuotedStyle|yaml.DoubleQuotedStyle) != 0 {
		k, _ = scalarKey(n)
		return k, false, false
	}
	name := n.Value
	if rest, ok := strings.CutPrefix(name, "readonly "); ok {
		readonly = true
		name = strings.TrimSpace(rest)
	}
	if rest, ok := strings.CutSuffix(name, "?"); ok && rest != "" {
		optional = true
		name = rest
	}
	return goshape.StringKey(name), optional, readonly
}

func at(n *yaml.Node) string {
	if n == nil || n.Line == 0 {
		return ""
	}
	return fmt.Sprintf(" (line %d:%d)", n.Line, n.Column)
}
