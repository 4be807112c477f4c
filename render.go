package goshape

import (
	"strconv"
	"strings"
)

func render(s Shape) string {
	if s == nil {
		return "unknown"
	}
	return s.String()
}

// renderOperand parenthesizes shapes that would bind loosely inside a union
// member or array element position.
func renderOperand(s Shape) string {
	switch s.(type) {
	case Union, Callable:
		return "(" + render(s) + ")"
	}
	return render(s)
}

func renderElement(e Element, label string) string {
	b := &strings.Builder{}
	if e.Rest {
		b.WriteString("...")
	}
	if label != "" {
		b.WriteString(label)
		if e.Optional && !e.Rest {
			b.WriteByte('?')
		}
		b.WriteString(": ")
	}
	if e.Rest {
		b.WriteString(renderOperand(e.Shape))
		b.WriteString("[]")
	} else {
		b.WriteString(render(e.Shape))
		if e.Optional && label == "" {
			b.WriteByte('?')
		}
	}
	return b.String()
}

func (u Union) String() string {
	parts := make([]string, len(u.members))
	for i, m := range u.members {
		parts[i] = renderOperand(m)
	}
	return strings.Join(parts, " | ")
}

// String renders the signature as (a: string, ...rest: number[]) => void.
// Unlabeled parameters are named arg0, arg1 and so on.
func (c Callable) String() string {
	parts := make([]string, c.Params.Len())
	for i, e := range c.Params.elems {
		label := e.Label
		if label == "" {
			label = "arg" + strconv.Itoa(i)
		}
		parts[i] = renderElement(e, label)
	}
	ret := c.Returns
	if ret == nil {
		ret = PrimVoid
	}
	return "(" + strings.Join(parts, ", ") + ") => " + render(ret)
}
