package goshape

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Issue codes
const (
	CodeShapeMismatch    = "shape_mismatch"
	CodeUnknownKey       = "unknown_key"
	CodeReadonlyField    = "readonly_field"
	CodeEmptySequence    = "empty_sequence"
	CodeNotCallable      = "not_callable"
	CodeDuplicateKey     = "duplicate_key"
	CodeUnresolvedRef    = "unresolved_ref"
	CodeCycle            = "cycle"
	CodeParseError       = "parse_error"
	CodeUnsupportedShape = "unsupported_shape"
)

// ErrShapeMismatch matches (via errors.Is) any Issues value that reports a
// contract violation: an unknown key, a readonly field re-set with another
// shape, an empty sequence, or a non-callable shape.
var ErrShapeMismatch = errors.New("goshape: shape mismatch")

func isMismatchCode(code string) bool {
	switch code {
	case CodeShapeMismatch, CodeUnknownKey, CodeReadonlyField, CodeEmptySequence, CodeNotCallable:
		return true
	}
	return false
}

// Issue represents a single contract violation.
type Issue struct {
	Path    string // JSON Pointer (for example: /schemas/Test/omit/keys/0).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, offending names, etc.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"key":"value"}) for i18n.
	Params map[string]any
}

// Issues is a collection of issues that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. unknown_key at /value
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Hint != "" {
			fmt.Fprintf(b, " (%s)", it.Hint)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Is makes errors.Is(err, ErrShapeMismatch) true for contract violations.
func (iss Issues) Is(target error) bool {
	if target != ErrShapeMismatch {
		return false
	}
	for _, it := range iss {
		if isMismatchCode(it.Code) {
			return true
		}
	}
	return false
}

// Unwrap exposes the causes of the individual issues.
func (iss Issues) Unwrap() []error {
	var errs []error
	for _, it := range iss {
		if it.Cause != nil {
			errs = append(errs, it.Cause)
		}
	}
	return errs
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// SortIssues orders issues by path, then code, keeping the relative order of
// equal entries.
func SortIssues(iss Issues) {
	sort.SliceStable(iss, func(i, j int) bool {
		if iss[i].Path != iss[j].Path {
			return iss[i].Path < iss[j].Path
		}
		return iss[i].Code < iss[j].Code
	})
}
