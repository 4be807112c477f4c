package goshape

// IssueAt creates an Issue at the given path with provided code, hint and params map.
// This is a convenience helper to improve readability at call sites with many parameters.
func IssueAt(p PathRef, code, hint string, params map[string]any) Issue {
	kv := make([]any, 0, 2*len(params))
	for k, v := range params {
		kv = append(kv, k, v)
	}
	return p.Issue(code, hint, kv...)
}
