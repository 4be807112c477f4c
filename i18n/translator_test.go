package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("unknown_key", map[string]string{"key": "value"}); msg != "key not present in schema: value" {
		t.Fatalf("unexpected message %q", msg)
	}

	SetLanguage("ja")
	if msg := T("empty_sequence", nil); msg != "空のシーケンスには先頭要素がありません" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_MissingPlaceholderData(t *testing.T) {
	if msg := T("cycle", nil); msg != "schema references form a cycle" {
		t.Fatalf("unexpected message %q", msg)
	}
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("unknown codes fall back to the code, got %q", msg)
	}
}

func TestTranslator_ValuesAreNotReexpanded(t *testing.T) {
	msg := T("duplicate_key", map[string]string{"key": "{key}"})
	if msg != "duplicate key: {key}" {
		t.Fatalf("unexpected message %q", msg)
	}
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X:" + code }

func TestSetTranslator(t *testing.T) {
	SetTranslator(upper{})
	defer SetTranslator(nil)
	if msg := T("cycle", nil); msg != "X:cycle" {
		t.Fatalf("custom translator not used, got %q", msg)
	}
}
