package i18n

import (
	"strings"
	"sync/atomic"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "key" or "name").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var msg string
	switch t.lang {
	case "ja":
		switch code {
		case "shape_mismatch":
			msg = "シェイプが一致しません"
		case "unknown_key":
			msg = "スキーマに存在しないキーです: {key}"
		case "readonly_field":
			msg = "読み取り専用フィールドのシェイプは変更できません: {key}"
		case "empty_sequence":
			msg = "空のシーケンスには先頭要素がありません"
		case "not_callable":
			msg = "呼び出し可能なシェイプではありません"
		case "duplicate_key":
			msg = "キーが重複しています: {key}"
		case "unresolved_ref":
			msg = "未定義のスキーマを参照しています: {name}"
		case "cycle":
			msg = "スキーマの参照が循環しています: {name}"
		case "parse_error":
			msg = "解析エラー"
		case "unsupported_shape":
			msg = "このシェイプは表現できません"
		}
	default: // "en"
		switch code {
		case "shape_mismatch":
			msg = "shape mismatch"
		case "unknown_key":
			msg = "key not present in schema: {key}"
		case "readonly_field":
			msg = "readonly field cannot change shape: {key}"
		case "empty_sequence":
			msg = "empty sequence has no first element"
		case "not_callable":
			msg = "shape is not callable"
		case "duplicate_key":
			msg = "duplicate key: {key}"
		case "unresolved_ref":
			msg = "reference to undeclared schema: {name}"
		case "cycle":
			msg = "schema references form a cycle: {name}"
		case "parse_error":
			msg = "parse error"
		case "unsupported_shape":
			msg = "shape cannot be represented"
		}
	}
	if msg == "" {
		return code
	}
	return expand(msg, data)
}

// expand replaces {name} placeholders with values from data. Placeholders
// without data are dropped together with the ": " separator before them.
func expand(msg string, data map[string]string) string {
	b := &strings.Builder{}
	for {
		i := strings.IndexByte(msg, '{')
		if i < 0 {
			b.WriteString(msg)
			return b.String()
		}
		j := strings.IndexByte(msg[i:], '}')
		if j < 0 {
			b.WriteString(msg)
			return b.String()
		}
		name := msg[i+1 : i+j]
		if v, ok := data[name]; ok {
			b.WriteString(msg[:i])
			b.WriteString(v)
		} else {
			b.WriteString(strings.TrimSuffix(msg[:i], ": "))
		}
		msg = msg[i+j+1:]
	}
}

var currentTranslator atomic.Value // holds translatorBox

type translatorBox struct{ tr Translator }

func init() { currentTranslator.Store(translatorBox{dictTranslator{lang: "en"}}) }

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator.Store(translatorBox{dictTranslator{lang: lang}})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	currentTranslator.Store(translatorBox{tr})
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	return currentTranslator.Load().(translatorBox).tr.Message(code, data)
}
