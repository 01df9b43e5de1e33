// Package i18n resolves message codes into human-readable text.
package i18n

import "sync"

// Translator retrieves localized messages for error codes. data provides
// optional metadata to embed in the message (for example, "expected").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			return "型が不正です"
		case "invalid_format":
			return "形式が不正です"
		case "required":
			return "必須フィールドです"
		case "parse_error":
			return "解析エラー"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			return "invalid type"
		case "invalid_format":
			return "invalid format"
		case "required":
			return "this field is required"
		case "parse_error":
			return "parse error"
		}
	}
	return code
}

var (
	mu      sync.RWMutex
	current Translator = dictTranslator{lang: "en"}
)

// SetTranslator replaces the global translator; nil values are ignored.
func SetTranslator(t Translator) {
	if t == nil {
		return
	}
	mu.Lock()
	current = t
	mu.Unlock()
}

// SetLanguage switches the built-in dictionary to the given language.
func SetLanguage(lang string) { SetTranslator(dictTranslator{lang: lang}) }

// T resolves code to a message using the current translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	t := current
	mu.RUnlock()
	return t.Message(code, data)
}
