package i18n_test

import (
	"testing"

	"github.com/tonnydourado/micromodels/i18n"
)

func TestTranslator_Dictionary(t *testing.T) {
	if got := i18n.T("required", nil); got != "this field is required" {
		t.Fatalf("en required = %q", got)
	}
	i18n.SetLanguage("ja")
	defer i18n.SetLanguage("en")
	if got := i18n.T("required", nil); got != "必須フィールドです" {
		t.Fatalf("ja required = %q", got)
	}
	if got := i18n.T("no_such_code", nil); got != "no_such_code" {
		t.Fatalf("unknown code should fall back to itself, got %q", got)
	}
}
