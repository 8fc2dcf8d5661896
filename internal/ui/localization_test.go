package ui

import "testing"

func TestLocalization_EveryLanguageHasEveryKey(t *testing.T) {
	l := NewLocalization()
	for lang := range l.GetAvailableLanguages() {
		texts, ok := l.texts[lang]
		if !ok {
			t.Fatalf("language %q has no texts", lang)
		}
		for key := range l.texts["en"] {
			if texts[key] == "" {
				t.Errorf("language %q is missing %q", lang, key)
			}
		}
	}
}

func TestLocalization_GetText(t *testing.T) {
	l := NewLocalization()

	if got := l.GetText(KeySubscribe); got != "Subscribe" {
		t.Errorf("en GetText(KeySubscribe) = %q", got)
	}

	l.SetLanguage("ru")
	if got := l.GetCurrentLanguage(); got != "ru" {
		t.Fatalf("GetCurrentLanguage() = %q, want ru", got)
	}
	if got := l.GetText(KeySubscribe); got != "Подписаться" {
		t.Errorf("ru GetText(KeySubscribe) = %q", got)
	}

	if got := l.GetText("no_such_key"); got != "no_such_key" {
		t.Errorf("unknown key = %q, want the key itself", got)
	}
}

func TestLocalization_SetLanguage(t *testing.T) {
	tests := []struct {
		name string
		lang string
		want string
	}{
		{"system maps to english", "system", "en"},
		{"known language", "pt", "pt"},
		{"unknown is ignored", "xx", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLocalization()
			l.SetLanguage(tt.lang)
			if got := l.GetCurrentLanguage(); got != tt.want {
				t.Errorf("SetLanguage(%q) -> %q, want %q", tt.lang, got, tt.want)
			}
		})
	}
}
