package prefs

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/legaldoc/models"
	"github.com/dtnitsch/legaldoc/pkg/config"
	"github.com/dtnitsch/legaldoc/pkg/dom"
)

const switchPage = `<html><body>
<nav class="nav"><div class="language-switch">
<a data-lang="en" class="active">English</a>
<a data-lang="ja">日本語</a>
<a data-lang="fr">Français</a>
<a data-lang="fr-CA">Français (CA)</a>
</div></nav>
</body></html>`

func parse(t *testing.T) *dom.Page {
	t.Helper()
	page, err := dom.ParseString(switchPage, config.Default().Selectors)
	if err != nil {
		t.Fatalf("failed to parse page: %v", err)
	}
	return page
}

func activeLanguages(links *goquery.Selection) []string {
	var out []string
	links.Each(func(_ int, s *goquery.Selection) {
		if s.HasClass(models.ClassActive) {
			v, _ := s.Attr(models.AttrLanguage)
			out = append(out, v)
		}
	})
	return out
}

type failingStore struct{ err error }

func (f failingStore) Get(string) (string, bool, error) { return "", false, f.err }
func (f failingStore) Set(string, string) error         { return f.err }

func TestSaveAndRestoreLanguage(t *testing.T) {
	page := parse(t)
	m := NewManager(NewMemoryStore(), nil)

	if err := m.SaveLanguage("fr"); err != nil {
		t.Fatalf("SaveLanguage() error = %v", err)
	}
	if err := m.RestoreLanguage(page.LanguageLinks()); err != nil {
		t.Fatalf("RestoreLanguage() error = %v", err)
	}

	got := activeLanguages(page.LanguageLinks())
	if len(got) != 1 || got[0] != "fr" {
		t.Errorf("active links = %v, want [fr]", got)
	}
}

func TestRestoreLanguage_NothingStored(t *testing.T) {
	page := parse(t)
	m := NewManager(NewMemoryStore(), nil)

	if err := m.RestoreLanguage(page.LanguageLinks()); err != nil {
		t.Fatalf("RestoreLanguage() error = %v", err)
	}
	got := activeLanguages(page.LanguageLinks())
	if len(got) != 1 || got[0] != "en" {
		t.Errorf("active links = %v, want markup default [en]", got)
	}
}

func TestUpdateLanguageUI_NoMatch(t *testing.T) {
	page := parse(t)
	UpdateLanguageUI(page.LanguageLinks(), "de")

	if got := activeLanguages(page.LanguageLinks()); len(got) != 0 {
		t.Errorf("active links = %v, want none", got)
	}
}

func TestSaveLanguage_Overwrites(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store, nil)
	_ = m.SaveLanguage("ja")
	_ = m.SaveLanguage("en")

	v, ok, _ := store.Get(models.KeyLanguage)
	if !ok || v != "en" {
		t.Errorf("stored language = %q (ok=%v), want en", v, ok)
	}
}

func TestToggleDarkMode_Twice(t *testing.T) {
	page := parse(t)
	store := NewMemoryStore()
	m := NewManager(store, nil)

	on, err := m.ToggleDarkMode(page.Body)
	if err != nil {
		t.Fatalf("ToggleDarkMode() error = %v", err)
	}
	if !on || !page.Body.HasClass(models.ClassDarkMode) {
		t.Fatal("first toggle did not enable dark mode")
	}
	if v, _, _ := store.Get(models.KeyDarkMode); v != models.DarkModeEnabled {
		t.Errorf("stored flag = %q, want enabled", v)
	}

	on, err = m.ToggleDarkMode(page.Body)
	if err != nil {
		t.Fatalf("ToggleDarkMode() error = %v", err)
	}
	if on || page.Body.HasClass(models.ClassDarkMode) {
		t.Error("second toggle did not restore the light theme")
	}
	if v, _, _ := store.Get(models.KeyDarkMode); v != models.DarkModeDisabled {
		t.Errorf("stored flag = %q, want disabled", v)
	}
}

func TestRestoreDarkMode(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		set    bool
		want   bool
	}{
		{name: "enabled", stored: models.DarkModeEnabled, set: true, want: true},
		{name: "disabled", stored: models.DarkModeDisabled, set: true, want: false},
		{name: "absent", want: false},
		{name: "unexpected value", stored: "Enabled", set: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := parse(t)
			store := NewMemoryStore()
			if tt.set {
				_ = store.Set(models.KeyDarkMode, tt.stored)
			}
			if err := NewManager(store, nil).RestoreDarkMode(page.Body); err != nil {
				t.Fatalf("RestoreDarkMode() error = %v", err)
			}
			if got := page.Body.HasClass(models.ClassDarkMode); got != tt.want {
				t.Errorf("dark mode = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store, nil)

	p, err := m.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.HasLanguage || p.DarkMode {
		t.Errorf("Load() on empty store = %+v, want zero preferences", p)
	}

	_ = store.Set(models.KeyLanguage, "ja")
	_ = store.Set(models.KeyDarkMode, models.DarkModeEnabled)
	p, err = m.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := models.Preferences{Language: "ja", HasLanguage: true, DarkMode: true}
	if p != want {
		t.Errorf("Load() = %+v, want %+v", p, want)
	}
}

func TestStoreFailuresPropagate(t *testing.T) {
	page := parse(t)
	boom := errors.New("storage quota exceeded")
	m := NewManager(failingStore{err: boom}, nil)

	if err := m.SaveLanguage("en"); !errors.Is(err, boom) {
		t.Errorf("SaveLanguage() error = %v, want %v", err, boom)
	}
	if err := m.RestoreLanguage(page.LanguageLinks()); !errors.Is(err, boom) {
		t.Errorf("RestoreLanguage() error = %v, want %v", err, boom)
	}
	if err := m.RestoreDarkMode(page.Body); !errors.Is(err, boom) {
		t.Errorf("RestoreDarkMode() error = %v, want %v", err, boom)
	}
	if _, err := m.ToggleDarkMode(page.Body); !errors.Is(err, boom) {
		t.Errorf("ToggleDarkMode() error = %v, want %v", err, boom)
	}
	if _, err := m.Load(); !errors.Is(err, boom) {
		t.Errorf("Load() error = %v, want %v", err, boom)
	}
}

func TestCookieStore(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/docs/en/terms.html", nil)
	req.AddCookie(&http.Cookie{Name: models.KeyDarkMode, Value: models.DarkModeEnabled})
	rec := httptest.NewRecorder()
	store := NewCookieStore(rec, req)

	if v, ok, err := store.Get(models.KeyDarkMode); err != nil || !ok || v != models.DarkModeEnabled {
		t.Errorf("Get(dark-mode) = %q, %v, %v; want enabled", v, ok, err)
	}
	if _, ok, err := store.Get(models.KeyLanguage); err != nil || ok {
		t.Errorf("Get(language) ok = %v, err = %v; want absent", ok, err)
	}

	if err := store.Set(models.KeyLanguage, "ja"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if v, ok, _ := store.Get(models.KeyLanguage); !ok || v != "ja" {
		t.Errorf("Get after Set = %q (ok=%v), want ja", v, ok)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("response cookies = %d, want 1", len(cookies))
	}
	if cookies[0].Name != models.KeyLanguage || cookies[0].Value != "ja" || cookies[0].Path != "/" {
		t.Errorf("cookie = %+v, want preferred-language=ja on /", cookies[0])
	}
}

func TestSaveDarkMode(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store, nil)

	if err := m.SaveDarkMode(true); err != nil {
		t.Fatalf("SaveDarkMode() error = %v", err)
	}
	if v, _, _ := store.Get(models.KeyDarkMode); v != models.DarkModeEnabled {
		t.Errorf("stored %q, want %q", v, models.DarkModeEnabled)
	}
	if err := m.SaveDarkMode(false); err != nil {
		t.Fatalf("SaveDarkMode() error = %v", err)
	}
	if v, _, _ := store.Get(models.KeyDarkMode); v != models.DarkModeDisabled {
		t.Errorf("stored %q, want %q", v, models.DarkModeDisabled)
	}
}
