package models

// Storage keys and values shared by every preference store.
const (
	KeyLanguage = "preferred-language"
	KeyDarkMode = "dark-mode"

	DarkModeEnabled  = "enabled"
	DarkModeDisabled = "disabled"
)

// Classes toggled on page elements.
const (
	ClassDarkMode = "dark-mode"
	ClassActive   = "active"
)

// AttrLanguage carries the language code of a language-switch link.
const AttrLanguage = "data-lang"

// Heading is a level 2 or level 3 heading inside the main document region.
type Heading struct {
	ID    string `json:"id" yaml:"id"`
	Text  string `json:"text" yaml:"text"`
	Level int    `json:"level" yaml:"level"`
}

// TOCEntry is one generated table-of-contents item.
type TOCEntry struct {
	Href  string `json:"href" yaml:"href"`
	Label string `json:"label" yaml:"label"`
	Level int    `json:"level" yaml:"level"`
}

// Preferences is the persisted user state, read once when a page is initialized.
type Preferences struct {
	Language    string `json:"language,omitempty" yaml:"language,omitempty"`
	HasLanguage bool   `json:"has_language" yaml:"has_language"`
	DarkMode    bool   `json:"dark_mode" yaml:"dark_mode"`
}
