package models

// PageReport summarizes a page for `lde inspect`.
type PageReport struct {
	Source string `json:"source" yaml:"source"`

	// Readability enrichment (from go-readability)
	Title    string `json:"title" yaml:"title"`
	Excerpt  string `json:"excerpt,omitempty" yaml:"excerpt,omitempty"`
	SiteName string `json:"site_name,omitempty" yaml:"site_name,omitempty"`

	// Language signals
	PathLanguage       string  `json:"path_language,omitempty" yaml:"path_language,omitempty"` // marker segment of the URL path
	DetectedLanguage   string  `json:"detected_language,omitempty" yaml:"detected_language,omitempty"`
	LanguageConfidence float64 `json:"language_confidence,omitempty" yaml:"language_confidence,omitempty"`

	// Structural signals
	WordCount    int  `json:"word_count" yaml:"word_count"`
	HasTOC       bool `json:"has_toc" yaml:"has_toc"`
	HasNav       bool `json:"has_nav" yaml:"has_nav"`
	SectionCount int  `json:"section_count" yaml:"section_count"`

	// Most frequent content words, candidates for search highlighting
	Keywords []Keyword `json:"keywords,omitempty" yaml:"keywords,omitempty"`

	Headings []Heading  `json:"headings,omitempty" yaml:"headings,omitempty"`
	TOC      []TOCEntry `json:"toc,omitempty" yaml:"toc,omitempty"`
}

// Keyword is a content word and how often it occurs.
type Keyword struct {
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
}

// BuildResult describes one page of a batch site build.
type BuildResult struct {
	Path       string `json:"path" yaml:"path"`
	Output     string `json:"output,omitempty" yaml:"output,omitempty"`
	TOCEntries int    `json:"toc_entries" yaml:"toc_entries"`
	Highlights int    `json:"highlights,omitempty" yaml:"highlights,omitempty"`
	SizeBytes  int64  `json:"size_bytes,omitempty" yaml:"size_bytes,omitempty"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
}

// SimulationStep records the page state after one simulated reader action.
type SimulationStep struct {
	Action        string  `json:"action" yaml:"action"` // "click" or "scroll"
	Target        string  `json:"target" yaml:"target"`
	Handled       bool    `json:"handled" yaml:"handled"` // click became a smooth scroll
	ScrollY       float64 `json:"scroll_y" yaml:"scroll_y"`
	Fragment      string  `json:"fragment,omitempty" yaml:"fragment,omitempty"`
	ActiveSection string  `json:"active_section,omitempty" yaml:"active_section,omitempty"`
}

// SimulationReport is the output of a headless interactive session.
type SimulationReport struct {
	Source        string           `json:"source" yaml:"source"`
	Preferences   Preferences      `json:"preferences" yaml:"preferences"`
	TOC           []TOCEntry       `json:"toc,omitempty" yaml:"toc,omitempty"`
	ActiveSection string           `json:"active_section,omitempty" yaml:"active_section,omitempty"`
	Steps         []SimulationStep `json:"steps,omitempty" yaml:"steps,omitempty"`
}
