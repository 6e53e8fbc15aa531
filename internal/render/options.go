package render

// Options controls how one page's quizzes are rendered. Defaults come from
// global configuration; pages override them through frontmatter-style
// metadata supplied by the host.
type Options struct {
	ShowCorrect        bool
	AutoSubmit         bool
	DisableAfterSubmit bool
	AutoNumber         bool
	QuestionTag        string
}

func DefaultOptions() Options {
	return Options{
		ShowCorrect:        true,
		AutoSubmit:         true,
		DisableAfterSubmit: true,
		AutoNumber:         false,
		QuestionTag:        "h4",
	}
}

// Merge applies recognized page-level keys over o and returns the result.
// Unknown keys and wrongly typed values are ignored.
func (o Options) Merge(meta map[string]any) Options {
	if v, ok := meta["show_correct"].(bool); ok {
		o.ShowCorrect = v
	}
	if v, ok := meta["auto_submit"].(bool); ok {
		o.AutoSubmit = v
	}
	if v, ok := meta["disable_after_submit"].(bool); ok {
		o.DisableAfterSubmit = v
	}
	if v, ok := meta["auto_number"].(bool); ok {
		o.AutoNumber = v
	}
	if v, ok := meta["question_tag"].(string); ok && v != "" {
		o.QuestionTag = v
	}
	return o
}

// Enabled resolves the page-level enabled override against the global
// default.
func Enabled(meta map[string]any, defaultEnabled bool) bool {
	if v, ok := meta["enabled"].(bool); ok {
		return v
	}
	return defaultEnabled
}
