package analysis

import "strings"

// Locale selects the language of every generated message.
type Locale string

const (
	LocaleZH Locale = "zh"
	LocaleEN Locale = "en"
)

// DefaultLocale is used when no usable locale is supplied.
const DefaultLocale = LocaleZH

// ParseLocale maps a language tag such as "en", "en-US" or "zh-CN" to a
// supported Locale. Only the first entry of an Accept-Language list is
// considered. Anything that is not English falls back to DefaultLocale.
func ParseLocale(tag string) Locale {
	if i := strings.IndexAny(tag, ",;"); i >= 0 {
		tag = tag[:i]
	}
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "en" || strings.HasPrefix(tag, "en-") || strings.HasPrefix(tag, "en_") {
		return LocaleEN
	}
	return DefaultLocale
}

// bilingual is one message in both supported languages.
type bilingual struct {
	zh string
	en string
}

func (b bilingual) in(loc Locale) string {
	if loc == LocaleEN {
		return b.en
	}
	return b.zh
}
