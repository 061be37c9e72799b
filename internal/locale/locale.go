// Package locale resolves user-supplied language tags to one of the supported
// locales and holds the localized message tables used by the describer.
package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale is a supported output language
type Locale string

const (
	// English is the default locale
	English Locale = "en"
	// Chinese is Simplified Chinese
	Chinese Locale = "zh"
)

// Supported lists the supported locales; the first one is the fallback.
var Supported = []Locale{English, Chinese}

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Chinese,
})

// Resolve maps an arbitrary language tag ("zh-CN", "en_US", "fr") to a
// supported locale. Anything unknown or malformed falls back to English.
func Resolve(tag string) Locale {
	tag = strings.TrimSpace(strings.ReplaceAll(tag, "_", "-"))
	if tag == "" {
		return English
	}

	t, err := language.Parse(tag)
	if err != nil {
		return English
	}

	_, idx, conf := matcher.Match(t)
	if conf == language.No {
		// zh-TW and friends do not match zh (Hans) with confidence, but still
		// read better in Chinese than in English.
		if base, _ := t.Base(); base.String() == "zh" {
			return Chinese
		}
		return English
	}
	return Supported[idx]
}

// String returns the locale code
func (l Locale) String() string {
	return string(l)
}
