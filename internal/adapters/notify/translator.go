package notify

import (
	"embed"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

//go:embed active.*.toml
var localeFS embed.FS

// Translator renders notification text for a locale.
type Translator struct {
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	tag       language.Tag
}

// NewTranslator loads the embedded message files. Unknown locales fall back
// to English.
func NewTranslator(locale string) (*Translator, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	for _, file := range []string{"active.en.toml", "active.fr.toml"} {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			return nil, err
		}
	}
	return &Translator{
		bundle:    bundle,
		localizer: i18n.NewLocalizer(bundle, tag.String(), language.English.String()),
		tag:       tag,
	}, nil
}

// Locale is the tag messages are rendered in.
func (t *Translator) Locale() string { return t.tag.String() }

// T renders id with data, or returns id when the message is missing.
func (t *Translator) T(id string, data map[string]any) string {
	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{MessageID: id, TemplateData: data})
	if err != nil {
		return id
	}
	return msg
}
