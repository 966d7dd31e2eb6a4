package view

import (
	"time"

	"golang.org/x/text/language"
)

// Layouts de fecha corta por idioma. El primero es el fallback.
var dateLocales = []struct {
	tag    language.Tag
	layout string
}{
	{language.AmericanEnglish, "1/2/2006"},
	{language.BritishEnglish, "02/01/2006"},
	{language.German, "2.1.2006"},
	{language.French, "02/01/2006"},
	{language.Spanish, "2/1/2006"},
	{language.Portuguese, "02/01/2006"},
	{language.Italian, "2/1/2006"},
	{language.Dutch, "2-1-2006"},
	{language.Japanese, "2006/1/2"},
	{language.Chinese, "2006/1/2"},
	{language.Korean, "2006. 1. 2."},
	{language.Hindi, "2/1/2006"},
}

var dateMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(dateLocales))
	for i, l := range dateLocales {
		tags[i] = l.tag
	}
	return language.NewMatcher(tags)
}()

// DateFormatter imprime fechas en el formato corto del locale configurado.
type DateFormatter struct {
	tag    language.Tag
	layout string
}

func NewDateFormatter(locale string) *DateFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	_, idx, conf := dateMatcher.Match(tag)
	if conf == language.No {
		idx = 0
	}
	return &DateFormatter{tag: dateLocales[idx].tag, layout: dateLocales[idx].layout}
}

func (f *DateFormatter) Format(t time.Time) string {
	if f == nil {
		return t.Format(dateLocales[0].layout)
	}
	return t.Format(f.layout)
}

func (f *DateFormatter) Locale() string {
	if f == nil {
		return dateLocales[0].tag.String()
	}
	return f.tag.String()
}
