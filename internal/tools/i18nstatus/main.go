// Package main prints translation coverage for the embedded locale catalogs.
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	i18ncatalog "github.com/louisbranch/staredown/internal/platform/i18n/catalog"
)

type localeStatus struct {
	Locale      string
	BaseKeys    int
	Translated  int
	MissingKeys []string
	ExtraKeys   []string
	Completion  float64
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("i18nstatus", flag.ContinueOnError)
	baseLocale := fs.String("base-locale", i18ncatalog.BaseLocale, "base locale used as translation source of truth")
	strict := fs.Bool("strict", false, "fail when a locale is missing keys")
	if err := fs.Parse(args); err != nil {
		return err
	}

	bundle, err := i18ncatalog.LoadEmbedded()
	if err != nil {
		return fmt.Errorf("load i18n catalogs: %w", err)
	}
	if !bundle.HasLocale(*baseLocale) {
		return fmt.Errorf("base locale %q is missing from catalogs", *baseLocale)
	}

	statuses := buildReport(bundle, *baseLocale)
	render(out, statuses)

	if *strict {
		for _, status := range statuses {
			if len(status.MissingKeys) > 0 {
				return fmt.Errorf("locale %s is missing %d keys", status.Locale, len(status.MissingKeys))
			}
		}
	}
	return nil
}

func buildReport(bundle *i18ncatalog.Bundle, baseLocale string) []localeStatus {
	baseMessages := bundle.LocaleMessages(baseLocale)
	locales := bundle.Locales()
	statuses := make([]localeStatus, 0, len(locales))
	for _, locale := range locales {
		localeMessages := bundle.LocaleMessages(locale)
		missing := diffKeys(baseMessages, localeMessages)
		translated := len(baseMessages) - len(missing)
		statuses = append(statuses, localeStatus{
			Locale:      locale,
			BaseKeys:    len(baseMessages),
			Translated:  translated,
			MissingKeys: missing,
			ExtraKeys:   diffKeys(localeMessages, baseMessages),
			Completion:  percent(translated, len(baseMessages)),
		})
	}
	return statuses
}

func render(out io.Writer, statuses []localeStatus) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault
	t.AppendHeader(table.Row{"Locale", "Base keys", "Translated", "Missing", "Extra", "Completion"})
	for _, s := range statuses {
		t.AppendRow(table.Row{s.Locale, s.BaseKeys, s.Translated, len(s.MissingKeys), len(s.ExtraKeys), fmt.Sprintf("%.1f%%", s.Completion)})
	}
	t.Render()

	for _, s := range statuses {
		for _, key := range s.MissingKeys {
			fmt.Fprintf(out, "%s missing %s\n", s.Locale, key)
		}
		for _, key := range s.ExtraKeys {
			fmt.Fprintf(out, "%s extra %s\n", s.Locale, key)
		}
	}
}

// diffKeys returns the keys of a that b lacks.
func diffKeys(a map[string]string, b map[string]string) []string {
	out := make([]string, 0)
	for key := range a {
		if _, ok := b[key]; !ok {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

func percent(numerator int, denominator int) float64 {
	if denominator <= 0 {
		return 100
	}
	value := float64(numerator) * 100 / float64(denominator)
	return math.Round(value*10) / 10
}
