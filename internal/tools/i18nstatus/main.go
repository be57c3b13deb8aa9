// Package main reports translation coverage of the inspection message
// catalogs against the base locale.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/louisbranch/closerlook/internal/platform/config"
	i18ncatalog "github.com/louisbranch/closerlook/internal/platform/i18n/catalog"
	"github.com/louisbranch/closerlook/internal/services/inspection/i18n"
)

type report struct {
	BaseLocale string         `json:"base_locale"`
	Locales    []localeStatus `json:"locales"`
}

type localeStatus struct {
	Locale      string            `json:"locale"`
	BaseKeys    int               `json:"base_keys"`
	Translated  int               `json:"translated"`
	Missing     int               `json:"missing"`
	Extra       int               `json:"extra"`
	Completion  float64           `json:"completion"`
	Namespaces  []namespaceStatus `json:"namespaces"`
	MissingKeys []string          `json:"missing_keys"`
	ExtraKeys   []string          `json:"extra_keys"`
}

type namespaceStatus struct {
	Namespace  string  `json:"namespace"`
	BaseKeys   int     `json:"base_keys"`
	Translated int     `json:"translated"`
	Completion float64 `json:"completion"`
}

func main() {
	var asJSON bool
	flag.BoolVar(&asJSON, "json", false, "print the report as JSON instead of markdown")
	flag.Parse()

	bundle, err := i18n.Load()
	if err != nil {
		config.Exitf("load i18n catalogs: %v", err)
	}
	rep := buildReport(bundle, i18ncatalog.BaseLocale)
	if asJSON {
		err = writeJSON(os.Stdout, rep)
	} else {
		err = writeMarkdown(os.Stdout, rep)
	}
	if err != nil {
		config.Exitf("write report: %v", err)
	}
}

func buildReport(bundle *i18ncatalog.Bundle, baseLocale string) report {
	baseMessages := bundle.LocaleMessages(baseLocale)
	statuses := make([]localeStatus, 0)
	for _, locale := range bundle.Locales() {
		if locale == baseLocale {
			continue
		}
		localeMessages := bundle.LocaleMessages(locale)
		missing := bundle.MissingKeys(locale)
		extra := extraKeys(baseMessages, localeMessages)
		translated := len(baseMessages) - len(missing)

		var namespaces []namespaceStatus
		for _, namespace := range bundle.Namespaces(baseLocale) {
			baseNS := bundle.NamespaceMessages(baseLocale, namespace)
			localeNS := bundle.NamespaceMessages(locale, namespace)
			nsTranslated := 0
			for key := range baseNS {
				if _, ok := localeNS[key]; ok {
					nsTranslated++
				}
			}
			namespaces = append(namespaces, namespaceStatus{
				Namespace:  namespace,
				BaseKeys:   len(baseNS),
				Translated: nsTranslated,
				Completion: percent(nsTranslated, len(baseNS)),
			})
		}

		statuses = append(statuses, localeStatus{
			Locale:      locale,
			BaseKeys:    len(baseMessages),
			Translated:  translated,
			Missing:     len(missing),
			Extra:       len(extra),
			Completion:  percent(translated, len(baseMessages)),
			Namespaces:  namespaces,
			MissingKeys: missing,
			ExtraKeys:   extra,
		})
	}
	return report{BaseLocale: baseLocale, Locales: statuses}
}

func writeJSON(w io.Writer, rep report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rep)
}

func writeMarkdown(w io.Writer, rep report) error {
	var b strings.Builder
	b.WriteString("# Message catalog status\n\n")
	fmt.Fprintf(&b, "Base locale: `%s`.\n\n", rep.BaseLocale)
	b.WriteString("| Locale | Base Keys | Translated | Missing | Extra | Completion |\n")
	b.WriteString("| --- | ---: | ---: | ---: | ---: | ---: |\n")
	for _, locale := range rep.Locales {
		fmt.Fprintf(&b, "| `%s` | %d | %d | %d | %d | %.1f%% |\n", locale.Locale, locale.BaseKeys, locale.Translated, locale.Missing, locale.Extra, locale.Completion)
	}

	for _, locale := range rep.Locales {
		fmt.Fprintf(&b, "\n## `%s`\n\n", locale.Locale)
		b.WriteString("| Namespace | Base Keys | Translated | Completion |\n")
		b.WriteString("| --- | ---: | ---: | ---: |\n")
		for _, ns := range locale.Namespaces {
			fmt.Fprintf(&b, "| `%s` | %d | %d | %.1f%% |\n", ns.Namespace, ns.BaseKeys, ns.Translated, ns.Completion)
		}
		writeKeyList(&b, "Missing keys", locale.MissingKeys)
		writeKeyList(&b, "Extra keys", locale.ExtraKeys)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeKeyList(b *strings.Builder, title string, keys []string) {
	if len(keys) == 0 {
		return
	}
	fmt.Fprintf(b, "\n### %s\n\n", title)
	for _, key := range keys {
		fmt.Fprintf(b, "- `%s`\n", key)
	}
}

func extraKeys(base map[string]string, target map[string]string) []string {
	out := make([]string, 0)
	for key := range target {
		if _, ok := base[key]; !ok {
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
