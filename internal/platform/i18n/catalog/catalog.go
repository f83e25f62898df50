// Package catalog loads the embedded locale message catalogs and registers
// them with golang.org/x/text/message.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"maps"
	"path"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// BaseLocale is the canonical source locale for catalogs.
const BaseLocale = "en-US"

const (
	// NamespaceCore holds console text and card names. Its keys start with "core.".
	NamespaceCore = "core"
	// NamespaceErrors holds error templates keyed by error code.
	NamespaceErrors = "errors"
)

var namespaces = []string{NamespaceCore, NamespaceErrors}

// Bundle holds every locale's messages, split by namespace.
type Bundle struct {
	// locales maps locale to namespace to key to message.
	locales map[string]map[string]map[string]string
}

//go:embed locales/*/*.yaml
var embeddedCatalogFS embed.FS

var defaultBundle = mustLoadAndRegisterEmbedded()

// Default returns the process-wide embedded catalog bundle.
func Default() *Bundle {
	return defaultBundle
}

// LoadEmbedded loads catalog files embedded in this package.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedCatalogFS)
}

// LoadFromFS loads locales/<locale>/<namespace>.yaml files from fsys.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	slices.Sort(paths)

	b := &Bundle{locales: map[string]map[string]map[string]string{}}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		if err := b.load(p, data); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", p, err)
		}
	}
	if !b.HasLocale(BaseLocale) {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	return b, nil
}

func (b *Bundle) load(p string, data []byte) error {
	file, err := parseCatalogFile(data)
	if err != nil {
		return err
	}
	wantLocale := path.Base(path.Dir(p))
	wantNamespace := strings.TrimSuffix(path.Base(p), path.Ext(p))
	switch {
	case file.locale != wantLocale:
		return fmt.Errorf("locale %q must match directory %q", file.locale, wantLocale)
	case file.namespace != wantNamespace:
		return fmt.Errorf("namespace %q must match file name %q", file.namespace, wantNamespace)
	case !slices.Contains(namespaces, file.namespace):
		return fmt.Errorf("unknown namespace %q", file.namespace)
	}

	byNamespace := b.locales[file.locale]
	if byNamespace == nil {
		byNamespace = map[string]map[string]string{}
		b.locales[file.locale] = byNamespace
	}
	for key := range file.messages {
		if strings.HasPrefix(key, "core.") != (file.namespace == NamespaceCore) {
			return fmt.Errorf("key %q does not belong in namespace %q", key, file.namespace)
		}
	}
	byNamespace[file.namespace] = file.messages
	return nil
}

// Register makes every message available to x/text/message printers, under
// the locale tag and its bare language.
func (b *Bundle) Register() error {
	for _, locale := range b.Locales() {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("parse locale tag %q: %w", locale, err)
		}
		tags := []language.Tag{tag}
		if base, conf := tag.Base(); conf != language.No {
			if bare := language.Make(base.String()); bare != tag {
				tags = append(tags, bare)
			}
		}
		for key, msg := range b.LocaleMessages(locale) {
			for _, t := range tags {
				if err := message.SetString(t, key, msg); err != nil {
					return fmt.Errorf("register %s %s: %w", locale, key, err)
				}
			}
		}
	}
	return nil
}

// HasLocale reports whether the locale exists in this bundle.
func (b *Bundle) HasLocale(locale string) bool {
	_, ok := b.locales[strings.TrimSpace(locale)]
	return ok
}

// Locales returns the sorted locale identifiers.
func (b *Bundle) Locales() []string {
	return slices.Sorted(maps.Keys(b.locales))
}

// LocaleMessages returns every message of a locale across namespaces.
func (b *Bundle) LocaleMessages(locale string) map[string]string {
	out := map[string]string{}
	for _, messages := range b.locales[strings.TrimSpace(locale)] {
		maps.Copy(out, messages)
	}
	return out
}

// Namespaces returns the sorted namespaces defined for a locale.
func (b *Bundle) Namespaces(locale string) []string {
	return slices.Sorted(maps.Keys(b.locales[strings.TrimSpace(locale)]))
}

// NamespaceMessages returns a copy of one namespace of a locale.
func (b *Bundle) NamespaceMessages(locale string, namespace string) map[string]string {
	messages := b.locales[strings.TrimSpace(locale)][strings.TrimSpace(namespace)]
	if messages == nil {
		return map[string]string{}
	}
	return maps.Clone(messages)
}

// NamespaceMessagesWithFallback returns namespace messages and the locale that satisfied the lookup.
func (b *Bundle) NamespaceMessagesWithFallback(locale string, namespace string) (string, map[string]string) {
	locale = strings.TrimSpace(locale)
	if messages := b.NamespaceMessages(locale, namespace); len(messages) > 0 {
		return locale, messages
	}
	return BaseLocale, b.NamespaceMessages(BaseLocale, namespace)
}

// ResolveLocale returns locale when the bundle defines it, or the base locale.
func (b *Bundle) ResolveLocale(locale string) string {
	if trimmed := strings.TrimSpace(locale); b.HasLocale(trimmed) {
		return trimmed
	}
	return BaseLocale
}

// Printer returns a message printer for the resolved locale.
// Keys missing from the locale are printed as-is.
func (b *Bundle) Printer(locale string) *message.Printer {
	return message.NewPrinter(language.Make(b.ResolveLocale(locale)))
}

func mustLoadAndRegisterEmbedded() *Bundle {
	bundle, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	if err := bundle.Register(); err != nil {
		panic(err)
	}
	return bundle
}

type catalogFile struct {
	locale    string
	namespace string
	messages  map[string]string
}

// parseCatalogFile reads the catalog subset of YAML the locale files use:
// quoted locale and namespace fields, then a messages block of quoted
// "key": "value" lines.
func parseCatalogFile(data []byte) (catalogFile, error) {
	file := catalogFile{messages: map[string]string{}}
	inMessages := false
	for n, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "messages:" {
			inMessages = true
			continue
		}
		if inMessages {
			key, value, err := parseEntry(line)
			if err != nil {
				return catalogFile{}, fmt.Errorf("line %d: %w", n+1, err)
			}
			file.messages[key] = value
			continue
		}

		field, value, ok := strings.Cut(line, ":")
		if !ok {
			return catalogFile{}, fmt.Errorf("line %d: unexpected %q", n+1, line)
		}
		unquoted, err := strconv.Unquote(strings.TrimSpace(value))
		if err != nil {
			return catalogFile{}, fmt.Errorf("line %d: %s: %w", n+1, field, err)
		}
		switch field {
		case "locale":
			file.locale = unquoted
		case "namespace":
			file.namespace = unquoted
		default:
			return catalogFile{}, fmt.Errorf("line %d: unknown field %q", n+1, field)
		}
	}

	switch {
	case file.locale == "":
		return catalogFile{}, fmt.Errorf("missing locale")
	case file.namespace == "":
		return catalogFile{}, fmt.Errorf("missing namespace")
	case len(file.messages) == 0:
		return catalogFile{}, fmt.Errorf("missing messages")
	}
	return file, nil
}

func parseEntry(line string) (string, string, error) {
	quotedKey, err := strconv.QuotedPrefix(line)
	if err != nil {
		return "", "", fmt.Errorf("key: %w", err)
	}
	key, _ := strconv.Unquote(quotedKey)
	if strings.TrimSpace(key) == "" {
		return "", "", fmt.Errorf("blank key")
	}
	rest, ok := strings.CutPrefix(strings.TrimSpace(line[len(quotedKey):]), ":")
	if !ok {
		return "", "", fmt.Errorf("missing ':' after %s", quotedKey)
	}
	value, err := strconv.Unquote(strings.TrimSpace(rest))
	if err != nil {
		return "", "", fmt.Errorf("value of %s: %w", quotedKey, err)
	}
	return strings.TrimSpace(key), value, nil
}
