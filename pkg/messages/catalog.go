// Package messages provides a user-facing message catalog keyed by
// error code and locale. The structured error model keeps operator
// messages on the error itself; this package resolves the separate,
// translated text that is safe to show to end users.
//
// Resolution walks a fallback ladder: exact locale, base language
// (de-CH falls back to de), the catalog's default locale, and finally
// the error's own message. Catalogs load from YAML or JSON files whose
// top level maps locales to code/message pairs:
//
//	en:
//	  VAL_001: "Please check your input and try again."
//	  NF_001: "We could not find what you were looking for."
//	de:
//	  VAL_001: "Bitte überprüfen Sie Ihre Eingabe."
package messages

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	beerr "github.com/shi-rudo/base-error-go/pkg/errors"
)

// fallbackMessage is returned when neither the catalog nor the error
// itself yields usable text. Deliberately generic: it leaks nothing
// about internals.
const fallbackMessage = "An unexpected error occurred. Please try again later."

// Catalog maps error codes to user-facing messages per locale. The
// zero value is not usable; create catalogs with [NewCatalog].
//
// Catalog is safe for concurrent use. Lookups take a read lock, so
// serving translations scales across goroutines while [Catalog.Set]
// and [Catalog.LoadFile] remain safe to call at runtime (e.g. on a
// config reload signal).
type Catalog struct {
	mu            sync.RWMutex
	defaultLocale string
	messages      map[string]map[beerr.Code]string
}

// NewCatalog creates an empty catalog with the given default locale.
// The default locale is the last catalog step of the resolution ladder
// before falling back to the error's own message.
func NewCatalog(defaultLocale string) *Catalog {
	return &Catalog{
		defaultLocale: normalizeLocale(defaultLocale),
		messages:      make(map[string]map[beerr.Code]string),
	}
}

// Set registers a message for the given locale and code, replacing any
// existing entry.
func (c *Catalog) Set(locale string, code beerr.Code, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set(normalizeLocale(locale), code, message)
}

// SetAll registers a batch of messages for the given locale.
func (c *Catalog) SetAll(locale string, msgs map[beerr.Code]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	loc := normalizeLocale(locale)
	for code, message := range msgs {
		c.set(loc, code, message)
	}
}

// set requires c.mu to be held for writing.
func (c *Catalog) set(locale string, code beerr.Code, message string) {
	byCode, ok := c.messages[locale]
	if !ok {
		byCode = make(map[beerr.Code]string)
		c.messages[locale] = byCode
	}
	byCode[code] = message
}

// Resolve looks up the message for a code, walking the locale fallback
// ladder: exact locale, base language, default locale. Returns the
// message and true on a hit, or "" and false when no catalog entry
// exists at any step.
func (c *Catalog) Resolve(locale string, code beerr.Code) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, loc := range c.fallbackChain(normalizeLocale(locale)) {
		if msg, ok := c.messages[loc][code]; ok {
			return msg, true
		}
	}
	return "", false
}

// UserMessage returns the text to show an end user for the given error.
// Structured errors resolve through the catalog by code; on a catalog
// miss the error's own message is used. Foreign and nil errors yield a
// generic fallback, since their messages were never written for end
// users.
func (c *Catalog) UserMessage(locale string, err error) string {
	e, ok := beerr.AsError(err)
	if !ok {
		return fallbackMessage
	}
	if msg, found := c.Resolve(locale, e.Code); found {
		return msg
	}
	if e.Message != "" {
		return e.Message
	}
	return fallbackMessage
}

// Locales returns the locales currently present in the catalog, in
// unspecified order.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	locales := make([]string, 0, len(c.messages))
	for loc := range c.messages {
		locales = append(locales, loc)
	}
	return locales
}

// fallbackChain returns the locale lookup order for the given locale.
// Requires c.mu to be held for reading (defaultLocale access).
func (c *Catalog) fallbackChain(locale string) []string {
	chain := make([]string, 0, 3)
	if locale != "" {
		chain = append(chain, locale)
		if base, ok := baseLanguage(locale); ok {
			chain = append(chain, base)
		}
	}
	if c.defaultLocale != "" && !contains(chain, c.defaultLocale) {
		chain = append(chain, c.defaultLocale)
	}
	return chain
}

// LoadFile merges messages from a YAML or JSON file into the catalog.
// The file format is detected by extension:
//
//   - .yaml / .yml — parsed as YAML
//   - .json — parsed as JSON
//
// An unrecognized extension, an unreadable file, or a malformed
// document returns a [*beerr.Error] with code
// [beerr.CodeInternalConfiguration]. The file path must not contain
// directory traversal sequences ("..").
func (c *Catalog) LoadFile(path string) error {
	if strings.Contains(path, "..") {
		return beerr.Newf(beerr.CodeInternalConfiguration,
			"messages: file path must not contain directory traversal: %s", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml", ".json":
	default:
		return beerr.Newf(beerr.CodeInternalConfiguration,
			"messages: unsupported catalog file extension: %s", ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return beerr.Wrapf(err, beerr.CodeInternalConfiguration,
			"messages: failed to read catalog file %s", path)
	}
	return c.load(data, ext)
}

// LoadYAML merges messages from an in-memory YAML document.
func (c *Catalog) LoadYAML(data []byte) error {
	return c.load(data, ".yaml")
}

// LoadJSON merges messages from an in-memory JSON document.
func (c *Catalog) LoadJSON(data []byte) error {
	return c.load(data, ".json")
}

func (c *Catalog) load(data []byte, ext string) error {
	raw := make(map[string]map[string]string)
	var err error
	switch ext {
	case ".json":
		err = json.Unmarshal(data, &raw)
	default:
		err = yaml.Unmarshal(data, &raw)
	}
	if err != nil {
		return beerr.Wrap(err, beerr.CodeInternalConfiguration,
			"messages: failed to parse catalog document")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for locale, byCode := range raw {
		loc := normalizeLocale(locale)
		for code, message := range byCode {
			c.set(loc, beerr.Code(code), message)
		}
	}
	return nil
}

// normalizeLocale lowercases and canonicalizes separator characters so
// "de_CH" and "de-ch" address the same bucket.
func normalizeLocale(locale string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(locale), "_", "-"))
}

// baseLanguage extracts the language subtag from a locale with a
// region ("de-ch" yields "de"). Returns false for bare languages.
func baseLanguage(locale string) (string, bool) {
	if i := strings.IndexByte(locale, '-'); i > 0 {
		return locale[:i], true
	}
	return "", false
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
