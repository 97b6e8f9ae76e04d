// Package translate detects the language of outgoing messages and
// translates them into the receiver's preferred language. Translation is
// strictly best-effort: every failure mode degrades to returning the
// original text.
package translate

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/abadojack/whatlanggo"
	"golang.org/x/sync/singleflight"
)

// DefaultLanguage is what unknown or undetectable codes normalize to.
const DefaultLanguage = "en"

// ErrUnsupportedPair means no translator exists for the ordered language
// pair.
var ErrUnsupportedPair = errors.New("unsupported language pair")

// Translator translates text for one fixed ordered language pair.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// TranslatorFactory builds translator handles. Handles are expensive, so
// the gateway caches them per ordered pair for the process lifetime.
type TranslatorFactory interface {
	New(source, target string) (Translator, error)
}

// DetectFunc identifies the language of a text, returning an ISO 639-1
// code or "" when undecided.
type DetectFunc func(text string) string

type Gateway struct {
	factory   TranslatorFactory
	timeout   time.Duration
	supported map[string]bool
	detect    DetectFunc

	mu          sync.RWMutex
	translators map[string]Translator
	group       singleflight.Group
}

func NewGateway(factory TranslatorFactory, supported map[string]bool, timeout time.Duration) *Gateway {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Gateway{
		factory:     factory,
		timeout:     timeout,
		supported:   supported,
		detect:      DetectLanguage,
		translators: make(map[string]Translator),
	}
}

// Translate detects the language of text and translates it into
// targetLang. Returns the translated text and the detected source
// language. Never fails: unsupported pairs, backend errors, timeouts, and
// cancellation all fall back to the original text.
func (g *Gateway) Translate(ctx context.Context, text, targetLang string) (translated, sourceLang string) {
	source := g.Normalize(g.Detect(text))
	target := g.Normalize(targetLang)

	if source == target {
		return text, source
	}

	translator, err := g.translator(source, target)
	if err != nil {
		if !errors.Is(err, ErrUnsupportedPair) {
			log.Printf("translate: no translator for %s-%s: %v", source, target, err)
		}
		return text, source
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	result, err := translator.Translate(ctx, text)
	if err != nil {
		log.Printf("translate: %s-%s degraded to pass-through: %v", source, target, err)
		return text, source
	}
	return result, source
}

// Detect returns the ISO 639-1 code of the most likely language of text,
// or the default when detection cannot decide.
func (g *Gateway) Detect(text string) string {
	if code := g.detect(text); code != "" {
		return code
	}
	return DefaultLanguage
}

// DetectLanguage is the default detector, backed by whatlanggo's trigram
// classifier.
func DetectLanguage(text string) string {
	info := whatlanggo.Detect(text)
	return info.Lang.Iso6391()
}

// Normalize maps a language code onto the supported set, defaulting
// unknown codes to DefaultLanguage.
func (g *Gateway) Normalize(code string) string {
	if g.supported[code] {
		return code
	}
	return DefaultLanguage
}

// translator returns the cached handle for the ordered pair, building it
// at most once even under concurrent first use.
func (g *Gateway) translator(source, target string) (Translator, error) {
	key := source + "-" + target

	g.mu.RLock()
	t, ok := g.translators[key]
	g.mu.RUnlock()
	if ok {
		return t, nil
	}

	v, err, _ := g.group.Do(key, func() (interface{}, error) {
		g.mu.RLock()
		t, ok := g.translators[key]
		g.mu.RUnlock()
		if ok {
			return t, nil
		}

		t, err := g.factory.New(source, target)
		if err != nil {
			return nil, err
		}

		g.mu.Lock()
		g.translators[key] = t
		g.mu.Unlock()
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Translator), nil
}
