package translate

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

var testSupported = map[string]bool{"en": true, "fr": true, "es": true}

type stubTranslator struct {
	result string
	err    error
	delay  time.Duration
	calls  int32
}

func (t *stubTranslator) Translate(ctx context.Context, text string) (string, error) {
	atomic.AddInt32(&t.calls, 1)
	if t.delay > 0 {
		select {
		case <-time.After(t.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if t.err != nil {
		return "", t.err
	}
	return t.result, nil
}

type stubFactory struct {
	mu          sync.Mutex
	translators map[string]*stubTranslator
	newCalls    map[string]int
	failPairs   map[string]bool
}

func newStubFactory() *stubFactory {
	return &stubFactory{
		translators: make(map[string]*stubTranslator),
		newCalls:    make(map[string]int),
		failPairs:   make(map[string]bool),
	}
}

func (f *stubFactory) stub(source, target string, t *stubTranslator) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.translators[source+"-"+target] = t
}

func (f *stubFactory) New(source, target string) (Translator, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := source + "-" + target
	f.newCalls[key]++
	if f.failPairs[key] {
		return nil, ErrUnsupportedPair
	}
	if t, ok := f.translators[key]; ok {
		return t, nil
	}
	return &stubTranslator{result: "translated"}, nil
}

func fixedDetector(code string) DetectFunc {
	return func(string) string { return code }
}

func newTestGateway(factory TranslatorFactory, detect DetectFunc) *Gateway {
	g := NewGateway(factory, testSupported, time.Second)
	g.detect = detect
	return g
}

func TestTranslateSameLanguagePassThrough(t *testing.T) {
	factory := newStubFactory()
	g := newTestGateway(factory, fixedDetector("en"))

	text := "Hello there, how are you today?"
	translated, source := g.Translate(context.Background(), text, "en")

	if translated != text {
		t.Fatalf("expected pass-through, got %q", translated)
	}
	if source != "en" {
		t.Fatalf("expected source en, got %q", source)
	}
	if len(factory.newCalls) != 0 {
		t.Fatal("no translator should be built for a same-language message")
	}
}

func TestTranslateDifferentLanguage(t *testing.T) {
	factory := newStubFactory()
	factory.stub("en", "fr", &stubTranslator{result: "Bonjour"})
	g := newTestGateway(factory, fixedDetector("en"))

	translated, source := g.Translate(context.Background(), "Hello", "fr")

	if translated != "Bonjour" {
		t.Fatalf("expected Bonjour, got %q", translated)
	}
	if source != "en" {
		t.Fatalf("expected source en, got %q", source)
	}
}

func TestTranslateBackendErrorFallsBack(t *testing.T) {
	factory := newStubFactory()
	factory.stub("en", "es", &stubTranslator{err: errors.New("backend down")})
	g := newTestGateway(factory, fixedDetector("en"))

	text := "Hello"
	translated, source := g.Translate(context.Background(), text, "es")

	if translated != text {
		t.Fatalf("expected original text on backend error, got %q", translated)
	}
	if source != "en" {
		t.Fatalf("expected source en, got %q", source)
	}
}

func TestTranslateUnsupportedPairFallsBack(t *testing.T) {
	factory := newStubFactory()
	factory.failPairs["fr-es"] = true
	g := newTestGateway(factory, fixedDetector("fr"))

	text := "Bonjour"
	translated, source := g.Translate(context.Background(), text, "es")

	if translated != text {
		t.Fatalf("expected original text for unsupported pair, got %q", translated)
	}
	if source != "fr" {
		t.Fatalf("expected source fr, got %q", source)
	}
}

func TestTranslateTimeoutFallsBack(t *testing.T) {
	factory := newStubFactory()
	factory.stub("en", "fr", &stubTranslator{result: "late", delay: 500 * time.Millisecond})
	g := NewGateway(factory, testSupported, 20*time.Millisecond)
	g.detect = fixedDetector("en")

	text := "Hello"
	start := time.Now()
	translated, _ := g.Translate(context.Background(), text, "fr")

	if translated != text {
		t.Fatalf("expected original text on timeout, got %q", translated)
	}
	if time.Since(start) > 200*time.Millisecond {
		t.Fatal("timeout was not enforced")
	}
}

func TestTranslatorHandleCachedPerPair(t *testing.T) {
	factory := newStubFactory()
	g := newTestGateway(factory, fixedDetector("en"))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		g.Translate(ctx, "Hello", "fr")
	}
	g.Translate(ctx, "Hello", "es")

	if factory.newCalls["en-fr"] != 1 {
		t.Fatalf("expected en-fr handle built once, got %d", factory.newCalls["en-fr"])
	}
	if factory.newCalls["en-es"] != 1 {
		t.Fatalf("expected en-es handle built once, got %d", factory.newCalls["en-es"])
	}
}

func TestTranslatorHandleCachedUnderConcurrency(t *testing.T) {
	factory := newStubFactory()
	g := newTestGateway(factory, fixedDetector("en"))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.Translate(context.Background(), "Hello", "fr")
		}()
	}
	wg.Wait()

	if factory.newCalls["en-fr"] != 1 {
		t.Fatalf("expected one handle build under concurrency, got %d", factory.newCalls["en-fr"])
	}
}

func TestNormalizeUnknownLanguage(t *testing.T) {
	g := newTestGateway(newStubFactory(), fixedDetector("de"))

	if got := g.Normalize("de"); got != DefaultLanguage {
		t.Fatalf("expected unknown code to normalize to %q, got %q", DefaultLanguage, got)
	}
	if got := g.Normalize("fr"); got != "fr" {
		t.Fatalf("expected fr to stay fr, got %q", got)
	}

	// An unsupported detected language falls back to the default, which
	// makes an en-target message a pass-through.
	text := "Guten Tag"
	translated, source := g.Translate(context.Background(), text, "en")
	if translated != text || source != "en" {
		t.Fatalf("expected pass-through with source en, got %q %q", translated, source)
	}
}

func TestDetectLanguage(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"The quick brown fox jumps over the lazy dog and then runs far away into the quiet forest.", "en"},
		{"Bonjour, comment allez-vous aujourd'hui ? J'espère que tout va bien pour vous et votre famille.", "fr"},
		{"Hola, ¿cómo estás hoy? Espero que todo vaya muy bien para ti y para toda tu familia.", "es"},
	}

	for _, tc := range cases {
		if got := DetectLanguage(tc.text); got != tc.want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}
