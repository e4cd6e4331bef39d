package images

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/StroziSolci/Projeto-Fifa/testutils"
)

func TestResolve_success(t *testing.T) {
	fake := testutils.NewFakeImageServer()
	defer fake.Close()

	r := NewForTest(fake.Client())

	want, err := testutils.ImageBytes("player.png")
	assertFatalf(t, err == nil, "error reading test image: %v", err)

	got, ok := r.Resolve(context.Background(), fake.URL()+"/players/158023.png")
	assertFatalf(t, ok, "expected the image to be resolved")
	assertEquals(t, "data uri", "data:image/png;base64,"+base64.StdEncoding.EncodeToString(want), got)
}

func TestResolve_labelsEveryFormatAsPNG(t *testing.T) {
	fake := testutils.NewFakeImageServer()
	defer fake.Close()

	r := NewForTest(fake.Client())

	jpg, err := testutils.ImageBytes("logo.jpg")
	assertFatalf(t, err == nil, "error reading test image: %v", err)

	got, ok := r.Resolve(context.Background(), fake.URL()+"/logos/73.png")
	assertFatalf(t, ok, "expected the image to be resolved")
	assertEquals(t, "data uri", DataURIPrefix+base64.StdEncoding.EncodeToString(jpg), got)
}

func TestResolve_sendsBrowserUserAgent(t *testing.T) {
	fake := testutils.NewFakeImageServer()
	defer fake.Close()

	r := NewForTest(fake.Client())
	r.Resolve(context.Background(), fake.URL()+"/flags/52.png")

	agents := fake.UserAgents()
	assertFatalf(t, len(agents) == 1, "expected 1 request, got %d", len(agents))
	assertEquals(t, "user agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64)", agents[0])
}

func TestResolve_badStatusIsAbsent(t *testing.T) {
	fake := testutils.NewFakeImageServer()
	defer fake.Close()

	r := NewForTest(fake.Client())

	tests := map[string]string{
		"404": fake.URL() + "/missing/1.png",
		"500": fake.URL() + "/error/1.png",
	}

	for name, url := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := r.Resolve(context.Background(), url)
			assertTrue(t, "absent", !ok)
			assertEquals(t, "data uri", "", got)
		})
	}
}

func TestResolve_invalidURLsDoNotFetch(t *testing.T) {
	fake := testutils.NewFakeImageServer()
	defer fake.Close()

	r := NewForTest(fake.Client())

	tests := map[string]string{
		"empty":         "",
		"not a url":     "not a url",
		"relative":      "/players/1.png",
		"no scheme":     "cdn.sofifa.net/players/158/023/23_60.png",
		"ftp":           "ftp://cdn.sofifa.net/players/1.png",
		"no host":       "http://",
		"nan from csv":  "nan",
		"control chars": "http://exa\x7fmple.com/1.png",
	}

	for name, url := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := r.Resolve(context.Background(), url)
			assertTrue(t, "absent", !ok)
			assertEquals(t, "data uri", "", got)
		})
	}

	assertEquals(t, "requests", 0, fake.TotalRequests())
	assertEquals(t, "fetches", int64(0), r.Stats().Fetches)
}

func TestResolve_transportErrorIsAbsent(t *testing.T) {
	fake := testutils.NewFakeImageServer()
	url := fake.URL() + "/players/1.png"
	client := fake.Client()
	fake.Close()

	r := NewForTest(client)

	got, ok := r.Resolve(context.Background(), url)
	assertTrue(t, "absent", !ok)
	assertEquals(t, "data uri", "", got)
}

func TestResolve_timeoutIsAbsent(t *testing.T) {
	fake := testutils.NewFakeImageServer()
	defer fake.Close()

	client := fake.Client()
	client.Timeout = testutils.SlowDelay / 4
	r := NewForTest(client)

	_, ok := r.Resolve(context.Background(), fake.URL()+"/slow/1.png")
	assertTrue(t, "absent after timeout", !ok)
}

func TestResolve_oversizedImageIsAbsent(t *testing.T) {
	fake := testutils.NewFakeImageServer()
	defer fake.Close()

	png, err := testutils.ImageBytes("player.png")
	assertFatalf(t, err == nil, "error reading test image: %v", err)

	r := NewForTest(fake.Client()).(*client)
	r.maxBytes = int64(len(png)) - 1

	url := fake.URL() + "/players/1.png"
	for i := 0; i < 2; i++ {
		got, ok := r.Resolve(context.Background(), url)
		assertTrue(t, "absent", !ok)
		assertEquals(t, "data uri", "", got)
	}
	assertEquals(t, "requests", 1, fake.Requests("/players/1.png"))

	// An image of exactly the limit is fine.
	r.maxBytes = int64(len(png))
	got, ok := r.Resolve(context.Background(), fake.URL()+"/players/2.png")
	assertTrue(t, "resolved", ok)
	assertEquals(t, "data uri", DataURIPrefix+base64.StdEncoding.EncodeToString(png), got)
}

func TestResolve_memoizesSuccess(t *testing.T) {
	fake := testutils.NewFakeImageServer()
	defer fake.Close()

	r := NewForTest(fake.Client())
	url := fake.URL() + "/players/231747.png"

	first, ok1 := r.Resolve(context.Background(), url)
	second, ok2 := r.Resolve(context.Background(), url)

	assertTrue(t, "first resolved", ok1)
	assertTrue(t, "second resolved", ok2)
	assertEquals(t, "same data uri", first, second)
	assertEquals(t, "requests", 1, fake.Requests("/players/231747.png"))

	stats := r.Stats()
	assertEquals(t, "hits", int64(1), stats.Hits)
	assertEquals(t, "misses", int64(1), stats.Misses)
	assertEquals(t, "fetches", int64(1), stats.Fetches)
	assertEquals(t, "entries", 1, stats.Entries)
}

func TestResolve_memoizesFailure(t *testing.T) {
	fake := testutils.NewFakeImageServer()
	defer fake.Close()

	r := NewForTest(fake.Client())
	url := fake.URL() + "/missing/1.png"

	for i := 0; i < 3; i++ {
		_, ok := r.Resolve(context.Background(), url)
		assertTrue(t, "absent", !ok)
	}
	assertEquals(t, "requests", 1, fake.Requests("/missing/1.png"))
}

func TestResolve_keyIsExactURL(t *testing.T) {
	fake := testutils.NewFakeImageServer()
	defer fake.Close()

	r := NewForTest(fake.Client())

	r.Resolve(context.Background(), fake.URL()+"/players/1.png")
	r.Resolve(context.Background(), fake.URL()+"/players/1.png?v=2")

	assertEquals(t, "requests", 2, fake.Requests("/players/1.png"))
	assertEquals(t, "entries", 2, r.Stats().Entries)
}

func TestResolve_concurrentCallsFetchOnce(t *testing.T) {
	fake := testutils.NewFakeImageServer()
	defer fake.Close()

	r := NewForTest(fake.Client())
	url := fake.URL() + "/slow/1.png"

	wg := &sync.WaitGroup{}
	results := make([]string, 10)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = r.Resolve(context.Background(), url)
		}()
	}
	wg.Wait()

	assertEquals(t, "requests", 1, fake.Requests("/slow/1.png"))
	for i, res := range results {
		assertTrue(t, fmt.Sprintf("result %d resolved", i), res != "")
		assertEquals(t, fmt.Sprintf("result %d", i), results[0], res)
	}
}

func TestResolve_cancelledCallerDoesNotCacheFailure(t *testing.T) {
	fake := testutils.NewFakeImageServer()
	defer fake.Close()

	r := NewForTest(fake.Client())
	url := fake.URL() + "/slow/2.png"

	ctx, cancel := context.WithTimeout(context.Background(), testutils.SlowDelay/4)
	defer cancel()

	_, ok := r.Resolve(ctx, url)
	assertTrue(t, "cancelled caller gets nothing", !ok)

	// The fetch started by the cancelled caller finishes and is cached.
	got, ok := r.Resolve(context.Background(), url)
	assertTrue(t, "resolved", ok && got != "")
	assertEquals(t, "requests", 1, fake.Requests("/slow/2.png"))
}

func TestResolveAll(t *testing.T) {
	fake := testutils.NewFakeImageServer()
	defer fake.Close()

	r := NewForTest(fake.Client())

	photo := fake.URL() + "/players/1.png"
	flag := fake.URL() + "/flags/2.png"
	missing := fake.URL() + "/missing/3.png"

	got := r.ResolveAll(context.Background(), []string{photo, flag, missing, photo, "", "nan"})

	assertEquals(t, "resolved", 2, len(got))
	assertTrue(t, "photo", got[photo] != "")
	assertTrue(t, "flag", got[flag] != "")
	_, found := got[missing]
	assertTrue(t, "missing image left out", !found)
	assertEquals(t, "photo requests", 1, fake.Requests("/players/1.png"))
	assertEquals(t, "requests", 3, fake.TotalRequests())
}

func TestNew_maxEntriesEvictsLeastRecentlyUsed(t *testing.T) {
	fake := testutils.NewFakeImageServer()
	defer fake.Close()

	res, err := New(Options{MaxEntries: 2})
	assertFatalf(t, err == nil, "unexpected error: %v", err)
	r := res.(*client)
	r.httpClient = fake.Client()

	ctx := context.Background()
	a := fake.URL() + "/players/a.png"
	b := fake.URL() + "/players/b.png"
	c := fake.URL() + "/players/c.png"

	r.Resolve(ctx, a)
	r.Resolve(ctx, b)
	r.Resolve(ctx, a) // a is now the most recently used
	r.Resolve(ctx, c) // evicts b

	assertEquals(t, "entries", 2, r.Stats().Entries)

	r.Resolve(ctx, a)
	r.Resolve(ctx, b)

	assertEquals(t, "requests for a", 1, fake.Requests("/players/a.png"))
	assertEquals(t, "requests for b", 2, fake.Requests("/players/b.png"))
}

func TestNew_options(t *testing.T) {
	res, err := New(Options{})
	assertFatalf(t, err == nil, "unexpected error: %v", err)
	assertEquals(t, "default timeout", DefaultTimeout, res.(*client).httpClient.Timeout)
	assertEquals(t, "max bytes", int64(MaxImageSize), res.(*client).maxBytes)

	res, err = New(Options{Timeout: 3 * time.Second})
	assertFatalf(t, err == nil, "unexpected error: %v", err)
	assertEquals(t, "timeout", 3*time.Second, res.(*client).httpClient.Timeout)

	_, err = New(Options{MaxEntries: -1})
	assertTrue(t, "negative max entries", err != nil)
}

func TestIsImageURL(t *testing.T) {
	tests := map[string]bool{
		"https://cdn.sofifa.net/players/158/023/23_60.png": true,
		"http://cdn.sofifa.net/flags/ar.png":               true,
		"HTTP://cdn.sofifa.net/flags/ar.png":               true,
		"":                                                 false,
		"nan":                                              false,
		"mailto:someone@example.com":                       false,
		"https:///no-host.png":                             false,
	}

	for url, want := range tests {
		if got := isImageURL(url); got != want {
			t.Errorf("isImageURL(%q) - expected: %v, got: %v", url, want, got)
		}
	}
}

func assertFatalf(t *testing.T, c bool, f string, args ...any) {
	t.Helper()
	if !c {
		t.Fatalf(f, args...)
	}
}

func assertEquals(t *testing.T, field string, expected, actual any) {
	t.Helper()
	if expected != actual {
		t.Errorf("%s - expected: '%v', got: '%v'", field, expected, actual)
	}
}

func assertTrue(t *testing.T, field string, cond bool) {
	t.Helper()
	if !cond {
		t.Errorf("%s - expected to be true but it was false", field)
	}
}
