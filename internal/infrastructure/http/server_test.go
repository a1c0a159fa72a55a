package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/aimcourse/ragdemo/internal/adapters/catalog"
	"github.com/aimcourse/ragdemo/internal/adapters/resolver"
	"github.com/aimcourse/ragdemo/internal/domain/entities"
)

type failingResolver struct{}

func (failingResolver) Resolve(ctx context.Context, query string) (*entities.QueryResult, error) {
	return nil, errors.New("backend down")
}

// blockingResolver holds every resolution until release is closed.
type blockingResolver struct {
	started chan struct{}
	release chan struct{}
}

func (r *blockingResolver) Resolve(ctx context.Context, query string) (*entities.QueryResult, error) {
	r.started <- struct{}{}
	select {
	case <-r.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return &entities.QueryResult{
		Query:      query,
		AnswerText: "held answer",
		Sources:    []entities.SourceCitation{{Text: "passage", Score: 0.5}},
	}, nil
}

func newTestServer(t *testing.T) (*httptest.Server, *http.Client, *catalog.Store) {
	t.Helper()
	store := catalog.NewStore(nil)
	srv, err := NewServer(resolver.NewLocalCannedResolver(store, 0), store, Options{})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	jar, _ := cookiejar.New(nil)
	return ts, &http.Client{Jar: jar}, store
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}

func getPage(t *testing.T, client *http.Client, base string) string {
	t.Helper()
	resp, err := client.Get(base + "/")
	if err != nil {
		t.Fatalf("get page: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	return readBody(t, resp)
}

func TestServer_IndexRendersOneActiveSlide(t *testing.T) {
	ts, client, _ := newTestServer(t)

	page := getPage(t, client, ts.URL)

	if n := strings.Count(page, `class="slide active"`); n != 1 {
		t.Errorf("expected exactly one active slide, got %d", n)
	}
	if !strings.Contains(page, `<span id="slide-indicator">1 / 4</span>`) {
		t.Error("indicator should start at 1 / 4")
	}
	if !strings.Contains(page, "Distance Metric Comparison on Same Query") {
		t.Error("chart title missing")
	}
	if strings.Count(page, `<rect class="bar"`) != 5 {
		t.Error("expected 5 chart bars")
	}
	if strings.Contains(page, `class="results visible"`) {
		t.Error("results should be hidden before any query")
	}
}

func TestServer_SubmitRendersResult(t *testing.T) {
	ts, client, _ := newTestServer(t)

	resp, err := client.PostForm(ts.URL+"/query", url.Values{"query": {"Who is Michael Eisner?"}})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	page := readBody(t, resp)

	if !strings.Contains(page, `class="results visible"`) {
		t.Error("results should be visible after a query")
	}
	if !strings.Contains(page, "94.0%") {
		t.Error("score should be rendered as a percentage")
	}
	if strings.Contains(page, "Page:") {
		t.Error("eisner sources have no pages")
	}
	if strings.Count(page, `<li class="citation">`) != 3 {
		t.Error("expected three citations")
	}
}

func TestServer_EmptySubmitShowsAlertOnce(t *testing.T) {
	ts, client, _ := newTestServer(t)

	resp, err := client.PostForm(ts.URL+"/query", url.Values{"query": {"   "}})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	page := readBody(t, resp)
	if !strings.Contains(page, "Please enter a question!") {
		t.Error("validation alert missing")
	}

	if strings.Contains(getPage(t, client, ts.URL), "Please enter a question!") {
		t.Error("alert should only be shown once")
	}
}

func TestServer_AnswerIsEscaped(t *testing.T) {
	ts, client, store := newTestServer(t)
	c := store.Snapshot()
	c.Fallback.Answer = "<script>alert(1)</script>"
	store.Replace(c)

	resp, err := client.PostForm(ts.URL+"/query", url.Values{"query": {"hello"}})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	page := readBody(t, resp)
	if strings.Contains(page, "<script>alert(1)</script>") {
		t.Error("answer must be escaped")
	}
	if !strings.Contains(page, "&lt;script&gt;") {
		t.Error("escaped answer missing")
	}
}

func TestServer_SampleSubmits(t *testing.T) {
	ts, client, _ := newTestServer(t)

	resp, err := client.Post(ts.URL+"/samples/1", "application/x-www-form-urlencoded", nil)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	page := readBody(t, resp)
	if !strings.Contains(page, "rag_survey_paper.pdf") || !strings.Contains(page, "Page: 5") {
		t.Error("rag components result should be rendered")
	}

	resp, err = client.Post(ts.URL+"/samples/9", "application/x-www-form-urlencoded", nil)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown sample should 404, got %d", resp.StatusCode)
	}
}

func TestServer_SlideNavigationWraps(t *testing.T) {
	ts, client, _ := newTestServer(t)
	getPage(t, client, ts.URL)

	post := func(path string) string {
		resp, err := client.Post(ts.URL+path, "application/x-www-form-urlencoded", nil)
		if err != nil {
			t.Fatalf("post %s: %v", path, err)
		}
		return readBody(t, resp)
	}

	page := post("/slides/prev")
	if !strings.Contains(page, `<span id="slide-indicator">4 / 4</span>`) {
		t.Error("previous from first should wrap to last")
	}
	page = post("/slides/next")
	if !strings.Contains(page, `<span id="slide-indicator">1 / 4</span>`) {
		t.Error("next from last should wrap to first")
	}
	page = post("/slides/3")
	if !strings.Contains(page, `<span id="slide-indicator">3 / 4</span>`) {
		t.Error("goto should jump to slide 3")
	}
	if !strings.Contains(page, `class="slide active" data-slide="3"`) {
		t.Error("slide 3 should be the active one")
	}
}

func TestServer_SlidesRespondWhileQueryResolves(t *testing.T) {
	store := catalog.NewStore(nil)
	qr := &blockingResolver{started: make(chan struct{}, 1), release: make(chan struct{})}
	srv, err := NewServer(qr, store, Options{})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	jar, _ := cookiejar.New(nil)
	client := &http.Client{Jar: jar, Timeout: 5 * time.Second}
	getPage(t, client, ts.URL)

	submitted := make(chan string, 1)
	go func() {
		resp, err := client.PostForm(ts.URL+"/query", url.Values{"query": {"held question"}})
		if err != nil {
			submitted <- ""
			return
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		submitted <- string(body)
	}()

	select {
	case <-qr.started:
	case <-time.After(2 * time.Second):
		t.Fatal("query never reached the resolver")
	}

	fast := &http.Client{Jar: jar, Timeout: time.Second}
	resp, err := fast.Post(ts.URL+"/slides/next", "application/x-www-form-urlencoded", nil)
	if err != nil {
		close(qr.release)
		t.Fatalf("slide navigation blocked behind the query: %v", err)
	}
	page := readBody(t, resp)
	if !strings.Contains(page, `<span id="slide-indicator">2 / 4</span>`) {
		t.Error("next should advance to slide 2 while the query is pending")
	}

	close(qr.release)
	select {
	case body := <-submitted:
		if !strings.Contains(body, "held answer") {
			t.Error("released query should render its answer")
		}
		if !strings.Contains(body, `<span id="slide-indicator">2 / 4</span>`) {
			t.Error("slide position should survive the query")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("query did not finish after release")
	}
}

func TestServer_SessionsAreIndependent(t *testing.T) {
	ts, first, _ := newTestServer(t)
	jar, _ := cookiejar.New(nil)
	second := &http.Client{Jar: jar}

	resp, err := first.Post(ts.URL+"/slides/next", "application/x-www-form-urlencoded", nil)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	readBody(t, resp)

	if !strings.Contains(getPage(t, second, ts.URL), "1 / 4") {
		t.Error("second session should start on slide 1")
	}
}

func postJSON(t *testing.T, url, body string) (int, map[string]interface{}) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp.StatusCode, out
}

func TestAPI_Query(t *testing.T) {
	ts, _, _ := newTestServer(t)

	status, body := postJSON(t, ts.URL+"/api/query", `{"query":"what are rag components"}`)
	if status != http.StatusOK {
		t.Fatalf("unexpected status %d", status)
	}
	if body["query"] != "what are rag components" {
		t.Errorf("query not echoed: %v", body["query"])
	}
	sources, _ := body["sources"].([]interface{})
	if len(sources) != 3 {
		t.Errorf("expected 3 sources, got %d", len(sources))
	}

	status, body = postJSON(t, ts.URL+"/api/query", `{"query":"  "}`)
	if status != http.StatusBadRequest || body["error"] != "query required" {
		t.Errorf("empty query: %d %v", status, body)
	}
}

func TestAPI_QueryResolutionError(t *testing.T) {
	srv, err := NewServer(failingResolver{}, catalog.NewStore(nil), Options{})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	status, body := postJSON(t, ts.URL+"/api/query", `{"query":"hello"}`)
	if status != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", status)
	}
	if msg, _ := body["error"].(string); !strings.Contains(msg, "backend down") {
		t.Errorf("unexpected error body: %v", body)
	}
}

func TestAPI_RAGActions(t *testing.T) {
	ts, _, _ := newTestServer(t)

	status, body := postJSON(t, ts.URL+"/api/rag", `{"action":"query","query":"hello","k":2}`)
	if status != http.StatusOK {
		t.Fatalf("unexpected status %d", status)
	}
	if sources, _ := body["sources"].([]interface{}); len(sources) != 2 {
		t.Errorf("k should truncate sources, got %d", len(sources))
	}
	if body["response"] == "" {
		t.Error("response missing")
	}

	status, body = postJSON(t, ts.URL+"/api/rag", `{"action":"get_sample_queries"}`)
	if samples, _ := body["samples"].([]interface{}); status != http.StatusOK || len(samples) != 5 {
		t.Errorf("samples: %d %v", status, body)
	}

	status, body = postJSON(t, ts.URL+"/api/rag", `{"action":"delete_everything"}`)
	if status != http.StatusBadRequest || body["error"] != "Invalid action" {
		t.Errorf("invalid action: %d %v", status, body)
	}

	status, _ = postJSON(t, ts.URL+"/api/rag", `{"action":`)
	if status != http.StatusBadRequest {
		t.Errorf("malformed body should 400, got %d", status)
	}
}

func TestAPI_HealthAndCORS(t *testing.T) {
	ts, _, _ := newTestServer(t)

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/health", nil)
	req.Header.Set("Origin", "http://example.com")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, `"status":"ok"`) {
		t.Errorf("unexpected health body: %s", body)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected CORS *, got %q", got)
	}
}

func TestSessionManager_PrunesIdleSessions(t *testing.T) {
	store := catalog.NewStore(nil)
	m := newSessionManager(resolver.NewLocalCannedResolver(store, 0), store, 1, time.Minute)
	now := time.Now()
	m.now = func() time.Time { return now }

	old, _, err := m.get("")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	now = now.Add(2 * time.Minute)
	if _, created, _ := m.get("not-a-uuid"); !created {
		t.Error("invalid id should create a session")
	}
	if m.count() != 1 {
		t.Errorf("idle session should be pruned, have %d", m.count())
	}
	if again, created, _ := m.get(old.id); !created || again == old {
		t.Error("pruned session should not be reused")
	}
}

func TestSessionManager_EvictsOldestAtLimit(t *testing.T) {
	store := catalog.NewStore(nil)
	m := newSessionManager(resolver.NewLocalCannedResolver(store, 0), store, 1, time.Hour)
	m.limit = 2
	now := time.Now()
	m.now = func() time.Time { return now }

	first, _, _ := m.get("")
	now = now.Add(time.Second)
	second, _, _ := m.get("")
	now = now.Add(time.Second)
	if _, created, _ := m.get(first.id); created {
		t.Fatal("first session should still be live")
	}
	now = now.Add(time.Second)
	if _, created, _ := m.get(""); !created {
		t.Fatal("expected a new session")
	}

	if m.count() != 2 {
		t.Errorf("session count should stay at the limit, have %d", m.count())
	}
	if _, created, _ := m.get(second.id); !created {
		t.Error("least recently seen session should have been evicted")
	}
}

func TestSessionManager_ContentReloadResizesSlideshow(t *testing.T) {
	store := catalog.NewStore(nil)
	m := newSessionManager(resolver.NewLocalCannedResolver(store, 0), store, 1, 0)
	sess, _, _ := m.get("")

	c := store.Snapshot()
	c.Slides = c.Slides[:2]
	store.Replace(c)

	if err := m.syncContent(sess); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if sess.slides.Total() != 2 {
		t.Errorf("expected 2 slides, got %d", sess.slides.Total())
	}
}
