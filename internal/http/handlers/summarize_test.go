package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"devboard/internal/domain"

	"github.com/gin-gonic/gin"
)

func TestSummarizeRequiresText(t *testing.T) {
	e := newTestEnv(t)
	token := e.signupAndLogin(t, "a@b.c", "pw")

	if w := e.do("POST", "/summarize", token, gin.H{"format": "bullets"}); w.Code != 400 {
		t.Errorf("status %d, want 400", w.Code)
	}
}

func TestSummarizePassesThrough(t *testing.T) {
	e := newTestEnv(t)
	token := e.signupAndLogin(t, "a@b.c", "pw")
	e.summarizer.summary = "short version"

	w := e.do("POST", "/summarize", token, gin.H{"text": "a very long text", "format": "one sentence"})
	if w.Code != 200 {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Summary != "short version" {
		t.Errorf("summary = %q", resp.Summary)
	}
	if e.summarizer.gotText != "a very long text" || e.summarizer.gotFmt != "one sentence" {
		t.Errorf("summarizer got (%q, %q)", e.summarizer.gotText, e.summarizer.gotFmt)
	}
}

func TestSummarizeSurfacesUpstreamFailure(t *testing.T) {
	e := newTestEnv(t)
	token := e.signupAndLogin(t, "a@b.c", "pw")
	e.summarizer.err = &domain.UpstreamError{Service: "openai", StatusCode: http.StatusTooManyRequests, Body: "rate limited"}

	w := e.do("POST", "/summarize", token, gin.H{"text": "text"})
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("status %d, want 429", w.Code)
	}
}
