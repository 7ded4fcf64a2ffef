package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"

	"github.com/gottaspeak/backend/internal/config"
)

const lessonFixture = `---
title: "Ordering food"
level: B1
---
# Warm-up

Talk about your favourite meal.

---

# Dialogue

Read the dialogue aloud.
`

func writeLesson(t *testing.T, dir, relPath, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func newLocalCourseService(t *testing.T, dir string) *CourseService {
	t.Helper()
	svc := NewCourseService(config.CoursesConfig{
		Source:      "local",
		LocalDir:    dir,
		CacheTTLSec: 1,
	}, zap.NewNop())
	t.Cleanup(svc.Stop)
	return svc
}

func TestGetLessonParsesFrontMatterAndSteps(t *testing.T) {
	dir := t.TempDir()
	writeLesson(t, dir, "B1/unit-02/lesson-05.md", lessonFixture)
	svc := newLocalCourseService(t, dir)

	lesson, err := svc.GetLesson(context.Background(), "B1", "2", "5")
	if err != nil {
		t.Fatalf("get lesson: %v", err)
	}
	if lesson.Meta["title"] != "Ordering food" {
		t.Errorf("title = %q", lesson.Meta["title"])
	}
	if lesson.Meta["level"] != "B1" {
		t.Errorf("level = %q", lesson.Meta["level"])
	}
	if len(lesson.Steps) != 2 {
		t.Fatalf("steps = %d, want 2", len(lesson.Steps))
	}
	if lesson.Steps[1] != "# Dialogue\n\nRead the dialogue aloud." {
		t.Errorf("step 2 = %q", lesson.Steps[1])
	}
}

func TestGetLessonFallsBackToUnpaddedPath(t *testing.T) {
	dir := t.TempDir()
	writeLesson(t, dir, "A2/unit-3/lesson-7.md", "Just one step.")
	svc := newLocalCourseService(t, dir)

	lesson, err := svc.GetLesson(context.Background(), "A2", "3", "7")
	if err != nil {
		t.Fatalf("get lesson: %v", err)
	}
	if len(lesson.Steps) != 1 || lesson.Steps[0] != "Just one step." {
		t.Errorf("steps = %v", lesson.Steps)
	}
}

func TestGetLessonMissing(t *testing.T) {
	svc := newLocalCourseService(t, t.TempDir())

	_, err := svc.GetLesson(context.Background(), "C1", "1", "1")
	if code := errCode(t, err); code != "NOT_FOUND" {
		t.Fatalf("code = %q, want NOT_FOUND", code)
	}
}

func TestGetLessonRequiresCoordinates(t *testing.T) {
	svc := newLocalCourseService(t, t.TempDir())

	_, err := svc.GetLesson(context.Background(), "B1", "", "1")
	if code := errCode(t, err); code != "VALIDATION_FAILED" {
		t.Fatalf("code = %q, want VALIDATION_FAILED", code)
	}
}

func TestGetLessonGitHubModeCaches(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if r.URL.Path != "/gottaspeak/courses/main/content/B1/unit-10/lesson-12.md" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("Step one.\n\n---\n\nStep two."))
	}))
	defer server.Close()

	svc := NewCourseService(config.CoursesConfig{
		Source:       "github",
		GitHubOwner:  "gottaspeak",
		GitHubRepo:   "courses",
		GitHubBranch: "main",
		GitHubDir:    "content",
		CacheTTLSec:  60,
	}, zap.NewNop())
	t.Cleanup(svc.Stop)
	svc.rawBase = server.URL

	for i := 0; i < 2; i++ {
		lesson, err := svc.GetLesson(context.Background(), "B1", "10", "12")
		if err != nil {
			t.Fatalf("get lesson (call %d): %v", i+1, err)
		}
		if len(lesson.Steps) != 2 {
			t.Fatalf("steps = %d, want 2", len(lesson.Steps))
		}
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("upstream hits = %d, want 1 (second read served from cache)", got)
	}
}

func TestSplitFrontMatter(t *testing.T) {
	meta, body := splitFrontMatter("---\nkey: value\nother: \"quoted\"\n---\nbody text")
	if meta["key"] != "value" {
		t.Errorf("key = %q", meta["key"])
	}
	if meta["other"] != "quoted" {
		t.Errorf("other = %q", meta["other"])
	}
	if body != "body text" {
		t.Errorf("body = %q", body)
	}

	meta, body = splitFrontMatter("no front matter here")
	if len(meta) != 0 {
		t.Errorf("meta = %v, want empty", meta)
	}
	if body != "no front matter here" {
		t.Errorf("body = %q", body)
	}
}

func TestPad2(t *testing.T) {
	cases := map[string]string{"2": "02", "9": "09", "10": "10", "abc": "abc"}
	for in, want := range cases {
		if got := pad2(in); got != want {
			t.Errorf("pad2(%q) = %q, want %q", in, got, want)
		}
	}
}
