package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"go.uber.org/zap"

	"github.com/gottaspeak/backend/internal/config"
	apperrors "github.com/gottaspeak/backend/pkg/util"
)

const githubRawBase = "https://raw.githubusercontent.com"

var stepSeparator = regexp.MustCompile(`\n-{3,}\n`)

// LessonContent is one parsed lesson file: front-matter metadata plus the
// `---`-separated step blocks.
type LessonContent struct {
	Meta  map[string]string `json:"meta"`
	Steps []string          `json:"steps"`
}

// CourseService reads lesson markdown from GitHub raw or a local directory,
// memoized for a short window so repeated reads don't hammer the source.
type CourseService struct {
	cfg     config.CoursesConfig
	rawBase string
	client  *http.Client
	cache   *ttlcache.Cache[string, string]
	logger  *zap.Logger
}

// NewCourseService constructs the service and starts its cache janitor.
func NewCourseService(cfg config.CoursesConfig, logger *zap.Logger) *CourseService {
	cache := ttlcache.New(
		ttlcache.WithTTL[string, string](cfg.CacheTTL()),
		ttlcache.WithDisableTouchOnHit[string, string](),
	)
	go cache.Start()

	return &CourseService{
		cfg:     cfg,
		rawBase: githubRawBase,
		client:  &http.Client{Timeout: 15 * time.Second},
		cache:   cache,
		logger:  logger,
	}
}

// GetLesson reads and parses one lesson, trying zero-padded unit/lesson
// directories first, then unpadded ones.
func (s *CourseService) GetLesson(ctx context.Context, level, unit, lesson string) (*LessonContent, error) {
	if level == "" || unit == "" || lesson == "" {
		return nil, apperrors.NewValidationError("level, unit and lesson are required", nil)
	}

	padded := fmt.Sprintf("%s/unit-%s/lesson-%s.md", level, pad2(unit), pad2(lesson))
	plain := fmt.Sprintf("%s/unit-%s/lesson-%s.md", level, unit, lesson)

	raw, err := s.read(ctx, padded)
	if err != nil {
		raw, err = s.read(ctx, plain)
	}
	if err != nil {
		return nil, apperrors.NewNotFound("lesson", map[string]any{"level": level, "unit": unit, "lesson": lesson})
	}

	meta, body := splitFrontMatter(raw)
	steps := stepSeparator.Split(body, -1)
	for i := range steps {
		steps[i] = strings.TrimSpace(steps[i])
	}
	return &LessonContent{Meta: meta, Steps: steps}, nil
}

// Stop shuts down the cache janitor.
func (s *CourseService) Stop() {
	s.cache.Stop()
}

func (s *CourseService) read(ctx context.Context, relPath string) (string, error) {
	if strings.EqualFold(s.cfg.Source, "github") {
		return s.fetchGitHubRaw(ctx, relPath)
	}
	raw, err := os.ReadFile(filepath.Join(s.cfg.LocalDir, filepath.FromSlash(relPath)))
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (s *CourseService) fetchGitHubRaw(ctx context.Context, relPath string) (string, error) {
	url := fmt.Sprintf("%s/%s/%s/%s/%s/%s",
		s.rawBase, s.cfg.GitHubOwner, s.cfg.GitHubRepo, s.cfg.GitHubBranch,
		strings.Trim(s.cfg.GitHubDir, "/"), relPath)

	if item := s.cache.Get(url); item != nil {
		return item.Value(), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	if s.cfg.GitHubToken != "" {
		req.Header.Set("Authorization", "token "+s.cfg.GitHubToken)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("github raw %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	s.cache.Set(url, string(body), ttlcache.DefaultTTL)
	return string(body), nil
}

// splitFrontMatter parses a leading `---` block of `key: value` lines.
func splitFrontMatter(raw string) (map[string]string, string) {
	meta := map[string]string{}
	if !strings.HasPrefix(raw, "---\n") {
		return meta, raw
	}
	rest := raw[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return meta, raw
	}
	for _, line := range strings.Split(rest[:end], "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		meta[strings.TrimSpace(key)] = strings.Trim(strings.TrimSpace(value), `"`)
	}
	body := rest[end+len("\n---"):]
	body = strings.TrimPrefix(body, "\n")
	return meta, body
}

func pad2(n string) string {
	if v, err := strconv.Atoi(n); err == nil && v < 10 && v >= 0 {
		return "0" + strconv.Itoa(v)
	}
	return n
}
