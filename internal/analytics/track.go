package analytics

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio-guide/internal/catalog"
	"github.com/Zachkp/portfolio-guide/internal/logger"
)

// RandomToken returns 32 random bytes, hex encoded.
func RandomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Hasher maps visitor addresses to stable, salted identifiers.
type Hasher struct {
	salt string
}

// NewHasher draws a fresh per-process salt.
func NewHasher() (*Hasher, error) {
	salt, err := RandomToken()
	if err != nil {
		return nil, err
	}
	return &Hasher{salt: salt}, nil
}

// Hash returns the first 16 hex characters of sha256(ip + salt).
func (h *Hasher) Hash(ip string) string {
	sum := sha256.Sum256([]byte(ip + h.salt))
	return hex.EncodeToString(sum[:])[:16]
}

// Recorder is the write side of the analytics store.
type Recorder interface {
	RecordPageView(ctx context.Context, v PageView) error
	RecordProjectView(ctx context.Context, v ProjectView) error
}

var untrackedPrefixes = []string{
	"/static/",
	"/images/",
	"/admin",
	"/api/",
	"/healthcheck",
	"/favicon",
	"/chart.",
	"/theme/",
	"/projects",
}

// Tracked reports whether a request path counts as a page view.
func Tracked(path string) bool {
	for _, prefix := range untrackedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return true
}

const recordTimeout = 5 * time.Second

// Tracker records views in the background.
type Tracker struct {
	rec    Recorder
	hasher *Hasher
	log    *logger.Logger
	wg     sync.WaitGroup
}

func NewTracker(rec Recorder, hasher *Hasher, log *logger.Logger) *Tracker {
	return &Tracker{rec: rec, hasher: hasher, log: log}
}

// Middleware records GET page views that were served successfully. Requests
// with "DNT: 1" are skipped.
func (t *Tracker) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.Request.URL.Path
		if c.Request.Method != http.MethodGet || c.Writer.Status() >= http.StatusBadRequest || !Tracked(path) || doNotTrack(c) {
			return
		}
		view := PageView{
			HashedIP:  t.hasher.Hash(c.ClientIP()),
			UserAgent: c.GetHeader("User-Agent"),
			Path:      path,
			Timestamp: start,
		}
		t.async(func(ctx context.Context) error { return t.rec.RecordPageView(ctx, view) })
	}
}

// ProjectViewed records that the detail dialog was opened for p.
func (t *Tracker) ProjectViewed(c *gin.Context, p catalog.Project) {
	if doNotTrack(c) {
		return
	}
	view := ProjectView{
		ProjectID:   p.ID,
		ProjectName: p.Name,
		HashedIP:    t.hasher.Hash(c.ClientIP()),
		Timestamp:   time.Now(),
	}
	t.async(func(ctx context.Context) error { return t.rec.RecordProjectView(ctx, view) })
}

// HashIP exposes the tracker's hasher for log fields.
func (t *Tracker) HashIP(ip string) string {
	return t.hasher.Hash(ip)
}

// Wait blocks until in-flight recordings finish.
func (t *Tracker) Wait() {
	t.wg.Wait()
}

func (t *Tracker) async(fn func(ctx context.Context) error) {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			t.log.Warn("analytics record failed", "error", err)
		}
	}()
}

func doNotTrack(c *gin.Context) bool {
	return c.GetHeader("DNT") == "1"
}

// Cleaner is the retention side of the analytics store.
type Cleaner interface {
	Cleanup(ctx context.Context, retention time.Duration) (int64, error)
}

// RunRetention deletes expired views now and then every interval until ctx
// is done.
func RunRetention(ctx context.Context, c Cleaner, retention, interval time.Duration, log *logger.Logger) {
	sweep := func() {
		n, err := c.Cleanup(ctx, retention)
		if err != nil {
			log.Error("analytics cleanup failed", "error", err)
			return
		}
		if n > 0 {
			log.Info("analytics cleanup", "removed", n, "retention", retention.String())
		}
	}
	sweep()
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sweep()
		}
	}
}
