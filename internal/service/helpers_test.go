package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"shorturl-analytics/internal/model"
	"shorturl-analytics/internal/repository"
	"shorturl-analytics/pkg/database"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

const testBaseURL = "http://localhost:3000"

func setupStore(t *testing.T) (*repository.LinkRepository, *gorm.DB) {
	t.Helper()

	db, err := database.InitSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	return repository.NewLinkRepository(db), db
}

func testLogger(t *testing.T) Logger {
	return zaptest.NewLogger(t).Sugar()
}

// fixedClock 每次调用前进 step
type fixedClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// sequenceGenerator 依次返回预设的短码，用完后重复最后一个
type sequenceGenerator struct {
	mu    sync.Mutex
	codes []string
	calls int
}

func (g *sequenceGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	i := g.calls
	if i >= len(g.codes) {
		i = len(g.codes) - 1
	}
	g.calls++
	return g.codes[i]
}

func (g *sequenceGenerator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

// blindStore 预检查总是报告短码可用，用来模拟检查和写入之间的竞争
type blindStore struct {
	*repository.LinkRepository
}

func (blindStore) Exists(context.Context, string) (bool, error) { return false, nil }

func countRows(t *testing.T, db *gorm.DB, m interface{}, code string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(m).Where("shortcode = ?", code).Count(&n).Error)
	return n
}

func seedLink(t *testing.T, repo *repository.LinkRepository, code string, createdAt time.Time) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &model.ShortURL{
		Shortcode:   code,
		OriginalURL: "https://example.com/" + code,
		CreatedAt:   createdAt,
		Expiry:      createdAt.Add(30 * time.Minute),
	}))
}
