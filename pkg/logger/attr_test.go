package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/workersession/pkg/logger"
)

func TestAttrs(t *testing.T) {
	t.Parallel()

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
	assert.Equal(t, "error", logger.Error(errors.New("x")).Key)

	assert.True(t, logger.Errors(nil, nil).Equal(slog.Attr{}))
	errs := logger.Errors(nil, errors.New("a"), errors.New("b"))
	assert.Equal(t, "errors", errs.Key)
	assert.Len(t, errs.Value.Group(), 2)

	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
	assert.Equal(t, "abc", logger.RequestID("abc").Value.String())

	assert.Equal(t, int64(2), logger.WorkerID(2).Value.Int64())
	assert.Equal(t, uint64(10), logger.Jobs(10).Value.Uint64())
	assert.Equal(t, "redis", logger.Store("redis").Value.String())
	assert.Equal(t, "active", logger.SessionStatus("active").Value.String())
	assert.Equal(t, time.Second, logger.Duration(time.Second).Value.Duration())

	g := logger.Group("req", logger.Component("worker"), logger.Event("recycle"))
	assert.Equal(t, slog.KindGroup, g.Value.Kind())
	assert.Len(t, g.Value.Group(), 2)
}
