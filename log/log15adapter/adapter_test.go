package log15adapter_test

import (
	"context"
	"testing"

	"github.com/pgfield/pgfield/log/log15adapter"
	"github.com/pgfield/pgfield/tracelog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	log15 "gopkg.in/inconshreveable/log15.v2"
)

func TestLogger(t *testing.T) {
	var records []*log15.Record
	l := log15.New()
	l.SetHandler(log15.FuncHandler(func(r *log15.Record) error {
		records = append(records, r)
		return nil
	}))

	logger := log15adapter.NewLogger(l)
	logger.Log(context.Background(), tracelog.LogLevelInfo, "hello", map[string]any{"b": 2, "a": 1})
	logger.Log(context.Background(), tracelog.LogLevelTrace, "detail", nil)
	logger.Log(context.Background(), tracelog.LogLevelError, "failed", nil)

	require.Len(t, records, 3)

	assert.Equal(t, "hello", records[0].Msg)
	assert.Equal(t, log15.LvlInfo, records[0].Lvl)
	assert.Equal(t, []interface{}{"a", 1, "b", 2}, records[0].Ctx)

	assert.Equal(t, log15.LvlDebug, records[1].Lvl)
	assert.Equal(t, []interface{}{"PGFIELD_LOG_LEVEL", tracelog.LogLevelTrace}, records[1].Ctx)

	assert.Equal(t, log15.LvlError, records[2].Lvl)
}
