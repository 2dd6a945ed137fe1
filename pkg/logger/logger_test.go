package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestSetupLevels(t *testing.T) {
	tests := []struct {
		env        string
		debugShown bool
		infoShown  bool
		json       bool
	}{
		{env: "development", debugShown: true, infoShown: true},
		{env: "production", infoShown: true, json: true},
		{env: "test"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			var buf bytes.Buffer
			SetupWithWriter(tt.env, &buf)

			Debug("debug line")
			assert.Equal(t, tt.debugShown, bytes.Contains(buf.Bytes(), []byte("debug line")))

			buf.Reset()
			Info("info line", "period", "2025-03")
			assert.Equal(t, tt.infoShown, bytes.Contains(buf.Bytes(), []byte("info line")))
			if tt.json && tt.infoShown {
				assert.Contains(t, buf.String(), `"period":"2025-03"`)
			}

			buf.Reset()
			Warn("warn line")
			assert.Contains(t, buf.String(), "warn line")
		})
	}
}

func TestGormLogger_Trace(t *testing.T) {
	var buf bytes.Buffer
	SetupWithWriter("production", &buf)
	l := NewGormLogger(gormlogger.Warn, 100*time.Millisecond)
	sql := func() (string, int64) { return "SELECT * FROM payments", 0 }

	l.Trace(context.Background(), time.Now(), sql, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String(), "record not found is routine")

	l.Trace(context.Background(), time.Now(), sql, errors.New("relation does not exist"))
	assert.Contains(t, buf.String(), "SQL Error")

	buf.Reset()
	l.Trace(context.Background(), time.Now().Add(-time.Second), sql, nil)
	assert.Contains(t, buf.String(), "Slow SQL")

	buf.Reset()
	l.LogMode(gormlogger.Silent).Trace(context.Background(), time.Now(), sql, errors.New("ignored"))
	assert.Empty(t, buf.String())
}
