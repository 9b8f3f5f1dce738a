package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("JK_EMPTY", "")
	t.Setenv("JK_SET", "x")

	assert.Equal(t, "d", GetEnv("JK_EMPTY", "d"))
	assert.Equal(t, "x", GetEnv("JK_SET", "d"))
	assert.Equal(t, "", GetEnv("JK_MISSING"))
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("JK_NUM", "42")
	t.Setenv("JK_BAD", "empat")

	assert.Equal(t, 42, GetEnvInt("JK_NUM", 1))
	assert.Equal(t, 7, GetEnvInt("JK_BAD", 7))
	assert.Equal(t, 9, GetEnvInt("JK_MISSING_NUM", 9))
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("JK_LIST", " https://a.id , ,https://b.id")
	assert.Equal(t, []string{"https://a.id", "https://b.id"}, GetEnvList("JK_LIST"))
	assert.Nil(t, GetEnvList("JK_MISSING_LIST"))
}

func TestDSN(t *testing.T) {
	cfg := AppConfig{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5432", DBName: "jurnal", DBSSLMode: "disable"}
	assert.Equal(t,
		"postgres://u:p@h:5432/jurnal?sslmode=disable&application_name=jurnalku&options=-c%20statement_timeout%3D3000",
		cfg.DSN())
}

func TestNewLogger(t *testing.T) {
	log, err := NewLogger("debug")
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))

	log, err = NewLogger("")
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))

	_, err = NewLogger("verbose")
	assert.Error(t, err)
}
