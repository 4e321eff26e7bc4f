package core

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestNewConfig_defaults(t *testing.T) {
	conf := newConfig("DEV", viper.New())

	assert.Equal(t, "EduForum", conf.AppName)
	assert.True(t, conf.Debug)
	assert.False(t, conf.TestMode)
	assert.Equal(t, ":8000", conf.Server.Address)
	assert.Equal(t, 5*time.Second, conf.Server.ShutdownTimeout)
	assert.Equal(t, 7*24*time.Hour, conf.Server.JWTExpirationDelta)
	assert.Equal(t, "64K", conf.Server.BodyLimit)
	assert.Equal(t, "postgres", conf.Database.Engine)
	assert.Equal(t, "localhost:5432", conf.Database.Address())
	assert.Equal(t, 50, conf.Chat.HistoryLimit)
	assert.Equal(t, 1000, conf.Chat.MaxMessageLength)
}

func TestNewConfig_env(t *testing.T) {
	t.Setenv("EDUFORUM_SERVER_ADDRESS", ":9000")
	t.Setenv("EDUFORUM_SERVER_SHUTDOWNTIMEOUT", "10s")
	t.Setenv("EDUFORUM_DATABASE_PORT", "6543")
	t.Setenv("EDUFORUM_CHAT_HISTORYLIMIT", "20")
	t.Setenv("EDUFORUM_DEBUG", "true")

	conf := newConfig("PROD", viper.New())

	assert.Equal(t, "PROD", conf.Env)
	assert.True(t, conf.Debug)
	assert.Equal(t, ":9000", conf.Server.Address)
	assert.Equal(t, 10*time.Second, conf.Server.ShutdownTimeout)
	assert.Equal(t, 6543, conf.Database.Port)
	assert.Equal(t, 20, conf.Chat.HistoryLimit)
}

func TestNewTestConfig(t *testing.T) {
	conf := NewTestConfig()

	assert.Equal(t, "TEST", conf.Env)
	assert.False(t, conf.Debug)
	assert.True(t, conf.TestMode)
	assert.Equal(t, "sqlite", conf.Database.Engine)
	assert.Equal(t, ":memory:", conf.Database.Name)
	assert.True(t, conf.Server.DisableReqLogs)
}
