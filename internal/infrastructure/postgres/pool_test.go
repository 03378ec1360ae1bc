package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Faturacao-api/pkg/config"
)

func TestPoolConfig_ParametrosDeSesion(t *testing.T) {
	pc, err := poolConfig(config.DBConfig{
		DatabaseURL: "postgres://u:p@db.local:5432/faturacao?sslmode=disable",
		MaxConns:    8,
	})
	require.NoError(t, err)

	assert.Equal(t, "UTC", pc.ConnConfig.RuntimeParams["timezone"])
	assert.Equal(t, applicationName, pc.ConnConfig.RuntimeParams["application_name"])
	assert.EqualValues(t, 8, pc.MaxConns)
	assert.EqualValues(t, 1, pc.MinConns)
	assert.Equal(t, time.Hour, pc.MaxConnLifetime)
	assert.NotNil(t, pc.AfterConnect)
	assert.Equal(t, "db.local", pc.ConnConfig.Host)
	assert.Equal(t, "faturacao", pc.ConnConfig.Database)
}

func TestPoolConfig_DSNDesdeCampos(t *testing.T) {
	pc, err := poolConfig(config.DBConfig{
		Host: "localhost", Port: 5433, User: "fat", Password: "p@ss:word", DBName: "fat", SSLMode: "disable",
		ForceIPv4: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "localhost", pc.ConnConfig.Host)
	assert.EqualValues(t, 5433, pc.ConnConfig.Port)
	assert.Equal(t, "p@ss:word", pc.ConnConfig.Password)
	assert.NotNil(t, pc.ConnConfig.DialFunc)
}

func TestPoolConfig_DSNInvalido(t *testing.T) {
	_, err := poolConfig(config.DBConfig{DatabaseURL: "postgres://u:p@host:puerto/db"})
	assert.Error(t, err)
}
