package config

import (
	"testing"
	"time"

	"github.com/SscSPs/expense_workflow_app/internal/core/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper(values map[string]any) *viper.Viper {
	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("STORE_DRIVER", StoreDriverMemory)
	v.SetDefault("TRANSITION_TIMEOUT", "5s")
	v.SetDefault("FINANCE_APPROVAL_THRESHOLD", "1000.00")
	v.SetDefault("RATE_LIMIT", "100-M")
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(newTestViper(nil))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, 5*time.Second, cfg.TransitionTimeout)
	assert.Equal(t, "1000", cfg.FinanceApprovalThreshold.String())
	assert.Equal(t, defaultJWTSecret, cfg.JWTSecret)
}

func TestFromViper_InvalidValuesFallBack(t *testing.T) {
	cfg, err := fromViper(newTestViper(map[string]any{
		"TRANSITION_TIMEOUT":         "soon",
		"FINANCE_APPROVAL_THRESHOLD": "-3",
	}))
	require.NoError(t, err)

	assert.Equal(t, defaultTransitionTimeout, cfg.TransitionTimeout)
	assert.Equal(t, "1000", cfg.FinanceApprovalThreshold.String())
}

func TestFromViper_StoreDriver(t *testing.T) {
	_, err := fromViper(newTestViper(map[string]any{"STORE_DRIVER": "mongo"}))
	assert.Error(t, err)

	_, err = fromViper(newTestViper(map[string]any{"STORE_DRIVER": "postgres"}))
	assert.ErrorContains(t, err, "PGSQL_URL")

	cfg, err := fromViper(newTestViper(map[string]any{"STORE_DRIVER": "SQLite", "SQLITE_PATH": "/tmp/x.sqlite"}))
	require.NoError(t, err)
	assert.Equal(t, StoreDriverSQLite, cfg.StoreDriver)
}

func TestFromViper_CORSOrigins(t *testing.T) {
	cfg, err := fromViper(newTestViper(map[string]any{
		"CORS_ALLOWED_ORIGINS": "https://a.example, https://b.example,",
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestParseStaticRoles(t *testing.T) {
	roles, err := ParseStaticRoles("alice:manager, bob:finance,carol:manager,carol:Finance")
	require.NoError(t, err)
	assert.Equal(t, []domain.Role{domain.RoleManager}, roles["alice"])
	assert.Equal(t, []domain.Role{domain.RoleFinance}, roles["bob"])
	assert.ElementsMatch(t, []domain.Role{domain.RoleManager, domain.RoleFinance}, roles["carol"])

	empty, err := ParseStaticRoles("")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = ParseStaticRoles("dave")
	assert.Error(t, err)

	_, err = ParseStaticRoles("dave:admin")
	assert.Error(t, err)
}
