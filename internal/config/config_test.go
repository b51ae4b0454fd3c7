package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MAIN_DB_SCHEMA", "")
	t.Setenv("DB_SCHEMA_ALLOWLIST", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("S3_BUCKET", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "public", cfg.DBSchema)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "files", cfg.Storage.Bucket)
	assert.Equal(t, "https://bucket.poehali.dev", cfg.Storage.Endpoint)
	assert.Equal(t, "https://whiteshishka.com", cfg.SiteURL)
}

func TestLoadRejectsSchemaOutsideAllowList(t *testing.T) {
	t.Setenv("MAIN_DB_SCHEMA", "shop")
	t.Setenv("DB_SCHEMA_ALLOWLIST", "public")

	_, err := Load()
	require.Error(t, err)
}

func TestValidateSchema(t *testing.T) {
	allow := []string{"public", "shop_v2"}

	require.NoError(t, ValidateSchema("shop_v2", allow))
	require.Error(t, ValidateSchema("public; drop table x", allow))
	require.Error(t, ValidateSchema(`"public"`, allow))
	require.Error(t, ValidateSchema("other", allow))
}

func TestSMTPMissing(t *testing.T) {
	s := SMTP{Host: "smtp.example.com", User: "shop@example.com"}
	assert.Equal(t, []string{"SMTP_PORT", "SMTP_PASSWORD"}, s.Missing())
	assert.Empty(t, SMTP{Host: "h", Port: "587", User: "u", Password: "p"}.Missing())
}

func TestCSV(t *testing.T) {
	assert.Nil(t, CSV(""))
	assert.Equal(t, []string{"a:9092", "b:9092"}, CSV(" a:9092, ,b:9092 "))
}
