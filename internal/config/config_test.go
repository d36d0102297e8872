package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	c := Load()
	if c.AppPort == "" || c.MySQLHost == "" || c.RedisAddr == "" {
		t.Fatalf("defaults missing: %+v", c)
	}
	if c.IdempTTLSecs != 300 {
		t.Fatalf("IdempTTLSecs = %d, want 300", c.IdempTTLSecs)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9999")
	t.Setenv("MYSQL_DB", "codes_test")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("IDEMPOTENCY_TTL_SECONDS", "60")

	c := Load()
	if c.AppPort != "9999" || c.MySQLDB != "codes_test" {
		t.Fatalf("overrides not applied: %+v", c)
	}
	if c.RedisDB != 3 || c.IdempTTLSecs != 60 {
		t.Fatalf("numeric overrides not applied: %+v", c)
	}
}

func TestValidate(t *testing.T) {
	c := Load()
	c.MySQLHost = ""
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for missing host")
	}
	c = Load()
	c.MySQLPort = "not-a-port"
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for bad port")
	}
}

func TestMySQLDSN(t *testing.T) {
	t.Setenv("MYSQL_HOST", "db.internal")
	t.Setenv("MYSQL_PORT", "3307")
	t.Setenv("MYSQL_USER", "svc")
	t.Setenv("MYSQL_PASS", "secret")
	t.Setenv("MYSQL_DB", "codes")

	dsn := Load().MySQLDSN()
	if !strings.HasPrefix(dsn, "svc:secret@tcp(db.internal:3307)/codes?") {
		t.Fatalf("dsn = %q", dsn)
	}
	if !strings.Contains(dsn, "parseTime=true") {
		t.Fatalf("dsn missing parseTime: %q", dsn)
	}
}
