package config

import (
	"os"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	os.Setenv("WAL_DIRECTORY", "/var/logs/wal")
	os.Setenv("CONFIG_SERVER_URL", "http://config-service.local")
	os.Setenv("KEYSPACE", "mykeyspace")
	defer os.Unsetenv("WAL_DIRECTORY")
	defer os.Unsetenv("CONFIG_SERVER_URL")
	defer os.Unsetenv("KEYSPACE")

	cfg := LoadConfig()

	if cfg.WalDirectory != "/var/logs/wal" {
		t.Errorf("expected WalDirectory '/var/logs/wal', got %q", cfg.WalDirectory)
	}
	if cfg.ConfigServerUrl != "http://config-service.local" {
		t.Errorf("expected ConfigServerUrl 'http://config-service.local', got %q", cfg.ConfigServerUrl)
	}
	if cfg.Keyspace != "mykeyspace" {
		t.Errorf("expected Keyspace 'mykeyspace', got %q", cfg.Keyspace)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	os.Unsetenv("KEYSPACE")
	os.Unsetenv("COLUMN_FAMILY")
	os.Unsetenv("BLOCK_SIZE")
	os.Unsetenv("BUFFER_SIZE")
	os.Unsetenv("TRANSPORT")

	cfg := LoadConfig()

	if cfg.Keyspace != defaultKeyspace {
		t.Errorf("expected default keyspace %q, got %q", defaultKeyspace, cfg.Keyspace)
	}
	if cfg.ColumnFamily != defaultKeyspace {
		t.Errorf("expected default column family %q, got %q", defaultKeyspace, cfg.ColumnFamily)
	}
	if cfg.BlockSize != defaultBlockSize {
		t.Errorf("expected default block size %d, got %d", defaultBlockSize, cfg.BlockSize)
	}
	if cfg.BufferSize != cfg.BlockSize {
		t.Errorf("expected buffer size to default to block size, got %d vs %d", cfg.BufferSize, cfg.BlockSize)
	}
	if cfg.Transport != defaultTransport {
		t.Errorf("expected default transport %q, got %q", defaultTransport, cfg.Transport)
	}
}
