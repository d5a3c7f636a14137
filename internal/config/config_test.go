package config

import "testing"

func TestNormalizeDefaults(t *testing.T) {
	var cfg Config
	cfg.Core.Telegram.AdminID = 777

	Normalize(&cfg)

	if cfg.Bot.PageSize != defaultPageSize {
		t.Fatalf("page size = %d, want %d", cfg.Bot.PageSize, defaultPageSize)
	}
	if len(cfg.Bot.Admins) != 1 || cfg.Bot.Admins[0] != 777 {
		t.Fatalf("admins = %v, want the core admin id", cfg.Bot.Admins)
	}
}

func TestNormalizeKeepsExplicitValues(t *testing.T) {
	var cfg Config
	cfg.Core.Telegram.AdminID = 777
	cfg.Bot.Admins = []int64{1, 2}
	cfg.Bot.PageSize = 10

	Normalize(&cfg)

	if cfg.Bot.PageSize != 10 {
		t.Fatalf("page size = %d, want 10", cfg.Bot.PageSize)
	}
	if len(cfg.Bot.Admins) != 2 {
		t.Fatalf("admins = %v, explicit list must win", cfg.Bot.Admins)
	}
}
