package config

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestLoad(t *testing.T) {
	t.Setenv("WRAPPED_TRADES", "exports/trades.jsonl")
	t.Setenv("WRAPPED_CURRENCY", "usd")
	t.Setenv("WRAPPED_LOG_LEVEL", "debug")

	c := Load()
	if c.Trades != "exports/trades.jsonl" {
		t.Errorf("Trades = %q, want exports/trades.jsonl", c.Trades)
	}
	if c.Banking != "banking_sample_data.csv" {
		t.Errorf("Banking = %q, want the default", c.Banking)
	}
	if c.Currency != "USD" {
		t.Errorf("Currency = %q, want USD", c.Currency)
	}

	defer logrus.SetLevel(logrus.GetLevel())
	if err := c.ConfigureLogging(); err != nil {
		t.Fatal(err)
	}
	if logrus.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %v, want debug", logrus.GetLevel())
	}

	c.LogLevel = "chatty"
	if err := c.ConfigureLogging(); err == nil {
		t.Error("ConfigureLogging() should reject unknown levels")
	}
}
