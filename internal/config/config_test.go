package config

import (
	"testing"
	"time"
)

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("BILLING_SERVICE_CHARGE_RATE", "0.1")
	t.Setenv("BILLING_MERGE_STATUS_POLICY", "reset")
	t.Setenv("PRINTER_TYPE", "network")
	t.Setenv("PRINTER_ADDRESS", "10.0.0.5:9100")
	t.Setenv("INSIGHTS_TIMEOUT_SECONDS", "3")

	cfg := Load()

	if cfg.Database.Driver != "postgres" {
		t.Errorf("Driver = %q, want postgres", cfg.Database.Driver)
	}
	if cfg.Billing.ServiceChargeRate != 0.1 {
		t.Errorf("ServiceChargeRate = %v, want 0.1", cfg.Billing.ServiceChargeRate)
	}
	if cfg.Billing.MergeStatusPolicy != "reset" {
		t.Errorf("MergeStatusPolicy = %q, want reset", cfg.Billing.MergeStatusPolicy)
	}
	if cfg.Printer.Target() != "10.0.0.5:9100" {
		t.Errorf("printer target = %q", cfg.Printer.Target())
	}
	if cfg.Insights.Timeout != 3*time.Second {
		t.Errorf("insights timeout = %v, want 3s", cfg.Insights.Timeout)
	}
	if cfg.JWT.ExpiryHours != 12*time.Hour {
		t.Errorf("jwt expiry = %v, want 12h", cfg.JWT.ExpiryHours)
	}
}

func TestPrinterTarget(t *testing.T) {
	p := PrinterConfig{USBPath: "/dev/usb/lp0", Address: "host:9100", SpoolDir: "./spool"}
	tests := []struct {
		printerType string
		want        string
	}{
		{"usb", "/dev/usb/lp0"},
		{"network", "host:9100"},
		{"file", "./spool"},
		{"none", ""},
	}
	for _, tt := range tests {
		t.Run(tt.printerType, func(t *testing.T) {
			p.Type = tt.printerType
			if got := p.Target(); got != tt.want {
				t.Errorf("Target() = %q, want %q", got, tt.want)
			}
		})
	}
}
