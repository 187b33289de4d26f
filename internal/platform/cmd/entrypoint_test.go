package cmd

import (
	"context"
	"errors"
	"flag"
	"testing"

	"github.com/louisbranch/krishicash/internal/platform/otel"
)

type testConfig struct {
	Store   string `env:"CMD_TEST_STORE" envDefault:"file"`
	Account string `env:"CMD_TEST_ACCOUNT" envDefault:"local"`
}

func TestParseConfigReadsEnvAndFlags(t *testing.T) {
	t.Setenv("CMD_TEST_STORE", "sqlite")
	t.Setenv("CMD_TEST_ACCOUNT", "env-account")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfgRef := testConfig{}
	if err := ParseConfig(&cfgRef); err != nil {
		t.Fatalf("load config defaults: %v", err)
	}
	fs.StringVar(&cfgRef.Store, "store", cfgRef.Store, "store")
	fs.StringVar(&cfgRef.Account, "account", cfgRef.Account, "account")

	if err := ParseArgs(fs, []string{"-store", "postgres"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if cfgRef.Store != "postgres" {
		t.Fatalf("store = %q, want flag value", cfgRef.Store)
	}
	if cfgRef.Account != "env-account" {
		t.Fatalf("account = %q, want env value", cfgRef.Account)
	}
}

func TestParseConfigRejectsNilTarget(t *testing.T) {
	if err := ParseConfig[testConfig](nil); err == nil {
		t.Fatal("expected nil target error")
	}
}

func TestParseArgsRejectsNilParser(t *testing.T) {
	if err := ParseArgs(nil, []string{}); err == nil {
		t.Fatal("expected parse args to reject nil parser")
	}
}

func TestRunWithTelemetryRejectsMissingInputs(t *testing.T) {
	if err := RunWithTelemetry(context.Background(), "", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected missing service error")
	}
	if err := RunWithTelemetry(context.Background(), ServiceKrishiCash, nil); err == nil {
		t.Fatal("expected missing run function error")
	}
}

func TestRunWithTelemetryReturnsRunError(t *testing.T) {
	t.Setenv(otel.EnvEndpoint, "")
	want := errors.New("boom")

	err := RunWithTelemetry(context.Background(), ServiceKrishiCash, func(context.Context) error { return want })
	if !errors.Is(err, want) {
		t.Fatalf("run error = %v, want %v", err, want)
	}
}
