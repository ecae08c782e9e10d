package observability

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/live-match/internal/config"
	"github.com/riskibarqy/live-match/internal/platform/logging"
)

func TestInitUptrace_DisabledIsNoop(t *testing.T) {
	cases := map[string]config.Config{
		"flag off":  {UptraceEnabled: false, ServiceName: "live-match-api", AppEnv: config.EnvDev},
		"empty dsn": {UptraceEnabled: true, UptraceDSN: "  ", ServiceName: "live-match-api", AppEnv: config.EnvDev},
	}

	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			shutdown, err := InitUptrace(cfg, logging.NewNop())
			if err != nil {
				t.Fatalf("init uptrace: %v", err)
			}
			if err := shutdown(context.Background()); err != nil {
				t.Fatalf("shutdown uptrace: %v", err)
			}
		})
	}
}

func TestStartPprofServer_Disabled(t *testing.T) {
	srv, err := StartPprofServer(config.Config{PprofEnabled: false}, logging.NewNop())
	if err != nil {
		t.Fatalf("start pprof: %v", err)
	}
	if srv != nil {
		t.Fatalf("expected nil server when pprof is disabled")
	}
	if err := StopPprofServer(nil, nil, time.Second); err != nil {
		t.Fatalf("stop nil pprof server: %v", err)
	}
}
