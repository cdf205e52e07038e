package observability

import (
	"testing"

	otellog "go.opentelemetry.io/otel/log"
)

func TestMuteLogEvent(t *testing.T) {
	if !muteLogEvent("http_request", []any{"http_path", "/healthz"}) {
		t.Fatalf("expected health check log to be muted")
	}
	if muteLogEvent("http_request", []any{"http_path", "/v1/matches/42"}) {
		t.Fatalf("did not expect non-health log to be muted")
	}
	if muteLogEvent("stats publish request", []any{"http_path", "/healthz"}) {
		t.Fatalf("did not expect non-http_request event to be muted")
	}
}

func TestLogRecordAttributes(t *testing.T) {
	attrs := logRecordAttributes([]any{"season_id", "idn-sunday-2026", "attempt", 2, "payload"})
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "season_id" || attrs[0].Value.AsString() != "idn-sunday-2026" {
		t.Fatalf("unexpected season_id attribute")
	}
	if attrs[1].Key != "attempt" || attrs[1].Value.AsInt64() != 2 {
		t.Fatalf("unexpected attempt attribute")
	}
	if attrs[2].Key != "payload" || attrs[2].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected payload attribute")
	}
}

func TestAttrValue_Map(t *testing.T) {
	v := attrValue(map[string]any{
		"home_score": 3,
		"completed":  true,
	}, 0)
	if v.Kind() != otellog.KindMap {
		t.Fatalf("expected map value, got %s", v.Kind())
	}
	items := v.AsMap()
	if len(items) != 2 {
		t.Fatalf("expected 2 map items, got %d", len(items))
	}
}
