package models

import "testing"

func TestJSONTextFallback(t *testing.T) {
	full := JSON{"tr": "Topuklu", "en": "Heels"}
	if got := full.Text("tr"); got != "Topuklu" {
		t.Fatalf("tr text want Topuklu got %s", got)
	}
	if got := full.Text("en"); got != "Heels" {
		t.Fatalf("en text want Heels got %s", got)
	}

	// 请求语言缺失时回退已有语言
	trOnly := JSON{"tr": "Bot"}
	if got := trOnly.Text("en"); got != "Bot" {
		t.Fatalf("fallback want Bot got %s", got)
	}
	enOnly := JSON{"en": "Sandals"}
	if got := enOnly.Text("tr"); got != "Sandals" {
		t.Fatalf("fallback want Sandals got %s", got)
	}

	var empty JSON
	if got := empty.Text("tr"); got != "" {
		t.Fatalf("nil json text want empty got %s", got)
	}
}

func TestMoneyStringFixed(t *testing.T) {
	m := NewMoneyFromInt(80)
	if got := m.String(); got != "80.00" {
		t.Fatalf("money string want 80.00 got %s", got)
	}

	var parsed Money
	if err := parsed.UnmarshalJSON([]byte(`"149.90"`)); err != nil {
		t.Fatalf("unmarshal string amount failed: %v", err)
	}
	if got := parsed.String(); got != "149.90" {
		t.Fatalf("parsed amount want 149.90 got %s", got)
	}
	if err := parsed.UnmarshalJSON([]byte(`149.9`)); err != nil {
		t.Fatalf("unmarshal numeric amount failed: %v", err)
	}
	if got := parsed.String(); got != "149.90" {
		t.Fatalf("numeric amount want 149.90 got %s", got)
	}
}
