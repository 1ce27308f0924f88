package identity

import (
	"encoding/json"
	"testing"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"0x1234567890abcdef1234567890abcdef12345678", false},
		{"1234567890abcdef1234567890abcdef12345678", false},
		{"0X1234567890ABCDEF1234567890ABCDEF12345678", false},
		{"0x1234", true},
		{"", true},
		{"0xzz34567890abcdef1234567890abcdef12345678", true},
	}

	for _, tc := range tests {
		_, err := ParseAddress(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseAddress(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
	}
}

func TestAddressRoundTrip(t *testing.T) {
	a := MustAddress("0x1234567890abcdef1234567890abcdef12345678")
	parsed, err := ParseAddress(a.String())
	if err != nil {
		t.Fatalf("round trip parse failed: %v", err)
	}
	if parsed != a {
		t.Errorf("round trip changed address: %s != %s", parsed, a)
	}
}

func TestAddressJSON(t *testing.T) {
	a := MustAddress("0x1234567890abcdef1234567890abcdef12345678")
	b, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(b) != `"`+a.String()+`"` {
		t.Errorf("unexpected JSON form: %s", b)
	}

	var back Address
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if back != a {
		t.Errorf("JSON round trip changed address: %s != %s", back, a)
	}
}

func TestZero(t *testing.T) {
	if !Zero.IsZero() {
		t.Error("Zero should report IsZero")
	}
	if MustAddress("0x1234567890abcdef1234567890abcdef12345678").IsZero() {
		t.Error("non-zero address reports IsZero")
	}
}

func TestLess(t *testing.T) {
	a := MustAddress("0x0000000000000000000000000000000000000001")
	b := MustAddress("0x0000000000000000000000000000000000000002")
	if !a.Less(b) {
		t.Error("a should order before b")
	}
	if b.Less(a) {
		t.Error("b should not order before a")
	}
	if a.Less(a) {
		t.Error("address should not order before itself")
	}
}
