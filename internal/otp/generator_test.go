package otp_test

import (
	"testing"

	"github.com/ErlanBelekov/pdf-transparency/internal/otp"
)

func TestCode_SixDigits(t *testing.T) {
	g := otp.NewCryptoGenerator()

	for i := 0; i < 100; i++ {
		code, err := g.Code()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("code %q has length %d, want 6", code, len(code))
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("code %q contains non-digit %q", code, r)
			}
		}
	}
}
