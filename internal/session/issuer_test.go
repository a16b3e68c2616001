package session

import (
	"errors"
	"testing"
	"time"

	"github.com/ErlanBelekov/pdf-transparency/internal/domain"
)

const testKey = "session-test-secret-that-is-32ch!"

func issuerAt(t0 time.Time) *Issuer {
	i := NewIssuer([]byte(testKey))
	i.now = func() time.Time { return t0 }
	return i
}

func TestIssueValidate_RoundTrip(t *testing.T) {
	i := issuerAt(time.Now())

	tok, err := i.Issue("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	userID, err := i.Validate(tok)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("userID = %q, want %q", userID, "user-1")
	}
}

func TestValidate_SixDaysLater_StillValid(t *testing.T) {
	t0 := time.Now()
	tok, err := issuerAt(t0).Issue("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := issuerAt(t0.Add(6 * 24 * time.Hour)).Validate(tok); err != nil {
		t.Errorf("token should still be valid after 6 days, got %v", err)
	}
}

func TestValidate_EightDaysLater_Unauthenticated(t *testing.T) {
	t0 := time.Now()
	tok, err := issuerAt(t0).Issue("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, err = issuerAt(t0.Add(8 * 24 * time.Hour)).Validate(tok)
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("err = %v, want ErrUnauthenticated", err)
	}
}

func TestValidate_WrongKey_Unauthenticated(t *testing.T) {
	tok, err := issuerAt(time.Now()).Issue("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	other := NewIssuer([]byte("a-completely-different-32-char-k!"))
	if _, err := other.Validate(tok); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("err = %v, want ErrUnauthenticated", err)
	}
}

func TestValidate_Garbage_Unauthenticated(t *testing.T) {
	i := issuerAt(time.Now())
	for _, raw := range []string{"", "not.a.jwt", "aaaa.bbbb.cccc"} {
		if _, err := i.Validate(raw); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Errorf("Validate(%q) = %v, want ErrUnauthenticated", raw, err)
		}
	}
}
