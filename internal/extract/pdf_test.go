package extract_test

import (
	"log/slog"
	"os"
	"testing"

	"github.com/ErlanBelekov/pdf-transparency/internal/extract"
)

func TestIsPDF(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		want bool
	}{
		{"pdf header", []byte("%PDF-1.7\n..."), true},
		{"empty", nil, false},
		{"plain text", []byte("hello world"), false},
		{"truncated header", []byte("%PD"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := extract.IsPDF(tc.in); got != tc.want {
				t.Errorf("IsPDF = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestText_MalformedBytes_YieldsEmptyString(t *testing.T) {
	e := extract.NewPDFExtractor(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	// Valid magic, garbage body. Must degrade to "" rather than fail.
	if got := e.Text([]byte("%PDF-1.4 garbage that is not a pdf")); got != "" {
		t.Errorf("Text = %q, want empty string", got)
	}
}
