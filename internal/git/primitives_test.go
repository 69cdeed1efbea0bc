package git

import (
	"strconv"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/masmgr/githistory-go/internal/logging"
)

func TestParseActionedDetails(t *testing.T) {
	tests := []struct {
		name      string
		inName    string
		inEmail   string
		inTime    string
		wantNil   bool
		wantName  string
		wantEmail string
		wantUnix  int64
	}{
		{name: "Valid", inName: "Ada", inEmail: "ada@example.com", inTime: "1700000000", wantName: "Ada", wantEmail: "ada@example.com", wantUnix: 1700000000},
		{name: "Padded", inName: "  Ada \n", inEmail: "ada@example.com", inTime: " 42 ", wantName: "Ada", wantEmail: "ada@example.com", wantUnix: 42},
		{name: "Empty email allowed", inName: "Ada", inEmail: "", inTime: "1", wantName: "Ada", wantUnix: 1},
		{name: "Empty name", inName: "   ", inEmail: "a@b", inTime: "1", wantNil: true},
		{name: "Empty time", inName: "Ada", inEmail: "a@b", inTime: "", wantNil: true},
		{name: "Non numeric time", inName: "Ada", inEmail: "a@b", inTime: "yesterday", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseActionedDetails(tt.inName, tt.inEmail, tt.inTime)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("expected nil, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("expected details, got nil")
			}
			if got.Name != tt.wantName || got.Email != tt.wantEmail || got.Date.Unix() != tt.wantUnix {
				t.Fatalf("got %+v, want name=%q email=%q unix=%d", got, tt.wantName, tt.wantEmail, tt.wantUnix)
			}
		})
	}
}

func TestParseActionedDetails_DateIsSecondsTimesThousand(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		name := rapid.StringMatching(`[A-Za-z][A-Za-z ]{0,20}`).Draw(t, "name")
		secs := rapid.Int64Range(1, 4102444800).Draw(t, "secs")

		got := ParseActionedDetails(name, "dev@example.com", strconv.FormatInt(secs, 10))
		if got == nil {
			t.Fatalf("expected details for name=%q secs=%d", name, secs)
		}
		if got.Date.UnixMilli() != secs*1000 {
			t.Fatalf("UnixMilli() = %d, want %d", got.Date.UnixMilli(), secs*1000)
		}
	})
}

func TestParseActionedDetails_BlankNameIsNil(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		blank := rapid.StringMatching(`[ \t\n]{0,5}`).Draw(t, "blank")
		if got := ParseActionedDetails(blank, "x@y", "100"); got != nil {
			t.Fatalf("expected nil for blank name %q, got %+v", blank, got)
		}
	})
}

func TestStatusParser_Letters(t *testing.T) {
	tests := []struct {
		token string
		want  FileStatus
	}{
		{token: "A", want: StatusAdded},
		{token: "M", want: StatusModified},
		{token: "D", want: StatusDeleted},
		{token: "C075", want: StatusCopied},
		{token: "R100", want: StatusRenamed},
		{token: "T", want: StatusTypeChanged},
		{token: "X", want: StatusUnknown},
		{token: "U", want: StatusUnmerged},
		{token: "B", want: StatusBroken},
		{token: "  M  ", want: StatusModified},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			log := logging.NewRecorder()
			got, ok := StatusParser{Log: log}.Parse(tt.token)
			if !ok || got != tt.want {
				t.Fatalf("Parse(%q) = (%v, %v), want (%v, true)", tt.token, got, ok, tt.want)
			}
			if len(log.Errors()) != 0 {
				t.Fatalf("unexpected diagnostics: %v", log.Errors())
			}
		})
	}
}

func TestStatusParser_UnknownLettersAreLogged(t *testing.T) {
	for _, token := range []string{"Z", "", "   ", "m", "?"} {
		t.Run(token, func(t *testing.T) {
			log := logging.NewRecorder()
			if _, ok := (StatusParser{Log: log}).Parse(token); ok {
				t.Fatalf("Parse(%q) should fail", token)
			}
			if len(log.Errors()) != 1 {
				t.Fatalf("expected one diagnostic, got %v", log.Errors())
			}
		})
	}
}

func TestStatusParser_OnlyKnownLettersParse(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		token := rapid.String().Draw(t, "token")
		status, ok := StatusParser{}.Parse(token)

		trimmed := strings.TrimSpace(token)
		known := trimmed != "" && strings.ContainsRune("AMDCRTXUB", rune(trimmed[0]))
		if ok != known {
			t.Fatalf("Parse(%q) ok = %v, want %v", token, ok, known)
		}
		if ok && status.Letter() != string(trimmed[0]) {
			t.Fatalf("Letter() = %q, want %q", status.Letter(), string(trimmed[0]))
		}
	})
}

func TestParseUnixTime(t *testing.T) {
	tests := []struct {
		in   string
		ok   bool
		unix int64
	}{
		{in: "1700000000", ok: true, unix: 1700000000},
		{in: " 5\n", ok: true, unix: 5},
		{in: "0", ok: false},
		{in: "-4", ok: false},
		{in: "", ok: false},
		{in: "abc", ok: false},
	}

	for _, tt := range tests {
		got, ok := parseUnixTime(tt.in)
		if ok != tt.ok || (ok && got.Unix() != tt.unix) {
			t.Errorf("parseUnixTime(%q) = (%v, %v), want (%d, %v)", tt.in, got, ok, tt.unix, tt.ok)
		}
	}
}
