package pkgerror

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestTypeString(t *testing.T) {
	if got := TypeValidation.String(); got != "ERROR_TYPE_VALIDATION" {
		t.Fatalf("unexpected validation string: %q", got)
	}
	if got := TypeConfiguration.String(); got != "ERROR_TYPE_CONFIGURATION" {
		t.Fatalf("unexpected configuration string: %q", got)
	}
	if got := TypeItem.String(); got != "ERROR_TYPE_ITEM" {
		t.Fatalf("unexpected item string: %q", got)
	}
	if got := TypeServer.String(); got != "ERROR_TYPE_SERVER" {
		t.Fatalf("unexpected server string: %q", got)
	}
	if got := Type(99).String(); got != "ERROR_TYPE_UNKNOWN" {
		t.Fatalf("unexpected unknown type string: %q", got)
	}
}

func TestCodeString(t *testing.T) {
	if got := CodeUnsupportedFormat.String(); got != "ERROR_CODE_UNSUPPORTED_FORMAT" {
		t.Fatalf("unexpected unsupported format string: %q", got)
	}
	if got := CodeSchemaValidation.String(); got != "ERROR_CODE_SCHEMA_VALIDATION" {
		t.Fatalf("unexpected schema string: %q", got)
	}
	if got := CodeInternal.String(); got != "ERROR_CODE_INTERNAL" {
		t.Fatalf("unexpected internal string: %q", got)
	}
	if got := Code(99).String(); got != "ERROR_CODE_INTERNAL" {
		t.Fatalf("unexpected default code string: %q", got)
	}
}

func TestServerError(t *testing.T) {
	root := errors.New("boom")
	err := NewServer(root)
	gerr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if !errors.Is(err, root) {
		t.Fatalf("expected wrapped error")
	}
	if got := gerr.Type(); got != TypeServer {
		t.Fatalf("unexpected type: %v", got)
	}
	if got := gerr.Code(); got != CodeInternal {
		t.Fatalf("unexpected code: %v", got)
	}
	if got := gerr.Error(); got != "boom" {
		t.Fatalf("unexpected error string: %q", got)
	}
	if got := gerr.ExitCode(); got != 1 {
		t.Fatalf("unexpected exit code: %d", got)
	}
}

func TestSentinelMatching(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		sentinel error
		subject  string
		exit     int
	}{
		{"format", NewUnsupportedFormat("parquet"), ErrUnsupportedFormat, "parquet", 3},
		{"schema", NewSchemaValidation("RT", "column was not found"), ErrSchemaValidation, "RT", 4},
		{"config", NewConfiguration("test_size", 1.5, "must be in [0, 1)"), ErrConfiguration, "test_size", 2},
		{"precondition", NewPrecondition("SMILES", "column is required"), ErrPrecondition, "SMILES", 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !errors.Is(tc.err, tc.sentinel) {
				t.Fatalf("expected %v to match sentinel %v", tc.err, tc.sentinel)
			}
			if errors.Is(tc.err, ErrStructureParse) {
				t.Fatalf("did not expect %v to match structure sentinel", tc.err)
			}
			wrapped := fmt.Errorf("stage: %w", tc.err)
			if !errors.Is(wrapped, tc.sentinel) {
				t.Fatalf("expected wrapped error to match sentinel")
			}
			if got := ExitCode(wrapped); got != tc.exit {
				t.Fatalf("unexpected exit code: %d, want %d", got, tc.exit)
			}
			if got := tc.err.(*Error).Subject(); got != tc.subject {
				t.Fatalf("unexpected subject: %q, want %q", got, tc.subject)
			}
		})
	}
}

func TestStructureParseWrapsCause(t *testing.T) {
	cause := errors.New("unexpected character 'a'")
	err := NewStructureParse("bad", cause)

	if !errors.Is(err, ErrStructureParse) {
		t.Fatalf("expected structure sentinel")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be wrapped")
	}
	if got := err.Error(); got != `parsing structure "bad" failed: unexpected character 'a'` {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestUnsupportedFormatMessage(t *testing.T) {
	if got := NewUnsupportedFormat("txt").Error(); got != "txt is not a supported data format" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestColumnErrorsNameTheColumn(t *testing.T) {
	if got := NewSchemaValidation("RT", `row 1: "fast" is not a number`).Error(); got != `RT: row 1: "fast" is not a number` {
		t.Fatalf("unexpected schema message: %q", got)
	}
	if got := NewPrecondition("SMILES", "column is required").Error(); got != "SMILES: column is required" {
		t.Fatalf("unexpected precondition message: %q", got)
	}
}

func TestExitCodeForeignAndNil(t *testing.T) {
	if got := ExitCode(nil); got != 0 {
		t.Fatalf("unexpected nil exit code: %d", got)
	}
	if got := ExitCode(errors.New("plain")); got != 1 {
		t.Fatalf("unexpected foreign exit code: %d", got)
	}
}

func TestErrorFallbackMessages(t *testing.T) {
	validation := new(nil, "", "", TypeValidation, CodeInternal).(*Error)
	if got := validation.Error(); got != "Validation violation" {
		t.Fatalf("unexpected validation fallback: %q", got)
	}

	configuration := new(nil, "", "", TypeConfiguration, CodeInternal).(*Error)
	if got := configuration.Error(); got != "Configuration violation" {
		t.Fatalf("unexpected configuration fallback: %q", got)
	}

	server := new(nil, "", "", TypeServer, CodeInternal).(*Error)
	if got := server.Error(); got != "Internal error" {
		t.Fatalf("unexpected server fallback: %q", got)
	}
}

func TestErrorStringIncludesDetails(t *testing.T) {
	err := NewSchemaValidation("Name", "column was not found").(*Error)
	str := err.String()
	if !strings.Contains(str, "ERROR_TYPE_VALIDATION") {
		t.Fatalf("expected error type in string: %q", str)
	}
	if !strings.Contains(str, "ERROR_CODE_SCHEMA_VALIDATION") {
		t.Fatalf("expected error code in string: %q", str)
	}
	if !strings.Contains(str, "Subject: Name") {
		t.Fatalf("expected subject in string: %q", str)
	}
}
