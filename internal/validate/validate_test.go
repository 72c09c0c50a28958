package validate

import (
	"bytes"
	"strings"
	"testing"
)

func messageOf(t *testing.T, err error) string {
	t.Helper()
	if err == nil {
		return ""
	}
	ve, ok := AsError(err)
	if !ok {
		t.Fatalf("expected validation error, got %T", err)
	}
	return ve.Message
}

func TestCheckDescriptionBoundary(t *testing.T) {
	for n := 0; n <= 80; n++ {
		err := CheckDescription(strings.Repeat("a", n))
		if n < MinDescriptionLength && err == nil {
			t.Fatalf("length %d should be rejected", n)
		}
		if n >= MinDescriptionLength && err != nil {
			t.Fatalf("length %d should be accepted: %v", n, err)
		}
	}
}

func TestCheckDescriptionCountsCharacters(t *testing.T) {
	if err := CheckDescription(strings.Repeat("é", 50)); err != nil {
		t.Fatalf("50 accented characters should pass: %v", err)
	}
}

func TestNewJobRequiresFieldsBeforeLength(t *testing.T) {
	in := JobInput{Company: "Acme", Position: "Engineer", Description: "  "}
	if got := messageOf(t, NewJob(in)); got != MsgRequired {
		t.Fatalf("expected required message, got %q", got)
	}
	in.Description = "short"
	if got := messageOf(t, NewJob(in)); got != MsgDescriptionLength {
		t.Fatalf("expected length message, got %q", got)
	}
	in.Description = strings.Repeat("x", 60)
	in.Status = "applied"
	if err := NewJob(in); err != nil {
		t.Fatalf("expected valid job, got %v", err)
	}
}

func TestEditJobSkipsLengthRule(t *testing.T) {
	in := JobInput{Company: "Acme", Position: "Engineer", Description: "short", Notes: "n", Status: "offered"}
	if err := EditJob(in); err != nil {
		t.Fatalf("edit should not enforce length: %v", err)
	}
}

func TestAdminJobRequiresLinkAndDate(t *testing.T) {
	in := AdminJobInput{Company: "Acme", Position: "Eng", Description: "d", Status: "applied"}
	if got := messageOf(t, AdminJob(in)); got != MsgRequired {
		t.Fatalf("expected required, got %q", got)
	}
	in.AppliedDate = "2025-01-02"
	in.Link = "https://acme.test/jobs/1"
	if err := AdminJob(in); err != nil {
		t.Fatalf("expected valid: %v", err)
	}
	in.Status = "ghosted"
	if got := messageOf(t, AdminJob(in)); got != MsgInvalidStatus {
		t.Fatalf("expected status error, got %q", got)
	}
}

func TestAdminUserPasswordOnlyOnCreate(t *testing.T) {
	in := UserInput{Name: "Ada", Email: "ada@example.com", Role: "admin"}
	if got := messageOf(t, AdminUser(in, true)); got != MsgRequired {
		t.Fatalf("create without password should fail, got %q", got)
	}
	if err := AdminUser(in, false); err != nil {
		t.Fatalf("update without password should pass: %v", err)
	}
	in.Email = "not-an-email"
	if got := messageOf(t, AdminUser(in, false)); got != MsgInvalidEmail {
		t.Fatalf("expected email error, got %q", got)
	}
}

func TestSignupMismatchReportedFirst(t *testing.T) {
	err := Signup(SignupInput{Name: "", Email: "bad", Password: "a", ConfirmPassword: "b"})
	ve, ok := AsError(err)
	if !ok || ve.Message != MsgPasswordMismatch || ve.Field != "confirmPassword" {
		t.Fatalf("unexpected error %v", err)
	}
	err = Signup(SignupInput{Name: "Ada", Email: "bad", Password: "pw", ConfirmPassword: "pw"})
	if got := messageOf(t, err); got != MsgInvalidEmail {
		t.Fatalf("expected email message, got %q", got)
	}
	if err := Signup(SignupInput{Name: "Ada", Email: "ada@example.com", Password: "pw", ConfirmPassword: "pw"}); err != nil {
		t.Fatalf("expected valid signup: %v", err)
	}
}

func TestValidEmail(t *testing.T) {
	good := []string{"a@b.co", "first.last@sub.example.org"}
	bad := []string{"", "a@b", "a b@c.d", "@b.c", "a@.c"}
	for _, e := range good {
		if !ValidEmail(e) {
			t.Fatalf("%q should be valid", e)
		}
	}
	for _, e := range bad {
		if ValidEmail(e) {
			t.Fatalf("%q should be invalid", e)
		}
	}
}

func TestPasswordStrength(t *testing.T) {
	cases := map[string]Strength{
		"":               StrengthNone,
		"abc":            StrengthWeak,
		"abcdefgh":       StrengthWeak,
		"abcdefgh1":      StrengthFair,
		"Abcdefgh1":      StrengthGood,
		"Abcdefgh1!":     StrengthStrong,
		"Abcdefghijkl1!": StrengthStrong,
		"aaaaaaaaaaaa":   StrengthFair,
		"aaaaaaaaaaaaA":  StrengthGood,
	}
	for pw, want := range cases {
		if got := PasswordStrength(pw); got != want {
			t.Fatalf("PasswordStrength(%q) = %q, want %q", pw, got, want)
		}
	}
	if StrengthStrong.Label() != "Strong password" {
		t.Fatalf("unexpected label")
	}
}

func pdfBytes(n int) []byte {
	head := []byte("%PDF-1.4\n")
	if n <= len(head) {
		return head
	}
	return append(head, bytes.Repeat([]byte("0"), n-len(head))...)
}

func TestPDFUploadMessages(t *testing.T) {
	valid := &Upload{FileName: "cv.pdf", ContentType: "application/pdf", Size: 1024, Data: pdfBytes(1024)}
	cases := []struct {
		name  string
		file  *Upload
		jobID string
		want  string
	}{
		{"nothing", nil, "", MsgUploadNothing},
		{"no file", nil, "job-1", MsgUploadNoFile},
		{"no job", valid, "", MsgUploadNoJob},
		{"wrong mime", &Upload{FileName: "cv.pdf", ContentType: "text/plain", Size: 10, Data: pdfBytes(10)}, "job-1", MsgUploadNotPDF},
		{"wrong ext", &Upload{FileName: "cv.docx", ContentType: "application/pdf", Size: 10, Data: pdfBytes(10)}, "job-1", MsgUploadNotPDF},
		{"spoofed content", &Upload{FileName: "cv.pdf", ContentType: "application/pdf", Size: 5, Data: []byte("hello")}, "job-1", MsgUploadNotPDF},
		{"too large", &Upload{FileName: "CV.PDF", ContentType: "application/pdf", Size: MaxPDFBytes + 1, Data: pdfBytes(64)}, "job-1", MsgUploadTooLarge},
		{"ok", valid, "job-1", ""},
		{"ok at limit", &Upload{FileName: "cv.pdf", ContentType: "application/pdf", Size: MaxPDFBytes, Data: pdfBytes(64)}, "job-1", ""},
	}
	for _, tc := range cases {
		if got := messageOf(t, PDFUpload(tc.file, tc.jobID)); got != tc.want {
			t.Fatalf("%s: got %q want %q", tc.name, got, tc.want)
		}
	}
}
