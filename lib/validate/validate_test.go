// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package validate

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"ahmed.ali@eng.psu.edu.eg", true},
		{"a+b_c%d@eng.psu.edu.eg", true},
		{"student@gmail.com", false},
		{"student@eng.psu.edu.eg.evil.com", false},
		{"@eng.psu.edu.eg", false},
		{strings.Repeat("a", 250) + "@eng.psu.edu.eg", false},
	}
	for _, test := range tests {
		if err := Email(test.value); (err == nil) != test.valid {
			t.Errorf("Email(%q) = %v, want valid=%v", test.value, err, test.valid)
		}
	}
	if err := Email(""); !errors.Is(err, ErrRequired) {
		t.Errorf("Email(\"\") = %v, want ErrRequired", err)
	}
}

func TestNationalID(t *testing.T) {
	if err := NationalID("29901011234567"); err != nil {
		t.Errorf("valid ID rejected: %v", err)
	}
	for _, value := range []string{"2990101123456", "299010112345678", "2990101123456a"} {
		if NationalID(value) == nil {
			t.Errorf("NationalID(%q) accepted", value)
		}
	}
}

func TestPassword(t *testing.T) {
	if err := Password([]byte("12345678")); err != nil {
		t.Errorf("8-char password rejected: %v", err)
	}
	if Password([]byte("1234567")) == nil {
		t.Error("7-char password accepted")
	}
	if Password(bytes.Repeat([]byte("x"), 101)) == nil {
		t.Error("101-char password accepted")
	}
	if !errors.Is(Password(nil), ErrRequired) {
		t.Error("empty password should be ErrRequired")
	}
}

func TestOptionalFields(t *testing.T) {
	tests := []struct {
		name  string
		check func(string) error
		good  []string
		bad   []string
	}{
		{"phone", Phone, []string{"", "+201001234567", "01001234567"}, []string{"123", "+20-100-123-4567"}},
		{"linkedin", LinkedIn, []string{"", "https://www.linkedin.com/in/someone", "linkedin.com/in/x"}, []string{"https://example.com/in/x"}},
		{"github", GitHub, []string{"", "https://github.com/someone", "github.com/x"}, []string{"https://gitlab.com/x"}},
		{"bio", Bio, []string{"", strings.Repeat("b", 500)}, []string{strings.Repeat("b", 501)}},
		{"visibility", Visibility, []string{"PUBLIC", "STUDENTS_ONLY", "PRIVATE"}, []string{"", "public", "FRIENDS"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			for _, value := range test.good {
				if err := test.check(value); err != nil {
					t.Errorf("%q rejected: %v", value, err)
				}
			}
			for _, value := range test.bad {
				if test.check(value) == nil {
					t.Errorf("%q accepted", value)
				}
			}
		})
	}
}

func TestName(t *testing.T) {
	if Name("   ") == nil {
		t.Error("blank name accepted")
	}
	if Name(strings.Repeat("n", 51)) == nil {
		t.Error("51-char name accepted")
	}
	if err := Name("Mariam"); err != nil {
		t.Errorf("Name rejected: %v", err)
	}
}

func TestImage(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n" + strings.Repeat("\x00", 32))
	contentType, err := Image(png)
	if err != nil || contentType != "image/png" {
		t.Errorf("Image(png) = %q, %v", contentType, err)
	}

	if _, err := Image([]byte("%PDF-1.7 not an image")); err == nil {
		t.Error("PDF accepted as image")
	}
	if _, err := Image(nil); err == nil {
		t.Error("empty file accepted")
	}
	if _, err := Image(append(png, make([]byte, MaxImageBytes)...)); err == nil {
		t.Error("oversized file accepted")
	}
}

func TestErrors(t *testing.T) {
	var errs Errors
	errs.Check("email", nil)
	if errs.Err() != nil {
		t.Fatal("Err() non-nil with no failures")
	}

	errs.Check("email", Email("x@gmail.com"))
	errs.Check("nationalId", NationalID("1"))
	err := errs.Err()
	if err == nil {
		t.Fatal("Err() nil after failures")
	}
	if !strings.Contains(err.Error(), "email:") || !strings.Contains(err.Error(), "nationalId:") {
		t.Errorf("Error() = %q", err.Error())
	}
	if fields := errs.Map(); len(fields) != 2 || fields["nationalId"] == "" {
		t.Errorf("Map() = %v", fields)
	}
}
