package folio

import "testing"

func TestSafeRedirect(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/admin/", "/admin/"},
		{"/#projects-container", "/#projects-container"},
		{"/admin/?tab=profile", "/admin/?tab=profile"},
		{"", "/admin/"},
		{"admin/", "/admin/"},
		{"//evil.example", "/admin/"},
		{`/\evil.example`, "/admin/"},
		{"/\tevil", "/admin/"},
		{"/\nLocation: x", "/admin/"},
		{"/\x7f", "/admin/"},
		{"https://evil.example/", "/admin/"},
		{"javascript:alert(1)", "/admin/"},
	}
	for _, tt := range tests {
		if got := safeRedirect(tt.in, "/admin/"); got != tt.want {
			t.Errorf("safeRedirect(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
