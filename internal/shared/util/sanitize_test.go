package util

import "testing"

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"photo.jpg", "photo.jpg", false},
		{"  spaced.png  ", "spaced.png", false},
		{"dir/photo.jpg", "dir_photo.jpg", false},
		{`dir\photo.jpg`, "dir_photo.jpg", false},
		{"../etc/passwd", "", true},
		{"", "", true},
		{"   ", "", true},
	}
	for _, tc := range cases {
		got, err := SanitizeFileName(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("SanitizeFileName(%q) = %q, want error", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("SanitizeFileName(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFileExtension(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"photo.jpg", "jpg"},
		{"photo.JPEG", "jpeg"},
		{"archive.tar.gz", "gz"},
		{"noext", ""},
		{"trailingdot.", ""},
	}
	for _, tc := range cases {
		if got := FileExtension(tc.in); got != tc.want {
			t.Errorf("FileExtension(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestHashOwnerKeyIsStableAndSafe(t *testing.T) {
	a := HashOwnerKey("guest:abc")
	b := HashOwnerKey("guest:abc")
	if a != b {
		t.Error("hash must be deterministic")
	}
	if len(a) != 64 {
		t.Errorf("len = %d, want 64 hex chars", len(a))
	}
	if HashOwnerKey("guest:other") == a {
		t.Error("different owners must hash differently")
	}
}
