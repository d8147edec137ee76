package imageformat

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"png", "png", true},
		{"PNG", "png", true},
		{".jpg", "jpg", true},
		{"  tiff ", "tiff", true},
		{"jpe", "jpe", true},
		{"xyz", Default, false},
		{"", Default, false},
		{"gif", Default, false},
		{".", Default, false},
	}

	for _, tt := range tests {
		got, ok := Normalize(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Normalize(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSupported(t *testing.T) {
	want := []string{"bmp", "dib", "hdr", "jp2", "jpe", "jpeg", "jpg", "pbm", "pgm", "pic", "png", "ppm", "tif", "tiff", "webp"}
	got := Supported()
	if len(got) != len(want) {
		t.Fatalf("expected %d formats, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Supported()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLookup(t *testing.T) {
	r, ok := Lookup("png")
	if !ok || r.Encoding != Native {
		t.Errorf("expected png to be native, got %+v %v", r, ok)
	}

	r, ok = Lookup("webp")
	if !ok || r.Encoding != FFmpeg || r.Codec != "libwebp" {
		t.Errorf("expected webp to route to ffmpeg libwebp, got %+v %v", r, ok)
	}

	r, ok = Lookup("pic")
	if !ok || r.Codec != "hdr" {
		t.Errorf("expected pic to use the hdr encoder, got %+v", r)
	}

	if _, ok := Lookup("xyz"); ok {
		t.Error("expected xyz to be unknown")
	}
}

func TestCanonical(t *testing.T) {
	cases := map[string]string{
		"jpeg": "jpg",
		"jpe":  "jpg",
		"jpg":  "jpg",
		"dib":  "bmp",
		"tif":  "tiff",
		"pic":  "hdr",
		"png":  "png",
	}
	for in, want := range cases {
		if got := Canonical(in); got != want {
			t.Errorf("Canonical(%q) = %q, want %q", in, got, want)
		}
	}
}
