package model

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"normal-file.png", "normal-file.png"},
		{"file:with:colons.png", "file_with_colons.png"},
		{"file<with>brackets.png", "file_with_brackets.png"},
		{"file|with|pipes.png", "file_with_pipes.png"},
		{"file?with*wildcards.png", "file_with_wildcards.png"},
		{"trailing dots...", "trailing dots"},
		{"multiple   spaces", "multiple spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := sanitizeFileName(tt.input)
			if got != tt.want {
				t.Errorf("sanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name string
		page PageNumber
		ref  ImageReference
		want string
	}{
		{"basic", 7, "http://imgs.xkcd.com/comics/abc.png", "0007_abc.png"},
		{"four digits", 1234, "http://imgs.xkcd.com/comics/x.jpg", "1234_x.jpg"},
		{"wider than padding", 12345, "http://imgs.xkcd.com/comics/x.jpg", "12345_x.jpg"},
		{"query dropped", 1, "http://imgs.xkcd.com/comics/barrel.jpg?v=2", "0001_barrel.jpg"},
		{"no scheme", 42, "comics/answer.gif", "0042_answer.gif"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FileName(tt.page, tt.ref); got != tt.want {
				t.Errorf("FileName(%d, %q) = %q, want %q", tt.page, tt.ref, got, tt.want)
			}
		})
	}
}

func TestFilePrefix(t *testing.T) {
	if got := FilePrefix(7); got != "0007_" {
		t.Errorf("FilePrefix(7) = %q, want %q", got, "0007_")
	}
	name := FileName(7, "http://imgs.xkcd.com/comics/abc.png")
	if name[:len(FilePrefix(7))] != FilePrefix(7) {
		t.Errorf("FileName %q does not start with FilePrefix", name)
	}
}

func TestDownloadTask_TargetPathIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	task := DownloadTask{Page: 7, OutputDir: dir}
	ref := ImageReference("http://imgs.xkcd.com/comics/abc.png")

	first := task.TargetPath(ref)
	second := task.TargetPath(ref)

	if first != second {
		t.Errorf("TargetPath not deterministic: %q != %q", first, second)
	}
	if want := filepath.Join(dir, "0007_abc.png"); first != want {
		t.Errorf("TargetPath = %q, want %q", first, want)
	}
}

func TestRange(t *testing.T) {
	rng := Range{Start: 2, End: 5}

	if rng.Len() != 4 {
		t.Errorf("Len() = %d, want 4", rng.Len())
	}

	pages := rng.Pages()
	want := []PageNumber{2, 3, 4, 5}
	if len(pages) != len(want) {
		t.Fatalf("Pages() = %v, want %v", pages, want)
	}
	for i := range want {
		if pages[i] != want[i] {
			t.Errorf("Pages()[%d] = %d, want %d", i, pages[i], want[i])
		}
	}

	if got := rng.String(); got != "[2, 5]" {
		t.Errorf("String() = %q, want %q", got, "[2, 5]")
	}
}

func TestRange_Validate(t *testing.T) {
	tests := []struct {
		name    string
		rng     Range
		wantErr bool
	}{
		{"single page", Range{Start: 1, End: 1}, false},
		{"many pages", Range{Start: 1, End: 3000}, false},
		{"zero start", Range{Start: 0, End: 3}, true},
		{"end before start", Range{Start: 5, End: 3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rng.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRange) {
					t.Errorf("Validate() = %v, want ErrInvalidRange", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	fsErr := &FilesystemError{Path: "/tmp/x", Err: errors.New("disk full")}

	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"nil", nil, KindNone},
		{"plain error", errors.New("boom"), KindPermanent},
		{"filesystem", fsErr, KindFilesystem},
		{"wrapped filesystem", fmt.Errorf("page 3: %w", fsErr), KindFilesystem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResultConstructors(t *testing.T) {
	task := DownloadTask{Page: 1, OutputDir: "/out"}

	if r := Skipped(task, "/out/0001_a.png"); r.Status != StatusSkipped || r.Err != nil {
		t.Errorf("Skipped() = %+v", r)
	}
	if r := Saved(task, "/out/0001_a.png"); r.Status != StatusSaved || r.Err != nil {
		t.Errorf("Saved() = %+v", r)
	}

	err := &FilesystemError{Path: "/out", Err: errors.New("read-only")}
	r := Failed(task, "", err)
	if r.Status != StatusFailed {
		t.Errorf("Status = %v, want %v", r.Status, StatusFailed)
	}
	if r.Kind != KindFilesystem {
		t.Errorf("Kind = %v, want %v", r.Kind, KindFilesystem)
	}
	if !errors.Is(r.Err, err) {
		t.Errorf("Err = %v, want %v", r.Err, err)
	}
}
