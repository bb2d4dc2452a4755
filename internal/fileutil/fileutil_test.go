package fileutil_test

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/alnah/go-mdtidy/internal/fileutil"
)

// mkTree creates files (relative paths) under a fresh temp dir.
func mkTree(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if err := os.WriteFile(path, []byte("# x\n"), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	return root
}

func TestValidateExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		extension string
		wantErr   error
	}{
		{name: "plain extension", extension: ".md"},
		{name: "empty", extension: "", wantErr: fileutil.ErrExtensionEmpty},
		{name: "forward slash", extension: "./md", wantErr: fileutil.ErrExtensionPathTraversal},
		{name: "backslash", extension: `.\md`, wantErr: fileutil.ErrExtensionPathTraversal},
		{name: "null byte", extension: ".md\x00", wantErr: fileutil.ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fileutil.ValidateExtension(tt.extension)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateExtension(%q) = %v, want %v", tt.extension, err, tt.wantErr)
			}
		})
	}
}

func TestHasExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		exts []string
		want bool
	}{
		{path: "a.md", want: true},
		{path: "dir/a.md", exts: []string{".md"}, want: true},
		{path: "a.MD", want: false},
		{path: "a.markdown", want: false},
		{path: "a.markdown", exts: []string{".md", ".markdown"}, want: true},
		{path: "README", want: false},
		{path: "a.md.bak", want: false},
	}

	for _, tt := range tests {
		if got := fileutil.HasExtension(tt.path, tt.exts); got != tt.want {
			t.Errorf("HasExtension(%q, %q) = %v, want %v", tt.path, tt.exts, got, tt.want)
		}
	}
}

func TestDiscoverMarkdown(t *testing.T) {
	t.Parallel()

	root := mkTree(t,
		"test4.md",
		"dir1/test1.md",
		"dir1/test2.md",
		"dir1/test3.txt",
		"dir1/noext",
		"dir2/UPPER.MD",
		"dir2/sub/deep.md",
	)

	got, err := fileutil.DiscoverMarkdown(root, nil)
	if err != nil {
		t.Fatalf("DiscoverMarkdown() error = %v", err)
	}

	want := []string{
		filepath.Join(root, "dir1", "test1.md"),
		filepath.Join(root, "dir1", "test2.md"),
		filepath.Join(root, "dir2", "sub", "deep.md"),
		filepath.Join(root, "test4.md"),
	}
	if !slices.Equal(got, want) {
		t.Errorf("DiscoverMarkdown() = %q, want %q", got, want)
	}
}

func TestDiscoverMarkdown_CustomExtensions(t *testing.T) {
	t.Parallel()

	root := mkTree(t, "a.md", "b.markdown", "c.txt")

	got, err := fileutil.DiscoverMarkdown(root, []string{".markdown"})
	if err != nil {
		t.Fatalf("DiscoverMarkdown() error = %v", err)
	}
	if want := []string{filepath.Join(root, "b.markdown")}; !slices.Equal(got, want) {
		t.Errorf("DiscoverMarkdown() = %q, want %q", got, want)
	}
}

func TestDiscoverMarkdown_Errors(t *testing.T) {
	t.Parallel()

	root := mkTree(t, "file.md")

	if _, err := fileutil.DiscoverMarkdown(filepath.Join(root, "missing"), nil); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing root: error = %v, want os.ErrNotExist", err)
	}
	if _, err := fileutil.DiscoverMarkdown(filepath.Join(root, "file.md"), nil); !errors.Is(err, fileutil.ErrNotDirectory) {
		t.Errorf("file root: error = %v, want ErrNotDirectory", err)
	}
}

func TestDiscoverMarkdown_EmptyDir(t *testing.T) {
	t.Parallel()

	got, err := fileutil.DiscoverMarkdown(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("DiscoverMarkdown() = %q, want none", got)
	}
}

func TestReadWriteText(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "doc.md")
	if err := os.WriteFile(path, []byte("a much longer previous body\n"), 0o640); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := fileutil.WriteText(path, "short\r\n", 0o600); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}

	got, err := fileutil.ReadText(path)
	if err != nil {
		t.Fatalf("ReadText() error = %v", err)
	}
	if got != "short\r\n" {
		t.Errorf("ReadText() = %q, want truncated rewrite %q", got, "short\r\n")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o640 {
		t.Errorf("mode = %v, want existing 0640 kept", info.Mode().Perm())
	}
}

func TestReadText_Missing(t *testing.T) {
	t.Parallel()

	_, err := fileutil.ReadText(filepath.Join(t.TempDir(), "nope.md"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist", err)
	}
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	root := mkTree(t, "a.md")

	if !fileutil.FileExists(filepath.Join(root, "a.md")) {
		t.Error("FileExists(a.md) = false, want true")
	}
	if fileutil.FileExists(root) {
		t.Error("FileExists(dir) = true, want false")
	}
	if fileutil.FileExists(filepath.Join(root, "b.md")) {
		t.Error("FileExists(missing) = true, want false")
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"settings":        false,
		"./settings.toml": true,
		"/abs/path.yaml":  true,
		`C:\cfg.toml`:     true,
		"my-config":       false,
	}
	for in, want := range tests {
		if got := fileutil.IsFilePath(in); got != want {
			t.Errorf("IsFilePath(%q) = %v, want %v", in, got, want)
		}
	}
}
