package docs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// newTestStore builds a docs root with a representative layout:
//
//	index.md
//	.DS_Store            (excluded file)
//	guide/
//	  index.md
//	  overview.md
//	guide/images/
//	  diagram.png
//	.git/                (excluded folder)
//	empty/               (hidden: nothing visible inside)
func newTestStore(t *testing.T) *Store {
	t.Helper()
	root := t.TempDir()

	mustWrite := func(rel, content string) {
		t.Helper()
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	mustWrite("index.md", "# Home")
	mustWrite(".DS_Store", "junk")
	mustWrite("guide/index.md", "# Guide")
	mustWrite("guide/overview.md", "# Overview")
	mustWrite("guide/images/diagram.png", "\x89PNG")
	mustWrite(".git/config", "[core]")
	if err := os.MkdirAll(filepath.Join(root, "empty"), 0o755); err != nil {
		t.Fatal(err)
	}

	s, err := NewStore(root, []string{".DS_Store"}, []string{".git", "__pycache__"})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func TestListFolderRoot(t *testing.T) {
	s := newTestStore(t)

	folder, err := s.ListFolder("")
	if err != nil {
		t.Fatalf("ListFolder: %v", err)
	}

	if folder.Path != "." {
		t.Errorf("path = %q, want %q", folder.Path, ".")
	}
	if len(folder.Folders) != 1 || folder.Folders[0] != "guide" {
		t.Errorf("folders = %v, want [guide]", folder.Folders)
	}
	if len(folder.Files) != 1 || folder.Files[0] != "index.md" {
		t.Errorf("files = %v, want [index.md]", folder.Files)
	}
}

func TestListFolderExcludesHidden(t *testing.T) {
	s := newTestStore(t)

	folder, err := s.ListFolder(".")
	if err != nil {
		t.Fatalf("ListFolder: %v", err)
	}
	for _, f := range folder.Files {
		if f == ".DS_Store" {
			t.Error("excluded file .DS_Store appeared in listing")
		}
	}
	for _, d := range folder.Folders {
		if d == ".git" || d == "empty" {
			t.Errorf("folder %q should be hidden", d)
		}
	}
}

func TestListFolderNested(t *testing.T) {
	s := newTestStore(t)

	folder, err := s.ListFolder("guide")
	if err != nil {
		t.Fatalf("ListFolder: %v", err)
	}
	if len(folder.Folders) != 1 || folder.Folders[0] != "images" {
		t.Errorf("folders = %v, want [images]", folder.Folders)
	}
	if len(folder.Files) != 2 {
		t.Errorf("files = %v, want two entries", folder.Files)
	}
}

func TestListFolderNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.ListFolder("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	// A file path is also a 404, not an internal error.
	_, err = s.ListFolder("index.md")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for file path, got %v", err)
	}
}

func TestListFolderCaching(t *testing.T) {
	s := newTestStore(t)

	first, err := s.ListFolder("guide")
	if err != nil {
		t.Fatalf("ListFolder: %v", err)
	}

	// A new file is invisible until the cache is invalidated.
	p := filepath.Join(s.Root(), "guide", "new.md")
	if err := os.WriteFile(p, []byte("# New"), 0o644); err != nil {
		t.Fatal(err)
	}

	second, err := s.ListFolder("guide")
	if err != nil {
		t.Fatalf("ListFolder: %v", err)
	}
	if len(second.Files) != len(first.Files) {
		t.Error("expected cached listing before invalidation")
	}

	s.Invalidate()
	third, err := s.ListFolder("guide")
	if err != nil {
		t.Fatalf("ListFolder: %v", err)
	}
	if len(third.Files) != len(first.Files)+1 {
		t.Errorf("after invalidation files = %v", third.Files)
	}
}

func TestReadFile(t *testing.T) {
	s := newTestStore(t)

	content, err := s.ReadFile("guide/overview.md")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(content) != "# Overview" {
		t.Errorf("content = %q", content)
	}

	_, err = s.ReadFile("guide/missing.md")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestReadFileRejectsTraversal(t *testing.T) {
	s := newTestStore(t)

	for _, p := range []string{"../outside.md", "/etc/passwd", "guide/../../x"} {
		if _, err := s.ReadFile(p); err == nil {
			t.Errorf("expected error for %q", p)
		}
	}
}

func TestSanitizeRelativePath(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
		want  string
	}{
		{"guide/overview.md", true, "guide/overview.md"},
		{"./guide/overview.md", true, "guide/overview.md"},
		{"a/../b.md", true, "b.md"},
		{"", false, ""},
		{"..", false, ""},
		{"../x.md", false, ""},
		{"/abs/path.md", false, ""},
	}
	for _, tt := range tests {
		got, err := SanitizeRelativePath(tt.input)
		if tt.ok && err != nil {
			t.Errorf("SanitizeRelativePath(%q): unexpected error %v", tt.input, err)
			continue
		}
		if !tt.ok && err == nil {
			t.Errorf("SanitizeRelativePath(%q): expected error", tt.input)
			continue
		}
		if tt.ok && got != tt.want {
			t.Errorf("SanitizeRelativePath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestBuildTree(t *testing.T) {
	s := newTestStore(t)

	tree, err := s.BuildTree(0)
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}

	// Directories sort before files.
	if len(tree.Children) != 2 {
		t.Fatalf("root children = %d, want 2", len(tree.Children))
	}
	if !tree.Children[0].IsDir || tree.Children[0].Name != "guide" {
		t.Errorf("first child = %+v, want guide dir", tree.Children[0])
	}
	if tree.Children[1].Name != "index.md" {
		t.Errorf("second child = %+v, want index.md", tree.Children[1])
	}

	guide := tree.Children[0]
	if guide.Children[0].Name != "images" || !guide.Children[0].IsDir {
		t.Errorf("guide children = %+v", guide.Children)
	}
}

func TestTreeToHTML(t *testing.T) {
	s := newTestStore(t)

	tree, err := s.BuildTree(0)
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}

	html := tree.ToHTML("guide/overview.md", func(rel string) string {
		return "/files/" + rel
	})

	if !strings.Contains(html, `href="/files/guide/overview.md"`) {
		t.Errorf("tree HTML missing overview link:\n%s", html)
	}
	if !strings.Contains(html, `class="active"`) {
		t.Error("tree HTML missing active marker")
	}
	if !strings.Contains(html, `class="dir expanded"`) {
		t.Error("ancestor folder of active file not expanded")
	}
}
