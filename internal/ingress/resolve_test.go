package ingress

import "testing"

func TestResolveRelativePath(t *testing.T) {
	tests := []struct {
		name    string
		link    string
		current string
		want    string
	}{
		{
			name:    "dot slash sibling",
			link:    "./b.md",
			current: "/api/file/a/index.md",
			want:    "/api/file/a/b.md",
		},
		{
			name:    "single parent",
			link:    "../c.md",
			current: "/api/file/a/b/index.md",
			want:    "/api/file/a/c.md",
		},
		{
			name:    "bare name at root",
			link:    "d.md",
			current: "/api/file/index.md",
			want:    "/api/file/d.md",
		},
		{
			name:    "parent chain clamps at root",
			link:    "../../x.md",
			current: "/api/file/a/index.md",
			want:    "/api/file/x.md",
		},
		{
			name:    "bare name resolves like dot slash",
			link:    "notes.md",
			current: "/api/file/projects/readme.md",
			want:    "/api/file/projects/notes.md",
		},
		{
			name:    "deep parent chain",
			link:    "../../overview.md",
			current: "/api/file/a/b/c/deep.md",
			want:    "/api/file/a/overview.md",
		},
		{
			name:    "target with subdirectory",
			link:    "./sub/page.md",
			current: "/api/file/docs/index.md",
			want:    "/api/file/docs/sub/page.md",
		},
		{
			name:    "ingress token prefix preserved",
			link:    "../overview.md",
			current: "/api/hassio_ingress/9cZUpDRS/api/file/docs/guide/index.md",
			want:    "/api/hassio_ingress/9cZUpDRS/api/file/docs/overview.md",
		},
		{
			name:    "route-encoded current path decoded first",
			link:    "./b.md",
			current: "?route=%2Fapi%2Ffile%2Fa%2Findex.md",
			want:    "/api/file/a/b.md",
		},
		{
			name:    "root document no doubled separator",
			link:    "./top.md",
			current: "/api/file/index.md",
			want:    "/api/file/top.md",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveRelativePath(tt.link, tt.current)
			if got != tt.want {
				t.Errorf("ResolveRelativePath(%q, %q) = %q, want %q", tt.link, tt.current, got, tt.want)
			}
		})
	}
}
