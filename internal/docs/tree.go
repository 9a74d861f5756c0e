package docs

import (
	"fmt"
	"html"
	"sort"
	"strings"
)

// TreeNode is a node in the sidebar file tree.
type TreeNode struct {
	Name     string
	Path     string // slash-separated path relative to the docs root
	IsDir    bool
	Children []*TreeNode
}

// BuildTree walks the store's visible folders into a tree for the sidebar.
// depthLimit guards against pathological nesting; 0 means no limit.
func (s *Store) BuildTree(depthLimit int) (*TreeNode, error) {
	root := &TreeNode{Name: "docs", Path: ".", IsDir: true}
	if err := s.fillTree(root, ".", 0, depthLimit); err != nil {
		return nil, err
	}
	return root, nil
}

func (s *Store) fillTree(node *TreeNode, rel string, depth, limit int) error {
	if limit > 0 && depth >= limit {
		return nil
	}
	folder, err := s.ListFolder(rel)
	if err != nil {
		return err
	}
	for _, name := range folder.Folders {
		childPath := joinRel(rel, name)
		child := &TreeNode{Name: name, Path: childPath, IsDir: true}
		if err := s.fillTree(child, childPath, depth+1, limit); err != nil {
			return err
		}
		node.Children = append(node.Children, child)
	}
	for _, name := range folder.Files {
		node.Children = append(node.Children, &TreeNode{Name: name, Path: joinRel(rel, name)})
	}
	sortTree(node)
	return nil
}

// sortTree recursively sorts children: directories first, then files,
// alphabetically.
func sortTree(node *TreeNode) {
	sort.Slice(node.Children, func(i, j int) bool {
		if node.Children[i].IsDir != node.Children[j].IsDir {
			return node.Children[i].IsDir
		}
		return node.Children[i].Name < node.Children[j].Name
	})
	for _, child := range node.Children {
		if child.IsDir {
			sortTree(child)
		}
	}
}

// ToHTML renders the tree as nested <ul><li> HTML for the sidebar. hrefFor
// maps a file's relative path to the link target; activePath marks the entry
// for the document on screen.
func (t *TreeNode) ToHTML(activePath string, hrefFor func(relPath string) string) string {
	ancestors := activeAncestors(activePath)

	var b strings.Builder
	renderChildren(&b, t, activePath, hrefFor, ancestors)
	return b.String()
}

// activeAncestors returns the set of directory paths above activePath.
func activeAncestors(activePath string) map[string]bool {
	ancestors := make(map[string]bool)
	parts := strings.Split(activePath, "/")
	for i := 1; i < len(parts); i++ {
		ancestors[strings.Join(parts[:i], "/")] = true
	}
	return ancestors
}

func renderChildren(b *strings.Builder, node *TreeNode, activePath string, hrefFor func(string) string, ancestors map[string]bool) {
	if len(node.Children) == 0 {
		return
	}
	b.WriteString("<ul>\n")
	for _, child := range node.Children {
		if child.IsDir {
			expanded := ""
			if ancestors[child.Path] {
				expanded = "expanded"
			}
			fmt.Fprintf(b, `<li class="dir %s"><span class="dir-toggle">%s</span>`+"\n", expanded, html.EscapeString(child.Name))
			renderChildren(b, child, activePath, hrefFor, ancestors)
			b.WriteString("</li>\n")
		} else {
			activeClass := ""
			if child.Path == activePath {
				activeClass = ` class="active"`
			}
			fmt.Fprintf(b, `<li class="file"><a href="%s"%s>%s</a></li>`+"\n",
				html.EscapeString(hrefFor(child.Path)), activeClass, html.EscapeString(child.Name))
		}
	}
	b.WriteString("</ul>\n")
}

func joinRel(rel, name string) string {
	if rel == "." || rel == "" {
		return name
	}
	return rel + "/" + name
}
