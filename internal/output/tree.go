package output

import (
	"path"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
)

// statusColumn is the column file statuses are aligned to.
const statusColumn = 40

// fileTree is one directory entry of a rendered tree. Entries with children
// render as directories.
type fileTree struct {
	name     string
	status   string
	children map[string]*fileTree
}

func (n *fileTree) child(name string) *fileTree {
	if n.children == nil {
		n.children = make(map[string]*fileTree)
	}
	c, ok := n.children[name]
	if !ok {
		c = &fileTree{name: name}
		n.children[name] = c
	}
	return c
}

func (n *fileTree) isDir() bool {
	return len(n.children) > 0
}

// sorted lists children with directories first, each part by name.
func (n *fileTree) sorted() []*fileTree {
	out := make([]*fileTree, 0, len(n.children))
	for _, c := range n.children {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].isDir() != out[j].isDir() {
			return out[i].isDir()
		}
		return out[i].name < out[j].name
	})
	return out
}

// RenderFileTree renders relative paths as a tree under rootName with each
// path's status aligned in a column. Paths may use either separator; the
// path "." carries the status of the root itself. Returns "" for no paths.
func RenderFileTree(rootName string, files map[string]string) string {
	if len(files) == 0 {
		return ""
	}

	root := &fileTree{name: rootName}
	for p, status := range files {
		p = path.Clean(filepath.ToSlash(p))
		if p == "." {
			root.status = status
			continue
		}
		n := root
		for _, part := range strings.Split(p, "/") {
			n = n.child(part)
		}
		n.status = status
	}

	var b strings.Builder
	head := rootName + "/"
	b.WriteString(StyleSummary.Render(head))
	b.WriteString(statusSuffix(utf8.RuneCountInString(head), root.status))
	root.write(&b, "")
	return b.String()
}

func (n *fileTree) write(b *strings.Builder, indent string) {
	children := n.sorted()
	for i, c := range children {
		branch, next := "├── ", "│   "
		if i == len(children)-1 {
			branch, next = "└── ", "    "
		}

		line := indent + branch + c.name
		if c.isDir() {
			line += "/"
		}
		b.WriteString(line)
		b.WriteString(statusSuffix(utf8.RuneCountInString(line), c.status))

		c.write(b, indent+next)
	}
}

// statusSuffix pads a line of the given width to the status column and
// ends it.
func statusSuffix(width int, status string) string {
	if status == "" {
		return "\n"
	}
	pad := statusColumn - width
	if pad < 2 {
		pad = 2
	}
	return strings.Repeat(" ", pad) + StatusStyle(status).Render(status) + "\n"
}
