// Package tree materializes a lazily-expanded view of a directory tree. It
// has no dependency on any host SDK: hosts (HTTP handlers, terminal UIs)
// adapt their own events onto Children, Descriptor, and Refresh.
package tree

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/dirscope/dirscope/internal/fs"
	"github.com/dirscope/dirscope/internal/size"
)

// Node identifies a filesystem location plus its type. Nodes are ephemeral:
// constructed on demand each time a parent is expanded, never persisted, and
// compared by path.
type Node struct {
	Path string       `json:"path"`
	Type fs.EntryType `json:"type"`
}

// SizeAnnotation is the human-readable size pair attached to a descriptor.
// Files carry (actual, estimated compressed); directories carry (recursive
// aggregate, nothing).
type SizeAnnotation struct {
	Primary   int64  `json:"primary"`
	Secondary *int64 `json:"secondary,omitempty"`
	Display   string `json:"display"`
}

// Action is the open binding carried by file descriptors.
type Action struct {
	Command string `json:"command"`
	Path    string `json:"path"`
}

// Descriptor is the renderable summary of a node.
type Descriptor struct {
	Label      string         `json:"label"`
	Expandable bool           `json:"expandable"`
	Size       SizeAnnotation `json:"size"`
	Action     *Action        `json:"action,omitempty"`
}

// RefreshFunc receives refresh notifications. A nil node means the whole
// tree must be re-pulled.
type RefreshFunc func(node *Node)

// Materializer turns the on-disk tree rooted at a configured workspace root
// into demand-driven sequences of nodes. The directory hierarchy on disk is
// the model; nothing is cached in memory, so every expand recomputes.
type Materializer struct {
	root string
	fsys fs.FileSystem
	est  *size.Estimator
	coll *collate.Collator

	mu        sync.RWMutex
	onRefresh []RefreshFunc
}

// New creates a Materializer over the first filesystem root in roots. Roots
// may be plain paths or file:// URIs; entries with any other scheme are
// ignored. With no usable root the materializer serves an empty tree.
func New(roots []string, fsys fs.FileSystem) *Materializer {
	return &Materializer{
		root: selectRoot(roots),
		fsys: fsys,
		est:  size.NewEstimator(fsys),
		coll: collate.New(language.Und),
	}
}

func selectRoot(roots []string) string {
	for _, r := range roots {
		if after, ok := strings.CutPrefix(r, "file://"); ok {
			// file://host/path carries an authority before the path.
			if i := strings.Index(after, "/"); i > 0 {
				after = after[i:]
			}
			if strings.HasPrefix(after, "/") {
				return after
			}
			continue
		}
		if !strings.Contains(r, "://") {
			return r
		}
	}
	return ""
}

// Root returns the selected workspace root, or "" when none is configured.
func (m *Materializer) Root() string {
	return m.root
}

// Children lists the immediate children of parent, or of the workspace root
// when parent is nil. An unconfigured root yields an empty sequence, not an
// error. Root-level children are sorted with directories first, then by
// locale-aware name comparison; sub-level children keep listing order.
func (m *Materializer) Children(ctx context.Context, parent *Node) ([]Node, error) {
	if m.root == "" {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, &fs.Error{Kind: fs.KindCancelled, Path: m.root, Err: err}
	}

	dir := m.root
	if parent != nil {
		dir = parent.Path
	}
	entries, err := m.fsys.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	if parent == nil {
		m.sortEntries(entries)
	}

	nodes := make([]Node, len(entries))
	for i, e := range entries {
		nodes[i] = Node{Path: filepath.Join(dir, e.Name), Type: e.Type}
	}
	return nodes, nil
}

func (m *Materializer) sortEntries(entries []fs.DirEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		di := entries[i].Type == fs.TypeDirectory
		dj := entries[j].Type == fs.TypeDirectory
		if di != dj {
			return di
		}
		return m.coll.CompareString(entries[i].Name, entries[j].Name) < 0
	})
}

// Descriptor computes the renderable summary for node. Size computation is
// advisory: any failure inside it degrades to a zero annotation rather than
// propagating. The only error surfaced is cancellation of a directory
// aggregation, where a partial sum would be silently wrong.
func (m *Materializer) Descriptor(ctx context.Context, node Node) (Descriptor, error) {
	d := Descriptor{
		Label:      filepath.Base(node.Path),
		Expandable: node.Type == fs.TypeDirectory,
	}

	switch node.Type {
	case fs.TypeDirectory:
		total, err := m.est.DirectorySize(ctx, node.Path)
		if err != nil {
			return Descriptor{}, err
		}
		d.Size = SizeAnnotation{
			Primary: total,
			Display: humanize.IBytes(uint64(total)),
		}
	case fs.TypeFile:
		actual := m.est.FileSize(node.Path)
		compressed := m.est.CompressedSize(node.Path)
		d.Size = SizeAnnotation{
			Primary:   actual,
			Secondary: &compressed,
			Display:   fmt.Sprintf("%s (%s compressed)", humanize.IBytes(uint64(actual)), humanize.IBytes(uint64(compressed))),
		}
		d.Action = &Action{Command: "open", Path: node.Path}
	}
	return d, nil
}

// OnRefresh registers a callback for refresh notifications.
func (m *Materializer) OnRefresh(fn RefreshFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onRefresh = append(m.onRefresh, fn)
}

// Refresh signals that the subtree rooted at node (or the whole tree, when
// node is nil) must be re-pulled. It is a pure notification: no I/O happens
// here and there is no cache to invalidate.
func (m *Materializer) Refresh(node *Node) {
	m.mu.RLock()
	callbacks := make([]RefreshFunc, len(m.onRefresh))
	copy(callbacks, m.onRefresh)
	m.mu.RUnlock()

	for _, fn := range callbacks {
		fn(node)
	}
}
