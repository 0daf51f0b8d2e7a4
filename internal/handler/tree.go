package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dirscope/dirscope/internal/fs"
	"github.com/dirscope/dirscope/internal/tree"
)

// TreeHandler adapts the tree protocol (children, descriptor, refresh,
// reveal) onto HTTP.
type TreeHandler struct {
	mat  *tree.Materializer
	fsys fs.FileSystem
}

// NewTreeHandler creates a new tree handler.
func NewTreeHandler(mat *tree.Materializer, fsys fs.FileSystem) *TreeHandler {
	return &TreeHandler{mat: mat, fsys: fsys}
}

// kindToStatus maps an error kind onto an HTTP status code.
func kindToStatus(kind fs.ErrorKind) int {
	switch kind {
	case fs.KindNotFound:
		return http.StatusNotFound
	case fs.KindNoPermission:
		return http.StatusForbidden
	case fs.KindIsADirectory, fs.KindAlreadyExists:
		return http.StatusBadRequest
	case fs.KindCancelled:
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

// nodeAt stats path and builds the ephemeral node for it. ok is false when
// the path no longer exists.
func (h *TreeHandler) nodeAt(path string) (tree.Node, bool) {
	desc := h.fsys.Stat(path)
	if desc == (fs.StatDescriptor{}) {
		return tree.Node{}, false
	}
	return tree.Node{Path: path, Type: desc.Type}, true
}

// Children returns the immediate children of the node at ?path=, or of the
// workspace root when the query is absent. A root request with no configured
// workspace returns an empty list.
func (h *TreeHandler) Children(c *gin.Context) {
	path := c.Query("path")

	var parent *tree.Node
	if path != "" {
		node, ok := h.nodeAt(path)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "no such path"})
			return
		}
		parent = &node
	}

	nodes, err := h.mat.Children(c.Request.Context(), parent)
	if err != nil {
		c.JSON(kindToStatus(fs.KindOf(err)), gin.H{"error": err.Error()})
		return
	}
	if nodes == nil {
		nodes = []tree.Node{}
	}
	c.JSON(http.StatusOK, nodes)
}

// Node returns the display descriptor for the node at ?path=.
func (h *TreeHandler) Node(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path is required"})
		return
	}

	node, ok := h.nodeAt(path)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such path"})
		return
	}

	desc, err := h.mat.Descriptor(c.Request.Context(), node)
	if err != nil {
		c.JSON(kindToStatus(fs.KindOf(err)), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, desc)
}

// RefreshRequest identifies the subtree to refresh. An empty path means the
// whole tree.
type RefreshRequest struct {
	Path string `json:"path"`
}

// Refresh signals subscribers that a subtree must be re-pulled.
func (h *TreeHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	_ = c.ShouldBindJSON(&req)

	if req.Path == "" {
		h.mat.Refresh(nil)
	} else {
		node, ok := h.nodeAt(req.Path)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "no such path"})
			return
		}
		h.mat.Refresh(&node)
	}
	c.JSON(http.StatusOK, gin.H{"message": "refresh signalled"})
}

// RevealRequest identifies the node to reveal in the system file explorer.
type RevealRequest struct {
	Path string `json:"path" binding:"required"`
}

// Reveal opens the node's containing folder in the OS file explorer.
func (h *TreeHandler) Reveal(c *gin.Context) {
	var req RevealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path is required"})
		return
	}

	node, ok := h.nodeAt(req.Path)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such path"})
		return
	}

	h.mat.Reveal(node)
	c.JSON(http.StatusOK, gin.H{"message": "revealed"})
}
