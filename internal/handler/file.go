// Package handler provides the HTTP adapters that translate host UI requests
// into calls on the tree and filesystem protocols.
package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dirscope/dirscope/internal/fs"
	"github.com/dirscope/dirscope/internal/markdown"
)

// markdownExtensions lists the file extensions the preview renderer accepts.
var markdownExtensions = []string{".md", ".markdown"}

// FileHandler serves file content: raw bytes for any file, rendered HTML for
// markdown.
type FileHandler struct {
	fsys     fs.FileSystem
	renderer *markdown.Renderer
}

// NewFileHandler creates a new file handler.
func NewFileHandler(fsys fs.FileSystem) *FileHandler {
	return &FileHandler{
		fsys:     fsys,
		renderer: markdown.NewRenderer(),
	}
}

// cleanPath extracts and validates the wildcard path parameter.
func cleanPath(c *gin.Context) (string, bool) {
	path := strings.TrimPrefix(c.Param("path"), "/")
	if path == "" || strings.Contains(path, "..") {
		return "", false
	}
	return "/" + path, true
}

// GetRaw returns the raw content of a file. Opening a file is a primary
// operation: failures surface as typed errors mapped to HTTP status codes.
func (h *FileHandler) GetRaw(c *gin.Context) {
	path, ok := cleanPath(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "invalid path"})
		return
	}

	if h.fsys.Stat(path).IsDirectory {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path is a directory"})
		return
	}

	content, err := h.fsys.ReadFile(path)
	if err != nil {
		c.JSON(kindToStatus(fs.KindOf(err)), gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/octet-stream", content)
}

// GetPreview returns the rendered HTML for a markdown file.
func (h *FileHandler) GetPreview(c *gin.Context) {
	path, ok := cleanPath(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "invalid path"})
		return
	}

	ext := strings.ToLower(filepath.Ext(path))
	renderable := false
	for _, e := range markdownExtensions {
		if ext == e {
			renderable = true
			break
		}
	}
	if !renderable {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "preview supports markdown files only"})
		return
	}

	content, err := h.fsys.ReadFile(path)
	if err != nil {
		c.JSON(kindToStatus(fs.KindOf(err)), gin.H{"error": err.Error()})
		return
	}

	doc, err := h.renderer.Render(content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"path":    strings.TrimPrefix(path, "/"),
		"title":   doc.Title,
		"html":    doc.HTML,
		"outline": doc.Outline,
	})
}

// Unsupported answers for the write-family endpoints. No working
// implementation exists for them in this service.
func Unsupported(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, gin.H{"error": fs.ErrUnsupported.Error()})
}
