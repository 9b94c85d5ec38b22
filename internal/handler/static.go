package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

const staticDir = "static"

// ServeIndex는 루트 경로에서 진입 문서를 반환한다.
func ServeIndex(c *gin.Context) {
	c.File(filepath.Join(staticDir, "index.html"))
}

// ServeStatic은 등록되지 않은 GET 경로를 static 디렉토리에서 찾는다.
func ServeStatic(c *gin.Context) {
	if c.Request.Method != http.MethodGet {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	// 디렉토리 탈출 방지
	rel := filepath.Clean(strings.TrimPrefix(c.Request.URL.Path, "/"))
	if rel == "." || strings.HasPrefix(rel, "..") {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	filePath := filepath.Join(staticDir, rel)
	if info, err := os.Stat(filePath); err != nil || info.IsDir() {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	c.File(filePath)
}
