package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lennoxmeldrum/mongol-atlas/web"
)

// SetupStaticRoutes serves the embedded single-page client.
func SetupStaticRoutes(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		serveStaticFile(c, "index.html")
	})
	r.GET("/static/*filepath", func(c *gin.Context) {
		path := strings.TrimPrefix(c.Param("filepath"), "/")
		if path == "" {
			path = "index.html"
		}
		serveStaticFile(c, path)
	})
}

func serveStaticFile(c *gin.Context, filename string) {
	file, err := web.StaticFS.Open("static/" + filename)
	if err != nil {
		c.String(http.StatusNotFound, "File not found")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to read file")
		return
	}

	contentType := "text/html; charset=utf-8"
	switch {
	case strings.HasSuffix(filename, ".js"):
		contentType = "application/javascript"
	case strings.HasSuffix(filename, ".css"):
		contentType = "text/css"
	case strings.HasSuffix(filename, ".svg"):
		contentType = "image/svg+xml"
	}

	c.Data(http.StatusOK, contentType, content)
}
