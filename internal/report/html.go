package report

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	ghtml "github.com/yuin/goldmark/renderer/html"
)

// pageTemplate is the HTML shell wrapped around every rendered page.
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; max-width: 60rem; margin: 2rem auto; padding: 0 1rem; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.3rem 0.6rem; text-align: left; }
pre { background: #f6f8fa; padding: 1rem; overflow-x: auto; }
</style>
</head>
<body>
<nav><a href="{{.BasePath}}index.html">Overview</a> ·
<a href="{{.BasePath}}dependencies.html">Dependencies</a> ·
<a href="{{.BasePath}}usage.html">Usage</a></nav>
{{.Content}}
</body>
</html>
`))

// pageData holds the data passed to the HTML template for each page.
type pageData struct {
	Title    string
	Content  template.HTML
	BasePath string
}

// RenderHTML converts the markdown report in docsDir into a static HTML
// tree under outputDir. Returns the number of pages rendered.
func RenderHTML(docsDir, outputDir string) (int, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(highlighting.WithStyle("github")),
		),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(ghtml.WithUnsafe()),
	)

	var mdPaths []string
	err := filepath.Walk(docsDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(path, ".md") {
			rel, err := filepath.Rel(docsDir, path)
			if err != nil {
				return err
			}
			mdPaths = append(mdPaths, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("walking report dir: %w", err)
	}
	if len(mdPaths) == 0 {
		return 0, fmt.Errorf("no markdown files found in %s", docsDir)
	}

	pages := 0
	for _, relPath := range mdPaths {
		src, err := os.ReadFile(filepath.Join(docsDir, filepath.FromSlash(relPath)))
		if err != nil {
			return pages, fmt.Errorf("reading %s: %w", relPath, err)
		}

		// Rewrite intra-report markdown links to their HTML names.
		content := strings.ReplaceAll(string(src), ".md)", ".html)")

		var buf bytes.Buffer
		if err := md.Convert([]byte(content), &buf); err != nil {
			return pages, fmt.Errorf("rendering %s: %w", relPath, err)
		}

		basePath := ""
		if strings.Contains(relPath, "/") {
			basePath = strings.Repeat("../", strings.Count(relPath, "/"))
		}
		data := pageData{
			Title:    extractTitle(content, relPath),
			Content:  template.HTML(buf.String()),
			BasePath: basePath,
		}

		outPath := filepath.Join(outputDir, strings.TrimSuffix(filepath.FromSlash(relPath), ".md")+".html")
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return pages, err
		}
		var page bytes.Buffer
		if err := pageTemplate.Execute(&page, data); err != nil {
			return pages, fmt.Errorf("templating %s: %w", relPath, err)
		}
		if err := os.WriteFile(outPath, page.Bytes(), 0o644); err != nil {
			return pages, fmt.Errorf("writing %s: %w", outPath, err)
		}
		pages++
	}
	return pages, nil
}

// extractTitle returns the first H1 heading, falling back to the file
// name.
func extractTitle(content, relPath string) string {
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return strings.TrimSuffix(filepath.Base(relPath), ".md")
}
