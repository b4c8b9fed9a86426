// Package render builds the HTML template set served by gin.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
)

//go:embed templates
var files embed.FS

// Templates parses every page under templates/. Each template is named by
// its path relative to that directory, e.g. "blog/detail.html".
func Templates(media MediaURLer) (*template.Template, error) {
	root := template.New("").Funcs(Funcs(media))
	err := fs.WalkDir(files, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".html") {
			return err
		}
		data, err := files.ReadFile(path)
		if err != nil {
			return err
		}
		name := strings.TrimPrefix(path, "templates/")
		if _, err := root.New(name).Parse(string(data)); err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return root, nil
}
