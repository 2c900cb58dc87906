package web

import (
	"embed"
	"io/fs"
	"path"
)

var (
	//go:embed static/*
	embeddedStaticFiles embed.FS

	//go:embed templates
	embeddedTemplates embed.FS
)

// templateEmbedFS serves the embedded 'templates' directory as the root,
// so template names read "users/list" rather than "templates/users/list".
type templateEmbedFS struct {
	content embed.FS
}

// Open opens the named file below 'templates'.
func (e templateEmbedFS) Open(name string) (fs.File, error) {
	return e.content.Open(path.Join("templates", name))
}
