// Package render turns pipeline descriptors into generated worker
// projects. Template sets are embedded; each set is a directory whose
// .tmpl files are executed with the descriptor as context and whose
// remaining files are copied verbatim.
package render

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/pipeforge-labs/pipeforge/pkg/descriptor"
)

//go:embed all:templates
var templateFS embed.FS

// DefaultSet is the template set used when none is configured.
const DefaultSet = "python-worker"

// Options select the template set and output location for one render.
type Options struct {
	// Set is the template set name. Empty means DefaultSet.
	Set string
	// OutDir is the directory the rendered files are written under.
	OutDir string
	// Pipeline names the pipeline, available to templates as .Pipeline.
	Pipeline string
}

// Context is the data handed to every template execution.
type Context struct {
	Pipeline   string
	Descriptor *descriptor.Descriptor
}

// funcs are the helpers available inside templates.
var funcs = template.FuncMap{
	"join":  strings.Join,
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
	"toJson": func(v any) (string, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	},
	"toPrettyJson": func(v any) (string, error) {
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", err
		}
		return string(b), nil
	},
}

// Sets lists the embedded template sets, sorted.
func Sets() ([]string, error) {
	entries, err := fs.ReadDir(templateFS, "templates")
	if err != nil {
		return nil, err
	}
	sets := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			sets = append(sets, e.Name())
		}
	}
	sort.Strings(sets)
	return sets, nil
}

// HasSet reports whether the named template set is embedded.
func HasSet(name string) bool {
	info, err := fs.Stat(templateFS, path.Join("templates", name))
	return err == nil && info.IsDir()
}

// SetFiles returns the output file names a template set produces, with
// .tmpl suffixes stripped and special files renamed.
func SetFiles(name string) ([]string, error) {
	var files []string
	root := path.Join("templates", name)

	err := fs.WalkDir(templateFS, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		files = append(files, renameSpecialFiles(strings.TrimSuffix(rel, ".tmpl")))
		return nil
	})
	return files, err
}

// Render writes one pipeline project under opts.OutDir. Existing files
// are overwritten; the output tree is owned by the generator.
func Render(desc *descriptor.Descriptor, opts Options) error {
	if desc == nil {
		return fmt.Errorf("render: nil descriptor")
	}

	set := opts.Set
	if set == "" {
		set = DefaultSet
	}
	root := path.Join("templates", set)
	if !HasSet(set) {
		return fmt.Errorf("unknown template set %q", set)
	}

	if err := os.MkdirAll(opts.OutDir, 0750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tctx := Context{Pipeline: opts.Pipeline, Descriptor: desc}

	return fs.WalkDir(templateFS, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		target := filepath.Join(opts.OutDir, renameSpecialFiles(rel))

		if d.IsDir() {
			return os.MkdirAll(target, 0750)
		}

		content, err := templateFS.ReadFile(p)
		if err != nil {
			return err
		}

		if strings.HasSuffix(rel, ".tmpl") {
			target = strings.TrimSuffix(target, ".tmpl")
			content, err = execute(rel, string(content), tctx)
			if err != nil {
				return err
			}
		}

		return os.WriteFile(target, content, 0600)
	})
}

// execute runs one template with the render context.
func execute(name, text string, tctx Context) ([]byte, error) {
	tmpl, err := template.New(name).Funcs(funcs).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, tctx); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// renameSpecialFiles handles files that need renaming (e.g., dotfiles).
func renameSpecialFiles(p string) string {
	base := filepath.Base(p)
	dir := filepath.Dir(p)

	switch base {
	case "gitignore":
		return filepath.Join(dir, ".gitignore")
	default:
		return p
	}
}
