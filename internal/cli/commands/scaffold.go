package commands

import (
	"bytes"
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

//go:embed all:scaffold
var scaffoldFS embed.FS

// scaffoldAnswers carries the values substituted into the scaffold.
type scaffoldAnswers struct {
	ProjectName string
	SourceType  string
	SinkType    string
}

// writeScaffold materializes the embedded project scaffold under dir.
// Files suffixed .tmpl run through text/template with the answers;
// existing files are kept unless force is set. Returns the files written.
func writeScaffold(dir string, answers scaffoldAnswers, force bool) ([]string, error) {
	var created []string

	err := fs.WalkDir(scaffoldFS, "scaffold", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel := strings.TrimPrefix(path, "scaffold")
		rel = strings.TrimPrefix(rel, "/")
		if rel == "" {
			return nil
		}

		target := filepath.Join(dir, renameSpecialFiles(rel))
		if d.IsDir() {
			return os.MkdirAll(target, 0750)
		}

		data, err := scaffoldFS.ReadFile(path)
		if err != nil {
			return err
		}
		name := rel
		if strings.HasSuffix(target, ".tmpl") {
			target = strings.TrimSuffix(target, ".tmpl")
			name = strings.TrimSuffix(renameSpecialFiles(rel), ".tmpl")
			if data, err = executeScaffoldTemplate(rel, data, answers); err != nil {
				return err
			}
		} else {
			name = renameSpecialFiles(rel)
		}

		if _, err := os.Stat(target); err == nil && !force {
			return nil
		}
		if err := os.WriteFile(target, data, 0600); err != nil {
			return err
		}
		created = append(created, name)
		return nil
	})
	return created, err
}

func executeScaffoldTemplate(name string, data []byte, answers scaffoldAnswers) ([]byte, error) {
	tmpl, err := template.New(name).Parse(string(data))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, answers); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renameSpecialFiles maps embed-safe names onto their real ones. go:embed
// cannot carry dotfiles, so "gitignore" stands in for ".gitignore".
func renameSpecialFiles(rel string) string {
	if filepath.Base(rel) == "gitignore" {
		return filepath.Join(filepath.Dir(rel), ".gitignore")
	}
	return rel
}
