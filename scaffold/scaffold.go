// Package scaffold holds the starter files written by `folio init`.
package scaffold

import (
	"crypto/rand"
	"embed"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"
)

// Templates contains the starter files. They use text/template syntax and
// have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS

// Data holds the variables passed to every template.
type Data struct {
	Name   string
	Year   int
	Secret string
}

// NewData fills Data for a site called name with a fresh session secret.
func NewData(name string) (Data, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return Data{}, fmt.Errorf("generate secret: %w", err)
	}
	return Data{Name: name, Year: time.Now().Year(), Secret: hex.EncodeToString(b)}, nil
}

// Write renders every template into dir and returns the created paths.
// Existing files are never overwritten.
func Write(dir string, data Data) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	const root = "templates"
	var created []string
	err := fs.WalkDir(Templates, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		outPath := filepath.Join(dir, strings.TrimSuffix(rel, ".tmpl"))
		if _, err := os.Stat(outPath); err == nil {
			return fmt.Errorf("%s already exists", outPath)
		}

		raw, err := Templates.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		tmpl, err := template.New(filepath.Base(path)).Parse(string(raw))
		if err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return err
		}
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", outPath, err)
		}
		defer f.Close()
		if err := tmpl.Execute(f, data); err != nil {
			return fmt.Errorf("execute template %s: %w", path, err)
		}
		created = append(created, outPath)
		return nil
	})
	return created, err
}
