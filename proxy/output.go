package proxy

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/castorhq/castor/jsonschema"
)

// schemaWriter persists rendered schemas to a directory, one file per source
// and direction, e.g. localhost_8080_widgets_{arg1}.resp.json.
type schemaWriter struct {
	dir string
}

func newSchemaWriter(dir string) *schemaWriter {
	if dir == "" {
		return nil
	}
	return &schemaWriter{dir: dir}
}

func (w *schemaWriter) write(host, path, direction string, s jsonschema.Schema) {
	if w == nil {
		return
	}

	bs, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		slog.Error("could not render schema", "err", err)
		return
	}

	name := fileName(host, path, direction)
	fp := filepath.Join(w.dir, name)
	slog.Info("writing schema", "path", fp)
	if err := os.WriteFile(fp, bs, 0o644); err != nil {
		slog.Error("could not write schema", "path", fp, "err", err)
	}
}

func fileName(host, path, direction string) string {
	h := strings.ReplaceAll(host, ":", "_")
	p := strings.NewReplacer("/", "_", "{", "", "}", "").Replace(path)
	return h + p + "." + direction + ".json"
}
