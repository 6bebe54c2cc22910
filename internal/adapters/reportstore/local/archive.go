package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Archive はローカルディレクトリにレポートを書き出します。
type Archive struct {
	dir string
}

// NewArchive は dir を作成して Archive を返します。
func NewArchive(dir string) (*Archive, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("local archive: create dir %s: %w", dir, err)
	}
	return &Archive{dir: dir}, nil
}

// Save は name のファイルを上書き保存し、そのパスを返します。
func (a *Archive) Save(_ context.Context, name string, body []byte) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("local archive: invalid report name %q", name)
	}

	path := filepath.Join(a.dir, name)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("local archive: write %s: %w", path, err)
	}
	return path, nil
}
