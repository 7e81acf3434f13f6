// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package status

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 💾 FileManager reads and rewrites the files being migrated
type FileManager interface {
	// ReadFile returns the whole content of the file. A missing file yields an
	// error matching fs.ErrNotExist.
	ReadFile(ctx context.Context, path string) ([]byte, error)

	// WriteFileAtomic replaces the content of an existing file in one step,
	// keeping its permissions.
	WriteFileAtomic(ctx context.Context, path string, content []byte) error
}

// 🔧 Manager is the os-backed FileManager. Relative paths resolve against baseDir.
type Manager struct {
	baseDir string
}

var _ FileManager = (*Manager)(nil)

// 🏭 NewManager creates a new file manager rooted at baseDir
func NewManager(baseDir string) *Manager {
	if baseDir == "" {
		baseDir = "."
	}
	return &Manager{
		baseDir: filepath.Clean(baseDir),
	}
}

// 🔒 getAbsPath returns the on-disk path for a plan path
func (m *Manager) getAbsPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.baseDir, filepath.FromSlash(path))
}

func (m *Manager) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := os.ReadFile(m.getAbsPath(path))
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return content, nil
}

func (m *Manager) WriteFileAtomic(ctx context.Context, path string, content []byte) error {
	info, err := os.Stat(m.getAbsPath(path))
	if err != nil {
		return errors.Errorf("stat file: %w", err)
	}

	// the rename must replace the link target, not the link
	absPath, err := filepath.EvalSymlinks(m.getAbsPath(path))
	if err != nil {
		return errors.Errorf("resolving symlinks: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(absPath), "."+filepath.Base(absPath)+".*.tmp")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tempPath := tmp.Name()

	cleanup := func() {
		if rerr := os.Remove(tempPath); rerr != nil && !os.IsNotExist(rerr) {
			zerolog.Ctx(ctx).Debug().Err(rerr).Str("path", tempPath).Msg("removing temp file")
		}
	}

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		cleanup()
		return errors.Errorf("writing temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		cleanup()
		return errors.Errorf("closing temp file: %w", err)
	}

	if err := os.Chmod(tempPath, info.Mode().Perm()); err != nil {
		cleanup()
		return errors.Errorf("setting temp file mode: %w", err)
	}

	// Rename temp file to target (atomic operation)
	if err := os.Rename(tempPath, absPath); err != nil {
		cleanup()
		return errors.Errorf("renaming temp file: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", absPath).Int("bytes", len(content)).Msg("file rewritten")
	return nil
}
