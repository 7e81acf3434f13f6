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

package operation

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/walteh/routermigrate/pkg/config"
	"github.com/walteh/routermigrate/pkg/log"
	"github.com/walteh/routermigrate/pkg/preset"
	"github.com/walteh/routermigrate/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🔧 MockFileManager is a mock implementation of the status.FileManager interface
type MockFileManager struct {
	mock.Mock
}

func (m *MockFileManager) ReadFile(ctx context.Context, path string) ([]byte, error) {
	result := m.Called(ctx, path)
	content, _ := result.Get(0).([]byte)
	return content, result.Error(1)
}

func (m *MockFileManager) WriteFileAtomic(ctx context.Context, path string, content []byte) error {
	result := m.Called(ctx, path, content)
	return result.Error(0)
}

const fixture = "import { useNavigate, useParams } from 'react-router-dom';\n" +
	"const navigate = useNavigate();\n" +
	"const { id } = useParams();\n" +
	"navigate('/x');"

const migrated = "import { useRouter } from 'next/router';\n" +
	"const router = useRouter();\n" +
	"const router = useRouter(); const { id  } = router.query;\n" +
	"router.push('/x');"

func setupFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755), "creating parent directories")
		require.NoError(t, os.WriteFile(path, []byte(content), 0644), "writing fixture")
	}
	return dir
}

func readFile(t *testing.T, dir, name string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
	require.NoError(t, err)
	return string(content)
}

func newMigrator(t *testing.T, files status.FileManager, plan *config.Plan, dryRun bool) (*Migrator, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	m, err := New(Options{
		Plan:   plan,
		Files:  files,
		Logger: log.New(buf, zerolog.Nop()),
		DryRun: dryRun,
	})
	require.NoError(t, err)
	return m, buf
}

func TestMigrator_Process(t *testing.T) {
	tests := []struct {
		name        string
		files       map[string]string
		path        string
		dryRun      bool
		wantOutcome status.Outcome
		wantContent string
		wantErr     string
	}{
		{
			name:        "rewrites_changed_file",
			files:       map[string]string{"frontend/pages/auth.tsx": fixture},
			path:        "frontend/pages/auth.tsx",
			wantOutcome: status.OutcomeSuccess,
			wantContent: migrated,
		},
		{
			name:        "skips_unchanged_file",
			files:       map[string]string{"frontend/pages/about-us.tsx": "export default function About() {}\n"},
			path:        "frontend/pages/about-us.tsx",
			wantOutcome: status.OutcomeSkipped,
			wantContent: "export default function About() {}\n",
		},
		{
			name:        "reports_missing_file",
			files:       map[string]string{},
			path:        "frontend/pages/notfound.tsx",
			wantOutcome: status.OutcomeNotFound,
		},
		{
			name:        "rejects_invalid_utf8",
			files:       map[string]string{"bad.tsx": "navigate('/x')\xff\xfe"},
			path:        "bad.tsx",
			wantOutcome: status.OutcomeFailed,
			wantContent: "navigate('/x')\xff\xfe",
			wantErr:     "invalid UTF-8",
		},
		{
			name:        "dry_run_leaves_file_alone",
			files:       map[string]string{"frontend/pages/auth.tsx": fixture},
			path:        "frontend/pages/auth.tsx",
			dryRun:      true,
			wantOutcome: status.OutcomeSuccess,
			wantContent: fixture,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := setupFiles(t, tt.files)
			m, _ := newMigrator(t, status.NewManager(dir), preset.NextRouter(), tt.dryRun)

			res := m.Process(context.Background(), tt.path)

			assert.Equal(t, tt.path, res.Path)
			assert.Equal(t, tt.wantOutcome, res.Outcome, "outcome should match")
			assert.Equal(t, tt.dryRun, res.DryRun)
			if tt.wantErr != "" {
				require.Error(t, res.Err)
				assert.Contains(t, res.Err.Error(), tt.wantErr)
			}

			if tt.wantOutcome == status.OutcomeNotFound {
				require.Error(t, res.Err)
				_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(tt.path)))
				assert.True(t, os.IsNotExist(err), "missing file should not be created")
				return
			}

			assert.Equal(t, tt.wantContent, readFile(t, dir, tt.path))
		})
	}
}

func TestMigrator_Process_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("read_error", func(t *testing.T) {
		files := &MockFileManager{}
		files.On("ReadFile", mock.Anything, "a.tsx").Return(nil, errors.New("permission denied"))

		m, _ := newMigrator(t, files, preset.NextRouter(), false)
		res := m.Process(ctx, "a.tsx")

		assert.Equal(t, status.OutcomeFailed, res.Outcome)
		assert.EqualError(t, res.Err, "permission denied")
		files.AssertExpectations(t)
		files.AssertNotCalled(t, "WriteFileAtomic", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("write_error", func(t *testing.T) {
		files := &MockFileManager{}
		files.On("ReadFile", mock.Anything, "a.tsx").Return([]byte(fixture), nil)
		files.On("WriteFileAtomic", mock.Anything, "a.tsx", []byte(migrated)).Return(errors.New("read-only file system"))

		m, _ := newMigrator(t, files, preset.NextRouter(), false)
		res := m.Process(ctx, "a.tsx")

		assert.Equal(t, status.OutcomeFailed, res.Outcome)
		assert.Contains(t, res.Err.Error(), "read-only file system")
		files.AssertExpectations(t)
	})

	t.Run("unchanged_file_is_not_written", func(t *testing.T) {
		files := &MockFileManager{}
		files.On("ReadFile", mock.Anything, "a.tsx").Return([]byte(migrated), nil)

		m, _ := newMigrator(t, files, preset.NextRouter(), false)
		res := m.Process(ctx, "a.tsx")

		assert.Equal(t, status.OutcomeSkipped, res.Outcome)
		files.AssertNotCalled(t, "WriteFileAtomic", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cancelled_context", func(t *testing.T) {
		files := &MockFileManager{}
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		m, _ := newMigrator(t, files, preset.NextRouter(), false)
		res := m.Process(cctx, "a.tsx")

		assert.Equal(t, status.OutcomeFailed, res.Outcome)
		assert.ErrorIs(t, res.Err, context.Canceled)
		files.AssertNotCalled(t, "ReadFile", mock.Anything, mock.Anything)
	})
}

func TestMigrator_Run(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	dir := setupFiles(t, map[string]string{
		"frontend/pages/auth.tsx":     fixture,
		"frontend/pages/about-us.tsx": "export default function About() {}\n",
	})

	plan := preset.NextRouter()
	plan.Files = []string{
		"frontend/pages/auth.tsx",
		"frontend/pages/notfound.tsx",
		"frontend/pages/about-us.tsx",
	}

	logs := &bytes.Buffer{}
	ctx := zerolog.New(logs).WithContext(context.Background())

	m, buf := newMigrator(t, status.NewManager(dir), plan, false)
	summary := m.Run(ctx)

	assert.Equal(t, status.Summary{Total: 3, Success: 1, Skipped: 1, NotFound: 1}, summary)
	assert.Contains(t, logs.String(), `"unresolved":["frontend/pages/notfound.tsx"]`)
	assert.Equal(t, "✅ frontend/pages/auth.tsx\n"+
		"❌ frontend/pages/notfound.tsx (not found)\n"+
		"⏭️  frontend/pages/about-us.tsx (no changes)\n"+
		"\n🎉 Migration complete!\n"+
		"\n⚠️  REVIEW MANUALLY:\n"+
		"  - <Navigate /> components must be removed\n"+
		"  - <Outlet /> components must be replaced with {children}\n"+
		"  - Duplicate 'const router' declarations must be merged\n", buf.String())

	assert.Equal(t, migrated, readFile(t, dir, "frontend/pages/auth.tsx"))
	_, err := os.Stat(filepath.Join(dir, "frontend", "pages", "notfound.tsx"))
	assert.True(t, os.IsNotExist(err), "missing file should not be created")
}

func TestMigrator_Run_Twice(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	dir := setupFiles(t, map[string]string{"frontend/pages/auth.tsx": fixture})
	plan := preset.NextRouter()
	plan.Files = []string{"frontend/pages/auth.tsx"}

	first, _ := newMigrator(t, status.NewManager(dir), plan, false)
	assert.Equal(t, 1, first.Run(context.Background()).Success)

	second, buf := newMigrator(t, status.NewManager(dir), plan, false)
	summary := second.Run(context.Background())

	assert.Equal(t, status.Summary{Total: 1, Skipped: 1}, summary)
	assert.Contains(t, buf.String(), "⏭️  frontend/pages/auth.tsx (no changes)\n")
	assert.Equal(t, migrated, readFile(t, dir, "frontend/pages/auth.tsx"))
}

func TestMigrator_Run_AllFilesFail(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	plan := preset.NextRouter()
	m, buf := newMigrator(t, status.NewManager(t.TempDir()), plan, false)
	summary := m.Run(context.Background())

	assert.Equal(t, len(preset.Files), summary.NotFound)
	assert.Contains(t, buf.String(), "❌ frontend/components/layout/PersistentLayout.tsx (not found)\n")
	assert.Contains(t, buf.String(), "❌ frontend/pages/notfound.tsx (not found)\n")
	assert.Contains(t, buf.String(), "🎉 Migration complete!")
}

func TestMigrator_Run_DryRun(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	dir := setupFiles(t, map[string]string{"frontend/pages/auth.tsx": "const navigate = useNavigate();\nkeep();\n"})
	plan := preset.NextRouter()
	plan.Files = []string{"frontend/pages/auth.tsx"}

	m, buf := newMigrator(t, status.NewManager(dir), plan, true)
	summary := m.Run(context.Background())

	assert.Equal(t, 1, summary.Success)
	assert.Contains(t, buf.String(), "🔍 frontend/pages/auth.tsx (dry run, 1 replacements)\n"+
		"    - const navigate = useNavigate();\n"+
		"    + const router = useRouter();\n")
	assert.Equal(t, "const navigate = useNavigate();\nkeep();\n", readFile(t, dir, "frontend/pages/auth.tsx"))
}

func TestNew(t *testing.T) {
	logger := log.New(&bytes.Buffer{}, zerolog.Nop())
	files := status.NewManager(t.TempDir())

	tests := []struct {
		name        string
		opts        Options
		errContains string
	}{
		{
			name:        "missing_plan",
			opts:        Options{Files: files, Logger: logger},
			errContains: "plan is required",
		},
		{
			name:        "missing_files",
			opts:        Options{Plan: preset.NextRouter(), Logger: logger},
			errContains: "file manager is required",
		},
		{
			name:        "missing_logger",
			opts:        Options{Plan: preset.NextRouter(), Files: files},
			errContains: "logger is required",
		},
		{
			name: "invalid_rule",
			opts: Options{
				Plan: &config.Plan{
					Files: []string{"a.tsx"},
					Rules: []config.Rule{{Name: "broken", Pattern: "("}},
				},
				Files:  files,
				Logger: logger,
			},
			errContains: "validating rules",
		},
		{
			name: "valid",
			opts: Options{Plan: preset.NextRouter(), Files: files, Logger: logger},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.opts)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, m)
		})
	}
}
