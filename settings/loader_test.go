package settings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `
RAPIDS_LIBS:
  - name: cudf
  - name: rmm
    update_submodules: false
  - name: cuml
    update_submodules: true
ARCHS:
  - name: x86_64
    images: [ubuntu, centos]
    os_list: ["18.04", "20.04"]
  - name: arm64
    images: [ubuntu]
    os_list: ["20.04"]
CUDA_VERSION: "11.2"
`

func TestFromBytes(t *testing.T) {
	s, err := FromBytes([]byte(sampleDoc))
	require.NoError(t, err)

	require.Len(t, s.Libs, 3)
	assert.Equal(t, &Library{Name: "cudf", UpdateSubmodules: true}, s.Libs[0])
	assert.Equal(t, &Library{Name: "rmm", UpdateSubmodules: false}, s.Libs[1])
	assert.Equal(t, &Library{Name: "cuml", UpdateSubmodules: true}, s.Libs[2])

	require.Len(t, s.Archs, 2)
	assert.Equal(t, &Arch{
		Name:   "x86_64",
		Images: []string{"ubuntu", "centos"},
		OSList: []string{"18.04", "20.04"},
	}, s.Archs[0])
	assert.Equal(t, "arm64", s.Archs[1].Name)
}

func TestDefaultsVisibleToTemplates(t *testing.T) {
	s, err := FromBytes([]byte(sampleDoc))
	require.NoError(t, err)

	ctx := s.Context("x86_64", "20.04", "base", time.Time{})
	libs, ok := ctx[KeyLibs].([]any)
	require.True(t, ok)
	require.Len(t, libs, 3)

	want := []bool{true, false, true}
	for i, l := range libs {
		m, ok := l.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, want[i], m["update_submodules"], "entry %d", i)
	}
}

func TestContext(t *testing.T) {
	s, err := FromBytes([]byte(sampleDoc))
	require.NoError(t, err)

	now := time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC)
	ctx := s.Context("arm64", "20.04", "devel", now)

	assert.Equal(t, "arm64", ctx[VarArch])
	assert.Equal(t, "20.04", ctx[VarOS])
	assert.Equal(t, "devel", ctx[VarImageType])
	assert.Equal(t, now, ctx[VarNow])
	assert.Equal(t, "11.2", ctx["CUDA_VERSION"])
	assert.Contains(t, ctx, KeyArchs)

	// contexts do not leak into each other
	ctx["CUDA_VERSION"] = "changed"
	again := s.Context("arm64", "20.04", "devel", now)
	assert.Equal(t, "11.2", again["CUDA_VERSION"])
}

func TestFromBytesErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		is   error
	}{
		{
			name: "missing ARCHS",
			doc:  "RAPIDS_LIBS: []\n",
			is:   ErrMissingKey,
		},
		{
			name: "missing RAPIDS_LIBS",
			doc:  "ARCHS: []\n",
			is:   ErrMissingKey,
		},
		{
			name: "empty document",
			doc:  "",
			is:   ErrMissingKey,
		},
		{
			name: "reserved key",
			doc:  "RAPIDS_LIBS: []\nARCHS: []\nos: linux\n",
			is:   ErrReservedKey,
		},
		{
			name: "arch without os_list",
			doc:  "RAPIDS_LIBS: []\nARCHS:\n  - name: x86_64\n    images: [ubuntu]\n",
			is:   ErrMissingKey,
		},
		{
			name: "ARCHS is not a list",
			doc:  "RAPIDS_LIBS: []\nARCHS: x86_64\n",
		},
		{
			name: "library without name",
			doc:  "RAPIDS_LIBS:\n  - update_submodules: false\nARCHS: []\n",
		},
		{
			name: "root is a list",
			doc:  "- a\n- b\n",
		},
		{
			name: "malformed yaml",
			doc:  "RAPIDS_LIBS: [\nARCHS: []\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := FromBytes([]byte(tt.doc))
			require.Error(t, err)
			assert.Nil(t, s)
			assert.True(t, IsConfigError(err))
			if tt.is != nil {
				assert.True(t, errors.Is(err, tt.is), "got %v", err)
			}
		})
	}
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(fn, []byte(sampleDoc), 0o644))

	s, err := FromFile(fn)
	require.NoError(t, err)
	assert.Len(t, s.Archs, 2)
}

func TestFromFileMissing(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "settings.yaml")

	_, err := FromFile(fn)
	require.Error(t, err)

	var ce *ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, fn, ce.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), fn)
}

func TestKeysUnusableInTemplatesAreIgnored(t *testing.T) {
	doc := "RAPIDS_LIBS: []\nARCHS: []\ncuda-version: 11\nCUDA_VERSION: \"11\"\n2fa: on\n"
	s, err := FromBytes([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, []string{"2fa", "cuda-version"}, s.Ignored)

	ctx := s.Context("x86_64", "20.04", "base", time.Time{})
	assert.NotContains(t, ctx, "cuda-version")
	assert.NotContains(t, ctx, "2fa")
	assert.Equal(t, "11", ctx["CUDA_VERSION"])
}
