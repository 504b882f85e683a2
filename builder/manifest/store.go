package manifest

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"opencsg.com/csghub-release/common/errorx"
)

type Manifest struct {
	Name    string
	Version string
}

// Store reads and writes the package descriptor (package.json) of the
// repository being released.
type Store interface {
	Path() string
	Read() (*Manifest, error)
	// SetVersion rewrites the version field in place, leaving every other
	// byte of the document untouched.
	SetVersion(version string) error
}

type fileStore struct {
	path string
}

func NewStore(path string) Store {
	return &fileStore{path: path}
}

func (s *fileStore) Path() string {
	return s.path
}

func (s *fileStore) Read() (*Manifest, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errorx.ManifestFailed(fmt.Errorf("read manifest: %w", err), errorx.Ctx().Set("path", s.path))
	}
	if !gjson.ValidBytes(data) {
		return nil, errorx.ManifestFailed(fmt.Errorf("manifest is not valid JSON"), errorx.Ctx().Set("path", s.path))
	}
	return &Manifest{
		Name:    gjson.GetBytes(data, "name").String(),
		Version: gjson.GetBytes(data, "version").String(),
	}, nil
}

func (s *fileStore) SetVersion(version string) error {
	info, err := os.Stat(s.path)
	if err != nil {
		return errorx.ManifestFailed(fmt.Errorf("stat manifest: %w", err), errorx.Ctx().Set("path", s.path))
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return errorx.ManifestFailed(fmt.Errorf("read manifest: %w", err), errorx.Ctx().Set("path", s.path))
	}
	updated, err := sjson.SetBytes(data, "version", version)
	if err != nil {
		return errorx.ManifestFailed(fmt.Errorf("set manifest version: %w", err), errorx.Ctx().Set("path", s.path))
	}
	if err := os.WriteFile(s.path, updated, info.Mode().Perm()); err != nil {
		return errorx.ManifestFailed(fmt.Errorf("write manifest: %w", err), errorx.Ctx().Set("path", s.path))
	}
	return nil
}
