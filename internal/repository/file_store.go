package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
)

// FileStore persists the document as a single JSON file. The write goes
// through a temp file and rename so a crash mid-write can't leave a
// truncated document behind.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{
		path: path,
	}
}

func (fs *FileStore) Load(ctx context.Context) (*Document, error) {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewDocument(), nil
		}
		return nil, errors.New("reading data file error: " + err.Error())
	}
	doc := &Document{}
	if err := sonic.Unmarshal(data, doc); err != nil {
		return nil, errors.New("parsing data file error: " + err.Error())
	}
	doc.normalize()
	return doc, nil
}

func (fs *FileStore) Persist(ctx context.Context, doc *Document) error {
	dir := filepath.Dir(fs.path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.New("creating storage directory error: " + err.Error())
		}
	}
	data, err := sonic.ConfigDefault.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.New("marshalling data error: " + err.Error())
	}
	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.New("writing data file error: " + err.Error())
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		return errors.New("replacing data file error: " + err.Error())
	}
	return nil
}
