// Package toml persists upload results to a history file under the user's
// config directory, replaced atomically on every append.
package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/101Room/berezin-dicts/internal/domain"
	"github.com/101Room/berezin-dicts/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	historyFileMode = 0o600
	historyDirMode  = 0o700
	tempFilePattern = ".history-*.toml.tmp"
)

type Repository struct {
	historyPath string
	mu          *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.HistoryRepository = (*Repository)(nil)

func NewRepository(historyPath string) (*Repository, error) {
	if historyPath == "" {
		return nil, errors.New("history path is empty")
	}

	absPath, err := filepath.Abs(historyPath)
	if err != nil {
		return nil, fmt.Errorf("resolve history path: %w", err)
	}
	absPath = filepath.Clean(absPath)

	return &Repository{historyPath: absPath, mu: lockForPath(absPath)}, nil
}

func (r *Repository) Append(ctx context.Context, result domain.UploadResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}
	file.applyDefaults()

	file.Uploads = append(file.Uploads, toSchema(result))

	return r.writeSchema(file)
}

func (r *Repository) List(ctx context.Context) ([]domain.UploadResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	results := make([]domain.UploadResult, 0, len(file.Uploads))
	for _, entry := range file.Uploads {
		results = append(results, fromSchema(entry))
	}

	return results, nil
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.historyPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, nil
		}
		return fileSchema{}, fmt.Errorf("read history file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode history file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.historyPath), historyDirMode); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode history file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.historyPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp history file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp history file: %w", err)
	}

	if err := tempFile.Chmod(historyFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp history file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp history file: %w", err)
	}

	if err := os.Rename(tempName, r.historyPath); err != nil {
		return fmt.Errorf("replace history file: %w", err)
	}

	cleanup = false

	return nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}
