// Package kvstore is a small persistent string key-value store backed by a
// single JSON file. Several processes may share the file; Watch reports
// changes written by somebody else.
package kvstore

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

type Store struct {
	path string

	mu          sync.Mutex
	lastWritten []byte
}

func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("kvstore: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.Wrap(err, "kvstore: mkdir")
	}
	s := &Store{path: path}
	if _, err := s.read(); err != nil {
		return nil, err
	}
	// content present at open time is not a change
	s.lastWritten, _ = os.ReadFile(path)
	return s, nil
}

func (s *Store) Path() string {
	return s.path
}

// Get always goes to disk so that writes from other processes are visible.
func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.read()
	if err != nil {
		return "", false
	}
	v, ok := data[key]
	return v, ok
}

func (s *Store) Set(kv map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.read()
	if err != nil {
		return err
	}
	for k, v := range kv {
		data[k] = v
	}
	return s.write(data)
}

func (s *Store) Delete(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.read()
	if err != nil {
		return err
	}
	for _, k := range keys {
		delete(data, k)
	}
	return s.write(data)
}

func (s *Store) read() (map[string]string, error) {
	data := make(map[string]string)
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return data, nil
		}
		return nil, errors.Wrap(err, "kvstore: read")
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, errors.Wrap(err, "kvstore: decode")
	}
	return data, nil
}

// write replaces the file atomically.
func (s *Store) write(data map[string]string) error {
	b, err := json.Marshal(data)
	if err != nil {
		return errors.Wrap(err, "kvstore: encode")
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".kvstore-*")
	if err != nil {
		return errors.Wrap(err, "kvstore: temp file")
	}
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return errors.Wrap(err, "kvstore: write")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return errors.Wrap(err, "kvstore: close")
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		_ = os.Remove(tmp.Name())
		return errors.Wrap(err, "kvstore: chmod")
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return errors.Wrap(err, "kvstore: rename")
	}
	s.lastWritten = b
	return nil
}

// Watch calls onChange whenever the file content changes because of a write
// that did not come from this Store. It blocks until ctx is done.
func (s *Store) Watch(ctx context.Context, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "kvstore: watcher")
	}
	defer w.Close()

	// the file is replaced by rename, so watch the directory
	if err := w.Add(filepath.Dir(s.path)); err != nil {
		return errors.Wrap(err, "kvstore: watch dir")
	}
	name := filepath.Clean(s.path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != name {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if s.foreign() {
				onChange()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return errors.Wrap(err, "kvstore: watch")
		}
	}
}

func (s *Store) foreign() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return false
		}
		b = nil
	}
	if bytes.Equal(b, s.lastWritten) {
		return false
	}
	s.lastWritten = b
	return true
}
