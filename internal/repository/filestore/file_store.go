// Package filestore keeps the entries in a single JSON array file.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/KretovDmitry/shorturl/internal/errs"
	"github.com/KretovDmitry/shorturl/internal/models"
)

// emptyCollection is written when the backing file is missing.
var emptyCollection = []byte("[]")

// Producer writes the whole collection to a file, replacing its content.
type Producer struct {
	// file is the underlying file handle for writing the collection.
	file *os.File
	// encoder is the JSON encoder used to write the collection.
	encoder *json.Encoder
}

// NewProducer truncates the named file and returns a Producer writing to it.
func NewProducer(fileName string) (*Producer, error) {
	file, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	return &Producer{
		file:    file,
		encoder: json.NewEncoder(file),
	}, nil
}

// WriteCollection encodes entries as one JSON array.
func (p *Producer) WriteCollection(entries []models.Entry) error {
	if entries == nil {
		entries = []models.Entry{}
	}
	return p.encoder.Encode(entries)
}

// Close closes the underlying file.
func (p *Producer) Close() error {
	return p.file.Close()
}

// Consumer reads the whole collection from a file.
type Consumer struct {
	// file is the underlying file handle for reading the collection.
	file *os.File
	// decoder is the JSON decoder used to read the collection.
	decoder *json.Decoder
}

// NewConsumer opens the named file for reading.
func NewConsumer(fileName string) (*Consumer, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	return &Consumer{
		file:    file,
		decoder: json.NewDecoder(file),
	}, nil
}

// ReadCollection decodes the JSON array held by the file.
// An empty file or a JSON null is an empty collection.
func (c *Consumer) ReadCollection() ([]models.Entry, error) {
	var entries []models.Entry
	if err := c.decoder.Decode(&entries); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if entries == nil {
		entries = []models.Entry{}
	}
	return entries, nil
}

// Close closes the underlying file.
func (c *Consumer) Close() error {
	return c.file.Close()
}

// FileStore is a file-based storage of entries. Every call goes to the
// disk: there is no cache, so each read reflects the latest persisted state.
//
// FileStore does no locking. Concurrent Load-Persist sequences race and
// the last Persist wins.
type FileStore struct {
	// path of the JSON array file.
	path string
}

// NewFileStore creates a FileStore backed by the file at path.
// The directory is created if needed, the file itself lazily.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("empty file storage path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}
	return &FileStore{path: path}, nil
}

// Path returns the path of the backing file.
func (fs *FileStore) Path() string {
	return fs.path
}

// Load reads every entry from the file, creating it empty if missing.
func (fs *FileStore) Load(_ context.Context) ([]models.Entry, error) {
	if err := fs.ensureExists(); err != nil {
		return nil, err
	}

	consumer, err := NewConsumer(fs.path)
	if err != nil {
		return nil, fmt.Errorf("new consumer: %w", err)
	}
	defer consumer.Close()

	entries, err := consumer.ReadCollection()
	if err != nil {
		return nil, fmt.Errorf("read collection from %q: %w", fs.path, err)
	}

	return entries, nil
}

// Persist overwrites the file with entries.
func (fs *FileStore) Persist(_ context.Context, entries []models.Entry) error {
	// the file may have been deleted since the last load
	if err := fs.ensureExists(); err != nil {
		return err
	}

	producer, err := NewProducer(fs.path)
	if err != nil {
		return fmt.Errorf("new producer: %w", err)
	}

	if err = producer.WriteCollection(entries); err != nil {
		_ = producer.Close()
		return fmt.Errorf("write collection to %q: %w", fs.path, err)
	}

	if err = producer.Close(); err != nil {
		return fmt.Errorf("close %q: %w", fs.path, err)
	}

	return nil
}

// GetByIndex reloads the file and returns the entry at index.
func (fs *FileStore) GetByIndex(ctx context.Context, index int) (*models.Entry, error) {
	entries, err := fs.Load(ctx)
	if err != nil {
		return nil, err
	}

	if index < 0 || index >= len(entries) {
		return nil, fmt.Errorf("index %d: %w", index, errs.ErrNotFound)
	}

	entry := entries[index]
	return &entry, nil
}

// Ping is a placeholder method that returns an error
// indicating that the database is not connected [ErrDBNotConnected].
func (fs *FileStore) Ping(context.Context) error {
	return errs.ErrDBNotConnected
}

// ensureExists writes an empty collection if the file is missing.
func (fs *FileStore) ensureExists() error {
	_, err := os.Stat(fs.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat %q: %w", fs.path, err)
	}
	if err = os.WriteFile(fs.path, emptyCollection, 0o644); err != nil {
		return fmt.Errorf("create %q: %w", fs.path, err)
	}
	return nil
}
