package storage

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Davincible/gf256/pkg/gf256"
	"golang.org/x/crypto/blake2b"
)

var (
	ErrChecksumMismatch = errors.New("table checksum mismatch")
	ErrTableMismatch    = errors.New("stored tables do not match polynomial")
)

// TableStore persists the exp and log tables of a field to a single file.
type TableStore struct {
	filepath string
}

// TableFile is the on-disk layout. Tables are hex encoded.
type TableFile struct {
	Polynomial uint16 `json:"polynomial"`
	Generator  byte   `json:"generator"`
	Exp        string `json:"exp"`
	Log        string `json:"log"`
	Checksum   string `json:"checksum"`
}

func NewTableStore(filepath string) *TableStore {
	return &TableStore{
		filepath: filepath,
	}
}

func (s *TableStore) Path() string {
	return s.filepath
}

func (s *TableStore) Save(f *gf256.Field) error {
	exp := f.ExpTable()
	log := f.LogTable()

	tf := TableFile{
		Polynomial: f.Polynomial(),
		Generator:  f.Generator(),
		Exp:        hex.EncodeToString(exp[:]),
		Log:        hex.EncodeToString(log[:]),
		Checksum:   Fingerprint(f),
	}

	data, err := json.MarshalIndent(tf, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tables: %w", err)
	}

	dir := filepath.Dir(s.filepath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(s.filepath, data, 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// Load reads the file, checks its checksum and rebuilds the field it
// describes. The stored tables must equal the rebuilt ones.
func (s *TableStore) Load() (*gf256.Field, error) {
	data, err := os.ReadFile(s.filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var tf TableFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tables: %w", err)
	}

	exp, err := hex.DecodeString(tf.Exp)
	if err != nil {
		return nil, fmt.Errorf("invalid exp table: %w", err)
	}
	log, err := hex.DecodeString(tf.Log)
	if err != nil {
		return nil, fmt.Errorf("invalid log table: %w", err)
	}
	if len(exp) != gf256.Order || len(log) != 256 {
		return nil, fmt.Errorf("%w: unexpected table sizes %d and %d", ErrTableMismatch, len(exp), len(log))
	}

	if checksum(tf.Polynomial, tf.Generator, exp, log) != tf.Checksum {
		return nil, ErrChecksumMismatch
	}

	f, err := gf256.New(gf256.WithPolynomial(tf.Polynomial), gf256.WithGenerator(tf.Generator))
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild field: %w", err)
	}

	wantExp := f.ExpTable()
	wantLog := f.LogTable()
	if string(exp) != string(wantExp[:]) || string(log) != string(wantLog[:]) {
		return nil, ErrTableMismatch
	}

	return f, nil
}

func (s *TableStore) Exists() bool {
	_, err := os.Stat(s.filepath)
	return err == nil
}

func (s *TableStore) Delete() error {
	if !s.Exists() {
		return nil
	}
	return os.Remove(s.filepath)
}

// Fingerprint returns the hex BLAKE2b-256 digest identifying a field's
// tables. Two fields with equal fingerprints multiply identically.
func Fingerprint(f *gf256.Field) string {
	exp := f.ExpTable()
	log := f.LogTable()
	return checksum(f.Polynomial(), f.Generator(), exp[:], log[:])
}

func checksum(poly uint16, gen byte, exp, log []byte) string {
	var hdr [3]byte
	binary.BigEndian.PutUint16(hdr[:2], poly)
	hdr[2] = gen

	sum := blake2b.Sum256(append(append(hdr[:], exp...), log...))
	return hex.EncodeToString(sum[:])
}
