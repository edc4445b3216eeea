// Package bundle reads evaluation bundles and writes evaluation reports.
package bundle

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"

	"github.com/tensorplex-labs/reideval/internal/reid"
)

const zstdExt = ".zst"

// Load reads a bundle from path. Files ending in .zst are zstd compressed.
func Load(path string) (*Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bundle: %w", err)
	}
	defer f.Close()

	b, err := Decode(f, strings.HasSuffix(path, zstdExt))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	log.Debug().Str("path", path).Int("queries", len(b.QueryIDs)).Int("gallery", len(b.GalleryIDs)).Msg("Loaded bundle")
	return b, nil
}

// Decode parses a bundle document from r.
func Decode(r io.Reader, compressed bool) (*Bundle, error) {
	data, err := readAll(r, compressed)
	if err != nil {
		return nil, err
	}

	var b Bundle
	if err := sonic.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("unmarshal bundle: %w", err)
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

func readAll(r io.Reader, compressed bool) ([]byte, error) {
	if !compressed {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read bundle: %w", err)
		}
		return data, nil
	}

	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("zstd: failed to create reader: %w", err)
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("zstd: failed to decompress bundle: %w", err)
	}
	return data, nil
}

func (b *Bundle) validate() error {
	if len(b.Distmat) == 0 || len(b.Distmat[0]) == 0 {
		return ErrEmptyBundle
	}
	cols := len(b.Distmat[0])
	for i, row := range b.Distmat {
		if len(row) != cols {
			return fmt.Errorf("row %d has %d columns, row 0 has %d: %w", i, len(row), cols, ErrRaggedMatrix)
		}
	}
	return nil
}

// Matrix copies the distance matrix into a dense gonum matrix.
func (b *Bundle) Matrix() *mat.Dense {
	rows, cols := len(b.Distmat), len(b.Distmat[0])
	data := make([]float64, 0, rows*cols)
	for _, row := range b.Distmat {
		data = append(data, row...)
	}
	return mat.NewDense(rows, cols, data)
}

// WriteReport encodes rep as JSON to path, zstd compressed when path ends in .zst.
func WriteReport(path string, rep *Report) error {
	data, err := EncodeReport(rep, strings.HasSuffix(path, zstdExt))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// EncodeReport marshals rep, optionally compressing it with zstd.
func EncodeReport(rep *Report, compressed bool) ([]byte, error) {
	data, err := sonic.Marshal(rep)
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	if !compressed {
		return data, nil
	}

	var buf bytes.Buffer
	w, err := zstd.NewWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("zstd: failed to create writer: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("zstd: failed to compress report: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("zstd: failed to flush report: %w", err)
	}
	return buf.Bytes(), nil
}

// NewReport flattens an evaluation result for JSON output.
func NewReport(r *reid.Result) *Report {
	rep := &Report{
		NumQueries: len(r.AP),
		NumValid:   r.NumValid(),
		AP:         r.AP,
		Valid:      make([]int, len(r.Valid)),
		Method:     r.Method.String(),
	}
	for i, ok := range r.Valid {
		if ok {
			rep.Valid[i] = 1
		}
	}
	if r.Averaged {
		score := r.Score
		rep.MAP = &score
	}
	return rep
}
