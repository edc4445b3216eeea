package bundle

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/bytedance/sonic"
)

var (
	ErrEmptyBundle  = errors.New("bundle has an empty distance matrix")
	ErrRaggedMatrix = errors.New("distance matrix rows differ in length")
	ErrInvalidLabel = errors.New("label must be a JSON string or number")
)

// Label is an identity or camera label. JSON numbers are normalised so 7 and
// 7.0 compare equal; strings are kept verbatim.
type Label string

func (l *Label) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ErrInvalidLabel
	}
	if data[0] == '"' {
		var s string
		if err := sonic.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("label %s: %w", data, err)
		}
		*l = Label(s)
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("label %s: %w", data, ErrInvalidLabel)
	}
	*l = Label(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

// Bundle is an already computed query x gallery distance matrix with labels.
type Bundle struct {
	Distmat     [][]float64 `json:"distmat"`
	QueryIDs    []Label     `json:"query_ids"`
	GalleryIDs  []Label     `json:"gallery_ids"`
	QueryCams   []Label     `json:"query_cams"`
	GalleryCams []Label     `json:"gallery_cams"`
}

// Report is the JSON written by the evaluate command.
type Report struct {
	MAP        *float64  `json:"map,omitempty"`
	NumQueries int       `json:"num_queries"`
	NumValid   int       `json:"num_valid"`
	AP         []float64 `json:"ap"`
	Valid      []int     `json:"valid"`
	Method     string    `json:"method"`
}
