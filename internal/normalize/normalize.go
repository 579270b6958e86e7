package normalize

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	ErrUnsupported = errors.New("unsupported activity file format")
	ErrNoPoints    = errors.New("activity contains no usable trackpoints")
)

// File decodes an uploaded activity into the normalized point sequence,
// dispatching on the file extension. Supported: .gpx, .fit.
func File(name string, data []byte) ([]Point, error) {
	var (
		points []Point
		err    error
	)

	switch strings.ToLower(filepath.Ext(name)) {
	case ".gpx":
		points, err = FromGPX(bytes.NewReader(data))
	case ".fit":
		points, err = FromFIT(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, name)
	}
	if err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, ErrNoPoints
	}
	return points, nil
}
