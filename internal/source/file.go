package source

import (
	"fmt"

	"github.com/TimelordUK/mread/internal/index"
	mreadio "github.com/TimelordUK/mread/internal/io"
)

// LoadFile returns the whole content of a document file
func LoadFile(path string) (string, error) {
	file, err := mreadio.OpenMapped(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	data, err := file.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// ReadLines returns the physical lines of a file, line endings removed
func ReadLines(path string) ([]string, error) {
	file, err := mreadio.OpenMapped(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	idx, err := index.Build(file)
	if err != nil {
		return nil, err
	}
	return idx.Strings()
}
