package index

import (
	"bytes"
	"fmt"

	mreadio "github.com/TimelordUK/mread/internal/io"
)

const chunkSize = 64 * 1024

// LineIndex stores the byte offset of each line start in a mapped document
type LineIndex struct {
	offsets []int64
	file    *mreadio.MappedFile
}

// Build scans the file once and records where every line begins.
// An empty file has no lines. A trailing newline does not open a new line.
func Build(file *mreadio.MappedFile) (*LineIndex, error) {
	size := file.Size()
	if size == 0 {
		return &LineIndex{file: file}, nil
	}

	// assume ~80 bytes per line
	offsets := make([]int64, 0, int(size/80)+1)
	offsets = append(offsets, 0)

	buf := make([]byte, chunkSize)
	var pos int64
	for pos < size {
		readSize := chunkSize
		if pos+int64(readSize) > size {
			readSize = int(size - pos)
		}

		n, err := file.ReadAt(buf[:readSize], pos)
		if err != nil {
			return nil, fmt.Errorf("index %s at byte %d: %w", file.Path(), pos, err)
		}

		chunk := buf[:n]
		offset := 0
		for {
			idx := bytes.IndexByte(chunk[offset:], '\n')
			if idx == -1 {
				break
			}
			lineStart := pos + int64(offset) + int64(idx) + 1
			if lineStart < size {
				offsets = append(offsets, lineStart)
			}
			offset += idx + 1
		}

		pos += int64(n)
	}

	return &LineIndex{
		offsets: offsets,
		file:    file,
	}, nil
}

// LineCount returns the total number of lines
func (idx *LineIndex) LineCount() int {
	return len(idx.offsets)
}

// Line returns the content of a line (0-based) without its line ending
func (idx *LineIndex) Line(lineNum int) ([]byte, error) {
	if lineNum < 0 || lineNum >= len(idx.offsets) {
		return nil, nil
	}

	start := idx.offsets[lineNum]
	end := idx.file.Size()
	if lineNum+1 < len(idx.offsets) {
		end = idx.offsets[lineNum+1]
	}

	content, err := idx.file.ReadRange(start, end)
	if err != nil {
		return nil, err
	}
	return bytes.TrimRight(content, "\r\n"), nil
}

// Strings materializes every line as a string
func (idx *LineIndex) Strings() ([]string, error) {
	lines := make([]string, len(idx.offsets))
	for i := range idx.offsets {
		line, err := idx.Line(i)
		if err != nil {
			return nil, fmt.Errorf("read line %d of %s: %w", i+1, idx.file.Path(), err)
		}
		lines[i] = string(line)
	}
	return lines, nil
}
