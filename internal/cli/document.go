package cli

import (
	"strings"

	"github.com/TimelordUK/mread/internal/config"
	"github.com/TimelordUK/mread/internal/justify"
	"github.com/TimelordUK/mread/internal/source"
)

// loadLines reads a file into display lines
func loadLines(path string, cfg *config.Config) ([]string, error) {
	if !cfg.Reader.Justify {
		return source.ReadLines(path)
	}
	text, err := source.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return justify.Justify(text, cfg.Reader.Column), nil
}

// layout turns raw input lines into display lines
func layout(raw []string, cfg *config.Config) []string {
	if !cfg.Reader.Justify {
		return raw
	}
	return justify.Justify(strings.Join(raw, "\n"), cfg.Reader.Column)
}
