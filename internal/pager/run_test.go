package pager

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TimelordUK/mread/internal/config"
	"github.com/TimelordUK/mread/internal/progress"
)

func stubTerminal(t *testing.T, isTTY bool, w, h int, sizeErr error) {
	t.Helper()
	origIs, origSize := termIsTerminal, termGetSize
	t.Cleanup(func() {
		termIsTerminal = origIs
		termGetSize = origSize
	})
	termIsTerminal = func(int) bool { return isTTY }
	termGetSize = func(int) (int, int, error) { return w, h, sizeErr }
}

func tempOutput(t *testing.T) *os.File {
	t.Helper()
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestRunNonInteractivePrintsFromResumedOffset(t *testing.T) {
	doc := newDoc(t, "one", "two", "three", "four", "five")
	store := &memStore{events: []progress.Event{{DocumentHash: doc.Hash(), Offset: 2, TotalLines: 5}}}

	var out bytes.Buffer
	err := Run(context.Background(), doc, Options{Store: store, Output: &out})
	require.NoError(t, err)

	assert.Equal(t, "three\nfour\nfive\n", out.String())
	assert.Len(t, store.events, 1, "plain output does not record progress")
}

func TestRunNonInteractiveFromTop(t *testing.T) {
	var out bytes.Buffer
	err := Run(context.Background(), newDoc(t, "a", "b"), Options{Output: &out})
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", out.String())
}

func TestRunNonTerminalFile(t *testing.T) {
	stubTerminal(t, false, 0, 0, nil)
	out := tempOutput(t)

	require.NoError(t, Run(context.Background(), newDoc(t, "x"), Options{Output: out}))

	data, err := os.ReadFile(out.Name())
	require.NoError(t, err)
	assert.Equal(t, "x\n", string(data))
}

func TestRunNonInteractivePrintsOnePage(t *testing.T) {
	lines := make([]string, 30)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}
	doc := newDoc(t, lines...)
	store := &memStore{events: []progress.Event{{DocumentHash: doc.Hash(), Offset: 4, TotalLines: 30}}}

	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), doc, Options{Store: store, Output: &out}))

	assert.Equal(t, strings.Join(lines[4:28], "\n")+"\n", out.String())
}

func TestRunNonTerminalFileUsesReportedHeight(t *testing.T) {
	stubTerminal(t, false, 80, 3, nil)
	out := tempOutput(t)

	require.NoError(t, Run(context.Background(), newDoc(t, "a", "b", "c", "d", "e"), Options{Output: out}))

	data, err := os.ReadFile(out.Name())
	require.NoError(t, err)
	assert.Equal(t, "a\nb\nc\n", string(data))
}

func TestRunSizeErrorIsFatal(t *testing.T) {
	stubTerminal(t, true, 0, 0, errors.New("inappropriate ioctl"))

	err := Run(context.Background(), newDoc(t, "a"), Options{Output: tempOutput(t)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query terminal size")
}

func TestRunEmptyDocumentWithoutTutorialExits(t *testing.T) {
	stubTerminal(t, true, 80, 24, nil)
	cfg := config.DefaultConfig()
	cfg.Reader.EnableTutorial = false
	store := &memStore{}

	err := Run(context.Background(), newDoc(t), Options{Config: cfg, Store: store, Output: tempOutput(t)})
	require.NoError(t, err)
	assert.Empty(t, store.events)
}

func TestResumeOffset(t *testing.T) {
	doc := newDoc(t, "a", "b", "c")

	offset, ok := resumeOffset(doc, nil)
	assert.Zero(t, offset)
	assert.False(t, ok)

	store := &memStore{events: []progress.Event{{DocumentHash: doc.Hash(), Offset: 99}}}
	offset, ok = resumeOffset(doc, store)
	assert.Equal(t, 2, offset)
	assert.True(t, ok)

	failing := &memStore{err: errors.New("unreadable")}
	offset, ok = resumeOffset(doc, failing)
	assert.Zero(t, offset)
	assert.False(t, ok)

	offset, ok = resumeOffset(newDoc(t), store)
	assert.Zero(t, offset)
	assert.False(t, ok)
}
