package results

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordString(t *testing.T) {
	rec := Record{Name: "Ada", Score: 1, Total: 1, LevelID: 1, LevelDescription: "simple operations with numbers 2-9"}
	assert.Equal(t, "Ada: 1/1 in level 1 (simple operations with numbers 2-9)", rec.String())
}

func TestFileSink_AppendsNeverTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "results.txt")
	sink := NewFileSink(path)
	ctx := context.Background()

	require.NoError(t, sink.Append(ctx, Record{Name: "Ada", Score: 1, Total: 1, LevelID: 1, LevelDescription: "a"}))
	require.NoError(t, sink.Append(ctx, Record{Name: "Bob", Score: 3, Total: 5, LevelID: 2, LevelDescription: "b"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Ada: 1/1 in level 1 (a)\nBob: 3/5 in level 2 (b)\n", string(data))
}

func TestFileSink_CanceledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.txt")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewFileSink(path).Append(ctx, Record{Name: "Ada"})
	require.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestNewFileSink_DefaultPath(t *testing.T) {
	assert.Equal(t, DefaultPath, NewFileSink("").Path)
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		line string
		want Record
		ok   bool
	}{
		{
			line: "Ada: 1/1 in level 1 (simple operations with numbers 2-9)",
			want: Record{Name: "Ada", Score: 1, Total: 1, LevelID: 1, LevelDescription: "simple operations with numbers 2-9"},
			ok:   true,
		},
		{
			line: "Dr: Who: 4/5 in level 2 (integral squares of 11-29)",
			want: Record{Name: "Dr: Who", Score: 4, Total: 5, LevelID: 2, LevelDescription: "integral squares of 11-29"},
			ok:   true,
		},
		{line: "garbage", ok: false},
		{line: "", ok: false},
	}
	for _, tt := range tests {
		got, ok := ParseLine(tt.line)
		assert.Equal(t, tt.ok, ok, "line %q", tt.line)
		if tt.ok {
			assert.Equal(t, tt.want, got)
		}
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	recs, err := ReadFile(filepath.Join(dir, "missing.txt"))
	require.NoError(t, err)
	assert.Empty(t, recs)

	path := filepath.Join(dir, "results.txt")
	content := "Ada: 1/1 in level 1 (a)\nnot a record\nBob: 0/3 in level 2 (b)\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	recs, err = ReadFile(path)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "Ada", recs[0].Name)
	assert.Equal(t, "Bob", recs[1].Name)
}
