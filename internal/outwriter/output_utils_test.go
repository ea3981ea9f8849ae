package outwriter

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/adsabs/adsboost/internal/contract"
	"github.com/adsabs/adsboost/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFormatters(t *testing.T) {
	tests := []struct {
		name      string
		precision int
		value     float64
		expected  string
	}{
		{"precision 3", 3, 0.123456, "0.123"},
		{"precision 0", 0, 0.6, "1"},
		{"precision 6", 6, 1.0 / 3.0, "0.333333"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, createFormatters(tt.precision)(tt.value))
		})
	}
}

func TestFormatExact(t *testing.T) {
	assert.Equal(t, "0.1", formatExact(0.1))
	assert.Equal(t, "1", formatExact(1.0))
	assert.Equal(t, "0.2857142857142857", formatExact(2.0/7.0))
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, map[string]any{"a": 1}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())

	assert.Error(t, writeJSON(&buf, make(chan int)))
}

func TestWriteWithFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.txt")
	err := writeWithFile(out, func(w io.Writer) error {
		_, err := w.Write([]byte("hello"))
		return err
	}, "Wrote test")
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	err = writeWithFile(filepath.Join(t.TempDir(), "missing", "out.txt"), func(io.Writer) error { return nil }, "x")
	assert.Error(t, err)
}

func TestGetLabel(t *testing.T) {
	assert.Equal(t, contract.GetPlainLabel(0.9), getLabel(0.9, &contract.Config{}))
	assert.Equal(t, contract.GetColorLabel(0.9), getLabel(0.9, &contract.Config{UseColors: true}))
}

func TestFormatFallbacks(t *testing.T) {
	assert.Empty(t, formatFallbacks(nil))
	got := formatFallbacks([]schema.Fallback{
		{Field: "bib_data", Reason: schema.MalformedBibData},
		{Field: "pubdate", Reason: schema.UnparseableDate},
	})
	assert.Contains(t, got, "; ")
	assert.Contains(t, got, "bib_data")
	assert.Contains(t, got, "pubdate")
}

func TestGetMaxTableIDWidth(t *testing.T) {
	tests := []struct {
		width    int
		expected int
	}{
		{width: 60, expected: 12},
		{width: 100, expected: 25},
		{width: 200, expected: 40},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, getMaxTableIDWidth(&contract.Config{Width: tt.width}))
	}
}

func TestSortLabelAndRankValue(t *testing.T) {
	r := schema.BoostResult{BoostFactor: 0.5, FinalBoosts: map[schema.Discipline]float64{schema.Physics: 0.25}}
	assert.Equal(t, "Boost", sortLabel(""))
	assert.Equal(t, "Final physics", sortLabel(schema.Physics))
	assert.Equal(t, 0.5, rankValue(r, ""))
	assert.Equal(t, 0.25, rankValue(r, schema.Physics))
}
