package pngdecoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filterImage(ft FilterType, rows [][]byte, bytesPerPixel int) []byte {
	var out []byte
	var prev []byte
	for _, row := range rows {
		out = append(out, byte(ft))
		out = append(out, filterScanline(ft, row, prev, bytesPerPixel)...)
		prev = row
	}
	return out
}

func TestReconstructRoundTrip(t *testing.T) {
	filterTypes := []FilterType{FilterNone, FilterSub, FilterUp, FilterAverage, FilterPaeth}

	t.Run("2x2 grayscale", func(t *testing.T) {
		rows := [][]byte{{10, 200}, {255, 3}}
		for _, ft := range filterTypes {
			rec, err := Reconstruct(filterImage(ft, rows, 1), 2, 2, 8, Grayscale)
			require.NoError(t, err)
			assert.Equal(t, []byte{10, 200, 255, 3}, rec, "filter %d", ft)
		}
	})

	t.Run("truecolor uses pixel-sized offsets", func(t *testing.T) {
		rows := [][]byte{
			{1, 2, 3, 40, 50, 60, 250, 251, 252},
			{9, 8, 7, 100, 0, 255, 17, 34, 51},
			{0, 0, 0, 128, 128, 128, 3, 200, 90},
		}
		var expected []byte
		for _, r := range rows {
			expected = append(expected, r...)
		}
		for _, ft := range filterTypes {
			rec, err := Reconstruct(filterImage(ft, rows, 3), 3, 3, 8, Truecolor)
			require.NoError(t, err)
			assert.Equal(t, expected, rec, "filter %d", ft)
		}
	})

	t.Run("mixed filters per scanline", func(t *testing.T) {
		rows := [][]byte{{5, 6, 7}, {8, 9, 10}, {250, 1, 128}, {0, 0, 255}, {17, 34, 51}}
		var filtered, expected []byte
		var prev []byte
		for i, row := range rows {
			ft := filterTypes[i%len(filterTypes)]
			filtered = append(filtered, byte(ft))
			filtered = append(filtered, filterScanline(ft, row, prev, 1)...)
			expected = append(expected, row...)
			prev = row
		}
		rec, err := Reconstruct(filtered, 3, 5, 8, Indexed)
		require.NoError(t, err)
		assert.Equal(t, expected, rec)
	})
}

func TestReconstructFormulas(t *testing.T) {
	// Second row reconstructed against a known first row of {10, 20}.
	first := []byte{byte(FilterNone), 10, 20}
	tests := []struct {
		name     string
		second   []byte
		expected []byte
	}{
		{"none", []byte{0, 1, 2}, []byte{1, 2}},
		{"sub", []byte{1, 1, 2}, []byte{1, 3}},
		{"up", []byte{2, 1, 2}, []byte{11, 22}},
		{"average", []byte{3, 1, 2}, []byte{1 + 5, 2 + (6+20)/2}},
		{"paeth", []byte{4, 1, 2}, []byte{11, 2 + 20}},
		{"wraps mod 256", []byte{2, 250, 250}, []byte{4, 14}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, err := Reconstruct(append(append([]byte(nil), first...), tc.second...), 2, 2, 8, Grayscale)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, rec[2:])
		})
	}
}

func TestReconstructErrors(t *testing.T) {
	t.Run("bad filter type", func(t *testing.T) {
		_, err := Reconstruct([]byte{5, 0}, 1, 1, 8, Indexed)
		require.ErrorIs(t, err, ErrFilterNotSupported)
		var fe FilterError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, FilterError(5), fe)
	})
	t.Run("not enough pixel data", func(t *testing.T) {
		_, err := Reconstruct([]byte{0, 1, 0}, 1, 2, 8, Indexed)
		assert.ErrorIs(t, err, ErrWrongFormat)
	})
	t.Run("sub-byte scanlines", func(t *testing.T) {
		// width 10 at depth 1 is two bytes per scanline
		rec, err := Reconstruct([]byte{1, 0xf0, 0x01, 2, 0x01, 0x01}, 10, 2, 1, Indexed)
		require.NoError(t, err)
		assert.Equal(t, []byte{0xf0, 0xf1, 0xf1, 0xf2}, rec)
	})
}
