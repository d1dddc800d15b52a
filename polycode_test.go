package polycode

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/polycode/chaincode"
	"github.com/arloliu/polycode/errs"
	"github.com/arloliu/polycode/format"
	"github.com/arloliu/polycode/shape"
	"github.com/arloliu/polycode/shapeset"
)

var tetrominoT = []Coord{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 0}}

// TestEncodeDecode verifies the wrappers round trip a translated shape
func TestEncodeDecode(t *testing.T) {
	moved := make([]Coord, len(tetrominoT))
	for i, c := range tetrominoT {
		moved[i] = c.Add(-5, 9)
	}

	data, err := Encode(moved)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	cells, err := Decode(data, chaincode.WithStrict(true))
	require.NoError(t, err)
	require.Equal(t, Normalize(tetrominoT), cells)

	direct, err := chaincode.Encode(tetrominoT)
	require.NoError(t, err)
	require.Equal(t, direct, data)
}

// TestEncode_Empty verifies the empty polyomino in both directions
func TestEncode_Empty(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)
	require.Empty(t, data)

	cells, err := Decode(nil)
	require.NoError(t, err)
	require.Empty(t, cells)
}

// TestEncode_Disconnected verifies errors pass through unchanged
func TestEncode_Disconnected(t *testing.T) {
	_, err := Encode([]Coord{{X: 0, Y: 0}, {X: 5, Y: 5}})
	require.ErrorIs(t, err, errs.ErrUncoverableShape)
}

// TestNormalize verifies the normalizer wrapper
func TestNormalize(t *testing.T) {
	got := Normalize([]Coord{{X: 3, Y: 4}, {X: 2, Y: 4}, {X: 3, Y: 4}})
	require.Equal(t, []Coord{{X: 0, Y: 0}, {X: 1, Y: 0}}, got)
}

// TestDefaultShapeSet verifies the default encoder writes a zstd little-endian set
func TestDefaultShapeSet(t *testing.T) {
	encoder, err := NewDefaultShapeSetEncoder()
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(8))
	shapes := map[string][]Coord{
		"tetromino.T": Normalize(tetrominoT),
		"random.a":    shape.Grow(rng, 12),
		"random.b":    shape.Grow(rng, 25),
	}
	for name, cells := range shapes {
		require.NoError(t, encoder.AddShape(name, cells))
	}

	data, err := encoder.Finish()
	require.NoError(t, err)

	decoder, err := NewShapeSetDecoder(data)
	require.NoError(t, err)
	require.Equal(t, format.CompressionZstd, decoder.Compression())
	require.False(t, decoder.Header().Flag.IsBigEndian())

	set, err := decoder.Decode()
	require.NoError(t, err)
	require.Equal(t, len(shapes), set.Len())

	for name, cells := range shapes {
		got, err := set.ShapeByName(name)
		require.NoError(t, err)
		require.Equal(t, cells, got)

		byID, err := set.Shape(ShapeID(name))
		require.NoError(t, err)
		require.Equal(t, cells, byID)
	}
}

// TestNewShapeSetEncoder verifies custom options reach the encoder
func TestNewShapeSetEncoder(t *testing.T) {
	encoder, err := NewShapeSetEncoder(
		shapeset.WithCompression(format.CompressionS2),
		shapeset.WithBigEndian(),
	)
	require.NoError(t, err)
	require.NoError(t, encoder.AddShapeID(7, tetrominoT))

	data, err := encoder.Finish()
	require.NoError(t, err)

	decoder, err := NewShapeSetDecoder(data)
	require.NoError(t, err)
	require.Equal(t, format.CompressionS2, decoder.Compression())
	require.True(t, decoder.Header().Flag.IsBigEndian())

	_, err = NewShapeSetEncoder(shapeset.WithCompression(format.CompressionType(9)))
	require.Error(t, err)
}

// TestNewCollection verifies lookups fall through to later sets
func TestNewCollection(t *testing.T) {
	build := func(id uint64, cells []Coord) *shapeset.Set {
		encoder, err := NewShapeSetEncoder()
		require.NoError(t, err)
		require.NoError(t, encoder.AddShapeID(id, cells))
		data, err := encoder.Finish()
		require.NoError(t, err)
		decoder, err := NewShapeSetDecoder(data)
		require.NoError(t, err)
		set, err := decoder.Decode()
		require.NoError(t, err)

		return set
	}

	line := []Coord{{X: 0, Y: 0}, {X: 1, Y: 0}}
	c, err := NewCollection(build(1, tetrominoT), build(2, line))
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	got, err := c.Shape(2)
	require.NoError(t, err)
	require.Equal(t, line, got)

	_, err = NewCollection()
	require.Error(t, err)
}

// TestShapeID verifies name hashing is stable
func TestShapeID(t *testing.T) {
	require.Equal(t, ShapeID("tetromino.T"), ShapeID("tetromino.T"))
	require.NotEqual(t, ShapeID("tetromino.T"), ShapeID("tetromino.S"))
}

func BenchmarkEncode(b *testing.B) {
	cells := shape.Grow(rand.New(rand.NewSource(1)), 100)
	for b.Loop() {
		_, _ = Encode(cells)
	}
}
