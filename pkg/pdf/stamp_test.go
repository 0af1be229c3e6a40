package pdf

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestPDF(t *testing.T, path string, pages int) {
	t.Helper()
	doc := gofpdf.New("P", "pt", "A4", "")
	for i := 0; i < pages; i++ {
		doc.AddPage()
		doc.SetFont("Helvetica", "", 12)
		doc.Text(72, 100, fmt.Sprintf("Test page %d", i+1))
	}
	require.NoError(t, doc.OutputFileAndClose(path))
}

func writeTestPNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for x := 0; x < 40; x++ {
		for y := 0; y < 20; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func testStamp() Stamp {
	return Stamp{
		SignerName: "User 1",
		NotaryID:   1,
		SignedAt:   time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestPageCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	writeTestPDF(t, path, 3)

	n, err := PageCount(path)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestPageCountInvalidDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is not a pdf"), 0o644))

	_, err := PageCount(path)
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestPageCountMissingFile(t *testing.T) {
	_, err := PageCount(filepath.Join(t.TempDir(), "absent.pdf"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidDocument)
}

func TestApplyWithDrawnFallbacks(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "doc.pdf")
	writeTestPDF(t, source, 2)

	// No assets directory: both blocks use the drawn placeholder path.
	stamper := NewStamper("")
	assert.False(t, stamper.HasSignatureImage())
	assert.False(t, stamper.HasSealImage())

	out, err := stamper.Apply(source, testStamp())
	require.NoError(t, err)
	require.NotEmpty(t, out)

	// Output is a well-formed PDF with the full page set.
	stamped := filepath.Join(dir, "stamped.pdf")
	require.NoError(t, os.WriteFile(stamped, out, 0o644))
	n, err := PageCount(stamped)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// The source file is untouched.
	original, err := os.ReadFile(source)
	require.NoError(t, err)
	assert.NotEqual(t, original, out)
	srcPages, err := PageCount(source)
	require.NoError(t, err)
	assert.Equal(t, 2, srcPages)
}

func TestApplyWithImageAssets(t *testing.T) {
	dir := t.TempDir()
	assets := filepath.Join(dir, "assets")
	require.NoError(t, os.MkdirAll(assets, 0o755))
	writeTestPNG(t, filepath.Join(assets, SignatureAssetName))
	writeTestPNG(t, filepath.Join(assets, SealAssetName))

	source := filepath.Join(dir, "doc.pdf")
	writeTestPDF(t, source, 1)

	stamper := NewStamper(assets)
	assert.True(t, stamper.HasSignatureImage())
	assert.True(t, stamper.HasSealImage())

	out, err := stamper.Apply(source, testStamp())
	require.NoError(t, err)

	stamped := filepath.Join(dir, "stamped.pdf")
	require.NoError(t, os.WriteFile(stamped, out, 0o644))
	n, err := PageCount(stamped)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestApplyInvalidDocument(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "garbage.pdf")
	require.NoError(t, os.WriteFile(source, []byte("%PDF-1.4 broken"), 0o644))

	_, err := NewStamper("").Apply(source, testStamp())
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestOptionalAsset(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, SignatureAssetName))

	path, ok := OptionalAsset(dir, SignatureAssetName)
	assert.True(t, ok)
	assert.NotEmpty(t, path)

	_, ok = OptionalAsset(dir, SealAssetName)
	assert.False(t, ok)

	_, ok = OptionalAsset("", SignatureAssetName)
	assert.False(t, ok)
}
