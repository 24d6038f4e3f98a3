package qrgenerator_test

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xausdorf/ledger-core/internal/domain/qrcode"
	"github.com/Xausdorf/ledger-core/internal/infrastructure/qrgenerator"
)

func TestGenerator_Generate(t *testing.T) {
	g := qrgenerator.NewGenerator(256)

	out, err := g.Generate(qrcode.QRData{ToAccount: 3, Amount: 1500, Currency: "EUR"})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
	assert.Equal(t, 256, img.Bounds().Dy())
}
