package qrgenerator

import (
	"encoding/json"
	"fmt"

	qr "github.com/skip2/go-qrcode"

	"github.com/Xausdorf/ledger-core/internal/domain/qrcode"
)

type Generator struct {
	size int
}

func NewGenerator(size int) *Generator {
	return &Generator{size: size}
}

// Generate returns a PNG of size x size pixels.
func (g *Generator) Generate(data qrcode.QRData) ([]byte, error) {
	content, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode qr payload: %w", err)
	}
	png, err := qr.Encode(string(content), qr.Medium, g.size)
	if err != nil {
		return nil, fmt.Errorf("render qr for account %d: %w", data.ToAccount, err)
	}
	return png, nil
}

var _ qrcode.Generator = (*Generator)(nil)
