package qrcode

// QRData is the payment request encoded into a QR image. A payer's client
// scans it and submits a transfer into ToAccount.
type QRData struct {
	ToAccount int32  `json:"to_account"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
}

type Generator interface {
	Generate(data QRData) ([]byte, error)
}
