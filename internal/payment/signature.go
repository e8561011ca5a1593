package payment

import (
	"crypto/sha512"
	"encoding/hex"
)

// Signature computes the gateway notification digest:
// sha512(order_id + status_code + gross_amount + server key), hex encoded.
func Signature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}
