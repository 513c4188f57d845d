package shared

import (
	"crypto/rand"
	"encoding/hex"
)

const (
	ImageKeyBytes  = 16 // 128 бит
	SessionIDBytes = 32
)

// GenerateCryptoID возвращает hex-строку из n случайных байт
func GenerateCryptoID(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand на поддерживаемых платформах не возвращает ошибку
		panic(err)
	}
	return hex.EncodeToString(buf)
}
