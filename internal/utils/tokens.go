package utils

import (
	"crypto/rand"
	"encoding/hex"
)

func NewLinkToken(nBytes int) (string, error) {
	if nBytes <= 0 {
		nBytes = 32 // 256 бит по умолчанию
	}
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// NewDigitCode — код фиксированной длины, каждая позиция независимо
// равномерна по '0'..'9'. Ведущие нули допустимы: код — строка, не число.
func NewDigitCode(length int) (string, error) {
	if length <= 0 {
		length = 6
	}
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, length)
	for i, b := range buf {
		// по модулю 256 % 10 есть перекос; добираем байты, пока не попадём в 0..249
		for b >= 250 {
			nb := make([]byte, 1)
			if _, err := rand.Read(nb); err != nil {
				return "", err
			}
			b = nb[0]
		}
		out[i] = '0' + b%10
	}
	return string(out), nil
}
