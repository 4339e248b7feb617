package issue_checkin_code

import (
	"crypto/rand"
	"fmt"
)

// Алфавит без визуально похожих символов (0/O, 1/I/L):
// код диктуют вслух и показывают с экрана телефона
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

func generateCode(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}
