package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const reservationCodeLength = 10

// CodeGenerator 產生訂位代碼
type CodeGenerator func(flightID int, email string) string

// GenerateReservationCode 以航班、信箱與隨機 UUID 雜湊出 10 碼小寫十六進位代碼
func GenerateReservationCode(flightID int, email string) string {
	nonce := strings.ReplaceAll(uuid.New().String(), "-", "")
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d-%s-%s", flightID, email, nonce)))
	return hex.EncodeToString(sum[:])[:reservationCodeLength]
}
