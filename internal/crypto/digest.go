package crypto

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

// AuthDigest computes the server hash Mojang's session server expects:
// SHA-1 over serverID + sharedSecret + publicKeyDER, rendered as a
// signed two's-complement hex string (negative hashes get a minus sign
// instead of a plain big-endian rendering).
func AuthDigest(serverID string, sharedSecret, publicKeyDER []byte) string {
	h := sha1.New()
	h.Write([]byte(serverID))
	h.Write(sharedSecret)
	h.Write(publicKeyDER)
	sum := h.Sum(nil)

	negative := sum[0]&0x80 != 0
	if negative {
		twosComplement(sum)
	}

	digest := strings.TrimLeft(hex.EncodeToString(sum), "0")
	if negative {
		digest = "-" + digest
	}
	return digest
}

// twosComplement negates a big-endian integer in place.
func twosComplement(p []byte) {
	carry := true
	for i := len(p) - 1; i >= 0; i-- {
		p[i] = ^p[i]
		if carry {
			carry = p[i] == 0xFF
			p[i]++
		}
	}
}
