/**
 * @description
 * This package resolves user-supplied identifier strings into the canonical
 * principal text understood by all five remote ledger services. Principal
 * text is lowercase RFC 4648 base32 of a CRC-32 checksum followed by the
 * principal bytes, re-grouped into dash-separated runs of five characters.
 *
 * Resolution never fails: input that does not parse as a principal degrades
 * to the well-known anonymous principal. Callers must treat that fallback as
 * a valid result, not an error.
 */

package identity

import (
	"encoding/base32"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"log"
	"strings"
)

// AnonymousPrincipal is the canonical text of the anonymous principal
// (the single byte 0x04).
const AnonymousPrincipal = "2vxsx-fae"

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

var errChecksum = errors.New("principal checksum mismatch")

// Parse decodes canonical principal text into the raw principal bytes.
// The text must round-trip: wrong grouping, wrong case, or a bad checksum
// all reject the input.
func Parse(raw string) ([]byte, error) {
	ungrouped := strings.ReplaceAll(raw, "-", "")
	decoded, err := encoding.DecodeString(strings.ToUpper(ungrouped))
	if err != nil {
		return nil, fmt.Errorf("invalid principal encoding: %w", err)
	}
	if len(decoded) < 5 {
		return nil, fmt.Errorf("principal too short: %d bytes", len(decoded))
	}

	body := decoded[4:]
	if binary.BigEndian.Uint32(decoded[:4]) != crc32.ChecksumIEEE(body) {
		return nil, errChecksum
	}
	if Encode(body) != raw {
		return nil, fmt.Errorf("principal text %q is not canonical", raw)
	}
	return body, nil
}

// Encode renders principal bytes as canonical dash-grouped text.
func Encode(principal []byte) string {
	buf := make([]byte, 4+len(principal))
	binary.BigEndian.PutUint32(buf[:4], crc32.ChecksumIEEE(principal))
	copy(buf[4:], principal)

	text := strings.ToLower(encoding.EncodeToString(buf))
	var groups []string
	for len(text) > 5 {
		groups = append(groups, text[:5])
		text = text[5:]
	}
	groups = append(groups, text)
	return strings.Join(groups, "-")
}

// Resolve converts a user-supplied identifier into canonical principal text.
// Malformed input logs a warning and falls back to the anonymous principal.
func Resolve(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if _, err := Parse(trimmed); err != nil {
		log.Printf("level=warn component=identity msg=\"identifier did not parse; using anonymous principal\" input=%q err=%v", raw, err)
		return AnonymousPrincipal
	}
	return trimmed
}
