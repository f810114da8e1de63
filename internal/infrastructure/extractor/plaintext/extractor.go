package plaintext

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Extract decodes text as UTF-8. A UTF-8 or UTF-16 byte order mark selects the
// encoding and is stripped; invalid sequences become U+FFFD.
func Extract(ctx context.Context, raw []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	decoded, _, err := transform.Bytes(decoder, raw)
	if err != nil {
		return "", fmt.Errorf("decode plain text: %w", err)
	}
	return strings.ToValidUTF8(string(decoded), "�"), nil
}
