package skk

import (
	"fmt"
	"os"
	"strings"

	"github.com/gogs/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// Encoding names the on-disk character encoding of an SKK dictionary file.
type Encoding string

const (
	EUCJP Encoding = "EUC-JP"
	UTF8  Encoding = "UTF-8"
)

// ReadFile reads and decodes the SKK dictionary at path using enc. If enc
// doesn't match what chardet sniffs from the raw bytes, the mismatch is
// returned to the caller as a warning string rather than an error. A
// configured encoding is allowed to win over sniffing.
func ReadFile(path string, enc Encoding) (text string, warning string, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("read skk dict %s: %w", path, err)
	}

	if sniffed := sniff(raw); sniffed != "" && !matchesSniff(enc, sniffed) {
		warning = fmt.Sprintf("%s: configured encoding %s does not match detected charset %s", path, enc, sniffed)
	}

	decoded, err := decode(raw, enc)
	if err != nil {
		return "", warning, fmt.Errorf("decode skk dict %s as %s: %w", path, enc, err)
	}
	return decoded, warning, nil
}

func decode(raw []byte, enc Encoding) (string, error) {
	var dec *encoding.Decoder
	switch enc {
	case EUCJP:
		dec = japanese.EUCJP.NewDecoder()
	case UTF8:
		return string(raw), nil
	default:
		return "", fmt.Errorf("unknown skk dict encoding %q", enc)
	}
	out, _, err := transform.String(dec, string(raw))
	if err != nil {
		return "", err
	}
	return out, nil
}

func sniff(raw []byte) string {
	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(raw)
	if err != nil || result == nil {
		return ""
	}
	return result.Charset
}

func matchesSniff(enc Encoding, charset string) bool {
	charset = strings.ToUpper(charset)
	switch enc {
	case EUCJP:
		return strings.Contains(charset, "EUC")
	case UTF8:
		return strings.Contains(charset, "UTF-8") || strings.Contains(charset, "ASCII")
	default:
		return true
	}
}
