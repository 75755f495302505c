// Package archive extracts HTML payloads from saved MHTML archives.
//
// Browsers save pages as MIME-encapsulated bundles (an email-like multipart
// message carrying the page and its resources). Extract locates the HTML part
// and recovers its text through a chain of candidate encodings, because the
// declared charset on HH.ru archives is frequently missing or wrong.
package archive

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/ddanilov/hhscreen/internal/logger"
)

// ErrNoPayload indicates the archive contained no usable HTML part.
var ErrNoPayload = errors.New("archive: no html payload found")

// Extract returns the decoded HTML of a saved page. Input that carries no MIME
// envelope markers is treated as already-decoded markup and returned after
// encoding recovery. Malformed MIME structure never panics; it surfaces as
// ErrNoPayload.
func Extract(raw []byte) (string, error) {
	if !bytes.Contains(raw, []byte("MIME-Version:")) && !bytes.Contains(raw, []byte("Content-Type:")) {
		return decode(raw, "")
	}

	payload, charset, err := htmlPart(raw)
	if err != nil {
		logger.Debug("mime extraction failed", "error", err)
		return "", fmt.Errorf("%w: %v", ErrNoPayload, err)
	}
	return decode(payload, charset)
}

// htmlPart walks the MIME message depth-first and returns the body of the
// first text/html part, together with its declared charset (may be empty).
func htmlPart(raw []byte) ([]byte, string, error) {
	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	if err != nil {
		return nil, "", err
	}

	ctype := msg.Header.Get("Content-Type")
	mediaType, params, err := mime.ParseMediaType(ctype)
	if err != nil {
		return nil, "", fmt.Errorf("bad envelope content type %q: %w", ctype, err)
	}

	if strings.HasPrefix(mediaType, "multipart/") {
		boundary := params["boundary"]
		if boundary == "" {
			return nil, "", errors.New("multipart envelope without boundary")
		}
		payload, charset, found := findHTML(multipart.NewReader(msg.Body, boundary))
		if found {
			return payload, charset, nil
		}
		return nil, "", ErrNoPayload
	}

	// Single-part envelope: usable only if the envelope itself is text/html.
	if mediaType == "text/html" {
		body, err := decodeTransfer(msg.Body, msg.Header.Get("Content-Transfer-Encoding"))
		if err != nil {
			return nil, "", err
		}
		return body, params["charset"], nil
	}

	return nil, "", ErrNoPayload
}

// findHTML scans the parts of a multipart reader in order, recursing into
// nested multiparts, and returns the first text/html body.
func findHTML(mr *multipart.Reader) (payload []byte, charset string, found bool) {
	for {
		part, err := mr.NextPart()
		if err != nil {
			// io.EOF ends the scan; a corrupt part list ends it the same way.
			return nil, "", false
		}

		mediaType, params, err := mime.ParseMediaType(part.Header.Get("Content-Type"))
		if err != nil {
			continue
		}

		if strings.HasPrefix(mediaType, "multipart/") {
			if boundary := params["boundary"]; boundary != "" {
				if p, cs, ok := findHTML(multipart.NewReader(part, boundary)); ok {
					return p, cs, true
				}
			}
			continue
		}

		if mediaType == "text/html" {
			body, err := decodeTransfer(part, part.Header.Get("Content-Transfer-Encoding"))
			if err != nil {
				logger.Debug("html part transfer decode failed", "error", err)
				continue
			}
			return body, params["charset"], true
		}
	}
}

// decodeTransfer reverses the Content-Transfer-Encoding of a part body.
func decodeTransfer(r io.Reader, cte string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(cte)) {
	case "quoted-printable":
		r = quotedprintable.NewReader(r)
	case "base64":
		r = base64.NewDecoder(base64.StdEncoding, newlineStripper{r: r})
	}
	return io.ReadAll(r)
}

// newlineStripper removes CR/LF so wrapped base64 bodies decode cleanly.
type newlineStripper struct {
	r io.Reader
}

func (s newlineStripper) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	kept := 0
	for _, b := range p[:n] {
		if b == '\r' || b == '\n' {
			continue
		}
		p[kept] = b
		kept++
	}
	return kept, err
}

// decode recovers text from raw bytes. Candidates are tried in order: the
// declared charset, UTF-8, windows-1251 (the legacy HH.ru encoding), then
// statistical detection, then UTF-8 with replacement as a last resort. The
// declared charset loses to the fallbacks when it produces garbage, which
// handles archives whose headers lie about the actual bytes.
func decode(raw []byte, declared string) (string, error) {
	if declared != "" {
		if enc, err := htmlindex.Get(declared); err == nil {
			if s, ok := decodeStrict(enc, raw); ok {
				return s, nil
			}
			logger.Debug("declared charset rejected", "charset", declared)
		}
	}

	if utf8.Valid(raw) {
		return string(raw), nil
	}

	if s, ok := decodeStrict(charmap.Windows1251, raw); ok {
		return s, nil
	}

	if res, err := chardet.NewTextDetector().DetectBest(raw); err == nil && res.Charset != "" {
		if enc, err := htmlindex.Get(strings.ToLower(res.Charset)); err == nil {
			if s, ok := decodeStrict(enc, raw); ok {
				logger.Debug("charset detected statistically", "charset", res.Charset)
				return s, nil
			}
		}
	}

	if len(raw) == 0 {
		return "", ErrNoPayload
	}
	return strings.ToValidUTF8(string(raw), string(utf8.RuneError)), nil
}

// decodeStrict decodes raw with enc and rejects the result if any byte had
// no mapping (the decoder substitutes U+FFFD for those).
func decodeStrict(enc encoding.Encoding, raw []byte) (string, bool) {
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", false
	}
	if bytes.ContainsRune(out, utf8.RuneError) {
		return "", false
	}
	return string(out), true
}
