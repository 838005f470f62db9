// Package dataurl decodes the data-URL photo payloads clients embed in
// prop submissions instead of multipart uploads.
package dataurl

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedPayload indicates the payload has no header/body separator.
	ErrMalformedPayload = errors.New("malformed photo payload")

	// ErrUnsupportedMediaType indicates the header does not declare an image
	// media type.
	ErrUnsupportedMediaType = errors.New("unsupported media type")
)

const defaultExt = "jpg"

// Decode splits a data-URL payload such as "data:image/png;base64,..." into
// its decoded bytes and a filename extension derived from the media subtype.
// An empty or unusable subtype falls back to "jpg". Decode has no side
// effects.
func Decode(payload string) ([]byte, string, error) {
	header, body, found := strings.Cut(payload, ",")
	if !found {
		return nil, "", ErrMalformedPayload
	}

	if !strings.HasPrefix(header, "data:image/") {
		return nil, "", ErrUnsupportedMediaType
	}

	subtype := strings.TrimPrefix(header, "data:image/")
	if i := strings.IndexByte(subtype, ';'); i >= 0 {
		subtype = subtype[:i]
	}

	data, err := decodeBase64(body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode photo body: %w", err)
	}

	return data, extFor(subtype), nil
}

// decodeBase64 tolerates surrounding whitespace and missing padding.
func decodeBase64(body string) ([]byte, error) {
	body = strings.TrimSpace(body)
	data, err := base64.StdEncoding.DecodeString(body)
	if err == nil {
		return data, nil
	}
	if raw, rerr := base64.RawStdEncoding.DecodeString(strings.TrimRight(body, "=")); rerr == nil {
		return raw, nil
	}
	return nil, err
}

// extFor reduces a media subtype to characters safe in a flat filename.
func extFor(subtype string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(subtype) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return defaultExt
	}
	return b.String()
}
