package core

// decode.go turns raw upload bytes into UTF-8 text.
//
// Billing exports arrive in two encodings in practice: UTF-8 (often with a
// BOM when saved from Excel on Windows) and EUC-KR from Korean-locale
// spreadsheet tools. The order matters:
//  1. The UTF-8 BOM (0xEF 0xBB 0xBF) is stripped first
//  2. Valid UTF-8 is used as-is
//  3. Anything else is decoded as EUC-KR; undecodable bytes are an error

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// StripBOM removes a leading UTF-8 byte order mark.
func StripBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, utf8BOM)
}

// DecodeText returns data as UTF-8, falling back to EUC-KR when the bytes
// are not valid UTF-8. Returns ErrEncoding if neither decoding applies.
func DecodeText(data []byte) (string, error) {
	data = StripBOM(data)
	if utf8.Valid(data) {
		return string(data), nil
	}

	decoded, err := korean.EUCKR.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	if bytes.ContainsRune(decoded, utf8.RuneError) {
		return "", fmt.Errorf("%w: content is neither UTF-8 nor EUC-KR", ErrEncoding)
	}

	return string(StripBOM(decoded)), nil
}
