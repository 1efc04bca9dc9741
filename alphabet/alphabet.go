// Package alphabet maps application strings onto the integer symbol arrays
// the cipher packages operate on. It separates format characters (hyphens,
// dots, colons, at signs) from data characters so that values like SSNs and
// PANs keep their punctuation through tokenization, and converts the data
// characters to and from base-radix symbol arrays.
//
// This layer is deliberately outside the cryptographic core: the ciphers in
// subtle and ifx only ever see []int values.
package alphabet

import (
	"github.com/zone1511/fpe4j/internal/ferr"
)

// Digits is the radix-10 alphabet.
const Digits = "0123456789"

// Letters is the radix-52 alphabet of ASCII letters.
const Letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// SeparateFormatAndData separates format characters from data characters.
// It returns a format mask (true = format char, false = data char) and the
// data characters only. Any non-alphanumeric character counts as format.
func SeparateFormatAndData(s string) ([]bool, string) {
	formatMask := make([]bool, len(s))
	dataChars := make([]byte, 0, len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= '0' && c <= '9') ||
			(c >= 'A' && c <= 'Z') ||
			(c >= 'a' && c <= 'z') {
			dataChars = append(dataChars, c)
		} else {
			formatMask[i] = true
		}
	}

	return formatMask, string(dataChars)
}

// ReconstructWithFormat reinserts the format characters of original into
// data at the positions the mask marks, producing a string shaped like the
// original with the data characters replaced.
func ReconstructWithFormat(data string, formatMask []bool, original string) (string, error) {
	if len(formatMask) != len(original) {
		return "", ferr.InvalidArgumentf("format mask and original must have equal length: %d != %d", len(formatMask), len(original))
	}
	result := make([]byte, len(formatMask))
	dataIdx := 0

	for i := 0; i < len(formatMask); i++ {
		if formatMask[i] {
			result[i] = original[i]
		} else {
			if dataIdx >= len(data) {
				return "", ferr.InvalidArgumentf("data has fewer characters than the mask requires: %d", len(data))
			}
			result[i] = data[dataIdx]
			dataIdx++
		}
	}
	if dataIdx != len(data) {
		return "", ferr.InvalidArgumentf("data has more characters than the mask requires: %d > %d", len(data), dataIdx)
	}

	return string(result), nil
}

// DetermineAlphabet returns the smallest of the standard alphabets that
// covers every data character of s: digits, letters, or both. Format
// characters are expected to have been separated out already. An input with
// no alphanumeric characters maps to the digit alphabet.
func DetermineAlphabet(s string) string {
	hasLetters := false
	hasDigits := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= '0' && c <= '9' {
			hasDigits = true
		} else if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') {
			hasLetters = true
		}
	}

	switch {
	case hasDigits && hasLetters:
		return Digits + Letters
	case hasLetters:
		return Letters
	default:
		return Digits
	}
}

// StringToNumeric converts s to a symbol array against the given alphabet.
// Every character of s must appear in the alphabet.
func StringToNumeric(s, alphabet string) ([]int, error) {
	index := make(map[byte]int, len(alphabet))
	for i := 0; i < len(alphabet); i++ {
		index[alphabet[i]] = i
	}

	result := make([]int, len(s))
	for i := 0; i < len(s); i++ {
		idx, ok := index[s[i]]
		if !ok {
			return nil, ferr.InvalidArgumentf("character %q is not in the alphabet", s[i])
		}
		result[i] = idx
	}
	return result, nil
}

// NumericToString converts a symbol array back to a string against the
// given alphabet. Every symbol must be in [0, len(alphabet)).
func NumericToString(numeric []int, alphabet string) (string, error) {
	result := make([]byte, len(numeric))
	for i, v := range numeric {
		if v < 0 || v >= len(alphabet) {
			return "", ferr.InvalidArgumentf("symbol %d at position %d is outside the alphabet of size %d", v, i, len(alphabet))
		}
		result[i] = alphabet[v]
	}
	return string(result), nil
}
