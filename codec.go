// codec.go
//
// Value codec for the ICFP wire format: big-endian base-94 integer bodies and
// the fixed 94-symbol substitution cipher used by string literals. The digit
// alphabet is ASCII 33..126; the string cipher maps position i of the custom
// alphabet below to ASCII 33+i and back, so encode and decode are exact
// mirrors. Characters outside the alphabet pass through unchanged.

package icfp

// The cipher alphabet, in wire order. len(alphabet) == 94.
const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!\"#$%&'()*+,-./:;<=>?@[\\]^_`|~ \n"

const (
	base94  = 94
	digitLo = 33  // '!'
	digitHi = 126 // '~'
)

var (
	decodeTable [128]byte // ASCII 33..126 -> alphabet rune
	encodeTable [128]byte // alphabet rune -> ASCII 33..126
)

func init() {
	for i := range decodeTable {
		decodeTable[i] = byte(i)
		encodeTable[i] = byte(i)
	}
	for i := 0; i < len(alphabet); i++ {
		decodeTable[digitLo+i] = alphabet[i]
		encodeTable[alphabet[i]] = byte(digitLo + i)
	}
}

// DecodeString translates an S-token body into its plain-text string value.
func DecodeString(encoded string) Value {
	out := make([]byte, len(encoded))
	for i := 0; i < len(encoded); i++ {
		c := encoded[i]
		if c < 128 {
			c = decodeTable[c]
		}
		out[i] = c
	}
	return Str(string(out))
}

// EncodeString is the inverse of DecodeString: plain text to S-token body.
func EncodeString(source string) string {
	out := make([]byte, len(source))
	for i := 0; i < len(source); i++ {
		c := source[i]
		if c < 128 {
			c = encodeTable[c]
		}
		out[i] = c
	}
	return string(out)
}

// DecodeIntegerBody interprets encoded as a big-endian base-94 numeral whose
// digits are ASCII 33..126 (digit value = code - 33).
func DecodeIntegerBody(encoded string) (int64, error) {
	var n int64
	for i := 0; i < len(encoded); i++ {
		c := encoded[i]
		if c < digitLo || c > digitHi {
			return 0, &InvalidDigitError{Body: encoded, Char: c}
		}
		n = n*base94 + int64(c-digitLo)
	}
	return n, nil
}

// EncodeIntegerBody renders a non-negative integer as a base-94 body. Zero
// encodes to "!". Negative values never reach this routine: sign lives in the
// Negate unary operator at the AST level, never inside the body.
func EncodeIntegerBody(n int64) string {
	if n == 0 {
		return "!"
	}
	var buf [11]byte // 94^11 > 2^63
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte(digitLo + n%base94)
		n /= base94
	}
	return string(buf[i:])
}

// DecodeInteger combines the body decode with the Value constructor.
func DecodeInteger(encoded string) (Value, error) {
	n, err := DecodeIntegerBody(encoded)
	if err != nil {
		return Value{}, err
	}
	return Int(n), nil
}
