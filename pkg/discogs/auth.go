package discogs

import (
	"strings"
	"unicode"
)

// Scheme is the HTTP authorization scheme used by Discogs.
const Scheme = "Discogs"

// Credential is a value that can be sent in the Authorization header.
type Credential interface {
	// Credentials returns the header value without the scheme prefix.
	Credentials() string
}

// AuthorizationHeader returns the full Authorization header value for c.
func AuthorizationHeader(c Credential) string {
	return Scheme + " " + c.Credentials()
}

// KeySecretAuth authenticates with a consumer key and secret.
// Either part may be empty, in which case its segment is omitted.
type KeySecretAuth struct {
	Key    string
	Secret string
}

// Credentials renders "key=<key>, secret=<secret>". The separator is
// always present so the format stays stable when a part is missing.
//
// Segments are split on commas and whitespace when parsed, so a key or
// secret containing either does not round-trip. Validate reports such
// values.
func (a KeySecretAuth) Credentials() string {
	var b strings.Builder
	if a.Key != "" {
		b.WriteString("key=")
		b.WriteString(a.Key)
	}
	b.WriteString(", ")
	if a.Secret != "" {
		b.WriteString("secret=")
		b.WriteString(a.Secret)
	}
	return b.String()
}

// Validate reports a key or secret that ParseKeySecretAuth could not read
// back from the encoded header.
func (a KeySecretAuth) Validate() error {
	if strings.IndexFunc(a.Key, isSeparator) >= 0 {
		return &HeaderError{Header: Scheme, Reason: "key contains a comma or whitespace"}
	}
	if strings.IndexFunc(a.Secret, isSeparator) >= 0 {
		return &HeaderError{Header: Scheme, Reason: "secret contains a comma or whitespace"}
	}
	return nil
}

// TokenAuth authenticates with a personal access token.
type TokenAuth struct {
	Token string
}

// Credentials renders "token=<token>".
func (a TokenAuth) Credentials() string {
	return "token=" + a.Token
}

// ParseAuthorization parses a Discogs Authorization header value into
// either a TokenAuth or a KeySecretAuth.
func ParseAuthorization(header string) (Credential, error) {
	rest, err := trimScheme(header)
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(rest, "token=") {
		return ParseTokenAuth(header)
	}
	return ParseKeySecretAuth(header)
}

// ParseKeySecretAuth parses "Discogs key=<key>, secret=<secret>". Either
// segment may be absent. Segments may be separated by commas, whitespace,
// or both, so "Discogs key=<key> secret=<secret>" is accepted too.
func ParseKeySecretAuth(header string) (KeySecretAuth, error) {
	var auth KeySecretAuth

	rest, err := trimScheme(header)
	if err != nil {
		return auth, err
	}

	seen := make(map[string]bool, 2)
	for _, segment := range strings.FieldsFunc(rest, isSeparator) {
		name, value, ok := strings.Cut(segment, "=")
		if !ok {
			return KeySecretAuth{}, &HeaderError{Header: header, Reason: "segment " + quote(segment) + " is not name=value"}
		}
		if seen[name] {
			return KeySecretAuth{}, &HeaderError{Header: header, Reason: "duplicate segment " + quote(name)}
		}
		seen[name] = true
		switch name {
		case "key":
			auth.Key = value
		case "secret":
			auth.Secret = value
		default:
			return KeySecretAuth{}, &HeaderError{Header: header, Reason: "unexpected segment " + quote(name)}
		}
	}

	return auth, nil
}

// ParseTokenAuth parses "Discogs token=<token>". The token is required and
// may itself contain commas.
func ParseTokenAuth(header string) (TokenAuth, error) {
	rest, err := trimScheme(header)
	if err != nil {
		return TokenAuth{}, err
	}
	token, ok := strings.CutPrefix(rest, "token=")
	if !ok {
		return TokenAuth{}, &HeaderError{Header: header, Reason: "missing token= segment"}
	}
	if token == "" {
		return TokenAuth{}, &HeaderError{Header: header, Reason: "empty token"}
	}
	return TokenAuth{Token: token}, nil
}

// trimScheme strips the "Discogs " prefix. Scheme names are
// case-insensitive per RFC 7235.
func trimScheme(header string) (string, error) {
	scheme, rest, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, Scheme) {
		return "", &HeaderError{Header: header, Reason: "expected " + Scheme + " scheme"}
	}
	return rest, nil
}

func isSeparator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}

func quote(s string) string {
	return `"` + s + `"`
}
