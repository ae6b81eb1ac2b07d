package jwtx

// Signer is our interface for anything that can sign JWTs.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// NewSigner returns an HMAC signer for alg (HS256, HS384 or HS512).
func NewSigner(alg string, secret []byte) (Signer, error) {
	return newHMAC(alg, secret, "")
}
