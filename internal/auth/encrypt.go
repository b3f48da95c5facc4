package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"log"
	"strings"

	"golang.org/x/crypto/ssh"
)

var (
	ErrInvalidPublicKey = errors.New("invalid RSA public key")
	ErrNotRSAKey        = errors.New("public key is not RSA")
)

// Encryptor transforms a password before it leaves the client.
// This is obfuscation only; transport security comes from HTTPS.
type Encryptor interface {
	Encrypt(plain string) (string, error)
}

// PlainEncryptor sends passwords unchanged
type PlainEncryptor struct{}

// Encrypt returns plain unchanged
func (PlainEncryptor) Encrypt(plain string) (string, error) {
	return plain, nil
}

// RSAEncryptor encrypts with RSA PKCS#1 v1.5 and base64-encodes the result,
// the format browser-side JSEncrypt produces.
type RSAEncryptor struct {
	key *rsa.PublicKey
}

// NewRSAEncryptor creates an encryptor for key
func NewRSAEncryptor(key *rsa.PublicKey) *RSAEncryptor {
	return &RSAEncryptor{key: key}
}

// Encrypt encrypts plain with the public key
func (e *RSAEncryptor) Encrypt(plain string) (string, error) {
	out, err := rsa.EncryptPKCS1v15(rand.Reader, e.key, []byte(plain))
	if err != nil {
		return "", fmt.Errorf("failed to encrypt password: %w", err)
	}
	return base64.StdEncoding.EncodeToString(out), nil
}

// NewEncryptor picks the encryptor for the configured key. An empty key
// yields PlainEncryptor and a warning.
func NewEncryptor(publicKey string) (Encryptor, error) {
	if strings.TrimSpace(publicKey) == "" {
		log.Println("Warning: no RSA public key configured, passwords will be sent as plain text")
		return PlainEncryptor{}, nil
	}

	key, err := ParsePublicKey([]byte(publicKey))
	if err != nil {
		return nil, err
	}
	return NewRSAEncryptor(key), nil
}

// ParsePublicKey accepts PEM (PKIX "PUBLIC KEY" or PKCS#1 "RSA PUBLIC KEY")
// and OpenSSH authorized_keys encodings.
func ParsePublicKey(data []byte) (*rsa.PublicKey, error) {
	data = []byte(strings.TrimSpace(string(data)))

	if block, _ := pem.Decode(data); block != nil {
		switch block.Type {
		case "RSA PUBLIC KEY":
			key, err := x509.ParsePKCS1PublicKey(block.Bytes)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
			}
			return key, nil
		case "PUBLIC KEY":
			parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
			}
			key, ok := parsed.(*rsa.PublicKey)
			if !ok {
				return nil, ErrNotRSAKey
			}
			return key, nil
		default:
			return nil, fmt.Errorf("%w: unexpected PEM block %q", ErrInvalidPublicKey, block.Type)
		}
	}

	sshKey, _, _, _, err := ssh.ParseAuthorizedKey(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	cryptoKey, ok := sshKey.(ssh.CryptoPublicKey)
	if !ok {
		return nil, ErrNotRSAKey
	}
	key, ok := cryptoKey.CryptoPublicKey().(*rsa.PublicKey)
	if !ok {
		return nil, ErrNotRSAKey
	}
	return key, nil
}
