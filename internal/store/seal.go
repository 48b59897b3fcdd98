package store

import (
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

const sealFormatVersion = 1

// ErrWrongPassphrase is returned when a sealed value cannot be opened.
var ErrWrongPassphrase = errors.New("wrong passphrase or corrupted session file")

// sealedValue is the on-disk form of one encrypted value.
type sealedValue struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Cipher []byte `json:"cipher"`
}

type scryptParams struct{ N, R, P int }

func defaultScrypt() scryptParams { return scryptParams{N: 1 << 15, R: 8, P: 1} }

// maxScrypt bounds the parameters open accepts from disk.
var maxScrypt = scryptParams{N: 1 << 17, R: 16, P: 4}

func (kp scryptParams) valid() bool {
	return kp.N > 1 && kp.N <= maxScrypt.N && kp.N&(kp.N-1) == 0 &&
		kp.R > 0 && kp.R <= maxScrypt.R &&
		kp.P > 0 && kp.P <= maxScrypt.P
}

// seal encrypts plaintext under a key derived from passphrase and a fresh
// salt. The key is unique per salt, so a zero nonce is never reused; the key
// name is bound as associated data so values cannot be swapped between keys.
func seal(passphrase, key string, plaintext []byte, kp scryptParams) (sealedValue, error) {
	var salt [16]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return sealedValue{}, err
	}
	aead, err := deriveAEAD(passphrase, salt[:], kp)
	if err != nil {
		return sealedValue{}, err
	}
	var nonce [chacha20poly1305.NonceSize]byte
	return sealedValue{
		V:      sealFormatVersion,
		Salt:   salt[:],
		N:      kp.N,
		R:      kp.R,
		P:      kp.P,
		Cipher: aead.Seal(nil, nonce[:], plaintext, []byte(key)),
	}, nil
}

func open(passphrase, key string, sv sealedValue) ([]byte, error) {
	if sv.V > sealFormatVersion {
		return nil, fmt.Errorf("unsupported sealed value version %d", sv.V)
	}
	kp := scryptParams{N: sv.N, R: sv.R, P: sv.P}
	if !kp.valid() {
		return nil, fmt.Errorf("%w: scrypt parameters N=%d r=%d p=%d out of range", ErrWrongPassphrase, kp.N, kp.R, kp.P)
	}
	aead, err := deriveAEAD(passphrase, sv.Salt, kp)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte
	pt, err := aead.Open(nil, nonce[:], sv.Cipher, []byte(key))
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}

func deriveAEAD(passphrase string, salt []byte, kp scryptParams) (cipher.AEAD, error) {
	k, err := scrypt.Key([]byte(passphrase), salt, kp.N, kp.R, kp.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	return chacha20poly1305.New(k)
}
