package backup

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"

	"alfajr-backend/models"
	"alfajr-backend/utils"

	"golang.org/x/crypto/chacha20poly1305"
)

// Codec seals snapshots into the blob stored in the backup log. The key is
// derived from an application constant (overridable via BACKUP_SECRET), so
// this is tamper-evident obfuscation, NOT confidentiality: anyone with the
// binary can recover the key. The exported backup file is plain JSON and
// never sealed.
type Codec struct {
	key         []byte
	fingerprint string
}

func NewCodec(secret string) *Codec {
	key := sha256.Sum256([]byte(secret))
	return &Codec{
		key:         key[:],
		fingerprint: utils.HashString(secret),
	}
}

// Seal serializes the snapshot and encrypts it. The blob format is
// "<key fingerprint>:<base64(nonce || ciphertext)>"; the fingerprint lets
// Open report a key mismatch instead of a generic decryption failure.
func (c *Codec) Seal(snapshot *models.Snapshot) (string, error) {
	plain, err := json.Marshal(snapshot)
	if err != nil {
		return "", err
	}

	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	sealed := aead.Seal(nonce, nonce, plain, nil)
	return c.fingerprint + ":" + base64.StdEncoding.EncodeToString(sealed), nil
}

// Open reverses Seal.
func (c *Codec) Open(blob string) (*models.Snapshot, error) {
	fingerprint, encoded, found := strings.Cut(blob, ":")
	if !found {
		return nil, errors.New("malformed backup blob")
	}
	if fingerprint != c.fingerprint {
		return nil, errors.New("backup was sealed with a different key")
	}

	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, err
	}

	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return nil, err
	}
	if len(sealed) < aead.NonceSize() {
		return nil, errors.New("backup blob too short")
	}

	plain, err := aead.Open(nil, sealed[:aead.NonceSize()], sealed[aead.NonceSize():], nil)
	if err != nil {
		return nil, err
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal(plain, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}
