package downstreams

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

const privateKeyLength = 32

// Identity is the secp256k1 key pair a client signs its BitPay requests with.
type Identity struct {
	privateKey *btcec.PrivateKey
}

func NewIdentityFromHex(privateKeyHex string) (*Identity, error) {
	raw, err := hex.DecodeString(privateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("private key is not hex encoded: %w", err)
	}
	if len(raw) != privateKeyLength {
		return nil, fmt.Errorf("private key must be %d bytes, got %d", privateKeyLength, len(raw))
	}

	privateKey, _ := btcec.PrivKeyFromBytes(raw)
	return &Identity{privateKey: privateKey}, nil
}

func GenerateIdentity() (*Identity, error) {
	privateKey, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, err
	}
	return &Identity{privateKey: privateKey}, nil
}

func (i *Identity) PrivateKeyHex() string {
	return hex.EncodeToString(i.privateKey.Serialize())
}

// PublicKeyHex is the compressed public key, sent as X-Identity.
func (i *Identity) PublicKeyHex() string {
	return hex.EncodeToString(i.privateKey.PubKey().SerializeCompressed())
}

// Sign returns the hex encoded DER signature over sha256(message).
func (i *Identity) Sign(message []byte) string {
	hash := sha256.Sum256(message)
	return hex.EncodeToString(ecdsa.Sign(i.privateKey, hash[:]).Serialize())
}

// VerifySignature checks a signature produced by Sign against the hex encoded public key.
func VerifySignature(publicKeyHex string, message []byte, signatureHex string) error {
	rawKey, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return fmt.Errorf("identity is not hex encoded: %w", err)
	}
	publicKey, err := btcec.ParsePubKey(rawKey)
	if err != nil {
		return fmt.Errorf("invalid identity: %w", err)
	}

	rawSig, err := hex.DecodeString(signatureHex)
	if err != nil {
		return fmt.Errorf("signature is not hex encoded: %w", err)
	}
	signature, err := ecdsa.ParseDERSignature(rawSig)
	if err != nil {
		return fmt.Errorf("invalid signature: %w", err)
	}

	hash := sha256.Sum256(message)
	if !signature.Verify(hash[:], publicKey) {
		return errors.New("signature does not match")
	}
	return nil
}
