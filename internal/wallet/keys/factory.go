// Package keys creates wallets from randomness, raw private keys and BIP-39
// mnemonics, and validates private keys and addresses.
package keys

import (
	"crypto/ecdsa"
	"encoding/hex"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tyler-smith/go-bip39"
	"github/chapool/evm-wallet/internal/wallet/errs"
)

const (
	hexPrefix         = "0x"
	privateKeyHexLen  = 64
	privateKeyByteLen = 32
)

// GenerateRandom creates a wallet from a fresh secp256k1 key.
func GenerateRandom() (*Wallet, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, errs.Wrap(errs.KindEntropy, "generate key", err)
	}

	return newWallet(key, ""), nil
}

// FromPrivateKey accepts 64 hex characters with an optional 0x prefix.
func FromPrivateKey(privateKey string) (*Wallet, error) {
	key, err := parsePrivateKey(privateKey)
	if err != nil {
		return nil, err
	}

	return newWallet(key, ""), nil
}

// AddressFromPrivateKey validates privateKey the same way FromPrivateKey does
// and returns only the checksummed address.
func AddressFromPrivateKey(privateKey string) (string, error) {
	key, err := parsePrivateKey(privateKey)
	if err != nil {
		return "", err
	}

	return crypto.PubkeyToAddress(key.PublicKey).Hex(), nil
}

// FromMnemonic derives the private key from the first 32 bytes of the BIP-39
// seed (empty passphrase). This is not BIP-44 derivation and is kept for
// compatibility with wallets already created this way; DeriveFromMnemonic
// offers the standard path.
func FromMnemonic(phrase string) (*Wallet, error) {
	phrase = normalizeMnemonic(phrase)

	seed, err := bip39.NewSeedWithErrorChecking(phrase, "")
	if err != nil {
		return nil, errs.Wrap(errs.KindInvalidMnemonic, "mnemonic", err)
	}
	defer zero(seed)

	key, err := crypto.ToECDSA(seed[:privateKeyByteLen])
	if err != nil {
		return nil, errs.Wrap(errs.KindInvalidMnemonic, "mnemonic", err)
	}

	return newWallet(key, phrase), nil
}

// GenerateMnemonic returns a new English mnemonic of 12, 15, 18, 21 or 24 words.
func GenerateMnemonic(wordCount int) (string, error) {
	bits, ok := supportedWordCounts[wordCount]
	if !ok {
		return "", errs.Newf(errs.KindUnsupportedWordCount, "generate mnemonic",
			"unsupported word count %d, use 12, 15, 18, 21 or 24", wordCount)
	}

	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return "", errs.Wrap(errs.KindEntropy, "generate mnemonic", err)
	}
	defer zero(entropy)

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", errs.Wrap(errs.KindEntropy, "generate mnemonic", err)
	}

	return mnemonic, nil
}

// ParseAddress accepts a 20 byte hex address with 0x prefix, in any case.
func ParseAddress(address string) (common.Address, error) {
	address = strings.TrimSpace(address)
	if !common.IsHexAddress(address) || !strings.HasPrefix(strings.ToLower(address), hexPrefix) {
		return common.Address{}, errs.Newf(errs.KindInvalidArgument, "parse address", "invalid address %q", address)
	}

	return common.HexToAddress(address), nil
}

func parsePrivateKey(privateKey string) (*ecdsa.PrivateKey, error) {
	trimmed := strings.TrimSpace(privateKey)
	if strings.HasPrefix(trimmed, hexPrefix) || strings.HasPrefix(trimmed, "0X") {
		trimmed = trimmed[len(hexPrefix):]
	}

	if len(trimmed) != privateKeyHexLen {
		return nil, errs.Newf(errs.KindInvalidKeyFormat, "parse private key",
			"expected %d hex characters, got %d", privateKeyHexLen, len(trimmed))
	}

	raw, err := hex.DecodeString(trimmed)
	if err != nil {
		return nil, errs.New(errs.KindInvalidKeyEncoding, "parse private key", "private key is not valid hex")
	}
	defer zero(raw)

	key, err := crypto.ToECDSA(raw)
	if err != nil {
		return nil, errs.Wrap(errs.KindInvalidKeyEncoding, "parse private key", err)
	}

	return key, nil
}

func normalizeMnemonic(phrase string) string {
	return strings.Join(strings.Fields(phrase), " ")
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
