package keys

import (
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip32"
	"github.com/tyler-smith/go-bip39"
	"github/chapool/evm-wallet/internal/wallet/errs"
)

// DeriveFromMnemonic derives the key at a BIP-44 path (DefaultDerivationPath
// when empty) from the mnemonic's seed with an empty passphrase.
func DeriveFromMnemonic(phrase string, path string) (*Wallet, error) {
	phrase = normalizeMnemonic(phrase)
	if path == "" {
		path = DefaultDerivationPath
	}

	indices, err := parseDerivationPath(path)
	if err != nil {
		return nil, err
	}

	seed, err := bip39.NewSeedWithErrorChecking(phrase, "")
	if err != nil {
		return nil, errs.Wrap(errs.KindInvalidMnemonic, "derive from mnemonic", err)
	}
	defer zero(seed)

	key, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, errs.Wrap(errs.KindInvalidMnemonic, "derive from mnemonic", errors.Wrap(err, "failed to create master key"))
	}

	for _, index := range indices {
		key, err = key.NewChildKey(index)
		if err != nil {
			return nil, errs.Wrap(errs.KindInvalidArgument, "derive from mnemonic",
				errors.Wrapf(err, "failed to derive child key at index %d", index))
		}
	}

	privateKey, err := crypto.ToECDSA(key.Key)
	if err != nil {
		return nil, errs.Wrap(errs.KindInvalidKeyEncoding, "derive from mnemonic", err)
	}

	return newWallet(privateKey, phrase), nil
}

// parseDerivationPath parses "m/44'/60'/0'/0/0" into child indices, with the
// hardened bit set for segments ending in ' or h.
func parseDerivationPath(path string) ([]uint32, error) {
	parts := strings.Split(strings.TrimSpace(path), "/")
	if len(parts) == 0 || parts[0] != "m" {
		return nil, errs.Newf(errs.KindInvalidArgument, "parse derivation path", "invalid derivation path %q", path)
	}

	indices := make([]uint32, 0, len(parts)-1)
	for _, part := range parts[1:] {
		hardened := strings.HasSuffix(part, "'") || strings.HasSuffix(part, "h")
		if hardened {
			part = part[:len(part)-1]
		}

		index, err := strconv.ParseUint(part, 10, 31)
		if err != nil {
			return nil, errs.Newf(errs.KindInvalidArgument, "parse derivation path", "invalid path segment %q", part)
		}

		child := uint32(index)
		if hardened {
			child += bip32.FirstHardenedChild
		}
		indices = append(indices, child)
	}

	return indices, nil
}
