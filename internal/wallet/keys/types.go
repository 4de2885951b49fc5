package keys

import (
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github/chapool/evm-wallet/internal/wallet/errs"
)

// DefaultDerivationPath is the first account of the standard Ethereum BIP-44 tree.
const DefaultDerivationPath = "m/44'/60'/0'/0/0"

var supportedWordCounts = map[int]int{
	12: 128,
	15: 160,
	18: 192,
	21: 224,
	24: 256,
}

// Identity is the serializable view of a key. It never signs anything.
type Identity struct {
	PrivateKey string `json:"private_key"`
	PublicKey  string `json:"public_key"`
	Address    string `json:"address"`
	Mnemonic   string `json:"mnemonic,omitempty"`
}

// Bind re-derives the signing capability from the identity's private key.
func (id Identity) Bind() (*Wallet, error) {
	w, err := FromPrivateKey(id.PrivateKey)
	if err != nil {
		return nil, err
	}
	w.Mnemonic = id.Mnemonic

	return w, nil
}

// Wallet is an Identity plus the key that can sign for it. A Wallet that was
// decoded from JSON or built as a zero value carries no key.
type Wallet struct {
	Identity

	key *ecdsa.PrivateKey
}

func newWallet(key *ecdsa.PrivateKey, mnemonic string) *Wallet {
	return &Wallet{
		Identity: Identity{
			PrivateKey: hexPrefix + common.Bytes2Hex(crypto.FromECDSA(key)),
			PublicKey:  hexPrefix + common.Bytes2Hex(crypto.FromECDSAPub(&key.PublicKey)),
			Address:    crypto.PubkeyToAddress(key.PublicKey).Hex(),
			Mnemonic:   mnemonic,
		},
		key: key,
	}
}

func (w *Wallet) CanSign() bool {
	return w != nil && w.key != nil
}

// Account returns the wallet address. It works without a signing key.
func (w *Wallet) Account() common.Address {
	if w.key != nil {
		return crypto.PubkeyToAddress(w.key.PublicKey)
	}

	return common.HexToAddress(w.Address)
}

// SignTx signs tx with the latest signer for chainID.
func (w *Wallet) SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	if !w.CanSign() {
		return nil, errs.New(errs.KindSigningUnavailable, "sign transaction", "wallet has no signing key")
	}

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), w.key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign transaction")
	}

	return signed, nil
}
