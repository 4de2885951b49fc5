package keys_test

import (
	"encoding/json"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyler-smith/go-bip39"
	"github/chapool/evm-wallet/internal/wallet/errs"
	"github/chapool/evm-wallet/internal/wallet/keys"
)

const (
	knownPrivateKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	knownAddress    = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	abandonArt      = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon " +
		"abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon art"
	abandonAbout = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
)

func TestFromPrivateKeyKnownVector(t *testing.T) {
	w, err := keys.FromPrivateKey(knownPrivateKey)
	require.NoError(t, err)

	assert.Equal(t, knownAddress, w.Address)
	assert.Equal(t, knownPrivateKey, w.PrivateKey)
	assert.True(t, strings.HasPrefix(w.PublicKey, "0x04"))
	assert.Len(t, w.PublicKey, 2+130)
	assert.True(t, w.CanSign())

	withoutPrefix, err := keys.FromPrivateKey(strings.TrimPrefix(knownPrivateKey, "0x"))
	require.NoError(t, err)
	assert.Equal(t, w.Identity, withoutPrefix.Identity)

	upper, err := keys.FromPrivateKey("0x" + strings.ToUpper(strings.TrimPrefix(knownPrivateKey, "0x")))
	require.NoError(t, err)
	assert.Equal(t, knownPrivateKey, upper.PrivateKey)
}

func TestAddressFromPrivateKey(t *testing.T) {
	address, err := keys.AddressFromPrivateKey(knownPrivateKey)
	require.NoError(t, err)
	assert.True(t, strings.EqualFold("0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266", address))
}

func TestInvalidPrivateKeys(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  errs.Kind
	}{
		{"empty", "", errs.KindInvalidKeyFormat},
		{"garbage", "invalid", errs.KindInvalidKeyFormat},
		{"prefix only", "0x", errs.KindInvalidKeyFormat},
		{"too short", "0x123", errs.KindInvalidKeyFormat},
		{"too long", "0x123456789abcdef123456789abcdef123456789abcdef123456789abcdef123456", errs.KindInvalidKeyFormat},
		{"not hex", "0x" + strings.Repeat("G", 64), errs.KindInvalidKeyEncoding},
		{"zero scalar", "0x" + strings.Repeat("0", 64), errs.KindInvalidKeyEncoding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := keys.FromPrivateKey(tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.kind, errs.KindOf(err))

			_, err = keys.AddressFromPrivateKey(tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.kind, errs.KindOf(err))
		})
	}
}

func TestGenerateRandom(t *testing.T) {
	a, err := keys.GenerateRandom()
	require.NoError(t, err)
	b, err := keys.GenerateRandom()
	require.NoError(t, err)

	assert.NotEqual(t, a.Address, b.Address)
	assert.True(t, common.IsHexAddress(a.Address))

	again, err := keys.FromPrivateKey(a.PrivateKey)
	require.NoError(t, err)
	assert.Equal(t, a.Address, again.Address)
	assert.Equal(t, a.PublicKey, again.PublicKey)
}

func TestGenerateMnemonicWordCounts(t *testing.T) {
	for _, count := range []int{12, 15, 18, 21, 24} {
		mnemonic, err := keys.GenerateMnemonic(count)
		require.NoError(t, err)
		assert.Len(t, strings.Fields(mnemonic), count)
		assert.True(t, bip39.IsMnemonicValid(mnemonic))
	}

	for _, count := range []int{0, 11, 13, 25} {
		_, err := keys.GenerateMnemonic(count)
		require.Error(t, err)
		assert.Equal(t, errs.KindUnsupportedWordCount, errs.KindOf(err))
	}
}

func TestFromMnemonicDeterministic(t *testing.T) {
	a, err := keys.FromMnemonic(abandonArt)
	require.NoError(t, err)
	b, err := keys.FromMnemonic("  " + strings.ReplaceAll(abandonArt, " ", "  ") + "\n")
	require.NoError(t, err)

	assert.Equal(t, a.Address, b.Address)
	assert.Equal(t, abandonArt, a.Mnemonic)
	assert.True(t, common.IsHexAddress(a.Address))
}

func TestFromMnemonicInvalid(t *testing.T) {
	_, err := keys.FromMnemonic("invalid mnemonic phrase")
	require.Error(t, err)
	assert.Equal(t, errs.KindInvalidMnemonic, errs.KindOf(err))

	_, err = keys.FromMnemonic(strings.Replace(abandonArt, " art", " abandon", 1))
	require.Error(t, err)
	assert.Equal(t, errs.KindInvalidMnemonic, errs.KindOf(err))
}

func TestDeriveFromMnemonic(t *testing.T) {
	w, err := keys.DeriveFromMnemonic(abandonAbout, "")
	require.NoError(t, err)
	assert.Equal(t, "0x9858EfFD232B4033E47d90003D41EC34EcaEda94", w.Address)

	second, err := keys.DeriveFromMnemonic(abandonAbout, "m/44'/60'/0'/0/1")
	require.NoError(t, err)
	assert.NotEqual(t, w.Address, second.Address)

	shortcut, err := keys.FromMnemonic(abandonAbout)
	require.NoError(t, err)
	assert.NotEqual(t, w.Address, shortcut.Address)

	_, err = keys.DeriveFromMnemonic(abandonAbout, "44'/60'")
	assert.Equal(t, errs.KindInvalidArgument, errs.KindOf(err))
	_, err = keys.DeriveFromMnemonic(abandonAbout, "m/44'/x")
	assert.Equal(t, errs.KindInvalidArgument, errs.KindOf(err))
}

func TestParseAddress(t *testing.T) {
	addr, err := keys.ParseAddress("0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266")
	require.NoError(t, err)
	assert.Equal(t, knownAddress, addr.Hex())

	for _, invalid := range []string{"", "0x", "f39fd6e51aad88f6f4ce6ab8827279cfffb92266", "0x1234", "0xZZ9fd6e51aad88f6f4ce6ab8827279cfffb92266"} {
		_, err := keys.ParseAddress(invalid)
		assert.Equal(t, errs.KindInvalidArgument, errs.KindOf(err), invalid)
	}
}

func TestIdentityCannotSign(t *testing.T) {
	w, err := keys.FromPrivateKey(knownPrivateKey)
	require.NoError(t, err)

	raw, err := json.Marshal(w)
	require.NoError(t, err)
	assert.JSONEq(t, `{"private_key":"`+knownPrivateKey+`","public_key":"`+w.PublicKey+`","address":"`+knownAddress+`"}`, string(raw))

	var decoded keys.Wallet
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.False(t, decoded.CanSign())
	assert.Equal(t, w.Account(), decoded.Account())

	tx := types.NewTx(&types.DynamicFeeTx{ChainID: big.NewInt(1), Gas: 21000, GasFeeCap: big.NewInt(2), GasTipCap: big.NewInt(1)})
	_, err = decoded.SignTx(tx, big.NewInt(1))
	require.Error(t, err)
	assert.Equal(t, errs.KindSigningUnavailable, errs.KindOf(err))

	bound, err := decoded.Identity.Bind()
	require.NoError(t, err)
	signed, err := bound.SignTx(tx, big.NewInt(1))
	require.NoError(t, err)

	sender, err := types.Sender(types.LatestSignerForChainID(big.NewInt(1)), signed)
	require.NoError(t, err)
	assert.Equal(t, crypto.PubkeyToAddress(crypto.ToECDSAUnsafe(common.FromHex(knownPrivateKey)).PublicKey), sender)
}
