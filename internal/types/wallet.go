package types

import "github.com/go-openapi/swag"

type PostFromPrivateKeyPayload struct {
	PrivateKey *string `json:"private_key"`
}

func (p *PostFromPrivateKeyPayload) Validate() error {
	v := &ValidationError{}
	v.required("private_key", p.PrivateKey)

	return v.orNil()
}

type PostFromMnemonicPayload struct {
	Mnemonic *string `json:"mnemonic"`
}

func (p *PostFromMnemonicPayload) Validate() error {
	v := &ValidationError{}
	v.required("mnemonic", p.Mnemonic)

	return v.orNil()
}

// PostFromMnemonicPathPayload derives along Path, which defaults to
// the first BIP-44 Ethereum account.
type PostFromMnemonicPathPayload struct {
	Mnemonic *string `json:"mnemonic"`
	Path     *string `json:"path,omitempty"`
}

func (p *PostFromMnemonicPathPayload) Validate() error {
	v := &ValidationError{}
	v.required("mnemonic", p.Mnemonic)
	if p.Path != nil && *p.Path == "" {
		v.add("path", "must not be empty")
	}

	return v.orNil()
}

type PostGenerateMnemonicPayload struct {
	WordCount *int64 `json:"word_count,omitempty"`
}

func (p *PostGenerateMnemonicPayload) Validate() error {
	v := &ValidationError{}
	if p.WordCount != nil && swag.Int64Value(p.WordCount) <= 0 {
		v.add("word_count", "must be positive")
	}

	return v.orNil()
}

type WalletResponse struct {
	Address    string `json:"address"`
	PrivateKey string `json:"private_key"`
	PublicKey  string `json:"public_key"`
	Mnemonic   string `json:"mnemonic,omitempty"`
}

func (r *WalletResponse) Validate() error {
	v := &ValidationError{}
	v.required("address", &r.Address)
	v.required("private_key", &r.PrivateKey)
	v.required("public_key", &r.PublicKey)

	return v.orNil()
}

type AddressResponse struct {
	Address string `json:"address"`
}

func (r *AddressResponse) Validate() error {
	v := &ValidationError{}
	v.required("address", &r.Address)

	return v.orNil()
}

type MnemonicResponse struct {
	Mnemonic string `json:"mnemonic"`
}

func (r *MnemonicResponse) Validate() error {
	v := &ValidationError{}
	v.required("mnemonic", &r.Mnemonic)

	return v.orNil()
}
