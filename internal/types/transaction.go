package types

import "strings"

const TransactionStatusSubmitted = "submitted"

// PostSendNativePayload transfers Amount ether. PrivateKey falls back to
// the server's configured key when omitted.
type PostSendNativePayload struct {
	To         *string `json:"to"`
	Amount     *string `json:"amount"`
	PrivateKey *string `json:"private_key,omitempty"`
	Network    *string `json:"network,omitempty"`
}

func (p *PostSendNativePayload) Validate() error {
	v := &ValidationError{}
	v.required("to", p.To)
	v.required("amount", p.Amount)

	return v.orNil()
}

// PostSendErc20Payload transfers Amount whole tokens; the token's
// on-chain decimals convert it to base units.
type PostSendErc20Payload struct {
	To           *string `json:"to"`
	Amount       *string `json:"amount"`
	TokenAddress *string `json:"token_address"`
	PrivateKey   *string `json:"private_key,omitempty"`
	Network      *string `json:"network,omitempty"`
}

func (p *PostSendErc20Payload) Validate() error {
	v := &ValidationError{}
	v.required("to", p.To)
	v.required("amount", p.Amount)
	v.required("token_address", p.TokenAddress)

	return v.orNil()
}

// PostEstimateGasPayload prices a native transfer, or a token transfer
// when TokenAddress is set. The sender is From, or the address of
// PrivateKey, or the server's configured key.
type PostEstimateGasPayload struct {
	To           *string `json:"to"`
	Amount       *string `json:"amount,omitempty"`
	TokenAddress *string `json:"token_address,omitempty"`
	From         *string `json:"from,omitempty"`
	PrivateKey   *string `json:"private_key,omitempty"`
	Network      *string `json:"network,omitempty"`
}

func (p *PostEstimateGasPayload) Validate() error {
	v := &ValidationError{}
	v.required("to", p.To)
	if p.Amount != nil && strings.TrimSpace(*p.Amount) == "" {
		v.add("amount", "must not be empty")
	}

	return v.orNil()
}

type PostTransactionDetailsPayload struct {
	TxHash  *string `json:"tx_hash"`
	Network *string `json:"network,omitempty"`
}

func (p *PostTransactionDetailsPayload) Validate() error {
	v := &ValidationError{}
	v.required("tx_hash", p.TxHash)

	return v.orNil()
}

type PostTransactionHistoryPayload struct {
	Address   *string `json:"address"`
	FromBlock *uint64 `json:"from_block,omitempty"`
	ToBlock   *uint64 `json:"to_block,omitempty"`
	Network   *string `json:"network,omitempty"`
}

func (p *PostTransactionHistoryPayload) Validate() error {
	v := &ValidationError{}
	v.required("address", p.Address)
	validateRange(v, p.FromBlock, p.ToBlock)

	return v.orNil()
}

type PostAllTransactionHistoryPayload struct {
	FromBlock *uint64 `json:"from_block"`
	ToBlock   *uint64 `json:"to_block,omitempty"`
	Network   *string `json:"network,omitempty"`
}

func (p *PostAllTransactionHistoryPayload) Validate() error {
	v := &ValidationError{}
	if p.FromBlock == nil {
		v.add("from_block", "required")
	}
	validateRange(v, p.FromBlock, p.ToBlock)

	return v.orNil()
}

func validateRange(v *ValidationError, from *uint64, to *uint64) {
	if from != nil && to != nil && *from > *to {
		v.add("from_block", "must not be greater than to_block")
	}
}

type TransactionResponse struct {
	Hash   string `json:"hash"`
	Status string `json:"status"`
	From   string `json:"from"`
	Nonce  uint64 `json:"nonce"`
}

func (r *TransactionResponse) Validate() error {
	v := &ValidationError{}
	v.required("hash", &r.Hash)
	v.required("status", &r.Status)

	return v.orNil()
}

// GasEstimateResponse carries wei amounts as decimal strings.
type GasEstimateResponse struct {
	GasLimit             uint64 `json:"gas_limit"`
	GasPrice             string `json:"gas_price"`
	TotalFee             string `json:"total_fee"`
	MaxFeePerGas         string `json:"max_fee_per_gas"`
	MaxPriorityFeePerGas string `json:"max_priority_fee_per_gas"`
	TotalNeeded          string `json:"total_needed"`
	Balance              string `json:"balance"`
	FeeSource            string `json:"fee_source"`
}

func (r *GasEstimateResponse) Validate() error {
	v := &ValidationError{}
	if r.GasLimit == 0 {
		v.add("gas_limit", "must be positive")
	}
	v.required("gas_price", &r.GasPrice)
	v.required("total_fee", &r.TotalFee)

	return v.orNil()
}

// TransactionReceipt mirrors reader.Receipt with wei amounts as strings.
type TransactionReceipt struct {
	TransactionHash   string  `json:"transaction_hash"`
	BlockNumber       uint64  `json:"block_number"`
	FromAddress       string  `json:"from_address"`
	ToAddress         *string `json:"to_address"`
	Amount            string  `json:"amount"`
	GasUsed           uint64  `json:"gas_used"`
	GasLimit          uint64  `json:"gas_limit"`
	GasPrice          string  `json:"gas_price"`
	EffectiveGasPrice string  `json:"effective_gas_price"`
	TransactionFee    string  `json:"transaction_fee"`
	BurntFees         string  `json:"burnt_fees"`
	TransactionIndex  uint64  `json:"transaction_index"`
	Timestamp         uint64  `json:"timestamp"`
	Status            string  `json:"status"`
}

type TransactionDetailsResponse struct {
	Transaction TransactionReceipt `json:"transaction"`
}

func (r *TransactionDetailsResponse) Validate() error {
	v := &ValidationError{}
	v.required("transaction.transaction_hash", &r.Transaction.TransactionHash)

	return v.orNil()
}

type TransactionHistoryResponse struct {
	Transactions []TransactionReceipt `json:"transactions"`
}

func (r *TransactionHistoryResponse) Validate() error {
	v := &ValidationError{}
	if r.Transactions == nil {
		v.add("transactions", "required")
	}

	return v.orNil()
}
