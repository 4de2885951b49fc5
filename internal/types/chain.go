package types

type PostBalancePayload struct {
	Address *string `json:"address"`
	Network *string `json:"network,omitempty"`
}

func (p *PostBalancePayload) Validate() error {
	v := &ValidationError{}
	v.required("address", p.Address)

	return v.orNil()
}

type PostErc20BalancePayload struct {
	Address      *string `json:"address"`
	TokenAddress *string `json:"token_address"`
	Network      *string `json:"network,omitempty"`
}

func (p *PostErc20BalancePayload) Validate() error {
	v := &ValidationError{}
	v.required("address", p.Address)
	v.required("token_address", p.TokenAddress)

	return v.orNil()
}

// BalanceResponse holds the formatted amount and the raw base units.
type BalanceResponse struct {
	Balance  string `json:"balance"`
	Raw      string `json:"raw"`
	Decimals uint8  `json:"decimals"`
}

func (r *BalanceResponse) Validate() error {
	v := &ValidationError{}
	v.required("balance", &r.Balance)
	v.required("raw", &r.Raw)

	return v.orNil()
}

type PostErc20EventsPayload struct {
	TokenAddress  *string `json:"token_address"`
	FromBlock     *uint64 `json:"from_block,omitempty"`
	ToBlock       *uint64 `json:"to_block,omitempty"`
	AddressFilter *string `json:"address_filter,omitempty"`
	Network       *string `json:"network,omitempty"`
}

func (p *PostErc20EventsPayload) Validate() error {
	v := &ValidationError{}
	v.required("token_address", p.TokenAddress)
	validateRange(v, p.FromBlock, p.ToBlock)

	return v.orNil()
}

type Erc20TransferEvent struct {
	TransactionHash string `json:"transaction_hash"`
	BlockNumber     uint64 `json:"block_number"`
	FromAddress     string `json:"from_address"`
	ToAddress       string `json:"to_address"`
	Amount          string `json:"amount"`
	LogIndex        uint64 `json:"log_index"`
}

type Erc20EventsResponse struct {
	Events []Erc20TransferEvent `json:"events"`
}

func (r *Erc20EventsResponse) Validate() error {
	v := &ValidationError{}
	if r.Events == nil {
		v.add("events", "required")
	}

	return v.orNil()
}

type CurrentBlockResponse struct {
	CurrentBlock uint64 `json:"current_block"`
}

func (r *CurrentBlockResponse) Validate() error {
	return nil
}
