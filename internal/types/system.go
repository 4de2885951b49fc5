package types

// EnvInfoResponse reports effective configuration without secrets.
type EnvInfoResponse struct {
	RPCEndpoint   string `json:"rpc_endpoint"`
	PrivateKeySet bool   `json:"private_key_set"`
	ServerPort    string `json:"server_port"`
	NetworkTag    string `json:"network_tag"`
	Version       string `json:"version"`
}

func (r *EnvInfoResponse) Validate() error {
	v := &ValidationError{}
	v.required("rpc_endpoint", &r.RPCEndpoint)

	return v.orNil()
}
