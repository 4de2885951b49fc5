package types

type PostAddNetworkPayload struct {
	Name   *string `json:"name"`
	RPCURL *string `json:"rpc_url"`
	Tag    *string `json:"tag,omitempty"`
}

func (p *PostAddNetworkPayload) Validate() error {
	v := &ValidationError{}
	v.required("name", p.Name)
	v.required("rpc_url", p.RPCURL)

	return v.orNil()
}

type PostRemoveNetworkPayload struct {
	Name *string `json:"name"`
}

func (p *PostRemoveNetworkPayload) Validate() error {
	v := &ValidationError{}
	v.required("name", p.Name)

	return v.orNil()
}

type NetworkInfo struct {
	Name   string `json:"name"`
	RPCURL string `json:"rpc_url"`
	Tag    string `json:"tag"`
}

type NetworksResponse struct {
	Default  NetworkInfo   `json:"default"`
	Networks []NetworkInfo `json:"networks"`
}

func (r *NetworksResponse) Validate() error {
	v := &ValidationError{}
	if r.Networks == nil {
		v.add("networks", "required")
	}

	return v.orNil()
}

type NetworkResponse struct {
	Network NetworkInfo `json:"network"`
}

func (r *NetworkResponse) Validate() error {
	v := &ValidationError{}
	v.required("network.name", &r.Network.Name)

	return v.orNil()
}

type MessageResponse struct {
	Message string `json:"message"`
}

func (r *MessageResponse) Validate() error {
	return nil
}
