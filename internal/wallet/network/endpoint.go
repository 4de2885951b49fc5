package network

import "strings"

// Endpoint is a resolved RPC target. URL may hold several comma separated
// RPC URLs of the same chain.
type Endpoint struct {
	Name string `json:"name"`
	URL  string `json:"rpc_url"`
	Tag  Tag    `json:"tag"`
}

// NewEndpoint builds an Endpoint for a bare URL, detecting its tag.
func NewEndpoint(url string) Endpoint {
	return Endpoint{URL: url, Tag: Detect(url)}
}

// Identity returns the explicit tag, falling back to URL detection.
func (e Endpoint) Identity() Tag {
	if e.Tag != "" && e.Tag != TagUnknown {
		return e.Tag
	}

	return Detect(e.URL)
}

// URLs splits a comma separated URL list, dropping blanks.
func (e Endpoint) URLs() []string {
	return ParseRPCURLs(e.URL)
}

func ParseRPCURLs(rpcURL string) []string {
	urls := make([]string, 0)
	for _, url := range strings.Split(rpcURL, ",") {
		url = strings.TrimSpace(url)
		if url != "" {
			urls = append(urls, url)
		}
	}

	return urls
}

func isRawURL(s string) bool {
	lower := strings.ToLower(s)
	for _, scheme := range []string{"http://", "https://", "ws://", "wss://"} {
		if strings.HasPrefix(lower, scheme) {
			return true
		}
	}

	return false
}
