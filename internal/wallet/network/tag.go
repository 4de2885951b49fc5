package network

import (
	"net/url"
	"strings"
)

// Tag identifies a network family. Fee fallbacks and priority minimums are
// keyed by Tag.
type Tag string

const (
	TagUnknown   Tag = "unknown"
	TagVery      Tag = "very"
	TagEthereum  Tag = "ethereum"
	TagPolygon   Tag = "polygon"
	TagBSC       Tag = "bsc"
	TagArbitrum  Tag = "arbitrum"
	TagOptimism  Tag = "optimism"
	TagAvalanche Tag = "avalanche"
	TagFantom    Tag = "fantom"
)

var knownTags = map[Tag]struct{}{
	TagVery:      {},
	TagEthereum:  {},
	TagPolygon:   {},
	TagBSC:       {},
	TagArbitrum:  {},
	TagOptimism:  {},
	TagAvalanche: {},
	TagFantom:    {},
}

type pattern struct {
	tag     Tag
	needles []string
}

// patterns is ordered most specific first. Generic Ethereum markers come last
// so that e.g. "arbitrum-ethereum-mainnet" resolves to arbitrum.
var patterns = []pattern{
	{TagVery, []string{"verylabs"}},
	{TagPolygon, []string{"polygon", "matic"}},
	{TagBSC, []string{"bsc", "binance", "bnb"}},
	{TagArbitrum, []string{"arbitrum"}},
	{TagOptimism, []string{"optimism"}},
	{TagAvalanche, []string{"avalanche", "avax"}},
	{TagFantom, []string{"fantom", "ftm"}},
	{TagEthereum, []string{"ethereum", "eth-", "mainnet"}},
}

// Detect guesses the network family from the host of an RPC URL by
// substring match. Paths, query strings and credentials are ignored. A comma
// separated list yields the first URL with a known family. It only serves
// callers that supply a bare URL without a tag.
func Detect(rawURL string) Tag {
	for _, u := range ParseRPCURLs(rawURL) {
		if tag := detectHost(hostOf(u)); tag != TagUnknown {
			return tag
		}
	}

	return TagUnknown
}

func detectHost(host string) Tag {
	if host == "" {
		return TagUnknown
	}

	for _, p := range patterns {
		for _, needle := range p.needles {
			if strings.Contains(host, needle) {
				return p.tag
			}
		}
	}

	return TagUnknown
}

func hostOf(rawURL string) string {
	if !strings.Contains(rawURL, "://") {
		rawURL = "//" + rawURL
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	return strings.ToLower(u.Hostname())
}

// ParseTag accepts the string form of a known tag.
func ParseTag(s string) (Tag, bool) {
	t := Tag(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := knownTags[t]; ok {
		return t, true
	}

	return TagUnknown, false
}
