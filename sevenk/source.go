package sevenk

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Source is a liquidity source (exchange) the aggregator can route through.
type Source uint8

// Supported sources. The order matches the default quote request.
const (
	Suiswap Source = iota + 1
	Turbos
	Cetus
	Bluemove
	Kriya
	KriyaV3
	Aftermath
	Deepbook
	DeepbookV3
	Flowx
	FlowxV3
	Bluefin
	Springsui
	Obric
	Stsui
)

var sourceNames = map[Source]string{
	Suiswap:    "suiswap",
	Turbos:     "turbos",
	Cetus:      "cetus",
	Bluemove:   "bluemove",
	Kriya:      "kriya",
	KriyaV3:    "kriya_v3",
	Aftermath:  "aftermath",
	Deepbook:   "deepbook",
	DeepbookV3: "deepbook_v3",
	Flowx:      "flowx",
	FlowxV3:    "flowx_v3",
	Bluefin:    "bluefin",
	Springsui:  "springsui",
	Obric:      "obric",
	Stsui:      "stsui",
}

// AllSources returns every supported source.
func AllSources() []Source {
	return []Source{
		Suiswap, Turbos, Cetus, Bluemove, Kriya, KriyaV3, Aftermath, Deepbook,
		DeepbookV3, Flowx, FlowxV3, Bluefin, Springsui, Obric, Stsui,
	}
}

// ParseSource returns the source with the given wire name.
func ParseSource(s string) (Source, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for src, n := range sourceNames {
		if n == name {
			return src, nil
		}
	}
	return 0, fmt.Errorf("unknown source: %q", s)
}

// String returns the wire name of the source.
func (s Source) String() string {
	if n, ok := sourceNames[s]; ok {
		return n
	}
	return fmt.Sprintf("source(%d)", uint8(s))
}

// MarshalJSON implements json.Marshaler.
func (s Source) MarshalJSON() ([]byte, error) {
	n, ok := sourceNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown source: %d", uint8(s))
	}
	return json.Marshal(n)
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Source) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("failed to decode source: %w", err)
	}
	src, err := ParseSource(name)
	if err != nil {
		return err
	}
	*s = src
	return nil
}

// JoinSources returns the comma separated wire names of the given sources.
func JoinSources(sources []Source) string {
	names := make([]string, 0, len(sources))
	for _, s := range sources {
		names = append(names, s.String())
	}
	return strings.Join(names, ",")
}
