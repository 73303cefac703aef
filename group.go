package filmdex

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// LinkGroup is one row of same-context download buttons: one quality
// tier (quality layout) or one resolved batch expansion. Quality and
// Size are empty when the source heading carried no such annotation;
// explicitly blank annotations are normalized to empty during
// extraction so absence has a single representation.
type LinkGroup struct {
	Name    string         `json:"name"`
	Quality string         `json:"quality,omitempty"`
	Size    string         `json:"size,omitempty"`
	Links   []DownloadLink `json:"links"`
}

// EpisodeLinkGroup is the episode-layout variant of a link group: one
// button type whose links are keyed by episode number. Episode numbers
// are strings because source numbering may include non-numeric markers.
type EpisodeLinkGroup struct {
	Label    string     `json:"label"`
	Type     LinkType   `json:"type"`
	Episodes EpisodeMap `json:"episodes"`
}

// EpisodeMap maps episode-number strings to URLs while preserving
// insertion order. Setting an existing key overwrites the URL but keeps
// the key's original position, so a duplicate episode marker on the
// source page deterministically resolves to the last URL seen.
type EpisodeMap struct {
	keys   []string
	values map[string]string
}

// Set inserts or overwrites the URL for an episode.
func (m *EpisodeMap) Set(episode, url string) {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, ok := m.values[episode]; !ok {
		m.keys = append(m.keys, episode)
	}
	m.values[episode] = url
}

// Get returns the URL for an episode.
func (m *EpisodeMap) Get(episode string) (string, bool) {
	url, ok := m.values[episode]
	return url, ok
}

// Keys returns the episode numbers in insertion order.
func (m *EpisodeMap) Keys() []string {
	return m.keys
}

// Len returns the number of episodes in the map.
func (m *EpisodeMap) Len() int {
	return len(m.keys)
}

// MarshalJSON encodes the map as a JSON object with keys in insertion
// order, so repeated marshaling of the same map is byte-identical.
func (m EpisodeMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(m.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object preserving its key order.
func (m *EpisodeMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("episode map: expected JSON object, got %v", tok)
	}
	m.keys = nil
	m.values = nil
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("episode map: non-string key %v", keyTok)
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return err
		}
		m.Set(key, value)
	}
	_, err = dec.Token() // closing brace
	return err
}

// Section is one heading-scoped block of a detail page. Quality-layout
// pages populate Groups; episode-layout pages populate EpisodeGroups.
// Resolution may add EpisodeGroups to a quality section when a resolver
// page turns out to be episodic. Section order equals source document
// order.
type Section struct {
	Heading       string             `json:"heading"`
	Groups        []LinkGroup        `json:"groups,omitempty"`
	EpisodeGroups []EpisodeLinkGroup `json:"episodeGroups,omitempty"`
}

// Empty reports whether the section holds no links at all.
func (s *Section) Empty() bool {
	for _, g := range s.Groups {
		if len(g.Links) > 0 {
			return false
		}
	}
	for _, g := range s.EpisodeGroups {
		if g.Episodes.Len() > 0 {
			return false
		}
	}
	return true
}
