// Package namehierarchy implements the canonical name representation used
// to identify nodes. A NameHierarchy's database serialization is the sole
// uniqueness key for a node; its JSON form is an interchange format only.
package namehierarchy

import "encoding/json"

const (
	metaDelimiter      = "\tm"
	nameDelimiter      = "\tn"
	partsDelimiter     = "\ts"
	signatureDelimiter = "\tp"
)

// NameElement is one segment of a qualified name. All three fields are
// optional but always present as strings.
type NameElement struct {
	Prefix  string
	Name    string
	Postfix string
}

// NameHierarchy is a non-empty ordered sequence of NameElements plus the
// delimiter used to join them for display.
type NameHierarchy struct {
	Delimiter string
	Elements  []NameElement
}

// SerializeToDatabaseString produces the bit-exact identity key for h.
// Two hierarchies are the same node iff this string is byte-equal.
func SerializeToDatabaseString(h NameHierarchy) string {
	serialized := h.Delimiter + metaDelimiter
	for i, e := range h.Elements {
		if i != 0 {
			serialized += nameDelimiter
		}
		serialized += e.Name + partsDelimiter + e.Prefix + signatureDelimiter + e.Postfix
	}
	return serialized
}

type jsonNameElement struct {
	Prefix  string `json:"prefix"`
	Name    string `json:"name"`
	Postfix string `json:"postfix"`
}

type jsonNameHierarchy struct {
	Delimiter string            `json:"name_delimiter"`
	Elements  []jsonNameElement `json:"name_elements"`
}

// SerializeToJSON renders h as a pretty-printed, 4-space indented JSON
// document suitable for interchange with other tools.
func SerializeToJSON(h NameHierarchy) (string, error) {
	doc := jsonNameHierarchy{Delimiter: h.Delimiter}
	for _, e := range h.Elements {
		doc.Elements = append(doc.Elements, jsonNameElement{Prefix: e.Prefix, Name: e.Name, Postfix: e.Postfix})
	}
	b, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DeserializeFromJSON parses a NameHierarchy out of data. Parsing is
// tolerant: a malformed document yields a zero-element hierarchy and a
// non-empty diagnostic string rather than an error; missing or
// wrong-typed fields default to the empty string.
func DeserializeFromJSON(data string) (NameHierarchy, string) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(data), &top); err != nil {
		return NameHierarchy{}, err.Error()
	}

	var h NameHierarchy
	if raw, ok := top["name_delimiter"]; ok {
		var s string
		if json.Unmarshal(raw, &s) == nil {
			h.Delimiter = s
		}
	}

	if raw, ok := top["name_elements"]; ok {
		var items []json.RawMessage
		if json.Unmarshal(raw, &items) == nil {
			for _, item := range items {
				var fields map[string]json.RawMessage
				if json.Unmarshal(item, &fields) != nil {
					continue
				}
				var e NameElement
				if v, ok := fields["prefix"]; ok {
					var s string
					if json.Unmarshal(v, &s) == nil {
						e.Prefix = s
					}
				}
				if v, ok := fields["name"]; ok {
					var s string
					if json.Unmarshal(v, &s) == nil {
						e.Name = s
					}
				}
				if v, ok := fields["postfix"]; ok {
					var s string
					if json.Unmarshal(v, &s) == nil {
						e.Postfix = s
					}
				}
				h.Elements = append(h.Elements, e)
			}
		}
	}

	return h, ""
}
