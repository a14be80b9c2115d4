package profile

// ConfigurationType is the PayloadType of the profile wrapper itself.
const ConfigurationType = "Configuration"

// MetadataKeys are payload bookkeeping keys that never count as preferences.
var MetadataKeys = map[string]struct{}{
	"PayloadDescription":  {},
	"PayloadDisplayName":  {},
	"PayloadEnabled":      {},
	"PayloadIdentifier":   {},
	"PayloadOrganization": {},
	"PayloadType":         {},
	"PayloadUUID":         {},
	"PayloadVersion":      {},
}

// IsMetadataKey reports whether key is one of MetadataKeys.
func IsMetadataKey(key string) bool {
	_, ok := MetadataKeys[key]
	return ok
}

// DomainPayload holds the merged preference settings for one domain.
type DomainPayload struct {
	Domain   string
	Settings map[string]interface{}
	// Sources counts the payload entries merged into Settings.
	Sources int
}

// Extract groups the document's PayloadContent entries by PayloadType, in
// first-seen order. Entries without a type, the Configuration wrapper and
// entries carrying only metadata are skipped. When two entries of the same
// domain set the same key, the later one wins.
func Extract(doc *Document) []DomainPayload {
	if doc == nil {
		return nil
	}
	content, ok := doc.Root["PayloadContent"].([]interface{})
	if !ok {
		return nil
	}

	var out []DomainPayload
	index := make(map[string]int)

	for _, entry := range content {
		payload, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		domain, _ := payload["PayloadType"].(string)
		if domain == "" || domain == ConfigurationType {
			continue
		}

		settings := make(map[string]interface{}, len(payload))
		for k, v := range payload {
			if !IsMetadataKey(k) {
				settings[k] = v
			}
		}
		if len(settings) == 0 {
			continue
		}

		i, seen := index[domain]
		if !seen {
			index[domain] = len(out)
			out = append(out, DomainPayload{Domain: domain, Settings: settings, Sources: 1})
			continue
		}
		for k, v := range settings {
			out[i].Settings[k] = v
		}
		out[i].Sources++
	}

	return out
}
