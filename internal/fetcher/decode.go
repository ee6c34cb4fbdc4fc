package fetcher

import (
	"encoding/json"
	"fmt"
)

// decodeField tolker raw inn i dst. Mangler feltet, eller har det feil form,
// beholder dst verdien den hadde.
func decodeField[T any](raw json.RawMessage, dst *T) bool {
	if len(raw) == 0 {
		return false
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	*dst = v
	return true
}

// objectFields deler et JSON-objekt opp i feltene sine. null gir et tomt kart.
func objectFields(data []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("forventet et JSON-objekt: %w", err)
	}
	return fields, nil
}

// decodeList tolker hvert element i en JSON-liste for seg. Elementer som ikke
// kan tolkes blir nil, slik at én dårlig verdi ikke koster resten av listen.
func decodeList[T any](raw json.RawMessage) []*T {
	var items []json.RawMessage
	if !decodeField(raw, &items) {
		return nil
	}

	out := make([]*T, 0, len(items))
	for _, item := range items {
		var v *T
		decodeField(item, &v)
		out = append(out, v)
	}
	return out
}
