package websocketrpc

import (
	"encoding/json"
	"strings"
)

// RequestType represents a JSON-RPC request type.
type RequestType string

// Predefined subscribe/unsubscribe request methods.
const (
	SubscribeEvent   RequestType = "suix_subscribeEvent"
	UnsubscribeEvent RequestType = "suix_unsubscribeEvent"
)

// SuiEvent is a Move event delivered by suix_subscribeEvent.
type SuiEvent struct {
	ID struct {
		TxDigest string `json:"txDigest"`
		EventSeq string `json:"eventSeq"`
	} `json:"id"`
	PackageID         string          `json:"packageId"`
	TransactionModule string          `json:"transactionModule"`
	Sender            string          `json:"sender"`
	Type              string          `json:"type"`
	ParsedJSON        json.RawMessage `json:"parsedJson"`
	TimestampMs       string          `json:"timestampMs,omitempty"`
}

// GetEventSubscribeRequestPayload returns a subscribe request payload
// matching every event of the given Move event type.
func GetEventSubscribeRequestPayload(moveEventType string) []interface{} {
	return []interface{}{
		map[string]interface{}{"MoveEventType": moveEventType},
	}
}

// GetModuleSubscribeRequestPayload returns a subscribe request payload
// matching every event emitted by the given package module.
func GetModuleSubscribeRequestPayload(pkg, module string) []interface{} {
	return []interface{}{
		map[string]interface{}{
			"MoveModule": map[string]string{"package": pkg, "module": module},
		},
	}
}

// GetUnsubscribeRequestPayload returns an unsubscribe request payload.
func GetUnsubscribeRequestPayload(subscriptionID int64) []interface{} {
	return []interface{}{subscriptionID}
}

// typeName is a Move TypeName, encoded either as a string or as {"name": "..."}.
type typeName string

func (t *typeName) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = typeName(s)
		return nil
	}
	var v struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*t = typeName(v.Name)
	return nil
}

// String returns the type with a 0x prefix.
func (t typeName) String() string {
	s := string(t)
	if s != "" && !strings.HasPrefix(s, "0x") {
		return "0x" + s
	}
	return s
}
