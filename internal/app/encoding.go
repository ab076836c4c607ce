package app

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// socket.io messages travel as base64 wrapped json strings.
func encode(value any) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("failed marshalling message: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

func decode(msg string, value any) error {
	data, err := base64.StdEncoding.DecodeString(msg)
	if err != nil {
		return fmt.Errorf("failed decoding message: %w", err)
	}
	err = json.Unmarshal(data, value)
	if err != nil {
		return fmt.Errorf("failed unmarshalling message: %w", err)
	}
	return nil
}
