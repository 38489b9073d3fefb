package vault

import (
	"fmt"

	"github.com/hashicorp/vault/api"
)

// DefaultSendGridPath is the KV v2 path holding the email provider key.
const DefaultSendGridPath = "secret/data/sendgrid"

type SecretManager struct {
	client *api.Client
}

func NewSecretManager(address, token string) (*SecretManager, error) {
	config := api.DefaultConfig()
	config.Address = address

	client, err := api.NewClient(config)
	if err != nil {
		return nil, err
	}

	client.SetToken(token)

	return &SecretManager{client: client}, nil
}

// GetSendGridAPIKey reads the "api_key" field of a KV v2 secret.
func (sm *SecretManager) GetSendGridAPIKey(path string) (string, error) {
	if path == "" {
		path = DefaultSendGridPath
	}
	return sm.readKV(path, "api_key")
}

func (sm *SecretManager) readKV(path, field string) (string, error) {
	secret, err := sm.client.Logical().Read(path)
	if err != nil {
		return "", fmt.Errorf("failed to read secret %s: %w", path, err)
	}
	if secret == nil {
		return "", fmt.Errorf("secret %s not found", path)
	}

	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("secret %s has no data", path)
	}
	value, ok := data[field].(string)
	if !ok || value == "" {
		return "", fmt.Errorf("secret %s has no %s", path, field)
	}
	return value, nil
}
