package commands

import (
	"sync"
)

// ConfigPersister serializes config writes from commands that update
// credentials.
type ConfigPersister struct {
	mutex sync.Mutex
}

// NewConfigPersister creates a new config persister.
func NewConfigPersister() *ConfigPersister {
	return &ConfigPersister{}
}

// UpdateCredentials persists the endpoint and token in the config file.
func (p *ConfigPersister) UpdateCredentials(endpoint, token string) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	config := loadConfig()
	config.Endpoint = endpoint
	config.Token = token

	return saveConfigStruct(config)
}

// ClearCredentials removes the stored token from the config file.
func (p *ConfigPersister) ClearCredentials() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	config := loadConfig()
	config.Token = ""

	return saveConfigStruct(config)
}
