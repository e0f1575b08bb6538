package config

import (
	"sync"
)

var (
	globalConfigManager *ConfigManager
	globalConfigOnce    sync.Once
	globalConfigMutex   sync.RWMutex
)

// InitGlobalConfig initializes the global configuration manager.
// Call once at application startup, before anything reads config.
func InitGlobalConfig() error {
	var err error
	globalConfigOnce.Do(func() {
		globalConfigManager, err = NewConfigManager()
	})
	return err
}

// GetGlobalConfig returns the global configuration manager instance
func GetGlobalConfig() *ConfigManager {
	globalConfigMutex.RLock()
	defer globalConfigMutex.RUnlock()
	return globalConfigManager
}

// GetConfig retrieves a configuration value by key, or "" when the
// global manager is not initialized
func GetConfig(key string) string {
	if !IsGlobalConfigInitialized() {
		return ""
	}
	return GetGlobalConfig().Get(key)
}

// GetConfigWithDefault retrieves a configuration value with fallback
func GetConfigWithDefault(key, defaultValue string) string {
	if !IsGlobalConfigInitialized() {
		return defaultValue
	}
	return GetGlobalConfig().GetWithDefault(key, defaultValue)
}

// SetGlobalConfig allows setting the global config (mainly for testing)
func SetGlobalConfig(cm *ConfigManager) {
	globalConfigMutex.Lock()
	defer globalConfigMutex.Unlock()
	globalConfigManager = cm
}

// IsGlobalConfigInitialized checks if the global config has been initialized
func IsGlobalConfigInitialized() bool {
	globalConfigMutex.RLock()
	defer globalConfigMutex.RUnlock()
	return globalConfigManager != nil
}
