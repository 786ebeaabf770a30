//go:build windows

package registry

import (
	"errors"
	"fmt"

	consts "KiskaLE/GestureDrop-Firewall/internal/const"

	"golang.org/x/sys/windows/registry"
)

func getPolicyValue(name string) (string, error) {
	return GetRegistryValue(registry.LOCAL_MACHINE, consts.PolicyRegistryKey, name)
}

func GetRegistryValue(registryType registry.Key, path string, name string) (string, error) {
	var access uint32 = registry.QUERY_VALUE

	key, err := registry.OpenKey(registryType, path, access)
	if errors.Is(err, registry.ErrNotExist) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to open registry key: %w", err)
	}
	defer key.Close()

	value, _, err := key.GetStringValue(name)
	if errors.Is(err, registry.ErrNotExist) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get registry value: %w", err)
	}

	return value, nil
}
