// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/canonical/pelada-admin/internal/types"
)

type seedFile struct {
	Clients []types.TenantConfig `koanf:"clients"`
}

// LoadFile reads the tenants listed under "clients" in a YAML file.
func LoadFile(path string) ([]*types.TenantConfig, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to read clients file %s: %v", path, err)
	}

	var seed seedFile
	if err := k.UnmarshalWithConf("", &seed, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to parse clients file %s: %v", path, err)
	}

	clients := make([]*types.TenantConfig, 0, len(seed.Clients))
	for i := range seed.Clients {
		clients = append(clients, &seed.Clients[i])
	}

	return clients, nil
}

// Seed adds every tenant of the file at path to r.
func Seed(ctx context.Context, r RegistryInterface, path string) (int, error) {
	clients, err := LoadFile(path)
	if err != nil {
		return 0, err
	}

	for _, c := range clients {
		if _, err := r.Add(ctx, c); err != nil {
			return 0, fmt.Errorf("failed to register %s: %w", c.Email, err)
		}
	}

	return len(clients), nil
}
