package moderation

import (
	"fmt"
	"os"

	"github.com/ahmetcoskunkizilkaya/community-moderation/internal/models"
	"gopkg.in/yaml.v3"
)

type policyFile struct {
	MinimumRoles map[string]string `yaml:"minimum_roles"`
}

// LoadPolicy reads a YAML policy file and applies it on top of DefaultPolicy.
// An empty path returns the default policy.
//
//	minimum_roles:
//	  ban_user: admin
//	  remove_content: content_manager
func LoadPolicy(path string) (*Policy, error) {
	if path == "" {
		return DefaultPolicy(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read moderation policy: %w", err)
	}
	return ParsePolicy(data)
}

func ParsePolicy(data []byte) (*Policy, error) {
	var file policyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse moderation policy: %w", err)
	}

	policy := DefaultPolicy()
	for kind, role := range file.MinimumRoles {
		next, err := policy.WithMinimum(models.ActionKind(kind), Role(role))
		if err != nil {
			return nil, fmt.Errorf("invalid moderation policy: %w", err)
		}
		policy = next
	}
	return policy, nil
}
