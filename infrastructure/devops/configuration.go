package devops

import (
	"context"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"

	"veritime.com/veritime/attendance/policy"
)

// PolicyConfig is the shape of the "attendance-policies" SSM parameter:
// per-tenant overrides keyed by tenant schema name.
type PolicyConfig struct {
	Tenants map[string]policy.TenantPolicy `yaml:"tenants"`
}

var (
	once     sync.Once
	policies map[string]policy.TenantPolicy
	loadErr  error
)

// LoadPolicyConfig fetches and caches the tenant policy map from SSM. The
// parameter is read once per process.
func LoadPolicyConfig(ctx context.Context) (map[string]policy.TenantPolicy, error) {
	once.Do(func() {
		paramName := "attendance-policies"

		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			loadErr = fmt.Errorf("load aws config: %w", err)
			return
		}

		client := ssm.NewFromConfig(cfg)

		out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
			Name:           aws.String(paramName),
			WithDecryption: aws.Bool(true),
		})
		if err != nil {
			loadErr = fmt.Errorf("get parameter: %w", err)
			return
		}

		var parsed PolicyConfig
		if err := yaml.Unmarshal([]byte(*out.Parameter.Value), &parsed); err != nil {
			loadErr = fmt.Errorf("unmarshal yaml: %w", err)
			return
		}

		for name, p := range parsed.Tenants {
			normalized := p.Normalize()
			if err := normalized.Validate(); err != nil {
				loadErr = fmt.Errorf("tenant %s: %w", name, err)
				return
			}
			parsed.Tenants[name] = normalized
		}

		policies = parsed.Tenants
	})

	return policies, loadErr
}

// LoadTenantPolicy returns the policy for one tenant, falling back to the
// defaults when the tenant has no override entry.
func LoadTenantPolicy(ctx context.Context, tenant string) (policy.TenantPolicy, error) {
	all, err := LoadPolicyConfig(ctx)
	if err != nil {
		return policy.TenantPolicy{}, err
	}

	if p, ok := all[tenant]; ok {
		return p, nil
	}
	return policy.Default(), nil
}
