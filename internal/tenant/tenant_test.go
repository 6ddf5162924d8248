package tenant_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"pvillar/hogarfin/internal/tenant"
)

func TestAccountKeyDeterministic(t *testing.T) {
	a := tenant.AccountKey("pablo@example.com")
	b := tenant.AccountKey("pablo@example.com")

	assert.Equal(t, a, b)
	assert.Len(t, a, tenant.AccountKeyLength)
}

func TestAccountKeyCaseFolded(t *testing.T) {
	assert.Equal(t,
		tenant.AccountKey("Pablo@Example.COM"),
		tenant.AccountKey("pablo@example.com"))
	assert.Equal(t,
		tenant.AccountKey("  pablo@example.com  "),
		tenant.AccountKey("pablo@example.com"))
}

func TestAccountKeyDistinct(t *testing.T) {
	assert.NotEqual(t,
		tenant.AccountKey("pablo@example.com"),
		tenant.AccountKey("masha@example.com"))
}

func TestAccountKeyNoCollisionsInSample(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	seen := make(map[string]string)
	for i := 0; i < 1000; i++ {
		identifier := fmt.Sprintf("user%d.%d@example.com", i, rng.Int63())
		key := tenant.AccountKey(identifier)
		if prev, ok := seen[key]; ok {
			t.Fatalf("key collision between %q and %q", prev, identifier)
		}
		seen[key] = identifier
	}
}

func TestDataUserID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple name", "Pablo", "pablo"},
		{"name with space", "Juan Carlos", "juan_carlos"},
		{"extra whitespace", "  Juan   Carlos  ", "juan_carlos"},
		{"punctuation dropped", "María-José!", "maríajosé"},
		{"digits kept", "Casa 2", "casa_2"},
		{"already an id", "casa_comun", "casa_comun"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tenant.DataUserID(tc.input))
		})
	}
}

func TestDataKey(t *testing.T) {
	key := tenant.DataKey("a1b2c3d4", "pablo")
	assert.Equal(t, "a1b2c3d4_pablo", key)
}

func TestMappingKey(t *testing.T) {
	assert.Equal(t, "a1b2c3d4_category_mapping", tenant.MappingKey("a1b2c3d4"))
}
