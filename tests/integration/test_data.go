package integration

import (
	"fmt"
	"time"
)

// DefaultTestPassword satisfies the password policy
const DefaultTestPassword = "TestPassword123"

// TestUsername generates a unique username using a timestamp
func TestUsername(suffix string) string {
	return fmt.Sprintf("test-%d-%s", time.Now().UnixNano(), suffix)
}
