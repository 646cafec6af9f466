package core

import (
	"time"

	"phd/internal/core/domain"
	"phd/internal/ports"
)

const (
	defaultTokenWaitTimeout  = 30 * time.Second
	defaultTokenWaitInterval = 1 * time.Second
)

// TokenWaiter polls for the service-account token the control plane
// populates asynchronously after the token secret is created.
type TokenWaiter struct {
	cluster ports.Cluster

	Timeout  time.Duration
	Interval time.Duration
}

func ProvideTokenWaiter(cluster ports.Cluster) *TokenWaiter {
	return &TokenWaiter{
		cluster:  cluster,
		Timeout:  defaultTokenWaitTimeout,
		Interval: defaultTokenWaitInterval,
	}
}

// WaitForToken polls the <username>-token secret in the workflow namespace
// until its token key is populated or the timeout elapses.
func (t *TokenWaiter) WaitForToken(username string) (string, error) {
	secretName := username + "-token"
	deadline := time.Now().Add(t.Timeout)

	for {
		data, err := t.cluster.ReadSecret(secretName, domain.ArgoNamespace)
		if err == nil {
			if token, ok := data["token"]; ok && len(token) > 0 {
				return string(token), nil
			}
		}

		if time.Now().After(deadline) {
			return "", domain.NewClusterError(nil, "failed to generate token for user %q", username)
		}
		time.Sleep(t.Interval)
	}
}
