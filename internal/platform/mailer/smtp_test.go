package mailer

import (
	"context"
	"net"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forgeline/storefront/internal/domain"
)

// Grab a port that is guaranteed closed so the dial fails immediately.
func closedPort(t *testing.T) (string, int) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	host, portStr, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	require.NoError(t, ln.Close())

	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)
	return host, port
}

func TestSMTPSendPreservesCause(t *testing.T) {
	host, port := closedPort(t)

	// Authenticated, no implicit-TLS fallback: the first send attempt's
	// error must survive into the returned error.
	p := NewSMTP(host, port, "noreply@forgeline.local", "sales@forgeline.local", "relay-user", "relay-pass", false)

	err := p.Send(context.Background(), &domain.Inquiry{
		Name:    "Ravi",
		Email:   "ravi@x.com",
		Message: "Need a quote",
	})
	require.Error(t, err)
	require.ErrorContains(t, err, "smtp send failed")

	var opErr *net.OpError
	require.ErrorAs(t, err, &opErr, "the underlying dial failure is wrapped, not discarded")
}
