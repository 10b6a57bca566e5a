package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forgeline/storefront/internal/domain"
)

type fakeProvider struct {
	name      string
	available bool
	sendErr   error
	calls     int
}

func (f *fakeProvider) Name() string    { return f.name }
func (f *fakeProvider) Available() bool { return f.available }

func (f *fakeProvider) Send(context.Context, *domain.Inquiry) error {
	f.calls++
	return f.sendErr
}

func testInquiry() *domain.Inquiry {
	return &domain.Inquiry{
		ID:      7,
		Name:    "Ravi",
		Email:   "ravi@x.com",
		Message: "Need a quote",
		Status:  domain.InquiryNew,
	}
}

func TestChainStopsAtFirstSuccess(t *testing.T) {
	first := &fakeProvider{name: "first", available: true}
	second := &fakeProvider{name: "second", available: true}

	chain := NewChain(first, second)

	require.True(t, chain.Send(context.Background(), testInquiry()))
	require.Equal(t, 1, first.calls)
	require.Equal(t, 0, second.calls, "later providers must not run after a success")
}

func TestChainFallsThroughOnFailure(t *testing.T) {
	first := &fakeProvider{name: "first", available: true, sendErr: errors.New("api down")}
	second := &fakeProvider{name: "second", available: true}

	chain := NewChain(first, second)

	require.True(t, chain.Send(context.Background(), testInquiry()))
	require.Equal(t, 1, first.calls)
	require.Equal(t, 1, second.calls)
}

func TestChainSkipsUnavailableWithoutSending(t *testing.T) {
	unconfigured := &fakeProvider{name: "unconfigured", available: false}
	second := &fakeProvider{name: "second", available: true}

	chain := NewChain(unconfigured, second)

	require.True(t, chain.Send(context.Background(), testInquiry()))
	require.Equal(t, 0, unconfigured.calls, "unavailable providers must not be called")
	require.Equal(t, 1, second.calls)
}

func TestChainAllProvidersFail(t *testing.T) {
	first := &fakeProvider{name: "first", available: true, sendErr: errors.New("boom")}
	second := &fakeProvider{name: "second", available: true, sendErr: errors.New("boom")}
	stub := NewTemplate()

	chain := NewChain(first, second, stub)

	require.False(t, chain.Send(context.Background(), testInquiry()))
	require.Equal(t, 1, first.calls)
	require.Equal(t, 1, second.calls)
}

func TestChainEmpty(t *testing.T) {
	require.False(t, NewChain().Send(context.Background(), testInquiry()))
}

func TestTemplateProviderIsStubbedOut(t *testing.T) {
	p := NewTemplate()
	require.False(t, p.Available())
	require.Error(t, p.Send(context.Background(), testInquiry()))
}
