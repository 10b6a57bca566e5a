package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseInquiryStatus(t *testing.T) {
	for _, valid := range []string{"new", "replied", "resolved"} {
		st, ok := ParseInquiryStatus(valid)
		require.True(t, ok)
		require.Equal(t, InquiryStatus(valid), st)
	}

	for _, invalid := range []string{"", "bogus", "NEW", "closed"} {
		_, ok := ParseInquiryStatus(invalid)
		require.False(t, ok, "status %q must be rejected", invalid)
	}
}

func TestInquiryReqNormalize(t *testing.T) {
	req := InquiryReq{
		Name:    "  Ravi ",
		Email:   " Ravi@X.COM ",
		Message: " Need a quote ",
	}
	req.Normalize()

	require.Equal(t, "Ravi", req.Name)
	require.Equal(t, "ravi@x.com", req.Email)
	require.Equal(t, "Need a quote", req.Message)
}

func TestInquiryReqValidate(t *testing.T) {
	req := InquiryReq{Name: "Ravi", Email: "ravi@x.com", Message: "Need a quote"}
	require.NoError(t, req.Validate())

	cases := []struct {
		name string
		req  InquiryReq
	}{
		{"missing name", InquiryReq{Email: "ravi@x.com", Message: "hi"}},
		{"missing email", InquiryReq{Name: "Ravi", Message: "hi"}},
		{"missing message", InquiryReq{Name: "Ravi", Email: "ravi@x.com"}},
		{"bad email", InquiryReq{Name: "Ravi", Email: "not-an-email", Message: "hi"}},
		{"all empty", InquiryReq{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}
