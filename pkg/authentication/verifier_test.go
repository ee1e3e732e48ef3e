// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"
)

func TestPolicy_Authorize(t *testing.T) {
	tests := []struct {
		name     string
		policy   Policy
		claims   claims
		expected error
	}{
		{
			name:     "No policy configured",
			policy:   Policy{},
			claims:   claims{Subject: "operator"},
			expected: ErrNoAccessPolicy,
		},
		{
			name:   "Allowed subject",
			policy: Policy{AllowedSubjects: []string{"operator"}, RequiredScope: "peladm:admin"},
			claims: claims{Subject: "operator"},
		},
		{
			name:   "Scope in space separated claim",
			policy: Policy{RequiredScope: "peladm:admin"},
			claims: claims{Subject: "svc", Scope: "openid peladm:admin"},
		},
		{
			name:   "Scope in scp claim",
			policy: Policy{RequiredScope: "peladm:admin"},
			claims: claims{Subject: "svc", Scopes: []string{"peladm:admin"}},
		},
		{
			name:     "Scope prefix is not enough",
			policy:   Policy{RequiredScope: "peladm:admin"},
			claims:   claims{Subject: "svc", Scope: "peladm:admin:read"},
			expected: ErrForbidden,
		},
		{
			name:     "Unknown subject without scope",
			policy:   Policy{AllowedSubjects: []string{"operator"}},
			claims:   claims{Subject: "intruder", Scope: "peladm:admin"},
			expected: ErrForbidden,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if err := test.policy.authorize(test.claims); !errors.Is(err, test.expected) {
				t.Errorf("expected error %v, got %v", test.expected, err)
			}
		})
	}
}

func TestNewAuthenticator_Disabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := NewMockLoggerInterface(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).Times(1)

	verifier, err := NewAuthenticator(context.Background(), Config{}, nil, NewMockTracingInterface(ctrl), NewMockMonitorInterface(ctrl), mockLogger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	operator, err := verifier.VerifyToken(context.Background(), "anything")
	if err != nil || operator != LocalOperator {
		t.Errorf("expected %s, got %q %v", LocalOperator, operator, err)
	}
}

func TestNewAuthenticator_MissingIssuer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	_, err := NewAuthenticator(context.Background(), Config{Enabled: true}, nil, NewMockTracingInterface(ctrl), NewMockMonitorInterface(ctrl), NewMockLoggerInterface(ctrl))
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestNewAuthenticator_Provider(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := NewMockLoggerInterface(ctrl)
	mockLogger.EXPECT().Infof(gomock.Any(), gomock.Any()).AnyTimes()

	mockProvider := NewMockProviderInterface(ctrl)
	mockProvider.EXPECT().Verifier(verifierConfig).Return(nil)

	cfg := Config{Enabled: true, Issuer: "https://login.example.com", Policy: Policy{RequiredScope: "peladm:admin"}}

	verifier, err := NewAuthenticator(context.Background(), cfg, mockProvider, NewMockTracingInterface(ctrl), NewMockMonitorInterface(ctrl), mockLogger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := verifier.(*JWTVerifier); !ok {
		t.Errorf("expected a JWT verifier, got %T", verifier)
	}
}

func TestOperatorContext(t *testing.T) {
	if _, ok := OperatorFromContext(context.Background()); ok {
		t.Error("expected no operator")
	}

	if operator, ok := OperatorFromContext(WithOperator(context.Background(), "op")); !ok || operator != "op" {
		t.Errorf("expected op, got %q", operator)
	}
}
