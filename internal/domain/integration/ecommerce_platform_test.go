package integration

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ---------------------------------------------------------------------------
// PlatformCode Tests
// ---------------------------------------------------------------------------

func TestPlatformCode_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		code     PlatformCode
		expected bool
	}{
		{"Tiendanube valid", PlatformCodeTiendanube, true},
		{"TikTok Shop valid", PlatformCodeTikTokShop, true},
		{"Invalid code", PlatformCode("INVALID"), false},
		{"Empty code", PlatformCode(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.code.IsValid())
		})
	}
}

func TestPlatformCode_DisplayName(t *testing.T) {
	tests := []struct {
		code     PlatformCode
		expected string
	}{
		{PlatformCodeTiendanube, "Nuvem Shop"},
		{PlatformCodeTikTokShop, "TikTok Shop"},
		{PlatformCode("UNKNOWN"), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.code.DisplayName())
		})
	}
}

// ---------------------------------------------------------------------------
// SyncStatus Tests
// ---------------------------------------------------------------------------

func TestSyncStatus_IsValid(t *testing.T) {
	for _, s := range []SyncStatus{SyncStatusSuccess, SyncStatusPartial, SyncStatusFailed, SyncStatusCancelled} {
		t.Run(s.String(), func(t *testing.T) {
			assert.True(t, s.IsValid())
		})
	}
	assert.False(t, SyncStatus("PENDING").IsValid())
}

// ---------------------------------------------------------------------------
// Error Tests
// ---------------------------------------------------------------------------

func TestSyncError_WrapsFetchError(t *testing.T) {
	cause := errors.New("connection refused")
	fetchErr := &FetchError{StoreID: 42, Err: cause}
	err := &SyncError{StoreID: 42, Err: fetchErr}

	var target *FetchError
	assert.ErrorAs(t, err, &target)
	assert.Equal(t, int64(42), target.StoreID)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Contains(t, err.Error(), "store 42")
}

func TestCredentialStatus_IsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		status   CredentialStatus
		expected bool
	}{
		{"all present", CredentialStatus{true, true, true, true}, true},
		{"missing token", CredentialStatus{false, true, true, true}, false},
		{"missing partner", CredentialStatus{true, true, true, false}, false},
		{"none", CredentialStatus{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.IsConfigured())
		})
	}
}
