package integration

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ---------------------------------------------------------------------------
// EcommercePlatform Errors
// ---------------------------------------------------------------------------

var (
	// Platform errors
	ErrPlatformUnavailable     = errors.New("integration: platform temporarily unavailable")
	ErrPlatformRequestFailed   = errors.New("integration: platform request failed")
	ErrPlatformInvalidResponse = errors.New("integration: invalid platform response")

	// ErrAccessTokenNotConfigured is reported as a failed dispatch, never as a run-level error.
	ErrAccessTokenNotConfigured = errors.New("access token not configured")

	// Sync run errors
	ErrInvalidStoreID = errors.New("integration: store ID must be a positive integer")
	ErrSyncInProgress = errors.New("integration: a sync run is already in progress for this store")
	ErrSyncCancelled  = errors.New("integration: sync run cancelled")
)

// FetchError reports that the product listing of a store could not be retrieved.
// No partial listing accompanies it.
type FetchError struct {
	StoreID int64
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch products of store %d: %v", e.StoreID, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// SyncError aborts a whole sync run. Per-product failures never produce one.
type SyncError struct {
	StoreID int64
	Err     error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("sync store %d: %v", e.StoreID, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

// ---------------------------------------------------------------------------
// PlatformCode represents the type of e-commerce platform
// ---------------------------------------------------------------------------

// PlatformCode represents the type of e-commerce platform
type PlatformCode string

const (
	// PlatformCodeTiendanube represents the Tiendanube / Nuvem Shop store platform
	PlatformCodeTiendanube PlatformCode = "TIENDANUBE"
	// PlatformCodeTikTokShop represents the TikTok Shop marketplace
	PlatformCodeTikTokShop PlatformCode = "TIKTOK_SHOP"
)

// IsValid returns true if the platform code is valid
func (c PlatformCode) IsValid() bool {
	switch c {
	case PlatformCodeTiendanube, PlatformCodeTikTokShop:
		return true
	default:
		return false
	}
}

// String returns the string representation of PlatformCode
func (c PlatformCode) String() string {
	return string(c)
}

// DisplayName returns a human-readable name for the platform
func (c PlatformCode) DisplayName() string {
	switch c {
	case PlatformCodeTiendanube:
		return "Nuvem Shop"
	case PlatformCodeTikTokShop:
		return "TikTok Shop"
	default:
		return string(c)
	}
}

// ---------------------------------------------------------------------------
// SyncStatus represents the synchronization status
// ---------------------------------------------------------------------------

// SyncStatus represents the synchronization status
type SyncStatus string

const (
	// SyncStatusSuccess indicates every product was accepted
	SyncStatusSuccess SyncStatus = "SUCCESS"
	// SyncStatusPartial indicates some products were rejected
	SyncStatusPartial SyncStatus = "PARTIAL"
	// SyncStatusFailed indicates no product was accepted
	SyncStatusFailed SyncStatus = "FAILED"
	// SyncStatusCancelled indicates the run stopped before the last product
	SyncStatusCancelled SyncStatus = "CANCELLED"
)

// IsValid returns true if the status is valid
func (s SyncStatus) IsValid() bool {
	switch s {
	case SyncStatusSuccess, SyncStatusPartial, SyncStatusFailed, SyncStatusCancelled:
		return true
	default:
		return false
	}
}

// String returns the string representation of SyncStatus
func (s SyncStatus) String() string {
	return string(s)
}

// ---------------------------------------------------------------------------
// Ports
// ---------------------------------------------------------------------------

// StoreCatalog reads the product catalog of a store platform.
// Implementations return the complete listing; paginated APIs are drained.
type StoreCatalog interface {
	// PlatformCode returns the platform this catalog reads from
	PlatformCode() PlatformCode

	// ListProducts returns every product of the store in platform order
	ListProducts(ctx context.Context, storeID int64) ([]SourceProduct, error)
}

// MarketplacePublisher submits listings to a marketplace.
// Every failure is folded into the returned outcome; there is no error return.
type MarketplacePublisher interface {
	// PlatformCode returns the marketplace this publisher writes to
	PlatformCode() PlatformCode

	// PublishProduct submits one listing and reports exactly one outcome
	PublishProduct(ctx context.Context, product MarketplaceProduct) DispatchOutcome
}

// MarketplaceCredentials exposes which marketplace credentials are present
// without exposing their values.
type MarketplaceCredentials interface {
	CredentialStatus() CredentialStatus
}

// SyncRunGuard keeps two sync runs for the same store from overlapping.
// The lock is owned by runID.
type SyncRunGuard interface {
	// Acquire returns false when another run already holds the store
	Acquire(ctx context.Context, storeID int64, runID string, ttl time.Duration) (bool, error)

	// Release frees the store only while runID still owns the lock. A lock
	// that expired and was taken by another run is left alone.
	Release(ctx context.Context, storeID int64, runID string) error
}

// CredentialStatus reports presence of each marketplace credential.
type CredentialStatus struct {
	HasAccessToken  bool
	HasClientKey    bool
	HasClientSecret bool
	HasPartnerID    bool
}

// IsConfigured returns true when all four credentials are present
func (s CredentialStatus) IsConfigured() bool {
	return s.HasAccessToken && s.HasClientKey && s.HasClientSecret && s.HasPartnerID
}
