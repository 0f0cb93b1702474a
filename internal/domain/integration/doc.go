// Package integration contains the Integration bounded context.
// This context moves product listings from a store platform (Tiendanube) to a
// marketplace channel (TikTok Shop).
//
// Key concepts:
//   - SourceProduct: Catalog record as returned by the store platform
//   - LocalizedText: Tagged variant for fields that are either plain text or per-language text
//   - MarketplaceProduct: Flat listing schema accepted by the marketplace
//   - DispatchOutcome: Success or failure of submitting one listing
//   - SyncBatchResult: Immutable fold of the outcomes of one sync run
//
// Design Pattern: Ports & Adapters
//   - Ports (interfaces) are defined here in the domain layer
//   - Adapters (implementations) are in the infrastructure layer
package integration
