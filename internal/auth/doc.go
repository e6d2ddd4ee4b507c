// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Accountd Contributors

// Package auth implements the account-provisioning and session-authentication
// core.
//
// # Domain Types
//
// Domain types (Account, Confirmation, SessionIdentity) are plain values.
// Accounts are created exclusively by ProvisioningService.Activate after a
// confirmation has been redeemed; they are never mutated or deleted here.
// Confirmations are created by ProvisioningService.Register and expire a
// fixed 24 hours after creation.
//
// # Services
//
// Service types coordinate domain operations:
//   - ConfirmationService - confirmation token creation and redemption
//   - ProvisioningService - register and activate flows
//   - AuthService - sign-in and session inspection
//
// Services are created with New*Service constructors that validate
// dependencies. All services are stateless and safe for concurrent use; the
// backing store's unique-constraint enforcement is the only serialization
// point.
package auth
