// SPDX-License-Identifier: BUSL-1.1
//
// Copyright (C) 2025, Meridian Labs. All rights reserved.
// Use of this software is governed by the Business Source License included
// in the LICENSE file of this repository and at www.mariadb.com/bsl11.
//
// ANY USE OF THE LICENSED WORK IN VIOLATION OF THIS LICENSE WILL AUTOMATICALLY
// TERMINATE YOUR RIGHTS UNDER THIS LICENSE FOR THE CURRENT AND ALL OTHER
// VERSIONS OF THE LICENSED WORK.
//
// THIS LICENSE DOES NOT GRANT YOU ANY RIGHT IN ANY TRADEMARK OR LOGO OF
// LICENSOR OR ITS AFFILIATES (PROVIDED THAT YOU MAY USE A TRADEMARK OR LOGO OF
// LICENSOR AS EXPRESSLY REQUIRED BY THIS LICENSE).
//
// TO THE EXTENT PERMITTED BY APPLICABLE LAW, THE LICENSED WORK IS PROVIDED ON
// AN "AS IS" BASIS. LICENSOR HEREBY DISCLAIMS ALL WARRANTIES AND CONDITIONS,
// EXPRESS OR IMPLIED, INCLUDING (WITHOUT LIMITATION) WARRANTIES OF
// MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE, NON-INFRINGEMENT, AND
// TITLE.

package types

import "cosmossdk.io/errors"

var (
	ErrInvalidRequest           = errors.Register(ModuleName, 1, "invalid request")
	ErrInvalidAmount            = errors.Register(ModuleName, 2, "invalid amount")
	ErrUnauthorizedStrategy     = errors.Register(ModuleName, 3, "unauthorized strategy")
	ErrInsufficientVaultBalance = errors.Register(ModuleName, 4, "insufficient vault balance")
	ErrRedemptionInProgress     = errors.Register(ModuleName, 5, "redemption already in progress")
	ErrRedemptionLocked         = errors.Register(ModuleName, 6, "redemption is still locked")
	ErrRedemptionNotFound       = errors.Register(ModuleName, 7, "no redemption request found")
	ErrInsufficientShares       = errors.Register(ModuleName, 8, "insufficient shares")
	ErrSharesLocked             = errors.Register(ModuleName, 9, "shares are locked")
	ErrInvalidConfig            = errors.Register(ModuleName, 10, "invalid vault configuration")
	ErrInvalidAuthority         = errors.Register(ModuleName, 11, "signer is not the vault authority")
	ErrPaused                   = errors.Register(ModuleName, 12, "vault is paused")
)
