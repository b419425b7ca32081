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

import (
	"fmt"

	"cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// LockMode selects which share-transfer gate a deployment runs with. Exactly
// one mode is active for the lifetime of the vault.
type LockMode int32

const (
	// LockModeTransfer blocks peer-to-peer share transfers from a locked
	// holder but leaves the redemption path open. A holder with no deposit
	// record is treated as unlocked, so shares received via transfer are
	// never trapped.
	LockModeTransfer LockMode = iota

	// LockModeDeposit blocks every share movement from a locked holder,
	// including the redemption escrow. A holder with no deposit record is
	// treated as locked, so transfers cannot launder shares around the lock.
	LockModeDeposit
)

func (m LockMode) String() string {
	switch m {
	case LockModeTransfer:
		return "transfer"
	case LockModeDeposit:
		return "deposit"
	default:
		return fmt.Sprintf("unknown(%d)", int32(m))
	}
}

// MaxDecimalsOffset bounds the virtual decimals offset accepted at
// construction.
const MaxDecimalsOffset = 10

// VaultConfig carries every construction-time parameter of the vault. The
// configuration is immutable once the keeper is built; in particular the
// strategy set cannot be extended or shrunk at runtime.
type VaultConfig struct {
	// Denom is the underlying asset users deposit and withdraw.
	Denom string
	// ShareDenom is the vault share token minted against deposits.
	ShareDenom string
	// Authority may pause and unpause deposits.
	Authority string
	// LockDuration is the redemption delay and the share-lock window, in
	// seconds. Zero disables both delays.
	LockDuration int64
	// PenaltyRate is the emergency-exit penalty at request time, fixed-point
	// with scale Scalar.
	PenaltyRate math.Int
	// MinLiquidityRate is the fraction of total tokens that must remain on
	// hand and cannot be borrowed, fixed-point with scale Scalar.
	MinLiquidityRate math.Int
	// DecimalsOffset shifts the share token's displayed decimals relative to
	// the underlying asset.
	DecimalsOffset uint32
	// LockMode selects the share-transfer gate variant.
	LockMode LockMode
	// AllowPartialRedemptions permits redeeming less than the full requested
	// share amount of a pending request.
	AllowPartialRedemptions bool
	// Strategies is the set of principals allowed to borrow, repay and settle
	// against the pool.
	Strategies []string
}

// Validate checks the structural constraints on the configuration. Address
// well-formedness of strategy entries is checked against the address codec at
// genesis, not here.
func (c VaultConfig) Validate() error {
	if err := sdk.ValidateDenom(c.Denom); err != nil {
		return errors.Wrap(ErrInvalidConfig, "invalid asset denom")
	}
	if err := sdk.ValidateDenom(c.ShareDenom); err != nil {
		return errors.Wrap(ErrInvalidConfig, "invalid share denom")
	}
	if c.Denom == c.ShareDenom {
		return errors.Wrap(ErrInvalidConfig, "asset and share denom must differ")
	}
	if c.LockDuration < 0 {
		return errors.Wrap(ErrInvalidConfig, "lock duration cannot be negative")
	}
	if err := validateRate(c.PenaltyRate); err != nil {
		return errors.Wrap(err, "penalty rate")
	}
	if err := validateRate(c.MinLiquidityRate); err != nil {
		return errors.Wrap(err, "minimum liquidity rate")
	}
	if c.DecimalsOffset > MaxDecimalsOffset {
		return errors.Wrapf(ErrInvalidConfig, "decimals offset %d exceeds maximum %d", c.DecimalsOffset, MaxDecimalsOffset)
	}
	if c.LockMode != LockModeTransfer && c.LockMode != LockModeDeposit {
		return errors.Wrapf(ErrInvalidConfig, "unknown lock mode %d", c.LockMode)
	}

	seen := make(map[string]bool, len(c.Strategies))
	for _, strategy := range c.Strategies {
		if strategy == "" {
			return errors.Wrap(ErrInvalidConfig, "strategy address cannot be empty")
		}
		if seen[strategy] {
			return errors.Wrapf(ErrInvalidConfig, "duplicate strategy %s", strategy)
		}
		seen[strategy] = true
	}

	return nil
}

func validateRate(rate math.Int) error {
	if rate.IsNil() || rate.IsNegative() || rate.GT(Scalar) {
		return errors.Wrapf(ErrInvalidConfig, "rate must be within [0, %s]", Scalar)
	}

	return nil
}
