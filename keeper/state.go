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

package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"vault.meridian.zone/types"
)

// GetPaused returns whether deposits are currently halted. A missing entry
// means not paused.
func (k *Keeper) GetPaused(ctx context.Context) (bool, error) {
	paused, err := k.Paused.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	return paused, nil
}

func (k *Keeper) SetPaused(ctx context.Context, paused bool) error {
	return k.Paused.Set(ctx, paused)
}

// GetTotalShares returns the outstanding share supply, zero when unset.
func (k *Keeper) GetTotalShares(ctx context.Context) (math.Int, error) {
	total, err := k.TotalShares.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return math.ZeroInt(), nil
		}
		return math.ZeroInt(), err
	}

	return total, nil
}

// GetTotalTokens returns the accounted token principal, zero when unset. This
// is the explicit ledger the exchange ratio is computed from, not the module
// account's bank balance.
func (k *Keeper) GetTotalTokens(ctx context.Context) (math.Int, error) {
	total, err := k.TotalTokens.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return math.ZeroInt(), nil
		}
		return math.ZeroInt(), err
	}

	return total, nil
}

// IncrementTotals grows both sides of the ledger, as on deposit.
func (k *Keeper) IncrementTotals(ctx context.Context, shares, tokens math.Int) error {
	totalShares, err := k.GetTotalShares(ctx)
	if err != nil {
		return err
	}
	totalTokens, err := k.GetTotalTokens(ctx)
	if err != nil {
		return err
	}

	newShares, err := totalShares.SafeAdd(shares)
	if err != nil {
		return sdkerrors.Wrap(err, "unable to increment total shares")
	}
	newTokens, err := totalTokens.SafeAdd(tokens)
	if err != nil {
		return sdkerrors.Wrap(err, "unable to increment total tokens")
	}

	if err = k.TotalShares.Set(ctx, newShares); err != nil {
		return err
	}

	return k.TotalTokens.Set(ctx, newTokens)
}

// DecrementTotals shrinks both sides of the ledger, as on redemption.
func (k *Keeper) DecrementTotals(ctx context.Context, shares, tokens math.Int) error {
	totalShares, err := k.GetTotalShares(ctx)
	if err != nil {
		return err
	}
	totalTokens, err := k.GetTotalTokens(ctx)
	if err != nil {
		return err
	}

	newShares, err := totalShares.SafeSub(shares)
	if err != nil || newShares.IsNegative() {
		return sdkerrors.Wrap(types.ErrInsufficientShares, "unable to decrement total shares")
	}
	newTokens, err := totalTokens.SafeSub(tokens)
	if err != nil || newTokens.IsNegative() {
		return sdkerrors.Wrap(types.ErrInsufficientVaultBalance, "unable to decrement total tokens")
	}

	if err = k.TotalShares.Set(ctx, newShares); err != nil {
		return err
	}

	return k.TotalTokens.Set(ctx, newTokens)
}

// AdjustTotalTokens moves the token side of the ledger by delta, which may be
// negative, leaving share supply untouched. Used by strategy settlement.
func (k *Keeper) AdjustTotalTokens(ctx context.Context, delta math.Int) error {
	totalTokens, err := k.GetTotalTokens(ctx)
	if err != nil {
		return err
	}

	newTokens, err := totalTokens.SafeAdd(delta)
	if err != nil || newTokens.IsNegative() {
		return sdkerrors.Wrap(types.ErrInsufficientVaultBalance, "unable to adjust total tokens")
	}

	return k.TotalTokens.Set(ctx, newTokens)
}

// GetStrategyRecord returns a strategy's borrowed principal and cumulative net
// impact. Missing entries read as zero.
func (k *Keeper) GetStrategyRecord(ctx context.Context, strategy sdk.AccAddress) (types.StrategyRecord, error) {
	record := types.StrategyRecord{
		Borrowed:  math.ZeroInt(),
		NetImpact: math.ZeroInt(),
	}

	borrowed, err := k.StrategyBorrowed.Get(ctx, strategy)
	if err != nil && !errors.Is(err, collections.ErrNotFound) {
		return record, err
	}
	if err == nil {
		record.Borrowed = borrowed
	}

	netImpact, err := k.StrategyNetImpact.Get(ctx, strategy)
	if err != nil && !errors.Is(err, collections.ErrNotFound) {
		return record, err
	}
	if err == nil {
		record.NetImpact = netImpact
	}

	return record, nil
}

func (k *Keeper) SetStrategyRecord(ctx context.Context, strategy sdk.AccAddress, record types.StrategyRecord) error {
	if err := k.StrategyBorrowed.Set(ctx, strategy, record.Borrowed); err != nil {
		return err
	}

	return k.StrategyNetImpact.Set(ctx, strategy, record.NetImpact)
}

// GetRedemptionRequest returns the holder's pending request. The second return
// reports whether one exists.
func (k *Keeper) GetRedemptionRequest(ctx context.Context, owner sdk.AccAddress) (types.RedemptionRequest, bool, error) {
	shares, err := k.RedemptionShares.Get(ctx, owner)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.RedemptionRequest{}, false, nil
		}
		return types.RedemptionRequest{}, false, err
	}

	unlockTime, err := k.RedemptionUnlocks.Get(ctx, owner)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.RedemptionRequest{}, false, nil
		}
		return types.RedemptionRequest{}, false, err
	}

	return types.RedemptionRequest{Shares: shares, UnlockTime: unlockTime}, true, nil
}

func (k *Keeper) SetRedemptionRequest(ctx context.Context, owner sdk.AccAddress, request types.RedemptionRequest) error {
	if err := k.RedemptionShares.Set(ctx, owner, request.Shares); err != nil {
		return err
	}

	return k.RedemptionUnlocks.Set(ctx, owner, request.UnlockTime)
}

func (k *Keeper) DeleteRedemptionRequest(ctx context.Context, owner sdk.AccAddress) error {
	if err := k.RedemptionShares.Remove(ctx, owner); err != nil {
		return err
	}

	return k.RedemptionUnlocks.Remove(ctx, owner)
}

// GetLastDepositTime returns the unix time of the holder's most recent
// deposit. The second return reports whether the holder has ever deposited.
func (k *Keeper) GetLastDepositTime(ctx context.Context, holder sdk.AccAddress) (int64, bool, error) {
	lastDeposit, err := k.LastDepositTimes.Get(ctx, holder)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}

	return lastDeposit, true, nil
}

func (k *Keeper) SetLastDepositTime(ctx context.Context, holder sdk.AccAddress, timestamp int64) error {
	return k.LastDepositTimes.Set(ctx, holder, timestamp)
}
