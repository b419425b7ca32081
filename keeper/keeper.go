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

	"cosmossdk.io/collections"
	"cosmossdk.io/core/address"
	"cosmossdk.io/core/event"
	"cosmossdk.io/core/header"
	"cosmossdk.io/core/store"
	"cosmossdk.io/log"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"vault.meridian.zone/types"
)

type Keeper struct {
	denom                   string
	shareDenom              string
	authority               string
	lockDuration            int64
	penaltyRate             math.Int
	minLiquidityRate        math.Int
	decimalsOffset          uint32
	lockMode                types.LockMode
	allowPartialRedemptions bool
	strategies              map[string]bool
	strategyList            []string

	store store.KVStoreService

	logger  log.Logger
	header  header.Service
	event   event.Service
	address address.Codec
	bank    types.BankKeeper

	Paused            collections.Item[bool]
	TotalShares       collections.Item[math.Int]
	TotalTokens       collections.Item[math.Int]
	StrategyBorrowed  collections.Map[[]byte, math.Int]
	StrategyNetImpact collections.Map[[]byte, math.Int]
	RedemptionShares  collections.Map[[]byte, math.Int]
	RedemptionUnlocks collections.Map[[]byte, int64]
	LastDepositTimes  collections.Map[[]byte, int64]
}

func NewKeeper(
	config types.VaultConfig,
	store store.KVStoreService,
	logger log.Logger,
	header header.Service,
	event event.Service,
	address address.Codec,
	bank types.BankKeeper,
) *Keeper {
	if err := config.Validate(); err != nil {
		panic(err)
	}

	strategies := make(map[string]bool, len(config.Strategies))
	for _, strategy := range config.Strategies {
		strategies[strategy] = true
	}

	builder := collections.NewSchemaBuilder(store)

	keeper := &Keeper{
		denom:                   config.Denom,
		shareDenom:              config.ShareDenom,
		authority:               config.Authority,
		lockDuration:            config.LockDuration,
		penaltyRate:             config.PenaltyRate,
		minLiquidityRate:        config.MinLiquidityRate,
		decimalsOffset:          config.DecimalsOffset,
		lockMode:                config.LockMode,
		allowPartialRedemptions: config.AllowPartialRedemptions,
		strategies:              strategies,
		strategyList:            config.Strategies,

		store: store,

		logger:  logger.With("module", types.ModuleName),
		header:  header,
		event:   event,
		address: address,
		bank:    bank,

		Paused:            collections.NewItem(builder, types.PausedKey, "paused", collections.BoolValue),
		TotalShares:       collections.NewItem(builder, types.TotalSharesKey, "total_shares", sdk.IntValue),
		TotalTokens:       collections.NewItem(builder, types.TotalTokensKey, "total_tokens", sdk.IntValue),
		StrategyBorrowed:  collections.NewMap(builder, types.StrategyBorrowedPrefix, "strategy_borrowed", collections.BytesKey, sdk.IntValue),
		StrategyNetImpact: collections.NewMap(builder, types.StrategyNetImpactPrefix, "strategy_net_impact", collections.BytesKey, sdk.IntValue),
		RedemptionShares:  collections.NewMap(builder, types.RedemptionSharesPrefix, "redemption_shares", collections.BytesKey, sdk.IntValue),
		RedemptionUnlocks: collections.NewMap(builder, types.RedemptionUnlockPrefix, "redemption_unlocks", collections.BytesKey, collections.Int64Value),
		LastDepositTimes:  collections.NewMap(builder, types.LastDepositTimePrefix, "last_deposit_times", collections.BytesKey, collections.Int64Value),
	}

	_, err := builder.Build()
	if err != nil {
		panic(err)
	}

	return keeper
}

// SetBankKeeper overwrites the bank keeper used in this module.
func (k *Keeper) SetBankKeeper(bankKeeper types.BankKeeper) {
	k.bank = bankKeeper
}

// IsStrategy reports whether address is an authorized strategy.
func (k *Keeper) IsStrategy(address string) bool {
	return k.strategies[address]
}

// GetDenom returns the underlying asset denom.
func (k *Keeper) GetDenom() string {
	return k.denom
}

// GetShareDenom returns the vault share denom.
func (k *Keeper) GetShareDenom() string {
	return k.shareDenom
}

// GetLockDuration returns the redemption and share-lock window in seconds.
func (k *Keeper) GetLockDuration() int64 {
	return k.lockDuration
}

// IsLocked reports whether a holder's shares are currently inside the lock
// window. Under the transfer gate an account with no deposit record is
// unlocked; under the deposit gate it is locked.
func (k *Keeper) IsLocked(ctx context.Context, holder sdk.AccAddress) (bool, error) {
	lastDeposit, found, err := k.GetLastDepositTime(ctx, holder)
	if err != nil {
		return false, err
	}
	if !found {
		return k.lockMode == types.LockModeDeposit, nil
	}

	now := k.header.GetHeaderInfo(ctx).Time.Unix()

	return now < lastDeposit+k.lockDuration, nil
}

// RemainingLock returns the seconds until a holder's shares unlock, zero when
// already unlocked. An account with no deposit record under the deposit gate
// reports the full lock duration.
func (k *Keeper) RemainingLock(ctx context.Context, holder sdk.AccAddress) (int64, error) {
	lastDeposit, found, err := k.GetLastDepositTime(ctx, holder)
	if err != nil {
		return 0, err
	}
	if !found {
		if k.lockMode == types.LockModeDeposit {
			return k.lockDuration, nil
		}
		return 0, nil
	}

	now := k.header.GetHeaderInfo(ctx).Time.Unix()
	remaining := lastDeposit + k.lockDuration - now
	if remaining < 0 {
		return 0, nil
	}

	return remaining, nil
}

// SendRestrictionFn gates share transfers out of locked accounts. It is meant
// to be registered with the bank module's send restrictions.
func (k *Keeper) SendRestrictionFn(ctx context.Context, sender, recipient sdk.AccAddress, coins sdk.Coins) (newRecipient sdk.AccAddress, err error) {
	amount := coins.AmountOf(k.shareDenom)
	if amount.IsZero() {
		return recipient, nil
	}

	// Payouts and refunds originate from the module account and are never
	// gated.
	if sender.Equals(types.ModuleAddress) {
		return recipient, nil
	}

	// Under the transfer gate only peer-to-peer sends are restricted, so the
	// escrow leg of a redemption request passes through.
	if k.lockMode == types.LockModeTransfer && recipient.Equals(types.ModuleAddress) {
		return recipient, nil
	}

	locked, err := k.IsLocked(ctx, sender)
	if err != nil {
		return recipient, err
	}
	if locked {
		return recipient, types.ErrSharesLocked
	}

	return recipient, nil
}
