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
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"vault.meridian.zone/types"
)

// InitGenesis seeds module state. Configured strategies without an explicit
// record start with zeroed principal and net impact.
func (k *Keeper) InitGenesis(ctx context.Context, genesis *types.GenesisState) {
	if genesis == nil {
		genesis = types.DefaultGenesisState()
	}
	if err := genesis.Validate(); err != nil {
		panic(err)
	}

	if err := k.Paused.Set(ctx, genesis.Paused); err != nil {
		panic(err)
	}
	if err := k.TotalShares.Set(ctx, genesis.TotalShares); err != nil {
		panic(err)
	}
	if err := k.TotalTokens.Set(ctx, genesis.TotalTokens); err != nil {
		panic(err)
	}

	for _, strategy := range k.strategyList {
		addrBz, err := k.address.StringToBytes(strategy)
		if err != nil {
			panic(fmt.Errorf("invalid strategy address %s: %w", strategy, err))
		}

		record, ok := genesis.StrategyRecords[strategy]
		if !ok {
			record = types.StrategyRecord{Borrowed: math.ZeroInt(), NetImpact: math.ZeroInt()}
		}
		if err := k.SetStrategyRecord(ctx, sdk.AccAddress(addrBz), record); err != nil {
			panic(err)
		}
	}

	for owner, request := range genesis.RedemptionRequests {
		addrBz, err := k.address.StringToBytes(owner)
		if err != nil {
			panic(fmt.Errorf("invalid redemption owner %s: %w", owner, err))
		}
		if err := k.SetRedemptionRequest(ctx, sdk.AccAddress(addrBz), request); err != nil {
			panic(err)
		}
	}

	for holder, timestamp := range genesis.LastDepositTimes {
		addrBz, err := k.address.StringToBytes(holder)
		if err != nil {
			panic(fmt.Errorf("invalid deposit holder %s: %w", holder, err))
		}
		if err := k.SetLastDepositTime(ctx, sdk.AccAddress(addrBz), timestamp); err != nil {
			panic(err)
		}
	}
}

// ExportGenesis reads the full module state back out.
func (k *Keeper) ExportGenesis(ctx context.Context) *types.GenesisState {
	genesis := types.DefaultGenesisState()

	paused, err := k.GetPaused(ctx)
	if err != nil {
		panic(err)
	}
	genesis.Paused = paused

	genesis.TotalShares, err = k.GetTotalShares(ctx)
	if err != nil {
		panic(err)
	}
	genesis.TotalTokens, err = k.GetTotalTokens(ctx)
	if err != nil {
		panic(err)
	}

	err = k.StrategyBorrowed.Walk(ctx, nil, func(key []byte, borrowed math.Int) (bool, error) {
		strategy, err := k.address.BytesToString(key)
		if err != nil {
			return true, err
		}

		record, err := k.GetStrategyRecord(ctx, key)
		if err != nil {
			return true, err
		}
		record.Borrowed = borrowed
		genesis.StrategyRecords[strategy] = record

		return false, nil
	})
	if err != nil {
		panic(err)
	}

	err = k.RedemptionShares.Walk(ctx, nil, func(key []byte, shares math.Int) (bool, error) {
		owner, err := k.address.BytesToString(key)
		if err != nil {
			return true, err
		}

		unlockTime, err := k.RedemptionUnlocks.Get(ctx, key)
		if err != nil {
			return true, err
		}
		genesis.RedemptionRequests[owner] = types.RedemptionRequest{
			Shares:     shares,
			UnlockTime: unlockTime,
		}

		return false, nil
	})
	if err != nil {
		panic(err)
	}

	err = k.LastDepositTimes.Walk(ctx, nil, func(key []byte, timestamp int64) (bool, error) {
		holder, err := k.address.BytesToString(key)
		if err != nil {
			return true, err
		}
		genesis.LastDepositTimes[holder] = timestamp

		return false, nil
	})
	if err != nil {
		panic(err)
	}

	return genesis
}
