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

package mocks

import (
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec/address"
	"github.com/cosmos/cosmos-sdk/runtime"
	"github.com/cosmos/cosmos-sdk/testutil"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"vault.meridian.zone/keeper"
	"vault.meridian.zone/types"
)

// DefaultConfig returns a vault configuration suitable for most tests: a five
// minute lock, a 10% request-time penalty and a 10% liquidity reserve.
func DefaultConfig(strategies ...string) types.VaultConfig {
	return types.VaultConfig{
		Denom:                   "uusdc",
		ShareDenom:              "uvault",
		Authority:               "authority",
		LockDuration:            300,
		PenaltyRate:             math.NewInt(1_000_000),
		MinLiquidityRate:        math.NewInt(1_000_000),
		DecimalsOffset:          0,
		LockMode:                types.LockModeTransfer,
		AllowPartialRedemptions: true,
		Strategies:              strategies,
	}
}

// VaultKeeper builds a keeper around the provided bank mock with the default
// configuration.
func VaultKeeper(t testing.TB, bank BankKeeper) (*keeper.Keeper, sdk.Context) {
	return VaultKeeperWithConfig(t, bank, DefaultConfig())
}

// VaultKeeperWithConfig builds a keeper on an in-memory store, wires the bank
// mock through the share-lock send restriction and seeds default genesis.
func VaultKeeperWithConfig(t testing.TB, bank BankKeeper, config types.VaultConfig) (*keeper.Keeper, sdk.Context) {
	key := storetypes.NewKVStoreKey(types.ModuleName)
	tkey := storetypes.NewTransientStoreKey("transient_vault")
	wrapper := testutil.DefaultContextWithDB(t, key, tkey)

	if bank.Restriction == nil {
		bank.Restriction = NoOpSendRestrictionFn
	}

	k := keeper.NewKeeper(
		config,
		runtime.NewKVStoreService(key),
		log.NewNopLogger(),
		HeaderService{},
		EventService{},
		address.NewBech32Codec("cosmos"),
		bank,
	)
	bank.Restriction = k.SendRestrictionFn
	k.SetBankKeeper(bank)

	k.InitGenesis(wrapper.Ctx, types.DefaultGenesisState())

	return k, wrapper.Ctx
}
