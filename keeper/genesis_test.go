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

package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vault.meridian.zone/types"
	"vault.meridian.zone/utils"
	"vault.meridian.zone/utils/mocks"
)

func TestInitGenesisSeedsStrategyRecords(t *testing.T) {
	strategy := utils.TestAccount()

	// ACT: The fixture runs InitGenesis with default state.
	k, _, _, ctx := setupTest(t, mocks.DefaultConfig(strategy.Address))

	// ASSERT: Configured strategies start with zeroed records.
	record, err := k.GetStrategyRecord(ctx, strategy.Bytes)
	require.NoError(t, err)
	assert.Equal(t, math.ZeroInt(), record.Borrowed)
	assert.Equal(t, math.ZeroInt(), record.NetImpact)
}

func TestGenesisRoundTrip(t *testing.T) {
	strategy := utils.TestAccount()
	k, server, bank, ctx := setupTest(t, mocks.DefaultConfig(strategy.Address))
	alice := utils.TestAccount()

	// ARRANGE: Build up non-trivial state.
	fund(bank, alice, "uusdc", 20_000)
	_, err := server.Deposit(ctx, &types.MsgDeposit{Depositor: alice.Address, Amount: math.NewInt(20_000)})
	require.NoError(t, err)
	_, err = server.RequestRedeem(ctx, &types.MsgRequestRedeem{Owner: alice.Address, Shares: math.NewInt(5_000)})
	require.NoError(t, err)
	_, err = server.Borrow(ctx, &types.MsgBorrow{Strategy: strategy.Address, Amount: math.NewInt(3_000)})
	require.NoError(t, err)

	// ACT: Export, then replay into a fresh keeper.
	exported := k.ExportGenesis(ctx)

	bank2 := mocks.BankKeeper{Balances: make(map[string]sdk.Coins)}
	k2, ctx2 := mocks.VaultKeeperWithConfig(t, bank2, mocks.DefaultConfig(strategy.Address))
	k2.InitGenesis(ctx2, exported)

	// ASSERT: The replayed state matches.
	totalShares, err := k2.GetTotalShares(ctx2)
	require.NoError(t, err)
	assert.Equal(t, math.NewInt(20_000), totalShares)
	totalTokens, err := k2.GetTotalTokens(ctx2)
	require.NoError(t, err)
	assert.Equal(t, math.NewInt(20_000), totalTokens)

	request, found, err := k2.GetRedemptionRequest(ctx2, alice.Bytes)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, math.NewInt(5_000), request.Shares)
	assert.Equal(t, testStart.Unix()+300, request.UnlockTime)

	record, err := k2.GetStrategyRecord(ctx2, strategy.Bytes)
	require.NoError(t, err)
	assert.Equal(t, math.NewInt(3_000), record.Borrowed)

	lastDeposit, found, err := k2.GetLastDepositTime(ctx2, alice.Bytes)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, testStart.Unix(), lastDeposit)
}

func TestGenesisValidate(t *testing.T) {
	// ASSERT: The default state is valid.
	require.NoError(t, types.DefaultGenesisState().Validate())

	// ASSERT: Escrowed shares beyond the supply are rejected.
	invalid := types.DefaultGenesisState()
	invalid.TotalShares = math.NewInt(100)
	invalid.TotalTokens = math.NewInt(100)
	invalid.RedemptionRequests["owner"] = types.RedemptionRequest{Shares: math.NewInt(200), UnlockTime: 0}
	require.Error(t, invalid.Validate())

	// ASSERT: Negative borrowed principal is rejected.
	invalid = types.DefaultGenesisState()
	invalid.StrategyRecords["strategy"] = types.StrategyRecord{Borrowed: math.NewInt(-1), NetImpact: math.ZeroInt()}
	require.Error(t, invalid.Validate())
}
