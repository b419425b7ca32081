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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vault.meridian.zone/keeper"
	"vault.meridian.zone/types"
	"vault.meridian.zone/utils"
	"vault.meridian.zone/utils/mocks"
)

func TestQueryDenomsAndLockDuration(t *testing.T) {
	k, _, _, ctx := setupTest(t, mocks.DefaultConfig())
	query := keeper.NewQueryServer(k)

	// ACT
	denoms, err := query.Denoms(ctx, &types.QueryDenoms{})
	require.NoError(t, err)
	lock, err := query.LockDuration(ctx, &types.QueryLockDuration{})
	require.NoError(t, err)

	// ASSERT
	assert.Equal(t, "uusdc", denoms.Denom)
	assert.Equal(t, "uvault", denoms.ShareDenom)
	assert.Equal(t, int64(300), lock.LockDuration)

	// ASSERT: Nil requests are rejected.
	_, err = query.Denoms(ctx, nil)
	require.Error(t, err)
}

func TestQueryTotalsAndSharePrice(t *testing.T) {
	k, server, bank, ctx := setupTest(t, mocks.DefaultConfig())
	query := keeper.NewQueryServer(k)
	alice := utils.TestAccount()

	// ASSERT: An empty vault prices one-to-one, matching bootstrap.
	price, err := query.SharePrice(ctx, &types.QuerySharePrice{})
	require.NoError(t, err)
	assert.Equal(t, types.Scalar, price.Tokens)

	// ARRANGE: Seed a 1.08 exchange ratio.
	fund(bank, alice, "uusdc", 1_000_000)
	seedRatio(t, k, server, ctx, bank, alice)

	// ACT
	totalShares, err := query.TotalShares(ctx, &types.QueryTotalShares{})
	require.NoError(t, err)
	totalTokens, err := query.TotalTokens(ctx, &types.QueryTotalTokens{})
	require.NoError(t, err)
	price, err = query.SharePrice(ctx, &types.QuerySharePrice{})
	require.NoError(t, err)

	// ASSERT: One whole scalar unit of shares redeems for 1.08 units.
	assert.Equal(t, math.NewInt(15_000), totalShares.TotalShares)
	assert.Equal(t, math.NewInt(16_200), totalTokens.TotalTokens)
	assert.Equal(t, types.Scalar, price.Shares)
	assert.Equal(t, math.NewInt(10_800_000), price.Tokens)

	// ACT + ASSERT: An explicit share amount is priced at the same ratio.
	shares := math.NewInt(5_000)
	price, err = query.SharePrice(ctx, &types.QuerySharePrice{Shares: &shares})
	require.NoError(t, err)
	assert.Equal(t, math.NewInt(5_400), price.Tokens)
}

func TestQueryStrategy(t *testing.T) {
	strategy := utils.TestAccount()
	k, server, bank, ctx := setupTest(t, mocks.DefaultConfig(strategy.Address))
	query := keeper.NewQueryServer(k)
	alice := utils.TestAccount()

	// ARRANGE
	fund(bank, alice, "uusdc", 10_000)
	_, err := server.Deposit(ctx, &types.MsgDeposit{Depositor: alice.Address, Amount: math.NewInt(10_000)})
	require.NoError(t, err)
	_, err = server.Borrow(ctx, &types.MsgBorrow{Strategy: strategy.Address, Amount: math.NewInt(4_000)})
	require.NoError(t, err)

	// ACT
	resp, err := query.Strategy(ctx, &types.QueryStrategy{Strategy: strategy.Address})

	// ASSERT
	require.NoError(t, err)
	assert.Equal(t, math.NewInt(4_000), resp.Borrowed)
	assert.Equal(t, math.ZeroInt(), resp.NetImpact)

	// ACT + ASSERT: The net impact view reads the same record.
	netImpact, err := query.NetImpact(ctx, &types.QueryNetImpact{Strategy: strategy.Address})
	require.NoError(t, err)
	assert.Equal(t, math.ZeroInt(), netImpact.NetImpact)

	// ACT + ASSERT: Unknown strategies are rejected rather than zero-valued.
	outsider := utils.TestAccount()
	_, err = query.Strategy(ctx, &types.QueryStrategy{Strategy: outsider.Address})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrUnauthorizedStrategy)
}

func TestQueryAvailableLiquidity(t *testing.T) {
	strategy := utils.TestAccount()
	k, server, bank, ctx := setupTest(t, mocks.DefaultConfig(strategy.Address))
	query := keeper.NewQueryServer(k)
	alice := utils.TestAccount()

	// ARRANGE: 10k principal with a 10% reserve.
	fund(bank, alice, "uusdc", 10_000)
	_, err := server.Deposit(ctx, &types.MsgDeposit{Depositor: alice.Address, Amount: math.NewInt(10_000)})
	require.NoError(t, err)

	// ACT
	resp, err := query.AvailableLiquidity(ctx, &types.QueryAvailableLiquidity{})

	// ASSERT
	require.NoError(t, err)
	assert.Equal(t, math.NewInt(10_000), resp.Balance)
	assert.Equal(t, math.NewInt(1_000), resp.Required)
	assert.Equal(t, math.NewInt(9_000), resp.Borrowable)

	// ARRANGE: Borrow the full excess.
	_, err = server.Borrow(ctx, &types.MsgBorrow{Strategy: strategy.Address, Amount: math.NewInt(9_000)})
	require.NoError(t, err)

	// ACT + ASSERT: Nothing left to borrow.
	resp, err = query.AvailableLiquidity(ctx, &types.QueryAvailableLiquidity{})
	require.NoError(t, err)
	assert.Equal(t, math.NewInt(1_000), resp.Balance)
	assert.Equal(t, math.ZeroInt(), resp.Borrowable)
}

func TestQueryRedemptionRequestAndLocks(t *testing.T) {
	k, server, bank, ctx := setupTest(t, mocks.DefaultConfig())
	query := keeper.NewQueryServer(k)
	alice := utils.TestAccount()

	// ACT + ASSERT: No request yet.
	_, err := query.RedemptionRequest(ctx, &types.QueryRedemptionRequest{Owner: alice.Address})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrRedemptionNotFound)

	// ARRANGE
	fund(bank, alice, "uusdc", 10_000)
	_, err = server.Deposit(ctx, &types.MsgDeposit{Depositor: alice.Address, Amount: math.NewInt(10_000)})
	require.NoError(t, err)
	_, err = server.RequestRedeem(ctx, &types.MsgRequestRedeem{Owner: alice.Address, Shares: math.NewInt(6_000)})
	require.NoError(t, err)

	// ACT
	request, err := query.RedemptionRequest(ctx, &types.QueryRedemptionRequest{Owner: alice.Address})
	require.NoError(t, err)
	locked, err := query.IsLocked(ctx, &types.QueryIsLocked{Account: alice.Address})
	require.NoError(t, err)
	remaining, err := query.RemainingLock(ctx, &types.QueryRemainingLock{Account: alice.Address})
	require.NoError(t, err)

	// ASSERT
	assert.Equal(t, math.NewInt(6_000), request.Shares)
	assert.Equal(t, testStart.Unix()+300, request.UnlockTime)
	assert.True(t, locked.Locked)
	assert.Equal(t, int64(300), remaining.RemainingSeconds)
}

func TestQueryPaused(t *testing.T) {
	k, server, _, ctx := setupTest(t, mocks.DefaultConfig())
	query := keeper.NewQueryServer(k)

	// ACT + ASSERT: Not paused by default.
	resp, err := query.Paused(ctx, &types.QueryPaused{})
	require.NoError(t, err)
	assert.False(t, resp.Paused)

	// ARRANGE
	_, err = server.SetPaused(ctx, &types.MsgSetPaused{Authority: "authority", Paused: true})
	require.NoError(t, err)

	// ACT + ASSERT
	resp, err = query.Paused(ctx, &types.QueryPaused{})
	require.NoError(t, err)
	assert.True(t, resp.Paused)
}
