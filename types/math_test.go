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

package types_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vault.meridian.zone/types"
)

func TestSharesFromTokensBootstrap(t *testing.T) {
	// ACT: Price a deposit against an empty vault.
	shares := types.SharesFromTokens(math.NewInt(1_000), math.ZeroInt(), math.ZeroInt())

	// ASSERT: The first deposit is priced one-to-one.
	assert.Equal(t, math.NewInt(1_000), shares)

	// ASSERT: A zero-token vault with shares outstanding also bootstraps.
	shares = types.SharesFromTokens(math.NewInt(1_000), math.NewInt(500), math.ZeroInt())
	assert.Equal(t, math.NewInt(1_000), shares)
}

func TestSharesFromTokensRoundsDown(t *testing.T) {
	// ARRANGE: A vault where each share is worth 1.08 tokens.
	totalShares := math.NewInt(15_000)
	totalTokens := math.NewInt(16_200)

	// ACT: Price a deposit that divides evenly and one that does not.
	exact := types.SharesFromTokens(math.NewInt(8_640), totalShares, totalTokens)
	ragged := types.SharesFromTokens(math.NewInt(100), totalShares, totalTokens)

	// ASSERT: 8640 * 15000 / 16200 = 8000 exactly.
	assert.Equal(t, math.NewInt(8_000), exact)
	// ASSERT: 100 * 15000 / 16200 = 92.59... floors to 92.
	assert.Equal(t, math.NewInt(92), ragged)
}

func TestMintCostNeverBelowRedemptionValue(t *testing.T) {
	// ARRANGE: An awkward exchange ratio.
	totalShares := math.NewInt(7_777)
	totalTokens := math.NewInt(13_331)

	// ACT + ASSERT: Across a sweep of share amounts, minting always costs at
	// least what redeeming the same shares pays out.
	for shares := int64(1); shares <= 500; shares++ {
		cost := types.TokensForShares(math.NewInt(shares), totalShares, totalTokens)
		payout := types.RedemptionValue(math.NewInt(shares), totalShares, totalTokens)

		require.True(t, cost.GTE(payout), "shares=%d cost=%s payout=%s", shares, cost, payout)
	}
}

func TestRedemptionValueZeroSupply(t *testing.T) {
	// ACT: Value shares against a vault with no supply.
	payout := types.RedemptionValue(math.NewInt(100), math.ZeroInt(), math.NewInt(500))

	// ASSERT: Nothing is paid out.
	assert.Equal(t, math.ZeroInt(), payout)
}

func TestCalculatePenaltyDecaysLinearly(t *testing.T) {
	// ARRANGE: A 10% penalty over a 300 second lock on a 10k redemption.
	value := math.NewInt(10_000)
	penaltyRate := math.NewInt(1_000_000)
	unlockTime := int64(1_000_300)
	lockDuration := int64(300)

	// ACT + ASSERT: Full penalty at request time.
	penalty := types.CalculatePenalty(value, unlockTime, lockDuration, 1_000_000, penaltyRate)
	assert.Equal(t, math.NewInt(1_000), penalty)

	// ACT + ASSERT: Half the penalty at the midpoint.
	penalty = types.CalculatePenalty(value, unlockTime, lockDuration, 1_000_150, penaltyRate)
	assert.Equal(t, math.NewInt(500), penalty)

	// ACT + ASSERT: No penalty at or past the unlock time.
	penalty = types.CalculatePenalty(value, unlockTime, lockDuration, 1_000_300, penaltyRate)
	assert.Equal(t, math.ZeroInt(), penalty)
	penalty = types.CalculatePenalty(value, unlockTime, lockDuration, 1_000_500, penaltyRate)
	assert.Equal(t, math.ZeroInt(), penalty)
}

func TestCalculatePenaltyMonotonicInTime(t *testing.T) {
	// ARRANGE
	value := math.NewInt(987_654)
	penaltyRate := math.NewInt(2_500_000)
	unlockTime := int64(2_000_000)
	lockDuration := int64(604_800)

	// ACT + ASSERT: Walking forward in time never raises the penalty.
	previous := types.CalculatePenalty(value, unlockTime, lockDuration, unlockTime-lockDuration, penaltyRate)
	for offset := int64(1); offset <= lockDuration; offset += 3_600 {
		now := unlockTime - lockDuration + offset
		penalty := types.CalculatePenalty(value, unlockTime, lockDuration, now, penaltyRate)

		require.True(t, penalty.LTE(previous), "penalty rose at offset %d", offset)
		previous = penalty
	}
}

func TestCalculatePenaltyZeroLockDuration(t *testing.T) {
	// ACT: A vault with no lock charges no penalty even before unlock.
	penalty := types.CalculatePenalty(math.NewInt(10_000), 100, 0, 50, math.NewInt(1_000_000))

	// ASSERT
	assert.Equal(t, math.ZeroInt(), penalty)
}

func TestMinimumLiquidityRoundsUp(t *testing.T) {
	// ACT: A 10% reserve on a principal that does not divide evenly.
	required := types.MinimumLiquidity(math.NewInt(10_001), math.NewInt(1_000_000))

	// ASSERT: 1000.1 rounds up to 1001.
	assert.Equal(t, math.NewInt(1_001), required)

	// ASSERT: An empty vault requires no reserve.
	assert.Equal(t, math.ZeroInt(), types.MinimumLiquidity(math.ZeroInt(), math.NewInt(1_000_000)))
}

func TestVaultConfigValidate(t *testing.T) {
	base := types.VaultConfig{
		Denom:            "uusdc",
		ShareDenom:       "uvault",
		Authority:        "authority",
		LockDuration:     300,
		PenaltyRate:      math.NewInt(1_000_000),
		MinLiquidityRate: math.NewInt(1_000_000),
		LockMode:         types.LockModeTransfer,
	}

	// ASSERT: The base configuration is valid.
	require.NoError(t, base.Validate())

	// ASSERT: Matching denoms are rejected.
	invalid := base
	invalid.ShareDenom = invalid.Denom
	require.Error(t, invalid.Validate())

	// ASSERT: A penalty rate above 100% is rejected.
	invalid = base
	invalid.PenaltyRate = math.NewInt(10_000_001)
	require.Error(t, invalid.Validate())

	// ASSERT: A negative lock duration is rejected.
	invalid = base
	invalid.LockDuration = -1
	require.Error(t, invalid.Validate())

	// ASSERT: An oversized decimals offset is rejected.
	invalid = base
	invalid.DecimalsOffset = 11
	require.Error(t, invalid.Validate())

	// ASSERT: Duplicate strategies are rejected.
	invalid = base
	invalid.Strategies = []string{"strategy", "strategy"}
	require.Error(t, invalid.Validate())
}
