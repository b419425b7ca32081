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

import "cosmossdk.io/math"

// Scalar is the fixed-point scale used for the penalty and minimum-liquidity
// rates: a rate of Scalar is 100%.
var Scalar = math.NewInt(10_000_000)

// SharesFromTokens returns the shares minted for a token deposit at the
// current exchange ratio. The first deposit is priced 1:1. Rounding is floor,
// in favour of the vault: the depositor never receives more than fair value.
func SharesFromTokens(tokens, totalShares, totalTokens math.Int) math.Int {
	if totalShares.IsZero() || totalTokens.IsZero() {
		return tokens
	}

	return tokens.Mul(totalShares).Quo(totalTokens)
}

// TokensForShares returns the tokens a caller must pay to mint an exact share
// count. The first mint is priced 1:1. Rounding is ceiling: the caller pays at
// least fair value, which together with the floor rounding of
// RedemptionValue guarantees mint cost >= redemption payout for any share
// amount.
func TokensForShares(shares, totalShares, totalTokens math.Int) math.Int {
	if totalShares.IsZero() || totalTokens.IsZero() {
		return shares
	}

	return ceilDiv(shares.Mul(totalTokens), totalShares)
}

// RedemptionValue returns the token payout for redeeming shares. Zero supply
// values to zero. Rounding is floor; the residual accrues to remaining
// holders.
func RedemptionValue(shares, totalShares, totalTokens math.Int) math.Int {
	if totalShares.IsZero() {
		return math.ZeroInt()
	}

	return shares.Mul(totalTokens).Quo(totalShares)
}

// CalculatePenalty returns the early-exit penalty on tokenValue at the given
// time. The penalty starts at penaltyRate when the request is filed and
// decays linearly to zero at unlockTime; it is zero once the request has
// unlocked. lockDuration of zero always takes the unlocked fast path since
// the unlock time has necessarily passed.
func CalculatePenalty(tokenValue math.Int, unlockTime, lockDuration, now int64, penaltyRate math.Int) math.Int {
	if now >= unlockTime || lockDuration <= 0 {
		return math.ZeroInt()
	}

	remaining := math.NewInt(unlockTime - now)
	currentRate := penaltyRate.Mul(remaining).Quo(math.NewInt(lockDuration))

	return tokenValue.Mul(currentRate).Quo(Scalar)
}

// MinimumLiquidity returns the reserve of tokens that must stay on hand.
// Rounding is ceiling so the requirement is never under-stated.
func MinimumLiquidity(totalTokens, minLiquidityRate math.Int) math.Int {
	if totalTokens.IsZero() {
		return math.ZeroInt()
	}

	return ceilDiv(totalTokens.Mul(minLiquidityRate), Scalar)
}

func ceilDiv(numerator, denominator math.Int) math.Int {
	return numerator.Add(denominator.Sub(math.OneInt())).Quo(denominator)
}
