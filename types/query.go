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
	"context"

	"cosmossdk.io/math"
)

// QueryServer is the read-only surface of the vault.
type QueryServer interface {
	Denoms(ctx context.Context, req *QueryDenoms) (*QueryDenomsResponse, error)
	TotalShares(ctx context.Context, req *QueryTotalShares) (*QueryTotalSharesResponse, error)
	TotalTokens(ctx context.Context, req *QueryTotalTokens) (*QueryTotalTokensResponse, error)
	// SharePrice reports the token value of redeeming the given share amount,
	// defaulting to one whole scalar unit. Zero supply prices one-to-one,
	// matching the bootstrap deposit.
	SharePrice(ctx context.Context, req *QuerySharePrice) (*QuerySharePriceResponse, error)
	Strategy(ctx context.Context, req *QueryStrategy) (*QueryStrategyResponse, error)
	NetImpact(ctx context.Context, req *QueryNetImpact) (*QueryNetImpactResponse, error)
	LockDuration(ctx context.Context, req *QueryLockDuration) (*QueryLockDurationResponse, error)
	IsLocked(ctx context.Context, req *QueryIsLocked) (*QueryIsLockedResponse, error)
	RemainingLock(ctx context.Context, req *QueryRemainingLock) (*QueryRemainingLockResponse, error)
	RedemptionRequest(ctx context.Context, req *QueryRedemptionRequest) (*QueryRedemptionRequestResponse, error)
	AvailableLiquidity(ctx context.Context, req *QueryAvailableLiquidity) (*QueryAvailableLiquidityResponse, error)
	Paused(ctx context.Context, req *QueryPaused) (*QueryPausedResponse, error)
}

type QueryDenoms struct{}

type QueryDenomsResponse struct {
	Denom      string
	ShareDenom string
	// DecimalsOffset is the share token's displayed-decimals shift relative
	// to the underlying asset.
	DecimalsOffset uint32
}

type QueryTotalShares struct{}

type QueryTotalSharesResponse struct {
	TotalShares math.Int
}

type QueryTotalTokens struct{}

type QueryTotalTokensResponse struct {
	TotalTokens math.Int
}

// QuerySharePrice prices Shares at the current exchange ratio; a nil Shares
// prices Scalar shares.
type QuerySharePrice struct {
	Shares *math.Int
}

type QuerySharePriceResponse struct {
	Shares math.Int
	Tokens math.Int
}

type QueryStrategy struct {
	Strategy string
}

type QueryStrategyResponse struct {
	Borrowed  math.Int
	NetImpact math.Int
}

type QueryNetImpact struct {
	Strategy string
}

type QueryNetImpactResponse struct {
	NetImpact math.Int
}

type QueryLockDuration struct{}

type QueryLockDurationResponse struct {
	LockDuration int64
}

type QueryIsLocked struct {
	Account string
}

type QueryIsLockedResponse struct {
	Locked bool
}

type QueryRemainingLock struct {
	Account string
}

type QueryRemainingLockResponse struct {
	RemainingSeconds int64
}

type QueryRedemptionRequest struct {
	Owner string
}

type QueryRedemptionRequestResponse struct {
	Shares     math.Int
	UnlockTime int64
}

type QueryAvailableLiquidity struct{}

type QueryAvailableLiquidityResponse struct {
	// Balance is the vault's on-hand token balance.
	Balance math.Int
	// Required is the minimum reserve that cannot be borrowed.
	Required math.Int
	// Borrowable is the excess over the reserve available to strategies.
	Borrowable math.Int
}

type QueryPaused struct{}

type QueryPausedResponse struct {
	Paused bool
}
