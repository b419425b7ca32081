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

	"cosmossdk.io/errors"
	"cosmossdk.io/math"

	"vault.meridian.zone/types"
)

var _ types.QueryServer = &queryServer{}

type queryServer struct {
	*Keeper
}

func NewQueryServer(keeper *Keeper) types.QueryServer {
	return &queryServer{Keeper: keeper}
}

func (q queryServer) Denoms(_ context.Context, req *types.QueryDenoms) (*types.QueryDenomsResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}

	return &types.QueryDenomsResponse{
		Denom:          q.denom,
		ShareDenom:     q.shareDenom,
		DecimalsOffset: q.decimalsOffset,
	}, nil
}

func (q queryServer) TotalShares(ctx context.Context, req *types.QueryTotalShares) (*types.QueryTotalSharesResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}

	totalShares, err := q.GetTotalShares(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch total share supply")
	}

	return &types.QueryTotalSharesResponse{TotalShares: totalShares}, nil
}

func (q queryServer) TotalTokens(ctx context.Context, req *types.QueryTotalTokens) (*types.QueryTotalTokensResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}

	totalTokens, err := q.GetTotalTokens(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch total token principal")
	}

	return &types.QueryTotalTokensResponse{TotalTokens: totalTokens}, nil
}

func (q queryServer) SharePrice(ctx context.Context, req *types.QuerySharePrice) (*types.QuerySharePriceResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}

	shares := types.Scalar
	if req.Shares != nil {
		if req.Shares.IsNil() || req.Shares.IsNegative() {
			return nil, errors.Wrap(types.ErrInvalidAmount, "share amount cannot be negative")
		}
		shares = *req.Shares
	}

	totalShares, err := q.GetTotalShares(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch total share supply")
	}
	totalTokens, err := q.GetTotalTokens(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch total token principal")
	}

	tokens := types.RedemptionValue(shares, totalShares, totalTokens)
	if totalShares.IsZero() {
		tokens = shares
	}

	return &types.QuerySharePriceResponse{
		Shares: shares,
		Tokens: tokens,
	}, nil
}

func (q queryServer) NetImpact(ctx context.Context, req *types.QueryNetImpact) (*types.QueryNetImpactResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}

	record, err := q.Strategy(ctx, &types.QueryStrategy{Strategy: req.Strategy})
	if err != nil {
		return nil, err
	}

	return &types.QueryNetImpactResponse{NetImpact: record.NetImpact}, nil
}

func (q queryServer) Strategy(ctx context.Context, req *types.QueryStrategy) (*types.QueryStrategyResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}

	if !q.IsStrategy(req.Strategy) {
		return nil, errors.Wrapf(types.ErrUnauthorizedStrategy, "%s is not in the strategy set", req.Strategy)
	}

	addrBz, err := q.address.StringToBytes(req.Strategy)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid strategy address: %s", req.Strategy)
	}

	record, err := q.GetStrategyRecord(ctx, addrBz)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch strategy record")
	}

	return &types.QueryStrategyResponse{Borrowed: record.Borrowed, NetImpact: record.NetImpact}, nil
}

func (q queryServer) LockDuration(_ context.Context, req *types.QueryLockDuration) (*types.QueryLockDurationResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}

	return &types.QueryLockDurationResponse{LockDuration: q.lockDuration}, nil
}

func (q queryServer) IsLocked(ctx context.Context, req *types.QueryIsLocked) (*types.QueryIsLockedResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}

	addrBz, err := q.address.StringToBytes(req.Account)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid account address: %s", req.Account)
	}

	locked, err := q.Keeper.IsLocked(ctx, addrBz)
	if err != nil {
		return nil, errors.Wrap(err, "unable to determine lock state")
	}

	return &types.QueryIsLockedResponse{Locked: locked}, nil
}

func (q queryServer) RemainingLock(ctx context.Context, req *types.QueryRemainingLock) (*types.QueryRemainingLockResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}

	addrBz, err := q.address.StringToBytes(req.Account)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid account address: %s", req.Account)
	}

	remaining, err := q.Keeper.RemainingLock(ctx, addrBz)
	if err != nil {
		return nil, errors.Wrap(err, "unable to determine remaining lock")
	}

	return &types.QueryRemainingLockResponse{RemainingSeconds: remaining}, nil
}

func (q queryServer) RedemptionRequest(ctx context.Context, req *types.QueryRedemptionRequest) (*types.QueryRedemptionRequestResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}

	addrBz, err := q.address.StringToBytes(req.Owner)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid owner address: %s", req.Owner)
	}

	request, found, err := q.GetRedemptionRequest(ctx, addrBz)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch redemption request")
	}
	if !found {
		return nil, errors.Wrap(types.ErrRedemptionNotFound, "no pending redemption request")
	}

	return &types.QueryRedemptionRequestResponse{
		Shares:     request.Shares,
		UnlockTime: request.UnlockTime,
	}, nil
}

func (q queryServer) AvailableLiquidity(ctx context.Context, req *types.QueryAvailableLiquidity) (*types.QueryAvailableLiquidityResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}

	totalTokens, err := q.GetTotalTokens(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch total token principal")
	}

	balance := q.bank.GetBalance(ctx, types.ModuleAddress, q.denom).Amount
	required := types.MinimumLiquidity(totalTokens, q.minLiquidityRate)

	borrowable := math.ZeroInt()
	if balance.GT(required) {
		borrowable = balance.Sub(required)
	}

	return &types.QueryAvailableLiquidityResponse{
		Balance:    balance,
		Required:   required,
		Borrowable: borrowable,
	}, nil
}

func (q queryServer) Paused(ctx context.Context, req *types.QueryPaused) (*types.QueryPausedResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}

	paused, err := q.GetPaused(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch paused state")
	}

	return &types.QueryPausedResponse{Paused: paused}, nil
}
