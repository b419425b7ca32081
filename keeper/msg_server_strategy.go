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

	"cosmossdk.io/core/event"
	"cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"vault.meridian.zone/types"
)

func (m msgServer) Borrow(ctx context.Context, msg *types.MsgBorrow) (*types.MsgBorrowResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}

	strategy, err := m.authorizeStrategy(msg.Strategy, msg.Amount)
	if err != nil {
		return nil, err
	}

	totalTokens, err := m.GetTotalTokens(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch total token principal")
	}

	// The reserve floor is computed against the accounted principal, not the
	// on-hand balance, so settled profits do not loosen it.
	balance := m.bank.GetBalance(ctx, types.ModuleAddress, m.denom).Amount
	required := types.MinimumLiquidity(totalTokens, m.minLiquidityRate)
	if balance.LTE(required) || msg.Amount.GT(balance.Sub(required)) {
		return nil, errors.Wrapf(types.ErrInsufficientVaultBalance,
			"balance %s with reserve %s cannot cover borrow of %s", balance, required, msg.Amount)
	}

	tokenCoins := sdk.NewCoins(sdk.NewCoin(m.denom, msg.Amount))
	if err := m.bank.SendCoins(ctx, types.ModuleAddress, strategy, tokenCoins); err != nil {
		return nil, errors.Wrap(err, "unable to transfer borrowed tokens")
	}

	record, err := m.GetStrategyRecord(ctx, strategy)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch strategy record")
	}
	record.Borrowed, err = record.Borrowed.SafeAdd(msg.Amount)
	if err != nil {
		return nil, errors.Wrap(err, "unable to update borrowed principal")
	}
	if err := m.SetStrategyRecord(ctx, strategy, record); err != nil {
		return nil, errors.Wrap(err, "unable to store strategy record")
	}

	if err := m.event.EventManager(ctx).EmitKV(ctx, types.EventTypeBorrow,
		event.Attribute{Key: types.AttributeKeyStrategy, Value: msg.Strategy},
		event.Attribute{Key: types.AttributeKeyTokens, Value: msg.Amount.String()},
	); err != nil {
		return nil, errors.Wrap(err, "unable to emit borrow event")
	}

	return &types.MsgBorrowResponse{Borrowed: record.Borrowed}, nil
}

func (m msgServer) Repay(ctx context.Context, msg *types.MsgRepay) (*types.MsgRepayResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}

	strategy, err := m.authorizeStrategy(msg.Strategy, msg.Amount)
	if err != nil {
		return nil, err
	}

	record, err := m.GetStrategyRecord(ctx, strategy)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch strategy record")
	}
	if msg.Amount.GT(record.Borrowed) {
		return nil, errors.Wrapf(types.ErrInvalidAmount,
			"repayment of %s exceeds borrowed principal %s", msg.Amount, record.Borrowed)
	}

	tokenCoins := sdk.NewCoins(sdk.NewCoin(m.denom, msg.Amount))
	if err := m.bank.SendCoins(ctx, strategy, types.ModuleAddress, tokenCoins); err != nil {
		return nil, errors.Wrap(err, "unable to transfer repayment")
	}

	record.Borrowed = record.Borrowed.Sub(msg.Amount)
	if err := m.SetStrategyRecord(ctx, strategy, record); err != nil {
		return nil, errors.Wrap(err, "unable to store strategy record")
	}

	if err := m.event.EventManager(ctx).EmitKV(ctx, types.EventTypeRepay,
		event.Attribute{Key: types.AttributeKeyStrategy, Value: msg.Strategy},
		event.Attribute{Key: types.AttributeKeyTokens, Value: msg.Amount.String()},
	); err != nil {
		return nil, errors.Wrap(err, "unable to emit repay event")
	}

	return &types.MsgRepayResponse{Borrowed: record.Borrowed}, nil
}

func (m msgServer) TransferTo(ctx context.Context, msg *types.MsgTransferTo) (*types.MsgTransferToResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}

	strategy, err := m.authorizeStrategy(msg.Strategy, msg.Amount)
	if err != nil {
		return nil, err
	}

	tokenCoins := sdk.NewCoins(sdk.NewCoin(m.denom, msg.Amount))
	if err := m.bank.SendCoins(ctx, types.ModuleAddress, strategy, tokenCoins); err != nil {
		return nil, errors.Wrap(err, "unable to transfer settlement out of module account")
	}

	if err := m.AdjustTotalTokens(ctx, msg.Amount.Neg()); err != nil {
		return nil, errors.Wrap(err, "unable to shrink token principal")
	}

	record, err := m.GetStrategyRecord(ctx, strategy)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch strategy record")
	}
	record.NetImpact, err = record.NetImpact.SafeSub(msg.Amount)
	if err != nil {
		return nil, errors.Wrap(err, "unable to update net impact")
	}
	if err := m.SetStrategyRecord(ctx, strategy, record); err != nil {
		return nil, errors.Wrap(err, "unable to store strategy record")
	}

	if err := m.event.EventManager(ctx).EmitKV(ctx, types.EventTypeTransferOut,
		event.Attribute{Key: types.AttributeKeyStrategy, Value: msg.Strategy},
		event.Attribute{Key: types.AttributeKeyTokens, Value: msg.Amount.String()},
		event.Attribute{Key: types.AttributeKeyNetImpact, Value: record.NetImpact.String()},
	); err != nil {
		return nil, errors.Wrap(err, "unable to emit settlement event")
	}

	return &types.MsgTransferToResponse{NetImpact: record.NetImpact}, nil
}

func (m msgServer) TransferFrom(ctx context.Context, msg *types.MsgTransferFrom) (*types.MsgTransferFromResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}

	strategy, err := m.authorizeStrategy(msg.Strategy, msg.Amount)
	if err != nil {
		return nil, err
	}

	tokenCoins := sdk.NewCoins(sdk.NewCoin(m.denom, msg.Amount))
	if err := m.bank.SendCoins(ctx, strategy, types.ModuleAddress, tokenCoins); err != nil {
		return nil, errors.Wrap(err, "unable to transfer settlement into module account")
	}

	if err := m.AdjustTotalTokens(ctx, msg.Amount); err != nil {
		return nil, errors.Wrap(err, "unable to grow token principal")
	}

	record, err := m.GetStrategyRecord(ctx, strategy)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch strategy record")
	}
	record.NetImpact, err = record.NetImpact.SafeAdd(msg.Amount)
	if err != nil {
		return nil, errors.Wrap(err, "unable to update net impact")
	}
	if err := m.SetStrategyRecord(ctx, strategy, record); err != nil {
		return nil, errors.Wrap(err, "unable to store strategy record")
	}

	if err := m.event.EventManager(ctx).EmitKV(ctx, types.EventTypeTransferIn,
		event.Attribute{Key: types.AttributeKeyStrategy, Value: msg.Strategy},
		event.Attribute{Key: types.AttributeKeyTokens, Value: msg.Amount.String()},
		event.Attribute{Key: types.AttributeKeyNetImpact, Value: record.NetImpact.String()},
	); err != nil {
		return nil, errors.Wrap(err, "unable to emit settlement event")
	}

	return &types.MsgTransferFromResponse{NetImpact: record.NetImpact}, nil
}

// authorizeStrategy validates a settlement message's amount, checks the signer
// against the configured strategy set and decodes its address.
func (m msgServer) authorizeStrategy(strategy string, amount math.Int) (sdk.AccAddress, error) {
	if amount.IsNil() || !amount.IsPositive() {
		return nil, errors.Wrap(types.ErrInvalidAmount, "amount must be positive")
	}

	if !m.IsStrategy(strategy) {
		return nil, errors.Wrapf(types.ErrUnauthorizedStrategy, "%s is not in the strategy set", strategy)
	}

	addrBz, err := m.address.StringToBytes(strategy)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid strategy address: %s", strategy)
	}

	return addrBz, nil
}
