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
	"strconv"

	"cosmossdk.io/core/event"
	"cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"vault.meridian.zone/types"
)

var _ types.MsgServer = &msgServer{}

type msgServer struct {
	*Keeper
}

func NewMsgServer(keeper *Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

func (m msgServer) Deposit(ctx context.Context, msg *types.MsgDeposit) (*types.MsgDepositResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}

	if msg.Amount.IsNil() || !msg.Amount.IsPositive() {
		return nil, errors.Wrap(types.ErrInvalidAmount, "deposit amount must be positive")
	}

	depositor, receiver, err := m.resolveDepositParties(msg.Depositor, msg.Receiver)
	if err != nil {
		return nil, err
	}

	if err := m.ensureNotPaused(ctx); err != nil {
		return nil, err
	}

	totalShares, err := m.GetTotalShares(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch total share supply")
	}
	totalTokens, err := m.GetTotalTokens(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch total token principal")
	}

	shares := types.SharesFromTokens(msg.Amount, totalShares, totalTokens)
	if !shares.IsPositive() {
		return nil, errors.Wrap(types.ErrInvalidAmount, "deposit too small to mint shares")
	}

	tokenCoins := sdk.NewCoins(sdk.NewCoin(m.denom, msg.Amount))
	if err := m.bank.SendCoins(ctx, depositor, types.ModuleAddress, tokenCoins); err != nil {
		return nil, errors.Wrap(err, "unable to transfer deposit into module account")
	}

	if err := m.mintSharesTo(ctx, receiver, shares); err != nil {
		return nil, err
	}

	if err := m.IncrementTotals(ctx, shares, msg.Amount); err != nil {
		return nil, errors.Wrap(err, "unable to update vault totals")
	}

	now := m.header.GetHeaderInfo(ctx).Time.Unix()
	if err := m.SetLastDepositTime(ctx, receiver, now); err != nil {
		return nil, errors.Wrap(err, "unable to record deposit time")
	}

	if err := m.event.EventManager(ctx).EmitKV(ctx, types.EventTypeDeposit,
		event.Attribute{Key: types.AttributeKeyDepositor, Value: msg.Depositor},
		event.Attribute{Key: types.AttributeKeyReceiver, Value: receiver.String()},
		event.Attribute{Key: types.AttributeKeyTokens, Value: msg.Amount.String()},
		event.Attribute{Key: types.AttributeKeyShares, Value: shares.String()},
	); err != nil {
		return nil, errors.Wrap(err, "unable to emit deposit event")
	}

	return &types.MsgDepositResponse{SharesMinted: shares}, nil
}

func (m msgServer) Mint(ctx context.Context, msg *types.MsgMint) (*types.MsgMintResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}

	if msg.Shares.IsNil() || !msg.Shares.IsPositive() {
		return nil, errors.Wrap(types.ErrInvalidAmount, "share amount must be positive")
	}

	depositor, receiver, err := m.resolveDepositParties(msg.Depositor, msg.Receiver)
	if err != nil {
		return nil, err
	}

	if err := m.ensureNotPaused(ctx); err != nil {
		return nil, err
	}

	totalShares, err := m.GetTotalShares(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch total share supply")
	}
	totalTokens, err := m.GetTotalTokens(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch total token principal")
	}

	tokens := types.TokensForShares(msg.Shares, totalShares, totalTokens)
	if !tokens.IsPositive() {
		return nil, errors.Wrap(types.ErrInvalidAmount, "share amount prices to zero tokens")
	}

	tokenCoins := sdk.NewCoins(sdk.NewCoin(m.denom, tokens))
	if err := m.bank.SendCoins(ctx, depositor, types.ModuleAddress, tokenCoins); err != nil {
		return nil, errors.Wrap(err, "unable to transfer deposit into module account")
	}

	if err := m.mintSharesTo(ctx, receiver, msg.Shares); err != nil {
		return nil, err
	}

	if err := m.IncrementTotals(ctx, msg.Shares, tokens); err != nil {
		return nil, errors.Wrap(err, "unable to update vault totals")
	}

	now := m.header.GetHeaderInfo(ctx).Time.Unix()
	if err := m.SetLastDepositTime(ctx, receiver, now); err != nil {
		return nil, errors.Wrap(err, "unable to record deposit time")
	}

	if err := m.event.EventManager(ctx).EmitKV(ctx, types.EventTypeMint,
		event.Attribute{Key: types.AttributeKeyDepositor, Value: msg.Depositor},
		event.Attribute{Key: types.AttributeKeyReceiver, Value: receiver.String()},
		event.Attribute{Key: types.AttributeKeyTokens, Value: tokens.String()},
		event.Attribute{Key: types.AttributeKeyShares, Value: msg.Shares.String()},
	); err != nil {
		return nil, errors.Wrap(err, "unable to emit mint event")
	}

	return &types.MsgMintResponse{TokensPaid: tokens}, nil
}

func (m msgServer) RequestRedeem(ctx context.Context, msg *types.MsgRequestRedeem) (*types.MsgRequestRedeemResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}

	if msg.Shares.IsNil() || !msg.Shares.IsPositive() {
		return nil, errors.Wrap(types.ErrInvalidAmount, "share amount must be positive")
	}

	ownerBz, err := m.address.StringToBytes(msg.Owner)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid owner address: %s", msg.Owner)
	}
	owner := sdk.AccAddress(ownerBz)

	_, found, err := m.GetRedemptionRequest(ctx, owner)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch redemption request")
	}
	if found {
		return nil, errors.Wrap(types.ErrRedemptionInProgress, "a redemption request is already pending")
	}

	balance := m.bank.GetBalance(ctx, owner, m.shareDenom).Amount
	if balance.LT(msg.Shares) {
		return nil, errors.Wrapf(types.ErrInsufficientShares, "balance %s is below requested %s", balance, msg.Shares)
	}

	// The escrow leg goes through the bank so the share-lock gate applies
	// under the deposit lock mode.
	shareCoins := sdk.NewCoins(sdk.NewCoin(m.shareDenom, msg.Shares))
	if err := m.bank.SendCoins(ctx, owner, types.ModuleAddress, shareCoins); err != nil {
		return nil, errors.Wrap(err, "unable to escrow shares")
	}

	unlockTime := m.header.GetHeaderInfo(ctx).Time.Unix() + m.lockDuration
	request := types.RedemptionRequest{Shares: msg.Shares, UnlockTime: unlockTime}
	if err := m.SetRedemptionRequest(ctx, owner, request); err != nil {
		return nil, errors.Wrap(err, "unable to store redemption request")
	}

	if err := m.event.EventManager(ctx).EmitKV(ctx, types.EventTypeRedeemRequested,
		event.Attribute{Key: types.AttributeKeyOwner, Value: msg.Owner},
		event.Attribute{Key: types.AttributeKeyShares, Value: msg.Shares.String()},
		event.Attribute{Key: types.AttributeKeyUnlockTime, Value: strconv.FormatInt(unlockTime, 10)},
	); err != nil {
		return nil, errors.Wrap(err, "unable to emit redemption request event")
	}

	return &types.MsgRequestRedeemResponse{UnlockTime: unlockTime}, nil
}

func (m msgServer) Redeem(ctx context.Context, msg *types.MsgRedeem) (*types.MsgRedeemResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}

	owner, receiver, err := m.resolveDepositParties(msg.Owner, msg.Receiver)
	if err != nil {
		return nil, err
	}

	request, found, err := m.GetRedemptionRequest(ctx, owner)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch redemption request")
	}
	if !found {
		return nil, errors.Wrap(types.ErrRedemptionNotFound, "no pending redemption request")
	}

	if err := m.ensureHolderUnlocked(ctx, owner); err != nil {
		return nil, err
	}

	now := m.header.GetHeaderInfo(ctx).Time.Unix()
	if now < request.UnlockTime {
		return nil, errors.Wrapf(types.ErrRedemptionLocked, "request unlocks at %d, current time %d", request.UnlockTime, now)
	}

	shares, err := m.resolveRedeemShares(msg.Shares, request)
	if err != nil {
		return nil, err
	}

	tokens, err := m.settleShares(ctx, owner, receiver, shares, request, math.ZeroInt())
	if err != nil {
		return nil, err
	}

	if err := m.event.EventManager(ctx).EmitKV(ctx, types.EventTypeRedeem,
		event.Attribute{Key: types.AttributeKeyOwner, Value: msg.Owner},
		event.Attribute{Key: types.AttributeKeyReceiver, Value: receiver.String()},
		event.Attribute{Key: types.AttributeKeyShares, Value: shares.String()},
		event.Attribute{Key: types.AttributeKeyTokens, Value: tokens.String()},
	); err != nil {
		return nil, errors.Wrap(err, "unable to emit redeem event")
	}

	return &types.MsgRedeemResponse{SharesRedeemed: shares, TokensReturned: tokens}, nil
}

func (m msgServer) EmergencyRedeem(ctx context.Context, msg *types.MsgEmergencyRedeem) (*types.MsgEmergencyRedeemResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}

	owner, receiver, err := m.resolveDepositParties(msg.Owner, msg.Receiver)
	if err != nil {
		return nil, err
	}

	request, found, err := m.GetRedemptionRequest(ctx, owner)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch redemption request")
	}
	if !found {
		return nil, errors.Wrap(types.ErrRedemptionNotFound, "no pending redemption request")
	}

	if err := m.ensureHolderUnlocked(ctx, owner); err != nil {
		return nil, err
	}

	totalShares, err := m.GetTotalShares(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch total share supply")
	}
	totalTokens, err := m.GetTotalTokens(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch total token principal")
	}

	// Emergency exits always settle the entire request.
	shares := request.Shares

	now := m.header.GetHeaderInfo(ctx).Time.Unix()
	value := types.RedemptionValue(shares, totalShares, totalTokens)
	penalty := types.CalculatePenalty(value, request.UnlockTime, m.lockDuration, now, m.penaltyRate)
	if !value.Sub(penalty).IsPositive() {
		return nil, errors.Wrap(types.ErrInvalidAmount, "penalty consumes the full redemption value")
	}

	tokens, err := m.settleShares(ctx, owner, receiver, shares, request, penalty)
	if err != nil {
		return nil, err
	}

	if err := m.event.EventManager(ctx).EmitKV(ctx, types.EventTypeEmergencyRedeem,
		event.Attribute{Key: types.AttributeKeyOwner, Value: msg.Owner},
		event.Attribute{Key: types.AttributeKeyReceiver, Value: receiver.String()},
		event.Attribute{Key: types.AttributeKeyShares, Value: shares.String()},
		event.Attribute{Key: types.AttributeKeyTokens, Value: tokens.String()},
		event.Attribute{Key: types.AttributeKeyPenalty, Value: penalty.String()},
	); err != nil {
		return nil, errors.Wrap(err, "unable to emit emergency redeem event")
	}

	return &types.MsgEmergencyRedeemResponse{
		SharesRedeemed: shares,
		TokensReturned: tokens,
		Penalty:        penalty,
	}, nil
}

func (m msgServer) CancelRedeem(ctx context.Context, msg *types.MsgCancelRedeem) (*types.MsgCancelRedeemResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}

	ownerBz, err := m.address.StringToBytes(msg.Owner)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid owner address: %s", msg.Owner)
	}
	owner := sdk.AccAddress(ownerBz)

	request, found, err := m.GetRedemptionRequest(ctx, owner)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch redemption request")
	}
	if !found {
		return nil, errors.Wrap(types.ErrRedemptionNotFound, "no pending redemption request")
	}

	shareCoins := sdk.NewCoins(sdk.NewCoin(m.shareDenom, request.Shares))
	if err := m.bank.SendCoins(ctx, types.ModuleAddress, owner, shareCoins); err != nil {
		return nil, errors.Wrap(err, "unable to return escrowed shares")
	}

	if err := m.DeleteRedemptionRequest(ctx, owner); err != nil {
		return nil, errors.Wrap(err, "unable to remove redemption request")
	}

	if err := m.event.EventManager(ctx).EmitKV(ctx, types.EventTypeRedeemCancelled,
		event.Attribute{Key: types.AttributeKeyOwner, Value: msg.Owner},
		event.Attribute{Key: types.AttributeKeyShares, Value: request.Shares.String()},
	); err != nil {
		return nil, errors.Wrap(err, "unable to emit cancellation event")
	}

	return &types.MsgCancelRedeemResponse{SharesReturned: request.Shares}, nil
}

func (m msgServer) SetPaused(ctx context.Context, msg *types.MsgSetPaused) (*types.MsgSetPausedResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}

	if msg.Authority != m.authority {
		return nil, errors.Wrapf(types.ErrInvalidAuthority, "expected %s, got %s", m.authority, msg.Authority)
	}

	if err := m.Keeper.SetPaused(ctx, msg.Paused); err != nil {
		return nil, errors.Wrap(err, "unable to persist paused state")
	}

	if err := m.event.EventManager(ctx).EmitKV(ctx, types.EventTypePaused,
		event.Attribute{Key: types.AttributeKeyAuthority, Value: msg.Authority},
		event.Attribute{Key: types.AttributeKeyPaused, Value: strconv.FormatBool(msg.Paused)},
	); err != nil {
		return nil, errors.Wrap(err, "unable to emit pause event")
	}

	return &types.MsgSetPausedResponse{}, nil
}

// resolveDepositParties decodes the signer and the optional receiver, which
// defaults to the signer when empty.
func (m msgServer) resolveDepositParties(signer, receiver string) (sdk.AccAddress, sdk.AccAddress, error) {
	signerBz, err := m.address.StringToBytes(signer)
	if err != nil {
		return nil, nil, errors.Wrapf(types.ErrInvalidRequest, "invalid signer address: %s", signer)
	}

	if receiver == "" {
		return signerBz, signerBz, nil
	}

	receiverBz, err := m.address.StringToBytes(receiver)
	if err != nil {
		return nil, nil, errors.Wrapf(types.ErrInvalidRequest, "invalid receiver address: %s", receiver)
	}

	return signerBz, receiverBz, nil
}

// mintSharesTo mints fresh shares into the module account and delivers them
// to the receiver.
func (m msgServer) mintSharesTo(ctx context.Context, receiver sdk.AccAddress, shares math.Int) error {
	shareCoins := sdk.NewCoins(sdk.NewCoin(m.shareDenom, shares))
	if err := m.bank.MintCoins(ctx, types.ModuleName, shareCoins); err != nil {
		return errors.Wrap(err, "unable to mint shares")
	}
	if err := m.bank.SendCoins(ctx, types.ModuleAddress, receiver, shareCoins); err != nil {
		return errors.Wrap(err, "unable to deliver shares")
	}

	return nil
}

// ensureHolderUnlocked blocks settlement while the owner sits inside the
// deposit lock window, which restarts on every deposit. The transfer gate
// leaves the redemption path open.
func (m msgServer) ensureHolderUnlocked(ctx context.Context, owner sdk.AccAddress) error {
	if m.lockMode != types.LockModeDeposit {
		return nil
	}

	locked, err := m.Keeper.IsLocked(ctx, owner)
	if err != nil {
		return errors.Wrap(err, "unable to determine lock state")
	}
	if locked {
		return errors.Wrap(types.ErrSharesLocked, "holder is inside the deposit lock window")
	}

	return nil
}

func (m msgServer) ensureNotPaused(ctx context.Context) error {
	paused, err := m.GetPaused(ctx)
	if err != nil {
		return errors.Wrap(err, "unable to fetch paused state")
	}
	if paused {
		return errors.Wrap(types.ErrPaused, "deposits are halted")
	}

	return nil
}

// resolveRedeemShares picks the share amount a redemption settles: the full
// request when unspecified, otherwise the requested portion.
func (m msgServer) resolveRedeemShares(requested *math.Int, request types.RedemptionRequest) (math.Int, error) {
	if requested == nil {
		return request.Shares, nil
	}

	shares := *requested
	if shares.IsNil() || !shares.IsPositive() {
		return math.Int{}, errors.Wrap(types.ErrInvalidAmount, "share amount must be positive")
	}
	if shares.GT(request.Shares) {
		return math.Int{}, errors.Wrapf(types.ErrInsufficientShares, "request holds %s shares, got %s", request.Shares, shares)
	}
	if shares.LT(request.Shares) && !m.allowPartialRedemptions {
		return math.Int{}, errors.Wrap(types.ErrInvalidRequest, "partial redemptions are not enabled")
	}

	return shares, nil
}

// settleShares burns escrowed shares, pays out their value minus penalty and
// shrinks the ledger by the paid amount. The penalty stays in the pool and
// accrues to the remaining holders.
func (m msgServer) settleShares(
	ctx context.Context,
	owner, receiver sdk.AccAddress,
	shares math.Int,
	request types.RedemptionRequest,
	penalty math.Int,
) (math.Int, error) {
	totalShares, err := m.GetTotalShares(ctx)
	if err != nil {
		return math.Int{}, errors.Wrap(err, "unable to fetch total share supply")
	}
	totalTokens, err := m.GetTotalTokens(ctx)
	if err != nil {
		return math.Int{}, errors.Wrap(err, "unable to fetch total token principal")
	}

	value := types.RedemptionValue(shares, totalShares, totalTokens)
	tokens, err := value.SafeSub(penalty)
	if err != nil || tokens.IsNegative() {
		return math.Int{}, errors.Wrap(types.ErrInvalidAmount, "penalty exceeds redemption value")
	}

	// Pay out before burning so an illiquid vault rejects the redemption
	// without touching the escrow.
	if tokens.IsPositive() {
		tokenCoins := sdk.NewCoins(sdk.NewCoin(m.denom, tokens))
		if err := m.bank.SendCoins(ctx, types.ModuleAddress, receiver, tokenCoins); err != nil {
			return math.Int{}, errors.Wrap(err, "unable to pay out redemption")
		}
	}

	shareCoins := sdk.NewCoins(sdk.NewCoin(m.shareDenom, shares))
	if err := m.bank.BurnCoins(ctx, types.ModuleName, shareCoins); err != nil {
		return math.Int{}, errors.Wrap(err, "unable to burn escrowed shares")
	}

	if err := m.DecrementTotals(ctx, shares, tokens); err != nil {
		return math.Int{}, errors.Wrap(err, "unable to update vault totals")
	}

	remaining, err := request.Shares.SafeSub(shares)
	if err != nil {
		return math.Int{}, errors.Wrap(types.ErrInsufficientShares, "unable to reduce redemption request")
	}
	if remaining.IsZero() {
		if err := m.DeleteRedemptionRequest(ctx, owner); err != nil {
			return math.Int{}, errors.Wrap(err, "unable to remove redemption request")
		}
	} else {
		request.Shares = remaining
		if err := m.SetRedemptionRequest(ctx, owner, request); err != nil {
			return math.Int{}, errors.Wrap(err, "unable to update redemption request")
		}
	}

	return tokens, nil
}
