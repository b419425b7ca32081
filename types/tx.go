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

// MsgServer is the transaction surface of the vault.
type MsgServer interface {
	// Deposit exchanges tokens for freshly minted shares at the current
	// exchange ratio, rounding shares down.
	Deposit(ctx context.Context, msg *MsgDeposit) (*MsgDepositResponse, error)
	// Mint produces an exact share count and charges the depositor the token
	// cost, rounding tokens up.
	Mint(ctx context.Context, msg *MsgMint) (*MsgMintResponse, error)
	// RequestRedeem escrows shares and starts the redemption lock.
	RequestRedeem(ctx context.Context, msg *MsgRequestRedeem) (*MsgRequestRedeemResponse, error)
	// Redeem settles an unlocked redemption request at the current exchange
	// ratio.
	Redeem(ctx context.Context, msg *MsgRedeem) (*MsgRedeemResponse, error)
	// EmergencyRedeem settles a still-locked request immediately, charging the
	// linearly decaying early-exit penalty.
	EmergencyRedeem(ctx context.Context, msg *MsgEmergencyRedeem) (*MsgEmergencyRedeemResponse, error)
	// CancelRedeem returns the escrowed shares of a pending request to its
	// owner.
	CancelRedeem(ctx context.Context, msg *MsgCancelRedeem) (*MsgCancelRedeemResponse, error)
	// Borrow lends pooled tokens to an authorized strategy, subject to the
	// minimum liquidity reserve.
	Borrow(ctx context.Context, msg *MsgBorrow) (*MsgBorrowResponse, error)
	// Repay returns borrowed principal from a strategy to the pool.
	Repay(ctx context.Context, msg *MsgRepay) (*MsgRepayResponse, error)
	// TransferTo settles pooled tokens out to a strategy, lowering its net
	// impact and the accounted principal.
	TransferTo(ctx context.Context, msg *MsgTransferTo) (*MsgTransferToResponse, error)
	// TransferFrom settles tokens from a strategy into the pool, raising its
	// net impact and the accounted principal.
	TransferFrom(ctx context.Context, msg *MsgTransferFrom) (*MsgTransferFromResponse, error)
	// SetPaused toggles the deposit-side circuit breaker.
	SetPaused(ctx context.Context, msg *MsgSetPaused) (*MsgSetPausedResponse, error)
}

type MsgDeposit struct {
	Depositor string
	Receiver  string
	Amount    math.Int
}

type MsgDepositResponse struct {
	SharesMinted math.Int
}

type MsgMint struct {
	Depositor string
	Receiver  string
	Shares    math.Int
}

type MsgMintResponse struct {
	TokensPaid math.Int
}

type MsgRequestRedeem struct {
	Owner  string
	Shares math.Int
}

type MsgRequestRedeemResponse struct {
	UnlockTime int64
}

// MsgRedeem settles shares from the owner's pending request. A nil Shares
// redeems the full request.
type MsgRedeem struct {
	Owner    string
	Receiver string
	Shares   *math.Int
}

type MsgRedeemResponse struct {
	SharesRedeemed math.Int
	TokensReturned math.Int
}

// MsgEmergencyRedeem settles the owner's full pending request immediately,
// forfeiting the decaying penalty to the pool.
type MsgEmergencyRedeem struct {
	Owner    string
	Receiver string
}

type MsgEmergencyRedeemResponse struct {
	SharesRedeemed math.Int
	TokensReturned math.Int
	Penalty        math.Int
}

type MsgCancelRedeem struct {
	Owner string
}

type MsgCancelRedeemResponse struct {
	SharesReturned math.Int
}

type MsgBorrow struct {
	Strategy string
	Amount   math.Int
}

type MsgBorrowResponse struct {
	Borrowed math.Int
}

type MsgRepay struct {
	Strategy string
	Amount   math.Int
}

type MsgRepayResponse struct {
	Borrowed math.Int
}

type MsgTransferTo struct {
	Strategy string
	Amount   math.Int
}

type MsgTransferToResponse struct {
	NetImpact math.Int
}

type MsgTransferFrom struct {
	Strategy string
	Amount   math.Int
}

type MsgTransferFromResponse struct {
	NetImpact math.Int
}

type MsgSetPaused struct {
	Authority string
	Paused    bool
}

type MsgSetPausedResponse struct{}
