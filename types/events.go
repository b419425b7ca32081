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

const (
	EventTypeDeposit         = "vault.v1.Deposit"
	EventTypeMint            = "vault.v1.Mint"
	EventTypeRedeemRequested = "vault.v1.RedeemRequested"
	EventTypeRedeem          = "vault.v1.Redeem"
	EventTypeEmergencyRedeem = "vault.v1.EmergencyRedeem"
	EventTypeRedeemCancelled = "vault.v1.RedeemCancelled"
	EventTypeBorrow          = "vault.v1.Borrow"
	EventTypeRepay           = "vault.v1.Repay"
	EventTypeTransferOut     = "vault.v1.TransferOut"
	EventTypeTransferIn      = "vault.v1.TransferIn"
	EventTypePaused          = "vault.v1.Paused"
)

const (
	AttributeKeyDepositor  = "depositor"
	AttributeKeyReceiver   = "receiver"
	AttributeKeyOwner      = "owner"
	AttributeKeyStrategy   = "strategy"
	AttributeKeyAuthority  = "authority"
	AttributeKeyTokens     = "tokens"
	AttributeKeyShares     = "shares"
	AttributeKeyPenalty    = "penalty"
	AttributeKeyUnlockTime = "unlock_time"
	AttributeKeyNetImpact  = "net_impact"
	AttributeKeyPaused     = "paused"
)
