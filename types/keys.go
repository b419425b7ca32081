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

import authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

const ModuleName = "vault"

// ModuleAddress holds the pooled assets and the escrowed shares of pending
// redemption requests.
var ModuleAddress = authtypes.NewModuleAddress(ModuleName)

var (
	PausedKey               = []byte("vault/paused")
	TotalSharesKey          = []byte("vault/total_shares")
	TotalTokensKey          = []byte("vault/total_tokens")
	StrategyBorrowedPrefix  = []byte("vault/strategy_borrowed/")
	StrategyNetImpactPrefix = []byte("vault/strategy_net_impact/")
	RedemptionSharesPrefix  = []byte("vault/redemption_shares/")
	RedemptionUnlockPrefix  = []byte("vault/redemption_unlock/")
	LastDepositTimePrefix   = []byte("vault/last_deposit_time/")
)
