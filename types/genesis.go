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
	"cosmossdk.io/errors"
	"cosmossdk.io/math"
)

// GenesisState is the full exported state of the vault module.
type GenesisState struct {
	Paused             bool
	TotalShares        math.Int
	TotalTokens        math.Int
	StrategyRecords    map[string]StrategyRecord
	RedemptionRequests map[string]RedemptionRequest
	LastDepositTimes   map[string]int64
}

func DefaultGenesisState() *GenesisState {
	return &GenesisState{
		TotalShares:        math.ZeroInt(),
		TotalTokens:        math.ZeroInt(),
		StrategyRecords:    map[string]StrategyRecord{},
		RedemptionRequests: map[string]RedemptionRequest{},
		LastDepositTimes:   map[string]int64{},
	}
}

func (gs *GenesisState) Validate() error {
	if gs.TotalShares.IsNil() || gs.TotalShares.IsNegative() {
		return errors.Wrap(ErrInvalidConfig, "total shares cannot be negative")
	}
	if gs.TotalTokens.IsNil() || gs.TotalTokens.IsNegative() {
		return errors.Wrap(ErrInvalidConfig, "total tokens cannot be negative")
	}

	escrowed := math.ZeroInt()
	for owner, request := range gs.RedemptionRequests {
		if request.Shares.IsNil() || !request.Shares.IsPositive() {
			return errors.Wrapf(ErrInvalidConfig, "redemption request for %s must hold positive shares", owner)
		}
		escrowed = escrowed.Add(request.Shares)
	}
	if escrowed.GT(gs.TotalShares) {
		return errors.Wrap(ErrInvalidConfig, "escrowed shares exceed total supply")
	}

	for strategy, record := range gs.StrategyRecords {
		if record.Borrowed.IsNil() || record.Borrowed.IsNegative() {
			return errors.Wrapf(ErrInvalidConfig, "strategy %s cannot have negative borrowed principal", strategy)
		}
		if record.NetImpact.IsNil() {
			return errors.Wrapf(ErrInvalidConfig, "strategy %s has uninitialized net impact", strategy)
		}
	}

	return nil
}
