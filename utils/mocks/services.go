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

package mocks

import (
	"context"

	"cosmossdk.io/core/event"
	"cosmossdk.io/core/header"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"google.golang.org/protobuf/runtime/protoiface"
)

// HeaderService reads header info off the SDK context, so tests can travel in
// time with ctx.WithHeaderInfo.
type HeaderService struct{}

func (HeaderService) GetHeaderInfo(ctx context.Context) header.Info {
	return sdk.UnwrapSDKContext(ctx).HeaderInfo()
}

// EventService routes module events into the SDK context's event manager.
type EventService struct{}

func (EventService) EventManager(ctx context.Context) event.Manager {
	return eventManager{ctx: sdk.UnwrapSDKContext(ctx)}
}

type eventManager struct {
	ctx sdk.Context
}

func (em eventManager) Emit(_ context.Context, msg protoiface.MessageV1) error {
	return em.ctx.EventManager().EmitTypedEvent(msg)
}

func (em eventManager) EmitKV(_ context.Context, eventType string, attrs ...event.Attribute) error {
	sdkAttrs := make([]sdk.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		sdkAttrs = append(sdkAttrs, sdk.NewAttribute(attr.Key, attr.Value))
	}

	em.ctx.EventManager().EmitEvent(sdk.NewEvent(eventType, sdkAttrs...))

	return nil
}

func (em eventManager) EmitNonConsensus(_ context.Context, msg protoiface.MessageV1) error {
	return em.ctx.EventManager().EmitTypedEvent(msg)
}
