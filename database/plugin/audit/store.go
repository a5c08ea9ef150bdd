// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package audit

import (
	"context"
	"fmt"

	"github.com/blinklabs-io/agora/database/plugin"
)

// Record is a single journal entry describing the outcome of one ledger
// operation. The sequence is assigned by the store on append.
type Record struct {
	Operation string `json:"operation"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	Timestamp int64  `json:"timestamp"`
	MemberID  int64  `json:"member_id,omitempty"`
	Sequence  uint64 `json:"sequence"`
}

// AuditStore is an append-only journal of ledger operation outcomes. Records
// are appended after the operation's transaction settles and scanned back in
// sequence order. The commit timestamp mirrors the ledger store's value and
// is used to detect divergence between the two at startup.
type AuditStore interface {
	Close() error

	GetCommitTimestamp(context.Context) (int64, error)
	SetCommitTimestamp(context.Context, int64) error

	AppendRecord(context.Context, *Record) error
	ScanRecords(context.Context, func(*Record) error) error
}

// New returns the started audit plugin selected by name
func New(pluginName string) (AuditStore, error) {
	// Get and start the plugin
	p, err := plugin.StartPlugin(plugin.PluginTypeAudit, pluginName)
	if err != nil {
		return nil, err
	}

	// Type assert to AuditStore interface
	auditStore, ok := p.(AuditStore)
	if !ok {
		return nil, fmt.Errorf(
			"plugin '%s' does not implement AuditStore interface",
			pluginName,
		)
	}

	return auditStore, nil
}
