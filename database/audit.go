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

package database

import (
	"context"
	"time"

	"github.com/blinklabs-io/agora/database/plugin/audit"
	"github.com/blinklabs-io/agora/database/types"
	"github.com/prometheus/client_golang/prometheus"
)

const metricNamePrefix = "database_"

func (d *Database) registerMetrics() {
	d.metricAuditFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: metricNamePrefix + "audit_append_failures_total",
			Help: "Total number of audit journal append failures",
		},
	)

	d.promRegistry.MustRegister(d.metricAuditFailures)
}

// RecordAudit appends an operation outcome to the audit journal. The record
// timestamp is filled in when unset. Append failures are logged and counted
// but never fail the operation being recorded.
func (d *Database) RecordAudit(ctx context.Context, record *audit.Record) {
	as := d.Audit()
	if as == nil || record == nil {
		return
	}
	if record.Timestamp == 0 {
		record.Timestamp = time.Now().Unix()
	}
	if err := as.AppendRecord(ctx, record); err != nil {
		d.logger.Warn(
			"failed to append audit record",
			"component", "database",
			"operation", record.Operation,
			"error", err,
		)
		if d.metricAuditFailures != nil {
			d.metricAuditFailures.Inc()
		}
	}
}

// ScanAuditRecords walks the audit journal in sequence order
func (d *Database) ScanAuditRecords(
	ctx context.Context,
	fn func(*audit.Record) error,
) error {
	as := d.Audit()
	if as == nil {
		return types.ErrAuditStoreUnavailable
	}
	return as.ScanRecords(ctx, fn)
}
