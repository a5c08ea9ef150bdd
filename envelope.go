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

package agora

import (
	"context"
	"encoding/json"
)

// Operation names as they appear on the wire
const (
	OpLeader   = "leader"
	OpSupport  = "support"
	OpProtest  = "protest"
	OpUpvote   = "upvote"
	OpDownvote = "downvote"
	OpActions  = "actions"
	OpProjects = "projects"
	OpVotes    = "votes"
	OpTrolls   = "trolls"
)

// Envelope status values
const (
	StatusOK    = "OK"
	StatusError = "ERROR"
)

// Row is one positional result row. Column meaning depends on the
// operation that produced it.
type Row []any

// Envelope is the uniform reply for every operation: a status string plus,
// for listings, the result rows
type Envelope struct {
	Status string
	Data   []Row
}

// MarshalJSON always emits the status field and emits the data field only
// when a row set is present. Mutating operations answer with a bare status;
// listings carry data even when it is empty.
func (e Envelope) MarshalJSON() ([]byte, error) {
	if e.Data == nil {
		return json.Marshal(struct {
			Status string `json:"status"`
		}{
			Status: e.Status,
		})
	}
	return json.Marshal(struct {
		Status string `json:"status"`
		Data   []Row  `json:"data"`
	}{
		Status: e.Status,
		Data:   e.Data,
	})
}

func okEnvelope() Envelope {
	return Envelope{Status: StatusOK}
}

func errorEnvelope() Envelope {
	return Envelope{Status: StatusError}
}

// Apply dispatches one named operation with JSON-encoded arguments and
// returns the reply envelope. Failures never escape as errors; they are
// reported through the envelope status, the debug log, and the audit
// journal. Unknown argument keys are ignored.
func (l *Ledger) Apply(
	ctx context.Context,
	operation string,
	args json.RawMessage,
) Envelope {
	switch operation {
	case OpLeader:
		var req LeaderRequest
		if !l.decodeRequest(operation, args, &req) {
			return errorEnvelope()
		}
		if err := l.Leader(ctx, req); err != nil {
			return errorEnvelope()
		}
		return okEnvelope()
	case OpSupport:
		var req ActionRequest
		if !l.decodeRequest(operation, args, &req) {
			return errorEnvelope()
		}
		if err := l.Support(ctx, req); err != nil {
			return errorEnvelope()
		}
		return okEnvelope()
	case OpProtest:
		var req ActionRequest
		if !l.decodeRequest(operation, args, &req) {
			return errorEnvelope()
		}
		if err := l.Protest(ctx, req); err != nil {
			return errorEnvelope()
		}
		return okEnvelope()
	case OpUpvote:
		var req VoteRequest
		if !l.decodeRequest(operation, args, &req) {
			return errorEnvelope()
		}
		if err := l.Upvote(ctx, req); err != nil {
			return errorEnvelope()
		}
		return okEnvelope()
	case OpDownvote:
		var req VoteRequest
		if !l.decodeRequest(operation, args, &req) {
			return errorEnvelope()
		}
		if err := l.Downvote(ctx, req); err != nil {
			return errorEnvelope()
		}
		return okEnvelope()
	case OpActions:
		var req ActionsRequest
		if !l.decodeRequest(operation, args, &req) {
			return errorEnvelope()
		}
		tallies, err := l.Actions(ctx, req)
		if err != nil {
			return errorEnvelope()
		}
		rows := make([]Row, 0, len(tallies))
		for _, t := range tallies {
			rows = append(rows, Row{
				t.ID,
				t.Type,
				t.ProjectID,
				t.LeaderID,
				t.Upvotes,
				t.Downvotes,
			})
		}
		return Envelope{Status: StatusOK, Data: rows}
	case OpProjects:
		var req ProjectsRequest
		if !l.decodeRequest(operation, args, &req) {
			return errorEnvelope()
		}
		projects, err := l.Projects(ctx, req)
		if err != nil {
			return errorEnvelope()
		}
		rows := make([]Row, 0, len(projects))
		for _, p := range projects {
			rows = append(rows, Row{
				p.ID,
				p.LeaderID,
			})
		}
		return Envelope{Status: StatusOK, Data: rows}
	case OpVotes:
		var req VotesRequest
		if !l.decodeRequest(operation, args, &req) {
			return errorEnvelope()
		}
		tallies, err := l.Votes(ctx, req)
		if err != nil {
			return errorEnvelope()
		}
		rows := make([]Row, 0, len(tallies))
		for _, t := range tallies {
			rows = append(rows, Row{
				t.MemberID,
				t.Upvotes,
				t.Downvotes,
			})
		}
		return Envelope{Status: StatusOK, Data: rows}
	case OpTrolls:
		var req TrollsRequest
		if !l.decodeRequest(operation, args, &req) {
			return errorEnvelope()
		}
		trolls, err := l.Trolls(ctx, req)
		if err != nil {
			return errorEnvelope()
		}
		rows := make([]Row, 0, len(trolls))
		for _, t := range trolls {
			rows = append(rows, Row{
				t.MemberID,
				t.Upvotes,
				t.Downvotes,
				t.Active,
			})
		}
		return Envelope{Status: StatusOK, Data: rows}
	default:
		l.config.logger.Debug(
			"unknown operation",
			"component", "ledger",
			"operation", operation,
		)
		return errorEnvelope()
	}
}

// decodeRequest unmarshals operation arguments into the request struct,
// reporting whether decoding succeeded. Decode failures are logged but not
// audited, since no operation was started.
func (l *Ledger) decodeRequest(
	operation string,
	args json.RawMessage,
	target any,
) bool {
	if err := json.Unmarshal(args, target); err != nil {
		l.config.logger.Debug(
			"malformed operation arguments",
			"component", "ledger",
			"operation", operation,
			"error", err,
		)
		return false
	}
	return true
}
