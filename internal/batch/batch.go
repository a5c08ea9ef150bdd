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

package batch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/blinklabs-io/agora"
)

// Runner dispatches a stream of JSON operation requests against a ledger
// and writes one reply envelope per line
type Runner struct {
	ledger *agora.Ledger
	out    io.Writer
	logger *slog.Logger
}

func NewRunner(
	ledger *agora.Ledger,
	out io.Writer,
	logger *slog.Logger,
) *Runner {
	// Default logger will throw away logs
	// We do this so we don't have to add guards around every log operation
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Runner{
		ledger: ledger,
		out:    out,
		logger: logger,
	}
}

// Process reads {"opname": {args...}} objects from in until EOF and
// dispatches each named operation in document order. Every operation
// produces exactly one envelope line on the output writer, failures
// included. Processing stops between requests once ctx is canceled.
func (r *Runner) Process(ctx context.Context, in io.Reader) error {
	dec := json.NewDecoder(in)
	enc := json.NewEncoder(r.out)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("malformed request stream: %w", err)
		}
		if delim, ok := tok.(json.Delim); !ok || delim != '{' {
			return fmt.Errorf(
				"malformed request stream: expected object, got %v",
				tok,
			)
		}
		for dec.More() {
			if err := ctx.Err(); err != nil {
				return err
			}
			keyTok, err := dec.Token()
			if err != nil {
				return fmt.Errorf("malformed request stream: %w", err)
			}
			opName, ok := keyTok.(string)
			if !ok {
				return fmt.Errorf(
					"malformed request stream: expected operation name, got %v",
					keyTok,
				)
			}
			var args json.RawMessage
			if err := dec.Decode(&args); err != nil {
				return fmt.Errorf("malformed request stream: %w", err)
			}
			r.logger.Debug(
				"dispatching operation",
				"component", "batch",
				"operation", opName,
			)
			env := r.ledger.Apply(ctx, opName, args)
			if err := enc.Encode(env); err != nil {
				return fmt.Errorf("write reply: %w", err)
			}
		}
		// Consume the object's closing brace
		if _, err := dec.Token(); err != nil {
			return fmt.Errorf("malformed request stream: %w", err)
		}
	}
}
