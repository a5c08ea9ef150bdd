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
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/blinklabs-io/agora"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func newTestLedger(t *testing.T) *agora.Ledger {
	t.Helper()
	l, err := agora.New(agora.NewConfig())
	require.NoError(t, err)
	return l
}

func TestProcessStream(t *testing.T) {
	defer goleak.VerifyNone(t)
	l := newTestLedger(t)
	defer l.Stop() //nolint:errcheck

	ts := time.Now().UTC().Unix()
	input := fmt.Sprintf(`
{"leader": {"timestamp": %d, "member": 1, "password": "pw"}}
{"support": {"timestamp": %d, "member": 2, "password": "pw2", "action": 5, "project": 100, "authority": 1}}
{"trolls": {"timestamp": %d}}
`, ts, ts, ts)

	var out bytes.Buffer
	runner := NewRunner(l, &out, nil)
	err := runner.Process(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.JSONEq(t, `{"status":"OK"}`, lines[0])
	assert.JSONEq(t, `{"status":"OK"}`, lines[1])
	assert.JSONEq(t, `{"status":"OK","data":[]}`, lines[2])
}

func TestProcessMultiOperationObject(t *testing.T) {
	defer goleak.VerifyNone(t)
	l := newTestLedger(t)
	defer l.Stop() //nolint:errcheck

	// Multiple operations in one object dispatch in document order
	input := fmt.Sprintf(
		`{"leader": {"timestamp": %d, "member": 1, "password": "pw"}, "bogus": {}}`,
		time.Now().UTC().Unix(),
	)

	var out bytes.Buffer
	runner := NewRunner(l, &out, nil)
	err := runner.Process(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"status":"OK"}`, lines[0])
	assert.JSONEq(t, `{"status":"ERROR"}`, lines[1])
}

func TestProcessOperationFailureContinues(t *testing.T) {
	defer goleak.VerifyNone(t)
	l := newTestLedger(t)
	defer l.Stop() //nolint:errcheck

	// A failed operation yields an ERROR line and the stream moves on
	ts := time.Now().UTC().Unix()
	input := fmt.Sprintf(`
{"upvote": {"timestamp": %d, "member": 3, "password": "pw", "action": 999}}
{"leader": {"timestamp": %d, "member": 1, "password": "pw"}}
`, ts, ts)

	var out bytes.Buffer
	runner := NewRunner(l, &out, nil)
	err := runner.Process(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"status":"ERROR"}`, lines[0])
	assert.JSONEq(t, `{"status":"OK"}`, lines[1])
}

func TestProcessMalformedStream(t *testing.T) {
	defer goleak.VerifyNone(t)
	l := newTestLedger(t)
	defer l.Stop() //nolint:errcheck

	var out bytes.Buffer
	runner := NewRunner(l, &out, nil)

	// Top-level value that is not an object
	err := runner.Process(
		context.Background(),
		strings.NewReader(`["leader"]`),
	)
	assert.Error(t, err)

	// Not JSON at all
	err = runner.Process(
		context.Background(),
		strings.NewReader(`not-json`),
	)
	assert.Error(t, err)
}

func TestProcessEmptyInput(t *testing.T) {
	defer goleak.VerifyNone(t)
	l := newTestLedger(t)
	defer l.Stop() //nolint:errcheck

	var out bytes.Buffer
	runner := NewRunner(l, &out, nil)
	err := runner.Process(context.Background(), strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, out.String())
}

func TestProcessContextCanceled(t *testing.T) {
	defer goleak.VerifyNone(t)
	l := newTestLedger(t)
	defer l.Stop() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	runner := NewRunner(l, &out, nil)
	err := runner.Process(
		ctx,
		strings.NewReader(`{"trolls": {"timestamp": 1}}`),
	)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}
