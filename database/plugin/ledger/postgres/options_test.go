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

package postgres

import (
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestWithHost(t *testing.T) {
	l := &LedgerStorePostgres{}
	option := WithHost("db.local")

	option(l)

	if l.host != "db.local" {
		t.Errorf("Expected host to be 'db.local', got '%s'", l.host)
	}
}

func TestWithPort(t *testing.T) {
	l := &LedgerStorePostgres{}
	option := WithPort(uint(5432))

	option(l)

	if l.port != 5432 {
		t.Errorf("Expected port to be 5432, got '%d'", l.port)
	}
}

func TestWithUser(t *testing.T) {
	l := &LedgerStorePostgres{}
	option := WithUser("postgres")

	option(l)

	if l.user != "postgres" {
		t.Errorf("Expected user to be 'postgres', got '%s'", l.user)
	}
}

func TestWithPassword(t *testing.T) {
	l := &LedgerStorePostgres{}
	option := WithPassword("secret")

	option(l)

	if l.password != "secret" {
		t.Errorf("Expected password to be set")
	}
}

func TestWithDatabase(t *testing.T) {
	l := &LedgerStorePostgres{}
	option := WithDatabase("agora")

	option(l)

	if l.database != "agora" {
		t.Errorf("Expected database to be 'agora', got '%s'", l.database)
	}
}

func TestWithSSLMode(t *testing.T) {
	l := &LedgerStorePostgres{}
	option := WithSSLMode("require")

	option(l)

	if l.sslMode != "require" {
		t.Errorf("Expected sslMode to be 'require', got '%s'", l.sslMode)
	}
}

func TestWithTimeZone(t *testing.T) {
	l := &LedgerStorePostgres{}
	option := WithTimeZone("UTC")

	option(l)

	if l.timeZone != "UTC" {
		t.Errorf("Expected timeZone to be 'UTC', got '%s'", l.timeZone)
	}
}

func TestWithDSN(t *testing.T) {
	l := &LedgerStorePostgres{}
	option := WithDSN("host=localhost dbname=agora")

	option(l)

	if l.dsn != "host=localhost dbname=agora" {
		t.Errorf("Expected dsn to be set")
	}
}

func TestWithLogger(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	l := &LedgerStorePostgres{}
	option := WithLogger(logger)

	option(l)

	if l.logger != logger {
		t.Errorf("Expected logger to be set")
	}
}

func TestWithPromRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	l := &LedgerStorePostgres{}
	option := WithPromRegistry(reg)

	option(l)

	if l.promRegistry != reg {
		t.Errorf("Expected promRegistry to be set")
	}
}
