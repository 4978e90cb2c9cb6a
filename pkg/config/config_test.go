/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/fwlog/pkg/models"
	"github.com/carverauto/fwlog/pkg/parser"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fwlog.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "")

	path := writeConfig(t, `{
		"source": "nats",
		"nats_url": "nats://127.0.0.1:4222",
		"vendors": ["d-link", "Kaspersky"],
		"delimiter": "tab",
		"format": "csv",
		"fetch_timeout": "5s",
		"logging": {"level": "debug"}
	}`)

	cfg, err := Load(context.Background(), path, nil)
	require.NoError(t, err)

	assert.Equal(t, SourceNATS, cfg.Source)
	assert.Equal(t, "fwlog-exports", cfg.Bucket)
	assert.Equal(t, 15, cfg.MaxBuckets)
	assert.Equal(t, Duration(5*time.Second), cfg.FetchTimeout)
	assert.Equal(t, '\t', cfg.DelimiterRune())
	assert.Equal(t, "debug", cfg.Logging.Level)

	vendors, err := cfg.VendorList()
	require.NoError(t, err)
	assert.Equal(t, []models.Vendor{models.VendorDLink, models.VendorKaspersky}, vendors)
	assert.Len(t, cfg.ParserOptions(), 2)
}

func TestLoadFileErrors(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "file")

	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.json"), nil)
	require.Error(t, err)

	_, err = Load(context.Background(), writeConfig(t, "{not json"), nil)
	require.Error(t, err)

	_, err = Load(context.Background(), "", nil)
	require.ErrorIs(t, err, errConfigPathRequired)
}

func TestLoadInvalidSource(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "consul")

	_, err := Load(context.Background(), "fwlog.json", nil)
	require.ErrorIs(t, err, errInvalidConfigSource)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "env")
	t.Setenv("FWLOG_SOURCE", "file")
	t.Setenv("FWLOG_DATA_DIR", "/var/lib/fwlog")
	t.Setenv("FWLOG_FILES", `{"dlink":"dfl-800.csv.zst"}`)
	t.Setenv("FWLOG_VENDORS", "dlink, tplink")
	t.Setenv("FWLOG_MAX_BUCKETS", "10")
	t.Setenv("FWLOG_TYPED_SORT", "true")
	t.Setenv("FWLOG_FETCH_TIMEOUT", "1m")
	t.Setenv("FWLOG_LOGGING_LEVEL", "warn")

	cfg, err := Load(context.Background(), "", nil)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/fwlog", cfg.DataDir)
	assert.Equal(t, []string{"dlink", "tplink"}, cfg.Vendors)
	assert.Equal(t, 10, cfg.MaxBuckets)
	assert.True(t, cfg.TypedSort)
	assert.Equal(t, Duration(time.Minute), cfg.FetchTimeout)
	assert.Equal(t, "warn", cfg.Logging.Level)

	files, err := cfg.FileOverrides()
	require.NoError(t, err)
	assert.Equal(t, map[models.Vendor]string{models.VendorDLink: "dfl-800.csv.zst"}, files)
}

func TestLoadFromEnvConfigJSON(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "env")
	t.Setenv("FWLOG_CONFIG_JSON", `{"source":"file","data_dir":"/exports","format":"json"}`)
	t.Setenv("FWLOG_DATA_DIR", "/ignored")

	cfg, err := Load(context.Background(), "", nil)
	require.NoError(t, err)
	assert.Equal(t, "/exports", cfg.DataDir)
	assert.Equal(t, string(parser.FormatJSON), cfg.Format)
}

func TestLoadFromEnvInvalidValue(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "env")
	t.Setenv("FWLOG_MAX_BUCKETS", "many")
	t.Setenv("FWLOG_FETCH_TIMEOUT", "soon")

	_, err := Load(context.Background(), "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FWLOG_MAX_BUCKETS")
	assert.ErrorIs(t, err, errInvalidDuration)
}

func TestEnvLoaderDestination(t *testing.T) {
	l := NewEnvConfigLoader(nil, DefaultEnvPrefix)

	var notPtr FwlogConfig
	require.ErrorIs(t, l.Load(context.Background(), "", notPtr), ErrDstMustBeNonNilPointer)

	s := "x"
	require.ErrorIs(t, l.Load(context.Background(), "", &s), ErrDstMustBePointerToStruct)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*FwlogConfig)
		want   []error
	}{
		{
			name:   "defaults are valid",
			mutate: func(*FwlogConfig) {},
		},
		{
			name:   "unknown source",
			mutate: func(c *FwlogConfig) { c.Source = "s3" },
			want:   []error{ErrInvalidSource},
		},
		{
			name:   "nats needs url and bucket",
			mutate: func(c *FwlogConfig) { c.Source = SourceNATS; c.Bucket = "" },
			want:   []error{ErrMissingNATSURL, ErrMissingBucket},
		},
		{
			name:   "file needs data dir",
			mutate: func(c *FwlogConfig) { c.DataDir = "" },
			want:   []error{ErrMissingDataDir},
		},
		{
			name:   "quote delimiter",
			mutate: func(c *FwlogConfig) { c.Delimiter = `"` },
			want:   []error{ErrInvalidDelimiter},
		},
		{
			name:   "line break delimiter",
			mutate: func(c *FwlogConfig) { c.Delimiter = "\n" },
			want:   []error{ErrInvalidDelimiter},
		},
		{
			name:   "carriage return delimiter",
			mutate: func(c *FwlogConfig) { c.Delimiter = "\r" },
			want:   []error{ErrInvalidDelimiter},
		},
		{
			name:   "replacement character delimiter",
			mutate: func(c *FwlogConfig) { c.Delimiter = "�" },
			want:   []error{ErrInvalidDelimiter},
		},
		{
			name:   "semicolon delimiter",
			mutate: func(c *FwlogConfig) { c.Delimiter = ";" },
		},
		{
			name: "several problems at once",
			mutate: func(c *FwlogConfig) {
				c.Delimiter = ";;"
				c.Format = "xml"
				c.Vendors = []string{"cisco"}
				c.Files = map[string]string{"juniper": "x.csv"}
				c.MaxBuckets = -1
				c.FetchTimeout = Duration(-time.Second)
			},
			want: []error{
				ErrInvalidDelimiter, parser.ErrUnsupportedFormat, models.ErrUnknownVendor,
				ErrInvalidMaxBuckets, ErrInvalidTimeout,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if len(tt.want) == 0 {
				require.NoError(t, err)

				return
			}

			for _, want := range tt.want {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}

func TestDuration(t *testing.T) {
	var d Duration

	require.NoError(t, json.Unmarshal([]byte(`"250ms"`), &d))
	assert.Equal(t, Duration(250*time.Millisecond), d)

	require.NoError(t, json.Unmarshal([]byte(`1000`), &d))
	assert.Equal(t, Duration(time.Microsecond), d)

	require.ErrorIs(t, json.Unmarshal([]byte(`true`), &d), errInvalidDuration)

	out, err := json.Marshal(Duration(90 * time.Second))
	require.NoError(t, err)
	assert.JSONEq(t, `"1m30s"`, string(out))
}
