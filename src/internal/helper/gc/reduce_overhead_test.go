// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or use this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package gc

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// errorReader is an io.Reader that always fails.
type errorReader struct{ err error }

func (e *errorReader) Read(p []byte) (int, error) { return 0, e.err }

// foreignBuffer satisfies Buffer without coming from bytebufferpool.
type foreignBuffer struct{ bytes.Buffer }

func TestBufferInterface(t *testing.T) {
	tests := []struct {
		name  string
		setup func(buf Buffer)
		want  string
	}{
		{
			name:  "Write byte slice",
			setup: func(buf Buffer) { buf.Write([]byte("hello")) },
			want:  "hello",
		},
		{
			name:  "WriteString",
			setup: func(buf Buffer) { buf.WriteString("exit status 1") },
			want:  "exit status 1",
		},
		{
			name: "Mixed writes",
			setup: func(buf Buffer) {
				buf.Write([]byte("keytool"))
				buf.WriteByte(':')
				buf.WriteString(" error")
			},
			want: "keytool: error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := Default.Get()
			defer func() {
				buf.Reset()
				Default.Put(buf)
			}()

			tt.setup(buf)
			assert.Equal(t, tt.want, buf.String())
			assert.Equal(t, []byte(tt.want), buf.Bytes())
			assert.Equal(t, len(tt.want), buf.Len())
		})
	}
}

func TestReadFrom(t *testing.T) {
	buf := Default.Get()
	defer Default.Put(buf)

	n, err := buf.ReadFrom(strings.NewReader(`{"data":{}}`))
	require.NoError(t, err)
	assert.Equal(t, int64(11), n)
	assert.Equal(t, `{"data":{}}`, buf.String())

	buf.Reset()
	_, err = buf.ReadFrom(&errorReader{err: errors.New("connection reset")})
	assert.EqualError(t, err, "connection reset")
}

func TestResetClearsContent(t *testing.T) {
	buf := Default.Get()
	buf.WriteString("secret")
	buf.Reset()
	assert.Zero(t, buf.Len())
	Default.Put(buf)

	again := Default.Get()
	defer Default.Put(again)
	assert.Empty(t, again.String())
}

func TestPutIgnoresForeignBuffer(t *testing.T) {
	assert.NotPanics(t, func() {
		Default.Put(&foreignBuffer{})
	})
}

func TestConcurrentUse(t *testing.T) {
	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			buf := Default.Get()
			defer func() {
				buf.Reset()
				Default.Put(buf)
			}()
			buf.WriteString(strings.Repeat("x", i))
			assert.Equal(t, i, buf.Len())
		}(i)
	}
	wg.Wait()
}
