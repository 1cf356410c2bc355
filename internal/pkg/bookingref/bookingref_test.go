//go:build unit

package bookingref_test

import (
	"sync"
	"testing"

	"ticketgo/internal/pkg/bookingref"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSequenceGenerator(t *testing.T) {
	tests := []struct {
		name    string
		prefix  string
		wantErr bool
	}{
		{name: "valid prefix", prefix: "TG", wantErr: false},
		{name: "another valid prefix", prefix: "ZW", wantErr: false},
		{name: "too short", prefix: "T", wantErr: true},
		{name: "too long", prefix: "TGX", wantErr: true},
		{name: "lowercase", prefix: "tg", wantErr: true},
		{name: "digits", prefix: "T1", wantErr: true},
		{name: "empty", prefix: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := bookingref.NewSequenceGenerator(tt.prefix)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, gen)
			} else {
				require.NoError(t, err)
				require.NotNil(t, gen)
			}
		})
	}
}

func TestGenerate_Format(t *testing.T) {
	gen, err := bookingref.NewSequenceGenerator("TG")
	require.NoError(t, err)

	for i := 0; i < 1000; i++ {
		ref := gen.Generate()
		assert.Regexp(t, bookingref.Pattern, ref)
		assert.Equal(t, "TG", ref[:2])
	}
}

func TestGenerate_Uniqueness(t *testing.T) {
	gen, err := bookingref.NewSequenceGenerator("TG")
	require.NoError(t, err)

	const n = 100_000
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		ref := gen.Generate()
		_, dup := seen[ref]
		require.False(t, dup, "reference %s generated twice at iteration %d", ref, i)
		seen[ref] = struct{}{}
	}
}

func TestGenerate_ConcurrentSafety(t *testing.T) {
	gen, err := bookingref.NewSequenceGenerator("TG")
	require.NoError(t, err)

	const (
		workers = 16
		perWork = 2000
	)

	results := make(chan string, workers*perWork)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWork; j++ {
				results <- gen.Generate()
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]struct{}, workers*perWork)
	for ref := range results {
		assert.Regexp(t, bookingref.Pattern, ref)
		_, dup := seen[ref]
		require.False(t, dup, "concurrent duplicate %s", ref)
		seen[ref] = struct{}{}
	}
	assert.Len(t, seen, workers*perWork)
}
