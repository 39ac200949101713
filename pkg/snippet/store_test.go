// Test Type: Unit Test
// Description: Tests for the snippet store - epsilon, duplicates, copies and matching

package snippet

import (
	"regexp"
	"sync"
	"testing"

	"github.com/arthur-debert/snipper/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore_HasEpsilon(t *testing.T) {
	s := NewStore()

	sn, ok := s.Get(Epsilon)
	require.True(t, ok)
	assert.Empty(t, sn.Lines)
	assert.Equal(t, 1, s.Len())
}

func TestStore_PutDuplicates(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Put(&Snippet{Name: "Main", Lines: []string{"a"}, Source: "A.java", Line: 3}))

	t.Run("identical redefinition is accepted", func(t *testing.T) {
		assert.NoError(t, s.Put(&Snippet{Name: "Main", Lines: []string{"a"}, Source: "B.java"}))
	})

	t.Run("different redefinition names both files", func(t *testing.T) {
		err := s.Put(&Snippet{Name: "Main", Lines: []string{"b"}, Source: "C.java", Line: 9})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrSnippetDuplicate))
		assert.Contains(t, err.Error(), "A.java:3")
		assert.Contains(t, err.Error(), "C.java:9")
	})
}

func TestStore_GetReturnsCopy(t *testing.T) {
	s := NewStore()
	lines := []string{"x"}
	require.NoError(t, s.Put(&Snippet{Name: "S", Lines: lines}))
	lines[0] = "changed by caller"

	sn, _ := s.Get("S")
	sn.Lines[0] = "changed by handler"

	again, _ := s.Get("S")
	assert.Equal(t, []string{"x"}, again.Lines)
}

func TestStore_Match(t *testing.T) {
	s := NewStore()
	for _, name := range []string{"Sample_b", "Sample_a", "MySample_c"} {
		require.NoError(t, s.Put(&Snippet{Name: name}))
	}

	assert.Equal(t, []string{"Sample_a", "Sample_b"}, s.Match(regexp.MustCompile(`Sample_.*`)))
	assert.Empty(t, s.Match(regexp.MustCompile(`ample`)), "partial matches do not count")
	assert.Equal(t, []string{"MySample_c", "Sample_a", "Sample_b", "epsilon"}, s.Names())
}

func TestStore_ConcurrentPut(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Put(&Snippet{Name: "Shared", Lines: []string{"same"}})
		}()
	}
	wg.Wait()
	assert.Equal(t, 2, s.Len())
	assert.Len(t, s.All(), 2)
}
