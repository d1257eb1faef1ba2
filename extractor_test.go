package tagscan_test

import (
	"sync"
	"testing"

	"github.com/fwojciec/tagscan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanExtractor_ExtractTags(t *testing.T) {
	t.Parallel()

	t.Run("returns records and stored errors", func(t *testing.T) {
		t.Parallel()

		e := tagscan.NewScanExtractor()
		ext, err := e.ExtractTags("<li>one</li></li>", []string{"li"})

		require.NoError(t, err)
		assert.Equal(t, tagscan.ScanApproach, e.Name())
		assert.Equal(t, tagscan.ScanApproach, ext.Approach)
		require.Len(t, ext.Records, 2)
		assert.Equal(t, "one", ext.Records[0].Content)
		assert.Equal(t, []string{"Error: Unexpected closing tag </li> at position 12"}, ext.Errors)
	})

	t.Run("keeps errors of concurrent calls apart", func(t *testing.T) {
		t.Parallel()

		e := tagscan.NewScanExtractor()
		var wg sync.WaitGroup
		results := make([]*tagscan.Extraction, 10)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				ext, err := e.ExtractTags("<p>open", []string{"p"})
				if err == nil {
					results[i] = ext
				}
			}(i)
		}
		wg.Wait()

		for _, ext := range results {
			require.NotNil(t, ext)
			assert.Len(t, ext.Errors, 1)
		}
	})
}

func TestCountMalformed(t *testing.T) {
	t.Parallel()

	records := []tagscan.Record{
		{Tag: "a", Content: "x", Status: tagscan.StatusComplete},
		{Tag: "a", Content: tagscan.MissingClosingContent, Status: tagscan.StatusUnclosed},
		{Tag: tagscan.MalformedTag, Content: "Unexpected closing tag </a> at position 0", Status: tagscan.StatusMalformed},
	}

	assert.Equal(t, 2, tagscan.CountMalformed(records))
	assert.False(t, records[0].IsMalformed())
}
