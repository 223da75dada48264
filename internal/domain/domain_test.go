package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageCount(t *testing.T) {
	assert.Equal(t, 0, PageCount(0, 100))
	assert.Equal(t, 1, PageCount(1, 100))
	assert.Equal(t, 1, PageCount(100, 100))
	assert.Equal(t, 3, PageCount(250, 100))
	assert.Equal(t, 0, PageCount(10, 0))

	p := Page{Total: 201, PageSize: 100}
	assert.Equal(t, 3, p.PageCount())
}

func TestUserRecordStore_CloneIsDeep(t *testing.T) {
	orig := UserRecordStore{
		Identity: Identity{ID: 1, DisplayName: "a"},
		Pointer:  CachePointer{LastSeenID: 2},
		Records: []Record{
			{Upload: Upload{ID: 1}, Games: []string{"x"}},
			{Upload: Upload{ID: 2}, Games: []string{"y", "z"}},
		},
	}

	clone := orig.Clone()
	clone.Records[0].Games[0] = "changed"
	clone.Records[1].Title = "changed"

	assert.Equal(t, "x", orig.Records[0].Games[0])
	assert.Empty(t, orig.Records[1].Title)
	assert.Equal(t, []int64{1, 2}, orig.IDs())
}

func TestBatch_TitleChangedCount(t *testing.T) {
	b := Batch{Uploads: []Upload{{ID: 1}, {ID: 2, TitleChanged: true}, {ID: 3, TitleChanged: true}}}
	assert.Equal(t, 2, b.TitleChangedCount())
}

func TestRemoteFetchError(t *testing.T) {
	assert.Equal(t, "remote fetch: status 412: blocked", (&RemoteFetchError{StatusCode: 412, Message: "blocked"}).Error())
	assert.Equal(t, "remote fetch: code -352: risk", (&RemoteFetchError{StatusCode: 200, Code: -352, Message: "risk"}).Error())
}
